// Package booking validates a requested slot against the weekly template and
// existing appointments, then commits a new appointment record.
package booking

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"booking-agent-server/internal/models"
	"booking-agent-server/internal/schedule"
	"booking-agent-server/internal/store"
)

var (
	// ErrProfessionalNotFound means the professional name matched nobody.
	ErrProfessionalNotFound = errors.New("booking: professional not found")
	// ErrClientNotFound means the client name matched nobody.
	ErrClientNotFound = errors.New("booking: client not found")
	// ErrInvalidDay means the day-of-week name is not a real weekday.
	ErrInvalidDay = errors.New("booking: invalid day of week")
	// ErrSlotNotOffered means the template has no available slot at the
	// requested day and time.
	ErrSlotNotOffered = errors.New("booking: slot not offered")
	// ErrSlotAlreadyBooked means an appointment already occupies the
	// computed date and start time.
	ErrSlotAlreadyBooked = errors.New("booking: slot already booked")
)

// slotDurationMinutes is the fixed length of every appointment.
const slotDurationMinutes = 60

// Request names the slot a client wants to book.
type Request struct {
	ProfessionalName string
	ClientName       string
	DayOfWeek        string
	StartTime        string // "HH:MM"
	WeekNumber       int    // 1 = current week
}

// Service is the booking engine. It owns the only mutation in the system:
// appending appointments to the store.
type Service struct {
	store store.Store
	now   func() time.Time
}

// NewService builds a booking service. A nil clock defaults to time.Now.
func NewService(st store.Store, now func() time.Time) *Service {
	if now == nil {
		now = time.Now
	}
	return &Service{store: st, now: now}
}

// Book runs the validation chain in order (first failure wins), then appends
// the appointment. On success it returns the stored record and a
// confirmation line echoing the booking details.
func (s *Service) Book(ctx context.Context, req Request) (models.Appointment, string, error) {
	if req.WeekNumber < 1 {
		req.WeekNumber = 1
	}

	professional, err := s.store.FindProfessionalByName(ctx, req.ProfessionalName)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return models.Appointment{}, "", ErrProfessionalNotFound
		}
		return models.Appointment{}, "", err
	}

	client, err := s.store.FindClientByName(ctx, req.ClientName)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return models.Appointment{}, "", ErrClientNotFound
		}
		return models.Appointment{}, "", err
	}

	if _, ok := schedule.DayIndex(req.DayOfWeek); !ok {
		return models.Appointment{}, "", ErrInvalidDay
	}

	timeslots, err := s.store.ListTimeSlots(ctx, professional.ID)
	if err != nil {
		return models.Appointment{}, "", err
	}
	var slot *models.TimeSlot
	for i := range timeslots {
		t := &timeslots[i]
		if t.Available && strings.EqualFold(t.DayOfWeek, req.DayOfWeek) && t.StartTime == req.StartTime {
			slot = t
			break
		}
	}
	if slot == nil {
		return models.Appointment{}, "", ErrSlotNotOffered
	}

	date, err := schedule.SlotDate(schedule.StartOfDay(s.now()), req.WeekNumber, req.DayOfWeek)
	if err != nil {
		return models.Appointment{}, "", ErrInvalidDay
	}
	dateStr := date.Format(schedule.DateLayout)

	appt := models.Appointment{
		ProfessionalID: professional.ID,
		ClientID:       client.ID,
		StartTime:      slot.StartTime,
		EndTime:        slot.EndTime,
		Duration:       slotDurationMinutes,
		Date:           dateStr,
	}
	id, err := s.store.AppendAppointment(ctx, appt)
	if err != nil {
		if errors.Is(err, store.ErrConflict) {
			return models.Appointment{}, "", ErrSlotAlreadyBooked
		}
		return models.Appointment{}, "", err
	}
	appt.ID = id

	confirmation := fmt.Sprintf(
		"Appointment booked successfully for %s with %s on %s, %s (Week %d) at %s-%s.",
		client.Name, professional.Name, slot.DayOfWeek, dateStr, req.WeekNumber,
		slot.StartTime, slot.EndTime,
	)
	return appt, confirmation, nil
}
