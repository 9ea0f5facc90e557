// Package availability projects a professional's weekly time-slot template
// onto concrete calendar dates and subtracts already-booked appointments.
package availability

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"booking-agent-server/internal/models"
	"booking-agent-server/internal/schedule"
	"booking-agent-server/internal/store"
)

var (
	// ErrProfessionalNotFound means the name matched no professional.
	ErrProfessionalNotFound = errors.New("availability: professional not found")
	// ErrNoTemplate means the professional has no weekly template slots.
	ErrNoTemplate = errors.New("availability: no timeslots configured")
	// ErrNoAvailability means every projected slot was booked, unavailable
	// or in the past.
	ErrNoAvailability = errors.New("availability: no open slots in requested weeks")
)

// OpenSlot is one bookable occurrence on a concrete date.
type OpenSlot struct {
	Date      string `json:"date"` // "YYYY-MM-DD"
	Day       string `json:"day"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}

// Week groups the open slots of one week offset.
type Week struct {
	Offset int        `json:"offset"`
	Label  string     `json:"label"`
	Start  string     `json:"start"`
	End    string     `json:"end"`
	Slots  []OpenSlot `json:"slots"`
}

// Listing is the availability result for one professional across the
// requested week offsets.
type Listing struct {
	Professional models.Professional `json:"professional"`
	Weeks        []Week              `json:"weeks"`
}

// Service computes open slots from the template and existing bookings.
type Service struct {
	store store.Store
	now   func() time.Time
}

// NewService builds an availability service. A nil clock defaults to
// time.Now; tests inject a fixed one.
func NewService(st store.Store, now func() time.Time) *Service {
	if now == nil {
		now = time.Now
	}
	return &Service{store: st, now: now}
}

// SlotsForWeeks resolves the professional by case-insensitive name and
// returns the open slots for each requested week offset (1 = current week
// starting Monday). Slots dated before today are never surfaced.
func (s *Service) SlotsForWeeks(ctx context.Context, professionalName string, weeks []int) (*Listing, error) {
	professional, err := s.store.FindProfessionalByName(ctx, professionalName)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrProfessionalNotFound
		}
		return nil, err
	}

	timeslots, err := s.store.ListTimeSlots(ctx, professional.ID)
	if err != nil {
		return nil, err
	}
	if len(timeslots) == 0 {
		return nil, ErrNoTemplate
	}

	appointments, err := s.store.ListAppointments(ctx, professional.ID)
	if err != nil {
		return nil, err
	}
	booked := make(map[string]bool, len(appointments))
	for _, a := range appointments {
		booked[a.Date+" "+a.StartTime] = true
	}

	today := schedule.StartOfDay(s.now())
	listing := &Listing{Professional: professional}

	for _, weekOffset := range weeks {
		weekStart := schedule.WeekStart(today, weekOffset)
		week := Week{
			Offset: weekOffset,
			Label:  schedule.WeekLabel(weekOffset),
			Start:  weekStart.Format(schedule.DateLayout),
			End:    weekStart.AddDate(0, 0, 6).Format(schedule.DateLayout),
		}

		for _, slot := range timeslots {
			if !slot.Available {
				continue
			}
			idx, ok := schedule.DayIndex(slot.DayOfWeek)
			if !ok {
				continue
			}
			date := weekStart.AddDate(0, 0, idx)
			if date.Before(today) {
				continue
			}
			dateStr := date.Format(schedule.DateLayout)
			if booked[dateStr+" "+slot.StartTime] {
				continue
			}
			week.Slots = append(week.Slots, OpenSlot{
				Date:      dateStr,
				Day:       slot.DayOfWeek,
				StartTime: slot.StartTime,
				EndTime:   slot.EndTime,
			})
		}

		if len(week.Slots) == 0 {
			continue
		}
		sort.Slice(week.Slots, func(i, j int) bool {
			if week.Slots[i].Date != week.Slots[j].Date {
				return week.Slots[i].Date < week.Slots[j].Date
			}
			return week.Slots[i].StartTime < week.Slots[j].StartTime
		})
		listing.Weeks = append(listing.Weeks, week)
	}

	if len(listing.Weeks) == 0 {
		return nil, ErrNoAvailability
	}
	sort.Slice(listing.Weeks, func(i, j int) bool {
		return listing.Weeks[i].Offset < listing.Weeks[j].Offset
	})
	return listing, nil
}

// Render formats a listing into the human-facing text shown to the user.
func (l *Listing) Render() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Available appointments for %s:\n\n", l.Professional.Name)
	for _, week := range l.Weeks {
		fmt.Fprintf(&b, "%s (%s to %s):\n", week.Label, week.Start, week.End)
		for _, slot := range week.Slots {
			fmt.Fprintf(&b, "  - %s, %s: %s - %s\n", slot.Day, slot.Date, slot.StartTime, slot.EndTime)
		}
		b.WriteString("\n")
	}
	return b.String()
}
