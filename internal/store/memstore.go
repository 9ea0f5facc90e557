package store

import (
	"context"
	"sort"
	"strings"
	"sync"

	"booking-agent-server/internal/models"
)

// MemStore keeps all domain records in memory. It is the default store for
// single-process runs and for tests.
type MemStore struct {
	mu            sync.Mutex
	professionals []models.Professional
	clients       []models.Client
	timeslots     []models.TimeSlot
	appointments  []models.Appointment
	nextApptID    int
}

// NewMemStore builds an in-memory store holding the given reference data.
// The appointment ID counter starts above the highest seeded ID so appended
// records never collide with seeds.
func NewMemStore(professionals []models.Professional, clients []models.Client, timeslots []models.TimeSlot, appointments []models.Appointment) *MemStore {
	s := &MemStore{
		professionals: professionals,
		clients:       clients,
		timeslots:     timeslots,
		appointments:  appointments,
		nextApptID:    1,
	}
	for _, a := range appointments {
		if a.ID >= s.nextApptID {
			s.nextApptID = a.ID + 1
		}
	}
	return s
}

func (s *MemStore) FindProfessionalByName(ctx context.Context, name string) (models.Professional, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.professionals {
		if strings.EqualFold(p.Name, strings.TrimSpace(name)) {
			return p, nil
		}
	}
	return models.Professional{}, ErrNotFound
}

func (s *MemStore) ListProfessionals(ctx context.Context) ([]models.Professional, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Professional, len(s.professionals))
	copy(out, s.professionals)
	return out, nil
}

func (s *MemStore) SearchProfessionals(ctx context.Context, c Criteria) ([]models.Professional, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Professional
	for _, p := range s.professionals {
		if c.Location != "" && !strings.Contains(strings.ToLower(p.Location), strings.ToLower(c.Location)) {
			continue
		}
		if c.MaxFee > 0 && p.Fee > c.MaxFee {
			continue
		}
		if c.Specialty != "" && !strings.EqualFold(p.Specialty, c.Specialty) {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

func (s *MemStore) ListSpecialties(ctx context.Context) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	seen := make(map[string]bool)
	var out []string
	for _, p := range s.professionals {
		if p.Specialty == "" || seen[p.Specialty] {
			continue
		}
		seen[p.Specialty] = true
		out = append(out, p.Specialty)
	}
	sort.Strings(out)
	return out, nil
}

func (s *MemStore) FindClientByName(ctx context.Context, name string) (models.Client, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range s.clients {
		if strings.EqualFold(c.Name, strings.TrimSpace(name)) {
			return c, nil
		}
	}
	return models.Client{}, ErrNotFound
}

func (s *MemStore) ListTimeSlots(ctx context.Context, professionalID int) ([]models.TimeSlot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.TimeSlot
	for _, t := range s.timeslots {
		if t.ProfessionalID == professionalID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (s *MemStore) ListAppointments(ctx context.Context, professionalID int) ([]models.Appointment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Appointment
	for _, a := range s.appointments {
		if a.ProfessionalID == professionalID {
			out = append(out, a)
		}
	}
	return out, nil
}

// AppendAppointment assigns a fresh ID and appends the record. The conflict
// re-check runs under the store mutex so a check-then-append race between
// two callers cannot double-book the same tuple.
func (s *MemStore) AppendAppointment(ctx context.Context, appt models.Appointment) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, a := range s.appointments {
		if a.ProfessionalID == appt.ProfessionalID && a.Date == appt.Date && a.StartTime == appt.StartTime {
			return 0, ErrConflict
		}
	}
	appt.ID = s.nextApptID
	s.nextApptID++
	s.appointments = append(s.appointments, appt)
	return appt.ID, nil
}

func (s *MemStore) CountAppointments(ctx context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.appointments), nil
}
