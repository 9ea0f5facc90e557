package store

import (
	"context"
	"errors"

	"booking-agent-server/internal/models"
)

// ErrNotFound is returned when a lookup matches no record.
var ErrNotFound = errors.New("store: record not found")

// ErrConflict is returned when appending an appointment whose
// (professional, date, start time) tuple is already taken.
var ErrConflict = errors.New("store: appointment slot already taken")

// Criteria filters professionals during search. Zero values mean "no
// constraint" for the corresponding field.
type Criteria struct {
	Location  string
	MaxFee    int
	Specialty string
}

// Store is the domain data store consumed by the availability and booking
// engines. Reads are free-form; the only write is the append of a new
// appointment, which must fail closed on a conflicting tuple.
type Store interface {
	FindProfessionalByName(ctx context.Context, name string) (models.Professional, error)
	ListProfessionals(ctx context.Context) ([]models.Professional, error)
	SearchProfessionals(ctx context.Context, c Criteria) ([]models.Professional, error)
	ListSpecialties(ctx context.Context) ([]string, error)

	FindClientByName(ctx context.Context, name string) (models.Client, error)

	ListTimeSlots(ctx context.Context, professionalID int) ([]models.TimeSlot, error)

	ListAppointments(ctx context.Context, professionalID int) ([]models.Appointment, error)
	AppendAppointment(ctx context.Context, appt models.Appointment) (int, error)
	CountAppointments(ctx context.Context) (int, error)
}
