package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"booking-agent-server/internal/models"
)

func TestFindByNameIsCaseInsensitive(t *testing.T) {
	st := NewSeededMemStore()
	ctx := context.Background()

	p, err := st.FindProfessionalByName(ctx, "  aLi ")
	require.NoError(t, err)
	assert.Equal(t, 1, p.ID)

	_, err = st.FindProfessionalByName(ctx, "Nobody")
	assert.ErrorIs(t, err, ErrNotFound)

	c, err := st.FindClientByName(ctx, "MALIK")
	require.NoError(t, err)
	assert.Equal(t, 2, c.ID)

	_, err = st.FindClientByName(ctx, "Stranger")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSearchProfessionals(t *testing.T) {
	st := NewSeededMemStore()
	ctx := context.Background()

	tests := []struct {
		name     string
		criteria Criteria
		want     []string
	}{
		{"no criteria returns all", Criteria{}, []string{"Ali", "Malik", "Fatima", "Sara", "Mohamed"}},
		{"location substring", Criteria{Location: "beirut"}, []string{"Ali", "Malik"}},
		{"max fee", Criteria{MaxFee: 70}, []string{"Malik", "Fatima"}},
		{"specialty", Criteria{Specialty: "cardiology"}, []string{"Ali", "Mohamed"}},
		{"combined", Criteria{Location: "Beirut", MaxFee: 60}, []string{"Malik"}},
		{"no match", Criteria{Location: "Tripoli"}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := st.SearchProfessionals(ctx, tt.criteria)
			require.NoError(t, err)
			var names []string
			for _, p := range got {
				names = append(names, p.Name)
			}
			assert.Equal(t, tt.want, names)
		})
	}
}

func TestListSpecialtiesDeduplicatesAndSorts(t *testing.T) {
	specialties, err := NewSeededMemStore().ListSpecialties(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"Cardiology", "Dermatology", "Neurology", "Pediatrics"}, specialties)
}

func TestListTimeSlotsFiltersByProfessional(t *testing.T) {
	slots, err := NewSeededMemStore().ListTimeSlots(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, slots, 3)
	for _, s := range slots {
		assert.Equal(t, 1, s.ProfessionalID)
	}
}

func TestAppendAppointmentAssignsMonotonicIDs(t *testing.T) {
	st := NewSeededMemStore()
	ctx := context.Background()

	first, err := st.AppendAppointment(ctx, models.Appointment{
		ProfessionalID: 1, ClientID: 1, StartTime: "09:00", EndTime: "10:00", Duration: 60, Date: "2026-03-09",
	})
	require.NoError(t, err)
	second, err := st.AppendAppointment(ctx, models.Appointment{
		ProfessionalID: 1, ClientID: 2, StartTime: "10:00", EndTime: "11:00", Duration: 60, Date: "2026-03-09",
	})
	require.NoError(t, err)

	// IDs continue above the seeded maximum.
	assert.Greater(t, first, len(SeedAppointments()))
	assert.Equal(t, first+1, second)
}

func TestAppendAppointmentRejectsConflicts(t *testing.T) {
	st := NewSeededMemStore()
	ctx := context.Background()
	appt := models.Appointment{
		ProfessionalID: 1, ClientID: 1, StartTime: "09:00", EndTime: "10:00", Duration: 60, Date: "2026-03-09",
	}

	_, err := st.AppendAppointment(ctx, appt)
	require.NoError(t, err)

	// Same professional, date and start time conflicts even for another client.
	appt.ClientID = 3
	_, err = st.AppendAppointment(ctx, appt)
	assert.ErrorIs(t, err, ErrConflict)

	// A different start time on the same day is fine.
	appt.StartTime = "10:00"
	appt.EndTime = "11:00"
	_, err = st.AppendAppointment(ctx, appt)
	assert.NoError(t, err)

	count, err := st.CountAppointments(ctx)
	require.NoError(t, err)
	assert.Equal(t, len(SeedAppointments())+2, count)
}
