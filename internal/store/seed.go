package store

import "booking-agent-server/internal/models"

// SeedProfessionals returns the demo professional roster.
func SeedProfessionals() []models.Professional {
	return []models.Professional{
		{ID: 1, Name: "Ali", Phone: "01123456789", Fee: 100, Location: "Beirut", Specialty: "Cardiology"},
		{ID: 2, Name: "Malik", Phone: "01123456789", Fee: 50, Location: "Beirut", Specialty: "Dermatology"},
		{ID: 3, Name: "Fatima", Phone: "01123456789", Fee: 70, Location: "Byblos", Specialty: "Pediatrics"},
		{ID: 4, Name: "Sara", Phone: "01123456789", Fee: 120, Location: "Saida", Specialty: "Neurology"},
		{ID: 5, Name: "Mohamed", Phone: "01123456789", Fee: 90, Location: "Tyre", Specialty: "Cardiology"},
	}
}

// SeedTimeSlots returns the weekly template slots for the demo roster.
func SeedTimeSlots() []models.TimeSlot {
	return []models.TimeSlot{
		{ID: 1, ProfessionalID: 1, StartTime: "09:00", EndTime: "10:00", DayOfWeek: "Monday", Available: true},
		{ID: 2, ProfessionalID: 1, StartTime: "10:00", EndTime: "11:00", DayOfWeek: "Monday", Available: true},
		{ID: 3, ProfessionalID: 2, StartTime: "10:00", EndTime: "11:00", DayOfWeek: "Tuesday", Available: true},
		{ID: 4, ProfessionalID: 3, StartTime: "10:00", EndTime: "11:00", DayOfWeek: "Monday", Available: true},
		{ID: 5, ProfessionalID: 4, StartTime: "10:00", EndTime: "11:00", DayOfWeek: "Wednesday", Available: true},
		{ID: 6, ProfessionalID: 5, StartTime: "10:00", EndTime: "11:00", DayOfWeek: "Tuesday", Available: true},
		{ID: 7, ProfessionalID: 1, StartTime: "11:00", EndTime: "12:00", DayOfWeek: "Thursday", Available: true},
		{ID: 8, ProfessionalID: 2, StartTime: "11:00", EndTime: "12:00", DayOfWeek: "Wednesday", Available: true},
		{ID: 9, ProfessionalID: 3, StartTime: "11:00", EndTime: "12:00", DayOfWeek: "Monday", Available: true},
		{ID: 10, ProfessionalID: 4, StartTime: "11:00", EndTime: "12:00", DayOfWeek: "Thursday", Available: true},
	}
}

// SeedClients returns the demo client list.
func SeedClients() []models.Client {
	return []models.Client{
		{ID: 1, Name: "Ali", Phone: "01123456789", Age: 25},
		{ID: 2, Name: "Malik", Phone: "01123456789", Age: 26},
		{ID: 3, Name: "Fatima", Phone: "01123456789", Age: 27},
		{ID: 4, Name: "Sara", Phone: "01123456789", Age: 28},
	}
}

// SeedAppointments returns pre-existing bookings so some template slots are
// already consumed.
func SeedAppointments() []models.Appointment {
	return []models.Appointment{
		{ID: 1, ProfessionalID: 1, ClientID: 1, StartTime: "10:00", EndTime: "11:00", Duration: 60, Date: "2025-12-15"},
		{ID: 2, ProfessionalID: 2, ClientID: 2, StartTime: "10:00", EndTime: "11:00", Duration: 60, Date: "2025-12-22"},
		{ID: 3, ProfessionalID: 3, ClientID: 3, StartTime: "10:00", EndTime: "11:00", Duration: 60, Date: "2025-12-01"},
		{ID: 4, ProfessionalID: 4, ClientID: 4, StartTime: "10:00", EndTime: "11:00", Duration: 60, Date: "2025-12-03"},
		{ID: 5, ProfessionalID: 4, ClientID: 4, StartTime: "11:00", EndTime: "12:00", Duration: 60, Date: "2025-12-04"},
		{ID: 6, ProfessionalID: 1, ClientID: 2, StartTime: "11:00", EndTime: "12:00", Duration: 60, Date: "2025-12-18"},
		{ID: 7, ProfessionalID: 2, ClientID: 2, StartTime: "10:00", EndTime: "11:00", Duration: 60, Date: "2026-01-27"},
	}
}

// NewSeededMemStore builds a MemStore holding the demo data set.
func NewSeededMemStore() *MemStore {
	return NewMemStore(SeedProfessionals(), SeedClients(), SeedTimeSlots(), SeedAppointments())
}
