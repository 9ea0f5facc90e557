package models

// Appointment is a concrete booked occurrence of a template slot. Records
// are append-only: there is no update or cancellation operation.
//
// Invariant: no two appointments share the same
// (ProfessionalID, Date, StartTime) tuple.
type Appointment struct {
	ID             int    `gorm:"primaryKey" json:"id"`
	ProfessionalID int    `gorm:"index:idx_booked_slot,unique" json:"professionalId"`
	ClientID       int    `gorm:"index" json:"clientId"`
	StartTime      string `gorm:"size:5;index:idx_booked_slot,unique" json:"startTime"`
	EndTime        string `gorm:"size:5" json:"endTime"`
	Duration       int    `json:"duration"` // minutes
	Date           string `gorm:"size:10;index:idx_booked_slot,unique" json:"date"` // "YYYY-MM-DD"
}
