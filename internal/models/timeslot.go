package models

// TimeSlot is a recurring weekly availability template entry for a
// professional. It describes a window that repeats every week (day-of-week
// plus start/end time), not a single calendar occurrence.
//
// Invariant: (ProfessionalID, DayOfWeek, StartTime) is unique among slots
// with Available=true.
type TimeSlot struct {
	ID             int    `gorm:"primaryKey" json:"id"`
	ProfessionalID int    `gorm:"index" json:"professionalId"`
	StartTime      string `gorm:"size:5" json:"startTime"` // "HH:MM", 24-hour
	EndTime        string `gorm:"size:5" json:"endTime"`
	DayOfWeek      string `gorm:"size:10" json:"dayOfWeek"`
	Available      bool   `json:"available"`
}
