package models

// Professional represents a bookable professional. Professionals are static
// reference data created at process start and never mutated afterwards.
type Professional struct {
	ID        int    `gorm:"primaryKey" json:"id"`
	Name      string `gorm:"size:100;index" json:"name"`
	Phone     string `gorm:"size:20" json:"phone"`
	Email     string `gorm:"size:255" json:"email"`
	Fee       int    `json:"fee"`
	Location  string `gorm:"size:100" json:"location"`
	Specialty string `gorm:"size:100" json:"specialty,omitempty"`
}
