package models

// Client represents a person booking appointments. Static reference data,
// created at process start.
type Client struct {
	ID    int    `gorm:"primaryKey" json:"id"`
	Name  string `gorm:"size:100;index" json:"name"`
	Phone string `gorm:"size:20" json:"phone"`
	Email string `gorm:"size:255" json:"email"`
	Age   int    `json:"age"`
}
