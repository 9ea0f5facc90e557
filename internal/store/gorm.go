package store

import (
	"context"
	"errors"
	"sort"
	"strings"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"booking-agent-server/internal/models"
)

// GormStore implements Store on top of a MySQL database via GORM. It exists
// for deployments that want bookings to outlive the process; the engines are
// agnostic to which implementation they get.
type GormStore struct {
	db *gorm.DB
}

// OpenGormStore connects to MySQL, migrates the schema and seeds the demo
// reference data when the professionals table is empty.
func OpenGormStore(dsn string) (*GormStore, error) {
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	err = db.AutoMigrate(
		&models.Professional{},
		&models.TimeSlot{},
		&models.Client{},
		&models.Appointment{},
	)
	if err != nil {
		return nil, err
	}

	s := &GormStore{db: db}
	if err := s.seedIfEmpty(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *GormStore) seedIfEmpty() error {
	var count int64
	if err := s.db.Model(&models.Professional{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	return s.db.Transaction(func(tx *gorm.DB) error {
		professionals := SeedProfessionals()
		if err := tx.Create(&professionals).Error; err != nil {
			return err
		}
		timeslots := SeedTimeSlots()
		if err := tx.Create(&timeslots).Error; err != nil {
			return err
		}
		clients := SeedClients()
		if err := tx.Create(&clients).Error; err != nil {
			return err
		}
		appointments := SeedAppointments()
		return tx.Create(&appointments).Error
	})
}

func (s *GormStore) FindProfessionalByName(ctx context.Context, name string) (models.Professional, error) {
	var p models.Professional
	err := s.db.WithContext(ctx).
		Where("LOWER(name) = ?", strings.ToLower(strings.TrimSpace(name))).
		First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Professional{}, ErrNotFound
	}
	return p, err
}

func (s *GormStore) ListProfessionals(ctx context.Context) ([]models.Professional, error) {
	var out []models.Professional
	err := s.db.WithContext(ctx).Order("id asc").Find(&out).Error
	return out, err
}

func (s *GormStore) SearchProfessionals(ctx context.Context, c Criteria) ([]models.Professional, error) {
	q := s.db.WithContext(ctx).Model(&models.Professional{})
	if c.Location != "" {
		q = q.Where("LOWER(location) LIKE ?", "%"+strings.ToLower(c.Location)+"%")
	}
	if c.MaxFee > 0 {
		q = q.Where("fee <= ?", c.MaxFee)
	}
	if c.Specialty != "" {
		q = q.Where("LOWER(specialty) = ?", strings.ToLower(c.Specialty))
	}
	var out []models.Professional
	err := q.Order("id asc").Find(&out).Error
	return out, err
}

func (s *GormStore) ListSpecialties(ctx context.Context) ([]string, error) {
	var out []string
	err := s.db.WithContext(ctx).
		Model(&models.Professional{}).
		Where("specialty <> ''").
		Distinct("specialty").
		Pluck("specialty", &out).Error
	sort.Strings(out)
	return out, err
}

func (s *GormStore) FindClientByName(ctx context.Context, name string) (models.Client, error) {
	var c models.Client
	err := s.db.WithContext(ctx).
		Where("LOWER(name) = ?", strings.ToLower(strings.TrimSpace(name))).
		First(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Client{}, ErrNotFound
	}
	return c, err
}

func (s *GormStore) ListTimeSlots(ctx context.Context, professionalID int) ([]models.TimeSlot, error) {
	var out []models.TimeSlot
	err := s.db.WithContext(ctx).
		Where("professional_id = ?", professionalID).
		Order("id asc").
		Find(&out).Error
	return out, err
}

func (s *GormStore) ListAppointments(ctx context.Context, professionalID int) ([]models.Appointment, error) {
	var out []models.Appointment
	err := s.db.WithContext(ctx).
		Where("professional_id = ?", professionalID).
		Order("date asc, start_time asc").
		Find(&out).Error
	return out, err
}

// AppendAppointment inserts the record inside a transaction. The unique
// index on (professional_id, date, start_time) makes the insert fail closed
// if another writer took the slot between check and insert.
func (s *GormStore) AppendAppointment(ctx context.Context, appt models.Appointment) (int, error) {
	appt.ID = 0 // let the database assign it
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		err := tx.Model(&models.Appointment{}).
			Where("professional_id = ? AND date = ? AND start_time = ?",
				appt.ProfessionalID, appt.Date, appt.StartTime).
			Count(&count).Error
		if err != nil {
			return err
		}
		if count > 0 {
			return ErrConflict
		}
		return tx.Create(&appt).Error
	})
	if err != nil {
		return 0, err
	}
	return appt.ID, nil
}

func (s *GormStore) CountAppointments(ctx context.Context) (int, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.Appointment{}).Count(&count).Error
	return int(count), err
}
