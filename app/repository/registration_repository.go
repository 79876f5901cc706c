package repository

import (
	"time"

	"gorm.io/gorm"

	"github.com/EberechiLabs/FestHive/app/models"
)

// registrationRepository implements the RegistrationRepository interface
type registrationRepository struct {
	db *gorm.DB
}

// NewRegistrationRepository creates a new registration repository instance
func NewRegistrationRepository(db *gorm.DB) RegistrationRepository {
	return &registrationRepository{db: db}
}

// Create creates a new event registration in the database
func (r *registrationRepository) Create(reg *models.EventRegistration) error {
	return r.db.Create(reg).Error
}

// GetByID retrieves a registration by its ID
func (r *registrationRepository) GetByID(id uint) (*models.EventRegistration, error) {
	var reg models.EventRegistration
	err := r.db.Preload("Event").First(&reg, id).Error
	if err != nil {
		return nil, err
	}
	return &reg, nil
}

// GetByPaymentReference retrieves the registration tied to a payment reference
func (r *registrationRepository) GetByPaymentReference(reference string) (*models.EventRegistration, error) {
	var reg models.EventRegistration
	err := r.db.Preload("Event").Where("payment_reference = ?", reference).First(&reg).Error
	if err != nil {
		return nil, err
	}
	return &reg, nil
}

// GetByEventID retrieves registrations for one event with pagination
func (r *registrationRepository) GetByEventID(eventID uint, offset, limit int) ([]models.EventRegistration, error) {
	var regs []models.EventRegistration
	err := r.db.Where("event_id = ?", eventID).
		Order("created_at DESC").Offset(offset).Limit(limit).Find(&regs).Error
	return regs, err
}

// List retrieves all registrations with pagination
func (r *registrationRepository) List(offset, limit int) ([]models.EventRegistration, error) {
	var regs []models.EventRegistration
	err := r.db.Preload("Event").Order("created_at DESC").
		Offset(offset).Limit(limit).Find(&regs).Error
	return regs, err
}

// ListBetween retrieves registrations created in a time window
func (r *registrationRepository) ListBetween(start, end time.Time) ([]models.EventRegistration, error) {
	var regs []models.EventRegistration
	err := r.db.Preload("Event").Where("created_at BETWEEN ? AND ?", start, end).
		Order("created_at DESC").Find(&regs).Error
	return regs, err
}

// UpdateStatus sets the status of a registration
func (r *registrationRepository) UpdateStatus(id uint, status string) error {
	return r.db.Model(&models.EventRegistration{}).Where("id = ?", id).
		Update("status", status).Error
}

// UpdatePaymentReference attaches the ledger reference to a registration
func (r *registrationRepository) UpdatePaymentReference(id uint, reference string) error {
	return r.db.Model(&models.EventRegistration{}).Where("id = ?", id).
		Update("payment_reference", reference).Error
}

// CountByEventID returns the number of registrations for an event
func (r *registrationRepository) CountByEventID(eventID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.EventRegistration{}).Where("event_id = ?", eventID).Count(&count).Error
	return count, err
}

// CountConfirmedTickets sums confirmed ticket counts for capacity checks
func (r *registrationRepository) CountConfirmedTickets(eventID uint) (int64, error) {
	var total int64
	err := r.db.Model(&models.EventRegistration{}).
		Where("event_id = ? AND status = ?", eventID, models.RegistrationStatusConfirmed).
		Select("COALESCE(SUM(ticket_count), 0)").Scan(&total).Error
	return total, err
}
