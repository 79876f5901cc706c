package repository

import (
	"gorm.io/gorm"

	"github.com/EberechiLabs/FestHive/app/models"
)

// pageantRepository implements the PageantRepository interface
type pageantRepository struct {
	db *gorm.DB
}

// NewPageantRepository creates a new pageant repository instance
func NewPageantRepository(db *gorm.DB) PageantRepository {
	return &pageantRepository{db: db}
}

// Create creates a new contestant entry in the database
func (r *pageantRepository) Create(contestant *models.PageantContestant) error {
	return r.db.Create(contestant).Error
}

// GetByID retrieves a contestant by ID
func (r *pageantRepository) GetByID(id uint) (*models.PageantContestant, error) {
	var contestant models.PageantContestant
	err := r.db.First(&contestant, id).Error
	if err != nil {
		return nil, err
	}
	return &contestant, nil
}

// GetByPaymentReference retrieves the contestant tied to a payment reference
func (r *pageantRepository) GetByPaymentReference(reference string) (*models.PageantContestant, error) {
	var contestant models.PageantContestant
	err := r.db.Where("payment_reference = ?", reference).First(&contestant).Error
	if err != nil {
		return nil, err
	}
	return &contestant, nil
}

// List retrieves all contestants with pagination
func (r *pageantRepository) List(offset, limit int) ([]models.PageantContestant, error) {
	var contestants []models.PageantContestant
	err := r.db.Order("created_at DESC").Offset(offset).Limit(limit).Find(&contestants).Error
	return contestants, err
}

// ListConfirmed retrieves contestants whose entry fee is paid, for the public
// voting gallery
func (r *pageantRepository) ListConfirmed() ([]models.PageantContestant, error) {
	var contestants []models.PageantContestant
	err := r.db.Where("status = ?", models.RegistrationStatusConfirmed).
		Order("full_name ASC").Find(&contestants).Error
	return contestants, err
}

// Update updates an existing contestant entry
func (r *pageantRepository) Update(contestant *models.PageantContestant) error {
	return r.db.Save(contestant).Error
}

// UpdateStatus sets the status of a contestant entry
func (r *pageantRepository) UpdateStatus(id uint, status string) error {
	return r.db.Model(&models.PageantContestant{}).Where("id = ?", id).
		Update("status", status).Error
}

// Count returns the total number of contestant entries
func (r *pageantRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.PageantContestant{}).Count(&count).Error
	return count, err
}
