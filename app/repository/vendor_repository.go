package repository

import (
	"gorm.io/gorm"

	"github.com/EberechiLabs/FestHive/app/models"
)

// vendorRepository implements the VendorRepository interface
type vendorRepository struct {
	db *gorm.DB
}

// NewVendorRepository creates a new vendor repository instance
func NewVendorRepository(db *gorm.DB) VendorRepository {
	return &vendorRepository{db: db}
}

// Create creates a new vendor application in the database
func (r *vendorRepository) Create(app *models.VendorApplication) error {
	return r.db.Create(app).Error
}

// GetByID retrieves a vendor application by its ID
func (r *vendorRepository) GetByID(id uint) (*models.VendorApplication, error) {
	var app models.VendorApplication
	err := r.db.First(&app, id).Error
	if err != nil {
		return nil, err
	}
	return &app, nil
}

// GetByPaymentReference retrieves the application tied to a payment reference
func (r *vendorRepository) GetByPaymentReference(reference string) (*models.VendorApplication, error) {
	var app models.VendorApplication
	err := r.db.Where("payment_reference = ?", reference).First(&app).Error
	if err != nil {
		return nil, err
	}
	return &app, nil
}

// List retrieves all vendor applications with pagination
func (r *vendorRepository) List(offset, limit int) ([]models.VendorApplication, error) {
	var apps []models.VendorApplication
	err := r.db.Order("created_at DESC").Offset(offset).Limit(limit).Find(&apps).Error
	return apps, err
}

// ListByStatus retrieves vendor applications in one status
func (r *vendorRepository) ListByStatus(status string, offset, limit int) ([]models.VendorApplication, error) {
	var apps []models.VendorApplication
	err := r.db.Where("status = ?", status).
		Order("created_at DESC").Offset(offset).Limit(limit).Find(&apps).Error
	return apps, err
}

// Update updates an existing vendor application
func (r *vendorRepository) Update(app *models.VendorApplication) error {
	return r.db.Save(app).Error
}

// UpdateStatus sets the status of a vendor application
func (r *vendorRepository) UpdateStatus(id uint, status string) error {
	return r.db.Model(&models.VendorApplication{}).Where("id = ?", id).
		Update("status", status).Error
}

// Count returns the total number of vendor applications
func (r *vendorRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.VendorApplication{}).Count(&count).Error
	return count, err
}
