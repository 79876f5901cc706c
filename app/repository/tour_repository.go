package repository

import (
	"gorm.io/gorm"

	"github.com/EberechiLabs/FestHive/app/models"
)

// tourRepository implements the TourRepository interface
type tourRepository struct {
	db *gorm.DB
}

// NewTourRepository creates a new tour repository instance
func NewTourRepository(db *gorm.DB) TourRepository {
	return &tourRepository{db: db}
}

// CreatePackage creates a new tour package in the database
func (r *tourRepository) CreatePackage(pkg *models.TourPackage) error {
	return r.db.Create(pkg).Error
}

// GetPackageByID retrieves a tour package by ID
func (r *tourRepository) GetPackageByID(id uint) (*models.TourPackage, error) {
	var pkg models.TourPackage
	err := r.db.First(&pkg, id).Error
	if err != nil {
		return nil, err
	}
	return &pkg, nil
}

// GetPackageBySlug retrieves a tour package by its slug
func (r *tourRepository) GetPackageBySlug(slug string) (*models.TourPackage, error) {
	var pkg models.TourPackage
	err := r.db.Where("slug = ?", slug).First(&pkg).Error
	if err != nil {
		return nil, err
	}
	return &pkg, nil
}

// GetPublishedPackages retrieves all published tour packages
func (r *tourRepository) GetPublishedPackages() ([]models.TourPackage, error) {
	var pkgs []models.TourPackage
	err := r.db.Where("published = ?", true).Order("price_per_head ASC").Find(&pkgs).Error
	return pkgs, err
}

// UpdatePackage updates an existing tour package
func (r *tourRepository) UpdatePackage(pkg *models.TourPackage) error {
	return r.db.Save(pkg).Error
}

// DeletePackage soft deletes a tour package
func (r *tourRepository) DeletePackage(id uint) error {
	return r.db.Delete(&models.TourPackage{}, id).Error
}

// CreateBooking creates a new tour booking in the database
func (r *tourRepository) CreateBooking(booking *models.TourBooking) error {
	return r.db.Create(booking).Error
}

// GetBookingByID retrieves a tour booking by ID
func (r *tourRepository) GetBookingByID(id uint) (*models.TourBooking, error) {
	var booking models.TourBooking
	err := r.db.Preload("TourPackage").First(&booking, id).Error
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

// GetBookingByPaymentReference retrieves the booking tied to a payment reference
func (r *tourRepository) GetBookingByPaymentReference(reference string) (*models.TourBooking, error) {
	var booking models.TourBooking
	err := r.db.Preload("TourPackage").Where("payment_reference = ?", reference).First(&booking).Error
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

// ListBookings retrieves all tour bookings with pagination
func (r *tourRepository) ListBookings(offset, limit int) ([]models.TourBooking, error) {
	var bookings []models.TourBooking
	err := r.db.Preload("TourPackage").Order("created_at DESC").
		Offset(offset).Limit(limit).Find(&bookings).Error
	return bookings, err
}

// UpdateBookingStatus sets the status of a tour booking
func (r *tourRepository) UpdateBookingStatus(id uint, status string) error {
	return r.db.Model(&models.TourBooking{}).Where("id = ?", id).
		Update("status", status).Error
}

// UpdateBookingPaymentReference attaches the ledger reference to a booking
func (r *tourRepository) UpdateBookingPaymentReference(id uint, reference string) error {
	return r.db.Model(&models.TourBooking{}).Where("id = ?", id).
		Update("payment_reference", reference).Error
}

// CountBookings returns the total number of tour bookings
func (r *tourRepository) CountBookings() (int64, error) {
	var count int64
	err := r.db.Model(&models.TourBooking{}).Count(&count).Error
	return count, err
}
