package repository

import (
	"time"

	"github.com/EberechiLabs/FestHive/app/models"
)

// EventRepository defines the interface for event-related database operations
type EventRepository interface {
	Create(event *models.Event) error
	GetByID(id uint) (*models.Event, error)
	GetBySlug(slug string) (*models.Event, error)
	GetPublished(offset, limit int) ([]models.Event, error)
	GetPublishedByCategory(category string, offset, limit int) ([]models.Event, error)
	GetUpcoming(limit int) ([]models.Event, error)
	List(offset, limit int) ([]models.Event, error)
	Update(event *models.Event) error
	Delete(id uint) error
	Count() (int64, error)
}

// RegistrationRepository defines the interface for event registration operations
type RegistrationRepository interface {
	Create(reg *models.EventRegistration) error
	GetByID(id uint) (*models.EventRegistration, error)
	GetByPaymentReference(reference string) (*models.EventRegistration, error)
	GetByEventID(eventID uint, offset, limit int) ([]models.EventRegistration, error)
	List(offset, limit int) ([]models.EventRegistration, error)
	ListBetween(start, end time.Time) ([]models.EventRegistration, error)
	UpdateStatus(id uint, status string) error
	UpdatePaymentReference(id uint, reference string) error
	CountByEventID(eventID uint) (int64, error)
	CountConfirmedTickets(eventID uint) (int64, error)
}

// VendorRepository defines the interface for vendor application operations
type VendorRepository interface {
	Create(app *models.VendorApplication) error
	GetByID(id uint) (*models.VendorApplication, error)
	GetByPaymentReference(reference string) (*models.VendorApplication, error)
	List(offset, limit int) ([]models.VendorApplication, error)
	ListByStatus(status string, offset, limit int) ([]models.VendorApplication, error)
	Update(app *models.VendorApplication) error
	UpdateStatus(id uint, status string) error
	Count() (int64, error)
}

// PageantRepository defines the interface for pageant contestant operations
type PageantRepository interface {
	Create(contestant *models.PageantContestant) error
	GetByID(id uint) (*models.PageantContestant, error)
	GetByPaymentReference(reference string) (*models.PageantContestant, error)
	List(offset, limit int) ([]models.PageantContestant, error)
	ListConfirmed() ([]models.PageantContestant, error)
	Update(contestant *models.PageantContestant) error
	UpdateStatus(id uint, status string) error
	Count() (int64, error)
}

// TourRepository defines the interface for tour package and booking operations
type TourRepository interface {
	CreatePackage(pkg *models.TourPackage) error
	GetPackageByID(id uint) (*models.TourPackage, error)
	GetPackageBySlug(slug string) (*models.TourPackage, error)
	GetPublishedPackages() ([]models.TourPackage, error)
	UpdatePackage(pkg *models.TourPackage) error
	DeletePackage(id uint) error

	CreateBooking(booking *models.TourBooking) error
	GetBookingByID(id uint) (*models.TourBooking, error)
	GetBookingByPaymentReference(reference string) (*models.TourBooking, error)
	ListBookings(offset, limit int) ([]models.TourBooking, error)
	UpdateBookingStatus(id uint, status string) error
	UpdateBookingPaymentReference(id uint, reference string) error
	CountBookings() (int64, error)
}

// UserRepository defines the interface for staff account operations
type UserRepository interface {
	Create(user *models.User) error
	GetByID(id uint) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	GetByOAuthSubject(provider, subject string) (*models.User, error)
	Update(user *models.User) error
	TouchLastLogin(id uint) error
	List(offset, limit int) ([]models.User, error)
	Count() (int64, error)
}

// SponsorRepository defines the interface for sponsor content operations
type SponsorRepository interface {
	Create(sponsor *models.Sponsor) error
	GetByID(id uint) (*models.Sponsor, error)
	GetPublished() ([]models.Sponsor, error)
	List(offset, limit int) ([]models.Sponsor, error)
	Update(sponsor *models.Sponsor) error
	Delete(id uint) error
}

// PaymentQueryRepository defines read access to the payment ledger for the
// admin area. Writes go through the payment service only.
type PaymentQueryRepository interface {
	GetByReference(reference string) (*models.PaymentRecord, error)
	List(offset, limit int) ([]models.PaymentRecord, error)
	ListBetween(start, end time.Time) ([]models.PaymentRecord, error)
	CountByStatus(status string) (int64, error)
}
