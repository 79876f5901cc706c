package repository

import (
	"gorm.io/gorm"
)

// Repositories bundles all repository instances. It is built once at startup
// and passed to controllers explicitly; there is no package-level instance.
type Repositories struct {
	Event        EventRepository
	Registration RegistrationRepository
	Vendor       VendorRepository
	Pageant      PageantRepository
	Tour         TourRepository
	User         UserRepository
	Sponsor      SponsorRepository
	PaymentQuery PaymentQueryRepository
}

// NewRepositories creates all repository instances against one DB handle
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		Event:        NewEventRepository(db),
		Registration: NewRegistrationRepository(db),
		Vendor:       NewVendorRepository(db),
		Pageant:      NewPageantRepository(db),
		Tour:         NewTourRepository(db),
		User:         NewUserRepository(db),
		Sponsor:      NewSponsorRepository(db),
		PaymentQuery: NewPaymentQueryRepository(db),
	}
}
