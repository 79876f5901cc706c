package repository

import (
	"gorm.io/gorm"

	"github.com/EberechiLabs/FestHive/app/models"
)

// sponsorRepository implements the SponsorRepository interface
type sponsorRepository struct {
	db *gorm.DB
}

// NewSponsorRepository creates a new sponsor repository instance
func NewSponsorRepository(db *gorm.DB) SponsorRepository {
	return &sponsorRepository{db: db}
}

func (r *sponsorRepository) Create(sponsor *models.Sponsor) error {
	return r.db.Create(sponsor).Error
}

func (r *sponsorRepository) GetByID(id uint) (*models.Sponsor, error) {
	var sponsor models.Sponsor
	err := r.db.First(&sponsor, id).Error
	if err != nil {
		return nil, err
	}
	return &sponsor, nil
}

// GetPublished retrieves published sponsors ordered by tier for the homepage
func (r *sponsorRepository) GetPublished() ([]models.Sponsor, error) {
	var sponsors []models.Sponsor
	err := r.db.Where("published = ?", true).
		Order("FIELD(tier, 'headline', 'gold', 'silver', 'partner')").
		Find(&sponsors).Error
	return sponsors, err
}

func (r *sponsorRepository) List(offset, limit int) ([]models.Sponsor, error) {
	var sponsors []models.Sponsor
	err := r.db.Order("created_at DESC").Offset(offset).Limit(limit).Find(&sponsors).Error
	return sponsors, err
}

func (r *sponsorRepository) Update(sponsor *models.Sponsor) error {
	return r.db.Save(sponsor).Error
}

func (r *sponsorRepository) Delete(id uint) error {
	return r.db.Delete(&models.Sponsor{}, id).Error
}
