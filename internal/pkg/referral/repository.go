package referral

import (
	"errors"
	"strings"

	"github.com/EberechiLabs/FestHive/app/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Repository provides DB operations used by the referral service.
type Repository interface {
	Create(code *models.ReferralCode) error
	GetByCode(code string) (*models.ReferralCode, error)
	IncrementStats(code string, earning decimal.Decimal) error
	SetStatus(code, status string) error
	List(offset, limit int) ([]models.ReferralCode, error)
	IsDuplicate(err error) bool
}

type gormRepository struct {
	db *gorm.DB
}

// NewRepository creates a referral repository backed by GORM.
func NewRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func (r *gormRepository) Create(code *models.ReferralCode) error {
	return r.db.Create(code).Error
}

func (r *gormRepository) GetByCode(code string) (*models.ReferralCode, error) {
	var rc models.ReferralCode
	err := r.db.Where("code = ?", code).First(&rc).Error
	if err != nil {
		return nil, err
	}
	return &rc, nil
}

// IncrementStats applies counter and earnings in a single UPDATE expression
// so concurrent bookings citing the same code never read-modify-write over
// each other.
func (r *gormRepository) IncrementStats(code string, earning decimal.Decimal) error {
	tx := r.db.Model(&models.ReferralCode{}).
		Where("code = ?", code).
		Updates(map[string]interface{}{
			"total_referrals": gorm.Expr("total_referrals + 1"),
			"earnings":        gorm.Expr("earnings + ?", earning),
		})
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *gormRepository) SetStatus(code, status string) error {
	tx := r.db.Model(&models.ReferralCode{}).
		Where("code = ?", code).
		Update("status", status)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *gormRepository) List(offset, limit int) ([]models.ReferralCode, error) {
	var codes []models.ReferralCode
	err := r.db.Order("created_at DESC").Offset(offset).Limit(limit).Find(&codes).Error
	return codes, err
}

// IsDuplicate recognizes the duplicate-key error on the unique code index.
func (r *gormRepository) IsDuplicate(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	return strings.Contains(strings.ToLower(err.Error()), "duplicate")
}
