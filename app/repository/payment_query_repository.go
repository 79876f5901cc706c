package repository

import (
	"time"

	"gorm.io/gorm"

	"github.com/EberechiLabs/FestHive/app/models"
)

// paymentQueryRepository implements read-only access to the payment ledger
type paymentQueryRepository struct {
	db *gorm.DB
}

// NewPaymentQueryRepository creates a new payment query repository instance
func NewPaymentQueryRepository(db *gorm.DB) PaymentQueryRepository {
	return &paymentQueryRepository{db: db}
}

func (r *paymentQueryRepository) GetByReference(reference string) (*models.PaymentRecord, error) {
	var record models.PaymentRecord
	err := r.db.Where("reference = ?", reference).First(&record).Error
	if err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *paymentQueryRepository) List(offset, limit int) ([]models.PaymentRecord, error) {
	var records []models.PaymentRecord
	err := r.db.Order("created_at DESC").Offset(offset).Limit(limit).Find(&records).Error
	return records, err
}

// ListBetween retrieves payment records created in a time window
func (r *paymentQueryRepository) ListBetween(start, end time.Time) ([]models.PaymentRecord, error) {
	var records []models.PaymentRecord
	err := r.db.Where("created_at BETWEEN ? AND ?", start, end).
		Order("created_at DESC").Find(&records).Error
	return records, err
}

func (r *paymentQueryRepository) CountByStatus(status string) (int64, error) {
	var count int64
	err := r.db.Model(&models.PaymentRecord{}).Where("status = ?", status).Count(&count).Error
	return count, err
}
