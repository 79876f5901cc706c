package payments

import (
	"errors"
	"time"

	"github.com/EberechiLabs/FestHive/app/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Repository provides the ledger operations used by the payment service.
type Repository interface {
	UpsertPending(record *models.PaymentRecord) error
	GetByReference(reference string) (*models.PaymentRecord, error)
	MarkPaid(reference string, txn *VerifiedTransaction) (*models.PaymentRecord, error)
	MarkFailed(reference string) error
	MarkCancelled(reference string) error
}

type gormRepository struct {
	db *gorm.DB
}

// NewRepository creates a payment repository backed by GORM.
func NewRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

// UpsertPending writes the pending ledger row before checkout opens, keyed
// by reference. A retried begin-checkout with the same reference updates the
// pending row instead of duplicating it; rows that already reached a
// terminal status are left untouched.
func (r *gormRepository) UpsertPending(record *models.PaymentRecord) error {
	record.Status = models.PaymentStatusPending
	if err := r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "reference"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"amount":         record.Amount,
			"gateway_fee":    record.GatewayFee,
			"channel":        record.Channel,
			"customer_name":  record.CustomerName,
			"customer_email": record.CustomerEmail,
			"customer_phone": record.CustomerPhone,
			"updated_at":     time.Now(),
		}),
		Where: clause.Where{Exprs: []clause.Expression{
			clause.Eq{Column: clause.Column{Table: "payment_records", Name: "status"}, Value: models.PaymentStatusPending},
		}},
	}).Create(record).Error; err != nil {
		return err
	}

	return r.db.Where("reference = ?", record.Reference).First(record).Error
}

func (r *gormRepository) GetByReference(reference string) (*models.PaymentRecord, error) {
	var record models.PaymentRecord
	err := r.db.Where("reference = ?", reference).First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUnknownReference
		}
		return nil, err
	}
	return &record, nil
}

// MarkPaid flips a record to paid with the gateway-confirmed figures. The
// WHERE clause makes the flip idempotent: a record already paid is returned
// unchanged, so re-verification never double-applies.
func (r *gormRepository) MarkPaid(reference string, txn *VerifiedTransaction) (*models.PaymentRecord, error) {
	now := time.Now()
	updates := map[string]interface{}{
		"status":           models.PaymentStatusPaid,
		"gateway_txn_id":   txn.GatewayTxnID,
		"amount_paid":      txn.Amount,
		"gateway_fee":      txn.Fee,
		"channel":          txn.Channel,
		"gateway_metadata": txn.RawMetadata,
		"completed_at":     &now,
	}
	err := r.db.Model(&models.PaymentRecord{}).
		Where("reference = ? AND status = ?", reference, models.PaymentStatusPending).
		Updates(updates).Error
	if err != nil {
		return nil, err
	}
	return r.GetByReference(reference)
}

func (r *gormRepository) MarkFailed(reference string) error {
	return r.markTerminal(reference, models.PaymentStatusFailed)
}

func (r *gormRepository) MarkCancelled(reference string) error {
	return r.markTerminal(reference, models.PaymentStatusCancelled)
}

func (r *gormRepository) markTerminal(reference, status string) error {
	return r.db.Model(&models.PaymentRecord{}).
		Where("reference = ? AND status = ?", reference, models.PaymentStatusPending).
		Update("status", status).Error
}
