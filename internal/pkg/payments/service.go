package payments

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/EberechiLabs/FestHive/app/models"
	"github.com/EberechiLabs/FestHive/internal/pkg/env"
	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"
)

// Confirmer flips the domain record behind a payment (registration, booth,
// pageant entry, tour booking) to confirmed once its payment is paid.
type Confirmer interface {
	ConfirmByReference(reference string) error
	CancelByReference(reference string) error
}

// Notifier fires best-effort follow-ups after a confirmed payment. Errors
// are explicit so callers can decide to log-and-continue; they must never
// roll a payment back.
type Notifier interface {
	PaymentConfirmed(record *models.PaymentRecord) error
}

// Service orchestrates the checkout and verification workflow: pricing,
// reference generation, pending-first persistence, gateway initialization,
// server-side verification and the paid/confirmed hand-off.
type Service struct {
	repo      Repository
	provider  Provider
	confirmer Confirmer
	notifier  Notifier
	validate  *validator.Validate
}

// NewService creates a payment service from injected collaborators.
func NewService(repo Repository, provider Provider, confirmer Confirmer, notifier Notifier) *Service {
	return &Service{
		repo:      repo,
		provider:  provider,
		confirmer: confirmer,
		notifier:  notifier,
		validate:  validator.New(),
	}
}

// NewServiceFromDB creates a payment service from a GORM DB handle and the
// environment-selected gateway.
func NewServiceFromDB(db *gorm.DB, confirmer Confirmer, notifier Notifier) *Service {
	return NewService(NewRepository(db), NewProviderFromEnv(), confirmer, notifier)
}

// BeginCheckout prices the attempt, writes the pending ledger row and opens
// a hosted checkout session. The pending row exists BEFORE the gateway takes
// over, so a verification arriving through any path always finds its ledger
// row. ErrNotConfigured is returned untouched for the degraded mode.
func (s *Service) BeginCheckout(ctx context.Context, cfg CheckoutConfig) (*CheckoutSession, error) {
	if err := s.validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid checkout config: %w", err)
	}
	if cfg.Amount.IsNegative() {
		return nil, errors.New("amount must not be negative")
	}

	schedule := ScheduleFor(cfg.International)
	fee := schedule.Fee(cfg.Amount)
	total := schedule.Total(cfg.Amount)

	reference, err := GenerateReference(cfg.PaymentType, "")
	if err != nil {
		return nil, err
	}

	record := &models.PaymentRecord{
		Reference:     reference,
		Provider:      s.provider.Name(),
		PaymentType:   cfg.PaymentType,
		SubjectID:     cfg.SubjectID,
		SubjectName:   cfg.SubjectName,
		Amount:        cfg.Amount,
		GatewayFee:    fee,
		Currency:      "NGN",
		CustomerName:  cfg.Customer.FullName,
		CustomerEmail: cfg.Customer.Email,
		CustomerPhone: cfg.Customer.Phone,
	}
	if err := s.repo.UpsertPending(record); err != nil {
		return nil, fmt.Errorf("failed to write pending payment: %w", err)
	}

	session, err := s.provider.Initialize(ctx, CheckoutRequest{
		Reference:   reference,
		Total:       total,
		Currency:    "NGN",
		Customer:    cfg.Customer,
		Channels:    ChannelsFor(total),
		CallbackURL: callbackURL(),
		Metadata:    cfg.Metadata,
	})
	if err != nil {
		return nil, err
	}
	session.Fee = fee
	return session, nil
}

// RecordPending writes or refreshes a pending ledger row for a payment
// initiated outside the hosted checkout (box office, bank transfer desk).
// Writes are keyed by reference, so replaying the same request is a no-op
// once the row left pending.
func (s *Service) RecordPending(cfg CheckoutConfig, reference string) (*models.PaymentRecord, error) {
	if err := s.validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid payment record: %w", err)
	}
	if cfg.Amount.IsNegative() {
		return nil, errors.New("amount must not be negative")
	}

	ref := strings.TrimSpace(reference)
	if ref == "" {
		generated, err := GenerateReference(cfg.PaymentType, "")
		if err != nil {
			return nil, err
		}
		ref = generated
	}

	record := &models.PaymentRecord{
		Reference:     ref,
		Provider:      s.provider.Name(),
		PaymentType:   cfg.PaymentType,
		SubjectID:     cfg.SubjectID,
		SubjectName:   cfg.SubjectName,
		Amount:        cfg.Amount,
		GatewayFee:    ScheduleFor(cfg.International).Fee(cfg.Amount),
		Currency:      "NGN",
		CustomerName:  cfg.Customer.FullName,
		CustomerEmail: cfg.Customer.Email,
		CustomerPhone: cfg.Customer.Phone,
	}
	if err := s.repo.UpsertPending(record); err != nil {
		return nil, fmt.Errorf("failed to write pending payment: %w", err)
	}
	return s.repo.GetByReference(ref)
}

// NotifyConfirmed re-fires the best-effort confirmation notification for a
// paid reference. Pending or failed references are rejected.
func (s *Service) NotifyConfirmed(reference string) error {
	record, err := s.repo.GetByReference(strings.TrimSpace(reference))
	if err != nil {
		return err
	}
	if record.Status != models.PaymentStatusPaid {
		return fmt.Errorf("payment %s is %s, not paid", record.Reference, record.Status)
	}
	if s.notifier == nil {
		return nil
	}
	return s.notifier.PaymentConfirmed(record)
}

// VerifyAndRecord is the trusted completion path. It re-checks the
// transaction with the gateway, compares the confirmed amount against the
// ledger and only then flips payment and domain record. Every failure mode
// maps to a user-presentable Outcome; the error return is reserved for
// infrastructure problems the caller may want to log.
func (s *Service) VerifyAndRecord(ctx context.Context, reference string) (*Outcome, error) {
	ref := strings.TrimSpace(reference)
	record, err := s.repo.GetByReference(ref)
	if err != nil {
		if errors.Is(err, ErrUnknownReference) {
			return &Outcome{
				State:     StateFailed,
				Reference: ref,
				Message:   "We could not find this payment. Please contact support with your reference.",
			}, nil
		}
		return nil, err
	}

	// Re-verifying an already settled payment is a no-op success.
	if record.Status == models.PaymentStatusPaid {
		return s.successOutcome(record), nil
	}
	if record.Status == models.PaymentStatusCancelled {
		return s.cancelledOutcome(record), nil
	}

	txn, err := s.provider.Verify(ctx, ref)
	if err != nil {
		// The ledger row stays pending so a later re-verify can settle it.
		return &Outcome{
			State:     StateFailed,
			Reference: ref,
			Message:   "Your payment could not be confirmed. Please contact support with reference " + ref + ".",
		}, fmt.Errorf("%w: %v", ErrVerificationFailed, err)
	}

	if txn.Cancelled() {
		if err := s.repo.MarkCancelled(ref); err != nil {
			return nil, err
		}
		return s.cancelledOutcome(record), nil
	}
	if !txn.Succeeded() {
		if err := s.repo.MarkFailed(ref); err != nil {
			return nil, err
		}
		return &Outcome{
			State:     StateFailed,
			Reference: ref,
			Message:   "The payment was not successful. You have not been charged.",
		}, nil
	}

	// Gateway says success; the confirmed amount must still cover the
	// fee-inclusive total the customer was charged, not just the base price.
	priced := record.Amount.Add(record.GatewayFee)
	if txn.Amount.LessThan(priced) {
		return &Outcome{
			State:     StateFailed,
			Reference: ref,
			Message:   "Your payment could not be confirmed. Please contact support with reference " + ref + ".",
		}, fmt.Errorf("%w: amount mismatch, got %s want at least %s", ErrVerificationFailed, txn.Amount, priced)
	}

	paid, err := s.repo.MarkPaid(ref, txn)
	if err != nil {
		return nil, err
	}

	if err := s.confirmer.ConfirmByReference(ref); err != nil {
		// Money has moved but the domain record did not confirm. This is
		// the one state that must never be conflated with plain success.
		log.Printf("payment %s is paid but domain confirm failed: %v", ref, err)
		return &Outcome{
			State:     StatePaidUnrecorded,
			Reference: ref,
			Amount:    paid.AmountPaid,
			Message:   "Your payment was received but your registration is still being recorded. Please contact support with reference " + ref + ".",
		}, nil
	}

	if s.notifier != nil {
		if err := s.notifier.PaymentConfirmed(paid); err != nil {
			log.Printf("confirmation notification for %s failed: %v", ref, err)
		}
	}

	return s.successOutcome(paid), nil
}

// Cancel marks an attempt abandoned from the gateway's close path. The
// domain record is released as well; nothing else runs.
func (s *Service) Cancel(reference string) (*Outcome, error) {
	ref := strings.TrimSpace(reference)
	record, err := s.repo.GetByReference(ref)
	if err != nil {
		return nil, err
	}
	// A settled payment cannot be cancelled from the close path; telling a
	// charged customer they were not charged would be worse than ignoring
	// the callback.
	if record.Status == models.PaymentStatusPaid {
		return s.successOutcome(record), nil
	}
	if record.Status == models.PaymentStatusPending {
		if err := s.repo.MarkCancelled(ref); err != nil {
			return nil, err
		}
		if err := s.confirmer.CancelByReference(ref); err != nil {
			log.Printf("cancel of domain record for %s failed: %v", ref, err)
		}
	}
	return s.cancelledOutcome(record), nil
}

func (s *Service) successOutcome(record *models.PaymentRecord) *Outcome {
	return &Outcome{
		State:     StateSuccess,
		Reference: record.Reference,
		Amount:    record.AmountPaid,
		Message:   "Payment confirmed. A confirmation email is on its way.",
	}
}

func (s *Service) cancelledOutcome(record *models.PaymentRecord) *Outcome {
	return &Outcome{
		State:     StateCancelled,
		Reference: record.Reference,
		Message:   "Payment was cancelled. You have not been charged.",
	}
}

func callbackURL() string {
	base := strings.TrimRight(env.GetEnv("PUBLIC_DOMAIN", ""), "/")
	if base == "" {
		return ""
	}
	return base + "/payments/callback"
}
