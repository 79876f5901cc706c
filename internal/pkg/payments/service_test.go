package payments

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/EberechiLabs/FestHive/app/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

type fakeRepo struct {
	records map[string]*models.PaymentRecord
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{records: make(map[string]*models.PaymentRecord)}
}

func (r *fakeRepo) UpsertPending(record *models.PaymentRecord) error {
	record.Status = models.PaymentStatusPending
	if existing, ok := r.records[record.Reference]; ok && existing.IsTerminal() {
		*record = *existing
		return nil
	}
	cp := *record
	r.records[record.Reference] = &cp
	return nil
}

func (r *fakeRepo) GetByReference(reference string) (*models.PaymentRecord, error) {
	rec, ok := r.records[reference]
	if !ok {
		return nil, ErrUnknownReference
	}
	cp := *rec
	return &cp, nil
}

func (r *fakeRepo) MarkPaid(reference string, txn *VerifiedTransaction) (*models.PaymentRecord, error) {
	rec := r.records[reference]
	if rec.Status == models.PaymentStatusPending {
		now := time.Now()
		rec.Status = models.PaymentStatusPaid
		rec.GatewayTxnID = txn.GatewayTxnID
		rec.AmountPaid = txn.Amount
		rec.GatewayFee = txn.Fee
		rec.Channel = txn.Channel
		rec.CompletedAt = &now
	}
	cp := *rec
	return &cp, nil
}

func (r *fakeRepo) MarkFailed(reference string) error {
	return r.markTerminal(reference, models.PaymentStatusFailed)
}

func (r *fakeRepo) MarkCancelled(reference string) error {
	return r.markTerminal(reference, models.PaymentStatusCancelled)
}

func (r *fakeRepo) markTerminal(reference, status string) error {
	if rec, ok := r.records[reference]; ok && rec.Status == models.PaymentStatusPending {
		rec.Status = status
	}
	return nil
}

type fakeProvider struct {
	initErr   error
	verifyTxn *VerifiedTransaction
	verifyErr error
	initCalls int
}

func (p *fakeProvider) Name() string { return models.PaymentProviderPaystack }

func (p *fakeProvider) Initialize(ctx context.Context, req CheckoutRequest) (*CheckoutSession, error) {
	p.initCalls++
	if p.initErr != nil {
		return nil, p.initErr
	}
	return &CheckoutSession{
		Reference:  req.Reference,
		Provider:   p.Name(),
		PaymentURL: "https://checkout.example/" + req.Reference,
		Total:      req.Total,
	}, nil
}

func (p *fakeProvider) Verify(ctx context.Context, reference string) (*VerifiedTransaction, error) {
	if p.verifyErr != nil {
		return nil, p.verifyErr
	}
	txn := *p.verifyTxn
	txn.Reference = reference
	return &txn, nil
}

type fakeConfirmer struct {
	confirmErr error
	confirmed  []string
	cancelled  []string
}

func (c *fakeConfirmer) ConfirmByReference(reference string) error {
	if c.confirmErr != nil {
		return c.confirmErr
	}
	c.confirmed = append(c.confirmed, reference)
	return nil
}

func (c *fakeConfirmer) CancelByReference(reference string) error {
	c.cancelled = append(c.cancelled, reference)
	return nil
}

type fakeNotifier struct {
	notified []string
	err      error
}

func (n *fakeNotifier) PaymentConfirmed(record *models.PaymentRecord) error {
	if n.err != nil {
		return n.err
	}
	n.notified = append(n.notified, record.Reference)
	return nil
}

func testConfig(amount int64) CheckoutConfig {
	return CheckoutConfig{
		PaymentType: models.PaymentTypeEventRegistration,
		SubjectID:   "42",
		SubjectName: "Opening Concert",
		Amount:      decimal.NewFromInt(amount),
		Customer: Customer{
			FullName: "Ngozi Adewale",
			Email:    "ngozi@example.com",
		},
	}
}

func TestBeginCheckoutWritesPendingBeforeGateway(t *testing.T) {
	repo := newFakeRepo()
	provider := &fakeProvider{}
	svc := NewService(repo, provider, &fakeConfirmer{}, &fakeNotifier{})

	session, err := svc.BeginCheckout(context.Background(), testConfig(25000))
	assert.NoError(t, err)
	assert.Equal(t, 1, provider.initCalls)

	record, err := repo.GetByReference(session.Reference)
	assert.NoError(t, err)
	assert.Equal(t, models.PaymentStatusPending, record.Status)
	assert.True(t, record.Amount.Equal(decimal.NewFromInt(25000)))
	assert.True(t, session.Total.Equal(decimal.NewFromInt(25475)), "total %s", session.Total)
	assert.True(t, session.Fee.Equal(decimal.NewFromInt(475)), "fee %s", session.Fee)
}

func TestBeginCheckoutUnconfiguredGateway(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, &fakeProvider{initErr: ErrNotConfigured}, &fakeConfirmer{}, &fakeNotifier{})

	_, err := svc.BeginCheckout(context.Background(), testConfig(1000))
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestBeginCheckoutRejectsNegativeAmount(t *testing.T) {
	svc := NewService(newFakeRepo(), &fakeProvider{}, &fakeConfirmer{}, &fakeNotifier{})
	cfg := testConfig(0)
	cfg.Amount = decimal.NewFromInt(-50)

	_, err := svc.BeginCheckout(context.Background(), cfg)
	assert.Error(t, err)
}

func TestVerifyAndRecordHappyPath(t *testing.T) {
	repo := newFakeRepo()
	confirmer := &fakeConfirmer{}
	notifier := &fakeNotifier{}
	provider := &fakeProvider{verifyTxn: &VerifiedTransaction{
		GatewayTxnID: "991",
		Status:       "success",
		Amount:       decimal.NewFromInt(25475),
		Fee:          decimal.NewFromInt(475),
		Currency:     "NGN",
		Channel:      "card",
	}}
	svc := NewService(repo, provider, confirmer, notifier)

	session, err := svc.BeginCheckout(context.Background(), testConfig(25000))
	assert.NoError(t, err)

	outcome, err := svc.VerifyAndRecord(context.Background(), session.Reference)
	assert.NoError(t, err)
	assert.Equal(t, StateSuccess, outcome.State)

	record, _ := repo.GetByReference(session.Reference)
	assert.Equal(t, models.PaymentStatusPaid, record.Status)
	assert.Equal(t, []string{session.Reference}, confirmer.confirmed)
	assert.Equal(t, []string{session.Reference}, notifier.notified)
}

// Scenario: the client claims success but the gateway does not confirm the
// charge. Nothing may be persisted as paid and no success is presented.
func TestVerifyAndRecordGatewayReportsFailure(t *testing.T) {
	repo := newFakeRepo()
	confirmer := &fakeConfirmer{}
	provider := &fakeProvider{verifyTxn: &VerifiedTransaction{Status: "failed"}}
	svc := NewService(repo, provider, confirmer, &fakeNotifier{})

	session, _ := svc.BeginCheckout(context.Background(), testConfig(25000))
	outcome, err := svc.VerifyAndRecord(context.Background(), session.Reference)
	assert.NoError(t, err)
	assert.Equal(t, StateFailed, outcome.State)

	record, _ := repo.GetByReference(session.Reference)
	assert.Equal(t, models.PaymentStatusFailed, record.Status)
	assert.Empty(t, confirmer.confirmed)
}

func TestVerifyAndRecordVerificationUnreachable(t *testing.T) {
	repo := newFakeRepo()
	provider := &fakeProvider{verifyErr: errors.New("connection reset")}
	svc := NewService(repo, provider, &fakeConfirmer{}, &fakeNotifier{})

	session, _ := svc.BeginCheckout(context.Background(), testConfig(25000))
	outcome, err := svc.VerifyAndRecord(context.Background(), session.Reference)
	assert.ErrorIs(t, err, ErrVerificationFailed)
	assert.Equal(t, StateFailed, outcome.State)

	// Ledger row stays pending so a later re-verification can settle it.
	record, _ := repo.GetByReference(session.Reference)
	assert.Equal(t, models.PaymentStatusPending, record.Status)
}

// The customer is charged the fee-inclusive total, so the guard must reject
// anything below it. A confirmed amount equal to the base price alone (25000
// against a priced 25475) is still a shortfall.
func TestVerifyAndRecordAmountMismatch(t *testing.T) {
	tests := []struct {
		name      string
		confirmed int64
	}{
		{"far below priced", 100},
		{"base amount without fee", 25000},
		{"one naira short of total", 25474},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newFakeRepo()
			provider := &fakeProvider{verifyTxn: &VerifiedTransaction{
				Status: "success",
				Amount: decimal.NewFromInt(tt.confirmed),
			}}
			svc := NewService(repo, provider, &fakeConfirmer{}, &fakeNotifier{})

			session, _ := svc.BeginCheckout(context.Background(), testConfig(25000))
			outcome, err := svc.VerifyAndRecord(context.Background(), session.Reference)
			assert.ErrorIs(t, err, ErrVerificationFailed)
			assert.Equal(t, StateFailed, outcome.State)

			record, _ := repo.GetByReference(session.Reference)
			assert.NotEqual(t, models.PaymentStatusPaid, record.Status)
		})
	}
}

// Scenario: user closes the hosted checkout. Only the cancel path runs and
// no confirmation or notification fires.
func TestCancelPath(t *testing.T) {
	repo := newFakeRepo()
	confirmer := &fakeConfirmer{}
	notifier := &fakeNotifier{}
	svc := NewService(repo, &fakeProvider{}, confirmer, notifier)

	session, _ := svc.BeginCheckout(context.Background(), testConfig(25000))
	outcome, err := svc.Cancel(session.Reference)
	assert.NoError(t, err)
	assert.Equal(t, StateCancelled, outcome.State)

	record, _ := repo.GetByReference(session.Reference)
	assert.Equal(t, models.PaymentStatusCancelled, record.Status)
	assert.Empty(t, confirmer.confirmed)
	assert.Equal(t, []string{session.Reference}, confirmer.cancelled)
	assert.Empty(t, notifier.notified)
}

// A cancel callback arriving after the payment settled must not tell a
// charged customer they were not charged.
func TestCancelAfterPaidReportsSuccess(t *testing.T) {
	repo := newFakeRepo()
	confirmer := &fakeConfirmer{}
	provider := &fakeProvider{verifyTxn: &VerifiedTransaction{
		Status: "success",
		Amount: decimal.NewFromInt(25475),
	}}
	svc := NewService(repo, provider, confirmer, &fakeNotifier{})

	session, _ := svc.BeginCheckout(context.Background(), testConfig(25000))
	_, err := svc.VerifyAndRecord(context.Background(), session.Reference)
	assert.NoError(t, err)

	outcome, err := svc.Cancel(session.Reference)
	assert.NoError(t, err)
	assert.Equal(t, StateSuccess, outcome.State)

	record, _ := repo.GetByReference(session.Reference)
	assert.Equal(t, models.PaymentStatusPaid, record.Status)
	assert.Empty(t, confirmer.cancelled)
}

// Money moved but the domain write failed: the outcome must be the
// distinguishable paid-but-unrecorded warning, not plain success.
func TestVerifyAndRecordPaidButUnrecorded(t *testing.T) {
	repo := newFakeRepo()
	confirmer := &fakeConfirmer{confirmErr: errors.New("db write failed")}
	provider := &fakeProvider{verifyTxn: &VerifiedTransaction{
		Status: "success",
		Amount: decimal.NewFromInt(25475),
	}}
	svc := NewService(repo, provider, confirmer, &fakeNotifier{})

	session, _ := svc.BeginCheckout(context.Background(), testConfig(25000))
	outcome, err := svc.VerifyAndRecord(context.Background(), session.Reference)
	assert.NoError(t, err)
	assert.Equal(t, StatePaidUnrecorded, outcome.State)

	record, _ := repo.GetByReference(session.Reference)
	assert.Equal(t, models.PaymentStatusPaid, record.Status)
}

func TestVerifyAndRecordIdempotentOnPaid(t *testing.T) {
	repo := newFakeRepo()
	notifier := &fakeNotifier{}
	provider := &fakeProvider{verifyTxn: &VerifiedTransaction{
		Status: "success",
		Amount: decimal.NewFromInt(25475),
	}}
	svc := NewService(repo, provider, &fakeConfirmer{}, notifier)

	session, _ := svc.BeginCheckout(context.Background(), testConfig(25000))
	_, err := svc.VerifyAndRecord(context.Background(), session.Reference)
	assert.NoError(t, err)

	// Second verification resolves from the ledger without re-notifying.
	outcome, err := svc.VerifyAndRecord(context.Background(), session.Reference)
	assert.NoError(t, err)
	assert.Equal(t, StateSuccess, outcome.State)
	assert.Len(t, notifier.notified, 1)
}

func TestVerifyAndRecordUnknownReference(t *testing.T) {
	svc := NewService(newFakeRepo(), &fakeProvider{}, &fakeConfirmer{}, &fakeNotifier{})

	outcome, err := svc.VerifyAndRecord(context.Background(), "FESTHIVE_GENERAL_0_zzzzzz")
	assert.NoError(t, err)
	assert.Equal(t, StateFailed, outcome.State)
}

func TestRecordPendingGeneratesReference(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, &fakeProvider{}, &fakeConfirmer{}, &fakeNotifier{})

	record, err := svc.RecordPending(testConfig(12000), "")
	assert.NoError(t, err)
	assert.NotEmpty(t, record.Reference)
	assert.Equal(t, models.PaymentStatusPending, record.Status)

	stored, err := repo.GetByReference(record.Reference)
	assert.NoError(t, err)
	assert.True(t, stored.Amount.Equal(decimal.NewFromInt(12000)))
}

func TestRecordPendingIdempotentOnReference(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, &fakeProvider{}, &fakeConfirmer{}, &fakeNotifier{})

	first, err := svc.RecordPending(testConfig(12000), "EXT-0001")
	assert.NoError(t, err)
	second, err := svc.RecordPending(testConfig(12000), "EXT-0001")
	assert.NoError(t, err)
	assert.Equal(t, first.Reference, second.Reference)
	assert.Len(t, repo.records, 1)
}

func TestNotifyConfirmedRejectsUnpaid(t *testing.T) {
	repo := newFakeRepo()
	notifier := &fakeNotifier{}
	svc := NewService(repo, &fakeProvider{}, &fakeConfirmer{}, notifier)

	record, err := svc.RecordPending(testConfig(12000), "EXT-0002")
	assert.NoError(t, err)

	err = svc.NotifyConfirmed(record.Reference)
	assert.Error(t, err)
	assert.Empty(t, notifier.notified)
}

func TestNotifyConfirmedResendsForPaid(t *testing.T) {
	repo := newFakeRepo()
	notifier := &fakeNotifier{}
	provider := &fakeProvider{verifyTxn: &VerifiedTransaction{
		Status: "success",
		Amount: decimal.NewFromInt(25475),
	}}
	svc := NewService(repo, provider, &fakeConfirmer{}, notifier)

	session, _ := svc.BeginCheckout(context.Background(), testConfig(25000))
	_, err := svc.VerifyAndRecord(context.Background(), session.Reference)
	assert.NoError(t, err)

	err = svc.NotifyConfirmed(session.Reference)
	assert.NoError(t, err)
	assert.Len(t, notifier.notified, 2)
}

func TestNotifyConfirmedUnknownReference(t *testing.T) {
	svc := NewService(newFakeRepo(), &fakeProvider{}, &fakeConfirmer{}, &fakeNotifier{})

	err := svc.NotifyConfirmed("EXT-missing")
	assert.ErrorIs(t, err, ErrUnknownReference)
}
