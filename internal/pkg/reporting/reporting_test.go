package reporting

import (
	"testing"
	"time"

	"github.com/EberechiLabs/FestHive/app/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func paidRecord(ref, ptype, name string, amount int64, at time.Time) models.PaymentRecord {
	return models.PaymentRecord{
		Reference:    ref,
		PaymentType:  ptype,
		CustomerName: name,
		Status:       models.PaymentStatusPaid,
		AmountPaid:   decimal.NewFromInt(amount),
		CreatedAt:    at,
		CompletedAt:  &at,
	}
}

func TestFilterBookingsByStatus(t *testing.T) {
	bookings := []models.TourBooking{
		{FullName: "Ada Obi", Status: models.RegistrationStatusPending},
		{FullName: "Bola Ade", Status: models.RegistrationStatusPending},
		{FullName: "Chike Nwosu", Status: models.RegistrationStatusConfirmed},
	}

	got := FilterBookings(bookings, BookingFilter{Status: "confirmed"})
	assert.Len(t, got, 1)
	assert.Equal(t, "Chike Nwosu", got[0].FullName)
}

func TestFilterBookingsFreeTextCaseInsensitive(t *testing.T) {
	bookings := []models.TourBooking{
		{FullName: "Ada Obi", Email: "ada@example.com"},
		{FullName: "Chike Nwosu", Email: "chike@example.com"},
	}

	got := FilterBookings(bookings, BookingFilter{Query: "CHIKE"})
	assert.Len(t, got, 1)
	assert.Equal(t, "Chike Nwosu", got[0].FullName)

	got = FilterBookings(bookings, BookingFilter{Query: "nwosu"})
	assert.Len(t, got, 1)
}

func TestFilterRegistrations(t *testing.T) {
	now := time.Date(2026, 2, 10, 12, 0, 0, 0, time.UTC)
	regs := []models.EventRegistration{
		{EventID: 1, FullName: "Ada Obi", Email: "ada@example.com", PaymentReference: "REF1", Status: models.RegistrationStatusConfirmed, CreatedAt: now},
		{EventID: 1, FullName: "Bola Ade", Email: "bola@example.com", Status: models.RegistrationStatusPending, CreatedAt: now.AddDate(0, 0, -30)},
		{EventID: 2, FullName: "Chike Nwosu", Email: "chike@example.com", Status: models.RegistrationStatusConfirmed, CreatedAt: now},
	}

	got := FilterRegistrations(regs, RegistrationFilter{EventID: 1})
	assert.Len(t, got, 2)

	got = FilterRegistrations(regs, RegistrationFilter{EventID: 1, Status: models.RegistrationStatusConfirmed})
	assert.Len(t, got, 1)
	assert.Equal(t, "Ada Obi", got[0].FullName)

	got = FilterRegistrations(regs, RegistrationFilter{From: now.AddDate(0, 0, -1)})
	assert.Len(t, got, 2) // the month-old pending row falls out

	got = FilterRegistrations(regs, RegistrationFilter{Query: "ref1"})
	assert.Len(t, got, 1)

	got = FilterRegistrations(regs, RegistrationFilter{Query: "nwosu"})
	assert.Len(t, got, 1)
	assert.Equal(t, uint(2), got[0].EventID)
}

func TestFilterPayments(t *testing.T) {
	now := time.Date(2026, 2, 10, 12, 0, 0, 0, time.UTC)
	records := []models.PaymentRecord{
		paidRecord("REF1", models.PaymentTypeEventRegistration, "Ada Obi", 25475, now),
		paidRecord("REF2", models.PaymentTypeVendorBooth, "Bola Ade", 50000, now.AddDate(0, 0, -10)),
		{Reference: "REF3", PaymentType: models.PaymentTypeEventRegistration, CustomerName: "Chike Nwosu", Status: models.PaymentStatusFailed, CreatedAt: now},
	}

	got := FilterPayments(records, PaymentFilter{Status: models.PaymentStatusPaid})
	assert.Len(t, got, 2)

	got = FilterPayments(records, PaymentFilter{PaymentType: models.PaymentTypeEventRegistration, Status: models.PaymentStatusPaid})
	assert.Len(t, got, 1)
	assert.Equal(t, "REF1", got[0].Reference)

	got = FilterPayments(records, PaymentFilter{From: now.AddDate(0, 0, -1)})
	assert.Len(t, got, 2) // REF2 is too old

	got = FilterPayments(records, PaymentFilter{Query: "ref2"})
	assert.Len(t, got, 1)
}

func TestRevenueByType(t *testing.T) {
	now := time.Now()
	records := []models.PaymentRecord{
		paidRecord("REF1", models.PaymentTypeEventRegistration, "a", 1000, now),
		paidRecord("REF2", models.PaymentTypeEventRegistration, "b", 2000, now),
		paidRecord("REF3", models.PaymentTypeTourBooking, "c", 500000, now),
		{Reference: "REF4", PaymentType: models.PaymentTypeTourBooking, Status: models.PaymentStatusPending, AmountPaid: decimal.NewFromInt(999)},
	}

	rev := RevenueByType(records)
	assert.True(t, rev[models.PaymentTypeEventRegistration].Equal(decimal.NewFromInt(3000)))
	assert.True(t, rev[models.PaymentTypeTourBooking].Equal(decimal.NewFromInt(500000)))
}

func TestRevenueBuckets(t *testing.T) {
	day1 := time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC)
	day2 := time.Date(2026, 2, 2, 10, 0, 0, 0, time.UTC)
	march := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	records := []models.PaymentRecord{
		paidRecord("REF1", "general", "a", 100, day1),
		paidRecord("REF2", "general", "b", 200, day1),
		paidRecord("REF3", "general", "c", 300, day2),
		paidRecord("REF4", "general", "d", 400, march),
	}

	daily := RevenueBuckets(records, Daily)
	assert.Len(t, daily, 3)
	assert.Equal(t, "2026-02-01", daily[0].Label)
	assert.True(t, daily[0].Revenue.Equal(decimal.NewFromInt(300)))
	assert.Equal(t, 2, daily[0].Count)

	monthly := RevenueBuckets(records, Monthly)
	assert.Len(t, monthly, 2)
	assert.Equal(t, "2026-02", monthly[0].Label)
	assert.True(t, monthly[0].Revenue.Equal(decimal.NewFromInt(600)))

	weekly := RevenueBuckets(records, Weekly)
	assert.NotEmpty(t, weekly)
	assert.Contains(t, weekly[0].Label, "-W")
}
