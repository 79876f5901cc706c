// Package reporting holds the back-office list filters and revenue
// aggregations. Everything here is a pure transform over already-fetched
// rows; handlers fetch, filter, and render.
package reporting

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/EberechiLabs/FestHive/app/models"
	"github.com/shopspring/decimal"
)

// Granularity selects the time bucket size for revenue series.
type Granularity string

const (
	Daily   Granularity = "daily"
	Weekly  Granularity = "weekly"
	Monthly Granularity = "monthly"
)

// PaymentFilter narrows a payment list. Zero values mean "no constraint".
// Query is a case-insensitive substring match across customer name, email
// and reference.
type PaymentFilter struct {
	Status      string
	PaymentType string
	Provider    string
	From        time.Time
	To          time.Time
	Query       string
}

// FilterPayments applies the filter with one O(n) scan.
func FilterPayments(records []models.PaymentRecord, f PaymentFilter) []models.PaymentRecord {
	out := make([]models.PaymentRecord, 0, len(records))
	for _, r := range records {
		if f.Status != "" && r.Status != f.Status {
			continue
		}
		if f.PaymentType != "" && r.PaymentType != f.PaymentType {
			continue
		}
		if f.Provider != "" && r.Provider != f.Provider {
			continue
		}
		if !f.From.IsZero() && r.CreatedAt.Before(f.From) {
			continue
		}
		if !f.To.IsZero() && r.CreatedAt.After(f.To) {
			continue
		}
		if !matchesQuery(f.Query, r.CustomerName, r.CustomerEmail, r.Reference, r.SubjectName) {
			continue
		}
		out = append(out, r)
	}
	return out
}

// BookingFilter narrows a tour booking list.
type BookingFilter struct {
	Status string
	From   time.Time
	To     time.Time
	Query  string
}

// FilterBookings applies the filter with one O(n) scan.
func FilterBookings(bookings []models.TourBooking, f BookingFilter) []models.TourBooking {
	out := make([]models.TourBooking, 0, len(bookings))
	for _, b := range bookings {
		if f.Status != "" && b.Status != f.Status {
			continue
		}
		if !f.From.IsZero() && b.CreatedAt.Before(f.From) {
			continue
		}
		if !f.To.IsZero() && b.CreatedAt.After(f.To) {
			continue
		}
		if !matchesQuery(f.Query, b.FullName, b.Email, b.ReferralCode, b.PaymentReference) {
			continue
		}
		out = append(out, b)
	}
	return out
}

// RegistrationFilter narrows an event registration list. Zero values mean
// "no constraint".
type RegistrationFilter struct {
	EventID uint
	Status  string
	From    time.Time
	To      time.Time
	Query   string
}

// FilterRegistrations applies the filter with one O(n) scan.
func FilterRegistrations(regs []models.EventRegistration, f RegistrationFilter) []models.EventRegistration {
	out := make([]models.EventRegistration, 0, len(regs))
	for _, r := range regs {
		if f.EventID != 0 && r.EventID != f.EventID {
			continue
		}
		if f.Status != "" && r.Status != f.Status {
			continue
		}
		if !f.From.IsZero() && r.CreatedAt.Before(f.From) {
			continue
		}
		if !f.To.IsZero() && r.CreatedAt.After(f.To) {
			continue
		}
		if !matchesQuery(f.Query, r.FullName, r.Email, r.PaymentReference) {
			continue
		}
		out = append(out, r)
	}
	return out
}

// RevenueByType sums paid amounts grouped by payment type.
func RevenueByType(records []models.PaymentRecord) map[string]decimal.Decimal {
	out := make(map[string]decimal.Decimal)
	for _, r := range records {
		if r.Status != models.PaymentStatusPaid {
			continue
		}
		out[r.PaymentType] = out[r.PaymentType].Add(r.AmountPaid)
	}
	return out
}

// RevenueBucket is one point of a revenue time series.
type RevenueBucket struct {
	Label   string
	Revenue decimal.Decimal
	Count   int
}

// RevenueBuckets groups paid records into time buckets. Weekly buckets are
// labeled by ISO year-week, monthly by year-month, daily by date.
func RevenueBuckets(records []models.PaymentRecord, g Granularity) []RevenueBucket {
	byLabel := make(map[string]*RevenueBucket)
	for _, r := range records {
		if r.Status != models.PaymentStatusPaid {
			continue
		}
		at := r.CreatedAt
		if r.CompletedAt != nil {
			at = *r.CompletedAt
		}
		label := bucketLabel(at, g)
		b, ok := byLabel[label]
		if !ok {
			b = &RevenueBucket{Label: label}
			byLabel[label] = b
		}
		b.Revenue = b.Revenue.Add(r.AmountPaid)
		b.Count++
	}

	out := make([]RevenueBucket, 0, len(byLabel))
	for _, b := range byLabel {
		out = append(out, *b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Label < out[j].Label })
	return out
}

func bucketLabel(t time.Time, g Granularity) string {
	switch g {
	case Weekly:
		year, week := t.ISOWeek()
		return fmt.Sprintf("%d-W%02d", year, week)
	case Monthly:
		return t.Format("2006-01")
	default:
		return t.Format("2006-01-02")
	}
}

func matchesQuery(query string, fields ...string) bool {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return true
	}
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), q) {
			return true
		}
	}
	return false
}
