package payments

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestDomesticFee(t *testing.T) {
	tests := []struct {
		amount string
		want   string
	}{
		{amount: "0", want: "100"},       // flat surcharge applies even at zero
		{amount: "5000", want: "175"},    // 5000*0.015 + 100
		{amount: "25000", want: "475"},   // 25000*0.015 + 100
		{amount: "126666", want: "2000"}, // just at the cap
		{amount: "200000", want: "2000"}, // capped
	}

	for _, tt := range tests {
		got := ComputeFee(decimal.RequireFromString(tt.amount), false)
		if !got.Equal(decimal.RequireFromString(tt.want)) {
			t.Fatalf("ComputeFee(%s, domestic) = %s, want %s", tt.amount, got, tt.want)
		}
	}
}

func TestInternationalFee(t *testing.T) {
	tests := []struct {
		amount string
		want   string
	}{
		{amount: "0", want: "0"},
		{amount: "1000", want: "39"},
		{amount: "200000", want: "2000"}, // capped
	}

	for _, tt := range tests {
		got := ComputeFee(decimal.RequireFromString(tt.amount), true)
		if !got.Equal(decimal.RequireFromString(tt.want)) {
			t.Fatalf("ComputeFee(%s, international) = %s, want %s", tt.amount, got, tt.want)
		}
	}
}

func TestComputeTotal(t *testing.T) {
	got := ComputeTotal(decimal.NewFromInt(25000), false)
	if !got.Equal(decimal.NewFromInt(25475)) {
		t.Fatalf("ComputeTotal(25000, domestic) = %s, want 25475", got)
	}
}

func TestChannelsFor(t *testing.T) {
	low := ChannelsFor(decimal.NewFromInt(5000))
	if low[0] != "bank_transfer" {
		t.Fatalf("expected low amounts to lead with bank_transfer, got %v", low)
	}

	high := ChannelsFor(decimal.NewFromInt(5001))
	if high[0] != "card" {
		t.Fatalf("expected higher amounts to lead with card, got %v", high)
	}
}
