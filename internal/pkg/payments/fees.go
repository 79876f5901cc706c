package payments

import "github.com/shopspring/decimal"

// FeeSchedule is one gateway pricing rule: percentage rate plus a flat
// surcharge, capped at an absolute maximum. All values are NGN.
type FeeSchedule struct {
	Rate      decimal.Decimal
	Surcharge decimal.Decimal
	Cap       decimal.Decimal
}

var (
	// Domestic NGN card/transfer pricing: 1.5% + 100, capped at 2000.
	DomesticSchedule = FeeSchedule{
		Rate:      decimal.RequireFromString("0.015"),
		Surcharge: decimal.NewFromInt(100),
		Cap:       decimal.NewFromInt(2000),
	}

	// International card pricing: 3.9%, no flat surcharge, same cap.
	InternationalSchedule = FeeSchedule{
		Rate:      decimal.RequireFromString("0.039"),
		Surcharge: decimal.Zero,
		Cap:       decimal.NewFromInt(2000),
	}
)

// lowFeeThreshold is the amount at or below which the checkout leads with
// low-fee channels (bank transfer, USSD) instead of card.
var lowFeeThreshold = decimal.NewFromInt(5000)

// Fee computes the gateway fee for a base amount. The flat surcharge applies
// to any attempted charge, including zero-amount ones; that matches how the
// gateway bills, so computeFee(0) = surcharge. Amounts are assumed
// non-negative, callers validate before pricing.
func (s FeeSchedule) Fee(base decimal.Decimal) decimal.Decimal {
	fee := base.Mul(s.Rate).Add(s.Surcharge)
	if fee.GreaterThan(s.Cap) {
		return s.Cap
	}
	return fee.Round(2)
}

// Total returns base plus the schedule's fee.
func (s FeeSchedule) Total(base decimal.Decimal) decimal.Decimal {
	return base.Add(s.Fee(base)).Round(2)
}

// ScheduleFor selects the schedule for a charge.
func ScheduleFor(international bool) FeeSchedule {
	if international {
		return InternationalSchedule
	}
	return DomesticSchedule
}

// ComputeFee is the convenience form used by controllers.
func ComputeFee(base decimal.Decimal, international bool) decimal.Decimal {
	return ScheduleFor(international).Fee(base)
}

// ComputeTotal returns the amount actually payable at checkout.
func ComputeTotal(base decimal.Decimal, international bool) decimal.Decimal {
	return ScheduleFor(international).Total(base)
}

// ChannelsFor returns the gateway channel priority list for an amount.
// Small amounts favor low-fee channels; larger ones lead with card.
func ChannelsFor(amount decimal.Decimal) []string {
	if amount.LessThanOrEqual(lowFeeThreshold) {
		return []string{"bank_transfer", "ussd", "card"}
	}
	return []string{"card", "bank_transfer", "ussd"}
}
