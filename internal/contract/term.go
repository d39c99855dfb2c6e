package contract

import (
	"fmt"

	"telecom-billing/internal/calls"
)

// termPolicy is the fixed-duration plan: lower per-minute rate, an optional
// included-minute allowance per period, a signup discount off the monthly fee,
// and an early-termination fee if the contract is cancelled before its term
// has elapsed. Cancellation exactly at the boundary month owes no fee.

type termPolicy struct{}

func init() { Register(termPolicy{}) }

func (termPolicy) Kind() Kind { return KindTerm }

func (termPolicy) ValidateTerms(t Terms) error {
	if err := validateCommonTerms(t); err != nil {
		return err
	}
	if t.DurationMonths <= 0 {
		return fmt.Errorf("%w: duration_months must be > 0", ErrConfiguration)
	}
	if t.CancellationFeeMinor < 0 {
		return fmt.Errorf("%w: cancellation_fee_minor must be >= 0", ErrConfiguration)
	}
	if t.MonthlyDiscountMinor < 0 || t.MonthlyDiscountMinor > t.MonthlyFeeMinor {
		return fmt.Errorf("%w: monthly_discount_minor must be within [0, monthly_fee_minor]", ErrConfiguration)
	}
	if t.IncludedMinutes < 0 {
		return fmt.Errorf("%w: included_minutes must be >= 0", ErrConfiguration)
	}
	return nil
}

func (termPolicy) PriceCall(t Terms, st State, rec calls.Record) (Charge, State, error) {
	if err := rec.Validate(); err != nil {
		return Charge{}, st, err
	}

	minutes := rec.BilledMinutes()

	// Consume the included allowance first; only the remainder is billed.
	free := 0
	if remaining := t.IncludedMinutes - st.MinutesUsed; remaining > 0 {
		free = remaining
		if free > minutes {
			free = minutes
		}
	}
	billed := minutes - free
	st.MinutesUsed += minutes

	cost := int64(billed) * perMinuteRate(t, rec.Kind == calls.KindLongDistance)
	return Charge{AmountMinor: cost, BilledMinutes: billed, FreeMinutes: free}, st, nil
}

func (termPolicy) MonthlyCharge(t Terms) int64 {
	return t.MonthlyFeeMinor - t.MonthlyDiscountMinor
}

func (termPolicy) Finalize(t Terms, st State, totalMinor int64) ([]Adjustment, State, error) {
	var adj []Adjustment
	if st.Cancelled && st.CancelledAtMonth < t.DurationMonths && t.CancellationFeeMinor > 0 {
		adj = append(adj, Adjustment{Label: "early termination fee", AmountMinor: t.CancellationFeeMinor})
	}
	// The included-minute allowance is per period.
	st.MinutesUsed = 0
	return adj, st, nil
}
