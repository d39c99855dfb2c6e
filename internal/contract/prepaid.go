package contract

import (
	"fmt"

	"telecom-billing/internal/calls"
)

// prepaidPolicy prices calls against a non-negative credit balance.
//
// Overdraw policy (documented, deterministic): a call whose full cost exceeds
// the remaining credit is refused. It contributes 0 to the bill, shows up as
// a zero-amount line item noting the shortfall, and leaves the balance
// untouched. There is no partial charge and the balance never goes negative.
//
// When finalization finds the credit below the configured threshold, a top-up
// is billed as a separate line item and the same amount is added to the
// credit carried into the next period.

type prepaidPolicy struct{}

func init() { Register(prepaidPolicy{}) }

func (prepaidPolicy) Kind() Kind { return KindPrepaid }

func (prepaidPolicy) ValidateTerms(t Terms) error {
	if err := validateCommonTerms(t); err != nil {
		return err
	}
	if t.TopUpMinor < 0 {
		return fmt.Errorf("%w: top_up_minor must be >= 0", ErrConfiguration)
	}
	if t.LowCreditThresholdMinor < 0 {
		return fmt.Errorf("%w: low_credit_threshold_minor must be >= 0", ErrConfiguration)
	}
	return nil
}

func (prepaidPolicy) PriceCall(t Terms, st State, rec calls.Record) (Charge, State, error) {
	if err := rec.Validate(); err != nil {
		return Charge{}, st, err
	}

	minutes := rec.BilledMinutes()
	cost := int64(minutes) * perMinuteRate(t, rec.Kind == calls.KindLongDistance)

	if cost > st.CreditMinor {
		return Charge{
			BilledMinutes: minutes,
			Refused:       true,
			Note:          fmt.Sprintf("insufficient credit (needed %d, have %d)", cost, st.CreditMinor),
		}, st, nil
	}

	st.CreditMinor -= cost
	return Charge{AmountMinor: cost, BilledMinutes: minutes}, st, nil
}

func (prepaidPolicy) MonthlyCharge(t Terms) int64 {
	return t.MonthlyFeeMinor
}

func (prepaidPolicy) Finalize(t Terms, st State, totalMinor int64) ([]Adjustment, State, error) {
	if t.TopUpMinor > 0 && st.CreditMinor < t.LowCreditThresholdMinor {
		st.CreditMinor += t.TopUpMinor
		return []Adjustment{{Label: "credit top-up", AmountMinor: t.TopUpMinor}}, st, nil
	}
	return nil, st, nil
}
