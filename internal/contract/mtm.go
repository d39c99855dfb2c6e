package contract

import (
	"telecom-billing/internal/calls"
)

// mtmPolicy is the month-to-month plan: no lock-in, no penalty, a flat
// monthly fee and typically a higher per-minute rate than term to compensate.

type mtmPolicy struct{}

func init() { Register(mtmPolicy{}) }

func (mtmPolicy) Kind() Kind { return KindMonthToMonth }

func (mtmPolicy) ValidateTerms(t Terms) error {
	return validateCommonTerms(t)
}

func (mtmPolicy) PriceCall(t Terms, st State, rec calls.Record) (Charge, State, error) {
	if err := rec.Validate(); err != nil {
		return Charge{}, st, err
	}
	minutes := rec.BilledMinutes()
	cost := int64(minutes) * perMinuteRate(t, rec.Kind == calls.KindLongDistance)
	return Charge{AmountMinor: cost, BilledMinutes: minutes}, st, nil
}

func (mtmPolicy) MonthlyCharge(t Terms) int64 {
	return t.MonthlyFeeMinor
}

func (mtmPolicy) Finalize(t Terms, st State, totalMinor int64) ([]Adjustment, State, error) {
	return nil, st, nil
}
