package contract

import (
	"errors"
	"fmt"
	"time"
)

// Contract is the pricing policy attached to a phone line.
//
// The variant tag (Kind) selects a Policy from the registry; there is no
// inheritance chain. Terms are fixed at signup. State is the only part that
// changes over the contract's life and it is always passed explicitly through
// pricing calls and returned updated; policies never mutate shared state.
//
// Invariant: a phone line holds exactly one contract at a time. Switching
// plans replaces the whole Contract value with a new instance; the variant
// tag of a live contract is never rewritten in place.

type Kind string

const (
	KindPrepaid      Kind = "prepaid"
	KindTerm         Kind = "term"
	KindMonthToMonth Kind = "month_to_month"
)

var (
	ErrUnknownKind   = errors.New("contract: unknown kind")
	ErrConfiguration = errors.New("contract: invalid configuration")
)

// Terms are the rate parameters for a contract. Amounts are minor units.
// Fields beyond the common block apply only to the kind that names them.
type Terms struct {
	Currency string `json:"currency"`

	MonthlyFeeMinor    int64 `json:"monthly_fee_minor"`
	RatePerMinuteMinor int64 `json:"rate_per_minute_minor"`

	// LongDistanceRateMinor optionally prices long-distance calls at a
	// distinct per-minute rate. Zero means the base rate applies.
	LongDistanceRateMinor int64 `json:"long_distance_rate_minor,omitempty"`

	// Term only.
	DurationMonths       int   `json:"duration_months,omitempty"`
	CancellationFeeMinor int64 `json:"cancellation_fee_minor,omitempty"`
	MonthlyDiscountMinor int64 `json:"monthly_discount_minor,omitempty"`
	IncludedMinutes      int   `json:"included_minutes,omitempty"`

	// Prepaid only.
	TopUpMinor              int64 `json:"top_up_minor,omitempty"`
	LowCreditThresholdMinor int64 `json:"low_credit_threshold_minor,omitempty"`
}

// State is the mutable side of a contract. The billing engine receives it,
// threads it through the policy, and returns the updated value to the caller.
// The caller decides when to apply it; nothing in this package writes it back.
type State struct {
	// CreditMinor is the remaining prepaid credit. Never negative: calls that
	// would overdraw are refused, not partially charged.
	CreditMinor int64 `json:"credit_minor,omitempty"`

	// MinutesUsed counts billed minutes consumed against the included-minute
	// allowance in the current period (term contracts). Reset at finalization.
	MinutesUsed int `json:"minutes_used,omitempty"`

	// Cancelled and CancelledAtMonth record a termination request.
	// CancelledAtMonth is months elapsed since the contract start.
	Cancelled        bool `json:"cancelled,omitempty"`
	CancelledAtMonth int  `json:"cancelled_at_month,omitempty"`
}

type Contract struct {
	ID        string    `json:"id"`
	Kind      Kind      `json:"kind"`
	StartedAt time.Time `json:"started_at"`

	Terms Terms `json:"terms"`
	State State `json:"state"`
}

// Validate checks the terms against the kind's policy. It is the fail-fast
// gate the billing engine runs before pricing anything.
func (c *Contract) Validate() error {
	p, ok := PolicyFor(c.Kind)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownKind, c.Kind)
	}
	return p.ValidateTerms(c.Terms)
}

// Cancel marks the contract as terminated at the given month offset from its
// start. The penalty decision happens at bill finalization, not here.
func (c *Contract) Cancel(atMonth int) error {
	if atMonth < 0 {
		return fmt.Errorf("%w: cancellation month must be >= 0", ErrConfiguration)
	}
	c.State.Cancelled = true
	c.State.CancelledAtMonth = atMonth
	return nil
}

func validateCommonTerms(t Terms) error {
	if t.Currency == "" {
		return fmt.Errorf("%w: currency is required", ErrConfiguration)
	}
	if t.RatePerMinuteMinor <= 0 {
		return fmt.Errorf("%w: rate_per_minute_minor must be > 0", ErrConfiguration)
	}
	if t.MonthlyFeeMinor < 0 {
		return fmt.Errorf("%w: monthly_fee_minor must be >= 0", ErrConfiguration)
	}
	if t.LongDistanceRateMinor < 0 {
		return fmt.Errorf("%w: long_distance_rate_minor must be >= 0", ErrConfiguration)
	}
	return nil
}

// perMinuteRate selects the rate for a call kind.
func perMinuteRate(t Terms, longDistance bool) int64 {
	if longDistance && t.LongDistanceRateMinor > 0 {
		return t.LongDistanceRateMinor
	}
	return t.RatePerMinuteMinor
}
