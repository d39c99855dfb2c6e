package contract

import (
	"sort"
	"sync"

	"telecom-billing/internal/calls"
)

// Policy is the capability set every contract kind implements.
//
// PriceCall and Finalize are pure with respect to State: they take the current
// state and return the next one. The billing engine owns the thread of state
// through a billing run and the caller owns applying the final state.

type Policy interface {
	Kind() Kind

	// ValidateTerms rejects terms the kind cannot price (missing rates,
	// nonsensical durations). Runs before any computation.
	ValidateTerms(t Terms) error

	// PriceCall prices a single call. A refused call (prepaid shortfall)
	// returns a zero-amount Charge with Refused set, not an error.
	// A negative duration returns calls.ErrNegativeDuration.
	PriceCall(t Terms, st State, rec calls.Record) (Charge, State, error)

	// MonthlyCharge is the recurring fee for the period, discounts applied.
	MonthlyCharge(t Terms) int64

	// Finalize runs after all calls and the monthly charge are on the bill.
	// It returns kind-specific adjustments (early-termination fee, credit
	// top-up) and the state to carry into the next period.
	Finalize(t Terms, st State, totalMinor int64) ([]Adjustment, State, error)
}

// Charge is the priced outcome for one call.
type Charge struct {
	AmountMinor   int64
	BilledMinutes int

	// FreeMinutes is the part of the call covered by an included-minute
	// allowance (term contracts).
	FreeMinutes int

	// Refused marks a prepaid call rejected for insufficient credit. The call
	// still appears on the bill as a zero-amount line item.
	Refused bool
	Note    string
}

// Adjustment is a post-processing line item added at finalization.
type Adjustment struct {
	Label       string
	AmountMinor int64
}

var (
	regMu    sync.RWMutex
	registry = map[Kind]Policy{}
)

// Register adds a policy to the variant registry. Registering the same kind
// twice panics; kinds are wired once at init.
func Register(p Policy) {
	regMu.Lock()
	defer regMu.Unlock()
	if _, dup := registry[p.Kind()]; dup {
		panic("contract: duplicate policy registration for kind " + string(p.Kind()))
	}
	registry[p.Kind()] = p
}

// PolicyFor resolves the policy for a kind.
func PolicyFor(k Kind) (Policy, bool) {
	regMu.RLock()
	defer regMu.RUnlock()
	p, ok := registry[k]
	return p, ok
}

// Kinds lists registered kinds in stable order, for validation messages.
func Kinds() []Kind {
	regMu.RLock()
	defer regMu.RUnlock()
	out := make([]Kind, 0, len(registry))
	for k := range registry {
		out = append(out, k)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
