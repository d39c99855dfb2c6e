package billing

import (
	"fmt"
	"time"

	"telecom-billing/internal/calls"
	"telecom-billing/internal/contract"
	"telecom-billing/internal/lines"

	"github.com/google/uuid"
)

// Engine turns a line's call history into a Bill under the line's contract.
//
// The engine is synchronous and deterministic: identical line state and
// period always produce structurally equal bills. Line items are appended in
// a fixed order: calls in insertion order, the monthly charge, then any
// finalization adjustments (penalty, top-up).
//
// The engine never mutates the line or its contract. Prepaid credit and other
// contract state are threaded through the run and returned to the caller,
// who decides whether to apply them. Callers must guarantee the line is not
// mutated concurrently while a bill is being generated for it.

type Engine struct {
	// clock stamps GeneratedAt; injectable for deterministic tests.
	clock func() time.Time
}

func NewEngine() *Engine {
	return &Engine{clock: time.Now}
}

// GenerateBill prices every call on the line for the period and assembles the
// bill. On any invalid call it aborts with a CallError naming the offending
// index; no partial bill is returned. Configuration problems (unknown kind,
// missing rates) fail before any call is priced.
func (e *Engine) GenerateBill(line lines.PhoneLine, period Period) (Bill, contract.State, error) {
	if err := period.Validate(); err != nil {
		return Bill{}, contract.State{}, err
	}
	if line.Contract == nil {
		return Bill{}, contract.State{}, fmt.Errorf("%w: line %s", ErrMissingContract, line.ID)
	}

	ct := line.Contract
	policy, ok := contract.PolicyFor(ct.Kind)
	if !ok {
		return Bill{}, ct.State, fmt.Errorf("%w: %q on line %s", contract.ErrUnknownKind, ct.Kind, line.ID)
	}
	if err := policy.ValidateTerms(ct.Terms); err != nil {
		return Bill{}, ct.State, fmt.Errorf("line %s: %w", line.ID, err)
	}

	st := ct.State
	items := make([]LineItem, 0, len(line.Calls)+2)
	var total int64

	for i, rec := range line.Calls {
		charge, next, err := policy.PriceCall(ct.Terms, st, rec)
		if err != nil {
			return Bill{}, ct.State, &CallError{LineID: line.ID, CallIndex: i, Err: err}
		}
		st = next

		items = append(items, callItem(rec, charge))
		total += charge.AmountMinor
	}

	monthly := policy.MonthlyCharge(ct.Terms)
	items = append(items, LineItem{
		Kind:        ItemKindMonthlyCharge,
		Label:       "monthly charge",
		AmountMinor: monthly,
	})
	total += monthly

	adjustments, st, err := policy.Finalize(ct.Terms, st, total)
	if err != nil {
		return Bill{}, ct.State, fmt.Errorf("line %s: %w", line.ID, err)
	}
	for _, adj := range adjustments {
		items = append(items, LineItem{
			Kind:        ItemKindAdjustment,
			Label:       adj.Label,
			AmountMinor: adj.AmountMinor,
		})
		total += adj.AmountMinor
	}

	bill := Bill{
		ID:          uuid.NewString(),
		LineID:      line.ID,
		CustomerID:  line.CustomerID,
		Period:      period,
		Currency:    ct.Terms.Currency,
		Items:       items,
		TotalMinor:  total,
		GeneratedAt: e.clock().UTC(),
	}
	return bill, st, nil
}

func callItem(rec calls.Record, charge contract.Charge) LineItem {
	label := fmt.Sprintf("call to %s (%d min)", rec.To, rec.BilledMinutes())
	if charge.Refused {
		label = fmt.Sprintf("call to %s refused: %s", rec.To, charge.Note)
	}
	return LineItem{
		Kind:          ItemKindCall,
		Label:         label,
		AmountMinor:   charge.AmountMinor,
		CallID:        rec.ID,
		BilledMinutes: charge.BilledMinutes,
		FreeMinutes:   charge.FreeMinutes,
		Refused:       charge.Refused,
	}
}
