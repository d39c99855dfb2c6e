package lines

import (
	"errors"

	"telecom-billing/internal/calls"
	"telecom-billing/internal/contract"
)

// PhoneLine ties a number to its owning customer, exactly one contract and an
// insertion-ordered call history.
//
// Ownership: the line owns its contract and its call records exclusively. The
// customer reference is a non-owning back-reference (an id, not a pointer), so
// lines can be moved between stores without dragging the customer graph along.

type PhoneLine struct {
	ID         string `json:"id"`
	Number     string `json:"number"`
	CustomerID string `json:"customer_id"`

	Contract *contract.Contract `json:"contract"`

	// Calls accumulate over a billing period in insertion order. The billing
	// engine reads them in that order; closing out a period is the caller's
	// decision, not the engine's.
	Calls []calls.Record `json:"calls"`
}

type Customer struct {
	ID   string `json:"id"`
	Name string `json:"name"`

	Lines []*PhoneLine `json:"lines"`
}

var (
	ErrNotFound        = errors.New("lines: not found")
	ErrMissingContract = errors.New("lines: line has no contract")
)

// ReplaceContract is the only supported plan switch: the old contract is
// retired whole and a new instance takes its place. Variant tags are never
// rewritten on a live contract. Returns the retired contract.
func (l *PhoneLine) ReplaceContract(next *contract.Contract) (*contract.Contract, error) {
	if next == nil {
		return nil, ErrMissingContract
	}
	if err := next.Validate(); err != nil {
		return nil, err
	}
	old := l.Contract
	l.Contract = next
	return old, nil
}

// AddCall appends a validated record to the line's history.
func (l *PhoneLine) AddCall(rec calls.Record) error {
	if err := rec.Validate(); err != nil {
		return err
	}
	l.Calls = append(l.Calls, rec)
	return nil
}
