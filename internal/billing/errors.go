package billing

import (
	"errors"
	"fmt"
)

var (
	ErrMissingContract = errors.New("billing: line has no contract")
	ErrInvalidPeriod   = errors.New("billing: invalid period")
	ErrNotFound        = errors.New("billing: bill not found")
	ErrRunInProgress   = errors.New("billing: run already in progress for line and period")
)

// CallError reports a call record the engine could not price. Bill generation
// aborts on the first such call; no partial bill is produced.
type CallError struct {
	LineID    string
	CallIndex int
	Err       error
}

func (e *CallError) Error() string {
	return fmt.Sprintf("billing: call %d on line %s: %v", e.CallIndex, e.LineID, e.Err)
}

func (e *CallError) Unwrap() error { return e.Err }
