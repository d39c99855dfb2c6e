package lines

import (
	"context"

	"telecom-billing/internal/contract"
)

// Repository abstracts line storage for the billing orchestration layer.
//
// The billing engine itself never touches a repository; it receives a line
// value and returns a bill plus the post-billing contract state. The caller
// applies that state here once the bill is accepted.

type Repository interface {
	GetLine(ctx context.Context, lineID string) (PhoneLine, error)
	ListLines(ctx context.Context) ([]PhoneLine, error)
	ListCustomerLines(ctx context.Context, customerID string) ([]PhoneLine, error)

	// ApplyContractState stores the contract state returned by a billing run.
	ApplyContractState(ctx context.Context, lineID string, st contract.State) error

	// ReplaceContract swaps the line's contract for a new instance.
	ReplaceContract(ctx context.Context, lineID string, next *contract.Contract) error

	// CancelContract records a termination request at the given month offset
	// from the contract start. Any penalty is assessed at the next bill run.
	CancelContract(ctx context.Context, lineID string, atMonth int) error
}
