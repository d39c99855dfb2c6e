package billing

import "context"

// BillRepository archives generated bills.
//
// The archive is append-only: bills are immutable result values, so there is
// no update path. Implementations exist for Postgres (production) and memory
// (tests, batch runs without a database).

type BillRepository interface {
	Archive(ctx context.Context, b Bill) error
	GetBill(ctx context.Context, billID string) (Bill, error)

	// GetLineBill returns the most recent archived bill for a line+period.
	GetLineBill(ctx context.Context, lineID string, p Period) (Bill, error)

	// ListBills returns bills for a period in line id order.
	// An empty customerID lists all customers.
	ListBills(ctx context.Context, customerID string, p Period) ([]Bill, error)
}
