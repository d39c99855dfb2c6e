package billing

import (
	"context"
	"sort"
	"sync"
)

// MemoryRepo is the in-memory bill archive used by tests and database-less
// batch runs. Not intended for production use.

type MemoryRepo struct {
	mu    sync.Mutex
	bills []Bill
}

func NewMemoryRepo() *MemoryRepo { return &MemoryRepo{} }

func (r *MemoryRepo) Archive(ctx context.Context, b Bill) error {
	_ = ctx
	r.mu.Lock()
	defer r.mu.Unlock()
	r.bills = append(r.bills, b)
	return nil
}

func (r *MemoryRepo) GetBill(ctx context.Context, billID string) (Bill, error) {
	_ = ctx
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, b := range r.bills {
		if b.ID == billID {
			return b, nil
		}
	}
	return Bill{}, ErrNotFound
}

func (r *MemoryRepo) GetLineBill(ctx context.Context, lineID string, p Period) (Bill, error) {
	_ = ctx
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := len(r.bills) - 1; i >= 0; i-- {
		if r.bills[i].LineID == lineID && r.bills[i].Period == p {
			return r.bills[i], nil
		}
	}
	return Bill{}, ErrNotFound
}

func (r *MemoryRepo) ListBills(ctx context.Context, customerID string, p Period) ([]Bill, error) {
	_ = ctx
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Bill, 0)
	for _, b := range r.bills {
		if b.Period != p {
			continue
		}
		if customerID != "" && b.CustomerID != customerID {
			continue
		}
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].LineID < out[j].LineID })
	return out, nil
}
