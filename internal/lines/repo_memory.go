package lines

import (
	"context"
	"sort"
	"sync"

	"telecom-billing/internal/contract"
)

// MemoryRepo is the in-memory line store. The batch runner seeds it from the
// loaded dataset; it also backs tests. Not intended for production use.

type MemoryRepo struct {
	mu    sync.Mutex
	lines map[string]*PhoneLine
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{lines: map[string]*PhoneLine{}}
}

// Seed loads lines wholesale, replacing any existing entries with the same id.
func (r *MemoryRepo) Seed(ls []*PhoneLine) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, l := range ls {
		r.lines[l.ID] = l
	}
}

func (r *MemoryRepo) GetLine(ctx context.Context, lineID string) (PhoneLine, error) {
	_ = ctx
	r.mu.Lock()
	defer r.mu.Unlock()
	l, ok := r.lines[lineID]
	if !ok {
		return PhoneLine{}, ErrNotFound
	}
	return *l, nil
}

func (r *MemoryRepo) ListLines(ctx context.Context) ([]PhoneLine, error) {
	_ = ctx
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]PhoneLine, 0, len(r.lines))
	for _, l := range r.lines {
		out = append(out, *l)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *MemoryRepo) ListCustomerLines(ctx context.Context, customerID string) ([]PhoneLine, error) {
	_ = ctx
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]PhoneLine, 0)
	for _, l := range r.lines {
		if l.CustomerID == customerID {
			out = append(out, *l)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *MemoryRepo) ApplyContractState(ctx context.Context, lineID string, st contract.State) error {
	_ = ctx
	r.mu.Lock()
	defer r.mu.Unlock()
	l, ok := r.lines[lineID]
	if !ok {
		return ErrNotFound
	}
	if l.Contract == nil {
		return ErrMissingContract
	}
	l.Contract.State = st
	return nil
}

func (r *MemoryRepo) ReplaceContract(ctx context.Context, lineID string, next *contract.Contract) error {
	_ = ctx
	r.mu.Lock()
	defer r.mu.Unlock()
	l, ok := r.lines[lineID]
	if !ok {
		return ErrNotFound
	}
	_, err := l.ReplaceContract(next)
	return err
}

func (r *MemoryRepo) CancelContract(ctx context.Context, lineID string, atMonth int) error {
	_ = ctx
	r.mu.Lock()
	defer r.mu.Unlock()
	l, ok := r.lines[lineID]
	if !ok {
		return ErrNotFound
	}
	if l.Contract == nil {
		return ErrMissingContract
	}
	return l.Contract.Cancel(atMonth)
}
