package billing

import (
	"context"
	"errors"

	"telecom-billing/internal/audit"
	"telecom-billing/internal/lines"
)

// Service orchestrates a billing run for one line: load the line, run the
// engine, archive the bill, apply the post-billing contract state, then the
// best-effort extras (cache, audit).
//
// Ordering matters: the contract state is applied only after the bill is
// archived, so a failed archive leaves the line exactly as it was and the run
// can be repeated. Cache and audit failures never fail the run.

type Service struct {
	engine *Engine
	lines  lines.Repository
	bills  BillRepository

	// Optional collaborators; nil disables them.
	Cache *BillCache
	Audit *audit.Service
	Locks *RunLock
}

func NewService(lineRepo lines.Repository, billRepo BillRepository) *Service {
	return &Service{engine: NewEngine(), lines: lineRepo, bills: billRepo}
}

func (s *Service) GenerateBill(ctx context.Context, lineID string, p Period) (Bill, error) {
	if s.lines == nil {
		return Bill{}, errors.New("billing: line repository not configured")
	}

	release, ok, err := s.Locks.Acquire(ctx, lineID, p)
	if err != nil {
		return Bill{}, err
	}
	if !ok {
		return Bill{}, ErrRunInProgress
	}
	defer release()

	line, err := s.lines.GetLine(ctx, lineID)
	if err != nil {
		return Bill{}, err
	}

	bill, st, err := s.engine.GenerateBill(line, p)
	if err != nil {
		return Bill{}, err
	}

	if s.bills != nil {
		if err := s.bills.Archive(ctx, bill); err != nil {
			return Bill{}, err
		}
	}
	if err := s.lines.ApplyContractState(ctx, lineID, st); err != nil {
		return Bill{}, err
	}

	// Best-effort extras.
	_ = s.Cache.Set(ctx, bill)
	if s.Audit != nil {
		_ = s.Audit.LogBillGenerated(ctx, bill.CustomerID, bill.LineID, bill.ID, p.String(), bill.TotalMinor)
	}
	return bill, nil
}

func (s *Service) GetBill(ctx context.Context, billID string) (Bill, error) {
	if s.bills == nil {
		return Bill{}, errors.New("billing: bill repository not configured")
	}
	return s.bills.GetBill(ctx, billID)
}

// LineBill returns the archived bill for a line+period, consulting the cache
// first.
func (s *Service) LineBill(ctx context.Context, lineID string, p Period) (Bill, error) {
	if b, ok, err := s.Cache.Get(ctx, lineID, p); err == nil && ok {
		return b, nil
	}
	if s.bills == nil {
		return Bill{}, errors.New("billing: bill repository not configured")
	}
	return s.bills.GetLineBill(ctx, lineID, p)
}

func (s *Service) ListBills(ctx context.Context, customerID string, p Period) ([]Bill, error) {
	if s.bills == nil {
		return nil, errors.New("billing: bill repository not configured")
	}
	return s.bills.ListBills(ctx, customerID, p)
}
