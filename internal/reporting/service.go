package reporting

import (
	"context"
	"errors"
	"sort"

	"telecom-billing/internal/billing"
	"telecom-billing/internal/contract"
	"telecom-billing/internal/lines"
)

var ErrInvalidRequest = errors.New("reporting: invalid request")

// Reporting reads the immutable bill archive; it never touches live
// contract state. The kind mix additionally resolves each bill's line to
// learn which plan produced it.

type BillSource interface {
	ListBills(ctx context.Context, customerID string, p billing.Period) ([]billing.Bill, error)
}

type LineSource interface {
	GetLine(ctx context.Context, lineID string) (lines.PhoneLine, error)
}

type Service struct {
	bills BillSource
	lines LineSource
}

func NewService(bills BillSource, lineSrc LineSource) *Service {
	return &Service{bills: bills, lines: lineSrc}
}

func (s *Service) RevenueSummary(ctx context.Context, req RevenueSummaryRequest) (RevenueSummary, error) {
	if err := req.Period.Validate(); err != nil {
		return RevenueSummary{}, ErrInvalidRequest
	}
	if s.bills == nil {
		return RevenueSummary{}, errors.New("reporting: bill source not configured")
	}

	rows, err := s.bills.ListBills(ctx, req.CustomerID, req.Period)
	if err != nil {
		return RevenueSummary{}, err
	}

	out := RevenueSummary{Period: req.Period, CustomerID: req.CustomerID}
	for _, b := range rows {
		out.BillCount++
		out.TotalMinor += b.TotalMinor
		if out.Currency == "" {
			out.Currency = b.Currency
		}
		for _, it := range b.Items {
			switch it.Kind {
			case billing.ItemKindCall:
				out.CallRevenueMinor += it.AmountMinor
				out.BilledMinutes += it.BilledMinutes
				out.FreeMinutes += it.FreeMinutes
				if it.Refused {
					out.RefusedCalls++
				}
			case billing.ItemKindMonthlyCharge:
				out.MonthlyRevenueMinor += it.AmountMinor
			case billing.ItemKindAdjustment:
				out.AdjustmentMinor += it.AmountMinor
			}
		}
	}
	if out.BillCount > 0 {
		out.AverageBillMinor = out.TotalMinor / int64(out.BillCount)
	}
	return out, nil
}

func (s *Service) KindMix(ctx context.Context, req KindMixRequest) (KindMix, error) {
	if err := req.Period.Validate(); err != nil {
		return KindMix{}, ErrInvalidRequest
	}
	if s.bills == nil || s.lines == nil {
		return KindMix{}, errors.New("reporting: sources not configured")
	}

	rows, err := s.bills.ListBills(ctx, "", req.Period)
	if err != nil {
		return KindMix{}, err
	}

	byKind := map[contract.Kind]*KindSlice{}
	for _, b := range rows {
		line, err := s.lines.GetLine(ctx, b.LineID)
		if err != nil {
			if errors.Is(err, lines.ErrNotFound) {
				// The line was removed after archival; its revenue still
				// counted in RevenueSummary, just not attributable here.
				continue
			}
			return KindMix{}, err
		}
		if line.Contract == nil {
			continue
		}
		k := line.Contract.Kind
		sl, ok := byKind[k]
		if !ok {
			sl = &KindSlice{Kind: k}
			byKind[k] = sl
		}
		sl.BillCount++
		sl.TotalMinor += b.TotalMinor
	}

	out := KindMix{Period: req.Period}
	for _, sl := range byKind {
		out.Slices = append(out.Slices, *sl)
	}
	sort.Slice(out.Slices, func(i, j int) bool { return out.Slices[i].Kind < out.Slices[j].Kind })
	return out, nil
}
