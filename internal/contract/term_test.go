package contract

import (
	"errors"
	"testing"

	"telecom-billing/internal/calls"
)

func termTerms() Terms {
	return Terms{
		Currency:             "USD",
		MonthlyFeeMinor:      2000,
		RatePerMinuteMinor:   10,
		DurationMonths:       12,
		CancellationFeeMinor: 30000,
	}
}

func TestTerm_PriceCallPerStartedMinute(t *testing.T) {
	p, ok := PolicyFor(KindTerm)
	if !ok {
		t.Fatalf("term policy not registered")
	}

	ch, _, err := p.PriceCall(termTerms(), State{}, calls.Record{DurationSeconds: 300})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if ch.AmountMinor != 50 {
		t.Fatalf("expected 50, got %d", ch.AmountMinor)
	}

	// 301s rounds up to 6 started minutes.
	ch, _, err = p.PriceCall(termTerms(), State{}, calls.Record{DurationSeconds: 301})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if ch.AmountMinor != 60 {
		t.Fatalf("expected 60, got %d", ch.AmountMinor)
	}
}

func TestTerm_CostMonotonicInDuration(t *testing.T) {
	p, _ := PolicyFor(KindTerm)

	var prev int64 = -1
	for sec := 0; sec <= 600; sec += 30 {
		ch, _, err := p.PriceCall(termTerms(), State{}, calls.Record{DurationSeconds: sec})
		if err != nil {
			t.Fatalf("unexpected err at %ds: %v", sec, err)
		}
		if ch.AmountMinor < prev {
			t.Fatalf("cost decreased at %ds: %d < %d", sec, ch.AmountMinor, prev)
		}
		prev = ch.AmountMinor
	}
}

func TestTerm_IncludedMinutesConsumedFirst(t *testing.T) {
	p, _ := PolicyFor(KindTerm)

	terms := termTerms()
	terms.IncludedMinutes = 100

	// 90 minutes: fully covered by the allowance.
	ch, st, err := p.PriceCall(terms, State{}, calls.Record{DurationSeconds: 90 * 60})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if ch.AmountMinor != 0 || ch.FreeMinutes != 90 {
		t.Fatalf("expected fully free call, got %+v", ch)
	}
	if st.MinutesUsed != 90 {
		t.Fatalf("expected 90 minutes used, got %d", st.MinutesUsed)
	}

	// Next 20 minutes: 10 free remain, 10 billed.
	ch, st, err = p.PriceCall(terms, st, calls.Record{DurationSeconds: 20 * 60})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if ch.FreeMinutes != 10 || ch.BilledMinutes != 10 {
		t.Fatalf("expected 10 free / 10 billed, got %+v", ch)
	}
	if ch.AmountMinor != 100 {
		t.Fatalf("expected 100, got %d", ch.AmountMinor)
	}
	if st.MinutesUsed != 110 {
		t.Fatalf("expected 110 minutes used, got %d", st.MinutesUsed)
	}
}

func TestTerm_MonthlyChargeAppliesDiscount(t *testing.T) {
	p, _ := PolicyFor(KindTerm)

	terms := termTerms()
	terms.MonthlyDiscountMinor = 500
	if got := p.MonthlyCharge(terms); got != 1500 {
		t.Fatalf("expected 1500, got %d", got)
	}
}

func TestTerm_EarlyCancellationPenalty(t *testing.T) {
	p, _ := PolicyFor(KindTerm)

	adj, _, err := p.Finalize(termTerms(), State{Cancelled: true, CancelledAtMonth: 6}, 0)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(adj) != 1 || adj[0].AmountMinor != 30000 {
		t.Fatalf("expected early termination fee of 30000, got %+v", adj)
	}
}

func TestTerm_BoundaryCancellationOwesNoPenalty(t *testing.T) {
	p, _ := PolicyFor(KindTerm)

	adj, _, err := p.Finalize(termTerms(), State{Cancelled: true, CancelledAtMonth: 12}, 0)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(adj) != 0 {
		t.Fatalf("expected no penalty at boundary month, got %+v", adj)
	}
}

func TestTerm_FinalizeResetsAllowanceCounter(t *testing.T) {
	p, _ := PolicyFor(KindTerm)

	_, st, err := p.Finalize(termTerms(), State{MinutesUsed: 75}, 0)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if st.MinutesUsed != 0 {
		t.Fatalf("expected allowance counter reset, got %d", st.MinutesUsed)
	}
}

func TestTerm_ValidateTerms(t *testing.T) {
	p, _ := PolicyFor(KindTerm)

	if err := p.ValidateTerms(termTerms()); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	bad := termTerms()
	bad.DurationMonths = 0
	if err := p.ValidateTerms(bad); !errors.Is(err, ErrConfiguration) {
		t.Fatalf("expected ErrConfiguration for zero duration, got %v", err)
	}

	bad = termTerms()
	bad.MonthlyDiscountMinor = bad.MonthlyFeeMinor + 1
	if err := p.ValidateTerms(bad); !errors.Is(err, ErrConfiguration) {
		t.Fatalf("expected ErrConfiguration for oversized discount, got %v", err)
	}
}
