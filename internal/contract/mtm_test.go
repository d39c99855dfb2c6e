package contract

import (
	"errors"
	"testing"

	"telecom-billing/internal/calls"
)

func mtmTerms() Terms {
	return Terms{Currency: "USD", MonthlyFeeMinor: 2500, RatePerMinuteMinor: 15}
}

func TestMTM_PriceCall(t *testing.T) {
	p, ok := PolicyFor(KindMonthToMonth)
	if !ok {
		t.Fatalf("month-to-month policy not registered")
	}

	ch, st, err := p.PriceCall(mtmTerms(), State{}, calls.Record{DurationSeconds: 20 * 60})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if ch.AmountMinor != 300 {
		t.Fatalf("expected 300, got %d", ch.AmountMinor)
	}
	if st != (State{}) {
		t.Fatalf("month-to-month pricing must not carry state, got %+v", st)
	}
}

func TestMTM_LongDistanceRate(t *testing.T) {
	p, _ := PolicyFor(KindMonthToMonth)

	terms := mtmTerms()
	terms.LongDistanceRateMinor = 40
	ch, _, err := p.PriceCall(terms, State{}, calls.Record{Kind: calls.KindLongDistance, DurationSeconds: 120})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if ch.AmountMinor != 80 {
		t.Fatalf("expected 80, got %d", ch.AmountMinor)
	}
}

func TestMTM_FinalizeAddsNothing(t *testing.T) {
	p, _ := PolicyFor(KindMonthToMonth)

	adj, _, err := p.Finalize(mtmTerms(), State{}, 1234)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(adj) != 0 {
		t.Fatalf("expected no adjustments, got %+v", adj)
	}
}

func TestMTM_RejectsNegativeDuration(t *testing.T) {
	p, _ := PolicyFor(KindMonthToMonth)
	_, _, err := p.PriceCall(mtmTerms(), State{}, calls.Record{DurationSeconds: -5})
	if !errors.Is(err, calls.ErrNegativeDuration) {
		t.Fatalf("expected ErrNegativeDuration, got %v", err)
	}
}

func TestRegistry_KnowsAllKinds(t *testing.T) {
	for _, k := range []Kind{KindPrepaid, KindTerm, KindMonthToMonth} {
		if _, ok := PolicyFor(k); !ok {
			t.Fatalf("kind %q not registered", k)
		}
	}
	if _, ok := PolicyFor(Kind("satellite")); ok {
		t.Fatalf("unexpected policy for unknown kind")
	}
	if len(Kinds()) < 3 {
		t.Fatalf("expected at least 3 registered kinds")
	}
}
