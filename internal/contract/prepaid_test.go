package contract

import (
	"errors"
	"testing"

	"telecom-billing/internal/calls"
)

func prepaidTerms() Terms {
	return Terms{
		Currency:                "USD",
		RatePerMinuteMinor:      10,
		TopUpMinor:              2500,
		LowCreditThresholdMinor: 1000,
	}
}

func TestPrepaid_PriceCallDeductsCredit(t *testing.T) {
	p, ok := PolicyFor(KindPrepaid)
	if !ok {
		t.Fatalf("prepaid policy not registered")
	}

	st := State{CreditMinor: 5000}
	ch, next, err := p.PriceCall(prepaidTerms(), st, calls.Record{DurationSeconds: 300})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if ch.AmountMinor != 50 {
		t.Fatalf("expected 50, got %d", ch.AmountMinor)
	}
	if next.CreditMinor != 4950 {
		t.Fatalf("expected credit 4950, got %d", next.CreditMinor)
	}
	// Input state untouched.
	if st.CreditMinor != 5000 {
		t.Fatalf("input state mutated")
	}
}

func TestPrepaid_RefusesCallBeyondCredit(t *testing.T) {
	p, _ := PolicyFor(KindPrepaid)

	// Credit 10, call would cost 15: refuse whole call, balance unchanged.
	terms := Terms{Currency: "USD", RatePerMinuteMinor: 100}
	st := State{CreditMinor: 1000}
	ch, next, err := p.PriceCall(terms, st, calls.Record{DurationSeconds: 15 * 60})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if !ch.Refused {
		t.Fatalf("expected refusal")
	}
	if ch.AmountMinor != 0 {
		t.Fatalf("refused call must charge 0, got %d", ch.AmountMinor)
	}
	if ch.Note == "" {
		t.Fatalf("expected shortfall note")
	}
	if next.CreditMinor != 1000 {
		t.Fatalf("refusal must not touch credit, got %d", next.CreditMinor)
	}
}

func TestPrepaid_ExactCreditIsAccepted(t *testing.T) {
	p, _ := PolicyFor(KindPrepaid)

	terms := Terms{Currency: "USD", RatePerMinuteMinor: 100}
	st := State{CreditMinor: 500}
	ch, next, err := p.PriceCall(terms, st, calls.Record{DurationSeconds: 5 * 60})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if ch.Refused || ch.AmountMinor != 500 {
		t.Fatalf("expected full charge of 500, got %+v", ch)
	}
	if next.CreditMinor != 0 {
		t.Fatalf("expected credit drained to 0, got %d", next.CreditMinor)
	}
}

func TestPrepaid_RejectsNegativeDuration(t *testing.T) {
	p, _ := PolicyFor(KindPrepaid)
	_, _, err := p.PriceCall(prepaidTerms(), State{CreditMinor: 100}, calls.Record{DurationSeconds: -1})
	if !errors.Is(err, calls.ErrNegativeDuration) {
		t.Fatalf("expected ErrNegativeDuration, got %v", err)
	}
}

func TestPrepaid_FinalizeTopsUpLowCredit(t *testing.T) {
	p, _ := PolicyFor(KindPrepaid)

	adj, next, err := p.Finalize(prepaidTerms(), State{CreditMinor: 500}, 0)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(adj) != 1 {
		t.Fatalf("expected 1 top-up adjustment, got %d", len(adj))
	}
	if adj[0].AmountMinor != 2500 {
		t.Fatalf("expected top-up of 2500, got %d", adj[0].AmountMinor)
	}
	if next.CreditMinor != 3000 {
		t.Fatalf("expected credit 3000 after top-up, got %d", next.CreditMinor)
	}
}

func TestPrepaid_FinalizeNoTopUpWhenCreditSufficient(t *testing.T) {
	p, _ := PolicyFor(KindPrepaid)

	adj, next, err := p.Finalize(prepaidTerms(), State{CreditMinor: 5000}, 0)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(adj) != 0 {
		t.Fatalf("expected no adjustments, got %d", len(adj))
	}
	if next.CreditMinor != 5000 {
		t.Fatalf("credit changed without a top-up")
	}
}

func TestPrepaid_ValidateTerms(t *testing.T) {
	p, _ := PolicyFor(KindPrepaid)

	if err := p.ValidateTerms(prepaidTerms()); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if err := p.ValidateTerms(Terms{Currency: "USD"}); !errors.Is(err, ErrConfiguration) {
		t.Fatalf("expected ErrConfiguration for missing rate, got %v", err)
	}
	bad := prepaidTerms()
	bad.TopUpMinor = -1
	if err := p.ValidateTerms(bad); !errors.Is(err, ErrConfiguration) {
		t.Fatalf("expected ErrConfiguration for negative top-up, got %v", err)
	}
}
