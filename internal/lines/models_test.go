package lines

import (
	"context"
	"errors"
	"testing"

	"telecom-billing/internal/calls"
	"telecom-billing/internal/contract"
)

func testContract(kind contract.Kind) *contract.Contract {
	c := &contract.Contract{
		ID:   "ct-1",
		Kind: kind,
		Terms: contract.Terms{
			Currency:           "USD",
			MonthlyFeeMinor:    2000,
			RatePerMinuteMinor: 10,
		},
	}
	if kind == contract.KindTerm {
		c.Terms.DurationMonths = 12
	}
	return c
}

func TestReplaceContract_SwapsWholeInstance(t *testing.T) {
	l := &PhoneLine{ID: "l1", Contract: testContract(contract.KindTerm)}

	next := testContract(contract.KindMonthToMonth)
	next.ID = "ct-2"

	old, err := l.ReplaceContract(next)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if old == nil || old.ID != "ct-1" {
		t.Fatalf("expected retired contract ct-1, got %+v", old)
	}
	if l.Contract.ID != "ct-2" || l.Contract.Kind != contract.KindMonthToMonth {
		t.Fatalf("expected new contract installed, got %+v", l.Contract)
	}
}

func TestReplaceContract_RejectsNilAndInvalid(t *testing.T) {
	l := &PhoneLine{ID: "l1", Contract: testContract(contract.KindTerm)}

	if _, err := l.ReplaceContract(nil); !errors.Is(err, ErrMissingContract) {
		t.Fatalf("expected ErrMissingContract, got %v", err)
	}

	bad := testContract(contract.KindTerm)
	bad.Terms.RatePerMinuteMinor = 0
	if _, err := l.ReplaceContract(bad); !errors.Is(err, contract.ErrConfiguration) {
		t.Fatalf("expected ErrConfiguration, got %v", err)
	}
	if l.Contract.ID != "ct-1" {
		t.Fatalf("failed replace must leave old contract in place")
	}
}

func TestAddCall_PreservesInsertionOrder(t *testing.T) {
	l := &PhoneLine{ID: "l1"}
	for _, id := range []string{"a", "b", "c"} {
		if err := l.AddCall(calls.Record{ID: id, DurationSeconds: 60}); err != nil {
			t.Fatalf("unexpected err: %v", err)
		}
	}
	if len(l.Calls) != 3 {
		t.Fatalf("expected 3 calls")
	}
	for i, id := range []string{"a", "b", "c"} {
		if l.Calls[i].ID != id {
			t.Fatalf("order broken at %d: got %q", i, l.Calls[i].ID)
		}
	}

	if err := l.AddCall(calls.Record{ID: "bad", DurationSeconds: -1}); !errors.Is(err, calls.ErrNegativeDuration) {
		t.Fatalf("expected ErrNegativeDuration, got %v", err)
	}
}

func TestMemoryRepo_ApplyContractState(t *testing.T) {
	repo := NewMemoryRepo()
	repo.Seed([]*PhoneLine{{ID: "l1", CustomerID: "c1", Contract: testContract(contract.KindPrepaid)}})

	if err := repo.ApplyContractState(context.Background(), "l1", contract.State{CreditMinor: 777}); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	got, err := repo.GetLine(context.Background(), "l1")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if got.Contract.State.CreditMinor != 777 {
		t.Fatalf("expected applied state, got %+v", got.Contract.State)
	}

	if err := repo.ApplyContractState(context.Background(), "nope", contract.State{}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestMemoryRepo_CancelContract(t *testing.T) {
	repo := NewMemoryRepo()
	repo.Seed([]*PhoneLine{{ID: "l1", CustomerID: "c1", Contract: testContract(contract.KindTerm)}})

	if err := repo.CancelContract(context.Background(), "l1", 6); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	got, _ := repo.GetLine(context.Background(), "l1")
	if !got.Contract.State.Cancelled || got.Contract.State.CancelledAtMonth != 6 {
		t.Fatalf("expected cancellation recorded, got %+v", got.Contract.State)
	}

	if err := repo.CancelContract(context.Background(), "l1", -1); !errors.Is(err, contract.ErrConfiguration) {
		t.Fatalf("expected ErrConfiguration, got %v", err)
	}
	if err := repo.CancelContract(context.Background(), "nope", 1); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestMemoryRepo_ListCustomerLines(t *testing.T) {
	repo := NewMemoryRepo()
	repo.Seed([]*PhoneLine{
		{ID: "l2", CustomerID: "c1"},
		{ID: "l1", CustomerID: "c1"},
		{ID: "l3", CustomerID: "c2"},
	})

	out, err := repo.ListCustomerLines(context.Background(), "c1")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(out) != 2 || out[0].ID != "l1" || out[1].ID != "l2" {
		t.Fatalf("expected sorted lines l1,l2, got %+v", out)
	}
}
