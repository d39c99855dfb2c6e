package audit

import (
	"context"
	"testing"
)

func TestService_AppendRequiresType(t *testing.T) {
	repo := NewMemoryRepo()
	svc := NewService(repo)

	if err := svc.Append(context.Background(), Event{LineID: "l1"}); err == nil {
		t.Fatalf("expected error")
	}
}

func TestService_AppendsImmutableEvents(t *testing.T) {
	repo := NewMemoryRepo()
	svc := NewService(repo)

	if err := svc.LogBillGenerated(context.Background(), "c1", "l1", "b1", "2026-08", 2150); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	evs := repo.Events()
	if len(evs) != 1 {
		t.Fatalf("expected 1 event")
	}
	if evs[0].Type != EventTypeBillGenerated {
		t.Fatalf("expected bill_generated")
	}
	if evs[0].TotalMinor != 2150 {
		t.Fatalf("expected total captured")
	}
	if evs[0].ID == "" || evs[0].CreatedAt.IsZero() {
		t.Fatalf("expected id and timestamp assigned")
	}
}

func TestService_LogBillGeneratedValidatesTargets(t *testing.T) {
	svc := NewService(NewMemoryRepo())

	if err := svc.LogBillGenerated(context.Background(), "c1", "", "b1", "2026-08", 0); err != ErrInvalidEvent {
		t.Fatalf("expected ErrInvalidEvent, got %v", err)
	}
	if err := svc.LogBillGenerated(context.Background(), "c1", "l1", "", "2026-08", 0); err != ErrInvalidEvent {
		t.Fatalf("expected ErrInvalidEvent, got %v", err)
	}
}

func TestService_LogContractReplaced(t *testing.T) {
	repo := NewMemoryRepo()
	svc := NewService(repo)

	if err := svc.LogContractReplaced(context.Background(), "u1", "owner", "l1", "ct-old", "ct-new"); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	evs := repo.Events()
	if len(evs) != 1 || evs[0].Type != EventTypeContractReplaced {
		t.Fatalf("expected contract_replaced event")
	}
	if evs[0].ContractID != "ct-new" {
		t.Fatalf("expected new contract id captured")
	}
}
