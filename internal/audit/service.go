package audit

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Repository is the persistence contract for audit events.
//
// It MUST be append-only.
// No Update/Delete methods are provided by design.

type Repository interface {
	Append(ctx context.Context, e Event) error
}

// Service records billing audit information.
//
// Callers should treat audit logging as best-effort: a failed append is worth
// logging but must never abort a bill run.

type Service struct {
	repo  Repository
	clock func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, clock: time.Now}
}

var ErrInvalidEvent = errors.New("audit: invalid event")

func (s *Service) Append(ctx context.Context, e Event) error {
	if s.repo == nil {
		return errors.New("audit: repository not configured")
	}
	if e.Type == "" {
		return ErrInvalidEvent
	}

	now := s.clock().UTC()
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = now
	}
	return s.repo.Append(ctx, e)
}

// LogBillGenerated records one generated bill.
func (s *Service) LogBillGenerated(ctx context.Context, customerID, lineID, billID, period string, totalMinor int64) error {
	if lineID == "" || billID == "" {
		return ErrInvalidEvent
	}
	return s.Append(ctx, Event{
		Type:       EventTypeBillGenerated,
		CustomerID: customerID,
		LineID:     lineID,
		BillID:     billID,
		Period:     period,
		TotalMinor: totalMinor,
		Message:    "bill generated",
	})
}

// LogBillRunCompleted records the end of a batch run over a dataset.
func (s *Service) LogBillRunCompleted(ctx context.Context, period string, billed, failed int, metadata string) error {
	return s.Append(ctx, Event{
		Type:     EventTypeBillRunCompleted,
		Period:   period,
		Message:  fmt.Sprintf("bill run completed: %d billed, %d failed", billed, failed),
		Metadata: metadata,
	})
}

// LogContractReplaced records a plan switch on a line.
func (s *Service) LogContractReplaced(ctx context.Context, actorUserID, actorRole, lineID, oldContractID, newContractID string) error {
	if lineID == "" || newContractID == "" {
		return ErrInvalidEvent
	}
	return s.Append(ctx, Event{
		Type:        EventTypeContractReplaced,
		ActorUserID: actorUserID,
		ActorRole:   actorRole,
		LineID:      lineID,
		ContractID:  newContractID,
		Message:     "contract replaced (was " + oldContractID + ")",
	})
}
