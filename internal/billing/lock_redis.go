package billing

import (
	"context"
	"time"

	"telecom-billing/pkg/utils"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// RunLock single-flights billing runs: at most one run per line+period across
// all API processes. Nil-safe like BillCache; without Redis every acquire
// succeeds and billing degrades to last-writer-wins on the archive.

type RunLock struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRunLock(rdb *redis.Client, ttl time.Duration) *RunLock {
	if ttl <= 0 {
		ttl = time.Minute
	}
	return &RunLock{rdb: rdb, ttl: ttl}
}

func runLockKey(lineID string, p Period) string {
	return "billrun:" + lineID + ":" + p.String()
}

// Acquire returns a release func when the lock is taken, or ok=false when
// another run holds it.
func (l *RunLock) Acquire(ctx context.Context, lineID string, p Period) (release func(), ok bool, err error) {
	if l == nil || l.rdb == nil {
		return func() {}, true, nil
	}
	key := runLockKey(lineID, p)
	token := uuid.NewString()

	ok, err = utils.AcquireLock(ctx, l.rdb, key, token, l.ttl)
	if err != nil || !ok {
		return nil, false, err
	}
	return func() { _ = utils.ReleaseLock(ctx, l.rdb, key, token) }, true, nil
}
