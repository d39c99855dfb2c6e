package calls

import (
	"errors"
	"time"
)

// Record is one phone call accrued against a phone line.
//
// Records are immutable once loaded: the billing engine reads them, it never
// writes them back. A line owns its records in insertion order and bill
// generation depends on that order being stable.
//
// Duration is stored in seconds; billing is per started minute
// (ceil(seconds/60)), matching carrier-style rounding.

type Record struct {
	ID string `json:"id"`

	From string `json:"from"`
	To   string `json:"to"`

	// Kind distinguishes local from long-distance calls. Long-distance calls
	// may be priced with a distinct per-minute rate when the contract
	// configures one.
	Kind Kind `json:"kind"`

	StartedAt time.Time `json:"started_at"`

	// DurationSeconds must be >= 0. Negative durations are invalid input and
	// must never be silently coerced to zero.
	DurationSeconds int `json:"duration_seconds"`
}

type Kind string

const (
	KindLocal        Kind = "local"
	KindLongDistance Kind = "long_distance"
)

var ErrNegativeDuration = errors.New("calls: negative duration")

// Validate rejects records the billing engine must not price.
func (r Record) Validate() error {
	if r.DurationSeconds < 0 {
		return ErrNegativeDuration
	}
	return nil
}

// BilledMinutes rounds the duration up to started minutes.
// A zero-second call bills zero minutes.
func (r Record) BilledMinutes() int {
	if r.DurationSeconds <= 0 {
		return 0
	}
	m := r.DurationSeconds / 60
	if r.DurationSeconds%60 != 0 {
		m++
	}
	return m
}
