package dataset

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"telecom-billing/internal/calls"
	"telecom-billing/internal/contract"
	"telecom-billing/internal/lines"

	"github.com/google/uuid"
)

// Loader for the JSON dataset the billing runs consume.
//
// The file shape mirrors the domain models directly:
//
//	{"customers": [{"id", "name", "lines": [{"id", "number",
//	  "contract": {"id", "kind", "started_at", "terms": {...}, "state": {...}},
//	  "calls": [{"id", "from", "to", "kind", "started_at", "duration_seconds"}]}]}]}
//
// Validation is strict: unknown contract kinds, missing contracts, negative
// durations and negative prepaid credit all fail the load with the offending
// customer/line/call named. Nothing is coerced.

type Options struct {
	// DefaultCurrency fills contract terms that omit a currency.
	DefaultCurrency string
}

type File struct {
	Customers []*lines.Customer `json:"customers"`
}

var ErrInvalidDataset = errors.New("dataset: invalid dataset")

func Load(path string, opts Options) ([]*lines.Customer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Decode(f, opts)
}

func Decode(r io.Reader, opts Options) ([]*lines.Customer, error) {
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()

	var file File
	if err := dec.Decode(&file); err != nil {
		// Includes type errors such as a non-numeric duration.
		return nil, fmt.Errorf("%w: %v", ErrInvalidDataset, err)
	}

	seenLines := map[string]bool{}
	for _, cust := range file.Customers {
		if cust.ID == "" {
			return nil, fmt.Errorf("%w: customer without id", ErrInvalidDataset)
		}
		for _, l := range cust.Lines {
			if err := validateLine(cust, l, seenLines, opts); err != nil {
				return nil, err
			}
		}
	}
	return file.Customers, nil
}

func validateLine(cust *lines.Customer, l *lines.PhoneLine, seen map[string]bool, opts Options) error {
	if l.ID == "" {
		l.ID = uuid.NewString()
	}
	if seen[l.ID] {
		return fmt.Errorf("%w: duplicate line id %q", ErrInvalidDataset, l.ID)
	}
	seen[l.ID] = true
	l.CustomerID = cust.ID

	if l.Contract == nil {
		return fmt.Errorf("%w: line %s has no contract", ErrInvalidDataset, l.ID)
	}
	if l.Contract.ID == "" {
		l.Contract.ID = uuid.NewString()
	}
	if l.Contract.Terms.Currency == "" {
		l.Contract.Terms.Currency = opts.DefaultCurrency
	}
	if err := l.Contract.Validate(); err != nil {
		return fmt.Errorf("line %s: %w", l.ID, err)
	}
	if l.Contract.State.CreditMinor < 0 {
		return fmt.Errorf("%w: line %s has negative prepaid credit", ErrInvalidDataset, l.ID)
	}

	for i, rec := range l.Calls {
		if err := rec.Validate(); err != nil {
			return fmt.Errorf("line %s call %d: %w", l.ID, i, err)
		}
		if rec.Kind != "" && rec.Kind != calls.KindLocal && rec.Kind != calls.KindLongDistance {
			return fmt.Errorf("%w: line %s call %d has unknown kind %q", ErrInvalidDataset, l.ID, i, rec.Kind)
		}
		if rec.ID == "" {
			l.Calls[i].ID = uuid.NewString()
		}
	}
	return nil
}

// Lines flattens loaded customers into their phone lines, for seeding a
// line repository.
func Lines(customers []*lines.Customer) []*lines.PhoneLine {
	out := make([]*lines.PhoneLine, 0)
	for _, c := range customers {
		out = append(out, c.Lines...)
	}
	return out
}

// KnownKinds is a convenience for error messages and input validation at the
// API boundary.
func KnownKinds() []contract.Kind { return contract.Kinds() }
