package billing

import (
	"fmt"
	"time"
)

// Period identifies the billing month a bill covers.
type Period struct {
	Year  int        `json:"year"`
	Month time.Month `json:"month"`
}

func PeriodOf(t time.Time) Period {
	return Period{Year: t.Year(), Month: t.Month()}
}

func (p Period) Validate() error {
	if p.Year <= 0 || p.Month < time.January || p.Month > time.December {
		return fmt.Errorf("%w: %d-%d", ErrInvalidPeriod, p.Year, int(p.Month))
	}
	return nil
}

func (p Period) String() string {
	return fmt.Sprintf("%04d-%02d", p.Year, int(p.Month))
}

// ParsePeriod parses the "YYYY-MM" form produced by String.
func ParsePeriod(s string) (Period, error) {
	t, err := time.Parse("2006-01", s)
	if err != nil {
		return Period{}, fmt.Errorf("%w: %q", ErrInvalidPeriod, s)
	}
	p := Period{Year: t.Year(), Month: t.Month()}
	if err := p.Validate(); err != nil {
		return Period{}, err
	}
	return p, nil
}

// ItemKind categorizes bill line items. Keep stable; archived bills carry it.
type ItemKind string

const (
	ItemKindCall          ItemKind = "call"
	ItemKindMonthlyCharge ItemKind = "monthly_charge"
	ItemKindAdjustment    ItemKind = "adjustment"
)

// LineItem is one labeled charge on a bill.
type LineItem struct {
	Kind  ItemKind `json:"kind"`
	Label string   `json:"label"`

	// AmountMinor is the charge in minor units. Refused calls carry 0.
	AmountMinor int64 `json:"amount_minor"`

	// Call items only.
	CallID        string `json:"call_id,omitempty"`
	BilledMinutes int    `json:"billed_minutes,omitempty"`
	FreeMinutes   int    `json:"free_minutes,omitempty"`
	Refused       bool   `json:"refused,omitempty"`
}

// Bill is the computed statement for one line and one period.
//
// Bills are immutable result values: constructed once by the engine, never
// modified. Equality is structural; the generation id and timestamp are run
// metadata and excluded, so two runs over the same line state produce equal
// bills.
type Bill struct {
	ID string `json:"id"`

	LineID     string `json:"line_id"`
	CustomerID string `json:"customer_id"`

	Period   Period `json:"period"`
	Currency string `json:"currency"`

	Items      []LineItem `json:"items"`
	TotalMinor int64      `json:"total_minor"`

	GeneratedAt time.Time `json:"generated_at"`
}

// Equal reports structural equality: same line, period, currency, items and
// total. ID and GeneratedAt are ignored.
func (b Bill) Equal(other Bill) bool {
	if b.LineID != other.LineID || b.CustomerID != other.CustomerID {
		return false
	}
	if b.Period != other.Period || b.Currency != other.Currency {
		return false
	}
	if b.TotalMinor != other.TotalMinor || len(b.Items) != len(other.Items) {
		return false
	}
	for i := range b.Items {
		if b.Items[i] != other.Items[i] {
			return false
		}
	}
	return true
}
