package billing

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"telecom-billing/pkg/utils"
)

// PostgresRepo archives bills in Postgres.
//
// Tables:
// - bills (id, line_id, customer_id, period_year, period_month, currency,
//   total_minor, generated_at)
// - bill_items (bill_id, position, kind, label, amount_minor, call_id,
//   billed_minutes, free_minutes, refused)
//
// Both are INSERT-only; a bill and its items are written in one transaction.
// Item position preserves the engine's deterministic ordering on read-back.

type PostgresRepo struct {
	db *sql.DB
}

func NewPostgresRepo(db *sql.DB) *PostgresRepo { return &PostgresRepo{db: db} }

func (r *PostgresRepo) Archive(ctx context.Context, b Bill) error {
	return utils.WithTx(ctx, r.db, &sql.TxOptions{}, func(ctx context.Context, tx *sql.Tx) error {
		const insertBill = `
INSERT INTO bills (id, line_id, customer_id, period_year, period_month, currency, total_minor, generated_at)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
`
		if _, err := tx.ExecContext(ctx, insertBill,
			b.ID,
			b.LineID,
			b.CustomerID,
			b.Period.Year,
			int(b.Period.Month),
			b.Currency,
			b.TotalMinor,
			b.GeneratedAt,
		); err != nil {
			return err
		}

		const insertItem = `
INSERT INTO bill_items (bill_id, position, kind, label, amount_minor, call_id, billed_minutes, free_minutes, refused)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
`
		for i, it := range b.Items {
			if _, err := tx.ExecContext(ctx, insertItem,
				b.ID,
				i,
				it.Kind,
				it.Label,
				it.AmountMinor,
				it.CallID,
				it.BilledMinutes,
				it.FreeMinutes,
				it.Refused,
			); err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *PostgresRepo) GetBill(ctx context.Context, billID string) (Bill, error) {
	const q = `
SELECT id, line_id, customer_id, period_year, period_month, currency, total_minor, generated_at
FROM bills
WHERE id = $1
`
	b, err := scanBill(r.db.QueryRowContext(ctx, q, billID))
	if err != nil {
		return Bill{}, err
	}
	items, err := r.loadItems(ctx, b.ID)
	if err != nil {
		return Bill{}, err
	}
	b.Items = items
	return b, nil
}

func (r *PostgresRepo) GetLineBill(ctx context.Context, lineID string, p Period) (Bill, error) {
	const q = `
SELECT id, line_id, customer_id, period_year, period_month, currency, total_minor, generated_at
FROM bills
WHERE line_id = $1 AND period_year = $2 AND period_month = $3
ORDER BY generated_at DESC
LIMIT 1
`
	b, err := scanBill(r.db.QueryRowContext(ctx, q, lineID, p.Year, int(p.Month)))
	if err != nil {
		return Bill{}, err
	}
	items, err := r.loadItems(ctx, b.ID)
	if err != nil {
		return Bill{}, err
	}
	b.Items = items
	return b, nil
}

func (r *PostgresRepo) ListBills(ctx context.Context, customerID string, p Period) ([]Bill, error) {
	const q = `
SELECT id, line_id, customer_id, period_year, period_month, currency, total_minor, generated_at
FROM bills
WHERE period_year = $1 AND period_month = $2 AND ($3 = '' OR customer_id = $3)
ORDER BY line_id
`
	rows, err := r.db.QueryContext(ctx, q, p.Year, int(p.Month), customerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Bill, 0)
	for rows.Next() {
		b, err := scanBill(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range out {
		items, err := r.loadItems(ctx, out[i].ID)
		if err != nil {
			return nil, err
		}
		out[i].Items = items
	}
	return out, nil
}

func (r *PostgresRepo) loadItems(ctx context.Context, billID string) ([]LineItem, error) {
	const q = `
SELECT kind, label, amount_minor, call_id, billed_minutes, free_minutes, refused
FROM bill_items
WHERE bill_id = $1
ORDER BY position
`
	rows, err := r.db.QueryContext(ctx, q, billID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]LineItem, 0)
	for rows.Next() {
		var it LineItem
		if err := rows.Scan(
			&it.Kind,
			&it.Label,
			&it.AmountMinor,
			&it.CallID,
			&it.BilledMinutes,
			&it.FreeMinutes,
			&it.Refused,
		); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanBill(row rowScanner) (Bill, error) {
	var b Bill
	var month int
	var generatedAt time.Time
	if err := row.Scan(
		&b.ID,
		&b.LineID,
		&b.CustomerID,
		&b.Period.Year,
		&month,
		&b.Currency,
		&b.TotalMinor,
		&generatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Bill{}, ErrNotFound
		}
		return Bill{}, err
	}
	b.Period.Month = time.Month(month)
	b.GeneratedAt = generatedAt
	return b, nil
}
