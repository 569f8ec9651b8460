package repos

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	ex "bondspread/data/extensions"
	m "bondspread/data/models"
	q "bondspread/data/queries"
)

func (pg *Postgres) GetReferenceYields(ctx context.Context, start, end time.Time) ([]*m.ReferenceYield, error) {
	args := pgx.NamedArgs{
		"start_date": ex.DateOnly(start),
		"end_date":   ex.DateOnly(end),
	}

	res, err := Query[m.ReferenceYield](ctx, pg, q.Get(q.QueryHelper.Select.ReferenceYields), args)
	if err != nil {
		return nil, fmt.Errorf("unable to query reference yields (%s to %s): %w", ex.FmtShort(start), ex.FmtShort(end), err)
	}
	return res, nil
}

func (pg *Postgres) ReplaceReferenceYields(ctx context.Context, yields []*m.ReferenceYield) (int64, error) {
	if len(yields) == 0 {
		return 0, nil
	}

	first, last := yields[0].Date, yields[0].Date
	entries := make([][]any, len(yields))
	for i, y := range yields {
		if y.Date.Before(first) {
			first = y.Date
		}
		if y.Date.After(last) {
			last = y.Date
		}
		entries[i] = []any{ex.DateOnly(y.Date), y.Yield}
	}

	tx, err := pg.GetTransaction(ctx)
	if err != nil {
		return 0, fmt.Errorf("error beginning transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	args := pgx.NamedArgs{"start_date": ex.DateOnly(first), "end_date": ex.DateOnly(last)}
	if _, err := pg.exec(ctx, q.Get(q.QueryHelper.Delete.ReferenceYieldsInRange), args, tx); err != nil {
		return 0, fmt.Errorf("error clearing reference yields: %w", err)
	}

	ct, err := pg.BulkInsert(ctx, "reference_yield", []string{"value_date", "yield"}, entries, tx)
	if err != nil {
		return 0, fmt.Errorf("error inserting reference yields: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("error committing reference yields: %w", err)
	}

	return ct, nil
}
