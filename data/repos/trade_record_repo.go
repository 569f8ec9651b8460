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

var tradeRecordColumns = []string{
	"bond_code", "issuer", "trade_date", "remaining_maturity",
	"yield_to_maturity", "trade_count", "lending_balance",
}

func (pg *Postgres) GetTradeRecords(ctx context.Context, issuer string, start, end time.Time) ([]*m.TradeRecord, error) {
	args := pgx.NamedArgs{
		"issuer":     issuer,
		"start_date": ex.DateOnly(start),
		"end_date":   ex.DateOnly(end),
	}

	res, err := Query[m.TradeRecord](ctx, pg, q.Get(q.QueryHelper.Select.TradeRecordsByIssuer), args)
	if err != nil {
		return nil, fmt.Errorf("unable to query trade records for %s (%s to %s): %w", issuer, ex.FmtShort(start), ex.FmtShort(end), err)
	}
	return res, nil
}

// ReplaceTradeRecords swaps every stored record in the date span covered by
// records for the new batch, inside a single transaction.
func (pg *Postgres) ReplaceTradeRecords(ctx context.Context, records []*m.TradeRecord) (int64, error) {
	if len(records) == 0 {
		return 0, nil
	}

	first, last := records[0].Date, records[0].Date
	entries := make([][]any, len(records))
	for i, rec := range records {
		if rec.Date.Before(first) {
			first = rec.Date
		}
		if rec.Date.After(last) {
			last = rec.Date
		}
		entries[i] = []any{
			rec.BondCode, rec.Issuer, ex.DateOnly(rec.Date), rec.Maturity,
			rec.Yield, rec.TradeCount, rec.LendingBalance,
		}
	}

	tx, err := pg.GetTransaction(ctx)
	if err != nil {
		return 0, fmt.Errorf("error beginning transaction: %w", err)
	}
	defer tx.Rollback(ctx) // no-op once committed

	args := pgx.NamedArgs{"start_date": ex.DateOnly(first), "end_date": ex.DateOnly(last)}
	if _, err := pg.exec(ctx, q.Get(q.QueryHelper.Delete.TradeRecordsInRange), args, tx); err != nil {
		return 0, fmt.Errorf("error clearing trade records between %s and %s: %w", ex.FmtShort(first), ex.FmtShort(last), err)
	}

	ct, err := pg.BulkInsert(ctx, "bond_trade_record", tradeRecordColumns, entries, tx)
	if err != nil {
		return 0, fmt.Errorf("error inserting trade records: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("error committing trade records: %w", err)
	}

	return ct, nil
}
