package repos

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	ex "bondspread/data/extensions"
	m "bondspread/data/models"
	q "bondspread/data/queries"
)

// InsertAnalysisRun stores a pending run and sets its id and created at
func (pg *Postgres) InsertAnalysisRun(ctx context.Context, run *m.AnalysisRun) error {
	args := pgx.NamedArgs{
		"issuer":       run.Issuer,
		"start_date":   ex.DateOnly(run.StartDate),
		"end_date":     ex.DateOnly(run.EndDate),
		"min_maturity": run.MinMaturity,
		"max_maturity": run.MaxMaturity,
		"from_start":   run.FromStart,
	}

	if err := pg.db.QueryRow(ctx, q.Get(q.QueryHelper.Insert.AnalysisRun), args).Scan(&run.Id, &run.CreatedAt); err != nil {
		return fmt.Errorf("error inserting analysis run: %w", err)
	}

	return nil
}

func (pg *Postgres) GetAnalysisRunByID(ctx context.Context, id int32) (*m.AnalysisRun, error) {
	res, err := QuerySingle[m.AnalysisRun](ctx, pg, q.Get(q.QueryHelper.Select.AnalysisRunById), pgx.NamedArgs{"id": id})
	if err != nil {
		return nil, fmt.Errorf("unable to get analysis run %d: %w", id, err)
	}
	return res, nil
}

func (pg *Postgres) UpdateAnalysisRunAsFailure(ctx context.Context, id int32, errorMessage string) error {
	cleanErrorMessage := strings.TrimSpace(errorMessage)
	if cleanErrorMessage == "" {
		return fmt.Errorf("error message is required if analysis run is failing, occurred in %d", id)
	}

	return pg.updateAnalysisRun(ctx, pgx.NamedArgs{
		"id":            id,
		"bond_count":    0,
		"error_message": cleanErrorMessage,
	})
}

func (pg *Postgres) UpdateAnalysisRunAsSuccess(ctx context.Context, id int32, bondCount int) error {
	return pg.updateAnalysisRun(ctx, pgx.NamedArgs{
		"id":            id,
		"bond_count":    bondCount,
		"error_message": nil,
	})
}

func (pg *Postgres) updateAnalysisRun(ctx context.Context, args pgx.NamedArgs) error {
	if _, err := pg.exec(ctx, q.Get(q.QueryHelper.Update.AnalysisRun), args, nil); err != nil {
		return fmt.Errorf("error updating analysis run: %w", err)
	}
	return nil
}
