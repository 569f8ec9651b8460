package core

import (
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	ex "bondspread/data/extensions"
	dm "bondspread/data/models"
	sm "bondspread/service/models"
)

const DefaultWorkers = 4

// RunPeriods selects and compares bonds for each period over one snapshot of
// the issuer's records. Results follow the order of periods. A period without
// enough bonds gets a warning instead of failing the sweep.
func (sc *ServiceContext) RunPeriods(issuer string, minMaturity, maxMaturity float64, periods []sm.Period) ([]sm.PeriodSummary, error) {
	if len(periods) == 0 {
		return []sm.PeriodSummary{}, nil
	}
	start := time.Now()
	logger := sc.Logger.WithField("issuer", issuer)

	loadStart, loadEnd := periods[0].Start, periods[0].End
	for _, p := range periods[1:] {
		if p.Start.Before(loadStart) {
			loadStart = p.Start
		}
		if p.End.After(loadEnd) {
			loadEnd = p.End
		}
	}

	records, err := sc.Trades.GetTradeRecords(sc.Context, issuer, loadStart, loadEnd)
	if err != nil {
		logger.WithError(err).Error("error loading trade records")
		return nil, fmt.Errorf("%w: %v", ErrDataLoad, err)
	}
	clean := CleanTradeRecords(records)

	workers := sc.Workers
	if workers <= 0 {
		workers = DefaultWorkers
	}

	res := make([]sm.PeriodSummary, len(periods))
	g, ctx := errgroup.WithContext(sc.Context)
	g.SetLimit(workers)

	for i, p := range periods {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			criteria := dm.SelectionCriteria{
				Issuer:      issuer,
				StartDate:   p.Start,
				EndDate:     p.End,
				MinMaturity: minMaturity,
				MaxMaturity: maxMaturity,
			}
			summary, err := summarizePeriod(clean, criteria, p)
			if err != nil {
				return fmt.Errorf("period %s: %w", p.Name, err)
			}

			if summary.Warning != "" {
				logger.WithField("period", p.Name).Warn(summary.Warning)
			}
			res[i] = *summary
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	logger.Infof("summarized %d periods (time: %v)", len(periods), time.Since(start))
	return res, nil
}

// summarizePeriod expects cleaned records
func summarizePeriod(records []*dm.TradeRecord, criteria dm.SelectionCriteria, p sm.Period) (*sm.PeriodSummary, error) {
	selection, err := SelectBonds(records, criteria)
	if err != nil {
		return nil, err
	}

	res := &sm.PeriodSummary{
		Period:  p,
		Bonds:   selection.Top,
		Spreads: []sm.PairSummary{},
	}

	window := ex.FilterMultiplePtr(records, func(tr *dm.TradeRecord) bool {
		return ex.InDateRange(tr.Date, p.Start, p.End)
	})
	codes := selection.BondCodes()

	spreads, err := AnalyzeSpreads(BuildBondSeries(window, codes), codes)
	if errors.Is(err, ErrInsufficientBonds) {
		res.Warning = fmt.Sprintf("%s: %d bonds selected, nothing to compare", p, len(codes))
		return res, nil
	}
	if err != nil {
		return nil, err
	}

	for _, pa := range spreads.Pairs {
		res.Spreads = append(res.Spreads, sm.PairSummary{
			Label:    pa.Label,
			BondA:    pa.BondA,
			BondB:    pa.BondB,
			Summary:  pa.Summary,
			Warnings: pa.Warnings,
		})
	}
	return res, nil
}
