package core

import (
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	ex "bondspread/data/extensions"
	dm "bondspread/data/models"
	cal "bondspread/service/calendar"
	sm "bondspread/service/models"
)

// SelectBonds loads the issuer's records for the window and ranks its bonds.
// The report is written to the log as well as returned.
func (sc *ServiceContext) SelectBonds(criteria dm.SelectionCriteria, fromStart bool) (*dm.SelectionResult, error) {
	res, _, err := sc.selectBonds(criteria, fromStart)
	return res, err
}

// AnalyzeBonds selects the most active bonds and compares them pairwise. A
// selection with fewer than two bonds is reported with a warning and no
// spreads.
func (sc *ServiceContext) AnalyzeBonds(criteria dm.SelectionCriteria, fromStart bool) (*sm.AnalysisReport, error) {
	start := time.Now()
	if err := prepareCriteria(&criteria); err != nil {
		return nil, err
	}
	logger := sc.Logger.WithField("issuer", criteria.Issuer)

	var runId int32
	if sc.RunHistory != nil {
		run := dm.NewAnalysisRun(criteria, fromStart)
		if err := sc.RunHistory.InsertAnalysisRun(sc.Context, &run); err != nil {
			logger.WithError(err).Error("error inserting analysis run")
			return nil, err
		}
		runId = run.Id
	}

	logger.Infof("selecting bonds (time: %v)", time.Since(start))
	selection, records, err := sc.selectBonds(criteria, fromStart)
	if err != nil {
		return nil, sc.markRunAsFailure(runId, err)
	}

	report := &sm.AnalysisReport{
		RunId:     runId,
		Selection: selection,
		Warnings:  []string{},
	}

	if selection.IsEmpty() {
		report.Warnings = append(report.Warnings, "no matching data")
		return report, sc.markRunAsSuccess(runId, 0)
	}

	window := ex.FilterMultiplePtr(CleanTradeRecords(records), func(tr *dm.TradeRecord) bool {
		return tr.Issuer.String == criteria.Issuer && ex.InDateRange(tr.Date, criteria.StartDate, criteria.EndDate)
	})

	if sc.Calendar != nil {
		days := sc.Calendar.TradingDays(criteria.StartDate, criteria.EndDate)
		report.TradingDays = cal.NewDateIndex(days).Labels()
		window = ex.FilterMultiplePtr(window, func(tr *dm.TradeRecord) bool {
			return sc.Calendar.IsTradingDay(tr.Date)
		})
	}

	codes := selection.BondCodes()
	series := BuildBondSeries(window, codes)

	logger.Infof("analyzing %d bonds (time: %v)", len(codes), time.Since(start))
	spreads, err := AnalyzeSpreads(series, codes)
	switch {
	case errors.Is(err, ErrInsufficientBonds):
		report.Warnings = append(report.Warnings, err.Error())
	case err != nil:
		return nil, sc.markRunAsFailure(runId, err)
	default:
		report.Spreads = spreads
		report.Warnings = append(report.Warnings, spreads.Warnings...)
	}

	report.Liquidity = BuildLiquidityPanel(series, codes)

	if sc.ReferenceYields != nil {
		ry, err := sc.referenceSeries(criteria)
		if err != nil {
			// the overlay is optional, the rest of the report still stands
			logger.WithError(err).Warn("error loading reference yields")
			report.Warnings = append(report.Warnings, "reference yields unavailable")
		}
		report.ReferenceYield = ry
	}

	for _, w := range report.Warnings {
		logger.Warn(w)
	}

	logger.Infof("analysis completed (time: %v)", time.Since(start))
	return report, sc.markRunAsSuccess(runId, len(codes))
}

// selectBonds also returns the loaded records so callers can reuse them
func (sc *ServiceContext) selectBonds(criteria dm.SelectionCriteria, fromStart bool) (*dm.SelectionResult, []*dm.TradeRecord, error) {
	if err := prepareCriteria(&criteria); err != nil {
		return nil, nil, err
	}
	logger := sc.Logger.WithField("issuer", criteria.Issuer)

	// the anchor week can begin before the window does
	loadStart := criteria.StartDate
	if fromStart {
		weekStart, _ := ex.WeekBounds(criteria.StartDate)
		loadStart = weekStart
	}

	records, err := sc.Trades.GetTradeRecords(sc.Context, criteria.Issuer, loadStart, criteria.EndDate)
	if err != nil {
		logger.WithError(err).Error("error loading trade records")
		return nil, nil, fmt.Errorf("%w: %v", ErrDataLoad, err)
	}

	var res *dm.SelectionResult
	if fromStart {
		res, err = SelectBondsFromStart(records, criteria)
	} else {
		res, err = SelectBonds(records, criteria)
	}
	if err != nil {
		return nil, nil, err
	}

	logSelection(logger, res)
	return res, records, nil
}

func logSelection(logger *logrus.Entry, res *dm.SelectionResult) {
	if res.AnchorWeek != nil && res.AnchorBonds == 0 {
		logger.Infof("no bonds traded in the week of %s to %s", ex.FmtShort(res.AnchorWeek.Start), ex.FmtShort(res.AnchorWeek.End))
		return
	}
	if res.IsEmpty() {
		logger.Info("no matching data")
		return
	}

	logger.Infof("found %d distinct bonds", res.DistinctBonds)
	for i, b := range res.Top {
		logger.WithField("bond", b.BondCode).Infof("#%d mean daily trades %.2f", i+1, b.MeanTradeCount)
	}
}

func (sc *ServiceContext) referenceSeries(criteria dm.SelectionCriteria) (dm.DatedSeries, error) {
	yields, err := sc.ReferenceYields.GetReferenceYields(sc.Context, criteria.StartDate, criteria.EndDate)
	if err != nil {
		return dm.DatedSeries{}, err
	}

	res := make(dm.DatedSeries, 0, len(yields))
	for _, y := range yields {
		if !ex.InDateRange(y.Date, criteria.StartDate, criteria.EndDate) || !ex.IsFinite(y.Yield) {
			continue
		}
		if sc.Calendar != nil && !sc.Calendar.IsTradingDay(y.Date) {
			continue
		}
		res = append(res, dm.DatedValue{Date: ex.DateOnly(y.Date), Value: y.Yield})
	}
	return res, nil
}

// markRunAsFailure records err against the run and returns it
func (sc *ServiceContext) markRunAsFailure(runId int32, err error) error {
	if sc.RunHistory == nil || runId == 0 {
		return err
	}
	if uerr := sc.RunHistory.UpdateAnalysisRunAsFailure(sc.Context, runId, err.Error()); uerr != nil {
		sc.Logger.WithError(uerr).Errorf("error marking analysis run %d as failed", runId)
	}
	return err
}

func (sc *ServiceContext) markRunAsSuccess(runId int32, bondCount int) error {
	if sc.RunHistory == nil || runId == 0 {
		return nil
	}
	if err := sc.RunHistory.UpdateAnalysisRunAsSuccess(sc.Context, runId, bondCount); err != nil {
		sc.Logger.WithError(err).Errorf("error marking analysis run %d as succeeded", runId)
		return err
	}
	return nil
}
