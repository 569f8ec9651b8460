package core

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	dm "bondspread/data/models"
	cal "bondspread/service/calendar"
)

type TradeRecordSource interface {
	GetTradeRecords(ctx context.Context, issuer string, start, end time.Time) ([]*dm.TradeRecord, error)
}

type ReferenceYieldSource interface {
	GetReferenceYields(ctx context.Context, start, end time.Time) ([]*dm.ReferenceYield, error)
}

type AnalysisRunStore interface {
	InsertAnalysisRun(ctx context.Context, run *dm.AnalysisRun) error
	UpdateAnalysisRunAsSuccess(ctx context.Context, id int32, bondCount int) error
	UpdateAnalysisRunAsFailure(ctx context.Context, id int32, errorMessage string) error
}

// ServiceContext carries the collaborators of a running service. Only
// Trades and Logger are required, the rest are skipped when nil.
type ServiceContext struct {
	Context         context.Context
	Logger          *logrus.Logger
	Trades          TradeRecordSource
	ReferenceYields ReferenceYieldSource
	RunHistory      AnalysisRunStore
	Calendar        cal.Calendar
	Workers         int
}
