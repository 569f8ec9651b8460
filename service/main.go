package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	ex "bondspread/data/extensions"
	m "bondspread/data/models"
	r "bondspread/data/repos"
	src "bondspread/data/sources"
	cal "bondspread/service/calendar"
	"bondspread/service/config"
	c "bondspread/service/core"
)

func main() {
	configPath := flag.String("config", "", "path to a YAML config file")
	ingestTrades := flag.String("ingest-trades", "", "load a trade export CSV into postgres and exit")
	ingestYields := flag.String("ingest-yields", "", "load a reference yield workbook into postgres and exit")
	flag.Parse()

	// initialize context and signal handler, listen for interrupt and term signals
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// load in environment variables from .env file
	envErr := godotenv.Load()

	cfg, err := config.Load(*configPath)
	if err != nil {
		logrus.Fatalf("Failed to load config: %v", err)
	}

	logger := config.NewLogger(cfg.LogLevel)
	if envErr != nil {
		logger.Debugf(".env not loaded: %v", envErr)
	}

	var pg *r.Postgres
	if cfg.NeedsDatabase() || *ingestTrades != "" || *ingestYields != "" {
		pg, err = r.GetPostgresConnection(ctx, cfg.Database.URL)
		if err != nil {
			logger.Fatalf("Failed to connect to database: %v", err)
		}
		defer pg.Close()

		if err := pg.EnsureSchema(ctx); err != nil {
			logger.Fatalf("Failed to create schema: %v", err)
		}
	}

	if *ingestTrades != "" || *ingestYields != "" {
		if err := ingest(ctx, logger, pg, *ingestTrades, *ingestYields); err != nil {
			logger.Fatalf("Ingest failed: %v", err)
		}
		return
	}

	sc, err := buildServiceContext(ctx, logger, cfg, pg)
	if err != nil {
		logger.Fatalf("Failed to build service: %v", err)
	}

	// get http server, makes all of the endpoints and routes
	s := c.GetHttpServer(sc, c.ServerOptions{
		Addr:         cfg.Server.Addr,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	})

	go func() {
		logger.Infof("Starting bond spread server on %s (trade source: %s)", s.Addr, cfg.Source.Type)
		if err := s.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("Server error: %v", err)
		}
	}()

	// wait here until the context is closed (ie, ctrl+C)
	<-ctx.Done()
	logger.Info("Received shutdown signal, shutting down gracefully...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()

	if err := s.Shutdown(shutdownCtx); err != nil {
		logger.Errorf("Server shutdown error: %v", err)
	}

	logger.Info("Server stopped successfully")
}

func buildServiceContext(ctx context.Context, logger *logrus.Logger, cfg *config.Config, pg *r.Postgres) (*c.ServiceContext, error) {
	holidays, err := cfg.Holidays()
	if err != nil {
		return nil, err
	}

	sc := &c.ServiceContext{
		Context:  ctx,
		Logger:   logger,
		Calendar: cal.NewWeekdayCalendar(holidays),
		Workers:  cfg.Analysis.Workers,
	}

	switch cfg.Source.Type {
	case config.SourcePostgres:
		sc.Trades = pg
		sc.ReferenceYields = pg
	default:
		sc.Trades = src.CSVTradeSource{Path: cfg.Source.TradeCSVPath}
	}

	// a workbook on disk wins over stored yields
	if cfg.Source.ReferenceYieldPath != "" {
		sc.ReferenceYields = src.ExcelReferenceSource{Path: cfg.Source.ReferenceYieldPath}
	}

	if cfg.Database.RecordRuns {
		sc.RunHistory = pg
	}

	return sc, nil
}

func ingest(ctx context.Context, logger *logrus.Logger, pg *r.Postgres, tradesPath, yieldsPath string) error {
	if tradesPath != "" {
		records, err := src.LoadTradeRecordsCSV(tradesPath)
		if err != nil {
			return err
		}

		// undated rows cannot be placed in any window
		dated := ex.FilterMultiplePtr(records, func(tr *m.TradeRecord) bool { return !tr.Date.IsZero() })
		ct, err := pg.ReplaceTradeRecords(ctx, dated)
		if err != nil {
			return err
		}
		logger.Infof("read %d trade records from %s, inserted %d", len(records), tradesPath, ct)
	}

	if yieldsPath != "" {
		yields, err := src.LoadReferenceYieldsExcel(yieldsPath)
		if err != nil {
			return err
		}

		ct, err := pg.ReplaceReferenceYields(ctx, yields)
		if err != nil {
			return err
		}
		logger.Infof("read %d reference yields from %s, inserted %d", len(yields), yieldsPath, ct)
	}

	return nil
}
