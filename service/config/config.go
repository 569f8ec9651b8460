package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	ex "bondspread/data/extensions"
)

const (
	SourceCSV      = "csv"
	SourcePostgres = "postgres"
)

type Config struct {
	Environment string `yaml:"environment" default:"development"`
	LogLevel    string `yaml:"log_level" default:"info" validate:"oneof=trace debug info warn error"`

	Server struct {
		Addr            string        `yaml:"addr" default:":8080" validate:"required"`
		ReadTimeout     time.Duration `yaml:"read_timeout" default:"10s"`
		WriteTimeout    time.Duration `yaml:"write_timeout" default:"30s"`
		ShutdownTimeout time.Duration `yaml:"shutdown_timeout" default:"10s"`
	} `yaml:"server"`

	// Source picks where trade records are read from. The reference yield
	// workbook is optional in either case.
	Source struct {
		Type               string `yaml:"type" default:"csv" validate:"oneof=csv postgres"`
		TradeCSVPath       string `yaml:"trade_csv_path" validate:"required_if=Type csv"`
		ReferenceYieldPath string `yaml:"reference_yield_path"`
	} `yaml:"source"`

	Database struct {
		URL        string `yaml:"url"`
		RecordRuns bool   `yaml:"record_runs"`
	} `yaml:"database"`

	Analysis struct {
		Workers  int      `yaml:"workers" default:"4" validate:"gte=1,lte=64"`
		Holidays []string `yaml:"holidays" validate:"dive,datetime=2006-01-02"`
	} `yaml:"analysis"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Load applies defaults, then the YAML file at path (if any), then the
// environment. An empty path skips the file.
func Load(path string) (*Config, error) {
	var c Config
	if err := defaults.Set(&c); err != nil {
		return nil, fmt.Errorf("set config defaults: %w", err)
	}

	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(b, &c); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := c.applyEnv(); err != nil {
		return nil, err
	}

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &c, nil
}

func (c *Config) applyEnv() error {
	if v := os.Getenv("DATABASE_URL"); v != "" {
		c.Database.URL = v
	}
	if v := os.Getenv("TRADE_CSV_PATH"); v != "" {
		c.Source.TradeCSVPath = v
	}
	if v := os.Getenv("REFERENCE_YIELD_PATH"); v != "" {
		c.Source.ReferenceYieldPath = v
	}
	if v := os.Getenv("TRADE_SOURCE"); v != "" {
		c.Source.Type = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
	if v := os.Getenv("ANALYSIS_WORKERS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("ANALYSIS_WORKERS must be an integer, got %q", v)
		}
		c.Analysis.Workers = n
	}
	return nil
}

// Validate checks field rules and that a database is configured whenever
// something needs one
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return err
	}
	if c.NeedsDatabase() && c.Database.URL == "" {
		return fmt.Errorf("database.url is required for source %q with record_runs=%t", c.Source.Type, c.Database.RecordRuns)
	}
	return nil
}

func (c *Config) NeedsDatabase() bool {
	return c.Source.Type == SourcePostgres || c.Database.RecordRuns
}

func (c *Config) Holidays() ([]time.Time, error) {
	res := make([]time.Time, 0, len(c.Analysis.Holidays))
	for _, h := range c.Analysis.Holidays {
		t, err := ex.ParseShort(h)
		if err != nil {
			return nil, fmt.Errorf("invalid holiday %q: %w", h, err)
		}
		res = append(res, t)
	}
	return res, nil
}
