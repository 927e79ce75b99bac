package config

import (
	"fmt"
	"log"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

const (
	BrvmSourceScrape = "scrape"
	BrvmSourceSheet  = "sheet"

	FormulaChangeOverOpen     = "change_over_open"
	FormulaCloseOverPrevClose = "close_over_prev_close"
)

type Config struct {
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	HTTP      HTTP
	API       API
	Brvm      Brvm
	Quotes    Quotes
	Dashboard Dashboard
	Jobs      Jobs
}

type HTTP struct {
	Addr               string        `env:"HTTP_ADDR" envDefault:":8000"`
	ReadTimeout        time.Duration `env:"HTTP_READ_TIMEOUT" envDefault:"5s"`
	WriteTimeout       time.Duration `env:"HTTP_WRITE_TIMEOUT" envDefault:"30s"`
	ShutdownTimeout    time.Duration `env:"HTTP_SHUTDOWN_TIMEOUT" envDefault:"10s"`
	StaticDir          string        `env:"STATIC_DIR" envDefault:"./static"`
	CorsAllowedOrigins []string      `env:"CORS_ALLOWED_ORIGINS" envDefault:"*"`
}

type API struct {
	Debug     bool          `env:"API_DEBUG" envDefault:"false"`
	Timeout   time.Duration `env:"API_TIMEOUT" envDefault:"10s"`
	UserAgent string        `env:"API_USER_AGENT" envDefault:"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7)"`
	NgxApi    NgxApi
	BrvmSite  BrvmSite
}

type NgxApi struct {
	Url      string `env:"NGX_API_URL" envDefault:"https://doclib.ngxgroup.com"`
	Path     string `env:"NGX_API_PATH" envDefault:"/REST/api/statistics/equities/"`
	PageSize int    `env:"NGX_PAGE_SIZE" envDefault:"300"`
}

type BrvmSite struct {
	Url                string   `env:"BRVM_SITE_URL" envDefault:"https://www.brvm.org/fr/cours-actions/0"`
	InsecureSkipVerify bool     `env:"BRVM_INSECURE_SKIP_VERIFY" envDefault:"true"`
	TableHeaders       []string `env:"BRVM_TABLE_HEADERS" envDefault:"Symbole,Cours Clôture (FCFA)"`
}

type Brvm struct {
	Source    string `env:"BRVM_SOURCE" envDefault:"scrape"`
	SheetPath string `env:"BRVM_SHEET_PATH" envDefault:"brvm_data.xlsx"`
	MaxRows   int    `env:"BRVM_MAX_ROWS" envDefault:"0"`
}

type Quotes struct {
	ChangePctFormula string `env:"CHANGE_PCT_FORMULA" envDefault:"change_over_open"`
}

type Dashboard struct {
	PollInterval time.Duration `env:"DASHBOARD_POLL_INTERVAL" envDefault:"60s"`
}

type Jobs struct {
	BrvmSnapshotInterval time.Duration `env:"BRVM_SNAPSHOT_INTERVAL" envDefault:"0s"`
}

func MustLoad() *Config {
	_ = godotenv.Load(".env")

	cfg, err := Parse()
	if err != nil {
		log.Fatalf("parse config error: %s", err)
	}

	return cfg
}

// Parse reads the config from the process environment only.
func Parse() (*Config, error) {
	cfg := &Config{}

	opts := env.Options{RequiredIfNoDef: true}

	if err := env.ParseWithOptions(cfg, opts); err != nil {
		return nil, err
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	switch c.Brvm.Source {
	case BrvmSourceScrape, BrvmSourceSheet:
	default:
		return fmt.Errorf("unknown BRVM_SOURCE %q", c.Brvm.Source)
	}

	switch c.Quotes.ChangePctFormula {
	case FormulaChangeOverOpen, FormulaCloseOverPrevClose:
	default:
		return fmt.Errorf("unknown CHANGE_PCT_FORMULA %q", c.Quotes.ChangePctFormula)
	}

	if c.API.Timeout <= 0 {
		return fmt.Errorf("API_TIMEOUT must be positive, got %s", c.API.Timeout)
	}

	if c.Brvm.MaxRows < 0 {
		return fmt.Errorf("BRVM_MAX_ROWS must not be negative, got %d", c.Brvm.MaxRows)
	}

	return nil
}
