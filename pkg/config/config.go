package config

import (
	"time"

	"github.com/shopspring/decimal"
)

type DB struct {
	Url    string `envconfig:"URL"`
	Driver string `envconfig:"DRIVER" default:"postgres"` // postgres or sqlite
}

type Jwt struct {
	Secret string        `envconfig:"SECRET" required:"true"`
	Expiry time.Duration `envconfig:"EXPIRY" default:"24h"`
}

type Auth struct {
	Jwt *Jwt `envconfig:"JWT"`
}

type RateLimit struct {
	MaxRequests int           `envconfig:"MAX_REQUESTS" default:"100"`
	Window      time.Duration `envconfig:"WINDOW" default:"1m"`
}

// Fee carries the platform-wide fee configuration. Company- and
// property-level settings take precedence; these are the last-resort
// defaults.
type Fee struct {
	// DefaultCommissionPercent is the commission fallback when neither the
	// property nor the company configures one. Zero means "not configured":
	// reconciliation fails with a configuration error rather than silently
	// taking no fee.
	DefaultCommissionPercent decimal.Decimal `envconfig:"DEFAULT_COMMISSION_PERCENT" default:"0"`
	CashoutFeePercent        decimal.Decimal `envconfig:"CASHOUT_FEE_PERCENT" default:"3"`
	MinCashoutAmount         decimal.Decimal `envconfig:"MIN_CASHOUT_AMOUNT" default:"100"`
	// ReconcileMaxRetries bounds internal retries on concurrent modification.
	ReconcileMaxRetries int `envconfig:"RECONCILE_MAX_RETRIES" default:"3"`
}

type Log struct {
	Level      int    `envconfig:"LEVEL" default:"0"`
	Format     string `envconfig:"FORMAT" default:"json"`
	TimeFormat string `envconfig:"TIME_FORMAT" default:"2006-01-02 15:04:05"`
	Prefix     string `envconfig:"PREFIX" default:"[rentledger]"`
}

type Server struct {
	Scheme string `envconfig:"SCHEME" default:"http"`
	Host   string `envconfig:"HOST" default:"localhost"`
	Port   int    `envconfig:"PORT" default:"3000"`
}

type App struct {
	Env       string     `envconfig:"APP_ENV" default:"development"`
	Server    *Server    `envconfig:"SERVER"`
	Log       *Log       `envconfig:"LOG"`
	DB        *DB        `envconfig:"DATABASE"`
	Auth      *Auth      `envconfig:"AUTH"`
	RateLimit *RateLimit `envconfig:"RATE_LIMIT"`
	Fee       *Fee       `envconfig:"FEE"`
}
