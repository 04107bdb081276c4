package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/shopspring/decimal"
	"github.com/vsinha/etd/pkg/domain/entities"
)

// EnvPrefix is prepended to every configuration key
const EnvPrefix = "ETD"

// Config holds the run-scoped planning constants and logging settings
type Config struct {
	LeadTimeDays      int             `envconfig:"LEAD_TIME_DAYS" default:"40" validate:"gte=0"`
	CapacityTolerance decimal.Decimal `envconfig:"CAPACITY_TOLERANCE" default:"2000"`
	MinCapacityRemain decimal.Decimal `envconfig:"MIN_CAPACITY_REMAIN" default:"-2000"`
	FarFutureDate     string          `envconfig:"FAR_FUTURE_DATE" default:"2200-12-31" validate:"required,datetime=2006-01-02"`
	Today             string          `envconfig:"TODAY" validate:"omitempty,datetime=2006-01-02"`
	SplitThreshold    decimal.Decimal `envconfig:"SPLIT_THRESHOLD" default:"1000"`
	LookbackDays      int             `envconfig:"LOOKBACK_DAYS" default:"30" validate:"gte=0"`
	HorizonDays       int             `envconfig:"HORIZON_DAYS" default:"365" validate:"gt=0"`
	LogLevel          string          `envconfig:"LOG_LEVEL" default:"info" validate:"oneof=trace debug info warn error fatal panic disabled"`
	LogFormat         string          `envconfig:"LOG_FORMAT" default:"console" validate:"oneof=console json"`
}

// Load reads an optional .env file from envFile, then the process
// environment. An empty envFile skips the .env step.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("loading %s: %w", envFile, err)
		}
	}

	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks field tags and the decimal bounds validator tags cannot express
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("%w: %w", entities.ErrInvalidParameters, err)
	}
	if c.CapacityTolerance.IsNegative() {
		return fmt.Errorf("%w: CAPACITY_TOLERANCE cannot be negative, got %s", entities.ErrInvalidParameters, c.CapacityTolerance)
	}
	if c.MinCapacityRemain.IsPositive() {
		return fmt.Errorf("%w: MIN_CAPACITY_REMAIN cannot be positive, got %s", entities.ErrInvalidParameters, c.MinCapacityRemain)
	}
	if !c.SplitThreshold.IsPositive() {
		return fmt.Errorf("%w: SPLIT_THRESHOLD must be positive, got %s", entities.ErrInvalidParameters, c.SplitThreshold)
	}
	return nil
}

// Parameters resolves the planning parameters. An empty Today means the
// local calendar date of now.
func (c *Config) Parameters(now time.Time) (entities.PlanningParameters, error) {
	today := entities.Day(now)
	if c.Today != "" {
		parsed, err := time.Parse(entities.DateLayout, c.Today)
		if err != nil {
			return entities.PlanningParameters{}, fmt.Errorf("%w: TODAY: %w", entities.ErrInvalidParameters, err)
		}
		today = parsed
	}
	farFuture, err := time.Parse(entities.DateLayout, c.FarFutureDate)
	if err != nil {
		return entities.PlanningParameters{}, fmt.Errorf("%w: FAR_FUTURE_DATE: %w", entities.ErrInvalidParameters, err)
	}

	params := entities.PlanningParameters{
		Today:             today,
		LeadTimeDays:      c.LeadTimeDays,
		CapacityTolerance: c.CapacityTolerance,
		MinCapacityRemain: c.MinCapacityRemain,
		FarFutureDate:     farFuture,
		SplitThreshold:    c.SplitThreshold,
		LookbackDays:      c.LookbackDays,
		HorizonDays:       c.HorizonDays,
	}
	if err := params.Validate(); err != nil {
		return entities.PlanningParameters{}, err
	}
	return params, nil
}
