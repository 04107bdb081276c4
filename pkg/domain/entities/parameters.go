package entities

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// PlanningParameters are the run-scoped constants shared by every planning pass
type PlanningParameters struct {
	Today             time.Time       `json:"today"`
	LeadTimeDays      int             `json:"lead_time_days"`
	CapacityTolerance decimal.Decimal `json:"capacity_tolerance"`
	MinCapacityRemain decimal.Decimal `json:"min_capacity_remain"`
	FarFutureDate     time.Time       `json:"far_future_date"`
	SplitThreshold    decimal.Decimal `json:"split_threshold"`
	LookbackDays      int             `json:"lookback_days"`
	HorizonDays       int             `json:"horizon_days"`
}

// DefaultPlanningParameters returns the factory defaults anchored at today
func DefaultPlanningParameters(today time.Time) PlanningParameters {
	return PlanningParameters{
		Today:             Day(today),
		LeadTimeDays:      40,
		CapacityTolerance: decimal.NewFromInt(2000),
		MinCapacityRemain: decimal.NewFromInt(-2000),
		FarFutureDate:     time.Date(2200, 12, 31, 0, 0, 0, 0, time.UTC),
		SplitThreshold:    decimal.NewFromInt(1000),
		LookbackDays:      30,
		HorizonDays:       365,
	}
}

// Validate checks the parameters are internally consistent
func (p PlanningParameters) Validate() error {
	if p.Today.IsZero() {
		return fmt.Errorf("%w: today cannot be empty", ErrInvalidParameters)
	}
	if p.LeadTimeDays < 0 {
		return fmt.Errorf("%w: lead time days cannot be negative, got %d", ErrInvalidParameters, p.LeadTimeDays)
	}
	if p.CapacityTolerance.IsNegative() {
		return fmt.Errorf("%w: capacity tolerance cannot be negative, got %s", ErrInvalidParameters, p.CapacityTolerance)
	}
	if p.MinCapacityRemain.IsPositive() {
		return fmt.Errorf("%w: min capacity remain cannot be positive, got %s", ErrInvalidParameters, p.MinCapacityRemain)
	}
	if !p.SplitThreshold.IsPositive() {
		return fmt.Errorf("%w: split threshold must be positive, got %s", ErrInvalidParameters, p.SplitThreshold)
	}
	if p.LookbackDays < 0 {
		return fmt.Errorf("%w: lookback days cannot be negative, got %d", ErrInvalidParameters, p.LookbackDays)
	}
	if p.HorizonDays <= 0 {
		return fmt.Errorf("%w: horizon days must be positive, got %d", ErrInvalidParameters, p.HorizonDays)
	}
	if !p.FarFutureDate.After(p.Today) {
		return fmt.Errorf("%w: far future date %s must be after today %s",
			ErrInvalidParameters, p.FarFutureDate.Format(DateLayout), p.Today.Format(DateLayout))
	}
	return nil
}
