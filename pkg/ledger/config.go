package ledger

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

var (
	ErrEmptyName        = errors.New("wish name is required")
	ErrNonPositivePrice = errors.New("wish price must be positive")
	ErrWishNotFound     = errors.New("wish not found")
	ErrInvalidConfig    = errors.New("invalid work config")
	ErrInvalidGoal      = errors.New("savings goal must be positive")
)

var secondsPerHour = decimal.NewFromInt(3600)

// WorkConfig describes the salary the per-second rate is derived from.
type WorkConfig struct {
	AnnualSalary decimal.Decimal `json:"annual_salary"`
	DaysPerYear  decimal.Decimal `json:"days_per_year"`
	HoursPerDay  decimal.Decimal `json:"hours_per_day"`
}

// Validate checks that every field is positive.
func (c WorkConfig) Validate() error {
	switch {
	case !c.AnnualSalary.IsPositive():
		return fmt.Errorf("%w: annual salary %s", ErrInvalidConfig, c.AnnualSalary)
	case !c.DaysPerYear.IsPositive():
		return fmt.Errorf("%w: days per year %s", ErrInvalidConfig, c.DaysPerYear)
	case !c.HoursPerDay.IsPositive():
		return fmt.Errorf("%w: hours per day %s", ErrInvalidConfig, c.HoursPerDay)
	}
	return nil
}

// DailyTarget is the amount committed when a session ends.
func (c WorkConfig) DailyTarget() decimal.Decimal {
	if !c.DaysPerYear.IsPositive() {
		return decimal.Zero
	}
	return c.AnnualSalary.Div(c.DaysPerYear)
}

// PerSecondRate is the amount accrued on every clock tick.
func (c WorkConfig) PerSecondRate() decimal.Decimal {
	seconds := c.HoursPerDay.Mul(secondsPerHour)
	if !seconds.IsPositive() {
		return decimal.Zero
	}
	return c.DailyTarget().Div(seconds)
}

// ConfigPatch is a partial WorkConfig; nil fields are left unchanged.
type ConfigPatch struct {
	AnnualSalary *decimal.Decimal
	DaysPerYear  *decimal.Decimal
	HoursPerDay  *decimal.Decimal
}

// Apply returns c with the non-nil patch fields substituted.
func (p ConfigPatch) Apply(c WorkConfig) WorkConfig {
	if p.AnnualSalary != nil {
		c.AnnualSalary = *p.AnnualSalary
	}
	if p.DaysPerYear != nil {
		c.DaysPerYear = *p.DaysPerYear
	}
	if p.HoursPerDay != nil {
		c.HoursPerDay = *p.HoursPerDay
	}
	return c
}

// PatchFrom builds a patch that replaces every field with those of c.
func PatchFrom(c WorkConfig) ConfigPatch {
	return ConfigPatch{
		AnnualSalary: &c.AnnualSalary,
		DaysPerYear:  &c.DaysPerYear,
		HoursPerDay:  &c.HoursPerDay,
	}
}
