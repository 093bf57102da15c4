// Package compliance validates crew assignments against the pilot
// working agreement and FAA Part 117 duty limits. Rules are loaded from
// a YAML rulebook so contract changes do not require a release.
package compliance

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Rulebook holds the contractual and regulatory limits.
type Rulebook struct {
	// MonthlyHourLimit is the maximum block hours per month.
	MonthlyHourLimit float64 `yaml:"monthly_hour_limit"`

	// AnnualHourLimit is the FAA 1,000-hour rolling-year cap.
	AnnualHourLimit float64 `yaml:"annual_hour_limit"`

	// MaxConsecutiveDutyDays before a required rest day.
	MaxConsecutiveDutyDays int `yaml:"max_consecutive_duty_days"`

	// MinRestHours between duty periods.
	MinRestHours float64 `yaml:"min_rest_hours"`

	// MaxFlightDutyPeriodHours caps one duty period end to end.
	MaxFlightDutyPeriodHours float64 `yaml:"max_flight_duty_period_hours"`
}

// DefaultRulebook returns the current PWA and Part 117 limits.
func DefaultRulebook() Rulebook {
	return Rulebook{
		MonthlyHourLimit:         100,
		AnnualHourLimit:          1000,
		MaxConsecutiveDutyDays:   6,
		MinRestHours:             10,
		MaxFlightDutyPeriodHours: 13,
	}
}

// LoadRulebook reads a rulebook from a YAML file. Fields left out of
// the file keep their default values.
func LoadRulebook(path string) (Rulebook, error) {
	rb := DefaultRulebook()
	data, err := os.ReadFile(path)
	if err != nil {
		return Rulebook{}, fmt.Errorf("reading rulebook: %w", err)
	}
	if err := yaml.Unmarshal(data, &rb); err != nil {
		return Rulebook{}, fmt.Errorf("parsing rulebook: %w", err)
	}
	if err := rb.validate(); err != nil {
		return Rulebook{}, fmt.Errorf("invalid rulebook: %w", err)
	}
	return rb, nil
}

func (rb Rulebook) validate() error {
	if rb.MonthlyHourLimit <= 0 {
		return fmt.Errorf("monthly_hour_limit must be positive")
	}
	if rb.AnnualHourLimit <= 0 {
		return fmt.Errorf("annual_hour_limit must be positive")
	}
	if rb.MaxConsecutiveDutyDays <= 0 {
		return fmt.Errorf("max_consecutive_duty_days must be positive")
	}
	if rb.MinRestHours <= 0 {
		return fmt.Errorf("min_rest_hours must be positive")
	}
	if rb.MaxFlightDutyPeriodHours <= 0 {
		return fmt.Errorf("max_flight_duty_period_hours must be positive")
	}
	return nil
}
