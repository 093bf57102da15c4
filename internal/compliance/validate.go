package compliance

import "fmt"

// CrewDuty is the duty-state snapshot for one crew member at
// validation time.
type CrewDuty struct {
	CrewID              string   `json:"crew_id"`
	MonthlyHoursUsed    float64  `json:"monthly_hours_used"`
	AnnualHours         float64  `json:"annual_hours"`
	ConsecutiveDutyDays int      `json:"consecutive_duty_days"`
	LastRestHours       float64  `json:"last_rest_hours"`
	TypeRatings         []string `json:"type_ratings"`
}

// ProposedAssignment is the trip being validated.
type ProposedAssignment struct {
	FlightID        string  `json:"flight_id"`
	AircraftType    string  `json:"aircraft_type"`
	BlockHours      float64 `json:"block_hours"`
	DutyPeriodHours float64 `json:"duty_period_hours"`
}

// Check is one rule result. Reports carry every check, passed or not,
// so the operator sees the full picture rather than the first failure.
type Check struct {
	Name   string `json:"name"`
	Passed bool   `json:"passed"`
	Detail string `json:"detail"`
}

// Report is the outcome of validating one assignment.
type Report struct {
	Legal  bool    `json:"legal"`
	Checks []Check `json:"checks"`
}

// Validate runs every rulebook check against the proposed assignment.
func (rb Rulebook) Validate(duty CrewDuty, asg ProposedAssignment) Report {
	monthlyRemaining := rb.MonthlyHourLimit - duty.MonthlyHoursUsed

	checks := []Check{
		{
			Name:   "Type Qualification",
			Passed: hasRating(duty.TypeRatings, asg.AircraftType),
			Detail: qualificationDetail(duty.TypeRatings, asg.AircraftType),
		},
		{
			Name:   "Monthly Hours",
			Passed: monthlyRemaining >= asg.BlockHours,
			Detail: fmt.Sprintf("%.1f hrs remaining vs %.1f hrs needed", monthlyRemaining, asg.BlockHours),
		},
		{
			Name:   "Annual Hours",
			Passed: duty.AnnualHours+asg.BlockHours <= rb.AnnualHourLimit,
			Detail: fmt.Sprintf("%.1f hrs vs %.0f limit", duty.AnnualHours+asg.BlockHours, rb.AnnualHourLimit),
		},
		{
			Name:   "Consecutive Days",
			Passed: duty.ConsecutiveDutyDays < rb.MaxConsecutiveDutyDays,
			Detail: fmt.Sprintf("%d days vs %d day limit", duty.ConsecutiveDutyDays, rb.MaxConsecutiveDutyDays),
		},
		{
			Name:   "Rest Period",
			Passed: duty.LastRestHours >= rb.MinRestHours,
			Detail: fmt.Sprintf("%.1f hrs vs %.0f hr minimum", duty.LastRestHours, rb.MinRestHours),
		},
		{
			Name:   "FDP Limit",
			Passed: asg.DutyPeriodHours <= rb.MaxFlightDutyPeriodHours,
			Detail: fmt.Sprintf("%.1f hrs vs %.0f hr limit", asg.DutyPeriodHours, rb.MaxFlightDutyPeriodHours),
		},
	}

	legal := true
	for _, c := range checks {
		if !c.Passed {
			legal = false
			break
		}
	}
	return Report{Legal: legal, Checks: checks}
}

func hasRating(ratings []string, aircraftType string) bool {
	for _, r := range ratings {
		if r == aircraftType {
			return true
		}
	}
	return false
}

func qualificationDetail(ratings []string, aircraftType string) string {
	if hasRating(ratings, aircraftType) {
		return fmt.Sprintf("Qualified for %s", aircraftType)
	}
	return fmt.Sprintf("No type rating for %s", aircraftType)
}
