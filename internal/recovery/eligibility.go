package recovery

import "github.com/phantom-air/irops/internal/models"

// MinMonthlyHours is the contractual floor for picking up a new trip.
// A candidate must have strictly more than this many monthly hours left.
const MinMonthlyHours = 8.0

// rebookingMaxRank limits rebooking options to the top pre-ranked
// alternates per booking.
const rebookingMaxRank = 3

// EligibleCrew reduces a crew pool to candidates legally and
// operationally usable for the given disruption: matching role,
// currently available, and above the monthly-hours floor. Order is
// preserved; an empty result is valid.
func EligibleCrew(d models.Disruption, pool []models.CrewCandidate) []models.CrewCandidate {
	out := make([]models.CrewCandidate, 0, len(pool))
	for _, c := range pool {
		if c.Role != d.RequiredRole {
			continue
		}
		if c.Availability != models.CrewAvailable {
			continue
		}
		if c.HoursRemaining <= MinMonthlyHours {
			continue
		}
		out = append(out, c)
	}
	return out
}

// EligibleAircraft keeps only operationally available airframes.
func EligibleAircraft(pool []models.AircraftCandidate) []models.AircraftCandidate {
	out := make([]models.AircraftCandidate, 0, len(pool))
	for _, a := range pool {
		if !a.Operational {
			continue
		}
		out = append(out, a)
	}
	return out
}

// EligibleRebooking keeps options with seats left, limited to the top
// pre-ranked alternates per booking.
func EligibleRebooking(pool []models.RebookingCandidate) []models.RebookingCandidate {
	out := make([]models.RebookingCandidate, 0, len(pool))
	for _, r := range pool {
		if r.SeatsAvailable <= 0 {
			continue
		}
		if r.OptionRank < 1 || r.OptionRank > rebookingMaxRank {
			continue
		}
		out = append(out, r)
	}
	return out
}
