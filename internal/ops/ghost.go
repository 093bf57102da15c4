package ops

import (
	"context"
	"fmt"
	"strings"

	"github.com/phantom-air/irops/internal/models"
)

// GhostSummary is the rollup shown above the ghost-flight table.
type GhostSummary struct {
	Total            int     `json:"total_ghost_flights"`
	MissingCrew      int     `json:"missing_crew"`
	MissingAircraft  int     `json:"missing_aircraft"`
	MissingBoth      int     `json:"missing_both"`
	AvgPriority      float64 `json:"avg_priority"`
	TotalPaxAffected int     `json:"total_pax_affected"`
}

// GhostReport pairs today's ghost flights with their rollup.
type GhostReport struct {
	Flights []models.GhostFlight `json:"ghost_flights"`
	Summary GhostSummary         `json:"summary"`
}

// missingCrew reports whether a ghost reason names a crew gap.
func missingCrew(reason string) bool {
	r := strings.ToLower(reason)
	return strings.Contains(r, "crew") ||
		strings.Contains(r, "captain") ||
		strings.Contains(r, "first officer")
}

// missingAircraft reports whether a ghost reason names an aircraft gap.
// "is at" covers the mispositioned-airframe phrasing in upstream data.
func missingAircraft(reason string) bool {
	r := strings.ToLower(reason)
	return strings.Contains(r, "aircraft") || strings.Contains(r, "is at")
}

// SummarizeGhosts classifies each ghost flight by its reason text and
// builds the rollup.
func SummarizeGhosts(flights []models.GhostFlight) GhostSummary {
	s := GhostSummary{Total: len(flights)}
	var prioritySum float64
	for _, f := range flights {
		crew := missingCrew(f.Reason)
		aircraft := missingAircraft(f.Reason)
		if crew {
			s.MissingCrew++
		}
		if aircraft {
			s.MissingAircraft++
		}
		if crew && aircraft {
			s.MissingBoth++
		}
		prioritySum += f.PriorityScore
		s.TotalPaxAffected += f.PassengersBooked
	}
	if len(flights) > 0 {
		s.AvgPriority = prioritySum / float64(len(flights))
	}
	return s
}

// Ghosts fetches today's ghost flights and their summary.
func (s *Service) Ghosts(ctx context.Context) (*GhostReport, error) {
	flights, err := s.q.GhostFlights(ctx)
	if err != nil {
		return nil, err
	}
	return &GhostReport{Flights: flights, Summary: SummarizeGhosts(flights)}, nil
}

// RecommendationPriority orders resolution options for the operator.
type RecommendationPriority string

const (
	PriorityHigh   RecommendationPriority = "HIGH"
	PriorityMedium RecommendationPriority = "MEDIUM"
	PriorityLow    RecommendationPriority = "LOW"
)

// ResolutionType names the remediation paths for a ghost flight.
type ResolutionType string

const (
	ResolveCrewAssignment ResolutionType = "CREW_ASSIGNMENT"
	ResolveAircraftSwap   ResolutionType = "AIRCRAFT_SWAP"
	ResolveCancelFlight   ResolutionType = "CANCEL_FLIGHT"
	ResolveDelayFlight    ResolutionType = "DELAY_FLIGHT"
)

// Recommendation is one suggested resolution path.
type Recommendation struct {
	Type        ResolutionType         `json:"type"`
	Title       string                 `json:"title"`
	Description string                 `json:"description"`
	Priority    RecommendationPriority `json:"priority"`
}

// Recommend derives the resolution options for one ghost flight from
// its reason classification plus the candidate counts. Cancel and delay
// are always offered as fallbacks.
func Recommend(f models.GhostFlight, crewOptions, aircraftOptions int) []Recommendation {
	var recs []Recommendation
	if missingCrew(f.Reason) {
		recs = append(recs, Recommendation{
			Type:        ResolveCrewAssignment,
			Title:       "Assign Available Crew",
			Description: fmt.Sprintf("%d crew members available for assignment", crewOptions),
			Priority:    PriorityHigh,
		})
	}
	if missingAircraft(f.Reason) {
		recs = append(recs, Recommendation{
			Type:        ResolveAircraftSwap,
			Title:       "Swap Aircraft",
			Description: fmt.Sprintf("%d aircraft available for swap", aircraftOptions),
			Priority:    PriorityHigh,
		})
	}
	recs = append(recs,
		Recommendation{
			Type:        ResolveCancelFlight,
			Title:       "Cancel Flight",
			Description: "Cancel and rebook passengers on alternative flights",
			Priority:    PriorityLow,
		},
		Recommendation{
			Type:        ResolveDelayFlight,
			Title:       "Delay Flight",
			Description: "Delay departure to allow resource recovery",
			Priority:    PriorityMedium,
		},
	)
	return recs
}
