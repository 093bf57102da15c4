package recovery

import (
	"math"

	"github.com/phantom-air/irops/internal/models"
)

// ScorerConfig configures the crew fit scorer.
//
// The score blends three signals:
//   - monthly hours remaining, scaled against a 100-hour month
//   - years of service, scaled against a 30-year career
//   - a home-base bonus when the candidate is already at the origin
type ScorerConfig struct {
	// HoursWeight is the maximum contribution of remaining monthly hours.
	HoursWeight float64

	// ServiceWeight is the maximum contribution of seniority.
	ServiceWeight float64

	// HomeBaseBonus applies when the candidate's base equals the
	// disrupted flight's origin; AwayBaseBonus applies otherwise.
	HomeBaseBonus float64
	AwayBaseBonus float64
}

// DefaultScorerConfig returns the production scoring weights:
// hours 40, service 30, base bonus 30/10.
func DefaultScorerConfig() ScorerConfig {
	return ScorerConfig{
		HoursWeight:   40,
		ServiceWeight: 30,
		HomeBaseBonus: 30,
		AwayBaseBonus: 10,
	}
}

const (
	hoursScale   = 100.0 // nominal monthly hours
	serviceScale = 30.0  // nominal career years
)

// FitScorer computes crew suitability scores. It is pure: the score is a
// function of the candidate and the flight origin only.
type FitScorer struct {
	config ScorerConfig
}

// NewFitScorer creates a scorer with the given config. Zero weights are
// replaced with the defaults.
func NewFitScorer(config ScorerConfig) *FitScorer {
	def := DefaultScorerConfig()
	if config.HoursWeight == 0 {
		config.HoursWeight = def.HoursWeight
	}
	if config.ServiceWeight == 0 {
		config.ServiceWeight = def.ServiceWeight
	}
	if config.HomeBaseBonus == 0 {
		config.HomeBaseBonus = def.HomeBaseBonus
	}
	if config.AwayBaseBonus == 0 {
		config.AwayBaseBonus = def.AwayBaseBonus
	}
	return &FitScorer{config: config}
}

// ScoredCrew is a crew candidate with its fit score and component
// breakdown for operator transparency.
type ScoredCrew struct {
	Candidate models.CrewCandidate
	Score     float64

	HoursScore   float64
	ServiceScore float64
	BaseBonus    float64
}

// Score computes the fit score for one candidate against the disrupted
// flight's origin, rounded to one decimal place.
//
// Inputs are deliberately not clamped: hours or seniority outside the
// nominal ranges push the score outside 0-100, and callers must not
// assume a hard bound.
func (s *FitScorer) Score(c models.CrewCandidate, origin string) ScoredCrew {
	scored := ScoredCrew{
		Candidate:    c,
		HoursScore:   c.HoursRemaining / hoursScale * s.config.HoursWeight,
		ServiceScore: c.YearsOfService / serviceScale * s.config.ServiceWeight,
		BaseBonus:    s.config.AwayBaseBonus,
	}
	if c.BaseAirport == origin {
		scored.BaseBonus = s.config.HomeBaseBonus
	}
	scored.Score = round1(scored.HoursScore + scored.ServiceScore + scored.BaseBonus)
	return scored
}

// ScoreBatch scores every candidate in the pool, preserving order.
func (s *FitScorer) ScoreBatch(pool []models.CrewCandidate, origin string) []ScoredCrew {
	results := make([]ScoredCrew, len(pool))
	for i, c := range pool {
		results[i] = s.Score(c, origin)
	}
	return results
}

// ScoredAircraft mirrors ScoredCrew for aircraft swaps. Aircraft have no
// fit formula; the score is the positioning bonus alone so that frames
// already at the origin rank first.
type ScoredAircraft struct {
	Candidate models.AircraftCandidate
	Score     float64
}

// ScoreAircraft scores an aircraft pool against the disrupted flight's
// origin using the base bonus weights.
func (s *FitScorer) ScoreAircraft(pool []models.AircraftCandidate, origin string) []ScoredAircraft {
	results := make([]ScoredAircraft, len(pool))
	for i, a := range pool {
		score := s.config.AwayBaseBonus
		if a.CurrentLocation == origin {
			score = s.config.HomeBaseBonus
		}
		results[i] = ScoredAircraft{Candidate: a, Score: score}
	}
	return results
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
