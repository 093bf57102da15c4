package recovery

import (
	"sort"

	"github.com/phantom-air/irops/internal/models"
)

// RankCrew orders scored crew descending by fit score, ties broken by
// ascending candidate ID so the total order is deterministic. The input
// slice is not modified.
func RankCrew(scored []ScoredCrew) []ScoredCrew {
	ranked := make([]ScoredCrew, len(scored))
	copy(ranked, scored)
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Score != ranked[j].Score {
			return ranked[i].Score > ranked[j].Score
		}
		return ranked[i].Candidate.ID < ranked[j].Candidate.ID
	})
	return ranked
}

// RankAircraft orders scored aircraft descending by score, ties broken
// by ascending aircraft ID.
func RankAircraft(scored []ScoredAircraft) []ScoredAircraft {
	ranked := make([]ScoredAircraft, len(scored))
	copy(ranked, scored)
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Score != ranked[j].Score {
			return ranked[i].Score > ranked[j].Score
		}
		return ranked[i].Candidate.ID < ranked[j].Candidate.ID
	})
	return ranked
}

// RankRebooking orders rebooking options by loyalty tier rank, then the
// upstream option rank, then minutes after the original departure. The
// sort is stable, so ties beyond those keys keep input order. Callers
// may cap the result for presentation; the full ordering is produced
// here.
func RankRebooking(pool []models.RebookingCandidate) []models.RebookingCandidate {
	ranked := make([]models.RebookingCandidate, len(pool))
	copy(ranked, pool)
	sort.SliceStable(ranked, func(i, j int) bool {
		a, b := ranked[i], ranked[j]
		if ta, tb := a.LoyaltyTier.PriorityRank(), b.LoyaltyTier.PriorityRank(); ta != tb {
			return ta < tb
		}
		if a.OptionRank != b.OptionRank {
			return a.OptionRank < b.OptionRank
		}
		return a.WaitMinutes < b.WaitMinutes
	})
	return ranked
}
