// Package recovery implements the recovery-ranking core: eligibility
// filtering, fit scoring, priority ranking, and recovery sessions that
// bind one disruption to a ranked candidate snapshot and at most one
// committed remediation.
package recovery

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/phantom-air/irops/internal/logging"
	"github.com/phantom-air/irops/internal/models"
)

// CandidateKind tags snapshot entries with their variant.
type CandidateKind string

const (
	CandidateCrew      CandidateKind = "crew"
	CandidateAircraft  CandidateKind = "aircraft"
	CandidateRebooking CandidateKind = "rebooking"
)

// RankedCandidate is one entry of a session's immutable snapshot.
type RankedCandidate struct {
	Position int           `json:"position"`
	ID       string        `json:"id"`
	Kind     CandidateKind `json:"kind"`
	Score    float64       `json:"score"`
	Summary  string        `json:"summary"`
}

// Session binds one disruption to the ranked candidate list shown to an
// operator. The snapshot is fixed at Open; Commit validates against it,
// never against live warehouse state.
type Session struct {
	ID         string            `json:"id"`
	Disruption models.Disruption `json:"disruption"`
	Candidates []RankedCandidate `json:"candidates"`
	CreatedAt  time.Time         `json:"created_at"`
}

// Candidate returns the snapshot entry with the given ID, or nil.
func (s *Session) Candidate(id string) *RankedCandidate {
	for i := range s.Candidates {
		if s.Candidates[i].ID == id {
			return &s.Candidates[i]
		}
	}
	return nil
}

// CandidateSource fetches remediation pools from the backing store.
// Implementations return read-only snapshots; the session layer never
// mutates them.
type CandidateSource interface {
	CrewPool(ctx context.Context, role models.CrewRole) ([]models.CrewCandidate, error)
	AircraftPool(ctx context.Context) ([]models.AircraftCandidate, error)
	RebookingPool(ctx context.Context, bookingID string) ([]models.RebookingCandidate, error)
}

// Resolver applies a committed remediation to the backing store, e.g.
// writing the crew assignment and clearing the gap.
type Resolver interface {
	ResolveDisruption(ctx context.Context, d models.Disruption, candidateID string) error
}

// SessionStore durably persists sessions and assignments. SaveAssignment
// must enforce at most one assignment per disruption; a conflicting save
// fails with ErrAlreadyCommitted.
type SessionStore interface {
	SaveSession(ctx context.Context, s *Session) error
	GetSession(ctx context.Context, id string) (*Session, error)
	SaveAssignment(ctx context.Context, a models.Assignment) error
	AssignmentForDisruption(ctx context.Context, disruptionID string) (*models.Assignment, error)
	Close() error
}

// Manager runs recovery sessions over a candidate source and a durable
// session store.
type Manager struct {
	src      CandidateSource
	store    SessionStore
	resolver Resolver
	scorer   *FitScorer
	log      *slog.Logger
}

// NewManager creates a session manager. The resolver may be nil when
// commits should only be recorded locally (dry-run tooling).
func NewManager(src CandidateSource, store SessionStore, resolver Resolver) *Manager {
	return &Manager{
		src:      src,
		store:    store,
		resolver: resolver,
		scorer:   NewFitScorer(DefaultScorerConfig()),
		log:      logging.New("session"),
	}
}

// Open fetches, filters, scores, and ranks candidates for a disruption,
// persists the snapshot, and returns the new session. Returns
// ErrNoEligibleCandidates when the filter leaves nothing; that is an
// empty state, not a failure, and the UI renders it as such.
//
// Opening again for the same disruption supersedes prior uncommitted
// state but never touches an existing commitment.
func (m *Manager) Open(ctx context.Context, d models.Disruption) (*Session, error) {
	ranked, err := m.rankedCandidates(ctx, d)
	if err != nil {
		return nil, err
	}
	if len(ranked) == 0 {
		return nil, ErrNoEligibleCandidates
	}

	sess := &Session{
		ID:         uuid.NewString(),
		Disruption: d,
		Candidates: ranked,
		CreatedAt:  time.Now().UTC(),
	}
	if err := m.store.SaveSession(ctx, sess); err != nil {
		return nil, fmt.Errorf("saving session: %w", err)
	}

	m.log.Info("session opened",
		"session_id", sess.ID,
		"disruption_id", d.ID,
		"kind", d.Kind,
		"candidates", len(ranked),
	)
	return sess, nil
}

// Commit accepts one candidate from the session's snapshot. It marks
// the disruption resolved in the backing store and records the
// assignment durably. Committing the same candidate again is a no-op
// success returning the existing assignment; a conflicting candidate
// fails with ErrAlreadyCommitted and leaves state untouched.
func (m *Manager) Commit(ctx context.Context, sessionID, candidateID, committer string) (*models.Assignment, error) {
	sess, err := m.store.GetSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if sess.Candidate(candidateID) == nil {
		return nil, fmt.Errorf("%w: %s", ErrUnknownCandidate, candidateID)
	}

	existing, err := m.store.AssignmentForDisruption(ctx, sess.Disruption.ID)
	if err != nil {
		return nil, fmt.Errorf("checking existing assignment: %w", err)
	}
	if existing != nil {
		if existing.CandidateID == candidateID {
			return existing, nil
		}
		return nil, fmt.Errorf("%w: committed to %s", ErrAlreadyCommitted, existing.CandidateID)
	}

	if m.resolver != nil {
		if err := m.resolver.ResolveDisruption(ctx, sess.Disruption, candidateID); err != nil {
			return nil, fmt.Errorf("resolving disruption %s: %w", sess.Disruption.ID, err)
		}
	}

	a := models.Assignment{
		DisruptionID: sess.Disruption.ID,
		SessionID:    sess.ID,
		CandidateID:  candidateID,
		Committer:    committer,
		CommittedAt:  time.Now().UTC(),
	}
	if err := m.store.SaveAssignment(ctx, a); err != nil {
		// Another session committed first. First commit wins; apply the
		// same idempotence rule against what actually landed.
		if errors.Is(err, ErrAlreadyCommitted) {
			winner, lookupErr := m.store.AssignmentForDisruption(ctx, sess.Disruption.ID)
			if lookupErr == nil && winner != nil && winner.CandidateID == candidateID {
				return winner, nil
			}
			return nil, err
		}
		return nil, fmt.Errorf("recording assignment: %w", err)
	}

	m.log.Info("assignment committed",
		"session_id", sess.ID,
		"disruption_id", sess.Disruption.ID,
		"candidate_id", candidateID,
		"committer", committer,
	)
	return &a, nil
}

// rankedCandidates builds the snapshot for a disruption by kind.
func (m *Manager) rankedCandidates(ctx context.Context, d models.Disruption) ([]RankedCandidate, error) {
	switch d.Kind {
	case models.KindCrewGap:
		pool, err := m.src.CrewPool(ctx, d.RequiredRole)
		if err != nil {
			return nil, fmt.Errorf("fetching crew pool: %w", err)
		}
		ranked := RankCrew(m.scorer.ScoreBatch(EligibleCrew(d, pool), d.Origin))
		out := make([]RankedCandidate, len(ranked))
		for i, sc := range ranked {
			out[i] = RankedCandidate{
				Position: i + 1,
				ID:       sc.Candidate.ID,
				Kind:     CandidateCrew,
				Score:    sc.Score,
				Summary: fmt.Sprintf("%s (%s, %s, %.1fh remaining)",
					sc.Candidate.FullName, sc.Candidate.Role, sc.Candidate.BaseAirport, sc.Candidate.HoursRemaining),
			}
		}
		return out, nil

	case models.KindGhostFlight:
		pool, err := m.src.AircraftPool(ctx)
		if err != nil {
			return nil, fmt.Errorf("fetching aircraft pool: %w", err)
		}
		ranked := RankAircraft(m.scorer.ScoreAircraft(EligibleAircraft(pool), d.Origin))
		out := make([]RankedCandidate, len(ranked))
		for i, sa := range ranked {
			out[i] = RankedCandidate{
				Position: i + 1,
				ID:       sa.Candidate.ID,
				Kind:     CandidateAircraft,
				Score:    sa.Score,
				Summary: fmt.Sprintf("%s (%s at %s)",
					sa.Candidate.TailNumber, sa.Candidate.Type, sa.Candidate.CurrentLocation),
			}
		}
		return out, nil

	case models.KindCancelledBooking:
		pool, err := m.src.RebookingPool(ctx, d.BookingID)
		if err != nil {
			return nil, fmt.Errorf("fetching rebooking options: %w", err)
		}
		ranked := RankRebooking(EligibleRebooking(pool))
		out := make([]RankedCandidate, len(ranked))
		for i, r := range ranked {
			out[i] = RankedCandidate{
				Position: i + 1,
				ID:       r.TargetFlightID,
				Kind:     CandidateRebooking,
				Score:    float64(r.LoyaltyTier.PriorityRank()),
				Summary: fmt.Sprintf("%s departing %s (+%dmin, %d seats)",
					r.TargetFlightID, r.TargetDeparture.Format("15:04"), r.WaitMinutes, r.SeatsAvailable),
			}
		}
		return out, nil

	default:
		return nil, fmt.Errorf("unknown disruption kind %q", d.Kind)
	}
}
