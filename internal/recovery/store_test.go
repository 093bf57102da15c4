package recovery

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/phantom-air/irops/internal/models"
)

func sampleSession() *Session {
	return &Session{
		ID: "sess-1",
		Disruption: models.Disruption{
			ID:           "PA1234-CREW_GAP",
			Kind:         models.KindCrewGap,
			FlightID:     "PA1234",
			Origin:       "ATL",
			AircraftType: "B737-800",
			RequiredRole: models.RoleCaptain,
		},
		Candidates: []RankedCandidate{
			{Position: 1, ID: "C1", Kind: CandidateCrew, Score: 74.0, Summary: "Dana Whitfield (CAPTAIN, ATL, 60.0h remaining)"},
			{Position: 2, ID: "C2", Kind: CandidateCrew, Score: 47.0, Summary: "Ray Okafor (CAPTAIN, DTW, 80.0h remaining)"},
		},
		CreatedAt: time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC),
	}
}

func TestSQLiteStore_SaveAndGetSession(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()

	want := sampleSession()
	if err := store.SaveSession(ctx, want); err != nil {
		t.Fatalf("SaveSession: %v", err)
	}

	got, err := store.GetSession(ctx, "sess-1")
	if err != nil {
		t.Fatalf("GetSession: %v", err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("session round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestSQLiteStore_GetSession_NotFound(t *testing.T) {
	store := testStore(t)

	_, err := store.GetSession(context.Background(), "missing")
	if !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("expected ErrSessionNotFound, got %v", err)
	}
}

func TestSQLiteStore_AssignmentUniquePerDisruption(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()

	first := models.Assignment{
		DisruptionID: "PA1234-CREW_GAP",
		SessionID:    "sess-1",
		CandidateID:  "C1",
		Committer:    "ops-desk",
		CommittedAt:  time.Date(2026, 3, 14, 12, 5, 0, 0, time.UTC),
	}
	if err := store.SaveAssignment(ctx, first); err != nil {
		t.Fatalf("first SaveAssignment: %v", err)
	}

	second := first
	second.CandidateID = "C2"
	err := store.SaveAssignment(ctx, second)
	if !errors.Is(err, ErrAlreadyCommitted) {
		t.Fatalf("expected ErrAlreadyCommitted, got %v", err)
	}

	got, err := store.AssignmentForDisruption(ctx, "PA1234-CREW_GAP")
	if err != nil {
		t.Fatalf("AssignmentForDisruption: %v", err)
	}
	if diff := cmp.Diff(&first, got); diff != "" {
		t.Errorf("winning assignment mismatch (-want +got):\n%s", diff)
	}
}

func TestSQLiteStore_AssignmentForDisruption_NoneIsNil(t *testing.T) {
	store := testStore(t)

	got, err := store.AssignmentForDisruption(context.Background(), "nothing-here")
	if err != nil {
		t.Fatalf("AssignmentForDisruption: %v", err)
	}
	if got != nil {
		t.Errorf("expected nil for uncommitted disruption, got %+v", got)
	}
}

func TestSQLiteStore_PersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sessions.db")
	ctx := context.Background()

	store, err := OpenStore(path)
	if err != nil {
		t.Fatalf("OpenStore: %v", err)
	}
	sess := sampleSession()
	if err := store.SaveSession(ctx, sess); err != nil {
		t.Fatalf("SaveSession: %v", err)
	}
	a := models.Assignment{
		DisruptionID: sess.Disruption.ID,
		SessionID:    sess.ID,
		CandidateID:  "C1",
		Committer:    "ops-desk",
		CommittedAt:  time.Date(2026, 3, 14, 12, 5, 0, 0, time.UTC),
	}
	if err := store.SaveAssignment(ctx, a); err != nil {
		t.Fatalf("SaveAssignment: %v", err)
	}
	store.Close()

	reopened, err := OpenStore(path)
	if err != nil {
		t.Fatalf("reopening store: %v", err)
	}
	defer reopened.Close()

	got, err := reopened.GetSession(ctx, sess.ID)
	if err != nil {
		t.Fatalf("GetSession after reopen: %v", err)
	}
	if len(got.Candidates) != 2 {
		t.Errorf("expected snapshot to survive reopen, got %d candidates", len(got.Candidates))
	}
	winner, err := reopened.AssignmentForDisruption(ctx, sess.Disruption.ID)
	if err != nil {
		t.Fatalf("AssignmentForDisruption after reopen: %v", err)
	}
	if winner == nil || winner.CandidateID != "C1" {
		t.Errorf("expected commitment to survive reopen, got %+v", winner)
	}
}
