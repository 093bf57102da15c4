package ops

import (
	"context"
	"testing"

	"github.com/phantom-air/irops/internal/models"
)

func ghost(id, reason string, priority float64, pax int) models.GhostFlight {
	return models.GhostFlight{
		Flight:        models.Flight{ID: id, PassengersBooked: pax},
		Reason:        reason,
		PriorityScore: priority,
	}
}

func TestSummarizeGhosts(t *testing.T) {
	flights := []models.GhostFlight{
		ghost("G1", "No captain assigned", 80, 150),
		ghost("G2", "Aircraft N801PA is at JFK, flight departs ATL", 60, 120),
		ghost("G3", "Missing crew and aircraft unassigned", 90, 180),
		ghost("G4", "No first officer assigned", 70, 100),
	}

	s := SummarizeGhosts(flights)
	if s.Total != 4 {
		t.Errorf("expected 4 total, got %d", s.Total)
	}
	if s.MissingCrew != 3 {
		t.Errorf("expected 3 missing crew, got %d", s.MissingCrew)
	}
	if s.MissingAircraft != 2 {
		t.Errorf("expected 2 missing aircraft, got %d", s.MissingAircraft)
	}
	if s.MissingBoth != 1 {
		t.Errorf("expected 1 missing both, got %d", s.MissingBoth)
	}
	if s.AvgPriority != 75.0 {
		t.Errorf("expected avg priority 75.0, got %f", s.AvgPriority)
	}
	if s.TotalPaxAffected != 550 {
		t.Errorf("expected 550 pax affected, got %d", s.TotalPaxAffected)
	}
}

func TestSummarizeGhosts_Empty(t *testing.T) {
	s := SummarizeGhosts(nil)
	if s.Total != 0 || s.AvgPriority != 0 {
		t.Errorf("expected zero summary, got %+v", s)
	}
}

func TestService_Ghosts(t *testing.T) {
	q := &fakeQuerier{ghosts: []models.GhostFlight{
		ghost("G1", "No captain assigned", 80, 150),
	}}
	svc := NewService(q)

	report, err := svc.Ghosts(context.Background())
	if err != nil {
		t.Fatalf("Ghosts: %v", err)
	}
	if len(report.Flights) != 1 || report.Summary.MissingCrew != 1 {
		t.Errorf("unexpected report: %+v", report)
	}
}

func TestRecommend_CrewGap(t *testing.T) {
	recs := Recommend(ghost("G1", "No captain assigned", 80, 150), 5, 2)

	if len(recs) != 3 {
		t.Fatalf("expected 3 recommendations, got %d", len(recs))
	}
	if recs[0].Type != ResolveCrewAssignment || recs[0].Priority != PriorityHigh {
		t.Errorf("expected high-priority crew assignment first, got %+v", recs[0])
	}
	if recs[0].Description != "5 crew members available for assignment" {
		t.Errorf("unexpected description: %s", recs[0].Description)
	}
	if recs[1].Type != ResolveCancelFlight || recs[2].Type != ResolveDelayFlight {
		t.Error("cancel and delay fallbacks must always be present")
	}
}

func TestRecommend_MispositionedAircraft(t *testing.T) {
	recs := Recommend(ghost("G2", "Aircraft N801PA is at JFK", 60, 120), 0, 3)

	if recs[0].Type != ResolveAircraftSwap {
		t.Errorf("expected aircraft swap first, got %s", recs[0].Type)
	}
}

func TestRecommend_MissingBoth(t *testing.T) {
	recs := Recommend(ghost("G3", "Missing crew and aircraft unassigned", 90, 180), 4, 2)

	if len(recs) != 4 {
		t.Fatalf("expected 4 recommendations, got %d", len(recs))
	}
	if recs[0].Type != ResolveCrewAssignment || recs[1].Type != ResolveAircraftSwap {
		t.Errorf("expected crew then aircraft options, got %s, %s", recs[0].Type, recs[1].Type)
	}
}

func TestRecommend_UnclassifiedReasonFallbacksOnly(t *testing.T) {
	recs := Recommend(ghost("G4", "Schedule integrity hold", 40, 90), 0, 0)

	if len(recs) != 2 {
		t.Fatalf("expected only fallbacks, got %d recommendations", len(recs))
	}
	if recs[0].Type != ResolveCancelFlight || recs[1].Type != ResolveDelayFlight {
		t.Errorf("unexpected fallback ordering: %s, %s", recs[0].Type, recs[1].Type)
	}
}
