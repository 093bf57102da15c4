package mcp

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/phantom-air/irops/internal/compliance"
	"github.com/phantom-air/irops/internal/models"
	"github.com/phantom-air/irops/internal/narrative"
	"github.com/phantom-air/irops/internal/ops"
	"github.com/phantom-air/irops/internal/recovery"
)

// fakeBackend implements every warehouse-facing interface the server's
// dependencies consume.
type fakeBackend struct {
	flights   []models.Flight
	crew      []models.CrewCandidate
	aircraft  []models.AircraftCandidate
	rebooking []models.RebookingCandidate
	ghosts    []models.GhostFlight
	events    []models.DisruptionEvent
	summary   models.OpsSummary
	crewCount int
	resolved  []string
}

func (f *fakeBackend) CrewGapFlights(ctx context.Context) ([]models.Flight, error) {
	return f.flights, nil
}

func (f *fakeBackend) FlightContext(ctx context.Context, flightID string) (string, string, error) {
	return "ATL", "B737-800", nil
}

func (f *fakeBackend) CrewPool(ctx context.Context, role models.CrewRole) ([]models.CrewCandidate, error) {
	return f.crew, nil
}

func (f *fakeBackend) AircraftPool(ctx context.Context) ([]models.AircraftCandidate, error) {
	return f.aircraft, nil
}

func (f *fakeBackend) RebookingPool(ctx context.Context, bookingID string) ([]models.RebookingCandidate, error) {
	return f.rebooking, nil
}

func (f *fakeBackend) CountAvailableCrew(ctx context.Context, role models.CrewRole) (int, error) {
	return f.crewCount, nil
}

func (f *fakeBackend) ResolveDisruption(ctx context.Context, d models.Disruption, candidateID string) error {
	f.resolved = append(f.resolved, d.ID+":"+candidateID)
	return nil
}

func (f *fakeBackend) FlightSummary(ctx context.Context, tr models.TimeRange) (models.OpsSummary, error) {
	return f.summary, nil
}

func (f *fakeBackend) HubStats(ctx context.Context, tr models.TimeRange) ([]models.HubStat, error) {
	return nil, nil
}

func (f *fakeBackend) OTPTrend(ctx context.Context, tr models.TimeRange) ([]models.OTPPoint, error) {
	return nil, nil
}

func (f *fakeBackend) GhostFlights(ctx context.Context) ([]models.GhostFlight, error) {
	return f.ghosts, nil
}

func (f *fakeBackend) DisruptionEvents(ctx context.Context) ([]models.DisruptionEvent, error) {
	return f.events, nil
}

type fakeAssistant struct {
	response string
	err      error
}

func (f *fakeAssistant) Complete(ctx context.Context, prompt string) (string, error) {
	return f.response, f.err
}

func newTestServer(t *testing.T, backend *fakeBackend, assistant narrative.Completer) *Server {
	t.Helper()
	store, err := recovery.OpenStore(":memory:")
	if err != nil {
		t.Fatalf("opening store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	return NewServer(&Config{Name: "irops-test", Version: "0.0.0"}, Deps{
		Ops:       ops.NewService(backend),
		Recovery:  recovery.NewManager(backend, store, backend),
		Flights:   backend,
		Rules:     compliance.DefaultRulebook(),
		Assistant: assistant,
	})
}

func TestHandleGetDashboard_DefaultsToToday(t *testing.T) {
	backend := &fakeBackend{summary: models.OpsSummary{TotalFlights: 300}}
	s := newTestServer(t, backend, nil)

	_, d, err := s.handleGetDashboard(context.Background(), nil, getDashboardInput{})
	if err != nil {
		t.Fatalf("get_dashboard: %v", err)
	}
	if d.TimeRange != models.RangeToday {
		t.Errorf("expected default range today, got %s", d.TimeRange)
	}
	if d.Summary.TotalFlights != 300 {
		t.Errorf("unexpected summary: %+v", d.Summary)
	}
}

func TestHandleListCrewGaps(t *testing.T) {
	backend := &fakeBackend{flights: []models.Flight{
		{ID: "PA1234", Number: "PA1234", Origin: "ATL", CaptainNeeded: true},
	}}
	s := newTestServer(t, backend, nil)

	_, out, err := s.handleListCrewGaps(context.Background(), nil, struct{}{})
	if err != nil {
		t.Fatalf("list_crew_gaps: %v", err)
	}
	if len(out.Flights) != 1 || out.Flights[0].ID != "PA1234" {
		t.Errorf("unexpected flights: %+v", out.Flights)
	}
}

func TestOpenRecoveryAndCommitRoundTrip(t *testing.T) {
	backend := &fakeBackend{crew: []models.CrewCandidate{
		{ID: "C1", FullName: "Dana Whitfield", Role: models.RoleCaptain, BaseAirport: "ATL",
			Availability: models.CrewAvailable, HoursRemaining: 60, YearsOfService: 20},
	}}
	s := newTestServer(t, backend, &fakeAssistant{response: "Whitfield is the clear pick."})
	ctx := context.Background()

	_, opened, err := s.handleOpenRecovery(ctx, nil, openRecoveryInput{
		FlightID:     "PA1234",
		Kind:         string(models.KindCrewGap),
		RequiredRole: string(models.RoleCaptain),
	})
	if err != nil {
		t.Fatalf("open_recovery: %v", err)
	}
	if opened.SessionID == "" || len(opened.Candidates) != 1 {
		t.Fatalf("unexpected session: %+v", opened)
	}
	if opened.Narrative != "Whitfield is the clear pick." {
		t.Errorf("expected narrative, got %q", opened.Narrative)
	}

	_, committed, err := s.handleCommitAssignment(ctx, nil, commitAssignmentInput{
		SessionID:   opened.SessionID,
		CandidateID: "C1",
	})
	if err != nil {
		t.Fatalf("commit_assignment: %v", err)
	}
	if committed.Assignment.Committer != "mcp-client" {
		t.Errorf("expected default committer, got %q", committed.Assignment.Committer)
	}
	if len(backend.resolved) != 1 || !strings.HasSuffix(backend.resolved[0], ":C1") {
		t.Errorf("expected warehouse resolution, got %v", backend.resolved)
	}
}

func TestOpenRecovery_AssistantFailureIsNonFatal(t *testing.T) {
	backend := &fakeBackend{crew: []models.CrewCandidate{
		{ID: "C1", Role: models.RoleCaptain, Availability: models.CrewAvailable, HoursRemaining: 60},
	}}
	s := newTestServer(t, backend, &fakeAssistant{err: errors.New("model offline")})

	_, opened, err := s.handleOpenRecovery(context.Background(), nil, openRecoveryInput{
		FlightID:     "PA1234",
		Kind:         string(models.KindCrewGap),
		RequiredRole: string(models.RoleCaptain),
	})
	if err != nil {
		t.Fatalf("open_recovery: %v", err)
	}
	if opened.Narrative != "" {
		t.Errorf("expected empty narrative on assistant failure, got %q", opened.Narrative)
	}
}

func TestHandleListRebookingQueue(t *testing.T) {
	dep := time.Date(2026, 3, 14, 16, 0, 0, 0, time.UTC)
	backend := &fakeBackend{rebooking: []models.RebookingCandidate{
		{BookingID: "B1", LoyaltyTier: models.TierGold, TargetFlightID: "PA310",
			TargetDeparture: dep, SeatsAvailable: 3, OptionRank: 1},
		{BookingID: "B2", LoyaltyTier: models.TierDiamond, TargetFlightID: "PA320",
			TargetDeparture: dep, SeatsAvailable: 2, OptionRank: 1},
		{BookingID: "B3", LoyaltyTier: models.TierSilver, TargetFlightID: "PA330",
			TargetDeparture: dep, SeatsAvailable: 0, OptionRank: 1},
	}}
	s := newTestServer(t, backend, nil)

	_, out, err := s.handleListRebookingQueue(context.Background(), nil, struct{}{})
	if err != nil {
		t.Fatalf("list_rebooking_queue: %v", err)
	}
	if len(out.Queue) != 2 {
		t.Fatalf("expected sold-out option filtered, got %d", len(out.Queue))
	}
	if out.Queue[0].BookingID != "B2" {
		t.Errorf("expected DIAMOND first, got %s", out.Queue[0].BookingID)
	}
}

func TestHandleBatchNotifyCrew(t *testing.T) {
	s := newTestServer(t, &fakeBackend{crewCount: 7}, nil)

	_, out, err := s.handleBatchNotifyCrew(context.Background(), nil, batchNotifyCrewInput{Role: "CAPTAIN"})
	if err != nil {
		t.Fatalf("batch_notify_crew: %v", err)
	}
	if out.NotifiedCount != 7 {
		t.Errorf("expected 7 notified, got %d", out.NotifiedCount)
	}
	if !strings.Contains(out.Message, "7 available crew members") {
		t.Errorf("unexpected message: %s", out.Message)
	}
}

func TestHandleValidateAssignment(t *testing.T) {
	s := newTestServer(t, &fakeBackend{}, nil)

	_, report, err := s.handleValidateAssignment(context.Background(), nil, validateAssignmentInput{
		CrewID:              "C001",
		MonthlyHoursUsed:    78.5,
		AnnualHours:         612,
		ConsecutiveDutyDays: 4,
		LastRestHours:       12.3,
		TypeRatings:         []string{"B737-800"},
		FlightID:            "PA1234",
		AircraftType:        "B737-800",
		BlockHours:          4.5,
		DutyPeriodHours:     9,
	})
	if err != nil {
		t.Fatalf("validate_assignment: %v", err)
	}
	if !report.Legal {
		t.Errorf("expected legal assignment, got %+v", report)
	}
}

func TestHandleAskAssistant_NoAssistant(t *testing.T) {
	s := newTestServer(t, &fakeBackend{}, nil)

	_, _, err := s.handleAskAssistant(context.Background(), nil, askAssistantInput{Question: "limits?"})
	if !errors.Is(err, narrative.ErrUnavailable) {
		t.Errorf("expected ErrUnavailable, got %v", err)
	}
}

func TestHandleListGhostFlights(t *testing.T) {
	backend := &fakeBackend{ghosts: []models.GhostFlight{
		{Flight: models.Flight{ID: "G1", PassengersBooked: 120}, Reason: "No captain assigned", PriorityScore: 80},
	}}
	s := newTestServer(t, backend, nil)

	_, report, err := s.handleListGhostFlights(context.Background(), nil, struct{}{})
	if err != nil {
		t.Fatalf("list_ghost_flights: %v", err)
	}
	if report.Summary.MissingCrew != 1 {
		t.Errorf("unexpected summary: %+v", report.Summary)
	}
}
