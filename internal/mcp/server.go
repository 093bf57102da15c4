// Package mcp exposes the IROPS operations over the Model Context
// Protocol so agentic tools can drive the same recovery workflow the
// CLI does.
package mcp

import (
	"context"
	"fmt"
	"log/slog"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/phantom-air/irops/internal/compliance"
	"github.com/phantom-air/irops/internal/logging"
	"github.com/phantom-air/irops/internal/models"
	"github.com/phantom-air/irops/internal/narrative"
	"github.com/phantom-air/irops/internal/ops"
	"github.com/phantom-air/irops/internal/recovery"
)

// FlightSource is the slice of the warehouse client the server needs
// beyond what ops and recovery already wrap.
type FlightSource interface {
	CrewGapFlights(ctx context.Context) ([]models.Flight, error)
	FlightContext(ctx context.Context, flightID string) (origin, aircraftType string, err error)
	RebookingPool(ctx context.Context, bookingID string) ([]models.RebookingCandidate, error)
	CountAvailableCrew(ctx context.Context, role models.CrewRole) (int, error)
}

// Config identifies the server to MCP clients.
type Config struct {
	Name    string
	Version string
}

// Deps carries the service layer the tools call into. Assistant may be
// nil; ask_assistant then reports the service as unavailable.
type Deps struct {
	Ops       *ops.Service
	Recovery  *recovery.Manager
	Flights   FlightSource
	Rules     compliance.Rulebook
	Assistant narrative.Completer
}

// Server wraps the MCP SDK server.
type Server struct {
	mcpServer *sdkmcp.Server
	deps      Deps
	log       *slog.Logger
}

// NewServer creates an MCP server with the IROPS toolset registered.
func NewServer(cfg *Config, deps Deps) *Server {
	s := &Server{
		deps: deps,
		log:  logging.New("mcp"),
	}
	s.mcpServer = sdkmcp.NewServer(
		&sdkmcp.Implementation{Name: cfg.Name, Version: cfg.Version},
		nil,
	)
	s.registerTools()
	return s
}

// Run serves MCP over stdio until the client disconnects or ctx is
// cancelled.
func (s *Server) Run(ctx context.Context) error {
	s.log.Info("mcp server starting")
	return s.mcpServer.Run(ctx, &sdkmcp.StdioTransport{})
}

func (s *Server) registerTools() {
	sdkmcp.AddTool(s.mcpServer, &sdkmcp.Tool{
		Name:        "get_dashboard",
		Description: "Flight status rollup, hub delay table, and OTP trend for a time range (next2hours, next6hours, today, tomorrow, last7days).",
	}, s.handleGetDashboard)

	sdkmcp.AddTool(s.mcpServer, &sdkmcp.Tool{
		Name:        "list_ghost_flights",
		Description: "Today's ghost flights (missing crew or aircraft) ordered by recovery priority, with a rollup summary.",
	}, s.handleListGhostFlights)

	sdkmcp.AddTool(s.mcpServer, &sdkmcp.Tool{
		Name:        "list_crew_gaps",
		Description: "Today's flights missing a captain or first officer.",
	}, s.handleListCrewGaps)

	sdkmcp.AddTool(s.mcpServer, &sdkmcp.Tool{
		Name:        "open_recovery",
		Description: "Open a recovery session for a disruption and return the ranked candidate snapshot.",
	}, s.handleOpenRecovery)

	sdkmcp.AddTool(s.mcpServer, &sdkmcp.Tool{
		Name:        "commit_assignment",
		Description: "Commit one candidate from an open recovery session. Safe to retry with the same candidate.",
	}, s.handleCommitAssignment)

	sdkmcp.AddTool(s.mcpServer, &sdkmcp.Tool{
		Name:        "list_rebooking_queue",
		Description: "Tier-prioritized rebooking queue for today's cancelled bookings.",
	}, s.handleListRebookingQueue)

	sdkmcp.AddTool(s.mcpServer, &sdkmcp.Tool{
		Name:        "batch_notify_crew",
		Description: "Count the available crew of a role who would receive a batch callout notification.",
	}, s.handleBatchNotifyCrew)

	sdkmcp.AddTool(s.mcpServer, &sdkmcp.Tool{
		Name:        "validate_assignment",
		Description: "Check a proposed crew assignment against PWA and FAA Part 117 duty limits.",
	}, s.handleValidateAssignment)

	sdkmcp.AddTool(s.mcpServer, &sdkmcp.Tool{
		Name:        "ask_assistant",
		Description: "Ask the IROPS assistant a free-form operations question.",
	}, s.handleAskAssistant)
}

// --- Tool input/output types ---

type getDashboardInput struct {
	TimeRange string `json:"time_range,omitempty" jsonschema:"dashboard window (default today)"`
}

type listCrewGapsOutput struct {
	Flights []models.Flight `json:"flights"`
}

type openRecoveryInput struct {
	FlightID     string `json:"flight_id" jsonschema:"disrupted flight ID"`
	Kind         string `json:"kind" jsonschema:"disruption kind (CREW_GAP, GHOST_FLIGHT, CANCELLED_BOOKING)"`
	RequiredRole string `json:"required_role,omitempty" jsonschema:"CAPTAIN or FIRST_OFFICER for crew gaps"`
	BookingID    string `json:"booking_id,omitempty" jsonschema:"booking ID for cancelled-booking disruptions"`
}

type openRecoveryOutput struct {
	SessionID  string                     `json:"session_id"`
	Candidates []recovery.RankedCandidate `json:"candidates"`
	Narrative  string                     `json:"narrative,omitempty"`
}

type commitAssignmentInput struct {
	SessionID   string `json:"session_id" jsonschema:"session ID from open_recovery"`
	CandidateID string `json:"candidate_id" jsonschema:"candidate ID from the ranked snapshot"`
	Committer   string `json:"committer,omitempty" jsonschema:"operator identity for the audit record"`
}

type commitAssignmentOutput struct {
	Assignment models.Assignment `json:"assignment"`
}

type listRebookingQueueOutput struct {
	Queue []models.RebookingCandidate `json:"queue"`
}

type batchNotifyCrewInput struct {
	Role string `json:"role" jsonschema:"CAPTAIN or FIRST_OFFICER"`
}

type batchNotifyCrewOutput struct {
	NotifiedCount int    `json:"notified_count"`
	Message       string `json:"message"`
}

type validateAssignmentInput struct {
	CrewID              string   `json:"crew_id"`
	MonthlyHoursUsed    float64  `json:"monthly_hours_used"`
	AnnualHours         float64  `json:"annual_hours"`
	ConsecutiveDutyDays int      `json:"consecutive_duty_days"`
	LastRestHours       float64  `json:"last_rest_hours"`
	TypeRatings         []string `json:"type_ratings"`
	FlightID            string   `json:"flight_id"`
	AircraftType        string   `json:"aircraft_type"`
	BlockHours          float64  `json:"block_hours"`
	DutyPeriodHours     float64  `json:"duty_period_hours"`
}

type askAssistantInput struct {
	Question string `json:"question" jsonschema:"free-form operations question"`
}

type askAssistantOutput struct {
	Response string `json:"response"`
}

// --- Handlers ---

func (s *Server) handleGetDashboard(ctx context.Context, _ *sdkmcp.CallToolRequest, input getDashboardInput) (*sdkmcp.CallToolResult, *ops.Dashboard, error) {
	tr := models.TimeRange(input.TimeRange)
	if tr == "" {
		tr = models.RangeToday
	}
	d, err := s.deps.Ops.Dashboard(ctx, tr)
	if err != nil {
		return nil, nil, fmt.Errorf("building dashboard: %w", err)
	}
	return nil, d, nil
}

func (s *Server) handleListGhostFlights(ctx context.Context, _ *sdkmcp.CallToolRequest, _ struct{}) (*sdkmcp.CallToolResult, *ops.GhostReport, error) {
	report, err := s.deps.Ops.Ghosts(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("listing ghost flights: %w", err)
	}
	return nil, report, nil
}

func (s *Server) handleListCrewGaps(ctx context.Context, _ *sdkmcp.CallToolRequest, _ struct{}) (*sdkmcp.CallToolResult, listCrewGapsOutput, error) {
	flights, err := s.deps.Flights.CrewGapFlights(ctx)
	if err != nil {
		return nil, listCrewGapsOutput{}, fmt.Errorf("listing crew gaps: %w", err)
	}
	return nil, listCrewGapsOutput{Flights: flights}, nil
}

func (s *Server) handleOpenRecovery(ctx context.Context, _ *sdkmcp.CallToolRequest, input openRecoveryInput) (*sdkmcp.CallToolResult, openRecoveryOutput, error) {
	d := models.Disruption{
		ID:           fmt.Sprintf("%s-%s", input.FlightID, input.Kind),
		Kind:         models.DisruptionKind(input.Kind),
		FlightID:     input.FlightID,
		RequiredRole: models.CrewRole(input.RequiredRole),
		BookingID:    input.BookingID,
	}
	if input.FlightID != "" {
		origin, aircraftType, err := s.deps.Flights.FlightContext(ctx, input.FlightID)
		if err != nil {
			return nil, openRecoveryOutput{}, fmt.Errorf("loading flight context: %w", err)
		}
		d.Origin = origin
		d.AircraftType = aircraftType
	}

	sess, err := s.deps.Recovery.Open(ctx, d)
	if err != nil {
		return nil, openRecoveryOutput{}, err
	}

	out := openRecoveryOutput{
		SessionID:  sess.ID,
		Candidates: sess.Candidates,
	}
	// Narrative is decorative; failures never block the snapshot.
	out.Narrative = narrative.Narrate(ctx, s.deps.Assistant, narrative.RecoveryPrompt(d, sess.Candidates))
	return nil, out, nil
}

func (s *Server) handleCommitAssignment(ctx context.Context, _ *sdkmcp.CallToolRequest, input commitAssignmentInput) (*sdkmcp.CallToolResult, commitAssignmentOutput, error) {
	committer := input.Committer
	if committer == "" {
		committer = "mcp-client"
	}
	a, err := s.deps.Recovery.Commit(ctx, input.SessionID, input.CandidateID, committer)
	if err != nil {
		return nil, commitAssignmentOutput{}, err
	}
	return nil, commitAssignmentOutput{Assignment: *a}, nil
}

func (s *Server) handleListRebookingQueue(ctx context.Context, _ *sdkmcp.CallToolRequest, _ struct{}) (*sdkmcp.CallToolResult, listRebookingQueueOutput, error) {
	pool, err := s.deps.Flights.RebookingPool(ctx, "")
	if err != nil {
		return nil, listRebookingQueueOutput{}, fmt.Errorf("fetching rebooking options: %w", err)
	}
	queue := recovery.RankRebooking(recovery.EligibleRebooking(pool))
	return nil, listRebookingQueueOutput{Queue: queue}, nil
}

func (s *Server) handleBatchNotifyCrew(ctx context.Context, _ *sdkmcp.CallToolRequest, input batchNotifyCrewInput) (*sdkmcp.CallToolResult, batchNotifyCrewOutput, error) {
	n, err := s.deps.Flights.CountAvailableCrew(ctx, models.CrewRole(input.Role))
	if err != nil {
		return nil, batchNotifyCrewOutput{}, fmt.Errorf("counting available crew: %w", err)
	}
	return nil, batchNotifyCrewOutput{
		NotifiedCount: n,
		Message:       fmt.Sprintf("Batch notification sent to %d available crew members", n),
	}, nil
}

func (s *Server) handleValidateAssignment(ctx context.Context, _ *sdkmcp.CallToolRequest, input validateAssignmentInput) (*sdkmcp.CallToolResult, compliance.Report, error) {
	duty := compliance.CrewDuty{
		CrewID:              input.CrewID,
		MonthlyHoursUsed:    input.MonthlyHoursUsed,
		AnnualHours:         input.AnnualHours,
		ConsecutiveDutyDays: input.ConsecutiveDutyDays,
		LastRestHours:       input.LastRestHours,
		TypeRatings:         input.TypeRatings,
	}
	asg := compliance.ProposedAssignment{
		FlightID:        input.FlightID,
		AircraftType:    input.AircraftType,
		BlockHours:      input.BlockHours,
		DutyPeriodHours: input.DutyPeriodHours,
	}
	return nil, s.deps.Rules.Validate(duty, asg), nil
}

func (s *Server) handleAskAssistant(ctx context.Context, _ *sdkmcp.CallToolRequest, input askAssistantInput) (*sdkmcp.CallToolResult, askAssistantOutput, error) {
	if s.deps.Assistant == nil {
		return nil, askAssistantOutput{}, narrative.ErrUnavailable
	}
	response, err := s.deps.Assistant.Complete(ctx, narrative.AssistantPrompt(input.Question))
	if err != nil {
		return nil, askAssistantOutput{}, err
	}
	return nil, askAssistantOutput{Response: response}, nil
}
