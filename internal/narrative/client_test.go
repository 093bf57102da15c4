package narrative

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/phantom-air/irops/internal/models"
	"github.com/phantom-air/irops/internal/recovery"
)

// fakeCortex captures the prompt and serves a canned response.
type fakeCortex struct {
	model    string
	prompt   string
	response string
	err      error
}

func (f *fakeCortex) CortexComplete(ctx context.Context, model, prompt string) (string, error) {
	f.model = model
	f.prompt = prompt
	return f.response, f.err
}

func TestCortexClient_Complete(t *testing.T) {
	q := &fakeCortex{response: "  Assign Whitfield; she is on site with hours to spare.  "}
	c := NewCortexClient(q, "claude-3-5-sonnet")

	got, err := c.Complete(context.Background(), AssistantPrompt("who should fly PA1234?"))
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if got != "Assign Whitfield; she is on site with hours to spare." {
		t.Errorf("expected trimmed response, got %q", got)
	}
	if q.model != "claude-3-5-sonnet" {
		t.Errorf("expected configured model, got %q", q.model)
	}
	if !strings.HasPrefix(q.prompt, systemPreamble) {
		t.Error("prompt must carry the system preamble")
	}
	if !strings.Contains(q.prompt, "who should fly PA1234?") {
		t.Errorf("prompt missing the question: %q", q.prompt)
	}
}

func TestCortexClient_Complete_QueryFailure(t *testing.T) {
	q := &fakeCortex{err: errors.New("warehouse down")}
	c := NewCortexClient(q, "claude-3-5-sonnet")

	_, err := c.Complete(context.Background(), "anything")
	if !errors.Is(err, ErrUnavailable) {
		t.Errorf("expected ErrUnavailable, got %v", err)
	}
}

func TestCortexClient_Complete_EmptyResponse(t *testing.T) {
	q := &fakeCortex{response: "   "}
	c := NewCortexClient(q, "claude-3-5-sonnet")

	_, err := c.Complete(context.Background(), "anything")
	if !errors.Is(err, ErrUnavailable) {
		t.Errorf("expected ErrUnavailable for blank completion, got %v", err)
	}
}

func TestNarrate_NeverFails(t *testing.T) {
	if got := Narrate(context.Background(), nil, "prompt"); got != "" {
		t.Errorf("nil completer must yield empty narrative, got %q", got)
	}

	down := NewCortexClient(&fakeCortex{err: errors.New("down")}, "m")
	if got := Narrate(context.Background(), down, "prompt"); got != "" {
		t.Errorf("failing completer must yield empty narrative, got %q", got)
	}

	up := NewCortexClient(&fakeCortex{response: "ok"}, "m")
	if got := Narrate(context.Background(), up, "prompt"); got != "ok" {
		t.Errorf("expected narrative text, got %q", got)
	}
}

func TestRecoveryPrompt_CapsAtFiveCandidates(t *testing.T) {
	d := models.Disruption{FlightID: "PA1234", Kind: models.KindCrewGap, Priority: 80}
	var candidates []recovery.RankedCandidate
	for i := 1; i <= 8; i++ {
		candidates = append(candidates, recovery.RankedCandidate{
			Position: i,
			ID:       "C" + string(rune('0'+i)),
			Summary:  "candidate",
			Score:    float64(100 - i),
		})
	}

	prompt := RecoveryPrompt(d, candidates)
	if !strings.Contains(prompt, "5. candidate") {
		t.Error("expected the fifth candidate in the prompt")
	}
	if strings.Contains(prompt, "6. candidate") {
		t.Error("prompt must stop at five candidates")
	}
	if !strings.Contains(prompt, "Flight PA1234 has a CREW_GAP disruption") {
		t.Errorf("prompt missing disruption context: %q", prompt)
	}
}

func TestGhostPrompt(t *testing.T) {
	f := models.GhostFlight{
		Flight:        models.Flight{Number: "PA2000"},
		Reason:        "No captain assigned",
		PriorityScore: 80,
	}

	prompt := GhostPrompt(f)
	if !strings.Contains(prompt, "PA2000") || !strings.Contains(prompt, "No captain assigned") {
		t.Errorf("prompt missing flight context: %q", prompt)
	}
}
