package narrative

import (
	"fmt"
	"strings"

	"github.com/phantom-air/irops/internal/models"
	"github.com/phantom-air/irops/internal/recovery"
)

// systemPreamble frames every completion request. Kept short: the
// hosted model bills per token and operators want terse answers.
const systemPreamble = "You are an airline IROPS operations assistant. " +
	"Provide brief, actionable recommendations. "

// AssistantPrompt wraps a free-form operator question.
func AssistantPrompt(question string) string {
	return "User query: " + question
}

// RecoveryPrompt embeds a ranked candidate snapshot and the disruption
// context so the model can explain the ordering to the operator.
func RecoveryPrompt(d models.Disruption, candidates []recovery.RankedCandidate) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Flight %s has a %s disruption (priority %.0f). ", d.FlightID, d.Kind, d.Priority)
	b.WriteString("Ranked recovery candidates:\n")
	for _, c := range candidates {
		if c.Position > 5 {
			break
		}
		fmt.Fprintf(&b, "%d. %s (score %.1f)\n", c.Position, c.Summary, c.Score)
	}
	b.WriteString("Explain in two sentences why the top candidate is the best choice.")
	return b.String()
}

// GhostPrompt summarizes a ghost flight for the analysis pane.
func GhostPrompt(f models.GhostFlight) string {
	return fmt.Sprintf(
		"Flight %s is a ghost flight due to: %s. Priority score: %.0f. "+
			"Recommend a resolution path in two sentences.",
		f.Number, f.Reason, f.PriorityScore)
}

// ContractPrompt frames a contract or duty-rule question.
func ContractPrompt(question string) string {
	return "Answer this pilot working agreement / FAA Part 117 question. " +
		"Cite the relevant limit. Question: " + question
}
