package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/phantom-air/irops/internal/models"
	"github.com/phantom-air/irops/internal/narrative"
)

func newCrewCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "crew",
		Short: "Crew recovery: gaps, candidates, assignment",
	}
	cmd.AddCommand(
		newCrewGapsCmd(),
		newCrewCandidatesCmd(),
		newCrewAssignCmd(),
		newCrewNotifyCmd(),
	)
	return cmd
}

// parseRole accepts the operator-friendly spellings.
func parseRole(s string) (models.CrewRole, error) {
	switch strings.ToLower(s) {
	case "captain":
		return models.RoleCaptain, nil
	case "fo", "first_officer", "first-officer":
		return models.RoleFirstOfficer, nil
	default:
		return "", fmt.Errorf("unknown crew role %q (use captain or fo)", s)
	}
}

func newCrewGapsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "gaps",
		Short: "List today's flights missing a captain or first officer",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			flights, err := a.wh.CrewGapFlights(cmd.Context())
			if err != nil {
				return err
			}

			jsonOut, _ := cmd.Flags().GetBool("json")
			if jsonOut {
				return printJSON(flights)
			}

			if len(flights) == 0 {
				fmt.Println("No open crew gaps today.")
				return nil
			}
			for _, f := range flights {
				var needs []string
				if f.CaptainNeeded {
					needs = append(needs, "captain")
				}
				if f.FirstOfficerNeeded {
					needs = append(needs, "first officer")
				}
				fmt.Printf("%-8s %s %s-%s dep %s needs %s (%d pax)\n",
					f.ID, f.Number, f.Origin, f.Destination,
					f.ScheduledDep.Format("15:04"), strings.Join(needs, " + "), f.PassengersBooked)
			}
			return nil
		},
	}
}

func newCrewCandidatesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "candidates",
		Short: "Open a recovery session and rank replacement crew for a flight",
		RunE: func(cmd *cobra.Command, args []string) error {
			flightID, _ := cmd.Flags().GetString("flight")
			roleStr, _ := cmd.Flags().GetString("role")
			limit, _ := cmd.Flags().GetInt("limit")

			role, err := parseRole(roleStr)
			if err != nil {
				return err
			}

			a, err := newApp(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			origin, aircraftType, err := a.wh.FlightContext(cmd.Context(), flightID)
			if err != nil {
				return err
			}

			d := models.Disruption{
				ID:           fmt.Sprintf("%s-%s", flightID, models.KindCrewGap),
				Kind:         models.KindCrewGap,
				FlightID:     flightID,
				Origin:       origin,
				AircraftType: aircraftType,
				RequiredRole: role,
			}

			sess, err := a.recovery.Open(cmd.Context(), d)
			if err != nil {
				return err
			}

			shown := sess.Candidates
			if limit > 0 && len(shown) > limit {
				shown = shown[:limit]
			}

			jsonOut, _ := cmd.Flags().GetBool("json")
			if jsonOut {
				return printJSON(map[string]any{
					"session_id": sess.ID,
					"candidates": shown,
				})
			}

			fmt.Printf("Session %s - %d candidates for %s (%s)\n\n", sess.ID, len(sess.Candidates), flightID, role)
			for _, c := range shown {
				fmt.Printf("%2d. [%5.1f] %s  (%s)\n", c.Position, c.Score, c.Summary, c.ID)
			}
			if text := narrative.Narrate(cmd.Context(), a.assistant, narrative.RecoveryPrompt(d, sess.Candidates)); text != "" {
				fmt.Printf("\n%s\n", text)
			}
			fmt.Printf("\nCommit with: irops crew assign --session %s --candidate <id>\n", sess.ID)
			return nil
		},
	}
	cmd.Flags().String("flight", "", "Disrupted flight ID")
	cmd.Flags().String("role", "captain", "Required role: captain or fo")
	cmd.Flags().Int("limit", 10, "Candidates to show (0 = all)")
	cmd.MarkFlagRequired("flight")
	return cmd
}

func newCrewAssignCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "assign",
		Short: "Commit one candidate from an open session",
		RunE: func(cmd *cobra.Command, args []string) error {
			sessionID, _ := cmd.Flags().GetString("session")
			candidateID, _ := cmd.Flags().GetString("candidate")
			committer, _ := cmd.Flags().GetString("committer")

			a, err := newApp(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			assignment, err := a.recovery.Commit(cmd.Context(), sessionID, candidateID, committer)
			if err != nil {
				return err
			}

			jsonOut, _ := cmd.Flags().GetBool("json")
			if jsonOut {
				return printJSON(assignment)
			}
			fmt.Printf("Committed %s to disruption %s at %s\n",
				assignment.CandidateID, assignment.DisruptionID,
				assignment.CommittedAt.Format("15:04:05"))
			return nil
		},
	}
	cmd.Flags().String("session", "", "Session ID from 'crew candidates'")
	cmd.Flags().String("candidate", "", "Candidate ID from the ranked list")
	cmd.Flags().String("committer", "ops-desk", "Operator identity for the audit record")
	cmd.MarkFlagRequired("session")
	cmd.MarkFlagRequired("candidate")
	return cmd
}

func newCrewNotifyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "notify",
		Short: "Count available crew for a batch callout",
		RunE: func(cmd *cobra.Command, args []string) error {
			roleStr, _ := cmd.Flags().GetString("role")
			role, err := parseRole(roleStr)
			if err != nil {
				return err
			}

			a, err := newApp(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			n, err := a.wh.CountAvailableCrew(cmd.Context(), role)
			if err != nil {
				return err
			}

			jsonOut, _ := cmd.Flags().GetBool("json")
			if jsonOut {
				return printJSON(map[string]any{"notified_count": n})
			}
			fmt.Printf("Batch notification sent to %d available crew members\n", n)
			return nil
		},
	}
	cmd.Flags().String("role", "captain", "Crew role: captain or fo")
	return cmd
}
