package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/phantom-air/irops/internal/models"
	"github.com/phantom-air/irops/internal/narrative"
	"github.com/phantom-air/irops/internal/ops"
	"github.com/phantom-air/irops/internal/recovery"
)

func newGhostsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ghosts",
		Short: "Ghost flights: detection, analysis, resolution",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			report, err := a.ops.Ghosts(cmd.Context())
			if err != nil {
				return err
			}

			jsonOut, _ := cmd.Flags().GetBool("json")
			if jsonOut {
				return printJSON(report)
			}

			s := report.Summary
			fmt.Printf("Ghost flights today: %d (%d missing crew, %d missing aircraft, %d both)\n",
				s.Total, s.MissingCrew, s.MissingAircraft, s.MissingBoth)
			fmt.Printf("Avg priority %.0f, %d passengers affected\n\n", s.AvgPriority, s.TotalPaxAffected)
			for _, f := range report.Flights {
				fmt.Printf("%-8s %s %s-%s prio %3.0f  %s\n",
					f.ID, f.Number, f.Origin, f.Destination, f.PriorityScore, f.Reason)
			}
			return nil
		},
	}
	cmd.AddCommand(newGhostsAnalyzeCmd(), newGhostsResolveCmd())
	return cmd
}

func newGhostsAnalyzeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Recommend resolution paths for one ghost flight",
		RunE: func(cmd *cobra.Command, args []string) error {
			flightID, _ := cmd.Flags().GetString("flight")

			a, err := newApp(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			ctx := cmd.Context()
			report, err := a.ops.Ghosts(ctx)
			if err != nil {
				return err
			}
			var flight *models.GhostFlight
			for i := range report.Flights {
				if report.Flights[i].ID == flightID {
					flight = &report.Flights[i]
					break
				}
			}
			if flight == nil {
				return fmt.Errorf("flight %s is not a ghost flight today", flightID)
			}

			crewPool, err := a.wh.CrewPool(ctx, models.RoleCaptain)
			if err != nil {
				return err
			}
			aircraftPool, err := a.wh.AircraftPool(ctx)
			if err != nil {
				return err
			}
			gap := models.Disruption{Kind: models.KindCrewGap, RequiredRole: models.RoleCaptain}
			recs := ops.Recommend(*flight,
				len(recovery.EligibleCrew(gap, crewPool)),
				len(recovery.EligibleAircraft(aircraftPool)))

			jsonOut, _ := cmd.Flags().GetBool("json")
			if jsonOut {
				return printJSON(map[string]any{
					"flight":          flight,
					"recommendations": recs,
				})
			}

			fmt.Printf("Flight %s is a ghost flight due to: %s (priority %.0f)\n\n",
				flight.Number, flight.Reason, flight.PriorityScore)
			for _, r := range recs {
				fmt.Printf("[%-6s] %-18s %s\n", r.Priority, r.Type, r.Description)
			}
			if text := narrative.Narrate(ctx, a.assistant, narrative.GhostPrompt(*flight)); text != "" {
				fmt.Printf("\n%s\n", text)
			}
			return nil
		},
	}
	cmd.Flags().String("flight", "", "Ghost flight ID")
	cmd.MarkFlagRequired("flight")
	return cmd
}

func newGhostsResolveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "resolve",
		Short: "Apply a resolution to a ghost flight",
		RunE: func(cmd *cobra.Command, args []string) error {
			flightID, _ := cmd.Flags().GetString("flight")
			action, _ := cmd.Flags().GetString("action")

			a, err := newApp(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			ctx := cmd.Context()
			switch ops.ResolutionType(action) {
			case ops.ResolveCancelFlight:
				if err := a.wh.CancelFlight(ctx, flightID); err != nil {
					return err
				}
				fmt.Println("Flight cancelled. Passenger rebooking initiated.")
			case ops.ResolveDelayFlight:
				if err := a.wh.DelayFlight(ctx, flightID, 60); err != nil {
					return err
				}
				fmt.Println("Flight delayed by 60 minutes")
			case ops.ResolveCrewAssignment:
				fmt.Println("Use 'irops crew candidates' to open a crew recovery session for this flight.")
			case ops.ResolveAircraftSwap:
				fmt.Println("Use 'irops crew candidates' with a GHOST_FLIGHT session, or open_recovery over MCP, to rank aircraft swaps.")
			default:
				return fmt.Errorf("unknown resolution action %q", action)
			}
			return nil
		},
	}
	cmd.Flags().String("flight", "", "Ghost flight ID")
	cmd.Flags().String("action", "", "Resolution: CREW_ASSIGNMENT, AIRCRAFT_SWAP, CANCEL_FLIGHT, DELAY_FLIGHT")
	cmd.MarkFlagRequired("flight")
	cmd.MarkFlagRequired("action")
	return cmd
}
