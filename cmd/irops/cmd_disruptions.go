package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/phantom-air/irops/internal/ops"
)

func newDisruptionsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "disruptions",
		Short: "Active IROPS events and cost exposure",
		RunE: func(cmd *cobra.Command, args []string) error {
			hub, _ := cmd.Flags().GetString("hub")
			minCost, _ := cmd.Flags().GetFloat64("min-cost")

			a, err := newApp(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			filter := ops.EventFilter{Hub: hub}
			if minCost > 0 {
				filter.CostAlerts = true
				filter.MinCostK = minCost
			}

			report, err := a.ops.Disruptions(cmd.Context(), filter)
			if err != nil {
				return err
			}

			jsonOut, _ := cmd.Flags().GetBool("json")
			if jsonOut {
				return printJSON(report)
			}

			t := report.Totals
			fmt.Printf("Active: %d (%d critical, %d severe)   Pax affected: %d   Est. cost: $%.1fM\n\n",
				t.Active, t.Critical, t.Severe, t.PassengersAffected, t.TotalCostK/1000)
			for _, e := range report.Events {
				fmt.Printf("%-7s %-10s %-8s %-4s $%4.0fK %3d flights %5d pax  %s\n",
					e.ID, e.Type, e.Severity, e.Hub, e.EstCostK, e.Flights, e.Passengers, e.Description)
			}
			return nil
		},
	}
	cmd.Flags().String("hub", "", "Filter by hub airport")
	cmd.Flags().Float64("min-cost", 0, "Only events above this cost ($K)")
	return cmd
}
