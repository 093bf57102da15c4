package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/phantom-air/irops/internal/models"
)

func newDashboardCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Flight status overview for a time range",
		RunE: func(cmd *cobra.Command, args []string) error {
			timeRange, _ := cmd.Flags().GetString("range")

			a, err := newApp(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			d, err := a.ops.Dashboard(cmd.Context(), models.TimeRange(timeRange))
			if err != nil {
				return fmt.Errorf("building dashboard: %w", err)
			}

			jsonOut, _ := cmd.Flags().GetBool("json")
			if jsonOut {
				return printJSON(d)
			}

			s := d.Summary
			fmt.Printf("Flights (%s): %d total, %d on time, %d delayed, %d cancelled, %d in flight\n",
				d.TimeRange, s.TotalFlights, s.OnTimeFlights, s.DelayedFlights, s.CancelledFlights, s.InProgressFlights)
			fmt.Printf("Passengers affected: %d   Avg delay: %.0f min\n\n", s.PassengersAffected, s.AvgDelayMinutes)

			if len(d.HubStats) > 0 {
				fmt.Println("Hub pressure:")
				for _, h := range d.HubStats {
					fmt.Printf("  %-4s %3d flights, %3d delayed, avg %.0f min\n",
						h.Origin, h.FlightCount, h.DelayedCount, h.AvgDelay)
				}
				fmt.Println()
			}

			if len(d.OTPTrend) > 0 {
				fmt.Println("OTP trend:")
				for _, p := range d.OTPTrend {
					fmt.Printf("  %-6s %5.1f%% (%d flights)\n", p.Label, p.OTP, p.Flights)
				}
			}
			return nil
		},
	}
	cmd.Flags().String("range", string(models.RangeToday),
		"Time range: next2hours, next6hours, today, tomorrow, last7days")
	return cmd
}
