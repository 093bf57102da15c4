package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/phantom-air/irops/internal/recovery"
)

func newRebookingCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rebooking",
		Short: "Tier-prioritized rebooking queue for today's cancellations",
		RunE: func(cmd *cobra.Command, args []string) error {
			limit, _ := cmd.Flags().GetInt("limit")

			a, err := newApp(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			pool, err := a.wh.RebookingPool(cmd.Context(), "")
			if err != nil {
				return err
			}
			queue := recovery.RankRebooking(recovery.EligibleRebooking(pool))
			if limit > 0 && len(queue) > limit {
				queue = queue[:limit]
			}

			jsonOut, _ := cmd.Flags().GetBool("json")
			if jsonOut {
				return printJSON(queue)
			}

			if len(queue) == 0 {
				fmt.Println("No rebooking candidates today.")
				return nil
			}
			for i, r := range queue {
				fmt.Printf("%3d. %-8s %-22s %-8s %s->%s on %s (+%d min, %d seats, option %d)\n",
					i+1, r.ConfirmationCode, r.PassengerName, r.LoyaltyTier,
					r.Origin, r.Destination, r.TargetFlightID, r.WaitMinutes,
					r.SeatsAvailable, r.OptionRank)
			}
			return nil
		},
	}
	cmd.Flags().Int("limit", 100, "Rows to show (0 = all)")
	return cmd
}
