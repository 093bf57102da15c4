package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/phantom-air/irops/internal/compliance"
)

func newValidateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Check a crew assignment against PWA and Part 117 limits",
		RunE: func(cmd *cobra.Command, args []string) error {
			rulesPath, _ := cmd.Flags().GetString("rules")

			rb := compliance.DefaultRulebook()
			if rulesPath != "" {
				var err error
				rb, err = compliance.LoadRulebook(rulesPath)
				if err != nil {
					return err
				}
			}

			crewID, _ := cmd.Flags().GetString("crew")
			monthlyUsed, _ := cmd.Flags().GetFloat64("monthly-hours")
			annual, _ := cmd.Flags().GetFloat64("annual-hours")
			dutyDays, _ := cmd.Flags().GetInt("duty-days")
			rest, _ := cmd.Flags().GetFloat64("rest-hours")
			ratings, _ := cmd.Flags().GetStringSlice("ratings")
			flightID, _ := cmd.Flags().GetString("flight")
			aircraftType, _ := cmd.Flags().GetString("aircraft-type")
			block, _ := cmd.Flags().GetFloat64("block-hours")
			fdp, _ := cmd.Flags().GetFloat64("duty-period")

			report := rb.Validate(
				compliance.CrewDuty{
					CrewID:              crewID,
					MonthlyHoursUsed:    monthlyUsed,
					AnnualHours:         annual,
					ConsecutiveDutyDays: dutyDays,
					LastRestHours:       rest,
					TypeRatings:         ratings,
				},
				compliance.ProposedAssignment{
					FlightID:        flightID,
					AircraftType:    aircraftType,
					BlockHours:      block,
					DutyPeriodHours: fdp,
				},
			)

			jsonOut, _ := cmd.Flags().GetBool("json")
			if jsonOut {
				return printJSON(report)
			}

			if report.Legal {
				fmt.Println("ASSIGNMENT IS LEGAL - all FAA Part 117 and PWA requirements met.")
			} else {
				fmt.Println("ASSIGNMENT IS NOT LEGAL")
			}
			fmt.Println()
			for _, c := range report.Checks {
				status := "PASS"
				if !c.Passed {
					status = "FAIL"
				}
				fmt.Printf("  %-20s %s  %s\n", c.Name, status, c.Detail)
			}
			return nil
		},
	}
	cmd.Flags().String("rules", "", "Path to YAML rulebook (defaults built in)")
	cmd.Flags().String("crew", "", "Crew member ID")
	cmd.Flags().Float64("monthly-hours", 0, "Monthly block hours already used")
	cmd.Flags().Float64("annual-hours", 0, "Rolling-year block hours")
	cmd.Flags().Int("duty-days", 0, "Consecutive duty days")
	cmd.Flags().Float64("rest-hours", 0, "Hours since last rest period began")
	cmd.Flags().StringSlice("ratings", nil, "Type ratings (e.g. B737-800,A320-200)")
	cmd.Flags().String("flight", "", "Flight ID")
	cmd.Flags().String("aircraft-type", "", "Aircraft type code for the flight")
	cmd.Flags().Float64("block-hours", 0, "Block hours for the trip")
	cmd.Flags().Float64("duty-period", 0, "Estimated flight duty period hours")
	return cmd
}
