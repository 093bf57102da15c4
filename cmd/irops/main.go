package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/phantom-air/irops/internal/config"
	"github.com/phantom-air/irops/internal/logging"
)

var version = "0.1.0-dev"

func main() {
	rootCmd := &cobra.Command{
		Use:   "irops",
		Short: "IROPS desk - irregular operations recovery for Phantom Airlines",
		Long: `irops is the operations-desk tool for irregular operations: flight
status dashboards, crew recovery, ghost-flight resolution, passenger
rebooking prioritization, disruption cost analytics, and a contract
compliance checker, all over the analytics warehouse.`,
		SilenceUsage: true,
	}

	// Global flags
	rootCmd.PersistentFlags().Bool("json", false, "Output as JSON (for agent consumption)")
	rootCmd.PersistentFlags().String("config", "", "Path to config file (YAML)")

	rootCmd.AddCommand(
		newVersionCmd(),
		newDashboardCmd(),
		newCrewCmd(),
		newGhostsCmd(),
		newRebookingCmd(),
		newDisruptionsCmd(),
		newValidateCmd(),
		newAskCmd(),
		newMCPServerCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			jsonOut, _ := cmd.Flags().GetBool("json")
			if jsonOut {
				json.NewEncoder(os.Stdout).Encode(map[string]string{"version": version})
			} else {
				fmt.Printf("irops version %s\n", version)
			}
		},
	}
}

// loadConfig loads configuration honoring the --config flag and
// initializes the global logger from it.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	if path, _ := cmd.Flags().GetString("config"); path != "" {
		os.Setenv("IROPS_CONFIG_PATH", path)
	}
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	logging.Init(logging.ParseLevel(cfg.Log.Level), cfg.Log.Format)
	return cfg, nil
}

// printJSON writes v to stdout as indented JSON.
func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
