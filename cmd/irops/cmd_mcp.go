package main

import (
	"github.com/spf13/cobra"

	"github.com/phantom-air/irops/internal/compliance"
	"github.com/phantom-air/irops/internal/mcp"
)

func newMCPServerCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "mcp-server",
		Short: "Run the MCP server over stdio",
		Long: `Serves the IROPS toolset over the Model Context Protocol on
stdin/stdout so agent hosts can drive dashboards, recovery sessions,
and compliance checks directly.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			rules := compliance.DefaultRulebook()
			if a.cfg.Compliance.RulesPath != "" {
				rules, err = compliance.LoadRulebook(a.cfg.Compliance.RulesPath)
				if err != nil {
					return err
				}
			}

			server := mcp.NewServer(&mcp.Config{Name: "irops", Version: version}, mcp.Deps{
				Ops:       a.ops,
				Recovery:  a.recovery,
				Flights:   a.wh,
				Rules:     rules,
				Assistant: a.assistant,
			})
			return server.Run(cmd.Context())
		},
	}
}
