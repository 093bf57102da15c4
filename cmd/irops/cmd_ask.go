package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/phantom-air/irops/internal/narrative"
)

func newAskCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ask <question>",
		Short: "Ask the IROPS assistant a free-form operations question",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			if a.assistant == nil {
				return errors.New("assistant is disabled; enable agent in config")
			}

			question := strings.Join(args, " ")
			prompt := narrative.AssistantPrompt(question)
			if contract, _ := cmd.Flags().GetBool("contract"); contract {
				prompt = narrative.ContractPrompt(question)
			}

			response, err := a.assistant.Complete(cmd.Context(), prompt)
			if err != nil {
				return fmt.Errorf("asking assistant: %w", err)
			}

			jsonOut, _ := cmd.Flags().GetBool("json")
			if jsonOut {
				return printJSON(map[string]string{"question": question, "response": response})
			}
			fmt.Println(response)
			return nil
		},
	}
	cmd.Flags().Bool("contract", false, "Frame as a PWA / Part 117 duty-rule question")
	return cmd
}
