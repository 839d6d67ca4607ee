package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var llmCmd = &cobra.Command{
	Use:   "llm",
	Short: "Inspect language model usage",
}

var llmUsageCmd = &cobra.Command{
	Use:   "usage",
	Short: "Show recorded LLM requests and token totals",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		u, err := s.EventRepo().LLMUsage(cmd.Context())
		if err != nil {
			return fmt.Errorf("query usage: %w", err)
		}
		if u.Requests == 0 {
			fmt.Println("No LLM usage recorded yet.")
			return nil
		}

		fmt.Printf("%-10s  %8s  %10s  %10s  %10s\n", "Requests", "Failed", "Input", "Output", "Total")
		fmt.Println(strings.Repeat("─", 56))
		fmt.Printf("%-10d  %8d  %10d  %10d  %10d\n",
			u.Requests, u.Failures, u.InputTokens, u.OutputTokens, u.InputTokens+u.OutputTokens)
		return nil
	},
}

func init() {
	llmCmd.AddCommand(llmUsageCmd)
}
