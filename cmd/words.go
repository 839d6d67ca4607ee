package cmd

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/spellz/internal/drill"
	"github.com/abhisek/spellz/internal/llm"
	"github.com/abhisek/spellz/internal/logging"
	"github.com/abhisek/spellz/internal/store"
	"github.com/abhisek/spellz/internal/wordlist"
)

var wordsCmd = &cobra.Command{
	Use:   "words",
	Short: "Check and generate word lists",
}

var wordsCheckCmd = &cobra.Command{
	Use:   "check [file]",
	Short: "Validate a word list, or show the words a run would use",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 1 {
			words, err := wordlist.LoadFile(args[0])
			if err != nil {
				var we *drill.WordError
				if errors.As(err, &we) {
					return fmt.Errorf("%s is not a usable word list: %w", args[0], err)
				}
				return err
			}
			fmt.Printf("%s: %d words OK\n", args[0], len(words))
			return nil
		}

		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		seed, _ := cmd.Flags().GetUint64("seed")
		if !cmd.Flags().Changed("seed") {
			seed = rand.Uint64()
		}
		words, err := wordlist.Resolve(cmd.Context(), cfg.WordSource(seed), nil, logging.Nop())
		if err != nil {
			return err
		}
		fmt.Println(strings.Join(words, "\n"))
		return nil
	},
}

var wordsGenerateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Ask the language model for a themed word list",
	RunE: func(cmd *cobra.Command, args []string) error {
		theme, _ := cmd.Flags().GetString("theme")
		count, _ := cmd.Flags().GetInt("count")
		if strings.TrimSpace(theme) == "" {
			return fmt.Errorf("--theme is required")
		}

		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		if !cfg.LLM.Enabled() {
			return fmt.Errorf("no LLM provider configured")
		}
		logger, err := logging.New(cfg.Logging)
		if err != nil {
			return fmt.Errorf("init logging: %w", err)
		}
		defer func() { _ = logger.Sync() }()

		dbPath, err := resolveDBPath(cmd)
		if err != nil {
			return fmt.Errorf("resolve database path: %w", err)
		}
		s, err := store.Open(dbPath)
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		defer s.Close()

		ctx := cmd.Context()
		provider, err := llm.NewProvider(ctx, cfg.LLM, logger, s.EventRepo())
		if err != nil {
			return err
		}
		out, err := wordlist.NewGenerator(provider, logger).Generate(ctx, theme, count)
		if err != nil {
			return fmt.Errorf("generate words: %w", err)
		}

		fmt.Println(strings.Join(out.Words, "\n"))
		fmt.Println(strings.Repeat("─", 40))
		fmt.Printf("Model:   %s\n", out.Model)
		fmt.Printf("Tokens:  %d in / %d out\n", out.Usage.InputTokens, out.Usage.OutputTokens)
		if cost, ok := llm.LookupCost(out.Model); ok {
			fmt.Printf("Cost:    %s\n", formatCost(cost.Cost(out.Usage)))
		}
		return nil
	},
}

func formatCost(usd float64) string {
	if usd < 0.01 {
		return fmt.Sprintf("$%.4f", usd)
	}
	return fmt.Sprintf("$%.2f", usd)
}

func init() {
	wordsCheckCmd.Flags().Uint64("seed", 0, "Shuffle seed for the preview")
	addGameFlags(wordsCheckCmd)
	wordsGenerateCmd.Flags().StringP("theme", "t", "", "Theme of the words")
	wordsGenerateCmd.Flags().IntP("count", "n", wordlist.DefaultCount, "Number of words")

	wordsCmd.AddCommand(wordsCheckCmd)
	wordsCmd.AddCommand(wordsGenerateCmd)
}
