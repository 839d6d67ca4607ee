package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/spellz/internal/config"
	"github.com/abhisek/spellz/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "spellz",
	Short: "Terminal spelling drill",
	Long:  "Spellz shuffles the letters of each word and asks you to put them back in order.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return config.LoadDotEnv()
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides SPELLZ_DB env var)")
	rootCmd.PersistentFlags().String("config", "", "Path to config file")
	addGameFlags(rootCmd)

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(wordsCmd)
	rootCmd.AddCommand(sessionCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then SPELLZ_DB env var, then the default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	return store.DefaultDBPath()
}

// loadConfig reads the config file named by --config, or the default one,
// and applies the game flags the user set on top of it.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	if path == "" {
		p, err := config.DefaultPath()
		if err != nil {
			return nil, err
		}
		path = p
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("words") {
		cfg.Game.WordsFile, _ = flags.GetString("words")
	}
	if flags.Changed("theme") {
		cfg.Game.Theme, _ = flags.GetString("theme")
	}
	if flags.Changed("count") {
		cfg.Game.WordCount, _ = flags.GetInt("count")
	}
	if flags.Changed("tries") {
		cfg.Game.MaxWrongAttempts, _ = flags.GetInt("tries")
	}
	if flags.Changed("log-level") {
		cfg.Logging.Level, _ = flags.GetString("log-level")
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func addGameFlags(cmd *cobra.Command) {
	cmd.Flags().String("words", "", "Word list file, one word per line")
	cmd.Flags().String("theme", "", "Ask the language model for words on this theme")
	cmd.Flags().Int("count", 0, "Number of words in a run")
	cmd.Flags().Int("tries", 0, "Wrong picks allowed per word")
	cmd.Flags().String("log-level", "", "Log level (debug, info, warn, error, off)")
}
