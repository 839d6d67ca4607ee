package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/spellz/internal/app"
	"github.com/abhisek/spellz/internal/game"
	"github.com/abhisek/spellz/internal/llm"
	"github.com/abhisek/spellz/internal/logging"
	"github.com/abhisek/spellz/internal/screens/home"
	"github.com/abhisek/spellz/internal/screens/play"
	"github.com/abhisek/spellz/internal/screens/resume"
	"github.com/abhisek/spellz/internal/store"
	"github.com/abhisek/spellz/internal/wordlist"
)

// runApp opens the store, restores any saved run, and launches the TUI.
func runApp(cmd *cobra.Command) error {
	ctx := cmd.Context()
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	logger, err := logging.New(cfg.Logging)
	if err != nil {
		return fmt.Errorf("init logging: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()

	var gen *wordlist.Generator
	if cfg.LLM.Enabled() {
		provider, err := llm.NewProvider(ctx, cfg.LLM, logger, st.EventRepo())
		if err != nil {
			fmt.Fprintln(os.Stderr, "LLM provider not configured:", err)
			fmt.Fprintln(os.Stderr, "Themed word lists will be unavailable.")
		} else {
			gen = wordlist.NewGenerator(provider, logger)
		}
	}

	slots := st.SlotRepo()
	g, result, err := game.Restore(ctx, slots,
		game.WithLogger(logger),
		game.WithSettleDelay(cfg.Game.SettleDelay),
	)
	if err != nil {
		return fmt.Errorf("restore run: %w", err)
	}
	logger.Info("startup", zap.String("db", dbPath), zap.Stringer("restore", result))
	if result == game.RestoreDiscarded {
		fmt.Fprintln(os.Stderr, "The saved run could not be read and was discarded.")
	}

	opts := app.Options{
		Home: home.New(home.Options{
			Game:      cfg.Game,
			Recorder:  slots,
			Generator: gen,
			Logger:    logger,
		}),
	}
	if result == game.RestoreResumed {
		opts.Start = resume.New(g, slots, play.Options{Logger: logger})
	}
	return app.Run(opts)
}
