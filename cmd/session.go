package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/spellz/internal/drill"
	"github.com/abhisek/spellz/internal/snapshot"
	"github.com/abhisek/spellz/internal/store"
)

var sessionCmd = &cobra.Command{
	Use:   "session",
	Short: "Inspect or drop the saved run",
}

var sessionShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the saved run",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		ctx := cmd.Context()
		slots, ok, err := s.SlotRepo().Load(ctx)
		if err != nil {
			return fmt.Errorf("load slots: %w", err)
		}
		if !ok {
			fmt.Println("No saved run.")
			return nil
		}
		rec, err := snapshot.DecodeRecord(slots)
		if err != nil {
			return fmt.Errorf("saved run is unreadable (run `spellz session clear`): %w", err)
		}
		updated, _, err := s.SlotRepo().UpdatedAt(ctx)
		if err != nil {
			return fmt.Errorf("read timestamp: %w", err)
		}

		st := rec.Current
		stats := drill.CalcStats(st)
		fmt.Printf("Saved:     %s\n", updated.Local().Format("2006-01-02 15:04:05"))
		fmt.Printf("Word:      %d of %d\n", st.Words.Index()+1, st.Words.Len())
		fmt.Printf("Status:    %s\n", st.Status.Kind())
		fmt.Printf("Budget:    %d wrong picks per word\n", st.MaxWrongAttempts)
		fmt.Printf("Perfect:   %d so far\n", stats.PerfectWords)
		fmt.Printf("Wrong:     %d so far\n", stats.TotalWrongAttempts)
		fmt.Printf("Replay:    %v\n", rec.Input != nil)

		fmt.Println(strings.Repeat("─", 40))
		for i, w := range st.Words.Values() {
			if i >= st.Words.Index() {
				break
			}
			mark := "✓"
			if n := st.WrongAttemptsFor(w); n > 0 {
				mark = fmt.Sprintf("✗%d", n)
			}
			fmt.Printf("%-3s %s\n", mark, w)
		}
		return nil
	},
}

var sessionClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete the saved run",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		if err := s.SlotRepo().Clear(cmd.Context()); err != nil {
			return fmt.Errorf("clear slots: %w", err)
		}
		fmt.Println("Saved run cleared.")
		return nil
	},
}

func openStore(cmd *cobra.Command) (*store.Store, error) {
	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return nil, fmt.Errorf("resolve database path: %w", err)
	}
	s, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return s, nil
}

func init() {
	sessionCmd.AddCommand(sessionShowCmd)
	sessionCmd.AddCommand(sessionClearCmd)
}
