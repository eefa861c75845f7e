package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/kirilian/tui-advent/internal/adventures"
	"github.com/kirilian/tui-advent/internal/config"
	"github.com/kirilian/tui-advent/internal/storage"
)

var scoresCmd = &cobra.Command{
	Use:   "scores <adventure>",
	Short: "Show session history for an adventure",
	Long: `Display the top 10 finished sessions for the given adventure,
ranked by treasure score and then by fewest turns.

Examples:
  advent scores demo
  advent scores adv01`,
	Args: cobra.ExactArgs(1),
	Run:  runScores,
}

func runScores(cmd *cobra.Command, args []string) {
	adventureID := args[0]

	cfg, err := config.Load(flagConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading settings: %v\n", err)
		os.Exit(1)
	}

	store, err := storage.Open(dbPath(cfg))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening session database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	sessions, err := store.TopSessions(adventureID, 10)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving sessions: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Session history - %s\n", adventures.Title(adventureID))
	fmt.Println()

	if len(sessions) == 0 {
		fmt.Println("No sessions recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'advent play %s' to record the first one!\n", adventureID)
		return
	}

	// Print header
	fmt.Printf("  %-4s  %-6s  %-6s  %-10s  %s\n", "Rank", "Score", "Turns", "Outcome", "Date")
	fmt.Printf("  %-4s  %-6s  %-6s  %-10s  %s\n", "----", "-----", "-----", "-------", "----")

	for i, sess := range sessions {
		dateStr := sess.CreatedAt.Format("2006-01-02 15:04")
		fmt.Printf("  %-4d  %-6d  %-6d  %-10s  %s\n", i+1, sess.Score, sess.Turns, sess.Outcome, dateStr)
	}

	fmt.Println()
	if best, err := store.BestScore(adventureID); err == nil {
		fmt.Printf("Best: %d\n", best)
	}
}
