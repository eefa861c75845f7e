package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kirilian/tui-advent/internal/adventures"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List bundled adventures",
	Long:  `Shows the adventures compiled into the binary. Any other Scott Adams format data file can be played by path.`,
	Run:   runList,
}

func runList(cmd *cobra.Command, args []string) {
	bundled := adventures.List()

	if len(bundled) == 0 {
		fmt.Println("No bundled adventures.")
		return
	}

	fmt.Println("Bundled adventures:")
	fmt.Println()

	// Calculate column widths
	maxIDLen := 2 // "ID" header
	for _, a := range bundled {
		if len(a.ID) > maxIDLen {
			maxIDLen = len(a.ID)
		}
	}

	// Print header
	fmt.Printf("  %-*s  %s\n", maxIDLen, "ID", "Title")
	fmt.Printf("  %-*s  %s\n", maxIDLen, "--", "-----")

	for _, a := range bundled {
		fmt.Printf("  %-*s  %s\n", maxIDLen, a.ID, a.Title)
	}

	fmt.Println()
	fmt.Println("Run 'advent play <id>' to start one, or 'advent play <path>' for a data file.")
}
