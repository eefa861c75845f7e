package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/kirilian/tui-advent/internal/adventures"
	"github.com/kirilian/tui-advent/internal/datafile"
)

var infoCmd = &cobra.Command{
	Use:   "info <adventure>",
	Short: "Inspect an adventure data file",
	Long: `Parse the adventure and print its table sizes and parameters
without playing it. Useful for checking whether a data file is intact.

Examples:
  advent info demo
  advent info ./adv01.dat`,
	Args: cobra.ExactArgs(1),
	Run:  runInfo,
}

func runInfo(cmd *cobra.Command, args []string) {
	id, data, err := adventures.Open(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	prog, err := datafile.Load(data)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading adventure %q: %v\n", args[0], err)
		os.Exit(1)
	}

	h := prog.Header
	fmt.Printf("%s (%s)\n", adventures.Title(id), id)
	fmt.Println()
	fmt.Printf("  %-16s %d (adventure %d, check %d)\n", "Version", prog.Trailer.Version, prog.Trailer.AdventureNumber, prog.Trailer.Magic)
	fmt.Printf("  %-16s %d\n", "Rooms", len(prog.Rooms))
	fmt.Printf("  %-16s %d\n", "Items", len(prog.Items))
	fmt.Printf("  %-16s %d\n", "Actions", len(prog.Actions))
	fmt.Printf("  %-16s %d verbs, %d nouns\n", "Vocabulary", len(prog.Words.Verbs), len(prog.Words.Nouns))
	fmt.Printf("  %-16s %d\n", "Messages", len(prog.Messages))
	fmt.Printf("  %-16s %d\n", "Treasures", h.NumTreasures)
	fmt.Printf("  %-16s room %d\n", "Treasure room", h.TreasureRoom)
	fmt.Printf("  %-16s room %d\n", "Start", h.StartRoom)
	fmt.Printf("  %-16s %d items\n", "Carry limit", h.MaxCarry)
	fmt.Printf("  %-16s %d turns\n", "Lamp fuel", h.LightTime)
	fmt.Printf("  %-16s %d letters\n", "Word match", h.WordLength)
}
