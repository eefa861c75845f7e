// advent is a terminal interpreter for Scott Adams format adventure games.
//
// Usage:
//
//	advent list                - List bundled adventures
//	advent play <adventure>    - Play a bundled adventure or a data file
//	advent info <adventure>    - Show data file details
//	advent serve               - Start SSH server for remote play
//	advent scores <adventure>  - Show session history for an adventure
//
// Global flags:
//
//	--seed <value>   - Set RNG seed for reproducible play
//	--db <path>      - Set session database path (default: ~/.advent/sessions.db)
//	--config <path>  - Use a specific settings file
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	flagSeed   int64
	flagDBPath string
	flagConfig string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "advent",
	Short: "Advent - Play classic text adventures in your terminal",
	Long: `Advent is a terminal interpreter for the Scott Adams adventure
database format. It runs the bundled adventures or any compatible data
file, locally or over SSH.

Available commands:
  list     - Show bundled adventures
  play     - Play an adventure
  info     - Inspect an adventure data file
  serve    - Start SSH server for remote play
  scores   - View session history

Examples:
  advent list
  advent play demo
  advent play ./adv01.dat --wizard
  advent serve --ssh :2222
  advent scores demo`,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to session database (default from settings)")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to settings YAML")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(infoCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
}
