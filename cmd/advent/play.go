package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/kirilian/tui-advent/internal/adventures"
	"github.com/kirilian/tui-advent/internal/config"
	"github.com/kirilian/tui-advent/internal/datafile"
	"github.com/kirilian/tui-advent/internal/engine"
	"github.com/kirilian/tui-advent/internal/platform/tui"
	"github.com/kirilian/tui-advent/internal/savegame"
	"github.com/kirilian/tui-advent/internal/storage"
)

var (
	flagWizard     bool
	flagWordLength int
	flagRestore    bool
)

var playCmd = &cobra.Command{
	Use:   "play <adventure>",
	Short: "Play an adventure",
	Long: `Start the interpreter on the named bundled adventure or a data
file path.

Type commands as VERB or VERB NOUN. Saying SAVE GAME inside an adventure
that supports it writes a save file; --restore resumes from it.

Controls:
  Enter      - Submit command
  Esc/Ctrl+C - Leave the session

Examples:
  advent play demo
  advent play ./adv01.dat
  advent play demo --restore
  advent play demo --seed 42 --wizard`,
	Args: cobra.ExactArgs(1),
	Run:  runPlay,
}

func init() {
	playCmd.Flags().BoolVar(&flagWizard, "wizard", false, "Enable wizard debug commands")
	playCmd.Flags().IntVar(&flagWordLength, "word-length", 0, "Vocabulary match length (0 = from data file)")
	playCmd.Flags().BoolVar(&flagRestore, "restore", false, "Resume from the adventure's save file")
}

func runPlay(cmd *cobra.Command, args []string) {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		fmt.Fprintln(os.Stderr, "Error: play needs an interactive terminal")
		os.Exit(1)
	}

	cfg, err := config.Load(flagConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading settings: %v\n", err)
		os.Exit(1)
	}

	id, data, err := adventures.Open(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		fmt.Fprintln(os.Stderr, "Run 'advent list' to see bundled adventures.")
		os.Exit(1)
	}

	prog, err := datafile.Load(data)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading adventure %q: %v\n", args[0], err)
		os.Exit(1)
	}

	opts := engine.Options{
		Seed:       flagSeed,
		Wizard:     flagWizard || cfg.Interpreter.Wizard,
		WordLength: flagWordLength,
	}
	if opts.Seed == 0 {
		opts.Seed = cfg.Interpreter.Seed
	}
	if opts.WordLength == 0 {
		opts.WordLength = cfg.Interpreter.WordLength
	}

	savePath := ""
	if saveDir := config.ExpandHome(cfg.Paths.SaveDir); saveDir != "" {
		savePath = filepath.Join(saveDir, id+".yaml")
	}

	session := tui.NewSession(savePath)
	eng := engine.New(prog, session, opts)
	session.Bind(eng)

	if flagRestore && savePath != "" {
		if commands, ok := savegame.Restore(savePath, eng); ok {
			session.SeedCommands(commands)
			session.Display("(Resuming a saved game.)")
		} else {
			session.Display("(No usable save file, starting fresh.)")
		}
	}
	eng.Begin()

	store, err := storage.Open(dbPath(cfg))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open session database: %v\n", err)
		// Continue without storage - the game still works
		store = nil
	}

	runErr := tui.Run(session, eng, store, id, adventures.Title(id))

	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running session: %v\n", runErr)
		os.Exit(1)
	}
}

// dbPath resolves the session database location: flag first, then the
// settings file.
func dbPath(cfg config.Config) string {
	if flagDBPath != "" {
		return flagDBPath
	}
	if cfg.Paths.DB != "" {
		return cfg.Paths.DB
	}
	return config.Default().Paths.DB
}
