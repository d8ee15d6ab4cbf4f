package main

import (
	"context"
	"fmt"
	"log"
	"math/rand/v2"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"

	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/lixenwraith/termfolio/app"
	"github.com/lixenwraith/termfolio/audio"
	"github.com/lixenwraith/termfolio/config"
	"github.com/lixenwraith/termfolio/games/narrative"
	"github.com/lixenwraith/termfolio/store"
)

var (
	cfgFile  string
	debugLog bool
	noSound  bool
	seed     uint64
	game     string
)

var rootCmd = &cobra.Command{
	Use:   "termfolio",
	Short: "Terminal portfolio with a prompt, themes and three minigames",
	Long: `termfolio renders a single-page portfolio in the terminal. A prompt
navigates sections and switches accent themes; the game section embeds a
falling-block puzzle, a card loop and a branching story.`,
	SilenceUsage: true,
	RunE:         runRoot,
}

var resetOnly string

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete persisted theme, story progress and best score",
	Args:  cobra.NoArgs,
	RunE:  runReset,
}

var storyFile string

var validateStoryCmd = &cobra.Command{
	Use:   "validate-story",
	Short: "Load and validate the narrative graph",
	Args:  cobra.NoArgs,
	RunE:  runValidateStory,
}

var forceInit bool

var initConfigCmd = &cobra.Command{
	Use:   "init-config",
	Short: "Write the default configuration to the --config path",
	Args:  cobra.NoArgs,
	RunE:  runInitConfig,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", config.DefaultPath(), "config file path")
	rootCmd.PersistentFlags().BoolVar(&debugLog, "debug", false, "write logs to logs/termfolio.log")
	rootCmd.PersistentFlags().BoolVar(&noSound, "no-sound", false, "disable sound cues")
	rootCmd.PersistentFlags().Uint64Var(&seed, "seed", 0, "random seed for the minigames (0 picks one)")
	rootCmd.Flags().StringVar(&game, "game", string(app.GameBlocks), "minigame mounted at start: blocks, cards or mega")

	resetCmd.Flags().StringVar(&resetOnly, "only", "", "limit to one of: theme, narrative, cards")
	validateStoryCmd.Flags().StringVar(&storyFile, "file", "", "story YAML to validate instead of the bundled one")
	initConfigCmd.Flags().BoolVar(&forceInit, "force", false, "overwrite an existing config file")

	rootCmd.AddCommand(resetCmd, validateStoryCmd, initConfigCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, err
	}
	if debugLog {
		cfg.Debug = true
	}
	if noSound {
		cfg.Sound = false
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", cfgFile, err)
	}
	return cfg, nil
}

// openStore falls back to an unavailable store; persistence is optional
func openStore(path string) (store.Store, func()) {
	db, err := store.OpenSQLite(path)
	if err != nil {
		log.Printf("store: %v (continuing without persistence)", err)
		return store.Unavailable{}, func() {}
	}
	return db, func() {
		if err := db.Close(); err != nil {
			log.Printf("store: close: %v", err)
		}
	}
}

func newPlayer(enabled bool) audio.Player {
	if !enabled {
		return audio.Silent{}
	}
	sm := audio.NewSoundManager()
	if err := sm.Initialize(); err != nil {
		log.Printf("Audio initialization failed: %v (continuing without audio)", err)
		return audio.Silent{}
	}
	return sm
}

func runRoot(cmd *cobra.Command, args []string) error {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return fmt.Errorf("stdout is not a terminal")
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if logFile := setupLogging(cfg.Debug); logFile != nil {
		defer logFile.Close()
	}

	kind, ok := app.ParseGame(game)
	if !ok {
		return fmt.Errorf("unknown game %q", game)
	}
	if seed == 0 {
		seed = rand.Uint64()
	}

	st, closeStore := openStore(cfg.StorePath)
	defer closeStore()

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("creating screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("initializing screen: %w", err)
	}

	// Panic Recovery: restore the terminal before printing the stack
	defer func() {
		r := recover()
		screen.Fini()
		if r != nil {
			fmt.Fprintf(os.Stderr, "\n\x1b[31mTERMFOLIO CRASHED: %v\x1b[0m\n", r)
			fmt.Fprintf(os.Stderr, "Stack Trace:\n%s\n", debug.Stack())
			os.Exit(1)
		}
	}()

	a, err := app.New(screen, app.Options{
		Config: cfg,
		Store:  st,
		Audio:  newPlayer(cfg.Sound),
		Seed:   seed,
		Game:   kind,
	})
	if err != nil {
		return err
	}
	defer a.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	log.Printf("termfolio started (seed %d)", seed)
	return a.Run(ctx)
}

// resetKeys maps a --only value to the persisted keys it clears
func resetKeys(only string) ([]string, error) {
	switch only {
	case "":
		return []string{store.KeyTheme, store.KeyNarrativeNode, store.KeyNarrativeStats, store.KeyCardsBest}, nil
	case "theme":
		return []string{store.KeyTheme}, nil
	case "narrative":
		return []string{store.KeyNarrativeNode, store.KeyNarrativeStats}, nil
	case "cards":
		return []string{store.KeyCardsBest}, nil
	}
	return nil, fmt.Errorf("invalid --only %q: must be theme, narrative or cards", only)
}

func runReset(cmd *cobra.Command, args []string) error {
	keys, err := resetKeys(resetOnly)
	if err != nil {
		return err
	}
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	db, err := store.OpenSQLite(cfg.StorePath)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := clearKeys(db, keys); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "cleared %d keys in %s\n", len(keys), db.Path())
	return nil
}

func clearKeys(s store.Store, keys []string) error {
	for _, k := range keys {
		if err := s.Delete(k); err != nil {
			return fmt.Errorf("deleting %s: %w", k, err)
		}
	}
	return nil
}

func runValidateStory(cmd *cobra.Command, args []string) error {
	g, err := loadStory(storyFile)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "story ok: %d nodes, entry %q\n", g.Len(), g.Entry)
	return nil
}

func loadStory(path string) (*narrative.Graph, error) {
	if path == "" {
		return narrative.DefaultGraph()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading story: %w", err)
	}
	return narrative.LoadGraph(data)
}

func runInitConfig(cmd *cobra.Command, args []string) error {
	if err := writeDefaultConfig(cfgFile, forceInit); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", cfgFile)
	return nil
}

// writeDefaultConfig saves the defaults to path; an existing file is kept unless force is set
func writeDefaultConfig(path string, force bool) error {
	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	}
	return config.DefaultConfig().Save(path)
}
