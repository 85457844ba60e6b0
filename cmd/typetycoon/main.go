// Package main provides the CLI entrypoint for typetycoon.
package main

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/verte-zerg/typetycoon/internal/combo"
	"github.com/verte-zerg/typetycoon/internal/config"
	"github.com/verte-zerg/typetycoon/internal/generator"
	"github.com/verte-zerg/typetycoon/internal/logging"
	"github.com/verte-zerg/typetycoon/internal/model"
	"github.com/verte-zerg/typetycoon/internal/session"
	"github.com/verte-zerg/typetycoon/internal/store"
	"github.com/verte-zerg/typetycoon/internal/tui"
	"github.com/verte-zerg/typetycoon/internal/upgrade"
	"github.com/verte-zerg/typetycoon/internal/wordlist"
)

const (
	defaultMode          = "target"
	defaultTargetScore   = 100000
	defaultPenalty       = "none"
	defaultResetCounter  = combo.MaxResetCounter
	defaultCountdown     = 5
	defaultSource        = "sentences"
	defaultSentenceCount = 3
	defaultWordCount     = 25
	defaultCaps          = 0.2
	defaultPunct         = 0.2
	defaultLogLevel      = "info"
)

const defaultPunctSet = ".,!?;:"

var (
	gameMode      string
	gameTarget    int
	gamePenalty   string
	gameReset     int
	gameCountdown int
	gameCatalog   string
	gameNoHistory bool

	textSource    string
	textSentences string
	textWordList  string
	textCount     int
	textCaps      float64
	textPunct     float64
	textPunctSet  string

	logLevel string

	fileCfg config.FileConfig
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:               "typetycoon",
		Short:             "Incremental typing game",
		SilenceUsage:      true,
		SilenceErrors:     false,
		PersistentPreRunE: loadSettings,
		RunE:              runPlayCmd,
	}

	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", defaultLogLevel, "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&gameCatalog, "catalog", "", "upgrade catalog file (.toml, .yaml)")

	flags := rootCmd.Flags()
	flags.StringVar(&gameMode, "mode", defaultMode, "round mode (target, exhaust)")
	flags.IntVar(&gameTarget, "target", defaultTargetScore, "score that wins a target round")
	flags.StringVar(&gamePenalty, "penalty", defaultPenalty, "mistake penalty (none, deduct)")
	flags.IntVar(&gameReset, "reset", defaultResetCounter, "initial combo reset counter (0-20)")
	flags.IntVar(&gameCountdown, "countdown", defaultCountdown, "countdown seconds before a round (0 to skip)")
	flags.BoolVar(&gameNoHistory, "no-history", false, "do not record finished runs")
	flags.StringVar(&textSource, "source", defaultSource, "text source (sentences, words)")
	flags.StringVar(&textSentences, "sentences", "", "custom sentence file, one per line")
	flags.StringVar(&textWordList, "wordlist", "", "custom word list, one per line")
	flags.IntVar(&textCount, "count", 0, "sentences or words per text chunk (0 for the source default)")
	flags.Float64Var(&textCaps, "caps", defaultCaps, "probability of capitalized first letter in word mode (0-1)")
	flags.Float64Var(&textPunct, "punct", defaultPunct, "punctuation probability per word in word mode (0-1)")
	flags.StringVar(&textPunctSet, "punct-set", defaultPunctSet, "punctuation set for word mode")

	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newUpgradesCmd())
	rootCmd.AddCommand(newHistoryCmd())

	return rootCmd
}

// loadSettings reads the config file and points logging at stderr. The play
// command moves logging to a file once the TUI takes over the terminal.
func loadSettings(cmd *cobra.Command, _ []string) error {
	var err error
	fileCfg, err = config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyStringConfig(cmd, "log-level", &logLevel, fileCfg.Log.Level)
	applyStringConfig(cmd, "catalog", &gameCatalog, fileCfg.Game.Catalog)
	level, err := logging.ParseLevel(logLevel)
	if err != nil {
		return err
	}
	logging.Setup(level, os.Stderr)
	return nil
}

func runPlayCmd(cmd *cobra.Command, _ []string) error {
	applyStringConfig(cmd, "mode", &gameMode, fileCfg.Game.Mode)
	applyIntConfig(cmd, "target", &gameTarget, fileCfg.Game.TargetScore)
	applyStringConfig(cmd, "penalty", &gamePenalty, fileCfg.Game.MistakePenalty)
	applyIntConfig(cmd, "reset", &gameReset, fileCfg.Game.InitialResetCounter)
	applyIntConfig(cmd, "countdown", &gameCountdown, fileCfg.Game.Countdown)
	applyStringConfig(cmd, "source", &textSource, fileCfg.Text.Source)
	applyStringConfig(cmd, "sentences", &textSentences, fileCfg.Text.Sentences)
	applyStringConfig(cmd, "wordlist", &textWordList, fileCfg.Text.WordList)
	applyIntConfig(cmd, "count", &textCount, fileCfg.Text.Count)
	applyFloatConfig(cmd, "caps", &textCaps, fileCfg.Text.CapsPct)
	applyFloatConfig(cmd, "punct", &textPunct, fileCfg.Text.PunctPct)
	applyStringConfig(cmd, "punct-set", &textPunctSet, fileCfg.Text.PunctSet)

	history := !gameNoHistory
	if fileCfg.Game.History != nil && !cmd.Flags().Changed("no-history") {
		history = *fileCfg.Game.History
	}

	cfg := model.Config{
		Mode:                gameMode,
		TargetScore:         gameTarget,
		MistakePenalty:      gamePenalty,
		InitialResetCounter: gameReset,
		Countdown:           gameCountdown,
		CatalogPath:         gameCatalog,
		History:             history,
		TextSource:          textSource,
		SentencesPath:       textSentences,
		WordListPath:        textWordList,
		TextCount:           textCount,
		CapsPct:             textCaps,
		PunctPct:            textPunct,
		PunctSet:            textPunctSet,
	}
	if err := validateConfig(cfg); err != nil {
		return err
	}

	catalog, err := loadCatalog(cfg.CatalogPath)
	if err != nil {
		return err
	}
	source, err := buildSource(cfg, generator.New())
	if err != nil {
		return err
	}

	level, err := logging.ParseLevel(logLevel)
	if err != nil {
		return err
	}
	logPath := config.DefaultLogPath()
	if fileCfg.Log.File != nil && *fileCfg.Log.File != "" {
		logPath = *fileCfg.Log.File
	}
	logFile, err := logging.SetupFile(level, logPath)
	if err != nil {
		return err
	}
	defer closeQuietly(logFile)

	var st *store.Store
	if cfg.History {
		st, err = store.Open(config.DefaultDBPath())
		if err != nil {
			return fmt.Errorf("failed to open db: %w", err)
		}
		defer func() {
			if cerr := st.Close(); cerr != nil {
				log.Error().Err(cerr).Msg("failed to close db")
			}
		}()
	}

	game, err := tui.NewModel(tui.Options{
		Config:  cfg,
		Catalog: catalog,
		Source:  source,
		Store:   st,
	})
	if err != nil {
		return err
	}
	log.Info().Str("mode", cfg.Mode).Int("target", cfg.TargetScore).Msg("starting game")
	program := tea.NewProgram(game, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

func loadCatalog(path string) (*upgrade.Catalog, error) {
	if path == "" {
		return upgrade.Default(), nil
	}
	catalog, err := upgrade.LoadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}
	log.Debug().Str("path", path).Int("upgrades", catalog.Len()).Msg("loaded upgrade catalog")
	return catalog, nil
}

func buildSource(cfg model.Config, gen *generator.Generator) (generator.Source, error) {
	switch cfg.TextSource {
	case "sentences":
		sentences := generator.DefaultSentences()
		if cfg.SentencesPath != "" {
			loaded, err := wordlist.LoadWords(cfg.SentencesPath, wordlist.Typeable)
			if err != nil {
				return nil, fmt.Errorf("failed to load sentences from %s: %w", cfg.SentencesPath, err)
			}
			sentences = loaded
		}
		count := cfg.TextCount
		if count == 0 {
			count = defaultSentenceCount
		}
		return &generator.SentenceSource{Gen: gen, Sentences: sentences, Count: count}, nil
	case "words":
		words := generator.WordsFrom(generator.DefaultSentences())
		if cfg.WordListPath != "" {
			loaded, err := wordlist.LoadWords(cfg.WordListPath, wordlist.LowerWord)
			if err != nil {
				return nil, fmt.Errorf("failed to load word list from %s: %w", cfg.WordListPath, err)
			}
			words = loaded
		}
		count := cfg.TextCount
		if count == 0 {
			count = defaultWordCount
		}
		return &generator.WordSource{
			Gen:      gen,
			Words:    words,
			Count:    count,
			CapsPct:  cfg.CapsPct,
			PunctPct: cfg.PunctPct,
			PunctSet: []rune(cfg.PunctSet),
		}, nil
	}
	return nil, fmt.Errorf("unknown text source %q", cfg.TextSource)
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
		log.Info().Str("path", path).Msg("created config file")
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return fmt.Errorf("editor command is empty")
	}
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyIntConfig(cmd *cobra.Command, name string, target, value *int) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyFloatConfig(cmd *cobra.Command, name string, target, value *float64) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# typetycoon configuration
# Uncomment a value to enable it. CLI flags override config values.

[game]
# mode = %q                # Round mode: target or exhaust
# target-score = %d        # Score that wins a target round
# mistake-penalty = %q     # none or deduct (one point per mistake)
# initial-reset-counter = %d  # Combo gate at round start (0-20)
# countdown = %d              # Countdown seconds before a round
# catalog = ""                # Upgrade catalog file (.toml, .yaml); empty uses the built-in one
# history = true              # Record finished runs for "typetycoon history"

[text]
# source = %q        # sentences or words
# sentences = ""     # Custom sentence file, one per line
# wordlist = ""      # Custom word list, one per line
# count = 0          # Sentences or words per chunk (0 for the source default)
# caps = %.2f        # Probability of capitalized first letter (word mode)
# punct = %.2f       # Punctuation probability per word (word mode)
# punct-set = %q     # Punctuation set (word mode)

[log]
# level = %q   # debug, info, warn, error
# file = ""    # Log file used while playing
`,
		defaultMode,
		defaultTargetScore,
		defaultPenalty,
		defaultResetCounter,
		defaultCountdown,
		defaultSource,
		defaultCaps,
		defaultPunct,
		defaultPunctSet,
		defaultLogLevel,
	)
}

func validateConfig(cfg model.Config) error {
	if _, err := session.ParseMode(cfg.Mode); err != nil {
		return fmt.Errorf("--mode: %w", err)
	}
	if _, err := session.ParsePenalty(cfg.MistakePenalty); err != nil {
		return fmt.Errorf("--penalty: %w", err)
	}
	if cfg.TargetScore < 0 {
		return fmt.Errorf("--target must be >= 0")
	}
	if cfg.InitialResetCounter < 0 || cfg.InitialResetCounter > combo.MaxResetCounter {
		return fmt.Errorf("--reset must be between 0 and %d", combo.MaxResetCounter)
	}
	if cfg.Countdown < 0 {
		return fmt.Errorf("--countdown must be >= 0")
	}
	if cfg.TextSource != "sentences" && cfg.TextSource != "words" {
		return fmt.Errorf("--source must be sentences or words")
	}
	if cfg.TextCount < 0 {
		return fmt.Errorf("--count must be >= 0")
	}
	if cfg.CapsPct < 0 || cfg.CapsPct > 1 {
		return fmt.Errorf("--caps must be between 0 and 1")
	}
	if cfg.PunctPct < 0 || cfg.PunctPct > 1 {
		return fmt.Errorf("--punct must be between 0 and 1")
	}
	if cfg.PunctPct > 0 && cfg.PunctSet == "" {
		return fmt.Errorf("--punct-set must not be empty")
	}
	return nil
}

func closeQuietly(c io.Closer) {
	if err := c.Close(); err != nil {
		// Best-effort close on exit.
		_ = err
	}
}
