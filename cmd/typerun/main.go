// Package main provides the CLI entrypoint for typerun.
package main

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/verte-zerg/typerun/internal/config"
	"github.com/verte-zerg/typerun/internal/excerpt"
	"github.com/verte-zerg/typerun/internal/generator"
	"github.com/verte-zerg/typerun/internal/leaderboard"
	"github.com/verte-zerg/typerun/internal/model"
	"github.com/verte-zerg/typerun/internal/sink"
	"github.com/verte-zerg/typerun/internal/stats"
	"github.com/verte-zerg/typerun/internal/statsui"
	"github.com/verte-zerg/typerun/internal/store"
	"github.com/verte-zerg/typerun/internal/tui"
	"github.com/verte-zerg/typerun/internal/wordlist"
)

const (
	defaultLang        = "en"
	defaultCurveWindow = 10
	defaultBoardLimit  = 10
	defaultGhostWPM    = 60
)

var (
	playDuration int
	playRace     bool
	playLang     string
	playName     string

	statsSince       string
	statsLast        int
	statsCurveWindow int
	statsName        string

	boardLimit int

	shareResolve string
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "typerun",
		Short:         "Terminal typing-speed test",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runPlayCmd,
	}

	rootCmd.Flags().IntVar(&playDuration, "duration", config.DurationDefault, "countdown in seconds (15 or 30)")
	rootCmd.Flags().BoolVar(&playRace, "race", false, "race a ghost opponent from the leaderboard")
	rootCmd.Flags().StringVar(&playLang, "lang", defaultLang, "word list language code")
	rootCmd.Flags().StringVar(&playName, "name", "", "display name; results are saved under it")

	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newStatsCmd())
	rootCmd.AddCommand(newLeaderboardCmd())
	rootCmd.AddCommand(newShareCmd())

	return rootCmd
}

func runPlayCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyIntConfig(cmd, "duration", &playDuration, fileCfg.Play.Duration)
	applyBoolConfig(cmd, "race", &playRace, fileCfg.Play.Race)
	applyStringConfig(cmd, "lang", &playLang, fileCfg.Play.Lang)
	applyStringConfig(cmd, "name", &playName, fileCfg.Play.Name)

	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}()

	ctx := context.Background()
	duration, err := resolveDuration(ctx, cmd, st, playName)
	if err != nil {
		return err
	}

	cfg := model.Config{
		DurationSeconds: duration,
		Race:            playRace,
		Lang:            playLang,
		Identity:        playName,
	}

	provider := buildProvider(cfg.Lang)

	var opponent *model.Opponent
	if cfg.Race {
		opponent = pickOpponent(ctx, st, cfg.Identity)
	}

	m, err := tui.NewModel(cfg, provider, sink.New(st), opponent)
	if err != nil {
		return err
	}
	program := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

// resolveDuration picks the countdown: explicit flag wins and is remembered,
// then the config file, then the stored preference, then the default.
func resolveDuration(ctx context.Context, cmd *cobra.Command, st *store.Store, identity string) (int, error) {
	if !config.ValidDuration(playDuration) {
		return 0, fmt.Errorf("--duration must be %d or %d", config.DurationShort, config.DurationDefault)
	}
	if cmd.Flags().Changed("duration") {
		if identity != "" {
			if err := st.SetDurationPreference(ctx, identity, playDuration); err != nil {
				logErrf("failed to store duration preference: %v\n", err)
			}
		}
		return playDuration, nil
	}
	if playDuration != config.DurationDefault {
		// Set via config file.
		return playDuration, nil
	}
	if secs, ok, err := st.DurationPreference(ctx, identity); err != nil {
		logErrf("failed to load duration preference: %v\n", err)
	} else if ok {
		return secs, nil
	}
	return playDuration, nil
}

// buildProvider chains the word-list generator with the curated fallback.
// A missing word list is fine; the curated excerpts carry the session.
func buildProvider(lang string) excerpt.Provider {
	curated := excerpt.NewCurated()
	words, err := wordlist.LoadWords(config.DefaultWordListPath(lang))
	if err != nil {
		if !os.IsNotExist(err) {
			logErrf("failed to load word list: %v\n", err)
		}
		return curated
	}
	return excerpt.NewFallback(excerpt.NewGenerated(generator.New(), words), curated)
}

// pickOpponent selects a leaderboard ghost, falling back to a fixed default
// pace when the board is empty or unreadable.
func pickOpponent(ctx context.Context, st *store.Store, selfName string) *model.Opponent {
	candidates, err := leaderboard.Candidates(ctx, st, defaultBoardLimit)
	if err != nil {
		logErrf("failed to load leaderboard: %v\n", err)
	}
	if opponent, ok := leaderboard.Pick(candidates, selfName); ok {
		return &opponent
	}
	logErrln("leaderboard is empty; racing the default ghost")
	return &model.Opponent{WPM: defaultGhostWPM, DisplayName: "ghost"}
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

func newStatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show result stats",
		RunE:  runStatsCmd,
	}
	cmd.Flags().StringVar(&statsSince, "since", "", "start date (YYYY-MM-DD)")
	cmd.Flags().IntVar(&statsLast, "last", 0, "limit to last N results")
	cmd.Flags().IntVar(&statsCurveWindow, "curve-window", defaultCurveWindow, "moving average window")
	cmd.Flags().StringVar(&statsName, "name", "", "filter by display name")
	return cmd
}

func runStatsCmd(_ *cobra.Command, _ []string) error {
	var sinceTime *time.Time
	if statsSince != "" {
		parsed, err := time.ParseInLocation("2006-01-02", statsSince, time.Local)
		if err != nil {
			return fmt.Errorf("invalid --since value: %w", err)
		}
		sinceTime = &parsed
	}

	cfg := model.StatsConfig{
		Identity:    statsName,
		Since:       sinceTime,
		Last:        statsLast,
		CurveWindow: statsCurveWindow,
	}

	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}()

	m := statsui.NewModel(st, cfg)
	program := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run stats TUI: %w", err)
	}
	return nil
}

func newLeaderboardCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "leaderboard",
		Short: "Show the best WPM per name",
		Args:  cobra.NoArgs,
		RunE:  runLeaderboardCmd,
	}
	cmd.Flags().IntVar(&boardLimit, "limit", defaultBoardLimit, "number of entries")
	return cmd
}

func runLeaderboardCmd(cmd *cobra.Command, _ []string) error {
	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}()

	candidates, err := leaderboard.Candidates(context.Background(), st, boardLimit)
	if err != nil {
		return fmt.Errorf("failed to load leaderboard: %w", err)
	}
	return stats.RenderLeaderboard(cmd.OutOrStdout(), candidates)
}

func newShareCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "share [result-id]",
		Short: "Mint or resolve a share code for a saved result",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runShareCmd,
	}
	cmd.Flags().StringVar(&shareResolve, "resolve", "", "resolve an existing share code")
	return cmd
}

func runShareCmd(cmd *cobra.Command, args []string) error {
	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}()

	ctx := context.Background()
	if shareResolve != "" {
		res, err := st.ResolveShareLink(ctx, shareResolve)
		if err != nil {
			return fmt.Errorf("failed to resolve share code: %w", err)
		}
		_, err = fmt.Fprintf(cmd.OutOrStdout(), "#%d %s: %d WPM, %d%% accuracy, %ds\n",
			res.ID, res.Identity, res.WPM, res.Accuracy, res.DurationSeconds)
		return err
	}

	if len(args) != 1 {
		return fmt.Errorf("provide a result id or --resolve <code>")
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid result id %q", args[0])
	}
	code, err := st.CreateShareLink(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to create share link: %w", err)
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), code)
	return err
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

func applyBoolConfig(cmd *cobra.Command, name string, target, value *bool) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# typerun configuration
# Uncomment a value to enable it. CLI flags override config values.

[play]
# duration = %d           # Countdown in seconds (%d or %d)
# race = false            # Race a ghost opponent from the leaderboard
# lang = %q               # Word list language code
# name = ""               # Display name; results are saved under it
`,
		config.DurationDefault,
		config.DurationShort,
		config.DurationDefault,
		defaultLang,
	)
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}

func logErrln(args ...any) {
	if _, err := fmt.Fprintln(os.Stderr, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
