// Package main provides the CLI entrypoint for kanadrill.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/verte-zerg/kanadrill/internal/config"
	"github.com/verte-zerg/kanadrill/internal/drill"
	"github.com/verte-zerg/kanadrill/internal/generator"
	"github.com/verte-zerg/kanadrill/internal/kana"
	"github.com/verte-zerg/kanadrill/internal/model"
	"github.com/verte-zerg/kanadrill/internal/stats"
	"github.com/verte-zerg/kanadrill/internal/store"
	"github.com/verte-zerg/kanadrill/internal/tui"
)

const defaultSet = string(kana.HiraganaMonographs)

var (
	drillSets     []string
	drillDuration int
	drillBell     bool
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "kanadrill",
		Short:         "Kana flashcard drill",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runDrillCmd,
	}

	rootCmd.Flags().StringSliceVar(&drillSets, "sets", []string{defaultSet}, "comma-separated kana sets to drill")
	rootCmd.Flags().Var(newSecondsValue(drill.DefaultTrialSeconds, &drillDuration), "duration", "time trial length in seconds")
	rootCmd.Flags().BoolVar(&drillBell, "bell", false, "ring the terminal bell on wrong answers")

	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newSetsCmd())
	rootCmd.AddCommand(newTableCmd())

	return rootCmd
}

func runDrillCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := resolveConfig(cmd, config.DefaultConfigPath())
	if err != nil {
		return err
	}
	if !isInteractive() {
		return fmt.Errorf("kanadrill needs an interactive terminal")
	}

	st, err := store.Open(store.MemoryDSN)
	if err != nil {
		return fmt.Errorf("failed to open answer journal: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close answer journal: %v\n", cerr)
		}
	}()

	m, err := tui.NewModel(cfg, st, generator.New())
	if err != nil {
		return err
	}
	program := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return printSummary(cmd.Context(), cmd.OutOrStdout(), st)
}

// printSummary writes the per-kana results of the finished run.
func printSummary(ctx context.Context, w io.Writer, st *store.Store) error {
	if ctx == nil {
		ctx = context.Background()
	}
	aggs, err := st.CharAggregates(ctx)
	if err != nil {
		return fmt.Errorf("failed to load answer stats: %w", err)
	}
	if err := stats.RenderCharTable(w, aggs); err != nil {
		return fmt.Errorf("failed to write summary: %w", err)
	}
	return nil
}

// resolveConfig merges the config file under the command line flags.
func resolveConfig(cmd *cobra.Command, path string) (model.Config, error) {
	fileCfg, err := config.LoadConfig(path)
	if err != nil {
		return model.Config{}, fmt.Errorf("failed to load config: %w", err)
	}
	applySliceConfig(cmd, "sets", &drillSets, fileCfg.Drill.Sets)
	applyIntConfig(cmd, "duration", &drillDuration, fileCfg.Drill.TrialSeconds())
	applyBoolConfig(cmd, "bell", &drillBell, fileCfg.Drill.Bell)

	cfg := model.Config{
		Sets:         drillSets,
		TrialSeconds: drillDuration,
		Bell:         drillBell,
	}
	if err := validateConfig(&cfg); err != nil {
		return model.Config{}, err
	}
	return cfg, nil
}

func validateConfig(cfg *model.Config) error {
	names, err := kana.ParseNames(cfg.Sets)
	if err != nil {
		return err
	}
	if len(names) == 0 {
		return fmt.Errorf("--sets must name at least one kana set: %w", drill.ErrEmptySet)
	}
	cfg.Sets = make([]string, len(names))
	for i, n := range names {
		cfg.Sets[i] = string(n)
	}
	if cfg.TrialSeconds <= 0 {
		cfg.TrialSeconds = drill.DefaultTrialSeconds
	}
	return nil
}

func isInteractive() bool {
	return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
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
	if err := writeDefaultConfig(path); err != nil {
		return err
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

// writeDefaultConfig creates the config file from the template unless it exists.
func writeDefaultConfig(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err == nil {
		return nil
	} else if !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to stat config: %w", err)
	}
	if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

func newSetsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sets",
		Short: "List kana sets",
		Args:  cobra.NoArgs,
		RunE:  runSetsCmd,
	}
}

func runSetsCmd(cmd *cobra.Command, _ []string) error {
	for _, name := range kana.Names() {
		if _, err := fmt.Fprintf(cmd.OutOrStdout(), "%-20s %3d\n", name, kana.Subset(name).Len()); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	return nil
}

func newTableCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "table [set...]",
		Short: "Print kana with their romaji",
		RunE:  runTableCmd,
	}
}

func runTableCmd(cmd *cobra.Command, args []string) error {
	names := kana.Names()
	if len(args) > 0 {
		parsed, err := kana.ParseNames(args)
		if err != nil {
			return err
		}
		names = parsed
	}
	for _, name := range names {
		if err := stats.RenderSubsetTable(cmd.OutOrStdout(), string(name), kana.Subset(name)); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	return nil
}

// secondsValue is an int flag that never rejects its argument: anything that
// is not a whole number becomes 0, which validateConfig maps to the default.
type secondsValue int

func newSecondsValue(val int, p *int) *secondsValue {
	*p = val
	return (*secondsValue)(p)
}

func (s *secondsValue) Set(val string) error {
	n, err := strconv.Atoi(strings.TrimSpace(val))
	if err != nil {
		n = 0
	}
	*s = secondsValue(n)
	return nil
}

func (s *secondsValue) Type() string { return "seconds" }

func (s *secondsValue) String() string { return strconv.Itoa(int(*s)) }

func applySliceConfig(cmd *cobra.Command, name string, target, value *[]string) {
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
	names := kana.Names()
	quoted := make([]string, len(names))
	for i, n := range names {
		quoted[i] = fmt.Sprintf("%q", n)
	}
	return fmt.Sprintf(`# kanadrill configuration
# Uncomment a value to enable it. CLI flags override config values.

[drill]
# sets = [%q]    # Kana sets to drill, any of: %s
# duration = %d                   # Time trial length in seconds
# bell = false                    # Ring the terminal bell on wrong answers
`,
		defaultSet,
		strings.Join(quoted, ", "),
		drill.DefaultTrialSeconds,
	)
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
