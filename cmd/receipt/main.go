package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"
	"github.com/stefanpenner/receipt/pkg/clock"
	"github.com/stefanpenner/receipt/pkg/config"
	"github.com/stefanpenner/receipt/pkg/session"
	"github.com/stefanpenner/receipt/pkg/tui"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

type options struct {
	configPath string
	jsonOutput bool
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:           "receipt",
		Short:         "Watch your salary pay for your wishlist, one second at a time",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(_ *cobra.Command, _ []string) error {
			return runTUI(opts.configPath)
		},
	}
	root.PersistentFlags().StringVar(&opts.configPath, "config", config.DefaultPath(), "config file path")
	root.PersistentFlags().BoolVar(&opts.jsonOutput, "json", false, "print JSON instead of text")

	root.AddCommand(newRateCmd(opts))
	root.AddCommand(newSimulateCmd(opts))
	root.AddCommand(newInitCmd(opts))
	return root
}

func runTUI(configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	logger, closeLog, err := newTUILogger(cfg)
	if err != nil {
		return err
	}
	defer closeLog()

	l, err := cfg.NewLedger()
	if err != nil {
		return err
	}
	runner := session.NewRunner(l, clock.NewInterval(cfg.Tick), session.WithLogger(logger))
	defer runner.Close()

	m := tui.NewModel(runner, configPath, logger)
	p := tea.NewProgram(m, tea.WithAltScreen())

	// Send blocks until Update reads it, and Update may be waiting on the
	// clock to stop, so deliver ticks asynchronously.
	runner.SetOnTick(func() { go p.Send(tui.TickMsg{}) })

	cleanup, err := tui.StartWatcher(configPath, p)
	if err != nil {
		logger.Warn("config watcher disabled", "path", configPath, "error", err)
	} else {
		defer cleanup()
	}

	logger.Info("receipt started", "config", configPath, "daily_target", cfg.Work.Ledger().DailyTarget().String())
	_, err = p.Run()
	return err
}

// newTUILogger writes logs to a file, since the terminal belongs to the UI.
func newTUILogger(cfg config.Config) (*slog.Logger, func(), error) {
	path := cfg.Log.Path
	if path == "" {
		path = filepath.Join(config.DefaultDir(), "receipt.log")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, nil, fmt.Errorf("creating log directory: %w", err)
	}
	f, err := tea.LogToFile(path, "receipt")
	if err != nil {
		return nil, nil, fmt.Errorf("opening log file: %w", err)
	}
	logger := slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: cfg.LogLevel()}))
	return logger, func() { f.Close() }, nil
}

func newCLILogger(cfg config.Config, w io.Writer) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: cfg.LogLevel()}))
}

func newRateCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "rate",
		Short: "Print the daily target and per-second rate",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(opts.configPath)
			if err != nil {
				return err
			}
			work := cfg.Work.Ledger()
			out := cmd.OutOrStdout()

			if opts.jsonOutput {
				return outputJSON(out, map[string]string{
					"daily_target":    work.DailyTarget().StringFixed(2),
					"per_second_rate": work.PerSecondRate().StringFixed(6),
				})
			}
			fmt.Fprintf(out, "Daily target: %s\n", formatMoney(work.DailyTarget()))
			fmt.Fprintf(out, "Per second:   %s%s\n", currency, work.PerSecondRate().StringFixed(6))
			return nil
		},
	}
}

func newSimulateCmd(opts *options) *cobra.Command {
	var days int
	var plain bool

	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Commit a number of work days against the configured wishlist",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if days < 1 {
				return fmt.Errorf("--days must be at least 1, got %d", days)
			}
			cfg, err := config.Load(opts.configPath)
			if err != nil {
				return err
			}
			l, err := cfg.NewLedger()
			if err != nil {
				return err
			}

			runner := session.NewRunner(l, noopScheduler{},
				session.WithLogger(newCLILogger(cfg, cmd.ErrOrStderr())))
			result := simulate(runner, days)

			out := cmd.OutOrStdout()
			if opts.jsonOutput {
				return outputJSON(out, result)
			}

			md := renderReceipt(result)
			if plain {
				_, err := io.WriteString(out, md)
				return err
			}
			r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(80))
			if err != nil {
				return fmt.Errorf("creating renderer: %w", err)
			}
			rendered, err := r.Render(md)
			if err != nil {
				return fmt.Errorf("rendering receipt: %w", err)
			}
			_, err = io.WriteString(out, rendered)
			return err
		},
	}
	cmd.Flags().IntVar(&days, "days", 1, "number of work days to commit")
	cmd.Flags().BoolVar(&plain, "plain", false, "print raw markdown")
	return cmd
}

func newInitCmd(opts *options) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write the default config file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if _, err := os.Stat(opts.configPath); err == nil && !force {
				return fmt.Errorf("%s already exists (use --force to overwrite)", opts.configPath)
			} else if err != nil && !errors.Is(err, os.ErrNotExist) {
				return err
			}
			if err := config.Default().Save(opts.configPath); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", opts.configPath)
			return nil
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")
	return cmd
}

// noopScheduler never ticks; simulate commits whole days only.
type noopScheduler struct{}

func (noopScheduler) Start(func()) {}
func (noopScheduler) Stop()        {}

// JSON helpers

func outputJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
