package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/GopalTomar/AI-Event-Planner/internal/chat"
	"github.com/GopalTomar/AI-Event-Planner/internal/config"
	"github.com/GopalTomar/AI-Event-Planner/internal/logging"
	"github.com/GopalTomar/AI-Event-Planner/internal/planner"
	"github.com/GopalTomar/AI-Event-Planner/internal/state"
	"github.com/GopalTomar/AI-Event-Planner/internal/tui"
)

// globalFlags holds the persistent flags shared by every subcommand.
type globalFlags struct {
	configPath string
	backend    string
	logFile    string
	debug      string
}

func newRootCmd() *cobra.Command {
	flags := &globalFlags{}

	root := &cobra.Command{
		Use:   "planiva",
		Short: "Terminal client for the AI event planner",
		Long: "planiva chats with the AI event planning service and shows the resulting plan,\n" +
			"budget and action items on a terminal dashboard.",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd, flags)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&flags.configPath, "config", "", "config file (default ~/.config/planiva/config.toml)")
	pf.StringVar(&flags.backend, "backend", "", "planning service base URL (overrides config and "+config.EnvBackendURL+")")
	pf.StringVar(&flags.logFile, "log-file", "", "write JSON logs to this file")
	pf.StringVar(&flags.debug, "debug", "", "write a JSONL trace of backend requests to this file")

	root.AddCommand(
		newPlanCmd(flags),
		newVendorsCmd(flags),
		newVersionCmd(),
	)
	return root
}

// app is the wiring every command shares: config, logger and backend client.
type app struct {
	cfg      config.Config
	logger   *slog.Logger
	client   *planner.Client
	cleanups []func()
}

func newApp(flags *globalFlags, stderr io.Writer) (*app, error) {
	if err := config.LoadDotEnv(); err != nil {
		return nil, err
	}

	var (
		loadResult *config.LoadResult
		err        error
	)
	if flags.configPath != "" {
		loadResult, err = config.LoadFrom(flags.configPath)
	} else {
		loadResult, err = config.Load()
	}
	if err != nil {
		return nil, err
	}
	for _, w := range loadResult.Warnings {
		fmt.Fprintf(stderr, "planiva: config warning: %s\n", w)
	}

	cfg := loadResult.Config
	if flags.backend != "" {
		cfg.Backend.BaseURL = flags.backend
	}
	if flags.logFile != "" {
		cfg.Logging.File = flags.logFile
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	a := &app{cfg: cfg}

	closeLog, err := logging.Setup(cfg.Logging.File, logging.ParseLevel(cfg.Logging.Level))
	if err != nil {
		return nil, fmt.Errorf("opening log file: %w", err)
	}
	logger := slog.Default()
	a.logger = logger
	a.cleanups = append(a.cleanups, closeLog)

	opts := []planner.Option{
		planner.WithTimeout(time.Duration(cfg.Backend.RequestTimeoutSeconds) * time.Second),
		planner.WithLogger(logger),
		planner.WithExistingDetails(cfg.Backend.SendExistingDetails),
	}
	if flags.debug != "" {
		f, err := logging.OpenTrace(flags.debug)
		if err != nil {
			a.Close()
			return nil, fmt.Errorf("opening debug trace %q: %w", flags.debug, err)
		}
		a.cleanups = append(a.cleanups, func() { f.Close() })
		opts = append(opts, planner.WithTracer(planner.NewFileTracer(f)))
	}

	a.client = planner.New(cfg.Backend.BaseURL, opts...)
	logger.Info("planiva starting", "backend", a.client.BaseURL())
	return a, nil
}

// Close releases files in reverse order of opening.
func (a *app) Close() {
	for i := len(a.cleanups) - 1; i >= 0; i-- {
		a.cleanups[i]()
	}
	a.cleanups = nil
}

func runTUI(cmd *cobra.Command, flags *globalFlags) error {
	a, err := newApp(flags, cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	store := state.NewMemoryStore()
	store.OnChange(func(c state.Change) {
		a.logger.Debug("state changed", "kind", c.Kind.String())
	})
	session := chat.NewSession(store, a.client, a.logger)

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	shutdownMgr := tui.NewShutdownManager()
	shutdownMgr.CancelRequests = cancel
	shutdownMgr.Cleanup = a.Close

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	log.SetOutput(io.Discard)

	model := tui.NewModel(a.cfg,
		tui.WithStateProvider(store),
		tui.WithChatController(session),
		tui.WithVendorProvider(a.client),
		tui.WithChangeFeed(store.Watch()),
		tui.WithContext(ctx),
		tui.WithOnShutdown(shutdownMgr.Shutdown),
	)

	p := tea.NewProgram(model,
		tea.WithAltScreen(),
	)

	go func() {
		select {
		case <-sigCh:
			shutdownMgr.Shutdown()
			p.Quit()
		case <-ctx.Done():
			return
		}
	}()

	_, err = p.Run()
	shutdownMgr.Shutdown()
	return err
}
