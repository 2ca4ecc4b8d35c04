package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/nibzard/tpdp/internal/config"
	"github.com/nibzard/tpdp/internal/logging"
	"github.com/nibzard/tpdp/internal/todo"
	"github.com/nibzard/tpdp/internal/ui"
)

// keepRunLogs is how many editor run logs are kept in the log dir.
const keepRunLogs = 20

// tuiCommand opens the interactive editor. Logs go to a per-run file so
// they do not draw over the alternate screen.
func tuiCommand(ctx context.Context, cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("tpdp tui", flag.ContinueOnError)
	fs.SetOutput(stderr)
	filterName := fs.String("filter", cfg.DefaultFilter, "Initial filter (all, active, completed)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() > 0 {
		return fmt.Errorf("unexpected arguments: %v", fs.Args())
	}
	filter, err := todo.ParseFilter(*filterName)
	if err != nil {
		return err
	}
	if !ui.IsTTY(os.Stdout) {
		return fmt.Errorf("tui requires a TTY; use the list/add/toggle commands instead")
	}

	if _, err := logging.Prune(cfg.LogDir, keepRunLogs-1); err != nil {
		fmt.Fprintf(stderr, "warning: pruning logs: %v\n", err)
	}
	runLog, err := logging.NewRunLogger(cfg.LogDir)
	if err != nil {
		return fmt.Errorf("creating run log: %w", err)
	}
	defer runLog.Close()

	logger := logging.FromConfig(runLog.Writer(), cfg.LogLevel, cfg.LogFormat, true, cfg.LogCaller)
	logger.Info("Starting editor", "run", runLog.RunID, "storage", cfg.Storage)

	store, backend, err := openStore(cfg, logger)
	if err != nil {
		return err
	}
	defer backend.Close()

	err = ui.Run(ctx, store, ui.WithFilter(filter), ui.WithLogger(logger))
	if err != nil {
		logger.Error("Editor stopped", "err", err)
		return err
	}
	logger.Info("Editor closed", "tasks", store.Tasks().Len())
	return nil
}
