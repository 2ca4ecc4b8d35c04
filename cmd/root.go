// Package cmd implements the tpdp command line.
package cmd

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/nibzard/tpdp/internal/config"
	"github.com/nibzard/tpdp/internal/logging"
	"github.com/nibzard/tpdp/internal/storage"
	"github.com/nibzard/tpdp/internal/todo"
)

// Version is set via ldflags at build time.
var Version = "dev"

// Output streams, replaced in tests.
var (
	stdout io.Writer = os.Stdout
	stderr io.Writer = os.Stderr
)

// Run executes the tpdp CLI.
func Run(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("tpdp", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		printUsage(fs, stderr)
	}
	help := fs.Bool("help", false, "Show help")
	fs.BoolVar(help, "h", false, "Show help")
	showVersion := fs.Bool("version", false, "Show version")
	fs.BoolVar(showVersion, "v", false, "Show version")

	cfg, err := config.Load(fs, args)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if *help {
		printUsage(fs, stdout)
		return nil
	}
	if *showVersion {
		return versionCommand()
	}

	// No subcommand opens the editor.
	subcommand := "tui"
	remainingArgs := fs.Args()
	if len(remainingArgs) > 0 {
		subcommand = remainingArgs[0]
		remainingArgs = remainingArgs[1:]
	}

	switch subcommand {
	case "tui":
		return tuiCommand(ctx, cfg, remainingArgs)
	case "add":
		return addCommand(cfg, remainingArgs)
	case "list", "ls":
		return listCommand(cfg, remainingArgs)
	case "toggle":
		return toggleCommand(cfg, remainingArgs)
	case "rm", "remove":
		return removeCommand(cfg, remainingArgs)
	case "edit":
		return editCommand(cfg, remainingArgs)
	case "clear":
		return clearCommand(cfg, remainingArgs)
	case "export":
		return exportCommand(cfg, remainingArgs)
	case "doctor":
		return doctorCommand(cfg, remainingArgs)
	case "logs", "tail":
		return logsCommand(ctx, cfg, remainingArgs)
	case "config":
		fmt.Fprint(stdout, config.ExampleConfig())
		return nil
	case "version":
		return versionCommand()
	case "help":
		printUsage(fs, stdout)
		return nil
	default:
		fmt.Fprintf(stderr, "Unknown command: %s\n", subcommand)
		printUsage(fs, stderr)
		return fmt.Errorf("unknown command: %s", subcommand)
	}
}

func versionCommand() error {
	fmt.Fprintf(stdout, "tpdp %s\n", Version)
	return nil
}

func printUsage(fs *flag.FlagSet, w io.Writer) {
	fmt.Fprintln(w, "tpdp - a small task list editor")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  tpdp [global flags] [command] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  tui                  Open the interactive editor (default)")
	fmt.Fprintln(w, "  add <text...>        Add a task")
	fmt.Fprintln(w, "  list                 List tasks (--filter all|active|completed, --json)")
	fmt.Fprintln(w, "  toggle <id>          Toggle a task between active and completed")
	fmt.Fprintln(w, "  rm <id>              Remove a task")
	fmt.Fprintln(w, "  edit <id> <text...>  Replace the text of a task")
	fmt.Fprintln(w, "  clear                Remove all completed tasks")
	fmt.Fprintln(w, "  export               Export tasks (--format json|csv|pdf, -o file)")
	fmt.Fprintln(w, "  doctor               Check configuration and stored data")
	fmt.Fprintln(w, "  logs                 Show the latest editor log (-n lines, -f follow)")
	fmt.Fprintln(w, "  config               Print an example configuration file")
	fmt.Fprintln(w, "  version              Show version")
	fmt.Fprintln(w, "  help                 Show this help")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Task ids may be abbreviated to any unique prefix.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Global flags:")
	fs.SetOutput(w)
	fs.PrintDefaults()
}

// commandLogger returns the logger used by one-shot commands.
func commandLogger(cfg *config.Config) *log.Logger {
	return logging.FromConfig(stderr, cfg.LogLevel, cfg.LogFormat, cfg.LogTimestamps, cfg.LogCaller)
}

func openBackend(cfg *config.Config) (storage.Backend, error) {
	backend, err := storage.Open(storage.Options{
		Kind:    cfg.Storage,
		Path:    cfg.DataFile,
		DSN:     cfg.MySQL.DSN,
		Table:   cfg.MySQL.Table,
		Timeout: cfg.MySQL.Timeout(),
	})
	if err != nil {
		return nil, fmt.Errorf("opening storage: %w", err)
	}
	return backend, nil
}

// openStore opens the configured backend and loads the task store over it.
// The caller closes the returned backend.
func openStore(cfg *config.Config, logger *log.Logger) (*todo.Store, storage.Backend, error) {
	backend, err := openBackend(cfg)
	if err != nil {
		return nil, nil, err
	}
	ids, err := todo.NewIDGenerator(cfg.IDScheme)
	if err != nil {
		_ = backend.Close()
		return nil, nil, err
	}
	store := todo.NewStore(backend,
		todo.WithKey(cfg.StorageKey),
		todo.WithIDGenerator(ids),
		todo.WithLogger(logger),
	)
	logger.Debug("Opened store", "backend", backend.Describe(), "key", cfg.StorageKey, "tasks", store.Tasks().Len())
	return store, backend, nil
}

// persistError reports a failed write after a mutating command.
func persistError(store *todo.Store) error {
	if err := store.LastPersistError(); err != nil {
		return fmt.Errorf("saving tasks: %w", err)
	}
	return nil
}

func joinArgs(args []string) string {
	return strings.Join(args, " ")
}
