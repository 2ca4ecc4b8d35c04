package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/nibzard/tpdp/internal/config"
	"github.com/nibzard/tpdp/internal/logging"
)

// logsCommand prints the latest editor run log.
func logsCommand(ctx context.Context, cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("tpdp logs", flag.ContinueOnError)
	fs.SetOutput(stderr)
	follow := fs.Bool("f", false, "Follow the log (like tail -f)")
	fs.BoolVar(follow, "follow", false, "Follow the log (like tail -f)")
	n := fs.Int("n", 0, "Number of lines to show (0 = all)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	logPath, err := logging.FindLatestLog(cfg.LogDir)
	if err != nil {
		return fmt.Errorf("finding latest log: %w", err)
	}
	if logPath == "" {
		fmt.Fprintln(stdout, "No log files found.")
		return nil
	}

	fmt.Fprintf(stderr, "Tailing: %s\n", logPath)
	if *follow {
		fmt.Fprintln(stderr, "(Ctrl+C to stop)")
	}
	return logging.TailLog(ctx, stdout, logPath, *n, *follow)
}
