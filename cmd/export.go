package cmd

import (
	"flag"
	"fmt"
	"os"

	"github.com/nibzard/tpdp/internal/config"
	"github.com/nibzard/tpdp/internal/export"
	"github.com/nibzard/tpdp/internal/todo"
	"github.com/nibzard/tpdp/internal/utils"
)

// exportCommand writes the filtered tasks as JSON, CSV or PDF to stdout or
// to the file given with -o.
func exportCommand(cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("tpdp export", flag.ContinueOnError)
	fs.SetOutput(stderr)
	formatName := fs.String("format", string(export.FormatJSON), "Export format (json, csv, pdf)")
	filterName := fs.String("filter", string(todo.FilterAll), "Filter (all, active, completed)")
	output := fs.String("o", "", "Output file (default stdout)")
	fs.StringVar(output, "output", "", "Output file (default stdout)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() > 0 {
		return fmt.Errorf("unexpected arguments: %v", fs.Args())
	}

	format, err := export.ParseFormat(*formatName)
	if err != nil {
		return err
	}
	filter, err := todo.ParseFilter(*filterName)
	if err != nil {
		return err
	}

	store, backend, err := openStore(cfg, commandLogger(cfg))
	if err != nil {
		return err
	}
	defer backend.Close()

	tasks := todo.Apply(store.Tasks(), filter)
	opts := export.Options{Title: "TODO TPDP"}

	if *output == "" || *output == "-" {
		return export.Write(stdout, tasks, format, opts)
	}

	path := config.ExpandPath(*output)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating output file: %w", err)
	}
	if err := export.Write(f, tasks, format, opts); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing output file: %w", err)
	}
	fmt.Fprintf(stdout, "Exported %s to %s\n", utils.Plural(len(tasks), "task", "tasks"), path)
	return nil
}
