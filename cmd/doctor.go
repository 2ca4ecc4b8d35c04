package cmd

import (
	"flag"
	"fmt"
	"os"

	"github.com/nibzard/tpdp/internal/config"
	"github.com/nibzard/tpdp/internal/logging"
	"github.com/nibzard/tpdp/internal/todo"
	"github.com/nibzard/tpdp/internal/utils"
)

// doctorCommand reports the effective configuration, checks the storage
// backend and validates the stored task list.
func doctorCommand(cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("tpdp doctor", flag.ContinueOnError)
	fs.SetOutput(stderr)
	verbose := fs.Bool("v", false, "Verbose output")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() > 0 {
		return fmt.Errorf("unexpected arguments: %v", fs.Args())
	}

	w := stdout
	fmt.Fprintln(w, "tpdp doctor")
	fmt.Fprintln(w, "===========")
	fmt.Fprintln(w)

	allOK := true

	fmt.Fprintln(w, "Config:")
	if len(cfg.Files) == 0 {
		fmt.Fprintln(w, "  ✅ Defaults (no config file found)")
	}
	for _, f := range cfg.Files {
		fmt.Fprintf(w, "  ✅ %s\n", f)
	}
	fmt.Fprintf(w, "  Storage: %s, key %q\n", cfg.Storage, cfg.StorageKey)
	fmt.Fprintf(w, "  Default filter: %s, id scheme: %s\n", cfg.DefaultFilter, cfg.IDScheme)
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Storage:")
	backend, err := openBackend(cfg)
	if err != nil {
		fmt.Fprintf(w, "  ❌ %v\n", err)
		fmt.Fprintln(w)
		fmt.Fprintln(w, "⚠️  Some checks failed.")
		return fmt.Errorf("doctor checks failed")
	}
	defer backend.Close()
	fmt.Fprintf(w, "  ✅ %s\n", backend.Describe())

	raw, ok, err := backend.Get(cfg.StorageKey)
	switch {
	case err != nil:
		fmt.Fprintf(w, "  ❌ Read error: %v\n", err)
		allOK = false
	case !ok:
		fmt.Fprintln(w, "  ⚠️  No tasks stored yet")
	default:
		tasks, skipped, err := todo.DecodeRecords([]byte(raw))
		if err != nil {
			fmt.Fprintf(w, "  ❌ Stored tasks are unreadable and will be ignored: %v\n", err)
			allOK = false
			break
		}
		if len(skipped) > 0 {
			fmt.Fprintf(w, "  ❌ %s invalid and will be dropped on the next save:\n", utils.Plural(len(skipped), "record is", "records are"))
			for _, e := range skipped {
				fmt.Fprintf(w, "     - %v\n", e)
			}
			allOK = false
		}
		counts := todo.Count(tasks)
		fmt.Fprintf(w, "  ✅ %s (%d active, %d completed)\n", utils.Plural(counts.Total, "task", "tasks"), counts.Active, counts.Completed)
		if *verbose {
			for _, t := range tasks {
				fmt.Fprintf(w, "    %s\n", formatTask(t))
			}
		}
	}
	fmt.Fprintln(w)

	fmt.Fprintf(w, "Log directory: %s\n", cfg.LogDir)
	if info, err := os.Stat(cfg.LogDir); err != nil {
		if os.IsNotExist(err) {
			fmt.Fprintln(w, "  ⚠️  Not found (created when the editor runs)")
		} else {
			fmt.Fprintf(w, "  ❌ Error: %v\n", err)
			allOK = false
		}
	} else if !info.IsDir() {
		fmt.Fprintln(w, "  ❌ Error: path is not a directory")
		allOK = false
	} else {
		logs, _ := logging.ListLogs(cfg.LogDir)
		fmt.Fprintf(w, "  ✅ OK (%d run logs)\n", len(logs))
	}
	fmt.Fprintln(w)

	if allOK {
		fmt.Fprintln(w, "✅ All checks passed!")
		return nil
	}
	fmt.Fprintln(w, "⚠️  Some checks failed.")
	return fmt.Errorf("doctor checks failed")
}
