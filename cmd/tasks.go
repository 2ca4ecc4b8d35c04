package cmd

import (
	"flag"
	"fmt"
	"io"

	"github.com/nibzard/tpdp/internal/config"
	"github.com/nibzard/tpdp/internal/export"
	"github.com/nibzard/tpdp/internal/todo"
	"github.com/nibzard/tpdp/internal/utils"
)

// addCommand adds a task from the remaining arguments. Blank text is
// ignored.
func addCommand(cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("tpdp add", flag.ContinueOnError)
	fs.SetOutput(stderr)
	if err := fs.Parse(args); err != nil {
		return err
	}

	store, backend, err := openStore(cfg, commandLogger(cfg))
	if err != nil {
		return err
	}
	defer backend.Close()

	before := store.Tasks()
	after := store.Add(joinArgs(fs.Args()))
	if todo.Same(before, after) {
		return nil
	}
	fmt.Fprintf(stdout, "Added %s\n", formatTask(after[0]))
	return persistError(store)
}

// listCommand prints the tasks passing the filter, newest first.
func listCommand(cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("tpdp list", flag.ContinueOnError)
	fs.SetOutput(stderr)
	filterName := fs.String("filter", cfg.DefaultFilter, "Filter (all, active, completed)")
	asJSON := fs.Bool("json", false, "Print the tasks as JSON")
	if err := fs.Parse(args); err != nil {
		return err
	}

	// A positional filter is accepted as well: tpdp list done
	remaining := fs.Args()
	if len(remaining) > 1 {
		return fmt.Errorf("unexpected arguments: %v", remaining[1:])
	}
	if len(remaining) == 1 {
		*filterName = remaining[0]
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

	tasks := store.Tasks()
	visible := todo.Apply(tasks, filter)
	if *asJSON {
		return export.Write(stdout, visible, export.FormatJSON, export.Options{})
	}
	writeTaskList(stdout, tasks, visible, filter)
	return nil
}

func writeTaskList(w io.Writer, all, visible todo.Collection, filter todo.Filter) {
	if len(visible) == 0 {
		switch {
		case len(all) == 0:
			fmt.Fprintln(w, "No tasks yet.")
		case filter == todo.FilterActive:
			fmt.Fprintln(w, "No active tasks.")
		default:
			fmt.Fprintln(w, "No completed tasks.")
		}
	}
	for _, t := range visible {
		fmt.Fprintln(w, formatTask(t))
	}

	counts := todo.Count(all)
	fmt.Fprintf(w, "\n%s", utils.Plural(counts.Active, "item left", "items left"))
	if counts.Completed > 0 {
		fmt.Fprintf(w, ", %d completed", counts.Completed)
	}
	fmt.Fprintln(w)
}

func formatTask(t todo.Task) string {
	box := "[ ]"
	if t.Completed {
		box = "[x]"
	}
	return fmt.Sprintf("%s %-8s  %s", box, utils.ShortID(t.ID), t.Text)
}

// idCommand parses a command taking a single task reference and resolves
// it against the store.
func idCommand(cfg *config.Config, name string, args []string, run func(*todo.Store, todo.Task) error) error {
	fs := flag.NewFlagSet("tpdp "+name, flag.ContinueOnError)
	fs.SetOutput(stderr)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("usage: tpdp %s <id>", name)
	}

	store, backend, err := openStore(cfg, commandLogger(cfg))
	if err != nil {
		return err
	}
	defer backend.Close()

	task, err := store.Resolve(fs.Arg(0))
	if err != nil {
		return err
	}
	if err := run(store, task); err != nil {
		return err
	}
	return persistError(store)
}

func toggleCommand(cfg *config.Config, args []string) error {
	return idCommand(cfg, "toggle", args, func(store *todo.Store, task todo.Task) error {
		store.Toggle(task.ID)
		updated, _ := store.Get(task.ID)
		verb := "Reopened"
		if updated.Completed {
			verb = "Completed"
		}
		fmt.Fprintf(stdout, "%s %s\n", verb, formatTask(updated))
		return nil
	})
}

func removeCommand(cfg *config.Config, args []string) error {
	return idCommand(cfg, "rm", args, func(store *todo.Store, task todo.Task) error {
		store.Remove(task.ID)
		fmt.Fprintf(stdout, "Removed %s\n", formatTask(task))
		return nil
	})
}

// editCommand replaces a task's text. Blank replacement text leaves the task
// unchanged.
func editCommand(cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("tpdp edit", flag.ContinueOnError)
	fs.SetOutput(stderr)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 2 {
		return fmt.Errorf("usage: tpdp edit <id> <text...>")
	}

	store, backend, err := openStore(cfg, commandLogger(cfg))
	if err != nil {
		return err
	}
	defer backend.Close()

	task, err := store.Resolve(fs.Arg(0))
	if err != nil {
		return err
	}
	store.Edit(task.ID, joinArgs(fs.Args()[1:]))
	updated, _ := store.Get(task.ID)
	if updated.Text == task.Text {
		fmt.Fprintf(stdout, "Unchanged %s\n", formatTask(updated))
		return nil
	}
	fmt.Fprintf(stdout, "Edited %s\n", formatTask(updated))
	return persistError(store)
}

func clearCommand(cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("tpdp clear", flag.ContinueOnError)
	fs.SetOutput(stderr)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() > 0 {
		return fmt.Errorf("unexpected arguments: %v", fs.Args())
	}

	store, backend, err := openStore(cfg, commandLogger(cfg))
	if err != nil {
		return err
	}
	defer backend.Close()

	removed := todo.Count(store.Tasks()).Completed
	store.ClearCompleted()
	fmt.Fprintf(stdout, "Cleared %s\n", utils.Plural(removed, "completed task", "completed tasks"))
	return persistError(store)
}
