package cmd

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/nibzard/todotxt-go/internal/config"
	"github.com/nibzard/todotxt-go/internal/todofile"
	"github.com/nibzard/todotxt-go/internal/ui"
)

// exportCommand writes a JSON snapshot of the todo file to stdout or -o FILE.
func (a *app) exportCommand(args []string) error {
	fs := flag.NewFlagSet("todotxt export", flag.ContinueOnError)
	fs.SetOutput(a.errOut)
	output := fs.String("o", "", "Write the snapshot to FILE instead of stdout")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() > 0 {
		return fmt.Errorf("unexpected arguments: %v", fs.Args())
	}

	l, err := a.load()
	if err != nil {
		return err
	}
	snapshot := todofile.NewSnapshot(l, a.cfg.TodoFile)
	now := time.Now().UTC().Truncate(time.Second)
	snapshot.ExportedAt = &now

	if *output != "" {
		if err := snapshot.Save(*output); err != nil {
			return err
		}
		a.log.Info("exported snapshot", "file", *output, "count", len(snapshot.Tasks))
		return nil
	}

	data, err := snapshot.Marshal()
	if err != nil {
		return err
	}
	_, err = a.out.Write(data)
	return err
}

// checkCommand validates a JSON snapshot file, or the todo file itself when
// no file is given.
func (a *app) checkCommand(args []string) error {
	if len(args) > 1 {
		return fmt.Errorf("unexpected arguments: %v", args[1:])
	}
	opts := todofile.ValidationOptions{SchemaPath: a.cfg.SchemaFile}

	var (
		result *todofile.ValidationResult
		target string
	)
	if len(args) == 1 {
		target = args[0]
		r, err := todofile.ValidateFile(target, opts)
		if err != nil {
			return err
		}
		result = r
	} else {
		target = a.cfg.TodoFile
		l, err := todofile.Load(target, a.cfg.LineSeparator)
		if err != nil {
			return err
		}
		result = todofile.NewSnapshot(l, target).Validate(opts)
	}

	for _, w := range result.Warnings {
		a.log.Warn(w)
	}
	if !result.Valid {
		for _, err := range result.Errors {
			fmt.Fprintf(a.out, "  %v\n", err)
		}
		return fmt.Errorf("%s: validation failed with %d error(s)", target, len(result.Errors))
	}
	fmt.Fprintf(a.out, "%s: valid (schema %s)\n", target, result.SchemaSource)
	return nil
}

// tuiCommand launches the interactive viewer.
func (a *app) tuiCommand(args []string) error {
	if len(args) > 0 {
		return fmt.Errorf("unexpected arguments: %v", args)
	}
	store := ui.FileStore{File: a.cfg.TodoFile, Separator: a.cfg.LineSeparator}
	return ui.RunTUI(a.ctx, store)
}

// initCommand writes an example project config and an empty todo file,
// skipping files that already exist unless -force is given.
func (a *app) initCommand(args []string) error {
	fs := flag.NewFlagSet("todotxt init", flag.ContinueOnError)
	fs.SetOutput(a.errOut)
	force := fs.Bool("force", false, "Overwrite existing files")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() > 0 {
		return fmt.Errorf("unexpected arguments: %v", fs.Args())
	}

	configPath := filepath.Join(a.cfg.ProjectRoot, config.ProjectConfigNames[0])
	files := []struct {
		path    string
		content string
	}{
		{configPath, config.ExampleConfig()},
		{a.cfg.TodoFile, ""},
	}

	for _, f := range files {
		if _, err := os.Stat(f.path); err == nil && !*force {
			fmt.Fprintf(a.out, "Skipped %s (exists)\n", f.path)
			continue
		} else if err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("checking %s: %w", f.path, err)
		}
		if err := os.MkdirAll(filepath.Dir(f.path), 0755); err != nil {
			return fmt.Errorf("creating directory for %s: %w", f.path, err)
		}
		if err := os.WriteFile(f.path, []byte(f.content), 0644); err != nil {
			return fmt.Errorf("writing %s: %w", f.path, err)
		}
		fmt.Fprintf(a.out, "Created %s\n", f.path)
	}
	return nil
}

// configCommand prints every setting with the source it came from.
func (a *app) configCommand(args []string) error {
	if len(args) > 0 {
		return fmt.Errorf("unexpected arguments: %v", args)
	}
	for _, field := range config.Fields() {
		fmt.Fprintf(a.out, "%-15s = %-40q # %s\n", field, a.cfg.Value(field), a.sources.Source(field))
	}
	for _, path := range a.sources.Files {
		fmt.Fprintf(a.out, "# read %s\n", path)
	}
	return nil
}
