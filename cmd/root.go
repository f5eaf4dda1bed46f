// Package cmd implements the CLI command structure for todotxt.
package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/nibzard/todotxt-go/internal/config"
	"github.com/nibzard/todotxt-go/internal/logging"
	"github.com/nibzard/todotxt-go/internal/todofile"
	"github.com/nibzard/todotxt-go/internal/todotxt"
)

// Version is set via ldflags at build time.
var Version = "dev"

// Run executes the todotxt CLI.
func Run(ctx context.Context, args []string) error {
	return Execute(ctx, args, os.Stdout, os.Stderr)
}

// Execute runs the CLI, writing command output to out and logs and usage
// to errOut.
func Execute(ctx context.Context, args []string, out, errOut io.Writer) error {
	// Create a flag set for global options
	fs := flag.NewFlagSet("todotxt", flag.ContinueOnError)
	fs.SetOutput(errOut)
	fs.Usage = func() {
		printUsage(fs, errOut)
	}
	help := fs.Bool("help", false, "Show help")
	fs.BoolVar(help, "h", false, "Show help")
	showVersion := fs.Bool("version", false, "Show version")
	fs.BoolVar(showVersion, "v", false, "Show version")

	// Global flags
	cws, err := config.LoadWithSources(fs, args)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	a := &app{
		ctx:     ctx,
		cfg:     cws.Config,
		sources: cws,
		out:     out,
		errOut:  errOut,
		log:     logging.FromConfig(errOut, cws.Config),
	}

	if *help {
		printUsage(fs, out)
		return nil
	}
	if *showVersion {
		return a.versionCommand()
	}

	// Determine the subcommand; listing is the default
	subcommand := "ls"
	remainingArgs := fs.Args()
	if len(remainingArgs) > 0 {
		subcommand = remainingArgs[0]
		remainingArgs = remainingArgs[1:]
	}

	switch subcommand {
	case "add", "a":
		return a.addCommand(remainingArgs)
	case "adddone":
		return a.addDoneCommand(remainingArgs)
	case "addpri":
		return a.addPriorityCommand(remainingArgs)
	case "ls", "list":
		return a.lsCommand(remainingArgs)
	case "do":
		return a.doCommand(remainingArgs)
	case "undo":
		return a.undoCommand(remainingArgs)
	case "doall":
		return a.doAllCommand(remainingArgs)
	case "undoall":
		return a.undoAllCommand(remainingArgs)
	case "rm", "del":
		return a.rmCommand(remainingArgs)
	case "archive":
		return a.archiveCommand(remainingArgs)
	case "pri", "p":
		return a.priCommand(remainingArgs)
	case "depri", "dp":
		return a.depriCommand(remainingArgs)
	case "up":
		return a.shiftCommand(remainingArgs, true)
	case "down":
		return a.shiftCommand(remainingArgs, false)
	case "edit", "replace":
		return a.editCommand(remainingArgs)
	case "append", "app":
		return a.appendCommand(remainingArgs)
	case "prepend", "prep":
		return a.prependCommand(remainingArgs)
	case "age":
		return a.ageCommand(remainingArgs)
	case "projects", "lsprj":
		return a.projectsCommand(remainingArgs)
	case "contexts", "lsc":
		return a.contextsCommand(remainingArgs)
	case "meta":
		return a.metaCommand(remainingArgs)
	case "export":
		return a.exportCommand(remainingArgs)
	case "check":
		return a.checkCommand(remainingArgs)
	case "tui":
		return a.tuiCommand(remainingArgs)
	case "init":
		return a.initCommand(remainingArgs)
	case "config":
		return a.configCommand(remainingArgs)
	case "version":
		return a.versionCommand()
	case "help":
		printUsage(fs, out)
		return nil
	default:
		fmt.Fprintf(errOut, "Unknown command: %s\n", subcommand)
		printUsage(fs, errOut)
		return fmt.Errorf("unknown command: %s", subcommand)
	}
}

// app carries what every command needs.
type app struct {
	ctx     context.Context
	cfg     *config.Config
	sources *config.ConfigWithSources
	out     io.Writer
	errOut  io.Writer
	log     *log.Logger
}

// load reads the todo file. A missing file is an empty list.
func (a *app) load() (*todotxt.List, error) {
	l, err := todofile.LoadOrEmpty(a.cfg.TodoFile, a.cfg.LineSeparator)
	if err != nil {
		return nil, fmt.Errorf("loading todo file: %w", err)
	}
	return l, nil
}

// save writes the todo file.
func (a *app) save(l *todotxt.List) error {
	if err := todofile.Save(a.cfg.TodoFile, l, a.cfg.LineSeparator); err != nil {
		return fmt.Errorf("saving todo file: %w", err)
	}
	a.log.Debug("saved list", "file", a.cfg.TodoFile, "count", l.Len())
	return nil
}

// printTask prints a task with its line number, padded to the width of the
// largest line number in l.
func (a *app) printTask(l *todotxt.List, task *todotxt.Task) {
	fmt.Fprintf(a.out, "%0*d %s\n", lineWidth(l), lineOf(l, task), task)
}

func lineWidth(l *todotxt.List) int {
	return len(strconv.Itoa(max(l.Len(), 1)))
}

// lineOf returns the 1-based position of task in l, or 0.
func lineOf(l *todotxt.List, task *todotxt.Task) int {
	for i, t := range l.Tasks() {
		if t == task {
			return i + 1
		}
	}
	return 0
}

// errNoTask reports an address that matched nothing.
func errNoTask(arg string) error {
	return fmt.Errorf("%w: %s", todotxt.ErrTaskNotFound, arg)
}

// resolveTask finds the task addressed by arg: a 1-based line number, a full
// ID, or an ID prefix of at least 8 hex digits that matches one task.
func resolveTask(l *todotxt.List, arg string) (*todotxt.Task, error) {
	arg = strings.TrimSpace(arg)
	if n, err := strconv.Atoi(arg); err == nil {
		if task := l.At(n - 1); task != nil && n > 0 {
			return task, nil
		}
		return nil, errNoTask(arg)
	}

	if task := l.GetTask(todotxt.ID(arg)); task != nil {
		return task, nil
	}

	if len(arg) < 8 || !isHex(arg) {
		return nil, errNoTask(arg)
	}
	var match *todotxt.Task
	for _, task := range l.Tasks() {
		if !strings.HasPrefix(task.ID().String(), arg) {
			continue
		}
		if match != nil && match.ID() != task.ID() {
			return nil, fmt.Errorf("ambiguous task id: %s", arg)
		}
		if match == nil {
			match = task
		}
	}
	if match == nil {
		return nil, errNoTask(arg)
	}
	return match, nil
}

// resolveTasks resolves every argument before anything is changed.
func resolveTasks(l *todotxt.List, args []string) ([]*todotxt.Task, error) {
	if len(args) == 0 {
		return nil, errors.New("missing task number")
	}
	tasks := make([]*todotxt.Task, 0, len(args))
	for _, arg := range args {
		task, err := resolveTask(l, arg)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, task)
	}
	return tasks, nil
}

func isHex(s string) bool {
	for _, r := range s {
		if !strings.ContainsRune("0123456789abcdef", r) {
			return false
		}
	}
	return true
}

// joinText joins command arguments into one line of task text.
func joinText(args []string) (string, error) {
	text := strings.TrimSpace(strings.Join(args, " "))
	if text == "" {
		return "", errors.New("missing task text")
	}
	return text, nil
}

// versionCommand prints version information.
func (a *app) versionCommand() error {
	fmt.Fprintf(a.out, "todotxt version %s\n", Version)
	return nil
}

// printUsage prints the usage message.
func printUsage(fs *flag.FlagSet, w io.Writer) {
	fmt.Fprintln(w, "todotxt - manage a todo.txt task list")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  todotxt [options] [command] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Tasks are addressed by line number, full ID, or an ID prefix of 8+ characters.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  add TEXT               Add a task")
	fmt.Fprintln(w, "  adddone TEXT           Add a task that is already done")
	fmt.Fprintln(w, "  addpri LETTER TEXT     Add a task with a priority")
	fmt.Fprintln(w, "  ls [TERM...]           List tasks (default command)")
	fmt.Fprintln(w, "  do N... / undo N...    Mark tasks done or open")
	fmt.Fprintln(w, "  doall / undoall        Mark every task done or open")
	fmt.Fprintln(w, "  rm N                   Delete a task")
	fmt.Fprintln(w, "  archive                Move done tasks to the done file")
	fmt.Fprintln(w, "  pri N LETTER           Set priority")
	fmt.Fprintln(w, "  depri N...             Remove priority")
	fmt.Fprintln(w, "  up N [STEP]            Raise priority toward A")
	fmt.Fprintln(w, "  down N [STEP]          Lower priority toward Z")
	fmt.Fprintln(w, "  edit N TEXT            Replace a task")
	fmt.Fprintln(w, "  append N TEXT          Add text to the end of a task")
	fmt.Fprintln(w, "  prepend N TEXT         Add text to the start of a task")
	fmt.Fprintln(w, "  age N                  Show days from creation to completion or today")
	fmt.Fprintln(w, "  projects               List projects")
	fmt.Fprintln(w, "  contexts               List contexts")
	fmt.Fprintln(w, "  meta                   List metadata entries")
	fmt.Fprintln(w, "  export [-o FILE]       Write a JSON snapshot")
	fmt.Fprintln(w, "  check [FILE]           Validate the list or a JSON snapshot")
	fmt.Fprintln(w, "  tui                    Launch terminal UI")
	fmt.Fprintln(w, "  init [-force]          Write an example config and an empty todo file")
	fmt.Fprintln(w, "  config                 Show the effective configuration")
	fmt.Fprintln(w, "  version                Show version information")
	fmt.Fprintln(w, "  help                   Show this help message")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Global Options:")
	fs.SetOutput(w)
	fs.PrintDefaults()
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Ls Options (use with 'ls' command):")
	fmt.Fprintln(w, "  -all          Include done tasks")
	fmt.Fprintln(w, "  -done         Show only done tasks")
	fmt.Fprintln(w, "  -sort string  Sort by todo, priority, project, context, due, or meta:KEY")
	fmt.Fprintln(w, "  -ids          Show task IDs")
	fmt.Fprintln(w, "  TERM          +project, @context, or text to match")
}
