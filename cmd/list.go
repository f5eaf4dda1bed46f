package cmd

import (
	"flag"
	"fmt"
	"strings"

	"github.com/nibzard/todotxt-go/internal/todotxt"
)

// lsCommand lists tasks matching every TERM. Open tasks are shown unless
// -all or -done is given.
func (a *app) lsCommand(args []string) error {
	fs := flag.NewFlagSet("todotxt ls", flag.ContinueOnError)
	fs.SetOutput(a.errOut)
	all := fs.Bool("all", false, "Include done tasks")
	doneOnly := fs.Bool("done", false, "Show only done tasks")
	sortKey := fs.String("sort", "", "Sort by todo, priority, project, context, due, or meta:KEY")
	showIDs := fs.Bool("ids", false, "Show task IDs")

	if err := fs.Parse(args); err != nil {
		return err
	}
	if *all && *doneOnly {
		return fmt.Errorf("-all and -done cannot be combined")
	}

	l, err := a.load()
	if err != nil {
		return err
	}

	// Line numbers refer to the file, so record them before sorting.
	lines := make(map[*todotxt.Task]int, l.Len())
	for i, task := range l.Tasks() {
		lines[task] = i + 1
	}
	width := lineWidth(l)

	if err := sortList(l, *sortKey); err != nil {
		return err
	}

	keep := []func(*todotxt.Task) bool{}
	switch {
	case *doneOnly:
		keep = append(keep, (*todotxt.Task).IsComplete)
	case !*all:
		keep = append(keep, func(t *todotxt.Task) bool { return !t.IsComplete() })
	}
	for _, term := range fs.Args() {
		keep = append(keep, termFilter(term))
	}

	shown := l.Filter(func(t *todotxt.Task) bool {
		for _, k := range keep {
			if !k(t) {
				return false
			}
		}
		return true
	})

	for _, task := range shown {
		if *showIDs {
			fmt.Fprintf(a.out, "%0*d %s %s\n", width, lines[task], task.ID().Short(), task)
			continue
		}
		fmt.Fprintf(a.out, "%0*d %s\n", width, lines[task], task)
	}
	fmt.Fprintln(a.out, "--")
	fmt.Fprintf(a.out, "TODO: %d of %d tasks shown\n", len(shown), l.Len())
	return nil
}

// termFilter turns a search term into a predicate: +project, @context, or
// case-insensitive text.
func termFilter(term string) func(*todotxt.Task) bool {
	switch {
	case len(term) > 1 && term[0] == '+':
		return todotxt.HasProject(term[1:])
	case len(term) > 1 && term[0] == '@':
		return todotxt.HasContext(term[1:])
	case len(term) == 3 && term[0] == '(' && term[2] == ')':
		if p, err := todotxt.ParsePriority(strings.ToUpper(term[1:2])); err == nil {
			return todotxt.HasPriority(p)
		}
	}
	return todotxt.Contains(term)
}

// sortList applies a named ordering to l.
func sortList(l *todotxt.List, key string) error {
	switch key {
	case "":
	case "todo", "default":
		l.Sort()
	case "priority", "pri":
		l.SortByPriority()
	case "project":
		l.SortByProject()
	case "context":
		l.SortByContext()
	case "due":
		l.SortByMetaData("due")
	default:
		metaKey, ok := strings.CutPrefix(key, "meta:")
		if !ok || metaKey == "" {
			return fmt.Errorf("unknown sort key: %s", key)
		}
		l.SortByMetaData(metaKey)
	}
	return nil
}

// projectsCommand lists the projects used in the todo file.
func (a *app) projectsCommand(args []string) error {
	if len(args) > 0 {
		return fmt.Errorf("unexpected arguments: %v", args)
	}
	l, err := a.load()
	if err != nil {
		return err
	}
	for _, p := range l.Projects() {
		fmt.Fprintln(a.out, p)
	}
	return nil
}

// contextsCommand lists the contexts used in the todo file.
func (a *app) contextsCommand(args []string) error {
	if len(args) > 0 {
		return fmt.Errorf("unexpected arguments: %v", args)
	}
	l, err := a.load()
	if err != nil {
		return err
	}
	for _, c := range l.Contexts() {
		fmt.Fprintln(a.out, c)
	}
	return nil
}

// metaCommand lists the metadata entries used in the todo file, or the
// values of one key.
func (a *app) metaCommand(args []string) error {
	if len(args) > 1 {
		return fmt.Errorf("unexpected arguments: %v", args[1:])
	}
	l, err := a.load()
	if err != nil {
		return err
	}
	for _, m := range l.MetaData() {
		if len(args) == 1 && m.Key() != args[0] {
			continue
		}
		fmt.Fprintln(a.out, m)
	}
	return nil
}
