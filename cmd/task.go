package cmd

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/nibzard/todotxt-go/internal/todofile"
	"github.com/nibzard/todotxt-go/internal/todotxt"
)

// doCommand marks tasks done, then archives when auto_archive is set.
func (a *app) doCommand(args []string) error {
	l, err := a.load()
	if err != nil {
		return err
	}
	tasks, err := resolveTasks(l, args)
	if err != nil {
		return err
	}

	for _, task := range tasks {
		if task.IsComplete() {
			fmt.Fprintf(a.out, "TODO: %d is already marked done.\n", lineOf(l, task))
			continue
		}
		line := lineOf(l, task)
		task.Complete()
		a.log.Debug("completed task", "id", task.ID().Short(), "line", line)
		fmt.Fprintf(a.out, "%0*d %s\n", lineWidth(l), line, task)
		fmt.Fprintf(a.out, "TODO: %d marked as done.\n", line)
	}

	if a.cfg.AutoArchive {
		return a.archive(l)
	}
	return a.save(l)
}

// undoCommand reopens done tasks.
func (a *app) undoCommand(args []string) error {
	l, err := a.load()
	if err != nil {
		return err
	}
	tasks, err := resolveTasks(l, args)
	if err != nil {
		return err
	}

	for _, task := range tasks {
		line := lineOf(l, task)
		if !task.IsComplete() {
			fmt.Fprintf(a.out, "TODO: %d is not marked done.\n", line)
			continue
		}
		task.Uncomplete()
		a.log.Debug("reopened task", "id", task.ID().Short(), "line", line)
		a.printTask(l, task)
		fmt.Fprintf(a.out, "TODO: %d reopened.\n", line)
	}
	return a.save(l)
}

// doAllCommand marks every open task done.
func (a *app) doAllCommand(args []string) error {
	if len(args) > 0 {
		return fmt.Errorf("unexpected arguments: %v", args)
	}
	l, err := a.load()
	if err != nil {
		return err
	}
	count := len(l.Todo())
	l.DoAll()
	a.log.Debug("completed all tasks", "count", count)
	fmt.Fprintf(a.out, "TODO: %d marked as done.\n", count)

	if a.cfg.AutoArchive {
		return a.archive(l)
	}
	return a.save(l)
}

// undoAllCommand reopens every done task.
func (a *app) undoAllCommand(args []string) error {
	if len(args) > 0 {
		return fmt.Errorf("unexpected arguments: %v", args)
	}
	l, err := a.load()
	if err != nil {
		return err
	}
	count := len(l.Done())
	l.UndoAll()
	a.log.Debug("reopened all tasks", "count", count)
	fmt.Fprintf(a.out, "TODO: %d reopened.\n", count)
	return a.save(l)
}

// rmCommand deletes one task.
func (a *app) rmCommand(args []string) error {
	if len(args) != 1 {
		return errors.New("usage: rm N")
	}
	l, err := a.load()
	if err != nil {
		return err
	}
	task, err := resolveTask(l, args[0])
	if err != nil {
		return err
	}

	line := lineOf(l, task)
	a.printTask(l, task)
	if err := l.DeleteTask(task.ID()); err != nil {
		return err
	}
	a.log.Debug("deleted task", "id", task.ID().Short(), "line", line)
	fmt.Fprintf(a.out, "TODO: %d deleted.\n", line)
	return a.save(l)
}

// archiveCommand moves done tasks to the done file.
func (a *app) archiveCommand(args []string) error {
	if len(args) > 0 {
		return fmt.Errorf("unexpected arguments: %v", args)
	}
	l, err := a.load()
	if err != nil {
		return err
	}
	return a.archive(l)
}

// archive appends the done tasks to the done file before saving the list,
// so a failed append leaves the todo file untouched.
func (a *app) archive(l *todotxt.List) error {
	archived := l.Archive()
	if err := todofile.AppendDone(a.cfg.DoneFile, archived, a.cfg.LineSeparator); err != nil {
		return fmt.Errorf("archiving: %w", err)
	}
	if err := a.save(l); err != nil {
		return err
	}
	a.log.Info("archived tasks", "count", len(archived), "file", a.cfg.DoneFile)
	fmt.Fprintf(a.out, "TODO: %d archived.\n", len(archived))
	return nil
}

// priCommand sets the priority of a task.
func (a *app) priCommand(args []string) error {
	if len(args) != 2 {
		return errors.New("usage: pri N LETTER")
	}
	letter := strings.ToUpper(args[1])
	return a.updateTask(args[0], "prioritized", func(t *todotxt.Task) error {
		return t.SetPriority(letter)
	})
}

// depriCommand removes the priority of each task.
func (a *app) depriCommand(args []string) error {
	l, err := a.load()
	if err != nil {
		return err
	}
	tasks, err := resolveTasks(l, args)
	if err != nil {
		return err
	}
	for _, task := range tasks {
		task.UnsetPriority()
		a.log.Debug("deprioritized task", "id", task.ID().Short(), "line", lineOf(l, task))
		a.printTask(l, task)
		fmt.Fprintf(a.out, "TODO: %d deprioritized.\n", lineOf(l, task))
	}
	return a.save(l)
}

// shiftCommand raises or lowers a priority by STEP letters (default 1).
func (a *app) shiftCommand(args []string, raise bool) error {
	if len(args) < 1 || len(args) > 2 {
		if raise {
			return errors.New("usage: up N [STEP]")
		}
		return errors.New("usage: down N [STEP]")
	}
	step := 1
	if len(args) == 2 {
		n, err := strconv.Atoi(args[1])
		if err != nil || n < 1 {
			return fmt.Errorf("invalid step %q: must be a positive number", args[1])
		}
		step = n
	}

	return a.updateTask(args[0], "reprioritized", func(t *todotxt.Task) error {
		if !t.HasPriority() {
			return errors.New("task has no priority")
		}
		if raise {
			t.IncreasePriority(step)
		} else {
			t.DecreasePriority(step)
		}
		return nil
	})
}

// editCommand replaces a task with new text.
func (a *app) editCommand(args []string) error {
	if len(args) < 2 {
		return errors.New("usage: edit N TEXT")
	}
	text, err := joinText(args[1:])
	if err != nil {
		return err
	}
	return a.updateTask(args[0], "replaced", func(t *todotxt.Task) error {
		return t.Edit(text)
	})
}

// appendCommand adds text to the end of a task.
func (a *app) appendCommand(args []string) error {
	if len(args) < 2 {
		return errors.New("usage: append N TEXT")
	}
	text, err := joinText(args[1:])
	if err != nil {
		return err
	}
	return a.updateTask(args[0], "appended", func(t *todotxt.Task) error {
		t.Append(" " + text)
		return nil
	})
}

// prependCommand adds text to the start of a task.
func (a *app) prependCommand(args []string) error {
	if len(args) < 2 {
		return errors.New("usage: prepend N TEXT")
	}
	text, err := joinText(args[1:])
	if err != nil {
		return err
	}
	return a.updateTask(args[0], "prepended", func(t *todotxt.Task) error {
		t.Prepend(text + " ")
		return nil
	})
}

// ageCommand prints how many days a task has been around.
func (a *app) ageCommand(args []string) error {
	if len(args) != 1 {
		return errors.New("usage: age N")
	}
	l, err := a.load()
	if err != nil {
		return err
	}
	task, err := resolveTask(l, args[0])
	if err != nil {
		return err
	}

	age, err := task.Age(time.Now())
	if err != nil {
		return fmt.Errorf("task %d: %w", lineOf(l, task), err)
	}
	days := int(age.Hours() / 24)
	a.printTask(l, task)
	fmt.Fprintf(a.out, "TODO: %d is %d day(s) old.\n", lineOf(l, task), days)
	return nil
}

// updateTask resolves one task, applies fn, prints the result, and saves.
func (a *app) updateTask(arg, verb string, fn func(*todotxt.Task) error) error {
	l, err := a.load()
	if err != nil {
		return err
	}
	task, err := resolveTask(l, arg)
	if err != nil {
		return err
	}

	line := lineOf(l, task)
	if err := fn(task); err != nil {
		return fmt.Errorf("task %d: %w", line, err)
	}
	a.log.Debug(verb+" task", "id", task.ID().Short(), "line", line)
	a.printTask(l, task)
	fmt.Fprintf(a.out, "TODO: %d %s.\n", line, verb)
	return a.save(l)
}
