package cmd

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/nibzard/todotxt-go/internal/todotxt"
)

// addCommand adds a task, stamping today's date when date_on_add is set.
func (a *app) addCommand(args []string) error {
	text, err := joinText(args)
	if err != nil {
		return err
	}
	return a.addWith(func(l *todotxt.List) (*todotxt.Task, error) {
		return l.AddLine(text)
	})
}

// addDoneCommand adds a task and marks it done.
func (a *app) addDoneCommand(args []string) error {
	text, err := joinText(args)
	if err != nil {
		return err
	}
	return a.addWith(func(l *todotxt.List) (*todotxt.Task, error) {
		return l.AddDone(text)
	})
}

// addPriorityCommand adds a task with the given priority letter.
func (a *app) addPriorityCommand(args []string) error {
	if len(args) < 2 {
		return errors.New("usage: addpri LETTER TEXT")
	}
	letter := strings.ToUpper(args[0])
	text, err := joinText(args[1:])
	if err != nil {
		return err
	}
	return a.addWith(func(l *todotxt.List) (*todotxt.Task, error) {
		return l.AddPriority(text, letter)
	})
}

func (a *app) addWith(add func(*todotxt.List) (*todotxt.Task, error)) error {
	l, err := a.load()
	if err != nil {
		return err
	}
	task, err := add(l)
	if err != nil {
		return fmt.Errorf("adding task: %w", err)
	}
	if _, ok := task.CreationDate(); a.cfg.DateOnAdd && !ok {
		task.SetCreationDate(time.Now())
	}
	if err := a.save(l); err != nil {
		return err
	}

	a.log.Debug("added task", "id", task.ID().Short(), "line", l.Len())
	a.printTask(l, task)
	fmt.Fprintf(a.out, "TODO: %d added.\n", l.Len())
	return nil
}
