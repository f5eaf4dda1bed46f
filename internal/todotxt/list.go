package todotxt

import (
	"strings"
)

// DefaultLineSeparator separates tasks in multi-line input and output.
const DefaultLineSeparator = "\n"

// List owns a set of tasks and keeps derived indexes in step with them:
// every task is in exactly one of the open and done partitions, and the
// project, context, and metadata indexes hold exactly the tokens used by the
// current tasks.
type List struct {
	tasks Collection[*Task]
	todo  Collection[*Task]
	done  Collection[*Task]

	projects Collection[Project]
	contexts Collection[Context]
	metadata Collection[MetaData]
}

// NewList returns an empty list.
func NewList() *List {
	return &List{}
}

// Parse builds a list from sep-separated lines. Blank lines are skipped.
// Every line is parsed before any is added, so on error no list is returned.
func Parse(input, sep string) (*List, error) {
	l := NewList()
	if _, err := l.AddLines(SplitLines(input, sep)); err != nil {
		return nil, err
	}
	return l, nil
}

// SplitLines splits input on sep, trimming each line and dropping blank ones.
// An empty sep means DefaultLineSeparator.
func SplitLines(input, sep string) []string {
	if sep == "" {
		sep = DefaultLineSeparator
	}
	var lines []string
	for _, line := range strings.Split(input, sep) {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

// Add inserts task into the list. A task belongs to at most one list; a task
// owned by another list is removed from it first.
func (l *List) Add(task *Task) {
	if l.tasks.Has(task) {
		return
	}
	if prev := task.owner; prev != nil && prev != l {
		prev.remove(task)
		prev.reindex()
	}
	l.tasks.Add(task)
	if task.complete {
		l.done.Add(task)
	} else {
		l.todo.Add(task)
	}
	l.merge(task)
	task.owner = l
	task.onChange = l.taskChanged
}

// AddLine parses line and adds the resulting task.
func (l *List) AddLine(line string) (*Task, error) {
	task, err := NewTask(line)
	if err != nil {
		return nil, err
	}
	l.Add(task)
	return task, nil
}

// AddLines parses every line, then adds the tasks in order. Nothing is added
// if any line fails; the error is a *ParseError naming the line.
func (l *List) AddLines(lines []string) ([]*Task, error) {
	tasks := make([]*Task, 0, len(lines))
	for i, line := range lines {
		task, err := NewTask(line)
		if err != nil {
			return nil, &ParseError{Line: i + 1, Err: err}
		}
		tasks = append(tasks, task)
	}
	for _, task := range tasks {
		l.Add(task)
	}
	return tasks, nil
}

// AddDone adds line as a task and marks it complete.
func (l *List) AddDone(line string) (*Task, error) {
	task, err := l.AddLine(line)
	if err != nil {
		return nil, err
	}
	task.Complete()
	return task, nil
}

// AddPriority adds line as a task with the given priority. The priority is
// validated first, so an invalid letter adds nothing.
func (l *List) AddPriority(line, letter string) (*Task, error) {
	if _, err := ParsePriority(letter); err != nil {
		return nil, err
	}
	task, err := NewTask(line)
	if err != nil {
		return nil, err
	}
	l.Add(task)
	if err := task.SetPriority(letter); err != nil {
		return nil, err
	}
	return task, nil
}

// GetTask returns the first task with the given ID, or nil.
func (l *List) GetTask(id ID) *Task {
	task, _ := l.tasks.Get(id)
	return task
}

// DoTask completes the task with the given ID.
func (l *List) DoTask(id ID) error {
	task := l.GetTask(id)
	if task == nil {
		return ErrTaskNotFound
	}
	task.Complete()
	return nil
}

// UndoTask reopens the task with the given ID.
func (l *List) UndoTask(id ID) error {
	task := l.GetTask(id)
	if task == nil {
		return ErrTaskNotFound
	}
	task.Uncomplete()
	return nil
}

// DoAll completes every open task.
func (l *List) DoAll() {
	for _, task := range l.todo.Items() {
		task.Complete()
	}
}

// UndoAll reopens every done task.
func (l *List) UndoAll() {
	for _, task := range l.done.Items() {
		task.Uncomplete()
	}
}

// DeleteTask removes the first task with the given ID.
func (l *List) DeleteTask(id ID) error {
	task := l.GetTask(id)
	if task == nil {
		return ErrTaskNotFound
	}
	l.remove(task)
	l.reindex()
	return nil
}

// Archive removes every done task and returns them in list order.
func (l *List) Archive() []*Task {
	archived := l.done.Items()
	for _, task := range archived {
		l.remove(task)
	}
	l.reindex()
	return archived
}

// Clear removes every task.
func (l *List) Clear() {
	for _, task := range l.tasks.items {
		task.owner = nil
		task.onChange = nil
	}
	l.tasks.Reset()
	l.todo.Reset()
	l.done.Reset()
	l.reindex()
}

// Len returns the number of tasks.
func (l *List) Len() int { return l.tasks.Len() }

// At returns the task at 0-based position i, or nil.
func (l *List) At(i int) *Task {
	task, _ := l.tasks.At(i)
	return task
}

// Tasks returns all tasks in list order.
func (l *List) Tasks() []*Task { return l.tasks.Items() }

// Todo returns the open tasks.
func (l *List) Todo() []*Task { return l.todo.Items() }

// Done returns the complete tasks.
func (l *List) Done() []*Task { return l.done.Items() }

// Projects returns the distinct projects used by the tasks.
func (l *List) Projects() []Project { return l.projects.Items() }

// Contexts returns the distinct contexts used by the tasks.
func (l *List) Contexts() []Context { return l.contexts.Items() }

// MetaData returns the distinct metadata entries used by the tasks.
func (l *List) MetaData() []MetaData { return l.metadata.Items() }

// String returns the list as newline-separated todo.txt lines.
func (l *List) String() string {
	return l.Format(DefaultLineSeparator)
}

// Format returns the list's lines joined by sep, with trailing whitespace
// removed.
func (l *List) Format(sep string) string {
	if sep == "" {
		sep = DefaultLineSeparator
	}
	lines := make([]string, 0, l.tasks.Len())
	for _, task := range l.tasks.items {
		lines = append(lines, task.String())
	}
	return strings.TrimRightFunc(strings.Join(lines, sep), isSpace)
}

// taskChanged is called by an owned task after every mutation.
func (l *List) taskChanged(task *Task) {
	open, done := l.todo.Has(task), l.done.Has(task)
	switch {
	case task.complete && !done:
		l.todo.Remove(task)
		l.done.Add(task)
	case !task.complete && !open:
		l.done.Remove(task)
		l.todo.Add(task)
	}
	l.reindex()
}

// remove detaches task from the list without touching the token indexes.
func (l *List) remove(task *Task) {
	l.tasks.Remove(task)
	l.todo.Remove(task)
	l.done.Remove(task)
	task.owner = nil
	task.onChange = nil
}

// merge adds the task's tokens to the list indexes.
func (l *List) merge(task *Task) {
	for _, p := range task.projects.items {
		l.projects.AddUnique(p)
	}
	for _, c := range task.contexts.items {
		l.contexts.AddUnique(c)
	}
	for _, m := range task.metadata.items {
		l.metadata.AddUnique(m)
	}
}

// reindex rebuilds the token indexes from the current tasks.
func (l *List) reindex() {
	l.projects.Reset()
	l.contexts.Reset()
	l.metadata.Reset()
	for _, task := range l.tasks.items {
		l.merge(task)
	}
}
