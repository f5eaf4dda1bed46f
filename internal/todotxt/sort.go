package todotxt

import (
	"cmp"
	"slices"
	"strings"
	"time"
	"unicode"
)

// Sort orders the list the way todo.txt clients conventionally do: open
// tasks before done ones, then by priority (A first, unprioritized last),
// then by creation date, then by body.
func (l *List) Sort() {
	l.sortBy(compareTasks)
}

// SortByPriority orders tasks by priority, unprioritized tasks last.
func (l *List) SortByPriority() {
	l.sortBy(comparePriority)
}

// SortByProject orders tasks by their first project name, tasks without a
// project last.
func (l *List) SortByProject() {
	l.sortBy(func(a, b *Task) int {
		return compareFirst(firstName(a.projects.items), firstName(b.projects.items))
	})
}

// SortByContext orders tasks by their first context name, tasks without a
// context last.
func (l *List) SortByContext() {
	l.sortBy(func(a, b *Task) int {
		return compareFirst(firstName(a.contexts.items), firstName(b.contexts.items))
	})
}

// SortByMetaData orders tasks by the value of key, tasks without it last.
func (l *List) SortByMetaData(key string) {
	l.sortBy(func(a, b *Task) int {
		av, aok := a.Meta(key)
		bv, bok := b.Meta(key)
		return compareFirst(optional(av, aok), optional(bv, bok))
	})
}

// Filter returns the tasks for which keep returns true, in list order.
func (l *List) Filter(keep func(*Task) bool) []*Task {
	var out []*Task
	for _, task := range l.tasks.items {
		if keep(task) {
			out = append(out, task)
		}
	}
	return out
}

// HasProject matches tasks tagged with +name.
func HasProject(name string) func(*Task) bool {
	id := NewID(strings.TrimSpace(name))
	return func(t *Task) bool { return t.projects.IndexOf(id) >= 0 }
}

// HasContext matches tasks tagged with @name.
func HasContext(name string) func(*Task) bool {
	id := NewID(strings.TrimSpace(name))
	return func(t *Task) bool { return t.contexts.IndexOf(id) >= 0 }
}

// HasPriority matches tasks with priority p.
func HasPriority(p Priority) func(*Task) bool {
	return func(t *Task) bool { return t.priority == p }
}

// Contains matches tasks whose line contains text, ignoring case.
func Contains(text string) func(*Task) bool {
	needle := strings.ToLower(text)
	return func(t *Task) bool { return strings.Contains(strings.ToLower(t.raw), needle) }
}

func (l *List) sortBy(cmpFn func(a, b *Task) int) {
	slices.SortStableFunc(l.tasks.items, cmpFn)
	order := make(map[*Task]int, len(l.tasks.items))
	for i, task := range l.tasks.items {
		order[task] = i
	}
	byOrder := func(a, b *Task) int { return cmp.Compare(order[a], order[b]) }
	slices.SortStableFunc(l.todo.items, byOrder)
	slices.SortStableFunc(l.done.items, byOrder)
}

func compareTasks(a, b *Task) int {
	if a.complete != b.complete {
		if a.complete {
			return 1
		}
		return -1
	}
	if c := comparePriority(a, b); c != 0 {
		return c
	}
	if c := compareDates(a.creationDate, b.creationDate); c != 0 {
		return c
	}
	return strings.Compare(a.body, b.body)
}

func comparePriority(a, b *Task) int {
	switch {
	case a.priority.Valid() && b.priority.Valid():
		return cmp.Compare(a.priority, b.priority)
	case a.priority.Valid():
		return -1
	case b.priority.Valid():
		return 1
	}
	return 0
}

func compareDates(a, b *time.Time) int {
	switch {
	case a != nil && b != nil:
		return a.Compare(*b)
	case a != nil:
		return -1
	case b != nil:
		return 1
	}
	return 0
}

type named interface{ Name() string }

func firstName[T named](items []T) *string {
	if len(items) == 0 {
		return nil
	}
	name := items[0].Name()
	return &name
}

func optional(s string, ok bool) *string {
	if !ok {
		return nil
	}
	return &s
}

// compareFirst orders present values before absent ones.
func compareFirst(a, b *string) int {
	switch {
	case a != nil && b != nil:
		return strings.Compare(*a, *b)
	case a != nil:
		return -1
	case b != nil:
		return 1
	}
	return 0
}

func isSpace(r rune) bool { return unicode.IsSpace(r) }
