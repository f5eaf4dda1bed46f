package todotxt

import (
	"fmt"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"
)

// Task is a single todo.txt line.
type Task struct {
	id   ID
	raw  string
	body string

	complete       bool
	completionDate *time.Time
	creationDate   *time.Time
	priority       Priority

	due     bool
	dueDate *time.Time

	projects Collection[Project]
	contexts Collection[Context]
	metadata Collection[MetaData]

	// owner is the List holding the task; onChange is its notification hook.
	owner    *List
	onChange func(*Task)
}

// NewTask parses a raw todo.txt line. The task's ID is derived from the
// trimmed input and never changes afterwards.
func NewTask(line string) (*Task, error) {
	t := &Task{}
	if err := t.parse(line); err != nil {
		return nil, err
	}
	t.id = NewID(strings.TrimSpace(line))
	return t, nil
}

// parse replaces every field of t with the fields of line. On error t is
// left untouched.
func (t *Task) parse(line string) error {
	f, err := parseLine(line)
	if err != nil {
		return err
	}

	t.complete = f.complete
	t.completionDate = f.completionDate
	t.priority = f.priority
	t.creationDate = f.creationDate
	t.body = f.body

	t.projects.Reset()
	t.contexts.Reset()
	t.metadata.Reset()
	t.due = false
	t.dueDate = nil
	t.scan(t.body)
	t.rebuild()
	return nil
}

// scan merges the tokens found in s into the task's collections and
// re-derives the due date.
func (t *Task) scan(s string) {
	for _, p := range scanProjects(s) {
		t.projects.AddUnique(p)
	}
	for _, c := range scanContexts(s) {
		t.contexts.AddUnique(c)
	}
	for _, m := range scanMetaData(s) {
		t.metadata.AddUnique(m)
	}
	t.deriveDue()
}

// deriveDue sets the due date from the first "due" entry holding a valid date.
func (t *Task) deriveDue() {
	t.due = false
	t.dueDate = nil
	for _, m := range t.metadata.items {
		if m.Key() != dueKey {
			continue
		}
		if d, ok := parseDate(m.Value()); ok {
			t.due = true
			t.dueDate = &d
			return
		}
	}
}

// rebuild re-derives raw from the fields and notifies the owning list.
func (t *Task) rebuild() {
	var b strings.Builder
	if t.complete && t.completionDate != nil {
		b.WriteString("x ")
		b.WriteString(t.completionDate.Format(DateLayout))
		b.WriteByte(' ')
	}
	if t.priority.Valid() {
		b.WriteByte('(')
		b.WriteByte(byte(t.priority))
		b.WriteString(") ")
	}
	if t.creationDate != nil {
		b.WriteString(t.creationDate.Format(DateLayout))
		b.WriteByte(' ')
	}
	b.WriteString(t.body)
	t.raw = b.String()

	if t.onChange != nil {
		t.onChange(t)
	}
}

// ID returns the identifier of the line the task was created from.
func (t *Task) ID() ID { return t.id }

// Body returns the task text without completion, priority, and creation date.
func (t *Task) Body() string { return t.body }

// String returns the task as a todo.txt line.
func (t *Task) String() string { return t.raw }

// IsComplete reports whether the task is marked done.
func (t *Task) IsComplete() bool { return t.complete }

// CompletionDate returns the completion date of a complete task.
func (t *Task) CompletionDate() (time.Time, bool) {
	return optionalDate(t.completionDate)
}

// CreationDate returns the creation date, if set.
func (t *Task) CreationDate() (time.Time, bool) {
	return optionalDate(t.creationDate)
}

// Priority returns the task priority, or NoPriority.
func (t *Task) Priority() Priority { return t.priority }

// HasPriority reports whether a priority is set.
func (t *Task) HasPriority() bool { return t.priority.Valid() }

// IsDue reports whether the task has a "due:" entry with a valid date.
func (t *Task) IsDue() bool { return t.due }

// DueDate returns the parsed due date.
func (t *Task) DueDate() (time.Time, bool) {
	return optionalDate(t.dueDate)
}

// Projects returns the task's projects in order of appearance.
func (t *Task) Projects() []Project { return t.projects.Items() }

// Contexts returns the task's contexts in order of appearance.
func (t *Task) Contexts() []Context { return t.contexts.Items() }

// MetaData returns the task's metadata entries in order of appearance.
func (t *Task) MetaData() []MetaData { return t.metadata.Items() }

// Meta returns the value of the first metadata entry with the given key.
func (t *Task) Meta(key string) (string, bool) {
	for _, m := range t.metadata.items {
		if m.Key() == key {
			return m.Value(), true
		}
	}
	return "", false
}

// HasMeta reports whether any metadata entry has the given key.
func (t *Task) HasMeta(key string) bool {
	_, ok := t.Meta(key)
	return ok
}

// Complete marks the task done today. Completing a complete task moves its
// completion date to today.
func (t *Task) Complete() {
	d := today()
	t.complete = true
	t.completionDate = &d
	t.rebuild()
}

// Uncomplete clears the done marker and completion date.
func (t *Task) Uncomplete() {
	t.complete = false
	t.completionDate = nil
	t.rebuild()
}

// SetPriority sets the priority from a single uppercase letter.
func (t *Task) SetPriority(letter string) error {
	p, err := ParsePriority(letter)
	if err != nil {
		return err
	}
	t.priority = p
	t.rebuild()
	return nil
}

// UnsetPriority removes the priority.
func (t *Task) UnsetPriority() {
	t.priority = NoPriority
	t.rebuild()
}

// IncreasePriority moves the priority step letters toward A, stopping at A.
// It does nothing if the task has no priority.
func (t *Task) IncreasePriority(step int) {
	if !t.HasPriority() {
		return
	}
	t.priority = t.priority.Raise(step)
	t.rebuild()
}

// DecreasePriority moves the priority step letters toward Z, stopping at Z.
// It does nothing if the task has no priority.
func (t *Task) DecreasePriority(step int) {
	if !t.HasPriority() {
		return
	}
	t.priority = t.priority.Lower(step)
	t.rebuild()
}

// SetCreationDate sets the creation date, keeping only the calendar day.
func (t *Task) SetCreationDate(d time.Time) {
	y, m, day := d.Date()
	c := time.Date(y, m, day, 0, 0, 0, 0, time.UTC)
	t.creationDate = &c
	t.rebuild()
}

// Append adds text to the end of the body, separated by a space unless
// either side already has whitespace at the join. Tokens in text are added
// to the task; existing tokens are kept.
func (t *Task) Append(text string) {
	t.body = strings.TrimSpace(joinWords(t.body, text))
	t.scan(text)
	t.rebuild()
}

// Prepend adds text to the start of the body, separated by a space unless
// either side already has whitespace at the join. Tokens in text are added
// to the task; existing tokens are kept.
//
// The prepended text always stays in the body. Text shaped like a prefix,
// such as a date on a task without a creation date, is read as that prefix
// when the line is parsed again.
func (t *Task) Prepend(text string) {
	t.body = strings.TrimSpace(joinWords(text, t.body))
	t.scan(text)
	t.rebuild()
}

// joinWords concatenates a and b so the last word of a and the first word
// of b stay separate.
func joinWords(a, b string) string {
	if a == "" || b == "" {
		return a + b
	}
	left, _ := utf8.DecodeLastRuneInString(a)
	right, _ := utf8.DecodeRuneInString(b)
	if unicode.IsSpace(left) || unicode.IsSpace(right) {
		return a + b
	}
	return a + " " + b
}

// Edit replaces the task with a newly parsed line, keeping its ID.
func (t *Task) Edit(line string) error {
	if err := t.parse(line); err != nil {
		return fmt.Errorf("edit task %s: %w", t.id.Short(), err)
	}
	return nil
}

// Age returns the time from creation to completion. For open tasks the end
// is asOf, or now when asOf is zero.
func (t *Task) Age(asOf time.Time) (time.Duration, error) {
	if t.creationDate == nil {
		return 0, ErrNoCreationDate
	}

	end := asOf
	switch {
	case t.complete && t.completionDate != nil:
		end = *t.completionDate
	case end.IsZero():
		end = time.Now()
	}

	age := end.Sub(*t.creationDate)
	if age < 0 {
		return 0, ErrCompletionParadox
	}
	return age, nil
}

func optionalDate(d *time.Time) (time.Time, bool) {
	if d == nil {
		return time.Time{}, false
	}
	return *d, true
}
