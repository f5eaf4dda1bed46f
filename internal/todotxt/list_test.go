package todotxt

import (
	"errors"
	"strings"
	"testing"
)

func mustList(t *testing.T, lines ...string) *List {
	t.Helper()
	l := NewList()
	if _, err := l.AddLines(lines); err != nil {
		t.Fatalf("AddLines failed: %v", err)
	}
	return l
}

func names[T interface{ Name() string }](items []T) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.Name()
	}
	return out
}

func bodies(tasks []*Task) []string {
	out := make([]string, len(tasks))
	for i, task := range tasks {
		out[i] = task.Body()
	}
	return out
}

func equal(a, b []string) bool {
	return strings.Join(a, "|") == strings.Join(b, "|")
}

func TestParse(t *testing.T) {
	tests := []struct {
		name  string
		input string
		sep   string
		want  int
	}{
		{"single line", "This is a task", "\n", 1},
		{"three lines", "This is a task\nThis is another task\nThis is a third task", "\n", 3},
		{"blank lines skipped", "\n  one\n\n\t\ntwo\n", "\n", 2},
		{"crlf", "one\r\ntwo\r\n", "\r\n", 2},
		{"default separator", "one\ntwo", "", 2},
		{"empty", "", "\n", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, err := Parse(tt.input, tt.sep)
			if err != nil {
				t.Fatalf("Parse() error = %v", err)
			}
			if l.Len() != tt.want {
				t.Errorf("Len() = %d, want %d", l.Len(), tt.want)
			}
		})
	}
}

func TestAddLinesAtomic(t *testing.T) {
	l := NewList()
	_, err := l.AddLines([]string{"good one", "   ", "good two"})
	var perr *ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("AddLines() error = %v, want *ParseError", err)
	}
	if perr.Line != 2 || !errors.Is(err, ErrEmptyInput) {
		t.Errorf("ParseError = %+v", perr)
	}
	if l.Len() != 0 {
		t.Errorf("Len() = %d, want 0 after failed AddLines", l.Len())
	}

	tasks, err := l.AddLines([]string{"first", "second", "third"})
	if err != nil {
		t.Fatalf("AddLines() error = %v", err)
	}
	if len(tasks) != 3 || !equal(bodies(l.Tasks()), []string{"first", "second", "third"}) {
		t.Errorf("Tasks() = %v", bodies(l.Tasks()))
	}
}

func TestAdd(t *testing.T) {
	l := NewList()
	task, err := l.AddLine("This is a task")
	if err != nil {
		t.Fatalf("AddLine() error = %v", err)
	}
	if l.Len() != 1 || l.At(0) != task {
		t.Errorf("AddLine did not store the task")
	}

	done := mustTask(t, "x 2011-01-01 finished")
	l.Add(done)
	l.Add(done)
	if l.Len() != 2 {
		t.Errorf("Len() = %d, want 2 (re-adding the same task is a no-op)", l.Len())
	}
	if len(l.Todo()) != 1 || len(l.Done()) != 1 {
		t.Errorf("todo=%d done=%d, want 1 and 1", len(l.Todo()), len(l.Done()))
	}

	if _, err := l.AddLine(""); !errors.Is(err, ErrEmptyInput) {
		t.Errorf("AddLine(\"\") error = %v", err)
	}
	if l.At(5) != nil {
		t.Error("At(5) should be nil")
	}
}

func TestAddMovesTaskBetweenLists(t *testing.T) {
	first := mustList(t, "keep +a", "move +b @work")
	second := NewList()
	task := first.At(1)

	second.Add(task)
	if first.Len() != 1 || first.GetTask(task.ID()) != nil {
		t.Fatalf("task still in first list: %v", bodies(first.Tasks()))
	}
	if !equal(names(first.Projects()), []string{"a"}) || len(first.Contexts()) != 0 {
		t.Errorf("first list indexes = %v %v", names(first.Projects()), names(first.Contexts()))
	}

	task.Complete()
	if len(second.Done()) != 1 || len(second.Todo()) != 0 {
		t.Errorf("second list todo=%d done=%d, want 0 and 1", len(second.Todo()), len(second.Done()))
	}
	if len(first.Done()) != 0 || len(first.Todo()) != 1 {
		t.Errorf("first list todo=%d done=%d, want 1 and 0", len(first.Todo()), len(first.Done()))
	}

	first.Add(task)
	if second.Len() != 0 || first.Len() != 2 {
		t.Errorf("moving back: first=%d second=%d", first.Len(), second.Len())
	}
	task.Uncomplete()
	if len(first.Todo()) != 2 {
		t.Errorf("first list todo=%d, want 2", len(first.Todo()))
	}
}

func TestAddDoneAndPriority(t *testing.T) {
	l := NewList()
	task, err := l.AddDone("finished already")
	if err != nil {
		t.Fatalf("AddDone() error = %v", err)
	}
	if !task.IsComplete() || len(l.Done()) != 1 || len(l.Todo()) != 0 {
		t.Errorf("AddDone: complete=%v done=%d todo=%d", task.IsComplete(), len(l.Done()), len(l.Todo()))
	}

	task, err = l.AddPriority("urgent thing", "B")
	if err != nil {
		t.Fatalf("AddPriority() error = %v", err)
	}
	if task.String() != "(B) urgent thing" {
		t.Errorf("String() = %q", task.String())
	}

	if _, err := l.AddPriority("bad priority", "b"); !errors.Is(err, ErrInvalidPriority) {
		t.Errorf("AddPriority(b) error = %v, want ErrInvalidPriority", err)
	}
	if l.Len() != 2 {
		t.Errorf("Len() = %d, want 2 after a rejected AddPriority", l.Len())
	}
}

func TestDoUndo(t *testing.T) {
	l := mustList(t, "first", "second", "x 2011-01-01 third")
	first := l.At(0)

	if err := l.DoTask(first.ID()); err != nil {
		t.Fatalf("DoTask() error = %v", err)
	}
	if !first.IsComplete() {
		t.Error("task not completed")
	}
	if !equal(bodies(l.Todo()), []string{"second"}) || !equal(bodies(l.Done()), []string{"third", "first"}) {
		t.Errorf("todo=%v done=%v", bodies(l.Todo()), bodies(l.Done()))
	}

	if err := l.DoTask(first.ID()); err != nil {
		t.Fatalf("second DoTask() error = %v", err)
	}
	if len(l.Done()) != 2 {
		t.Errorf("completing twice duplicated the task in done: %v", bodies(l.Done()))
	}

	if err := l.UndoTask(first.ID()); err != nil {
		t.Fatalf("UndoTask() error = %v", err)
	}
	if first.IsComplete() || !equal(bodies(l.Todo()), []string{"second", "first"}) {
		t.Errorf("after undo todo=%v", bodies(l.Todo()))
	}

	missing := NewID("no such task")
	if err := l.DoTask(missing); !errors.Is(err, ErrTaskNotFound) {
		t.Errorf("DoTask(missing) error = %v", err)
	}
	if err := l.UndoTask(missing); !errors.Is(err, ErrTaskNotFound) {
		t.Errorf("UndoTask(missing) error = %v", err)
	}
	if l.GetTask(missing) != nil {
		t.Error("GetTask(missing) should be nil")
	}
}

func TestDoAllUndoAll(t *testing.T) {
	l := mustList(t, "a", "b", "x 2011-01-01 c", "d")

	l.DoAll()
	if len(l.Todo()) != 0 || len(l.Done()) != 4 {
		t.Fatalf("after DoAll todo=%d done=%d", len(l.Todo()), len(l.Done()))
	}
	for _, task := range l.Tasks() {
		if !task.IsComplete() {
			t.Errorf("%q not complete", task)
		}
	}

	l.UndoAll()
	if len(l.Todo()) != 4 || len(l.Done()) != 0 {
		t.Fatalf("after UndoAll todo=%d done=%d", len(l.Todo()), len(l.Done()))
	}
}

func TestDirectTaskMutation(t *testing.T) {
	l := mustList(t, "call bob +phone")
	task := l.GetTask(l.At(0).ID())

	task.Complete()
	if len(l.Done()) != 1 || len(l.Todo()) != 0 {
		t.Errorf("direct Complete not reflected: todo=%d done=%d", len(l.Todo()), len(l.Done()))
	}

	task.Append(" @home")
	if !equal(names(l.Contexts()), []string{"home"}) {
		t.Errorf("Contexts() = %v", names(l.Contexts()))
	}

	if err := task.Edit("rewrite +other"); err != nil {
		t.Fatalf("Edit() error = %v", err)
	}
	if !equal(names(l.Projects()), []string{"other"}) || len(l.Contexts()) != 0 {
		t.Errorf("after edit projects=%v contexts=%v", names(l.Projects()), names(l.Contexts()))
	}
	if len(l.Todo()) != 1 {
		t.Errorf("edit to an open line should move the task back to todo")
	}
}

func TestIndexDedup(t *testing.T) {
	l := mustList(t,
		"one +same @here key:v",
		"two +same @here key:v",
		"three +other key:w",
	)
	if !equal(names(l.Projects()), []string{"same", "other"}) {
		t.Errorf("Projects() = %v", names(l.Projects()))
	}
	if !equal(names(l.Contexts()), []string{"here"}) {
		t.Errorf("Contexts() = %v", names(l.Contexts()))
	}
	if md := l.MetaData(); len(md) != 2 {
		t.Errorf("MetaData() = %v, want key:v and key:w", md)
	}
}

func TestDeleteTask(t *testing.T) {
	l := mustList(t, "keep +shared", "drop +shared +gone @ctx", "x 2011-01-01 done")
	drop := l.At(1)

	if err := l.DeleteTask(drop.ID()); err != nil {
		t.Fatalf("DeleteTask() error = %v", err)
	}
	if l.Len() != 2 || l.GetTask(drop.ID()) != nil {
		t.Errorf("task not removed")
	}
	if !equal(names(l.Projects()), []string{"shared"}) || len(l.Contexts()) != 0 {
		t.Errorf("indexes not pruned: projects=%v contexts=%v", names(l.Projects()), names(l.Contexts()))
	}

	drop.Complete()
	if len(l.Done()) != 1 {
		t.Error("a deleted task still notifies its old list")
	}

	if err := l.DeleteTask(drop.ID()); !errors.Is(err, ErrTaskNotFound) {
		t.Errorf("DeleteTask(missing) error = %v", err)
	}
}

func TestArchive(t *testing.T) {
	l := mustList(t,
		"x 2011-01-01 done +onlyhere +shared @gone due:2011-01-02",
		"open +shared",
		"x 2011-01-03 also done",
		"another open @stay",
	)

	archived := l.Archive()
	if !equal(bodies(archived), []string{"done +onlyhere +shared @gone due:2011-01-02", "also done"}) {
		t.Errorf("Archive() returned %v", bodies(archived))
	}
	if l.Len() != 2 || len(l.Done()) != 0 || len(l.Todo()) != 2 {
		t.Errorf("after archive len=%d todo=%d done=%d", l.Len(), len(l.Todo()), len(l.Done()))
	}
	if !equal(names(l.Projects()), []string{"shared"}) {
		t.Errorf("Projects() = %v, want [shared]", names(l.Projects()))
	}
	if !equal(names(l.Contexts()), []string{"stay"}) {
		t.Errorf("Contexts() = %v, want [stay]", names(l.Contexts()))
	}
	if len(l.MetaData()) != 0 {
		t.Errorf("MetaData() = %v, want none", l.MetaData())
	}

	if got := l.Archive(); len(got) != 0 {
		t.Errorf("second Archive() returned %d tasks", len(got))
	}
}

func TestClear(t *testing.T) {
	l := mustList(t, "a +p", "x 2011-01-01 b @c")
	task := l.At(0)
	l.Clear()
	if l.Len() != 0 || len(l.Todo()) != 0 || len(l.Done()) != 0 {
		t.Error("Clear() left tasks behind")
	}
	if len(l.Projects()) != 0 || len(l.Contexts()) != 0 {
		t.Error("Clear() left index entries behind")
	}
	task.Complete()
	if len(l.Done()) != 0 {
		t.Error("cleared task still notifies the list")
	}
}

func TestListString(t *testing.T) {
	l := mustList(t, "X 2011-01-01 first", "(A) second", "third   ")
	want := "x 2011-01-01 first\n(A) second\nthird"
	if l.String() != want {
		t.Errorf("String() = %q, want %q", l.String(), want)
	}
	if got := l.Format("\r\n"); got != strings.ReplaceAll(want, "\n", "\r\n") {
		t.Errorf("Format(crlf) = %q", got)
	}
	if NewList().String() != "" {
		t.Error("empty list should format as empty string")
	}

	again, err := Parse(l.String(), "\n")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if again.String() != l.String() {
		t.Errorf("list round trip: %q -> %q", l.String(), again.String())
	}
}

func TestSort(t *testing.T) {
	l := mustList(t,
		"x 2011-01-01 done",
		"plain",
		"(B) b task",
		"(A) 2011-05-01 later a",
		"(A) 2011-01-01 earlier a",
	)
	l.Sort()
	want := []string{"earlier a", "later a", "b task", "plain", "done"}
	if !equal(bodies(l.Tasks()), want) {
		t.Errorf("Sort() = %v, want %v", bodies(l.Tasks()), want)
	}
	if !equal(bodies(l.Todo()), want[:4]) {
		t.Errorf("Todo() after sort = %v", bodies(l.Todo()))
	}

	l.SortByPriority()
	if l.At(0).Priority() != 'A' || l.At(l.Len()-1).HasPriority() {
		t.Errorf("SortByPriority() = %v", bodies(l.Tasks()))
	}
}

func TestSortByTokens(t *testing.T) {
	l := mustList(t,
		"none",
		"zed +zeta @work due:2011-03-01",
		"alpha +alpha @home due:2011-01-01",
	)

	l.SortByProject()
	if !equal(bodies(l.Tasks()), []string{"alpha +alpha @home due:2011-01-01", "zed +zeta @work due:2011-03-01", "none"}) {
		t.Errorf("SortByProject() = %v", bodies(l.Tasks()))
	}

	l.SortByContext()
	if l.At(0).Body() != "alpha +alpha @home due:2011-01-01" || l.At(2).Body() != "none" {
		t.Errorf("SortByContext() = %v", bodies(l.Tasks()))
	}

	l.SortByMetaData("due")
	if l.At(0).Body() != "alpha +alpha @home due:2011-01-01" || l.At(2).Body() != "none" {
		t.Errorf("SortByMetaData(due) = %v", bodies(l.Tasks()))
	}
}

func TestFilter(t *testing.T) {
	l := mustList(t,
		"(A) call +phone @home",
		"email +work @office",
		"(A) Write REPORT +work",
	)

	tests := []struct {
		name string
		keep func(*Task) bool
		want int
	}{
		{"project", HasProject("work"), 2},
		{"context", HasContext("home"), 1},
		{"priority", HasPriority('A'), 2},
		{"contains ignores case", Contains("report"), 1},
		{"no match", HasProject("missing"), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := l.Filter(tt.keep); len(got) != tt.want {
				t.Errorf("Filter() = %v, want %d tasks", bodies(got), tt.want)
			}
		})
	}
}

func TestDuplicateLines(t *testing.T) {
	l := mustList(t, "same", "same")
	if l.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", l.Len())
	}
	if err := l.DoTask(l.At(0).ID()); err != nil {
		t.Fatal(err)
	}
	if !l.At(0).IsComplete() || l.At(1).IsComplete() {
		t.Error("DoTask should complete only the first matching task")
	}
}
