package ui

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nibzard/todotxt-go/internal/todotxt"
)

// memStore keeps the list as text and counts saves.
type memStore struct {
	text    string
	saves   int
	loadErr error
	saveErr error
}

func (s *memStore) Load() (*todotxt.List, error) {
	if s.loadErr != nil {
		return nil, s.loadErr
	}
	return todotxt.Parse(s.text, "\n")
}

func (s *memStore) Save(l *todotxt.List) error {
	if s.saveErr != nil {
		return s.saveErr
	}
	s.saves++
	s.text = l.String()
	return nil
}

func (s *memStore) Path() string { return "mem://todo.txt" }

func key(s string) tea.KeyMsg {
	switch s {
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func newTestModel(t *testing.T, store *memStore) *tuiModel {
	t.Helper()
	m := newTUIModel(store, 0)
	if cmd := m.Init(); cmd != nil {
		t.Error("Init with no refresh interval should not schedule a tick")
	}
	return m
}

func press(m *tuiModel, keys ...string) tea.Cmd {
	var cmd tea.Cmd
	for _, k := range keys {
		_, cmd = m.Update(key(k))
	}
	return cmd
}

func TestTUIView(t *testing.T) {
	store := &memStore{text: "(A) call mom +family @phone\nx 2024-01-02 file taxes\nbuy milk"}
	m := newTestModel(t, store)

	view := m.View()
	for _, want := range []string{"todo.txt", "Open: 2", "Done: 1", "Projects: 1", "call mom", "file taxes", "buy milk", "mem://todo.txt"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}
}

func TestTUIToggleSaves(t *testing.T) {
	store := &memStore{text: "first\nsecond"}
	m := newTestModel(t, store)

	press(m, "j", "x")
	if store.saves != 1 {
		t.Fatalf("saves: got %d, want 1", store.saves)
	}
	lines := strings.Split(store.text, "\n")
	if !strings.HasPrefix(lines[1], "x ") || !strings.HasSuffix(lines[1], " second") {
		t.Errorf("second line: got %q, want it completed", lines[1])
	}
	if lines[0] != "first" {
		t.Errorf("first line: got %q", lines[0])
	}

	press(m, "x")
	if store.text != "first\nsecond" {
		t.Errorf("toggling twice: got %q", store.text)
	}
}

func TestTUICursorBounds(t *testing.T) {
	m := newTestModel(t, &memStore{text: "a\nb"})

	press(m, "up", "k")
	if m.cursor != 0 {
		t.Errorf("cursor: got %d, want 0", m.cursor)
	}
	press(m, "down", "down", "down")
	if m.cursor != 1 {
		t.Errorf("cursor: got %d, want 1", m.cursor)
	}
}

func TestTUIFilters(t *testing.T) {
	store := &memStore{text: "open one\nx 2024-01-02 done one\nopen two"}
	m := newTestModel(t, store)

	press(m, "2")
	if got := len(m.visible()); got != 1 {
		t.Fatalf("done filter: got %d tasks, want 1", got)
	}
	if view := m.View(); strings.Contains(view, "open one") || !strings.Contains(view, "Filter: done") {
		t.Errorf("done filter view:\n%s", view)
	}

	press(m, "1", "j", "j", "x")
	if m.cursor != 0 {
		t.Errorf("cursor after completing last open task: got %d, want 0", m.cursor)
	}
	if got := len(m.visible()); got != 1 {
		t.Errorf("open filter after completing: got %d tasks, want 1", got)
	}

	press(m, "0")
	if got := len(m.visible()); got != 3 {
		t.Errorf("all filter: got %d tasks, want 3", got)
	}
}

func TestTUIPriorityAndSort(t *testing.T) {
	store := &memStore{text: "(C) later\n(B) sooner"}
	m := newTestModel(t, store)

	press(m, "+")
	if !strings.HasPrefix(store.text, "(B) later") {
		t.Errorf("after +: got %q", store.text)
	}
	press(m, "-", "-")
	if !strings.HasPrefix(store.text, "(D) later") {
		t.Errorf("after - -: got %q", store.text)
	}

	press(m, "s")
	if store.text != "(B) sooner\n(D) later" {
		t.Errorf("after sort: got %q", store.text)
	}
}

func TestTUIHelpAndQuit(t *testing.T) {
	m := newTestModel(t, &memStore{text: "a"})

	press(m, "?")
	if !strings.Contains(m.View(), "Keyboard Shortcuts") {
		t.Error("help screen not shown")
	}
	press(m, "h")
	if strings.Contains(m.View(), "Keyboard Shortcuts") {
		t.Error("help screen not hidden")
	}

	for _, k := range []string{"q", "ctrl+c"} {
		cmd := press(m, k)
		if cmd == nil {
			t.Fatalf("%s: no command returned", k)
		}
		if _, ok := cmd().(tea.QuitMsg); !ok {
			t.Errorf("%s: expected quit", k)
		}
	}
}

func TestTUIErrors(t *testing.T) {
	store := &memStore{loadErr: errors.New("disk on fire")}
	m := newTestModel(t, store)
	if view := m.View(); !strings.Contains(view, "disk on fire") {
		t.Errorf("load error not shown:\n%s", view)
	}

	store.loadErr = nil
	store.text = "a"
	store.saveErr = errors.New("read-only")
	press(m, "r", "x")
	if m.saveErr == nil || !strings.Contains(m.View(), "read-only") {
		t.Errorf("save error not shown:\n%s", m.View())
	}
}

func TestTUITick(t *testing.T) {
	store := &memStore{text: "a"}
	m := newTUIModel(store, DefaultRefreshInterval)
	if cmd := m.Init(); cmd == nil {
		t.Fatal("Init should schedule a refresh")
	}

	store.text = "a\nb"
	_, cmd := m.Update(tickMsg{})
	if cmd == nil {
		t.Error("tick should schedule the next refresh")
	}
	if m.list.Len() != 2 {
		t.Errorf("tick did not reload: got %d tasks", m.list.Len())
	}
}

func TestFileStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "todo.txt")
	store := FileStore{File: path, Separator: "\r\n"}

	l, err := store.Load()
	if err != nil {
		t.Fatalf("Load of missing file: %v", err)
	}
	if _, err := l.AddLine("write tests"); err != nil {
		t.Fatal(err)
	}
	if err := store.Save(l); err != nil {
		t.Fatalf("Save: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "write tests\r\n" {
		t.Errorf("file content: got %q", data)
	}
	if store.Path() != path {
		t.Errorf("Path: got %q", store.Path())
	}
}

func TestIsTTY(t *testing.T) {
	if IsTTY(&bytes.Buffer{}) {
		t.Error("a buffer is not a terminal")
	}
}
