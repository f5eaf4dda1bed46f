// Package ui provides optional terminal interfaces.
package ui

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"

	"github.com/nibzard/todotxt-go/internal/todotxt"
)

// DefaultRefreshInterval is how often the viewer reloads the file.
const DefaultRefreshInterval = 2 * time.Second

// TUIOption configures the TUI behavior.
type TUIOption func(*tuiConfig)

// tuiConfig holds TUI configuration.
type tuiConfig struct {
	refresh time.Duration
}

// WithRefreshInterval sets how often the file is reloaded. Zero disables
// reloading.
func WithRefreshInterval(d time.Duration) TUIOption {
	return func(c *tuiConfig) {
		c.refresh = d
	}
}

// RunTUI starts the interactive viewer over the list in store.
func RunTUI(ctx context.Context, store Store, opts ...TUIOption) error {
	c := &tuiConfig{refresh: DefaultRefreshInterval}
	for _, opt := range opts {
		opt(c)
	}

	if !IsTTY(os.Stdout) {
		return fmt.Errorf("tui requires a TTY")
	}

	model := newTUIModel(store, c.refresh)
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	finalModel, err := program.Run()
	if err != nil {
		return err
	}
	if m, ok := finalModel.(*tuiModel); ok && m.saveErr != nil {
		return m.saveErr
	}
	return nil
}

// filter selects which tasks are shown.
type filter int

const (
	filterAll filter = iota
	filterOpen
	filterDone
)

func (f filter) String() string {
	switch f {
	case filterOpen:
		return "open"
	case filterDone:
		return "done"
	}
	return "all"
}

type tuiModel struct {
	store        Store
	list         *todotxt.List
	loadErr      error
	saveErr      error
	cursor       int
	filter       filter
	showHelp     bool
	tickInterval time.Duration
}

type tickMsg time.Time

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	cursorStyle   = lipgloss.NewStyle().Reverse(true)
	doneStyle     = lipgloss.NewStyle().Faint(true)
	priorityStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("11"))
	tokenStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	footerStyle   = lipgloss.NewStyle().Faint(true)
)

func newTUIModel(store Store, interval time.Duration) *tuiModel {
	return &tuiModel{
		store:        store,
		tickInterval: interval,
	}
}

func (m *tuiModel) Init() tea.Cmd {
	m.refresh()
	if m.tickInterval <= 0 {
		return nil
	}
	return tickCmd(m.tickInterval)
}

func (m *tuiModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "r", "f5":
			m.refresh()
		case "h", "?":
			m.showHelp = !m.showHelp
		case "j", "down":
			m.move(1)
		case "k", "up":
			m.move(-1)
		case "x", " ":
			m.mutate(func(t *todotxt.Task) {
				if t.IsComplete() {
					t.Uncomplete()
				} else {
					t.Complete()
				}
			})
		case "+":
			m.mutate(func(t *todotxt.Task) { t.IncreasePriority(1) })
		case "-":
			m.mutate(func(t *todotxt.Task) { t.DecreasePriority(1) })
		case "s":
			if m.list != nil {
				m.list.Sort()
				m.save()
			}
		case "1":
			m.setFilter(filterOpen)
		case "2":
			m.setFilter(filterDone)
		case "0":
			m.setFilter(filterAll)
		}
	case tickMsg:
		m.refresh()
		return m, tickCmd(m.tickInterval)
	}

	return m, nil
}

func (m *tuiModel) View() string {
	var b strings.Builder
	writeTitle(&b)

	if m.showHelp {
		writeHelp(&b)
		writeFooter(&b, m.tickInterval)
		return b.String()
	}

	if m.loadErr != nil {
		b.WriteString(errorStyle.Render("Error loading todo file:") + "\n")
		b.WriteString("  " + m.loadErr.Error() + "\n\n")
		writeFooter(&b, m.tickInterval)
		return b.String()
	}
	if m.list == nil {
		b.WriteString("Loading...\n\n")
		writeFooter(&b, m.tickInterval)
		return b.String()
	}

	writeOverview(&b, m.list, m.filter)
	writeTasks(&b, m.list, m.visible(), m.cursor)
	if m.saveErr != nil {
		b.WriteString(errorStyle.Render("Save failed: "+m.saveErr.Error()) + "\n\n")
	}
	fmt.Fprintf(&b, "  File: %s\n\n", m.store.Path())
	writeFooter(&b, m.tickInterval)
	return b.String()
}

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m *tuiModel) refresh() {
	l, err := m.store.Load()
	if err != nil {
		m.loadErr = err
		m.list = nil
		return
	}
	m.loadErr = nil
	m.list = l
	m.clampCursor()
}

// visible returns the tasks that pass the current filter, in list order.
func (m *tuiModel) visible() []*todotxt.Task {
	if m.list == nil {
		return nil
	}
	switch m.filter {
	case filterOpen:
		return m.list.Filter(func(t *todotxt.Task) bool { return !t.IsComplete() })
	case filterDone:
		return m.list.Filter((*todotxt.Task).IsComplete)
	}
	return m.list.Tasks()
}

func (m *tuiModel) setFilter(f filter) {
	m.filter = f
	m.cursor = 0
}

func (m *tuiModel) move(delta int) {
	m.cursor += delta
	m.clampCursor()
}

func (m *tuiModel) clampCursor() {
	n := len(m.visible())
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// mutate applies fn to the task under the cursor and saves the list.
func (m *tuiModel) mutate(fn func(*todotxt.Task)) {
	tasks := m.visible()
	if m.cursor >= len(tasks) {
		return
	}
	fn(tasks[m.cursor])
	m.save()
	m.clampCursor()
}

func (m *tuiModel) save() {
	m.saveErr = m.store.Save(m.list)
}

func writeTitle(b *strings.Builder) {
	b.WriteString(titleStyle.Render("todo.txt") + "\n\n")
}

func writeOverview(b *strings.Builder, l *todotxt.List, f filter) {
	fmt.Fprintf(b, "  Open: %d  Done: %d  Projects: %d  Contexts: %d  Filter: %s\n\n",
		len(l.Todo()), len(l.Done()), len(l.Projects()), len(l.Contexts()), f)
}

func writeTasks(b *strings.Builder, l *todotxt.List, tasks []*todotxt.Task, cursor int) {
	if len(tasks) == 0 {
		b.WriteString("  No tasks.\n\n")
		return
	}

	lineNo := make(map[*todotxt.Task]int, l.Len())
	for i, t := range l.Tasks() {
		lineNo[t] = i + 1
	}

	width := len(fmt.Sprint(l.Len()))
	for i, t := range tasks {
		marker := " "
		if i == cursor {
			marker = cursorStyle.Render(">")
		}
		fmt.Fprintf(b, "%s %*d %s\n", marker, width, lineNo[t], formatTask(t))
	}
	b.WriteString("\n")
}

func formatTask(t *todotxt.Task) string {
	if t.IsComplete() {
		return doneStyle.Render(t.String())
	}

	var parts []string
	if t.HasPriority() {
		parts = append(parts, priorityStyle.Render("("+t.Priority().String()+")"))
	}
	if d, ok := t.CreationDate(); ok {
		parts = append(parts, d.Format(todotxt.DateLayout))
	}
	for _, word := range strings.Fields(t.Body()) {
		if strings.HasPrefix(word, "+") || strings.HasPrefix(word, "@") {
			word = tokenStyle.Render(word)
		}
		parts = append(parts, word)
	}
	return strings.Join(parts, " ")
}

func writeHelp(b *strings.Builder) {
	b.WriteString("Keyboard Shortcuts\n\n")
	b.WriteString("  q, ctrl+c    Quit\n")
	b.WriteString("  r, F5        Reload file\n")
	b.WriteString("  h, ?         Toggle this help screen\n")
	b.WriteString("  j, k         Move down, up\n")
	b.WriteString("  x, space     Toggle done\n")
	b.WriteString("  +, -         Raise, lower priority\n")
	b.WriteString("  s            Sort list\n")
	b.WriteString("  1            Show open tasks\n")
	b.WriteString("  2            Show done tasks\n")
	b.WriteString("  0            Show all tasks\n\n")
}

func writeFooter(b *strings.Builder, interval time.Duration) {
	text := "Press h for help | q to quit"
	if interval > 0 {
		text += fmt.Sprintf(" | Reloading every %s", interval)
	}
	b.WriteString(footerStyle.Render(text) + "\n")
}

// IsTTY returns true if w is a terminal.
func IsTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
