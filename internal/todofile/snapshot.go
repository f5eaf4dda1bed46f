package todofile

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/nibzard/todotxt-go/internal/todotxt"
)

// SchemaVersion is the snapshot format version written by this package.
const SchemaVersion = 1

// Snapshot is the JSON form of a list.
type Snapshot struct {
	SchemaVersion int          `json:"schema_version"`
	Source        string       `json:"source,omitempty"`
	ExportedAt    *time.Time   `json:"exported_at,omitempty"`
	Tasks         []TaskRecord `json:"tasks"`
}

// TaskRecord is the JSON form of a task.
type TaskRecord struct {
	ID             string       `json:"id"`
	Raw            string       `json:"raw"`
	Body           string       `json:"body"`
	Complete       bool         `json:"complete"`
	CompletionDate string       `json:"completion_date,omitempty"`
	Priority       string       `json:"priority,omitempty"`
	CreationDate   string       `json:"creation_date,omitempty"`
	DueDate        string       `json:"due_date,omitempty"`
	Projects       []string     `json:"projects"`
	Contexts       []string     `json:"contexts"`
	MetaData       []MetaRecord `json:"metadata"`
}

// MetaRecord is one key:value entry of a task.
type MetaRecord struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// NewSnapshot captures l. source names the file the list came from and may
// be empty.
func NewSnapshot(l *todotxt.List, source string) *Snapshot {
	s := &Snapshot{
		SchemaVersion: SchemaVersion,
		Source:        source,
		Tasks:         make([]TaskRecord, 0, l.Len()),
	}
	for _, task := range l.Tasks() {
		s.Tasks = append(s.Tasks, newTaskRecord(task))
	}
	return s
}

func newTaskRecord(task *todotxt.Task) TaskRecord {
	r := TaskRecord{
		ID:       task.ID().String(),
		Raw:      task.String(),
		Body:     task.Body(),
		Complete: task.IsComplete(),
		Priority: task.Priority().String(),
		Projects: make([]string, 0),
		Contexts: make([]string, 0),
		MetaData: make([]MetaRecord, 0),
	}
	if d, ok := task.CompletionDate(); ok {
		r.CompletionDate = d.Format(todotxt.DateLayout)
	}
	if d, ok := task.CreationDate(); ok {
		r.CreationDate = d.Format(todotxt.DateLayout)
	}
	if d, ok := task.DueDate(); ok {
		r.DueDate = d.Format(todotxt.DateLayout)
	}
	for _, p := range task.Projects() {
		r.Projects = append(r.Projects, p.Name())
	}
	for _, c := range task.Contexts() {
		r.Contexts = append(r.Contexts, c.Name())
	}
	for _, m := range task.MetaData() {
		r.MetaData = append(r.MetaData, MetaRecord{Key: m.Key(), Value: m.Value()})
	}
	return r
}

// Marshal encodes the snapshot with 2-space indentation and a trailing newline.
func (s *Snapshot) Marshal() ([]byte, error) {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal snapshot: %w", err)
	}
	return append(data, '\n'), nil
}

// Save writes the snapshot to path.
func (s *Snapshot) Save(path string) error {
	data, err := s.Marshal()
	if err != nil {
		return err
	}
	if err := ensureDir(path); err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}
	return nil
}

// List rebuilds a list from the snapshot's raw lines.
func (s *Snapshot) List() (*todotxt.List, error) {
	lines := make([]string, len(s.Tasks))
	for i, r := range s.Tasks {
		lines[i] = r.Raw
	}
	l := todotxt.NewList()
	if _, err := l.AddLines(lines); err != nil {
		return nil, fmt.Errorf("rebuild list from snapshot: %w", err)
	}
	return l, nil
}

// LoadSnapshot reads and decodes a snapshot from path.
func LoadSnapshot(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read snapshot: %w", err)
	}

	var s Snapshot
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse snapshot: %w", err)
	}
	return &s, nil
}
