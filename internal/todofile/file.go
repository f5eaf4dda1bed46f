package todofile

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/nibzard/todotxt-go/internal/todotxt"
)

// Load reads and parses the todo.txt file at path.
func Load(path, sep string) (*todotxt.List, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read todo file: %w", err)
	}

	l, err := todotxt.Parse(string(data), sep)
	if err != nil {
		return nil, fmt.Errorf("parse todo file %s: %w", path, err)
	}
	return l, nil
}

// LoadOrEmpty is like Load but returns an empty list when path does not exist.
func LoadOrEmpty(path, sep string) (*todotxt.List, error) {
	l, err := Load(path, sep)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return todotxt.NewList(), nil
		}
		return nil, err
	}
	return l, nil
}

// Save writes l to path, one task per line, followed by a trailing separator.
func Save(path string, l *todotxt.List, sep string) error {
	sep = separator(sep)
	content := l.Format(sep)
	if content != "" {
		content += sep
	}

	if err := ensureDir(path); err != nil {
		return err
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return fmt.Errorf("write todo file: %w", err)
	}
	return nil
}

// AppendDone appends tasks to the done file at path, creating it if needed.
// Existing content is left as is; a separator is inserted first when the
// file does not already end with one.
func AppendDone(path string, tasks []*todotxt.Task, sep string) error {
	if len(tasks) == 0 {
		return nil
	}
	sep = separator(sep)

	existing, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("read done file: %w", err)
	}

	var buf bytes.Buffer
	if len(existing) > 0 && !bytes.HasSuffix(existing, []byte(sep)) {
		buf.WriteString(sep)
	}
	for _, task := range tasks {
		buf.WriteString(task.String())
		buf.WriteString(sep)
	}

	if err := ensureDir(path); err != nil {
		return err
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("open done file: %w", err)
	}
	if _, err := f.Write(buf.Bytes()); err != nil {
		f.Close()
		return fmt.Errorf("write done file: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close done file: %w", err)
	}
	return nil
}

func separator(sep string) string {
	if sep == "" {
		return todotxt.DefaultLineSeparator
	}
	return sep
}

func ensureDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "" || dir == "." {
		return nil
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create directory %s: %w", dir, err)
	}
	return nil
}
