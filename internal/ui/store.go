package ui

import (
	"github.com/nibzard/todotxt-go/internal/todofile"
	"github.com/nibzard/todotxt-go/internal/todotxt"
)

// Store loads and saves the list shown by the viewer.
type Store interface {
	Load() (*todotxt.List, error)
	Save(*todotxt.List) error
	Path() string
}

// FileStore keeps the list in a todo.txt file.
type FileStore struct {
	File      string
	Separator string
}

// Load reads the file. A missing file is an empty list.
func (s FileStore) Load() (*todotxt.List, error) {
	return todofile.LoadOrEmpty(s.File, s.Separator)
}

// Save writes l back to the file.
func (s FileStore) Save(l *todotxt.List) error {
	return todofile.Save(s.File, l, s.Separator)
}

// Path returns the file path.
func (s FileStore) Path() string {
	return s.File
}
