package todotxt

import (
	"fmt"
	"strings"
)

// Project is a "+name" token.
type Project struct {
	name string
	id   ID
}

// NewProject creates a project from name, which is trimmed and must not be empty.
func NewProject(name string) (Project, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Project{}, fmt.Errorf("project: %w", ErrEmptyName)
	}
	return Project{name: name, id: NewID(name)}, nil
}

// Name returns the project name without the leading "+".
func (p Project) Name() string { return p.name }

// ID returns the project's identifier.
func (p Project) ID() ID { return p.id }

func (p Project) String() string { return "+" + p.name }

// Context is an "@name" token.
type Context struct {
	name string
	id   ID
}

// NewContext creates a context from name, which is trimmed and must not be empty.
func NewContext(name string) (Context, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Context{}, fmt.Errorf("context: %w", ErrEmptyName)
	}
	return Context{name: name, id: NewID(name)}, nil
}

// Name returns the context name without the leading "@".
func (c Context) Name() string { return c.name }

// ID returns the context's identifier.
func (c Context) ID() ID { return c.id }

func (c Context) String() string { return "@" + c.name }

// MetaData is a "key:value" token. Its ID is derived from the canonical
// "key:value" form and is recomputed whenever the key or value changes.
type MetaData struct {
	key   string
	value string
	id    ID
}

// NewMetaData creates a metadata entry. Both key and value must be non-empty
// after trimming.
func NewMetaData(key, value string) (MetaData, error) {
	key = strings.TrimSpace(key)
	value = strings.TrimSpace(value)
	switch {
	case key == "" && value == "":
		return MetaData{}, ErrEmptyMetaData
	case key == "":
		return MetaData{}, fmt.Errorf("%w: empty key", ErrInvalidMetaData)
	case value == "":
		return MetaData{}, fmt.Errorf("%w: empty value for key %q", ErrInvalidMetaData, key)
	}
	m := MetaData{key: key, value: value}
	m.rehash()
	return m, nil
}

// ParseMetaData parses a single "key:value" string. The value may itself
// contain colons; the key may not.
func ParseMetaData(s string) (MetaData, error) {
	s = strings.TrimSpace(s)
	if s == "" || s == ":" {
		return MetaData{}, ErrEmptyMetaData
	}
	key, value, ok := strings.Cut(s, ":")
	if !ok {
		return MetaData{}, fmt.Errorf("%w: %q has no separator", ErrInvalidMetaData, s)
	}
	return NewMetaData(key, value)
}

// Key returns the metadata key.
func (m MetaData) Key() string { return m.key }

// Value returns the metadata value.
func (m MetaData) Value() string { return m.value }

// ID returns the identifier of the canonical "key:value" form.
func (m MetaData) ID() ID { return m.id }

func (m MetaData) String() string { return m.key + ":" + m.value }

// SetKey replaces the key and recomputes the ID.
func (m *MetaData) SetKey(key string) error {
	key = strings.TrimSpace(key)
	if key == "" {
		return fmt.Errorf("%w: empty key", ErrInvalidMetaData)
	}
	m.key = key
	m.rehash()
	return nil
}

// SetValue replaces the value and recomputes the ID.
func (m *MetaData) SetValue(value string) error {
	value = strings.TrimSpace(value)
	if value == "" {
		return fmt.Errorf("%w: empty value for key %q", ErrInvalidMetaData, m.key)
	}
	m.value = value
	m.rehash()
	return nil
}

func (m *MetaData) rehash() {
	m.id = NewID(m.String())
}
