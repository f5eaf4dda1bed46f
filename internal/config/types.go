package config

import (
	"fmt"
	"strings"
)

// ConfigSource represents where a configuration value came from.
type ConfigSource string

const (
	SourceDefault  ConfigSource = "default"
	SourceUserFile ConfigSource = "user file"
	SourceProjFile ConfigSource = "project file"
	SourceEnv      ConfigSource = "environment"
	SourceFlag     ConfigSource = "flag"
)

// Default values.
const (
	DefaultTodoFile      = "todo.txt"
	DefaultDoneFile      = "done.txt"
	DefaultLineSeparator = "\n"
	DefaultLogLevel      = "info"
	DefaultLogFormat     = "text"
)

// Config holds the full configuration for todotxt.
type Config struct {
	// Paths
	TodoFile   string `toml:"todo_file"`
	DoneFile   string `toml:"done_file"`
	SchemaFile string `toml:"schema_file"`

	// File format
	LineSeparator string `toml:"line_separator"`

	// Behavior
	DateOnAdd   bool `toml:"date_on_add"`
	AutoArchive bool `toml:"auto_archive"`

	// Logging configuration
	LogLevel      string `toml:"log_level"`
	LogFormat     string `toml:"log_format"`
	LogTimestamps bool   `toml:"log_timestamps"`
	LogCaller     bool   `toml:"log_caller"`

	// Project root (computed)
	ProjectRoot string `toml:"-"`
}

// ConfigWithSources holds configuration along with source information for each field.
type ConfigWithSources struct {
	Config  *Config
	Sources map[string]ConfigSource
	// Files lists the config files that were read, in load order.
	Files []string
}

// Source returns where the named field (its TOML key) was last set.
func (cws *ConfigWithSources) Source(field string) ConfigSource {
	if s, ok := cws.Sources[field]; ok {
		return s
	}
	return SourceDefault
}

// configFields returns the TOML keys of all configurable fields, in display order.
func configFields() []string {
	return []string{
		"todo_file",
		"done_file",
		"schema_file",
		"line_separator",
		"date_on_add",
		"auto_archive",
		"log_level",
		"log_format",
		"log_timestamps",
		"log_caller",
	}
}

// Fields returns the TOML keys of all configurable fields, in display order.
func Fields() []string {
	return configFields()
}

// Value returns the display form of the named field.
func (c *Config) Value(field string) string {
	switch field {
	case "todo_file":
		return c.TodoFile
	case "done_file":
		return c.DoneFile
	case "schema_file":
		return c.SchemaFile
	case "line_separator":
		return EscapeSeparator(c.LineSeparator)
	case "date_on_add":
		return fmt.Sprint(c.DateOnAdd)
	case "auto_archive":
		return fmt.Sprint(c.AutoArchive)
	case "log_level":
		return c.LogLevel
	case "log_format":
		return c.LogFormat
	case "log_timestamps":
		return fmt.Sprint(c.LogTimestamps)
	case "log_caller":
		return fmt.Sprint(c.LogCaller)
	}
	return ""
}

// Validate checks values that cannot be repaired by defaults.
func (c *Config) Validate() error {
	if c.LineSeparator == "" {
		return fmt.Errorf("line_separator must not be empty")
	}
	if strings.TrimSpace(c.TodoFile) == "" {
		return fmt.Errorf("todo_file must not be empty")
	}
	if strings.TrimSpace(c.DoneFile) == "" {
		return fmt.Errorf("done_file must not be empty")
	}
	return nil
}

var separatorEscapes = strings.NewReplacer(`\r`, "\r", `\n`, "\n", `\t`, "\t")

// UnescapeSeparator turns the escape sequences \r, \n, and \t into the
// characters they name, so a separator can be given on a command line.
func UnescapeSeparator(s string) string {
	return separatorEscapes.Replace(s)
}

// EscapeSeparator is the inverse of UnescapeSeparator.
func EscapeSeparator(s string) string {
	return strings.NewReplacer("\r", `\r`, "\n", `\n`, "\t", `\t`).Replace(s)
}

// boolFromString parses the boolean spellings accepted in the environment.
func boolFromString(s string) bool {
	s = strings.ToLower(strings.TrimSpace(s))
	return s == "1" || s == "true" || s == "yes" || s == "on"
}
