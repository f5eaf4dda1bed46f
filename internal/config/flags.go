package config

import "flag"

// flagFields maps flag names to the TOML keys they set.
var flagFields = map[string]string{
	"file":           "todo_file",
	"done-file":      "done_file",
	"schema":         "schema_file",
	"line-separator": "line_separator",
	"date-on-add":    "date_on_add",
	"auto-archive":   "auto_archive",
	"log-level":      "log_level",
	"log-format":     "log_format",
	"log-timestamps": "log_timestamps",
	"log-caller":     "log_caller",
}

// parseFlags defines the global flags on fs, parses args, and records which
// flags were set. Callers read the remaining arguments from fs.Args().
func parseFlags(cws *ConfigWithSources, fs *flag.FlagSet, args []string) error {
	if fs == nil {
		fs = flag.NewFlagSet("todotxt", flag.ContinueOnError)
	}
	cfg := cws.Config

	// Paths
	fs.StringVar(&cfg.TodoFile, "file", cfg.TodoFile, "Path to todo.txt file")
	fs.StringVar(&cfg.DoneFile, "done-file", cfg.DoneFile, "Path to done.txt archive file")
	fs.StringVar(&cfg.SchemaFile, "schema", cfg.SchemaFile, "Path to snapshot JSON Schema (default: embedded)")

	// Format and behavior
	separator := EscapeSeparator(cfg.LineSeparator)
	fs.StringVar(&separator, "line-separator", separator, `Line separator, with \n and \r escapes`)
	fs.BoolVar(&cfg.DateOnAdd, "date-on-add", cfg.DateOnAdd, "Stamp new tasks with today's date")
	fs.BoolVar(&cfg.AutoArchive, "auto-archive", cfg.AutoArchive, "Archive done tasks after do")

	// Logging
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level (debug, info, warn, error)")
	fs.StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, "Log format (text, json, logfmt)")
	fs.BoolVar(&cfg.LogTimestamps, "log-timestamps", cfg.LogTimestamps, "Show timestamps in logs")
	fs.BoolVar(&cfg.LogCaller, "log-caller", cfg.LogCaller, "Show caller location in logs")

	if err := fs.Parse(args); err != nil {
		return err
	}
	cfg.LineSeparator = UnescapeSeparator(separator)

	fs.Visit(func(f *flag.Flag) {
		if field, ok := flagFields[f.Name]; ok {
			cws.Sources[field] = SourceFlag
		}
	})
	return nil
}
