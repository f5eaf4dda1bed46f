package config

import "os"

// loadFromEnv overrides config from TODOTXT_* environment variables.
func loadFromEnv(cws *ConfigWithSources) {
	cfg := cws.Config
	str := func(name, field string, target *string) {
		if v := os.Getenv(name); v != "" {
			*target = v
			cws.Sources[field] = SourceEnv
		}
	}
	boolean := func(name, field string, target *bool) {
		if v := os.Getenv(name); v != "" {
			*target = boolFromString(v)
			cws.Sources[field] = SourceEnv
		}
	}

	str("TODOTXT_FILE", "todo_file", &cfg.TodoFile)
	str("TODOTXT_DONE_FILE", "done_file", &cfg.DoneFile)
	str("TODOTXT_SCHEMA", "schema_file", &cfg.SchemaFile)
	if v := os.Getenv("TODOTXT_LINE_SEPARATOR"); v != "" {
		cfg.LineSeparator = UnescapeSeparator(v)
		cws.Sources["line_separator"] = SourceEnv
	}
	boolean("TODOTXT_DATE_ON_ADD", "date_on_add", &cfg.DateOnAdd)
	boolean("TODOTXT_AUTO_ARCHIVE", "auto_archive", &cfg.AutoArchive)

	// Logging configuration
	str("TODOTXT_LOG_LEVEL", "log_level", &cfg.LogLevel)
	str("TODOTXT_LOG_FORMAT", "log_format", &cfg.LogFormat)
	boolean("TODOTXT_LOG_TIMESTAMPS", "log_timestamps", &cfg.LogTimestamps)
	boolean("TODOTXT_LOG_CALLER", "log_caller", &cfg.LogCaller)
}
