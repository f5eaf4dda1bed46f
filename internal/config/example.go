package config

// ExampleConfig returns an example configuration showing all available options.
func ExampleConfig() string {
	return `# todotxt configuration file
# Values can be overridden by TODOTXT_* environment variables or CLI flags

# Task file (relative to the working directory; supports ~ and $VAR)
todo_file = "todo.txt"

# Archive file that receives done tasks
done_file = "done.txt"

# JSON Schema used by "check" (default: embedded schema)
# schema_file = "todotxt.schema.json"

# Line separator ("\r\n" for files shared with Windows clients)
line_separator = "\n"

# Stamp new tasks with today's date
date_on_add = false

# Move done tasks to done_file right after "do"
auto_archive = false

# Logging: debug, info, warn, error / text, json, logfmt
log_level = "info"
log_format = "text"
log_timestamps = false
log_caller = false
`
}
