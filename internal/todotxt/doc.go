// Package todotxt parses, mutates, and re-serializes lines in the todo.txt
// plain-text task format, and keeps an in-memory list of tasks with derived
// indexes.
//
// A line follows the grammar:
//
//	["x" SP date SP] ["(" LETTER ")" SP] [date SP] body
//
// where date is an ISO calendar date (YYYY-MM-DD) and LETTER is an uppercase
// A-Z priority. The body is scanned for embedded tokens:
//
//   - "+name": a project
//   - "@name": a context
//   - "key:value": metadata, with "due:YYYY-MM-DD" marking a due date
//
// # Parsing
//
// Prefix fields are extracted in a fixed order (completion, priority,
// creation date). A date that has the right shape but is not a valid calendar
// date is not an error: the prefix is treated as absent and the text is left
// in the body.
//
// # Identity
//
// Contexts, projects, metadata entries, and tasks are identified by an [ID], a
// content hash of their normalized text. A task keeps the ID of the line it was
// parsed from for its whole lifetime, including across [Task.Edit].
//
// # Lists
//
// A [List] owns tasks and keeps its open/done partition and its project,
// context, and metadata indexes consistent after every mutation. Tasks added
// to a list report their own mutations back to it, so a *Task obtained from
// [List.GetTask] can be changed directly.
//
// Nothing in this package is safe for concurrent use.
package todotxt
