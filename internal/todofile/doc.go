// Package todofile reads and writes todo.txt files and their JSON snapshots.
//
// A todo.txt file holds one task per line. Lines are separated by a
// configurable separator ("\n" by default, "\r\n" for files shared with
// Windows clients). Blank lines are ignored on load; saved files always end
// with a single separator.
//
// # Archiving
//
// Archived tasks are appended to a separate done file (done.txt by
// convention). Appending never rewrites existing lines.
//
// # Snapshots
//
// A snapshot is a JSON rendition of a list for other tools:
//
//	{
//	  "schema_version": 1,
//	  "source": "/home/me/todo.txt",
//	  "tasks": [
//	    {
//	      "id": "5e0c1d5ab3c1d0b3e33f2dbe8a6cc8d1",
//	      "raw": "(A) 2024-01-01 Call mom @phone +family due:2024-01-05",
//	      "body": "Call mom @phone +family due:2024-01-05",
//	      "complete": false,
//	      "priority": "A",
//	      "creation_date": "2024-01-01",
//	      "due_date": "2024-01-05",
//	      "projects": ["family"],
//	      "contexts": ["phone"],
//	      "metadata": [{"key": "due", "value": "2024-01-05"}]
//	    }
//	  ]
//	}
//
// # Validation
//
// Snapshots are validated against an embedded JSON Schema (draft 2020-12).
// A schema file may be supplied instead; if it cannot be used, validation
// falls back to the embedded schema and records a warning. Every task's raw
// line must also parse as a todo.txt task.
//
// When writing snapshots, the package uses 2-space indentation and a
// trailing newline.
package todofile
