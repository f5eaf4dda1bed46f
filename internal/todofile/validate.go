package todofile

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/nibzard/todotxt-go/internal/todotxt"
)

// DefaultSchemaURL identifies the embedded snapshot schema.
const DefaultSchemaURL = "https://github.com/nibzard/todotxt-go/schema/todotxt.schema.json"

//go:embed todotxt.schema.json
var defaultSchema string

// DefaultSchema returns the embedded snapshot schema.
func DefaultSchema() string {
	return defaultSchema
}

// ValidationError represents a validation error with context.
type ValidationError struct {
	Path string // JSON path to the error location
	Err  error  // Underlying error
}

func (e *ValidationError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s: %s", e.Path, e.Err)
	}
	return e.Err.Error()
}

// Unwrap returns the underlying error.
func (e *ValidationError) Unwrap() error {
	return e.Err
}

// ValidationOptions controls validation behavior.
type ValidationOptions struct {
	// SchemaPath is the path to a JSON Schema file.
	// If empty, the embedded schema is used.
	SchemaPath string
}

// ValidationResult contains validation results.
type ValidationResult struct {
	Valid    bool
	Errors   []error
	Warnings []string
	// SchemaSource is the file path or URL of the schema that was applied.
	SchemaSource string
}

func newResult() *ValidationResult {
	return &ValidationResult{
		Valid:    true,
		Errors:   make([]error, 0),
		Warnings: make([]string, 0),
	}
}

func (r *ValidationResult) fail(path string, err error) {
	r.Valid = false
	r.Errors = append(r.Errors, &ValidationError{Path: path, Err: err})
}

// Validate checks the snapshot.
func (s *Snapshot) Validate(opts ValidationOptions) *ValidationResult {
	data, err := json.Marshal(s)
	if err != nil {
		result := newResult()
		result.fail("", fmt.Errorf("failed to marshal snapshot for validation: %w", err))
		return result
	}
	return Validate(data, opts)
}

// ValidateFile reads the snapshot at path and validates it.
func ValidateFile(path string, opts ValidationOptions) (*ValidationResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read snapshot: %w", err)
	}
	return Validate(data, opts), nil
}

// Validate checks encoded snapshot data against the schema and verifies that
// every task's raw line parses.
func Validate(data []byte, opts ValidationOptions) *ValidationResult {
	result := newResult()

	var doc interface{}
	if err := json.Unmarshal(data, &doc); err != nil {
		result.fail("", fmt.Errorf("invalid JSON: %w", err))
		return result
	}

	schema, source, warnings := compileSchema(opts.SchemaPath)
	result.Warnings = append(result.Warnings, warnings...)
	if schema == nil {
		result.fail("", errors.New("no usable schema"))
		return result
	}
	result.SchemaSource = source

	if err := schema.Validate(doc); err != nil {
		result.Valid = false
		appendSchemaErrors(result, err)
	}

	var s Snapshot
	if err := json.Unmarshal(data, &s); err != nil {
		// Shape errors are already reported by the schema.
		return result
	}
	validateTasks(&s, result)
	return result
}

// compileSchema compiles the schema at path, falling back to the embedded
// schema when path is empty or unusable.
func compileSchema(path string) (*jsonschema.Schema, string, []string) {
	var warnings []string

	if path != "" {
		schema, source, err := compileSchemaFile(path)
		if err == nil {
			return schema, source, nil
		}
		warnings = append(warnings, err.Error(), "using embedded schema")
	}

	compiler := newCompiler()
	if err := compiler.AddResource(DefaultSchemaURL, strings.NewReader(defaultSchema)); err != nil {
		return nil, "", append(warnings, fmt.Sprintf("invalid embedded schema: %v", err))
	}
	schema, err := compiler.Compile(DefaultSchemaURL)
	if err != nil {
		return nil, "", append(warnings, fmt.Sprintf("invalid embedded schema: %v", err))
	}
	return schema, DefaultSchemaURL, warnings
}

func compileSchemaFile(path string) (*jsonschema.Schema, string, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, "", fmt.Errorf("invalid schema path: %w", err)
	}

	if _, err := os.Stat(absPath); err != nil {
		if os.IsNotExist(err) {
			return nil, "", fmt.Errorf("schema file not found: %s", absPath)
		}
		return nil, "", fmt.Errorf("failed to read schema file: %w", err)
	}

	schema, err := newCompiler().Compile(absPath)
	if err != nil {
		return nil, "", fmt.Errorf("invalid schema file: %w", err)
	}
	return schema, absPath, nil
}

func newCompiler() *jsonschema.Compiler {
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020
	compiler.AssertFormat = true
	return compiler
}

// validateTasks checks what the schema cannot: raw lines must parse, and the
// derived fields must agree with them.
func validateTasks(s *Snapshot, result *ValidationResult) {
	seen := make(map[string]int, len(s.Tasks))
	for i, r := range s.Tasks {
		path := fmt.Sprintf("tasks[%d]", i)

		if first, ok := seen[r.ID]; ok && r.ID != "" {
			result.Warnings = append(result.Warnings, fmt.Sprintf("%s.id: duplicate of tasks[%d]", path, first))
		} else {
			seen[r.ID] = i
		}

		task, err := todotxt.NewTask(r.Raw)
		if err != nil {
			result.fail(path+".raw", err)
			continue
		}
		if task.Body() != r.Body {
			result.fail(path+".body", fmt.Errorf("does not match raw line: got %q, want %q", r.Body, task.Body()))
		}
		if task.IsComplete() != r.Complete {
			result.fail(path+".complete", fmt.Errorf("does not match raw line: got %t, want %t", r.Complete, task.IsComplete()))
		}
		if p := task.Priority().String(); p != r.Priority {
			result.fail(path+".priority", fmt.Errorf("does not match raw line: got %q, want %q", r.Priority, p))
		}
	}
}

func appendSchemaErrors(result *ValidationResult, err error) {
	if err == nil {
		return
	}

	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		result.Errors = append(result.Errors, err)
		return
	}

	collectSchemaErrors(result, ve)
}

func collectSchemaErrors(result *ValidationResult, err *jsonschema.ValidationError) {
	if err == nil {
		return
	}

	if len(err.Causes) == 0 {
		result.Errors = append(result.Errors, &ValidationError{
			Path: jsonPointerToPath(err.InstanceLocation),
			Err:  errors.New(err.Message),
		})
		return
	}

	for _, cause := range err.Causes {
		collectSchemaErrors(result, cause)
	}
}

// jsonPointerToPath converts "/tasks/0/id" to "tasks[0].id".
func jsonPointerToPath(ptr string) string {
	ptr = strings.TrimPrefix(ptr, "#")
	ptr = strings.TrimPrefix(ptr, "/")
	if ptr == "" {
		return ""
	}

	var b strings.Builder
	for _, part := range strings.Split(ptr, "/") {
		part = strings.ReplaceAll(part, "~1", "/")
		part = strings.ReplaceAll(part, "~0", "~")
		if part == "" {
			continue
		}
		if idx, err := strconv.Atoi(part); err == nil {
			fmt.Fprintf(&b, "[%d]", idx)
			continue
		}
		if b.Len() > 0 {
			b.WriteByte('.')
		}
		b.WriteString(part)
	}
	return b.String()
}
