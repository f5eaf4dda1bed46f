package todotxt

import (
	"strings"
	"time"
	"unicode"

	"github.com/dlclark/regexp2"
)

// DateLayout is the todo.txt calendar date format.
const DateLayout = "2006-01-02"

// Prefix patterns are anchored at the start of the remaining text and must be
// applied in this order: completion, priority, creation date.
var (
	completionPattern = regexp2.MustCompile(`^[xX] ([0-9]{4}-[0-9]{2}-[0-9]{2}) `, regexp2.None)
	priorityPattern   = regexp2.MustCompile(`^\(([A-Z])\) `, regexp2.None)
	creationPattern   = regexp2.MustCompile(`^([0-9]{4}-[0-9]{2}-[0-9]{2}) `, regexp2.None)
)

// Token patterns. A token must start at the beginning of the text or after
// whitespace, and end at whitespace or the end of the text. Project and
// context names end in a letter, digit, or underscore.
var (
	projectPattern  = regexp2.MustCompile(`(?<=^|\s)\+(\S*[\p{L}\p{N}_])(?=\s|$)`, regexp2.None)
	contextPattern  = regexp2.MustCompile(`(?<=^|\s)@(\S*[\p{L}\p{N}_])(?=\s|$)`, regexp2.None)
	metadataPattern = regexp2.MustCompile(`(?<=^|\s)([\p{L}\p{N}_]+):(\S+)(?=\s|$)`, regexp2.None)
)

// dueKey is the metadata key holding a due date.
const dueKey = "due"

// fields is the result of parsing one line.
type fields struct {
	complete       bool
	completionDate *time.Time
	priority       Priority
	creationDate   *time.Time
	body           string
}

// parseLine splits a line into its prefix fields and body.
func parseLine(line string) (fields, error) {
	if strings.TrimSpace(line) == "" {
		return fields{}, ErrEmptyInput
	}

	var f fields
	rest := strings.TrimLeftFunc(line, unicode.IsSpace)

	if m := matchPrefix(completionPattern, rest); m != nil {
		if d, ok := parseDate(m[1]); ok {
			f.complete = true
			f.completionDate = &d
			rest = rest[len(m[0]):]
		}
	}
	if m := matchPrefix(priorityPattern, rest); m != nil {
		f.priority = Priority(m[1][0])
		rest = rest[len(m[0]):]
	}
	if m := matchPrefix(creationPattern, rest); m != nil {
		if d, ok := parseDate(m[1]); ok {
			f.creationDate = &d
			rest = rest[len(m[0]):]
		}
	}

	f.body = strings.TrimSpace(rest)
	if f.body == "" {
		return fields{}, ErrEmptyBody
	}
	return f, nil
}

// matchPrefix returns the full match and its first group, or nil. All prefix
// patterns match ASCII only, so byte lengths equal rune lengths.
func matchPrefix(re *regexp2.Regexp, s string) []string {
	m, err := re.FindStringMatch(s)
	if err != nil || m == nil {
		return nil
	}
	return []string{m.String(), m.GroupByNumber(1).String()}
}

// parseDate parses a YYYY-MM-DD calendar date. Dates with the right shape
// but an impossible day or month are rejected.
func parseDate(s string) (time.Time, bool) {
	d, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, false
	}
	return d, true
}

// today returns the current local calendar date at midnight UTC, matching
// the representation produced by parseDate.
func today() time.Time {
	y, m, d := time.Now().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// scanGroups returns the requested capture groups of every match of re in s.
func scanGroups(re *regexp2.Regexp, s string, groups ...int) [][]string {
	var out [][]string
	m, err := re.FindStringMatch(s)
	for err == nil && m != nil {
		row := make([]string, len(groups))
		for i, g := range groups {
			row[i] = m.GroupByNumber(g).String()
		}
		out = append(out, row)
		m, err = re.FindNextMatch(m)
	}
	return out
}

// scanProjects finds all +project tokens in s.
func scanProjects(s string) []Project {
	var out []Project
	for _, g := range scanGroups(projectPattern, s, 1) {
		if p, err := NewProject(g[0]); err == nil {
			out = append(out, p)
		}
	}
	return out
}

// scanContexts finds all @context tokens in s.
func scanContexts(s string) []Context {
	var out []Context
	for _, g := range scanGroups(contextPattern, s, 1) {
		if c, err := NewContext(g[0]); err == nil {
			out = append(out, c)
		}
	}
	return out
}

// scanMetaData finds all key:value tokens in s.
func scanMetaData(s string) []MetaData {
	var out []MetaData
	for _, g := range scanGroups(metadataPattern, s, 1, 2) {
		if m, err := NewMetaData(g[0], g[1]); err == nil {
			out = append(out, m)
		}
	}
	return out
}
