package config

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/dlclark/regexp2"
)

// percentVar matches a Windows-style %NAME% reference.
var percentVar = regexp2.MustCompile(`%([^%]+)%`, regexp2.None)

// resolvePath expands p and makes it absolute against root.
func resolvePath(root, p string) string {
	p = expandPath(p)
	if !filepath.IsAbs(p) {
		p = filepath.Join(root, p)
	}
	return p
}

// expandPath expands $VAR references (and %VAR% on Windows), then a leading
// ~ naming the current user's home directory. "~name" is left alone.
func expandPath(p string) string {
	if p == "" {
		return p
	}
	p = os.ExpandEnv(p)
	if runtime.GOOS == "windows" {
		p = expandPercentVars(p)
	}

	rest, ok := strings.CutPrefix(p, "~")
	if !ok || (rest != "" && !isPathSeparator(rest[0])) {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return p
	}
	return filepath.Join(home, rest)
}

// expandPercentVars replaces %NAME% with the value of NAME. Unset names are
// kept as written.
func expandPercentVars(p string) string {
	if !strings.Contains(p, "%") {
		return p
	}
	out, err := percentVar.ReplaceFunc(p, func(m regexp2.Match) string {
		if v, ok := os.LookupEnv(m.GroupByNumber(1).String()); ok {
			return v
		}
		return m.String()
	}, -1, -1)
	if err != nil {
		return p
	}
	return out
}

func isPathSeparator(c byte) bool {
	return c == '/' || (runtime.GOOS == "windows" && c == '\\')
}
