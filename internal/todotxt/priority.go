package todotxt

import "fmt"

// Priority is a task priority from A (highest) to Z (lowest). The zero value
// means no priority.
type Priority byte

const (
	NoPriority      Priority = 0
	HighestPriority Priority = 'A'
	LowestPriority  Priority = 'Z'
)

// ParsePriority parses exactly one uppercase ASCII letter.
func ParsePriority(s string) (Priority, error) {
	if len(s) != 1 || s[0] < 'A' || s[0] > 'Z' {
		return NoPriority, fmt.Errorf("%w: %q", ErrInvalidPriority, s)
	}
	return Priority(s[0]), nil
}

// Valid reports whether p is a letter A-Z.
func (p Priority) Valid() bool {
	return p >= HighestPriority && p <= LowestPriority
}

func (p Priority) String() string {
	if !p.Valid() {
		return ""
	}
	return string(rune(p))
}

// rank is the 0-based position of p in A..Z.
func (p Priority) rank() int {
	return int(p - HighestPriority)
}

// Raise moves p step letters toward A, stopping at A. An unset priority and
// a non-positive step leave p unchanged.
func (p Priority) Raise(step int) Priority {
	return p.shift(-step, step)
}

// Lower moves p step letters toward Z, stopping at Z. An unset priority and
// a non-positive step leave p unchanged.
func (p Priority) Lower(step int) Priority {
	return p.shift(step, step)
}

func (p Priority) shift(delta, step int) Priority {
	if !p.Valid() || step <= 0 {
		return p
	}
	r := p.rank() + delta
	last := LowestPriority.rank()
	switch {
	case r < 0:
		r = 0
	case r > last:
		r = last
	}
	return HighestPriority + Priority(r)
}
