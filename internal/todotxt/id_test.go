package todotxt

import "testing"

func TestNewID(t *testing.T) {
	a := NewID("hello")
	if a != NewID("hello") {
		t.Error("NewID is not deterministic")
	}
	if len(a) != 2*idLength {
		t.Errorf("len(ID) = %d, want %d", len(a), 2*idLength)
	}
	if a == NewID("hello ") {
		t.Error("different inputs produced the same ID")
	}
	if a.Short() != string(a)[:8] {
		t.Errorf("Short() = %q", a.Short())
	}
}

func TestNewIDNormalizes(t *testing.T) {
	composed := "caf\u00e9"
	decomposed := "cafe\u0301"
	if NewID(composed) != NewID(decomposed) {
		t.Error("NFC-equivalent strings produced different IDs")
	}
}
