package clipboard

import (
	"errors"
	"testing"
)

func TestMemory(t *testing.T) {
	var m Memory
	if _, err := m.Read(); !errors.Is(err, ErrEmpty) {
		t.Fatalf("Read on new clipboard: %v", err)
	}
	// Empty text is still a yank.
	_ = m.Write("")
	if got, err := m.Read(); got != "" || err != nil {
		t.Fatalf("Read = %q, %v", got, err)
	}
	_ = m.Write("a\nb")
	if got, _ := m.Read(); got != "a\nb" {
		t.Fatalf("Read = %q", got)
	}
}

func TestNewWithoutSystem(t *testing.T) {
	if _, ok := New(false).(*Memory); !ok {
		t.Fatalf("New(false) is not a memory clipboard")
	}
}
