package document

import (
	"reflect"
	"testing"
)

func TestParseDirective(t *testing.T) {
	tests := []struct {
		in       string
		ok       bool
		excludes []string
	}{
		{"# log", true, nil},
		{"  # log -e append -e delete ", true, []string{"append", "delete"}},
		{"# log -e", true, nil},
		{"# logging", false, nil},
		{"<?xml version=\"1.0\"?>", false, nil},
		{"", false, nil},
	}
	for _, tt := range tests {
		d, ok := ParseDirective(tt.in)
		if ok != tt.ok || !reflect.DeepEqual(d.Excludes, tt.excludes) {
			t.Errorf("ParseDirective(%q) = %v, %v; want %v, %v", tt.in, d.Excludes, ok, tt.excludes, tt.ok)
		}
	}
	if got, want := (Directive{Excludes: []string{"append"}}).String(), "# log -e append"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}
