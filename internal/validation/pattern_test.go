package validation

import "testing"

func TestParsePattern(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		wantErr bool
	}{
		{"anchored prefix", "^A", false},
		{"literal", "7b1d6", false},
		{"match all", ".*", false},
		{"unclosed group", "(abc", true},
		{"bad repetition", "*abc", true},
		{"empty", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParsePattern(tt.raw)
			if (err != nil) != tt.wantErr {
				t.Errorf("ParsePattern(%q) error = %v, wantErr %v", tt.raw, err, tt.wantErr)
			}
		})
	}
}

func TestParsePatternsFailsOnFirstInvalid(t *testing.T) {
	_, err := ParsePatterns([]string{"^A", "(bad"})
	if err == nil {
		t.Fatal("expected error for invalid pattern in set")
	}
}

func TestPatternMatches(t *testing.T) {
	p, err := ParsePattern("^A")
	if err != nil {
		t.Fatalf("ParsePattern failed: %v", err)
	}

	if !p.Matches("A1B2") {
		t.Error("expected ^A to match A1B2")
	}
	if p.Matches("B2A1") {
		t.Error("expected ^A not to match B2A1")
	}

	var zero Pattern
	if zero.Matches("anything") {
		t.Error("zero pattern should match nothing")
	}
}
