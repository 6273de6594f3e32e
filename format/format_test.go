package format

import (
	"errors"
	"testing"
)

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in   string
		want Format
		err  bool
	}{
		{"binary", BinaryFormat, false},
		{"b", BinaryFormat, false},
		{"yaml", YAMLFormat, false},
		{"y", YAMLFormat, false},
		{"tony", 0, true},
		{"", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFormat(tt.in)
			if tt.err {
				if !errors.Is(err, ErrBadFormat) {
					t.Fatalf("expected ErrBadFormat, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if got != tt.want {
				t.Errorf("got %s want %s", got, tt.want)
			}
		})
	}
}

func TestFormatValid(t *testing.T) {
	for _, f := range AllFormats() {
		if !f.Valid() {
			t.Errorf("%d not valid", f)
		}
	}
	if Format(42).Valid() {
		t.Errorf("42 should not be valid")
	}
}
