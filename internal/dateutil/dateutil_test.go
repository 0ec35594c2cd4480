package dateutil

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func TestParseFormat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		format  string
		want    string
		wantErr bool
	}{
		{name: "ISO date", format: "YYYY-MM-DD", want: "2006-01-02"},
		{name: "long month", format: "MMMM D, YYYY", want: "January 2, 2006"},
		{name: "short year", format: "DD/MM/YY", want: "02/01/06"},
		{name: "literals pass through", format: "YYYY (generated)", want: "2006 (generated)"},
		{name: "empty format", format: "", wantErr: true},
		{name: "over length limit", format: strings.Repeat("Y", MaxFormatLength+1), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := ParseFormat(tt.format)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidDateFormat) {
					t.Fatalf("ParseFormat() error = %v, want ErrInvalidDateFormat", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseFormat() unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("ParseFormat(%q) = %q, want %q", tt.format, got, tt.want)
			}
		})
	}
}

func TestResolve(t *testing.T) {
	t.Parallel()

	fixed := time.Date(2025, 11, 30, 9, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		value   string
		want    string
		wantErr bool
	}{
		{name: "literal passthrough", value: "2024-01-01", want: "2024-01-01"},
		{name: "empty passthrough", value: "", want: ""},
		{name: "auto default format", value: "auto", want: "2025-11-30"},
		{name: "auto case insensitive", value: "AUTO", want: "2025-11-30"},
		{name: "auto with format", value: "auto:MMMM D, YYYY", want: "November 30, 2025"},
		{name: "auto with bad separator", value: "auto-YYYY", wantErr: true},
		{name: "auto with empty format", value: "auto:", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := Resolve(tt.value, fixed)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidDateFormat) {
					t.Fatalf("Resolve() error = %v, want ErrInvalidDateFormat", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Resolve() unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("Resolve(%q) = %q, want %q", tt.value, got, tt.want)
			}
		})
	}
}
