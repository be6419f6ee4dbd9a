package handlers

import (
	"testing"
	"time"

	"gorm.io/datatypes"
)

func TestParseDate(t *testing.T) {
	empty := ""
	plain := "2024-03-15"
	rfc := "2024-03-15T00:00:00Z"
	bad := "15/03/2024"

	tests := []struct {
		name    string
		input   *string
		want    string
		wantNil bool
		wantErr bool
	}{
		{name: "nil input", input: nil, wantNil: true},
		{name: "empty string", input: &empty, wantNil: true},
		{name: "plain date", input: &plain, want: "2024-03-15"},
		{name: "rfc3339 tolerated", input: &rfc, want: "2024-03-15"},
		{name: "wrong format", input: &bad, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseDate(tt.input)

			if tt.wantErr {
				if err == nil {
					t.Fatal("expected an error")
				}
				return
			}

			if err != nil {
				t.Fatalf("parseDate failed: %v", err)
			}

			if tt.wantNil {
				if got != nil {
					t.Errorf("expected nil, got %v", got)
				}
				return
			}

			if formatted := formatDate(got); formatted == nil || *formatted != tt.want {
				t.Errorf("got %v, want %q", formatted, tt.want)
			}
		})
	}
}

func TestFormatDateNil(t *testing.T) {
	if got := formatDate(nil); got != nil {
		t.Errorf("expected nil, got %v", got)
	}
}

func TestFormatDate(t *testing.T) {
	d := datatypes.Date(time.Date(2024, time.December, 31, 0, 0, 0, 0, time.UTC))

	if got := formatDate(&d); got == nil || *got != "2024-12-31" {
		t.Errorf("got %v, want 2024-12-31", got)
	}
}
