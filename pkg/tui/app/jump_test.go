package app

import (
	"errors"
	"testing"
)

func TestParseJump(t *testing.T) {
	tests := []struct {
		in        string
		wantMonth int
		wantYear  int
		wantErr   bool
	}{
		{in: "10 2025", wantMonth: 9, wantYear: 2025},
		{in: "2025-10", wantMonth: 9, wantYear: 2025},
		{in: "1/2026", wantMonth: 0, wantYear: 2026},
		{in: "October 2025", wantMonth: 9, wantYear: 2025},
		{in: "feb", wantMonth: 1, wantYear: 2030},
		{in: " 12 ", wantMonth: 11, wantYear: 2030},
		{in: "", wantErr: true},
		{in: "13 2025", wantErr: true},
		{in: "0", wantErr: true},
		{in: "oc", wantErr: true},
		{in: "10 twenty", wantErr: true},
		{in: "1 2 3", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			month, year, err := ParseJump(tt.in, 2030)
			if tt.wantErr {
				if !errors.Is(err, ErrBadJump) {
					t.Fatalf("expected ErrBadJump, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if month != tt.wantMonth || year != tt.wantYear {
				t.Fatalf("got %d/%d, want %d/%d", month, year, tt.wantMonth, tt.wantYear)
			}
		})
	}
}
