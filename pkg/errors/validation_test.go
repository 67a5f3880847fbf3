package errors

import (
	"strings"
	"testing"

	"github.com/ReFLEX-Lab-York/trafficMISBP/pkg/lane"
)

func TestValidateLaneCount(t *testing.T) {
	tests := []struct {
		input   int
		wantErr bool
	}{
		{1, false},
		{4, false},
		{MaxLanes, false},
		{0, true},
		{-3, true},
		{MaxLanes + 1, true},
	}

	for _, tt := range tests {
		err := ValidateLaneCount(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateLaneCount(%d) error = %v, wantErr %v", tt.input, err, tt.wantErr)
		}
		if err != nil && !Is(err, ErrCodeInvalidLaneCount) {
			t.Errorf("ValidateLaneCount(%d) returned wrong error code: %v", tt.input, err)
		}
	}
}

func TestValidateRoutes(t *testing.T) {
	tests := []struct {
		name     string
		routes   []lane.Route
		wantCode Code
	}{
		{"valid", []lane.Route{{Entrance: 0, Exit: 2}, {Entrance: 1, Exit: 3}}, ""},
		{"off ring is not an error", []lane.Route{{Entrance: 0, Exit: 99}}, ""},
		{"empty", nil, ErrCodeInvalidRoute},
		{"degenerate", []lane.Route{{Entrance: 0, Exit: 2}, {Entrance: 3, Exit: 3}}, ErrCodeDegenerateRoute},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateRoutes(tt.routes)
			if got := GetCode(err); got != tt.wantCode {
				t.Errorf("ValidateRoutes() code = %q, want %q (err: %v)", got, tt.wantCode, err)
			}
		})
	}
}

func TestValidateName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"empty", "", false},
		{"simple", "Main St & 3rd Ave", false},
		{"unicode", "Kreuzung Süd", false},
		{"too long", strings.Repeat("a", 300), true},
		{"newline", "north\nsouth", true},
		{"null byte", "x\x00y", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateName(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateName(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestErrorCodesAreUnique(t *testing.T) {
	codes := []Code{
		ErrCodeInvalidInput,
		ErrCodeInvalidLaneCount,
		ErrCodeInvalidRoute,
		ErrCodeDegenerateRoute,
		ErrCodeInvalidStrategy,
		ErrCodeInvalidFormat,
		ErrCodeInvalidName,
		ErrCodeNotFound,
		ErrCodeFileNotFound,
		ErrCodeSolver,
		ErrCodeInternal,
		ErrCodeUnsupported,
	}

	seen := make(map[Code]bool)
	for _, code := range codes {
		if seen[code] {
			t.Errorf("Duplicate error code: %s", code)
		}
		seen[code] = true
	}
}
