package cli

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParseFormats(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"empty defaults to svg", "", []string{"svg"}},
		{"single format", "dot", []string{"dot"}},
		{"multiple formats", "svg,pdf,png", []string{"svg", "pdf", "png"}},
		{"spaces trimmed", "svg, dot", []string{"svg", "dot"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, parseFormats(tt.input)); diff != "" {
				t.Errorf("parseFormats(%q) mismatch (-want +got):\n%s", tt.input, diff)
			}
		})
	}
}

func TestValidateFormats(t *testing.T) {
	tests := []struct {
		name    string
		formats []string
		wantErr bool
	}{
		{"valid svg", []string{"svg"}, false},
		{"valid dot", []string{"dot"}, false},
		{"valid multiple", []string{"svg", "pdf", "png"}, false},
		{"json is not drawable", []string{"json"}, true},
		{"invalid format", []string{"invalid"}, true},
		{"mixed valid invalid", []string{"svg", "invalid"}, true},
		{"empty slice", []string{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateFormats(tt.formats)
			if (err != nil) != tt.wantErr {
				t.Errorf("validateFormats(%v) error = %v, wantErr %v", tt.formats, err, tt.wantErr)
			}
		})
	}
}

func TestBasePath(t *testing.T) {
	tests := []struct {
		output, input, want string
	}{
		{"", "city/four-way.toml", "city/four-way"},
		{"out/graph.svg", "four-way.toml", "out/graph"},
		{"out/graph", "four-way.toml", "out/graph"},
		{"out/graph.v2", "four-way.toml", "out/graph.v2"},
	}
	for _, tt := range tests {
		if got := basePath(tt.output, tt.input); got != tt.want {
			t.Errorf("basePath(%q, %q) = %q, want %q", tt.output, tt.input, got, tt.want)
		}
	}
}

func TestOutputPath(t *testing.T) {
	single := &renderOpts{output: "graph.svg", formats: []string{"svg"}}
	if got := outputPath(single, "in.toml", "svg"); got != "graph.svg" {
		t.Errorf("single format output = %q", got)
	}

	multi := &renderOpts{output: "out/graph.svg", formats: []string{"svg", "dot"}}
	if got := outputPath(multi, "in.toml", "dot"); got != "out/graph.dot" {
		t.Errorf("multi format output = %q", got)
	}

	derived := &renderOpts{formats: []string{"dot"}}
	if got := outputPath(derived, "city/in.toml", "dot"); got != "city/in.dot" {
		t.Errorf("derived output = %q", got)
	}
}
