package intersection

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ReFLEX-Lab-York/trafficMISBP/pkg/errors"
	"github.com/ReFLEX-Lab-York/trafficMISBP/pkg/lane"
)

func TestReadFileTOML(t *testing.T) {
	d, err := ReadFile(filepath.Join("testdata", "four-way.toml"))
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	want := &Definition{
		Name:   "four-way",
		Lanes:  8,
		Solver: Solver{Strategy: "exact"},
		Routes: []lane.Route{{Entrance: 0, Exit: 5}, {Entrance: 2, Exit: 7}, {Entrance: 4, Exit: 1}, {Entrance: 6, Exit: 3}},
	}
	if diff := cmp.Diff(want, d); diff != "" {
		t.Errorf("definition mismatch (-want +got):\n%s", diff)
	}
	if err := d.Validate(); err != nil {
		t.Errorf("Validate: %v", err)
	}
}

func TestReadFileJSONDefaultsName(t *testing.T) {
	d, err := ReadFile(filepath.Join("testdata", "tee.json"))
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if d.Name != "tee" {
		t.Errorf("Name = %q, want file base name %q", d.Name, "tee")
	}
	if d.Lanes != 6 || len(d.Routes) != 3 {
		t.Errorf("got %d lanes, %d routes", d.Lanes, len(d.Routes))
	}
	if d.Solver != (Solver{}) {
		t.Errorf("Solver = %+v, want zero", d.Solver)
	}
}

func TestReadFileErrors(t *testing.T) {
	tests := []struct {
		name string
		path string
		code errors.Code
	}{
		{"missing", filepath.Join("testdata", "nope.toml"), errors.ErrCodeFileNotFound},
		{"extension", filepath.Join("testdata", "four-way.yaml"), errors.ErrCodeInvalidFormat},
		{"unknown key", filepath.Join("testdata", "typo.toml"), errors.ErrCodeInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadFile(tt.path)
			if !errors.Is(err, tt.code) {
				t.Errorf("ReadFile(%s) error = %v, want code %s", tt.path, err, tt.code)
			}
		})
	}
}

func TestReadUnknownJSONField(t *testing.T) {
	_, err := Read(strings.NewReader(`{"lanes":4,"routes":[],"colour":"red"}`), FormatJSON)
	if !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("error = %v, want INVALID_INPUT", err)
	}
}

func TestWriteRoundTrip(t *testing.T) {
	d := &Definition{
		Name:   "roundabout",
		Lanes:  5,
		Solver: Solver{Strategy: "greedy", MaxExactNodes: 10},
		Routes: []lane.Route{{Entrance: 0, Exit: 2}, {Entrance: 3, Exit: 1}},
	}
	for _, format := range []string{FormatTOML, FormatJSON} {
		t.Run(format, func(t *testing.T) {
			var buf bytes.Buffer
			if err := Write(&buf, d, format); err != nil {
				t.Fatalf("Write: %v", err)
			}
			got, err := Read(&buf, format)
			if err != nil {
				t.Fatalf("Read: %v", err)
			}
			if diff := cmp.Diff(d, got); diff != "" {
				t.Errorf("round trip mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "x.toml")
	d := &Definition{Name: "x", Lanes: 4, Routes: []lane.Route{{Entrance: 0, Exit: 2}}}
	if err := WriteFile(path, d); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	got, err := ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if diff := cmp.Diff(d, got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
	if err := WriteFile(filepath.Join(t.TempDir(), "x.txt"), d); !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("WriteFile(.txt) error = %v, want INVALID_FORMAT", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		def  Definition
		code errors.Code
	}{
		{"ok", Definition{Lanes: 4, Routes: []lane.Route{{Entrance: 0, Exit: 1}}}, ""},
		{"off-ring allowed", Definition{Lanes: 4, Routes: []lane.Route{{Entrance: 0, Exit: 9}}}, ""},
		{"zero lanes", Definition{Routes: []lane.Route{{Entrance: 0, Exit: 1}}}, errors.ErrCodeInvalidLaneCount},
		{"no routes", Definition{Lanes: 4}, errors.ErrCodeInvalidRoute},
		{"degenerate", Definition{Lanes: 4, Routes: []lane.Route{{Entrance: 2, Exit: 2}}}, errors.ErrCodeDegenerateRoute},
		{"bad name", Definition{Name: "a\x00b", Lanes: 4, Routes: []lane.Route{{Entrance: 0, Exit: 1}}}, errors.ErrCodeInvalidName},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.def.Validate()
			if got := errors.GetCode(err); got != tt.code {
				t.Errorf("Validate() code = %q, want %q (err %v)", got, tt.code, err)
			}
		})
	}
}

func TestGlob(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"b.toml", "a.json", "notes.txt"} {
		if err := os.WriteFile(filepath.Join(dir, name), nil, 0o644); err != nil {
			t.Fatal(err)
		}
	}

	got, err := Glob(dir, filepath.Join(dir, "*.toml"))
	if err != nil {
		t.Fatalf("Glob: %v", err)
	}
	want := []string{filepath.Join(dir, "a.json"), filepath.Join(dir, "b.toml")}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Glob mismatch (-want +got):\n%s", diff)
	}

	if _, err := Glob(filepath.Join(dir, "*.yaml")); !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("Glob with no matches error = %v, want FILE_NOT_FOUND", err)
	}
}
