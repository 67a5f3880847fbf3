package intersection

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/ReFLEX-Lab-York/trafficMISBP/pkg/errors"
	"github.com/ReFLEX-Lab-York/trafficMISBP/pkg/lane"
)

// Supported file formats.
const (
	FormatTOML = "toml"
	FormatJSON = "json"
)

// Definition describes one intersection.
type Definition struct {
	Name   string       `json:"name" toml:"name"`
	Lanes  int          `json:"lanes" toml:"lanes"`
	Solver Solver       `json:"solver,omitzero" toml:"solver,omitempty"`
	Routes []lane.Route `json:"routes" toml:"routes"`
}

// Solver holds optional independent-set settings. Zero values mean the
// pipeline defaults.
type Solver struct {
	Strategy      string `json:"strategy,omitempty" toml:"strategy,omitempty"`
	MaxExactNodes int    `json:"max_exact_nodes,omitempty" toml:"max_exact_nodes,omitempty"`
}

// Validate checks the lane count, name and routes.
func (d *Definition) Validate() error {
	if err := errors.ValidateName(d.Name); err != nil {
		return err
	}
	if err := errors.ValidateLaneCount(d.Lanes); err != nil {
		return err
	}
	return errors.ValidateRoutes(d.Routes)
}

// FormatFromPath returns the format implied by the file extension.
func FormatFromPath(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML, nil
	case ".json":
		return FormatJSON, nil
	}
	return "", errors.New(errors.ErrCodeInvalidFormat,
		"unsupported intersection file %q (want .toml or .json)", filepath.Base(path))
}

// Read decodes a definition in the given format from r.
func Read(r io.Reader, format string) (*Definition, error) {
	var d Definition
	switch format {
	case FormatTOML:
		md, err := toml.NewDecoder(r).Decode(&d)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode toml")
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			keys := make([]string, len(undecoded))
			for i, k := range undecoded {
				keys[i] = k.String()
			}
			return nil, errors.New(errors.ErrCodeInvalidInput, "unknown keys: %s", strings.Join(keys, ", "))
		}
	case FormatJSON:
		dec := json.NewDecoder(r)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&d); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode json")
		}
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unknown format %q", format)
	}
	return &d, nil
}

// ReadFile reads the definition at path. When the file does not name the
// intersection, the file's base name is used.
func ReadFile(path string) (*Definition, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
		}
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	d, err := Read(f, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if d.Name == "" {
		d.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return d, nil
}

// Write encodes d in the given format.
func Write(w io.Writer, d *Definition, format string) error {
	switch format {
	case FormatTOML:
		return toml.NewEncoder(w).Encode(d)
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(d)
	}
	return errors.New(errors.ErrCodeInvalidFormat, "unknown format %q", format)
}

// WriteFile writes d to path in the format implied by its extension.
func WriteFile(path string, d *Definition) error {
	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := Write(&buf, d, format); err != nil {
		return err
	}
	return os.WriteFile(path, buf.Bytes(), 0o644)
}

// Glob expands the patterns into the intersection files they match, in
// lexical order without duplicates. Directories are searched for .toml and
// .json files (non-recursively).
func Glob(patterns ...string) ([]string, error) {
	var out []string
	for _, p := range patterns {
		if info, err := os.Stat(p); err == nil && info.IsDir() {
			entries, err := os.ReadDir(p)
			if err != nil {
				return nil, err
			}
			for _, e := range entries {
				if _, err := FormatFromPath(e.Name()); err == nil && !e.IsDir() {
					out = append(out, filepath.Join(p, e.Name()))
				}
			}
			continue
		}
		matches, err := filepath.Glob(p)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "pattern %q", p)
		}
		if len(matches) == 0 {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, fs.ErrNotExist, "no files match %q", p)
		}
		out = append(out, matches...)
	}
	slices.Sort(out)
	return slices.Compact(out), nil
}
