// Package report serializes analysis results.
//
// The JSON form is the wire format shared by the CLI (--format json) and the
// HTTP API. The text form is a compact summary for terminals and logs:
//
//	four-way: 8 lanes, 4 routes, 4 conflict edges (strategy exact)
//	conflicts
//	  0->5  2->7 4->1 6->3
//	  ...
//	groups
//	  0     [4]
//	  2     [6]
//	  ...
package report

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/ReFLEX-Lab-York/trafficMISBP/pkg/errors"
	"github.com/ReFLEX-Lab-York/trafficMISBP/pkg/lane"
	"github.com/ReFLEX-Lab-York/trafficMISBP/pkg/pipeline"
)

// Marshal encodes res as indented JSON.
func Marshal(res *pipeline.Result) ([]byte, error) {
	var buf bytes.Buffer
	if err := Write(&buf, res); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Write encodes res as indented JSON to w.
func Write(w io.Writer, res *pipeline.Result) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(res)
}

// WriteFile writes res as JSON to path.
func WriteFile(path string, res *pipeline.Result) error {
	data, err := Marshal(res)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// Read decodes a JSON report.
func Read(r io.Reader) (*pipeline.Result, error) {
	var res pipeline.Result
	if err := json.NewDecoder(r).Decode(&res); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode report")
	}
	return &res, nil
}

// WriteText writes a plain-text summary of res.
func WriteText(w io.Writer, res *pipeline.Result) error {
	name := res.Name
	if name == "" {
		name = "intersection"
	}
	fmt.Fprintf(w, "%s: %d lanes, %d routes, %d conflict edges (strategy %s)\n",
		name, res.Lanes, res.Stats.Routes, res.Stats.Edges, res.Strategy)

	for _, d := range res.Diagnostics {
		fmt.Fprintf(w, "warning: %s\n", d)
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "conflicts")
	for _, e := range res.Conflicts {
		fmt.Fprintf(tw, "  %s\t%s\n", e.Route, joinRoutes(e.Route, e.Conflicts))
	}
	fmt.Fprintln(tw, "groups")
	for _, g := range res.Groups {
		suffix := ""
		if g.Fallback {
			suffix = "\t(no compatible lanes)"
		}
		fmt.Fprintf(tw, "  %d\t%v%s\n", g.Lane, g.Members, suffix)
	}
	return tw.Flush()
}

// joinRoutes lists the conflicting pairs other than the route itself.
func joinRoutes(self lane.Route, pairs []lane.Route) string {
	parts := make([]string, 0, len(pairs))
	for _, p := range pairs {
		if p != self {
			parts = append(parts, p.String())
		}
	}
	if len(parts) == 0 {
		return "-"
	}
	return strings.Join(parts, " ")
}

// Text returns the plain-text summary as a string.
func Text(res *pipeline.Result) string {
	var b strings.Builder
	_ = WriteText(&b, res)
	return b.String()
}
