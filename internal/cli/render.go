package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ReFLEX-Lab-York/trafficMISBP/pkg/pipeline"
	"github.com/ReFLEX-Lab-York/trafficMISBP/pkg/render/nodelink"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output    string   // output file path (or base path for multiple outputs)
	formats   []string // output formats: "svg", "dot", "pdf", "png"
	highlight int      // lane whose group is emphasised, -1 for none
	scale     float64  // PNG scale factor
	refresh   bool     // recompute instead of reading the cache
}

// renderCommand creates the render command for drawing conflict graphs.
func (c *CLI) renderCommand() *cobra.Command {
	var cf cacheFlags
	var sf solverFlags
	var formatsStr string
	opts := renderOpts{highlight: nodelink.NoHighlight, scale: pipeline.DefaultScale}

	cmd := &cobra.Command{
		Use:   "render [file]",
		Short: "Draw the conflict graph of an intersection",
		Long: `Render draws the conflict graph as a node-link diagram: one node per
lane with a route, one edge per conflicting pair. With --highlight the
compatibility group of that lane is colored and its conflicts are marked.

SVG output is produced in-process. PDF and PNG conversion needs rsvg-convert.`,
		Example: `  trafficmis render crossroads.toml
  trafficmis render crossroads.toml --highlight 2 -f svg,png -o out/crossroads`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.formats = parseFormats(formatsStr)
			if err := validateFormats(opts.formats); err != nil {
				return err
			}
			return c.runRender(cmd.Context(), args[0], cf, sf, &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), dot, pdf, png (comma-separated)")
	cmd.Flags().IntVar(&opts.highlight, "highlight", opts.highlight, "lane whose compatibility group is highlighted")
	cmd.Flags().Float64Var(&opts.scale, "scale", opts.scale, "PNG scale factor")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "ignore cached results")
	cf.register(cmd)
	sf.register(cmd)

	return cmd
}

// parseFormats parses the --format flag into a slice of output formats.
// If empty, defaults to ["svg"].
func parseFormats(s string) []string {
	if s == "" {
		return []string{pipeline.FormatSVG}
	}
	out := strings.Split(s, ",")
	for i := range out {
		out[i] = strings.TrimSpace(out[i])
	}
	return out
}

// validateFormats checks that all requested formats are drawable.
func validateFormats(formats []string) error {
	for _, f := range formats {
		if f == pipeline.FormatJSON {
			return fmt.Errorf("invalid format: json (use 'analyze --format json')")
		}
		if err := pipeline.ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// basePath derives the base output path from the output and input file paths.
// If output is empty, it strips the extension from input.
// If output has a format extension (.svg, .pdf, etc.), it strips that extension.
func basePath(output, input string) string {
	if output == "" {
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := filepath.Ext(output)
	if pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] {
		return strings.TrimSuffix(output, ext)
	}
	return output
}

// outputPath names the file for one format. A single-format run with an
// explicit output writes exactly there.
func outputPath(opts *renderOpts, input, format string) string {
	if len(opts.formats) == 1 && opts.output != "" {
		return opts.output
	}
	return basePath(opts.output, input) + "." + format
}

func (c *CLI) runRender(ctx context.Context, input string, cf cacheFlags, sf solverFlags, opts *renderOpts) error {
	po, err := c.loadOptions(input, sf)
	if err != nil {
		return err
	}
	po.Refresh = opts.refresh

	runner, err := c.newRunner(ctx, cf)
	if err != nil {
		return err
	}
	defer runner.Close()

	stop := c.trackStages(ctx, "Analyzing "+po.Name)
	res, err := runner.Execute(ctx, po)
	stop()
	if err != nil {
		return err
	}
	c.Logger.Infof("Loaded conflict graph: %d nodes, %d edges", res.Stats.Nodes, res.Stats.Edges)

	for _, format := range opts.formats {
		spinner := newSpinner(ctx, c.errOut, fmt.Sprintf("Rendering %s...", format))
		spinner.Start()
		data, cached, err := runner.Render(ctx, res, pipeline.RenderOptions{
			Format:    format,
			Highlight: opts.highlight,
			Scale:     opts.scale,
		})
		spinner.Stop()
		if err != nil {
			return fmt.Errorf("%s: %w", format, err)
		}
		c.Logger.Debugf("Generated %s: %d bytes (cached=%t)", format, len(data), cached)

		path := outputPath(opts, input, format)
		if err := writeFile(path, data); err != nil {
			return err
		}
		printFile(path)
	}
	return nil
}

func writeFile(path string, data []byte) error {
	out, err := openOutput(path)
	if err != nil {
		return err
	}
	defer out.Close()
	_, err = out.Write(data)
	return err
}

// openOutput creates path, including missing parent directories. An empty
// path writes to stdout.
func openOutput(path string) (io.WriteCloser, error) {
	if path == "" {
		return nopCloser{os.Stdout}, nil
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}
	return os.Create(path)
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }
