package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/ReFLEX-Lab-York/trafficMISBP/pkg/errors"
	"github.com/ReFLEX-Lab-York/trafficMISBP/pkg/pipeline"
	"github.com/ReFLEX-Lab-York/trafficMISBP/pkg/report"
)

// Output formats of the analyze command.
const (
	outputTable = "table"
	outputText  = "text"
	outputJSON  = "json"
)

// analyzeCommand creates the analyze command, which computes the conflict
// graph and compatibility groups of one intersection.
func (c *CLI) analyzeCommand() *cobra.Command {
	var cf cacheFlags
	var sf solverFlags
	var format, output string
	var refresh bool

	cmd := &cobra.Command{
		Use:   "analyze [file]",
		Short: "Compute route conflicts and compatibility groups",
		Long: `Analyze reads an intersection definition (TOML or JSON), builds the
conflict matrix from its routes, resolves every route's conflicts, and
prints one compatibility group per lane.

Results are cached by content; use --refresh to recompute.`,
		Example: `  trafficmis analyze crossroads.toml
  trafficmis analyze crossroads.toml --format json -o crossroads.result.json
  trafficmis analyze crossroads.toml --strategy greedy`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateOutput(format); err != nil {
				return err
			}
			opts, err := c.loadOptions(args[0], sf)
			if err != nil {
				return err
			}
			opts.Refresh = refresh

			runner, err := c.newRunner(cmd.Context(), cf)
			if err != nil {
				return err
			}
			defer runner.Close()

			prog := newProgress(c.Logger)
			stop := c.trackStages(cmd.Context(), "Analyzing "+opts.Name)
			res, err := runner.Execute(cmd.Context(), opts)
			stop()
			if err != nil {
				return err
			}
			prog.done(fmt.Sprintf("Analyzed %s", res.Name))

			if output != "" {
				if err := writeResultFile(output, format, res); err != nil {
					return err
				}
				printSuccess("Analyzed %s", res.Name)
				printStats(res.Stats, res.CacheHit)
				printFile(output)
				return nil
			}
			return writeResult(cmd.OutOrStdout(), format, res)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", outputTable, "output format: table, text, json")
	cmd.Flags().StringVarP(&output, "output", "o", "", "write the result to a file instead of stdout")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "ignore cached results")
	cf.register(cmd)
	sf.register(cmd)

	return cmd
}

func validateOutput(format string) error {
	switch format {
	case outputTable, outputText, outputJSON:
		return nil
	}
	return errors.New(errors.ErrCodeInvalidFormat,
		"invalid format: %q (must be one of: table, text, json)", format)
}

// writeResult prints res in the given output format.
func writeResult(w io.Writer, format string, res *pipeline.Result) error {
	switch format {
	case outputJSON:
		return report.Write(w, res)
	case outputText:
		return report.WriteText(w, res)
	}
	for _, d := range res.Diagnostics {
		printWarning("%s", d)
	}
	fmt.Fprintln(w, groupTable(res))
	printStats(res.Stats, res.CacheHit)
	return nil
}

// writeResultFile writes res to path. Tables are not written to files; the
// plain-text summary is used instead.
func writeResultFile(path, format string, res *pipeline.Result) error {
	if format == outputJSON {
		return report.WriteFile(path, res)
	}
	out, err := openOutput(path)
	if err != nil {
		return err
	}
	defer out.Close()
	return report.WriteText(out, res)
}
