package cli

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/ReFLEX-Lab-York/trafficMISBP/pkg/errors"
	"github.com/ReFLEX-Lab-York/trafficMISBP/pkg/intersection"
	"github.com/ReFLEX-Lab-York/trafficMISBP/pkg/pipeline"
	"github.com/ReFLEX-Lab-York/trafficMISBP/pkg/report"
)

// batchRow is one line of the batch summary.
type batchRow struct {
	path string
	res  *pipeline.Result
	err  error
}

// batchCommand creates the batch command, which analyzes many intersection
// files concurrently.
func (c *CLI) batchCommand() *cobra.Command {
	var cf cacheFlags
	var sf solverFlags
	var jobs int
	var outDir string

	cmd := &cobra.Command{
		Use:   "batch [files or directories...]",
		Short: "Analyze many intersections concurrently",
		Long: `Batch analyzes every intersection file named by the arguments. Directories
are searched for .toml and .json files; glob patterns are expanded.

A file that fails does not stop the others. The command exits with an
error when at least one file failed.`,
		Example: `  trafficmis batch examples/intersections
  trafficmis batch 'city/*.toml' --jobs 4 -o reports/`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			paths, err := intersection.Glob(args...)
			if err != nil {
				return err
			}

			rows := make([]batchRow, len(paths))
			var opts []pipeline.Options
			var index []int
			for i, p := range paths {
				rows[i].path = p
				o, err := c.loadOptions(p, sf)
				if err != nil {
					rows[i].err = err
					continue
				}
				opts = append(opts, o)
				index = append(index, i)
			}

			runner, err := c.newRunner(cmd.Context(), cf)
			if err != nil {
				return err
			}
			defer runner.Close()

			prog := newProgress(c.Logger)
			stop := c.trackStages(cmd.Context(), fmt.Sprintf("Analyzing %d intersections", len(opts)))
			items, err := runner.ExecuteBatch(cmd.Context(), opts, jobs)
			stop()
			if err != nil {
				return err
			}
			prog.done(fmt.Sprintf("Analyzed %d intersections", len(items)))

			for k, it := range items {
				rows[index[k]].res, rows[index[k]].err = it.Result, it.Err
			}

			if outDir != "" {
				if err := writeBatchReports(outDir, rows); err != nil {
					return err
				}
			}

			fmt.Fprintln(cmd.OutOrStdout(), batchTable(rows))
			return batchError(rows)
		},
	}

	cmd.Flags().IntVarP(&jobs, "jobs", "j", 0, "concurrent analyses (default GOMAXPROCS)")
	cmd.Flags().StringVarP(&outDir, "output", "o", "", "directory for per-file JSON reports")
	cf.register(cmd)
	sf.register(cmd)

	return cmd
}

// writeBatchReports writes <dir>/<base>.result.json for every successful row.
func writeBatchReports(dir string, rows []batchRow) error {
	for _, r := range rows {
		if r.res == nil {
			continue
		}
		base := strings.TrimSuffix(filepath.Base(r.path), filepath.Ext(r.path))
		path := filepath.Join(dir, base+".result.json")
		out, err := openOutput(path)
		if err != nil {
			return err
		}
		err = report.Write(out, r.res)
		out.Close()
		if err != nil {
			return err
		}
		printFile(path)
	}
	return nil
}

// batchTable summarizes a batch, one row per input file.
func batchTable(rows []batchRow) string {
	data := make([][]string, len(rows))
	for i, r := range rows {
		if r.err != nil {
			data[i] = []string{r.path, "—", "—", "—", errors.UserMessage(r.err)}
			continue
		}
		status := iconFresh
		if r.res.CacheHit {
			status = iconCached
		}
		data[i] = []string{
			r.path,
			strconv.Itoa(r.res.Stats.Nodes),
			strconv.Itoa(r.res.Stats.Edges),
			strconv.Itoa(largestGroup(r.res)),
			status,
		}
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("File", "Nodes", "Edges", "Largest group", "Status").
		Rows(data...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if row < len(rows) && rows[row].err != nil {
				return lipgloss.NewStyle().Foreground(colorRed)
			}
			return lipgloss.NewStyle()
		}).
		Render()
}

func largestGroup(res *pipeline.Result) int {
	n := 0
	for _, g := range res.Groups {
		n = max(n, len(g.Members))
	}
	return n
}

func batchError(rows []batchRow) error {
	failed := 0
	for _, r := range rows {
		if r.err != nil {
			failed++
		}
	}
	if failed == 0 {
		return nil
	}
	return fmt.Errorf("%d of %d intersections failed", failed, len(rows))
}
