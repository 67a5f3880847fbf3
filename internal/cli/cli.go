// Package cli implements the trafficmis command-line interface.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/ReFLEX-Lab-York/trafficMISBP/pkg/buildinfo"
	"github.com/ReFLEX-Lab-York/trafficMISBP/pkg/cache"
	"github.com/ReFLEX-Lab-York/trafficMISBP/pkg/intersection"
	"github.com/ReFLEX-Lab-York/trafficMISBP/pkg/mis"
	"github.com/ReFLEX-Lab-York/trafficMISBP/pkg/pipeline"
)

// appName is the application name used for directories and display.
const appName = "trafficmis"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	// errOut receives progress output such as spinners.
	errOut io.Writer
}

// New creates a new CLI instance with a default logger. Logs and progress
// output go to w.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level), errOut: w}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "trafficmis groups intersection routes into conflict-free phases",
		Long: `trafficmis models an intersection as a ring of numbered lanes, finds which
routes (entrance → exit movements) cross each other, and for every route
computes a maximal group of routes that can run at the same time.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())

	root.AddCommand(c.analyzeCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.batchCommand())
	root.AddCommand(c.exploreCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// cacheFlags are shared by every command that runs the pipeline.
type cacheFlags struct {
	noCache  bool
	cacheURL string
}

func (f *cacheFlags) register(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&f.noCache, "no-cache", false, "disable caching")
	cmd.Flags().StringVar(&f.cacheURL, "cache-url", "", "cache location: directory, file://dir, redis://host:port/db (default ~/.cache/"+appName+")")
}

// solverFlags override the solver settings of an intersection file.
type solverFlags struct {
	strategy      string
	maxExactNodes int
}

func (f *solverFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.strategy, "strategy", "", fmt.Sprintf("independent-set strategy: %s (default from file, else %s)", strings.Join(mis.Names(), ", "), mis.DefaultStrategy))
	cmd.Flags().IntVar(&f.maxExactNodes, "max-exact-nodes", 0, fmt.Sprintf("largest subgraph solved exactly (default %d)", mis.DefaultMaxExactNodes))
}

func (f *solverFlags) apply(opts *pipeline.Options) {
	if f.strategy != "" {
		opts.Strategy = f.strategy
	}
	if f.maxExactNodes > 0 {
		opts.MaxExactNodes = f.maxExactNodes
	}
}

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(ctx context.Context, f cacheFlags) (*pipeline.Runner, error) {
	return c.newScopedRunner(ctx, f, nil)
}

// newScopedRunner creates a runner whose cache keys come from keyer.
func (c *CLI) newScopedRunner(ctx context.Context, f cacheFlags, keyer cache.Keyer) (*pipeline.Runner, error) {
	cc, err := newCache(ctx, f)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(cc, keyer, c.Logger), nil
}

func newCache(ctx context.Context, f cacheFlags) (cache.Cache, error) {
	if f.noCache {
		return cache.NewNullCache(), nil
	}
	if f.cacheURL != "" {
		return cache.Open(ctx, f.cacheURL)
	}
	dir, err := cacheDir()
	if err != nil {
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// loadOptions reads an intersection file into pipeline options.
func (c *CLI) loadOptions(path string, sf solverFlags) (pipeline.Options, error) {
	def, err := intersection.ReadFile(path)
	if err != nil {
		return pipeline.Options{}, err
	}
	opts := pipeline.FromDefinition(def)
	sf.apply(&opts)
	opts.Logger = c.Logger
	return opts, nil
}

// cacheDir returns the cache directory using XDG standard (~/.cache/trafficmis/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}
