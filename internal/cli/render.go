package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/hanoitower/pkg/pipeline"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output   string   // output file (single format) or base path (several)
	formats  []string // output formats: svg, json, dot, tree
	speed    float64  // playback speed; 0 keeps the configured speed
	width    float64  // SVG viewport width in pixels
	height   float64  // SVG viewport height in pixels; 0 keeps the aspect ratio
	loop     bool     // repeat the SVG animation forever
	detailed bool     // label recursion tree nodes with their pegs
	refresh  bool     // recompute even when cached
	noCache  bool     // bypass the cache entirely
}

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	var formatsStr string
	opts := renderOpts{width: pipeline.DefaultWidth}

	cmd := &cobra.Command{
		Use:   "render [disks]",
		Short: "Render the animated solution to files",
		Long: `Render solves the puzzle, simulates every move and writes the result.

Formats:
  svg    animated side view (SMIL, plays in any browser)
  json   move list and timed motion segments
  dot    Graphviz source of the recursion tree
  tree   the recursion tree rendered to SVG`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := c.disksArg(args)
			if err != nil {
				return err
			}
			opts.formats = pipeline.ParseFormats(formatsStr)
			if err := pipeline.ValidateFormats(opts.formats); err != nil {
				return err
			}
			return c.runRender(cmd.Context(), n, &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), json, dot, tree (comma-separated)")
	cmd.Flags().Float64Var(&opts.speed, "speed", 0, "playback speed multiplier (default from config)")
	cmd.Flags().Float64Var(&opts.width, "width", opts.width, "frame width")
	cmd.Flags().Float64Var(&opts.height, "height", 0, "frame height (default keeps the scene's aspect ratio)")
	cmd.Flags().BoolVar(&opts.loop, "loop", false, "loop the SVG animation")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "show peg details in the recursion tree")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "recompute cached results")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "bypass the cache")
	_ = cmd.RegisterFlagCompletionFunc("format", completeFormats)

	return cmd
}

func (c *CLI) runRender(ctx context.Context, n int, o *renderOpts) error {
	logger := loggerFromContext(ctx)

	runner, err := c.newRunner(ctx, o.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	opts := c.baseOptions(n)
	opts.Formats = o.formats
	opts.Width = o.width
	opts.Height = o.height
	opts.Loop = o.loop
	opts.Detailed = o.detailed
	opts.Refresh = o.refresh
	if o.speed != 0 {
		opts.Speed = o.speed
	}

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Rendering %d disks...", n))
	spinner.Start()
	result, err := runner.Execute(ctx, opts)
	if err != nil {
		if spinner.Cancelled() {
			spinner.Stop()
			return ctx.Err()
		}
		spinner.StopWithError(fmt.Sprintf("Rendering %d disks failed", n))
		return err
	}
	spinner.StopWithSuccess(fmt.Sprintf("Rendered %d disks", n))
	logger.Debugf("solve %s, simulate %s, render %s",
		result.Stats.SolveTime, result.Stats.SimulateTime, result.Stats.RenderTime)

	paths := outputPaths(o.output, n, o.formats)
	for _, f := range o.formats {
		path := paths[f]
		if err := writeOutput(path, result.Artifacts[f]); err != nil {
			return err
		}
		printFile(path)
	}
	printStats(result.Stats.MoveCount, result.Stats.Duration, result.CacheInfo.RenderHit)
	printNextStep("Watch it live", fmt.Sprintf("%s play %d", appName, n))
	return nil
}

// outputPaths picks a file per format. A single format with an explicit
// output is written there as given; otherwise the output is a base path and
// each format appends its extension. With no output the base is hanoi-<n>.
func outputPaths(output string, n int, formats []string) map[string]string {
	paths := make(map[string]string, len(formats))
	if len(formats) == 1 && output != "" && filepath.Ext(output) != "" {
		paths[formats[0]] = output
		return paths
	}
	base := basePath(output, n)
	for _, f := range formats {
		paths[f] = base + pipeline.FormatExtensions[f]
	}
	return paths
}

// basePath strips a known format extension from output, or derives the
// default base name when output is empty.
func basePath(output string, n int) string {
	if output == "" {
		return fmt.Sprintf("hanoi-%d", n)
	}
	exts := make([]string, 0, len(pipeline.FormatExtensions))
	for _, ext := range pipeline.FormatExtensions {
		exts = append(exts, ext)
	}
	// Longest first so ".tree.svg" wins over ".svg".
	sort.Slice(exts, func(i, j int) bool { return len(exts[i]) > len(exts[j]) })
	for _, ext := range exts {
		if strings.HasSuffix(output, ext) {
			return strings.TrimSuffix(output, ext)
		}
	}
	return output
}

func writeOutput(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, data, 0o644)
}
