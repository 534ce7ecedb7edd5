package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/flowboardhq/flowboard/pkg/model"
	"github.com/flowboardhq/flowboard/pkg/render"
)

const (
	formatSVG = "svg"
	formatDOT = "dot"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	composeOpts
	format   string // output format: "svg" or "dot"
	detailed bool   // include type, status, and edge labels
}

// renderCommand creates the render command for generating graph images.
func (c *CLI) renderCommand() *cobra.Command {
	opts := renderOpts{}

	cmd := &cobra.Command{
		Use:   "render [snapshot.json]",
		Short: "Render a composed view as an SVG or DOT graph",
		Long: `Render a composed view as an SVG or DOT graph.

The render command composes the snapshot like 'compose' does, then lays the
result out with Graphviz. Only canvas and tree views have a graph form;
kanban, gantt, and table views are data-shaped and cannot be rendered here.

When no output file is given the result is written to stdout.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.format != formatSVG && opts.format != formatDOT {
				return fmt.Errorf("unknown format %q (want svg or dot)", opts.format)
			}
			return c.runRender(cmd.Context(), args[0], opts)
		},
	}

	cmd.Flags().StringVar(&opts.viewFile, "view", "", "view config TOML file")
	cmd.Flags().StringVar(&opts.viewID, "view-id", "", "ID of a saved view")
	cmd.Flags().StringVar(&opts.style, "style", "", "view style: tree, canvas")
	cmd.Flags().StringVar(&opts.focal, "focal", "", "focal node ID for hop filtering")
	cmd.Flags().IntVar(&opts.maxHops, "max-hops", 0, "hop radius around the focal node (0 = unlimited)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default: stdout)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", formatSVG, "output format: svg (default), dot")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "include node types, statuses, and edge labels")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")

	return cmd
}

// runRender composes the snapshot and renders the result with Graphviz.
func (c *CLI) runRender(ctx context.Context, input string, opts renderOpts) error {
	snap, err := model.ReadSnapshotFile(input)
	if err != nil {
		return fmt.Errorf("load snapshot %s: %w", input, err)
	}

	cfg, err := c.loadViewConfig(ctx, opts.composeOpts)
	if err != nil {
		return err
	}

	runner, err := c.newRunner(opts.noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Rendering %s view...", cfg.Style))
	spinner.Start()

	result, err := runner.Execute(ctx, snap, cfg)
	if err != nil {
		spinner.StopWithError("Render failed")
		return fmt.Errorf("compose: %w", err)
	}

	var payload []byte
	if opts.format == formatSVG {
		format := formatSVG
		if opts.detailed {
			format = "svg-detailed"
		}
		payload, _, err = runner.RenderArtifact(ctx, result, format, func() ([]byte, error) {
			dot, err := render.ToDOT(result.Data, render.Options{Detailed: opts.detailed})
			if err != nil {
				return nil, err
			}
			return render.RenderSVG(dot)
		})
		if err != nil {
			spinner.StopWithError("Render failed")
			return err
		}
	} else {
		dot, err := render.ToDOT(result.Data, render.Options{Detailed: opts.detailed})
		if err != nil {
			spinner.StopWithError("Render failed")
			return err
		}
		payload = []byte(dot)
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	out, err := openOutput(opts.output)
	if err != nil {
		return fmt.Errorf("open output: %w", err)
	}
	defer out.Close()
	if _, err := out.Write(payload); err != nil {
		return fmt.Errorf("write output: %w", err)
	}

	if opts.output != "" {
		printSuccess("Rendered %s view", result.Data.Style)
		printFile(opts.output)
		printStats(result.Stats.NodeCount, result.Stats.EdgeCount, result.CacheInfo.ComposeHit)
	}
	return nil
}
