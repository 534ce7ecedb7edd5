package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/flowboardhq/flowboard/pkg/model"
	"github.com/flowboardhq/flowboard/pkg/view"
)

// composeOpts holds the command-line flags for the compose command.
type composeOpts struct {
	viewFile  string // path to a view config TOML file
	viewID    string // ID of a saved view from the local store
	style     string // view style override
	focal     string // focal node for hop filtering
	maxHops   int    // hop radius around the focal node
	colorBy   string // field key used to derive color groups
	output    string // output file path (default: stdout)
	noCache   bool   // disable the compose cache
	withStats bool   // emit the full result envelope instead of bare view data
}

// composeCommand creates the compose command for deriving view models.
func (c *CLI) composeCommand() *cobra.Command {
	opts := composeOpts{}

	cmd := &cobra.Command{
		Use:   "compose [snapshot.json]",
		Short: "Compose a snapshot into a derived view model",
		Long: `Compose a snapshot into a derived view model.

The compose command takes a snapshot.json file containing typed nodes and
edges and derives a view model from it: a kanban board, a dependency tree,
a Gantt timeline, a sorted table, or a 2D canvas layout.

The view configuration comes from a TOML file (--view), a saved view
(--view-id), or inline flags. Results are cached locally for faster
subsequent runs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runCompose(cmd.Context(), args[0], opts)
		},
	}

	cmd.Flags().StringVar(&opts.viewFile, "view", "", "view config TOML file")
	cmd.Flags().StringVar(&opts.viewID, "view-id", "", "ID of a saved view")
	cmd.Flags().StringVar(&opts.style, "style", "", "view style: kanban, gantt, tree, table, canvas")
	cmd.Flags().StringVar(&opts.focal, "focal", "", "focal node ID for hop filtering")
	cmd.Flags().IntVar(&opts.maxHops, "max-hops", 0, "hop radius around the focal node (0 = unlimited)")
	cmd.Flags().StringVar(&opts.colorBy, "color-by", "", "field key used to derive color groups")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default: stdout)")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&opts.withStats, "stats", false, "include hashes and timing in the output")

	return cmd
}

// runCompose loads the snapshot and view config, runs the composer, and writes output.
func (c *CLI) runCompose(ctx context.Context, input string, opts composeOpts) error {
	snap, err := model.ReadSnapshotFile(input)
	if err != nil {
		return fmt.Errorf("load snapshot %s: %w", input, err)
	}

	cfg, err := c.loadViewConfig(ctx, opts)
	if err != nil {
		return err
	}

	runner, err := c.newRunner(opts.noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Composing %s view...", cfg.Style))
	spinner.Start()

	result, err := runner.Execute(ctx, snap, cfg)
	if err != nil {
		spinner.StopWithError("Compose failed")
		return fmt.Errorf("compose: %w", err)
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	var payload any = result.Data
	if opts.withStats {
		payload = result
	}
	if err := writeViewJSON(payload, opts.output, c.Logger); err != nil {
		return fmt.Errorf("write output: %w", err)
	}

	spinner.StopWithSuccess(fmt.Sprintf("Composed %s view", result.Data.Style))
	if opts.output != "" {
		printFile(opts.output)
	}
	printStats(result.Stats.NodeCount, result.Stats.EdgeCount, result.CacheInfo.ComposeHit)
	printNewline()
	printNextStep("Render", "flowboard render "+input+renderHint(opts))

	return nil
}

// loadViewConfig resolves the view config from flags, a TOML file, or the store.
// Inline flags layer on top of the loaded config.
func (c *CLI) loadViewConfig(ctx context.Context, opts composeOpts) (view.Config, error) {
	var cfg view.Config

	switch {
	case opts.viewFile != "" && opts.viewID != "":
		return cfg, fmt.Errorf("--view and --view-id are mutually exclusive")
	case opts.viewFile != "":
		loaded, err := view.LoadFile(opts.viewFile)
		if err != nil {
			return cfg, fmt.Errorf("load view %s: %w", opts.viewFile, err)
		}
		cfg = loaded
	case opts.viewID != "":
		st, err := newStore()
		if err != nil {
			return cfg, fmt.Errorf("open view store: %w", err)
		}
		defer st.Close()
		saved, err := st.Get(ctx, opts.viewID)
		if err != nil {
			return cfg, fmt.Errorf("load view %s: %w", opts.viewID, err)
		}
		cfg = saved.Config
	}

	if opts.style != "" {
		cfg.Style = view.Style(opts.style)
	}
	if opts.focal != "" {
		cfg.FocalNodeID = opts.focal
	}
	if opts.maxHops > 0 {
		cfg.MaxHops = opts.maxHops
	}
	if opts.colorBy != "" {
		cfg.ColorField = opts.colorBy
	}

	if err := cfg.ValidateAndSetDefaults(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// renderHint reproduces the view selection flags for the suggested next command.
func renderHint(opts composeOpts) string {
	switch {
	case opts.viewFile != "":
		return " --view " + opts.viewFile
	case opts.viewID != "":
		return " --view-id " + opts.viewID
	case opts.style != "":
		return " --style " + opts.style
	}
	return ""
}

// writeViewJSON writes v as indented JSON to path, or stdout if path is empty.
func writeViewJSON(v any, path string, logger interface{ Infof(string, ...any) }) error {
	out, err := openOutput(path)
	if err != nil {
		return err
	}
	defer out.Close()

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return err
	}
	if path != "" {
		logger.Infof("Wrote view to %s", path)
	}
	return nil
}

// nopCloser wraps an io.Writer with a no-op Close method.
// It is used to make os.Stdout compatible with io.WriteCloser.
type nopCloser struct{ io.Writer }

// Close implements io.Closer with a no-op.
func (nopCloser) Close() error { return nil }

// openOutput returns a WriteCloser for the given path.
// If path is empty, it returns os.Stdout wrapped in nopCloser.
// Otherwise, it creates the file at path, overwriting if it exists.
func openOutput(path string) (io.WriteCloser, error) {
	if path == "" {
		return nopCloser{os.Stdout}, nil
	}
	return os.Create(path)
}
