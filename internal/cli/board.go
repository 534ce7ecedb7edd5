package cli

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/flowboardhq/flowboard/pkg/model"
	"github.com/flowboardhq/flowboard/pkg/view"
)

// boardCommand creates the board command for interactive kanban browsing.
func (c *CLI) boardCommand() *cobra.Command {
	opts := composeOpts{}

	cmd := &cobra.Command{
		Use:   "board [snapshot.json]",
		Short: "Browse a snapshot as an interactive kanban board",
		Long: `Browse a snapshot as an interactive kanban board.

The board command composes a kanban view and opens it in the terminal.
Arrow keys move between columns and cards, tab cycles swimlanes, and
enter prints the selected card's ID on exit.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runBoard(cmd.Context(), args[0], opts)
		},
	}

	cmd.Flags().StringVar(&opts.viewFile, "view", "", "view config TOML file")
	cmd.Flags().StringVar(&opts.viewID, "view-id", "", "ID of a saved view")
	cmd.Flags().StringVar(&opts.focal, "focal", "", "focal node ID for hop filtering")
	cmd.Flags().IntVar(&opts.maxHops, "max-hops", 0, "hop radius around the focal node (0 = unlimited)")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")

	return cmd
}

// runBoard composes a kanban view and opens the interactive browser.
func (c *CLI) runBoard(ctx context.Context, input string, opts composeOpts) error {
	snap, err := model.ReadSnapshotFile(input)
	if err != nil {
		return fmt.Errorf("load snapshot %s: %w", input, err)
	}

	cfg, err := c.loadViewConfig(ctx, opts)
	if err != nil {
		return err
	}
	cfg.Style = view.StyleKanban
	if err := cfg.ValidateAndSetDefaults(); err != nil {
		return err
	}

	runner, err := c.newRunner(opts.noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	result, err := runner.Execute(ctx, snap, cfg)
	if err != nil {
		return fmt.Errorf("compose: %w", err)
	}
	if result.Data.Board == nil {
		return fmt.Errorf("compose produced no board data")
	}

	title := cfg.Name
	if title == "" {
		title = input
	}

	program := tea.NewProgram(NewBoardModel(title, result.Data.Board), tea.WithContext(ctx))
	final, err := program.Run()
	if err != nil {
		return fmt.Errorf("board ui: %w", err)
	}

	if m, ok := final.(BoardModel); ok && m.Selected != nil {
		fmt.Println(m.Selected.ID)
	}
	return nil
}
