package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/flowboardhq/flowboard/pkg/store"
	"github.com/flowboardhq/flowboard/pkg/view"
)

// viewsCommand creates the views command for managing saved view configs.
func (c *CLI) viewsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "views",
		Short: "Manage saved view configurations",
	}

	cmd.AddCommand(c.viewsListCommand())
	cmd.AddCommand(c.viewsShowCommand())
	cmd.AddCommand(c.viewsSaveCommand())
	cmd.AddCommand(c.viewsDeleteCommand())
	cmd.AddCommand(c.viewsPathCommand())

	return cmd
}

// viewsListCommand creates the "views list" subcommand.
func (c *CLI) viewsListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List saved views",
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := newStore()
			if err != nil {
				return fmt.Errorf("open view store: %w", err)
			}
			defer st.Close()

			views, err := st.List(cmd.Context())
			if err != nil {
				return fmt.Errorf("list views: %w", err)
			}
			if len(views) == 0 {
				printInfo("No saved views")
				printNextStep("Save one", "flowboard views save view.toml")
				return nil
			}

			for _, v := range views {
				fmt.Println(StyleValue.Render(v.Name) + "  " + StyleDim.Render(string(v.Config.Style)) + "  " + StyleDim.Render(v.ID))
			}
			printNewline()
			printDetail("%d views in %s", len(views), st.Path())
			return nil
		},
	}
}

// viewsShowCommand creates the "views show" subcommand.
func (c *CLI) viewsShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show [id]",
		Short: "Show a saved view",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := newStore()
			if err != nil {
				return fmt.Errorf("open view store: %w", err)
			}
			defer st.Close()

			v, err := st.Get(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("load view %s: %w", args[0], err)
			}

			printKeyValue("ID", v.ID)
			printKeyValue("Name", v.Name)
			printKeyValue("Style", string(v.Config.Style))
			if v.Config.FocalNodeID != "" {
				printKeyValue("Focal", v.Config.FocalNodeID)
				printKeyValue("Max hops", fmt.Sprintf("%d", v.Config.MaxHops))
			}
			printKeyValue("Created", v.CreatedAt.Format("2006-01-02 15:04"))
			printKeyValue("Updated", v.UpdatedAt.Format("2006-01-02 15:04"))
			return nil
		},
	}
}

// viewsSaveCommand creates the "views save" subcommand.
func (c *CLI) viewsSaveCommand() *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "save [view.toml]",
		Short: "Save a view config TOML to the local store",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := view.LoadFile(args[0])
			if err != nil {
				return fmt.Errorf("load view %s: %w", args[0], err)
			}
			if name != "" {
				cfg.Name = name
			}

			st, err := newStore()
			if err != nil {
				return fmt.Errorf("open view store: %w", err)
			}
			defer st.Close()

			saved := &store.SavedView{Name: cfg.Name, Config: cfg}
			if err := st.Save(cmd.Context(), saved); err != nil {
				return fmt.Errorf("save view: %w", err)
			}

			printSuccess("Saved view %q", saved.Name)
			printDetail("ID: %s", saved.ID)
			printNewline()
			printNextStep("Compose", "flowboard compose snapshot.json --view-id "+saved.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "override the view name")
	return cmd
}

// viewsDeleteCommand creates the "views delete" subcommand.
func (c *CLI) viewsDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete [id]",
		Short: "Delete a saved view",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := newStore()
			if err != nil {
				return fmt.Errorf("open view store: %w", err)
			}
			defer st.Close()

			if err := st.Delete(cmd.Context(), args[0]); err != nil {
				return fmt.Errorf("delete view %s: %w", args[0], err)
			}
			printSuccess("Deleted view %s", args[0])
			return nil
		},
	}
}

// viewsPathCommand creates the "views path" subcommand.
func (c *CLI) viewsPathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the view store directory path",
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := newStore()
			if err != nil {
				return fmt.Errorf("open view store: %w", err)
			}
			defer st.Close()
			fmt.Println(st.Path())
			return nil
		},
	}
}
