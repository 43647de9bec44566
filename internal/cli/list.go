package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"rssh/internal/ui"
)

// List returns the command that prints all stored aliases, sorted.
func List() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List stored connections",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			mgr, err := loadStore()
			if err != nil {
				return err
			}

			aliases := mgr.Aliases()
			if len(aliases) == 0 {
				fmt.Println("No connections defined, use 'rssh add' first.")
				return nil
			}

			conns := mgr.Connections()
			fmt.Println(ui.HeaderStyle.Render("Stored connections"))
			for _, alias := range aliases {
				fmt.Printf("%s  %s\n",
					ui.AliasStyle.Render(alias),
					ui.TargetStyle.Render(conns[alias]))
			}
			return nil
		},
	}
}
