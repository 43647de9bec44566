package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"rssh/internal/ssh"
	"rssh/internal/ui"
)

// Remove returns the command for deleting an alias.
//
// The stored password for the alias, if any, is removed from the vault
// as well so no orphaned secret stays behind.
func Remove() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <alias>",
		Short: "Remove a stored connection",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			alias := args[0]

			mgr, err := loadStore()
			if err != nil {
				return err
			}

			if err := mgr.Remove(alias); err != nil {
				return err
			}
			if err := mgr.Save(); err != nil {
				return err
			}

			v, err := newVault()
			if err != nil {
				return err
			}
			if err := v.DeleteSecret(ssh.VaultService, alias); err != nil {
				return fmt.Errorf("alias removed, but vault cleanup failed: %w", err)
			}

			fmt.Println(ui.SuccessStyle.Render(fmt.Sprintf("Removed '%s'", alias)))
			return nil
		},
	}
}
