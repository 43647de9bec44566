package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"rssh/internal/apperr"
	"rssh/internal/models"
	"rssh/internal/ui"
)

// Add returns the command for storing a new connection alias.
//
// The connection string must be of the form user@host; it is validated
// before anything is written. Adding an existing alias overwrites it.
func Add() *cobra.Command {
	return &cobra.Command{
		Use:   "add <alias> <user@host>",
		Short: "Store a connection under an alias",
		Args:  cobra.ExactArgs(2),
		RunE: func(_ *cobra.Command, args []string) error {
			alias, connStr := args[0], args[1]

			if _, err := models.ParseConnectionString(connStr, defaultPort); err != nil {
				return apperr.New(apperr.InvalidConnectionString, err.Error(), nil)
			}

			mgr, err := loadStore()
			if err != nil {
				return err
			}

			mgr.Add(alias, connStr)
			if err := mgr.Save(); err != nil {
				return err
			}

			fmt.Println(ui.SuccessStyle.Render(fmt.Sprintf("Added '%s' -> %s", alias, connStr)))
			return nil
		},
	}
}
