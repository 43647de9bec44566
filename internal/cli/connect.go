package cli

import (
	"github.com/spf13/cobra"
)

// Connect returns the command that opens an interactive shell on the
// host behind an alias.
//
// Optional flags:
//
//	--port, -p: SSH port (default: 22)
//	--identity, -i: Path to a private key file; without it the vault
//	  password flow is used
func Connect() *cobra.Command {
	var (
		port     uint16
		identity string
	)

	cmd := &cobra.Command{
		Use:   "connect <alias>",
		Short: "Open an interactive shell",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return runConnect(args[0], port, identity)
		},
	}

	cmd.Flags().Uint16VarP(&port, "port", "p", defaultPort, "SSH port")
	cmd.Flags().StringVarP(&identity, "identity", "i", "", "Path to private key file")

	return cmd
}
