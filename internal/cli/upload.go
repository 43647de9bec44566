package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"rssh/internal/ssh"
	"rssh/internal/ui"
)

// Upload returns the command that copies a local file to a remote
// directory over SFTP, keeping the file's base name.
//
// Optional flags:
//
//	--port, -p: SSH port (default: 22)
//	--identity, -i: Path to a private key file
func Upload() *cobra.Command {
	var (
		port     uint16
		identity string
	)

	cmd := &cobra.Command{
		Use:   "upload <alias> <local-path> <remote-dir>",
		Short: "Upload a file over SFTP",
		Args:  cobra.ExactArgs(3),
		RunE: func(_ *cobra.Command, args []string) error {
			alias, localPath, remoteDir := args[0], args[1], args[2]

			sess, err := establish(alias, port, identity)
			if err != nil {
				return err
			}
			defer sess.Close()

			tr, err := ssh.NewTransfer(sess)
			if err != nil {
				return err
			}
			defer tr.Close()

			err = tr.Upload(localPath, remoteDir, progressPrinter(os.Stderr))
			fmt.Fprintln(os.Stderr)
			if err != nil {
				return err
			}

			fmt.Println(ui.SuccessStyle.Render("Upload complete"))
			return nil
		},
	}

	cmd.Flags().Uint16VarP(&port, "port", "p", defaultPort, "SSH port")
	cmd.Flags().StringVarP(&identity, "identity", "i", "", "Path to private key file")

	return cmd
}
