package cli

import (
	"fmt"
	"os"

	"golang.org/x/term"

	"rssh/internal/config"
	"rssh/internal/models"
	"rssh/internal/prompt"
	"rssh/internal/ssh"
	"rssh/internal/ui"
	"rssh/internal/vault"
)

// defaultPort is used whenever the user does not override it.
const defaultPort uint16 = 22

// loadStore opens the alias store at its default location.
func loadStore() (*config.Manager, error) {
	mgr := config.NewManager("")
	if err := mgr.Load(); err != nil {
		return nil, err
	}
	return mgr, nil
}

// newVault opens the credential vault at its default location.
func newVault() (vault.Vault, error) {
	dir, err := vault.DefaultDir()
	if err != nil {
		return nil, err
	}
	return vault.NewFileVault(dir), nil
}

// establish builds an authenticated session for the alias.
func establish(alias string, port uint16, identityPath string) (*ssh.Session, error) {
	mgr, err := loadStore()
	if err != nil {
		return nil, err
	}

	v, err := newVault()
	if err != nil {
		return nil, err
	}

	builder := &ssh.Builder{
		Store:    mgr,
		Vault:    v,
		Prompter: prompt.Terminal{},
	}
	return builder.Establish(alias, port, identityPath)
}

// runConnect establishes a session and hands the terminal over to the
// remote shell until it exits.
func runConnect(alias string, port uint16, identityPath string) error {
	sess, err := establish(alias, port, identityPath)
	if err != nil {
		return err
	}
	defer sess.Close()

	return ssh.RunShell(sess)
}

// progressPrinter renders transfer progress in place on the given
// terminal stream.
func progressPrinter(out *os.File) ssh.ProgressFunc {
	width, _, err := term.GetSize(int(out.Fd()))
	if err != nil || width <= 0 {
		width = 80
	}
	return func(st models.TransferStatus) {
		fmt.Fprintf(out, "\r%s", ui.RenderProgress(st, width))
	}
}
