// Package cli defines the rssh command structure and flag bindings.
//
// Commands parse arguments and delegate the actual work to the config,
// vault and ssh packages. Running rssh without a subcommand starts an
// interactive alias picker.
package cli

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"rssh/internal/prompt"
)

// Root returns the root command for the rssh CLI.
func Root() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rssh",
		Short: "Personal SSH connection manager",
		Long: `rssh keeps a personal catalog of SSH connections under short aliases,
remembers passwords in an encrypted vault and opens interactive shells
and SFTP transfers against them.

Running rssh without a subcommand opens an interactive picker over the
stored aliases.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(_ *cobra.Command, _ []string) error {
			return runInteractive()
		},
	}

	cmd.AddCommand(Add())
	cmd.AddCommand(List())
	cmd.AddCommand(Remove())
	cmd.AddCommand(Connect())
	cmd.AddCommand(Upload())
	cmd.AddCommand(Download())

	return cmd
}

// interactivePrompter covers the prompts the no-subcommand mode needs.
type interactivePrompter interface {
	Select(title string, options []string) (string, error)
	Input(title, placeholder string) (string, error)
	Confirm(title string) (bool, error)
}

// runInteractive lets the user pick a stored alias, port and identity
// file, then connects.
func runInteractive() error {
	mgr, err := loadStore()
	if err != nil {
		return err
	}

	aliases := mgr.Aliases()
	if len(aliases) == 0 {
		return errors.New("no connections defined, use 'rssh add' first")
	}

	return interactiveConnect(prompt.Terminal{}, aliases, runConnect)
}

func interactiveConnect(p interactivePrompter, aliases []string, connect func(alias string, port uint16, identity string) error) error {
	alias, err := p.Select("Connect to", aliases)
	if err != nil {
		return err
	}

	portStr, err := p.Input("SSH port", "22")
	if err != nil {
		return err
	}
	port := defaultPort
	if portStr != "" {
		parsed, err := strconv.ParseUint(portStr, 10, 16)
		if err != nil || parsed == 0 {
			return fmt.Errorf("invalid port %q", portStr)
		}
		port = uint16(parsed)
	}

	identity := ""
	useKey, err := p.Confirm("Use identity file?")
	if err != nil {
		return err
	}
	if useKey {
		identity, err = p.Input("Identity file path", "")
		if err != nil {
			return err
		}
	}

	return connect(alias, port, identity)
}
