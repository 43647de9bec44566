// Package prompt provides the interactive terminal prompts used by the
// CLI commands.
package prompt

import (
	"github.com/charmbracelet/huh"
)

// Terminal asks the user questions on the controlling terminal.
type Terminal struct{}

// Password asks for a secret without echoing it.
func (Terminal) Password(title string) (string, error) {
	var value string
	err := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title(title).
				EchoMode(huh.EchoModePassword).
				Value(&value),
		),
	).Run()
	return value, err
}

// Confirm asks a yes/no question.
func (Terminal) Confirm(title string) (bool, error) {
	var value bool
	err := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(title).
				Value(&value),
		),
	).Run()
	return value, err
}

// Input asks for a line of text.
func (Terminal) Input(title, placeholder string) (string, error) {
	var value string
	err := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title(title).
				Placeholder(placeholder).
				Value(&value),
		),
	).Run()
	return value, err
}

// Select asks the user to pick one of the given options.
func (Terminal) Select(title string, options []string) (string, error) {
	opts := make([]huh.Option[string], len(options))
	for i, o := range options {
		opts[i] = huh.NewOption(o, o)
	}

	var value string
	err := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title(title).
				Options(opts...).
				Value(&value),
		),
	).Run()
	return value, err
}
