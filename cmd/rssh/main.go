// Package main is the entry point for the rssh CLI.
//
// rssh is a personal SSH connection manager: it stores connections
// under short aliases, keeps passwords in an encrypted vault and opens
// interactive shells and SFTP transfers against the stored hosts.
//
// For detailed usage information, run:
//
//	rssh --help
package main

import (
	"fmt"
	"os"

	"rssh/internal/cli"
)

func main() {
	if err := cli.Root().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
