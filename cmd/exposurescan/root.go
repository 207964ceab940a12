// Package main provides the entry point for the exposurescan CLI.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for exposurescan.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "exposurescan",
		Short: "Privacy exposure scanner for personal information on the open web",
		Long: `exposurescan searches the open web for exposed personal information.

It plans search queries from an identity profile (name, email, phone,
address), collects candidate pages from search engines and platforms,
fetches and analyzes each page, and reports which pieces of the identity
are exposed where, with a per-page privacy risk score.

Identity attributes can be given as flags or kept in a .exposurescan
scan profile file so they never enter shell history.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags that apply to all commands
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")

	// Add subcommands
	cmd.AddCommand(NewScanCmd())
	cmd.AddCommand(NewInitCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
