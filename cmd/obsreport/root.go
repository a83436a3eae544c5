package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for obsreport.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "obsreport",
		Short: "Render observable lookup results",
		Long: `obsreport renders the results of looking up observables (domains, IPs,
URLs, hashes, emails) across many external sites.

Output formats:
  N  human-readable report with colored status markers
  J  one JSON record per target and site
  D  human-readable report with indicators defanged
  S  short per-site summary (Error, Yes or No)`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags that apply to all commands
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")

	cmd.AddCommand(NewRenderCmd())
	cmd.AddCommand(NewHistoryCmd())
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
