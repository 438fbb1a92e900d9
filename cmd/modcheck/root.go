// Package main provides the entry point for the modcheck CLI.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jieyouxu/modio-modcheck/internal/config"
)

// NewRootCmd creates the root command for modcheck.
// The check itself runs on the root command so the tool can be invoked as
// `modcheck --id <id> --access-token <file> <mod-list>`.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "modcheck [mod-list]",
		Short: "Check an exported mod list against mod.io",
		Long: `modcheck reconciles a mod list exported by the Mint mod manager against
the authoritative state known to mod.io.

Each mod reference in the list is looked up and classified:

  OK             the mod exists, is visible, and its name is unchanged
  HIDDEN         the mod exists but is hidden from public listing
  RENAMED        the mod is visible but was renamed server-side
  DELETED        mod.io no longer has any record of the mod
  LOOKUP FAILED  the lookup itself failed (recorded, never aborts the run)

The access token is an OAuth2 token from your mod.io account settings,
stored in a file passed via --access-token (or the MODIO_ACCESS_TOKEN
environment variable, optionally from a .env file).

Examples:
  # Check an exported mod list
  modcheck --id 123456 --access-token token.txt mods.txt

  # Output a Markdown report to a file
  modcheck --id 123456 --access-token token.txt --markdown -o report.md mods.txt

  # Check mods of another mod.io game
  modcheck --id 123456 --access-token token.txt --game-id 3959 mods.txt`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.MaximumNArgs(1),
		RunE:          runCheckCmd,
	}

	// Required identity flags
	cmd.Flags().Int64("id", 0,
		"Numeric mod.io user id (used to build the per-user API host)")
	cmd.Flags().String("access-token", "",
		"Path of the file containing the mod.io OAuth2 access token")

	// Lookup behavior flags
	cmd.Flags().DurationP("timeout", "t", config.DefaultTimeout,
		"Per-request HTTP timeout")
	cmd.Flags().Int64("game-id", config.DefaultGameID,
		"mod.io game id to check references against")
	cmd.Flags().String("api-host", config.DefaultAPIHost,
		"mod.io API host template (%d is replaced by the user id)")

	// Configuration file
	cmd.Flags().StringP("config", "c", "",
		"Configuration file path (default: .modcheck in current or home directory)")

	// Report flags
	cmd.Flags().BoolP("json", "j", false,
		"Output JSON report (mutually exclusive with --markdown)")
	cmd.Flags().BoolP("markdown", "m", false,
		"Output Markdown report (mutually exclusive with --json)")
	cmd.Flags().StringP("output", "o", "",
		"Write report to specified file path (creates directories if needed)")
	cmd.Flags().Bool("no-progress", false,
		"Suppress per-lookup progress lines")

	// History flags
	cmd.Flags().Bool("no-save", false,
		"Do not record this run in the local history database")

	// Global flags that apply to all commands
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")

	// Add subcommands
	cmd.AddCommand(NewHistoryCmd())
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
