package cli

import (
	"github.com/sgodoy/joblist/internal/app"
	"github.com/spf13/cobra"
)

var appInstance *app.App

var rootCmd = &cobra.Command{
	Use:   "joblist",
	Short: "A local tracker for quoted jobs, expenses, and profitability",
	Long: `Joblist tracks quoted work, the expenses and invoices recorded against
it, and the resulting margin per job. Everything is stored locally in an
encrypted database.

By default, running joblist without arguments launches the interactive TUI.
Use subcommands for CLI operations.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		// Default behavior: launch TUI
		return launchTUI(cmd, args)
	},
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// SetApp sets the app instance for commands to use
func SetApp(a *app.App) {
	appInstance = a
}

func init() {
	rootCmd.AddCommand(jobsCmd)
	rootCmd.AddCommand(expensesCmd)
	rootCmd.AddCommand(invoicesCmd)
	rootCmd.AddCommand(companiesCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(tuiCmd)
}
