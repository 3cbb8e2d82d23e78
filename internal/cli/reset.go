package cli

import (
	"context"
	"fmt"

	"github.com/sgodoy/joblist/internal/domain"
	"github.com/spf13/cobra"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Reset stored data",
	Long: `Reset stored data.

Examples:
  joblist reset jobs       # Delete every job (companies are kept)
  joblist reset all        # Wipe the whole document: jobs and companies`,
}

var resetJobsCmd = &cobra.Command{
	Use:   "jobs",
	Short: "Delete all jobs and their expenses and invoices",
	RunE: func(cmd *cobra.Command, args []string) error {
		if !confirmPrompt("This will delete ALL jobs, including their expenses and invoices. Continue?") {
			fmt.Println("Cancelled.")
			return nil
		}

		ctx := context.Background()
		agg := appInstance.State.Snapshot()
		next := domain.NewAggregate()
		next.Companies = agg.Companies
		appInstance.State.Replace(ctx, next)

		fmt.Println("All jobs have been deleted.")
		return nil
	},
}

var resetAllCmd = &cobra.Command{
	Use:   "all",
	Short: "Delete ALL data: jobs, expenses, invoices, companies",
	RunE: func(cmd *cobra.Command, args []string) error {
		if !confirmPrompt("This will delete ALL data (jobs, expenses, invoices, companies). Continue?") {
			fmt.Println("Cancelled.")
			return nil
		}

		ctx := context.Background()
		next := domain.NewAggregate()
		appInstance.State.Replace(ctx, next)

		fmt.Println("All data has been deleted.")
		return nil
	},
}

func init() {
	resetCmd.AddCommand(resetJobsCmd)
	resetCmd.AddCommand(resetAllCmd)
}
