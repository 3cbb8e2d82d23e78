package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var companiesCmd = &cobra.Command{
	Use:   "companies",
	Short: "List known companies",
	Long: `List the companies jobs and invoices have been billed to.

Companies are created implicitly the first time a job or invoice names
them; there is no separate create command.`,
}

var companiesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all companies",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		companies := appInstance.Companies.List(ctx)
		if len(companies) == 0 {
			fmt.Println("No companies found")
			return nil
		}

		fmt.Printf("%-10s %-36s %-14s %-6s\n", "ID", "Name", "RUT", "Jobs")
		fmt.Println("----------------------------------------------------------------------")

		jobs := appInstance.Jobs.List(ctx)
		for _, c := range companies {
			count := 0
			for _, j := range jobs {
				if j.CompanyID == c.ID {
					count++
				}
			}
			fmt.Printf("%-10s %-36s %-14s %-6d\n",
				shortID(c.ID),
				truncate(c.Name, 36),
				c.RUT,
				count,
			)
		}

		fmt.Printf("\nTotal: %d company(ies)\n", len(companies))
		return nil
	},
}

func init() {
	companiesCmd.AddCommand(companiesListCmd)
}
