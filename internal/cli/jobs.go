package cli

import (
	"context"
	"fmt"

	"github.com/sgodoy/joblist/internal/domain"
	"github.com/sgodoy/joblist/internal/format"
	"github.com/sgodoy/joblist/internal/service"
	"github.com/spf13/cobra"
)

var jobsCmd = &cobra.Command{
	Use:   "jobs",
	Short: "Manage jobs",
	Long:  `List, add, edit, and delete jobs, and inspect their profitability.`,
}

var jobsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all jobs",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		f := appInstance.Format

		jobs := appInstance.Jobs.List(ctx)
		if len(jobs) == 0 {
			fmt.Println("No jobs found")
			return nil
		}

		fmt.Printf("%-10s %-28s %-20s %-14s %-9s %-18s\n",
			"ID", "Name", "Company", "Quote", "Margin", "Status")
		fmt.Println("----------------------------------------------------------------------------------------------------")

		for _, job := range jobs {
			totals := job.Totals()
			company := appInstance.Companies.CompanyName(ctx, job.CompanyID)
			fmt.Printf("%-10s %-28s %-20s %-14s %-8.1f%% %-18s\n",
				shortID(job.ID),
				truncate(job.Name, 28),
				truncate(company, 20),
				f.Currency(totals.Quote),
				totals.Margin*100,
				dueLabel(job),
			)
		}

		fmt.Printf("\nTotal: %d job(s)\n", len(jobs))
		return nil
	},
}

var jobsShowCmd = &cobra.Command{
	Use:   "show [id]",
	Short: "Show a job with its expenses, invoices, and totals",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		f := appInstance.Format

		job := findJob(ctx, args[0])
		if job == nil {
			return fmt.Errorf("job not found")
		}

		totals := job.Totals()
		company := appInstance.Companies.CompanyName(ctx, job.CompanyID)

		fmt.Printf("%s\n", job.Name)
		if company != "" {
			fmt.Printf("  Company:  %s\n", company)
		}
		fmt.Printf("  Quoted:   %s on %s\n", f.Currency(totals.Quote), format.ISOToDMY(job.QuoteDate))
		if job.DueDate != "" {
			fmt.Printf("  Due:      %s (%s)\n", format.ISOToDMY(job.DueDate), dueLabel(job))
		}
		fmt.Printf("  Expenses: %s\n", f.Currency(totals.TotalExpenses))
		fmt.Printf("  Profit:   %s (margin %.1f%%)\n", f.Currency(totals.Profit), totals.Margin*100)

		if len(job.Expenses) > 0 {
			fmt.Println("\nExpenses:")
			for _, e := range job.Expenses {
				tag := ""
				if e.InvoiceID != "" {
					tag = "  [invoiced]"
				}
				fmt.Printf("  %-10s %-36s %12s  %s%s\n",
					shortID(e.ID),
					truncate(e.Description, 36),
					f.Currency(float64(e.Amount)),
					format.ISOToDMY(e.CreatedAt),
					tag,
				)
			}
		}

		if len(job.Invoices) > 0 {
			fmt.Println("\nInvoices:")
			for _, inv := range job.Invoices {
				status := "issued"
				if inv.Paid {
					status = "paid"
				}
				fmt.Printf("  %-10s #%-12s net %12s  vat %12s  total %12s  due %s  %s\n",
					shortID(inv.ID),
					inv.Number,
					f.Currency(float64(inv.Net)),
					f.Currency(float64(inv.VAT)),
					f.Currency(float64(inv.Total)),
					format.ISOToDMY(inv.DueDate),
					status,
				)
			}
		}

		return nil
	},
}

var jobsAddCmd = &cobra.Command{
	Use:   "add [name]",
	Short: "Add a new job",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		f := appInstance.Format

		quoteStr, _ := cmd.Flags().GetString("quote")
		quoteDateStr, _ := cmd.Flags().GetString("quote-date")
		dueStr, _ := cmd.Flags().GetString("due")
		noDue, _ := cmd.Flags().GetBool("no-due")
		companyName, _ := cmd.Flags().GetString("company")
		paid, _ := cmd.Flags().GetBool("paid")

		quote := f.ParseNumber(quoteStr)
		if quote <= 0 {
			return fmt.Errorf("quote must be a positive amount, got %q", quoteStr)
		}

		quoteDate := format.DMYToISO(quoteDateStr)
		if quoteDate == "" {
			return fmt.Errorf("invalid quote date %q, expected dd/mm/yyyy", quoteDateStr)
		}

		// Due date defaults to one month after the quote date, matching
		// the historical form behavior.
		var dueDate string
		switch {
		case noDue:
		case dueStr != "":
			dueDate = format.DMYToISO(dueStr)
			if dueDate == "" {
				return fmt.Errorf("invalid due date %q, expected dd/mm/yyyy", dueStr)
			}
		default:
			dueDate = format.AddMonths(quoteDate, 1)
		}

		companyID := appInstance.Companies.UpsertByName(ctx, companyName)

		job := appInstance.Jobs.AddJob(ctx, service.JobFields{
			Name:      args[0],
			Quote:     quote,
			QuoteDate: quoteDate,
			DueDate:   dueDate,
			Paid:      paid,
			CompanyID: companyID,
		})

		fmt.Printf("✓ Job created: %s (ID: %s)\n", job.Name, shortID(job.ID))
		fmt.Printf("  Quote: %s\n", f.Currency(float64(job.Quote)))
		return nil
	},
}

var jobsEditCmd = &cobra.Command{
	Use:   "edit [id]",
	Short: "Edit an existing job",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		f := appInstance.Format

		job := findJob(ctx, args[0])
		if job == nil {
			return fmt.Errorf("job not found")
		}

		var update service.JobUpdate

		if cmd.Flags().Changed("name") {
			name, _ := cmd.Flags().GetString("name")
			if name == "" {
				return fmt.Errorf("name cannot be empty")
			}
			update.Name = &name
		}
		if cmd.Flags().Changed("quote") {
			quoteStr, _ := cmd.Flags().GetString("quote")
			quote := f.ParseNumber(quoteStr)
			if quote <= 0 {
				return fmt.Errorf("quote must be a positive amount, got %q", quoteStr)
			}
			update.Quote = &quote
		}
		if cmd.Flags().Changed("quote-date") {
			s, _ := cmd.Flags().GetString("quote-date")
			iso := format.DMYToISO(s)
			if iso == "" {
				return fmt.Errorf("invalid quote date %q, expected dd/mm/yyyy", s)
			}
			update.QuoteDate = &iso
		}
		if cmd.Flags().Changed("due") {
			s, _ := cmd.Flags().GetString("due")
			iso := format.DMYToISO(s)
			if iso == "" {
				return fmt.Errorf("invalid due date %q, expected dd/mm/yyyy", s)
			}
			update.DueDate = &iso
		}
		if cmd.Flags().Changed("paid") {
			paid, _ := cmd.Flags().GetBool("paid")
			update.Paid = &paid
		}
		if cmd.Flags().Changed("company") {
			companyName, _ := cmd.Flags().GetString("company")
			companyID := appInstance.Companies.UpsertByName(ctx, companyName)
			update.CompanyID = &companyID
		}

		appInstance.Jobs.UpdateJob(ctx, job.ID, update)
		fmt.Printf("✓ Job updated: %s\n", job.Name)
		return nil
	},
}

var jobsDeleteCmd = &cobra.Command{
	Use:   "delete [id]",
	Short: "Delete a job and its expenses",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		job := findJob(ctx, args[0])
		if job == nil {
			return fmt.Errorf("job not found")
		}

		if !confirmPrompt(fmt.Sprintf("Delete job %q and its %d expense(s)?", job.Name, len(job.Expenses))) {
			fmt.Println("Cancelled.")
			return nil
		}

		appInstance.Jobs.DeleteJob(ctx, job.ID)
		fmt.Printf("✓ Job deleted: %s\n", job.Name)
		return nil
	},
}

var jobsPaidCmd = &cobra.Command{
	Use:   "paid [id]",
	Short: "Toggle a job between invoiced and paid",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		job := findJob(ctx, args[0])
		if job == nil {
			return fmt.Errorf("job not found")
		}

		paid := !job.Paid
		appInstance.Jobs.UpdateJob(ctx, job.ID, service.JobUpdate{Paid: &paid})

		if paid {
			fmt.Printf("✓ Job marked as paid: %s\n", job.Name)
		} else {
			fmt.Printf("✓ Job marked as invoiced: %s\n", job.Name)
		}
		return nil
	},
}

// dueLabel renders the due-date status for a job.
func dueLabel(job *domain.Job) string {
	status := job.DueStatus()
	switch status.State {
	case domain.DuePaid:
		return fmt.Sprintf("paid on %s", format.ISOToDMY(job.DueDate))
	case domain.DueOverdue:
		return fmt.Sprintf("overdue by %d day(s)", -status.Days)
	case domain.DueSoon:
		if status.Days == 0 {
			return "due today"
		}
		return fmt.Sprintf("due in %d day(s)", status.Days)
	case domain.DueNormal:
		return fmt.Sprintf("due in %d day(s)", status.Days)
	default:
		if job.Paid {
			return "Paid"
		}
		return "Invoiced"
	}
}

func init() {
	jobsCmd.AddCommand(jobsListCmd)
	jobsCmd.AddCommand(jobsShowCmd)
	jobsCmd.AddCommand(jobsAddCmd)
	jobsCmd.AddCommand(jobsEditCmd)
	jobsCmd.AddCommand(jobsDeleteCmd)
	jobsCmd.AddCommand(jobsPaidCmd)

	// Add flags
	jobsAddCmd.Flags().String("quote", "", "Quoted amount, localized (required)")
	jobsAddCmd.MarkFlagRequired("quote")
	jobsAddCmd.Flags().String("quote-date", "", "Quote date as dd/mm/yyyy (required)")
	jobsAddCmd.MarkFlagRequired("quote-date")
	jobsAddCmd.Flags().String("due", "", "Due date as dd/mm/yyyy (defaults to quote date + 1 month)")
	jobsAddCmd.Flags().Bool("no-due", false, "Create the job without a due date")
	jobsAddCmd.Flags().String("company", "", "Company name (created on first use)")
	jobsAddCmd.Flags().Bool("paid", false, "Mark the job as already paid")

	// Edit flags
	jobsEditCmd.Flags().String("name", "", "New name")
	jobsEditCmd.Flags().String("quote", "", "New quoted amount")
	jobsEditCmd.Flags().String("quote-date", "", "New quote date (dd/mm/yyyy)")
	jobsEditCmd.Flags().String("due", "", "New due date (dd/mm/yyyy)")
	jobsEditCmd.Flags().Bool("paid", false, "Paid status")
	jobsEditCmd.Flags().String("company", "", "Company name")
}
