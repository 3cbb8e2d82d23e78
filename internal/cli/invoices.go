package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/sgodoy/joblist/internal/format"
	"github.com/sgodoy/joblist/internal/service"
	"github.com/spf13/cobra"
)

var invoicesCmd = &cobra.Command{
	Use:   "invoices",
	Short: "Manage invoices on a job",
	Long:  `Issue, list, edit, and delete invoices under a job.`,
}

var invoicesListCmd = &cobra.Command{
	Use:   "list [job-id]",
	Short: "List a job's invoices",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		f := appInstance.Format

		job := findJob(ctx, args[0])
		if job == nil {
			return fmt.Errorf("job not found")
		}

		if len(job.Invoices) == 0 {
			fmt.Println("No invoices found")
			return nil
		}

		fmt.Printf("%-10s %-14s %-12s %-14s %-14s %-14s %-8s\n",
			"ID", "Number", "Issued", "Net", "VAT", "Total", "Status")
		fmt.Println("------------------------------------------------------------------------------------------")

		for _, inv := range job.Invoices {
			status := "issued"
			if inv.Paid {
				status = "paid"
			}
			fmt.Printf("%-10s %-14s %-12s %-14s %-14s %-14s %-8s\n",
				shortID(inv.ID),
				truncate(inv.Number, 14),
				format.ISOToDMY(inv.IssueDate),
				f.Currency(float64(inv.Net)),
				f.Currency(float64(inv.VAT)),
				f.Currency(float64(inv.Total)),
				status,
			)
		}

		fmt.Printf("\nTotal: %d invoice(s)\n", len(job.Invoices))
		return nil
	},
}

var invoicesAddCmd = &cobra.Command{
	Use:   "add [job-id]",
	Short: "Issue an invoice under a job",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		f := appInstance.Format

		job := findJob(ctx, args[0])
		if job == nil {
			return fmt.Errorf("job not found")
		}

		number, _ := cmd.Flags().GetString("number")
		issueStr, _ := cmd.Flags().GetString("issue-date")
		dueStr, _ := cmd.Flags().GetString("due")
		netStr, _ := cmd.Flags().GetString("net")
		vatStr, _ := cmd.Flags().GetString("vat")
		totalStr, _ := cmd.Flags().GetString("total")
		companyName, _ := cmd.Flags().GetString("company")
		paid, _ := cmd.Flags().GetBool("paid")

		if strings.TrimSpace(number) == "" {
			return fmt.Errorf("invoice number is required")
		}

		issueDate := format.DMYToISO(issueStr)
		if issueDate == "" {
			return fmt.Errorf("invalid issue date %q, expected dd/mm/yyyy", issueStr)
		}

		// Due date defaults to one month after issue.
		dueDate := format.AddMonths(issueDate, 1)
		if dueStr != "" {
			dueDate = format.DMYToISO(dueStr)
			if dueDate == "" {
				return fmt.Errorf("invalid due date %q, expected dd/mm/yyyy", dueStr)
			}
		}

		net := f.ParseNumber(netStr)
		if net <= 0 {
			return fmt.Errorf("net must be a positive amount, got %q", netStr)
		}
		vat := f.ParseNumber(vatStr)

		// Total is free entry; when the flag is omitted it defaults to
		// net + vat.
		total := net + vat
		if cmd.Flags().Changed("total") {
			total = f.ParseNumber(totalStr)
		}

		companyID := job.CompanyID
		if companyName != "" {
			companyID = appInstance.Companies.UpsertByName(ctx, companyName)
		}

		invoice := appInstance.Jobs.AddInvoice(ctx, job.ID, service.InvoiceFields{
			CompanyID: companyID,
			Number:    number,
			IssueDate: issueDate,
			DueDate:   dueDate,
			Net:       net,
			VAT:       vat,
			Total:     total,
			Paid:      paid,
		})
		if invoice == nil {
			return fmt.Errorf("job not found")
		}

		fmt.Printf("✓ Invoice #%s issued (total %s)\n", invoice.Number, f.Currency(float64(invoice.Total)))
		return nil
	},
}

var invoicesEditCmd = &cobra.Command{
	Use:   "edit [job-id] [invoice-id]",
	Short: "Edit an invoice",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		f := appInstance.Format

		job := findJob(ctx, args[0])
		if job == nil {
			return fmt.Errorf("job not found")
		}
		invoice := findInvoice(job, args[1])
		if invoice == nil {
			return fmt.Errorf("invoice not found")
		}

		var update service.InvoiceUpdate

		if cmd.Flags().Changed("number") {
			number, _ := cmd.Flags().GetString("number")
			if strings.TrimSpace(number) == "" {
				return fmt.Errorf("invoice number cannot be empty")
			}
			update.Number = &number
		}
		if cmd.Flags().Changed("issue-date") {
			s, _ := cmd.Flags().GetString("issue-date")
			iso := format.DMYToISO(s)
			if iso == "" {
				return fmt.Errorf("invalid issue date %q, expected dd/mm/yyyy", s)
			}
			update.IssueDate = &iso
		}
		if cmd.Flags().Changed("due") {
			s, _ := cmd.Flags().GetString("due")
			iso := format.DMYToISO(s)
			if iso == "" {
				return fmt.Errorf("invalid due date %q, expected dd/mm/yyyy", s)
			}
			update.DueDate = &iso
		}
		if cmd.Flags().Changed("net") {
			s, _ := cmd.Flags().GetString("net")
			net := f.ParseNumber(s)
			if net <= 0 {
				return fmt.Errorf("net must be a positive amount, got %q", s)
			}
			update.Net = &net
		}
		if cmd.Flags().Changed("vat") {
			s, _ := cmd.Flags().GetString("vat")
			vat := f.ParseNumber(s)
			update.VAT = &vat
		}
		if cmd.Flags().Changed("total") {
			s, _ := cmd.Flags().GetString("total")
			total := f.ParseNumber(s)
			update.Total = &total
		}
		if cmd.Flags().Changed("company") {
			companyName, _ := cmd.Flags().GetString("company")
			companyID := appInstance.Companies.UpsertByName(ctx, companyName)
			update.CompanyID = &companyID
		}

		appInstance.Jobs.UpdateInvoice(ctx, job.ID, invoice.ID, update)
		fmt.Printf("✓ Invoice #%s updated\n", invoice.Number)
		return nil
	},
}

var invoicesDeleteCmd = &cobra.Command{
	Use:   "delete [job-id] [invoice-id]",
	Short: "Delete an invoice",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		job := findJob(ctx, args[0])
		if job == nil {
			return fmt.Errorf("job not found")
		}
		invoice := findInvoice(job, args[1])
		if invoice == nil {
			return fmt.Errorf("invoice not found")
		}

		appInstance.Jobs.DeleteInvoice(ctx, job.ID, invoice.ID)
		fmt.Printf("✓ Invoice #%s deleted\n", invoice.Number)
		return nil
	},
}

var invoicesPaidCmd = &cobra.Command{
	Use:   "paid [job-id] [invoice-id]",
	Short: "Toggle an invoice's paid flag",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		job := findJob(ctx, args[0])
		if job == nil {
			return fmt.Errorf("job not found")
		}
		invoice := findInvoice(job, args[1])
		if invoice == nil {
			return fmt.Errorf("invoice not found")
		}

		paid := !invoice.Paid
		appInstance.Jobs.UpdateInvoice(ctx, job.ID, invoice.ID, service.InvoiceUpdate{Paid: &paid})

		if paid {
			fmt.Printf("✓ Invoice #%s marked as paid\n", invoice.Number)
		} else {
			fmt.Printf("✓ Invoice #%s marked as issued\n", invoice.Number)
		}
		return nil
	},
}

func init() {
	invoicesCmd.AddCommand(invoicesListCmd)
	invoicesCmd.AddCommand(invoicesAddCmd)
	invoicesCmd.AddCommand(invoicesEditCmd)
	invoicesCmd.AddCommand(invoicesDeleteCmd)
	invoicesCmd.AddCommand(invoicesPaidCmd)

	invoicesAddCmd.Flags().String("number", "", "Invoice number (required)")
	invoicesAddCmd.MarkFlagRequired("number")
	invoicesAddCmd.Flags().String("issue-date", "", "Issue date as dd/mm/yyyy (required)")
	invoicesAddCmd.MarkFlagRequired("issue-date")
	invoicesAddCmd.Flags().String("due", "", "Due date as dd/mm/yyyy (defaults to issue date + 1 month)")
	invoicesAddCmd.Flags().String("net", "", "Net amount, localized (required)")
	invoicesAddCmd.MarkFlagRequired("net")
	invoicesAddCmd.Flags().String("vat", "", "VAT amount, localized")
	invoicesAddCmd.Flags().String("total", "", "Total amount (defaults to net + vat)")
	invoicesAddCmd.Flags().String("company", "", "Company name (defaults to the job's company)")
	invoicesAddCmd.Flags().Bool("paid", false, "Mark the invoice as already paid")

	invoicesEditCmd.Flags().String("number", "", "New invoice number")
	invoicesEditCmd.Flags().String("issue-date", "", "New issue date (dd/mm/yyyy)")
	invoicesEditCmd.Flags().String("due", "", "New due date (dd/mm/yyyy)")
	invoicesEditCmd.Flags().String("net", "", "New net amount")
	invoicesEditCmd.Flags().String("vat", "", "New VAT amount")
	invoicesEditCmd.Flags().String("total", "", "New total amount")
	invoicesEditCmd.Flags().String("company", "", "New company name")
}
