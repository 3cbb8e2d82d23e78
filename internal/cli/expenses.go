package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/sgodoy/joblist/internal/service"
	"github.com/spf13/cobra"
)

var expensesCmd = &cobra.Command{
	Use:   "expenses",
	Short: "Manage expenses on a job",
	Long:  `Record, edit, and delete expenses against a job. Use "jobs show" to list them.`,
}

var expensesAddCmd = &cobra.Command{
	Use:   "add [job-id]",
	Short: "Record an expense against a job",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		f := appInstance.Format

		job := findJob(ctx, args[0])
		if job == nil {
			return fmt.Errorf("job not found")
		}

		description, _ := cmd.Flags().GetString("description")
		amountStr, _ := cmd.Flags().GetString("amount")
		invoiceRef, _ := cmd.Flags().GetString("invoice")

		if strings.TrimSpace(description) == "" {
			return fmt.Errorf("description is required")
		}
		amount := f.ParseNumber(amountStr)
		if amount <= 0 {
			return fmt.Errorf("amount must be a positive amount, got %q", amountStr)
		}

		var invoiceID string
		if invoiceRef != "" {
			inv := findInvoice(job, invoiceRef)
			if inv == nil {
				return fmt.Errorf("invoice %q not found on this job", invoiceRef)
			}
			invoiceID = inv.ID
		}

		expense := appInstance.Jobs.AddExpense(ctx, job.ID, service.ExpenseFields{
			Description: description,
			Amount:      amount,
			InvoiceID:   invoiceID,
		})
		if expense == nil {
			return fmt.Errorf("job not found")
		}

		fmt.Printf("✓ Expense recorded: %s (%s)\n", expense.Description, f.Currency(float64(expense.Amount)))
		return nil
	},
}

var expensesEditCmd = &cobra.Command{
	Use:   "edit [job-id] [expense-id]",
	Short: "Edit an expense",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		f := appInstance.Format

		job := findJob(ctx, args[0])
		if job == nil {
			return fmt.Errorf("job not found")
		}
		expense := findExpense(job, args[1])
		if expense == nil {
			return fmt.Errorf("expense not found")
		}

		var update service.ExpenseUpdate

		if cmd.Flags().Changed("description") {
			description, _ := cmd.Flags().GetString("description")
			if strings.TrimSpace(description) == "" {
				return fmt.Errorf("description cannot be empty")
			}
			update.Description = &description
		}
		if cmd.Flags().Changed("amount") {
			amountStr, _ := cmd.Flags().GetString("amount")
			amount := f.ParseNumber(amountStr)
			if amount <= 0 {
				return fmt.Errorf("amount must be a positive amount, got %q", amountStr)
			}
			update.Amount = &amount
		}
		if cmd.Flags().Changed("invoice") {
			invoiceRef, _ := cmd.Flags().GetString("invoice")
			invoiceID := ""
			if invoiceRef != "" {
				inv := findInvoice(job, invoiceRef)
				if inv == nil {
					return fmt.Errorf("invoice %q not found on this job", invoiceRef)
				}
				invoiceID = inv.ID
			}
			update.InvoiceID = &invoiceID
		}

		appInstance.Jobs.UpdateExpense(ctx, job.ID, expense.ID, update)
		fmt.Println("✓ Expense updated")
		return nil
	},
}

var expensesDeleteCmd = &cobra.Command{
	Use:   "delete [job-id] [expense-id]",
	Short: "Delete an expense",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		job := findJob(ctx, args[0])
		if job == nil {
			return fmt.Errorf("job not found")
		}
		expense := findExpense(job, args[1])
		if expense == nil {
			return fmt.Errorf("expense not found")
		}

		appInstance.Jobs.DeleteExpense(ctx, job.ID, expense.ID)
		fmt.Printf("✓ Expense deleted: %s\n", expense.Description)
		return nil
	},
}

func init() {
	expensesCmd.AddCommand(expensesAddCmd)
	expensesCmd.AddCommand(expensesEditCmd)
	expensesCmd.AddCommand(expensesDeleteCmd)

	expensesAddCmd.Flags().String("description", "", "What the money went to (required)")
	expensesAddCmd.MarkFlagRequired("description")
	expensesAddCmd.Flags().String("amount", "", "Amount, localized (required)")
	expensesAddCmd.MarkFlagRequired("amount")
	expensesAddCmd.Flags().String("invoice", "", "Invoice id or number to attribute the expense to")

	expensesEditCmd.Flags().String("description", "", "New description")
	expensesEditCmd.Flags().String("amount", "", "New amount")
	expensesEditCmd.Flags().String("invoice", "", "New invoice id or number (empty to detach)")
}
