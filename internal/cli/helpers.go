package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/sgodoy/joblist/internal/domain"
)

// shortID returns the display prefix of an opaque id.
func shortID(id string) string {
	if len(id) <= 8 {
		return id
	}
	return id[:8]
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}

// findJob resolves a full id or an unambiguous id prefix to a job.
// Returns nil when nothing (or more than one job) matches.
func findJob(ctx context.Context, ref string) *domain.Job {
	jobs := appInstance.Jobs.List(ctx)

	var match *domain.Job
	for _, j := range jobs {
		if j.ID == ref {
			return j
		}
		if strings.HasPrefix(j.ID, ref) {
			if match != nil {
				return nil // ambiguous
			}
			match = j
		}
	}
	return match
}

// findExpense resolves an expense inside a job by id or prefix.
func findExpense(job *domain.Job, ref string) *domain.Expense {
	var match *domain.Expense
	for _, e := range job.Expenses {
		if e.ID == ref {
			return e
		}
		if strings.HasPrefix(e.ID, ref) {
			if match != nil {
				return nil
			}
			match = e
		}
	}
	return match
}

// findInvoice resolves an invoice inside a job by id, number, or prefix.
func findInvoice(job *domain.Job, ref string) *domain.Invoice {
	var match *domain.Invoice
	for _, inv := range job.Invoices {
		if inv.ID == ref || inv.Number == ref {
			return inv
		}
		if strings.HasPrefix(inv.ID, ref) {
			if match != nil {
				return nil
			}
			match = inv
		}
	}
	return match
}

func confirmPrompt(message string) bool {
	fmt.Printf("%s [y/N] ", message)
	reader := bufio.NewReader(os.Stdin)
	input, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	input = strings.TrimSpace(strings.ToLower(input))
	return input == "y" || input == "yes"
}
