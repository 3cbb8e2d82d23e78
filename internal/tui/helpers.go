package tui

import (
	"fmt"

	"github.com/sgodoy/joblist/internal/domain"
	"github.com/sgodoy/joblist/internal/format"
)

// dueLabel renders a job's due status with the matching style. A paid
// job shows when payment landed instead of an urgency warning.
func dueLabel(job *domain.Job) string {
	status := job.DueStatus()
	switch status.State {
	case domain.DuePaid:
		return paidStyle.Render(fmt.Sprintf("✓ paid %s", format.ISOToDMY(job.DueDate)))
	case domain.DueOverdue:
		return overdueStyle.Render(fmt.Sprintf("overdue %dd", -status.Days))
	case domain.DueSoon:
		if status.Days == 0 {
			return dueSoonStyle.Render("due today")
		}
		return dueSoonStyle.Render(fmt.Sprintf("due in %dd", status.Days))
	case domain.DueNormal:
		return subtitleStyle.Render(fmt.Sprintf("due in %dd", status.Days))
	default:
		return ""
	}
}

// marginLabel renders a margin with profit/loss coloring.
func marginLabel(totals domain.Totals) string {
	s := fmt.Sprintf("%.1f%%", totals.Margin*100)
	if totals.Profit < 0 {
		return lossStyle.Render(s)
	}
	return profitStyle.Render(s)
}

// truncateStr truncates a string to the specified length with ellipsis
func truncateStr(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}
