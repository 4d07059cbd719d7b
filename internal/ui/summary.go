package ui

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/imamik/redisflow/internal/provisioning/workflow"
)

// RenderSummary produces a lipgloss-styled summary of a run. apiCalls is the
// number of ARM calls made; a negative value omits the line.
func RenderSummary(outcome *workflow.Outcome, runErr error, apiCalls int) string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(titleStyle.Render("  redisflow run"))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("  " + strings.Repeat("═", 30)))
	b.WriteString("\n\n")

	rg := outcome.ResourceGroupName
	if rg == "" {
		rg = "(not created)"
	}
	fmt.Fprintf(&b, "  Resource group:  %s\n", rg)
	fmt.Fprintf(&b, "  Duration:        %v\n", outcome.Duration.Round(time.Second))
	if apiCalls >= 0 {
		fmt.Fprintf(&b, "  ARM calls:       %d\n", apiCalls)
	}

	if len(outcome.Caches) > 0 {
		b.WriteString("\n")
		b.WriteString(sectionStyle.Render("  Caches"))
		b.WriteString("\n")
		b.WriteString(dimStyle.Render("  " + strings.Repeat("─", 35)))
		b.WriteString("\n")
		for _, c := range outcome.Caches {
			var notes []string
			if slices.Contains(outcome.PremiumProcessed, c.Name) {
				notes = append(notes, "maintained")
			}
			if slices.Contains(outcome.Deleted, c.Name) {
				notes = append(notes, "deleted")
			}
			fmt.Fprintf(&b, "    %-24s %-8s %s%d", c.Name, c.Tier, c.Family, c.Capacity)
			if len(notes) > 0 {
				b.WriteString("  ")
				b.WriteString(dimStyle.Render(strings.Join(notes, ", ")))
			}
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(sectionStyle.Render("  Result"))
	b.WriteString("\n")
	b.WriteString(statusLine("Workflow", runErr, false))
	if outcome.DetachedErr != nil {
		b.WriteString(statusLine("Detached operations", outcome.DetachedErr, false))
	}
	b.WriteString(statusLine("Cleanup", outcome.CleanupErr, outcome.CleanupSkipped))

	return b.String()
}

func statusLine(label string, err error, skipped bool) string {
	switch {
	case err != nil:
		return fmt.Sprintf("    %s %s: %s\n", failedStyle.Render(crossMark), label, failedStyle.Render(err.Error()))
	case skipped:
		return fmt.Sprintf("    %s %s: %s\n", warningStyle.Render(skipMark), label, dimStyle.Render("nothing to clean up"))
	default:
		return fmt.Sprintf("    %s %s\n", okStyle.Render(checkMark), label)
	}
}
