// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/resume-parser/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		// Truncate long lines
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintCandidateRecord outputs a human-readable summary of a decoded record
// along with its filtering diagnostics.
func (p *Printer) PrintCandidateRecord(filename string, record *types.CandidateRecord, diag types.Diagnostics) {
	if record == nil {
		return
	}

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Name:   %s\n", record.Name))
	sb.WriteString(fmt.Sprintf("Email:  %s\n", record.Email))
	sb.WriteString(fmt.Sprintf("Phone:  %s\n", record.Phone))

	if len(record.Skills) > 0 {
		sb.WriteString("\nSkills:\n")
		count := min(len(record.Skills), maxItemsToShow)
		for i := 0; i < count; i++ {
			sb.WriteString(fmt.Sprintf("  • %s\n", record.Skills[i]))
		}
		if len(record.Skills) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(record.Skills)-maxItemsToShow))
		}
	}

	if len(record.Experience) > 0 {
		sb.WriteString("\nExperience:\n")
		count := min(len(record.Experience), maxItemsToShow)
		for i := 0; i < count; i++ {
			e := record.Experience[i]
			sb.WriteString(fmt.Sprintf("  • %s at %s (%s)\n", e.JobTitle, e.CompanyName, e.DurationDates))
		}
		if len(record.Experience) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(record.Experience)-maxItemsToShow))
		}
	}

	if diag.Total() > 0 {
		sb.WriteString(fmt.Sprintf("\nFiltered: %d skill(s), %d experience entry(ies), %d responsibility(ies)\n",
			diag.SkillsDropped, diag.ExperienceDropped, diag.ResponsibilitiesDropped))
	}

	p.printBox(fmt.Sprintf("Candidate: %s", filename), strings.TrimRight(sb.String(), "\n"))
}
