// Package flatten projects a CandidateRecord onto the flat six-field row
// persisted in the ledger. The transform is pure and deterministic.
package flatten

import (
	"fmt"
	"strings"

	"github.com/jonathan/resume-parser/internal/types"
)

// Flatten converts a validated CandidateRecord plus its source filename into a
// FlatRow. Empty sequences become empty strings, never omitted fields, so the
// ledger never needs to special-case missing columns.
func Flatten(record *types.CandidateRecord, filename string) types.FlatRow {
	return types.FlatRow{
		Filename:   filename,
		Name:       record.Name,
		Email:      record.Email,
		Phone:      record.Phone,
		Skills:     strings.Join(record.Skills, ", "),
		Experience: summarizeExperience(record.Experience),
	}
}

// summarizeExperience renders each entry as "<title> at <company> (<dates>)"
// and joins them with " | ", preserving original order.
func summarizeExperience(entries []types.ExperienceEntry) string {
	if len(entries) == 0 {
		return ""
	}

	summaries := make([]string, 0, len(entries))
	for _, e := range entries {
		summaries = append(summaries, fmt.Sprintf("%s at %s (%s)", e.JobTitle, e.CompanyName, e.DurationDates))
	}
	return strings.Join(summaries, " | ")
}
