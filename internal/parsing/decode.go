// Package parsing decodes the untrusted LLM response into a well-typed
// CandidateRecord. Missing fields get defaults, scalars are coerced to trimmed
// strings, and malformed sub-entries are filtered rather than surfaced, with
// the drops counted in the returned Diagnostics.
package parsing

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jonathan/resume-parser/internal/schemas"
	"github.com/jonathan/resume-parser/internal/types"
)

// DecodeCandidate parses a raw inference response into a CandidateRecord.
// The input may be wrapped in markdown code fences. A response that is not a
// JSON object fails with a ParseError and a nil record; the caller must skip
// persistence for that file.
func DecodeCandidate(raw string) (*types.CandidateRecord, types.Diagnostics, error) {
	var diag types.Diagnostics

	text := cleanJSONBlock(raw)

	var parsed map[string]any
	if err := json.Unmarshal([]byte(text), &parsed); err != nil {
		return nil, diag, &ParseError{
			Message: "response is not valid JSON",
			Cause:   err,
		}
	}
	if parsed == nil {
		return nil, diag, &ParseError{Message: "response is not a JSON object"}
	}

	record := &types.CandidateRecord{
		Name:       coerceString(parsed["name"]),
		Skills:     []string{},
		Experience: []types.ExperienceEntry{},
	}

	// Contact is flattened here; it is never carried as a nested object.
	if contact, ok := parsed["contact"].(map[string]any); ok {
		record.Email = coerceString(contact["email"])
		record.Phone = coerceString(contact["phone"])
	}

	if skills, ok := parsed["skills"].([]any); ok {
		for _, item := range skills {
			skill := coerceString(item)
			if skill == "" {
				diag.SkillsDropped++
				continue
			}
			record.Skills = append(record.Skills, skill)
		}
	}

	if experience, ok := parsed["experience"].([]any); ok {
		for _, item := range experience {
			exp, ok := item.(map[string]any)
			if !ok {
				diag.ExperienceDropped++
				continue
			}

			entry := types.ExperienceEntry{
				JobTitle:            coerceString(exp["job_title"]),
				CompanyName:         coerceString(exp["company_name"]),
				DurationDates:       coerceString(exp["duration_dates"]),
				KeyResponsibilities: []string{},
			}
			if resps, ok := exp["key_responsibilities"].([]any); ok {
				for _, r := range resps {
					resp := coerceString(r)
					if resp == "" {
						diag.ResponsibilitiesDropped++
						continue
					}
					entry.KeyResponsibilities = append(entry.KeyResponsibilities, resp)
				}
			}

			// An entry without both a job title and a company name carries
			// too little signal to persist.
			if entry.JobTitle == "" || entry.CompanyName == "" {
				diag.ExperienceDropped++
				continue
			}
			record.Experience = append(record.Experience, entry)
		}
	}

	if err := validateRecord(record); err != nil {
		return nil, diag, err
	}

	return record, diag, nil
}

// validateRecord checks the normalized record against the embedded JSON
// Schema. Coercion should always produce a conforming record; a violation
// here indicates a decoding bug, reported as a ParseError.
func validateRecord(record *types.CandidateRecord) error {
	data, err := json.Marshal(record)
	if err != nil {
		return &ParseError{Message: "failed to marshal normalized record", Cause: err}
	}
	if err := schemas.ValidateCandidateJSON(string(data)); err != nil {
		return &ParseError{Message: "normalized record violates schema", Cause: err}
	}
	return nil
}

// coerceString converts a decoded JSON value to its trimmed string form.
// Missing values and composite types become the empty string.
func coerceString(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(t)
	case float64:
		return strings.TrimSpace(fmt.Sprintf("%v", t))
	case bool:
		return fmt.Sprintf("%v", t)
	default:
		return ""
	}
}

// cleanJSONBlock removes markdown code block wrappers from JSON
func cleanJSONBlock(text string) string {
	text = strings.TrimSpace(text)
	if strings.HasPrefix(text, "```json") {
		text = strings.TrimPrefix(text, "```json")
		text = strings.TrimPrefix(text, "```")
		text = strings.TrimSuffix(text, "```")
		text = strings.TrimSpace(text)
	} else if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```")
		text = strings.TrimSuffix(text, "```")
		text = strings.TrimSpace(text)
	}
	return text
}
