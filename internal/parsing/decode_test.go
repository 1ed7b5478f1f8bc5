package parsing

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-parser/internal/types"
)

const janeDoeResponse = `{
	"name": "Jane Doe",
	"contact": {"email": "jane@x.com", "phone": ""},
	"skills": ["Python", "", "SQL"],
	"experience": [
		{
			"job_title": "Engineer",
			"company_name": "Acme",
			"duration_dates": "2020-2022",
			"key_responsibilities": ["Built things"]
		},
		{
			"job_title": "",
			"company_name": "Beta",
			"duration_dates": "2019",
			"key_responsibilities": []
		}
	]
}`

func TestDecodeCandidate(t *testing.T) {
	tests := []struct {
		name      string
		raw       string
		wantError bool
		validate  func(*testing.T, *types.CandidateRecord, types.Diagnostics)
	}{
		{
			name: "full record with filtering",
			raw:  janeDoeResponse,
			validate: func(t *testing.T, rec *types.CandidateRecord, diag types.Diagnostics) {
				assert.Equal(t, "Jane Doe", rec.Name)
				assert.Equal(t, "jane@x.com", rec.Email)
				assert.Equal(t, "", rec.Phone)
				assert.Equal(t, []string{"Python", "SQL"}, rec.Skills)
				require.Len(t, rec.Experience, 1)
				assert.Equal(t, "Engineer", rec.Experience[0].JobTitle)
				assert.Equal(t, "Acme", rec.Experience[0].CompanyName)
				assert.Equal(t, "2020-2022", rec.Experience[0].DurationDates)
				assert.Equal(t, 1, diag.SkillsDropped)
				assert.Equal(t, 1, diag.ExperienceDropped)
			},
		},
		{
			name: "response wrapped in json code fence",
			raw:  "```json\n{\"name\": \"Jane Doe\"}\n```",
			validate: func(t *testing.T, rec *types.CandidateRecord, _ types.Diagnostics) {
				assert.Equal(t, "Jane Doe", rec.Name)
			},
		},
		{
			name: "response wrapped in bare code fence",
			raw:  "```\n{\"name\": \"Jane Doe\"}\n```",
			validate: func(t *testing.T, rec *types.CandidateRecord, _ types.Diagnostics) {
				assert.Equal(t, "Jane Doe", rec.Name)
			},
		},
		{
			name:      "explanatory text instead of JSON",
			raw:       "Sorry, I cannot process this.",
			wantError: true,
		},
		{
			name:      "top-level array",
			raw:       `["not", "an", "object"]`,
			wantError: true,
		},
		{
			name:      "null response",
			raw:       `null`,
			wantError: true,
		},
		{
			name: "missing contact defaults to empty strings",
			raw:  `{"name": "  Jane  "}`,
			validate: func(t *testing.T, rec *types.CandidateRecord, _ types.Diagnostics) {
				assert.Equal(t, "Jane", rec.Name)
				assert.Equal(t, "", rec.Email)
				assert.Equal(t, "", rec.Phone)
				assert.Empty(t, rec.Skills)
				assert.Empty(t, rec.Experience)
			},
		},
		{
			name: "contact is not an object",
			raw:  `{"contact": "jane@x.com"}`,
			validate: func(t *testing.T, rec *types.CandidateRecord, _ types.Diagnostics) {
				assert.Equal(t, "", rec.Email)
				assert.Equal(t, "", rec.Phone)
			},
		},
		{
			name: "skills is not a sequence",
			raw:  `{"skills": "Python, SQL"}`,
			validate: func(t *testing.T, rec *types.CandidateRecord, diag types.Diagnostics) {
				assert.Empty(t, rec.Skills)
				assert.Zero(t, diag.SkillsDropped)
			},
		},
		{
			name: "whitespace-only skills are filtered in order",
			raw:  `{"skills": ["Go", "   ", "Python", "\t"]}`,
			validate: func(t *testing.T, rec *types.CandidateRecord, diag types.Diagnostics) {
				assert.Equal(t, []string{"Go", "Python"}, rec.Skills)
				assert.Equal(t, 2, diag.SkillsDropped)
			},
		},
		{
			name: "numeric skill coerced to string form",
			raw:  `{"skills": ["Python", 3]}`,
			validate: func(t *testing.T, rec *types.CandidateRecord, _ types.Diagnostics) {
				assert.Equal(t, []string{"Python", "3"}, rec.Skills)
			},
		},
		{
			name: "non-object experience entries ignored",
			raw: `{"experience": ["just a string",
				{"job_title": "Dev", "company_name": "Acme", "duration_dates": "2021", "key_responsibilities": ["Shipped", ""]}]}`,
			validate: func(t *testing.T, rec *types.CandidateRecord, diag types.Diagnostics) {
				require.Len(t, rec.Experience, 1)
				assert.Equal(t, []string{"Shipped"}, rec.Experience[0].KeyResponsibilities)
				assert.Equal(t, 1, diag.ExperienceDropped)
				assert.Equal(t, 1, diag.ResponsibilitiesDropped)
			},
		},
		{
			name: "experience is not a sequence",
			raw:  `{"experience": {"job_title": "Dev"}}`,
			validate: func(t *testing.T, rec *types.CandidateRecord, _ types.Diagnostics) {
				assert.Empty(t, rec.Experience)
			},
		},
		{
			name: "entry with whitespace-only company is dropped",
			raw: `{"experience": [
				{"job_title": "Dev", "company_name": "   ", "duration_dates": "2021", "key_responsibilities": []}]}`,
			validate: func(t *testing.T, rec *types.CandidateRecord, diag types.Diagnostics) {
				assert.Empty(t, rec.Experience)
				assert.Equal(t, 1, diag.ExperienceDropped)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, diag, err := DecodeCandidate(tt.raw)
			if tt.wantError {
				require.Error(t, err)
				assert.Nil(t, rec)

				var parseErr *ParseError
				assert.True(t, errors.As(err, &parseErr))
			} else {
				require.NoError(t, err)
				require.NotNil(t, rec)
				if tt.validate != nil {
					tt.validate(t, rec, diag)
				}
			}
		})
	}
}

func TestCleanJSONBlock(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "json fence",
			input:    "```json\n{\"key\": \"value\"}\n```",
			expected: `{"key": "value"}`,
		},
		{
			name:     "bare fence",
			input:    "```\n{\"key\": \"value\"}\n```",
			expected: `{"key": "value"}`,
		},
		{
			name:     "no fence",
			input:    `{"key": "value"}`,
			expected: `{"key": "value"}`,
		},
		{
			name:     "surrounding whitespace",
			input:    "  ```json\n{\"key\": \"value\"}\n```  ",
			expected: `{"key": "value"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, cleanJSONBlock(tt.input))
		})
	}
}

func TestCoerceString(t *testing.T) {
	assert.Equal(t, "text", coerceString("  text  "))
	assert.Equal(t, "", coerceString(nil))
	assert.Equal(t, "42", coerceString(float64(42)))
	assert.Equal(t, "true", coerceString(true))
	assert.Equal(t, "", coerceString(map[string]any{"nested": 1}))
	assert.Equal(t, "", coerceString([]any{"list"}))
}
