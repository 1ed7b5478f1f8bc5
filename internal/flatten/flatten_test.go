package flatten

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonathan/resume-parser/internal/types"
)

func janeDoeRecord() *types.CandidateRecord {
	return &types.CandidateRecord{
		Name:   "Jane Doe",
		Email:  "jane@x.com",
		Phone:  "",
		Skills: []string{"Python", "SQL"},
		Experience: []types.ExperienceEntry{
			{
				JobTitle:            "Engineer",
				CompanyName:         "Acme",
				DurationDates:       "2020-2022",
				KeyResponsibilities: []string{"Built things"},
			},
		},
	}
}

func TestFlatten_Scenario(t *testing.T) {
	row := Flatten(janeDoeRecord(), "jane_doe.pdf")

	assert.Equal(t, "jane_doe.pdf", row.Filename)
	assert.Equal(t, "Jane Doe", row.Name)
	assert.Equal(t, "jane@x.com", row.Email)
	assert.Equal(t, "", row.Phone)
	assert.Equal(t, "Python, SQL", row.Skills)
	assert.Equal(t, "Engineer at Acme (2020-2022)", row.Experience)
}

func TestFlatten_Deterministic(t *testing.T) {
	rec := janeDoeRecord()

	first := Flatten(rec, "jane_doe.pdf")
	second := Flatten(rec, "jane_doe.pdf")

	assert.Equal(t, first, second)
}

func TestFlatten_EmptyRecord(t *testing.T) {
	row := Flatten(&types.CandidateRecord{}, "empty.txt")

	assert.Equal(t, "empty.txt", row.Filename)
	assert.Equal(t, "", row.Skills)
	assert.Equal(t, "", row.Experience)

	// All six values present even when data is absent.
	assert.Len(t, row.Values(), 6)
}

func TestFlatten_MultipleExperienceEntriesKeepOrder(t *testing.T) {
	rec := &types.CandidateRecord{
		Experience: []types.ExperienceEntry{
			{JobTitle: "Senior Dev", CompanyName: "Acme", DurationDates: "2022-2024"},
			{JobTitle: "Dev", CompanyName: "Beta", DurationDates: "2019-2022"},
		},
	}

	row := Flatten(rec, "r.docx")
	assert.Equal(t, "Senior Dev at Acme (2022-2024) | Dev at Beta (2019-2022)", row.Experience)
}
