// Package types provides type definitions for structured data used throughout the resume-parser system.
package types

// ExperienceEntry represents a single position extracted from a resume.
// An entry is only retained when both JobTitle and CompanyName are non-empty
// after trimming; the decoder enforces this.
type ExperienceEntry struct {
	JobTitle            string   `json:"job_title"`
	CompanyName         string   `json:"company_name"`
	DurationDates       string   `json:"duration_dates"`
	KeyResponsibilities []string `json:"key_responsibilities"`
}

// CandidateRecord is the canonical structured form of one resume's extracted
// data. Contact information is flattened to Email/Phone at decode time; it is
// never carried as a nested object.
type CandidateRecord struct {
	Name       string            `json:"name"`
	Email      string            `json:"email"`
	Phone      string            `json:"phone"`
	Skills     []string          `json:"skills"`
	Experience []ExperienceEntry `json:"experience"`
}

// Diagnostics counts entries filtered during decoding. Dropping malformed
// sub-entries does not fail the record; the counts make the filtering
// observable.
type Diagnostics struct {
	SkillsDropped           int
	ExperienceDropped       int
	ResponsibilitiesDropped int
}

// Total returns the total number of dropped items across all categories.
func (d Diagnostics) Total() int {
	return d.SkillsDropped + d.ExperienceDropped + d.ResponsibilitiesDropped
}

// FlatRow is the six-field tabular projection of a CandidateRecord used for
// persistence. Field order matches the ledger column order.
type FlatRow struct {
	Filename   string
	Name       string
	Email      string
	Phone      string
	Skills     string
	Experience string
}

// Columns lists the ledger column names in their fixed persisted order.
func Columns() []string {
	return []string{"filename", "Name", "Email", "Phone", "Skills", "Experience"}
}

// Values returns the row values in the same fixed order as Columns.
func (r FlatRow) Values() []string {
	return []string{r.Filename, r.Name, r.Email, r.Phone, r.Skills, r.Experience}
}
