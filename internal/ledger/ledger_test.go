package ledger

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-parser/internal/types"
)

func tempLedger(t *testing.T) *Ledger {
	t.Helper()
	return New(filepath.Join(t.TempDir(), "resume_details.csv"))
}

func sampleRow(filename string) types.FlatRow {
	return types.FlatRow{
		Filename:   filename,
		Name:       "Jane Doe",
		Email:      "jane@x.com",
		Phone:      "",
		Skills:     "Python, SQL",
		Experience: "Engineer at Acme (2020-2022)",
	}
}

func readAll(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	return rows
}

func TestAppend_HeaderWrittenExactlyOnce(t *testing.T) {
	l := tempLedger(t)

	require.NoError(t, l.Append(sampleRow("a.pdf")))
	require.NoError(t, l.Append(sampleRow("b.docx")))
	require.NoError(t, l.Append(sampleRow("c.txt")))

	rows := readAll(t, l.Path())
	require.Len(t, rows, 4) // one header plus three data rows
	assert.Equal(t, []string{"filename", "Name", "Email", "Phone", "Skills", "Experience"}, rows[0])
	assert.Equal(t, "a.pdf", rows[1][0])
	assert.Equal(t, "c.txt", rows[3][0])
}

func TestAppend_FixedFieldOrder(t *testing.T) {
	l := tempLedger(t)
	require.NoError(t, l.Append(sampleRow("a.pdf")))

	rows := readAll(t, l.Path())
	assert.Equal(t, []string{"a.pdf", "Jane Doe", "jane@x.com", "", "Python, SQL", "Engineer at Acme (2020-2022)"}, rows[1])
}

func TestIsProcessed_MissingFile(t *testing.T) {
	l := tempLedger(t)

	processed, err := l.IsProcessed("a.pdf")
	require.NoError(t, err)
	assert.False(t, processed)
}

func TestIsProcessed_ExactFilenameMatch(t *testing.T) {
	l := tempLedger(t)
	require.NoError(t, l.Append(sampleRow("resume_jane.pdf")))

	processed, err := l.IsProcessed("resume_jane.pdf")
	require.NoError(t, err)
	assert.True(t, processed)

	// A filename that is a substring of a ledgered one must not match.
	processed, err = l.IsProcessed("jane.pdf")
	require.NoError(t, err)
	assert.False(t, processed)

	// A filename appearing in a non-filename column must not match either.
	row := sampleRow("other.pdf")
	row.Experience = "Engineer at zeta.docx (2020)"
	require.NoError(t, l.Append(row))

	processed, err = l.IsProcessed("zeta.docx")
	require.NoError(t, err)
	assert.False(t, processed)
}

func TestAppend_ValuesWithDelimitersRoundTrip(t *testing.T) {
	l := tempLedger(t)
	row := sampleRow("quoted.pdf")
	row.Name = `Doe, Jane "JD"`
	require.NoError(t, l.Append(row))

	rows := readAll(t, l.Path())
	assert.Equal(t, `Doe, Jane "JD"`, rows[1][1])
}

func TestAppend_UnwritablePath(t *testing.T) {
	l := New(filepath.Join(t.TempDir(), "missing", "nested", "out.csv"))

	err := l.Append(sampleRow("a.pdf"))
	require.Error(t, err)

	var perr *PersistenceError
	assert.ErrorAs(t, err, &perr)
}
