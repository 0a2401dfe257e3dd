package schedule_test

import (
	"bytes"
	"encoding/csv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/shift-engine/schedule"
)

// =============================================================================
// PROJECTION TESTS
// =============================================================================

func TestProject_SortsByDateOnly_StableTies(t *testing.T) {
	shifts := []schedule.Assignment{
		{Date: "2026-05-02", SlotType: "13:00-17:00", Employee: "Zed"},
		{Date: "2026-05-01", SlotType: "13:00-17:00", Employee: "Bob"},
		{Date: "2026-05-01", SlotType: "09:00-13:00", Employee: "Alice"},
	}

	rows := schedule.Project(shifts)
	require.Len(t, rows, 3)

	// Date ascending; the two 05-01 rows keep their input order even
	// though their slot labels would sort the other way.
	assert.Equal(t, "Bob", rows[0].Employee)
	assert.Equal(t, "Alice", rows[1].Employee)
	assert.Equal(t, "Zed", rows[2].Employee)
}

func TestProject_SubstitutesPlaceholderForMissingFields(t *testing.T) {
	// GIVEN: a record with no employee (a partial legacy row)
	// WHEN:  the ledger is projected
	// THEN:  the row survives with the placeholder, row count unchanged

	shifts := []schedule.Assignment{
		{Date: "2026-05-01", SlotType: "09:00-13:00", Employee: ""},
		{Date: "2026-05-02", SlotType: "09:00-13:00", Employee: "Alice"},
	}

	rows := schedule.Project(shifts)
	require.Len(t, rows, 2)
	assert.Equal(t, schedule.MissingField, rows[0].Employee)
	assert.Equal(t, "Alice", rows[1].Employee)
}

// =============================================================================
// CSV ENCODING TESTS
// =============================================================================

func TestWriteCSV_RoundTrip(t *testing.T) {
	// The encoding is lossless for the three projected fields, including
	// non-ASCII employee names.
	shifts := []schedule.Assignment{
		{ID: "1", Date: "2026-05-02", SlotType: "13:00-17:00", Employee: "Søren"},
		{ID: "2", Date: "2026-05-01", SlotType: "09:00-13:00", Employee: "渡辺"},
		{ID: "3", Date: "2026-05-01", SlotType: "13:00-17:00", Employee: "O'Brien, Jr."},
	}

	var buf bytes.Buffer
	require.NoError(t, schedule.WriteCSV(&buf, shifts, false))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 4, "header plus one row per assignment")

	assert.Equal(t, []string{"date", "time", "employee"}, records[0])
	assert.Equal(t, []string{"2026-05-01", "09:00-13:00", "渡辺"}, records[1])
	assert.Equal(t, []string{"2026-05-01", "13:00-17:00", "O'Brien, Jr."}, records[2])
	assert.Equal(t, []string{"2026-05-02", "13:00-17:00", "Søren"}, records[3])
}

func TestWriteCSV_ByteOrderMarker(t *testing.T) {
	shifts := []schedule.Assignment{
		{Date: "2026-05-01", SlotType: "09:00-13:00", Employee: "Alice"},
	}

	var withBOM bytes.Buffer
	require.NoError(t, schedule.WriteCSV(&withBOM, shifts, true))
	assert.True(t, bytes.HasPrefix(withBOM.Bytes(), []byte{0xEF, 0xBB, 0xBF}),
		"spreadsheet target needs the UTF-8 marker")

	var plain bytes.Buffer
	require.NoError(t, schedule.WriteCSV(&plain, shifts, false))
	assert.False(t, bytes.HasPrefix(plain.Bytes(), []byte{0xEF, 0xBB, 0xBF}))

	// BOM aside, the payload is identical.
	assert.Equal(t, plain.Bytes(), withBOM.Bytes()[3:])
}

func TestWriteCSV_EmptyLedger(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, schedule.WriteCSV(&buf, nil, false))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 1, "header only")
}
