/*
export.go - Deterministic tabular projection of the ledger

PURPOSE:
  Projects the ledger into rows of {date, time, employee} for interchange.
  The output is sorted ascending by date only, with ties broken by stable
  input order, and is lossless for the three projected fields: a CSV
  written here can seed a fresh ledger.

ENCODING:
  CSV with header "date,time,employee", UTF-8. Spreadsheet applications
  need a byte-order marker to detect UTF-8 in non-ASCII employee names,
  so WriteCSV can prepend one.
*/
package schedule

import (
	"encoding/csv"
	"io"
	"sort"
)

// MissingField is substituted for an empty projected field so a partial
// record exports as a full row instead of failing the export.
const MissingField = "-"

var exportHeader = []string{"date", "time", "employee"}

// utf8BOM is the byte-order marker spreadsheet applications use to detect
// UTF-8 encoded CSV.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// ExportRow is one projected assignment.
type ExportRow struct {
	Date     string
	SlotType string
	Employee string
}

// Project returns the shifts as export rows sorted ascending by date.
// The sort is stable, so rows sharing a date keep their input order.
// Empty fields are replaced with MissingField; the row count always
// matches the input.
func Project(shifts []Assignment) []ExportRow {
	ordered := append([]Assignment(nil), shifts...)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Date < ordered[j].Date
	})

	rows := make([]ExportRow, len(ordered))
	for i, s := range ordered {
		rows[i] = ExportRow{
			Date:     orMissing(s.Date),
			SlotType: orMissing(s.SlotType),
			Employee: orMissing(s.Employee),
		}
	}
	return rows
}

// WriteCSV writes the projected shifts as CSV: a header row followed by
// one row per assignment. With withBOM set, a UTF-8 byte-order marker is
// prepended for spreadsheet compatibility.
func WriteCSV(w io.Writer, shifts []Assignment, withBOM bool) error {
	if withBOM {
		if _, err := w.Write(utf8BOM); err != nil {
			return err
		}
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(exportHeader); err != nil {
		return err
	}
	for _, row := range Project(shifts) {
		if err := cw.Write([]string{row.Date, row.SlotType, row.Employee}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func orMissing(s string) string {
	if s == "" {
		return MissingField
	}
	return s
}
