// Package normalize turns raw worksheet rows into canonical issue
// records and derives the month bucket for each sheet.
package normalize

import (
	"regexp"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/gensight/gensight/internal/contract"
	"github.com/gensight/gensight/internal/workbook"
	"github.com/gensight/gensight/schema"
)

// Accepted date layouts, day-first. A cell matching neither yields a
// nil date for that record, never a hard failure.
const (
	DateTimeLayout = "02/01/2006 15:04"
	DateLayout     = "02/01/2006"

	dailySheetLayout = "2-1-2006" // matches both DD-MM-YYYY and D-M-YYYY
)

// Unassigned is the sentinel engineer bucket for rows with no engineer
// name.
const Unassigned = "Unassigned"

// Logical columns every sheet must carry. Keys are canonical header
// names after header normalization.
type column int

const (
	colProject column = iota
	colEngineer
	colAssociateID
	colAssociateName
	colDescription
	colStart
	colEnd
	colStatus
	colTicketID
	colRemarks
	columnCount
)

// displayNames are used in SchemaError messages.
var displayNames = [columnCount]string{
	"Project Name", "Engineer Name", "Associate ID", "Associate Name",
	"Issue Description", "Start Date & Time", "End Date & Time",
	"Status", "Request ID", "Remarks",
}

// headerAliases maps normalized header text to the logical column.
// Tolerates the header variations seen in real workbooks (Employee vs
// Associate, Request vs Ticket, with or without "& Time").
var headerAliases = map[string]column{
	"project name": colProject,
	"project":      colProject,

	"engineer name": colEngineer,
	"engineer":      colEngineer,

	"associate id":          colAssociateID,
	"employee id":           colAssociateID,
	"associate employee id": colAssociateID,

	"associate name":          colAssociateName,
	"employee name":           colAssociateName,
	"associate employee name": colAssociateName,

	"issue description": colDescription,
	"issue":             colDescription,
	"description":       colDescription,

	"start date and time": colStart,
	"start date time":     colStart,
	"start date":          colStart,

	"end date and time": colEnd,
	"end date time":     colEnd,
	"end date":          colEnd,

	"status": colStatus,

	"request id":        colTicketID,
	"ticket id":         colTicketID,
	"request ticket id": colTicketID,

	"remarks": colRemarks,
	"remark":  colRemarks,
}

var whitespaceRe = regexp.MustCompile(`\s+`)

// normalizeHeader collapses a raw header cell to its canonical lookup
// form: lower-cased, "&" spelled out, parentheses stripped, slashes and
// repeated whitespace flattened.
func normalizeHeader(cell string) string {
	key := strings.ToLower(strings.TrimSpace(cell))
	key = strings.ReplaceAll(key, "&", "and")
	key = strings.ReplaceAll(key, "(", "")
	key = strings.ReplaceAll(key, ")", "")
	key = strings.ReplaceAll(key, "/", " ")
	key = whitespaceRe.ReplaceAllString(key, " ")
	return strings.TrimSpace(key)
}

// ParseSheetName derives the month bucket from a worksheet name.
// Monthly sheets look like JAN2026; daily sheets look like 05-01-2026
// or 5-1-2026 and map to the month containing that day. Anything else
// is an UnrecognizedSheetNameError.
func ParseSheetName(name string) (schema.MonthKey, error) {
	trimmed := strings.TrimSpace(name)
	if key, err := schema.ParseMonthLabel(trimmed); err == nil {
		return key, nil
	}
	if day, err := time.Parse(dailySheetLayout, trimmed); err == nil {
		return schema.MonthKeyFor(day), nil
	}
	return schema.MonthKey{}, &contract.UnrecognizedSheetNameError{Sheet: name}
}

// ParseDate parses a day-first date cell, with or without a time part.
// The second return value is false when the cell is non-empty but
// matches neither layout.
func ParseDate(cell string) (*time.Time, bool) {
	s := strings.TrimSpace(cell)
	if s == "" {
		return nil, true
	}
	if t, err := time.Parse(DateTimeLayout, s); err == nil {
		return &t, true
	}
	if t, err := time.Parse(DateLayout, s); err == nil {
		return &t, true
	}
	return nil, false
}

// FormatDateTime renders a timestamp back into the workbook's datetime
// layout. Parsing then formatting a valid cell is idempotent.
func FormatDateTime(t time.Time) string {
	return t.Format(DateTimeLayout)
}

// Sheet converts one raw worksheet into issue records plus the sheet's
// derived MonthKey. A missing required column is a SchemaError; an
// unrecognizable sheet name is an UnrecognizedSheetNameError. Rows with
// unparsable dates are retained with nil dates.
func Sheet(raw workbook.RawSheet, log zerolog.Logger) ([]schema.IssueRecord, schema.MonthKey, error) {
	sheetKey, err := ParseSheetName(raw.Name)
	if err != nil {
		return nil, schema.MonthKey{}, err
	}
	if len(raw.Rows) == 0 {
		return nil, sheetKey, nil
	}

	index, err := mapHeader(raw.Name, raw.Rows[0])
	if err != nil {
		return nil, sheetKey, err
	}

	records := make([]schema.IssueRecord, 0, len(raw.Rows)-1)
	for rowNum, row := range raw.Rows[1:] {
		if emptyRow(row) {
			continue
		}
		rec := buildRecord(row, index, sheetKey, raw.Name, rowNum+2, log)
		records = append(records, rec)
	}
	return records, sheetKey, nil
}

// mapHeader resolves required column positions from the header row.
func mapHeader(sheet string, header []string) ([columnCount]int, error) {
	var index [columnCount]int
	for i := range index {
		index[i] = -1
	}
	for pos, cell := range header {
		if col, ok := headerAliases[normalizeHeader(cell)]; ok && index[col] == -1 {
			index[col] = pos
		}
	}

	var missing []string
	for col, pos := range index {
		if pos == -1 {
			missing = append(missing, displayNames[col])
		}
	}
	if len(missing) > 0 {
		return index, &contract.SchemaError{Sheet: sheet, Missing: missing}
	}
	return index, nil
}

// buildRecord assembles one IssueRecord from a data row.
func buildRecord(row []string, index [columnCount]int, sheetKey schema.MonthKey, sheet string, rowNum int, log zerolog.Logger) schema.IssueRecord {
	cell := func(col column) string {
		pos := index[col]
		if pos < 0 || pos >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[pos])
	}

	rec := schema.IssueRecord{
		Project:       cell(colProject),
		Engineer:      cell(colEngineer),
		AssociateID:   cell(colAssociateID),
		AssociateName: cell(colAssociateName),
		Description:   cell(colDescription),
		Status:        strings.ToLower(cell(colStatus)),
		TicketID:      cell(colTicketID),
		Remarks:       cell(colRemarks),
	}

	start, ok := ParseDate(cell(colStart))
	if !ok {
		log.Warn().Str("sheet", sheet).Int("row", rowNum).Str("cell", cell(colStart)).
			Msg("unparsable start date, keeping row with nil date")
	}
	end, ok := ParseDate(cell(colEnd))
	if !ok {
		log.Warn().Str("sheet", sheet).Int("row", rowNum).Str("cell", cell(colEnd)).
			Msg("unparsable end date, keeping row with nil date")
	}

	// Start must not be after end; a violating end cell is treated the
	// same as an unparsable one.
	if start != nil && end != nil && start.After(*end) {
		log.Warn().Str("sheet", sheet).Int("row", rowNum).
			Time("start", *start).Time("end", *end).
			Msg("start after end, dropping end timestamp")
		end = nil
	}
	rec.Start = start
	rec.End = end

	// The row's own date is the source of truth for the month bucket;
	// the sheet label is only the fallback for undated rows.
	if start != nil {
		rec.Month = schema.MonthKeyFor(*start)
	} else {
		rec.Month = sheetKey
	}
	return rec
}

// emptyRow reports whether every cell in the row is blank.
func emptyRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
