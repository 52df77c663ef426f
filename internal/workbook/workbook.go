// Package workbook reads .xlsx files into raw sheets. All row
// interpretation happens in core/normalize; this package only pulls
// cell text out of the file.
package workbook

import (
	"fmt"

	"github.com/rs/zerolog"
	"github.com/xuri/excelize/v2"
)

// RawSheet is one worksheet: its name plus every row as cell strings.
// The first row is expected to be the header row. Err is set when the
// sheet's rows could not be read; the sheet is still listed so the run
// summary can account for it.
type RawSheet struct {
	Name string
	Rows [][]string
	Err  error
}

// Load opens the workbook at path and returns its sheets in workbook
// order. A sheet that cannot be read is returned with its error set
// rather than aborting the others.
func Load(path string, log zerolog.Logger) ([]RawSheet, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook %q: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	names := f.GetSheetList()
	sheets := make([]RawSheet, 0, len(names))
	for _, name := range names {
		rows, err := f.GetRows(name)
		if err != nil {
			log.Warn().Str("sheet", name).Err(err).Msg("could not read sheet rows")
			sheets = append(sheets, RawSheet{Name: name, Err: fmt.Errorf("read sheet %q: %w", name, err)})
			continue
		}
		sheets = append(sheets, RawSheet{Name: name, Rows: rows})
	}
	return sheets, nil
}
