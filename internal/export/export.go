// Package export writes the roster in formats operators actually ask for.
package export

import (
	"bytes"
	"encoding/csv"
	"io"

	"github.com/jszwec/csvutil"
	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"
	"gopkg.in/yaml.v3"

	"github.com/cris-labs/cris/internal/model"
)

// WriteCSV writes the roster in the durable-table column layout.
func WriteCSV(w io.Writer, records []model.Customer) error {
	raw, err := csvutil.Marshal(records)
	if err != nil {
		return eris.Wrap(err, "export: marshal csv")
	}
	_, err = w.Write(raw)
	return eris.Wrap(err, "export: write csv")
}

// WriteYAML writes the roster as a YAML document list.
func WriteYAML(w io.Writer, records []model.Customer) error {
	enc := yaml.NewEncoder(w)
	defer enc.Close()
	return eris.Wrap(enc.Encode(records), "export: write yaml")
}

// WriteXLSX writes the roster as a single-sheet workbook, reusing the CSV
// header so the columns match the durable table.
func WriteXLSX(w io.Writer, records []model.Customer) error {
	raw, err := csvutil.Marshal(records)
	if err != nil {
		return eris.Wrap(err, "export: marshal rows")
	}
	rows, err := csv.NewReader(bytes.NewReader(raw)).ReadAll()
	if err != nil {
		return eris.Wrap(err, "export: reparse rows")
	}

	f := xlsx.NewFile()
	sheet, err := f.AddSheet("Customers")
	if err != nil {
		return eris.Wrap(err, "export: add sheet")
	}
	for _, row := range rows {
		r := sheet.AddRow()
		for _, cell := range row {
			r.AddCell().Value = cell
		}
	}
	return eris.Wrap(f.Write(w), "export: write xlsx")
}
