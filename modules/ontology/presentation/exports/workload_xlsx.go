package exports

import (
	"io"

	"github.com/go-faster/errors"
	"github.com/xuri/excelize/v2"

	"github.com/xe-labs/ontoview/modules/ontology/presentation/viewmodels"
)

const (
	WorkloadSheet   = "Workload"
	XLSXContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// WriteWorkloadXLSX writes one sheet with a bold header row followed by the
// workload records in their given order.
func WriteWorkloadXLSX(w io.Writer, headers [3]string, records []viewmodels.Workload) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", WorkloadSheet); err != nil {
		return errors.Wrap(err, "rename sheet")
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return errors.Wrap(err, "header style")
	}

	if err := setRow(f, 1, headers[:]); err != nil {
		return err
	}
	if err := f.SetCellStyle(WorkloadSheet, "A1", "C1", bold); err != nil {
		return errors.Wrap(err, "style header")
	}
	for i, rec := range records {
		if err := setRow(f, i+2, []string{rec.Employee, rec.Project, rec.Task}); err != nil {
			return err
		}
	}
	if err := f.SetColWidth(WorkloadSheet, "A", "C", 30); err != nil {
		return errors.Wrap(err, "column width")
	}
	if err := f.Write(w); err != nil {
		return errors.Wrap(err, "write workbook")
	}
	return nil
}

func setRow(f *excelize.File, row int, values []string) error {
	for col, v := range values {
		cell, err := excelize.CoordinatesToCellName(col+1, row)
		if err != nil {
			return errors.Wrap(err, "cell name")
		}
		if err := f.SetCellStr(WorkloadSheet, cell, v); err != nil {
			return errors.Wrapf(err, "set %s", cell)
		}
	}
	return nil
}
