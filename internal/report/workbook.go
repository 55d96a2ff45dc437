package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/xuri/excelize/v2"

	"github.com/hsdfat8/kitcheck/internal/domain/models"
)

const (
	warningsSheet = "Warnings"
	kitSheet      = "Kit"
)

var kitHeaders = []string{"Entry", "Unit", "Equipment ID", "Item", "Category", "Mount", "Quantity"}

// WriteWorkbook writes an XLSX workbook with a Warnings sheet and a Kit sheet
func WriteWorkbook(w io.Writer, kit *models.Kit, catalog []models.EquipmentSpec, warnings []models.CompatibilityWarning) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", warningsSheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}
	if _, err := f.NewSheet(kitSheet); err != nil {
		return fmt.Errorf("create kit sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#D3D3D3"}, Pattern: 1},
	})
	if err != nil {
		return fmt.Errorf("create header style: %w", err)
	}
	errorStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "#9C0006"},
	})
	if err != nil {
		return fmt.Errorf("create error style: %w", err)
	}

	warningRows := make([][]string, 0, len(warnings))
	resolved := resolveRows(kit, catalog, warnings)
	for _, r := range resolved {
		warningRows = append(warningRows, r.cells())
	}
	if err := writeSheet(f, warningsSheet, warningHeaders, warningRows, headerStyle); err != nil {
		return err
	}
	for i, r := range resolved {
		if r.warning.Severity != models.SeverityError {
			continue
		}
		cell, _ := excelize.CoordinatesToCellName(4, i+2)
		if err := f.SetCellStyle(warningsSheet, cell, cell, errorStyle); err != nil {
			return fmt.Errorf("style severity cell: %w", err)
		}
	}

	if err := writeSheet(f, kitSheet, kitHeaders, kitRows(kit, catalog), headerStyle); err != nil {
		return err
	}

	f.SetActiveSheet(0)
	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func kitRows(kit *models.Kit, catalog []models.EquipmentSpec) [][]string {
	if kit == nil {
		return nil
	}
	specs := make(map[string]*models.EquipmentSpec, len(catalog))
	for i := range catalog {
		if _, ok := specs[catalog[i].ID]; !ok {
			specs[catalog[i].ID] = &catalog[i]
		}
	}

	rows := make([][]string, 0, len(kit.Entries))
	for _, e := range kit.Entries {
		item, category, mount := "", "", ""
		if spec, ok := specs[e.EquipmentID]; ok {
			item = spec.DisplayName()
			category = string(spec.Category)
			mount = spec.Mount
		}
		rows = append(rows, []string{e.ID, e.AssignedUnit, e.EquipmentID, item, category, mount, strconv.Itoa(e.Quantity)})
	}
	return rows
}

func writeSheet(f *excelize.File, sheet string, headers []string, rows [][]string, headerStyle int) error {
	for i, header := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, header); err != nil {
			return fmt.Errorf("write %s header: %w", sheet, err)
		}
	}
	first, _ := excelize.CoordinatesToCellName(1, 1)
	last, _ := excelize.CoordinatesToCellName(len(headers), 1)
	if err := f.SetCellStyle(sheet, first, last, headerStyle); err != nil {
		return fmt.Errorf("style %s header: %w", sheet, err)
	}

	for r, row := range rows {
		for c, value := range row {
			cell, err := excelize.CoordinatesToCellName(c+1, r+2)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return fmt.Errorf("write %s row %d: %w", sheet, r+1, err)
			}
		}
	}

	for i := range headers {
		col, _ := excelize.ColumnNumberToName(i + 1)
		width := 15.0
		if headers[i] == "Message" || headers[i] == "Solution" {
			width = 60
		}
		if err := f.SetColWidth(sheet, col, col, width); err != nil {
			return fmt.Errorf("size %s columns: %w", sheet, err)
		}
	}
	return nil
}
