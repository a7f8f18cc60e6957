package importing

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"

	domain "github.com/mohammadpnp/backoffice-import/internal/domain/importing"
)

const maxTemplateExamples = 3

// BuildTemplate renders a workbook with the schema headers followed by example rows.
func BuildTemplate(schema domain.Schema) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := schema.Title
	if sheet == "" {
		sheet = schema.Name
	}
	if err := f.SetSheetName(f.GetSheetName(0), sheet); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}

	header := make([]any, 0, len(schema.Fields))
	for _, h := range schema.Headers() {
		header = append(header, h)
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return nil, fmt.Errorf("write header: %w", err)
	}

	for i := 0; i < exampleRows(schema); i++ {
		row := make([]any, 0, len(schema.Fields))
		for _, field := range schema.Fields {
			example := ""
			if i < len(field.Examples) {
				example = field.Examples[i]
			}
			row = append(row, example)
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return nil, fmt.Errorf("write example row %d: %w", i+1, err)
		}
	}

	if len(schema.Fields) > 0 {
		last, err := excelize.ColumnNumberToName(len(schema.Fields))
		if err != nil {
			return nil, err
		}
		if err := f.SetColWidth(sheet, "A", last, 20); err != nil {
			return nil, err
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func exampleRows(schema domain.Schema) int {
	n := 0
	for _, field := range schema.Fields {
		if len(field.Examples) > n {
			n = len(field.Examples)
		}
	}
	if n > maxTemplateExamples {
		n = maxTemplateExamples
	}
	return n
}
