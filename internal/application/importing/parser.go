package importing

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/xuri/excelize/v2"

	domain "github.com/mohammadpnp/backoffice-import/internal/domain/importing"
)

var byteOrderMark = []byte{0xEF, 0xBB, 0xBF}

type fileFormat string

const (
	formatCSV  fileFormat = "csv"
	formatXLSX fileFormat = "xlsx"
)

// sourceRow is one physical record with the file line it starts on. Err is set when the record could not
// be read; the rest of the file is still usable.
type sourceRow struct {
	Line  int
	Cells []string
	Err   error
}

// Table is the parser output: the header row, the usable data rows and the rows rejected for their shape.
type Table struct {
	Headers     []string
	Rows        []domain.RawRow
	ShapeErrors []domain.RowError
}

// TotalRows counts every non-blank data row, including the ones rejected for their shape.
func (t Table) TotalRows() int {
	return len(t.Rows) + len(t.ShapeErrors)
}

func Parse(fileName string, payload []byte) (Table, error) {
	if len(bytes.TrimSpace(payload)) == 0 {
		return Table{}, domain.ErrEmptyFile
	}

	format, err := detectFormat(fileName, payload)
	if err != nil {
		return Table{}, err
	}

	switch format {
	case formatXLSX:
		records, err := readXLSX(payload)
		if err != nil {
			return Table{}, err
		}
		return buildTable(records, false)
	default:
		records, err := readCSV(payload)
		if err != nil {
			return Table{}, err
		}
		return buildTable(records, true)
	}
}

func detectFormat(fileName string, payload []byte) (fileFormat, error) {
	if mimetype.Detect(payload).Is(XLSXContentType) {
		return formatXLSX, nil
	}

	switch ext := strings.ToLower(filepath.Ext(fileName)); ext {
	case ".xlsx":
		return formatXLSX, nil
	case ".csv", ".txt", "":
		return formatCSV, nil
	default:
		return "", fmt.Errorf("%w: %s", domain.ErrUnsupportedFormat, ext)
	}
}

func readCSV(payload []byte) ([]sourceRow, error) {
	reader := bufio.NewReader(bytes.NewReader(payload))
	if prefix, err := reader.Peek(len(byteOrderMark)); err == nil && bytes.Equal(prefix, byteOrderMark) {
		_, _ = reader.Discard(len(byteOrderMark))
	}

	csvReader := csv.NewReader(reader)
	csvReader.TrimLeadingSpace = true
	csvReader.FieldsPerRecord = -1

	// The reader skips empty lines, so row numbers come from the record position, not a counter.
	var rows []sourceRow
	for {
		record, err := csvReader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var parseErr *csv.ParseError
			if !errors.As(err, &parseErr) {
				return nil, fmt.Errorf("read csv: %w", err)
			}
			rows = append(rows, sourceRow{Line: parseErr.StartLine, Err: parseErr})
			continue
		}
		line, _ := csvReader.FieldPos(0)
		rows = append(rows, sourceRow{Line: line, Cells: record})
	}
	return rows, nil
}

func readXLSX(payload []byte) ([]sourceRow, error) {
	f, err := excelize.OpenReader(bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("%w: open xlsx: %v", domain.ErrUnsupportedFormat, err)
	}
	defer func() { _ = f.Close() }()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, domain.ErrEmptyFile
	}

	// Raw values keep date cells as serial numbers instead of locale formatted text.
	rows, err := f.GetRows(sheets[0], excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("read xlsx rows: %w", err)
	}

	out := make([]sourceRow, len(rows))
	for i, cells := range rows {
		out[i] = sourceRow{Line: i + 1, Cells: cells}
	}
	return out, nil
}

// buildTable splits header and data rows. Row indexes count lines after the header, blank lines included.
// Spreadsheet rows come back without trailing blank cells, so only CSV rows are held to an exact column
// count.
func buildTable(records []sourceRow, strictWidth bool) (Table, error) {
	headerAt := -1
	for i, record := range records {
		if record.Err != nil || !isBlank(record.Cells) {
			headerAt = i
			break
		}
	}
	if headerAt < 0 {
		return Table{}, domain.ErrEmptyFile
	}
	if err := records[headerAt].Err; err != nil {
		return Table{}, fmt.Errorf("read header: %w", err)
	}

	headerLine := records[headerAt].Line
	headers := trimCells(records[headerAt].Cells)

	table := Table{Headers: headers}
	for _, record := range records[headerAt+1:] {
		index := record.Line - headerLine
		if record.Err != nil {
			table.ShapeErrors = append(table.ShapeErrors, domain.RowError{
				RowIndex: index,
				Err:      fmt.Errorf("%w: %v", domain.ErrRowShape, record.Err),
			})
			continue
		}
		if isBlank(record.Cells) {
			continue
		}

		cells := trimCells(record.Cells)
		if shapeErr := checkShape(cells, len(headers), strictWidth); shapeErr != nil {
			table.ShapeErrors = append(table.ShapeErrors, domain.RowError{RowIndex: index, Err: shapeErr})
			continue
		}

		row := domain.RawRow{Index: index, Cells: make(map[string]string, len(headers))}
		for col, header := range headers {
			if header == "" {
				continue
			}
			if col < len(cells) {
				row.Cells[header] = cells[col]
			}
		}
		table.Rows = append(table.Rows, row)
	}

	if table.TotalRows() == 0 {
		return Table{}, domain.ErrEmptyFile
	}
	return table, nil
}

func checkShape(cells []string, width int, strict bool) error {
	if strict && len(cells) != width {
		return fmt.Errorf("%w: expected %d columns, got %d", domain.ErrRowShape, width, len(cells))
	}
	for col := width; col < len(cells); col++ {
		if cells[col] != "" {
			return fmt.Errorf("%w: expected %d columns, got %d", domain.ErrRowShape, width, len(cells))
		}
	}
	return nil
}

func isBlank(record []string) bool {
	for _, cell := range record {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

func trimCells(record []string) []string {
	out := make([]string, len(record))
	for i, cell := range record {
		out[i] = strings.TrimSpace(cell)
	}
	return out
}
