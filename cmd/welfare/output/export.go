package output

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"

	"github.com/SanteonNL/welfare/models/welfare"
	"github.com/xuri/excelize/v2"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Format is an export file format.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

// SheetName is the worksheet holding the results in spreadsheet exports.
const SheetName = "복지서비스"

const filePrefix = "복지서비스_검색결과"

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatCSV, FormatXLSX:
		return Format(s), nil
	}
	return "", fmt.Errorf("unsupported export format %q", s)
}

// ContentType returns the MIME type of the format.
func (f Format) ContentType() string {
	if f == FormatXLSX {
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	}
	return "text/csv; charset=utf-8"
}

// FileName returns the export file name for page.
func FileName(page int, f Format) string {
	return fmt.Sprintf("%s_p%d.%s", filePrefix, page, f)
}

// Encode serializes records in format f.
func Encode(records []welfare.ServiceRecord, f Format) ([]byte, error) {
	switch f {
	case FormatCSV:
		return ToCSV(records)
	case FormatXLSX:
		return ToSpreadsheet(records)
	}
	return nil, fmt.Errorf("unsupported export format %q", f)
}

// ToCSV writes a header row and one row per record. The output is UTF-8 with a
// byte order mark so spreadsheet tools pick up the Korean text.
func ToCSV(records []welfare.ServiceRecord) ([]byte, error) {
	var buf bytes.Buffer
	bom := transform.NewWriter(&buf, unicode.UTF8BOM.NewEncoder())

	w := csv.NewWriter(bom)
	if err := w.Write(welfare.Columns()); err != nil {
		return nil, fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, r := range records {
		if err := w.Write(r.Values()); err != nil {
			return nil, fmt.Errorf("failed to write CSV row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("failed to flush CSV: %w", err)
	}
	if err := bom.Close(); err != nil {
		return nil, fmt.Errorf("failed to encode CSV: %w", err)
	}
	return buf.Bytes(), nil
}

// ReadCSV reads records written by ToCSV. ToCSV ends records with a bare \n,
// so every \r\n in data belongs to a field. encoding/csv folds \r\n to \n,
// and \r\r\n back to \r\n, so each one is doubled up before reading.
func ReadCSV(data []byte) ([]welfare.ServiceRecord, error) {
	data = bytes.ReplaceAll(data, []byte("\r\n"), []byte("\r\r\n"))
	r := csv.NewReader(transform.NewReader(bytes.NewReader(data), unicode.UTF8BOM.NewDecoder()))
	r.FieldsPerRecord = len(welfare.Fields)

	if _, err := r.Read(); err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}

	records := make([]welfare.ServiceRecord, 0)
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV row: %w", err)
		}
		records = append(records, welfare.RecordFromValues(row))
	}
	return records, nil
}

// ToSpreadsheet writes the same table as ToCSV into a single-sheet XLSX workbook.
// Every cell is stored as text.
func ToSpreadsheet(records []welfare.ServiceRecord) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), SheetName); err != nil {
		return nil, fmt.Errorf("failed to name sheet: %w", err)
	}

	sw, err := f.NewStreamWriter(SheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheet writer: %w", err)
	}

	if err := sw.SetRow("A1", toRow(welfare.Columns())); err != nil {
		return nil, fmt.Errorf("failed to write header row: %w", err)
	}
	for i, r := range records {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		if err := sw.SetRow(cell, toRow(r.Values())); err != nil {
			return nil, fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}
	if err := sw.Flush(); err != nil {
		return nil, fmt.Errorf("failed to flush sheet: %w", err)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

// ReadSpreadsheet reads records written by ToSpreadsheet.
func ReadSpreadsheet(data []byte) ([]welfare.ServiceRecord, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	// GetRows trims trailing empty rows; an all-empty record is still a row.
	rows, err := f.Rows(SheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet: %w", err)
	}
	defer rows.Close()

	records := make([]welfare.ServiceRecord, 0)
	for header := true; rows.Next(); header = false {
		cols, err := rows.Columns()
		if err != nil {
			return nil, fmt.Errorf("failed to read row: %w", err)
		}
		if header {
			continue
		}
		records = append(records, welfare.RecordFromValues(cols))
	}
	if err := rows.Error(); err != nil {
		return nil, fmt.Errorf("failed to read sheet: %w", err)
	}
	return records, nil
}

func toRow(values []string) []interface{} {
	row := make([]interface{}, len(values))
	for i, v := range values {
		row[i] = v
	}
	return row
}
