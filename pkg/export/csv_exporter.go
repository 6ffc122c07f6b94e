package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
)

// Column describes one exported field. Weight sizes the PDF column relative to its siblings.
type Column struct {
	Key    string
	Title  string
	Weight float64
}

// Dataset is a titled table ready for rendering.
type Dataset struct {
	Title   string
	Columns []Column
	Rows    []map[string]string
}

func (d Dataset) record(row map[string]string) []string {
	out := make([]string, len(d.Columns))
	for i, col := range d.Columns {
		out[i] = row[col.Key]
	}
	return out
}

// CSVExporter writes datasets as RFC 4180 CSV.
type CSVExporter struct{}

// NewCSVExporter builds a CSV exporter.
func NewCSVExporter() *CSVExporter {
	return &CSVExporter{}
}

// ContentType of the rendered bytes.
func (e *CSVExporter) ContentType() string { return "text/csv; charset=utf-8" }

// Extension of the rendered file.
func (e *CSVExporter) Extension() string { return "csv" }

// Render encodes the dataset with a header row of column titles.
func (e *CSVExporter) Render(data Dataset) ([]byte, error) {
	if len(data.Columns) == 0 {
		return nil, fmt.Errorf("csv requires at least one column")
	}
	buf := &bytes.Buffer{}
	writer := csv.NewWriter(buf)

	titles := make([]string, len(data.Columns))
	for i, col := range data.Columns {
		titles[i] = col.Title
	}
	if err := writer.Write(titles); err != nil {
		return nil, fmt.Errorf("write csv header: %w", err)
	}
	for _, row := range data.Rows {
		if err := writer.Write(data.record(row)); err != nil {
			return nil, fmt.Errorf("write csv row: %w", err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("flush csv: %w", err)
	}
	return buf.Bytes(), nil
}
