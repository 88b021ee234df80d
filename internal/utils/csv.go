package utils

import (
	"bytes"
	"encoding/csv"
)

// CSVWriter builds an in-memory CSV document row by row.
type CSVWriter struct {
	buf    bytes.Buffer
	writer *csv.Writer
}

func NewCSVWriter(header []string) (*CSVWriter, error) {
	w := &CSVWriter{}
	w.writer = csv.NewWriter(&w.buf)
	if err := w.writer.Write(header); err != nil {
		return nil, err
	}
	return w, nil
}

func (w *CSVWriter) WriteRow(fields ...string) error {
	return w.writer.Write(fields)
}

func (w *CSVWriter) Bytes() ([]byte, error) {
	w.writer.Flush()
	if err := w.writer.Error(); err != nil {
		return nil, err
	}
	return w.buf.Bytes(), nil
}
