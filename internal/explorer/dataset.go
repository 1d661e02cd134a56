package explorer

import (
	"encoding/csv"
	"errors"
	"io"
	"strconv"
	"time"
)

var (
	ErrEmptyFile  = errors.New("file is empty")
	ErrHeaderOnly = errors.New("file contains a header but no rows")
)

// ColumnType is the inferred type of a CSV column.
type ColumnType string

const (
	ColumnNumeric ColumnType = "numeric"
	ColumnText    ColumnType = "text"
)

// Column is one named, typed CSV column.
type Column struct {
	Name string     `json:"name"`
	Type ColumnType `json:"type"`
}

// Dataset is an uploaded CSV held in memory. Rows exclude the header.
type Dataset struct {
	ID         string     `json:"id"`
	Name       string     `json:"name"`
	Columns    []Column   `json:"columns"`
	Rows       [][]string `json:"-"`
	SizeBytes  int64      `json:"size_bytes"`
	UploadedAt time.Time  `json:"uploaded_at"`
}

// Parse reads a CSV stream into a Dataset. The first record is the header;
// ragged rows surface the csv package's error. Column types are inferred
// afterwards.
func Parse(r io.Reader, name string) (*Dataset, error) {
	reader := csv.NewReader(r)

	header, err := reader.Read()
	if err == io.EOF {
		return nil, ErrEmptyFile
	}
	if err != nil {
		return nil, err
	}

	var rows [][]string
	var size int64
	for _, h := range header {
		size += int64(len(h))
	}
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		for _, field := range record {
			size += int64(len(field))
		}
		rows = append(rows, record)
	}

	if len(rows) == 0 {
		return nil, ErrHeaderOnly
	}

	columns := make([]Column, len(header))
	for i, h := range header {
		columns[i] = Column{Name: h, Type: inferColumnType(rows, i)}
	}

	return &Dataset{
		Name:       name,
		Columns:    columns,
		Rows:       rows,
		SizeBytes:  size,
		UploadedAt: time.Now(),
	}, nil
}

// inferColumnType marks a column numeric when every non-empty value parses
// as a float and at least one value is non-empty.
func inferColumnType(rows [][]string, col int) ColumnType {
	seen := false
	for _, row := range rows {
		if col >= len(row) || row[col] == "" {
			continue
		}
		if _, err := strconv.ParseFloat(row[col], 64); err != nil {
			return ColumnText
		}
		seen = true
	}
	if seen {
		return ColumnNumeric
	}
	return ColumnText
}
