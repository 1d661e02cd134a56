package explorer

import "strconv"

const previewRows = 10

// ColumnStats carries min/max/mean for a numeric column.
type ColumnStats struct {
	Min  float64 `json:"min"`
	Max  float64 `json:"max"`
	Mean float64 `json:"mean"`
}

// ColumnSummary describes one column; Stats is nil for text columns.
type ColumnSummary struct {
	Name  string       `json:"name"`
	Type  ColumnType   `json:"type"`
	Stats *ColumnStats `json:"stats,omitempty"`
}

// Summary is the explorer's dataset overview: shape, per-column types and
// stats, and a short preview.
type Summary struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Rows      int             `json:"rows"`
	Columns   int             `json:"columns"`
	SizeBytes int64           `json:"size_bytes"`
	Schema    []ColumnSummary `json:"schema"`
	Header    []string        `json:"header"`
	Preview   [][]string      `json:"preview"`
}

// Summarize computes the dataset overview.
func Summarize(d *Dataset) *Summary {
	header := make([]string, len(d.Columns))
	schema := make([]ColumnSummary, len(d.Columns))
	for i, col := range d.Columns {
		header[i] = col.Name
		schema[i] = ColumnSummary{Name: col.Name, Type: col.Type}
		if col.Type == ColumnNumeric {
			schema[i].Stats = columnStats(d.Rows, i)
		}
	}

	preview := d.Rows
	if len(preview) > previewRows {
		preview = preview[:previewRows]
	}

	return &Summary{
		ID:        d.ID,
		Name:      d.Name,
		Rows:      len(d.Rows),
		Columns:   len(d.Columns),
		SizeBytes: d.SizeBytes,
		Schema:    schema,
		Header:    header,
		Preview:   preview,
	}
}

func columnStats(rows [][]string, col int) *ColumnStats {
	stats := &ColumnStats{}
	sum, count := 0.0, 0
	for _, row := range rows {
		if col >= len(row) || row[col] == "" {
			continue
		}
		v, err := strconv.ParseFloat(row[col], 64)
		if err != nil {
			continue
		}
		if count == 0 || v < stats.Min {
			stats.Min = v
		}
		if count == 0 || v > stats.Max {
			stats.Max = v
		}
		sum += v
		count++
	}
	if count == 0 {
		return nil
	}
	stats.Mean = sum / float64(count)
	return stats
}
