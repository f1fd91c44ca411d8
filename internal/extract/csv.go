package extract

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
)

// DecodeCSV decodes CSV bytes into descriptive text. When a usable header row
// is present each data row becomes one sentence pairing column names with
// values; otherwise rows are emitted tab-joined. Never fails: malformed rows
// are skipped and the remainder is rendered best-effort.
func DecodeCSV(data []byte) string {
	records := readRecords(decodeCharset(data))
	if len(records) == 0 {
		return ""
	}

	if header, ok := usableHeader(records); ok {
		lines := make([]string, 0, len(records)-1)
		for i, row := range records[1:] {
			pairs := make([]string, len(header))
			for j, name := range header {
				pairs[j] = fmt.Sprintf("%s: %s", strings.TrimSpace(name), strings.TrimSpace(row[j]))
			}
			lines = append(lines, fmt.Sprintf("Row %d → %s.", i+1, strings.Join(pairs, ", ")))
		}
		return strings.Join(lines, "\n")
	}

	// Raw fallback: tab-joined rows
	lines := make([]string, len(records))
	for i, row := range records {
		lines[i] = strings.Join(row, "\t")
	}
	return strings.Join(lines, "\n")
}

func readRecords(text string) [][]string {
	reader := csv.NewReader(strings.NewReader(text))
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	var records [][]string
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			continue // skip malformed rows rather than failing the document
		}
		records = append(records, record)
	}
	return records
}

// usableHeader reports whether the first record can serve as a header: it
// needs at least one data row, no blank column names, and every data row must
// line up with it.
func usableHeader(records [][]string) ([]string, bool) {
	if len(records) < 2 {
		return nil, false
	}
	header := records[0]
	for _, name := range header {
		if strings.TrimSpace(name) == "" {
			return nil, false
		}
	}
	for _, row := range records[1:] {
		if len(row) != len(header) {
			return nil, false
		}
	}
	return header, true
}
