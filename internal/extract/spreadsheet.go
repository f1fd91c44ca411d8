package extract

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

// DecodeSpreadsheet renders each sheet as a header line naming the sheet
// followed by one tab-joined line per row. Empty cells render as empty
// strings, not placeholders.
func DecodeSpreadsheet(data []byte) (string, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return "", decodeErr("spreadsheet", err)
	}
	defer f.Close()

	var sb strings.Builder
	for _, sheet := range f.GetSheetList() {
		sb.WriteString(fmt.Sprintf("\n--- Sheet: %s ---\n", sheet))

		rows, err := f.GetRows(sheet)
		if err != nil {
			return "", decodeErr("spreadsheet", err)
		}
		for _, row := range rows {
			sb.WriteString(strings.Join(row, "\t"))
			sb.WriteString("\n")
		}
	}
	return sb.String(), nil
}
