package extract

import (
	"bytes"

	"code.sajari.com/docconv"
)

// DecodeDocument extracts the paragraph text of a word-processor document in
// document order.
func DecodeDocument(data []byte) (string, error) {
	text, _, err := docconv.ConvertDocx(bytes.NewReader(data))
	if err != nil {
		return "", decodeErr("document", err)
	}
	return text, nil
}
