package processors

import (
	"bytes"

	"github.com/ledongthuc/pdf"
	"github.com/pkg/errors"
)

// ExtractPDFText extracts the plain text of every page of a PDF byte
// stream. Pages that fail to decode are skipped; a document that cannot be
// opened at all returns an error, which callers treat as "no text
// available" rather than a fatal condition.
func ExtractPDFText(content []byte) (string, error) {
	reader := bytes.NewReader(content)

	r, err := pdf.NewReader(reader, int64(len(content)))
	if err != nil {
		return "", errors.Wrap(err, "opening pdf")
	}

	var sb bytes.Buffer
	totalPage := r.NumPage()

	for pageIndex := 1; pageIndex <= totalPage; pageIndex++ {
		page := r.Page(pageIndex)
		if page.V.IsNull() {
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		sb.WriteString(text)
	}

	return sb.String(), nil
}
