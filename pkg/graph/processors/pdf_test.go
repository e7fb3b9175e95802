package processors

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractPDFTextRejectsGarbage(t *testing.T) {
	_, err := ExtractPDFText([]byte("not a pdf at all"))
	assert.Error(t, err, "unreadable byte streams surface as an error, not a panic")
}

func TestExtractPDFTextRejectsEmpty(t *testing.T) {
	_, err := ExtractPDFText(nil)
	assert.Error(t, err)
}
