package core

import (
	"io"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// NewImportReader decodes an uploaded file as UTF-8 text the way a browser
// reads it: a leading byte order mark is dropped and invalid byte sequences
// become U+FFFD.
func NewImportReader(r io.Reader) io.Reader {
	return transform.NewReader(r, unicode.UTF8BOM.NewDecoder())
}
