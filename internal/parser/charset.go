package parser

import (
	"io"

	"golang.org/x/net/html/charset"
)

// NewUTF8Reader wraps an io.Reader with character encoding detection and
// conversion to UTF-8, honoring the charset parameter of contentType when the
// upstream sets one. Bodies that are already UTF-8 pass through unchanged.
func NewUTF8Reader(body io.Reader, contentType string) (io.Reader, error) {
	return charset.NewReader(body, contentType)
}
