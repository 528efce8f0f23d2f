package problem

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strconv"
	"unicode"
	"unicode/utf8"
)

var (
	// DefaultMaxDocumentSize bounds a problem document (64KB).
	DefaultMaxDocumentSize = 64 << 10
	// EnvMaxDocumentSize overrides DefaultMaxDocumentSize.
	EnvMaxDocumentSize = "LOGICSIM_MAX_DOCUMENT_SIZE"
)

var (
	ErrDocumentTooLarge = errors.New("document exceeds maximum allowed size")
	ErrInvalidUTF8      = errors.New("document contains invalid UTF-8 sequences")
)

// Sanitize rejects oversized or non UTF-8 documents and strips control
// characters other than newline, tab and carriage return.
func Sanitize(data []byte) ([]byte, error) {
	limit := maxDocumentSize()
	if len(data) > limit {
		return nil, fmt.Errorf("%w: size=%d limit=%d", ErrDocumentTooLarge, len(data), limit)
	}
	if !utf8.Valid(data) {
		return nil, ErrInvalidUTF8
	}

	if bytes.IndexFunc(data, isUnsafeControl) < 0 {
		return data, nil
	}
	var b bytes.Buffer
	b.Grow(len(data))
	for _, r := range string(data) {
		if !isUnsafeControl(r) {
			b.WriteRune(r)
		}
	}
	return b.Bytes(), nil
}

func isUnsafeControl(r rune) bool {
	return unicode.IsControl(r) && r != '\n' && r != '\t' && r != '\r'
}

func maxDocumentSize() int {
	if val := os.Getenv(EnvMaxDocumentSize); val != "" {
		if size, err := strconv.Atoi(val); err == nil && size > 0 {
			return size
		}
	}
	return DefaultMaxDocumentSize
}
