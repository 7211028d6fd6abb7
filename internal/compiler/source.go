package compiler

import (
	"fmt"
	"os"

	"golang.org/x/text/encoding/unicode"
)

// ReadSource reads path and decodes it as UTF-8. Invalid byte sequences
// are replaced with U+FFFD; decoding never fails.
func ReadSource(path string) (string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading source: %w", err)
	}
	return decodeLossy(raw), nil
}

// decodeLossy decodes raw as UTF-8, replacing malformed sequences. The
// x/text UTF-8 decoder never reports an error for malformed input.
func decodeLossy(raw []byte) string {
	text, _ := unicode.UTF8.NewDecoder().Bytes(raw)
	return string(text)
}
