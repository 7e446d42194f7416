package utils

import (
	"strings"
	"unicode/utf8"
)

var newlineNormalizer = strings.NewReplacer("\r\n", "\n", "\r", "\n")

// DecodeText interprets data as UTF-8 text. Line endings are normalized to "\n".
// The boolean is false when data is not valid UTF-8, which marks the file as binary.
func DecodeText(data []byte) (string, bool) {
	if !utf8.Valid(data) {
		return "", false
	}
	return newlineNormalizer.Replace(string(data)), true
}
