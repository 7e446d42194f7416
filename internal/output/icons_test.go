package output_test

import (
	"testing"

	"github.com/temirov/codedump/internal/output"
)

func TestFileIcon(t *testing.T) {
	testCases := map[string]string{
		"py":   "🐍",
		"go":   "🔹",
		"tsx":  "⚛️",
		"yml":  "📊",
		"png":  "🖼️",
		"7z":   "📦",
		"env":  "⚙️",
		"sh":   "⚡",
		"":     "📄",
		"xyz":  "📄",
	}
	for extension, expected := range testCases {
		if actual := output.FileIcon(extension); actual != expected {
			t.Errorf("FileIcon(%q): expected %q, got %q", extension, expected, actual)
		}
	}
}
