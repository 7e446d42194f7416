package utils_test

import (
	"path/filepath"
	"reflect"
	"testing"

	"github.com/temirov/codedump/internal/utils"
)

// TestDeduplicatePatterns verifies that DeduplicatePatterns removes duplicates while keeping order.
func TestDeduplicatePatterns(testingInstance *testing.T) {
	testCases := []struct {
		testName string
		patterns []string
		expected []string
	}{
		{testName: "removes duplicates", patterns: []string{"a", "b", "a"}, expected: []string{"a", "b"}},
		{testName: "keeps unique", patterns: []string{"a", "b"}, expected: []string{"a", "b"}},
		{testName: "empty", patterns: nil, expected: []string{}},
	}
	for _, testCase := range testCases {
		actual := utils.DeduplicatePatterns(testCase.patterns)
		if !reflect.DeepEqual(actual, testCase.expected) {
			testingInstance.Errorf("%s: expected %v, got %v", testCase.testName, testCase.expected, actual)
		}
	}
}

// TestFileExtension verifies extension extraction for dotted, dotless and hidden names.
func TestFileExtension(testingInstance *testing.T) {
	testCases := []struct {
		name     string
		expected string
	}{
		{name: "main.go", expected: "go"},
		{name: "README.MD", expected: "md"},
		{name: "archive.tar.gz", expected: "gz"},
		{name: "Makefile", expected: ""},
		{name: ".bashrc", expected: ""},
		{name: "..hidden", expected: ""},
		{name: ".env.local", expected: "local"},
		{name: "trailing.", expected: ""},
	}
	for _, testCase := range testCases {
		if actual := utils.FileExtension(testCase.name); actual != testCase.expected {
			testingInstance.Errorf("%s: expected %q, got %q", testCase.name, testCase.expected, actual)
		}
	}
}

// TestNormalizeExtensions verifies splitting, trimming, lower-casing and deduplication.
func TestNormalizeExtensions(testingInstance *testing.T) {
	actual := utils.NormalizeExtensions([]string{"PY, .md,,py", "txt"})
	expected := []string{"py", "md", "txt"}
	if !reflect.DeepEqual(actual, expected) {
		testingInstance.Fatalf("expected %v, got %v", expected, actual)
	}
	if empty := utils.NormalizeExtensions(nil); len(empty) != 0 {
		testingInstance.Fatalf("expected empty allow-list, got %v", empty)
	}
}

// TestRelativePathOrSelf verifies relative path computation against a root.
func TestRelativePathOrSelf(testingInstance *testing.T) {
	root := testingInstance.TempDir()
	if actual := utils.RelativePathOrSelf(root, root); actual != "." {
		testingInstance.Fatalf("expected '.', got %q", actual)
	}
	nested := filepath.Join(root, "a", "b.txt")
	if actual := utils.RelativePathOrSelf(nested, root); actual != filepath.Join("a", "b.txt") {
		testingInstance.Fatalf("unexpected relative path %q", actual)
	}
}

// TestDecodeText verifies UTF-8 detection and newline normalization.
func TestDecodeText(testingInstance *testing.T) {
	text, ok := utils.DecodeText([]byte("a\r\nb\rc\n"))
	if !ok || text != "a\nb\nc\n" {
		testingInstance.Fatalf("unexpected decode result %q %v", text, ok)
	}
	if _, ok := utils.DecodeText([]byte{0xff, 0xfe, 0x00}); ok {
		testingInstance.Fatalf("expected invalid UTF-8 to be reported as binary")
	}
	if text, ok := utils.DecodeText([]byte("nul\x00byte")); !ok || text != "nul\x00byte" {
		testingInstance.Fatalf("expected NUL bytes to remain valid text, got %q %v", text, ok)
	}
}
