package commands_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/temirov/codedump/internal/commands"
	"github.com/temirov/codedump/internal/types"
)

func collectContents(t *testing.T, rootDirectory string, extensions []string, patterns ...string) []types.FileContent {
	t.Helper()
	var contents []types.FileContent
	walker := commands.NewContentWalker(newPolicy(rootDirectory, extensions, patterns...), nil)
	err := walker.Walk(rootDirectory, func(content types.FileContent) error {
		contents = append(contents, content)
		return nil
	})
	if err != nil {
		t.Fatalf("Walk: %v", err)
	}
	return contents
}

// TestWalkOrder verifies files are emitted before subdirectories at every level.
func TestWalkOrder(t *testing.T) {
	rootDirectory := t.TempDir()
	createFiles(t, rootDirectory, "b.go", "a/z.go", "a/c/d.go", "a/y.go", "c.md", ".idea/workspace.xml")

	contents := collectContents(t, rootDirectory, nil)

	expected := []string{
		"b.go",
		"c.md",
		filepath.Join("a", "y.go"),
		filepath.Join("a", "z.go"),
		filepath.Join("a", "c", "d.go"),
	}
	if len(contents) != len(expected) {
		t.Fatalf("expected %d files, got %d", len(expected), len(contents))
	}
	for index, relativePath := range expected {
		if contents[index].RelativePath != relativePath {
			t.Fatalf("position %d: expected %s, got %s", index, relativePath, contents[index].RelativePath)
		}
	}
}

// TestWalkBodies verifies text normalization and binary detection.
func TestWalkBodies(t *testing.T) {
	rootDirectory := t.TempDir()
	files := map[string][]byte{
		"crlf.txt":  []byte("one\r\ntwo\rthree"),
		"image.bin": {0x89, 0x50, 0x4e, 0x47, 0xff, 0xd8},
		"nul.txt":   {'a', 0x00, 'b'},
	}
	for name, data := range files {
		if err := os.WriteFile(filepath.Join(rootDirectory, name), data, 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}

	contents := collectContents(t, rootDirectory, nil)
	if len(contents) != 3 {
		t.Fatalf("expected 3 files, got %d", len(contents))
	}
	byName := map[string]types.FileContent{}
	for _, content := range contents {
		byName[content.RelativePath] = content
	}
	if byName["crlf.txt"].Kind != types.BodyText || byName["crlf.txt"].Body != "one\ntwo\nthree" {
		t.Fatalf("unexpected crlf body %+v", byName["crlf.txt"])
	}
	if byName["image.bin"].Kind != types.BodyBinary || byName["image.bin"].Body != "" {
		t.Fatalf("unexpected binary body %+v", byName["image.bin"])
	}
	if byName["nul.txt"].Kind != types.BodyText || byName["nul.txt"].SizeBytes != 3 {
		t.Fatalf("unexpected nul body %+v", byName["nul.txt"])
	}
}

// TestWalkUnreadableFile verifies read failures become error bodies.
func TestWalkUnreadableFile(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("permission checks do not apply to root")
	}
	rootDirectory := t.TempDir()
	createFiles(t, rootDirectory, "secret.txt")
	if err := os.Chmod(filepath.Join(rootDirectory, "secret.txt"), 0o000); err != nil {
		t.Fatalf("chmod: %v", err)
	}

	contents := collectContents(t, rootDirectory, nil)
	if len(contents) != 1 || contents[0].Kind != types.BodyError || contents[0].ErrorMessage == "" {
		t.Fatalf("unexpected contents %+v", contents)
	}
}

// TestWalkVisitorErrorStops verifies that a visitor error aborts the walk and is returned.
func TestWalkVisitorErrorStops(t *testing.T) {
	rootDirectory := t.TempDir()
	createFiles(t, rootDirectory, "a.go", "b.go", "sub/c.go")
	stopError := errors.New("stop")

	visits := 0
	walker := commands.NewContentWalker(newPolicy(rootDirectory, nil), nil)
	err := walker.Walk(rootDirectory, func(types.FileContent) error {
		visits++
		return stopError
	})
	if !errors.Is(err, stopError) {
		t.Fatalf("expected stop error, got %v", err)
	}
	if visits != 1 {
		t.Fatalf("expected a single visit, got %d", visits)
	}
}

// TestWalkAppliesPolicy verifies pattern and extension exclusions in the content walk.
func TestWalkAppliesPolicy(t *testing.T) {
	rootDirectory := t.TempDir()
	createFiles(t, rootDirectory, "keep.py", "drop.txt", "gen/out.py", "src/app.py")

	contents := collectContents(t, rootDirectory, []string{"py"}, "gen")
	if len(contents) != 2 || contents[0].RelativePath != "keep.py" || contents[1].RelativePath != filepath.Join("src", "app.py") {
		t.Fatalf("unexpected contents %+v", contents)
	}
}
