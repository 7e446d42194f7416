//go:build unix

package commands_test

import (
	"path/filepath"
	"syscall"
	"testing"
)

// TestWalkSkipsNamedPipes verifies that a FIFO is never opened by the content walk.
func TestWalkSkipsNamedPipes(t *testing.T) {
	rootDirectory := t.TempDir()
	createFiles(t, rootDirectory, "a.go")
	if err := syscall.Mkfifo(filepath.Join(rootDirectory, "pipe"), 0o644); err != nil {
		t.Skipf("named pipes unavailable: %v", err)
	}

	contents := collectContents(t, rootDirectory, nil)
	if len(contents) != 1 || contents[0].RelativePath != "a.go" {
		t.Fatalf("unexpected contents %+v", contents)
	}
}
