// Package clipboard hands the combined artifact to the system clipboard for --copy.
package clipboard

import (
	"errors"
	"fmt"

	"github.com/atotto/clipboard"
)

// ErrUnavailable reports that no clipboard utility exists on this system,
// for example a headless Linux host without xclip, xsel or wl-copy.
var ErrUnavailable = errors.New("system clipboard unavailable")

const errorCopyArtifactFormat = "copying %d bytes of artifact text: %w"

// Copier receives the artifact text after it has been written to disk.
type Copier interface {
	Copy(text string) error
}

// Service copies artifact text with github.com/atotto/clipboard.
type Service struct {
	unsupported func() bool
	writeAll    func(text string) error
}

// NewService returns a Service bound to the system clipboard.
func NewService() *Service {
	return &Service{
		unsupported: func() bool { return clipboard.Unsupported },
		writeAll:    clipboard.WriteAll,
	}
}

// Copy places text on the clipboard. A missing clipboard utility yields ErrUnavailable
// so the caller can keep the run successful; the artifact file is unaffected either way.
func (service *Service) Copy(text string) error {
	if service.unsupported() {
		return ErrUnavailable
	}
	if writeError := service.writeAll(text); writeError != nil {
		return fmt.Errorf(errorCopyArtifactFormat, len(text), writeError)
	}
	return nil
}

var _ Copier = (*Service)(nil)
