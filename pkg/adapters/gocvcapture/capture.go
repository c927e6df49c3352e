// Package gocvcapture decodes videos with OpenCV through gocv.
// Frames are BGR. The OpenCV backend is compiled in with the "gocv" build tag;
// without it Open returns ErrBackendUnavailable.
package gocvcapture

import (
	"errors"

	"github.com/clamsproject/mmif-utils-videodocuments/pkg/ports"
)

var (
	// ErrBackendUnavailable is returned when the binary was built without OpenCV.
	ErrBackendUnavailable = errors.New("gocvcapture: built without the gocv tag")

	// ErrOpenFailed is returned when OpenCV cannot open the file.
	ErrOpenFailed = errors.New("gocvcapture: cannot open video")

	// ErrClosed is returned when reading from a closed capture.
	ErrClosed = errors.New("gocvcapture: capture is closed")
)

// Opener implements ports.CaptureOpener.
type Opener struct{}

// New creates a new Opener.
func New() *Opener {
	return &Opener{}
}

// Open opens the video at path.
func (o *Opener) Open(path string) (ports.VideoCapture, error) {
	return open(path)
}

// IsAvailable reports whether OpenCV support is compiled in.
func IsAvailable() bool {
	return available
}

var _ ports.CaptureOpener = (*Opener)(nil)
