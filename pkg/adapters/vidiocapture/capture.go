// Package vidiocapture decodes videos through an ffmpeg pipe using Vidio.
// Frames are RGBA. Requires ffmpeg and ffprobe in PATH.
package vidiocapture

import (
	"errors"
	"fmt"
	"io"
	"os/exec"
	"runtime"

	vidio "github.com/AlexEidt/Vidio"
	"github.com/clamsproject/mmif-utils-videodocuments/pkg/ports"
)

var (
	// ErrFFmpegNotFound is returned when ffmpeg or ffprobe is not in PATH.
	ErrFFmpegNotFound = errors.New("vidiocapture: ffmpeg or ffprobe not found in PATH")

	// ErrClosed is returned when reading from a closed capture.
	ErrClosed = errors.New("vidiocapture: capture is closed")

	// ErrEmptyFrame is returned when the stream reports no frame size.
	ErrEmptyFrame = errors.New("vidiocapture: stream has an empty frame size")
)

// IsAvailable reports whether ffmpeg and ffprobe can be found.
func IsAvailable() bool {
	for _, name := range []string{"ffmpeg", "ffprobe"} {
		if runtime.GOOS == "windows" {
			name += ".exe"
		}
		if _, err := exec.LookPath(name); err != nil {
			return false
		}
	}
	return true
}

// Opener implements ports.CaptureOpener.
type Opener struct{}

// New creates a new Opener.
func New() *Opener {
	return &Opener{}
}

// Open starts decoding the video at path.
func (o *Opener) Open(path string) (ports.VideoCapture, error) {
	return Open(path)
}

// Capture implements ports.VideoCapture over a Vidio video.
//
// Vidio only reads forward, so seeking ahead discards frames and seeking
// back restarts the decoder.
type Capture struct {
	path  string
	video *vidio.Video
	pos   int
	ended bool
}

// Open starts decoding the video at path.
func Open(path string) (*Capture, error) {
	if !IsAvailable() {
		return nil, ErrFFmpegNotFound
	}
	video, err := vidio.NewVideo(path)
	if err != nil {
		return nil, fmt.Errorf("open video: %w", err)
	}
	return &Capture{path: path, video: video}, nil
}

// IsOpened reports whether the decoder is running.
func (c *Capture) IsOpened() bool {
	return c.video != nil
}

// Read decodes the next frame.
func (c *Capture) Read() (ports.Frame, error) {
	if c.video == nil {
		return ports.Frame{}, ErrClosed
	}
	if c.ended || !c.video.Read() {
		c.ended = true
		return ports.Frame{}, io.EOF
	}
	c.pos++
	return frameFromBuffer(c.video.Width(), c.video.Height(), c.video.FrameBuffer())
}

// frameFromBuffer copies an RGBA pipe buffer into a Frame.
func frameFromBuffer(w, h int, buf []byte) (ports.Frame, error) {
	if w <= 0 || h <= 0 {
		return ports.Frame{}, fmt.Errorf("%w: %dx%d", ErrEmptyFrame, w, h)
	}
	pix := make([]byte, len(buf))
	copy(pix, buf)

	return ports.Frame{
		Width:    w,
		Height:   h,
		Channels: len(pix) / (w * h),
		Order:    ports.OrderRGBA,
		Pix:      pix,
	}, nil
}

// Seek positions the capture so the next Read returns frame index.
func (c *Capture) Seek(index int) error {
	if c.video == nil {
		return ErrClosed
	}
	if index < 0 {
		return fmt.Errorf("vidiocapture: negative frame index %d", index)
	}

	if index < c.pos {
		if err := c.restart(); err != nil {
			return err
		}
	}
	for c.pos < index {
		if c.ended || !c.video.Read() {
			// Past the end; the next Read reports io.EOF.
			c.ended = true
			c.pos = index
			return nil
		}
		c.pos++
	}
	return nil
}

func (c *Capture) restart() error {
	c.video.Close()
	video, err := vidio.NewVideo(c.path)
	if err != nil {
		c.video = nil
		return fmt.Errorf("reopen video: %w", err)
	}
	c.video = video
	c.pos = 0
	c.ended = false
	return nil
}

// FrameRate returns the frame rate reported by ffprobe.
func (c *Capture) FrameRate() float64 {
	if c.video == nil {
		return 0
	}
	return c.video.FPS()
}

// FrameCount returns the frame count reported by ffprobe, or 0 if unknown.
func (c *Capture) FrameCount() int {
	if c.video == nil {
		return 0
	}
	return c.video.Frames()
}

// Close stops the decoder.
func (c *Capture) Close() error {
	if c.video != nil {
		c.video.Close()
		c.video = nil
	}
	return nil
}

var (
	_ ports.CaptureOpener = (*Opener)(nil)
	_ ports.VideoCapture  = (*Capture)(nil)
)
