// Package framesink writes sampled frames and contact sheets to a directory.
package framesink

import (
	"fmt"
	"image"
	"path/filepath"
	"strings"

	"github.com/clamsproject/mmif-utils-videodocuments/pkg/ports"
)

// Options configures how frames are written.
type Options struct {
	// Prefix starts every frame file name, e.g. "frame" gives frame-0000.png.
	Prefix string
	Format ports.ImageFormat
	// Quality is the JPEG quality (1-100).
	Quality int
	// Width scales frames to this width, keeping the aspect ratio. 0 keeps the source size.
	Width int
}

// Sink saves frames through a FileSystem.
type Sink struct {
	baseDir  string
	opts     Options
	fs       ports.FileSystem
	renderer ports.Renderer
	written  int64
}

// New creates a new Sink rooted at baseDir.
func New(baseDir string, opts Options, fs ports.FileSystem, renderer ports.Renderer) *Sink {
	if opts.Prefix == "" {
		opts.Prefix = "frame"
	}
	return &Sink{
		baseDir:  baseDir,
		opts:     opts,
		fs:       fs,
		renderer: renderer,
	}
}

// SaveFrame encodes a sampled frame and writes it as <prefix>-<index>.<ext>.
func (s *Sink) SaveFrame(index int, img image.Image) (string, error) {
	if s.opts.Width > 0 {
		img = s.scale(img)
	}
	name := fmt.Sprintf("%s-%04d.%s", s.opts.Prefix, index, s.opts.Format.Extension())
	return s.save(filepath.Join(s.baseDir, name), img, s.opts.Format)
}

// SaveContactSheet encodes a contact sheet and writes it under name.
// A bare name is placed in the sink directory. The encoding follows the
// extension of name (.png, .jpg, .jpeg); other names use the frame format.
func (s *Sink) SaveContactSheet(name string, img image.Image) (string, error) {
	path := name
	if filepath.Base(name) == name {
		path = filepath.Join(s.baseDir, name)
	}
	return s.save(path, img, s.formatFor(name))
}

func (s *Sink) formatFor(name string) ports.ImageFormat {
	switch ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(name), ".")); ext {
	case "png", "jpg", "jpeg":
		return ports.ParseImageFormat(ext)
	default:
		return s.opts.Format
	}
}

func (s *Sink) save(path string, img image.Image, format ports.ImageFormat) (string, error) {
	data, err := s.renderer.EncodeImage(img, format, s.opts.Quality)
	if err != nil {
		return "", fmt.Errorf("encode %s: %w", filepath.Base(path), err)
	}
	if err := s.fs.WriteFile(path, data); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	s.written += int64(len(data))
	return path, nil
}

// BytesWritten returns the total size of the encoded files written so far.
func (s *Sink) BytesWritten() int64 {
	return s.written
}

func (s *Sink) scale(img image.Image) image.Image {
	b := img.Bounds()
	if b.Dx() == 0 || b.Dx() == s.opts.Width {
		return img
	}
	h := b.Dy() * s.opts.Width / b.Dx()
	if h < 1 {
		h = 1
	}
	return s.renderer.ResizeImage(img, s.opts.Width, h)
}

var _ ports.FrameSink = (*Sink)(nil)
