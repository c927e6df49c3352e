package videodoc

import (
	"context"
	"fmt"
	"image"

	"github.com/clamsproject/mmif-utils-videodocuments/pkg/mmif"
	"github.com/clamsproject/mmif-utils-videodocuments/pkg/ports"
)

// DefaultImageSampleRatio is the stride used when extracting images and the
// caller does not choose one.
const DefaultImageSampleRatio = 15

// Options controls frame sampling.
type Options struct {
	// SampleRatio is the number of source frames to advance between
	// retained frames. 1 keeps every frame.
	SampleRatio int

	// FrameCutoff bounds the number of retained frames. Nil means no bound.
	FrameCutoff *int
}

// Cutoff returns a FrameCutoff pointing at n.
func Cutoff(n int) *int {
	return &n
}

// Validate checks the sampling options.
func (o Options) Validate() error {
	if o.SampleRatio < 1 {
		return fmt.Errorf("%w: got %d", ErrInvalidSampleRatio, o.SampleRatio)
	}
	if o.FrameCutoff != nil && *o.FrameCutoff < 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidFrameCutoff, *o.FrameCutoff)
	}
	return nil
}

// Sampler reads every Nth frame of a video document.
type Sampler struct {
	opener ports.CaptureOpener
	logger ports.Logger
}

// NewSampler creates a Sampler that opens videos with opener.
func NewSampler(opener ports.CaptureOpener, logger ports.Logger) *Sampler {
	return &Sampler{
		opener: opener,
		logger: logger.WithComponent("sampler"),
	}
}

// ExtractFrames returns the retained raw frames in source order.
func (s *Sampler) ExtractFrames(ctx context.Context, doc *mmif.Document, opts Options) ([]ports.Frame, error) {
	var frames []ports.Frame
	err := s.sample(ctx, doc, opts, func(f ports.Frame) error {
		frames = append(frames, f)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return frames, nil
}

// ExtractImages returns the retained frames converted to RGBA images.
func (s *Sampler) ExtractImages(ctx context.Context, doc *mmif.Document, opts Options) ([]image.Image, error) {
	var images []image.Image
	err := s.StreamImages(ctx, doc, opts, func(k int, img image.Image) error {
		images = append(images, img)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return images, nil
}

// StreamImages converts each retained frame to an RGBA image and hands it to
// fn together with its position k among the retained frames. Nothing is kept
// after fn returns. An error from fn stops sampling and is returned as is.
func (s *Sampler) StreamImages(ctx context.Context, doc *mmif.Document, opts Options, fn func(k int, img image.Image) error) error {
	k := 0
	return s.sample(ctx, doc, opts, func(f ports.Frame) error {
		img, err := FrameToImage(f)
		if err != nil {
			return err
		}
		if err := fn(k, img); err != nil {
			return err
		}
		k++
		return nil
	})
}

func (s *Sampler) sample(ctx context.Context, doc *mmif.Document, opts Options, keep func(ports.Frame) error) error {
	if err := opts.Validate(); err != nil {
		return err
	}
	if !doc.IsVideo() {
		return fmt.Errorf("%w: %q is a %s", ErrInvalidReference, doc.ID(), doc.AtType.ShortName())
	}

	path, err := doc.LocationPath()
	if err != nil {
		return err
	}
	capture, err := s.opener.Open(path)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer capture.Close()

	retained := 0
	cursor := 0
	for capture.IsOpened() {
		if err := ctx.Err(); err != nil {
			return err
		}
		if opts.FrameCutoff != nil && retained >= *opts.FrameCutoff {
			break
		}

		frame, err := capture.Read()
		if err != nil {
			s.logger.Debug("Read stopped at frame %d: %v", cursor, err)
			break
		}
		if err := keep(frame); err != nil {
			return err
		}
		retained++

		cursor += opts.SampleRatio
		if err := capture.Seek(cursor); err != nil {
			s.logger.Warn("Seek to frame %d failed: %v", cursor, err)
			break
		}
	}

	s.logger.Info("Extracted %d frames every %d frames from %s", retained, opts.SampleRatio, path)
	return nil
}
