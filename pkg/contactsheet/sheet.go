package contactsheet

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"time"

	"github.com/clamsproject/mmif-utils-videodocuments/pkg/ports"
	"github.com/clamsproject/mmif-utils-videodocuments/pkg/videodoc"
)

// ErrNoFrames is returned when there is nothing to put on a sheet.
var ErrNoFrames = errors.New("contactsheet: no frames")

// Options configures a contact sheet.
type Options struct {
	Columns    int
	ThumbWidth int
	Gap        int
	Padding    int
	FontPath   string
	FontSize   float64
	Background color.Color
	TextColor  color.Color
}

// DefaultOptions returns the options used by the CLI.
func DefaultOptions() Options {
	return Options{
		Columns:    5,
		ThumbWidth: 240,
		Gap:        8,
		Padding:    16,
		FontSize:   13,
		Background: color.RGBA{R: 24, G: 24, B: 24, A: 255},
		TextColor:  color.RGBA{R: 230, G: 230, B: 230, A: 255},
	}
}

// Builder renders contact sheets.
type Builder struct {
	renderer ports.Renderer
	logger   ports.Logger
	opts     Options
}

// New creates a new Builder.
func New(renderer ports.Renderer, logger ports.Logger, opts Options) *Builder {
	return &Builder{
		renderer: renderer,
		logger:   logger.WithComponent("contactsheet"),
		opts:     opts,
	}
}

// Thumbnail scales img down to the sheet's thumbnail width. Narrower images
// are returned unchanged.
func (b *Builder) Thumbnail(img image.Image) image.Image {
	src := img.Bounds()
	if b.opts.ThumbWidth <= 0 || src.Dx() <= b.opts.ThumbWidth {
		return img
	}
	h := max(src.Dy()*b.opts.ThumbWidth/src.Dx(), 1)
	return b.renderer.ResizeImage(img, b.opts.ThumbWidth, h)
}

// Build draws images in a grid. Retained image k came from source frame
// k*sampleRatio; it is labelled with that frame's timestamp at fps.
func (b *Builder) Build(images []image.Image, fps float64, sampleRatio int) (image.Image, error) {
	if len(images) == 0 {
		return nil, ErrNoFrames
	}

	src := images[0].Bounds()
	thumbHeight := src.Dy() * b.opts.ThumbWidth / max(src.Dx(), 1)
	labelHeight := int(b.opts.FontSize*1.6) + 4

	layout := ComputeLayout(LayoutInput{
		Count:       len(images),
		Columns:     b.opts.Columns,
		ThumbWidth:  b.opts.ThumbWidth,
		ThumbHeight: thumbHeight,
		Gap:         b.opts.Gap,
		Padding:     b.opts.Padding,
		LabelHeight: labelHeight,
	})
	b.logger.Debug("Contact sheet layout: %dx%d, %d rows", layout.Width, layout.Height, layout.Rows)

	canvas := b.renderer.CreateCanvas(layout.Width, layout.Height, b.opts.Background)
	style := ports.TextStyle{
		FontSize: b.opts.FontSize,
		FontPath: b.opts.FontPath,
		Color:    b.opts.TextColor,
		Align:    ports.AlignCenter,
	}

	for k, img := range images {
		cell := layout.Cells[k]
		canvas.DrawImageScaled(img, cell.Min.X, cell.Min.Y, cell.Dx(), cell.Dy())

		seconds, err := videodoc.FramesToSecondsAt(fps, k*sampleRatio, 1)
		if err != nil {
			return nil, err
		}
		label := layout.Labels[k]
		text := fmt.Sprintf("#%d  %s", k*sampleRatio, Timecode(seconds))
		canvas.DrawText(text, label.Min.X+label.Dx()/2, label.Min.Y+label.Dy()/2, style)
	}

	return canvas.ToImage(), nil
}

// Timecode formats seconds as HH:MM:SS.mmm.
func Timecode(seconds float64) string {
	d := time.Duration(seconds * float64(time.Second)).Round(time.Millisecond)
	h := d / time.Hour
	d -= h * time.Hour
	m := d / time.Minute
	d -= m * time.Minute
	s := d / time.Second
	d -= s * time.Second
	return fmt.Sprintf("%02d:%02d:%02d.%03d", h, m, s, d/time.Millisecond)
}
