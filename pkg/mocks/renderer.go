package mocks

import (
	"image"
	"image/color"

	"github.com/clamsproject/mmif-utils-videodocuments/pkg/ports"
)

// Renderer is a mock implementation of ports.Renderer.
type Renderer struct {
	CreateCanvasFunc func(width, height int, bg color.Color) ports.Canvas
	EncodeImageFunc  func(img image.Image, format ports.ImageFormat, quality int) ([]byte, error)
	ResizeImageFunc  func(img image.Image, width, height int) image.Image

	// Recorded calls for verification
	Canvases     []*Canvas
	EncodeCalls  []EncodeCall
	ResizeCalled int
}

// EncodeCall records a call to EncodeImage.
type EncodeCall struct {
	Bounds  image.Rectangle
	Format  ports.ImageFormat
	Quality int
}

func (m *Renderer) CreateCanvas(width, height int, bg color.Color) ports.Canvas {
	if m.CreateCanvasFunc != nil {
		return m.CreateCanvasFunc(width, height, bg)
	}
	c := &Canvas{Width: width, Height: height}
	m.Canvases = append(m.Canvases, c)
	return c
}

func (m *Renderer) EncodeImage(img image.Image, format ports.ImageFormat, quality int) ([]byte, error) {
	m.EncodeCalls = append(m.EncodeCalls, EncodeCall{Bounds: img.Bounds(), Format: format, Quality: quality})
	if m.EncodeImageFunc != nil {
		return m.EncodeImageFunc(img, format, quality)
	}
	return []byte(format.Extension()), nil
}

func (m *Renderer) ResizeImage(img image.Image, width, height int) image.Image {
	m.ResizeCalled++
	if m.ResizeImageFunc != nil {
		return m.ResizeImageFunc(img, width, height)
	}
	return image.NewRGBA(image.Rect(0, 0, width, height))
}

var _ ports.Renderer = (*Renderer)(nil)

// Canvas is a mock implementation of ports.Canvas that records drawing calls.
type Canvas struct {
	Width  int
	Height int

	Images []image.Rectangle
	Texts  []string
}

func (m *Canvas) DrawImageScaled(img image.Image, x, y, width, height int) {
	m.Images = append(m.Images, image.Rect(x, y, x+width, y+height))
}

func (m *Canvas) DrawRect(x, y, w, h int, c color.Color) {}

func (m *Canvas) DrawText(text string, x, y int, style ports.TextStyle) {
	m.Texts = append(m.Texts, text)
}

func (m *Canvas) ToImage() image.Image {
	return image.NewRGBA(image.Rect(0, 0, m.Width, m.Height))
}

var _ ports.Canvas = (*Canvas)(nil)
