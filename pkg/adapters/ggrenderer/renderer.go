// Package ggrenderer draws contact sheets and encodes frames using the gg library.
package ggrenderer

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"

	"github.com/fogleman/gg"
	"golang.org/x/image/draw"

	"github.com/clamsproject/mmif-utils-videodocuments/pkg/ports"
)

// Renderer implements ports.Renderer using the gg library.
type Renderer struct{}

// New creates a new Renderer.
func New() *Renderer {
	return &Renderer{}
}

// CreateCanvas creates a new drawing canvas filled with bg.
func (r *Renderer) CreateCanvas(width, height int, bg color.Color) ports.Canvas {
	dc := gg.NewContext(width, height)
	dc.SetColor(bg)
	dc.Clear()
	return &Canvas{dc: dc}
}

// EncodeImage encodes an image as JPEG (at quality) or PNG.
func (r *Renderer) EncodeImage(img image.Image, format ports.ImageFormat, quality int) ([]byte, error) {
	var buf bytes.Buffer

	switch format {
	case ports.FormatJPEG:
		if quality <= 0 || quality > 100 {
			quality = jpeg.DefaultQuality
		}
		if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: quality}); err != nil {
			return nil, fmt.Errorf("encode JPEG: %w", err)
		}
	case ports.FormatPNG:
		enc := png.Encoder{CompressionLevel: png.BestSpeed}
		if err := enc.Encode(&buf, img); err != nil {
			return nil, fmt.Errorf("encode PNG: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported format: %d", format)
	}

	return buf.Bytes(), nil
}

// ResizeImage scales an image to exactly width x height.
func (r *Renderer) ResizeImage(img image.Image, width, height int) image.Image {
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, img.Bounds(), draw.Src, nil)
	return dst
}

var _ ports.Renderer = (*Renderer)(nil)

// Canvas implements ports.Canvas using gg.Context.
type Canvas struct {
	dc       *gg.Context
	fontPath string
	fontSize float64
}

// DrawImageScaled draws an image scaled into the given rectangle.
func (c *Canvas) DrawImageScaled(img image.Image, x, y, width, height int) {
	dst, ok := c.dc.Image().(*image.RGBA)
	if !ok {
		return
	}
	rect := image.Rect(x, y, x+width, y+height)
	draw.ApproxBiLinear.Scale(dst, rect, img, img.Bounds(), draw.Over, nil)
}

// DrawRect draws a filled rectangle.
func (c *Canvas) DrawRect(x, y, w, h int, col color.Color) {
	c.dc.SetColor(col)
	c.dc.DrawRectangle(float64(x), float64(y), float64(w), float64(h))
	c.dc.Fill()
}

// DrawText draws a single line of text vertically centered on y.
// Without a FontPath the built-in bitmap face is used.
func (c *Canvas) DrawText(text string, x, y int, style ports.TextStyle) {
	if style.FontPath != "" && (style.FontPath != c.fontPath || style.FontSize != c.fontSize) {
		if err := c.dc.LoadFontFace(style.FontPath, style.FontSize); err == nil {
			c.fontPath, c.fontSize = style.FontPath, style.FontSize
		}
	}
	c.dc.SetColor(style.Color)

	ax := 0.0
	switch style.Align {
	case ports.AlignCenter:
		ax = 0.5
	case ports.AlignRight:
		ax = 1.0
	}
	c.dc.DrawStringAnchored(text, float64(x), float64(y), ax, 0.5)
}

// ToImage returns the canvas as an image.Image.
func (c *Canvas) ToImage() image.Image {
	return c.dc.Image()
}

var _ ports.Canvas = (*Canvas)(nil)
