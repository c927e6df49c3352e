package ports

import (
	"image"
	"image/color"
)

// Renderer abstracts image processing operations.
type Renderer interface {
	// CreateCanvas creates a new drawing canvas with the specified dimensions and background color.
	CreateCanvas(width, height int, bg color.Color) Canvas

	// EncodeImage encodes an image to the specified format.
	EncodeImage(img image.Image, format ImageFormat, quality int) ([]byte, error)

	// ResizeImage resizes an image to the specified dimensions.
	ResizeImage(img image.Image, width, height int) image.Image
}

// Canvas provides drawing operations for compositing images.
type Canvas interface {
	// DrawImageScaled draws an image scaled to the specified dimensions.
	DrawImageScaled(img image.Image, x, y, width, height int)

	// DrawRect draws a filled rectangle.
	DrawRect(x, y, w, h int, c color.Color)

	// DrawText draws text at the specified position.
	DrawText(text string, x, y int, style TextStyle)

	// ToImage returns the canvas as an image.Image.
	ToImage() image.Image
}

// TextStyle defines text rendering properties.
type TextStyle struct {
	FontSize float64
	FontPath string
	Color    color.Color
	Align    TextAlign
}

// TextAlign specifies text alignment.
type TextAlign int

const (
	AlignLeft TextAlign = iota
	AlignCenter
	AlignRight
)

// ImageFormat specifies image encoding format.
type ImageFormat int

const (
	FormatJPEG ImageFormat = iota
	FormatPNG
)

// Extension returns the file extension used for the format.
func (f ImageFormat) Extension() string {
	if f == FormatJPEG {
		return "jpg"
	}
	return "png"
}

// ParseImageFormat parses "png", "jpeg" or "jpg". Unknown names map to PNG.
func ParseImageFormat(s string) ImageFormat {
	switch s {
	case "jpeg", "jpg":
		return FormatJPEG
	default:
		return FormatPNG
	}
}
