package videodoc

import (
	"errors"
	"fmt"
	"image"

	"github.com/clamsproject/mmif-utils-videodocuments/pkg/ports"
)

// ErrMalformedFrame is returned when a frame buffer does not match its
// declared dimensions.
var ErrMalformedFrame = errors.New("videodoc: malformed frame buffer")

// FrameToImage converts a raw frame to an RGBA image. BGR and BGRA buffers
// have their color channels reversed.
func FrameToImage(f ports.Frame) (*image.RGBA, error) {
	want := f.Width * f.Height * f.Channels
	if f.Width <= 0 || f.Height <= 0 || len(f.Pix) < want {
		return nil, fmt.Errorf("%w: %dx%dx%d with %d bytes", ErrMalformedFrame, f.Width, f.Height, f.Channels, len(f.Pix))
	}

	img := image.NewRGBA(image.Rect(0, 0, f.Width, f.Height))
	switch {
	case f.Order == ports.OrderRGBA && f.Channels == 4:
		copy(img.Pix, f.Pix[:want])
	case f.Order == ports.OrderBGR && f.Channels == 3:
		for i, j := 0, 0; i < want; i, j = i+3, j+4 {
			img.Pix[j] = f.Pix[i+2]
			img.Pix[j+1] = f.Pix[i+1]
			img.Pix[j+2] = f.Pix[i]
			img.Pix[j+3] = 0xff
		}
	case f.Order == ports.OrderBGRA && f.Channels == 4:
		for i := 0; i < want; i += 4 {
			img.Pix[i] = f.Pix[i+2]
			img.Pix[i+1] = f.Pix[i+1]
			img.Pix[i+2] = f.Pix[i]
			img.Pix[i+3] = f.Pix[i+3]
		}
	case f.Order == ports.OrderRGB && f.Channels == 3:
		for i, j := 0, 0; i < want; i, j = i+3, j+4 {
			img.Pix[j] = f.Pix[i]
			img.Pix[j+1] = f.Pix[i+1]
			img.Pix[j+2] = f.Pix[i+2]
			img.Pix[j+3] = 0xff
		}
	default:
		return nil, fmt.Errorf("%w: %d channels in %s order", ErrMalformedFrame, f.Channels, f.Order)
	}
	return img, nil
}
