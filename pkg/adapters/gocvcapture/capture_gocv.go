//go:build gocv

package gocvcapture

import (
	"fmt"
	"io"

	"github.com/clamsproject/mmif-utils-videodocuments/pkg/ports"
	"gocv.io/x/gocv"
)

const available = true

// capture implements ports.VideoCapture over an OpenCV VideoCapture.
type capture struct {
	vc  *gocv.VideoCapture
	mat gocv.Mat
}

func open(path string) (ports.VideoCapture, error) {
	vc, err := gocv.VideoCaptureFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrOpenFailed, err)
	}
	if !vc.IsOpened() {
		vc.Close()
		return nil, fmt.Errorf("%w: %s", ErrOpenFailed, path)
	}
	return &capture{vc: vc, mat: gocv.NewMat()}, nil
}

func (c *capture) IsOpened() bool {
	return c.vc != nil && c.vc.IsOpened()
}

func (c *capture) Read() (ports.Frame, error) {
	if c.vc == nil {
		return ports.Frame{}, ErrClosed
	}
	if ok := c.vc.Read(&c.mat); !ok || c.mat.Empty() {
		return ports.Frame{}, io.EOF
	}
	order := ports.OrderBGR
	if c.mat.Channels() == 4 {
		order = ports.OrderBGRA
	}
	return ports.Frame{
		Width:    c.mat.Cols(),
		Height:   c.mat.Rows(),
		Channels: c.mat.Channels(),
		Order:    order,
		Pix:      c.mat.ToBytes(),
	}, nil
}

func (c *capture) Seek(index int) error {
	if c.vc == nil {
		return ErrClosed
	}
	c.vc.Set(gocv.VideoCapturePosFrames, float64(index))
	return nil
}

func (c *capture) FrameRate() float64 {
	if c.vc == nil {
		return 0
	}
	return c.vc.Get(gocv.VideoCaptureFPS)
}

func (c *capture) Close() error {
	if c.vc == nil {
		return nil
	}
	c.mat.Close()
	err := c.vc.Close()
	c.vc = nil
	return err
}
