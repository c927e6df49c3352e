package mocks

import (
	"errors"
	"io"

	"github.com/clamsproject/mmif-utils-videodocuments/pkg/ports"
)

// VideoCapture is a mock implementation of ports.VideoCapture over a fixed
// number of synthetic frames. Frame i is 1x1 BGR with every byte set to i.
type VideoCapture struct {
	FrameCount int
	FPS        float64

	ReadFunc func(index int) (ports.Frame, error)
	SeekFunc func(index int) error

	// Recorded calls for verification
	Reads  []int
	Seeks  []int
	Closed bool

	pos int
}

func (m *VideoCapture) IsOpened() bool {
	return !m.Closed
}

func (m *VideoCapture) Read() (ports.Frame, error) {
	if m.Closed {
		return ports.Frame{}, errors.New("mock capture: closed")
	}
	index := m.pos
	m.Reads = append(m.Reads, index)
	if m.ReadFunc != nil {
		f, err := m.ReadFunc(index)
		if err == nil {
			m.pos++
		}
		return f, err
	}
	if index >= m.FrameCount {
		return ports.Frame{}, io.EOF
	}
	m.pos++
	return SyntheticFrame(index), nil
}

func (m *VideoCapture) Seek(index int) error {
	m.Seeks = append(m.Seeks, index)
	if m.SeekFunc != nil {
		if err := m.SeekFunc(index); err != nil {
			return err
		}
	}
	m.pos = index
	return nil
}

func (m *VideoCapture) FrameRate() float64 {
	return m.FPS
}

func (m *VideoCapture) Close() error {
	m.Closed = true
	return nil
}

var _ ports.VideoCapture = (*VideoCapture)(nil)

// SyntheticFrame returns the 1x1 BGR frame the mock produces for index.
func SyntheticFrame(index int) ports.Frame {
	b := byte(index)
	return ports.Frame{
		Width:    1,
		Height:   1,
		Channels: 3,
		Order:    ports.OrderBGR,
		Pix:      []byte{b, b, b},
	}
}

// CaptureOpener is a mock implementation of ports.CaptureOpener.
type CaptureOpener struct {
	OpenFunc func(path string) (ports.VideoCapture, error)

	// Capture is returned by Open when OpenFunc is nil.
	Capture *VideoCapture

	// Recorded calls for verification
	OpenCalls []string
}

func (m *CaptureOpener) Open(path string) (ports.VideoCapture, error) {
	m.OpenCalls = append(m.OpenCalls, path)
	if m.OpenFunc != nil {
		return m.OpenFunc(path)
	}
	if m.Capture == nil {
		return nil, errors.New("mock capture opener: no capture configured")
	}
	return m.Capture, nil
}

var _ ports.CaptureOpener = (*CaptureOpener)(nil)

// FrameRateProber is a mock implementation of ports.FrameRateProber.
type FrameRateProber struct {
	FPS       float64
	ProbeFunc func(path string) (float64, error)

	// Recorded calls for verification
	ProbeCalls []string
}

func (m *FrameRateProber) ProbeFrameRate(path string) (float64, error) {
	m.ProbeCalls = append(m.ProbeCalls, path)
	if m.ProbeFunc != nil {
		return m.ProbeFunc(path)
	}
	return m.FPS, nil
}

var _ ports.FrameRateProber = (*FrameRateProber)(nil)
