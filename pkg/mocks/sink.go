package mocks

import (
	"fmt"
	"image"
	"sync"

	"github.com/clamsproject/mmif-utils-videodocuments/pkg/ports"
)

// FrameSink is a mock implementation of ports.FrameSink.
type FrameSink struct {
	mu sync.Mutex

	SaveFrameFunc        func(index int, img image.Image) (string, error)
	SaveContactSheetFunc func(name string, img image.Image) (string, error)

	// Recorded calls for verification
	SavedIndices  []int
	ContactSheets []string
	Bytes         int64
}

func (m *FrameSink) SaveFrame(index int, img image.Image) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.SaveFrameFunc != nil {
		return m.SaveFrameFunc(index, img)
	}
	m.SavedIndices = append(m.SavedIndices, index)
	m.Bytes += 100
	return fmt.Sprintf("frame-%04d.png", index), nil
}

func (m *FrameSink) SaveContactSheet(name string, img image.Image) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.SaveContactSheetFunc != nil {
		return m.SaveContactSheetFunc(name, img)
	}
	m.ContactSheets = append(m.ContactSheets, name)
	return name, nil
}

// BytesWritten returns 100 bytes per default SaveFrame call.
func (m *FrameSink) BytesWritten() int64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.Bytes
}

var _ ports.FrameSink = (*FrameSink)(nil)
