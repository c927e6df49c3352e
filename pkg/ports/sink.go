package ports

import "image"

// FrameSink receives sampled frames for persistence.
type FrameSink interface {
	// SaveFrame stores the sampled frame at the given output position and
	// returns where it was written.
	SaveFrame(index int, img image.Image) (string, error)

	// SaveContactSheet stores a contact sheet image under name.
	SaveContactSheet(name string, img image.Image) (string, error)

	// BytesWritten returns the total size of everything saved so far.
	BytesWritten() int64
}
