package ports

// ChannelOrder describes how color channels are laid out in a Frame buffer.
type ChannelOrder int

const (
	// OrderBGR is three interleaved channels in blue, green, red order (OpenCV).
	OrderBGR ChannelOrder = iota
	// OrderRGB is three interleaved channels in red, green, blue order.
	OrderRGB
	// OrderRGBA is four interleaved channels with alpha last (ffmpeg rgba pipe).
	OrderRGBA
	// OrderBGRA is four interleaved channels in blue, green, red, alpha order (OpenCV with alpha).
	OrderBGRA
)

// String returns the string representation of the channel order.
func (o ChannelOrder) String() string {
	switch o {
	case OrderBGR:
		return "bgr"
	case OrderRGB:
		return "rgb"
	case OrderRGBA:
		return "rgba"
	case OrderBGRA:
		return "bgra"
	default:
		return "unknown"
	}
}

// Frame is a decoded video frame as a raw Height x Width x Channels pixel buffer.
// A sampled frame does not remember its index in the source video.
type Frame struct {
	Width    int
	Height   int
	Channels int
	Order    ChannelOrder
	Pix      []byte
}

// VideoCapture abstracts a sequential, seekable video decoder.
type VideoCapture interface {
	// IsOpened reports whether the capture can still produce frames.
	IsOpened() bool

	// Read decodes the frame at the current position and advances by one.
	// It returns io.EOF at the end of the stream.
	Read() (Frame, error)

	// Seek moves the read position so the next Read returns frame index.
	Seek(index int) error

	// FrameRate returns the frame rate reported by the container.
	FrameRate() float64

	// Close releases decoder resources.
	Close() error
}

// CaptureOpener opens video captures by file path.
type CaptureOpener interface {
	Open(path string) (VideoCapture, error)
}

// FrameRateProber reports the frame rate of a video file.
type FrameRateProber interface {
	ProbeFrameRate(path string) (float64, error)
}
