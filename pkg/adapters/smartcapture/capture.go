// Package smartcapture selects a decoding backend and probes frame rates,
// reading MP4 containers directly before falling back to the decoder.
package smartcapture

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/clamsproject/mmif-utils-videodocuments/pkg/adapters/gocvcapture"
	"github.com/clamsproject/mmif-utils-videodocuments/pkg/adapters/mp4probe"
	"github.com/clamsproject/mmif-utils-videodocuments/pkg/adapters/vidiocapture"
	"github.com/clamsproject/mmif-utils-videodocuments/pkg/ports"
)

// Backend is a decoding backend.
type Backend string

const (
	// BackendAuto picks OpenCV when compiled in, otherwise the ffmpeg pipe.
	BackendAuto Backend = "auto"
	// BackendVidio decodes through an ffmpeg pipe (RGBA frames).
	BackendVidio Backend = "vidio"
	// BackendGoCV decodes with OpenCV (BGR frames).
	BackendGoCV Backend = "gocv"
)

// ParseBackend parses a backend name.
func ParseBackend(s string) (Backend, error) {
	switch b := Backend(strings.ToLower(s)); b {
	case BackendAuto, BackendVidio, BackendGoCV:
		return b, nil
	case "":
		return BackendAuto, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownBackend, s)
	}
}

var (
	// ErrUnknownBackend is returned for unrecognized backend names.
	ErrUnknownBackend = errors.New("smartcapture: unknown backend")
	// ErrNoBackendAvailable is returned when no decoding backend can run here.
	ErrNoBackendAvailable = errors.New("smartcapture: no backend available")
)

// Options configures backend selection.
type Options struct {
	Backend Backend
}

// Info describes the selected backend.
type Info struct {
	Backend Backend
}

// NewOpener returns a CaptureOpener for the requested backend.
//
// The selection flow for auto:
//  1. OpenCV, when built with the gocv tag
//  2. Vidio, when ffmpeg and ffprobe are in PATH
func NewOpener(opts Options) (ports.CaptureOpener, Info, error) {
	switch opts.Backend {
	case BackendGoCV:
		if !gocvcapture.IsAvailable() {
			return nil, Info{}, gocvcapture.ErrBackendUnavailable
		}
		return gocvcapture.New(), Info{Backend: BackendGoCV}, nil

	case BackendVidio:
		if !vidiocapture.IsAvailable() {
			return nil, Info{}, vidiocapture.ErrFFmpegNotFound
		}
		return vidiocapture.New(), Info{Backend: BackendVidio}, nil

	case BackendAuto, "":
		if gocvcapture.IsAvailable() {
			return gocvcapture.New(), Info{Backend: BackendGoCV}, nil
		}
		if vidiocapture.IsAvailable() {
			return vidiocapture.New(), Info{Backend: BackendVidio}, nil
		}
		return nil, Info{}, ErrNoBackendAvailable

	default:
		return nil, Info{}, fmt.Errorf("%w: %q", ErrUnknownBackend, opts.Backend)
	}
}

// Prober implements ports.FrameRateProber. Videos are opened with the
// decoder, so the rate matches what Capture records. MP4 family files are
// read with mp4probe when there is no decoder or it cannot open them.
type Prober struct {
	decoder ports.CaptureOpener
	logger  ports.Logger
}

// NewProber creates a Prober. decoder may be nil, in which case only MP4
// containers can be probed.
func NewProber(decoder ports.CaptureOpener, logger ports.Logger) *Prober {
	return &Prober{
		decoder: decoder,
		logger:  logger.WithComponent("probe"),
	}
}

// ProbeFrameRate returns the frame rate of the video at path.
func (p *Prober) ProbeFrameRate(path string) (float64, error) {
	if p.decoder != nil {
		capture, err := p.decoder.Open(path)
		if err == nil {
			defer capture.Close()
			return capture.FrameRate(), nil
		}
		if !isMP4(path) {
			return 0, err
		}
		p.logger.Warn("Decoder could not open %s, reading the container instead: %v", path, err)
	} else if !isMP4(path) {
		return 0, ErrNoBackendAvailable
	}

	info, err := mp4probe.ProbeFile(path)
	if err != nil {
		return 0, err
	}
	p.logger.Debug("Read %.3f fps from %s container (%s, %d frames)", info.FrameRate(), path, info.Codec, info.FrameCount)
	return info.FrameRate(), nil
}

// Inspect returns the codec and frame count of an MP4 family file.
func (p *Prober) Inspect(path string) (string, int, error) {
	if !isMP4(path) {
		return "", 0, fmt.Errorf("%w: %s", mp4probe.ErrNoVideoTrack, filepath.Ext(path))
	}
	info, err := mp4probe.ProbeFile(path)
	if err != nil {
		return "", 0, err
	}
	return string(info.Codec), info.FrameCount, nil
}

func isMP4(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".mp4", ".m4v", ".mov":
		return true
	}
	return false
}

var _ ports.FrameRateProber = (*Prober)(nil)
