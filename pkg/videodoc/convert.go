package videodoc

import (
	"fmt"
	"math"

	"github.com/clamsproject/mmif-utils-videodocuments/pkg/mmif"
	"github.com/clamsproject/mmif-utils-videodocuments/pkg/ports"
)

// Converter converts between frames and wall-clock time for a video document.
// Every call probes the frame rate again; use the ...At functions to convert
// many values against one resolved rate.
type Converter struct {
	prober ports.FrameRateProber
}

// NewConverter creates a Converter that resolves frame rates with prober.
func NewConverter(prober ports.FrameRateProber) *Converter {
	return &Converter{prober: prober}
}

// FramesToSeconds converts a frame count to seconds.
func (c *Converter) FramesToSeconds(doc *mmif.Document, frames int, sampleRatio int) (float64, error) {
	fps, err := FrameRate(doc, c.prober)
	if err != nil {
		return 0, err
	}
	return FramesToSecondsAt(fps, frames, sampleRatio)
}

// FramesToMilliseconds converts a frame count to milliseconds.
func (c *Converter) FramesToMilliseconds(doc *mmif.Document, frames int, sampleRatio int) (float64, error) {
	fps, err := FrameRate(doc, c.prober)
	if err != nil {
		return 0, err
	}
	return FramesToMillisecondsAt(fps, frames, sampleRatio)
}

// SecondsToFrames converts seconds to a frame count, truncating toward zero.
func (c *Converter) SecondsToFrames(doc *mmif.Document, seconds float64, sampleRatio int) (int, error) {
	fps, err := FrameRate(doc, c.prober)
	if err != nil {
		return 0, err
	}
	return SecondsToFramesAt(fps, seconds, sampleRatio)
}

// MillisecondsToFrames converts milliseconds to a frame count, truncating toward zero.
func (c *Converter) MillisecondsToFrames(doc *mmif.Document, milliseconds float64, sampleRatio int) (int, error) {
	fps, err := FrameRate(doc, c.prober)
	if err != nil {
		return 0, err
	}
	return MillisecondsToFramesAt(fps, milliseconds, sampleRatio)
}

// FramesToSecondsAt returns frames / (fps * sampleRatio).
func FramesToSecondsAt(fps float64, frames int, sampleRatio int) (float64, error) {
	if err := checkRate(fps, sampleRatio); err != nil {
		return 0, err
	}
	return float64(frames) / (fps * float64(sampleRatio)), nil
}

// FramesToMillisecondsAt returns frames / (fps * sampleRatio) * 1000.
func FramesToMillisecondsAt(fps float64, frames int, sampleRatio int) (float64, error) {
	seconds, err := FramesToSecondsAt(fps, frames, sampleRatio)
	if err != nil {
		return 0, err
	}
	return seconds * 1000, nil
}

// SecondsToFramesAt returns trunc(seconds * fps * sampleRatio).
func SecondsToFramesAt(fps float64, seconds float64, sampleRatio int) (int, error) {
	if err := checkRate(fps, sampleRatio); err != nil {
		return 0, err
	}
	return int(math.Trunc(seconds * fps * float64(sampleRatio))), nil
}

// MillisecondsToFramesAt returns trunc(milliseconds / 1000 * fps * sampleRatio).
func MillisecondsToFramesAt(fps float64, milliseconds float64, sampleRatio int) (int, error) {
	return SecondsToFramesAt(fps, milliseconds/1000, sampleRatio)
}

func checkRate(fps float64, sampleRatio int) error {
	if sampleRatio < 1 {
		return fmt.Errorf("%w: got %d", ErrInvalidSampleRatio, sampleRatio)
	}
	if !(fps > 0) || math.IsInf(fps, 0) {
		return fmt.Errorf("%w: got %v", ErrInvalidFrameRate, fps)
	}
	return nil
}
