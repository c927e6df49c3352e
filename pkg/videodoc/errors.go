package videodoc

import "errors"

var (
	// ErrInvalidReference is returned when a document id is missing from the
	// MMIF or does not name a video document.
	ErrInvalidReference = errors.New("videodoc: invalid video document reference")

	// ErrInvalidSampleRatio is returned for sample ratios below 1.
	ErrInvalidSampleRatio = errors.New("videodoc: sample ratio must be at least 1")

	// ErrInvalidFrameCutoff is returned for negative frame cutoffs.
	ErrInvalidFrameCutoff = errors.New("videodoc: frame cutoff must not be negative")

	// ErrInvalidFrameRate is returned when a frame rate is zero, negative or not finite.
	ErrInvalidFrameRate = errors.New("videodoc: frame rate must be positive")
)
