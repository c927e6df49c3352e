// Package mmif models the subset of MMIF (Multi-Media Interchange Format) used to
// locate video documents and the annotations recorded against them.
package mmif

import "strings"

// AtType is a MMIF vocabulary type URI such as
// "http://mmif.clams.ai/vocabulary/VideoDocument/v1".
type AtType string

const vocabularyBase = "http://mmif.clams.ai/vocabulary/"

const (
	// TypeVideoDocument is the document type of video files.
	TypeVideoDocument AtType = vocabularyBase + "VideoDocument/v1"
	// TypeAudioDocument is the document type of audio files.
	TypeAudioDocument AtType = vocabularyBase + "AudioDocument/v1"
	// TypeImageDocument is the document type of still images.
	TypeImageDocument AtType = vocabularyBase + "ImageDocument/v1"
	// TypeTextDocument is the document type of text.
	TypeTextDocument AtType = vocabularyBase + "TextDocument/v1"
	// TypeAnnotation is the generic annotation type used to carry document-level metadata.
	TypeAnnotation AtType = vocabularyBase + "Annotation/v2"
	// TypeTimeFrame is the annotation type for time intervals.
	TypeTimeFrame AtType = vocabularyBase + "TimeFrame/v2"
)

// ShortName returns the vocabulary name without base URI or version,
// e.g. "VideoDocument".
func (t AtType) ShortName() string {
	s := strings.TrimSuffix(string(t), "/")
	parts := strings.Split(s, "/")
	if len(parts) >= 2 && isVersion(parts[len(parts)-1]) {
		return parts[len(parts)-2]
	}
	return parts[len(parts)-1]
}

// Is reports whether t and other name the same vocabulary type, ignoring versions.
func (t AtType) Is(other AtType) bool {
	return t.ShortName() == other.ShortName()
}

func isVersion(s string) bool {
	if len(s) < 2 || s[0] != 'v' {
		return false
	}
	for _, c := range s[1:] {
		if (c < '0' || c > '9') && c != '.' {
			return false
		}
	}
	return true
}
