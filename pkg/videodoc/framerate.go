// Package videodoc extracts frames from MMIF video documents and converts
// between frame indices, seconds and milliseconds.
package videodoc

import (
	"fmt"

	"github.com/clamsproject/mmif-utils-videodocuments/pkg/mmif"
	"github.com/clamsproject/mmif-utils-videodocuments/pkg/ports"
)

// VideoDocument looks up docID in m and checks that it is a video document.
func VideoDocument(m *mmif.Mmif, docID string) (*mmif.Document, error) {
	doc := m.GetDocumentByID(docID)
	if doc == nil {
		return nil, fmt.Errorf("%w: %q does not exist", ErrInvalidReference, docID)
	}
	if !doc.IsVideo() {
		return nil, fmt.Errorf("%w: %q is a %s", ErrInvalidReference, docID, doc.AtType.ShortName())
	}
	return doc, nil
}

// ResolveFrameRate returns the frame rate of video document docID.
//
// A frame rate recorded on a generic Annotation in any view about the
// document is preferred; the first match in view, annotation, then sorted
// property key order wins. Otherwise the video file is probed.
func ResolveFrameRate(m *mmif.Mmif, docID string, prober ports.FrameRateProber) (float64, error) {
	doc, err := VideoDocument(m, docID)
	if err != nil {
		return 0, err
	}

	if fps, ok := AnnotatedFrameRate(m, docID); ok {
		return fps, nil
	}
	return FrameRate(doc, prober)
}

// AnnotatedFrameRate returns the first frame rate recorded on a generic
// Annotation in a view about docID.
func AnnotatedFrameRate(m *mmif.Mmif, docID string) (float64, bool) {
	for _, v := range m.GetViewsForDocument(docID) {
		for _, a := range v.GetAnnotations(mmif.TypeAnnotation) {
			if md := mmif.LookupMetadata(a.Properties); md.HasFrameRate {
				return md.FrameRate, true
			}
		}
	}
	return 0, false
}

// FrameRate probes the document's video file for its reported frame rate.
// Nothing is cached on the document.
func FrameRate(doc *mmif.Document, prober ports.FrameRateProber) (float64, error) {
	path, err := doc.LocationPath()
	if err != nil {
		return 0, err
	}
	fps, err := prober.ProbeFrameRate(path)
	if err != nil {
		return 0, fmt.Errorf("probe frame rate of %s: %w", path, err)
	}
	return fps, nil
}

// Capture opens the document's video and caches the reported frame rate on
// the document under the "fps" property. The caller must close the capture.
func Capture(doc *mmif.Document, opener ports.CaptureOpener) (ports.VideoCapture, error) {
	path, err := doc.LocationPath()
	if err != nil {
		return nil, err
	}
	capture, err := opener.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	doc.AddProperty(string(mmif.KeyFPS), capture.FrameRate())
	return capture, nil
}

// CaptureProber adapts a CaptureOpener into a FrameRateProber that opens the
// file, reads the reported rate and closes it again.
func CaptureProber(opener ports.CaptureOpener) ports.FrameRateProber {
	return captureProber{opener: opener}
}

type captureProber struct {
	opener ports.CaptureOpener
}

func (p captureProber) ProbeFrameRate(path string) (float64, error) {
	capture, err := p.opener.Open(path)
	if err != nil {
		return 0, err
	}
	defer capture.Close()
	return capture.FrameRate(), nil
}
