package videodoc

import (
	"context"
	"errors"
	"image"
	"image/color"
	"strings"
	"testing"

	"github.com/clamsproject/mmif-utils-videodocuments/pkg/mmif"
	"github.com/clamsproject/mmif-utils-videodocuments/pkg/mocks"
	"github.com/clamsproject/mmif-utils-videodocuments/pkg/ports"
)

func newTestSampler(frames int) (*Sampler, *mocks.VideoCapture, *mocks.Logger) {
	capture := &mocks.VideoCapture{FrameCount: frames, FPS: 30}
	log := mocks.NewLogger()
	return NewSampler(&mocks.CaptureOpener{Capture: capture}, log), capture, log
}

func frameIndices(frames []ports.Frame) []int {
	out := make([]int, len(frames))
	for i, f := range frames {
		out[i] = int(f.Pix[0])
	}
	return out
}

func equalInts(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestExtractFramesEveryFrame(t *testing.T) {
	s, capture, _ := newTestSampler(7)
	doc := mmif.NewVideoDocument("d1", "/videos/clip.mp4")

	frames, err := s.ExtractFrames(context.Background(), doc, Options{SampleRatio: 1})
	if err != nil {
		t.Fatalf("ExtractFrames failed: %v", err)
	}

	want := []int{0, 1, 2, 3, 4, 5, 6}
	if got := frameIndices(frames); !equalInts(got, want) {
		t.Errorf("expected frames %v, got %v", want, got)
	}
	if !capture.Closed {
		t.Error("expected capture to be closed")
	}
}

func TestExtractFramesSampleRatio(t *testing.T) {
	s, capture, _ := newTestSampler(10)
	doc := mmif.NewVideoDocument("d1", "/videos/clip.mp4")

	frames, err := s.ExtractFrames(context.Background(), doc, Options{SampleRatio: 2})
	if err != nil {
		t.Fatalf("ExtractFrames failed: %v", err)
	}

	want := []int{0, 2, 4, 6, 8}
	if got := frameIndices(frames); !equalInts(got, want) {
		t.Errorf("expected frames %v, got %v", want, got)
	}
	// One read per retained frame plus the read that hits the end.
	if !equalInts(capture.Reads, []int{0, 2, 4, 6, 8, 10}) {
		t.Errorf("unexpected read positions %v", capture.Reads)
	}
	if !equalInts(capture.Seeks, []int{2, 4, 6, 8, 10}) {
		t.Errorf("unexpected seeks %v", capture.Seeks)
	}
}

func TestExtractFramesCutoff(t *testing.T) {
	tests := []struct {
		name   string
		frames int
		ratio  int
		cutoff int
		want   []int
	}{
		{"cutoff below length", 10, 1, 3, []int{0, 1, 2}},
		{"cutoff with stride", 10, 3, 3, []int{0, 3, 6}},
		{"cutoff equals length", 3, 1, 3, []int{0, 1, 2}},
		{"cutoff above length", 4, 2, 10, []int{0, 2}},
		{"zero cutoff", 10, 1, 0, []int{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, capture, _ := newTestSampler(tt.frames)
			doc := mmif.NewVideoDocument("d1", "/videos/clip.mp4")

			frames, err := s.ExtractFrames(context.Background(), doc, Options{
				SampleRatio: tt.ratio,
				FrameCutoff: Cutoff(tt.cutoff),
			})
			if err != nil {
				t.Fatalf("ExtractFrames failed: %v", err)
			}
			if got := frameIndices(frames); !equalInts(got, tt.want) {
				t.Errorf("expected frames %v, got %v", tt.want, got)
			}
			if len(capture.Reads) > len(tt.want)+1 {
				t.Errorf("read %d frames for %d retained", len(capture.Reads), len(tt.want))
			}
		})
	}
}

func TestExtractFramesStopsOnReadError(t *testing.T) {
	capture := &mocks.VideoCapture{
		FPS: 30,
		ReadFunc: func(index int) (ports.Frame, error) {
			if index >= 2 {
				return ports.Frame{}, errors.New("decode error")
			}
			return mocks.SyntheticFrame(index), nil
		},
	}
	s := NewSampler(&mocks.CaptureOpener{Capture: capture}, mocks.NewLogger())

	frames, err := s.ExtractFrames(context.Background(), mmif.NewVideoDocument("d1", "/v.mp4"), Options{SampleRatio: 1})
	if err != nil {
		t.Fatalf("read errors should end sampling without failing, got %v", err)
	}
	if len(frames) != 2 {
		t.Errorf("expected 2 frames before the decode error, got %d", len(frames))
	}
}

func TestExtractFramesValidation(t *testing.T) {
	tests := []struct {
		name string
		opts Options
		want error
	}{
		{"zero ratio", Options{SampleRatio: 0}, ErrInvalidSampleRatio},
		{"negative ratio", Options{SampleRatio: -1}, ErrInvalidSampleRatio},
		{"negative cutoff", Options{SampleRatio: 1, FrameCutoff: Cutoff(-1)}, ErrInvalidFrameCutoff},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			capture := &mocks.VideoCapture{FrameCount: 10, FPS: 30}
			opener := &mocks.CaptureOpener{Capture: capture}
			s := NewSampler(opener, mocks.NewLogger())

			_, err := s.ExtractFrames(context.Background(), mmif.NewVideoDocument("d1", "/v.mp4"), tt.opts)
			if !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
			if len(opener.OpenCalls) != 0 {
				t.Error("expected no open attempt")
			}
		})
	}
}

func TestExtractFramesRejectsNonVideo(t *testing.T) {
	opener := &mocks.CaptureOpener{Capture: &mocks.VideoCapture{FrameCount: 1}}
	s := NewSampler(opener, mocks.NewLogger())
	doc := &mmif.Document{AtType: mmif.TypeImageDocument, Properties: map[string]any{"id": "i1", "location": "/a.png"}}

	_, err := s.ExtractFrames(context.Background(), doc, Options{SampleRatio: 1})
	if !errors.Is(err, ErrInvalidReference) {
		t.Errorf("expected ErrInvalidReference, got %v", err)
	}
	if len(opener.OpenCalls) != 0 {
		t.Error("expected no open attempt")
	}
}

func TestExtractFramesOpenError(t *testing.T) {
	openErr := errors.New("cannot open")
	opener := &mocks.CaptureOpener{
		OpenFunc: func(path string) (ports.VideoCapture, error) { return nil, openErr },
	}
	s := NewSampler(opener, mocks.NewLogger())

	_, err := s.ExtractFrames(context.Background(), mmif.NewVideoDocument("d1", "/v.mp4"), Options{SampleRatio: 1})
	if !errors.Is(err, openErr) {
		t.Errorf("expected open error, got %v", err)
	}
}

func TestExtractFramesCancelled(t *testing.T) {
	s, capture, _ := newTestSampler(10)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.ExtractFrames(ctx, mmif.NewVideoDocument("d1", "/v.mp4"), Options{SampleRatio: 1})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
	if !capture.Closed {
		t.Error("expected capture to be closed")
	}
}

func TestExtractFramesLogsSummary(t *testing.T) {
	s, _, log := newTestSampler(10)

	if _, err := s.ExtractFrames(context.Background(), mmif.NewVideoDocument("d1", "/videos/clip.mp4"), Options{SampleRatio: 5}); err != nil {
		t.Fatalf("ExtractFrames failed: %v", err)
	}

	entries := log.Entries(ports.LevelInfo)
	if len(entries) != 1 {
		t.Fatalf("expected 1 info entry, got %d", len(entries))
	}
	e := entries[0]
	if e.Component != "sampler" {
		t.Errorf("expected component sampler, got %q", e.Component)
	}
	for _, part := range []string{"2 frames", "every 5 frames", "clip.mp4"} {
		if !strings.Contains(e.Message, part) {
			t.Errorf("summary %q does not mention %q", e.Message, part)
		}
	}
}

func TestExtractImagesReversesChannels(t *testing.T) {
	capture := &mocks.VideoCapture{
		FPS: 30,
		ReadFunc: func(index int) (ports.Frame, error) {
			if index > 0 {
				return ports.Frame{}, errors.New("end")
			}
			return ports.Frame{Width: 1, Height: 1, Channels: 3, Order: ports.OrderBGR, Pix: []byte{10, 20, 30}}, nil
		},
	}
	s := NewSampler(&mocks.CaptureOpener{Capture: capture}, mocks.NewLogger())

	images, err := s.ExtractImages(context.Background(), mmif.NewVideoDocument("d1", "/v.mp4"), Options{SampleRatio: DefaultImageSampleRatio})
	if err != nil {
		t.Fatalf("ExtractImages failed: %v", err)
	}
	if len(images) != 1 {
		t.Fatalf("expected 1 image, got %d", len(images))
	}
	got := color.RGBAModel.Convert(images[0].At(0, 0)).(color.RGBA)
	want := color.RGBA{R: 30, G: 20, B: 10, A: 255}
	if got != want {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestExtractFramesWarnsOnSeekFailure(t *testing.T) {
	s, capture, log := newTestSampler(10)
	capture.SeekFunc = func(index int) error {
		if index >= 4 {
			return errors.New("seek beyond keyframe index")
		}
		return nil
	}

	frames, err := s.ExtractFrames(context.Background(), mmif.NewVideoDocument("d1", "/v.mp4"), Options{SampleRatio: 2})
	if err != nil {
		t.Fatalf("seek errors should end sampling without failing, got %v", err)
	}
	if got := frameIndices(frames); !equalInts(got, []int{0, 2}) {
		t.Errorf("expected frames [0 2], got %v", got)
	}
	warnings := log.Entries(ports.LevelWarn)
	if len(warnings) != 1 || !strings.Contains(warnings[0].Message, "Seek to frame 4") {
		t.Errorf("expected one seek warning, got %v", warnings)
	}
}

func TestStreamImages(t *testing.T) {
	s, _, _ := newTestSampler(10)
	doc := mmif.NewVideoDocument("d1", "/v.mp4")

	var positions, levels []int
	err := s.StreamImages(context.Background(), doc, Options{SampleRatio: 3}, func(k int, img image.Image) error {
		positions = append(positions, k)
		levels = append(levels, int(color.RGBAModel.Convert(img.At(0, 0)).(color.RGBA).R))
		return nil
	})
	if err != nil {
		t.Fatalf("StreamImages failed: %v", err)
	}
	if !equalInts(positions, []int{0, 1, 2, 3}) {
		t.Errorf("unexpected positions %v", positions)
	}
	if !equalInts(levels, []int{0, 3, 6, 9}) {
		t.Errorf("unexpected source frames %v", levels)
	}
}

func TestStreamImagesStopsOnCallbackError(t *testing.T) {
	s, capture, _ := newTestSampler(10)
	full := errors.New("disk full")

	calls := 0
	err := s.StreamImages(context.Background(), mmif.NewVideoDocument("d1", "/v.mp4"), Options{SampleRatio: 1}, func(k int, img image.Image) error {
		calls++
		if k == 1 {
			return full
		}
		return nil
	})
	if !errors.Is(err, full) {
		t.Errorf("expected callback error, got %v", err)
	}
	if calls != 2 || len(capture.Reads) != 2 {
		t.Errorf("expected to stop after 2 frames, got %d calls and %d reads", calls, len(capture.Reads))
	}
	if !capture.Closed {
		t.Error("expected capture to be closed")
	}
}
