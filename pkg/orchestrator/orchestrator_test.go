package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"image"
	"io"
	"strings"
	"testing"

	"github.com/clamsproject/mmif-utils-videodocuments/pkg/contactsheet"
	"github.com/clamsproject/mmif-utils-videodocuments/pkg/mmif"
	"github.com/clamsproject/mmif-utils-videodocuments/pkg/mocks"
	"github.com/clamsproject/mmif-utils-videodocuments/pkg/ports"
	"github.com/clamsproject/mmif-utils-videodocuments/pkg/summarizer"
	"github.com/clamsproject/mmif-utils-videodocuments/pkg/videodoc"
)

type fixture struct {
	capture *mocks.VideoCapture
	opener  *mocks.CaptureOpener
	prober  *mocks.FrameRateProber
	sink    *mocks.FrameSink
	fs      *mocks.FileSystem
	log     *mocks.Logger
	orch    *Orchestrator
}

func newFixture() *fixture {
	f := &fixture{
		capture: &mocks.VideoCapture{FrameCount: 30, FPS: 10},
		prober:  &mocks.FrameRateProber{FPS: 10},
		sink:    &mocks.FrameSink{},
		fs:      mocks.NewFileSystem(),
		log:     mocks.NewLogger(),
	}
	f.opener = &mocks.CaptureOpener{Capture: f.capture}
	sheet := contactsheet.New(&mocks.Renderer{}, f.log, contactsheet.DefaultOptions())
	writer := summarizer.NewWriter(summarizer.NewMarkdownFormatter(), f.fs)
	f.orch = New(videodoc.NewSampler(f.opener, f.log), f.prober, f.sink, sheet, writer, f.fs, f.log)
	return f
}

func writeAnnotatedMMIF(t *testing.T, fs *mocks.FileSystem, path string) {
	t.Helper()
	m := mmif.New(mmif.NewVideoDocument("v1", "/videos/news.mp4"))
	m.AddView(&mmif.View{
		ID: "view1",
		Metadata: mmif.ViewMetadata{
			Contains: map[mmif.AtType]map[string]any{mmif.TypeAnnotation: {"document": "v1"}},
		},
		Annotations: []*mmif.Annotation{{
			AtType:     mmif.TypeAnnotation,
			Properties: map[string]any{"id": "a1", "document": "v1", "fps": 29.97},
		}},
	})
	data, err := m.Marshal()
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if err := fs.WriteFile(path, data); err != nil {
		t.Fatalf("write: %v", err)
	}
}

func TestOrchestrator_RunVideoPath(t *testing.T) {
	f := newFixture()

	result, err := f.orch.Run(context.Background(), Config{
		VideoPath:    "/videos/clip.mp4",
		Sampling:     videodoc.Options{SampleRatio: 10},
		OutputDir:    "out",
		Format:       ports.FormatPNG,
		ContactSheet: "sheet.png",
		SummaryPath:  "out/summary.md",
	})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if result.DocumentID != DefaultDocumentID {
		t.Errorf("expected document %s, got %s", DefaultDocumentID, result.DocumentID)
	}
	if result.FrameRate != 10 || result.FrameRateSource != summarizer.RateFromVideo {
		t.Errorf("expected 10 fps from video, got %v from %s", result.FrameRate, result.FrameRateSource)
	}
	if got := f.sink.SavedIndices; len(got) != 3 || got[0] != 0 || got[1] != 10 || got[2] != 20 {
		t.Errorf("expected frames 0, 10, 20, got %v", got)
	}
	if result.ContactSheet != "sheet.png" || len(f.sink.ContactSheets) != 1 {
		t.Errorf("expected one contact sheet, got %q / %v", result.ContactSheet, f.sink.ContactSheets)
	}
	if result.BytesWritten != 300 {
		t.Errorf("expected 300 bytes, got %d", result.BytesWritten)
	}
	if !f.capture.Closed {
		t.Error("expected capture to be closed")
	}

	data, ok := f.fs.GetFile("out/summary.md")
	if !ok {
		t.Fatal("expected summary to be written")
	}
	if !strings.Contains(string(data), "| Frames Retained | 3 |") {
		t.Errorf("summary missing retained count:\n%s", data)
	}
}

func TestOrchestrator_RunAnnotatedMMIF(t *testing.T) {
	f := newFixture()
	writeAnnotatedMMIF(t, f.fs, "in.mmif")

	result, err := f.orch.Run(context.Background(), Config{
		MMIFPath:   "in.mmif",
		DocumentID: "v1",
		Sampling:   videodoc.Options{SampleRatio: 15, FrameCutoff: videodoc.Cutoff(1)},
		Format:     ports.FormatJPEG,
	})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if result.FrameRate != 29.97 || result.FrameRateSource != summarizer.RateFromAnnotation {
		t.Errorf("expected annotated 29.97, got %v from %s", result.FrameRate, result.FrameRateSource)
	}
	if len(f.prober.ProbeCalls) != 0 {
		t.Errorf("expected no probing, got %v", f.prober.ProbeCalls)
	}
	if len(result.Files) != 1 {
		t.Errorf("expected cutoff to keep 1 frame, got %d", len(result.Files))
	}
	if f.opener.OpenCalls[0] != "/videos/news.mp4" {
		t.Errorf("unexpected open path %s", f.opener.OpenCalls[0])
	}
	if len(f.sink.ContactSheets) != 0 {
		t.Error("expected no contact sheet")
	}
	if paths := f.fs.Paths(); len(paths) != 1 {
		t.Errorf("expected only the input file, got %v", paths)
	}
}

func TestOrchestrator_ProbeFailureSkipsSheet(t *testing.T) {
	f := newFixture()
	f.prober.ProbeFunc = func(path string) (float64, error) {
		return 0, errors.New("no decoder")
	}

	result, err := f.orch.Run(context.Background(), Config{
		VideoPath:    "/videos/clip.mp4",
		Sampling:     videodoc.Options{SampleRatio: 10},
		ContactSheet: "sheet.png",
	})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if len(result.Files) != 3 {
		t.Errorf("expected frames despite probe failure, got %d", len(result.Files))
	}
	if result.ContactSheet != "" {
		t.Errorf("expected sheet to be skipped, got %q", result.ContactSheet)
	}
	if len(f.log.Entries(ports.LevelWarn)) != 2 {
		t.Errorf("expected two warnings, got %v", f.log.Entries(ports.LevelWarn))
	}
}

func TestOrchestrator_Errors(t *testing.T) {
	t.Run("no source", func(t *testing.T) {
		f := newFixture()
		_, err := f.orch.Run(context.Background(), Config{Sampling: videodoc.Options{SampleRatio: 1}})
		if !errors.Is(err, ErrNoSource) {
			t.Errorf("expected ErrNoSource, got %v", err)
		}
	})

	t.Run("unknown document", func(t *testing.T) {
		f := newFixture()
		writeAnnotatedMMIF(t, f.fs, "in.mmif")
		_, err := f.orch.Run(context.Background(), Config{
			MMIFPath:   "in.mmif",
			DocumentID: "v9",
			Sampling:   videodoc.Options{SampleRatio: 1},
		})
		if !errors.Is(err, videodoc.ErrInvalidReference) {
			t.Errorf("expected ErrInvalidReference, got %v", err)
		}
	})

	t.Run("bad ratio", func(t *testing.T) {
		f := newFixture()
		_, err := f.orch.Run(context.Background(), Config{VideoPath: "/v.mp4"})
		if !errors.Is(err, videodoc.ErrInvalidSampleRatio) {
			t.Errorf("expected ErrInvalidSampleRatio, got %v", err)
		}
	})

	t.Run("sink failure", func(t *testing.T) {
		f := newFixture()
		boom := errors.New("disk full")
		f.sink.SaveFrameFunc = func(index int, img image.Image) (string, error) { return "", boom }
		_, err := f.orch.Run(context.Background(), Config{
			VideoPath: "/v.mp4",
			Sampling:  videodoc.Options{SampleRatio: 5},
		})
		if !errors.Is(err, boom) {
			t.Errorf("expected sink error, got %v", err)
		}
		if len(f.log.Entries(ports.LevelError)) != 1 {
			t.Errorf("expected one error log, got %v", f.log.Entries(ports.LevelError))
		}
	})

	t.Run("cancelled", func(t *testing.T) {
		f := newFixture()
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := f.orch.Run(ctx, Config{
			VideoPath: "/v.mp4",
			Sampling:  videodoc.Options{SampleRatio: 5},
		})
		if !errors.Is(err, context.Canceled) {
			t.Errorf("expected context.Canceled, got %v", err)
		}
	})
}

func TestLoadSource(t *testing.T) {
	fs := mocks.NewFileSystem()

	m, id, err := LoadSource(fs, "", "", "/data/a.mp4")
	if err != nil {
		t.Fatalf("LoadSource failed: %v", err)
	}
	if id != DefaultDocumentID || m.GetDocumentByID(id) == nil {
		t.Errorf("expected generated document %s", DefaultDocumentID)
	}

	if _, _, err := LoadSource(fs, "missing.mmif", "v1", ""); err == nil {
		t.Error("expected read error")
	}
	if _, _, err := LoadSource(fs, "in.mmif", "", ""); !errors.Is(err, ErrNoSource) {
		t.Errorf("expected ErrNoSource without a document id, got %v", err)
	}
}

func TestOrchestrator_StreamsFramesAndKeepsThumbnails(t *testing.T) {
	f := newFixture()
	f.capture.ReadFunc = func(index int) (ports.Frame, error) {
		if index >= 30 {
			return ports.Frame{}, io.EOF
		}
		return ports.Frame{Width: 640, Height: 360, Channels: 4, Order: ports.OrderRGBA, Pix: make([]byte, 640*360*4)}, nil
	}
	renderer := &mocks.Renderer{}
	sheet := contactsheet.New(renderer, f.log, contactsheet.DefaultOptions())
	f.orch = New(videodoc.NewSampler(f.opener, f.log), f.prober, f.sink, sheet, nil, f.fs, f.log)

	var readsAtSave []int
	f.sink.SaveFrameFunc = func(index int, img image.Image) (string, error) {
		readsAtSave = append(readsAtSave, len(f.capture.Reads))
		return fmt.Sprintf("frame-%04d.png", index), nil
	}

	result, err := f.orch.Run(context.Background(), Config{
		VideoPath:    "/videos/clip.mp4",
		Sampling:     videodoc.Options{SampleRatio: 10},
		ContactSheet: "sheet.png",
	})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	// Each frame is saved before the next one is decoded.
	if len(readsAtSave) != 3 || readsAtSave[0] != 1 || readsAtSave[1] != 2 || readsAtSave[2] != 3 {
		t.Errorf("expected saves after reads 1, 2, 3, got %v", readsAtSave)
	}
	if renderer.ResizeCalled != 3 {
		t.Errorf("expected 3 thumbnails, got %d resizes", renderer.ResizeCalled)
	}
	if result.ContactSheet != "sheet.png" || len(renderer.Canvases) != 1 || len(renderer.Canvases[0].Images) != 3 {
		t.Errorf("expected a 3-cell sheet, got %q", result.ContactSheet)
	}
}

func TestOrchestrator_NoThumbnailsWithoutSheet(t *testing.T) {
	f := newFixture()
	renderer := &mocks.Renderer{}
	sheet := contactsheet.New(renderer, f.log, contactsheet.Options{ThumbWidth: 1, Columns: 1})
	f.capture.ReadFunc = func(index int) (ports.Frame, error) {
		if index >= 30 {
			return ports.Frame{}, io.EOF
		}
		return ports.Frame{Width: 4, Height: 2, Channels: 4, Order: ports.OrderRGBA, Pix: make([]byte, 4*2*4)}, nil
	}
	f.orch = New(videodoc.NewSampler(f.opener, f.log), f.prober, f.sink, sheet, nil, f.fs, f.log)

	if _, err := f.orch.Run(context.Background(), Config{
		VideoPath: "/videos/clip.mp4",
		Sampling:  videodoc.Options{SampleRatio: 10},
	}); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if renderer.ResizeCalled != 0 {
		t.Errorf("expected no thumbnails, got %d resizes", renderer.ResizeCalled)
	}
}
