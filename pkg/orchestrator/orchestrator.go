// Package orchestrator coordinates a frame extraction run: frame rate
// resolution, sampling, export, contact sheet and summary.
package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"image"

	"github.com/clamsproject/mmif-utils-videodocuments/pkg/mmif"
	"github.com/clamsproject/mmif-utils-videodocuments/pkg/ports"
	"github.com/clamsproject/mmif-utils-videodocuments/pkg/summarizer"
	"github.com/clamsproject/mmif-utils-videodocuments/pkg/videodoc"
)

// DefaultDocumentID names the document created for a bare video path.
const DefaultDocumentID = "d1"

// ErrNoSource is returned when neither an MMIF file nor a video path is given.
var ErrNoSource = errors.New("orchestrator: an MMIF file with a document id, or a video path, is required")

// ImageSampler hands sampled frames to fn one image at a time.
type ImageSampler interface {
	StreamImages(ctx context.Context, doc *mmif.Document, opts videodoc.Options, fn func(k int, img image.Image) error) error
}

// SheetBuilder renders sampled images into a contact sheet.
type SheetBuilder interface {
	Thumbnail(img image.Image) image.Image
	Build(images []image.Image, fps float64, sampleRatio int) (image.Image, error)
}

// SummaryWriter persists a run summary.
type SummaryWriter interface {
	Write(path string, summary *summarizer.Summary) error
}

// inspector is implemented by probers that can also report container details.
type inspector interface {
	Inspect(path string) (codec string, frames int, err error)
}

// Config contains all configuration for one run.
type Config struct {
	// Input: MMIFPath with DocumentID, or VideoPath alone.
	MMIFPath   string
	DocumentID string
	VideoPath  string

	Sampling videodoc.Options

	// Output
	OutputDir    string
	Format       ports.ImageFormat
	ContactSheet string // file name or path; empty skips the sheet
	SummaryPath  string // empty skips the summary
}

// Orchestrator runs extraction over its collaborators.
type Orchestrator struct {
	sampler ImageSampler
	prober  ports.FrameRateProber
	sink    ports.FrameSink
	sheet   SheetBuilder
	summary SummaryWriter
	fs      ports.FileSystem
	logger  ports.Logger
}

// New creates a new Orchestrator. sheet and summary may be nil when the
// corresponding outputs are never requested.
func New(
	sampler ImageSampler,
	prober ports.FrameRateProber,
	sink ports.FrameSink,
	sheet SheetBuilder,
	summary SummaryWriter,
	fs ports.FileSystem,
	logger ports.Logger,
) *Orchestrator {
	return &Orchestrator{
		sampler: sampler,
		prober:  prober,
		sink:    sink,
		sheet:   sheet,
		summary: summary,
		fs:      fs,
		logger:  logger.WithComponent("extract"),
	}
}

// RunResult describes what a run produced.
type RunResult struct {
	DocumentID      string
	Location        string
	FrameRate       float64
	FrameRateSource string
	Files           []string
	ContactSheet    string
	BytesWritten    int64
}

// Run executes the complete extraction.
func (o *Orchestrator) Run(ctx context.Context, config Config) (RunResult, error) {
	m, docID, err := LoadSource(o.fs, config.MMIFPath, config.DocumentID, config.VideoPath)
	if err != nil {
		return RunResult{}, err
	}
	doc, err := videodoc.VideoDocument(m, docID)
	if err != nil {
		return RunResult{}, err
	}
	result := RunResult{DocumentID: docID, Location: doc.Location()}

	// 1. Frame rate, used for timestamps only
	result.FrameRate, result.FrameRateSource = o.frameRate(m, doc)

	// 2. Sample and export. Frames go to the sink as they are decoded;
	// only thumbnails are kept, and only when a sheet is wanted.
	wantSheet := config.ContactSheet != "" && o.sheet != nil
	var thumbs []image.Image
	var frameSize image.Point
	var saveErr error
	err = o.sampler.StreamImages(ctx, doc, config.Sampling, func(k int, img image.Image) error {
		if k == 0 {
			frameSize = img.Bounds().Size()
		}
		path, err := o.sink.SaveFrame(k*config.Sampling.SampleRatio, img)
		if err != nil {
			o.logger.Error("Failed to save frame %d: %v", k, err)
			saveErr = fmt.Errorf("save frame: %w", err)
			return saveErr
		}
		result.Files = append(result.Files, path)
		if wantSheet {
			thumbs = append(thumbs, o.sheet.Thumbnail(img))
		}
		return nil
	})
	if saveErr != nil {
		return RunResult{}, saveErr
	}
	if err != nil {
		o.logger.Error("Failed to extract frames: %v", err)
		return RunResult{}, fmt.Errorf("extract frames: %w", err)
	}
	o.logger.Info("Saved %d frames to %s", len(result.Files), config.OutputDir)

	// 3. Contact sheet (optional)
	if config.ContactSheet != "" {
		path, err := o.contactSheet(config, thumbs, result.FrameRate)
		if err != nil {
			return RunResult{}, err
		}
		result.ContactSheet = path
	}
	result.BytesWritten = o.sink.BytesWritten()

	// 4. Summary (optional)
	if config.SummaryPath != "" && o.summary != nil {
		summary := buildSummary(config, result, frameSize)
		if in, ok := o.prober.(inspector); ok {
			if path, err := doc.LocationPath(); err == nil {
				if codec, frames, err := in.Inspect(path); err == nil {
					summary.Video.Codec, summary.Video.FrameCount = codec, frames
				}
			}
		}
		if err := o.summary.Write(config.SummaryPath, summary); err != nil {
			o.logger.Error("Failed to write summary: %v", err)
			return RunResult{}, err
		}
		o.logger.Info("Summary saved to %s", config.SummaryPath)
	}

	return result, nil
}

func (o *Orchestrator) frameRate(m *mmif.Mmif, doc *mmif.Document) (float64, string) {
	if fps, ok := videodoc.AnnotatedFrameRate(m, doc.ID()); ok {
		o.logger.Debug("Using annotated frame rate %.3f", fps)
		return fps, summarizer.RateFromAnnotation
	}
	fps, err := videodoc.FrameRate(doc, o.prober)
	if err != nil {
		o.logger.Warn("Frame rate unavailable, timestamps are omitted: %v", err)
		return 0, summarizer.RateFromVideo
	}
	return fps, summarizer.RateFromVideo
}

func (o *Orchestrator) contactSheet(config Config, images []image.Image, fps float64) (string, error) {
	if o.sheet == nil || len(images) == 0 || fps <= 0 {
		o.logger.Warn("Skipping contact sheet: %d frames at %.3f fps", len(images), fps)
		return "", nil
	}
	img, err := o.sheet.Build(images, fps, config.Sampling.SampleRatio)
	if err != nil {
		o.logger.Error("Failed to build contact sheet: %v", err)
		return "", fmt.Errorf("build contact sheet: %w", err)
	}
	path, err := o.sink.SaveContactSheet(config.ContactSheet, img)
	if err != nil {
		o.logger.Error("Failed to save contact sheet: %v", err)
		return "", fmt.Errorf("save contact sheet: %w", err)
	}
	o.logger.Info("Contact sheet saved to %s", path)
	return path, nil
}

func buildSummary(config Config, result RunResult, frameSize image.Point) *summarizer.Summary {
	b := summarizer.NewBuilder().
		WithSource(config.MMIFPath, result.DocumentID, result.Location).
		WithFrameRate(result.FrameRate, result.FrameRateSource).
		WithSampling(config.Sampling.SampleRatio, config.Sampling.FrameCutoff).
		WithOutput(config.Format.Extension(), config.OutputDir, result.Files, result.BytesWritten).
		WithContactSheet(result.ContactSheet)
	if len(result.Files) > 0 {
		b.WithVideo("", frameSize.X, frameSize.Y, 0)
	}
	return b.Build()
}

// LoadSource returns the MMIF to work on and the id of its video document.
// With an MMIF path the file is read through fs; otherwise a single-document
// MMIF is created for videoPath under DefaultDocumentID.
func LoadSource(fs ports.FileSystem, mmifPath, docID, videoPath string) (*mmif.Mmif, string, error) {
	switch {
	case mmifPath != "" && docID != "":
		data, err := fs.ReadFile(mmifPath)
		if err != nil {
			return nil, "", fmt.Errorf("read mmif: %w", err)
		}
		m, err := mmif.Parse(data)
		if err != nil {
			return nil, "", err
		}
		return m, docID, nil
	case videoPath != "":
		return mmif.New(mmif.NewVideoDocument(DefaultDocumentID, videoPath)), DefaultDocumentID, nil
	default:
		return nil, "", ErrNoSource
	}
}
