// Package summarizer provides summary generation for frame extraction runs.
package summarizer

import "time"

// Frame rate sources reported in a summary.
const (
	RateFromAnnotation = "annotation"
	RateFromVideo      = "video"
)

// Summary contains all data collected during an extraction run.
type Summary struct {
	// Metadata
	GeneratedAt time.Time `yaml:"generated_at"`

	// Source document
	Source SourceInfo `yaml:"source"`

	// Video properties as resolved for the document
	Video VideoInfo `yaml:"video"`

	// Extraction settings and results
	Extraction ExtractionInfo `yaml:"extraction"`
}

// SourceInfo identifies the MMIF document that was sampled.
type SourceInfo struct {
	MMIF       string `yaml:"mmif,omitempty"`
	DocumentID string `yaml:"document"`
	Location   string `yaml:"location"`
}

// VideoInfo contains properties of the sampled video.
type VideoInfo struct {
	FrameRate       float64 `yaml:"fps"`
	FrameRateSource string  `yaml:"fps_source"`
	Codec           string  `yaml:"codec,omitempty"`
	Width           int     `yaml:"width,omitempty"`
	Height          int     `yaml:"height,omitempty"`
	FrameCount      int     `yaml:"frame_count,omitempty"`
}

// ExtractionInfo contains the sampling settings and the produced files.
type ExtractionInfo struct {
	SampleRatio int `yaml:"sample_ratio"`
	// FrameCutoff is -1 when the whole video was sampled.
	FrameCutoff  int      `yaml:"frame_cutoff"`
	Retained     int      `yaml:"retained"`
	Format       string   `yaml:"format"`
	OutputDir    string   `yaml:"output_dir"`
	Files        []string `yaml:"files,omitempty"`
	ContactSheet string   `yaml:"contact_sheet,omitempty"`
	TotalBytes   int64    `yaml:"total_bytes"`
}

// NewSummary creates a new Summary with the current timestamp.
func NewSummary() *Summary {
	return &Summary{
		GeneratedAt: time.Now(),
		Extraction:  ExtractionInfo{FrameCutoff: -1},
	}
}

// Builder provides a fluent interface for building a Summary.
type Builder struct {
	summary *Summary
}

// NewBuilder creates a new Builder.
func NewBuilder() *Builder {
	return &Builder{
		summary: NewSummary(),
	}
}

// WithSource sets the sampled document.
func (b *Builder) WithSource(mmifPath, documentID, location string) *Builder {
	b.summary.Source = SourceInfo{
		MMIF:       mmifPath,
		DocumentID: documentID,
		Location:   location,
	}
	return b
}

// WithFrameRate sets the resolved frame rate and where it came from.
func (b *Builder) WithFrameRate(fps float64, source string) *Builder {
	b.summary.Video.FrameRate = fps
	b.summary.Video.FrameRateSource = source
	return b
}

// WithVideo sets container details. The frame rate fields are kept.
func (b *Builder) WithVideo(codec string, width, height, frameCount int) *Builder {
	b.summary.Video.Codec = codec
	b.summary.Video.Width = width
	b.summary.Video.Height = height
	b.summary.Video.FrameCount = frameCount
	return b
}

// WithSampling sets the sample ratio and optional frame cutoff.
func (b *Builder) WithSampling(sampleRatio int, frameCutoff *int) *Builder {
	b.summary.Extraction.SampleRatio = sampleRatio
	b.summary.Extraction.FrameCutoff = -1
	if frameCutoff != nil {
		b.summary.Extraction.FrameCutoff = *frameCutoff
	}
	return b
}

// WithOutput records the written frame files.
func (b *Builder) WithOutput(format, dir string, files []string, totalBytes int64) *Builder {
	b.summary.Extraction.Format = format
	b.summary.Extraction.OutputDir = dir
	b.summary.Extraction.Files = files
	b.summary.Extraction.Retained = len(files)
	b.summary.Extraction.TotalBytes = totalBytes
	return b
}

// WithContactSheet records the contact sheet path.
func (b *Builder) WithContactSheet(path string) *Builder {
	b.summary.Extraction.ContactSheet = path
	return b
}

// Build returns the constructed Summary.
func (b *Builder) Build() *Summary {
	return b.summary
}
