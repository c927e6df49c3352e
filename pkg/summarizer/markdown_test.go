package summarizer

import (
	"strings"
	"testing"
	"time"
)

func sampleSummary() *Summary {
	return &Summary{
		GeneratedAt: time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC),
		Source: SourceInfo{
			MMIF:       "input.mmif",
			DocumentID: "v1",
			Location:   "/data/news.mp4",
		},
		Video: VideoInfo{
			FrameRate:       10,
			FrameRateSource: RateFromVideo,
			Codec:           "h264",
			Width:           640,
			Height:          360,
			FrameCount:      300,
		},
		Extraction: ExtractionInfo{
			SampleRatio: 15,
			FrameCutoff: -1,
			Retained:    3,
			Format:      "png",
			OutputDir:   "frames",
			Files: []string{
				"frames/frame-0000.png",
				"frames/frame-0015.png",
				"frames/frame-0030.png",
			},
			TotalBytes: 1024 * 1024,
		},
	}
}

func TestMarkdownFormatter_Format_Basic(t *testing.T) {
	result := NewMarkdownFormatter().Format(sampleSummary())

	checks := []string{
		"# Extraction Summary",
		"| Document | v1 |",
		"/data/news.mp4",
		"input.mmif",
		"10.000 fps (video)",
		"h264",
		"640x360",
		"| Frames in Video | 300 |",
		"| Sample Ratio | 15 |",
		"| Frame Cutoff | None |",
		"| Frames Retained | 3 |",
		"1.00 MB",
		"| 15 | 00:00:01.500 | frame-0015.png |",
		"| 30 | 00:00:03.000 | frame-0030.png |",
		"2024-01-15 10:30:00 UTC",
	}

	for _, check := range checks {
		if !strings.Contains(result, check) {
			t.Errorf("expected output to contain %q", check)
		}
	}
}

func TestMarkdownFormatter_Format_Cutoff(t *testing.T) {
	summary := sampleSummary()
	summary.Extraction.FrameCutoff = 20

	result := NewMarkdownFormatter().Format(summary)

	if !strings.Contains(result, "| Frame Cutoff | 20 |") {
		t.Error("expected cutoff value in output")
	}
}

func TestMarkdownFormatter_Format_Minimal(t *testing.T) {
	summary := &Summary{
		GeneratedAt: time.Now(),
		Source:      SourceInfo{DocumentID: "v2", Location: "/x.mp4"},
		Video:       VideoInfo{FrameRate: 25, FrameRateSource: RateFromAnnotation},
		Extraction:  ExtractionInfo{SampleRatio: 1, FrameCutoff: 0},
	}

	result := NewMarkdownFormatter().Format(summary)

	for _, absent := range []string{"## Frames", "Resolution", "Codec", "Contact Sheet", "MMIF File"} {
		if strings.Contains(result, absent) {
			t.Errorf("output should NOT contain %q", absent)
		}
	}
	if !strings.Contains(result, "| Frames Retained | 0 |") {
		t.Error("expected zero retained frames")
	}
}

func TestMarkdownFormatter_UnknownRateShowsDash(t *testing.T) {
	summary := sampleSummary()
	summary.Video.FrameRate = 0

	result := NewMarkdownFormatter().Format(summary)

	if !strings.Contains(result, "| 15 | - | frame-0015.png |") {
		t.Error("expected '-' for frame time when the rate is unknown")
	}
}

func TestMarkdownFormatter_WithTranslator(t *testing.T) {
	translator := func(key string) string {
		translations := map[string]string{
			"Extraction Summary": "抽出サマリー",
			"Document":           "ドキュメント",
			"video":              "動画",
		}
		if v, ok := translations[key]; ok {
			return v
		}
		return key
	}

	result := NewMarkdownFormatter(WithTranslator(translator)).Format(sampleSummary())

	for _, want := range []string{"抽出サマリー", "ドキュメント", "(動画)"} {
		if !strings.Contains(result, want) {
			t.Errorf("expected translated %q", want)
		}
	}
}

func TestMarkdownFormatter_WithVersion(t *testing.T) {
	result := NewMarkdownFormatter(WithVersion("v1.2.0")).Format(sampleSummary())

	if !strings.Contains(result, "v1.2.0") {
		t.Error("expected output to contain version 'v1.2.0'")
	}
}

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		bytes int64
		want  string
	}{
		{0, "0 B"},
		{100, "100 B"},
		{1024, "1.00 KB"},
		{1536, "1.50 KB"},
		{1024 * 1024, "1.00 MB"},
		{1024 * 1024 * 1024, "1.00 GB"},
		{1536 * 1024 * 1024, "1.50 GB"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			got := formatBytes(tt.bytes)
			if got != tt.want {
				t.Errorf("formatBytes(%d) = %q, want %q", tt.bytes, got, tt.want)
			}
		})
	}
}
