package summarizer

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/clamsproject/mmif-utils-videodocuments/pkg/contactsheet"
	"github.com/clamsproject/mmif-utils-videodocuments/pkg/videodoc"
)

// MarkdownFormatter renders a Summary as a Markdown report.
type MarkdownFormatter struct {
	translate func(string) string
	version   string
}

// MarkdownOption configures a MarkdownFormatter.
type MarkdownOption func(*MarkdownFormatter)

// WithTranslator sets the function used to translate labels.
func WithTranslator(fn func(string) string) MarkdownOption {
	return func(f *MarkdownFormatter) {
		f.translate = fn
	}
}

// WithVersion adds the tool version to the report footer.
func WithVersion(version string) MarkdownOption {
	return func(f *MarkdownFormatter) {
		f.version = version
	}
}

// NewMarkdownFormatter creates a MarkdownFormatter. Labels are English
// unless a translator is given.
func NewMarkdownFormatter(opts ...MarkdownOption) *MarkdownFormatter {
	f := &MarkdownFormatter{
		translate: func(s string) string { return s },
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Format implements Formatter.
func (f *MarkdownFormatter) Format(s *Summary) string {
	t := f.translate
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n\n", t("Extraction Summary"))

	fmt.Fprintf(&b, "## %s\n\n", t("Source"))
	f.header(&b)
	f.row(&b, "Document", s.Source.DocumentID)
	f.row(&b, "Location", s.Source.Location)
	if s.Source.MMIF != "" {
		f.row(&b, "MMIF File", s.Source.MMIF)
	}
	b.WriteString("\n")

	fmt.Fprintf(&b, "## %s\n\n", t("Video"))
	f.header(&b)
	f.row(&b, "Frame Rate", fmt.Sprintf("%.3f fps (%s)", s.Video.FrameRate, t(s.Video.FrameRateSource)))
	if s.Video.Codec != "" {
		f.row(&b, "Codec", s.Video.Codec)
	}
	if s.Video.Width > 0 && s.Video.Height > 0 {
		f.row(&b, "Resolution", fmt.Sprintf("%dx%d", s.Video.Width, s.Video.Height))
	}
	if s.Video.FrameCount > 0 {
		f.row(&b, "Frames in Video", fmt.Sprintf("%d", s.Video.FrameCount))
	}
	b.WriteString("\n")

	ex := s.Extraction
	fmt.Fprintf(&b, "## %s\n\n", t("Extraction"))
	f.header(&b)
	f.row(&b, "Sample Ratio", fmt.Sprintf("%d", ex.SampleRatio))
	if ex.FrameCutoff < 0 {
		f.row(&b, "Frame Cutoff", t("None"))
	} else {
		f.row(&b, "Frame Cutoff", fmt.Sprintf("%d", ex.FrameCutoff))
	}
	f.row(&b, "Frames Retained", fmt.Sprintf("%d", ex.Retained))
	if ex.Format != "" {
		f.row(&b, "Format", ex.Format)
	}
	if ex.OutputDir != "" {
		f.row(&b, "Output Directory", ex.OutputDir)
	}
	if ex.TotalBytes > 0 {
		f.row(&b, "Output Size", formatBytes(ex.TotalBytes))
	}
	if ex.ContactSheet != "" {
		f.row(&b, "Contact Sheet", ex.ContactSheet)
	}
	b.WriteString("\n")

	if len(ex.Files) > 0 {
		fmt.Fprintf(&b, "## %s\n\n", t("Frames"))
		fmt.Fprintf(&b, "| # | %s | %s |\n", t("Time"), t("File"))
		b.WriteString("|---:|---|---|\n")
		for k, file := range ex.Files {
			index := k * ex.SampleRatio
			at := "-"
			if seconds, err := videodoc.FramesToSecondsAt(s.Video.FrameRate, index, 1); err == nil {
				at = contactsheet.Timecode(seconds)
			}
			fmt.Fprintf(&b, "| %d | %s | %s |\n", index, at, filepath.Base(file))
		}
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "---\n\n%s %s", t("Generated at"), s.GeneratedAt.Format("2006-01-02 15:04:05 MST"))
	if f.version != "" {
		fmt.Fprintf(&b, " (videodocs %s)", f.version)
	}
	b.WriteString("\n")

	return b.String()
}

func (f *MarkdownFormatter) header(b *strings.Builder) {
	fmt.Fprintf(b, "| %s | %s |\n", f.translate("Item"), f.translate("Value"))
	b.WriteString("|---|---|\n")
}

func (f *MarkdownFormatter) row(b *strings.Builder, label, value string) {
	fmt.Fprintf(b, "| %s | %s |\n", f.translate(label), value)
}

// formatBytes formats a byte count using binary units.
func formatBytes(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit && exp < 2; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.2f %cB", float64(n)/float64(div), "KMG"[exp])
}

var _ Formatter = (*MarkdownFormatter)(nil)
