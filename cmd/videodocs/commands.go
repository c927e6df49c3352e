package main

import (
	"errors"
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/ideamans/go-l10n"
	"github.com/urfave/cli/v2"

	"github.com/clamsproject/mmif-utils-videodocuments/pkg/adapters/framesink"
	"github.com/clamsproject/mmif-utils-videodocuments/pkg/adapters/ggrenderer"
	"github.com/clamsproject/mmif-utils-videodocuments/pkg/contactsheet"
	"github.com/clamsproject/mmif-utils-videodocuments/pkg/mmif"
	"github.com/clamsproject/mmif-utils-videodocuments/pkg/orchestrator"
	"github.com/clamsproject/mmif-utils-videodocuments/pkg/summarizer"
	"github.com/clamsproject/mmif-utils-videodocuments/pkg/videodoc"
)

var (
	errOneConversion   = errors.New("exactly one of --frames, --seconds or --milliseconds is required")
	errNeedSampleRatio = errors.New("--sample-ratio is required")
)

func sourceFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:     "mmif",
			Aliases:  []string{"m"},
			Usage:    l10n.T("MMIF file holding the video document"),
			Category: l10n.T("Input"),
		},
		&cli.StringFlag{
			Name:     "document",
			Aliases:  []string{"d"},
			Usage:    l10n.T("Id of the video document in the MMIF file"),
			Category: l10n.T("Input"),
		},
		&cli.StringFlag{
			Name:     "video",
			Aliases:  []string{"i"},
			Usage:    l10n.T("Video file to use instead of an MMIF document"),
			Category: l10n.T("Input"),
		},
	}
}

func sampleRatioFlag() cli.Flag {
	return &cli.IntFlag{
		Name:     "sample-ratio",
		Aliases:  []string{"r"},
		Usage:    l10n.T("Keep one frame out of every N"),
		Category: l10n.T("Sampling"),
	}
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func framerateCommand() *cli.Command {
	return &cli.Command{
		Name:  "framerate",
		Usage: l10n.T("Print the frame rate of a video document"),
		Flags: append(sourceFlags(),
			&cli.BoolFlag{
				Name:  "decode-only",
				Usage: l10n.T("Ignore frame rates recorded in annotations"),
			},
			&cli.StringFlag{
				Name:  "write-mmif",
				Usage: l10n.T("Store the decoded frame rate on the document and save the MMIF here"),
			},
		),
		Action: func(c *cli.Context) error {
			s, err := newSession(c)
			if err != nil {
				return err
			}
			defer s.sync()

			m, docID, err := orchestrator.LoadSource(s.fs, c.String("mmif"), c.String("document"), c.String("video"))
			if err != nil {
				return err
			}

			var fps float64
			if out := c.String("write-mmif"); out != "" {
				doc, err := videodoc.VideoDocument(m, docID)
				if err != nil {
					return err
				}
				opener, err := s.opener()
				if err != nil {
					return err
				}
				capture, err := videodoc.Capture(doc, opener)
				if err != nil {
					return err
				}
				fps = capture.FrameRate()
				if err := capture.Close(); err != nil {
					return fmt.Errorf("close %s: %w", doc.Location(), err)
				}
				data, err := m.Marshal()
				if err != nil {
					return err
				}
				if err := s.fs.WriteFile(out, data); err != nil {
					return fmt.Errorf("write mmif: %w", err)
				}
				s.log.Info("Frame rate of %s written to %s", docID, out)
			} else if c.Bool("decode-only") {
				doc, err := videodoc.VideoDocument(m, docID)
				if err != nil {
					return err
				}
				if fps, err = videodoc.FrameRate(doc, s.prober()); err != nil {
					return err
				}
			} else {
				if fps, err = videodoc.ResolveFrameRate(m, docID, s.prober()); err != nil {
					return err
				}
			}

			fmt.Fprintln(c.App.Writer, formatFloat(fps))
			return nil
		},
	}
}

func convertCommand() *cli.Command {
	return &cli.Command{
		Name:  "convert",
		Usage: l10n.T("Convert between frame counts and time for a video document"),
		Flags: append(sourceFlags(),
			sampleRatioFlag(),
			&cli.IntFlag{
				Name:     "frames",
				Usage:    l10n.T("Frame count to convert to seconds and milliseconds"),
				Category: l10n.T("Conversion"),
			},
			&cli.Float64Flag{
				Name:     "seconds",
				Usage:    l10n.T("Seconds to convert to a frame count"),
				Category: l10n.T("Conversion"),
			},
			&cli.Float64Flag{
				Name:     "milliseconds",
				Usage:    l10n.T("Milliseconds to convert to a frame count"),
				Category: l10n.T("Conversion"),
			},
			&cli.BoolFlag{
				Name:  "decode-only",
				Usage: l10n.T("Ignore frame rates recorded in annotations"),
			},
		),
		Action: func(c *cli.Context) error {
			set := 0
			for _, name := range []string{"frames", "seconds", "milliseconds"} {
				if c.IsSet(name) {
					set++
				}
			}
			if set != 1 {
				return errOneConversion
			}
			if !c.IsSet("sample-ratio") {
				return errNeedSampleRatio
			}
			ratio := c.Int("sample-ratio")

			s, err := newSession(c)
			if err != nil {
				return err
			}
			defer s.sync()

			m, docID, err := orchestrator.LoadSource(s.fs, c.String("mmif"), c.String("document"), c.String("video"))
			if err != nil {
				return err
			}

			if c.Bool("decode-only") {
				return convertDecoded(c, s, m.GetDocumentByID(docID), docID, ratio)
			}

			fps, err := videodoc.ResolveFrameRate(m, docID, s.prober())
			if err != nil {
				return err
			}
			switch {
			case c.IsSet("frames"):
				sec, err := videodoc.FramesToSecondsAt(fps, c.Int("frames"), ratio)
				if err != nil {
					return err
				}
				ms := sec * 1000
				fmt.Fprintf(c.App.Writer, "%s s\n%s ms\n", formatFloat(sec), formatFloat(ms))
			case c.IsSet("seconds"):
				n, err := videodoc.SecondsToFramesAt(fps, c.Float64("seconds"), ratio)
				if err != nil {
					return err
				}
				fmt.Fprintln(c.App.Writer, n)
			default:
				n, err := videodoc.MillisecondsToFramesAt(fps, c.Float64("milliseconds"), ratio)
				if err != nil {
					return err
				}
				fmt.Fprintln(c.App.Writer, n)
			}
			return nil
		},
	}
}

// convertDecoded converts with a Converter, which probes the video file
// itself for every conversion.
func convertDecoded(c *cli.Context, s *session, doc *mmif.Document, docID string, ratio int) error {
	if doc == nil || !doc.IsVideo() {
		return fmt.Errorf("%w: %q", videodoc.ErrInvalidReference, docID)
	}
	conv := videodoc.NewConverter(s.prober())
	switch {
	case c.IsSet("frames"):
		sec, err := conv.FramesToSeconds(doc, c.Int("frames"), ratio)
		if err != nil {
			return err
		}
		ms, err := conv.FramesToMilliseconds(doc, c.Int("frames"), ratio)
		if err != nil {
			return err
		}
		fmt.Fprintf(c.App.Writer, "%s s\n%s ms\n", formatFloat(sec), formatFloat(ms))
	case c.IsSet("seconds"):
		n, err := conv.SecondsToFrames(doc, c.Float64("seconds"), ratio)
		if err != nil {
			return err
		}
		fmt.Fprintln(c.App.Writer, n)
	default:
		n, err := conv.MillisecondsToFrames(doc, c.Float64("milliseconds"), ratio)
		if err != nil {
			return err
		}
		fmt.Fprintln(c.App.Writer, n)
	}
	return nil
}

func extractCommand() *cli.Command {
	return &cli.Command{
		Name:  "extract",
		Usage: l10n.T("Save every Nth frame of a video document as images"),
		Flags: append(sourceFlags(),
			sampleRatioFlag(),
			&cli.IntFlag{
				Name:     "frame-cutoff",
				Aliases:  []string{"n"},
				Usage:    l10n.T("Stop after retaining this many frames"),
				Category: l10n.T("Sampling"),
			},
			&cli.StringFlag{
				Name:     "output",
				Aliases:  []string{"o"},
				Usage:    l10n.T("Directory for the extracted frames (required)"),
				Required: true,
				Category: l10n.T("Output"),
			},
			&cli.StringFlag{
				Name:     "format",
				Aliases:  []string{"f"},
				Usage:    l10n.T("Image format (png, jpeg)"),
				Category: l10n.T("Output"),
			},
			&cli.IntFlag{
				Name:     "quality",
				Usage:    l10n.T("JPEG quality (1-100)"),
				Category: l10n.T("Output"),
			},
			&cli.IntFlag{
				Name:     "width",
				Aliases:  []string{"w"},
				Usage:    l10n.T("Scale frames to this width (0 keeps the source size)"),
				Category: l10n.T("Output"),
			},
			&cli.StringFlag{
				Name:     "contact-sheet",
				Usage:    l10n.T("Also render a contact sheet to this file"),
				Category: l10n.T("Reports"),
			},
			&cli.StringFlag{
				Name:     "summary",
				Usage:    l10n.T("Write an extraction summary (Markdown, or YAML for .yaml)"),
				Category: l10n.T("Reports"),
			},
		),
		Action: func(c *cli.Context) error {
			s, err := newSession(c)
			if err != nil {
				return err
			}
			defer s.sync()

			cfg := s.cfg
			if c.IsSet("sample-ratio") {
				cfg.SampleRatio = c.Int("sample-ratio")
			}
			if c.IsSet("frame-cutoff") {
				cfg.FrameCutoff = c.Int("frame-cutoff")
			}
			if c.IsSet("format") {
				cfg.Output.Format = c.String("format")
			}
			if c.IsSet("quality") {
				cfg.Output.Quality = c.Int("quality")
			}
			if c.IsSet("width") {
				cfg.Output.Width = c.Int("width")
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			opener, err := s.opener()
			if err != nil {
				return err
			}

			outDir := c.String("output")
			if err := s.fs.MkdirAll(outDir); err != nil {
				return fmt.Errorf("create output directory: %w", err)
			}

			renderer := ggrenderer.New()
			sinkOpts := cfg.SinkOptions()
			sink := framesink.New(outDir, sinkOpts, s.fs, renderer)
			sheet := contactsheet.New(renderer, s.log, cfg.SheetOptions())
			formatter := summarizer.FormatterFor(filepath.Ext(c.String("summary")),
				summarizer.WithTranslator(l10n.T), summarizer.WithVersion(version))
			writer := summarizer.NewWriter(formatter, s.fs)

			orch := orchestrator.New(videodoc.NewSampler(opener, s.log), s.prober(), sink, sheet, writer, s.fs, s.log)

			source := c.String("video")
			if source == "" {
				source = c.String("mmif")
			}
			s.log.Info("Extracting every %d frames from %s", cfg.SampleRatio, source)

			_, err = orch.Run(c.Context, orchestrator.Config{
				MMIFPath:     c.String("mmif"),
				DocumentID:   c.String("document"),
				VideoPath:    c.String("video"),
				Sampling:     cfg.SamplerOptions(),
				OutputDir:    outDir,
				Format:       sinkOpts.Format,
				ContactSheet: c.String("contact-sheet"),
				SummaryPath:  c.String("summary"),
			})
			if err != nil {
				if c.Context.Err() != nil {
					s.log.Warn("Interrupted, shutting down...")
				}
				return err
			}
			s.log.Info("Output saved to %s", outDir)
			return nil
		},
	}
}
