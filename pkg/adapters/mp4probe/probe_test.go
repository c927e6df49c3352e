package mp4probe

import (
	"bytes"
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/Eyevinn/mp4ff/mp4"
)

// buildFragmentedMP4 creates a fragmented MP4 with one video track holding
// frames samples of dur timescale units each.
func buildFragmentedMP4(t *testing.T, timescale uint32, frames int, dur uint32) []byte {
	t.Helper()

	init := mp4.CreateEmptyInit()
	init.AddEmptyTrack(timescale, "video", "en")
	trak := init.Moov.Trak
	trak.Tkhd.Width = mp4.Fixed32(320 << 16)
	trak.Tkhd.Height = mp4.Fixed32(240 << 16)

	frag, err := mp4.CreateFragment(1, trak.Tkhd.TrackID)
	if err != nil {
		t.Fatalf("create fragment: %v", err)
	}
	for i := 0; i < frames; i++ {
		data := []byte{0, 0, 0, 1, byte(i)}
		flags := mp4.NonSyncSampleFlags
		if i == 0 {
			flags = mp4.SyncSampleFlags
		}
		frag.AddFullSample(mp4.FullSample{
			Sample: mp4.Sample{
				Flags: flags,
				Size:  uint32(len(data)),
				Dur:   dur,
			},
			DecodeTime: uint64(i) * uint64(dur),
			Data:       data,
		})
	}

	var buf bytes.Buffer
	ftyp := mp4.NewFtyp("isom", 0x200, []string{"isom", "iso2", "mp41"})
	if err := ftyp.Encode(&buf); err != nil {
		t.Fatalf("encode ftyp: %v", err)
	}
	if err := init.Moov.Encode(&buf); err != nil {
		t.Fatalf("encode moov: %v", err)
	}
	if err := frag.Encode(&buf); err != nil {
		t.Fatalf("encode fragment: %v", err)
	}
	return buf.Bytes()
}

func TestProbeBytesFragmented(t *testing.T) {
	data := buildFragmentedMP4(t, 30000, 30, 1001)

	info, err := ProbeBytes(data)
	if err != nil {
		t.Fatalf("ProbeBytes failed: %v", err)
	}

	if !info.Fragmented {
		t.Error("expected fragmented file")
	}
	if info.FrameCount != 30 {
		t.Errorf("expected 30 frames, got %d", info.FrameCount)
	}
	if info.Timescale != 30000 {
		t.Errorf("expected timescale 30000, got %d", info.Timescale)
	}
	if info.Width != 320 || info.Height != 240 {
		t.Errorf("expected 320x240, got %dx%d", info.Width, info.Height)
	}
	if got := info.FrameRate(); math.Abs(got-29.97) > 0.001 {
		t.Errorf("expected ~29.97 fps, got %v", got)
	}
}

func TestProbeFrameRateFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "clip.mp4")
	if err := os.WriteFile(path, buildFragmentedMP4(t, 1000, 10, 40), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}

	fps, err := New().ProbeFrameRate(path)
	if err != nil {
		t.Fatalf("ProbeFrameRate failed: %v", err)
	}
	if fps != 25 {
		t.Errorf("expected 25 fps, got %v", fps)
	}
}

func TestProbeFileMissing(t *testing.T) {
	_, err := ProbeFile(filepath.Join(t.TempDir(), "missing.mp4"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected not-exist error, got %v", err)
	}
}

func TestProbeBytesGarbage(t *testing.T) {
	if _, err := ProbeBytes([]byte("definitely not an mp4 file")); err == nil {
		t.Error("expected error for non-MP4 data")
	}
}

func TestSttsTiming(t *testing.T) {
	stts := &mp4.SttsBox{
		SampleCount:     []uint32{10, 5},
		SampleTimeDelta: []uint32{512, 1024},
	}

	count, dur := sttsTiming(stts)
	if count != 15 {
		t.Errorf("expected 15 samples, got %d", count)
	}
	if dur != 10*512+5*1024 {
		t.Errorf("expected duration %d, got %d", 10*512+5*1024, dur)
	}

	info := Info{Timescale: 12800, FrameCount: count, Duration: dur}
	if got := info.FrameRate(); got != 18.75 {
		t.Errorf("expected 18.75 fps, got %v", got)
	}
}

func TestInfoFrameRateZeroDuration(t *testing.T) {
	if got := (Info{Timescale: 1000, FrameCount: 3}).FrameRate(); got != 0 {
		t.Errorf("expected 0 for zero duration, got %v", got)
	}
}
