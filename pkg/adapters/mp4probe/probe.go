// Package mp4probe reads video track metadata from MP4 containers without decoding.
package mp4probe

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/Eyevinn/mp4ff/mp4"
)

var (
	// ErrNoVideoTrack is returned when the container has no video track.
	ErrNoVideoTrack = errors.New("mp4probe: no video track found")
	// ErrNoSamples is returned when the video track has no timed samples.
	ErrNoSamples = errors.New("mp4probe: video track has no samples")
)

// Codec is the video codec of a track, taken from its sample entry.
type Codec string

const (
	CodecH264    Codec = "h264"
	CodecHEVC    Codec = "hevc"
	CodecAV1     Codec = "av1"
	CodecVP9     Codec = "vp9"
	CodecUnknown Codec = "unknown"
)

// Info describes the video track of an MP4 file.
type Info struct {
	Codec      Codec
	Width      int
	Height     int
	Timescale  uint32
	FrameCount int
	// Duration is in timescale units.
	Duration   uint64
	Fragmented bool
}

// FrameRate returns the average frame rate of the track.
func (i Info) FrameRate() float64 {
	if i.Duration == 0 || i.Timescale == 0 {
		return 0
	}
	return float64(i.FrameCount) * float64(i.Timescale) / float64(i.Duration)
}

// Prober implements ports.FrameRateProber for MP4 files.
type Prober struct{}

// New creates a new Prober.
func New() *Prober {
	return &Prober{}
}

// ProbeFrameRate returns the average frame rate of the first video track.
func (p *Prober) ProbeFrameRate(path string) (float64, error) {
	info, err := ProbeFile(path)
	if err != nil {
		return 0, err
	}
	return info.FrameRate(), nil
}

// ProbeFile reads video track information from an MP4 file.
func ProbeFile(path string) (Info, error) {
	f, err := os.Open(path)
	if err != nil {
		return Info{}, fmt.Errorf("open file: %w", err)
	}
	defer f.Close()

	return ProbeReader(f)
}

// ProbeBytes reads video track information from MP4 data.
func ProbeBytes(data []byte) (Info, error) {
	return ProbeReader(bytes.NewReader(data))
}

// ProbeReader reads video track information from an io.ReadSeeker.
func ProbeReader(reader io.ReadSeeker) (Info, error) {
	mp4File, err := mp4.DecodeFile(reader)
	if err != nil {
		return Info{}, fmt.Errorf("decode mp4: %w", err)
	}
	return probe(mp4File)
}

func probe(mp4File *mp4.File) (Info, error) {
	moov := mp4File.Moov
	if mp4File.Init != nil && mp4File.Init.Moov != nil {
		moov = mp4File.Init.Moov
	}
	if moov == nil {
		return Info{}, ErrNoVideoTrack
	}

	trak := videoTrack(moov)
	if trak == nil {
		return Info{}, ErrNoVideoTrack
	}

	info := Info{
		Codec:      codecOf(trak),
		Width:      int(trak.Tkhd.Width >> 16),
		Height:     int(trak.Tkhd.Height >> 16),
		Timescale:  1000,
		Fragmented: mp4File.IsFragmented(),
	}
	if trak.Mdia.Mdhd != nil && trak.Mdia.Mdhd.Timescale != 0 {
		info.Timescale = trak.Mdia.Mdhd.Timescale
	}

	if info.Fragmented && len(mp4File.Segments) > 0 {
		count, dur, err := fragmentTiming(mp4File, moov, trak.Tkhd.TrackID)
		if err != nil {
			return Info{}, err
		}
		info.FrameCount, info.Duration = count, dur
	} else if stbl := trak.Mdia.Minf.Stbl; stbl != nil && stbl.Stts != nil {
		info.FrameCount, info.Duration = sttsTiming(stbl.Stts)
	}

	if info.FrameCount == 0 || info.Duration == 0 {
		return Info{}, ErrNoSamples
	}
	return info, nil
}

func videoTrack(moov *mp4.MoovBox) *mp4.TrakBox {
	for _, trak := range moov.Traks {
		if trak.Mdia == nil || trak.Mdia.Hdlr == nil || trak.Tkhd == nil {
			continue
		}
		if trak.Mdia.Hdlr.HandlerType == "vide" && trak.Mdia.Minf != nil {
			return trak
		}
	}
	return nil
}

func codecOf(trak *mp4.TrakBox) Codec {
	stbl := trak.Mdia.Minf.Stbl
	if stbl == nil || stbl.Stsd == nil {
		return CodecUnknown
	}

	for _, child := range stbl.Stsd.Children {
		switch child.Type() {
		case "avc1", "avc3":
			return CodecH264
		case "hvc1", "hev1":
			return CodecHEVC
		case "av01":
			return CodecAV1
		case "vp09":
			return CodecVP9
		}
	}
	return CodecUnknown
}

// sttsTiming sums sample counts and durations of a progressive track.
func sttsTiming(stts *mp4.SttsBox) (int, uint64) {
	var count int
	var dur uint64
	for i, n := range stts.SampleCount {
		count += int(n)
		dur += uint64(n) * uint64(stts.SampleTimeDelta[i])
	}
	return count, dur
}

// fragmentTiming sums sample counts and durations over all fragments of a track.
func fragmentTiming(mp4File *mp4.File, moov *mp4.MoovBox, trackID uint32) (int, uint64, error) {
	var trex *mp4.TrexBox
	if moov.Mvex != nil {
		for _, t := range moov.Mvex.Trexs {
			if t.TrackID == trackID {
				trex = t
				break
			}
		}
	}

	var count int
	var dur uint64
	for _, seg := range mp4File.Segments {
		for _, frag := range seg.Fragments {
			if frag.Moof == nil || !hasTrack(frag.Moof, trackID) {
				continue
			}
			samples, err := frag.GetFullSamples(trex)
			if err != nil {
				return 0, 0, fmt.Errorf("get samples: %w", err)
			}
			for _, s := range samples {
				count++
				dur += uint64(s.Dur)
			}
		}
	}
	return count, dur, nil
}

func hasTrack(moof *mp4.MoofBox, trackID uint32) bool {
	for _, traf := range moof.Trafs {
		if traf.Tfhd != nil && traf.Tfhd.TrackID == trackID {
			return true
		}
	}
	return false
}
