package mmif

import (
	"encoding/json"
	"math"
	"sort"
	"strconv"
	"strings"
)

// MetadataKey is a property key recognized as video metadata.
type MetadataKey string

const (
	// KeyFPS is the key written when a frame rate is cached on a document.
	KeyFPS MetadataKey = "fps"
	// KeyFrameRate is an alternative spelling used by some CLAMS apps.
	KeyFrameRate MetadataKey = "framerate"
)

// frameRateKeys holds the lower-cased keys that carry a frame rate.
var frameRateKeys = map[MetadataKey]struct{}{
	KeyFPS:       {},
	KeyFrameRate: {},
}

// Metadata is the typed view of recognized metadata found in a property map.
type Metadata struct {
	FrameRate    float64
	HasFrameRate bool
}

// LookupMetadata scans props for recognized metadata keys. Keys are matched
// case-insensitively in sorted key order and the first usable value wins.
// Values that are not finite numbers (or numeric strings) are skipped.
func LookupMetadata(props map[string]any) Metadata {
	keys := make([]string, 0, len(props))
	for k := range props {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var md Metadata
	for _, k := range keys {
		if _, ok := frameRateKeys[MetadataKey(strings.ToLower(k))]; !ok {
			continue
		}
		if v, ok := toFloat(props[k]); ok {
			md.FrameRate = v
			md.HasFrameRate = true
			return md
		}
	}
	return md
}

func toFloat(v any) (float64, bool) {
	var f float64
	switch n := v.(type) {
	case float64:
		f = n
	case float32:
		f = float64(n)
	case int:
		f = float64(n)
	case int64:
		f = float64(n)
	case json.Number:
		parsed, err := n.Float64()
		if err != nil {
			return 0, false
		}
		f = parsed
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0, false
		}
		f = parsed
	default:
		return 0, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}
