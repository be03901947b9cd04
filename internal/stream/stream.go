// Package stream provides time-series sources with [bt:tt] slicing: a
// uniform view over sampled data addressed by a time range in seconds
// rather than sample indices. Sources register under string ids and are
// served by the HTTP layer for waveform browsing.
package stream

import (
	"fmt"
)

// Metadata describes a stream source.
type Metadata struct {
	SourceID      string  `json:"source_id"`
	SampleRate    float64 `json:"sample_rate"`
	LengthSamples int     `json:"length_samples"`
	LengthSeconds float64 `json:"length_seconds"`
	FilePath      string  `json:"file_path,omitempty"`
}

// Source is a registered time-series stream. Slice takes a bottom-time and
// top-time in seconds; a negative tt means "to the end".
type Source interface {
	ID() string
	SampleRate() float64
	Slice(bt, tt float64) ([]float64, error)
	Metadata() (Metadata, error)
}

// sliceRange converts a [bt:tt] time window into clamped sample indices.
func sliceRange(bt, tt, rate float64, length int) (int, int, error) {
	if bt < 0 {
		return 0, 0, fmt.Errorf("bottom time must not be negative, got %v", bt)
	}
	lo := int(bt * rate)
	hi := length
	if tt >= 0 {
		if tt < bt {
			return 0, 0, fmt.Errorf("top time %v precedes bottom time %v", tt, bt)
		}
		hi = int(tt * rate)
	}
	if lo > length {
		lo = length
	}
	if hi > length {
		hi = length
	}
	return lo, hi, nil
}
