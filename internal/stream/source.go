package stream

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"sync"
)

// MemorySource serves a sample slice held in memory.
type MemorySource struct {
	id   string
	rate float64
	data []float64
}

// NewMemorySource wraps a sample slice as a stream source.
func NewMemorySource(id string, sampleRate float64, data []float64) *MemorySource {
	return &MemorySource{id: id, rate: sampleRate, data: data}
}

// NewSineSource generates a sine test stream of the given duration.
func NewSineSource(id string, sampleRate, seconds, frequency float64) *MemorySource {
	n := int(sampleRate * seconds)
	data := make([]float64, n)
	for i := range data {
		t := float64(i) / sampleRate
		data[i] = math.Sin(2 * math.Pi * frequency * t)
	}
	return NewMemorySource(id, sampleRate, data)
}

func (s *MemorySource) ID() string          { return s.id }
func (s *MemorySource) SampleRate() float64 { return s.rate }

func (s *MemorySource) Slice(bt, tt float64) ([]float64, error) {
	lo, hi, err := sliceRange(bt, tt, s.rate, len(s.data))
	if err != nil {
		return nil, err
	}
	return s.data[lo:hi], nil
}

func (s *MemorySource) Metadata() (Metadata, error) {
	return Metadata{
		SourceID:      s.id,
		SampleRate:    s.rate,
		LengthSamples: len(s.data),
		LengthSeconds: float64(len(s.data)) / s.rate,
	}, nil
}

// FileSource reads its samples from a JSON array of numbers on first
// access and caches them for subsequent slices.
type FileSource struct {
	id   string
	rate float64
	path string

	once sync.Once
	data []float64
	err  error
}

// NewFileSource creates a lazily-loaded file-backed stream source.
func NewFileSource(id, path string, sampleRate float64) *FileSource {
	return &FileSource{id: id, path: path, rate: sampleRate}
}

func (s *FileSource) ID() string          { return s.id }
func (s *FileSource) SampleRate() float64 { return s.rate }

func (s *FileSource) load() ([]float64, error) {
	s.once.Do(func() {
		raw, err := os.ReadFile(s.path)
		if err != nil {
			s.err = fmt.Errorf("reading stream file %s: %w", s.path, err)
			return
		}
		if err := json.Unmarshal(raw, &s.data); err != nil {
			s.err = fmt.Errorf("decoding stream file %s: %w", s.path, err)
		}
	})
	return s.data, s.err
}

func (s *FileSource) Slice(bt, tt float64) ([]float64, error) {
	data, err := s.load()
	if err != nil {
		return nil, err
	}
	lo, hi, err := sliceRange(bt, tt, s.rate, len(data))
	if err != nil {
		return nil, err
	}
	return data[lo:hi], nil
}

func (s *FileSource) Metadata() (Metadata, error) {
	data, err := s.load()
	if err != nil {
		return Metadata{}, err
	}
	return Metadata{
		SourceID:      s.id,
		SampleRate:    s.rate,
		LengthSamples: len(data),
		LengthSeconds: float64(len(data)) / s.rate,
		FilePath:      s.path,
	}, nil
}
