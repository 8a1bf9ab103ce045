package store

import (
	"encoding/hex"
	"fmt"
)

// ExplainOptions configures the explain operation
type ExplainOptions struct {
	WithSamples int // Number of leading bytes of each segment to include
	MaxSegments int // Limit on reported segments (0 = all)
}

// ExplainResult describes the layout of a chunk store
type ExplainResult struct {
	Global struct {
		Chunks    int     `json:"chunks"`
		Bytes     int     `json:"bytes"`
		Low       uint64  `json:"low"`
		High      uint64  `json:"high"`
		Span      uint64  `json:"span"`
		Gaps      int     `json:"gaps"`
		GapBytes  uint64  `json:"gap_bytes"`
		FillRatio float64 `json:"fill_ratio"`
	} `json:"global"`

	Segments []Segment `json:"segments"`

	Diagnostics struct {
		Truncated bool     `json:"truncated,omitempty"`
		Samples   []Sample `json:"samples,omitempty"`
	} `json:"diagnostics"`

	Warnings []string `json:"warnings,omitempty"`
}

// Segment describes one chunk
type Segment struct {
	Address   uint64 `json:"address"`
	End       uint64 `json:"end"`
	Size      int    `json:"size"`
	GapBefore uint64 `json:"gap_before"`
}

// Sample holds the leading bytes of one chunk in hex
type Sample struct {
	Address uint64 `json:"address"`
	Data    string `json:"data"`
}

// Explain gathers layout statistics for the store
func (s *ChunkStore) Explain(opts ExplainOptions) *ExplainResult {
	res := &ExplainResult{}
	res.Global.Chunks = len(s.chunks)
	res.Global.Bytes = s.Size()

	lo, hi, ok := s.Bounds()
	if !ok {
		res.Warnings = append(res.Warnings, "store holds no data")
		return res
	}
	res.Global.Low = lo
	res.Global.High = hi
	res.Global.Span = hi - lo
	res.Global.FillRatio = float64(res.Global.Bytes) / float64(res.Global.Span)

	var prevEnd uint64
	for i := range s.chunks {
		c := &s.chunks[i]

		var gap uint64
		if i > 0 {
			gap = c.Address - prevEnd
			res.Global.Gaps++
			res.Global.GapBytes += gap
		}
		prevEnd = c.End()

		if opts.MaxSegments > 0 && len(res.Segments) >= opts.MaxSegments {
			res.Diagnostics.Truncated = true
			continue
		}
		res.Segments = append(res.Segments, Segment{
			Address:   c.Address,
			End:       c.End(),
			Size:      c.Len(),
			GapBefore: gap,
		})

		if opts.WithSamples > 0 {
			n := min(opts.WithSamples, c.Len())
			res.Diagnostics.Samples = append(res.Diagnostics.Samples, Sample{
				Address: c.Address,
				Data:    hex.EncodeToString(c.Data[:n]),
			})
		}
	}

	if hi-1 > 0xFFFFFFFF {
		res.Warnings = append(res.Warnings,
			fmt.Sprintf("data at 0x%X exceeds the 32-bit address range of S3 records", hi-1))
	}

	return res
}
