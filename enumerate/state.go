// SPDX-License-Identifier: MIT

package enumerate

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/MrOnlineCoder/qmf/device"
	"github.com/MrOnlineCoder/qmf/transform"
)

// Histogram counts monotonic functions per truth-table weight (clamped to 255).
type Histogram [device.HistogramBuckets]uint64

// Total returns the sum over all buckets.
func (h *Histogram) Total() uint64 {
	var sum uint64
	for _, c := range h {
		sum += c
	}

	return sum
}

// WriteCSV writes the header INDEX,COUNT and one row per bucket, numbered 1..256.
func (h *Histogram) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"INDEX", "COUNT"}); err != nil {
		return fmt.Errorf("WriteCSV: %w", err)
	}
	for i, c := range h {
		if err := cw.Write([]string{strconv.Itoa(i + 1), strconv.FormatUint(c, 10)}); err != nil {
			return fmt.Errorf("WriteCSV: row %d: %w", i+1, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("WriteCSV: %w", err)
	}

	return nil
}

// SaveCSV writes the histogram to path, truncating any existing file.
func (h *Histogram) SaveCSV(path string) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("SaveCSV: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("SaveCSV: %w", cerr)
		}
	}()

	return h.WriteCSV(f)
}

// State is the outcome of one enumeration run. Between chunks it is the host
// copy of the device accumulators.
type State struct {
	N        int
	Selector transform.Selector

	Total     uint64 // M, or 2^64 − 2 when clamped
	Processed uint64
	ChunkSize uint64
	Chunks    uint64

	Monotonic uint64
	Dual      uint64 // self-dual monotonic functions
	Histogram Histogram

	// Partial is set when the index space did not fit 64 bits; Overflow then
	// wraps bitvec.ErrRangeOverflow.
	Partial  bool
	Overflow error

	Elapsed time.Duration
}

// upload copies the running totals into the device image.
func (s *State) upload(dst *device.Buffers) {
	dst.Monotonic = s.Monotonic
	dst.Dual = s.Dual
	dst.Histogram = s.Histogram
}

// download takes the device image back as the running totals.
func (s *State) download(src *device.Buffers) {
	s.Monotonic = src.Monotonic
	s.Dual = src.Dual
	s.Histogram = src.Histogram
}
