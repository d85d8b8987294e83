// SPDX-License-Identifier: MIT

package enumerate

import (
	"fmt"
	"sort"
	"strings"
)

// Reference chunk sizes.
const (
	DefaultSmallVarsBelow = 4

	DefaultSmallChunk    uint64 = 8
	DefaultFiveVarsChunk uint64 = 16777216
	DefaultSixVarsChunk  uint64 = 67305472
)

// ChunkPolicy picks the chunk size for a run from n and the device's
// preferred work-group size.
type ChunkPolicy struct {
	// SmallVarsBelow: every n below it uses SmallChunk.
	SmallVarsBelow int
	SmallChunk     uint64

	// Overrides pins the chunk size for specific n.
	Overrides map[int]uint64
}

// DefaultPolicy returns the reference policy: n < 4 → 8, n = 5 → 16777216,
// n = 6 → 67305472, otherwise the device's preferred width.
func DefaultPolicy() ChunkPolicy {
	return ChunkPolicy{
		SmallVarsBelow: DefaultSmallVarsBelow,
		SmallChunk:     DefaultSmallChunk,
		Overrides: map[int]uint64{
			5: DefaultFiveVarsChunk,
			6: DefaultSixVarsChunk,
		},
	}
}

// Validate rejects zero-sized chunks.
func (p ChunkPolicy) Validate() error {
	if p.SmallVarsBelow > 0 && p.SmallChunk == 0 {
		return fmt.Errorf("ChunkPolicy: small_chunk=0: %w", ErrBadPolicy)
	}
	for n, size := range p.Overrides {
		if size == 0 {
			return fmt.Errorf("ChunkPolicy: override n=%d is 0: %w", n, ErrBadPolicy)
		}
	}

	return nil
}

// ChunkSize returns the chunk size for n. preferred is the device width; a
// zero result is never returned.
func (p ChunkPolicy) ChunkSize(n int, preferred uint64) uint64 {
	var size uint64
	switch override, ok := p.Overrides[n]; {
	case n < p.SmallVarsBelow:
		size = p.SmallChunk
	case ok:
		size = override
	default:
		size = preferred
	}
	if size == 0 {
		size = 1
	}

	return size
}

// String renders the policy for logs, overrides in ascending n.
func (p ChunkPolicy) String() string {
	keys := make([]int, 0, len(p.Overrides))
	for n := range p.Overrides {
		keys = append(keys, n)
	}
	sort.Ints(keys)

	var sb strings.Builder
	fmt.Fprintf(&sb, "n<%d:%d", p.SmallVarsBelow, p.SmallChunk)
	for _, n := range keys {
		fmt.Fprintf(&sb, " n=%d:%d", n, p.Overrides[n])
	}
	sb.WriteString(" else:preferred")

	return sb.String()
}
