package note

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// ErrMalformedBlock reports a generated block that would not round-trip
// through Locate.
var ErrMalformedBlock = errors.New("malformed block")

// Block is a fully rendered region. The zero value is the empty block, which
// means no region should exist for the date.
type Block struct {
	lines []string
}

// NewBlock validates lines as a replacement region for s. The first line must
// be the marker and no later line may close the region, otherwise a re-run
// would locate a shorter region than the one written.
func (s Section) NewBlock(lines ...string) (Block, error) {
	if len(lines) == 0 {
		return Block{}, nil
	}
	if strings.TrimSpace(lines[0]) != s.Marker {
		return Block{}, fmt.Errorf("%w: first line %q is not the marker %q", ErrMalformedBlock, lines[0], s.Marker)
	}
	for i, line := range lines[1:] {
		if s.terminates(strings.TrimSpace(line)) {
			return Block{}, fmt.Errorf("%w: line %d %q closes the region", ErrMalformedBlock, i+1, line)
		}
	}
	return Block{lines: slices.Clone(lines)}, nil
}

// IsEmpty reports whether the block carries no region.
func (b Block) IsEmpty() bool {
	return len(b.lines) == 0
}

// Lines returns a copy of the block lines.
func (b Block) Lines() []string {
	return slices.Clone(b.lines)
}

// Len returns the number of lines in the block.
func (b Block) Len() int {
	return len(b.lines)
}
