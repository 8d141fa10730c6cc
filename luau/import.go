package luau

import (
	"fmt"
	"iter"
)

// ImportChain is a packed dotted-name reference: the top two bits hold
// the number of names, followed by up to three 10-bit constant indices
// starting at the lowest bits.
type ImportChain uint32

// MaxImportDepth is the largest number of names an import chain holds.
const MaxImportDepth = 3

const importIndexMask = 0x3ff

// Len returns the number of indices in the chain.
func (c ImportChain) Len() int {
	return int(c >> 30)
}

// Index returns the i-th constant index of the chain. The caller keeps i < Len().
func (c ImportChain) Index(i int) int {
	return int(uint32(c)>>(10*uint(i))) & importIndexMask
}

// All yields the constant indices of the chain in order.
func (c ImportChain) All() iter.Seq[int] {
	return func(yield func(int) bool) {
		for i := 0; i < c.Len(); i++ {
			if !yield(c.Index(i)) {
				return
			}
		}
	}
}

// Indices returns the constant indices of the chain in order.
func (c ImportChain) Indices() []int {
	out := make([]int, 0, c.Len())
	for idx := range c.All() {
		out = append(out, idx)
	}
	return out
}

// PackImport builds an import chain from constant indices.
func PackImport(indices ...int) (ImportChain, error) {
	if len(indices) > MaxImportDepth {
		return 0, fmt.Errorf("import chain of %d names exceeds %d", len(indices), MaxImportDepth)
	}
	c := uint32(len(indices)) << 30
	for i, idx := range indices {
		if idx < 0 || idx > importIndexMask {
			return 0, fmt.Errorf("import index %d out of range", idx)
		}
		c |= uint32(idx) << (10 * uint(i))
	}
	return ImportChain(c), nil
}
