// Package cache provides cache hierarchy modeling using Akita cache components.
package cache

import (
	"github.com/a64sim/a64sim/emu"
)

// MemoryBacking wraps emu.Memory as a BackingStore. It is an observer, not
// part of the correctness model: an out-of-bounds probe is treated as zero
// rather than propagated, since a cache-observer attachment must never be
// able to change what the functional core itself would have done.
type MemoryBacking struct {
	memory *emu.Memory
}

// NewMemoryBacking creates a new MemoryBacking adapter.
func NewMemoryBacking(memory *emu.Memory) *MemoryBacking {
	return &MemoryBacking{memory: memory}
}

// Read fetches data from the backing memory.
func (m *MemoryBacking) Read(addr uint64, size int) []byte {
	data := make([]byte, size)
	for i := 0; i < size; i++ {
		b, err := m.memory.Read8(addr + uint64(i))
		if err != nil {
			continue
		}
		data[i] = b
	}
	return data
}

// Write stores data to the backing memory.
func (m *MemoryBacking) Write(addr uint64, data []byte) {
	for i, b := range data {
		_ = m.memory.Write8(addr+uint64(i), b)
	}
}
