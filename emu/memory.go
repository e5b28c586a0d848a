package emu

import (
	"encoding/binary"
	"fmt"
)

// Memory is a flat, little-endian, byte-addressable view of the guest's
// address space, anchored at Base.
type Memory struct {
	Base  uint64
	Bytes []byte

	// Strict is not consulted by any access: every access is bounds-checked
	// regardless of its value, and an out-of-bounds access returns an error
	// instead of panicking.
	Strict bool
}

// NewMemory creates a Memory window over buf, anchored at base.
func NewMemory(buf []byte, base uint64) *Memory {
	return &Memory{Base: base, Bytes: buf, Strict: true}
}

// Valid reports whether an n-byte access at addr is within bounds, without
// raising an error. Used by DC ZVA's zero-fill helper to avoid a hard
// termination mid-block when the zeroed range crosses the end of memory.
func (m *Memory) Valid(addr uint64, n int) bool {
	if addr < m.Base {
		return false
	}
	off := addr - m.Base
	return off+uint64(n) <= uint64(len(m.Bytes))
}

func (m *Memory) offset(addr uint64, n int) (int, error) {
	if !m.Valid(addr, n) {
		return 0, fmt.Errorf("memory access out of bounds: addr=0x%x len=%d base=0x%x size=%d", addr, n, m.Base, len(m.Bytes))
	}
	return int(addr - m.Base), nil
}

// Read8/16/32/64/128 return the little-endian value at addr.

func (m *Memory) Read8(addr uint64) (uint8, error) {
	off, err := m.offset(addr, 1)
	if err != nil {
		return 0, err
	}
	return m.Bytes[off], nil
}

func (m *Memory) Read16(addr uint64) (uint16, error) {
	off, err := m.offset(addr, 2)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(m.Bytes[off:]), nil
}

func (m *Memory) Read32(addr uint64) (uint32, error) {
	off, err := m.offset(addr, 4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(m.Bytes[off:]), nil
}

func (m *Memory) Read64(addr uint64) (uint64, error) {
	off, err := m.offset(addr, 8)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(m.Bytes[off:]), nil
}

func (m *Memory) Read128(addr uint64) (lo, hi uint64, err error) {
	off, err := m.offset(addr, 16)
	if err != nil {
		return 0, 0, err
	}
	lo = binary.LittleEndian.Uint64(m.Bytes[off:])
	hi = binary.LittleEndian.Uint64(m.Bytes[off+8:])
	return lo, hi, nil
}

func (m *Memory) Write8(addr uint64, v uint8) error {
	off, err := m.offset(addr, 1)
	if err != nil {
		return err
	}
	m.Bytes[off] = v
	return nil
}

func (m *Memory) Write16(addr uint64, v uint16) error {
	off, err := m.offset(addr, 2)
	if err != nil {
		return err
	}
	binary.LittleEndian.PutUint16(m.Bytes[off:], v)
	return nil
}

func (m *Memory) Write32(addr uint64, v uint32) error {
	off, err := m.offset(addr, 4)
	if err != nil {
		return err
	}
	binary.LittleEndian.PutUint32(m.Bytes[off:], v)
	return nil
}

func (m *Memory) Write64(addr uint64, v uint64) error {
	off, err := m.offset(addr, 8)
	if err != nil {
		return err
	}
	binary.LittleEndian.PutUint64(m.Bytes[off:], v)
	return nil
}

func (m *Memory) Write128(addr uint64, lo, hi uint64) error {
	off, err := m.offset(addr, 16)
	if err != nil {
		return err
	}
	binary.LittleEndian.PutUint64(m.Bytes[off:], lo)
	binary.LittleEndian.PutUint64(m.Bytes[off+8:], hi)
	return nil
}

// ZeroFill zeroes n bytes at addr, used by DC ZVA. It stops at the first
// invalid byte rather than hard-terminating, mirroring the original
// implementation's block-zero helper, which range-checks before calling its
// fatal single-byte accessor.
func (m *Memory) ZeroFill(addr uint64, n int) {
	for i := 0; i < n; i++ {
		a := addr + uint64(i)
		if !m.Valid(a, 1) {
			return
		}
		off := int(a - m.Base)
		m.Bytes[off] = 0
	}
}

// LoadProgram copies program into memory starting at entry, a convenience
// used by the CLI and tests to place an instruction stream at a base
// address.
func (m *Memory) LoadProgram(entry uint64, program []byte) error {
	off, err := m.offset(entry, len(program))
	if err != nil {
		return err
	}
	copy(m.Bytes[off:], program)
	return nil
}

// Segment describes one loadable span of bytes at a guest virtual address,
// matching loader.Segment's shape so emu doesn't need to import loader.
type Segment struct {
	VAddr    uint64
	Data     []byte
	MemSize  uint64
	FileSize uint64
}

// LoadSegments copies each segment's file-backed bytes into memory and zero
// fills the remainder up to MemSize (BSS); cmd/a64sim and the tests both load
// programs through it.
func (m *Memory) LoadSegments(segments []Segment) error {
	for _, seg := range segments {
		if seg.FileSize > 0 {
			if err := m.LoadProgram(seg.VAddr, seg.Data); err != nil {
				return err
			}
		}
		if seg.MemSize > seg.FileSize {
			m.ZeroFill(seg.VAddr+seg.FileSize, int(seg.MemSize-seg.FileSize))
		}
	}
	return nil
}
