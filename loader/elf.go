// Package loader loads AArch64 user-mode ELF executables into the segment
// list a64sim's Machine runs: it is a host collaborator to the emu package,
// not part of the instruction-semantics core, and leans on the standard
// library's debug/elf for header parsing rather than hand-rolling one.
package loader

import (
	"debug/elf"
	"fmt"
	"io"
	"sort"
)

// SegmentFlags represents memory protection flags for a segment.
type SegmentFlags uint32

const (
	// SegmentFlagExecute indicates the segment is executable.
	SegmentFlagExecute SegmentFlags = 1 << iota
	// SegmentFlagWrite indicates the segment is writable.
	SegmentFlagWrite
	// SegmentFlagRead indicates the segment is readable.
	SegmentFlagRead
)

// DefaultStackTop is the conventional AArch64 Linux user-space stack-top
// address. a64sim's own flat-buffer Memory can't span a real process address
// space, so cmd/a64sim places the stack just above the loaded image instead
// of at this address; InitialSP is still reported for callers (or tests)
// that model a full virtual address space of their own.
const DefaultStackTop = 0x7ffffffff000

// DefaultStackSize is the default stack size (8MB).
const DefaultStackSize = 8 * 1024 * 1024

// Segment represents a loadable segment from an ELF binary.
type Segment struct {
	// VirtAddr is the virtual address where this segment should be loaded.
	VirtAddr uint64
	// Data contains the segment contents from the file.
	Data []byte
	// MemSize is the size in memory (may be larger than len(Data) for BSS).
	MemSize uint64
	// Flags contains the segment protection flags.
	Flags SegmentFlags
}

// Program represents a loaded ELF program ready for execution.
type Program struct {
	// EntryPoint is the virtual address where execution should begin.
	EntryPoint uint64
	// Segments contains all loadable segments from the ELF file, ordered by
	// ascending VirtAddr so a caller laying memory out by scanning Segments
	// in order (as cmd/a64sim does) gets a deterministic image regardless of
	// the order the program headers happened to appear in the file.
	Segments []Segment
	// InitialSP is the initial stack pointer value.
	InitialSP uint64
}

// Load parses an AArch64 ELF64 executable and returns a Program ready for
// loading into a Machine's memory. It rejects anything this emulator's
// single-hart, EL0-only, statically-addressed model can't run: wrong word
// size, wrong machine, big-endian data, or an object file/core dump instead
// of something directly executable.
func Load(path string) (*Program, error) {
	f, err := elf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open ELF file: %w", err)
	}
	defer func() { _ = f.Close() }()

	if f.Class != elf.ELFCLASS64 {
		return nil, fmt.Errorf("not a 64-bit ELF file")
	}
	if f.Machine != elf.EM_AARCH64 {
		return nil, fmt.Errorf("not an ARM64 ELF file (machine type: %v)", f.Machine)
	}
	if f.Data != elf.ELFDATA2LSB {
		return nil, fmt.Errorf("not a little-endian ELF file (AArch64 requires LE for this emulator)")
	}
	if f.Type != elf.ET_EXEC && f.Type != elf.ET_DYN {
		return nil, fmt.Errorf("not an executable ELF file (type: %v)", f.Type)
	}

	prog := &Program{
		EntryPoint: f.Entry,
		InitialSP:  DefaultStackTop,
	}

	for _, phdr := range f.Progs {
		if phdr.Type != elf.PT_LOAD {
			continue
		}

		data := make([]byte, phdr.Filesz)
		if phdr.Filesz > 0 {
			n, err := phdr.ReadAt(data, 0)
			if err != nil && err != io.EOF {
				return nil, fmt.Errorf("failed to read segment at 0x%x: %w", phdr.Vaddr, err)
			}
			if uint64(n) != phdr.Filesz {
				return nil, fmt.Errorf("short read for segment at 0x%x: got %d bytes, expected %d",
					phdr.Vaddr, n, phdr.Filesz)
			}
		}
		if phdr.Memsz < phdr.Filesz {
			return nil, fmt.Errorf("segment at 0x%x has Memsz (%d) smaller than Filesz (%d)",
				phdr.Vaddr, phdr.Memsz, phdr.Filesz)
		}

		var flags SegmentFlags
		if phdr.Flags&elf.PF_X != 0 {
			flags |= SegmentFlagExecute
		}
		if phdr.Flags&elf.PF_W != 0 {
			flags |= SegmentFlagWrite
		}
		if phdr.Flags&elf.PF_R != 0 {
			flags |= SegmentFlagRead
		}

		prog.Segments = append(prog.Segments, Segment{
			VirtAddr: phdr.Vaddr,
			Data:     data,
			MemSize:  phdr.Memsz,
			Flags:    flags,
		})
	}

	sort.Slice(prog.Segments, func(i, j int) bool {
		return prog.Segments[i].VirtAddr < prog.Segments[j].VirtAddr
	})

	return prog, nil
}
