// Package emu provides functional AArch64 emulation.
package emu

import "github.com/a64sim/a64sim/insts"

// zeroOrSP is the register field value (31) that is architecturally
// overloaded: in most encodings it names XZR, the zero register, but in
// encodings that address the stack (ADD/SUB immediate with Rn/Rd=31, most
// loads and stores) it names SP instead. Which meaning applies is a property
// of the encoding, not the register file, so RegFile exposes both readings
// through separate accessors rather than trying to guess from the field
// value alone.
const zeroOrSP uint8 = 31

// RegFile is the general-purpose register state of one AArch64 hart: the 31
// addressable X registers (X[31] itself is never stored — see zeroOrSP), SP,
// PC, the NZCV condition flags, and the handful of EL0-visible system
// registers this emulator's MRS/MSR and syscall surface reads or writes
// (SPEC_FULL.md's data model: TPIDR_EL0, CNTVCT_EL0, CNTFRQ_EL0, MIDR_EL1,
// DCZID_EL0, FPCR).
type RegFile struct {
	// X holds general-purpose registers X0-X30. X[31] is left permanently
	// zero and is never addressed directly; ReadReg/WriteReg and friends
	// redirect register 31 to either the zero-register or SP behavior below.
	X [32]uint64

	SP uint64
	PC uint64

	PSTATE PSTATE

	// tpidrEL0 backs TPIDR_EL0, the thread-pointer/TLS-base register most
	// userspace runtimes read during thread-local-storage setup.
	tpidrEL0 uint64

	// fpcr backs FPCR. This emulator's FP unit does not vary its rounding or
	// trap behavior on FPCR's bits, but code that saves and restores it
	// across a call still needs MRS/MSR to round-trip the value it wrote.
	fpcr uint64
}

// PSTATE holds the four AArch64 condition flags (NZCV) that branch, compare,
// and conditional-select/compare instructions read and arithmetic
// instructions with SetFlags write.
type PSTATE struct {
	N bool // negative
	Z bool // zero
	C bool // carry/unsigned-overflow
	V bool // signed overflow
}

// ReadReg reads a register value. Register 31 reads as the zero register
// (XZR), always 0, and registers above 31 (used as decoder sentinels for
// immediate-only operand slots) also read as 0.
func (r *RegFile) ReadReg(reg uint8) uint64 {
	if reg >= zeroOrSP {
		return 0
	}
	return r.X[reg]
}

// ReadRegOrSP reads a register value, treating register 31 as SP rather
// than XZR — the reading ADD/SUB (immediate) and most load/store base
// registers use.
func (r *RegFile) ReadRegOrSP(reg uint8) uint64 {
	if reg == zeroOrSP {
		return r.SP
	}
	return r.X[reg]
}

// WriteRegOrSP writes a register value, treating register 31 as SP rather
// than a discarded write to XZR.
func (r *RegFile) WriteRegOrSP(reg uint8, value uint64) {
	if reg == zeroOrSP {
		r.SP = value
		return
	}
	r.X[reg] = value
}

// WriteReg writes a value to a register. Writes to register 31 or above are
// discarded, per XZR's "write ignored" rule.
func (r *RegFile) WriteReg(reg uint8, value uint64) {
	if reg >= zeroOrSP {
		return
	}
	r.X[reg] = value
}

// ReadReg32 reads the lower 32 bits of a register (the W-register view).
func (r *RegFile) ReadReg32(reg uint8) uint32 {
	return uint32(r.ReadReg(reg))
}

// WriteReg32 writes the W-register view of a register, zero-extending into
// the full 64-bit X register per the architectural W-write rule.
func (r *RegFile) WriteReg32(reg uint8, value uint32) {
	r.WriteReg(reg, uint64(value))
}

// ReadSysReg returns the value of an EL0-visible system register as MRS
// sees it. cyclesExecuted backs CNTVCT_EL0 (the emulator has no real
// timer, so instruction count stands in for elapsed cycles); the caller
// passes it in rather than RegFile depending on Machine's instruction
// counter.
func (r *RegFile) ReadSysReg(reg insts.SystemReg, cyclesExecuted uint64) uint64 {
	switch reg {
	case insts.SysTPIDR_EL0:
		return r.tpidrEL0
	case insts.SysCNTVCT_EL0:
		return cyclesExecuted
	case insts.SysCNTFRQ_EL0:
		return cntfrqHz
	case insts.SysMIDR_EL1:
		return midrEL1Value
	case insts.SysDCZID_EL0:
		return dczidBlockSizeLog2
	case insts.SysFPCR:
		return r.fpcr
	case insts.SysNZCV:
		return packNZCV(r.PSTATE)
	}
	return 0
}

// WriteSysReg updates an EL0-visible system register as MSR sees it.
// MIDR_EL1, CNTFRQ_EL0, CNTVCT_EL0, and DCZID_EL0 are read-only; writes to
// them are silently discarded, matching real hardware.
func (r *RegFile) WriteSysReg(reg insts.SystemReg, value uint64) {
	switch reg {
	case insts.SysTPIDR_EL0:
		r.tpidrEL0 = value
	case insts.SysFPCR:
		r.fpcr = value
	case insts.SysNZCV:
		r.setNZCV(value&0b1000 != 0, value&0b0100 != 0, value&0b0010 != 0, value&0b0001 != 0)
	}
}

// packNZCV packs the four condition flags into the NZCV bit layout MRS
// reads them in: N at bit 3 down to V at bit 0.
func packNZCV(p PSTATE) uint64 {
	var v uint64
	if p.N {
		v |= 0b1000
	}
	if p.Z {
		v |= 0b0100
	}
	if p.C {
		v |= 0b0010
	}
	if p.V {
		v |= 0b0001
	}
	return v
}

const (
	// cntfrqHz is the frequency this emulator reports for the generic timer,
	// a plausible value (1GHz) rather than a measurement of anything real.
	cntfrqHz = 1_000_000_000
	// midrEL1Value is a plausible Cortex-A-family MIDR_EL1 value; no program
	// this emulator runs is expected to branch on the exact implementer/part
	// fields, so any well-formed MIDR serves.
	midrEL1Value = 0x410FD070
	// dczidBlockSizeLog2 reports a DC ZVA block size of 2^4 = 16 words (64
	// bytes), the BS field DCZID_EL0 encodes.
	dczidBlockSizeLog2 = 4
)
