// Package emu provides functional ARM64 emulation.
package emu

import "github.com/a64sim/a64sim/insts"

// BranchUnit implements AArch64 branch resolution: condition evaluation and
// PC update. It never touches memory; the caller (Machine) fetches the
// next instruction after PC changes.
type BranchUnit struct {
	regFile *RegFile
}

// NewBranchUnit creates a new BranchUnit connected to the given register file.
func NewBranchUnit(regFile *RegFile) *BranchUnit {
	return &BranchUnit{regFile: regFile}
}

// B performs an unconditional PC-relative branch.
func (b *BranchUnit) B(offset int64) {
	b.regFile.PC = uint64(int64(b.regFile.PC) + offset)
}

// BL saves the return address (PC + 4) to X30, then branches to PC + offset.
func (b *BranchUnit) BL(offset int64) {
	b.regFile.WriteReg(30, b.regFile.PC+4)
	b.regFile.PC = uint64(int64(b.regFile.PC) + offset)
}

// BR branches to the address held in Rn.
func (b *BranchUnit) BR(rn uint8) {
	b.regFile.PC = b.regFile.ReadReg(rn)
}

// BLR saves the return address to X30, then branches to the address in Rn.
func (b *BranchUnit) BLR(rn uint8) {
	target := b.regFile.ReadReg(rn) // read before the X30 write in case rn==30
	b.regFile.WriteReg(30, b.regFile.PC+4)
	b.regFile.PC = target
}

// RET branches to the address in Rn (X30 by default).
func (b *BranchUnit) RET(rn uint8) {
	b.regFile.PC = b.regFile.ReadReg(rn)
}

// BCond branches to PC + offset if cond holds; otherwise PC is unchanged.
func (b *BranchUnit) BCond(offset int64, cond insts.Cond) {
	if b.CheckCondition(cond) {
		b.regFile.PC = uint64(int64(b.regFile.PC) + offset)
	}
}

// CBZ branches if the value is zero.
func (b *BranchUnit) CBZ(offset int64, value uint64) {
	if value == 0 {
		b.regFile.PC = uint64(int64(b.regFile.PC) + offset)
	}
}

// CBNZ branches if the value is non-zero.
func (b *BranchUnit) CBNZ(offset int64, value uint64) {
	if value != 0 {
		b.regFile.PC = uint64(int64(b.regFile.PC) + offset)
	}
}

// TBZ branches if bit bitNum of value is zero.
func (b *BranchUnit) TBZ(offset int64, value uint64, bitNum uint8) {
	if value&(1<<bitNum) == 0 {
		b.regFile.PC = uint64(int64(b.regFile.PC) + offset)
	}
}

// TBNZ branches if bit bitNum of value is non-zero.
func (b *BranchUnit) TBNZ(offset int64, value uint64, bitNum uint8) {
	if value&(1<<bitNum) != 0 {
		b.regFile.PC = uint64(int64(b.regFile.PC) + offset)
	}
}

// CheckCondition evaluates an AArch64 condition code against the current
// PSTATE flags.
func (b *BranchUnit) CheckCondition(cond insts.Cond) bool {
	return checkCond(b.regFile.PSTATE, cond)
}
