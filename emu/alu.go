package emu

import "github.com/a64sim/a64sim/insts"

// ALU implements ARM64 integer arithmetic and logic operations, sharing a
// single flag-computation primitive (addWithCarry) across every add/sub
// variant so ADD, SUB, ADC, SBC, CMP and CMN all agree on carry/overflow.
type ALU struct {
	regFile *RegFile
}

// NewALU creates a new ALU connected to the given register file.
func NewALU(regFile *RegFile) *ALU {
	return &ALU{regFile: regFile}
}

// AddSub computes op1 +/- op2 (sub is add of the bitwise complement with
// carry-in forced to 1, the standard AArch64 trick that makes SUBS reuse the
// adder's carry/overflow logic), optionally updating NZCV.
func (a *ALU) AddSub(isSub bool, op1, op2 uint64, is64, setFlags bool) uint64 {
	y := op2
	carryIn := false
	if isSub {
		y = ^op2
		carryIn = true
	}
	if is64 {
		result, n, z, c, v := addWithCarry64(op1, y, carryIn)
		if setFlags {
			a.regFile.setNZCV(n, z, c, v)
		}
		return result
	}
	result, n, z, c, v := addWithCarry32(uint32(op1), uint32(y), carryIn)
	if setFlags {
		a.regFile.setNZCV(n, z, c, v)
	}
	return uint64(result)
}

// AddSubCarry computes ADC/SBC: op1 +/- op2 +/- the current carry flag.
func (a *ALU) AddSubCarry(isSub bool, op1, op2 uint64, is64, setFlags bool) uint64 {
	carryIn := a.regFile.PSTATE.C
	y := op2
	if isSub {
		y = ^op2
	}
	if is64 {
		result, n, z, c, v := addWithCarry64(op1, y, carryIn)
		if setFlags {
			a.regFile.setNZCV(n, z, c, v)
		}
		return result
	}
	result, n, z, c, v := addWithCarry32(uint32(op1), uint32(y), carryIn)
	if setFlags {
		a.regFile.setNZCV(n, z, c, v)
	}
	return uint64(result)
}

// Logic computes AND/ORR/EOR/BIC/ORN/EON (for BIC/ORN/EON the caller,
// executeDPReg, complements op2 before calling in, matching how these
// mnemonics are just aliases with Rm negated).
func (a *ALU) Logic(op insts.Op, op1, op2 uint64, is64, setFlags bool) uint64 {
	var result uint64
	switch op {
	case insts.OpAND, insts.OpBIC:
		result = op1 & op2
	case insts.OpORR, insts.OpORN:
		result = op1 | op2
	case insts.OpEOR, insts.OpEON:
		result = op1 ^ op2
	}
	if !is64 {
		result &= 0xFFFFFFFF
	}
	if setFlags {
		if is64 {
			a.regFile.setNZ(result>>63 == 1, result == 0)
		} else {
			a.regFile.setNZ(result>>31 == 1, result == 0)
		}
	}
	return result
}
