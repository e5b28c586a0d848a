package emu

import "github.com/a64sim/a64sim/insts"

// shiftReg applies a shifted-register operand's shift, matching the ARM
// Shift() pseudocode. amount is reduced modulo the operand width (32 or 64)
// before the shift is applied.
func shiftReg(value uint64, st insts.ShiftType, amount uint8, is64 bool) uint64 {
	width := uint(32)
	if is64 {
		width = 64
	}
	amt := uint(amount) % width
	v := value
	if !is64 {
		v &= 0xFFFFFFFF
	}

	switch st {
	case insts.ShiftLSL:
		v = v << amt
	case insts.ShiftLSR:
		v = v >> amt
	case insts.ShiftASR:
		if is64 {
			v = uint64(int64(v) >> amt)
		} else {
			v = uint64(uint32(int32(uint32(v)) >> amt))
		}
	case insts.ShiftROR:
		if amt == 0 {
			break
		}
		if is64 {
			v = (v >> amt) | (v << (64 - amt))
		} else {
			v32 := uint32(v)
			v = uint64((v32 >> amt) | (v32 << (32 - amt)))
		}
	}

	if !is64 {
		v &= 0xFFFFFFFF
	}
	return v
}

// extendReg applies one of the eight AArch64 extend kinds to a register
// value (reading it at its natural sub-width first), then left-shifts by
// shiftAmt, matching the ExtendReg() pseudocode used by extended-register
// add/sub and register-offset load/store addressing.
func extendReg(value uint64, et insts.ExtendType, shiftAmt uint8) uint64 {
	var extended uint64
	switch et {
	case insts.ExtUXTB:
		extended = uint64(uint8(value))
	case insts.ExtUXTH:
		extended = uint64(uint16(value))
	case insts.ExtUXTW:
		extended = uint64(uint32(value))
	case insts.ExtUXTX:
		extended = value
	case insts.ExtSXTB:
		extended = uint64(int64(int8(value)))
	case insts.ExtSXTH:
		extended = uint64(int64(int16(value)))
	case insts.ExtSXTW:
		extended = uint64(int64(int32(value)))
	case insts.ExtSXTX:
		extended = value
	}
	return extended << shiftAmt
}
