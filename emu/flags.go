package emu

import "github.com/a64sim/a64sim/insts"

// addWithCarry64 implements the ARM pseudocode AddWithCarry primitive for
// 64-bit operands: result, and the NZCV flags that would result from
// computing x + y + carryIn.
func addWithCarry64(x, y uint64, carryIn bool) (result uint64, n, z, c, v bool) {
	var cin uint64
	if carryIn {
		cin = 1
	}
	result = x + y + cin

	// Unsigned overflow: compare against 65-bit arithmetic using carry
	// propagation through the two additions.
	sum1 := x + y
	carry1 := sum1 < x
	sum2 := sum1 + cin
	carry2 := sum2 < sum1
	c = carry1 || carry2

	xSign := x >> 63
	ySign := y >> 63
	rSign := result >> 63
	v = (xSign == ySign) && (xSign != rSign)

	n = rSign == 1
	z = result == 0
	return
}

// addWithCarry32 is the 32-bit counterpart of addWithCarry64.
func addWithCarry32(x, y uint32, carryIn bool) (result uint32, n, z, c, v bool) {
	var cin uint32
	if carryIn {
		cin = 1
	}
	result = x + y + cin

	sum1 := x + y
	carry1 := sum1 < x
	sum2 := sum1 + cin
	carry2 := sum2 < sum1
	c = carry1 || carry2

	xSign := x >> 31
	ySign := y >> 31
	rSign := result >> 31
	v = (xSign == ySign) && (xSign != rSign)

	n = rSign == 1
	z = result == 0
	return
}

func (r *RegFile) setNZCV(n, z, c, v bool) {
	r.PSTATE.N = n
	r.PSTATE.Z = z
	r.PSTATE.C = c
	r.PSTATE.V = v
}

func (r *RegFile) setNZ(n, z bool) {
	r.PSTATE.N = n
	r.PSTATE.Z = z
	r.PSTATE.C = false
	r.PSTATE.V = false
}

// checkCond evaluates an AArch64 condition code against the current NZCV
// flags, per the ConditionHolds pseudocode.
func checkCond(p PSTATE, cond insts.Cond) bool {
	var result bool
	switch cond &^ 1 {
	case insts.CondEQ:
		result = p.Z
	case insts.CondCS:
		result = p.C
	case insts.CondMI:
		result = p.N
	case insts.CondVS:
		result = p.V
	case insts.CondHI:
		result = p.C && !p.Z
	case insts.CondGE:
		result = p.N == p.V
	case insts.CondGT:
		result = !p.Z && (p.N == p.V)
	case insts.CondAL:
		result = true
	}
	if cond == insts.CondAL || cond == insts.CondNV {
		return true
	}
	if cond&1 == 1 {
		return !result
	}
	return result
}

// setFlagsFromFCmp sets NZCV the way FCMP/FCCMP do for an ordered comparison
// between two float64 operands (already widened from half/single as needed).
func (r *RegFile) setFlagsFromFCmp(a, b float64, unordered bool) {
	switch {
	case unordered:
		r.setNZCV(false, false, true, true)
	case a == b:
		r.setNZCV(false, true, true, false)
	case a < b:
		r.setNZCV(true, false, false, false)
	default:
		r.setNZCV(false, false, true, false)
	}
}
