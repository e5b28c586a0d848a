package emu

import (
	"math"

	"github.com/a64sim/a64sim/insts"
)

// FPUnit implements scalar floating-point data processing on the SIMD
// register file's low bits (Dn/Sn), the same thin-wrapper-over-register-
// files shape the rest of the integer units use.
type FPUnit struct {
	regFile *RegFile
	simd    *SIMDRegFile
}

// NewFPUnit creates a new scalar FP unit.
func NewFPUnit(regFile *RegFile, simd *SIMDRegFile) *FPUnit {
	return &FPUnit{regFile: regFile, simd: simd}
}

func (f *FPUnit) readF64(n uint8, p insts.FPPrecision) float64 {
	if p == insts.FPSingle {
		return float64(math.Float32frombits(f.simd.Read32(n)))
	}
	return math.Float64frombits(f.simd.Read64(n))
}

func (f *FPUnit) writeF64(n uint8, p insts.FPPrecision, v float64) {
	if p == insts.FPSingle {
		f.simd.Write32(n, math.Float32bits(float32(v)))
		return
	}
	f.simd.Write64(n, math.Float64bits(v))
}

// FMOV copies Vn to Vd at the given precision (register-to-register form).
func (f *FPUnit) FMOV(rd, rn uint8, p insts.FPPrecision) {
	f.writeF64(rd, p, f.readF64(rn, p))
}

// FMOVImm writes an expanded 8-bit immediate to Vd.
func (f *FPUnit) FMOVImm(rd uint8, imm8 uint64, p insts.FPPrecision) {
	if p == insts.FPSingle {
		f.simd.Write32(rd, uint32(vfpExpandImm(imm8, false)))
		return
	}
	f.simd.Write64(rd, vfpExpandImm(imm8, true))
}

// FMOVGeneralToFP moves a GP register's raw bits into Vd (FMOV Sd/Dd, Wn/Xn).
func (f *FPUnit) FMOVGeneralToFP(rd, rn uint8, is64 bool) {
	v := f.regFile.ReadReg(rn)
	if is64 {
		f.simd.Write64(rd, v)
	} else {
		f.simd.Write32(rd, uint32(v))
	}
}

// FMOVFPToGeneral moves Vn's raw bits into a GP register (FMOV Wd/Xd, Sn/Dn).
func (f *FPUnit) FMOVFPToGeneral(rd, rn uint8, is64 bool) {
	if is64 {
		f.regFile.WriteReg(rd, f.simd.Read64(rn))
	} else {
		f.regFile.WriteReg(rd, uint64(f.simd.Read32(rn)))
	}
}

// FMOVGeneralToFPHigh moves a GP register's raw bits into Vd.D[1], the high
// 64 bits of a 128-bit register, leaving Vd.D[0] untouched.
func (f *FPUnit) FMOVGeneralToFPHigh(rd, rn uint8) {
	f.simd.V[rd][1] = f.regFile.ReadReg(rn)
}

// FMOVHighToGeneral moves Vn.D[1] into a GP register.
func (f *FPUnit) FMOVHighToGeneral(rd, rn uint8) {
	f.regFile.WriteReg(rd, f.simd.V[rn][1])
}

func (f *FPUnit) FABS(rd, rn uint8, p insts.FPPrecision) {
	f.writeF64(rd, p, math.Abs(f.readF64(rn, p)))
}

func (f *FPUnit) FNEG(rd, rn uint8, p insts.FPPrecision) {
	f.writeF64(rd, p, -f.readF64(rn, p))
}

func (f *FPUnit) FSQRT(rd, rn uint8, p insts.FPPrecision) {
	f.writeF64(rd, p, math.Sqrt(f.readF64(rn, p)))
}

func (f *FPUnit) FADD(rd, rn, rm uint8, p insts.FPPrecision) {
	f.writeF64(rd, p, f.readF64(rn, p)+f.readF64(rm, p))
}

func (f *FPUnit) FSUB(rd, rn, rm uint8, p insts.FPPrecision) {
	f.writeF64(rd, p, f.readF64(rn, p)-f.readF64(rm, p))
}

func (f *FPUnit) FMUL(rd, rn, rm uint8, p insts.FPPrecision) {
	f.writeF64(rd, p, f.readF64(rn, p)*f.readF64(rm, p))
}

func (f *FPUnit) FDIV(rd, rn, rm uint8, p insts.FPPrecision) {
	f.writeF64(rd, p, f.readF64(rn, p)/f.readF64(rm, p))
}

func (f *FPUnit) FMADD(rd, rn, rm, ra uint8, p insts.FPPrecision) {
	f.writeF64(rd, p, f.readF64(ra, p)+f.readF64(rn, p)*f.readF64(rm, p))
}

func (f *FPUnit) FMSUB(rd, rn, rm, ra uint8, p insts.FPPrecision) {
	f.writeF64(rd, p, f.readF64(ra, p)-f.readF64(rn, p)*f.readF64(rm, p))
}

func (f *FPUnit) FNMADD(rd, rn, rm, ra uint8, p insts.FPPrecision) {
	f.writeF64(rd, p, -f.readF64(ra, p)-f.readF64(rn, p)*f.readF64(rm, p))
}

func (f *FPUnit) FNMSUB(rd, rn, rm, ra uint8, p insts.FPPrecision) {
	f.writeF64(rd, p, -f.readF64(ra, p)+f.readF64(rn, p)*f.readF64(rm, p))
}

func (f *FPUnit) FRINTA(rd, rn uint8, p insts.FPPrecision) {
	v := f.readF64(rn, p)
	f.writeF64(rd, p, math.Round(v))
}

// FCMP compares Vn to Vm (or to 0.0 when compareZero is set) and updates
// NZCV per the unordered/ordered rules FCMP and FCMPE share.
func (f *FPUnit) FCMP(rn, rm uint8, p insts.FPPrecision, compareZero bool) {
	a := f.readF64(rn, p)
	var b float64
	if !compareZero {
		b = f.readF64(rm, p)
	}
	f.regFile.setFlagsFromFCmp(a, b, math.IsNaN(a) || math.IsNaN(b))
}

// FCCMP performs FCMP only if cond holds; otherwise NZCV is set from the
// 4-bit immediate operand, per the conditional-compare pseudocode shared
// with the integer CCMP/CCMN unit.
func (f *FPUnit) FCCMP(rn, rm uint8, p insts.FPPrecision, cond insts.Cond, nzcv uint64) {
	if checkCond(f.regFile.PSTATE, cond) {
		f.FCMP(rn, rm, p, false)
		return
	}
	f.regFile.setNZCV(nzcv&0b1000 != 0, nzcv&0b0100 != 0, nzcv&0b0010 != 0, nzcv&0b0001 != 0)
}

func (f *FPUnit) FCSEL(rd, rn, rm uint8, p insts.FPPrecision, cond insts.Cond) {
	if checkCond(f.regFile.PSTATE, cond) {
		f.writeF64(rd, p, f.readF64(rn, p))
	} else {
		f.writeF64(rd, p, f.readF64(rm, p))
	}
}

// FCVT converts between single and double precision.
func (f *FPUnit) FCVT(rd, rn uint8, from, to insts.FPPrecision) {
	f.writeF64(rd, to, f.readF64(rn, from))
}

func (f *FPUnit) SCVTF(rd uint8, value int64, fbits uint8, p insts.FPPrecision) {
	v := float64(value) / math.Pow(2, float64(fbits))
	f.writeF64(rd, p, v)
}

func (f *FPUnit) UCVTF(rd uint8, value uint64, fbits uint8, p insts.FPPrecision) {
	v := float64(value) / math.Pow(2, float64(fbits))
	f.writeF64(rd, p, v)
}

// FCVTZS/FCVTZU round toward zero with saturation on overflow, per the
// AArch64 FPToFixed pseudocode.
func (f *FPUnit) FCVTZS(rn uint8, p insts.FPPrecision, fbits uint8, is64 bool) int64 {
	v := f.readF64(rn, p) * math.Pow(2, float64(fbits))
	v = math.Trunc(v)
	if is64 {
		return saturateToInt64(v)
	}
	return int64(saturateToInt32(v))
}

func (f *FPUnit) FCVTZU(rn uint8, p insts.FPPrecision, fbits uint8, is64 bool) uint64 {
	v := f.readF64(rn, p) * math.Pow(2, float64(fbits))
	v = math.Trunc(v)
	if is64 {
		return saturateToUint64(v)
	}
	return uint64(saturateToUint32(v))
}

func (f *FPUnit) FCVTAS(rn uint8, p insts.FPPrecision, is64 bool) int64 {
	v := math.Round(f.readF64(rn, p))
	if is64 {
		return saturateToInt64(v)
	}
	return int64(saturateToInt32(v))
}

func (f *FPUnit) FCVTAU(rn uint8, p insts.FPPrecision, is64 bool) uint64 {
	v := math.Round(f.readF64(rn, p))
	if is64 {
		return saturateToUint64(v)
	}
	return uint64(saturateToUint32(v))
}

func saturateToInt64(v float64) int64 {
	switch {
	case math.IsNaN(v):
		return 0
	case v >= math.MaxInt64:
		return math.MaxInt64
	case v <= math.MinInt64:
		return math.MinInt64
	}
	return int64(v)
}

func saturateToInt32(v float64) int32 {
	switch {
	case math.IsNaN(v):
		return 0
	case v >= math.MaxInt32:
		return math.MaxInt32
	case v <= math.MinInt32:
		return math.MinInt32
	}
	return int32(v)
}

func saturateToUint64(v float64) uint64 {
	switch {
	case math.IsNaN(v) || v <= 0:
		return 0
	case v >= math.MaxUint64:
		return math.MaxUint64
	}
	return uint64(v)
}

func saturateToUint32(v float64) uint32 {
	switch {
	case math.IsNaN(v) || v <= 0:
		return 0
	case v >= math.MaxUint32:
		return math.MaxUint32
	}
	return uint32(v)
}
