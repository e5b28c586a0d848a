package emu

import (
	"math"

	"github.com/a64sim/a64sim/insts"
)

// SIMD implements Advanced SIMD (NEON) vector and structure load/store
// execution on top of SIMDRegFile, driven entirely by the element width and
// lane count the decoded Arrangement carries. Every op that writes vd stages
// its per-lane results into a local slice before writing any of them back
// (the narrowing ops VXTN/VSHRN instead write each half-width result only
// over source bits already read), so a destination register that aliases a
// source register (legal and common, e.g. "add v0.4s, v0.4s, v1.4s") never
// observes a partially overwritten operand mid-computation.
type SIMD struct {
	simd    *SIMDRegFile
	regFile *RegFile
	memory  *Memory
}

// NewSIMD creates a new SIMD execution unit.
func NewSIMD(simd *SIMDRegFile, regFile *RegFile, memory *Memory) *SIMD {
	return &SIMD{simd: simd, regFile: regFile, memory: memory}
}

func (s *SIMD) clearUpperIfD(vd uint8, arr insts.Arrangement) {
	if !arr.IsQ() {
		s.simd.V[vd][1] = 0
	}
}

// binaryOp applies fn element-wise over vn/vm lanes of arr and writes vd.
func (s *SIMD) binaryOp(vd, vn, vm uint8, arr insts.Arrangement, fn func(a, b uint64) uint64) {
	count, width := arr.Elements(), arr.ElementBits()
	results := make([]uint64, count)
	for i := 0; i < count; i++ {
		results[i] = fn(s.simd.lane(vn, i, width), s.simd.lane(vm, i, width)) & maskLow(width)
	}
	s.clearUpperIfD(vd, arr)
	for i, v := range results {
		s.simd.setLane(vd, i, width, v)
	}
}

// unaryOp applies fn element-wise over vn lanes of arr and writes vd.
func (s *SIMD) unaryOp(vd, vn uint8, arr insts.Arrangement, fn func(a uint64) uint64) {
	count, width := arr.Elements(), arr.ElementBits()
	results := make([]uint64, count)
	for i := 0; i < count; i++ {
		results[i] = fn(s.simd.lane(vn, i, width)) & maskLow(width)
	}
	s.clearUpperIfD(vd, arr)
	for i, v := range results {
		s.simd.setLane(vd, i, width, v)
	}
}

func signedLane(v uint64, width int) int64 {
	return insts.SignExtend(v, uint(width-1))
}

func floatBinary32(fn func(a, b float32) float32) func(a, b uint64) uint64 {
	return func(a, b uint64) uint64 {
		r := fn(math.Float32frombits(uint32(a)), math.Float32frombits(uint32(b)))
		return uint64(math.Float32bits(r))
	}
}

func floatBinary64(fn func(a, b float64) float64) func(a, b uint64) uint64 {
	return func(a, b uint64) uint64 {
		r := fn(math.Float64frombits(a), math.Float64frombits(b))
		return math.Float64bits(r)
	}
}

// floatBinaryOp dispatches to the 32- or 64-bit float implementation by
// element width, used by the vector floating-point arithmetic family.
func (s *SIMD) floatBinaryOp(vd, vn, vm uint8, arr insts.Arrangement, op32 func(a, b float32) float32, op64 func(a, b float64) float64) {
	if arr.ElementBits() == 64 {
		s.binaryOp(vd, vn, vm, arr, floatBinary64(op64))
		return
	}
	s.binaryOp(vd, vn, vm, arr, floatBinary32(op32))
}

// VADD performs vector integer addition.
func (s *SIMD) VADD(vd, vn, vm uint8, arr insts.Arrangement) {
	s.binaryOp(vd, vn, vm, arr, func(a, b uint64) uint64 { return a + b })
}

// VSUB performs vector integer subtraction.
func (s *SIMD) VSUB(vd, vn, vm uint8, arr insts.Arrangement) {
	s.binaryOp(vd, vn, vm, arr, func(a, b uint64) uint64 { return a - b })
}

// VMUL performs vector integer multiplication (element-wise, truncating).
func (s *SIMD) VMUL(vd, vn, vm uint8, arr insts.Arrangement) {
	s.binaryOp(vd, vn, vm, arr, func(a, b uint64) uint64 { return a * b })
}

// VMLS performs vector multiply-subtract: vd = vd - vn*vm.
func (s *SIMD) VMLS(vd, vn, vm uint8, arr insts.Arrangement) {
	width := arr.ElementBits()
	count := arr.Elements()
	results := make([]uint64, count)
	for i := 0; i < count; i++ {
		acc := s.simd.lane(vd, i, width)
		a := s.simd.lane(vn, i, width)
		b := s.simd.lane(vm, i, width)
		results[i] = (acc - a*b) & maskLow(width)
	}
	for i, v := range results {
		s.simd.setLane(vd, i, width, v)
	}
}

// VAND/VORR/VEOR are bitwise and width-independent; they operate on the
// full register regardless of the declared element size.
func (s *SIMD) VAND(vd, vn, vm uint8, arr insts.Arrangement) {
	s.wholeRegBinary(vd, vn, vm, func(a, b uint64) uint64 { return a & b })
}

func (s *SIMD) VORR(vd, vn, vm uint8, arr insts.Arrangement) {
	s.wholeRegBinary(vd, vn, vm, func(a, b uint64) uint64 { return a | b })
}

func (s *SIMD) VEOR(vd, vn, vm uint8, arr insts.Arrangement) {
	s.wholeRegBinary(vd, vn, vm, func(a, b uint64) uint64 { return a ^ b })
}

func (s *SIMD) VBIC(vd, vn, vm uint8, arr insts.Arrangement) {
	s.wholeRegBinary(vd, vn, vm, func(a, b uint64) uint64 { return a &^ b })
}

func (s *SIMD) VORN(vd, vn, vm uint8, arr insts.Arrangement) {
	s.wholeRegBinary(vd, vn, vm, func(a, b uint64) uint64 { return a | ^b })
}

// VBIT/VBIF/VBSL are bitwise-select family: vd = VBSL selects from vn/vm
// using vd as the mask; VBIT/VBIF use vm as the mask and differ in whether
// vn's bits are inserted where the mask is 1 (VBIT) or 0 (VBIF).
func (s *SIMD) VBSL(vd, vn, vm uint8) {
	lo, hi := s.simd.ReadQ(vd)
	nlo, nhi := s.simd.ReadQ(vn)
	mlo, mhi := s.simd.ReadQ(vm)
	s.simd.WriteQ(vd, (lo&nlo)|(^lo&mlo), (hi&nhi)|(^hi&mhi))
}

// VBIT inserts bits from vn where vm is 1, keeping vd's own bits where vm is 0.
func (s *SIMD) VBIT(vd, vn, vm uint8) {
	dlo, dhi := s.simd.ReadQ(vd)
	nlo, nhi := s.simd.ReadQ(vn)
	mlo, mhi := s.simd.ReadQ(vm)
	s.simd.WriteQ(vd, (nlo&mlo)|(dlo&^mlo), (nhi&mhi)|(dhi&^mhi))
}

// VBIF inserts bits from vn where vm is 0, keeping vd's own bits where vm is 1.
func (s *SIMD) VBIF(vd, vn, vm uint8) {
	dlo, dhi := s.simd.ReadQ(vd)
	nlo, nhi := s.simd.ReadQ(vn)
	mlo, mhi := s.simd.ReadQ(vm)
	s.simd.WriteQ(vd, (dlo&mlo)|(nlo&^mlo), (dhi&mhi)|(nhi&^mhi))
}

func (s *SIMD) wholeRegBinary(vd, vn, vm uint8, fn func(a, b uint64) uint64) {
	nlo, nhi := s.simd.ReadQ(vn)
	mlo, mhi := s.simd.ReadQ(vm)
	s.simd.WriteQ(vd, fn(nlo, mlo), fn(nhi, mhi))
}

// VCMEQ/VCMHS/VCMGT: per-lane compare, all-ones or all-zeros result.
func (s *SIMD) VCMEQ(vd, vn, vm uint8, arr insts.Arrangement) {
	s.cmpOp(vd, vn, vm, arr, false, func(a, b int64) bool { return a == b })
}

func (s *SIMD) VCMHS(vd, vn, vm uint8, arr insts.Arrangement) {
	s.binaryOp(vd, vn, vm, arr, func(a, b uint64) uint64 {
		if a >= b {
			return ^uint64(0)
		}
		return 0
	})
}

func (s *SIMD) VCMGT(vd, vn, vm uint8, arr insts.Arrangement) {
	s.cmpOp(vd, vn, vm, arr, true, func(a, b int64) bool { return a > b })
}

func (s *SIMD) cmpOp(vd, vn, vm uint8, arr insts.Arrangement, signed bool, fn func(a, b int64) bool) {
	width := arr.ElementBits()
	s.binaryOp(vd, vn, vm, arr, func(a, b uint64) uint64 {
		var ok bool
		if signed {
			ok = fn(signedLane(a, width), signedLane(b, width))
		} else {
			ok = fn(int64(a), int64(b))
		}
		if ok {
			return ^uint64(0)
		}
		return 0
	})
}

// VUMAXP/VUMINP: pairwise max/min across adjacent lanes of vn then vm,
// concatenated into vd (the pairwise-across family used by reduction idioms).
func (s *SIMD) VUMAXP(vd, vn, vm uint8, arr insts.Arrangement) {
	s.pairwiseOp(vd, vn, vm, arr, func(a, b uint64) uint64 {
		if a > b {
			return a
		}
		return b
	})
}

func (s *SIMD) VUMINP(vd, vn, vm uint8, arr insts.Arrangement) {
	s.pairwiseOp(vd, vn, vm, arr, func(a, b uint64) uint64 {
		if a < b {
			return a
		}
		return b
	})
}

// VADDP performs pairwise add, the same lane-pairing shape as VUMAXP/VUMINP.
func (s *SIMD) VADDP(vd, vn, vm uint8, arr insts.Arrangement) {
	s.pairwiseOp(vd, vn, vm, arr, func(a, b uint64) uint64 { return a + b })
}

// VFADDP is the floating-point pairwise-add form.
func (s *SIMD) VFADDP(vd, vn, vm uint8, arr insts.Arrangement) {
	width := arr.ElementBits()
	if width == 64 {
		s.pairwiseOp(vd, vn, vm, arr, floatBinary64(func(a, b float64) float64 { return a + b }))
		return
	}
	s.pairwiseOp(vd, vn, vm, arr, floatBinary32(func(a, b float32) float32 { return a + b }))
}

func (s *SIMD) pairwiseOp(vd, vn, vm uint8, arr insts.Arrangement, fn func(a, b uint64) uint64) {
	count, width := arr.Elements(), arr.ElementBits()
	half := count / 2
	results := make([]uint64, count)
	for i := 0; i < half; i++ {
		results[i] = fn(s.simd.lane(vn, 2*i, width), s.simd.lane(vn, 2*i+1, width))
	}
	for i := 0; i < half; i++ {
		results[half+i] = fn(s.simd.lane(vm, 2*i, width), s.simd.lane(vm, 2*i+1, width))
	}
	s.clearUpperIfD(vd, arr)
	for i, v := range results {
		s.simd.setLane(vd, i, width, v&maskLow(width))
	}
}

// VADDV reduces all lanes of vn to a scalar sum written to lane 0 of vd.
func (s *SIMD) VADDV(vd, vn uint8, arr insts.Arrangement) {
	count, width := arr.Elements(), arr.ElementBits()
	var sum uint64
	for i := 0; i < count; i++ {
		sum += s.simd.lane(vn, i, width)
	}
	s.simd.Write64(vd, sum&maskLow(width))
}

// VUADDLV reduces all lanes of vn to a widened (double-width) unsigned sum.
func (s *SIMD) VUADDLV(vd, vn uint8, arr insts.Arrangement) {
	count, width := arr.Elements(), arr.ElementBits()
	var sum uint64
	for i := 0; i < count; i++ {
		sum += s.simd.lane(vn, i, width)
	}
	s.simd.Write64(vd, sum)
}

// VCNT counts the number of set bits in each byte lane.
func (s *SIMD) VCNT(vd, vn uint8, arr insts.Arrangement) {
	s.unaryOp(vd, vn, arr, func(a uint64) uint64 {
		var n uint64
		for a != 0 {
			n += a & 1
			a >>= 1
		}
		return n
	})
}

// VXTN narrows each lane of vn to half width, placing the low half of the
// destination (the upper half, for the .2 forms, is left to the caller to
// fill via a second XTN2 decode path not modeled separately here).
func (s *SIMD) VXTN(vd, vn uint8, srcArr insts.Arrangement) {
	count, srcWidth := srcArr.Elements(), srcArr.ElementBits()
	dstWidth := srcWidth / 2
	for i := 0; i < count; i++ {
		v := s.simd.lane(vn, i, srcWidth) & maskLow(dstWidth)
		s.simd.setLane(vd, i, dstWidth, v)
	}
}

// VSHRN narrows each lane of vn by shifting right by shift then truncating
// to half width.
func (s *SIMD) VSHRN(vd, vn uint8, srcArr insts.Arrangement, shift uint8) {
	count, srcWidth := srcArr.Elements(), srcArr.ElementBits()
	dstWidth := srcWidth / 2
	for i := 0; i < count; i++ {
		v := (s.simd.lane(vn, i, srcWidth) >> shift) & maskLow(dstWidth)
		s.simd.setLane(vd, i, dstWidth, v)
	}
}

// VUSHLL/VSSHLL widen each lane of vn (the lower half-register) to double
// width then shift left by shift.
func (s *SIMD) VUSHLL(vd, vn uint8, dstArr insts.Arrangement, shift uint8) {
	count, dstWidth := dstArr.Elements(), dstArr.ElementBits()
	srcWidth := dstWidth / 2
	results := make([]uint64, count)
	for i := 0; i < count; i++ {
		v := s.simd.lane(vn, i, srcWidth)
		results[i] = (v << shift) & maskLow(dstWidth)
	}
	for i, v := range results {
		s.simd.setLane(vd, i, dstWidth, v)
	}
}

func (s *SIMD) VSSHLL(vd, vn uint8, dstArr insts.Arrangement, shift uint8) {
	count, dstWidth := dstArr.Elements(), dstArr.ElementBits()
	srcWidth := dstWidth / 2
	results := make([]uint64, count)
	for i := 0; i < count; i++ {
		v := uint64(signedLane(s.simd.lane(vn, i, srcWidth), srcWidth))
		results[i] = (v << shift) & maskLow(dstWidth)
	}
	for i, v := range results {
		s.simd.setLane(vd, i, dstWidth, v)
	}
}

// VUMULL/VSMULL widen-multiply the lower half-register lanes of vn/vm into
// full-width lanes of vd.
func (s *SIMD) VUMULL(vd, vn, vm uint8, dstArr insts.Arrangement) {
	count, dstWidth := dstArr.Elements(), dstArr.ElementBits()
	srcWidth := dstWidth / 2
	results := make([]uint64, count)
	for i := 0; i < count; i++ {
		a := s.simd.lane(vn, i, srcWidth)
		b := s.simd.lane(vm, i, srcWidth)
		results[i] = (a * b) & maskLow(dstWidth)
	}
	for i, v := range results {
		s.simd.setLane(vd, i, dstWidth, v)
	}
}

func (s *SIMD) VSMULL(vd, vn, vm uint8, dstArr insts.Arrangement) {
	count, dstWidth := dstArr.Elements(), dstArr.ElementBits()
	srcWidth := dstWidth / 2
	results := make([]uint64, count)
	for i := 0; i < count; i++ {
		a := signedLane(s.simd.lane(vn, i, srcWidth), srcWidth)
		b := signedLane(s.simd.lane(vm, i, srcWidth), srcWidth)
		results[i] = uint64(a*b) & maskLow(dstWidth)
	}
	for i, v := range results {
		s.simd.setLane(vd, i, dstWidth, v)
	}
}

// VUSHR/VSSHR/VSHL are shift-by-immediate ops.
func (s *SIMD) VUSHR(vd, vn uint8, arr insts.Arrangement, shift uint8) {
	s.unaryOp(vd, vn, arr, func(a uint64) uint64 { return a >> shift })
}

func (s *SIMD) VSSHR(vd, vn uint8, arr insts.Arrangement, shift uint8) {
	width := arr.ElementBits()
	s.unaryOp(vd, vn, arr, func(a uint64) uint64 {
		return uint64(signedLane(a, width) >> shift)
	})
}

func (s *SIMD) VSHL(vd, vn uint8, arr insts.Arrangement, shift uint8) {
	s.unaryOp(vd, vn, arr, func(a uint64) uint64 { return a << shift })
}

// VUSHLReg is the three-same register-form USHL/SSHL: each lane of vd is
// vn's lane shifted by the amount in the low byte of the corresponding vm
// lane, interpreted as signed. A non-negative amount shifts left; a
// negative amount shifts right by its magnitude, logically for the
// unsigned form and arithmetically (sign-extending) for the signed form.
// This is the register-form counterpart to the immediate-only VSHL/VUSHR/
// VSSHR above, which take their shift amount from the instruction instead
// of a vector lane.
func (s *SIMD) VUSHLReg(vd, vn, vm uint8, arr insts.Arrangement, signed bool) {
	width := arr.ElementBits()
	s.binaryOp(vd, vn, vm, arr, func(a, b uint64) uint64 {
		shift := int64(int8(uint8(b)))
		switch {
		case shift >= 0:
			return a << uint(shift)
		case signed:
			return uint64(signedLane(a, width) >> uint(-shift))
		default:
			return a >> uint(-shift)
		}
	})
}

// VFADD/VFSUB/VFMUL/VFDIV: vector floating-point arithmetic.
func (s *SIMD) VFADD(vd, vn, vm uint8, arr insts.Arrangement) {
	s.floatBinaryOp(vd, vn, vm, arr, func(a, b float32) float32 { return a + b }, func(a, b float64) float64 { return a + b })
}

func (s *SIMD) VFSUB(vd, vn, vm uint8, arr insts.Arrangement) {
	s.floatBinaryOp(vd, vn, vm, arr, func(a, b float32) float32 { return a - b }, func(a, b float64) float64 { return a - b })
}

func (s *SIMD) VFMUL(vd, vn, vm uint8, arr insts.Arrangement) {
	s.floatBinaryOp(vd, vn, vm, arr, func(a, b float32) float32 { return a * b }, func(a, b float64) float64 { return a * b })
}

func (s *SIMD) VFDIV(vd, vn, vm uint8, arr insts.Arrangement) {
	s.floatBinaryOp(vd, vn, vm, arr, func(a, b float32) float32 { return a / b }, func(a, b float64) float64 { return a / b })
}

// VFMLA performs fused-style multiply-accumulate: vd += vn*vm (element-wise,
// via the host's float ops rather than a true fused single rounding step).
func (s *SIMD) VFMLA(vd, vn, vm uint8, arr insts.Arrangement) {
	width := arr.ElementBits()
	count := arr.Elements()
	results := make([]uint64, count)
	for i := 0; i < count; i++ {
		accBits := s.simd.lane(vd, i, width)
		nBits := s.simd.lane(vn, i, width)
		mBits := s.simd.lane(vm, i, width)
		if width == 64 {
			acc := math.Float64frombits(accBits)
			n := math.Float64frombits(nBits)
			m := math.Float64frombits(mBits)
			results[i] = math.Float64bits(acc + n*m)
		} else {
			acc := math.Float32frombits(uint32(accBits))
			n := math.Float32frombits(uint32(nBits))
			m := math.Float32frombits(uint32(mBits))
			results[i] = uint64(math.Float32bits(acc + n*m))
		}
	}
	for i, v := range results {
		s.simd.setLane(vd, i, width, v)
	}
}

// VUZP1/VUZP2 deinterleave vn/vm's even (UZP1) or odd (UZP2) lanes into vd.
func (s *SIMD) VUZP1(vd, vn, vm uint8, arr insts.Arrangement) { s.unzip(vd, vn, vm, arr, 0) }
func (s *SIMD) VUZP2(vd, vn, vm uint8, arr insts.Arrangement) { s.unzip(vd, vn, vm, arr, 1) }

func (s *SIMD) unzip(vd, vn, vm uint8, arr insts.Arrangement, start int) {
	count, width := arr.Elements(), arr.ElementBits()
	half := count / 2
	results := make([]uint64, count)
	for i := 0; i < half; i++ {
		results[i] = s.simd.lane(vn, 2*i+start, width)
		results[half+i] = s.simd.lane(vm, 2*i+start, width)
	}
	s.clearUpperIfD(vd, arr)
	for i, v := range results {
		s.simd.setLane(vd, i, width, v)
	}
}

// VTRN1/VTRN2 interleave alternating lanes of vn/vm into vd.
func (s *SIMD) VTRN1(vd, vn, vm uint8, arr insts.Arrangement) { s.transpose(vd, vn, vm, arr, 0) }
func (s *SIMD) VTRN2(vd, vn, vm uint8, arr insts.Arrangement) { s.transpose(vd, vn, vm, arr, 1) }

func (s *SIMD) transpose(vd, vn, vm uint8, arr insts.Arrangement, start int) {
	count, width := arr.Elements(), arr.ElementBits()
	results := make([]uint64, count)
	for i := 0; i < count/2; i++ {
		results[2*i] = s.simd.lane(vn, 2*i+start, width)
		results[2*i+1] = s.simd.lane(vm, 2*i+start, width)
	}
	s.clearUpperIfD(vd, arr)
	for i, v := range results {
		s.simd.setLane(vd, i, width, v)
	}
}

// VZIP1/VZIP2 interleave the lower (ZIP1) or upper (ZIP2) halves of vn/vm.
func (s *SIMD) VZIP1(vd, vn, vm uint8, arr insts.Arrangement) { s.zip(vd, vn, vm, arr, 0) }
func (s *SIMD) VZIP2(vd, vn, vm uint8, arr insts.Arrangement) { s.zip(vd, vn, vm, arr, 1) }

func (s *SIMD) zip(vd, vn, vm uint8, arr insts.Arrangement, half int) {
	count, width := arr.Elements(), arr.ElementBits()
	base := half * (count / 2)
	results := make([]uint64, count)
	for i := 0; i < count/2; i++ {
		results[2*i] = s.simd.lane(vn, base+i, width)
		results[2*i+1] = s.simd.lane(vm, base+i, width)
	}
	s.clearUpperIfD(vd, arr)
	for i, v := range results {
		s.simd.setLane(vd, i, width, v)
	}
}

// VTBL performs a table lookup: each byte lane of vm selects a byte from the
// table formed by numRegs consecutive registers starting at vn (mod-32
// wrapping the way the real register file does), or zero if out of range.
func (s *SIMD) VTBL(vd, vn, vm uint8, numRegs uint8, arr insts.Arrangement) {
	count := arr.Elements()
	tableLen := int(numRegs) * 16
	results := make([]uint8, count)
	for i := 0; i < count; i++ {
		idx := int(s.simd.lane(vm, i, 8))
		if idx >= tableLen {
			results[i] = 0
			continue
		}
		reg := (int(vn) + idx/16) % 32
		lane := idx % 16
		results[i] = uint8(s.simd.lane(uint8(reg), lane, 8))
	}
	s.clearUpperIfD(vd, arr)
	for i, v := range results {
		s.simd.setLane(vd, i, 8, uint64(v))
	}
}

// EXT extracts a 16-byte window (8-byte for the non-Q form) starting at byte index idx from the {vn:vm}
// concatenation (vn low, vm high) into vd.
func (s *SIMD) EXT(vd, vn, vm uint8, idx uint8, arr insts.Arrangement) {
	width := 8
	total := 16
	if !arr.IsQ() {
		total = 8
	}
	results := make([]uint8, total)
	for i := 0; i < total; i++ {
		srcIdx := int(idx) + i
		if srcIdx < total {
			results[i] = uint8(s.simd.lane(vn, srcIdx, width))
		} else {
			results[i] = uint8(s.simd.lane(vm, srcIdx-total, width))
		}
	}
	s.clearUpperIfD(vd, arr)
	for i, v := range results {
		s.simd.setLane(vd, i, width, uint64(v))
	}
}

// DUP broadcasts a general-purpose register value into every lane of an
// arrangement (DUP general) or a single lane of vn into every lane of vd
// (DUP element, selected by ElemIndex on the caller side).
func (s *SIMD) DUPGeneral(vd, rn uint8, arr insts.Arrangement) {
	width := arr.ElementBits()
	v := s.regFile.ReadReg(rn) & maskLow(width)
	s.clearUpperIfD(vd, arr)
	for i := 0; i < arr.Elements(); i++ {
		s.simd.setLane(vd, i, width, v)
	}
}

func (s *SIMD) DUPElement(vd, vn uint8, elemIndex uint8, arr insts.Arrangement) {
	width := arr.ElementBits()
	v := s.simd.lane(vn, int(elemIndex), width)
	s.clearUpperIfD(vd, arr)
	for i := 0; i < arr.Elements(); i++ {
		s.simd.setLane(vd, i, width, v)
	}
}

// INS writes one lane of vd from a lane of vn (vector form) or from a
// general-purpose register (general form, rn is used as the source).
func (s *SIMD) INSElement(vd uint8, dstIndex uint8, vn uint8, srcIndex uint8, width int) {
	v := s.simd.lane(vn, int(srcIndex), width)
	s.simd.setLane(vd, int(dstIndex), width, v)
}

func (s *SIMD) INSGeneral(vd uint8, dstIndex uint8, rn uint8, width int) {
	v := s.regFile.ReadReg(rn) & maskLow(width)
	s.simd.setLane(vd, int(dstIndex), width, v)
}

// UMOV copies a lane to a general-purpose register, zero-extended.
func (s *SIMD) UMOV(rd, vn uint8, index uint8, width int) {
	s.regFile.WriteReg(rd, s.simd.lane(vn, int(index), width))
}

// SMOV copies a lane to a general-purpose register, sign-extended to is64's
// width.
func (s *SIMD) SMOV(rd, vn uint8, index uint8, width int, is64 bool) {
	v := signedLane(s.simd.lane(vn, int(index), width), width)
	if is64 {
		s.regFile.WriteReg(rd, uint64(v))
	} else {
		s.regFile.WriteReg(rd, uint64(uint32(v)))
	}
}

// LDRQ/STRQ load or store a full 128-bit Q register.
func (s *SIMD) LDRQ(vd uint8, addr uint64) error {
	lo, err := s.memory.Read64(addr)
	if err != nil {
		return err
	}
	hi, err := s.memory.Read64(addr + 8)
	if err != nil {
		return err
	}
	s.simd.WriteQ(vd, lo, hi)
	return nil
}

func (s *SIMD) STRQ(vd uint8, addr uint64) error {
	lo, hi := s.simd.ReadQ(vd)
	if err := s.memory.Write64(addr, lo); err != nil {
		return err
	}
	return s.memory.Write64(addr+8, hi)
}

// LDn/STn load or store an n-way interleaved structure of elemBits-wide
// elements starting at vd, one element per register per structure.
func (s *SIMD) LDn(vd uint8, addr uint64, numRegs uint8, arr insts.Arrangement) error {
	count, width := arr.Elements(), arr.ElementBits()
	stride := width / 8
	for elem := 0; elem < count; elem++ {
		for r := 0; r < int(numRegs); r++ {
			off := addr + uint64(elem*int(numRegs)*stride+r*stride)
			v, err := s.readWidth(off, width)
			if err != nil {
				return err
			}
			s.simd.setLane((vd+uint8(r))%32, elem, width, v)
		}
	}
	return nil
}

func (s *SIMD) STn(vd uint8, addr uint64, numRegs uint8, arr insts.Arrangement) error {
	count, width := arr.Elements(), arr.ElementBits()
	stride := width / 8
	for elem := 0; elem < count; elem++ {
		for r := 0; r < int(numRegs); r++ {
			off := addr + uint64(elem*int(numRegs)*stride+r*stride)
			v := s.simd.lane((vd+uint8(r))%32, elem, width)
			if err := s.writeWidth(off, width, v); err != nil {
				return err
			}
		}
	}
	return nil
}

// LDnR loads a single structure and replicates it across every lane of each
// of the numRegs destination registers.
func (s *SIMD) LDnR(vd uint8, addr uint64, numRegs uint8, arr insts.Arrangement) error {
	width := arr.ElementBits()
	for r := 0; r < int(numRegs); r++ {
		v, err := s.readWidth(addr+uint64(r*width/8), width)
		if err != nil {
			return err
		}
		dst := (vd + uint8(r)) % 32
		s.clearUpperIfD(dst, arr)
		for i := 0; i < arr.Elements(); i++ {
			s.simd.setLane(dst, i, width, v)
		}
	}
	return nil
}

func (s *SIMD) readWidth(addr uint64, width int) (uint64, error) {
	switch width {
	case 8:
		v, err := s.memory.Read8(addr)
		return uint64(v), err
	case 16:
		v, err := s.memory.Read16(addr)
		return uint64(v), err
	case 32:
		v, err := s.memory.Read32(addr)
		return uint64(v), err
	default:
		return s.memory.Read64(addr)
	}
}

func (s *SIMD) writeWidth(addr uint64, width int, v uint64) error {
	switch width {
	case 8:
		return s.memory.Write8(addr, uint8(v))
	case 16:
		return s.memory.Write16(addr, uint16(v))
	case 32:
		return s.memory.Write32(addr, uint32(v))
	default:
		return s.memory.Write64(addr, v)
	}
}

// VMOVI/VMVNI broadcast an expanded immediate across every lane of vd.
func (s *SIMD) VMOVI(vd uint8, pattern uint64, arr insts.Arrangement) {
	s.clearUpperIfD(vd, arr)
	width := arr.ElementBits()
	for i := 0; i < arr.Elements(); i++ {
		s.simd.setLane(vd, i, width, pattern&maskLow(width))
	}
}

func (s *SIMD) VMVNI(vd uint8, pattern uint64, arr insts.Arrangement) {
	s.VMOVI(vd, ^pattern, arr)
}
