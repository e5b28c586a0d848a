package emu

// SIMDRegFile holds the 32 vector/FP registers, each 128 bits wide, stored as
// low/high quadwords. Scalar FP instructions use the low 8/16/32/64 bits of
// the same register file as Dn/Sn/Hn.
type SIMDRegFile struct {
	V [32][2]uint64 // V[n][0] = bits 63:0, V[n][1] = bits 127:64
}

// ReadQ returns the full 128-bit value of Vn.
func (s *SIMDRegFile) ReadQ(n uint8) (lo, hi uint64) {
	return s.V[n][0], s.V[n][1]
}

// WriteQ writes the full 128-bit value of Vn.
func (s *SIMDRegFile) WriteQ(n uint8, lo, hi uint64) {
	s.V[n][0] = lo
	s.V[n][1] = hi
}

// Read64 reads the low 64 bits of Vn (Dn).
func (s *SIMDRegFile) Read64(n uint8) uint64 { return s.V[n][0] }

// Write64 writes the low 64 bits of Vn and zeroes bits 127:64, per the
// AArch64 rule that any write narrower than 128 bits clears the rest of the
// register.
func (s *SIMDRegFile) Write64(n uint8, v uint64) {
	s.V[n][0] = v
	s.V[n][1] = 0
}

// Read32 reads the low 32 bits of Vn (Sn).
func (s *SIMDRegFile) Read32(n uint8) uint32 { return uint32(s.V[n][0]) }

// Write32 writes the low 32 bits of Vn and zeroes the rest.
func (s *SIMDRegFile) Write32(n uint8, v uint32) {
	s.V[n][0] = uint64(v)
	s.V[n][1] = 0
}

// Read16 reads the low 16 bits of Vn (Hn).
func (s *SIMDRegFile) Read16(n uint8) uint16 { return uint16(s.V[n][0]) }

// Write16 writes the low 16 bits of Vn and zeroes the rest.
func (s *SIMDRegFile) Write16(n uint8, v uint16) {
	s.V[n][0] = uint64(v)
	s.V[n][1] = 0
}

// Read8 reads the low 8 bits of Vn (Bn).
func (s *SIMDRegFile) Read8(n uint8) uint8 { return uint8(s.V[n][0]) }

// Write8 writes the low 8 bits of Vn and zeroes the rest.
func (s *SIMDRegFile) Write8(n uint8, v uint8) {
	s.V[n][0] = uint64(v)
	s.V[n][1] = 0
}

// lane reads one element of width bits at lane index idx out of Vn.
func (s *SIMDRegFile) lane(n uint8, idx int, width int) uint64 {
	lo, hi := s.V[n][0], s.V[n][1]
	bitOff := idx * width
	if bitOff < 64 {
		if bitOff+width <= 64 {
			return extractBits(lo, bitOff, width)
		}
		low := lo >> bitOff
		highBits := width - (64 - bitOff)
		high := hi & maskLow(highBits)
		return low | (high << (64 - bitOff))
	}
	return extractBits(hi, bitOff-64, width)
}

// setLane writes one element of width bits at lane index idx into Vn,
// leaving all other lanes of the same register untouched (used by vector
// arithmetic, which stages results into a scratch buffer then copies back to
// avoid destination-equals-source read/write hazards).
func (s *SIMDRegFile) setLane(n uint8, idx int, width int, value uint64) {
	lo, hi := s.V[n][0], s.V[n][1]
	bitOff := idx * width
	v := value & maskLow(width)

	if bitOff < 64 {
		if bitOff+width <= 64 {
			lo = clearBits(lo, bitOff, width) | (v << bitOff)
		} else {
			lowWidth := 64 - bitOff
			lo = clearBits(lo, bitOff, lowWidth) | ((v & maskLow(lowWidth)) << bitOff)
			highWidth := width - lowWidth
			hi = clearBits(hi, 0, highWidth) | (v >> lowWidth)
		}
	} else {
		hi = clearBits(hi, bitOff-64, width) | (v << (bitOff - 64))
	}
	s.V[n][0], s.V[n][1] = lo, hi
}

func maskLow(width int) uint64 {
	if width >= 64 {
		return ^uint64(0)
	}
	return (uint64(1) << width) - 1
}

func extractBits(v uint64, off, width int) uint64 {
	return (v >> off) & maskLow(width)
}

func clearBits(v uint64, off, width int) uint64 {
	return v &^ (maskLow(width) << off)
}
