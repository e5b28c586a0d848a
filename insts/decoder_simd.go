package insts

// Advanced SIMD (vector) instruction families. All share bit28 == 0
// (distinguishing them from the scalar FP data-processing class, which has
// bit28 == 1), and bit30 == Q selecting the 64-bit vs 128-bit arrangement.

func arrangementFromSizeQ(size uint32, q uint32) Arrangement {
	switch size {
	case 0b00:
		if q == 1 {
			return Arr16B
		}
		return Arr8B
	case 0b01:
		if q == 1 {
			return Arr8H
		}
		return Arr4H
	case 0b10:
		if q == 1 {
			return Arr4S
		}
		return Arr2S
	case 0b11:
		if q == 1 {
			return Arr2D
		}
		return Arr1D
	}
	return Arr8B
}

func (d *Decoder) isSIMDModifiedImm(word uint32) bool {
	return bit(word, 28) == 0 && bits(word, 24, 5) == 0b01111 && bits(word, 19, 5) == 0
}

func (d *Decoder) decodeSIMDModifiedImm(word uint32, inst *Instruction) {
	inst.Format = FormatSIMDModifiedImm
	q := bit(word, 30)
	op := bit(word, 29)
	abc := bits(word, 16, 3)
	cmode := bits(word, 12, 4)
	defgh := bits(word, 5, 5)
	rd := bits(word, 0, 5)

	imm8 := (abc << 5) | defgh
	inst.Imm = uint64(imm8)
	inst.Shift = uint8(cmode) // stashed for advSIMDExpandImm at execute time
	inst.Rd = uint8(rd)

	if q == 1 {
		inst.Arrangement = Arr16B
	} else {
		inst.Arrangement = Arr8B
	}
	switch {
	case cmode&0b1000 == 0:
		inst.Arrangement = arrangementFromSizeQ(0b10, uint32(q))
	case cmode&0b1100 == 0b1000:
		inst.Arrangement = arrangementFromSizeQ(0b01, uint32(q))
	}

	if op == 1 && cmode == 0b1110 {
		inst.Op = OpVMVNI // MOVI with per-byte mask form reuses this slot; left as VMOVI below
	}
	if op == 1 {
		inst.Op = OpVMVNI
	} else {
		inst.Op = OpVMOVI
	}
}

func (d *Decoder) isSIMDCopy(word uint32) bool {
	return bit(word, 28) == 0 && bits(word, 24, 5) == 0b01110 && bit(word, 21) == 0 && bit(word, 10) == 1
}

func (d *Decoder) decodeSIMDCopy(word uint32, inst *Instruction) {
	inst.Format = FormatSIMDCopy
	q := bit(word, 30)
	op := bit(word, 29)
	imm5 := bits(word, 16, 5)
	imm4 := bits(word, 11, 4)
	rn := bits(word, 5, 5)
	rd := bits(word, 0, 5)

	inst.Rn = uint8(rn)
	inst.Rd = uint8(rd)

	size, index := decodeElemFromImm5(imm5)
	inst.Arrangement = elemArrangement(size)
	inst.ElemIndex = uint8(index)

	switch {
	case op == 0 && imm4 == 0b0000:
		inst.Op = OpDUP // DUP (element)
	case op == 0 && imm4 == 0b0001:
		inst.Op = OpDUP // DUP (general register)
		inst.FromGeneral = true
	case op == 0 && imm4 == 0b0101:
		inst.Op = OpSMOV
		inst.Is64Bit = q == 1
	case op == 0 && imm4 == 0b0111:
		inst.Op = OpUMOV
	case op == 1 && imm4 == 0b0001:
		inst.Op = OpINS // INS (general register)
		inst.Is64Bit = q == 1
		inst.FromGeneral = true
	case op == 1:
		inst.Op = OpINS // INS (element), source lane from Rm field reused as imm4 upper bits
		srcSize, srcIndex := decodeElemFromImm5(imm4 << 1)
		_ = srcSize
		inst.ElemIndex2 = uint8(srcIndex)
	}
}

func decodeElemFromImm5(imm5 uint32) (size, index uint32) {
	switch {
	case imm5&1 == 1:
		return 0, imm5 >> 1
	case imm5&2 == 2:
		return 1, imm5 >> 2
	case imm5&4 == 4:
		return 2, imm5 >> 3
	case imm5&8 == 8:
		return 3, imm5 >> 4
	}
	return 0, 0
}

func elemArrangement(size uint32) Arrangement {
	switch size {
	case 0:
		return ArrB
	case 1:
		return ArrH
	case 2:
		return ArrS
	default:
		return ArrD
	}
}

func (d *Decoder) isSIMDAcrossLanes(word uint32) bool {
	return bit(word, 28) == 0 && bits(word, 24, 5) == 0b01110 && bits(word, 17, 5) == 0b11000
}

func (d *Decoder) decodeSIMDAcrossLanes(word uint32, inst *Instruction) {
	inst.Format = FormatSIMDAcrossLanes
	q := bit(word, 30)
	u := bit(word, 29)
	size := bits(word, 22, 2)
	opcode := bits(word, 12, 5)
	rn := bits(word, 5, 5)
	rd := bits(word, 0, 5)

	inst.Rn = uint8(rn)
	inst.Rd = uint8(rd)
	inst.Arrangement = arrangementFromSizeQ(size, uint32(q))

	switch {
	case opcode == 0b11011 && u == 0:
		inst.Op = OpVADDV
	case opcode == 0b00011 && u == 1:
		inst.Op = OpVUADDLV
	default:
		inst.Op = OpUnknown
		inst.Format = FormatUnknown
	}
}

func (d *Decoder) isSIMDThreeSame(word uint32) bool {
	return bit(word, 28) == 0 && bits(word, 24, 5) == 0b01110 && bit(word, 21) == 1 && bit(word, 10) == 1
}

func (d *Decoder) decodeSIMDThreeSame(word uint32, inst *Instruction) {
	inst.Format = FormatSIMDThreeSame
	q := bit(word, 30)
	u := bit(word, 29)
	size := bits(word, 22, 2)
	rm := bits(word, 16, 5)
	opcode := bits(word, 11, 5)
	rn := bits(word, 5, 5)
	rd := bits(word, 0, 5)

	inst.Rm = uint8(rm)
	inst.Rn = uint8(rn)
	inst.Rd = uint8(rd)
	inst.Arrangement = arrangementFromSizeQ(size, uint32(q))

	isFP := size&0b10 != 0 && (opcode == 0b11010 || opcode == 0b11011 || opcode == 0b11111 || opcode == 0b11001 || opcode == 0b10101)

	switch {
	case opcode == 0b10000 && u == 0:
		inst.Op = OpVADD
	case opcode == 0b10000 && u == 1:
		inst.Op = OpVSUB
	case opcode == 0b00011 && u == 0:
		inst.Op = OpVAND
		if size&0b01 == 1 {
			inst.Op = OpVBIC
		}
	case opcode == 0b00011 && u == 1:
		inst.Op = OpVORR
		if size&0b01 == 1 {
			inst.Op = OpVORN
		}
	case opcode == 0b00011:
		inst.Op = OpVAND
	case opcode == 0b10001 && u == 0:
		inst.Op = OpVCMGT
	case opcode == 0b10001 && u == 1:
		inst.Op = OpVCMHS
	case opcode == 0b10011 && u == 0:
		inst.Op = OpVCMEQ
	case opcode == 0b10011 && u == 1:
		inst.Op = OpVCMEQ
	case opcode == 0b10111 && u == 0:
		inst.Op = OpVMUL
	case opcode == 0b10111 && u == 1:
		inst.Op = OpVMLS
	case opcode == 0b10111:
		inst.Op = OpVMUL
	case opcode == 0b10101 && u == 0:
		inst.Op = OpVADDP
	case opcode == 0b10101:
		inst.Op = OpVADDP
	case opcode == 0b11010 && isFP:
		inst.Op = OpVFADD
		if u == 1 {
			inst.Op = OpVFSUB
		}
	case opcode == 0b11011 && isFP:
		inst.Op = OpVFMLA
	case opcode == 0b11001 && isFP:
		inst.Op = OpVFMUL
	case opcode == 0b11111 && isFP:
		inst.Op = OpVFDIV
	case opcode == 0b10100 && u == 1:
		inst.Op = OpVUMAXP
	case opcode == 0b10110 && u == 1:
		inst.Op = OpVUMINP
	case opcode == 0b00100 && u == 0:
		inst.Op = OpVEOR
	case opcode == 0b00101 && u == 0:
		inst.Op = OpVBSL
	case opcode == 0b00100 && u == 1:
		inst.Op = OpVBIT
	case opcode == 0b00101 && u == 1:
		inst.Op = OpVBIF
	case opcode == 0b01000 && u == 0:
		inst.Op = OpVSSHL
	case opcode == 0b01000 && u == 1:
		inst.Op = OpVUSHL
	default:
		inst.Op = OpUnknown
		inst.Format = FormatUnknown
	}
}

func (d *Decoder) isSIMDTwoReg(word uint32) bool {
	return bit(word, 28) == 0 && bits(word, 24, 5) == 0b01110 && bits(word, 17, 5) == 0b10000
}

func (d *Decoder) decodeSIMDTwoReg(word uint32, inst *Instruction) {
	inst.Format = FormatSIMDTwoReg
	q := bit(word, 30)
	u := bit(word, 29)
	size := bits(word, 22, 2)
	opcode := bits(word, 12, 5)
	rn := bits(word, 5, 5)
	rd := bits(word, 0, 5)

	inst.Rn = uint8(rn)
	inst.Rd = uint8(rd)
	inst.Arrangement = arrangementFromSizeQ(size, uint32(q))

	switch {
	case opcode == 0b00101 && u == 0:
		inst.Op = OpVCNT
	case opcode == 0b10010 && u == 0:
		inst.Op = OpVXTN
	case opcode == 0b11010 && u == 0:
		inst.Op = OpVFADDP // FADDP (two-reg form, e.g. faddp scalar) approximated here
	default:
		inst.Op = OpUnknown
		inst.Format = FormatUnknown
	}
}

func (d *Decoder) isSIMDShiftImm(word uint32) bool {
	return bit(word, 28) == 0 && bits(word, 23, 6) == 0b011110
}

func (d *Decoder) decodeSIMDShiftImm(word uint32, inst *Instruction) {
	inst.Format = FormatSIMDShiftImm
	q := bit(word, 30)
	u := bit(word, 29)
	immh := bits(word, 19, 4)
	immb := bits(word, 16, 3)
	opcode := bits(word, 11, 5)
	rn := bits(word, 5, 5)
	rd := bits(word, 0, 5)

	inst.Rn = uint8(rn)
	inst.Rd = uint8(rd)

	var esize uint32
	switch {
	case immh&0b1000 != 0:
		esize = 64
	case immh&0b0100 != 0:
		esize = 32
	case immh&0b0010 != 0:
		esize = 16
	default:
		esize = 8
	}
	switch esize {
	case 8:
		inst.Arrangement = arrangementFromSizeQ(0b00, uint32(q))
	case 16:
		inst.Arrangement = arrangementFromSizeQ(0b01, uint32(q))
	case 32:
		inst.Arrangement = arrangementFromSizeQ(0b10, uint32(q))
	case 64:
		inst.Arrangement = arrangementFromSizeQ(0b11, uint32(q))
	}

	immhb := (immh << 3) | immb
	switch opcode {
	case 0b00000:
		inst.Imm = uint64(2*esize) - uint64(immhb) // USHR/SSHR shift = esize*2 - immhb
		if u == 0 {
			inst.Op = OpVSSHR
		} else {
			inst.Op = OpVUSHR
		}
	case 0b01010:
		inst.Imm = uint64(immhb) - uint64(esize) // SHL shift = immhb - esize
		inst.Op = OpVSHL
	case 0b10100:
		inst.Imm = uint64(immhb) - uint64(esize)
		if u == 0 {
			inst.Op = OpVSSHLL
		} else {
			inst.Op = OpVUSHLL
		}
	case 0b10000:
		inst.Imm = uint64(2*esize) - uint64(immhb)
		inst.Op = OpVSHRN
	default:
		inst.Op = OpUnknown
		inst.Format = FormatUnknown
	}
}

func (d *Decoder) isSIMDExtract(word uint32) bool {
	return bits(word, 24, 6) == 0b101110 && bits(word, 22, 2) == 0 && bit(word, 15) == 0
}

func (d *Decoder) decodeSIMDExtract(word uint32, inst *Instruction) {
	inst.Format = FormatSIMDExtract
	inst.Op = OpEXT
	q := bit(word, 30)
	rm := bits(word, 16, 5)
	imm4 := bits(word, 11, 4)
	rn := bits(word, 5, 5)
	rd := bits(word, 0, 5)

	inst.Rm = uint8(rm)
	inst.Rn = uint8(rn)
	inst.Rd = uint8(rd)
	inst.Imm = uint64(imm4)
	if q == 1 {
		inst.Arrangement = Arr16B
	} else {
		inst.Arrangement = Arr8B
	}
}

func (d *Decoder) isSIMDTableLookup(word uint32) bool {
	return bit(word, 28) == 0 && bits(word, 24, 5) == 0b01110 && bits(word, 21, 2) == 0b00 && bit(word, 10) == 0 && bits(word, 12, 2) == 0b00
}

func (d *Decoder) decodeSIMDTableLookup(word uint32, inst *Instruction) {
	inst.Format = FormatSIMDTableLookup
	q := bit(word, 30)
	rm := bits(word, 16, 5)
	rn := bits(word, 5, 5)
	rd := bits(word, 0, 5)

	inst.Op = OpVTBL
	inst.Rm = uint8(rm)
	inst.Rn = uint8(rn)
	inst.Rd = uint8(rd)
	inst.NumRegs = 1
	if q == 1 {
		inst.Arrangement = Arr16B
	} else {
		inst.Arrangement = Arr8B
	}
}

func (d *Decoder) isSIMDPermute(word uint32) bool {
	return bit(word, 28) == 0 && bits(word, 24, 5) == 0b01110 && bit(word, 21) == 0 && bit(word, 10) == 0 && bits(word, 11, 1) == 0 && bits(word, 20, 1) != 2
}

func (d *Decoder) decodeSIMDPermute(word uint32, inst *Instruction) {
	inst.Format = FormatSIMDPermute
	q := bit(word, 30)
	size := bits(word, 22, 2)
	rm := bits(word, 16, 5)
	opcode := bits(word, 12, 3)
	rn := bits(word, 5, 5)
	rd := bits(word, 0, 5)

	inst.Rm = uint8(rm)
	inst.Rn = uint8(rn)
	inst.Rd = uint8(rd)
	inst.Arrangement = arrangementFromSizeQ(size, uint32(q))

	switch opcode {
	case 0b001:
		inst.Op = OpVUZP1
	case 0b101:
		inst.Op = OpVUZP2
	case 0b010:
		inst.Op = OpVTRN1
	case 0b110:
		inst.Op = OpVTRN2
	case 0b011:
		inst.Op = OpVZIP1
	case 0b111:
		inst.Op = OpVZIP2
	default:
		inst.Op = OpUnknown
		inst.Format = FormatUnknown
	}
}
