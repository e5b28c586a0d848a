package insts

// Scalar floating-point data-processing families.

func (d *Decoder) isFPDataProc(word uint32) bool {
	if bits(word, 24, 7) == 0b0011111 {
		return true // 3-source (FMADD family)
	}
	return bits(word, 24, 7) == 0b0011110
}

func precisionFromType(t uint32) FPPrecision {
	switch t {
	case 0b00:
		return FPSingle
	case 0b01:
		return FPDouble
	default:
		return FPHalf
	}
}

func (d *Decoder) decodeFPDataProc(word uint32, inst *Instruction) {
	if bits(word, 24, 7) == 0b0011111 {
		d.decodeFP3Src(word, inst)
		return
	}

	typ := bits(word, 22, 2)
	inst.Precision = precisionFromType(typ)

	// FMOV (scalar immediate)
	if bit(word, 21) == 1 && bits(word, 10, 3) == 0b100 && bits(word, 5, 5) == 0 {
		inst.Format = FormatFPImm
		inst.Op = OpFMOV
		imm8 := bits(word, 13, 8)
		rd := bits(word, 0, 5)
		inst.Rd = uint8(rd)
		inst.Imm = uint64(imm8)
		return
	}

	// Integer<->FP convert
	if bit(word, 21) == 1 && bits(word, 10, 6) == 0 {
		d.decodeFPIntConvert(word, inst)
		return
	}

	// 1-source
	if bit(word, 21) == 1 && bits(word, 10, 5) == 0b10000 {
		d.decodeFP1Src(word, inst)
		return
	}

	if bit(word, 21) != 1 {
		return
	}

	switch bits(word, 10, 2) {
	case 0b10:
		d.decodeFP2Src(word, inst)
	case 0b00:
		d.decodeFPCompare(word, inst)
	case 0b01:
		d.decodeFPCondCompare(word, inst)
	case 0b11:
		d.decodeFPCondSelect(word, inst)
	}
}

func (d *Decoder) decodeFP1Src(word uint32, inst *Instruction) {
	inst.Format = FormatFPDataProc1Src
	opcode := bits(word, 15, 6)
	rn := bits(word, 5, 5)
	rd := bits(word, 0, 5)
	inst.Rn = uint8(rn)
	inst.Rd = uint8(rd)

	switch opcode {
	case 0b000000:
		inst.Op = OpFMOV
	case 0b000001:
		inst.Op = OpFABS
	case 0b000010:
		inst.Op = OpFNEG
	case 0b000011:
		inst.Op = OpFSQRT
	case 0b000100:
		inst.Op = OpFCVT
		inst.Imm = uint64(FPSingle) // convert to single precision
	case 0b000101:
		inst.Op = OpFCVT
		inst.Imm = uint64(FPDouble) // convert to double precision
	case 0b000111:
		inst.Op = OpFCVT
		inst.Imm = uint64(FPHalf) // convert to half precision
	case 0b001100:
		inst.Op = OpFRINTA
	default:
		inst.Op = OpUnknown
		inst.Format = FormatUnknown
	}
}

func (d *Decoder) decodeFP2Src(word uint32, inst *Instruction) {
	inst.Format = FormatFPDataProc2Src
	opcode := bits(word, 12, 4)
	rm := bits(word, 16, 5)
	rn := bits(word, 5, 5)
	rd := bits(word, 0, 5)
	inst.Rm = uint8(rm)
	inst.Rn = uint8(rn)
	inst.Rd = uint8(rd)

	switch opcode {
	case 0b0000:
		inst.Op = OpFMUL
	case 0b0001:
		inst.Op = OpFDIV
	case 0b0010:
		inst.Op = OpFADD
	case 0b0011:
		inst.Op = OpFSUB
	default:
		inst.Op = OpUnknown
		inst.Format = FormatUnknown
	}
}

func (d *Decoder) decodeFPCompare(word uint32, inst *Instruction) {
	inst.Format = FormatFPCompare
	rm := bits(word, 16, 5)
	rn := bits(word, 5, 5)
	opcode2 := bits(word, 0, 5)

	inst.Rn = uint8(rn)
	inst.Rm = uint8(rm)
	if opcode2&0b01000 != 0 {
		inst.Rm = 0 // compare against zero; Rm field unused
		inst.CompareZero = true
	}
	if opcode2&0b10000 != 0 {
		inst.Op = OpFCMPE
	} else {
		inst.Op = OpFCMP
	}
}

func (d *Decoder) decodeFPCondCompare(word uint32, inst *Instruction) {
	inst.Format = FormatFPCondCompare
	rm := bits(word, 16, 5)
	cond := bits(word, 12, 4)
	rn := bits(word, 5, 5)
	nzcv := bits(word, 0, 4)

	inst.Rm = uint8(rm)
	inst.Rn = uint8(rn)
	inst.Cond = Cond(cond)
	inst.Imm = uint64(nzcv)
	inst.Op = OpFCCMP
}

func (d *Decoder) decodeFPCondSelect(word uint32, inst *Instruction) {
	inst.Format = FormatFPCondSelect
	rm := bits(word, 16, 5)
	cond := bits(word, 12, 4)
	rn := bits(word, 5, 5)
	rd := bits(word, 0, 5)

	inst.Rm = uint8(rm)
	inst.Rn = uint8(rn)
	inst.Rd = uint8(rd)
	inst.Cond = Cond(cond)
	inst.Op = OpFCSEL
}

func (d *Decoder) decodeFPIntConvert(word uint32, inst *Instruction) {
	inst.Format = FormatFPIntConvert
	sf := bit(word, 31)
	rmode := bits(word, 19, 2)
	opcode := bits(word, 16, 3)
	rn := bits(word, 5, 5)
	rd := bits(word, 0, 5)

	inst.Is64Bit = sf == 1
	inst.Rn = uint8(rn)
	inst.Rd = uint8(rd)

	switch {
	case rmode == 0b00 && opcode == 0b010:
		inst.Op = OpSCVTF
	case rmode == 0b00 && opcode == 0b011:
		inst.Op = OpUCVTF
	case rmode == 0b11 && opcode == 0b000:
		inst.Op = OpFCVTZS
	case rmode == 0b11 && opcode == 0b001:
		inst.Op = OpFCVTZU
	case rmode == 0b00 && opcode == 0b100:
		inst.Op = OpFCVTAS
	case rmode == 0b00 && opcode == 0b101:
		inst.Op = OpFCVTAU
	case rmode == 0b00 && opcode == 0b110:
		inst.Op = OpFMOV // general -> FP (Vd = Rn's raw bits)
	case rmode == 0b00 && opcode == 0b111:
		inst.Op = OpFMOV // FP -> general (Rd = Vn's raw bits)
		inst.FPToGP = true
	case rmode == 0b01 && opcode == 0b110:
		inst.Op = OpFMOV // general -> Vn.D[1] (high half of 128-bit)
		inst.FPHighHalf = true
	case rmode == 0b01 && opcode == 0b111:
		inst.Op = OpFMOV // Vn.D[1] -> general
		inst.FPToGP = true
		inst.FPHighHalf = true
	default:
		inst.Op = OpUnknown
		inst.Format = FormatUnknown
	}
}

func (d *Decoder) decodeFP3Src(word uint32, inst *Instruction) {
	inst.Format = FormatFPDataProc3Src
	typ := bits(word, 22, 2)
	o1 := bit(word, 21)
	rm := bits(word, 16, 5)
	o0 := bit(word, 15)
	ra := bits(word, 10, 5)
	rn := bits(word, 5, 5)
	rd := bits(word, 0, 5)

	inst.Precision = precisionFromType(typ)
	inst.Rm = uint8(rm)
	inst.Ra = uint8(ra)
	inst.Rn = uint8(rn)
	inst.Rd = uint8(rd)

	switch {
	case o1 == 0 && o0 == 0:
		inst.Op = OpFMADD
	case o1 == 0 && o0 == 1:
		inst.Op = OpFMSUB
	case o1 == 1 && o0 == 0:
		inst.Op = OpFNMADD
	case o1 == 1 && o0 == 1:
		inst.Op = OpFNMSUB
	}
}
