package insts

// Register-form data-processing families: conditional select/compare,
// 1/2/3-source data processing, shifted/extended add-sub, shifted logical.

func (d *Decoder) isConditionalSelect(word uint32) bool {
	return bits(word, 21, 8) == 0b11010100 && bit(word, 29) == 0 && bit(word, 11) == 0
}

func (d *Decoder) decodeConditionalSelect(word uint32, inst *Instruction) {
	inst.Format = FormatCondSelect
	sf := bit(word, 31)
	op := bit(word, 30)
	rm := bits(word, 16, 5)
	cond := bits(word, 12, 4)
	op2 := bits(word, 10, 2)
	rn := bits(word, 5, 5)
	rd := bits(word, 0, 5)

	inst.Is64Bit = sf == 1
	inst.Rm = uint8(rm)
	inst.Rn = uint8(rn)
	inst.Rd = uint8(rd)
	inst.Cond = Cond(cond)

	switch {
	case op == 0 && op2 == 0b00:
		inst.Op = OpCSEL
	case op == 0 && op2 == 0b01:
		inst.Op = OpCSINC
	case op == 1 && op2 == 0b00:
		inst.Op = OpCSINV
	case op == 1 && op2 == 0b01:
		inst.Op = OpCSNEG
	}
}

func (d *Decoder) isConditionalCompare(word uint32) bool {
	return bits(word, 21, 8) == 0b11010010 && bit(word, 29) == 1 && bit(word, 10) == 0 && bit(word, 4) == 0
}

func (d *Decoder) decodeConditionalCompare(word uint32, inst *Instruction) {
	inst.Format = FormatCondCmp
	sf := bit(word, 31)
	op := bit(word, 30)
	useImm := bit(word, 11) == 1
	operand2 := bits(word, 16, 5)
	cond := bits(word, 12, 4)
	rn := bits(word, 5, 5)
	nzcv := bits(word, 0, 4)

	inst.Is64Bit = sf == 1
	inst.Rn = uint8(rn)
	inst.Cond = Cond(cond)
	inst.Imm = uint64(nzcv)
	inst.CCUseImm = useImm
	if useImm {
		inst.Imm2 = uint64(operand2)
	} else {
		inst.Rm = uint8(operand2)
	}

	if op == 0 {
		inst.Op = OpCCMN
	} else {
		inst.Op = OpCCMP
	}
}

func (d *Decoder) isDataProc3Src(word uint32) bool {
	return bits(word, 24, 5) == 0b11011
}

func (d *Decoder) decodeDataProc3Src(word uint32, inst *Instruction) {
	inst.Format = FormatDataProc3Src
	sf := bit(word, 31)
	op31 := bits(word, 21, 3)
	rm := bits(word, 16, 5)
	o0 := bit(word, 15)
	ra := bits(word, 10, 5)
	rn := bits(word, 5, 5)
	rd := bits(word, 0, 5)

	inst.Is64Bit = sf == 1
	inst.Rm = uint8(rm)
	inst.Ra = uint8(ra)
	inst.Rn = uint8(rn)
	inst.Rd = uint8(rd)

	switch op31 {
	case 0b000:
		if o0 == 0 {
			inst.Op = OpMADD
		} else {
			inst.Op = OpMSUB
		}
	case 0b001:
		if o0 == 0 {
			inst.Op = OpSMADDL
		} else {
			inst.Op = OpSMSUBL
		}
	case 0b010:
		inst.Op = OpSMULH
	case 0b101:
		if o0 == 0 {
			inst.Op = OpUMADDL
		} else {
			inst.Op = OpUMSUBL
		}
	case 0b110:
		inst.Op = OpUMULH
	}
}

func (d *Decoder) isDataProc1Src(word uint32) bool {
	return bits(word, 21, 8) == 0b11010110 && bit(word, 30) == 1 && bit(word, 29) == 0
}

func (d *Decoder) decodeDataProc1Src(word uint32, inst *Instruction) {
	inst.Format = FormatDataProc1Src
	sf := bit(word, 31)
	opcode := bits(word, 10, 6)
	rn := bits(word, 5, 5)
	rd := bits(word, 0, 5)

	inst.Is64Bit = sf == 1
	inst.Rn = uint8(rn)
	inst.Rd = uint8(rd)

	switch opcode {
	case 0b000000:
		inst.Op = OpRBIT
	case 0b000001:
		inst.Op = OpREV16
	case 0b000010:
		if sf == 1 {
			inst.Op = OpREV32
		} else {
			inst.Op = OpREV
		}
	case 0b000011:
		inst.Op = OpREV
	case 0b000100:
		inst.Op = OpCLZ
	case 0b000101:
		inst.Op = OpCLS
	}
}

func (d *Decoder) isDataProc2Src(word uint32) bool {
	return bits(word, 21, 8) == 0b11010110 && bit(word, 30) == 0 && bit(word, 29) == 0
}

func (d *Decoder) decodeDataProc2Src(word uint32, inst *Instruction) {
	inst.Format = FormatDataProc2Src
	sf := bit(word, 31)
	rm := bits(word, 16, 5)
	opcode := bits(word, 10, 6)
	rn := bits(word, 5, 5)
	rd := bits(word, 0, 5)

	inst.Is64Bit = sf == 1
	inst.Rm = uint8(rm)
	inst.Rn = uint8(rn)
	inst.Rd = uint8(rd)

	switch opcode {
	case 0b000010:
		inst.Op = OpUDIV
	case 0b000011:
		inst.Op = OpSDIV
	case 0b001000:
		inst.Op = OpLSLV
	case 0b001001:
		inst.Op = OpLSRV
	case 0b001010:
		inst.Op = OpASRV
	case 0b001011:
		inst.Op = OpRORV
	}
}

func (d *Decoder) isAddSubShifted(word uint32) bool {
	return bits(word, 24, 5) == 0b01011 && bit(word, 21) == 0
}

func (d *Decoder) decodeAddSubShifted(word uint32, inst *Instruction) {
	inst.Format = FormatDPReg
	sf := bit(word, 31)
	op := bit(word, 30)
	s := bit(word, 29)
	shift := bits(word, 22, 2)
	rm := bits(word, 16, 5)
	imm6 := bits(word, 10, 6)
	rn := bits(word, 5, 5)
	rd := bits(word, 0, 5)

	inst.Is64Bit = sf == 1
	inst.SetFlags = s == 1
	inst.Rm = uint8(rm)
	inst.Rn = uint8(rn)
	inst.Rd = uint8(rd)
	inst.ShiftType = ShiftType(shift)
	inst.ShiftAmount = uint8(imm6)

	if op == 0 {
		inst.Op = OpADD
	} else {
		inst.Op = OpSUB
	}
}

func (d *Decoder) isAddSubExtended(word uint32) bool {
	return bits(word, 24, 5) == 0b01011 && bit(word, 21) == 1
}

func (d *Decoder) decodeAddSubExtended(word uint32, inst *Instruction) {
	inst.Format = FormatDPReg
	sf := bit(word, 31)
	op := bit(word, 30)
	s := bit(word, 29)
	rm := bits(word, 16, 5)
	option := bits(word, 13, 3)
	imm3 := bits(word, 10, 3)
	rn := bits(word, 5, 5)
	rd := bits(word, 0, 5)

	inst.Is64Bit = sf == 1
	inst.SetFlags = s == 1
	inst.Rm = uint8(rm)
	inst.Rn = uint8(rn)
	inst.Rd = uint8(rd)
	inst.HasExtend = true
	inst.ExtendType = ExtendType(option)
	inst.ShiftAmount = uint8(imm3)

	if op == 0 {
		inst.Op = OpADD
	} else {
		inst.Op = OpSUB
	}
}

func (d *Decoder) isLogicalShifted(word uint32) bool {
	return bits(word, 24, 5) == 0b01010
}

func (d *Decoder) decodeLogicalShifted(word uint32, inst *Instruction) {
	inst.Format = FormatDPReg
	sf := bit(word, 31)
	opc := bits(word, 29, 2)
	shift := bits(word, 22, 2)
	n := bit(word, 21)
	rm := bits(word, 16, 5)
	imm6 := bits(word, 10, 6)
	rn := bits(word, 5, 5)
	rd := bits(word, 0, 5)

	inst.Is64Bit = sf == 1
	inst.Rm = uint8(rm)
	inst.Rn = uint8(rn)
	inst.Rd = uint8(rd)
	inst.ShiftType = ShiftType(shift)
	inst.ShiftAmount = uint8(imm6)

	switch {
	case opc == 0b00 && n == 0:
		inst.Op = OpAND
	case opc == 0b00 && n == 1:
		inst.Op = OpBIC
	case opc == 0b01 && n == 0:
		inst.Op = OpORR
	case opc == 0b01 && n == 1:
		inst.Op = OpORN
	case opc == 0b10 && n == 0:
		inst.Op = OpEOR
	case opc == 0b10 && n == 1:
		inst.Op = OpEON
	case opc == 0b11 && n == 0:
		inst.Op = OpAND
		inst.SetFlags = true
	case opc == 0b11 && n == 1:
		inst.Op = OpBIC
		inst.SetFlags = true
	}
}
