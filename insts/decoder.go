package insts

// Decoder decodes AArch64 machine code into Instruction values.
type Decoder struct{}

// NewDecoder creates a new AArch64 instruction decoder.
func NewDecoder() *Decoder {
	return &Decoder{}
}

func bits(word uint32, lo, length uint) uint32 {
	return (word >> lo) & ((1 << length) - 1)
}

func bit(word uint32, n uint) uint32 {
	return (word >> n) & 1
}

func signExtend32(value uint32, signBit uint) int64 {
	v := int64(value)
	mask := int64(1) << signBit
	v = (v ^ mask) - mask
	return v
}

// Decode decodes a single 32-bit little-endian AArch64 instruction word.
func (d *Decoder) Decode(word uint32) *Instruction {
	inst := &Instruction{Op: OpUnknown, Format: FormatUnknown}

	switch {
	case word == 0:
		d.decodeUDF(word, inst)
	case d.isExceptionGen(word):
		d.decodeExceptionGen(word, inst)
	case d.isSystemMove(word):
		d.decodeSystemMove(word, inst)
	case d.isHintOrBarrier(word):
		d.decodeHintOrBarrier(word, inst)
	case d.isPCRel(word):
		d.decodePCRel(word, inst)
	case d.isAddSubImm(word):
		d.decodeAddSubImm(word, inst)
	case d.isLogicalImm(word):
		d.decodeLogicalImm(word, inst)
	case d.isMoveWide(word):
		d.decodeMoveWide(word, inst)
	case d.isBitfield(word):
		d.decodeBitfield(word, inst)
	case d.isExtract(word):
		d.decodeExtract(word, inst)
	case d.isUnconditionalBranchImm(word):
		d.decodeUnconditionalBranchImm(word, inst)
	case d.isCompareBranch(word):
		d.decodeCompareBranch(word, inst)
	case d.isTestBranch(word):
		d.decodeTestBranch(word, inst)
	case d.isConditionalBranch(word):
		d.decodeConditionalBranch(word, inst)
	case d.isUnconditionalBranchReg(word):
		d.decodeUnconditionalBranchReg(word, inst)
	case d.isLoadStoreExclusive(word):
		d.decodeLoadStoreExclusive(word, inst)
	case d.isLoadStoreLiteral(word):
		d.decodeLoadStoreLiteral(word, inst)
	case d.isLoadStorePair(word):
		d.decodeLoadStorePair(word, inst)
	case d.isLoadStoreRegOffset(word):
		d.decodeLoadStoreRegOffset(word, inst)
	case d.isLoadStoreImmUnscaled(word):
		d.decodeLoadStoreImmUnscaled(word, inst)
	case d.isLoadStoreImmUnsigned(word):
		d.decodeLoadStoreImmUnsigned(word, inst)
	case d.isConditionalSelect(word):
		d.decodeConditionalSelect(word, inst)
	case d.isConditionalCompare(word):
		d.decodeConditionalCompare(word, inst)
	case d.isDataProc3Src(word):
		d.decodeDataProc3Src(word, inst)
	case d.isDataProc1Src(word):
		d.decodeDataProc1Src(word, inst)
	case d.isDataProc2Src(word):
		d.decodeDataProc2Src(word, inst)
	case d.isAddSubExtended(word):
		d.decodeAddSubExtended(word, inst)
	case d.isAddSubShifted(word):
		d.decodeAddSubShifted(word, inst)
	case d.isLogicalShifted(word):
		d.decodeLogicalShifted(word, inst)
	case d.isFPDataProc(word):
		d.decodeFPDataProc(word, inst)
	case d.isSIMDModifiedImm(word):
		d.decodeSIMDModifiedImm(word, inst)
	case d.isSIMDCopy(word):
		d.decodeSIMDCopy(word, inst)
	case d.isSIMDAcrossLanes(word):
		d.decodeSIMDAcrossLanes(word, inst)
	case d.isSIMDThreeSame(word):
		d.decodeSIMDThreeSame(word, inst)
	case d.isSIMDTwoReg(word):
		d.decodeSIMDTwoReg(word, inst)
	case d.isSIMDShiftImm(word):
		d.decodeSIMDShiftImm(word, inst)
	case d.isSIMDExtract(word):
		d.decodeSIMDExtract(word, inst)
	case d.isSIMDPermute(word):
		d.decodeSIMDPermute(word, inst)
	case d.isSIMDTableLookup(word):
		d.decodeSIMDTableLookup(word, inst)
	case d.isSIMDLoadStoreStruct(word):
		d.decodeSIMDLoadStoreStruct(word, inst)
	}

	return inst
}

// ---- UDF / exception generation -------------------------------------------

func (d *Decoder) decodeUDF(word uint32, inst *Instruction) {
	inst.Format = FormatUDF
	inst.Op = OpUDF
	inst.Imm = uint64(bits(word, 0, 16))
}

func (d *Decoder) isExceptionGen(word uint32) bool {
	return bits(word, 24, 8) == 0xD4
}

func (d *Decoder) decodeExceptionGen(word uint32, inst *Instruction) {
	opc := bits(word, 21, 3)
	ll := bits(word, 0, 2)
	imm16 := bits(word, 5, 16)
	inst.Imm = uint64(imm16)
	if opc == 0 && ll == 1 {
		inst.Format = FormatSVC
		inst.Op = OpSVC
		return
	}
	if opc == 1 && ll == 0 {
		inst.Format = FormatSVC
		inst.Op = OpBRK
		return
	}
	// Other exception-generating encodings (HLT, DCPS*, SMC) are unsupported.
}

// ---- MRS/MSR (system register move) ---------------------------------------

func (d *Decoder) isSystemMove(word uint32) bool {
	top := bits(word, 20, 12)
	return top == 0xD53 || top == 0xD51
}

func (d *Decoder) decodeSystemMove(word uint32, inst *Instruction) {
	inst.Format = FormatSystem
	isRead := bits(word, 20, 12) == 0xD53
	op1 := bits(word, 16, 3)
	crn := bits(word, 12, 4)
	crm := bits(word, 8, 4)
	op2 := bits(word, 5, 3)
	rt := bits(word, 0, 5)

	inst.Sysreg = lookupSysreg(op1, crn, crm, op2)
	inst.Rd = uint8(rt)
	inst.Is64Bit = true

	if isRead {
		inst.Op = OpMRS
	} else {
		inst.Op = OpMSR
	}
}

func lookupSysreg(op1, crn, crm, op2 uint32) SystemReg {
	type key struct{ op1, crn, crm, op2 uint32 }
	table := map[key]SystemReg{
		{3, 13, 0, 2}: SysTPIDR_EL0,
		{3, 14, 0, 2}: SysCNTVCT_EL0,
		{3, 14, 0, 0}: SysCNTFRQ_EL0,
		{3, 0, 0, 0}:  SysMIDR_EL1,
		{3, 0, 0, 7}:  SysDCZID_EL0,
		{3, 4, 4, 0}:  SysFPCR,
	}
	if r, ok := table[key{op1, crn, crm, op2}]; ok {
		return r
	}
	return SysUnknown
}

// SysregEncoding returns the (op1, CRn, CRm, op2) tuple used to encode an
// MRS/MSR access to the given system register; used by both the decoder's
// reverse lookup (via lookupSysreg) and test helpers that synthesize opcodes.
func SysregEncoding(r SystemReg) (op1, crn, crm, op2 uint32) {
	switch r {
	case SysTPIDR_EL0:
		return 3, 13, 0, 2
	case SysCNTVCT_EL0:
		return 3, 14, 0, 2
	case SysCNTFRQ_EL0:
		return 3, 14, 0, 0
	case SysMIDR_EL1:
		return 3, 0, 0, 0
	case SysDCZID_EL0:
		return 3, 0, 0, 7
	case SysFPCR:
		return 3, 4, 4, 0
	}
	return 3, 0, 0, 0
}

// ---- Hints / barriers / DC ZVA --------------------------------------------

func (d *Decoder) isHintOrBarrier(word uint32) bool {
	return bits(word, 21, 11) == 0b11010101000 && bits(word, 12, 4) != 0b0100 // exclude MRS/MSR overlap, DC handled below
}

func (d *Decoder) decodeHintOrBarrier(word uint32, inst *Instruction) {
	inst.Format = FormatSystem

	// DC ZVA: 1101 0101 0000 1 011 011 1 0100 CRm(4) op2(3) Rt(5), CRn=0111, op1=011, CRm=0100, op2=001
	crn := bits(word, 12, 4)
	op1 := bits(word, 16, 3)
	crm := bits(word, 8, 4)
	op2 := bits(word, 5, 3)
	rt := bits(word, 0, 5)
	if crn == 0b0111 && op1 == 0b011 && crm == 0b0100 && op2 == 0b001 {
		inst.Op = OpDCZVA
		inst.Rd = uint8(rt)
		return
	}

	switch word {
	case 0xD503201F:
		inst.Op = OpNOP
	case 0xD50320FF:
		inst.Op = OpXPACLRI
	default:
		crmHint := bits(word, 8, 4)
		op2Hint := bits(word, 5, 3)
		if crmHint == 0b0010 && (op2Hint == 0b100 || op2Hint == 0b101 || op2Hint == 0b110 || op2Hint == 0b111) {
			inst.Op = OpBTI
			return
		}
		switch op2Hint {
		case 0b101:
			inst.Op = OpDMB
		case 0b100:
			inst.Op = OpDSB
		case 0b110:
			inst.Op = OpISB
		default:
			inst.Op = OpNOP
		}
	}
}

// ---- PC-relative (ADR/ADRP) -------------------------------------------------

func (d *Decoder) isPCRel(word uint32) bool {
	return bits(word, 24, 5) == 0b10000
}

func (d *Decoder) decodePCRel(word uint32, inst *Instruction) {
	inst.Format = FormatPCRel
	op := bit(word, 31)
	immlo := bits(word, 29, 2)
	immhi := bits(word, 5, 19)
	rd := bits(word, 0, 5)
	imm := (immhi << 2) | immlo

	inst.Rd = uint8(rd)
	inst.Is64Bit = true
	if op == 0 {
		inst.Op = OpADR
		inst.BranchOffset = signExtend32(imm, 20)
	} else {
		inst.Op = OpADRP
		inst.BranchOffset = signExtend32(imm, 20) << 12
	}
}

// ---- Add/Sub immediate -----------------------------------------------------

func (d *Decoder) isAddSubImm(word uint32) bool {
	return bits(word, 23, 6) == 0b100010
}

func (d *Decoder) decodeAddSubImm(word uint32, inst *Instruction) {
	inst.Format = FormatDPImm
	sf := bit(word, 31)
	op := bit(word, 30)
	s := bit(word, 29)
	sh := bit(word, 22)
	imm12 := bits(word, 10, 12)
	rn := bits(word, 5, 5)
	rd := bits(word, 0, 5)

	inst.Is64Bit = sf == 1
	inst.SetFlags = s == 1
	inst.Rd = uint8(rd)
	inst.Rn = uint8(rn)
	inst.Imm = uint64(imm12)
	if sh == 1 {
		inst.Shift = 12
	}
	if op == 0 {
		inst.Op = OpADD
	} else {
		inst.Op = OpSUB
	}
}

// ---- Logical immediate ------------------------------------------------------

func (d *Decoder) isLogicalImm(word uint32) bool {
	return bits(word, 23, 6) == 0b100100
}

func (d *Decoder) decodeLogicalImm(word uint32, inst *Instruction) {
	inst.Format = FormatLogicalImm
	sf := bit(word, 31)
	opc := bits(word, 29, 2)
	n := bit(word, 22)
	immr := bits(word, 16, 6)
	imms := bits(word, 10, 6)
	rn := bits(word, 5, 5)
	rd := bits(word, 0, 5)

	inst.Is64Bit = sf == 1
	inst.Rn = uint8(rn)
	inst.Rd = uint8(rd)

	width := uint(32)
	if sf == 1 {
		width = 64
	}
	inst.Imm = DecodeLogicalImmediate(uint32(n), uint32(immr), uint32(imms), width)

	switch opc {
	case 0b00:
		inst.Op = OpAND
	case 0b01:
		inst.Op = OpORR
	case 0b10:
		inst.Op = OpEOR
	case 0b11:
		inst.Op = OpAND
		inst.SetFlags = true
	}
}

// ---- Move wide ---------------------------------------------------------------

func (d *Decoder) isMoveWide(word uint32) bool {
	return bits(word, 23, 6) == 0b100101
}

func (d *Decoder) decodeMoveWide(word uint32, inst *Instruction) {
	inst.Format = FormatMoveWide
	sf := bit(word, 31)
	opc := bits(word, 29, 2)
	hw := bits(word, 21, 2)
	imm16 := bits(word, 5, 16)
	rd := bits(word, 0, 5)

	inst.Is64Bit = sf == 1
	inst.Rd = uint8(rd)
	inst.Imm = uint64(imm16)
	inst.Shift = uint8(hw) * 16

	switch opc {
	case 0b00:
		inst.Op = OpMOVN
	case 0b10:
		inst.Op = OpMOVZ
	case 0b11:
		inst.Op = OpMOVK
	}
}

// ---- Bitfield ------------------------------------------------------------------

func (d *Decoder) isBitfield(word uint32) bool {
	return bits(word, 23, 6) == 0b100110
}

func (d *Decoder) decodeBitfield(word uint32, inst *Instruction) {
	inst.Format = FormatBitfield
	sf := bit(word, 31)
	opc := bits(word, 29, 2)
	immr := bits(word, 16, 6)
	imms := bits(word, 10, 6)
	rn := bits(word, 5, 5)
	rd := bits(word, 0, 5)

	inst.Is64Bit = sf == 1
	inst.Rn = uint8(rn)
	inst.Rd = uint8(rd)
	inst.Imm = uint64(immr)
	inst.Imm2 = uint64(imms)

	switch opc {
	case 0b00:
		inst.Op = OpSBFM
	case 0b01:
		inst.Op = OpBFM
	case 0b10:
		inst.Op = OpUBFM
	}
}

// ---- Extract (EXTR) -------------------------------------------------------------

func (d *Decoder) isExtract(word uint32) bool {
	return bits(word, 23, 6) == 0b100111
}

func (d *Decoder) decodeExtract(word uint32, inst *Instruction) {
	inst.Format = FormatExtract
	inst.Op = OpEXTR
	sf := bit(word, 31)
	rm := bits(word, 16, 5)
	imms := bits(word, 10, 6)
	rn := bits(word, 5, 5)
	rd := bits(word, 0, 5)

	inst.Is64Bit = sf == 1
	inst.Rm = uint8(rm)
	inst.Rn = uint8(rn)
	inst.Rd = uint8(rd)
	inst.Imm = uint64(imms)
}

// ---- Unconditional branch (immediate) --------------------------------------------

func (d *Decoder) isUnconditionalBranchImm(word uint32) bool {
	return bits(word, 26, 5) == 0b00101
}

func (d *Decoder) decodeUnconditionalBranchImm(word uint32, inst *Instruction) {
	inst.Format = FormatBranch
	op := bit(word, 31)
	imm26 := bits(word, 0, 26)
	offset := signExtend32(imm26, 25) * 4
	inst.BranchOffset = offset
	if op == 0 {
		inst.Op = OpB
	} else {
		inst.Op = OpBL
	}
}

// ---- Compare & branch -------------------------------------------------------------

func (d *Decoder) isCompareBranch(word uint32) bool {
	return bits(word, 25, 6) == 0b011010
}

func (d *Decoder) decodeCompareBranch(word uint32, inst *Instruction) {
	inst.Format = FormatCompareBranch
	sf := bit(word, 31)
	op := bit(word, 24)
	imm19 := bits(word, 5, 19)
	rt := bits(word, 0, 5)

	inst.Is64Bit = sf == 1
	inst.Rd = uint8(rt)
	inst.BranchOffset = signExtend32(imm19, 18) * 4
	if op == 0 {
		inst.Op = OpCBZ
	} else {
		inst.Op = OpCBNZ
	}
}

// ---- Test & branch -----------------------------------------------------------------

func (d *Decoder) isTestBranch(word uint32) bool {
	return bits(word, 25, 6) == 0b011011
}

func (d *Decoder) decodeTestBranch(word uint32, inst *Instruction) {
	inst.Format = FormatTestBranch
	b5 := bit(word, 31)
	op := bit(word, 24)
	b40 := bits(word, 19, 5)
	imm14 := bits(word, 5, 14)
	rt := bits(word, 0, 5)

	inst.Rd = uint8(rt)
	inst.Imm = uint64((b5 << 5) | b40)
	inst.BranchOffset = signExtend32(imm14, 13) * 4
	if op == 0 {
		inst.Op = OpTBZ
	} else {
		inst.Op = OpTBNZ
	}
}

// ---- Conditional branch -------------------------------------------------------------

func (d *Decoder) isConditionalBranch(word uint32) bool {
	return bits(word, 25, 7) == 0b0101010 && bit(word, 4) == 0
}

func (d *Decoder) decodeConditionalBranch(word uint32, inst *Instruction) {
	inst.Format = FormatBranchCond
	inst.Op = OpBCond
	imm19 := bits(word, 5, 19)
	cond := bits(word, 0, 4)

	inst.BranchOffset = signExtend32(imm19, 18) * 4
	inst.Cond = Cond(cond)
}

// ---- Unconditional branch (register) -------------------------------------------------

func (d *Decoder) isUnconditionalBranchReg(word uint32) bool {
	hi := bits(word, 25, 7)
	mid := bits(word, 10, 6)
	lo := bits(word, 0, 5)
	return hi == 0b1101011 && mid == 0 && lo == 0
}

func (d *Decoder) decodeUnconditionalBranchReg(word uint32, inst *Instruction) {
	inst.Format = FormatBranchReg
	op := bits(word, 21, 2)
	rn := bits(word, 5, 5)
	inst.Rn = uint8(rn)

	switch op {
	case 0b00:
		inst.Op = OpBR
	case 0b01:
		inst.Op = OpBLR
	case 0b10:
		inst.Op = OpRET
	}
}
