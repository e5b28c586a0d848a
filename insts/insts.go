// Package insts provides AArch64 instruction definitions and decoding.
//
// It decodes 32-bit little-endian AArch64 instruction words into a
// structured Instruction value that the emu package executes. Decoding is
// pure: it never touches machine state, memory, or registers.
package insts

// Op identifies a decoded AArch64 operation.
type Op uint16

// AArch64 opcodes.
const (
	OpUnknown Op = iota

	// Arithmetic / logical
	OpADD
	OpSUB
	OpADC
	OpSBC
	OpAND
	OpORR
	OpORN
	OpEOR
	OpEON
	OpBIC

	// Move wide
	OpMOVZ
	OpMOVN
	OpMOVK

	// PC-relative
	OpADR
	OpADRP

	// Bitfield / extract
	OpSBFM
	OpBFM
	OpUBFM
	OpEXTR

	// Multiply / divide
	OpMADD
	OpMSUB
	OpSMADDL
	OpSMSUBL
	OpUMADDL
	OpUMSUBL
	OpSMULH
	OpUMULH
	OpSDIV
	OpUDIV

	// Conditional select / compare
	OpCSEL
	OpCSINC
	OpCSINV
	OpCSNEG
	OpCCMP
	OpCCMN

	// Variable shift
	OpLSLV
	OpLSRV
	OpASRV
	OpRORV

	// Bit scanning
	OpRBIT
	OpCLZ
	OpCLS
	OpREV
	OpREV16
	OpREV32

	// Branches
	OpB
	OpBL
	OpBCond
	OpBR
	OpBLR
	OpRET
	OpCBZ
	OpCBNZ
	OpTBZ
	OpTBNZ

	// Loads / stores (scalar integer)
	OpLDR
	OpSTR
	OpLDRB
	OpSTRB
	OpLDRH
	OpSTRH
	OpLDRSB
	OpLDRSH
	OpLDRSW
	OpLDP
	OpSTP
	OpLDPSW
	OpLDRLit
	OpLDXR
	OpLDAXR
	OpSTXR
	OpSTLXR
	OpLDAR
	OpSTLR

	// System
	OpMRS
	OpMSR
	OpNOP
	OpDMB
	OpDSB
	OpISB
	OpDCZVA
	OpBTI
	OpXPACLRI
	OpSVC
	OpBRK
	OpUDF

	// Scalar FP
	OpFMOV
	OpFABS
	OpFNEG
	OpFSQRT
	OpFADD
	OpFSUB
	OpFMUL
	OpFDIV
	OpFMADD
	OpFNMADD
	OpFMSUB
	OpFNMSUB
	OpFCMP
	OpFCMPE
	OpFCCMP
	OpFCCMPE
	OpFCSEL
	OpFCVT
	OpSCVTF
	OpUCVTF
	OpFCVTZS
	OpFCVTZU
	OpFCVTAS
	OpFCVTAU
	OpFRINTA

	// SIMD register moves
	OpDUP
	OpINS
	OpUMOV
	OpSMOV
	OpEXT

	// SIMD structure load/store
	OpLDn
	OpSTn
	OpLDnR

	// SIMD load/store of a single Q register
	OpLDRQ
	OpSTRQ

	// SIMD arithmetic / logical (vector, element size from Arrangement)
	OpVADD
	OpVSUB
	OpVADDP
	OpVADDV
	OpVUADDLV
	OpVAND
	OpVBIC
	OpVORR
	OpVORN
	OpVEOR
	OpVBIT
	OpVBIF
	OpVBSL
	OpVCMEQ
	OpVCMHS
	OpVCMGT
	OpVUSHR
	OpVSSHR
	OpVSHL
	OpVUSHL
	OpVSSHL
	OpVUSHLL
	OpVSSHLL
	OpVSHRN
	OpVUMULL
	OpVSMULL
	OpVMUL
	OpVMLS
	OpVCNT
	OpVFADD
	OpVFSUB
	OpVFMUL
	OpVFDIV
	OpVFMLA
	OpVFADDP
	OpVXTN
	OpVUZP1
	OpVUZP2
	OpVZIP1
	OpVZIP2
	OpVTRN1
	OpVTRN2
	OpVTBL
	OpVUMAXP
	OpVUMINP
	OpVMOVI
	OpVMVNI
)

// Format represents an instruction encoding family as recognized by the
// decoder's top-level dispatch.
type Format uint8

// Instruction formats.
const (
	FormatUnknown Format = iota
	FormatDPImm          // Add/Sub (immediate)
	FormatDPReg          // Add/Sub/Logical (shifted or extended register)
	FormatLogicalImm
	FormatMoveWide
	FormatPCRel
	FormatBitfield
	FormatExtract
	FormatDataProc2Src // UDIV/SDIV, LSLV/LSRV/ASRV/RORV
	FormatDataProc3Src // MADD/MSUB/SMADDL/.../SMULH/UMULH
	FormatDataProc1Src // RBIT/CLZ/CLS/REV*
	FormatCondSelect
	FormatCondCmp
	FormatBranch
	FormatBranchCond
	FormatBranchReg
	FormatCompareBranch
	FormatTestBranch
	FormatLoadStore
	FormatLoadStorePair
	FormatLoadStoreLit
	FormatLoadStoreExclusive
	FormatSystem
	FormatSVC
	FormatUDF
	FormatFPDataProc1Src
	FormatFPDataProc2Src
	FormatFPDataProc3Src
	FormatFPCompare
	FormatFPCondCompare
	FormatFPCondSelect
	FormatFPImm
	FormatFPIntConvert
	FormatSIMDCopy    // DUP/INS/UMOV/SMOV
	FormatSIMDExtract // EXT
	FormatSIMDLoadStoreStruct
	FormatSIMDLoadStoreSingle
	FormatSIMDThreeSame
	FormatSIMDThreeDiff
	FormatSIMDTwoReg
	FormatSIMDShiftImm
	FormatSIMDAcrossLanes
	FormatSIMDPermute
	FormatSIMDTableLookup
	FormatSIMDModifiedImm
)

// Cond represents an AArch64 condition code.
type Cond uint8

// AArch64 condition codes.
const (
	CondEQ Cond = 0b0000
	CondNE Cond = 0b0001
	CondCS Cond = 0b0010
	CondCC Cond = 0b0011
	CondMI Cond = 0b0100
	CondPL Cond = 0b0101
	CondVS Cond = 0b0110
	CondVC Cond = 0b0111
	CondHI Cond = 0b1000
	CondLS Cond = 0b1001
	CondGE Cond = 0b1010
	CondLT Cond = 0b1011
	CondGT Cond = 0b1100
	CondLE Cond = 0b1101
	CondAL Cond = 0b1110
	CondNV Cond = 0b1111
)

// ShiftType represents a shift type for register operands.
type ShiftType uint8

// Shift types.
const (
	ShiftLSL ShiftType = 0b00
	ShiftLSR ShiftType = 0b01
	ShiftASR ShiftType = 0b10
	ShiftROR ShiftType = 0b11
)

// ExtendType represents an extended-register operand kind.
type ExtendType uint8

// Extend types, per the ARM encoding of option[2:0].
const (
	ExtUXTB ExtendType = 0
	ExtUXTH ExtendType = 1
	ExtUXTW ExtendType = 2
	ExtUXTX ExtendType = 3
	ExtSXTB ExtendType = 4
	ExtSXTH ExtendType = 5
	ExtSXTW ExtendType = 6
	ExtSXTX ExtendType = 7
)

// IndexMode represents a load/store addressing mode.
type IndexMode uint8

// Addressing modes.
const (
	IndexNone    IndexMode = iota // unsigned scaled offset, no writeback
	IndexUnscaled                 // signed 9-bit unscaled offset, no writeback
	IndexPre                      // pre-indexed: writeback before access
	IndexPost                     // post-indexed: writeback after access
	IndexRegBase                  // shifted/extended register offset
)

// Arrangement identifies a SIMD element arrangement (the "T" in Vn.<T>).
type Arrangement uint8

// SIMD arrangements.
const (
	Arr8B Arrangement = iota
	Arr16B
	Arr4H
	Arr8H
	Arr2S
	Arr4S
	Arr1D
	Arr2D
	ArrB // scalar byte
	ArrH // scalar halfword
	ArrS // scalar word
	ArrD // scalar doubleword
)

// ElementBits returns the element width in bits for an arrangement.
func (a Arrangement) ElementBits() int {
	switch a {
	case Arr8B, Arr16B, ArrB:
		return 8
	case Arr4H, Arr8H, ArrH:
		return 16
	case Arr2S, Arr4S, ArrS:
		return 32
	case Arr1D, Arr2D, ArrD:
		return 64
	}
	return 8
}

// Elements returns the lane count for a vector arrangement (1 for scalar
// forms).
func (a Arrangement) Elements() int {
	switch a {
	case Arr8B:
		return 8
	case Arr16B:
		return 16
	case Arr4H:
		return 4
	case Arr8H:
		return 8
	case Arr2S:
		return 2
	case Arr4S:
		return 4
	case Arr1D:
		return 1
	case Arr2D:
		return 2
	}
	return 1
}

// IsQ reports whether the arrangement occupies the full 128-bit register.
func (a Arrangement) IsQ() bool {
	switch a {
	case Arr16B, Arr8H, Arr4S, Arr2D:
		return true
	}
	return false
}

// SystemReg identifies one of the emulator's enumerated MSR/MRS targets.
type SystemReg uint8

// Supported system registers.
const (
	SysUnknown SystemReg = iota
	SysTPIDR_EL0
	SysCNTVCT_EL0
	SysCNTFRQ_EL0
	SysMIDR_EL1
	SysDCZID_EL0
	SysFPCR
	SysNZCV
)

// FPPrecision identifies the scalar floating-point width an FP instruction
// operates on.
type FPPrecision uint8

// FP precisions.
const (
	FPHalf FPPrecision = iota
	FPSingle
	FPDouble
)

// Instruction is a fully decoded AArch64 instruction, ready for execution.
type Instruction struct {
	Op     Op
	Format Format

	Is64Bit  bool // sf: true selects X/64-bit, false selects W/32-bit
	SetFlags bool // S bit

	Rd, Rn, Rm, Ra, Rt2 uint8

	Imm   uint64 // primary immediate (imm12/imm16/imm19/imm26/nzcv/lane index/...)
	Imm2  uint64 // secondary immediate (imms in bitfield forms, CCMP immediate operand)
	Shift uint8  // left-shift amount for move-wide ("hw"*16) / logical-imm ("sh"*12)

	BranchOffset int64 // signed byte offset for PC-relative branches/ADR/literal loads
	SignedImm    int64 // signed byte offset for load/store pre/post/unscaled addressing

	Cond Cond

	ShiftType   ShiftType
	ShiftAmount uint8
	ExtendType  ExtendType
	HasExtend   bool // true if the register operand uses extend (not shift)

	IndexMode IndexMode
	CCUseImm  bool // CCMP/CCMN: true if the compared operand is the 5-bit immediate in Imm2

	Arrangement Arrangement
	ElemIndex   uint8 // destination/source lane index for INS/UMOV/SMOV/DUP-element
	ElemIndex2  uint8 // source lane index (INS lane-to-lane)
	FBits       uint8 // fixed-point fraction-bit count for SCVTF/UCVTF/FCVTZS/FCVTZU
	Precision   FPPrecision

	NumRegs      uint8 // n for LDn/STn (1..4)
	PostIndexReg bool  // structure load/store post-indexed by register rather than #imm

	Sysreg SystemReg

	FPToGP     bool // FMOV general<->FP: true moves Vn's bits to Rd, false moves Rn's bits to Vd
	FPHighHalf bool // FMOV general<->FP: true targets/reads Vn.D[1] rather than the low 64 bits

	CompareZero bool // FCMP/FCMPE: true compares Rn against 0.0 rather than against Rm

	FromGeneral bool // DUP/INS: true if the source operand is a GP register rather than a SIMD lane
}
