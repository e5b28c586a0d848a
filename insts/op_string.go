package insts

var opNames = map[Op]string{
	OpUnknown: "UNKNOWN",

	OpADD: "ADD", OpSUB: "SUB", OpADC: "ADC", OpSBC: "SBC",
	OpAND: "AND", OpORR: "ORR", OpORN: "ORN", OpEOR: "EOR", OpEON: "EON", OpBIC: "BIC",

	OpMOVZ: "MOVZ", OpMOVN: "MOVN", OpMOVK: "MOVK",

	OpADR: "ADR", OpADRP: "ADRP",

	OpSBFM: "SBFM", OpBFM: "BFM", OpUBFM: "UBFM", OpEXTR: "EXTR",

	OpMADD: "MADD", OpMSUB: "MSUB",
	OpSMADDL: "SMADDL", OpSMSUBL: "SMSUBL", OpUMADDL: "UMADDL", OpUMSUBL: "UMSUBL",
	OpSMULH: "SMULH", OpUMULH: "UMULH", OpSDIV: "SDIV", OpUDIV: "UDIV",

	OpCSEL: "CSEL", OpCSINC: "CSINC", OpCSINV: "CSINV", OpCSNEG: "CSNEG",
	OpCCMP: "CCMP", OpCCMN: "CCMN",

	OpLSLV: "LSLV", OpLSRV: "LSRV", OpASRV: "ASRV", OpRORV: "RORV",

	OpRBIT: "RBIT", OpCLZ: "CLZ", OpCLS: "CLS",
	OpREV: "REV", OpREV16: "REV16", OpREV32: "REV32",

	OpB: "B", OpBL: "BL", OpBCond: "B.cond", OpBR: "BR", OpBLR: "BLR", OpRET: "RET",
	OpCBZ: "CBZ", OpCBNZ: "CBNZ", OpTBZ: "TBZ", OpTBNZ: "TBNZ",

	OpLDR: "LDR", OpSTR: "STR", OpLDRB: "LDRB", OpSTRB: "STRB",
	OpLDRH: "LDRH", OpSTRH: "STRH",
	OpLDRSB: "LDRSB", OpLDRSH: "LDRSH", OpLDRSW: "LDRSW",
	OpLDP: "LDP", OpSTP: "STP", OpLDPSW: "LDPSW", OpLDRLit: "LDR(lit)",
	OpLDXR: "LDXR", OpLDAXR: "LDAXR", OpSTXR: "STXR", OpSTLXR: "STLXR",
	OpLDAR: "LDAR", OpSTLR: "STLR",

	OpMRS: "MRS", OpMSR: "MSR", OpNOP: "NOP",
	OpDMB: "DMB", OpDSB: "DSB", OpISB: "ISB", OpDCZVA: "DC ZVA",
	OpBTI: "BTI", OpXPACLRI: "XPACLRI",
	OpSVC: "SVC", OpBRK: "BRK", OpUDF: "UDF",

	OpFMOV: "FMOV", OpFABS: "FABS", OpFNEG: "FNEG", OpFSQRT: "FSQRT",
	OpFADD: "FADD", OpFSUB: "FSUB", OpFMUL: "FMUL", OpFDIV: "FDIV",
	OpFMADD: "FMADD", OpFNMADD: "FNMADD", OpFMSUB: "FMSUB", OpFNMSUB: "FNMSUB",
	OpFCMP: "FCMP", OpFCMPE: "FCMPE", OpFCCMP: "FCCMP", OpFCCMPE: "FCCMPE",
	OpFCSEL: "FCSEL", OpFCVT: "FCVT",
	OpSCVTF: "SCVTF", OpUCVTF: "UCVTF",
	OpFCVTZS: "FCVTZS", OpFCVTZU: "FCVTZU", OpFCVTAS: "FCVTAS", OpFCVTAU: "FCVTAU",
	OpFRINTA: "FRINTA",

	OpDUP: "DUP", OpINS: "INS", OpUMOV: "UMOV", OpSMOV: "SMOV", OpEXT: "EXT",

	OpLDn: "LDn", OpSTn: "STn", OpLDnR: "LDnR",
	OpLDRQ: "LDR(q)", OpSTRQ: "STR(q)",

	OpVADD: "ADD", OpVSUB: "SUB", OpVADDP: "ADDP", OpVADDV: "ADDV", OpVUADDLV: "UADDLV",
	OpVAND: "AND", OpVBIC: "BIC", OpVORR: "ORR", OpVORN: "ORN", OpVEOR: "EOR",
	OpVBIT: "BIT", OpVBIF: "BIF", OpVBSL: "BSL",
	OpVCMEQ: "CMEQ", OpVCMHS: "CMHS", OpVCMGT: "CMGT",
	OpVUSHR: "USHR", OpVSSHR: "SSHR", OpVSHL: "SHL",
	OpVUSHL: "USHL", OpVSSHL: "SSHL",
	OpVUSHLL: "USHLL", OpVSSHLL: "SSHLL", OpVSHRN: "SHRN",
	OpVUMULL: "UMULL", OpVSMULL: "SMULL", OpVMUL: "MUL", OpVMLS: "MLS",
	OpVCNT: "CNT",
	OpVFADD: "FADD", OpVFSUB: "FSUB", OpVFMUL: "FMUL", OpVFDIV: "FDIV",
	OpVFMLA: "FMLA", OpVFADDP: "FADDP",
	OpVXTN: "XTN",
	OpVUZP1: "UZP1", OpVUZP2: "UZP2", OpVZIP1: "ZIP1", OpVZIP2: "ZIP2",
	OpVTRN1: "TRN1", OpVTRN2: "TRN2", OpVTBL: "TBL",
	OpVUMAXP: "UMAXP", OpVUMINP: "UMINP",
	OpVMOVI: "MOVI", OpVMVNI: "MVNI",
}

// String renders an Op's mnemonic, for disassembly and tracing. Vector forms
// share a mnemonic with their scalar/general counterpart; the Arrangement
// carried alongside distinguishes them.
func (o Op) String() string {
	if s, ok := opNames[o]; ok {
		return s
	}
	return "UNKNOWN"
}

var arrangementNames = map[Arrangement]string{
	Arr8B: "8B", Arr16B: "16B", Arr4H: "4H", Arr8H: "8H",
	Arr2S: "2S", Arr4S: "4S", Arr1D: "1D", Arr2D: "2D",
	ArrB: "B", ArrH: "H", ArrS: "S", ArrD: "D",
}

// String renders a SIMD arrangement the way it appears after a register in
// assembly, e.g. "4S" for V0.4S.
func (a Arrangement) String() string {
	if s, ok := arrangementNames[a]; ok {
		return s
	}
	return "?"
}
