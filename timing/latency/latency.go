// Package latency provides per-instruction cycle estimates for a64sim's
// optional timing-instrumentation pass, an approximation layered on top of
// the functional core rather than a cycle-accurate pipeline model. Defaults
// model a generic out-of-order AArch64 application core; every class of
// instruction can be retuned independently through TimingConfig.
package latency

import (
	"github.com/a64sim/a64sim/insts"
)

// Table provides instruction latency lookups.
type Table struct {
	config *TimingConfig
}

// NewTable creates a new latency table with the default timing values.
func NewTable() *Table {
	return &Table{
		config: DefaultTimingConfig(),
	}
}

// NewTableWithConfig creates a new latency table with custom timing configuration.
func NewTableWithConfig(config *TimingConfig) *Table {
	return &Table{
		config: config,
	}
}

// GetLatency returns the execution latency in cycles for the given instruction.
// For integer divides, the only variable-latency operations, it returns
// DivideLatencyMax.
func (t *Table) GetLatency(inst *insts.Instruction) uint64 {
	if inst == nil {
		return 1
	}

	switch inst.Op {
	case insts.OpADD, insts.OpSUB, insts.OpADC, insts.OpSBC,
		insts.OpAND, insts.OpORR, insts.OpORN, insts.OpEOR, insts.OpEON, insts.OpBIC,
		insts.OpMOVZ, insts.OpMOVN, insts.OpMOVK, insts.OpADR, insts.OpADRP,
		insts.OpSBFM, insts.OpBFM, insts.OpUBFM, insts.OpEXTR,
		insts.OpCSEL, insts.OpCSINC, insts.OpCSINV, insts.OpCSNEG, insts.OpCCMP, insts.OpCCMN,
		insts.OpLSLV, insts.OpLSRV, insts.OpASRV, insts.OpRORV,
		insts.OpRBIT, insts.OpCLZ, insts.OpCLS, insts.OpREV, insts.OpREV16, insts.OpREV32:
		return t.config.ALULatency

	case insts.OpMADD, insts.OpMSUB, insts.OpSMADDL, insts.OpSMSUBL, insts.OpUMADDL, insts.OpUMSUBL,
		insts.OpSMULH, insts.OpUMULH:
		return t.config.MultiplyLatency

	case insts.OpSDIV, insts.OpUDIV:
		return t.config.DivideLatencyMax

	case insts.OpB, insts.OpBL, insts.OpBCond, insts.OpBR, insts.OpBLR, insts.OpRET,
		insts.OpCBZ, insts.OpCBNZ, insts.OpTBZ, insts.OpTBNZ:
		return t.config.BranchLatency

	case insts.OpLDR, insts.OpLDRB, insts.OpLDRH, insts.OpLDRSB, insts.OpLDRSH, insts.OpLDRSW,
		insts.OpLDP, insts.OpLDPSW, insts.OpLDRLit, insts.OpLDXR, insts.OpLDAXR, insts.OpLDAR,
		insts.OpLDn, insts.OpLDnR, insts.OpLDRQ:
		return t.config.LoadLatency

	case insts.OpSTR, insts.OpSTRB, insts.OpSTRH, insts.OpSTP,
		insts.OpSTXR, insts.OpSTLXR, insts.OpSTLR, insts.OpSTn, insts.OpSTRQ:
		return t.config.StoreLatency

	case insts.OpSVC:
		return t.config.SyscallLatency

	case insts.OpFADD, insts.OpFSUB, insts.OpFMUL, insts.OpFMADD, insts.OpFMSUB,
		insts.OpFNMADD, insts.OpFNMSUB, insts.OpFABS, insts.OpFNEG, insts.OpFCMP, insts.OpFCMPE,
		insts.OpFCCMP, insts.OpFCCMPE, insts.OpFCSEL, insts.OpFMOV, insts.OpFRINTA:
		return t.config.ALULatency

	case insts.OpFDIV, insts.OpFSQRT:
		return t.config.DivideLatencyMax

	case insts.OpFCVT, insts.OpSCVTF, insts.OpUCVTF,
		insts.OpFCVTZS, insts.OpFCVTZU, insts.OpFCVTAS, insts.OpFCVTAU:
		return t.config.MultiplyLatency

	case insts.OpVMUL, insts.OpVSMULL, insts.OpVUMULL, insts.OpVFMUL, insts.OpVFMLA:
		return t.config.SIMDMultiplyLatency

	case insts.OpVADD, insts.OpVSUB, insts.OpVADDP, insts.OpVADDV, insts.OpVUADDLV,
		insts.OpVAND, insts.OpVORR, insts.OpVORN, insts.OpVEOR, insts.OpVBIC, insts.OpVBIF, insts.OpVBIT, insts.OpVBSL,
		insts.OpVCMEQ, insts.OpVCMGT, insts.OpVCMHS, insts.OpVCNT,
		insts.OpVFADD, insts.OpVFADDP, insts.OpVFSUB,
		insts.OpVMLS, insts.OpVMOVI, insts.OpVMVNI,
		insts.OpVSHRN, insts.OpVSSHLL, insts.OpVSSHR, insts.OpVSHL, insts.OpVUSHL, insts.OpVSSHL, insts.OpVUSHLL, insts.OpVUSHR,
		insts.OpVUMAXP, insts.OpVUMINP,
		insts.OpVTBL, insts.OpVTRN1, insts.OpVTRN2, insts.OpVUZP1, insts.OpVUZP2, insts.OpVXTN,
		insts.OpVZIP1, insts.OpVZIP2:
		return t.config.SIMDLatency

	case insts.OpVFDIV:
		return t.config.DivideLatencyMax

	default:
		return 1
	}
}

// GetMinLatency returns the minimum execution latency for variable-latency operations.
func (t *Table) GetMinLatency(inst *insts.Instruction) uint64 {
	if inst == nil {
		return 1
	}

	// Integer divides are the only variable-latency operations; every other
	// instruction has a single fixed latency.
	if inst.Op == insts.OpSDIV || inst.Op == insts.OpUDIV {
		return t.config.DivideLatencyMin
	}
	return t.GetLatency(inst)
}

// GetMaxLatency returns the maximum execution latency for variable-latency operations.
func (t *Table) GetMaxLatency(inst *insts.Instruction) uint64 {
	if inst == nil {
		return 1
	}

	// GetLatency already reports DivideLatencyMax for integer divides, and
	// every other instruction has a single fixed latency.
	return t.GetLatency(inst)
}

// IsMemoryOp returns true if the instruction accesses memory.
func (t *Table) IsMemoryOp(inst *insts.Instruction) bool {
	if inst == nil {
		return false
	}
	return t.IsLoadOp(inst) || t.IsStoreOp(inst)
}

// IsLoadOp returns true if the instruction is a load operation.
func (t *Table) IsLoadOp(inst *insts.Instruction) bool {
	if inst == nil {
		return false
	}
	switch inst.Op {
	case insts.OpLDR, insts.OpLDRB, insts.OpLDRH, insts.OpLDRSB, insts.OpLDRSH, insts.OpLDRSW,
		insts.OpLDP, insts.OpLDPSW, insts.OpLDRLit, insts.OpLDXR, insts.OpLDAXR, insts.OpLDAR,
		insts.OpLDn, insts.OpLDnR, insts.OpLDRQ:
		return true
	default:
		return false
	}
}

// IsStoreOp returns true if the instruction is a store operation.
func (t *Table) IsStoreOp(inst *insts.Instruction) bool {
	if inst == nil {
		return false
	}
	switch inst.Op {
	case insts.OpSTR, insts.OpSTRB, insts.OpSTRH, insts.OpSTP,
		insts.OpSTXR, insts.OpSTLXR, insts.OpSTLR, insts.OpSTn, insts.OpSTRQ:
		return true
	default:
		return false
	}
}

// IsBranchOp returns true if the instruction is a branch operation.
func (t *Table) IsBranchOp(inst *insts.Instruction) bool {
	if inst == nil {
		return false
	}
	switch inst.Op {
	case insts.OpB, insts.OpBL, insts.OpBCond, insts.OpBR, insts.OpBLR, insts.OpRET,
		insts.OpCBZ, insts.OpCBNZ, insts.OpTBZ, insts.OpTBNZ:
		return true
	default:
		return false
	}
}

// Config returns the current timing configuration.
func (t *Table) Config() *TimingConfig {
	return t.config
}
