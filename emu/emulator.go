package emu

import (
	"fmt"
	"io"
	"math"
	"math/bits"
	"os"

	"github.com/a64sim/a64sim/insts"
)

// Machine is a single-hart AArch64 user-mode machine: one general-purpose
// and SIMD register file, one flat memory, and the execution units that
// operate on them. It decodes and executes one instruction at a time from
// Step, with Run driving Step in a loop until a limit or a terminating
// condition is hit.
type Machine struct {
	regFile     *RegFile
	simdRegFile *SIMDRegFile
	memory      *Memory
	alu         *ALU
	branch      *BranchUnit
	ls          *LoadStoreUnit
	simd        *SIMD
	fp          *FPUnit
	decoder     *insts.Decoder

	syscallHandler SyscallHandler
	stdout         io.Writer
	stderr         io.Writer
	stdin          io.Reader

	traceEnabled bool
	traceWriter  io.Writer
	symbolLookup func(address uint64) (name string, offset uint64)

	// supervisorCall, when set, is invoked instead of the default syscall
	// handler on every SVC.
	supervisorCall func(m *Machine)

	cacheObserver CacheObserver

	// HardTermination, when set, is invoked whenever the machine halts on
	// an unrecoverable condition (BRK, an unimplemented encoding, a faulting
	// memory access). The default writes to stderr and panics: a library has
	// no process-exit authority of its own, so cmd/a64sim installs its own
	// os.Exit-based hook at the top level.
	HardTermination func(m *Machine, message string, value uint64)

	instructionsExecuted uint64
	exited               bool
	exitCode             int64
}

// MachineOption configures a Machine at construction time.
type MachineOption func(*Machine)

// WithStdout overrides the default syscall handler's stdout.
func WithStdout(w io.Writer) MachineOption {
	return func(m *Machine) { m.stdout = w }
}

// WithStderr overrides the default syscall handler's stderr.
func WithStderr(w io.Writer) MachineOption {
	return func(m *Machine) { m.stderr = w }
}

// WithStdin supplies the reader backing fd 0 for the default syscall handler.
func WithStdin(r io.Reader) MachineOption {
	return func(m *Machine) { m.stdin = r }
}

// WithSyscallHandler replaces the default syscall handler entirely.
func WithSyscallHandler(h SyscallHandler) MachineOption {
	return func(m *Machine) { m.syscallHandler = h }
}

// WithTraceWriter sets the writer TraceInstructions output goes to. Defaults
// to stdout.
func WithTraceWriter(w io.Writer) MachineOption {
	return func(m *Machine) { m.traceWriter = w }
}

// WithSymbolLookup attaches a function the tracer uses to annotate PC values
// with a symbol name and offset.
func WithSymbolLookup(f func(address uint64) (name string, offset uint64)) MachineOption {
	return func(m *Machine) { m.symbolLookup = f }
}

// WithSupervisorCall installs a host sink invoked on every SVC instead of the
// default Linux syscall handler.
func WithSupervisorCall(f func(m *Machine)) MachineOption {
	return func(m *Machine) { m.supervisorCall = f }
}

// CacheObserver snoops scalar memory accesses the execute loop performs,
// without influencing correctness. timing/cache.Cache implements this via a
// thin adapter so the CLI's -timing path can report a hit-rate alongside a
// functional run.
type CacheObserver interface {
	Observe(addr uint64, size int, isWrite bool)
}

// WithCacheObserver attaches a CacheObserver that is notified on every
// scalar load/store the execute loop issues. It rides alongside the
// functional model; detaching it (passing it or not) never changes a
// program's result.
func WithCacheObserver(o CacheObserver) MachineOption {
	return func(m *Machine) { m.cacheObserver = o }
}

// NewMachine builds a Machine over the given backing memory, with the
// program counter at entryPC and the stack pointer at stackTop. stackSize
// bytes below stackTop are zero-filled so an uninitialized stack reads as
// zero rather than whatever the backing slice happened to contain.
func NewMachine(memory []byte, base, entryPC, stackSize, stackTop uint64, opts ...MachineOption) *Machine {
	regFile := &RegFile{PC: entryPC, SP: stackTop}
	mem := NewMemory(memory, base)
	simdRF := &SIMDRegFile{}

	m := &Machine{
		regFile:     regFile,
		simdRegFile: simdRF,
		memory:      mem,
		alu:         NewALU(regFile),
		branch:      NewBranchUnit(regFile),
		ls:          NewLoadStoreUnit(regFile, mem),
		simd:        NewSIMD(simdRF, regFile, mem),
		fp:          NewFPUnit(regFile, simdRF),
		decoder:     insts.NewDecoder(),
		stdout:      os.Stdout,
		stderr:      os.Stderr,
		traceWriter: os.Stdout,
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.syscallHandler == nil {
		handler := NewDefaultSyscallHandler(regFile, mem, m.stdout, m.stderr)
		if m.stdin != nil {
			handler.SetStdin(m.stdin)
		}
		m.syscallHandler = handler
	}
	if stackSize > 0 && stackTop >= stackSize {
		mem.ZeroFill(stackTop-stackSize, int(stackSize))
	}
	if m.HardTermination == nil {
		m.HardTermination = defaultHardTermination
	}
	return m
}

// defaultHardTermination reports the failure on stderr and panics, since a
// library has no authority to call os.Exit itself.
func defaultHardTermination(m *Machine, message string, value uint64) {
	fmt.Fprintf(os.Stderr, "a64sim: fatal: %s (value=0x%x, pc=0x%x)\n", message, value, m.regFile.PC)
	panic(message)
}

// SetTracer sets the writer TraceInstructions output goes to, equivalent to
// WithTraceWriter but usable after construction.
func (m *Machine) SetTracer(w io.Writer) {
	m.traceWriter = w
}

// SetCacheObserver attaches or replaces the CacheObserver notified on every
// scalar load/store, equivalent to WithCacheObserver but usable after
// construction.
func (m *Machine) SetCacheObserver(o CacheObserver) {
	m.cacheObserver = o
}

// Registers exposes the general-purpose register file and PSTATE.
func (m *Machine) Registers() *RegFile { return m.regFile }

// SIMDRegisters exposes the vector/FP register file.
func (m *Machine) SIMDRegisters() *SIMDRegFile { return m.simdRegFile }

// Memory exposes the machine's backing memory.
func (m *Machine) Memory() *Memory { return m.memory }

// Exited reports whether the machine has stopped executing (via an exit
// syscall, BRK, or a hard-termination condition).
func (m *Machine) Exited() bool { return m.exited }

// ExitCode returns the value the machine terminated with.
func (m *Machine) ExitCode() int64 { return m.exitCode }

// InstructionsExecuted returns the number of instructions retired so far.
func (m *Machine) InstructionsExecuted() uint64 { return m.instructionsExecuted }

// TraceInstructions enables or disables per-instruction tracing and returns
// the previous state.
func (m *Machine) TraceInstructions(enable bool) bool {
	prev := m.traceEnabled
	m.traceEnabled = enable
	return prev
}

// EndEmulation halts the machine; the in-flight Run loop stops after the
// current instruction.
func (m *Machine) EndEmulation() {
	m.exited = true
}

// Run executes up to maxCycles instructions, stopping early if the machine
// exits or hard-terminates. It returns the number of instructions executed.
func (m *Machine) Run(maxCycles uint64) uint64 {
	var executed uint64
	for executed < maxCycles && !m.exited {
		if err := m.Step(); err != nil {
			m.hardTerminate(err.Error(), 0)
			break
		}
		executed++
	}
	return executed
}

// Step fetches, decodes, and executes a single instruction at the current
// PC.
func (m *Machine) Step() error {
	pc := m.regFile.PC
	word, err := m.memory.Read32(pc)
	if err != nil {
		return fmt.Errorf("fetch at 0x%x: %w", pc, err)
	}
	inst := m.decoder.Decode(word)
	advance, err := m.execute(inst, pc, word)
	if err != nil {
		return err
	}
	if advance {
		m.regFile.PC = pc + 4
	}
	if m.traceEnabled && m.traceWriter != nil {
		m.writeTrace(m.traceWriter, pc, word, inst)
	}
	m.instructionsExecuted++
	return nil
}

func (m *Machine) hardTerminate(message string, value uint64) {
	m.exited = true
	if m.exitCode == 0 {
		m.exitCode = 1
	}
	if m.HardTermination != nil {
		m.HardTermination(m, message, value)
	}
}

// execute dispatches a decoded instruction to the appropriate unit. It
// returns whether PC should advance by 4 (false when a branch/exit already
// set PC, or finalized the machine's terminal state, itself).
func (m *Machine) execute(inst *insts.Instruction, pc uint64, word uint32) (bool, error) {
	switch inst.Format {

	case insts.FormatDPImm:
		op1 := m.regFile.ReadRegOrSP(inst.Rn)
		op2 := inst.Imm << inst.Shift
		result := m.alu.AddSub(inst.Op == insts.OpSUB, op1, op2, inst.Is64Bit, inst.SetFlags)
		if inst.SetFlags {
			m.regFile.WriteReg(inst.Rd, result)
		} else {
			m.regFile.WriteRegOrSP(inst.Rd, result)
		}
		return true, nil

	case insts.FormatLogicalImm:
		op1 := m.regFile.ReadReg(inst.Rn)
		result := m.alu.Logic(inst.Op, op1, inst.Imm, inst.Is64Bit, inst.SetFlags)
		if inst.SetFlags {
			m.regFile.WriteReg(inst.Rd, result)
		} else {
			m.regFile.WriteRegOrSP(inst.Rd, result)
		}
		return true, nil

	case insts.FormatDPReg:
		m.executeDPReg(inst)
		return true, nil

	case insts.FormatMoveWide:
		m.executeMoveWide(inst)
		return true, nil

	case insts.FormatPCRel:
		base := pc
		if inst.Op == insts.OpADRP {
			base = pc &^ 0xFFF
		}
		m.regFile.WriteReg(inst.Rd, uint64(int64(base)+inst.BranchOffset))
		return true, nil

	case insts.FormatBitfield:
		src := m.regFile.ReadReg(inst.Rn)
		var dst uint64
		preserveDst := inst.Op == insts.OpBFM
		if preserveDst {
			dst = m.regFile.ReadReg(inst.Rd)
		}
		result := bitfieldMove(src, dst, uint8(inst.Imm), uint8(inst.Imm2), inst.Is64Bit,
			inst.Op == insts.OpSBFM, preserveDst)
		m.regFile.WriteReg(inst.Rd, result)
		return true, nil

	case insts.FormatExtract:
		m.executeExtract(inst)
		return true, nil

	case insts.FormatDataProc1Src:
		m.executeDataProc1Src(inst)
		return true, nil

	case insts.FormatDataProc2Src:
		m.executeDataProc2Src(inst)
		return true, nil

	case insts.FormatDataProc3Src:
		m.executeDataProc3Src(inst)
		return true, nil

	case insts.FormatCondSelect:
		m.executeCondSelect(inst)
		return true, nil

	case insts.FormatCondCmp:
		m.executeCondCmp(inst)
		return true, nil

	case insts.FormatBranch:
		switch inst.Op {
		case insts.OpB:
			m.branch.B(inst.BranchOffset)
		case insts.OpBL:
			m.branch.BL(inst.BranchOffset)
		}
		return false, nil

	case insts.FormatBranchCond:
		m.branch.BCond(inst.BranchOffset, inst.Cond)
		return m.regFile.PC == pc, nil

	case insts.FormatBranchReg:
		switch inst.Op {
		case insts.OpBR:
			m.branch.BR(inst.Rn)
		case insts.OpBLR:
			m.branch.BLR(inst.Rn)
		case insts.OpRET:
			m.branch.RET(inst.Rn)
		}
		return false, nil

	case insts.FormatCompareBranch:
		v := m.regFile.ReadReg(inst.Rd)
		if !inst.Is64Bit {
			v = uint64(uint32(v))
		}
		if inst.Op == insts.OpCBZ {
			m.branch.CBZ(inst.BranchOffset, v)
		} else {
			m.branch.CBNZ(inst.BranchOffset, v)
		}
		return m.regFile.PC == pc, nil

	case insts.FormatTestBranch:
		v := m.regFile.ReadReg(inst.Rd)
		if inst.Op == insts.OpTBZ {
			m.branch.TBZ(inst.BranchOffset, v, uint8(inst.Imm))
		} else {
			m.branch.TBNZ(inst.BranchOffset, v, uint8(inst.Imm))
		}
		return m.regFile.PC == pc, nil

	case insts.FormatLoadStore:
		addr := m.loadStoreAddress(inst)
		if isSIMDLoadStoreArrangement(inst.Arrangement) {
			return true, m.executeSIMDSingleLoadStore(inst, addr)
		}
		return true, m.executeScalarLoadStore(inst, addr)

	case insts.FormatLoadStorePair:
		addr := m.loadStorePairAddress(inst)
		switch inst.Op {
		case insts.OpLDP:
			return true, m.ls.LDP(inst.Rd, inst.Rt2, addr, inst.Is64Bit)
		case insts.OpSTP:
			return true, m.ls.STP(inst.Rd, inst.Rt2, addr, inst.Is64Bit)
		case insts.OpLDPSW:
			return true, m.ls.LDPSW(inst.Rd, inst.Rt2, addr)
		}
		return true, nil

	case insts.FormatLoadStoreLit:
		return true, m.executeLoadStoreLit(inst, pc)

	case insts.FormatLoadStoreExclusive:
		return true, m.executeLoadStoreExclusive(inst)

	case insts.FormatSystem:
		m.executeSystem(inst)
		return true, nil

	case insts.FormatSVC:
		return m.executeSVC(inst, pc)

	case insts.FormatUDF:
		m.hardTerminate(fmt.Sprintf("undefined instruction at 0x%x", pc), uint64(word))
		return false, nil

	case insts.FormatFPDataProc1Src:
		m.executeFP1Src(inst)
		return true, nil

	case insts.FormatFPDataProc2Src:
		m.executeFP2Src(inst)
		return true, nil

	case insts.FormatFPDataProc3Src:
		m.executeFP3Src(inst)
		return true, nil

	case insts.FormatFPCompare:
		m.fp.FCMP(inst.Rn, inst.Rm, inst.Precision, inst.CompareZero)
		return true, nil

	case insts.FormatFPCondCompare:
		m.fp.FCCMP(inst.Rn, inst.Rm, inst.Precision, inst.Cond, inst.Imm)
		return true, nil

	case insts.FormatFPCondSelect:
		m.fp.FCSEL(inst.Rd, inst.Rn, inst.Rm, inst.Precision, inst.Cond)
		return true, nil

	case insts.FormatFPImm:
		m.fp.FMOVImm(inst.Rd, inst.Imm, inst.Precision)
		return true, nil

	case insts.FormatFPIntConvert:
		m.executeFPIntConvert(inst)
		return true, nil

	case insts.FormatSIMDCopy:
		m.executeSIMDCopy(inst)
		return true, nil

	case insts.FormatSIMDExtract:
		m.simd.EXT(inst.Rd, inst.Rn, inst.Rm, uint8(inst.Imm), inst.Arrangement)
		return true, nil

	case insts.FormatSIMDLoadStoreStruct:
		return true, m.executeSIMDLoadStoreStruct(inst)

	case insts.FormatSIMDThreeSame:
		m.executeSIMDThreeSame(inst)
		return true, nil

	case insts.FormatSIMDTwoReg:
		m.executeSIMDTwoReg(inst)
		return true, nil

	case insts.FormatSIMDShiftImm:
		m.executeSIMDShiftImm(inst)
		return true, nil

	case insts.FormatSIMDAcrossLanes:
		switch inst.Op {
		case insts.OpVADDV:
			m.simd.VADDV(inst.Rd, inst.Rn, inst.Arrangement)
		case insts.OpVUADDLV:
			m.simd.VUADDLV(inst.Rd, inst.Rn, inst.Arrangement)
		}
		return true, nil

	case insts.FormatSIMDPermute:
		m.executeSIMDPermute(inst)
		return true, nil

	case insts.FormatSIMDTableLookup:
		m.simd.VTBL(inst.Rd, inst.Rn, inst.Rm, inst.NumRegs, inst.Arrangement)
		return true, nil

	case insts.FormatSIMDModifiedImm:
		pattern := advSIMDExpandImm(0, inst.Shift, inst.Imm)
		if inst.Op == insts.OpVMVNI {
			m.simd.VMVNI(inst.Rd, pattern, inst.Arrangement)
		} else {
			m.simd.VMOVI(inst.Rd, pattern, inst.Arrangement)
		}
		return true, nil

	default:
		// FormatUnknown, plus the two Format values no decode path ever
		// produces (FormatSIMDLoadStoreSingle, FormatSIMDThreeDiff).
		m.hardTerminate(fmt.Sprintf("unimplemented instruction at 0x%x (word=0x%08x)", pc, word), uint64(word))
		return false, nil
	}
}

// --- Data processing (register) -------------------------------------------

func (m *Machine) executeDPReg(inst *insts.Instruction) {
	switch inst.Op {
	case insts.OpADD, insts.OpSUB:
		op1 := m.regFile.ReadRegOrSP(inst.Rn)
		var op2 uint64
		if inst.HasExtend {
			op2 = extendReg(m.regFile.ReadReg(inst.Rm), inst.ExtendType, inst.ShiftAmount)
		} else {
			op2 = shiftReg(m.regFile.ReadReg(inst.Rm), inst.ShiftType, inst.ShiftAmount, inst.Is64Bit)
		}
		result := m.alu.AddSub(inst.Op == insts.OpSUB, op1, op2, inst.Is64Bit, inst.SetFlags)
		if inst.SetFlags {
			m.regFile.WriteReg(inst.Rd, result)
		} else {
			m.regFile.WriteRegOrSP(inst.Rd, result)
		}
	default: // AND/ORR/EOR/BIC/ORN/EON (shifted register)
		op1 := m.regFile.ReadReg(inst.Rn)
		op2 := shiftReg(m.regFile.ReadReg(inst.Rm), inst.ShiftType, inst.ShiftAmount, inst.Is64Bit)
		switch inst.Op {
		case insts.OpBIC, insts.OpORN, insts.OpEON:
			op2 = ^op2 // decoder leaves Rm uncomplemented; ALU.Logic expects the caller to invert
		}
		result := m.alu.Logic(inst.Op, op1, op2, inst.Is64Bit, inst.SetFlags)
		m.regFile.WriteReg(inst.Rd, result)
	}
}

func (m *Machine) executeMoveWide(inst *insts.Instruction) {
	imm := inst.Imm << inst.Shift
	switch inst.Op {
	case insts.OpMOVZ:
		m.regFile.WriteReg(inst.Rd, imm)
	case insts.OpMOVN:
		v := ^imm
		if !inst.Is64Bit {
			v &= 0xFFFFFFFF
		}
		m.regFile.WriteReg(inst.Rd, v)
	case insts.OpMOVK:
		cur := m.regFile.ReadReg(inst.Rd)
		mask := uint64(0xFFFF) << inst.Shift
		v := (cur &^ mask) | (imm & mask)
		if !inst.Is64Bit {
			v &= 0xFFFFFFFF
		}
		m.regFile.WriteReg(inst.Rd, v)
	}
}

func (m *Machine) executeExtract(inst *insts.Instruction) {
	width := uint(32)
	if inst.Is64Bit {
		width = 64
	}
	lsb := uint(inst.Imm) % width
	nVal := m.regFile.ReadReg(inst.Rn)
	mVal := m.regFile.ReadReg(inst.Rm)

	var result uint64
	if lsb == 0 {
		result = mVal
	} else {
		result = (mVal >> lsb) | (nVal << (width - lsb))
	}
	if width == 32 {
		result &= 0xFFFFFFFF
	}
	m.regFile.WriteReg(inst.Rd, result)
}

// bitfieldMove implements the shared semantics of SBFM/BFM/UBFM: extract a
// field of src (wrapping through bit 0 when imms < immr), then sign-extend,
// zero-extend, or preserve-dst outside that field per the flags.
func bitfieldMove(src, dst uint64, immr, imms uint8, is64, signExtend, preserveDst bool) uint64 {
	width := uint(32)
	if is64 {
		width = 64
	}
	r := uint(immr) % width
	s := uint(imms) % width

	var fieldLen, pos uint
	var srcField uint64
	if s >= r {
		fieldLen = s - r + 1
		pos = 0
		srcField = (src >> r) & maskLow(int(fieldLen))
	} else {
		fieldLen = s + 1
		pos = width - r
		srcField = src & maskLow(int(fieldLen))
	}

	var result uint64
	if preserveDst {
		result = dst &^ (maskLow(int(fieldLen)) << pos)
	}
	result |= srcField << pos

	if signExtend && fieldLen > 0 && (srcField>>(fieldLen-1))&1 == 1 {
		result |= ^(maskLow(int(fieldLen)) << pos)
	}
	if width == 32 {
		result &= 0xFFFFFFFF
	}
	return result
}

// --- One/two/three-source data processing ----------------------------------

func reverseBits(v uint64, width uint) uint64 {
	var r uint64
	for i := uint(0); i < width; i++ {
		if v&(uint64(1)<<i) != 0 {
			r |= uint64(1) << (width - 1 - i)
		}
	}
	return r
}

func reverseHalfwordBytes(v uint64, is64 bool) uint64 {
	if is64 {
		var r uint64
		for i := 0; i < 4; i++ {
			h := uint16(v >> (i * 16))
			r |= uint64(bits.ReverseBytes16(h)) << (i * 16)
		}
		return r
	}
	var r uint32
	for i := 0; i < 2; i++ {
		h := uint16(uint32(v) >> (i * 16))
		r |= uint32(bits.ReverseBytes16(h)) << (i * 16)
	}
	return uint64(r)
}

func reverseWordBytes(v uint64) uint64 {
	lo := bits.ReverseBytes32(uint32(v))
	hi := bits.ReverseBytes32(uint32(v >> 32))
	return uint64(lo) | uint64(hi)<<32
}

func countLeadingSignBits(v uint64, width uint) uint64 {
	signBit := (v >> (width - 1)) & 1
	inverted := v
	if signBit == 1 {
		inverted = ^v
	}
	if width == 32 {
		return uint64(insts.CountLeadingZeros32(uint32(inverted)) - 1)
	}
	return uint64(insts.CountLeadingZeros64(inverted) - 1)
}

func (m *Machine) executeDataProc1Src(inst *insts.Instruction) {
	v := m.regFile.ReadReg(inst.Rn)
	width := uint(32)
	if inst.Is64Bit {
		width = 64
	}
	var result uint64
	switch inst.Op {
	case insts.OpRBIT:
		result = reverseBits(v, width)
	case insts.OpREV16:
		result = reverseHalfwordBytes(v, inst.Is64Bit)
	case insts.OpREV32:
		result = reverseWordBytes(v)
	case insts.OpREV:
		if inst.Is64Bit {
			result = bits.ReverseBytes64(v)
		} else {
			result = uint64(bits.ReverseBytes32(uint32(v)))
		}
	case insts.OpCLZ:
		if inst.Is64Bit {
			result = uint64(insts.CountLeadingZeros64(v))
		} else {
			result = uint64(insts.CountLeadingZeros32(uint32(v)))
		}
	case insts.OpCLS:
		result = countLeadingSignBits(v, width)
	}
	if width == 32 {
		result &= 0xFFFFFFFF
	}
	m.regFile.WriteReg(inst.Rd, result)
}

func (m *Machine) executeDataProc2Src(inst *insts.Instruction) {
	n := m.regFile.ReadReg(inst.Rn)
	mm := m.regFile.ReadReg(inst.Rm)
	var result uint64
	switch inst.Op {
	case insts.OpUDIV:
		if inst.Is64Bit {
			if mm != 0 {
				result = n / mm
			}
		} else if uint32(mm) != 0 {
			result = uint64(uint32(n) / uint32(mm))
		}
	case insts.OpSDIV:
		if inst.Is64Bit {
			nv, mv := int64(n), int64(mm)
			switch {
			case mv == 0:
				result = 0
			case nv == math.MinInt64 && mv == -1:
				result = uint64(nv)
			default:
				result = uint64(nv / mv)
			}
		} else {
			nv, mv := int32(uint32(n)), int32(uint32(mm))
			switch {
			case mv == 0:
				result = 0
			case nv == math.MinInt32 && mv == -1:
				result = uint64(uint32(nv))
			default:
				result = uint64(uint32(nv / mv))
			}
		}
	case insts.OpLSLV:
		result = shiftReg(n, insts.ShiftLSL, uint8(mm), inst.Is64Bit)
	case insts.OpLSRV:
		result = shiftReg(n, insts.ShiftLSR, uint8(mm), inst.Is64Bit)
	case insts.OpASRV:
		result = shiftReg(n, insts.ShiftASR, uint8(mm), inst.Is64Bit)
	case insts.OpRORV:
		result = shiftReg(n, insts.ShiftROR, uint8(mm), inst.Is64Bit)
	}
	m.regFile.WriteReg(inst.Rd, result)
}

// mulHiSigned computes the high 64 bits of the signed 128-bit product a*b
// using the unsigned widening multiply plus the standard two correction
// terms.
func mulHiSigned(a, b int64) uint64 {
	hi, _ := bits.Mul64(uint64(a), uint64(b))
	if a < 0 {
		hi -= uint64(b)
	}
	if b < 0 {
		hi -= uint64(a)
	}
	return hi
}

func (m *Machine) executeDataProc3Src(inst *insts.Instruction) {
	n := m.regFile.ReadReg(inst.Rn)
	mm := m.regFile.ReadReg(inst.Rm)
	a := m.regFile.ReadReg(inst.Ra)
	var result uint64
	switch inst.Op {
	case insts.OpMADD:
		result = a + n*mm
	case insts.OpMSUB:
		result = a - n*mm
	case insts.OpSMADDL:
		result = uint64(int64(a) + int64(int32(uint32(n)))*int64(int32(uint32(mm))))
	case insts.OpSMSUBL:
		result = uint64(int64(a) - int64(int32(uint32(n)))*int64(int32(uint32(mm))))
	case insts.OpUMADDL:
		result = a + uint64(uint32(n))*uint64(uint32(mm))
	case insts.OpUMSUBL:
		result = a - uint64(uint32(n))*uint64(uint32(mm))
	case insts.OpSMULH:
		result = mulHiSigned(int64(n), int64(mm))
	case insts.OpUMULH:
		hi, _ := bits.Mul64(n, mm)
		result = hi
	}
	if !inst.Is64Bit {
		result &= 0xFFFFFFFF
	}
	m.regFile.WriteReg(inst.Rd, result)
}

func (m *Machine) executeCondSelect(inst *insts.Instruction) {
	var result uint64
	if checkCond(m.regFile.PSTATE, inst.Cond) {
		result = m.regFile.ReadReg(inst.Rn)
	} else {
		mm := m.regFile.ReadReg(inst.Rm)
		switch inst.Op {
		case insts.OpCSEL:
			result = mm
		case insts.OpCSINC:
			result = mm + 1
		case insts.OpCSINV:
			result = ^mm
		case insts.OpCSNEG:
			result = uint64(-int64(mm))
		}
	}
	if !inst.Is64Bit {
		result &= 0xFFFFFFFF
	}
	m.regFile.WriteReg(inst.Rd, result)
}

func (m *Machine) executeCondCmp(inst *insts.Instruction) {
	if checkCond(m.regFile.PSTATE, inst.Cond) {
		n := m.regFile.ReadReg(inst.Rn)
		var op2 uint64
		if inst.CCUseImm {
			op2 = inst.Imm2
		} else {
			op2 = m.regFile.ReadReg(inst.Rm)
		}
		m.alu.AddSub(inst.Op == insts.OpCCMP, n, op2, inst.Is64Bit, true)
		return
	}
	nzcv := inst.Imm
	m.regFile.setNZCV(nzcv&0b1000 != 0, nzcv&0b0100 != 0, nzcv&0b0010 != 0, nzcv&0b0001 != 0)
}

// --- Loads / stores ---------------------------------------------------------

func isSIMDLoadStoreArrangement(a insts.Arrangement) bool {
	switch a {
	case insts.ArrB, insts.ArrH, insts.ArrS, insts.ArrD, insts.Arr1D:
		return true
	}
	return false
}

func (m *Machine) loadStoreAddress(inst *insts.Instruction) uint64 {
	base := m.regFile.ReadRegOrSP(inst.Rn)
	switch inst.IndexMode {
	case insts.IndexPre:
		addr := uint64(int64(base) + inst.SignedImm)
		m.regFile.WriteRegOrSP(inst.Rn, addr)
		return addr
	case insts.IndexPost:
		addr := base
		m.regFile.WriteRegOrSP(inst.Rn, uint64(int64(base)+inst.SignedImm))
		return addr
	case insts.IndexRegBase:
		var offset uint64
		if inst.HasExtend {
			offset = extendReg(m.regFile.ReadReg(inst.Rm), inst.ExtendType, inst.ShiftAmount)
		} else {
			offset = m.regFile.ReadReg(inst.Rm) << inst.ShiftAmount
		}
		return base + offset
	default: // IndexNone, IndexUnscaled
		return uint64(int64(base) + inst.SignedImm)
	}
}

func (m *Machine) loadStorePairAddress(inst *insts.Instruction) uint64 {
	base := m.regFile.ReadRegOrSP(inst.Rn)
	switch inst.IndexMode {
	case insts.IndexPre:
		addr := uint64(int64(base) + inst.SignedImm)
		m.regFile.WriteRegOrSP(inst.Rn, addr)
		return addr
	case insts.IndexPost:
		addr := base
		m.regFile.WriteRegOrSP(inst.Rn, uint64(int64(base)+inst.SignedImm))
		return addr
	default:
		return uint64(int64(base) + inst.SignedImm)
	}
}

// accessSize reports the byte width of a scalar load/store, for the cache
// observer; it mirrors the width each LoadStoreUnit method below actually
// transfers.
func accessSize(op insts.Op, is64Bit bool) int {
	switch op {
	case insts.OpLDRB, insts.OpSTRB, insts.OpLDRSB:
		return 1
	case insts.OpLDRH, insts.OpSTRH, insts.OpLDRSH:
		return 2
	case insts.OpLDRSW:
		return 4
	case insts.OpLDR, insts.OpSTR:
		if is64Bit {
			return 8
		}
		return 4
	}
	return 8
}

func isStoreOp(op insts.Op) bool {
	switch op {
	case insts.OpSTR, insts.OpSTRB, insts.OpSTRH, insts.OpSTP, insts.OpSTXR, insts.OpSTLXR, insts.OpSTLR:
		return true
	}
	return false
}

func (m *Machine) executeScalarLoadStore(inst *insts.Instruction, addr uint64) error {
	if m.cacheObserver != nil {
		m.cacheObserver.Observe(addr, accessSize(inst.Op, inst.Is64Bit), isStoreOp(inst.Op))
	}
	switch inst.Op {
	case insts.OpLDR:
		if inst.Is64Bit {
			return m.ls.LDR64(inst.Rd, addr)
		}
		return m.ls.LDR32(inst.Rd, addr)
	case insts.OpSTR:
		if inst.Is64Bit {
			return m.ls.STR64(inst.Rd, addr)
		}
		return m.ls.STR32(inst.Rd, addr)
	case insts.OpLDRB:
		return m.ls.LDRB(inst.Rd, addr)
	case insts.OpSTRB:
		return m.ls.STRB(inst.Rd, addr)
	case insts.OpLDRH:
		return m.ls.LDRH(inst.Rd, addr)
	case insts.OpSTRH:
		return m.ls.STRH(inst.Rd, addr)
	case insts.OpLDRSB:
		return m.ls.LDRSB(inst.Rd, addr, inst.Is64Bit)
	case insts.OpLDRSH:
		return m.ls.LDRSH(inst.Rd, addr, inst.Is64Bit)
	case insts.OpLDRSW:
		return m.ls.LDRSW(inst.Rd, addr)
	}
	return nil
}

func (m *Machine) readSIMDScalarByArrangement(n uint8, arr insts.Arrangement) uint64 {
	switch arr {
	case insts.ArrB:
		return uint64(m.simdRegFile.Read8(n))
	case insts.ArrH:
		return uint64(m.simdRegFile.Read16(n))
	case insts.ArrS:
		return uint64(m.simdRegFile.Read32(n))
	default:
		return m.simdRegFile.Read64(n)
	}
}

func (m *Machine) writeSIMDScalarByArrangement(n uint8, arr insts.Arrangement, v uint64) {
	switch arr {
	case insts.ArrB:
		m.simdRegFile.Write8(n, uint8(v))
	case insts.ArrH:
		m.simdRegFile.Write16(n, uint16(v))
	case insts.ArrS:
		m.simdRegFile.Write32(n, uint32(v))
	default:
		m.simdRegFile.Write64(n, v)
	}
}

func (m *Machine) readSIMDWidth(addr uint64, arr insts.Arrangement) (uint64, error) {
	switch arr {
	case insts.ArrB:
		v, err := m.memory.Read8(addr)
		return uint64(v), err
	case insts.ArrH:
		v, err := m.memory.Read16(addr)
		return uint64(v), err
	case insts.ArrS:
		v, err := m.memory.Read32(addr)
		return uint64(v), err
	default:
		return m.memory.Read64(addr)
	}
}

func (m *Machine) writeSIMDWidth(addr uint64, arr insts.Arrangement, v uint64) error {
	switch arr {
	case insts.ArrB:
		return m.memory.Write8(addr, uint8(v))
	case insts.ArrH:
		return m.memory.Write16(addr, uint16(v))
	case insts.ArrS:
		return m.memory.Write32(addr, uint32(v))
	default:
		return m.memory.Write64(addr, v)
	}
}

func (m *Machine) executeSIMDSingleLoadStore(inst *insts.Instruction, addr uint64) error {
	switch inst.Op {
	case insts.OpLDRQ:
		return m.simd.LDRQ(inst.Rd, addr)
	case insts.OpSTRQ:
		return m.simd.STRQ(inst.Rd, addr)
	case insts.OpLDR:
		v, err := m.readSIMDWidth(addr, inst.Arrangement)
		if err != nil {
			return err
		}
		m.writeSIMDScalarByArrangement(inst.Rd, inst.Arrangement, v)
		return nil
	case insts.OpSTR:
		return m.writeSIMDWidth(addr, inst.Arrangement, m.readSIMDScalarByArrangement(inst.Rd, inst.Arrangement))
	}
	return nil
}

func (m *Machine) executeLoadStoreLit(inst *insts.Instruction, pc uint64) error {
	addr := uint64(int64(pc) + inst.BranchOffset)
	if isSIMDLoadStoreArrangement(inst.Arrangement) {
		v, err := m.readSIMDWidth(addr, inst.Arrangement)
		if err != nil {
			return err
		}
		m.writeSIMDScalarByArrangement(inst.Rd, inst.Arrangement, v)
		return nil
	}
	if inst.Op == insts.OpLDRSW {
		return m.ls.LDRSW(inst.Rd, addr)
	}
	if inst.Is64Bit {
		return m.ls.LDR64(inst.Rd, addr)
	}
	return m.ls.LDR32(inst.Rd, addr)
}

// executeLoadStoreExclusive models the architecture under a uniprocessor
// assumption: the exclusive monitor always holds, so a store-exclusive
// always succeeds (Rs reports success, the value 0).
func (m *Machine) executeLoadStoreExclusive(inst *insts.Instruction) error {
	addr := m.regFile.ReadRegOrSP(inst.Rn)
	switch inst.Op {
	case insts.OpLDXR, insts.OpLDAXR, insts.OpLDAR:
		if inst.Is64Bit {
			return m.ls.LDR64(inst.Rd, addr)
		}
		return m.ls.LDR32(inst.Rd, addr)
	case insts.OpSTXR, insts.OpSTLXR:
		var err error
		if inst.Is64Bit {
			err = m.ls.STR64(inst.Rd, addr)
		} else {
			err = m.ls.STR32(inst.Rd, addr)
		}
		if err != nil {
			return err
		}
		m.regFile.WriteReg(inst.Rm, 0)
		return nil
	case insts.OpSTLR:
		if inst.Is64Bit {
			return m.ls.STR64(inst.Rd, addr)
		}
		return m.ls.STR32(inst.Rd, addr)
	}
	return nil
}

func (m *Machine) executeSIMDLoadStoreStruct(inst *insts.Instruction) error {
	addr := m.regFile.ReadRegOrSP(inst.Rn)
	var err error
	switch inst.Op {
	case insts.OpLDn:
		err = m.simd.LDn(inst.Rd, addr, inst.NumRegs, inst.Arrangement)
	case insts.OpSTn:
		err = m.simd.STn(inst.Rd, addr, inst.NumRegs, inst.Arrangement)
	case insts.OpLDnR:
		err = m.simd.LDnR(inst.Rd, addr, inst.NumRegs, inst.Arrangement)
	}
	if err != nil {
		return err
	}
	if inst.IndexMode == insts.IndexPost {
		if inst.PostIndexReg {
			m.regFile.WriteRegOrSP(inst.Rn, addr+m.regFile.ReadReg(inst.Rm))
		} else {
			m.regFile.WriteRegOrSP(inst.Rn, addr+uint64(inst.SignedImm))
		}
	}
	return nil
}

// --- System / exception generation ------------------------------------------

func (m *Machine) executeSystem(inst *insts.Instruction) {
	switch inst.Op {
	case insts.OpMRS:
		m.regFile.WriteReg(inst.Rd, m.regFile.ReadSysReg(inst.Sysreg, m.instructionsExecuted))
	case insts.OpMSR:
		m.regFile.WriteSysReg(inst.Sysreg, m.regFile.ReadReg(inst.Rd))
	case insts.OpDCZVA:
		addr := m.regFile.ReadReg(inst.Rd)
		m.memory.ZeroFill(addr&^63, 64)
	case insts.OpNOP, insts.OpDMB, insts.OpDSB, insts.OpISB, insts.OpBTI, insts.OpXPACLRI:
		// No architectural effect in this single-hart model: nothing
		// reorders across a barrier, and there's no speculation to land on.
	}
}

func (m *Machine) executeSVC(inst *insts.Instruction, pc uint64) (bool, error) {
	switch inst.Op {
	case insts.OpSVC:
		if m.supervisorCall != nil {
			m.supervisorCall(m)
			return true, nil
		}
		result := m.syscallHandler.Handle()
		if result.Exited {
			m.exited = true
			m.exitCode = result.ExitCode
			return false, nil
		}
		return true, nil
	case insts.OpBRK:
		m.hardTerminate(fmt.Sprintf("BRK #%d at 0x%x", inst.Imm, pc), inst.Imm)
		return false, nil
	}
	return true, nil
}

// --- Scalar floating point ---------------------------------------------------

func (m *Machine) executeFP1Src(inst *insts.Instruction) {
	switch inst.Op {
	case insts.OpFMOV:
		m.fp.FMOV(inst.Rd, inst.Rn, inst.Precision)
	case insts.OpFABS:
		m.fp.FABS(inst.Rd, inst.Rn, inst.Precision)
	case insts.OpFNEG:
		m.fp.FNEG(inst.Rd, inst.Rn, inst.Precision)
	case insts.OpFSQRT:
		m.fp.FSQRT(inst.Rd, inst.Rn, inst.Precision)
	case insts.OpFCVT:
		m.fp.FCVT(inst.Rd, inst.Rn, inst.Precision, insts.FPPrecision(inst.Imm))
	case insts.OpFRINTA:
		m.fp.FRINTA(inst.Rd, inst.Rn, inst.Precision)
	}
}

func (m *Machine) executeFP2Src(inst *insts.Instruction) {
	switch inst.Op {
	case insts.OpFMUL:
		m.fp.FMUL(inst.Rd, inst.Rn, inst.Rm, inst.Precision)
	case insts.OpFDIV:
		m.fp.FDIV(inst.Rd, inst.Rn, inst.Rm, inst.Precision)
	case insts.OpFADD:
		m.fp.FADD(inst.Rd, inst.Rn, inst.Rm, inst.Precision)
	case insts.OpFSUB:
		m.fp.FSUB(inst.Rd, inst.Rn, inst.Rm, inst.Precision)
	}
}

func (m *Machine) executeFP3Src(inst *insts.Instruction) {
	switch inst.Op {
	case insts.OpFMADD:
		m.fp.FMADD(inst.Rd, inst.Rn, inst.Rm, inst.Ra, inst.Precision)
	case insts.OpFMSUB:
		m.fp.FMSUB(inst.Rd, inst.Rn, inst.Rm, inst.Ra, inst.Precision)
	case insts.OpFNMADD:
		m.fp.FNMADD(inst.Rd, inst.Rn, inst.Rm, inst.Ra, inst.Precision)
	case insts.OpFNMSUB:
		m.fp.FNMSUB(inst.Rd, inst.Rn, inst.Rm, inst.Ra, inst.Precision)
	}
}

func (m *Machine) writeConvertedInt(rd uint8, v uint64, is64 bool) {
	if !is64 {
		v &= 0xFFFFFFFF
	}
	m.regFile.WriteReg(rd, v)
}

func (m *Machine) executeFMOVIntConvert(inst *insts.Instruction) {
	switch {
	case inst.FPHighHalf && inst.FPToGP:
		m.fp.FMOVHighToGeneral(inst.Rd, inst.Rn)
	case inst.FPHighHalf:
		m.fp.FMOVGeneralToFPHigh(inst.Rd, inst.Rn)
	case inst.FPToGP:
		m.fp.FMOVFPToGeneral(inst.Rd, inst.Rn, inst.Is64Bit)
	default:
		m.fp.FMOVGeneralToFP(inst.Rd, inst.Rn, inst.Is64Bit)
	}
}

func (m *Machine) executeFPIntConvert(inst *insts.Instruction) {
	switch inst.Op {
	case insts.OpSCVTF:
		v := m.regFile.ReadReg(inst.Rn)
		var sv int64
		if inst.Is64Bit {
			sv = int64(v)
		} else {
			sv = int64(int32(uint32(v)))
		}
		m.fp.SCVTF(inst.Rd, sv, inst.FBits, inst.Precision)
	case insts.OpUCVTF:
		v := m.regFile.ReadReg(inst.Rn)
		if !inst.Is64Bit {
			v = uint64(uint32(v))
		}
		m.fp.UCVTF(inst.Rd, v, inst.FBits, inst.Precision)
	case insts.OpFCVTZS:
		m.writeConvertedInt(inst.Rd, uint64(m.fp.FCVTZS(inst.Rn, inst.Precision, inst.FBits, inst.Is64Bit)), inst.Is64Bit)
	case insts.OpFCVTZU:
		m.writeConvertedInt(inst.Rd, m.fp.FCVTZU(inst.Rn, inst.Precision, inst.FBits, inst.Is64Bit), inst.Is64Bit)
	case insts.OpFCVTAS:
		m.writeConvertedInt(inst.Rd, uint64(m.fp.FCVTAS(inst.Rn, inst.Precision, inst.Is64Bit)), inst.Is64Bit)
	case insts.OpFCVTAU:
		m.writeConvertedInt(inst.Rd, m.fp.FCVTAU(inst.Rn, inst.Precision, inst.Is64Bit), inst.Is64Bit)
	case insts.OpFMOV:
		m.executeFMOVIntConvert(inst)
	}
}

// --- SIMD --------------------------------------------------------------------

func (m *Machine) executeSIMDCopy(inst *insts.Instruction) {
	width := inst.Arrangement.ElementBits()
	switch inst.Op {
	case insts.OpDUP:
		if inst.FromGeneral {
			m.simd.DUPGeneral(inst.Rd, inst.Rn, inst.Arrangement)
		} else {
			m.simd.DUPElement(inst.Rd, inst.Rn, inst.ElemIndex, inst.Arrangement)
		}
	case insts.OpINS:
		if inst.FromGeneral {
			m.simd.INSGeneral(inst.Rd, inst.ElemIndex, inst.Rn, width)
		} else {
			m.simd.INSElement(inst.Rd, inst.ElemIndex, inst.Rn, inst.ElemIndex2, width)
		}
	case insts.OpUMOV:
		m.simd.UMOV(inst.Rd, inst.Rn, inst.ElemIndex, width)
	case insts.OpSMOV:
		m.simd.SMOV(inst.Rd, inst.Rn, inst.ElemIndex, width, inst.Is64Bit)
	}
}

func (m *Machine) executeSIMDThreeSame(inst *insts.Instruction) {
	switch inst.Op {
	case insts.OpVADD:
		m.simd.VADD(inst.Rd, inst.Rn, inst.Rm, inst.Arrangement)
	case insts.OpVSUB:
		m.simd.VSUB(inst.Rd, inst.Rn, inst.Rm, inst.Arrangement)
	case insts.OpVAND:
		m.simd.VAND(inst.Rd, inst.Rn, inst.Rm, inst.Arrangement)
	case insts.OpVBIC:
		m.simd.VBIC(inst.Rd, inst.Rn, inst.Rm, inst.Arrangement)
	case insts.OpVORR:
		m.simd.VORR(inst.Rd, inst.Rn, inst.Rm, inst.Arrangement)
	case insts.OpVORN:
		m.simd.VORN(inst.Rd, inst.Rn, inst.Rm, inst.Arrangement)
	case insts.OpVEOR:
		m.simd.VEOR(inst.Rd, inst.Rn, inst.Rm, inst.Arrangement)
	case insts.OpVBSL:
		m.simd.VBSL(inst.Rd, inst.Rn, inst.Rm)
	case insts.OpVBIT:
		m.simd.VBIT(inst.Rd, inst.Rn, inst.Rm)
	case insts.OpVBIF:
		m.simd.VBIF(inst.Rd, inst.Rn, inst.Rm)
	case insts.OpVCMGT:
		m.simd.VCMGT(inst.Rd, inst.Rn, inst.Rm, inst.Arrangement)
	case insts.OpVCMHS:
		m.simd.VCMHS(inst.Rd, inst.Rn, inst.Rm, inst.Arrangement)
	case insts.OpVCMEQ:
		m.simd.VCMEQ(inst.Rd, inst.Rn, inst.Rm, inst.Arrangement)
	case insts.OpVMUL:
		m.simd.VMUL(inst.Rd, inst.Rn, inst.Rm, inst.Arrangement)
	case insts.OpVMLS:
		m.simd.VMLS(inst.Rd, inst.Rn, inst.Rm, inst.Arrangement)
	case insts.OpVADDP:
		m.simd.VADDP(inst.Rd, inst.Rn, inst.Rm, inst.Arrangement)
	case insts.OpVFADD:
		m.simd.VFADD(inst.Rd, inst.Rn, inst.Rm, inst.Arrangement)
	case insts.OpVFSUB:
		m.simd.VFSUB(inst.Rd, inst.Rn, inst.Rm, inst.Arrangement)
	case insts.OpVFMLA:
		m.simd.VFMLA(inst.Rd, inst.Rn, inst.Rm, inst.Arrangement)
	case insts.OpVFMUL:
		m.simd.VFMUL(inst.Rd, inst.Rn, inst.Rm, inst.Arrangement)
	case insts.OpVFDIV:
		m.simd.VFDIV(inst.Rd, inst.Rn, inst.Rm, inst.Arrangement)
	case insts.OpVUMAXP:
		m.simd.VUMAXP(inst.Rd, inst.Rn, inst.Rm, inst.Arrangement)
	case insts.OpVUMINP:
		m.simd.VUMINP(inst.Rd, inst.Rn, inst.Rm, inst.Arrangement)
	case insts.OpVUSHL:
		m.simd.VUSHLReg(inst.Rd, inst.Rn, inst.Rm, inst.Arrangement, false)
	case insts.OpVSSHL:
		m.simd.VUSHLReg(inst.Rd, inst.Rn, inst.Rm, inst.Arrangement, true)
	}
}

func (m *Machine) executeSIMDTwoReg(inst *insts.Instruction) {
	switch inst.Op {
	case insts.OpVCNT:
		m.simd.VCNT(inst.Rd, inst.Rn, inst.Arrangement)
	case insts.OpVXTN:
		m.simd.VXTN(inst.Rd, inst.Rn, inst.Arrangement)
	case insts.OpVFADDP:
		m.simd.VFADDP(inst.Rd, inst.Rn, inst.Rn, inst.Arrangement)
	}
}

// widenArrangement maps a shift-by-immediate's source arrangement (as the
// decoder derives it from immh) to the full-width destination arrangement
// USHLL/SSHLL write. The "2" (upper-half source) forms aren't modeled
// separately: both read the low lanes of Vn, matching the q=0 encoding.
func widenArrangement(a insts.Arrangement) insts.Arrangement {
	switch a.ElementBits() {
	case 8:
		return insts.Arr8H
	case 16:
		return insts.Arr4S
	case 32:
		return insts.Arr2D
	}
	return a
}

func (m *Machine) executeSIMDShiftImm(inst *insts.Instruction) {
	shift := uint8(inst.Imm)
	switch inst.Op {
	case insts.OpVUSHR:
		m.simd.VUSHR(inst.Rd, inst.Rn, inst.Arrangement, shift)
	case insts.OpVSSHR:
		m.simd.VSSHR(inst.Rd, inst.Rn, inst.Arrangement, shift)
	case insts.OpVSHL:
		m.simd.VSHL(inst.Rd, inst.Rn, inst.Arrangement, shift)
	case insts.OpVUSHLL:
		m.simd.VUSHLL(inst.Rd, inst.Rn, widenArrangement(inst.Arrangement), shift)
	case insts.OpVSSHLL:
		m.simd.VSSHLL(inst.Rd, inst.Rn, widenArrangement(inst.Arrangement), shift)
	case insts.OpVSHRN:
		m.simd.VSHRN(inst.Rd, inst.Rn, inst.Arrangement, shift)
	}
}

func (m *Machine) executeSIMDPermute(inst *insts.Instruction) {
	switch inst.Op {
	case insts.OpVUZP1:
		m.simd.VUZP1(inst.Rd, inst.Rn, inst.Rm, inst.Arrangement)
	case insts.OpVUZP2:
		m.simd.VUZP2(inst.Rd, inst.Rn, inst.Rm, inst.Arrangement)
	case insts.OpVTRN1:
		m.simd.VTRN1(inst.Rd, inst.Rn, inst.Rm, inst.Arrangement)
	case insts.OpVTRN2:
		m.simd.VTRN2(inst.Rd, inst.Rn, inst.Rm, inst.Arrangement)
	case insts.OpVZIP1:
		m.simd.VZIP1(inst.Rd, inst.Rn, inst.Rm, inst.Arrangement)
	case insts.OpVZIP2:
		m.simd.VZIP2(inst.Rd, inst.Rn, inst.Rm, inst.Arrangement)
	}
}
