// Package main provides the entry point for a64sim, a user-mode AArch64
// emulator.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/a64sim/a64sim/emu"
	"github.com/a64sim/a64sim/insts"
	"github.com/a64sim/a64sim/loader"
	"github.com/a64sim/a64sim/timing/cache"
	"github.com/a64sim/a64sim/timing/latency"
)

var (
	timingFlag = flag.Bool("timing", false, "report estimated cycle count and L1D hit rate alongside the run")
	configPath = flag.String("config", "", "path to a timing configuration JSON file (implies -timing)")
	verbose    = flag.Bool("v", false, "print a disassembly trace of every instruction executed")
)

func main() {
	flag.Parse()

	if flag.NArg() < 1 {
		fmt.Fprintf(os.Stderr, "Usage: a64sim [options] <program.elf>\n")
		fmt.Fprintf(os.Stderr, "\nOptions:\n")
		flag.PrintDefaults()
		os.Exit(1)
	}

	programPath := flag.Arg(0)

	prog, err := loader.Load(programPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "a64sim: error loading program: %v\n", err)
		os.Exit(1)
	}

	if len(prog.Segments) == 0 {
		fmt.Fprintf(os.Stderr, "a64sim: %s has no loadable segments\n", programPath)
		os.Exit(1)
	}

	base, stackTop, buf := layout(prog)

	machine := emu.NewMachine(buf, base, prog.EntryPoint, loader.DefaultStackSize, stackTop)
	machine.HardTermination = func(m *emu.Machine, message string, value uint64) {
		fmt.Fprintf(os.Stderr, "a64sim: fatal: %s (value=0x%x)\n", message, value)
		os.Exit(1)
	}

	segments := make([]emu.Segment, len(prog.Segments))
	for i, seg := range prog.Segments {
		segments[i] = emu.Segment{
			VAddr:    seg.VirtAddr,
			Data:     seg.Data,
			MemSize:  seg.MemSize,
			FileSize: uint64(len(seg.Data)),
		}
	}
	if err := machine.Memory().LoadSegments(segments); err != nil {
		fmt.Fprintf(os.Stderr, "a64sim: error loading segments: %v\n", err)
		os.Exit(1)
	}

	if *verbose {
		fmt.Printf("Loaded: %s\n", programPath)
		fmt.Printf("Entry point: 0x%x\n", prog.EntryPoint)
		fmt.Printf("Segments: %d\n", len(prog.Segments))
		machine.TraceInstructions(true)
		machine.SetTracer(os.Stdout)
	}

	if *timingFlag || *configPath != "" {
		exitCode := runTiming(machine, programPath)
		os.Exit(int(exitCode))
	}

	exitCode := runEmulation(machine, programPath)
	os.Exit(int(exitCode))
}

// layout picks a backing buffer large enough to span every loadable segment
// plus a stack region immediately above the highest one. The emulator's flat
// Memory is a bounded []byte, not an OS address space, so the stack is placed
// just past the program image rather than at the real AArch64 Linux stack
// address loader.DefaultStackTop names.
func layout(prog *loader.Program) (base, stackTop uint64, buf []byte) {
	base = prog.Segments[0].VirtAddr
	var high uint64
	for _, seg := range prog.Segments {
		if seg.VirtAddr < base {
			base = seg.VirtAddr
		}
		end := seg.VirtAddr + seg.MemSize
		if end > high {
			high = end
		}
	}
	const pageSize = 0x1000
	high = (high + pageSize - 1) &^ (pageSize - 1)
	stackTop = high + loader.DefaultStackSize
	buf = make([]byte, stackTop-base)
	return base, stackTop, buf
}

// runEmulation runs the program in plain functional mode.
func runEmulation(machine *emu.Machine, programPath string) int64 {
	machine.Run(^uint64(0))

	if *verbose {
		fmt.Printf("\nProgram: %s\n", programPath)
		fmt.Printf("Exit code: %d\n", machine.ExitCode())
		fmt.Printf("Instructions executed: %d\n", machine.InstructionsExecuted())
	}

	return machine.ExitCode()
}

// runTiming runs the program to completion functionally, then separately
// tallies an estimated cycle count from the latency table and an L1D hit
// rate from a cache model observing every scalar access. Neither estimator
// is wired into the register/memory state the functional run produces - the
// cache's backing store is a private clone, so a wrong or stale cache line
// can never leak into the program's real result.
func runTiming(machine *emu.Machine, programPath string) int64 {
	var timingConfig *latency.TimingConfig
	if *configPath != "" {
		var err error
		timingConfig, err = latency.LoadConfig(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "a64sim: error loading timing config: %v\n", err)
			os.Exit(1)
		}
	} else {
		timingConfig = latency.DefaultTimingConfig()
	}
	latencyTable := latency.NewTableWithConfig(timingConfig)
	decoder := insts.NewDecoder()

	scratch := emu.NewMemory(make([]byte, len(machine.Memory().Bytes)), machine.Memory().Base)
	copy(scratch.Bytes, machine.Memory().Bytes)
	l1d := cache.New(cache.DefaultL1DConfig(), cache.NewMemoryBacking(scratch))
	machine.SetCacheObserver(cacheObserver{c: l1d})

	var cycles uint64
	for !machine.Exited() {
		pc := machine.Registers().PC
		word, err := machine.Memory().Read32(pc)
		if err != nil {
			break
		}
		cycles += latencyTable.GetLatency(decoder.Decode(word))
		if err := machine.Step(); err != nil {
			break
		}
	}

	stats := l1d.Stats()
	total := stats.Hits + stats.Misses
	var hitRate float64
	if total > 0 {
		hitRate = 100.0 * float64(stats.Hits) / float64(total)
	}

	fmt.Printf("\n")
	fmt.Printf("Program: %s\n", programPath)
	fmt.Printf("Exit code: %d\n", machine.ExitCode())
	fmt.Printf("Instructions executed: %d\n", machine.InstructionsExecuted())
	fmt.Printf("Estimated cycles: %d\n", cycles)
	fmt.Printf("L1D accesses: %d (hits %d, misses %d, hit rate %.1f%%)\n", total, stats.Hits, stats.Misses, hitRate)
	fmt.Printf("L1D evictions: %d, writebacks: %d\n", stats.Evictions, stats.Writebacks)

	return machine.ExitCode()
}

// cacheObserver bridges a scalar access reported by the execute loop to the
// L1D model. Its backing store is a private clone of the machine's memory
// (see runTiming), so it never touches the machine's real memory.
type cacheObserver struct {
	c *cache.Cache
}

func (o cacheObserver) Observe(addr uint64, size int, isWrite bool) {
	if isWrite {
		o.c.Write(addr, size, 0)
	} else {
		o.c.Read(addr, size)
	}
}
