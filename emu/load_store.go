// Package emu provides functional ARM64 emulation.
package emu

// LoadStoreUnit implements AArch64 scalar load/store operations against a
// resolved effective address; the Machine computes that address (unsigned
// offset, pre/post-index writeback, or register offset) before calling in.
type LoadStoreUnit struct {
	regFile *RegFile
	memory  *Memory
}

// NewLoadStoreUnit creates a new LoadStoreUnit connected to the given
// register file and memory.
func NewLoadStoreUnit(regFile *RegFile, memory *Memory) *LoadStoreUnit {
	return &LoadStoreUnit{regFile: regFile, memory: memory}
}

func (lsu *LoadStoreUnit) LDR64(rd uint8, addr uint64) error {
	v, err := lsu.memory.Read64(addr)
	if err != nil {
		return err
	}
	lsu.regFile.WriteReg(rd, v)
	return nil
}

func (lsu *LoadStoreUnit) LDR32(rd uint8, addr uint64) error {
	v, err := lsu.memory.Read32(addr)
	if err != nil {
		return err
	}
	lsu.regFile.WriteReg(rd, uint64(v))
	return nil
}

func (lsu *LoadStoreUnit) STR64(rd uint8, addr uint64) error {
	return lsu.memory.Write64(addr, lsu.regFile.ReadReg(rd))
}

func (lsu *LoadStoreUnit) STR32(rd uint8, addr uint64) error {
	return lsu.memory.Write32(addr, uint32(lsu.regFile.ReadReg(rd)))
}

func (lsu *LoadStoreUnit) LDRB(rd uint8, addr uint64) error {
	v, err := lsu.memory.Read8(addr)
	if err != nil {
		return err
	}
	lsu.regFile.WriteReg(rd, uint64(v))
	return nil
}

func (lsu *LoadStoreUnit) STRB(rd uint8, addr uint64) error {
	return lsu.memory.Write8(addr, uint8(lsu.regFile.ReadReg(rd)))
}

func (lsu *LoadStoreUnit) LDRSB(rd uint8, addr uint64, is64 bool) error {
	v, err := lsu.memory.Read8(addr)
	if err != nil {
		return err
	}
	if is64 {
		lsu.regFile.WriteReg(rd, uint64(int64(int8(v))))
	} else {
		lsu.regFile.WriteReg(rd, uint64(uint32(int32(int8(v)))))
	}
	return nil
}

func (lsu *LoadStoreUnit) LDRH(rd uint8, addr uint64) error {
	v, err := lsu.memory.Read16(addr)
	if err != nil {
		return err
	}
	lsu.regFile.WriteReg(rd, uint64(v))
	return nil
}

func (lsu *LoadStoreUnit) STRH(rd uint8, addr uint64) error {
	return lsu.memory.Write16(addr, uint16(lsu.regFile.ReadReg(rd)))
}

func (lsu *LoadStoreUnit) LDRSH(rd uint8, addr uint64, is64 bool) error {
	v, err := lsu.memory.Read16(addr)
	if err != nil {
		return err
	}
	if is64 {
		lsu.regFile.WriteReg(rd, uint64(int64(int16(v))))
	} else {
		lsu.regFile.WriteReg(rd, uint64(uint32(int32(int16(v)))))
	}
	return nil
}

func (lsu *LoadStoreUnit) LDRSW(rd uint8, addr uint64) error {
	v, err := lsu.memory.Read32(addr)
	if err != nil {
		return err
	}
	lsu.regFile.WriteReg(rd, uint64(int64(int32(v))))
	return nil
}

// LDP/STP pair helpers: element width selected by the caller via is64.

func (lsu *LoadStoreUnit) LDP(rt, rt2 uint8, addr uint64, is64 bool) error {
	if is64 {
		v1, err := lsu.memory.Read64(addr)
		if err != nil {
			return err
		}
		v2, err := lsu.memory.Read64(addr + 8)
		if err != nil {
			return err
		}
		lsu.regFile.WriteReg(rt, v1)
		lsu.regFile.WriteReg(rt2, v2)
		return nil
	}
	v1, err := lsu.memory.Read32(addr)
	if err != nil {
		return err
	}
	v2, err := lsu.memory.Read32(addr + 4)
	if err != nil {
		return err
	}
	lsu.regFile.WriteReg(rt, uint64(v1))
	lsu.regFile.WriteReg(rt2, uint64(v2))
	return nil
}

func (lsu *LoadStoreUnit) LDPSW(rt, rt2 uint8, addr uint64) error {
	v1, err := lsu.memory.Read32(addr)
	if err != nil {
		return err
	}
	v2, err := lsu.memory.Read32(addr + 4)
	if err != nil {
		return err
	}
	lsu.regFile.WriteReg(rt, uint64(int64(int32(v1))))
	lsu.regFile.WriteReg(rt2, uint64(int64(int32(v2))))
	return nil
}

func (lsu *LoadStoreUnit) STP(rt, rt2 uint8, addr uint64, is64 bool) error {
	if is64 {
		if err := lsu.memory.Write64(addr, lsu.regFile.ReadReg(rt)); err != nil {
			return err
		}
		return lsu.memory.Write64(addr+8, lsu.regFile.ReadReg(rt2))
	}
	if err := lsu.memory.Write32(addr, uint32(lsu.regFile.ReadReg(rt))); err != nil {
		return err
	}
	return lsu.memory.Write32(addr+4, uint32(lsu.regFile.ReadReg(rt2)))
}
