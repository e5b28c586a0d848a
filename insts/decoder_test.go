package insts_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/a64sim/a64sim/insts"
)

var _ = Describe("Decoder", func() {
	var d *insts.Decoder

	BeforeEach(func() {
		d = insts.NewDecoder()
	})

	It("decodes ADD immediate", func() {
		// ADD X0, X1, #42
		inst := d.Decode(0x9100A820)
		Expect(inst.Op).To(Equal(insts.OpADD))
		Expect(inst.Format).To(Equal(insts.FormatDPImm))
		Expect(inst.Rd).To(Equal(uint8(0)))
		Expect(inst.Rn).To(Equal(uint8(1)))
		Expect(inst.Imm).To(Equal(uint64(42)))
		Expect(inst.Is64Bit).To(BeTrue())
	})

	It("decodes SUB immediate", func() {
		// SUB X0, X1, #10
		inst := d.Decode(0xD1002820)
		Expect(inst.Op).To(Equal(insts.OpSUB))
		Expect(inst.Imm).To(Equal(uint64(10)))
	})

	It("decodes AND register", func() {
		// AND X0, X1, X2
		inst := d.Decode(0x8A020020)
		Expect(inst.Op).To(Equal(insts.OpAND))
		Expect(inst.Format).To(Equal(insts.FormatDPReg))
		Expect(inst.Rd).To(Equal(uint8(0)))
		Expect(inst.Rn).To(Equal(uint8(1)))
		Expect(inst.Rm).To(Equal(uint8(2)))
	})

	It("decodes MOVZ with its shift field", func() {
		// MOVZ X8, #93
		inst := d.Decode(0xD2800BA8)
		Expect(inst.Op).To(Equal(insts.OpMOVZ))
		Expect(inst.Rd).To(Equal(uint8(8)))
		Expect(inst.Imm).To(Equal(uint64(93)))
		Expect(inst.Shift).To(Equal(uint8(0)))
	})

	It("decodes an unconditional branch and its offset", func() {
		// B #8
		inst := d.Decode(0x14000002)
		Expect(inst.Op).To(Equal(insts.OpB))
		Expect(inst.BranchOffset).To(Equal(int64(8)))
	})

	It("decodes BL and distinguishes it from B", func() {
		// BL #8
		inst := d.Decode(0x94000002)
		Expect(inst.Op).To(Equal(insts.OpBL))
		Expect(inst.BranchOffset).To(Equal(int64(8)))
	})

	It("decodes B.EQ with its condition field", func() {
		// B.EQ #8
		inst := d.Decode(0x54000040)
		Expect(inst.Op).To(Equal(insts.OpBCond))
		Expect(inst.Cond).To(Equal(insts.Cond(0))) // EQ
		Expect(inst.BranchOffset).To(Equal(int64(8)))
	})

	It("decodes RET", func() {
		inst := d.Decode(0xD65F03C0)
		Expect(inst.Op).To(Equal(insts.OpRET))
		Expect(inst.Rn).To(Equal(uint8(30)))
	})

	It("decodes LDR with an unsigned immediate offset", func() {
		// LDR X0, [X1, #8]
		inst := d.Decode(0xF9400420)
		Expect(inst.Op).To(Equal(insts.OpLDR))
		Expect(inst.Rd).To(Equal(uint8(0)))
		Expect(inst.Rn).To(Equal(uint8(1)))
		Expect(inst.Is64Bit).To(BeTrue())
	})

	It("decodes STR with an unsigned immediate offset", func() {
		// STR X0, [X1, #8]
		inst := d.Decode(0xF9000420)
		Expect(inst.Op).To(Equal(insts.OpSTR))
	})

	It("decodes LDRSW as a sign-extending word load", func() {
		// LDRSW X0, [X1]
		inst := d.Decode(0xB9800020)
		Expect(inst.Op).To(Equal(insts.OpLDRSW))
	})

	It("decodes an AdvSIMD three-same ADD with its arrangement", func() {
		// ADD V0.8B, V1.8B, V2.8B
		inst := d.Decode(0x0E228420)
		Expect(inst.Op).To(Equal(insts.OpVADD))
		Expect(inst.Arrangement).To(Equal(insts.Arr8B))
		Expect(inst.Rd).To(Equal(uint8(0)))
		Expect(inst.Rn).To(Equal(uint8(1)))
		Expect(inst.Rm).To(Equal(uint8(2)))
	})

	It("decodes an AdvSIMD three-same ADD over 2D lanes", func() {
		// ADD V0.2D, V1.2D, V2.2D
		inst := d.Decode(0x4EE28420)
		Expect(inst.Op).To(Equal(insts.OpVADD))
		Expect(inst.Arrangement).To(Equal(insts.Arr2D))
	})

	It("falls back to OpUnknown for an unrecognized word", func() {
		inst := d.Decode(0xFFFFFFFF)
		Expect(inst.Op).To(Equal(insts.OpUnknown))
	})

	It("decodes the three-same register-form SSHL, distinct from immediate SHL", func() {
		// SSHL V0.8B, V1.8B, V2.8B: Q=0 U=0 size=00 opcode=01000
		inst := d.Decode(0x0E224420)
		Expect(inst.Op).To(Equal(insts.OpVSSHL))
		Expect(inst.Rd).To(Equal(uint8(0)))
		Expect(inst.Rn).To(Equal(uint8(1)))
		Expect(inst.Rm).To(Equal(uint8(2)))
	})

	It("decodes the three-same register-form USHL with the U bit set", func() {
		// USHL V0.8B, V1.8B, V2.8B: Q=0 U=1 size=00 opcode=01000
		inst := d.Decode(0x2E224420)
		Expect(inst.Op).To(Equal(insts.OpVUSHL))
	})

	It("falls back to OpUnknown for an unassigned three-same opcode", func() {
		// same family as ADD/SSHL above but opcode=01100, unassigned
		inst := d.Decode(0x0E226420)
		Expect(inst.Op).To(Equal(insts.OpUnknown))
		Expect(inst.Format).To(Equal(insts.FormatUnknown))
	})
})

var _ = Describe("Op", func() {
	It("renders known mnemonics", func() {
		Expect(insts.OpADD.String()).To(Equal("ADD"))
		Expect(insts.OpBCond.String()).To(Equal("B.cond"))
	})

	It("renders UNKNOWN for an out-of-range value", func() {
		Expect(insts.Op(250).String()).To(Equal("UNKNOWN"))
	})
})

var _ = Describe("Arrangement", func() {
	It("renders known arrangements", func() {
		Expect(insts.Arr4S.String()).To(Equal("4S"))
		Expect(insts.ArrD.String()).To(Equal("D"))
	})
})
