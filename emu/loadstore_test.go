package emu_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/a64sim/a64sim/emu"
)

var _ = Describe("Load/Store", func() {
	var m *emu.Machine

	BeforeEach(func() {
		m = newMachine()
	})

	It("executes LDR with an unsigned immediate offset", func() {
		// LDR X0, [X1, #8] -> 0xF9400420
		Expect(m.Memory().Write32(0x1000, 0xF9400420)).To(Succeed())
		Expect(m.Memory().Write64(0x2008, 0xDEADBEEFCAFED00D)).To(Succeed())
		m.Registers().WriteReg(1, 0x2000)

		Expect(m.Step()).To(Succeed())

		Expect(m.Registers().ReadReg(0)).To(Equal(uint64(0xDEADBEEFCAFED00D)))
	})

	It("executes STR with an unsigned immediate offset", func() {
		// STR X0, [X1, #8] -> 0xF9000420
		Expect(m.Memory().Write32(0x1000, 0xF9000420)).To(Succeed())
		m.Registers().WriteReg(0, 0x1122334455667788)
		m.Registers().WriteReg(1, 0x2000)

		Expect(m.Step()).To(Succeed())

		v, err := m.Memory().Read64(0x2008)
		Expect(err).NotTo(HaveOccurred())
		Expect(v).To(Equal(uint64(0x1122334455667788)))
	})

	It("sign-extends LDRSW", func() {
		// LDRSW X0, [X1] -> 0xB9800020
		Expect(m.Memory().Write32(0x1000, 0xB9800020)).To(Succeed())
		Expect(m.Memory().Write32(0x2000, 0x80000001)).To(Succeed())
		m.Registers().WriteReg(1, 0x2000)

		Expect(m.Step()).To(Succeed())

		Expect(m.Registers().ReadReg(0)).To(Equal(uint64(0xFFFFFFFF80000001)))
	})

	It("executes LDRB as a zero-extending byte load", func() {
		// LDRB W0, [X1] -> 0x39400020
		Expect(m.Memory().Write32(0x1000, 0x39400020)).To(Succeed())
		Expect(m.Memory().Write8(0x2000, 0xFF)).To(Succeed())
		m.Registers().WriteReg(1, 0x2000)

		Expect(m.Step()).To(Succeed())

		Expect(m.Registers().ReadReg(0)).To(Equal(uint64(0xFF)))
	})

	It("executes STRB and writes only the low byte", func() {
		// STRB W0, [X1] -> 0x39000020
		Expect(m.Memory().Write32(0x1000, 0x39000020)).To(Succeed())
		m.Registers().WriteReg(0, 0x1122)
		m.Registers().WriteReg(1, 0x2000)

		Expect(m.Step()).To(Succeed())

		v, err := m.Memory().Read8(0x2000)
		Expect(err).NotTo(HaveOccurred())
		Expect(v).To(Equal(uint8(0x22)))
	})

	Describe("CacheObserver", func() {
		It("is notified with the access size and direction on every scalar access", func() {
			var accesses []struct {
				addr    uint64
				size    int
				isWrite bool
			}
			obs := recordingObserver(func(addr uint64, size int, isWrite bool) {
				accesses = append(accesses, struct {
					addr    uint64
					size    int
					isWrite bool
				}{addr, size, isWrite})
			})
			m := newMachine(emu.WithCacheObserver(obs))

			// STR X0, [X1, #8] -> 0xF9000420
			Expect(m.Memory().Write32(0x1000, 0xF9000420)).To(Succeed())
			m.Registers().WriteReg(1, 0x2000)
			Expect(m.Step()).To(Succeed())

			Expect(accesses).To(HaveLen(1))
			Expect(accesses[0].addr).To(Equal(uint64(0x2008)))
			Expect(accesses[0].size).To(Equal(8))
			Expect(accesses[0].isWrite).To(BeTrue())
		})

		It("never affects the functional result when absent", func() {
			m := newMachine()
			// LDR X0, [X1, #8] -> 0xF9400420
			Expect(m.Memory().Write32(0x1000, 0xF9400420)).To(Succeed())
			Expect(m.Memory().Write64(0x2008, 42)).To(Succeed())
			m.Registers().WriteReg(1, 0x2000)

			Expect(m.Step()).To(Succeed())

			Expect(m.Registers().ReadReg(0)).To(Equal(uint64(42)))
		})
	})
})

type recordingObserver func(addr uint64, size int, isWrite bool)

func (f recordingObserver) Observe(addr uint64, size int, isWrite bool) { f(addr, size, isWrite) }
