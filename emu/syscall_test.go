package emu_test

import (
	"bytes"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/a64sim/a64sim/emu"
)

var _ = Describe("Syscalls", func() {
	It("exits with the code in X0 on exit(93)", func() {
		m := newMachine()
		// MOVZ X8, #93 -> 0xD2800BA8
		// MOVZ X0, #9  -> 0xD2800120
		// SVC #0       -> 0xD4000001
		Expect(m.Memory().Write32(0x1000, 0xD2800BA8)).To(Succeed())
		Expect(m.Memory().Write32(0x1004, 0xD2800120)).To(Succeed())
		Expect(m.Memory().Write32(0x1008, 0xD4000001)).To(Succeed())

		m.Run(10)

		Expect(m.Exited()).To(BeTrue())
		Expect(m.ExitCode()).To(Equal(int64(9)))
	})

	It("writes to fd 1 through WithStdout", func() {
		var out bytes.Buffer
		m := newMachine(emu.WithStdout(&out))

		msg := []byte("hi\n")
		Expect(m.Memory().Write8(0x3000, msg[0])).To(Succeed())
		Expect(m.Memory().Write8(0x3001, msg[1])).To(Succeed())
		Expect(m.Memory().Write8(0x3002, msg[2])).To(Succeed())

		m.Registers().WriteReg(0, 1)           // fd = stdout
		m.Registers().WriteReg(1, 0x3000)      // buf
		m.Registers().WriteReg(2, uint64(len(msg))) // count
		m.Registers().WriteReg(8, 64)          // SYS_write

		// SVC #0 -> 0xD4000001
		Expect(m.Memory().Write32(0x1000, 0xD4000001)).To(Succeed())
		Expect(m.Step()).To(Succeed())

		Expect(out.String()).To(Equal("hi\n"))
		Expect(m.Registers().ReadReg(0)).To(Equal(uint64(len(msg))))
	})

	It("routes an SVC through WithSupervisorCall instead of the default handler", func() {
		called := false
		m := newMachine(emu.WithSupervisorCall(func(m *emu.Machine) {
			called = true
			m.EndEmulation()
		}))

		// SVC #0 -> 0xD4000001
		Expect(m.Memory().Write32(0x1000, 0xD4000001)).To(Succeed())
		Expect(m.Step()).To(Succeed())

		Expect(called).To(BeTrue())
		Expect(m.Exited()).To(BeTrue())
	})
})
