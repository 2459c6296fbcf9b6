package machine

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"ifcc/pkg/tac"
)

var _ = Describe("Machine", func() {
	var m *Machine

	load := func(text string, seed map[string]int) {
		prog, err := tac.Parse(text)
		Expect(err).NotTo(HaveOccurred())
		m = New(prog)
		for name, v := range seed {
			m.Vars[name] = v
		}
	}

	run := func(text string, seed map[string]int) error {
		load(text, seed)
		return m.Run()
	}

	Context("Data Movement", func() {
		It("loads an immediate into the accumulator", func() {
			Expect(run("LOADI 42", nil)).To(Succeed())
			Expect(m.Acc).To(Equal(42))
		})

		It("loads a negative immediate", func() {
			Expect(run("LOADI -7", nil)).To(Succeed())
			Expect(m.Acc).To(Equal(-7))
		})

		It("stores the accumulator and loads it back", func() {
			Expect(run("LOADI 5\nSTORE x\nLOADI 0\nLOAD x", nil)).To(Succeed())
			Expect(m.Acc).To(Equal(5))
			Expect(m.Vars["x"]).To(Equal(5))
		})

		It("reads seeded variables", func() {
			Expect(run("LOAD x", map[string]int{"x": 9})).To(Succeed())
			Expect(m.Acc).To(Equal(9))
		})

		It("fails on a load of an undefined variable", func() {
			err := run("LOAD missing", nil)
			Expect(err).To(MatchError(ContainSubstring("undefined variable 'missing'")))
		})
	})

	Context("Arithmetic", func() {
		// The generator parks the left operand in a temporary and
		// leaves the right in the accumulator, so each opcode computes
		// variable OP accumulator.
		It("adds variable and accumulator", func() {
			Expect(run("LOADI 2\nSTORE t\nLOADI 3\nADD t", nil)).To(Succeed())
			Expect(m.Acc).To(Equal(5))
		})

		It("subtracts the accumulator from the variable", func() {
			Expect(run("LOADI 3\nSTORE t\nLOADI 10\nSUB t", nil)).To(Succeed())
			Expect(m.Acc).To(Equal(-7))
		})

		It("multiplies variable and accumulator", func() {
			Expect(run("LOADI 6\nSTORE t\nLOADI 7\nMUL t", nil)).To(Succeed())
			Expect(m.Acc).To(Equal(42))
		})

		It("divides the variable by the accumulator", func() {
			Expect(run("LOADI 20\nSTORE t\nLOADI 4\nDIV t", nil)).To(Succeed())
			Expect(m.Acc).To(Equal(5))
		})

		It("fails on division by zero", func() {
			err := run("LOADI 7\nSTORE t\nLOADI 0\nDIV t", nil)
			Expect(err).To(MatchError(ContainSubstring("division by zero")))
		})
	})

	Context("Comparisons", func() {
		It("reads bare CMP as an equality test", func() {
			Expect(run("LOADI 5\nSTORE t\nLOADI 5\nCMP t", nil)).To(Succeed())
			Expect(m.Flag).To(BeTrue())

			// 12 > 10 holds, but CMP carries no relation.
			Expect(run("LOADI 12\nSTORE t\nLOADI 10\nCMP t", nil)).To(Succeed())
			Expect(m.Flag).To(BeFalse())
		})

		It("applies the relation of CMP_GT", func() {
			Expect(run("LOADI 12\nSTORE t\nLOADI 10\nCMP_GT t", nil)).To(Succeed())
			Expect(m.Flag).To(BeTrue())

			Expect(run("LOADI 10\nSTORE t\nLOADI 10\nCMP_GT t", nil)).To(Succeed())
			Expect(m.Flag).To(BeFalse())
		})

		It("applies the relation of CMP_LT", func() {
			Expect(run("LOADI 3\nSTORE t\nLOADI 10\nCMP_LT t", nil)).To(Succeed())
			Expect(m.Flag).To(BeTrue())
		})

		It("applies the inclusive relations", func() {
			Expect(run("LOADI 10\nSTORE t\nLOADI 10\nCMP_LE t", nil)).To(Succeed())
			Expect(m.Flag).To(BeTrue())

			Expect(run("LOADI 10\nSTORE t\nLOADI 10\nCMP_GE t", nil)).To(Succeed())
			Expect(m.Flag).To(BeTrue())
		})

		It("applies the relation of CMP_NE", func() {
			Expect(run("LOADI 4\nSTORE t\nLOADI 5\nCMP_NE t", nil)).To(Succeed())
			Expect(m.Flag).To(BeTrue())
		})
	})

	Context("Branching", func() {
		conditional := `LOAD x
STORE temp_1
LOADI 10
CMP_GT temp_1
JMP_FALSE else_label_1
LOADI 5
STORE y
JMP end_label_1
else_label_1:
LOADI 0
STORE y
end_label_1:`

		It("takes the then branch when the condition holds", func() {
			Expect(run(conditional, map[string]int{"x": 15})).To(Succeed())
			Expect(m.Vars["y"]).To(Equal(5))
		})

		It("takes the else branch when the condition fails", func() {
			Expect(run(conditional, map[string]int{"x": 3})).To(Succeed())
			Expect(m.Vars["y"]).To(Equal(0))
		})

		It("halts on a jump to a trailing label", func() {
			text := `LOAD x
STORE temp_1
LOADI 10
CMP_GT temp_1
JMP_FALSE else_label_1
LOADI 5
STORE y
JMP end_label_1
else_label_1:
end_label_1:`
			Expect(run(text, map[string]int{"x": 3})).To(Succeed())
			Expect(m.Done()).To(BeTrue())
			Expect(m.Vars).NotTo(HaveKey("y"))
		})

		It("gives up on a jump loop", func() {
			err := run("loop:\nJMP loop", nil)
			Expect(err).To(MatchError(ContainSubstring("did not finish")))
		})
	})

	Context("Stepping", func() {
		It("advances one instruction at a time", func() {
			load("LOADI 1\nLOADI 2", nil)

			Expect(m.Step()).To(Succeed())
			Expect(m.Acc).To(Equal(1))
			Expect(m.PC).To(Equal(1))
			Expect(m.Done()).To(BeFalse())

			Expect(m.Step()).To(Succeed())
			Expect(m.Acc).To(Equal(2))
			Expect(m.Done()).To(BeTrue())

			// Stepping a finished machine is a no-op.
			Expect(m.Step()).To(Succeed())
			Expect(m.PC).To(Equal(2))
		})
	})
})
