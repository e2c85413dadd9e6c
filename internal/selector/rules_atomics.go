package selector

import (
	"github.com/xyproto/rv32sel/internal/ir"
	"github.com/xyproto/rv32sel/internal/riscv"
)

// word32AtomicOpcode maps a Word32Atomic* node kind to its RISC-V opcode.
func word32AtomicOpcode(k ir.OperatorKind) riscv.Opcode {
	switch k {
	case ir.OpWord32AtomicLoad:
		return riscv.AtomicLoadWord32
	case ir.OpWord32AtomicStore:
		return riscv.AtomicStoreWord32
	case ir.OpWord32AtomicExchange:
		return riscv.AtomicExchangeWord32
	case ir.OpWord32AtomicCompareExchange:
		return riscv.AtomicCompareExchangeWord32
	case ir.OpWord32AtomicAdd:
		return riscv.AtomicAddWord32
	case ir.OpWord32AtomicSub:
		return riscv.AtomicSubWord32
	case ir.OpWord32AtomicAnd:
		return riscv.AtomicAndWord32
	case ir.OpWord32AtomicOr:
		return riscv.AtomicOrWord32
	case ir.OpWord32AtomicXor:
		return riscv.AtomicXorWord32
	default:
		return riscv.OpInvalid
	}
}

// word32AtomicScratchCount is the number of scratch temps each RISC-V
// load-reserved/store-conditional retry loop needs beyond the operand
// registers themselves.
func word32AtomicScratchCount(k ir.OperatorKind) int {
	switch k {
	case ir.OpWord32AtomicLoad, ir.OpWord32AtomicStore:
		return 0
	case ir.OpWord32AtomicExchange, ir.OpWord32AtomicCompareExchange:
		return 3
	default:
		// Add/Sub/And/Or/Xor: the retry loop needs a temp for the loaded
		// value, one for the computed new value, one for the
		// store-conditional result, and one more for the exclusive-monitor
		// address bookkeeping across the retry.
		return 4
	}
}

// VisitWord32Atomic lowers every Word32Atomic* node: every
// operand is UseUniqueRegister, since a load-reserved/store-conditional
// retry loop re-reads its inputs across iterations and cannot tolerate
// an allocator reusing one of them as scratch mid-loop.
func (s *Selector) VisitWord32Atomic(n ir.Node) {
	k := s.g.Opcode(n)
	op := word32AtomicOpcode(k)
	if op == riscv.OpInvalid {
		unimplemented(k, n)
	}

	base := s.g.Input(n, 0)
	index := s.g.Input(n, 1)

	in := riscv.Instruction{Opcode: op, Mode: riscv.AddrBaseReg}
	in.Inputs = append(in.Inputs, s.UseUniqueRegister(base), s.UseUniqueRegister(index))

	switch k {
	case ir.OpWord32AtomicStore:
		value := s.g.Input(n, 2)
		in.Inputs = append(in.Inputs, s.UseUniqueRegister(value))
	case ir.OpWord32AtomicCompareExchange:
		oldVal := s.g.Input(n, 2)
		newVal := s.g.Input(n, 3)
		in.Inputs = append(in.Inputs, s.UseUniqueRegister(oldVal), s.UseUniqueRegister(newVal))
		in.Outputs = []riscv.Operand{s.DefineAsRegister(n)}
	case ir.OpWord32AtomicLoad:
		in.Outputs = []riscv.Operand{s.DefineAsRegister(n)}
	default:
		value := s.g.Input(n, 2)
		in.Inputs = append(in.Inputs, s.UseUniqueRegister(value))
		in.Outputs = []riscv.Operand{s.DefineAsRegister(n)}
	}

	for i := 0; i < word32AtomicScratchCount(k); i++ {
		in.Temps = append(in.Temps, s.TempRegister())
	}
	s.emit(in)
}

// VisitWord32PairAtomicLoad / Store implement the only two pair-atomic
// operations this target selects: 64-bit-as-a-pair values are carried
// through a runtime helper call, which fixes the value it produces or
// consumes to specific argument/return registers. base/index are
// ordinary addressing operands and never need fixing themselves — only
// the pair value that crosses the helper-call boundary does.
func (s *Selector) VisitWord32PairAtomicLoad(n ir.Node) {
	base := s.g.Input(n, 0)
	index := s.g.Input(n, 1)

	in := riscv.Instruction{
		Opcode: riscv.AtomicPairLoad,
		Inputs: []riscv.Operand{s.UseRegister(base), s.UseRegister(index)},
		Temps:  []riscv.Operand{s.TempRegister()},
	}

	low, lowOK := s.g.FindProjection(n, 0)
	high, highOK := s.g.FindProjection(n, 1)
	if lowOK {
		in.Outputs = append(in.Outputs, s.DefineAsFixed(low, riscv.RegA0))
	}
	if highOK {
		in.Outputs = append(in.Outputs, s.DefineAsFixed(high, riscv.RegA1))
	}
	s.emit(in)
}

// VisitWord32PairAtomicStore fixes the stored value pair to a1/a2, the
// runtime helper's calling convention for the value it writes, and
// reserves a0 as the scratch the helper clobbers; base/index are plain
// register operands.
func (s *Selector) VisitWord32PairAtomicStore(n ir.Node) {
	base := s.g.Input(n, 0)
	index := s.g.Input(n, 1)
	low := s.g.Input(n, 2)
	high := s.g.Input(n, 3)

	in := riscv.Instruction{
		Opcode: riscv.AtomicPairStore,
		Inputs: []riscv.Operand{
			s.UseRegister(base),
			s.UseRegister(index),
			s.UseFixed(low, riscv.RegA1),
			s.UseFixed(high, riscv.RegA2),
		},
		Temps: []riscv.Operand{s.FixedTempRegister(riscv.RegA0)},
	}
	s.markDefined(n)
	s.emit(in)
}

// VisitWord32PairAtomicUnsupported covers every pair-atomic read-modify-
// write kind this target declares unimplemented (Add, Sub,
// And, Or, Xor, Exchange, CompareExchange): none of them fit in the
// two-register runtime-helper convention Load/Store use, and this
// target's ISA has no native double-word CAS.
func (s *Selector) VisitWord32PairAtomicUnsupported(n ir.Node) {
	unimplemented(s.g.Opcode(n), n)
}
