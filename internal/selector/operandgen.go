package selector

import (
	"github.com/xyproto/rv32sel/internal/ir"
	"github.com/xyproto/rv32sel/internal/riscv"
)

// The operand generator. Selection rules build their operands through
// these methods; the exceptions are two direct riscv.TempImmediate calls
// in rules_simd.go and rules_switch.go.

func (s *Selector) UseRegister(n ir.Node) riscv.Operand {
	return riscv.Unallocated(riscv.AnyRegister, n)
}

func (s *Selector) UseUniqueRegister(n ir.Node) riscv.Operand {
	return riscv.Unallocated(riscv.UniqueRegister, n)
}

func (s *Selector) UseFixed(n ir.Node, r riscv.Reg) riscv.Operand {
	return riscv.UnallocatedFixed(n, r)
}

// UseRegisterOrImmediateZero materializes the architectural zero
// register when n is the integer constant 0 or the all-zero-bits float
// constant, otherwise falls back to UseRegister.
func (s *Selector) UseRegisterOrImmediateZero(n ir.Node) riscv.Operand {
	if ir.IsZero(s.g, n) {
		return riscv.UnallocatedFixed(n, riscv.RegZero)
	}
	return s.UseRegister(n)
}

// UseImmediateNode wraps an Int32Constant node into a constant-pool
// immediate operand unconditionally; callers must have already checked
// the value fits the target opcode's field (see UseOperand).
func (s *Selector) UseImmediateNode(n ir.Node) riscv.Operand {
	v, ok := ir.IsIntConstant(s.g, n)
	invariant(ok, "UseImmediateNode: %v is not an Int32Constant", n)
	return riscv.Immediate(s.addConstant(int64(v)))
}

// UseImmediateValue wraps a raw integer literal into a constant-pool
// immediate operand.
func (s *Selector) UseImmediateValue(v int64) riscv.Operand {
	return riscv.Immediate(s.addConstant(v))
}

// UseOperand returns an immediate operand if n is an Int32Constant whose
// value fits op's immediate field, otherwise a register operand for n.
func (s *Selector) UseOperand(n ir.Node, op riscv.Opcode) riscv.Operand {
	if v, ok := ir.IsIntConstant(s.g, n); ok && riscv.FitsImmediate(op, int64(v)) {
		return s.UseImmediateNode(n)
	}
	return s.UseRegister(n)
}

func (s *Selector) DefineAsRegister(n ir.Node) riscv.Operand {
	s.markDefined(n)
	return riscv.Unallocated(riscv.AnyRegister, n)
}

func (s *Selector) DefineSameAsFirst(n ir.Node) riscv.Operand {
	s.markDefined(n)
	return riscv.Unallocated(riscv.SameAsFirstInput, n)
}

func (s *Selector) DefineAsFixed(n ir.Node, r riscv.Reg) riscv.Operand {
	s.markDefined(n)
	return riscv.UnallocatedFixed(n, r)
}

// NoOutput returns the empty output list for instructions that only
// produce a flags continuation or side effect.
func (s *Selector) NoOutput() []riscv.Operand { return nil }

func (s *Selector) TempRegister() riscv.Operand {
	return riscv.Temp(riscv.TempScratch)
}

// FixedTempRegister reserves a specific physical register as scratch,
// the pair-atomic runtime helper's calling convention for the register
// it clobbers but never exposes as an input or output operand.
func (s *Selector) FixedTempRegister(r riscv.Reg) riscv.Operand {
	return riscv.FixedTemp(r)
}

func (s *Selector) TempImmediate(v int64) riscv.Operand {
	return riscv.TempImmediate(v)
}

func (s *Selector) TempSimd128Register() riscv.Operand {
	return riscv.Temp(riscv.TempSimd128)
}

func (s *Selector) TempFpRegister() riscv.Operand {
	return riscv.Temp(riscv.TempFloat)
}
