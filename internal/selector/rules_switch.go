package selector

import (
	"math"

	"github.com/xyproto/rv32sel/internal/ir"
	"github.com/xyproto/rv32sel/internal/riscv"
)

// SwitchCase is one value/target pair of a Switch node. The scheduler
// supplies these out of band; a mid-IR Switch's cases are not simple
// graph inputs the way a Binop's operands are.
type SwitchCase struct {
	Value  int32
	Target int
}

// maxTableSwitchValueRange bounds how large a table's [min,max] value range
// may be before a jump table is refused outright regardless of cost.
const maxTableSwitchValueRange = 2 << 16

// shouldUseJumpTable applies the same space/time cost comparison as a
// binary-search lowering: a table costs (10+2R) words of space plus a
// constant 3 cycles of indirection, weighted 3:1 against space; a binary
// search costs (2+2C) words plus C comparisons, same weighting. A table is
// only chosen when it does not lose that comparison, its minimum value
// does not saturate int32, and its value range fits the table size limit.
func shouldUseJumpTable(cases []SwitchCase, enabled bool) bool {
	if !enabled || len(cases) == 0 {
		return false
	}
	minV, maxV := cases[0].Value, cases[0].Value
	for _, c := range cases[1:] {
		if c.Value < minV {
			minV = c.Value
		}
		if c.Value > maxV {
			maxV = c.Value
		}
	}
	if minV == math.MinInt32 {
		return false
	}
	valueRange := int64(maxV) - int64(minV) + 1
	if valueRange > maxTableSwitchValueRange {
		return false
	}

	caseCount := int64(len(cases))
	const tableTimeCost = 3
	tableSpaceCost := int64(10) + 2*valueRange
	lookupSpaceCost := int64(2) + 2*caseCount
	lookupTimeCost := caseCount
	return tableSpaceCost+3*tableTimeCost <= lookupSpaceCost+3*lookupTimeCost
}

// VisitSwitch lowers a Switch node: the selector picks between a jump
// table (subtracting the minimum case value into a temp, then an
// indirect branch through the table) and a binary search over sorted
// case values, purely from the cost model above — the capability knob
// only vetoes jump tables outright, it never forces one.
func (s *Selector) VisitSwitch(n ir.Node, cases []SwitchCase, defaultTarget int) {
	index := s.g.Input(n, 0)

	if shouldUseJumpTable(cases, s.caps.switchJumpTableEnabled) {
		minV := cases[0].Value
		for _, c := range cases[1:] {
			if c.Value < minV {
				minV = c.Value
			}
		}
		tmp := s.TempRegister()
		if minV != 0 {
			s.emit(riscv.Instruction{
				Opcode:  riscv.Sub,
				Inputs:  []riscv.Operand{s.UseRegister(index), s.UseImmediateValue(int64(minV))},
				Outputs: []riscv.Operand{tmp},
			})
		} else {
			s.emit(riscv.Instruction{
				Opcode:  riscv.Add,
				Inputs:  []riscv.Operand{s.UseRegister(index), s.UseImmediateValue(0)},
				Outputs: []riscv.Operand{tmp},
			})
		}
		s.emit(riscv.Instruction{
			Opcode: riscv.SwitchJumpTable,
			Misc:   uint32(defaultTarget),
			Inputs: []riscv.Operand{tmp},
			Temps:  targetTemps(cases),
		})
		return
	}

	s.emit(riscv.Instruction{
		Opcode: riscv.SwitchBinarySearch,
		Misc:   uint32(defaultTarget),
		Inputs: []riscv.Operand{s.UseRegister(index)},
		Temps:  targetTemps(cases),
	})
}

// targetTemps encodes each case's target block as a TempImmediate so the
// downstream emitter can recover the jump table / search tree without
// this pass needing its own side table.
func targetTemps(cases []SwitchCase) []riscv.Operand {
	temps := make([]riscv.Operand, 0, len(cases)*2)
	for _, c := range cases {
		temps = append(temps, riscv.TempImmediate(int64(c.Value)), riscv.TempImmediate(int64(c.Target)))
	}
	return temps
}
