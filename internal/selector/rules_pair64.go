package selector

import (
	"github.com/xyproto/rv32sel/internal/ir"
	"github.com/xyproto/rv32sel/internal/riscv"
)

func pairOpcode(k ir.OperatorKind) riscv.Opcode {
	switch k {
	case ir.OpInt32PairAdd:
		return riscv.AddPair
	case ir.OpInt32PairSub:
		return riscv.SubPair
	case ir.OpInt32PairMul:
		return riscv.MulPair
	case ir.OpInt32PairShl:
		return riscv.ShlPair
	case ir.OpInt32PairShr:
		return riscv.ShrPair
	case ir.OpInt32PairSar:
		return riscv.SarPair
	default:
		return riscv.OpInvalid
	}
}

// pairLowOpcode is the plain 32-bit opcode a pair op degenerates to when
// only its low-half projection survives.
func pairLowOpcode(k ir.OperatorKind) riscv.Opcode {
	switch k {
	case ir.OpInt32PairAdd:
		return riscv.Add
	case ir.OpInt32PairSub:
		return riscv.Sub
	case ir.OpInt32PairMul:
		return riscv.Mul
	case ir.OpInt32PairShl:
		return riscv.Shl32
	case ir.OpInt32PairShr:
		return riscv.Shr32
	case ir.OpInt32PairSar:
		return riscv.Sar32
	default:
		return riscv.OpInvalid
	}
}

// VisitInt32Pair lowers Int32Pair{Add,Sub,Mul,Shl,Shr,Sar}:
// a 64-bit value carried as a (low, high) pair of 32-bit halves. Inputs
// are (leftLow, leftHigh, rightLow, rightHigh) for Add/Sub/Mul and
// (low, high, shiftAmount) for the shifts. When the caller never
// projects the high half, this degenerates to the plain 32-bit opcode on
// the low half alone — there is no reason to compute a carry/borrow/high
// product nobody consumes.
func (s *Selector) VisitInt32Pair(n ir.Node) {
	k := s.g.Opcode(n)
	op := pairOpcode(k)
	if op == riscv.OpInvalid {
		unimplemented(k, n)
	}

	_, highUsed := s.g.FindProjection(n, 1)
	if !highUsed {
		s.visitPairLowOnly(n, k)
		return
	}

	var in riscv.Instruction
	in.Opcode = op

	switch k {
	case ir.OpInt32PairShl, ir.OpInt32PairShr, ir.OpInt32PairSar:
		low := s.g.Input(n, 0)
		high := s.g.Input(n, 1)
		shift := s.g.Input(n, 2)
		in.Inputs = []riscv.Operand{s.UseRegister(low), s.UseRegister(high), s.UseRegister(shift)}
	default:
		leftLow := s.g.Input(n, 0)
		leftHigh := s.g.Input(n, 1)
		rightLow := s.g.Input(n, 2)
		rightHigh := s.g.Input(n, 3)
		in.Inputs = []riscv.Operand{
			s.UseRegister(leftLow), s.UseRegister(leftHigh),
			s.UseRegister(rightLow), s.UseRegister(rightHigh),
		}
	}

	lowProj, _ := s.g.FindProjection(n, 0)
	highProj, _ := s.g.FindProjection(n, 1)
	in.Outputs = []riscv.Operand{s.DefineAsRegister(lowProj), s.DefineAsRegister(highProj)}
	in.Temps = []riscv.Operand{s.TempRegister()}
	s.emit(in)
}

func (s *Selector) visitPairLowOnly(n ir.Node, k ir.OperatorKind) {
	op := pairLowOpcode(k)
	var in riscv.Instruction
	in.Opcode = op

	switch k {
	case ir.OpInt32PairShl, ir.OpInt32PairShr, ir.OpInt32PairSar:
		low := s.g.Input(n, 0)
		shift := s.g.Input(n, 2)
		in.Inputs = []riscv.Operand{s.UseRegister(low), s.UseRegister(shift)}
	default:
		leftLow := s.g.Input(n, 0)
		rightLow := s.g.Input(n, 2)
		in.Inputs = []riscv.Operand{s.UseRegister(leftLow), s.UseRegister(rightLow)}
	}

	lowProj, ok := s.g.FindProjection(n, 0)
	if !ok {
		lowProj = n
	}
	in.Outputs = []riscv.Operand{s.DefineAsRegister(lowProj)}
	s.emit(in)
}
