package selector

import (
	"github.com/xyproto/rv32sel/internal/ir"
	"github.com/xyproto/rv32sel/internal/riscv"
)

// Call/return ABI lowering. Argument preparation differs
// between a C-linkage call (fixed argument registers, no stack claim
// beyond what the callee itself needs) and a managed call (every
// argument goes to a stack slot the callee's frame reads back), and
// result extraction walks the caller's frame from its top down via Peek.

var cArgRegs = []riscv.Reg{riscv.RegA0, riscv.RegA1, riscv.RegA2, riscv.RegT0}

// VisitCallCFunction lowers a CallCFunction node: the first
// len(cArgRegs) arguments go to fixed registers on PrepareCallCFunction,
// and any remainder is stored to stack slots emitted after it.
func (s *Selector) VisitCallCFunction(n ir.Node, info ir.CallInfo) {
	args := info.Args()
	callee := s.g.Input(n, 0)

	var in riscv.Instruction
	in.Opcode = riscv.PrepareCallCFunction
	in.Inputs = append(in.Inputs, s.UseRegister(callee))

	var spills []riscv.Instruction
	for i := 0; i < args.ArgCount; i++ {
		arg := s.g.Input(n, i+1)
		if i < len(cArgRegs) {
			in.Inputs = append(in.Inputs, s.UseFixed(arg, cArgRegs[i]))
			continue
		}
		slot := s.frame.AllocateSpillSlot(4, 4)
		spills = append(spills, riscv.Instruction{
			Opcode: riscv.StoreToStackSlot,
			Misc:   uint32(slot),
			Inputs: []riscv.Operand{s.UseRegister(arg)},
		})
	}

	if len(args.Results) > 0 {
		in.Outputs = []riscv.Operand{s.DefineAsFixed(n, riscv.RegA0)}
	}
	s.emit(in)
	for _, sp := range spills {
		s.emit(sp)
	}
}

// VisitCall lowers a managed Call node: every argument is
// pushed to a claimed stack slot (managed calling convention carries no
// fixed-register arguments on this target), and results are pulled back
// with Peek, stepping from the top of the frame down — the last result
// pushed by the callee is the first one Peek reads.
func (s *Selector) VisitCall(n ir.Node, info ir.CallInfo) {
	args := info.Args()
	callee := s.g.Input(n, 0)

	s.emit(riscv.Instruction{
		Opcode: riscv.StackClaim,
		Misc:   uint32(args.ArgCount),
	})

	for i := 0; i < args.ArgCount; i++ {
		arg := s.g.Input(n, i+1)
		slot := s.frame.AllocateSpillSlot(4, 4)
		s.emit(riscv.Instruction{
			Opcode: riscv.StoreToStackSlot,
			Misc:   uint32(slot),
			Inputs: []riscv.Operand{s.UseRegister(arg)},
		})
	}

	s.emit(riscv.Instruction{
		Opcode:  riscv.Call,
		Inputs:  []riscv.Operand{s.UseRegister(callee)},
		Outputs: []riscv.Operand{s.DefineAsRegister(n)},
	})

	s.extractResults(n, args.Results)
}

// extractResults walks Results outermost-first but emits Peek reading
// the frame from the top down, since ReverseIdx already encodes each
// slot's distance from the top: a float-typed result is marked in Misc
// so the emitter downstream knows to route it through a float register
// rather than an integer one.
func (s *Selector) extractResults(call ir.Node, results []ir.ResultSlot) {
	for i, r := range results {
		proj, ok := s.g.FindProjection(call, i)
		if !ok {
			continue
		}
		misc := uint32(0)
		if r.Rep == ir.RepFloat32 || r.Rep == ir.RepFloat64 {
			misc = 1
		}
		s.emit(riscv.Instruction{
			Opcode:  riscv.Peek,
			Misc:    misc,
			Inputs:  []riscv.Operand{s.TempImmediate(int64(r.ReverseIdx))},
			Outputs: []riscv.Operand{s.DefineAsRegister(proj)},
		})
	}
}

// VisitTailCall never returns to this frame, so there is nothing to
// extract: argument placement is identical to VisitCall's setup
// (StackClaim, then one StoreToStackSlot per argument), followed by a
// Call carrying the tail-call bit and no output.
func (s *Selector) VisitTailCall(n ir.Node, info ir.CallInfo) {
	args := info.Args()
	callee := s.g.Input(n, 0)

	s.emit(riscv.Instruction{Opcode: riscv.StackClaim, Misc: uint32(args.ArgCount)})
	for i := 0; i < args.ArgCount; i++ {
		arg := s.g.Input(n, i+1)
		slot := s.frame.AllocateSpillSlot(4, 4)
		s.emit(riscv.Instruction{
			Opcode: riscv.StoreToStackSlot,
			Misc:   uint32(slot),
			Inputs: []riscv.Operand{s.UseRegister(arg)},
		})
	}
	s.emit(riscv.Instruction{
		Opcode: riscv.Call,
		Misc:   1, // tail-call bit for the emitter's convention
		Inputs: []riscv.Operand{s.UseRegister(callee)},
	})
	s.markDefined(n)
}
