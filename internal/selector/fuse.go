package selector

import (
	"github.com/xyproto/rv32sel/internal/ir"
	"github.com/xyproto/rv32sel/internal/riscv"
)

// Fold a WordCompareZero user (Branch/DeoptimizeIf/TrapIf)
// back into the compare that feeds it, so the comparison and its consumer
// become one instruction with a flags continuation instead of two.

// kindToContinuation builds the Continuation matching how n's single user
// consumes the boolean n produces.
func (s *Selector) kindToContinuation(n ir.Node, cond riscv.Condition) *riscv.Continuation {
	switch s.g.Opcode(n) {
	case ir.OpBranch:
		t, f := s.branchTargets(n)
		return riscv.Branch(cond, t, f)
	case ir.OpDeoptimizeIf:
		reason, feedback := s.deoptInfo(n)
		return riscv.Deoptimize(cond, reason, feedback)
	case ir.OpTrapIf:
		return riscv.Trap(cond, s.trapID(n))
	default:
		return riscv.Set(cond, int(n))
	}
}

// branchTargets/deoptInfo/trapID are narrow accessors a real scheduler
// attaches to control nodes out of band; this pass only needs the shape,
// not the storage. branchTargets reads the node's projections through
// Graph.FindProjection; deoptInfo returns a fixed reason with empty
// feedback, and trapID uses the node id.
func (s *Selector) branchTargets(n ir.Node) (trueBlock, falseBlock int) {
	if p, ok := s.g.FindProjection(n, 0); ok {
		trueBlock = int(p)
	}
	if p, ok := s.g.FindProjection(n, 1); ok {
		falseBlock = int(p)
	}
	return
}

func (s *Selector) deoptInfo(n ir.Node) (reason, feedback string) {
	return "deopt", ""
}

func (s *Selector) trapID(n ir.Node) int {
	return int(n)
}

// VisitWordCompareZero implements the negation-canceling loop: user is
// the control node (Branch/DeoptimizeIf/TrapIf) whose boolean input is
// value. Each time value is itself a Word32Equal(x, 0) that user can
// cover, the loop negates the pending condition, slides user down to
// that Word32Equal node, and continues unwrapping from x — exactly the
// double-negation elimination "if (!(a < b))" needs to become a single
// fused compare-and-branch.
func (s *Selector) VisitWordCompareZero(user, value ir.Node, cont *riscv.Continuation) {
	for s.g.Opcode(value) == ir.OpWord32Equal && s.g.CanCover(user, value) {
		b := ir.Binop(s.g, value)
		if v, ok := ir.IsIntConstant(s.g, b.Right()); !ok || v != 0 {
			break
		}
		cont.Negate()
		user = value
		value = b.Left()
	}

	s.fuseCompare(user, value, cont)
}

// fuseCompare checks coverage, then picks the
// specific fused form for value's operator kind, or fall back to a plain
// zero-compare if user cannot cover value or no fused form applies.
func (s *Selector) fuseCompare(user, value ir.Node, cont *riscv.Continuation) {
	if !s.g.CanCover(user, value) {
		s.emitPlainCmpZero(value, cont)
		return
	}
	s.fuseCompareValue(value, cont)
}

// fuseCompareValue picks the specific fused instruction form for value's
// operator kind directly, without consulting CanCover — the entry point
// for a comparison materialized on its own (no separate consumer to test
// coverage against) as well as the post-CanCover-check continuation of
// fuseCompare.
func (s *Selector) fuseCompareValue(value ir.Node, cont *riscv.Continuation) {
	if src, ok := s.overflowProjectionSource(value); ok {
		s.fuseOverflow(src, cont)
		return
	}

	k := s.g.Opcode(value)
	switch {
	case ir.IsIntCompare(k):
		s.fuseIntCompare(value, k, cont)
	case ir.IsFloatCompare(k):
		s.fuseFloatCompare(value, k, cont)
	case k == ir.OpWord32And:
		s.fuseTst(value, cont)
	case k == ir.OpStackPointerGreaterThan:
		s.fuseStackPointerGreaterThan(value, cont)
	default:
		s.emitPlainCmpZero(value, cont)
	}
}

// overflowProjectionSource reports whether value is the overflow-bit
// projection (index 1) of an Int32{Add,Sub,Mul}WithOverflow node, the
// shape "if (a + b overflows)" takes once the addition and its overflow
// check are separate graph nodes joined by a projection. Folding the
// arithmetic straight into this continuation only stands if the value's
// own projection-0 (the sum/difference/product itself) is either never
// used or has already been scheduled before this node — otherwise that
// later definition would need to observe a register this continuation
// never materializes.
func (s *Selector) overflowProjectionSource(value ir.Node) (ir.Node, bool) {
	if s.g.Opcode(value) != ir.OpProjection {
		return ir.Invalid, false
	}
	if s.g.ProjectionIndex(value) != 1 {
		return ir.Invalid, false
	}
	src := s.g.Input(value, 0)
	switch s.g.Opcode(src) {
	case ir.OpInt32AddWithOverflow, ir.OpInt32SubWithOverflow, ir.OpInt32MulWithOverflow:
	default:
		return ir.Invalid, false
	}
	if result, ok := s.g.FindProjection(src, 0); ok && !s.isDefined(result) {
		return ir.Invalid, false
	}
	return src, true
}

// normalizeCompareOperands applies the fuser's operand rules: an
// immediate is only ever allowed on the right, so a left-side constant
// forces a commute; a ContSet continuation additionally requires that
// its comparison never carry an immediate on the right at all once
// commuted (the RISC-V SLT-family instructions this lowers to only ever
// read two registers when the result itself must land in a register).
func normalizeCompareOperands(g ir.Graph, cmp ir.CompareView, cont *riscv.Continuation) (left, right ir.Node, rightIsImm bool) {
	left, right = cmp.Left(), cmp.Right()

	if _, ok := ir.IsIntConstant(g, left); ok {
		left, right = right, left
		cont.Commute()
	}

	if v, ok := ir.IsIntConstant(g, right); ok && riscv.FitsImmediate(riscv.Cmp, int64(v)) {
		if cont.Kind == riscv.ContSet {
			// Set continuations always materialize both operands in
			// registers; an immediate right side gains nothing here.
			return left, right, false
		}
		return left, right, true
	}
	return left, right, false
}

func (s *Selector) fuseIntCompare(n ir.Node, k ir.OperatorKind, cont *riscv.Continuation) {
	cmp := ir.Compare(s.g, n)
	cond := intCompareCondition(k)
	left, right, rightIsImm := normalizeCompareOperands(s.g, cmp, cont)

	cont.OverwriteAndNegateIfEqual(cond)
	in := riscv.Instruction{Opcode: riscv.Cmp, Continuation: cont}
	if rightIsImm {
		in.Inputs = []riscv.Operand{s.UseRegister(left), s.UseImmediateNode(right)}
	} else {
		in.Inputs = []riscv.Operand{s.UseRegister(left), s.UseRegister(right)}
	}
	s.emit(in)
}

func intCompareCondition(k ir.OperatorKind) riscv.Condition {
	switch k {
	case ir.OpWord32Equal:
		return riscv.Equal
	case ir.OpInt32LessThan:
		return riscv.SignedLessThan
	case ir.OpInt32LessThanOrEqual:
		return riscv.SignedLessThanOrEqual
	case ir.OpUint32LessThan:
		return riscv.UnsignedLessThan
	case ir.OpUint32LessThanOrEqual:
		return riscv.UnsignedLessThanOrEqual
	default:
		return riscv.Equal
	}
}

func floatCompareOpcode(k ir.OperatorKind) riscv.Opcode {
	switch k {
	case ir.OpFloat32Equal, ir.OpFloat32LessThan, ir.OpFloat32LessThanOrEqual:
		return riscv.CmpS
	default:
		return riscv.CmpD
	}
}

func floatCompareCondition(k ir.OperatorKind) riscv.Condition {
	switch k {
	case ir.OpFloat32Equal, ir.OpFloat64Equal:
		return riscv.Equal
	case ir.OpFloat32LessThan, ir.OpFloat64LessThan:
		return riscv.SignedLessThan
	default:
		return riscv.SignedLessThanOrEqual
	}
}

// fuseFloatCompare never folds an immediate: float constants never share
// the integer constant pool this pass uses for immediate operands.
func (s *Selector) fuseFloatCompare(n ir.Node, k ir.OperatorKind, cont *riscv.Continuation) {
	cmp := ir.Compare(s.g, n)
	cont.OverwriteAndNegateIfEqual(floatCompareCondition(k))
	in := riscv.Instruction{
		Opcode:       floatCompareOpcode(k),
		Continuation: cont,
		Inputs:       []riscv.Operand{s.UseRegister(cmp.Left()), s.UseRegister(cmp.Right())},
	}
	s.emit(in)
}

// fuseOverflow re-lowers value through VisitInt32BinopWithOverflow's ALU
// path, but with the caller's continuation instead of a synthesized
// Overflow/NotOverflow Set — the compare/branch fuser owns the
// continuation once it has folded the projection use away, so it
// overwrites the placeholder condition with the overflow flag itself.
func (s *Selector) fuseOverflow(n ir.Node, cont *riscv.Continuation) {
	op := overflowOp(s.g.Opcode(n))
	cont.OverwriteAndNegateIfEqual(riscv.Overflow)
	s.VisitBinop(n, op, op == riscv.AddOvf, op, cont)
}

// fuseTst implements the Word32And-as-Tst rule: an And whose
// only use is a compare-to-zero never needs its result materialized, so
// it lowers to Tst instead of And+CmpZero. Unlike the comparison fusers
// above, Tst never overwrites cont's condition — it tests exactly the
// Equal/NotEqual sense the caller already accumulated, the same as a
// plain compare-to-zero would.
func (s *Selector) fuseTst(n ir.Node, cont *riscv.Continuation) {
	b := ir.Binop(s.g, n)
	left, right := b.Left(), b.Right()

	in := riscv.Instruction{Opcode: riscv.Tst, Continuation: cont}
	if v, ok := ir.IsIntConstant(s.g, right); ok && riscv.FitsImmediate(riscv.Tst, int64(v)) {
		in.Inputs = []riscv.Operand{s.UseRegister(left), s.UseImmediateNode(right)}
	} else {
		in.Inputs = []riscv.Operand{s.UseRegister(left), s.UseRegister(right)}
	}
	s.emit(in)
}

func (s *Selector) fuseStackPointerGreaterThan(n ir.Node, cont *riscv.Continuation) {
	limit := s.g.Input(n, 0)
	cont.OverwriteAndNegateIfEqual(riscv.StackPointerGreaterThanCond)
	in := riscv.Instruction{
		Opcode:       riscv.CmpStackPointerGreaterThan,
		Continuation: cont,
		Inputs:       []riscv.Operand{s.UseRegister(limit)},
	}
	s.emit(in)
}

// emitPlainCmpZero is the fallback when no fused form applies: n's own
// value is compared against zero using whatever Equal/NotEqual sense
// cont already carries. It must not overwrite Cond — cont may already
// hold the outer negation's sense (e.g. Equal, from an unwrapped
// Word32Equal(_, 0) whose inner value had no fusable form of its own),
// and clobbering it back to NotEqual would silently invert the test.
func (s *Selector) emitPlainCmpZero(n ir.Node, cont *riscv.Continuation) {
	in := riscv.Instruction{
		Opcode:       riscv.CmpZero,
		Continuation: cont,
		Inputs:       []riscv.Operand{s.UseRegister(n)},
	}
	s.emit(in)
}

// defaultContinuationFor is the continuation a comparison gets when it
// reaches dispatch directly rather than through a Branch/DeoptimizeIf/
// TrapIf consumer: its boolean result must be materialized into n's own
// register. The placeholder condition is NotEqual, the same "no outer
// negation yet" marker a control node's continuation starts with, so the
// fuser's OverwriteAndNegateIfEqual calls do not spuriously invert a
// comparison that never passed through a Word32Equal(_, 0) wrapper.
func (s *Selector) defaultContinuationFor(n ir.Node) *riscv.Continuation {
	s.markDefined(n)
	return riscv.Set(riscv.NotEqual, int(n))
}

// defaultCondition is the placeholder condition fed into a control node's
// continuation before the fuser inspects the actual comparison beneath
// it and overwrites Cond with the real one.
func (s *Selector) defaultCondition(n ir.Node) riscv.Condition {
	return riscv.NotEqual
}
