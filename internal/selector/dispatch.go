package selector

import (
	"context"

	"github.com/xyproto/rv32sel/internal/ir"
)

// visit is the single entry point Run calls once per node in scheduling
// order. The switch below names every OperatorKind constant internal/ir
// declares. Structural kinds have their own case; only OpInvalid or a
// value outside the enum reaches the default arm, where the fatal
// unimplemented diagnostic in diag.go is the only way out of this
// function without a normal return.
func (s *Selector) visit(ctx context.Context, n ir.Node) {
	switch k := s.g.Opcode(n); k {

	// Structural nodes never emit their own instruction: a constant is
	// materialized by whichever UseImmediate* call folds it in, a
	// Parameter's value already lives wherever the ABI put it, and a
	// Projection/Phi is defined by the multi-result instruction or block
	// join that produces it.
	case ir.OpParameter, ir.OpInt32Constant, ir.OpFloat32Constant, ir.OpFloat64Constant,
		ir.OpExternalConstant, ir.OpProjection, ir.OpPhi, ir.OpLabel:
		s.markDefined(n)

	case ir.OpInt32Add:
		s.VisitInt32Add(n)
	case ir.OpInt32Sub:
		s.VisitInt32Sub(n)
	case ir.OpInt32Mul:
		s.VisitInt32Mul(n)
	case ir.OpInt32Div:
		s.VisitInt32Div(n)
	case ir.OpInt32DivU:
		s.VisitInt32DivU(n)
	case ir.OpInt32Mod:
		s.VisitInt32Mod(n)
	case ir.OpInt32ModU:
		s.VisitInt32ModU(n)
	case ir.OpInt32AddWithOverflow, ir.OpInt32SubWithOverflow, ir.OpInt32MulWithOverflow:
		s.VisitInt32BinopWithOverflow(n)
	case ir.OpWord32And:
		s.VisitWord32And(n)
	case ir.OpWord32Or:
		s.VisitWord32Or(n)
	case ir.OpWord32Xor:
		s.VisitWord32Xor(n)
	case ir.OpWord32Shl:
		s.VisitWord32Shl(n)
	case ir.OpWord32Shr:
		s.VisitWord32Shr(n)
	case ir.OpWord32Sar:
		s.VisitWord32Sar(n)
	case ir.OpWord32Clz:
		s.VisitWord32Clz(n)
	case ir.OpWord32Ctz:
		s.VisitWord32Ctz(n)
	case ir.OpWord32Popcnt:
		s.VisitWord32Popcnt(n)
	case ir.OpWord32Ror:
		s.VisitWord32Ror(n)
	case ir.OpInt32MulHigh:
		s.VisitInt32MulHigh(n)
	case ir.OpUint32MulHigh:
		s.VisitUint32MulHigh(n)
	case ir.OpBitcastFloat32ToInt32:
		s.VisitBitcastFloat32ToInt32(n)
	case ir.OpBitcastInt32ToFloat32:
		s.VisitBitcastInt32ToFloat32(n)
	case ir.OpChangeInt32ToFloat64:
		s.VisitChangeInt32ToFloat64(n)
	case ir.OpChangeFloat64ToInt32:
		s.VisitChangeFloat64ToInt32(n)
	case ir.OpTruncateFloat64ToWord32:
		s.VisitTruncateFloat64ToWord32(n)
	case ir.OpSignExtendWord8ToInt32:
		s.VisitSignExtendWord8ToInt32(n)
	case ir.OpSignExtendWord16ToInt32:
		s.VisitSignExtendWord16ToInt32(n)
	case ir.OpFloat64ExtractLowWord32:
		s.VisitFloat64ExtractLowWord32(n)
	case ir.OpFloat64ExtractHighWord32:
		s.VisitFloat64ExtractHighWord32(n)
	case ir.OpFloat64InsertLowWord32:
		s.VisitFloat64InsertLowWord32(n)
	case ir.OpFloat64InsertHighWord32:
		s.VisitFloat64InsertHighWord32(n)
	case ir.OpFloat64Ieee754Binop:
		s.VisitFloat64Ieee754Binop(n)
	case ir.OpFloat64Ieee754Unop:
		s.VisitFloat64Ieee754Unop(n)
	case ir.OpMemoryBarrier:
		s.VisitMemoryBarrier(n)
	case ir.OpStackSlot:
		// A stack slot's size/alignment are scheduler-attached data this
		// narrow Graph contract has no accessor for, the same reason
		// OpSwitch/OpCallCFunction are not driven from this generic walk;
		// a caller with that data available calls VisitStackSlot directly.
		s.markDefined(n)
	case ir.OpAbortCSADcheck:
		s.VisitAbortCSADcheck(n)

	case ir.OpWord32Equal, ir.OpInt32LessThan, ir.OpInt32LessThanOrEqual,
		ir.OpUint32LessThan, ir.OpUint32LessThanOrEqual,
		ir.OpFloat32Equal, ir.OpFloat32LessThan, ir.OpFloat32LessThanOrEqual,
		ir.OpFloat64Equal, ir.OpFloat64LessThan, ir.OpFloat64LessThanOrEqual:
		s.fuseCompareValue(n, s.defaultContinuationFor(n))

	case ir.OpLoad:
		s.VisitLoad(n)
	case ir.OpStore:
		s.VisitStore(n)
	case ir.OpStackPointerGreaterThan:
		s.fuseStackPointerGreaterThan(n, s.defaultContinuationFor(n))

	case ir.OpBranch, ir.OpDeoptimizeIf, ir.OpTrapIf:
		s.VisitWordCompareZero(n, s.g.Input(n, 0), s.kindToContinuation(n, s.defaultCondition(n)))
	case ir.OpSwitch:
		// Switch's cases/default target are scheduler-attached data this
		// narrow Graph contract has no accessor for; a caller with that
		// data available calls VisitSwitch directly rather than routing
		// through this per-node dispatch.
		s.markDefined(n)

	case ir.OpWord32AtomicLoad, ir.OpWord32AtomicStore, ir.OpWord32AtomicExchange,
		ir.OpWord32AtomicCompareExchange, ir.OpWord32AtomicAdd, ir.OpWord32AtomicSub,
		ir.OpWord32AtomicAnd, ir.OpWord32AtomicOr, ir.OpWord32AtomicXor:
		s.VisitWord32Atomic(n)

	case ir.OpWord32PairAtomicLoad:
		s.VisitWord32PairAtomicLoad(n)
	case ir.OpWord32PairAtomicStore:
		s.VisitWord32PairAtomicStore(n)
	case ir.OpWord32PairAtomicAdd, ir.OpWord32PairAtomicSub, ir.OpWord32PairAtomicAnd,
		ir.OpWord32PairAtomicOr, ir.OpWord32PairAtomicXor, ir.OpWord32PairAtomicExchange,
		ir.OpWord32PairAtomicCompareExchange:
		s.VisitWord32PairAtomicUnsupported(n)

	case ir.OpInt32PairAdd, ir.OpInt32PairSub, ir.OpInt32PairMul,
		ir.OpInt32PairShl, ir.OpInt32PairShr, ir.OpInt32PairSar:
		s.VisitInt32Pair(n)

	case ir.OpF32x4Add, ir.OpF32x4Sub, ir.OpF32x4Mul, ir.OpF32x4Div,
		ir.OpI32x4Add, ir.OpI32x4Sub, ir.OpI32x4Mul:
		s.VisitSimd128Binop(n)
	case ir.OpI32x4Shl:
		s.VisitI32x4Shl(n)
	case ir.OpI16x8ExtMulLowS, ir.OpI16x8ExtMulHighS, ir.OpI16x8ExtMulLowU, ir.OpI16x8ExtMulHighU,
		ir.OpI32x4ExtMulLowS, ir.OpI32x4ExtMulHighS, ir.OpI32x4ExtMulLowU, ir.OpI32x4ExtMulHighU,
		ir.OpI64x2ExtMulLowS, ir.OpI64x2ExtMulHighS, ir.OpI64x2ExtMulLowU, ir.OpI64x2ExtMulHighU:
		s.VisitExtMul(n)
	case ir.OpI8x16Shuffle:
		s.VisitI8x16Shuffle(n)
	case ir.OpI8x16Swizzle:
		s.VisitI8x16Swizzle(n)
	case ir.OpS128Const, ir.OpS128Zero, ir.OpS128AllOnes:
		s.VisitSimd128Const(n)
	case ir.OpS128LoadSplat, ir.OpS128Load32Zero, ir.OpS128Load64Zero,
		ir.OpS128Load64ExtendS, ir.OpS128Load64ExtendU:
		s.VisitSimd128LoadTransform(n)
	case ir.OpS128LoadLane:
		s.VisitSimd128LoadLane(n)
	case ir.OpS128StoreLane:
		s.VisitSimd128StoreLane(n)
	case ir.OpS128Select:
		s.VisitS128Select(n)
	case ir.OpF32x4Pmin, ir.OpF32x4Pmax, ir.OpF64x2Pmin, ir.OpF64x2Pmax:
		s.VisitPseudoMinMax(n)
	case ir.OpI32x4DotI16x8S:
		s.VisitI32x4DotI16x8S(n)
	case ir.OpI16x8ExtAddPairwiseI8x16S, ir.OpI16x8ExtAddPairwiseI8x16U,
		ir.OpI32x4ExtAddPairwiseI16x8S, ir.OpI32x4ExtAddPairwiseI16x8U:
		s.VisitExtAddPairwise(n)

	case ir.OpCallCFunction, ir.OpCall, ir.OpTailCall:
		// Call ABI lowering needs a CallInfo the generic per-node walk has
		// no way to source; a caller driving a real call site invokes
		// VisitCall/VisitCallCFunction/VisitTailCall directly.
		s.markDefined(n)

	case ir.OpWord32Rol, ir.OpWord32ReverseBits, ir.OpWord64ReverseBytes, ir.OpSimd128ReverseBytes,
		ir.OpInt32AbsWithOverflow, ir.OpInt64AbsWithOverflow,
		ir.OpFloat64RoundDown, ir.OpFloat64RoundUp, ir.OpFloat64RoundTruncate,
		ir.OpFloat64RoundTiesEven, ir.OpFloat64RoundTiesAway,
		ir.OpProtectedLoad, ir.OpProtectedStore:
		s.VisitUnsupported(n)

	default:
		unimplemented(k, n)
	}
}
