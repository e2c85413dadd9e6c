package ir

// OperatorKind tags a node with the operation it performs. The real
// mid-IR vocabulary this pass is lowered against runs to roughly 400
// entries; this enum carries the subset the RISC-V 32-bit target actually
// has a lowering rule for, whether implemented or declared unimplemented,
// plus enough structural kinds (Parameter, Constant, Projection, Phi,
// control) to describe a function. The switch in
// internal/selector/dispatch.go names every constant below; Go does not
// check that switch for exhaustiveness, so a constant added here without
// a case there reaches the dispatcher's default arm and its
// unimplemented diagnostic at selection time.
type OperatorKind uint16

const (
	OpInvalid OperatorKind = iota

	// Structural.
	OpParameter
	OpInt32Constant
	OpFloat32Constant
	OpFloat64Constant
	OpExternalConstant
	OpProjection
	OpPhi
	OpLabel

	// Integer ALU, 32-bit.
	OpInt32Add
	OpInt32Sub
	OpInt32Mul
	OpInt32Div
	OpInt32DivU
	OpInt32Mod
	OpInt32ModU
	OpInt32AddWithOverflow
	OpInt32SubWithOverflow
	OpInt32MulWithOverflow
	OpWord32And
	OpWord32Or
	OpWord32Xor
	OpWord32Shl
	OpWord32Shr
	OpWord32Sar
	OpWord32Equal
	OpInt32LessThan
	OpInt32LessThanOrEqual
	OpUint32LessThan
	OpUint32LessThanOrEqual

	// Bit manipulation, conversions and misc scalar ops the original
	// selector implements natively but the distilled surface omitted.
	OpWord32Clz
	OpWord32Ctz
	OpWord32Popcnt
	OpWord32Ror
	OpInt32MulHigh
	OpUint32MulHigh
	OpBitcastFloat32ToInt32
	OpBitcastInt32ToFloat32
	OpChangeInt32ToFloat64
	OpChangeFloat64ToInt32
	OpTruncateFloat64ToWord32
	OpSignExtendWord8ToInt32
	OpSignExtendWord16ToInt32
	OpFloat64ExtractLowWord32
	OpFloat64ExtractHighWord32
	OpFloat64InsertLowWord32
	OpFloat64InsertHighWord32
	OpFloat64Ieee754Binop
	OpFloat64Ieee754Unop
	OpMemoryBarrier
	OpStackSlot
	OpAbortCSADcheck

	// Declared architecturally unsupported: kept as named
	// constants so the dispatcher's fatal arm is explicit about what it
	// rejects, rather than lumping them into a silent default.
	OpWord32Rol
	OpWord32ReverseBits
	OpWord64ReverseBytes
	OpSimd128ReverseBytes
	OpInt32AbsWithOverflow
	OpInt64AbsWithOverflow
	OpFloat64RoundDown
	OpFloat64RoundUp
	OpFloat64RoundTruncate
	OpFloat64RoundTiesEven
	OpFloat64RoundTiesAway
	OpProtectedLoad
	OpProtectedStore

	// Float compare.
	OpFloat32Equal
	OpFloat32LessThan
	OpFloat32LessThanOrEqual
	OpFloat64Equal
	OpFloat64LessThan
	OpFloat64LessThanOrEqual

	// Memory.
	OpLoad
	OpStore
	OpStackPointerGreaterThan

	// Control flow / branch continuations (consumed via FlagsContinuation,
	// not lowered to a value-producing instruction on their own).
	OpBranch
	OpDeoptimizeIf
	OpTrapIf
	OpSwitch

	// Word32 atomics.
	OpWord32AtomicLoad
	OpWord32AtomicStore
	OpWord32AtomicExchange
	OpWord32AtomicCompareExchange
	OpWord32AtomicAdd
	OpWord32AtomicSub
	OpWord32AtomicAnd
	OpWord32AtomicOr
	OpWord32AtomicXor

	// Pair (64-bit-on-32-bit) atomics: only Load/Store are implemented.
	OpWord32PairAtomicLoad
	OpWord32PairAtomicStore
	OpWord32PairAtomicAdd
	OpWord32PairAtomicSub
	OpWord32PairAtomicAnd
	OpWord32PairAtomicOr
	OpWord32PairAtomicXor
	OpWord32PairAtomicExchange
	OpWord32PairAtomicCompareExchange

	// 64-bit arithmetic represented as a pair of 32-bit halves.
	OpInt32PairAdd
	OpInt32PairSub
	OpInt32PairMul
	OpInt32PairShl
	OpInt32PairShr
	OpInt32PairSar

	// SIMD (128-bit).
	OpF32x4Add
	OpF32x4Sub
	OpF32x4Mul
	OpF32x4Div
	OpI32x4Add
	OpI32x4Sub
	OpI32x4Mul
	OpI32x4Shl
	OpI16x8ExtMulLowS
	OpI16x8ExtMulHighS
	OpI16x8ExtMulLowU
	OpI16x8ExtMulHighU
	OpI32x4ExtMulLowS
	OpI32x4ExtMulHighS
	OpI32x4ExtMulLowU
	OpI32x4ExtMulHighU
	OpI64x2ExtMulLowS
	OpI64x2ExtMulHighS
	OpI64x2ExtMulLowU
	OpI64x2ExtMulHighU
	OpI8x16Shuffle
	OpI8x16Swizzle
	OpS128Const
	OpS128Zero
	OpS128AllOnes
	OpS128LoadSplat
	OpS128Load32Zero
	OpS128Load64Zero
	OpS128Load64ExtendS
	OpS128Load64ExtendU
	OpS128LoadLane
	OpS128StoreLane
	OpS128Select
	OpF32x4Pmin
	OpF32x4Pmax
	OpF64x2Pmin
	OpF64x2Pmax
	OpI32x4DotI16x8S
	OpI32x4ExtAddPairwiseI16x8S
	OpI32x4ExtAddPairwiseI16x8U
	OpI16x8ExtAddPairwiseI8x16S
	OpI16x8ExtAddPairwiseI8x16U

	// Calls.
	OpCallCFunction
	OpCall
	OpTailCall
)

var opNames = map[OperatorKind]string{
	OpInvalid:                        "Invalid",
	OpParameter:                      "Parameter",
	OpInt32Constant:                  "Int32Constant",
	OpFloat32Constant:                "Float32Constant",
	OpFloat64Constant:                "Float64Constant",
	OpExternalConstant:               "ExternalConstant",
	OpProjection:                     "Projection",
	OpPhi:                            "Phi",
	OpLabel:                          "Label",
	OpInt32Add:                       "Int32Add",
	OpInt32Sub:                       "Int32Sub",
	OpInt32Mul:                       "Int32Mul",
	OpInt32Div:                       "Int32Div",
	OpInt32DivU:                      "Int32DivU",
	OpInt32Mod:                       "Int32Mod",
	OpInt32ModU:                      "Int32ModU",
	OpInt32AddWithOverflow:           "Int32AddWithOverflow",
	OpInt32SubWithOverflow:           "Int32SubWithOverflow",
	OpInt32MulWithOverflow:           "Int32MulWithOverflow",
	OpWord32And:                      "Word32And",
	OpWord32Or:                       "Word32Or",
	OpWord32Xor:                      "Word32Xor",
	OpWord32Shl:                      "Word32Shl",
	OpWord32Shr:                      "Word32Shr",
	OpWord32Sar:                      "Word32Sar",
	OpWord32Equal:                    "Word32Equal",
	OpInt32LessThan:                  "Int32LessThan",
	OpInt32LessThanOrEqual:           "Int32LessThanOrEqual",
	OpUint32LessThan:                 "Uint32LessThan",
	OpUint32LessThanOrEqual:          "Uint32LessThanOrEqual",
	OpWord32Clz:                      "Word32Clz",
	OpWord32Ctz:                      "Word32Ctz",
	OpWord32Popcnt:                   "Word32Popcnt",
	OpWord32Ror:                      "Word32Ror",
	OpInt32MulHigh:                   "Int32MulHigh",
	OpUint32MulHigh:                  "Uint32MulHigh",
	OpBitcastFloat32ToInt32:          "BitcastFloat32ToInt32",
	OpBitcastInt32ToFloat32:          "BitcastInt32ToFloat32",
	OpChangeInt32ToFloat64:           "ChangeInt32ToFloat64",
	OpChangeFloat64ToInt32:           "ChangeFloat64ToInt32",
	OpTruncateFloat64ToWord32:        "TruncateFloat64ToWord32",
	OpSignExtendWord8ToInt32:         "SignExtendWord8ToInt32",
	OpSignExtendWord16ToInt32:        "SignExtendWord16ToInt32",
	OpFloat64ExtractLowWord32:        "Float64ExtractLowWord32",
	OpFloat64ExtractHighWord32:       "Float64ExtractHighWord32",
	OpFloat64InsertLowWord32:         "Float64InsertLowWord32",
	OpFloat64InsertHighWord32:        "Float64InsertHighWord32",
	OpFloat64Ieee754Binop:            "Float64Ieee754Binop",
	OpFloat64Ieee754Unop:             "Float64Ieee754Unop",
	OpMemoryBarrier:                  "MemoryBarrier",
	OpStackSlot:                      "StackSlot",
	OpAbortCSADcheck:                 "AbortCSADcheck",
	OpWord32Rol:                      "Word32Rol",
	OpWord32ReverseBits:              "Word32ReverseBits",
	OpWord64ReverseBytes:             "Word64ReverseBytes",
	OpSimd128ReverseBytes:            "Simd128ReverseBytes",
	OpInt32AbsWithOverflow:           "Int32AbsWithOverflow",
	OpInt64AbsWithOverflow:           "Int64AbsWithOverflow",
	OpFloat64RoundDown:               "Float64RoundDown",
	OpFloat64RoundUp:                 "Float64RoundUp",
	OpFloat64RoundTruncate:           "Float64RoundTruncate",
	OpFloat64RoundTiesEven:           "Float64RoundTiesEven",
	OpFloat64RoundTiesAway:           "Float64RoundTiesAway",
	OpProtectedLoad:                  "ProtectedLoad",
	OpProtectedStore:                 "ProtectedStore",
	OpFloat32Equal:                   "Float32Equal",
	OpFloat32LessThan:                "Float32LessThan",
	OpFloat32LessThanOrEqual:         "Float32LessThanOrEqual",
	OpFloat64Equal:                   "Float64Equal",
	OpFloat64LessThan:                "Float64LessThan",
	OpFloat64LessThanOrEqual:         "Float64LessThanOrEqual",
	OpLoad:                           "Load",
	OpStore:                          "Store",
	OpStackPointerGreaterThan:        "StackPointerGreaterThan",
	OpBranch:                         "Branch",
	OpDeoptimizeIf:                   "DeoptimizeIf",
	OpTrapIf:                         "TrapIf",
	OpSwitch:                         "Switch",
	OpWord32AtomicLoad:               "Word32AtomicLoad",
	OpWord32AtomicStore:              "Word32AtomicStore",
	OpWord32AtomicExchange:           "Word32AtomicExchange",
	OpWord32AtomicCompareExchange:    "Word32AtomicCompareExchange",
	OpWord32AtomicAdd:                "Word32AtomicAdd",
	OpWord32AtomicSub:                "Word32AtomicSub",
	OpWord32AtomicAnd:                "Word32AtomicAnd",
	OpWord32AtomicOr:                 "Word32AtomicOr",
	OpWord32AtomicXor:                "Word32AtomicXor",
	OpWord32PairAtomicLoad:           "Word32PairAtomicLoad",
	OpWord32PairAtomicStore:          "Word32PairAtomicStore",
	OpWord32PairAtomicAdd:            "Word32PairAtomicAdd",
	OpWord32PairAtomicSub:            "Word32PairAtomicSub",
	OpWord32PairAtomicAnd:            "Word32PairAtomicAnd",
	OpWord32PairAtomicOr:             "Word32PairAtomicOr",
	OpWord32PairAtomicXor:            "Word32PairAtomicXor",
	OpWord32PairAtomicExchange:       "Word32PairAtomicExchange",
	OpWord32PairAtomicCompareExchange: "Word32PairAtomicCompareExchange",
	OpInt32PairAdd:                   "Int32PairAdd",
	OpInt32PairSub:                   "Int32PairSub",
	OpInt32PairMul:                   "Int32PairMul",
	OpInt32PairShl:                   "Int32PairShl",
	OpInt32PairShr:                   "Int32PairShr",
	OpInt32PairSar:                   "Int32PairSar",
	OpF32x4Add:                       "F32x4Add",
	OpF32x4Sub:                       "F32x4Sub",
	OpF32x4Mul:                       "F32x4Mul",
	OpF32x4Div:                       "F32x4Div",
	OpI32x4Add:                       "I32x4Add",
	OpI32x4Sub:                       "I32x4Sub",
	OpI32x4Mul:                       "I32x4Mul",
	OpI32x4Shl:                       "I32x4Shl",
	OpI16x8ExtMulLowS:                "I16x8ExtMulLowS",
	OpI16x8ExtMulHighS:               "I16x8ExtMulHighS",
	OpI16x8ExtMulLowU:                "I16x8ExtMulLowU",
	OpI16x8ExtMulHighU:               "I16x8ExtMulHighU",
	OpI32x4ExtMulLowS:                "I32x4ExtMulLowS",
	OpI32x4ExtMulHighS:               "I32x4ExtMulHighS",
	OpI32x4ExtMulLowU:                "I32x4ExtMulLowU",
	OpI32x4ExtMulHighU:               "I32x4ExtMulHighU",
	OpI64x2ExtMulLowS:                "I64x2ExtMulLowS",
	OpI64x2ExtMulHighS:               "I64x2ExtMulHighS",
	OpI64x2ExtMulLowU:                "I64x2ExtMulLowU",
	OpI64x2ExtMulHighU:               "I64x2ExtMulHighU",
	OpI8x16Shuffle:                   "I8x16Shuffle",
	OpI8x16Swizzle:                   "I8x16Swizzle",
	OpS128Const:                      "S128Const",
	OpS128Zero:                       "S128Zero",
	OpS128AllOnes:                    "S128AllOnes",
	OpS128LoadSplat:                  "S128LoadSplat",
	OpS128Load32Zero:                 "S128Load32Zero",
	OpS128Load64Zero:                 "S128Load64Zero",
	OpS128Load64ExtendS:              "S128Load64ExtendS",
	OpS128Load64ExtendU:              "S128Load64ExtendU",
	OpS128LoadLane:                   "S128LoadLane",
	OpS128StoreLane:                  "S128StoreLane",
	OpS128Select:                     "S128Select",
	OpF32x4Pmin:                      "F32x4Pmin",
	OpF32x4Pmax:                      "F32x4Pmax",
	OpF64x2Pmin:                      "F64x2Pmin",
	OpF64x2Pmax:                      "F64x2Pmax",
	OpI32x4DotI16x8S:                 "I32x4DotI16x8S",
	OpI32x4ExtAddPairwiseI16x8S:      "I32x4ExtAddPairwiseI16x8S",
	OpI32x4ExtAddPairwiseI16x8U:      "I32x4ExtAddPairwiseI16x8U",
	OpI16x8ExtAddPairwiseI8x16S:      "I16x8ExtAddPairwiseI8x16S",
	OpI16x8ExtAddPairwiseI8x16U:      "I16x8ExtAddPairwiseI8x16U",
	OpCallCFunction:                  "CallCFunction",
	OpCall:                           "Call",
	OpTailCall:                       "TailCall",
}

func (k OperatorKind) String() string {
	if s, ok := opNames[k]; ok {
		return s
	}
	return "UnknownOp"
}
