// Package riscv holds the RISC-V 32-bit target's instruction/operand data
// model: the closed opcode enum, the packed instruction word, tagged
// operands, and the flags-continuation state machine that a comparison's
// consumer folds into. Nothing here walks the mid-IR; internal/selector
// does that and only ever produces values of the types declared here.
package riscv

// Opcode is the architectural opcode of an emitted instruction — the low
// bits of the packed instruction word (see Pack and Instruction.Packed).
type Opcode uint16

const (
	OpInvalid Opcode = iota

	// Integer ALU.
	Add
	Sub
	Mul
	And
	Or
	Xor
	Nor
	Tst // AND, result only feeds a flags continuation (test-and-branch)
	Shl32
	Sar32
	Shr32
	SignExtendByte
	SignExtendShort
	Div32
	DivU32
	Mod32
	ModU32
	AddOvf
	SubOvf
	MulOvf32
	Clz32
	Ctz32
	Popcnt32
	Ror32
	MulHigh32
	MulHighU32
	BitcastFloat32ToInt32
	BitcastInt32ToFloat32
	CvtDW  // int32 -> float64
	TruncWD  // float64 -> int32, round toward zero
	TruncateDoubleToI // float64 -> word32 bits, deopt-safe truncate
	Float64ExtractLowWord32
	Float64ExtractHighWord32
	Float64InsertLowWord32
	Float64InsertHighWord32
	Float64Ieee754Binop
	Float64Ieee754Unop
	Sync // full memory barrier
	ArchStackSlot
	ArchAbortCSADcheck

	// Compare / flags.
	CmpZero
	Cmp     // signed/unsigned word compare, condition on Instruction.Continuation
	CmpS    // float32 compare
	CmpD    // float64 compare
	CmpStackPointerGreaterThan

	// Loads.
	Lb
	Lbu
	Lh
	Lhu
	Lw
	LoadFloat
	LoadDouble
	Ulh
	Ulhu
	Ulw
	ULoadFloat
	ULoadDouble
	RvvLd

	// Stores.
	Sb
	Sh
	Sw
	StoreFloat
	StoreDouble
	Ush
	Usw
	UStoreFloat
	UStoreDouble
	RvvSt
	ArchStoreWithWriteBarrier

	// Switch lowering.
	SwitchJumpTable
	SwitchBinarySearch

	// Word32 atomics.
	AtomicLoadWord32
	AtomicStoreWord32
	AtomicExchangeWord32
	AtomicCompareExchangeWord32
	AtomicAddWord32
	AtomicSubWord32
	AtomicAndWord32
	AtomicOrWord32
	AtomicXorWord32

	// Pair atomics (implemented subset only).
	AtomicPairLoad
	AtomicPairStore

	// 64-bit-as-pair arithmetic.
	AddPair
	SubPair
	MulPair
	ShlPair
	ShrPair
	SarPair

	// SIMD.
	RiscvF32x4Add
	RiscvF32x4Sub
	RiscvF32x4Mul
	RiscvF32x4Div
	RiscvI32x4Add
	RiscvI32x4Sub
	RiscvI32x4Mul
	RiscvI32x4Shl
	Vwmul
	Vwmulu
	Vslidedown
	Vrgather
	S128Zero
	S128AllOnes
	S128Const
	S128LoadSplat
	S128Load32Zero
	S128Load64Zero
	S128Load64ExtendS
	S128Load64ExtendU
	S128LoadLane
	S128StoreLane
	S128Select
	RiscvF32x4Pmin
	RiscvF32x4Pmax
	RiscvF64x2Pmin
	RiscvF64x2Pmax
	Vwmul32Dot // I32x4DotI16x8S
	ExtAddPairwise

	// Call / return ABI.
	PrepareCallCFunction
	StoreToStackSlot
	StackClaim
	Peek
	Call
)

var opcodeNames = [...]string{
	OpInvalid:                    "invalid",
	Add:                          "Add",
	Sub:                          "Sub",
	Mul:                          "Mul",
	And:                          "And",
	Or:                           "Or",
	Xor:                          "Xor",
	Nor:                          "Nor",
	Tst:                          "Tst",
	Shl32:                        "Shl32",
	Sar32:                        "Sar32",
	Shr32:                        "Shr32",
	SignExtendByte:               "SignExtendByte",
	SignExtendShort:              "SignExtendShort",
	Div32:                        "Div32",
	DivU32:                       "DivU32",
	Mod32:                        "Mod32",
	ModU32:                       "ModU32",
	AddOvf:                       "AddOvf",
	SubOvf:                       "SubOvf",
	MulOvf32:                     "MulOvf32",
	Clz32:                        "Clz32",
	Ctz32:                        "Ctz32",
	Popcnt32:                     "Popcnt32",
	Ror32:                        "Ror32",
	MulHigh32:                    "MulHigh32",
	MulHighU32:                   "MulHighU32",
	BitcastFloat32ToInt32:        "BitcastFloat32ToInt32",
	BitcastInt32ToFloat32:        "BitcastInt32ToFloat32",
	CvtDW:                        "CvtDW",
	TruncWD:                      "TruncWD",
	TruncateDoubleToI:            "TruncateDoubleToI",
	Float64ExtractLowWord32:      "Float64ExtractLowWord32",
	Float64ExtractHighWord32:     "Float64ExtractHighWord32",
	Float64InsertLowWord32:       "Float64InsertLowWord32",
	Float64InsertHighWord32:      "Float64InsertHighWord32",
	Float64Ieee754Binop:          "Float64Ieee754Binop",
	Float64Ieee754Unop:           "Float64Ieee754Unop",
	Sync:                         "Sync",
	ArchStackSlot:                "ArchStackSlot",
	ArchAbortCSADcheck:           "ArchAbortCSADcheck",
	CmpZero:                      "CmpZero",
	Cmp:                          "Cmp",
	CmpS:                         "CmpS",
	CmpD:                         "CmpD",
	CmpStackPointerGreaterThan:   "CmpStackPointerGreaterThan",
	Lb:                           "Lb",
	Lbu:                          "Lbu",
	Lh:                           "Lh",
	Lhu:                          "Lhu",
	Lw:                           "Lw",
	LoadFloat:                    "LoadFloat",
	LoadDouble:                   "LoadDouble",
	Ulh:                          "Ulh",
	Ulhu:                         "Ulhu",
	Ulw:                          "Ulw",
	ULoadFloat:                   "ULoadFloat",
	ULoadDouble:                  "ULoadDouble",
	RvvLd:                        "RvvLd",
	Sb:                           "Sb",
	Sh:                           "Sh",
	Sw:                           "Sw",
	StoreFloat:                   "StoreFloat",
	StoreDouble:                  "StoreDouble",
	Ush:                          "Ush",
	Usw:                          "Usw",
	UStoreFloat:                  "UStoreFloat",
	UStoreDouble:                 "UStoreDouble",
	RvvSt:                        "RvvSt",
	ArchStoreWithWriteBarrier:    "ArchStoreWithWriteBarrier",
	SwitchJumpTable:              "SwitchJumpTable",
	SwitchBinarySearch:           "SwitchBinarySearch",
	AtomicLoadWord32:             "AtomicLoadWord32",
	AtomicStoreWord32:            "AtomicStoreWord32",
	AtomicExchangeWord32:         "AtomicExchangeWord32",
	AtomicCompareExchangeWord32:  "AtomicCompareExchangeWord32",
	AtomicAddWord32:              "AtomicAddWord32",
	AtomicSubWord32:              "AtomicSubWord32",
	AtomicAndWord32:              "AtomicAndWord32",
	AtomicOrWord32:               "AtomicOrWord32",
	AtomicXorWord32:              "AtomicXorWord32",
	AtomicPairLoad:               "AtomicPairLoad",
	AtomicPairStore:              "AtomicPairStore",
	AddPair:                      "AddPair",
	SubPair:                      "SubPair",
	MulPair:                      "MulPair",
	ShlPair:                      "ShlPair",
	ShrPair:                      "ShrPair",
	SarPair:                      "SarPair",
	RiscvF32x4Add:                "RiscvF32x4Add",
	RiscvF32x4Sub:                "RiscvF32x4Sub",
	RiscvF32x4Mul:                "RiscvF32x4Mul",
	RiscvF32x4Div:                "RiscvF32x4Div",
	RiscvI32x4Add:                "RiscvI32x4Add",
	RiscvI32x4Sub:                "RiscvI32x4Sub",
	RiscvI32x4Mul:                "RiscvI32x4Mul",
	RiscvI32x4Shl:                "RiscvI32x4Shl",
	Vwmul:                        "Vwmul",
	Vwmulu:                       "Vwmulu",
	Vslidedown:                   "Vslidedown",
	Vrgather:                     "Vrgather",
	S128Zero:                     "S128Zero",
	S128AllOnes:                  "S128AllOnes",
	S128Const:                    "S128Const",
	S128LoadSplat:                "S128LoadSplat",
	S128Load32Zero:               "S128Load32Zero",
	S128Load64Zero:               "S128Load64Zero",
	S128Load64ExtendS:            "S128Load64ExtendS",
	S128Load64ExtendU:            "S128Load64ExtendU",
	S128LoadLane:                 "S128LoadLane",
	S128StoreLane:                "S128StoreLane",
	S128Select:                   "S128Select",
	RiscvF32x4Pmin:               "RiscvF32x4Pmin",
	RiscvF32x4Pmax:               "RiscvF32x4Pmax",
	RiscvF64x2Pmin:               "RiscvF64x2Pmin",
	RiscvF64x2Pmax:               "RiscvF64x2Pmax",
	Vwmul32Dot:                   "Vwmul32Dot",
	ExtAddPairwise:               "ExtAddPairwise",
	PrepareCallCFunction:         "PrepareCallCFunction",
	StoreToStackSlot:             "StoreToStackSlot",
	StackClaim:                   "StackClaim",
	Peek:                         "Peek",
	Call:                         "Call",
}

func (o Opcode) String() string {
	if int(o) < len(opcodeNames) && opcodeNames[o] != "" {
		return opcodeNames[o]
	}
	return "UnknownOpcode"
}
