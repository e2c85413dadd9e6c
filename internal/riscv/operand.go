package riscv

import "github.com/xyproto/rv32sel/internal/ir"

// Reg is a fixed physical register name, used by UseFixed, DefineAsFixed
// and FixedTemp for ABI-mandated placements (argument registers, the
// pair-atomic scratch registers) and for the zero register. Everywhere
// else registers stay virtual until the allocator runs.
type Reg string

// RISC-V integer ABI names this target's fixed-register rules reference.
const (
	RegZero Reg = "zero"
	RegA0   Reg = "a0"
	RegA1   Reg = "a1"
	RegA2   Reg = "a2"
	RegT0   Reg = "t0"
	RegFa0  Reg = "fa0"
	RegFa1  Reg = "fa1"
)

// Policy names how the register allocator downstream must satisfy an
// Unallocated operand.
type Policy uint8

const (
	AnyRegister Policy = iota
	SameAsFirstInput
	FixedRegister
	UniqueRegister
	RegisterOrImmediateZero
)

// TempKind distinguishes the flavor of a scratch operand.
type TempKind uint8

const (
	TempScratch TempKind = iota
	TempFloat
	TempSimd128
	TempImmediateValue
)

// OperandTag is the sum type discriminant of Operand.
type OperandTag uint8

const (
	TagUnallocated OperandTag = iota
	TagImmediate
	TagTemp
)

// Operand is the tagged sum type used throughout this package: an
// unallocated virtual register with a policy, an immediate pointing into the
// constant pool, or a scratch temp. It is a plain struct, not an
// interface hierarchy. The selector builds them through the operand
// generator methods in internal/selector/operandgen.go, which wrap the
// constructors declared here.
type Operand struct {
	Tag OperandTag

	// TagUnallocated fields.
	Policy    Policy
	Virtual   ir.Node
	Fixed     Reg

	// TagImmediate fields.
	ConstIdx int

	// TagTemp fields.
	Kind    TempKind
	TempImm int64
}

func Unallocated(policy Policy, v ir.Node) Operand {
	return Operand{Tag: TagUnallocated, Policy: policy, Virtual: v}
}

func UnallocatedFixed(v ir.Node, r Reg) Operand {
	return Operand{Tag: TagUnallocated, Policy: FixedRegister, Virtual: v, Fixed: r}
}

func Immediate(constIdx int) Operand {
	return Operand{Tag: TagImmediate, ConstIdx: constIdx}
}

func Temp(kind TempKind) Operand {
	return Operand{Tag: TagTemp, Kind: kind}
}

func TempImmediate(v int64) Operand {
	return Operand{Tag: TagTemp, Kind: TempImmediateValue, TempImm: v}
}

func FixedTemp(r Reg) Operand {
	return Operand{Tag: TagTemp, Kind: TempScratch, Fixed: r}
}
