package riscv

import (
	"fmt"
	"strings"
)

// String renders an operand for diagnostics and the demo command. It is
// not part of this package's external interface — the register allocator
// consumes the struct fields directly — but is the natural counterpart
// of a disassembly trace line for a still-virtual instruction stream.
func (o Operand) String() string {
	switch o.Tag {
	case TagUnallocated:
		if o.Policy == FixedRegister {
			return fmt.Sprintf("%s{%s}", o.Virtual, o.Fixed)
		}
		return fmt.Sprintf("%s{%s}", o.Virtual, policyName(o.Policy))
	case TagImmediate:
		return fmt.Sprintf("#c%d", o.ConstIdx)
	case TagTemp:
		switch o.Kind {
		case TempImmediateValue:
			return fmt.Sprintf("#%d", o.TempImm)
		case TempFloat:
			return "tmp<f>"
		case TempSimd128:
			return "tmp<v128>"
		default:
			if o.Fixed != "" {
				return fmt.Sprintf("tmp<%s>", o.Fixed)
			}
			return "tmp"
		}
	default:
		return "?"
	}
}

func policyName(p Policy) string {
	switch p {
	case AnyRegister:
		return "any"
	case SameAsFirstInput:
		return "=in0"
	case FixedRegister:
		return "fixed"
	case UniqueRegister:
		return "unique"
	case RegisterOrImmediateZero:
		return "reg|0"
	default:
		return "?"
	}
}

// String renders an instruction as "opcode<mode> outs <- inputs / temps".
func (in Instruction) String() string {
	var b strings.Builder
	b.WriteString(in.Opcode.String())
	if in.Mode != AddrNone {
		fmt.Fprintf(&b, "[%s]", in.Mode)
	}
	if in.Width == AtomicWidth32 || in.Width == AtomicWidth64 {
		fmt.Fprintf(&b, "{w%d}", 32<<(in.Width-1))
	}
	writeOperands(&b, in.Outputs)
	b.WriteString(" <- ")
	writeOperands(&b, in.Inputs)
	if len(in.Temps) > 0 {
		b.WriteString(" / ")
		writeOperands(&b, in.Temps)
	}
	if in.Continuation != nil && in.Continuation.Kind != ContNone {
		fmt.Fprintf(&b, " cont=%v", in.Continuation.Kind)
	}
	return b.String()
}

func writeOperands(b *strings.Builder, ops []Operand) {
	for i, o := range ops {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(o.String())
	}
}

func (k ContinuationKind) String() string {
	switch k {
	case ContNone:
		return "none"
	case ContSet:
		return "set"
	case ContBranch:
		return "branch"
	case ContDeoptimize:
		return "deopt"
	case ContTrap:
		return "trap"
	default:
		return "?"
	}
}
