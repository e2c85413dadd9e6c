package riscv

// OpcodeClass groups opcodes that share an immediate-field width.
type OpcodeClass uint8

const (
	ClassShift OpcodeClass = iota // 32-bit shifts: unsigned 5-bit
	ClassALU                      // Add/And/Or/Xor/Tst: signed 12-bit
	ClassMemory                   // byte/halfword/word load+store: signed 32-bit
	ClassDefault                   // everything else: signed 12-bit
)

func classOf(op Opcode) OpcodeClass {
	switch op {
	case Shl32, Sar32, Shr32:
		return ClassShift
	case Add, And, Or, Xor, Tst:
		return ClassALU
	case Lb, Lbu, Lh, Lhu, Lw, LoadFloat, LoadDouble,
		Ulh, Ulhu, Ulw, ULoadFloat, ULoadDouble,
		Sb, Sh, Sw, StoreFloat, StoreDouble,
		Ush, Usw, UStoreFloat, UStoreDouble:
		return ClassMemory
	default:
		return ClassDefault
	}
}

// FitsImmediate reports whether v is representable in op's immediate
// field.
func FitsImmediate(op Opcode, v int64) bool {
	switch classOf(op) {
	case ClassShift:
		return v >= 0 && v <= 31
	case ClassALU:
		return v >= -(1<<11) && v <= (1<<11)-1
	case ClassMemory:
		return v >= -(1 << 31) && v <= (1<<31)-1
	default:
		return v >= -(1<<11) && v <= (1<<11)-1
	}
}
