// Package ir defines the narrow, read-only contract this selector uses to
// walk the mid-level dataflow graph. The graph itself, and everything that
// builds or optimizes it, lives upstream of this package; ir only declares
// the shapes and accessors a target needs to lower nodes to machine
// instructions.
package ir

import "fmt"

// Node is an opaque reference into the surrounding graph. The sentinel
// Invalid never names a real node; the zero value 0 is an ordinary node.
type Node int32

// Invalid is the sentinel Node value, used for "no such input/projection".
const Invalid Node = -1

func (n Node) String() string {
	if n == Invalid {
		return "<invalid>"
	}
	return fmt.Sprintf("n%d", int32(n))
}

// MachineRepresentation names the in-memory shape of a value flowing
// through a load, store, phi, or parameter.
type MachineRepresentation uint8

const (
	RepNone MachineRepresentation = iota
	RepBit
	RepWord8
	RepWord16
	RepWord32
	RepTagged
	RepTaggedPointer
	RepTaggedSigned
	RepFloat32
	RepFloat64
	RepSimd128

	// Representations this 32-bit target does not implement. They are
	// distinct constants (rather than folded into RepNone) so a rejection
	// can name exactly what was rejected.
	RepWord64
	RepCompressed
	RepCompressedPointer
	RepSandboxedPointer
	RepMapWord
)

func (r MachineRepresentation) String() string {
	switch r {
	case RepNone:
		return "none"
	case RepBit:
		return "bit"
	case RepWord8:
		return "word8"
	case RepWord16:
		return "word16"
	case RepWord32:
		return "word32"
	case RepTagged:
		return "tagged"
	case RepTaggedPointer:
		return "tagged-pointer"
	case RepTaggedSigned:
		return "tagged-signed"
	case RepFloat32:
		return "float32"
	case RepFloat64:
		return "float64"
	case RepSimd128:
		return "simd128"
	case RepWord64:
		return "word64"
	case RepCompressed:
		return "compressed"
	case RepCompressedPointer:
		return "compressed-pointer"
	case RepSandboxedPointer:
		return "sandboxed-pointer"
	case RepMapWord:
		return "map-word"
	default:
		return "unknown-representation"
	}
}

// The unaligned-access variant of a load/store is not a separate
// representation: the graph carries it as a boolean on the node, returned
// by Graph.LoadRep and Graph.StoreRep.

// WriteBarrierKind names what a tagged-pointer store must do for the
// collector before or after writing.
type WriteBarrierKind uint8

const (
	NoWriteBarrier WriteBarrierKind = iota
	MapWriteBarrier
	PointerWriteBarrier
	FullWriteBarrier
)

// AtomicWidth names the operand width of an atomic access.
type AtomicWidth uint8

const (
	AtomicWord32 AtomicWidth = iota
	AtomicWord64 // pair atomics on this 32-bit target
)

// ExternalReference names a root-relative constant the host VM resolves
// to a fixed byte offset from the root register. Only the offset matters
// to instruction selection; the referent itself is opaque here.
type ExternalReference struct {
	Name       string
	RootOffset int64
}
