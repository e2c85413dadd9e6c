package ir

// Graph is the read-only view of the mid-level dataflow graph this pass
// consumes. It is supplied by the caller; nothing in this module builds
// or mutates one outside of the builder used by tests and the demo
// command in cmd/rv32seldemo.
type Graph interface {
	Opcode(n Node) OperatorKind
	InputCount(n Node) int
	Input(n Node, i int) Node

	// Int32Value returns the constant value of an Int32Constant node.
	Int32Value(n Node) (int32, bool)
	// Float32Bits / Float64Bits return the bit pattern of a float
	// constant node, as raw bits so a zero-bit-pattern check is exact.
	Float32Bits(n Node) (uint32, bool)
	Float64Bits(n Node) (uint64, bool)
	// External returns the resolved external reference of an
	// ExternalConstant node.
	External(n Node) (ExternalReference, bool)

	// LoadRep / StoreRep return the machine representation carried by a
	// Load or Store node and whether the access is the unaligned variant,
	// and for stores, the write-barrier kind.
	LoadRep(n Node) (rep MachineRepresentation, unaligned bool)
	StoreRep(n Node) (rep MachineRepresentation, unaligned bool, barrier WriteBarrierKind)

	// AtomicOpWidth returns the width of an atomic node.
	AtomicOpWidth(n Node) AtomicWidth

	// LaneIndex / ShuffleBytes / ElementWidthBits carry SIMD operator
	// parameters.
	LaneIndex(n Node) int
	ShuffleBytes(n Node) [16]byte
	ElementWidthBits(n Node) int

	// ProjectionIndex returns which output of its (multi-result) input a
	// Projection node selects.
	ProjectionIndex(n Node) int

	// FindProjection returns the projection of n at the given index, if
	// the scheduler has one live.
	FindProjection(n Node, index int) (Node, bool)

	// CanCover reports whether user is the sole consumer of value and
	// dominates it, i.e. whether a selection rule may fold value into
	// user's instruction instead of materializing it separately. This is
	// the sole authority for folding decisions.
	CanCover(user, value Node) bool

	// IsDefined reports whether value has already produced a virtual
	// register (a prior node in scheduling order already selected it).
	IsDefined(value Node) bool

	// TargetWordSize is the pointer width in bits of the mid-IR this
	// graph was built for. This selector accepts only 32.
	TargetWordSize() int
}

// FuncArgs describes the shape of a function's signature for call/return
// ABI lowering.
type FuncArgs struct {
	// ArgCount is the number of arguments a Call/CallCFunction node
	// passes. A Call stores all of them to stack slots; a CallCFunction
	// passes the first four in fixed registers and stores the rest.
	ArgCount int
	// Results describes the caller-frame result slots, outermost first.
	Results []ResultSlot
}

// ResultSlot describes one value the callee left on the caller's frame.
type ResultSlot struct {
	Rep        MachineRepresentation
	SizeWords  int // size of this result in pointer-sized words
	ReverseIdx int // slot index counting back from the top of the frame
}

// CallInfo carries the per-call-site data VisitCall/VisitCallCFunction
// need beyond the generic Graph accessors.
type CallInfo interface {
	Args() FuncArgs
}
