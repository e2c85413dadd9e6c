package ir

// Builder is a small in-memory Graph implementation used by tests and by
// cmd/rv32seldemo. The real mid-IR builder and its optimization passes
// are external collaborators; this is only enough of a graph to
// exercise the selector end to end without one.
type Builder struct {
	wordSize int

	kind     []OperatorKind
	inputs   [][]Node
	i32      map[Node]int32
	f32bits  map[Node]uint32
	f64bits  map[Node]uint64
	extref   map[Node]ExternalReference
	loadRep  map[Node]loadInfo
	storeRep map[Node]storeInfo
	atomicW  map[Node]AtomicWidth
	lane     map[Node]int
	shuffle  map[Node][16]byte
	elemBits map[Node]int
	projIdx  map[Node]int
	proj     map[Node]map[int]Node

	cover   map[[2]Node]bool
	defined map[Node]bool
}

type loadInfo struct {
	rep        MachineRepresentation
	unaligned  bool
}

type storeInfo struct {
	rep       MachineRepresentation
	unaligned bool
	barrier   WriteBarrierKind
}

// NewBuilder creates an empty graph for the given target word size (bits).
func NewBuilder(wordSize int) *Builder {
	return &Builder{
		wordSize: wordSize,
		i32:      map[Node]int32{},
		f32bits:  map[Node]uint32{},
		f64bits:  map[Node]uint64{},
		extref:   map[Node]ExternalReference{},
		loadRep:  map[Node]loadInfo{},
		storeRep: map[Node]storeInfo{},
		atomicW:  map[Node]AtomicWidth{},
		lane:     map[Node]int{},
		shuffle:  map[Node][16]byte{},
		elemBits: map[Node]int{},
		projIdx:  map[Node]int{},
		proj:     map[Node]map[int]Node{},
		cover:    map[[2]Node]bool{},
		defined:  map[Node]bool{},
	}
}

func (b *Builder) add(k OperatorKind, inputs ...Node) Node {
	n := Node(len(b.kind))
	b.kind = append(b.kind, k)
	b.inputs = append(b.inputs, append([]Node(nil), inputs...))
	return n
}

// Param adds a Parameter node.
func (b *Builder) Param() Node { return b.add(OpParameter) }

// Int32 adds an Int32Constant node with the given value.
func (b *Builder) Int32(v int32) Node {
	n := b.add(OpInt32Constant)
	b.i32[n] = v
	return n
}

// Float32 adds a Float32Constant node carrying the given bit pattern.
func (b *Builder) Float32(bits uint32) Node {
	n := b.add(OpFloat32Constant)
	b.f32bits[n] = bits
	return n
}

// Float64 adds a Float64Constant node carrying the given bit pattern.
func (b *Builder) Float64(bits uint64) Node {
	n := b.add(OpFloat64Constant)
	b.f64bits[n] = bits
	return n
}

// ExternalRef adds an ExternalConstant node resolved to the given
// root-relative offset.
func (b *Builder) ExternalRef(name string, rootOffset int64) Node {
	n := b.add(OpExternalConstant)
	b.extref[n] = ExternalReference{Name: name, RootOffset: rootOffset}
	return n
}

// Binop adds a two-input node of the given kind.
func (b *Builder) Binop(k OperatorKind, l, r Node) Node { return b.add(k, l, r) }

// Unop adds a one-input node of the given kind.
func (b *Builder) Unop(k OperatorKind, x Node) Node { return b.add(k, x) }

// Op adds a node of the given kind over an arbitrary input list, for
// kinds whose arity Binop/Unop don't cover (pair arithmetic, calls).
func (b *Builder) Op(k OperatorKind, inputs ...Node) Node { return b.add(k, inputs...) }

// Load adds a Load node over (base, index).
func (b *Builder) Load(base, index Node, rep MachineRepresentation, unaligned bool) Node {
	n := b.add(OpLoad, base, index)
	b.loadRep[n] = loadInfo{rep: rep, unaligned: unaligned}
	return n
}

// Store adds a Store node over (base, index, value).
func (b *Builder) Store(base, index, value Node, rep MachineRepresentation, unaligned bool, barrier WriteBarrierKind) Node {
	n := b.add(OpStore, base, index, value)
	b.storeRep[n] = storeInfo{rep: rep, unaligned: unaligned, barrier: barrier}
	return n
}

// Atomic adds an atomic node over (base, index[, value[, expected]]).
func (b *Builder) Atomic(k OperatorKind, width AtomicWidth, inputs ...Node) Node {
	n := b.add(k, inputs...)
	b.atomicW[n] = width
	return n
}

// Projection adds a Projection node selecting output index of of_.
func (b *Builder) Projection(of_ Node, index int) Node {
	n := b.add(OpProjection, of_)
	b.projIdx[n] = index
	if b.proj[of_] == nil {
		b.proj[of_] = map[int]Node{}
	}
	b.proj[of_][index] = n
	return n
}

// SetLane / SetShuffle / SetElementWidthBits set the lane index /
// shuffle bytes / element width parameters
// used by SIMD selection rules.
func (b *Builder) SetLane(n Node, idx int)             { b.lane[n] = idx }
func (b *Builder) SetShuffle(n Node, bytes [16]byte)   { b.shuffle[n] = bytes }
func (b *Builder) SetElementWidthBits(n Node, w int)   { b.elemBits[n] = w }

// SetCover marks value as coverable by user: user is its sole consumer
// and may fold it. Tests set this explicitly since the builder does not
// compute real dominance/use-count analysis.
func (b *Builder) SetCover(user, value Node, coverable bool) {
	b.cover[[2]Node{user, value}] = coverable
}

// MarkDefined records that a node has already produced a virtual
// register, for IsDefined queries.
func (b *Builder) MarkDefined(n Node) { b.defined[n] = true }

// Graph interface implementation.

func (b *Builder) Opcode(n Node) OperatorKind { return b.kind[n] }
func (b *Builder) InputCount(n Node) int      { return len(b.inputs[n]) }
func (b *Builder) Input(n Node, i int) Node   { return b.inputs[n][i] }

func (b *Builder) Int32Value(n Node) (int32, bool) {
	v, ok := b.i32[n]
	return v, ok
}

func (b *Builder) Float32Bits(n Node) (uint32, bool) {
	v, ok := b.f32bits[n]
	return v, ok
}

func (b *Builder) Float64Bits(n Node) (uint64, bool) {
	v, ok := b.f64bits[n]
	return v, ok
}

func (b *Builder) External(n Node) (ExternalReference, bool) {
	v, ok := b.extref[n]
	return v, ok
}

func (b *Builder) LoadRep(n Node) (MachineRepresentation, bool) {
	i := b.loadRep[n]
	return i.rep, i.unaligned
}

func (b *Builder) StoreRep(n Node) (MachineRepresentation, bool, WriteBarrierKind) {
	i := b.storeRep[n]
	return i.rep, i.unaligned, i.barrier
}

func (b *Builder) AtomicOpWidth(n Node) AtomicWidth { return b.atomicW[n] }
func (b *Builder) LaneIndex(n Node) int             { return b.lane[n] }
func (b *Builder) ShuffleBytes(n Node) [16]byte     { return b.shuffle[n] }
func (b *Builder) ElementWidthBits(n Node) int      { return b.elemBits[n] }
func (b *Builder) ProjectionIndex(n Node) int        { return b.projIdx[n] }

func (b *Builder) FindProjection(n Node, index int) (Node, bool) {
	m, ok := b.proj[n]
	if !ok {
		return Invalid, false
	}
	p, ok := m[index]
	return p, ok
}

func (b *Builder) CanCover(user, value Node) bool {
	return b.cover[[2]Node{user, value}]
}

func (b *Builder) IsDefined(value Node) bool { return b.defined[value] }

func (b *Builder) TargetWordSize() int { return b.wordSize }
