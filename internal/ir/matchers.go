package ir

// BinopView is a thin, allocation-free wrapper around a two-input node
// that exposes the helpers selection rules for arithmetic and bitwise
// operators need without repeating Graph.Input(n, 0)/Graph.Input(n, 1)
// at every call site.
type BinopView struct {
	G    Graph
	Node Node
}

func Binop(g Graph, n Node) BinopView {
	return BinopView{G: g, Node: n}
}

func (b BinopView) Left() Node  { return b.G.Input(b.Node, 0) }
func (b BinopView) Right() Node { return b.G.Input(b.Node, 1) }

// RightConstant returns the Int32 value of the right input and whether it
// is in fact an Int32Constant.
func (b BinopView) RightConstant() (int32, bool) {
	right := b.Right()
	if b.G.Opcode(right) != OpInt32Constant {
		return 0, false
	}
	return b.G.Int32Value(right)
}

func (b BinopView) LeftConstant() (int32, bool) {
	left := b.Left()
	if b.G.Opcode(left) != OpInt32Constant {
		return 0, false
	}
	return b.G.Int32Value(left)
}

// IsIntConstant reports whether n is an Int32Constant node, regardless of
// value, and returns that value.
func IsIntConstant(g Graph, n Node) (int32, bool) {
	if g.Opcode(n) != OpInt32Constant {
		return 0, false
	}
	return g.Int32Value(n)
}

// IsZero reports whether n is the integer constant 0 or the all-zero-bits
// float constant of either width — the shape UseRegisterOrImmediateZero
// looks for.
func IsZero(g Graph, n Node) bool {
	switch g.Opcode(n) {
	case OpInt32Constant:
		v, _ := g.Int32Value(n)
		return v == 0
	case OpFloat32Constant:
		v, _ := g.Float32Bits(n)
		return v == 0
	case OpFloat64Constant:
		v, _ := g.Float64Bits(n)
		return v == 0
	default:
		return false
	}
}

// CompareView wraps a two-input comparison node.
type CompareView struct {
	BinopView
}

func Compare(g Graph, n Node) CompareView {
	return CompareView{BinopView{G: g, Node: n}}
}

// IsFloatCompare reports whether kind names one of the float32/float64
// ordered comparisons.
func IsFloatCompare(k OperatorKind) bool {
	switch k {
	case OpFloat32Equal, OpFloat32LessThan, OpFloat32LessThanOrEqual,
		OpFloat64Equal, OpFloat64LessThan, OpFloat64LessThanOrEqual:
		return true
	default:
		return false
	}
}

// IsIntCompare reports whether kind names one of the signed/unsigned
// 32-bit integer comparisons the fuser recognizes directly.
func IsIntCompare(k OperatorKind) bool {
	switch k {
	case OpWord32Equal, OpInt32LessThan, OpInt32LessThanOrEqual,
		OpUint32LessThan, OpUint32LessThanOrEqual:
		return true
	default:
		return false
	}
}
