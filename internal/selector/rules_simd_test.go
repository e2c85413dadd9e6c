package selector

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xyproto/rv32sel/internal/frame"
	"github.com/xyproto/rv32sel/internal/ir"
	"github.com/xyproto/rv32sel/internal/riscv"
)

func TestVisitSimd128BinopLowersTableEntry(t *testing.T) {
	g := ir.NewBuilder(32)
	a := g.Param()
	b := g.Param()
	add := g.Binop(ir.OpF32x4Add, a, b)

	sel, err := New(g, frame.NewBump())
	require.NoError(t, err)
	sel.VisitSimd128Binop(add)

	require.Len(t, sel.Instructions(), 1)
	require.Equal(t, riscv.RiscvF32x4Add, sel.Instructions()[0].Opcode)
}

func TestVisitI32x4ShlTakesImmediateShiftCountModulo32(t *testing.T) {
	g := ir.NewBuilder(32)
	v := g.Param()
	shift := g.Int32(35) // masked down to 3
	shl := g.Binop(ir.OpI32x4Shl, v, shift)

	sel, err := New(g, frame.NewBump())
	require.NoError(t, err)
	sel.VisitI32x4Shl(shl)

	in := sel.Instructions()[0]
	require.Equal(t, riscv.RiscvI32x4Shl, in.Opcode)
	require.Equal(t, riscv.TagImmediate, in.Inputs[1].Tag)
	require.Equal(t, int64(3), sel.constantValue(in.Inputs[1].ConstIdx))
}

func TestVisitExtMulHighSlidesDownBeforeWidening(t *testing.T) {
	g := ir.NewBuilder(32)
	a := g.Param()
	b := g.Param()
	m := g.Binop(ir.OpI32x4ExtMulHighS, a, b)

	sel, err := New(g, frame.NewBump())
	require.NoError(t, err)
	sel.VisitExtMul(m)

	require.Len(t, sel.Instructions(), 3)
	require.Equal(t, riscv.Vslidedown, sel.Instructions()[0].Opcode)
	require.Equal(t, riscv.Vslidedown, sel.Instructions()[1].Opcode)
	require.Equal(t, riscv.Vwmul, sel.Instructions()[2].Opcode)
}

func TestVisitExtMulLowUnsignedUsesVwmulu(t *testing.T) {
	g := ir.NewBuilder(32)
	a := g.Param()
	b := g.Param()
	m := g.Binop(ir.OpI32x4ExtMulLowU, a, b)

	sel, err := New(g, frame.NewBump())
	require.NoError(t, err)
	sel.VisitExtMul(m)

	require.Len(t, sel.Instructions(), 1)
	require.Equal(t, riscv.Vwmulu, sel.Instructions()[0].Opcode)
}

func TestVisitI8x16ShufflePacksLaneTableIntoFourImmediates(t *testing.T) {
	g := ir.NewBuilder(32)
	a := g.Param()
	b := g.Param()
	shuf := g.Binop(ir.OpI8x16Shuffle, a, b)
	var bytes [16]byte
	for i := range bytes {
		bytes[i] = byte(i)
	}
	g.SetShuffle(shuf, bytes)

	sel, err := New(g, frame.NewBump())
	require.NoError(t, err)
	sel.VisitI8x16Shuffle(shuf)

	require.Len(t, sel.Instructions(), 1)
	in := sel.Instructions()[0]
	require.Equal(t, riscv.Vrgather, in.Opcode)
	require.Len(t, in.Temps, 4)
	require.Equal(t, int64(0x03020100), in.Temps[0].TempImm)
}

func TestVisitI8x16SwizzleUsesRegisterIndexNotImmediateTable(t *testing.T) {
	g := ir.NewBuilder(32)
	a := g.Param()
	idx := g.Param()
	sw := g.Binop(ir.OpI8x16Swizzle, a, idx)

	sel, err := New(g, frame.NewBump())
	require.NoError(t, err)
	sel.VisitI8x16Swizzle(sw)

	require.Len(t, sel.Instructions(), 1)
	in := sel.Instructions()[0]
	require.Equal(t, riscv.Vrgather, in.Opcode)
	require.Empty(t, in.Temps)
	require.Len(t, in.Inputs, 2)
}

func TestVisitSimd128ConstLowersZeroAndAllOnes(t *testing.T) {
	g := ir.NewBuilder(32)
	zero := g.Op(ir.OpS128Zero)

	sel, err := New(g, frame.NewBump())
	require.NoError(t, err)
	sel.VisitSimd128Const(zero)

	require.Len(t, sel.Instructions(), 1)
	require.Equal(t, riscv.S128Zero, sel.Instructions()[0].Opcode)
	require.Empty(t, sel.Instructions()[0].Inputs)
}

func TestVisitS128SelectTakesThreeRegisterInputs(t *testing.T) {
	g := ir.NewBuilder(32)
	mask := g.Param()
	onTrue := g.Param()
	onFalse := g.Param()
	sel128 := g.Op(ir.OpS128Select, mask, onTrue, onFalse)

	sel, err := New(g, frame.NewBump())
	require.NoError(t, err)
	sel.VisitS128Select(sel128)

	require.Len(t, sel.Instructions(), 1)
	in := sel.Instructions()[0]
	require.Equal(t, riscv.S128Select, in.Opcode)
	require.Len(t, in.Inputs, 3)
	require.Len(t, in.Outputs, 1)
}

func TestVisitPseudoMinMaxUsesUniqueRegistersForBothOperands(t *testing.T) {
	cases := []struct {
		kind ir.OperatorKind
		op   riscv.Opcode
	}{
		{ir.OpF32x4Pmin, riscv.RiscvF32x4Pmin},
		{ir.OpF32x4Pmax, riscv.RiscvF32x4Pmax},
		{ir.OpF64x2Pmin, riscv.RiscvF64x2Pmin},
		{ir.OpF64x2Pmax, riscv.RiscvF64x2Pmax},
	}
	for _, c := range cases {
		g := ir.NewBuilder(32)
		a := g.Param()
		b := g.Param()
		n := g.Binop(c.kind, a, b)

		sel, err := New(g, frame.NewBump())
		require.NoError(t, err)
		sel.VisitPseudoMinMax(n)

		require.Len(t, sel.Instructions(), 1)
		in := sel.Instructions()[0]
		require.Equal(t, c.op, in.Opcode)
		require.Len(t, in.Inputs, 2)
		require.Equal(t, riscv.UniqueRegister, in.Inputs[0].Policy)
		require.Equal(t, riscv.UniqueRegister, in.Inputs[1].Policy)
	}
}

func TestVisitI32x4DotI16x8SReservesVectorScratch(t *testing.T) {
	g := ir.NewBuilder(32)
	a := g.Param()
	b := g.Param()
	dot := g.Binop(ir.OpI32x4DotI16x8S, a, b)

	sel, err := New(g, frame.NewBump())
	require.NoError(t, err)
	sel.VisitI32x4DotI16x8S(dot)

	require.Len(t, sel.Instructions(), 1)
	in := sel.Instructions()[0]
	require.Equal(t, riscv.Vwmul32Dot, in.Opcode)
	require.Len(t, in.Inputs, 2)
	require.Equal(t, riscv.UniqueRegister, in.Inputs[0].Policy)
	require.Equal(t, riscv.UniqueRegister, in.Inputs[1].Policy)
	require.Len(t, in.Temps, 1)
}

func TestVisitExtAddPairwiseEncodesVariantInMisc(t *testing.T) {
	cases := []struct {
		kind ir.OperatorKind
		misc uint32
	}{
		{ir.OpI16x8ExtAddPairwiseI8x16S, 0},
		{ir.OpI16x8ExtAddPairwiseI8x16U, 1},
		{ir.OpI32x4ExtAddPairwiseI16x8S, 2},
		{ir.OpI32x4ExtAddPairwiseI16x8U, 3},
	}
	for _, c := range cases {
		g := ir.NewBuilder(32)
		a := g.Param()
		n := g.Unop(c.kind, a)

		sel, err := New(g, frame.NewBump())
		require.NoError(t, err)
		sel.VisitExtAddPairwise(n)

		require.Len(t, sel.Instructions(), 1)
		in := sel.Instructions()[0]
		require.Equal(t, riscv.ExtAddPairwise, in.Opcode)
		require.Equal(t, c.misc, in.Misc)
		require.Len(t, in.Inputs, 1)
		require.Equal(t, riscv.UniqueRegister, in.Inputs[0].Policy)
		require.Len(t, in.Temps, 2)
	}
}
