package selector

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xyproto/rv32sel/internal/frame"
	"github.com/xyproto/rv32sel/internal/ir"
	"github.com/xyproto/rv32sel/internal/riscv"
)

type fakeCallInfo struct {
	args ir.FuncArgs
}

func (f fakeCallInfo) Args() ir.FuncArgs { return f.args }

func TestVisitCallCFunctionUsesFixedArgRegistersThenStack(t *testing.T) {
	g := ir.NewBuilder(32)
	callee := g.Param()
	a := g.Param()
	b := g.Param()
	c := g.Param()
	d := g.Param()
	e := g.Param() // fifth argument spills past the four fixed registers
	call := g.Op(ir.OpCallCFunction, callee, a, b, c, d, e)

	sel, err := New(g, frame.NewBump())
	require.NoError(t, err)
	sel.VisitCallCFunction(call, fakeCallInfo{args: ir.FuncArgs{ArgCount: 5}})

	require.Len(t, sel.Instructions(), 2)
	prepare := sel.Instructions()[0]
	require.Equal(t, riscv.PrepareCallCFunction, prepare.Opcode)
	require.Len(t, prepare.Inputs, 5) // callee + 4 fixed-register args
	require.Equal(t, riscv.RegA0, prepare.Inputs[1].Fixed)
	require.Equal(t, riscv.RegA1, prepare.Inputs[2].Fixed)
	require.Equal(t, riscv.RegA2, prepare.Inputs[3].Fixed)
	require.Equal(t, riscv.RegT0, prepare.Inputs[4].Fixed)

	spill := sel.Instructions()[1]
	require.Equal(t, riscv.StoreToStackSlot, spill.Opcode)
}

func TestVisitCallCFunctionDefinesOutputOnlyWhenResultsExist(t *testing.T) {
	g := ir.NewBuilder(32)
	callee := g.Param()
	call := g.Op(ir.OpCallCFunction, callee)

	sel, err := New(g, frame.NewBump())
	require.NoError(t, err)
	sel.VisitCallCFunction(call, fakeCallInfo{})

	require.Len(t, sel.Instructions(), 1)
	require.Empty(t, sel.Instructions()[0].Outputs)
}

func TestVisitCallPushesArgsAndExtractsResults(t *testing.T) {
	g := ir.NewBuilder(32)
	callee := g.Param()
	a := g.Param()
	b := g.Param()
	call := g.Op(ir.OpCall, callee, a, b)
	res0 := g.Projection(call, 0)
	res1 := g.Projection(call, 1)

	info := fakeCallInfo{args: ir.FuncArgs{
		ArgCount: 2,
		Results: []ir.ResultSlot{
			{Rep: ir.RepWord32, ReverseIdx: 1},
			{Rep: ir.RepFloat64, ReverseIdx: 0},
		},
	}}

	sel, err := New(g, frame.NewBump())
	require.NoError(t, err)
	sel.VisitCall(call, info)

	// StackClaim, 2x StoreToStackSlot, Call, 2x Peek.
	require.Len(t, sel.Instructions(), 6)
	require.Equal(t, riscv.StackClaim, sel.Instructions()[0].Opcode)
	require.Equal(t, riscv.StoreToStackSlot, sel.Instructions()[1].Opcode)
	require.Equal(t, riscv.StoreToStackSlot, sel.Instructions()[2].Opcode)
	require.Equal(t, riscv.Call, sel.Instructions()[3].Opcode)

	peek0 := sel.Instructions()[4]
	require.Equal(t, riscv.Peek, peek0.Opcode)
	require.Equal(t, uint32(0), peek0.Misc)
	require.Equal(t, res0, peek0.Outputs[0].Virtual)

	peek1 := sel.Instructions()[5]
	require.Equal(t, riscv.Peek, peek1.Opcode)
	require.Equal(t, uint32(1), peek1.Misc)
	require.Equal(t, res1, peek1.Outputs[0].Virtual)
}

func TestVisitTailCallNeverExtractsResults(t *testing.T) {
	g := ir.NewBuilder(32)
	callee := g.Param()
	a := g.Param()
	call := g.Op(ir.OpTailCall, callee, a)

	sel, err := New(g, frame.NewBump())
	require.NoError(t, err)
	sel.VisitTailCall(call, fakeCallInfo{args: ir.FuncArgs{ArgCount: 1}})

	require.Len(t, sel.Instructions(), 3)
	require.Equal(t, riscv.StackClaim, sel.Instructions()[0].Opcode)
	require.Equal(t, riscv.StoreToStackSlot, sel.Instructions()[1].Opcode)
	require.Equal(t, riscv.Call, sel.Instructions()[2].Opcode)
	require.Equal(t, uint32(1), sel.Instructions()[2].Misc)
	require.True(t, sel.isDefined(call))
}
