package selector

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xyproto/rv32sel/internal/frame"
	"github.com/xyproto/rv32sel/internal/ir"
	"github.com/xyproto/rv32sel/internal/riscv"
)

func TestVisitLoadUsesBaseImmediateWhenIndexFitsImmediate(t *testing.T) {
	g := ir.NewBuilder(32)
	base := g.Param()
	index := g.Int32(16)
	load := g.Load(base, index, ir.RepWord32, false)

	sel, err := New(g, frame.NewBump())
	require.NoError(t, err)
	sel.VisitLoad(load)

	require.Len(t, sel.Instructions(), 1)
	in := sel.Instructions()[0]
	require.Equal(t, riscv.Lw, in.Opcode)
	require.Equal(t, riscv.AddrBaseImm, in.Mode)
	require.Equal(t, riscv.TagImmediate, in.Inputs[1].Tag)
}

func TestVisitLoadSynthesizesScratchAddWhenIndexDoesNotFitImmediate(t *testing.T) {
	g := ir.NewBuilder(32)
	base := g.Param()
	index := g.Param() // non-constant index forces a register sum
	load := g.Load(base, index, ir.RepWord32, false)

	sel, err := New(g, frame.NewBump())
	require.NoError(t, err)
	sel.VisitLoad(load)

	require.Len(t, sel.Instructions(), 2)
	require.Equal(t, riscv.Add, sel.Instructions()[0].Opcode)
	require.Equal(t, riscv.Lw, sel.Instructions()[1].Opcode)
}

func TestVisitLoadUsesRootRelativeAddressingForExternalReference(t *testing.T) {
	g := ir.NewBuilder(32)
	base := g.ExternalRef("builtin_table", 256)
	index := g.Int32(8)
	load := g.Load(base, index, ir.RepWord32, false)

	sel, err := New(g, frame.NewBump())
	require.NoError(t, err)
	sel.VisitLoad(load)

	require.Len(t, sel.Instructions(), 1)
	in := sel.Instructions()[0]
	require.Equal(t, riscv.AddrRootImm, in.Mode)
	require.Len(t, in.Inputs, 1)
	require.Equal(t, int64(264), sel.constantValue(in.Inputs[0].ConstIdx))
}

func TestVisitLoadUnalignedFloatUsesUnalignedOpcode(t *testing.T) {
	g := ir.NewBuilder(32)
	base := g.Param()
	index := g.Int32(0)
	load := g.Load(base, index, ir.RepFloat64, true)

	sel, err := New(g, frame.NewBump())
	require.NoError(t, err)
	sel.VisitLoad(load)

	require.Equal(t, riscv.ULoadDouble, sel.Instructions()[0].Opcode)
}

func TestVisitStorePlainEmitsValueOperand(t *testing.T) {
	g := ir.NewBuilder(32)
	base := g.Param()
	index := g.Int32(4)
	value := g.Param()
	store := g.Store(base, index, value, ir.RepWord32, false, ir.NoWriteBarrier)

	sel, err := New(g, frame.NewBump())
	require.NoError(t, err)
	sel.VisitStore(store)

	require.Len(t, sel.Instructions(), 1)
	in := sel.Instructions()[0]
	require.Equal(t, riscv.Sw, in.Opcode)
	require.Len(t, in.Inputs, 3)
}

func TestVisitStoreWithWriteBarrierEmitsArchStoreAndUsesUniqueRegisters(t *testing.T) {
	g := ir.NewBuilder(32)
	base := g.Param()
	index := g.Param()
	value := g.Param()
	store := g.Store(base, index, value, ir.RepTagged, false, ir.PointerWriteBarrier)

	sel, err := New(g, frame.NewBump())
	require.NoError(t, err)
	sel.VisitStore(store)

	require.Len(t, sel.Instructions(), 1)
	in := sel.Instructions()[0]
	require.Equal(t, riscv.ArchStoreWithWriteBarrier, in.Opcode)
	require.Equal(t, uint32(2), in.Misc)
	for _, op := range in.Inputs {
		require.Equal(t, riscv.UniqueRegister, op.Policy)
	}
	require.Len(t, in.Temps, 2)
	require.True(t, sel.isDefined(store))
}

func TestVisitStoreSkipsWriteBarrierWhenCapabilityDisabled(t *testing.T) {
	g := ir.NewBuilder(32)
	base := g.Param()
	index := g.Int32(0)
	value := g.Param()
	store := g.Store(base, index, value, ir.RepTagged, false, ir.PointerWriteBarrier)

	sel, err := New(g, frame.NewBump())
	require.NoError(t, err)
	sel.caps.writeBarriersEnabled = false
	sel.VisitStore(store)

	require.Len(t, sel.Instructions(), 1)
	require.Equal(t, riscv.Sw, sel.Instructions()[0].Opcode)
}
