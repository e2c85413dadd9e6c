package selector

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xyproto/rv32sel/internal/frame"
	"github.com/xyproto/rv32sel/internal/ir"
	"github.com/xyproto/rv32sel/internal/riscv"
)

func consecutiveCases(start int32, n int) []SwitchCase {
	cases := make([]SwitchCase, n)
	for i := 0; i < n; i++ {
		cases[i] = SwitchCase{Value: start + int32(i), Target: i}
	}
	return cases
}

func TestShouldUseJumpTableAppliesCostFormula(t *testing.T) {
	// 6 consecutive cases: table cost 19+2*6=31, lookup cost 2+5*6=32.
	// 31 <= 32, so the table wins.
	dense := consecutiveCases(0, 6)
	require.True(t, shouldUseJumpTable(dense, true))
	require.False(t, shouldUseJumpTable(dense, false))

	// 5 consecutive cases: table cost 19+2*5=29, lookup cost 2+5*5=27.
	// 29 > 27, so the table loses even though the cases are fully dense.
	tooFew := consecutiveCases(0, 5)
	require.False(t, shouldUseJumpTable(tooFew, true))

	// Sparse cases never come close to winning regardless of count.
	sparse := []SwitchCase{{0, 1}, {100, 2}, {200, 3}, {300, 4}}
	require.False(t, shouldUseJumpTable(sparse, true))
}

func TestShouldUseJumpTableRejectsMinValueAtInt32Min(t *testing.T) {
	cases := consecutiveCases(math.MinInt32, 6)
	require.False(t, shouldUseJumpTable(cases, true))
}

func TestShouldUseJumpTableRejectsRangeAboveLimit(t *testing.T) {
	// Consecutive cases with a value range past the table size limit lose
	// even though the cost formula alone would otherwise favor a table.
	cases := consecutiveCases(0, maxTableSwitchValueRange+1)
	require.False(t, shouldUseJumpTable(cases, true))
}

func TestVisitSwitchEmitsJumpTableWhenDense(t *testing.T) {
	g := ir.NewBuilder(32)
	index := g.Param()
	sw := g.Unop(ir.OpSwitch, index)

	sel, err := New(g, frame.NewBump())
	require.NoError(t, err)

	cases := consecutiveCases(0, 6)
	sel.VisitSwitch(sw, cases, 99)

	require.Len(t, sel.Instructions(), 2)
	require.Equal(t, riscv.Add, sel.Instructions()[0].Opcode)
	require.Equal(t, riscv.SwitchJumpTable, sel.Instructions()[1].Opcode)
	require.Equal(t, uint32(99), sel.Instructions()[1].Misc)
}

func TestVisitSwitchSubtractsNonZeroMinimum(t *testing.T) {
	g := ir.NewBuilder(32)
	index := g.Param()
	sw := g.Unop(ir.OpSwitch, index)

	sel, err := New(g, frame.NewBump())
	require.NoError(t, err)

	cases := consecutiveCases(5, 6)
	sel.VisitSwitch(sw, cases, 0)

	require.Len(t, sel.Instructions(), 2)
	require.Equal(t, riscv.Sub, sel.Instructions()[0].Opcode)
	require.Equal(t, riscv.TagImmediate, sel.Instructions()[0].Inputs[1].Tag)
	require.Equal(t, int64(5), sel.constantValue(sel.Instructions()[0].Inputs[1].ConstIdx))
}

func TestVisitSwitchFallsBackToBinarySearchWhenSparse(t *testing.T) {
	g := ir.NewBuilder(32)
	index := g.Param()
	sw := g.Unop(ir.OpSwitch, index)

	sel, err := New(g, frame.NewBump())
	require.NoError(t, err)

	cases := []SwitchCase{{0, 10}, {50, 11}, {100, 12}, {150, 13}}
	sel.VisitSwitch(sw, cases, 0)

	require.Len(t, sel.Instructions(), 1)
	require.Equal(t, riscv.SwitchBinarySearch, sel.Instructions()[0].Opcode)
}
