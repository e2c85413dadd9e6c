package selector

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xyproto/rv32sel/internal/frame"
	"github.com/xyproto/rv32sel/internal/ir"
	"github.com/xyproto/rv32sel/internal/riscv"
)

func TestBranchFusesIntCompare(t *testing.T) {
	g := ir.NewBuilder(32)
	a := g.Param()
	b := g.Param()
	cmp := g.Binop(ir.OpInt32LessThan, a, b)
	branch := g.Unop(ir.OpBranch, cmp)
	g.SetCover(branch, cmp, true)
	// cmp is folded entirely into branch's fused Cmp+Branch instruction,
	// so — mirroring a real scheduler — it never gets its own visit slot.
	order := []ir.Node{a, b, branch}

	sel, err := Run(context.Background(), g, frame.NewBump(), order)
	require.NoError(t, err)
	require.Len(t, sel.Instructions(), 1)

	in := sel.Instructions()[0]
	require.Equal(t, riscv.Cmp, in.Opcode)
	require.NotNil(t, in.Continuation)
	require.Equal(t, riscv.ContBranch, in.Continuation.Kind)
	require.Equal(t, riscv.SignedLessThan, in.Continuation.Cond)
}

func TestBranchFallsBackToPlainCmpZeroWhenNotCovered(t *testing.T) {
	g := ir.NewBuilder(32)
	a := g.Param()
	b := g.Param()
	cmp := g.Binop(ir.OpInt32LessThan, a, b)
	branch := g.Unop(ir.OpBranch, cmp)
	// deliberately do not SetCover: cmp has another consumer in the real
	// graph this shape models, so it must be materialized on its own.
	order := []ir.Node{a, b, cmp, branch}

	sel, err := Run(context.Background(), g, frame.NewBump(), order)
	require.NoError(t, err)
	require.Len(t, sel.Instructions(), 2)
	require.Equal(t, riscv.Cmp, sel.Instructions()[0].Opcode)
	require.Equal(t, riscv.CmpZero, sel.Instructions()[1].Opcode)
}

func TestDoubleNegationCancelsBackToOriginalCondition(t *testing.T) {
	g := ir.NewBuilder(32)
	a := g.Param()
	b := g.Param()
	cmp := g.Binop(ir.OpInt32LessThan, a, b)
	zero1 := g.Int32(0)
	neg1 := g.Binop(ir.OpWord32Equal, cmp, zero1)
	zero2 := g.Int32(0)
	neg2 := g.Binop(ir.OpWord32Equal, neg1, zero2)
	branch := g.Unop(ir.OpBranch, neg2)
	g.SetCover(branch, neg2, true)
	g.SetCover(neg2, neg1, true)
	g.SetCover(neg1, cmp, true)
	// cmp, neg1, and neg2 all fold into branch's single fused instruction.
	order := []ir.Node{a, b, zero1, zero2, branch}

	sel, err := Run(context.Background(), g, frame.NewBump(), order)
	require.NoError(t, err)
	require.Len(t, sel.Instructions(), 1)

	in := sel.Instructions()[0]
	require.Equal(t, riscv.Cmp, in.Opcode)
	require.Equal(t, riscv.SignedLessThan, in.Continuation.Cond)
}

func TestSingleNegationInvertsFusedCondition(t *testing.T) {
	// if (!(a < b)) goto T else F must branch on a >= b, not a < b.
	g := ir.NewBuilder(32)
	a := g.Param()
	b := g.Param()
	cmp := g.Binop(ir.OpInt32LessThan, a, b)
	zero := g.Int32(0)
	neg := g.Binop(ir.OpWord32Equal, cmp, zero)
	branch := g.Unop(ir.OpBranch, neg)
	g.SetCover(branch, neg, true)
	g.SetCover(neg, cmp, true)
	order := []ir.Node{a, b, zero, branch}

	sel, err := Run(context.Background(), g, frame.NewBump(), order)
	require.NoError(t, err)
	require.Len(t, sel.Instructions(), 1)

	in := sel.Instructions()[0]
	require.Equal(t, riscv.Cmp, in.Opcode)
	require.Equal(t, riscv.SignedGreaterThanOrEqual, in.Continuation.Cond)
}

func TestWord32AndFusesToTst(t *testing.T) {
	g := ir.NewBuilder(32)
	a := g.Param()
	mask := g.Int32(0xff)
	and := g.Binop(ir.OpWord32And, a, mask)
	branch := g.Unop(ir.OpBranch, and)
	g.SetCover(branch, and, true)
	// and is folded into branch's Tst instruction.
	order := []ir.Node{a, mask, branch}

	sel, err := Run(context.Background(), g, frame.NewBump(), order)
	require.NoError(t, err)
	require.Len(t, sel.Instructions(), 1)
	require.Equal(t, riscv.Tst, sel.Instructions()[0].Opcode)
}

func TestOverflowProjectionFusesIntoBranchWhenSumUnused(t *testing.T) {
	g := ir.NewBuilder(32)
	a := g.Param()
	b := g.Param()
	addOvf := g.Op(ir.OpInt32AddWithOverflow, a, b)
	ovf := g.Projection(addOvf, 1)
	branch := g.Unop(ir.OpBranch, ovf)
	g.SetCover(branch, ovf, true)

	sel, err := New(g, frame.NewBump())
	require.NoError(t, err)
	sel.VisitWordCompareZero(branch, ovf, sel.kindToContinuation(branch, riscv.NotEqual))

	require.Len(t, sel.Instructions(), 1)
	in := sel.Instructions()[0]
	require.Equal(t, riscv.AddOvf, in.Opcode)
	require.Equal(t, riscv.ContBranch, in.Continuation.Kind)
	require.Equal(t, riscv.Overflow, in.Continuation.Cond)
}

func TestOverflowProjectionFusesIntoBranchWhenSumAlreadyDefined(t *testing.T) {
	g := ir.NewBuilder(32)
	a := g.Param()
	b := g.Param()
	addOvf := g.Op(ir.OpInt32AddWithOverflow, a, b)
	sum := g.Projection(addOvf, 0)
	ovf := g.Projection(addOvf, 1)
	branch := g.Unop(ir.OpBranch, ovf)
	g.SetCover(branch, ovf, true)
	// sum's own consumer was scheduled ahead of this branch, so it is
	// already defined by the time the branch is visited.
	g.MarkDefined(sum)

	sel, err := New(g, frame.NewBump())
	require.NoError(t, err)
	sel.VisitWordCompareZero(branch, ovf, sel.kindToContinuation(branch, riscv.NotEqual))

	require.Len(t, sel.Instructions(), 1)
	require.Equal(t, riscv.AddOvf, sel.Instructions()[0].Opcode)
}

func TestOverflowProjectionSkipsFusionWhenSumNotYetDefined(t *testing.T) {
	g := ir.NewBuilder(32)
	a := g.Param()
	b := g.Param()
	addOvf := g.Op(ir.OpInt32AddWithOverflow, a, b)
	// sum has a consumer scheduled after this branch, so it is not yet defined.
	g.Projection(addOvf, 0)
	ovf := g.Projection(addOvf, 1)
	branch := g.Unop(ir.OpBranch, ovf)
	g.SetCover(branch, ovf, true)

	sel, err := New(g, frame.NewBump())
	require.NoError(t, err)
	sel.VisitWordCompareZero(branch, ovf, sel.kindToContinuation(branch, riscv.NotEqual))

	require.Len(t, sel.Instructions(), 1)
	require.Equal(t, riscv.CmpZero, sel.Instructions()[0].Opcode)
}

func TestMaterializedCompareUsesSetContinuation(t *testing.T) {
	g := ir.NewBuilder(32)
	a := g.Param()
	b := g.Param()
	cmp := g.Binop(ir.OpInt32LessThan, a, b)
	order := []ir.Node{a, b, cmp}

	sel, err := Run(context.Background(), g, frame.NewBump(), order)
	require.NoError(t, err)
	require.Len(t, sel.Instructions(), 1)

	in := sel.Instructions()[0]
	require.Equal(t, riscv.ContSet, in.Continuation.Kind)
	require.Equal(t, int(cmp), in.Continuation.SetDest)
}
