// Command rv32seldemo builds a small mid-IR function by hand, runs the
// RISC-V 32-bit instruction selector over it, and prints the emitted
// virtual-register instruction stream. It exists as a smoke test and as
// living documentation of the package's external interface, the same
// role a small cli.go driver plays for a compiler backend.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/xyproto/rv32sel/internal/frame"
	"github.com/xyproto/rv32sel/internal/ir"
	"github.com/xyproto/rv32sel/internal/selector"
	"tlog.app/go/tlog"
)

// buildClampFunction constructs a graph for:
//
//	function(a, b):
//	  sum = a + b
//	  if sum < 0: return 0
//	  return sum
//
// exercising Int32Add, the compare/branch fuser, and a plain store of the
// sum, in one small function.
func buildClampFunction() (*ir.Builder, []ir.Node, ir.Node) {
	b := ir.NewBuilder(32)

	a := b.Param()
	base := b.Param()
	bb := b.Param()

	sum := b.Binop(ir.OpInt32Add, a, bb)
	zero := b.Int32(0)
	cmp := b.Binop(ir.OpInt32LessThan, sum, zero)
	branch := b.Unop(ir.OpBranch, cmp)
	b.SetCover(branch, cmp, true)

	store := b.Store(base, zero, sum, ir.RepWord32, false, ir.NoWriteBarrier)

	order := []ir.Node{a, base, bb, sum, zero, cmp, branch, store}
	return b, order, sum
}

func main() {
	ctx := context.Background()
	ctx = tlog.ContextWithSpan(ctx, tlog.Root())

	g, order, _ := buildClampFunction()
	fr := frame.NewBump()

	sel, err := selector.Run(ctx, g, fr, order)
	if err != nil {
		fmt.Fprintln(os.Stderr, "selection failed:", err)
		os.Exit(1)
	}

	caps := sel.Capabilities()
	fmt.Printf("capabilities: write-barriers=%v jump-table=%v unaligned=%v\n",
		caps.SupportsWriteBarriers(), caps.SupportsSwitchJumpTable(), caps.FullUnalignedAccess)

	for i, in := range sel.Instructions() {
		fmt.Printf("%3d: %s\n", i, in.String())
	}
}
