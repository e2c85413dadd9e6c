package selector

import (
	"github.com/xyproto/rv32sel/internal/ir"
	"tlog.app/go/errors"
	"tlog.app/go/tlog"
)

// selectorFault is the only panic value Run recovers: a
// declared, non-retryable gap in this target's operator coverage, as
// opposed to a genuine bug elsewhere in the pass.
type selectorFault struct {
	err error
}

// unimplemented raises a fatal diagnostic for an operator kind with no
// selection rule on this target. Mirrors a compilerError-then-panic
// convention.
func unimplemented(op ir.OperatorKind, n ir.Node) {
	tlog.Printw("selector: unimplemented operator", "op", op, "node", n)
	panic(&selectorFault{err: errors.New("riscv32 selector: unimplemented operator %v at %v", op, n)})
}

// unreachableRepresentation raises a fatal diagnostic for a load/store
// whose machine representation this target rejects.
func unreachableRepresentation(rep ir.MachineRepresentation, n ir.Node) {
	tlog.Printw("selector: unreachable representation", "rep", rep, "node", n)
	panic(&selectorFault{err: errors.New("riscv32 selector: representation %v not supported at %v", rep, n)})
}

// invariant panics with a plain assertion failure — an internal-checks
// violation never expected to fire on well-formed input and never
// recovered as a declared gap.
func invariant(cond bool, format string, args ...any) {
	if !cond {
		panic(errors.New(format, args...))
	}
}
