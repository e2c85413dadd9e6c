package selector

import "github.com/xyproto/rv32sel/internal/ir"

// VisitUnsupported is dispatch.go's handler for every operator kind
// named as architecturally unsupported on this target: it exists as its
// own function (rather than folding these into the switch's default
// arm) so the diagnostic path is exercised by an explicit dispatch
// entry per operator, matching how every other selectable operator
// gets its own case.
func (s *Selector) VisitUnsupported(n ir.Node) {
	unimplemented(s.g.Opcode(n), n)
}
