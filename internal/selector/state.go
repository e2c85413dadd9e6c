// Package selector implements the RISC-V 32-bit instruction-selection
// pass: it walks a mid-level dataflow graph in scheduling order and
// appends target instructions, still in virtual-register form, to an
// append-only sequence.
package selector

import (
	"context"

	"github.com/xyproto/env/v2"
	"github.com/xyproto/rv32sel/internal/frame"
	"github.com/xyproto/rv32sel/internal/ir"
	"github.com/xyproto/rv32sel/internal/riscv"
	"tlog.app/go/errors"
	"tlog.app/go/tlog"
)

// Capabilities is what this target advertises to the surrounding
// pipeline.
type Capabilities struct {
	Word32ShiftIsSafe      bool
	Int32DivIsSafe         bool
	Uint32DivIsSafe        bool
	Float32RoundDown       bool
	Float32RoundUp         bool
	Float32RoundTruncate   bool
	Float32RoundTiesEven   bool
	FullUnalignedAccess    bool

	writeBarriersEnabled bool
	switchJumpTableEnabled bool
}

// Selector owns all per-pass mutable state: the graph is
// read-only, the instruction sequence is append-only, and nothing here
// is shared across concurrent Selector instances.
type Selector struct {
	g     ir.Graph
	frame frame.Allocator
	caps  Capabilities

	seq       []riscv.Instruction
	defined   map[ir.Node]bool
	constPool []int64

	nextVirtual int32
	labelSeq    int
}

// New constructs a Selector for g. It rejects any graph whose
// TargetWordSize is not 32; 64-bit variants are rejected here, at
// construction time.
func New(g ir.Graph, fr frame.Allocator) (*Selector, error) {
	if ws := g.TargetWordSize(); ws != 32 {
		return nil, errors.New("riscv32 selector: unsupported target word size %d (32-bit RISC-V only)", ws)
	}

	s := &Selector{
		g:       g,
		frame:   fr,
		defined: map[ir.Node]bool{},
	}
	s.caps = s.loadCapabilities()

	return s, nil
}

// loadCapabilities reads the environment/build knobs this target exposes
// once, at construction time, via github.com/xyproto/env/v2.
func (s *Selector) loadCapabilities() Capabilities {
	disableWriteBarriers := env.Bool("RISCV32SEL_DISABLE_WRITE_BARRIERS")
	enableSwitchJumpTable := !env.Has("RISCV32SEL_ENABLE_SWITCH_JUMP_TABLE") || env.Bool("RISCV32SEL_ENABLE_SWITCH_JUMP_TABLE")
	noUnaligned := env.Bool("RISCV32SEL_NO_UNALIGNED")

	return Capabilities{
		Word32ShiftIsSafe:      true,
		Int32DivIsSafe:         true,
		Uint32DivIsSafe:        true,
		Float32RoundDown:       false,
		Float32RoundUp:         false,
		Float32RoundTruncate:   false,
		Float32RoundTiesEven:   false,
		FullUnalignedAccess:    !noUnaligned,
		writeBarriersEnabled:   !disableWriteBarriers,
		switchJumpTableEnabled: enableSwitchJumpTable,
	}
}

// Capabilities returns the capability set this run advertises to the
// surrounding pipeline.
func (s *Selector) Capabilities() Capabilities { return s.caps }

// Instructions returns the emitted sequence so far.
func (s *Selector) Instructions() []riscv.Instruction { return s.seq }

func (s *Selector) emit(in riscv.Instruction) {
	s.seq = append(s.seq, in)
}

func (s *Selector) markDefined(n ir.Node) {
	s.defined[n] = true
}

func (s *Selector) isDefined(n ir.Node) bool {
	if s.defined[n] {
		return true
	}
	return s.g.IsDefined(n)
}

// addConstant appends v to the constant pool and returns its index, the
// value an Operand{Tag: TagImmediate} operand names.
func (s *Selector) addConstant(v int64) int {
	s.constPool = append(s.constPool, v)
	return len(s.constPool) - 1
}

func (s *Selector) constantValue(idx int) int64 {
	return s.constPool[idx]
}

// Run drives the pass over nodes in the order the caller hands them:
// scheduling itself is upstream of this pass. Any fatal diagnostic
// raised by a selection rule is recovered here and converted into a
// returned error; any other panic is a real bug and propagates.
func Run(ctx context.Context, g ir.Graph, fr frame.Allocator, order []ir.Node) (sel *Selector, err error) {
	tr, ctx := tlog.SpawnFromContextAndWrap(ctx, "selector: run", "nodes", len(order))
	defer tr.Finish("err", &err)

	sel, err = New(g, fr)
	if err != nil {
		return nil, errors.Wrap(err, "construct selector")
	}

	defer func() {
		if r := recover(); r != nil {
			if f, ok := r.(*selectorFault); ok {
				err = errors.Wrap(f.err, "select")
				return
			}
			panic(r)
		}
	}()

	for _, n := range order {
		if tr.If("dump_select") {
			tr.Printw("select", "node", n, "op", g.Opcode(n))
		}
		sel.visit(ctx, n)
	}

	return sel, nil
}
