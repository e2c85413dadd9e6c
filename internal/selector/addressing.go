package selector

import (
	"math"

	"github.com/xyproto/rv32sel/internal/ir"
	"github.com/xyproto/rv32sel/internal/riscv"
)

// For every load/store, decide between root-register-relative addressing,
// base+immediate addressing, and (when the index is not a fitting
// constant) adding base and index into a scratch register that is then
// addressed with a zero immediate.

// addressResult is what the synthesizer decided: which addressing mode
// to use and the operands that go with it.
type addressResult struct {
	mode    riscv.AddressingMode
	hasBase bool // false only for AddrRootImm, where the root register is implicit
	baseOp  riscv.Operand
	indexOp riscv.Operand
	prelude []riscv.Instruction
}

// synthesizeAddress implements the three-step addressing decision above.
func (s *Selector) synthesizeAddress(base, index ir.Node, op riscv.Opcode) addressResult {
	if ref, ok := s.g.External(base); ok {
		if idx, ok := ir.IsIntConstant(s.g, index); ok {
			delta := ref.RootOffset + int64(idx)
			if delta >= math.MinInt32 && delta <= math.MaxInt32 {
				return addressResult{
					mode:    riscv.AddrRootImm,
					hasBase: false,
					indexOp: s.UseImmediateValue(delta),
				}
			}
		}
	}

	if v, ok := ir.IsIntConstant(s.g, index); ok && riscv.FitsImmediate(op, int64(v)) {
		return addressResult{
			mode:    riscv.AddrBaseImm,
			hasBase: true,
			baseOp:  s.UseRegister(base),
			indexOp: s.UseImmediateNode(index),
		}
	}

	scratch := s.TempRegister()
	prelude := riscv.Instruction{
		Opcode:  riscv.Add,
		Outputs: []riscv.Operand{scratch},
		Inputs:  []riscv.Operand{s.UseRegister(base), s.UseRegister(index)},
	}
	return addressResult{
		mode:    riscv.AddrBaseImm,
		hasBase: true,
		baseOp:  scratch,
		indexOp: s.UseImmediateValue(0),
		prelude: []riscv.Instruction{prelude},
	}
}

// loadOpcode / storeOpcode implement the representation -> opcode table
// for load/store lowering. ok is false for representations this target
// rejects.
func loadOpcode(rep ir.MachineRepresentation, unaligned, signed bool) (riscv.Opcode, bool) {
	switch rep {
	case ir.RepFloat32:
		if unaligned {
			return riscv.ULoadFloat, true
		}
		return riscv.LoadFloat, true
	case ir.RepFloat64:
		if unaligned {
			return riscv.ULoadDouble, true
		}
		return riscv.LoadDouble, true
	case ir.RepWord8:
		if signed {
			return riscv.Lb, true
		}
		return riscv.Lbu, true
	case ir.RepWord16:
		if unaligned {
			if signed {
				return riscv.Ulh, true
			}
			return riscv.Ulhu, true
		}
		if signed {
			return riscv.Lh, true
		}
		return riscv.Lhu, true
	case ir.RepWord32, ir.RepTagged, ir.RepTaggedPointer, ir.RepTaggedSigned:
		if unaligned {
			return riscv.Ulw, true
		}
		return riscv.Lw, true
	case ir.RepSimd128:
		return riscv.RvvLd, true
	default:
		return riscv.OpInvalid, false
	}
}

func storeOpcode(rep ir.MachineRepresentation, unaligned bool) (riscv.Opcode, bool) {
	switch rep {
	case ir.RepFloat32:
		if unaligned {
			return riscv.UStoreFloat, true
		}
		return riscv.StoreFloat, true
	case ir.RepFloat64:
		if unaligned {
			return riscv.UStoreDouble, true
		}
		return riscv.StoreDouble, true
	case ir.RepWord8:
		return riscv.Sb, true
	case ir.RepWord16:
		if unaligned {
			return riscv.Ush, true
		}
		return riscv.Sh, true
	case ir.RepWord32, ir.RepTagged, ir.RepTaggedPointer, ir.RepTaggedSigned:
		if unaligned {
			return riscv.Usw, true
		}
		return riscv.Sw, true
	case ir.RepSimd128:
		return riscv.RvvSt, true
	default:
		return riscv.OpInvalid, false
	}
}

// VisitLoad lowers a Load node.
func (s *Selector) VisitLoad(n ir.Node) {
	rep, unaligned := s.g.LoadRep(n)
	// Signedness is not carried by MachineRepresentation in this model,
	// so VisitLoad always selects the signed byte/halfword form (Lb, Lh,
	// Ulh). The unsigned forms exist in loadOpcode's table but no load
	// node reaches them through this visitor.
	op, ok := loadOpcode(rep, unaligned, true)
	if !ok {
		unreachableRepresentation(rep, n)
	}

	base := s.g.Input(n, 0)
	index := s.g.Input(n, 1)
	addr := s.synthesizeAddress(base, index, op)
	for _, pre := range addr.prelude {
		s.emit(pre)
	}

	in := riscv.Instruction{
		Opcode:  op,
		Mode:    addr.mode,
		Outputs: []riscv.Operand{s.DefineAsRegister(n)},
	}
	if addr.hasBase {
		in.Inputs = []riscv.Operand{addr.baseOp, addr.indexOp}
	} else {
		in.Inputs = []riscv.Operand{addr.indexOp}
	}
	s.emit(in)
}

// VisitStore lowers a Store node, including write-barrier emission.
func (s *Selector) VisitStore(n ir.Node) {
	rep, unaligned, barrier := s.g.StoreRep(n)

	base := s.g.Input(n, 0)
	index := s.g.Input(n, 1)
	value := s.g.Input(n, 2)

	if barrier != ir.NoWriteBarrier && s.caps.writeBarriersEnabled {
		s.emitWriteBarrierStore(n, base, index, value, barrier)
		return
	}

	op, ok := storeOpcode(rep, unaligned)
	if !ok {
		unreachableRepresentation(rep, n)
	}

	addr := s.synthesizeAddress(base, index, op)
	for _, pre := range addr.prelude {
		s.emit(pre)
	}

	in := riscv.Instruction{
		Opcode: op,
		Mode:   addr.mode,
	}
	valueOp := s.UseOperand(value, op)
	if addr.hasBase {
		in.Inputs = []riscv.Operand{addr.baseOp, addr.indexOp, valueOp}
	} else {
		in.Inputs = []riscv.Operand{addr.indexOp, valueOp}
	}
	s.emit(in)
}

// recordWriteMode translates a WriteBarrierKind into the opcode-private
// misc field ArchStoreWithWriteBarrier packs.
func recordWriteMode(k ir.WriteBarrierKind) uint32 {
	switch k {
	case ir.MapWriteBarrier:
		return 1
	case ir.PointerWriteBarrier:
		return 2
	case ir.FullWriteBarrier:
		return 3
	default:
		return 0
	}
}

// emitWriteBarrierStore emits the single ArchStoreWithWriteBarrier
// instruction a garbage-collected store requires: base, index, and value
// are all UniqueRegister, an immediate value is never accepted, and two
// scratch temps back the runtime call the record
// write performs.
func (s *Selector) emitWriteBarrierStore(n, base, index, value ir.Node, barrier ir.WriteBarrierKind) {
	in := riscv.Instruction{
		Opcode: riscv.ArchStoreWithWriteBarrier,
		Misc:   recordWriteMode(barrier),
		Inputs: []riscv.Operand{
			s.UseUniqueRegister(base),
			s.UseUniqueRegister(index),
			s.UseUniqueRegister(value),
		},
		Temps: []riscv.Operand{s.TempRegister(), s.TempRegister()},
	}
	s.markDefined(n)
	s.emit(in)
}
