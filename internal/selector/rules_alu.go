package selector

import (
	"math/bits"

	"github.com/xyproto/rv32sel/internal/ir"
	"github.com/xyproto/rv32sel/internal/riscv"
)

// VisitBinop is the shared routine for lowering
// commutative and non-commutative integer ALU nodes.
func (s *Selector) VisitBinop(n ir.Node, op riscv.Opcode, hasCommutativeReverse bool, reverseOp riscv.Opcode, cont *riscv.Continuation) {
	b := ir.Binop(s.g, n)
	left, right := b.Left(), b.Right()

	var in riscv.Instruction
	in.Continuation = cont

	if v, ok := b.RightConstant(); ok && riscv.FitsImmediate(op, int64(v)) {
		in.Opcode = op
		in.Inputs = []riscv.Operand{s.UseRegisterOrImmediateZero(left), s.UseImmediateNode(right)}
	} else if hasCommutativeReverse {
		if v, ok := b.LeftConstant(); ok && riscv.FitsImmediate(op, int64(v)) {
			in.Opcode = reverseOp
			in.Inputs = []riscv.Operand{s.UseRegisterOrImmediateZero(right), s.UseImmediateNode(left)}
		}
	}
	if in.Opcode == riscv.OpInvalid {
		in.Opcode = op
		in.Inputs = []riscv.Operand{s.UseRegister(left), s.UseRegister(right)}
	}

	if cont.IsDeopt() {
		in.Outputs = []riscv.Operand{s.DefineSameAsFirst(n)}
	} else {
		in.Outputs = []riscv.Operand{s.DefineAsRegister(n)}
	}
	s.emit(in)
}

// contiguousMaskWidth reports whether mask is a contiguous bit-run rooted
// at bit 0, and if so its width.
func contiguousMaskWidth(mask int32) (width int, ok bool) {
	u := uint32(mask)
	if u == 0 {
		return 0, false
	}
	w := bits.TrailingZeros32(^u)
	if w == 32 {
		return 32, true
	}
	// every bit above w must be zero for this to be a rooted-at-0 run
	if u>>w != 0 {
		return 0, false
	}
	return w, true
}

// VisitWord32Shl lowers Word32Shl, including the mask-fold peephole of
// Shl(And(x, mask), k) folds away the mask when the shift
// would push every masked-in bit out of the low 32 bits anyway.
func (s *Selector) VisitWord32Shl(n ir.Node) {
	b := ir.Binop(s.g, n)
	left, right := b.Left(), b.Right()

	if k, ok := ir.IsIntConstant(s.g, right); ok && k >= 1 && k <= 31 && s.g.Opcode(left) == ir.OpWord32And && s.g.CanCover(n, left) {
		inner := ir.Binop(s.g, left)
		if mask, ok := inner.RightConstant(); ok {
			if w, ok := contiguousMaskWidth(mask); ok && int(k)+w >= 32 {
				in := riscv.Instruction{
					Opcode:  riscv.Shl32,
					Inputs:  []riscv.Operand{s.UseRegister(inner.Left()), s.UseImmediateNode(right)},
					Outputs: []riscv.Operand{s.DefineAsRegister(n)},
				}
				s.emit(in)
				return
			}
		}
	}

	s.VisitBinop(n, riscv.Shl32, false, riscv.OpInvalid, riscv.None())
}

// VisitWord32Sar lowers Word32Sar, including the sign-extension peephole
// Sar(Shl(x, k), k) becomes a sign-extend for k in
// {16, 24}, or a canonicalizing zero-shift for k = 32.
func (s *Selector) VisitWord32Sar(n ir.Node) {
	b := ir.Binop(s.g, n)
	left, right := b.Left(), b.Right()

	if k, ok := ir.IsIntConstant(s.g, right); ok && s.g.Opcode(left) == ir.OpWord32Shl && s.g.CanCover(n, left) {
		inner := ir.Binop(s.g, left)
		if k2, ok := inner.RightConstant(); ok && k2 == k {
			x := inner.Left()
			switch k {
			case 16:
				s.emit(riscv.Instruction{
					Opcode:  riscv.SignExtendShort,
					Inputs:  []riscv.Operand{s.UseRegister(x)},
					Outputs: []riscv.Operand{s.DefineAsRegister(n)},
				})
				return
			case 24:
				s.emit(riscv.Instruction{
					Opcode:  riscv.SignExtendByte,
					Inputs:  []riscv.Operand{s.UseRegister(x)},
					Outputs: []riscv.Operand{s.DefineAsRegister(n)},
				})
				return
			case 32:
				s.emit(riscv.Instruction{
					Opcode:  riscv.Shl32,
					Inputs:  []riscv.Operand{s.UseRegister(x), s.UseImmediateValue(0)},
					Outputs: []riscv.Operand{s.DefineAsRegister(n)},
				})
				return
			}
		}
	}

	s.VisitBinop(n, riscv.Sar32, false, riscv.OpInvalid, riscv.None())
}

// VisitWord32Xor lowers Word32Xor, including the Nor peepholes:
// Xor(x, -1) -> Nor(x, 0); Xor(Or(a, b), -1) with b non-constant
// -> Nor(a, b).
func (s *Selector) VisitWord32Xor(n ir.Node) {
	b := ir.Binop(s.g, n)
	left := b.Left()

	if v, ok := b.RightConstant(); ok && v == -1 {
		if s.g.Opcode(left) == ir.OpWord32Or && s.g.CanCover(n, left) {
			inner := ir.Binop(s.g, left)
			if _, isConst := ir.IsIntConstant(s.g, inner.Right()); !isConst {
				s.emit(riscv.Instruction{
					Opcode:  riscv.Nor,
					Inputs:  []riscv.Operand{s.UseRegister(inner.Left()), s.UseRegister(inner.Right())},
					Outputs: []riscv.Operand{s.DefineAsRegister(n)},
				})
				return
			}
		}
		s.emit(riscv.Instruction{
			Opcode:  riscv.Nor,
			Inputs:  []riscv.Operand{s.UseRegister(left), s.UseImmediateValue(0)},
			Outputs: []riscv.Operand{s.DefineAsRegister(n)},
		})
		return
	}

	s.VisitBinop(n, riscv.Xor, true, riscv.Xor, riscv.None())
}

func (s *Selector) VisitWord32And(n ir.Node) {
	s.VisitBinop(n, riscv.And, true, riscv.And, riscv.None())
}

func (s *Selector) VisitWord32Or(n ir.Node) {
	s.VisitBinop(n, riscv.Or, true, riscv.Or, riscv.None())
}

func (s *Selector) VisitWord32Shr(n ir.Node) {
	s.VisitBinop(n, riscv.Shr32, false, riscv.OpInvalid, riscv.None())
}

func (s *Selector) VisitInt32Add(n ir.Node) {
	s.VisitBinop(n, riscv.Add, true, riscv.Add, riscv.None())
}

func (s *Selector) VisitInt32Sub(n ir.Node) {
	s.VisitBinop(n, riscv.Sub, false, riscv.OpInvalid, riscv.None())
}

// VisitInt32Mul lowers Int32Mul, including the strength-reduction
// multiplying by a power of two becomes a
// shift; multiplying by (power-of-two - 1) becomes a shift into a temp
// followed by a subtract.
func (s *Selector) VisitInt32Mul(n ir.Node) {
	b := ir.Binop(s.g, n)
	if c, ok := b.RightConstant(); ok && c > 0 {
		x := b.Left()
		if isPowerOfTwo(c) {
			s.emit(riscv.Instruction{
				Opcode:  riscv.Shl32,
				Inputs:  []riscv.Operand{s.UseRegister(x), s.UseImmediateValue(int64(log2(uint32(c))))},
				Outputs: []riscv.Operand{s.DefineAsRegister(n)},
			})
			return
		}
		if isPowerOfTwo(c + 1) {
			tmp := s.TempRegister()
			s.emit(riscv.Instruction{
				Opcode:  riscv.Shl32,
				Inputs:  []riscv.Operand{s.UseRegister(x), s.UseImmediateValue(int64(log2(uint32(c + 1))))},
				Outputs: []riscv.Operand{tmp},
			})
			s.emit(riscv.Instruction{
				Opcode:  riscv.Sub,
				Inputs:  []riscv.Operand{tmp, s.UseRegister(x)},
				Outputs: []riscv.Operand{s.DefineAsRegister(n)},
			})
			return
		}
	}

	s.VisitBinop(n, riscv.Mul, true, riscv.Mul, riscv.None())
}

func isPowerOfTwo(v int32) bool {
	return v > 0 && v&(v-1) == 0
}

func log2(v uint32) int {
	return bits.TrailingZeros32(v)
}

// overflowOp maps an *-with-overflow node kind to its RISC-V opcode.
func overflowOp(k ir.OperatorKind) riscv.Opcode {
	switch k {
	case ir.OpInt32AddWithOverflow:
		return riscv.AddOvf
	case ir.OpInt32SubWithOverflow:
		return riscv.SubOvf
	case ir.OpInt32MulWithOverflow:
		return riscv.MulOvf32
	default:
		return riscv.OpInvalid
	}
}

// VisitInt32BinopWithOverflow lowers Int32{Add,Sub,Mul}WithOverflow: the
// overflow projection, if used, drives the flags continuation; if only
// the value projection is used, no flags are
// produced.
func (s *Selector) VisitInt32BinopWithOverflow(n ir.Node) {
	op := overflowOp(s.g.Opcode(n))
	var cont *riscv.Continuation
	if ovf, ok := s.g.FindProjection(n, 1); ok {
		cont = riscv.Set(riscv.Overflow, int(ovf))
	} else {
		cont = riscv.None()
	}
	s.VisitBinop(n, op, op == riscv.AddOvf, op, cont)
}

// VisitInt32Div / Mod: never fold constants — the RISC-V target this
// pass targets has no immediate-division form.
func (s *Selector) visitDivMod(n ir.Node, op riscv.Opcode, aliasesDividend bool) {
	b := ir.Binop(s.g, n)
	in := riscv.Instruction{
		Opcode: op,
		Inputs: []riscv.Operand{s.UseRegister(b.Left()), s.UseRegister(b.Right())},
	}
	if aliasesDividend {
		in.Outputs = []riscv.Operand{s.DefineSameAsFirst(n)}
	} else {
		in.Outputs = []riscv.Operand{s.DefineAsRegister(n)}
	}
	s.emit(in)
}

func (s *Selector) VisitInt32Div(n ir.Node)  { s.visitDivMod(n, riscv.Div32, true) }
func (s *Selector) VisitInt32DivU(n ir.Node) { s.visitDivMod(n, riscv.DivU32, true) }
func (s *Selector) VisitInt32Mod(n ir.Node)  { s.visitDivMod(n, riscv.Mod32, true) }
func (s *Selector) VisitInt32ModU(n ir.Node) { s.visitDivMod(n, riscv.ModU32, true) }

// visitRR is the shared shape for every single-input, single-output
// scalar op this file adds below: no immediate folding, no addressing,
// just one register in and one register out.
func (s *Selector) visitRR(n ir.Node, op riscv.Opcode) {
	s.emit(riscv.Instruction{
		Opcode:  op,
		Inputs:  []riscv.Operand{s.UseRegister(s.g.Input(n, 0))},
		Outputs: []riscv.Operand{s.DefineAsRegister(n)},
	})
}

func (s *Selector) VisitWord32Clz(n ir.Node)    { s.visitRR(n, riscv.Clz32) }
func (s *Selector) VisitWord32Ctz(n ir.Node)    { s.visitRR(n, riscv.Ctz32) }
func (s *Selector) VisitWord32Popcnt(n ir.Node) { s.visitRR(n, riscv.Popcnt32) }

// VisitWord32Ror lowers a rotate-right by either a constant or a
// register-held shift amount, the same shape VisitBinop's shift-family
// callers use elsewhere in this file.
func (s *Selector) VisitWord32Ror(n ir.Node) {
	b := ir.Binop(s.g, n)
	left, right := b.Left(), b.Right()
	in := riscv.Instruction{Opcode: riscv.Ror32, Outputs: []riscv.Operand{s.DefineAsRegister(n)}}
	if v, ok := ir.IsIntConstant(s.g, right); ok {
		in.Inputs = []riscv.Operand{s.UseRegister(left), s.UseImmediateValue(int64(v & 31))}
	} else {
		in.Inputs = []riscv.Operand{s.UseRegister(left), s.UseRegister(right)}
	}
	s.emit(in)
}

func (s *Selector) VisitInt32MulHigh(n ir.Node) {
	s.VisitBinop(n, riscv.MulHigh32, false, riscv.OpInvalid, riscv.None())
}

func (s *Selector) VisitUint32MulHigh(n ir.Node) {
	s.VisitBinop(n, riscv.MulHighU32, false, riscv.OpInvalid, riscv.None())
}

func (s *Selector) VisitBitcastFloat32ToInt32(n ir.Node) { s.visitRR(n, riscv.BitcastFloat32ToInt32) }
func (s *Selector) VisitBitcastInt32ToFloat32(n ir.Node) { s.visitRR(n, riscv.BitcastInt32ToFloat32) }
func (s *Selector) VisitChangeInt32ToFloat64(n ir.Node)  { s.visitRR(n, riscv.CvtDW) }
func (s *Selector) VisitChangeFloat64ToInt32(n ir.Node)  { s.visitRR(n, riscv.TruncWD) }

// VisitTruncateFloat64ToWord32 lowers the JS-semantics ToInt32 truncate:
// unlike ChangeFloat64ToInt32 (which assumes the value is already
// representable), this one must produce a defined result for every
// double, including out-of-range and NaN inputs, so it gets its own
// opcode rather than reusing TruncWD.
func (s *Selector) VisitTruncateFloat64ToWord32(n ir.Node) { s.visitRR(n, riscv.TruncateDoubleToI) }

func (s *Selector) VisitSignExtendWord8ToInt32(n ir.Node)  { s.visitRR(n, riscv.SignExtendByte) }
func (s *Selector) VisitSignExtendWord16ToInt32(n ir.Node) { s.visitRR(n, riscv.SignExtendShort) }

func (s *Selector) VisitFloat64ExtractLowWord32(n ir.Node)  { s.visitRR(n, riscv.Float64ExtractLowWord32) }
func (s *Selector) VisitFloat64ExtractHighWord32(n ir.Node) { s.visitRR(n, riscv.Float64ExtractHighWord32) }

// VisitFloat64InsertLowWord32/HighWord32 alias their output to the first
// input: the instruction rewrites one word of the incoming double in
// place rather than building a new one from scratch, matching the
// original's DefineSameAsFirst.
func (s *Selector) VisitFloat64InsertLowWord32(n ir.Node) {
	b := ir.Binop(s.g, n)
	s.emit(riscv.Instruction{
		Opcode:  riscv.Float64InsertLowWord32,
		Inputs:  []riscv.Operand{s.UseRegister(b.Left()), s.UseRegister(b.Right())},
		Outputs: []riscv.Operand{s.DefineSameAsFirst(n)},
	})
}

func (s *Selector) VisitFloat64InsertHighWord32(n ir.Node) {
	b := ir.Binop(s.g, n)
	s.emit(riscv.Instruction{
		Opcode:  riscv.Float64InsertHighWord32,
		Inputs:  []riscv.Operand{s.UseRegister(b.Left()), s.UseRegister(b.Right())},
		Outputs: []riscv.Operand{s.DefineSameAsFirst(n)},
	})
}

// VisitFloat64Ieee754Binop/Unop lower the libm-backed transcendental ops
// (pow, atan2, sin, ...): the runtime helper they call takes its
// argument(s) and produces its result in the fa0/fa1 double-precision
// argument registers, the float equivalent of VisitCallCFunction's
// fixed-register convention.
func (s *Selector) VisitFloat64Ieee754Binop(n ir.Node) {
	b := ir.Binop(s.g, n)
	s.emit(riscv.Instruction{
		Opcode: riscv.Float64Ieee754Binop,
		Inputs: []riscv.Operand{
			s.UseFixed(b.Left(), riscv.RegFa0),
			s.UseFixed(b.Right(), riscv.RegFa1),
		},
		Outputs: []riscv.Operand{s.DefineAsFixed(n, riscv.RegFa0)},
	})
}

func (s *Selector) VisitFloat64Ieee754Unop(n ir.Node) {
	s.emit(riscv.Instruction{
		Opcode:  riscv.Float64Ieee754Unop,
		Inputs:  []riscv.Operand{s.UseFixed(s.g.Input(n, 0), riscv.RegFa1)},
		Outputs: []riscv.Operand{s.DefineAsFixed(n, riscv.RegFa0)},
	})
}

// VisitMemoryBarrier lowers to a full fence: this target never
// distinguishes acquire/release/seqcst orderings the way the mid-IR
// might carry them, matching the original's single kRiscvSync opcode
// for every MemoryBarrier node.
func (s *Selector) VisitMemoryBarrier(n ir.Node) {
	s.markDefined(n)
	s.emit(riscv.Instruction{Opcode: riscv.Sync})
}

// VisitStackSlot allocates a spill slot for a value the caller has asked
// to be addressable (its address escapes to something other than a
// plain load/store this pass would otherwise fold away), and defines n
// as the register holding that slot's address.
func (s *Selector) VisitStackSlot(n ir.Node, size, alignment int) {
	slot := s.frame.AllocateSpillSlot(size, alignment)
	s.emit(riscv.Instruction{
		Opcode:  riscv.ArchStackSlot,
		Misc:    uint32(slot),
		Outputs: []riscv.Operand{s.DefineAsRegister(n)},
	})
}

// VisitAbortCSADcheck fixes its single argument to a0, the runtime
// helper's fixed calling convention for the failure message it reports
// before aborting.
func (s *Selector) VisitAbortCSADcheck(n ir.Node) {
	s.markDefined(n)
	s.emit(riscv.Instruction{
		Opcode: riscv.ArchAbortCSADcheck,
		Inputs: []riscv.Operand{s.UseFixed(s.g.Input(n, 0), riscv.RegA0)},
	})
}
