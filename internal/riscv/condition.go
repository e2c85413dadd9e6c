package riscv

// Condition names the flag test a continuation evaluates.
type Condition uint8

const (
	Equal Condition = iota
	NotEqual
	SignedLessThan
	SignedLessThanOrEqual
	SignedGreaterThan
	SignedGreaterThanOrEqual
	UnsignedLessThan
	UnsignedLessThanOrEqual
	UnsignedGreaterThan
	UnsignedGreaterThanOrEqual
	Overflow
	NotOverflow
	StackPointerGreaterThanCond
)

var negated = map[Condition]Condition{
	Equal:                       NotEqual,
	NotEqual:                    Equal,
	SignedLessThan:              SignedGreaterThanOrEqual,
	SignedGreaterThanOrEqual:    SignedLessThan,
	SignedGreaterThan:           SignedLessThanOrEqual,
	SignedLessThanOrEqual:       SignedGreaterThan,
	UnsignedLessThan:            UnsignedGreaterThanOrEqual,
	UnsignedGreaterThanOrEqual:  UnsignedLessThan,
	UnsignedGreaterThan:         UnsignedLessThanOrEqual,
	UnsignedLessThanOrEqual:     UnsignedGreaterThan,
	Overflow:                    NotOverflow,
	NotOverflow:                 Overflow,
	StackPointerGreaterThanCond: StackPointerGreaterThanCond, // has no natural negation
}

var commuted = map[Condition]Condition{
	Equal:                      Equal,
	NotEqual:                   NotEqual,
	SignedLessThan:             SignedGreaterThan,
	SignedGreaterThan:          SignedLessThan,
	SignedLessThanOrEqual:      SignedGreaterThanOrEqual,
	SignedGreaterThanOrEqual:   SignedLessThanOrEqual,
	UnsignedLessThan:           UnsignedGreaterThan,
	UnsignedGreaterThan:        UnsignedLessThan,
	UnsignedLessThanOrEqual:    UnsignedGreaterThanOrEqual,
	UnsignedGreaterThanOrEqual: UnsignedLessThanOrEqual,
	Overflow:                   Overflow,
	NotOverflow:                NotOverflow,
}

// ContinuationKind tags the variant of Continuation.
type ContinuationKind uint8

const (
	ContNone ContinuationKind = iota
	ContSet
	ContBranch
	ContDeoptimize
	ContTrap
)

// Continuation is the deferred consumer of a comparison's flags. It
// supports Negate/Commute in place so the compare/branch fuser can cancel
// double negations and normalize operand order without rebuilding the
// struct.
type Continuation struct {
	Kind ContinuationKind
	Cond Condition

	// ContSet
	SetDest int // virtual register id materializing 0/1

	// ContBranch
	TrueBlock  int
	FalseBlock int

	// ContDeoptimize
	DeoptReason   string
	DeoptFeedback string

	// ContTrap
	TrapID int
}

func None() *Continuation { return &Continuation{Kind: ContNone} }

func Set(cond Condition, dest int) *Continuation {
	return &Continuation{Kind: ContSet, Cond: cond, SetDest: dest}
}

func Branch(cond Condition, trueBlock, falseBlock int) *Continuation {
	return &Continuation{Kind: ContBranch, Cond: cond, TrueBlock: trueBlock, FalseBlock: falseBlock}
}

func Deoptimize(cond Condition, reason, feedback string) *Continuation {
	return &Continuation{Kind: ContDeoptimize, Cond: cond, DeoptReason: reason, DeoptFeedback: feedback}
}

func Trap(cond Condition, trapID int) *Continuation {
	return &Continuation{Kind: ContTrap, Cond: cond, TrapID: trapID}
}

// Negate flips the condition in place. Calling it twice is the identity.
func (c *Continuation) Negate() {
	if c == nil || c.Kind == ContNone {
		return
	}
	if n, ok := negated[c.Cond]; ok {
		c.Cond = n
	}
}

// Commute swaps the condition's operand order in place, used when the
// fuser swaps left/right to put an immediate on the permitted side.
func (c *Continuation) Commute() {
	if c == nil || c.Kind == ContNone {
		return
	}
	if n, ok := commuted[c.Cond]; ok {
		c.Cond = n
	}
}

// OverwriteAndNegateIfEqual replaces Cond with cond, the condition the
// fuser has just matched against a specific comparison operator, negating
// the result if this continuation's condition was still Equal — the
// marker VisitWordCompareZero's negation loop leaves in place for every
// Word32Equal(_, 0) wrapper it unwrapped an odd number of times. An outer
// "if (!x)" flips the sense of whatever comparison x turns out to be;
// this is the one place that inversion gets applied.
func (c *Continuation) OverwriteAndNegateIfEqual(cond Condition) {
	if c == nil || c.Kind == ContNone {
		return
	}
	negate := c.Cond == Equal
	c.Cond = cond
	if negate {
		c.Negate()
	}
}

// IsDeopt reports whether this continuation is a deoptimization, the
// case VisitBinop uses to decide the output policy.
func (c *Continuation) IsDeopt() bool {
	return c != nil && c.Kind == ContDeoptimize
}
