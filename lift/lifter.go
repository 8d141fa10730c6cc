package lift

import (
	"go.uber.org/zap"

	lerrors "github.com/wippyai/luau-lift/errors"
	"github.com/wippyai/luau-lift/ir"
	"github.com/wippyai/luau-lift/luau"
)

// Config controls lifting behavior.
type Config struct {
	// StrictFloat refuses the integer placeholders for double arithmetic
	// and lifts those instructions to Unimplemented.
	StrictFloat bool
}

// Lifted is the result of lifting one instruction.
type Lifted struct {
	Stmts    []ir.Stmt
	Branches []Branch
	Gaps     []Gap
	Addr     uint64
	Length   int
	Opcode   luau.Opcode
}

// Unimplemented reports whether the instruction has no lifted semantics.
func (l Lifted) Unimplemented() bool {
	return ir.IsUnimplemented(l.Stmts)
}

// Lifter lowers instructions to IR. It holds no per-module state and is
// safe for concurrent use.
type Lifter struct {
	registry *Registry
	cfg      Config
}

// New creates a Lifter with the default semantics.
func New(cfg Config) *Lifter {
	return NewWithRegistry(cfg, DefaultRegistry())
}

// NewWithRegistry creates a Lifter dispatching through r.
func NewWithRegistry(cfg Config, r *Registry) *Lifter {
	return &Lifter{registry: r, cfg: cfg}
}

// Registry returns the handler registry in use.
func (l *Lifter) Registry() *Registry {
	return l.registry
}

// Info decodes the instruction at addr and reports its length and edges.
func (l *Lifter) Info(addr uint64, data []byte) (Info, error) {
	ins, err := luau.DecodeInstruction(data)
	if err != nil {
		return Info{}, err
	}
	return Info{Length: ins.Len(), Branches: Branches(ins, addr)}, nil
}

// Lift lowers the instruction at addr. data starts at addr and m is the
// module the instruction belongs to. The only error is a decode error;
// every other failure yields a single Unimplemented statement.
func (l *Lifter) Lift(m *luau.Module, addr uint64, data []byte) (Lifted, error) {
	ins, err := luau.DecodeInstruction(data)
	if err != nil {
		return Lifted{}, err
	}
	return l.lift(m, addr, ins), nil
}

func (l *Lifter) lift(m *luau.Module, addr uint64, ins luau.Instruction) Lifted {
	op := ins.Opcode()
	out := Lifted{
		Addr:     addr,
		Length:   ins.Len(),
		Opcode:   op,
		Branches: Branches(ins, addr),
	}

	h := l.registry.Get(op)
	if h == nil {
		out.Stmts = []ir.Stmt{ir.Unimplemented{Reason: "no semantics for " + op.String()}}
		return out
	}

	ctx := newContext(m, l.cfg, addr)
	if err := h.Handle(ctx, ins); err != nil {
		Logger().Debug("lift gap",
			zap.Uint64("addr", addr),
			zap.String("op", op.String()),
			zap.Error(err))
		out.Stmts = []ir.Stmt{ir.Unimplemented{Reason: err.Error()}}
		return out
	}
	out.Stmts = ctx.stmts
	out.Gaps = ctx.gaps
	return out
}

// LiftFunction lifts every instruction of function index in m. data is
// the whole container. A word that does not decode becomes a one-word
// Unimplemented entry and lifting continues after it.
func (l *Lifter) LiftFunction(m *luau.Module, index int, data []byte) ([]Lifted, error) {
	fn, ok := m.Function(index)
	if !ok {
		return nil, outOfRangeFunction(index, len(m.Functions))
	}
	if fn.Code.End > len(data) {
		return nil, shortBuffer(fn.Code.End, len(data))
	}

	out := make([]Lifted, 0, fn.InstructionCount())
	for pc := fn.Code.Start; pc < fn.Code.End; {
		addr := uint64(pc)
		ins, err := luau.DecodeInstruction(data[pc:fn.Code.End])
		if err != nil {
			Logger().Debug("undecodable word", zap.Uint64("addr", addr), zap.Error(err))
			out = append(out, Lifted{
				Addr:   addr,
				Length: 4,
				Opcode: luau.Opcode(data[pc]),
				Stmts:  []ir.Stmt{ir.Unimplemented{Reason: err.Error()}},
			})
			pc += 4
			continue
		}
		lifted := l.lift(m, addr, ins)
		out = append(out, lifted)
		pc += lifted.Length
	}
	return out, nil
}

func outOfRangeFunction(index, count int) error {
	return lerrors.OutOfBounds(lerrors.PhaseLift, []string{"function"}, index, count)
}

func shortBuffer(need, have int) error {
	return lerrors.New(lerrors.PhaseLift, lerrors.KindInvalidInput).
		Detail("buffer of %d bytes does not hold code ending at %d", have, need).
		Build()
}
