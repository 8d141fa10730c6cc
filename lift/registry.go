package lift

import (
	"github.com/wippyai/luau-lift/luau"
)

// Handler lowers one instruction into IR.
//
// Handlers are stateless and shared by every lift. The instruction's
// address, module and output buffer live in the Context. A returned error
// is a lift gap: the lifter discards whatever the handler emitted and
// records the instruction as Unimplemented.
type Handler interface {
	Handle(ctx *Context, ins luau.Instruction) error
}

// Func is an adapter to use ordinary functions as Handlers.
//
//	r.RegisterFunc(luau.OpNop, func(ctx *Context, ins luau.Instruction) error {
//	    ctx.Emit(ir.Nop{})
//	    return nil
//	}, "nop")
type Func func(ctx *Context, ins luau.Instruction) error

// Handle implements Handler.
func (f Func) Handle(ctx *Context, ins luau.Instruction) error {
	return f(ctx, ins)
}

// Registry maps opcodes to their handlers.
//
// Opcodes without a handler lift to Unimplemented. Adding semantics for an
// opcode is one registration.
type Registry struct {
	handlers [256]Handler
	names    [256]string
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Register adds a handler for a single opcode, replacing any previous one.
// The name is used in diagnostics.
func (r *Registry) Register(op luau.Opcode, h Handler, name string) {
	r.handlers[op] = h
	r.names[op] = name
}

// RegisterFunc registers a function as a handler for an opcode.
func (r *Registry) RegisterFunc(op luau.Opcode, fn func(*Context, luau.Instruction) error, name string) {
	r.Register(op, Func(fn), name)
}

// RegisterBulk registers the same handler for multiple opcodes.
func (r *Registry) RegisterBulk(ops []luau.Opcode, h Handler, name string) {
	for _, op := range ops {
		r.handlers[op] = h
		r.names[op] = name
	}
}

// Get returns the handler for an opcode, or nil if not registered.
func (r *Registry) Get(op luau.Opcode) Handler {
	return r.handlers[op]
}

// Has returns true if a handler is registered for the opcode.
func (r *Registry) Has(op luau.Opcode) bool {
	return r.handlers[op] != nil
}

// Name returns the name of the handler for an opcode.
func (r *Registry) Name(op luau.Opcode) string {
	return r.names[op]
}

// Missing returns the defined opcodes that have no handler.
func (r *Registry) Missing() []luau.Opcode {
	var missing []luau.Opcode
	for op := luau.Opcode(0); int(op) < luau.NumOpcodes; op++ {
		if r.handlers[op] == nil {
			missing = append(missing, op)
		}
	}
	return missing
}

// Clone returns a copy that can be extended without touching r.
func (r *Registry) Clone() *Registry {
	c := *r
	return &c
}
