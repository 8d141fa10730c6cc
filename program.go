package luaulift

import (
	"fmt"
	"sync/atomic"

	"github.com/wippyai/luau-lift/errors"
	"github.com/wippyai/luau-lift/lift"
	"github.com/wippyai/luau-lift/luau"
)

// snapshot pairs a parsed module with the image it was parsed from.
type snapshot struct {
	module *luau.Module
	data   []byte
}

// Program holds the current module of a bytecode image.
//
// A module is built completely and then published. Load replaces it
// wholesale; readers that took the previous snapshot keep using it.
type Program struct {
	cur    atomic.Pointer[snapshot]
	lifter *lift.Lifter
}

// NewProgram creates an empty Program lifting with cfg.
func NewProgram(cfg lift.Config) *Program {
	return &Program{lifter: lift.New(cfg)}
}

// Load parses data and publishes it as the current module. On failure the
// previous module stays in place. data must not be modified afterwards.
func (p *Program) Load(data []byte) (*luau.Module, error) {
	m, err := luau.ParseModule(data)
	if err != nil {
		return nil, fmt.Errorf("load program: %w", err)
	}
	p.cur.Store(&snapshot{module: m, data: data})
	return m, nil
}

// Module returns the current module, or nil before the first Load.
func (p *Program) Module() *luau.Module {
	if s := p.cur.Load(); s != nil {
		return s.module
	}
	return nil
}

// Data returns the image the current module was parsed from.
func (p *Program) Data() []byte {
	if s := p.cur.Load(); s != nil {
		return s.data
	}
	return nil
}

// Lifter returns the lifter used by Lift and LiftFunction.
func (p *Program) Lifter() *lift.Lifter {
	return p.lifter
}

// Lift lowers the instruction at addr in the current image.
func (p *Program) Lift(addr uint64) (lift.Lifted, error) {
	s, window, err := p.window(addr)
	if err != nil {
		return lift.Lifted{}, err
	}
	return p.lifter.Lift(s.module, addr, window)
}

// Info reports the length and edges of the instruction at addr.
func (p *Program) Info(addr uint64) (lift.Info, error) {
	_, window, err := p.window(addr)
	if err != nil {
		return lift.Info{}, err
	}
	return p.lifter.Info(addr, window)
}

// Describe resolves the operands of the instruction at addr.
func (p *Program) Describe(addr uint64) (lift.Description, error) {
	s, window, err := p.window(addr)
	if err != nil {
		return lift.Description{}, err
	}
	return lift.Describe(s.module, addr, window)
}

// LiftFunction lifts every instruction of function index.
func (p *Program) LiftFunction(index int) ([]lift.Lifted, error) {
	s := p.cur.Load()
	if s == nil {
		return nil, errNotLoaded()
	}
	return p.lifter.LiftFunction(s.module, index, s.data)
}

func (p *Program) window(addr uint64) (*snapshot, []byte, error) {
	s := p.cur.Load()
	if s == nil {
		return nil, nil, errNotLoaded()
	}
	if addr >= uint64(len(s.data)) {
		return nil, nil, errors.New(errors.PhaseLift, errors.KindOutOfBounds).
			Value(addr).
			Detail("address %#x beyond image of %d bytes", addr, len(s.data)).
			Build()
	}
	return s, s.data[addr:], nil
}

func errNotLoaded() error {
	return errors.InvalidInput(errors.PhaseLoad, "no module loaded")
}
