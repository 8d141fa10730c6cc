package lift_test

import (
	"testing"

	"github.com/wippyai/luau-lift/lift"
	"github.com/wippyai/luau-lift/luau"
)

type fixture struct {
	m    *luau.Module
	data []byte
}

func build(t *testing.T, c *luau.Container) fixture {
	t.Helper()
	data := c.Encode()
	m, err := luau.ParseModule(data)
	if err != nil {
		t.Fatalf("ParseModule: %v", err)
	}
	return fixture{m: m, data: data}
}

// at returns the address of the byte offset off into function fn's code.
func (f fixture) at(fn, off int) uint64 {
	return uint64(f.m.Functions[fn].Code.Start + off)
}

func (f fixture) lift(t *testing.T, l *lift.Lifter, addr uint64) lift.Lifted {
	t.Helper()
	out, err := l.Lift(f.m, addr, f.data[addr:])
	if err != nil {
		t.Fatalf("Lift(%#x): %v", addr, err)
	}
	return out
}

func pack(t *testing.T, indices ...int) luau.ImportChain {
	t.Helper()
	c, err := luau.PackImport(indices...)
	if err != nil {
		t.Fatalf("PackImport: %v", err)
	}
	return c
}
