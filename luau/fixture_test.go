package luau_test

import (
	"testing"

	"github.com/wippyai/luau-lift/luau"
)

func mustPack(t *testing.T, indices ...int) luau.ImportChain {
	t.Helper()
	c, err := luau.PackImport(indices...)
	if err != nil {
		t.Fatalf("PackImport(%v): %v", indices, err)
	}
	return c
}

// sampleContainer has two functions. Function 1 is the entry and
// references function 0 through a closure constant.
func sampleContainer(t *testing.T) *luau.Container {
	t.Helper()
	return &luau.Container{
		Strings: []string{"print", "hello"},
		Protos: []luau.Proto{
			{
				MaxStack: 1,
				Code: luau.Words(
					luau.EncodeAD(luau.OpLoadInteger, 0, 5),
					luau.EncodeABC(luau.OpReturn, 0, 2, 0),
				),
				Lines:     &luau.LineInfo{Deltas: []byte{0, 0}, Absolute: []uint32{1, 1}},
				Locals:    []luau.LocalVar{{Name: 1, StartPC: 0, EndPC: 2, Reg: 0}},
				Upvalues:  []int{2},
				DebugName: 2,
			},
			{
				MaxStack: 3,
				Vararg:   true,
				Code: luau.Words(
					luau.WithAux(luau.EncodeAD(luau.OpGetImport, 0, 3), int32(mustPack(t, 0))),
					luau.EncodeAD(luau.OpNewClosure, 1, 0),
					luau.EncodeAD(luau.OpLoadConstant, 2, 1),
					luau.EncodeABC(luau.OpReturn, 0, 1, 0),
				),
				Constants: []luau.ConstantSpec{
					luau.StringConstant(1),
					luau.NumberConstant(1.5),
					luau.ClosureConstant(0),
					luau.ImportConstant(mustPack(t, 0)),
					luau.NilConstant(),
					luau.BoolConstant(true),
					luau.TableConstant(1, 2),
				},
				References: []int{0},
				Lines:      &luau.LineInfo{Gap: 1, Deltas: []byte{0, 0, 1, 0, 0}, Absolute: []uint32{1, 2, 3}},
			},
		},
		Entry: 1,
	}
}
