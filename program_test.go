package luaulift_test

import (
	"sync"
	"testing"

	luaulift "github.com/wippyai/luau-lift"
	"github.com/wippyai/luau-lift/errors"
	"github.com/wippyai/luau-lift/ir"
	"github.com/wippyai/luau-lift/lift"
	"github.com/wippyai/luau-lift/luau"
)

func image(protos int) []byte {
	c := &luau.Container{Strings: []string{"main"}}
	for i := 0; i < protos; i++ {
		c.Protos = append(c.Protos, luau.Proto{
			Code: luau.Words(
				luau.EncodeAD(luau.OpLoadInteger, 0, int16(i)),
				luau.EncodeABC(luau.OpReturn, 0, 2, 0),
			),
			DebugName: 1,
		})
	}
	c.Entry = protos - 1
	return c.Encode()
}

func TestProgramBeforeLoad(t *testing.T) {
	p := luaulift.NewProgram(lift.Config{})
	if p.Module() != nil || p.Data() != nil {
		t.Fatal("empty program has a module")
	}
	if _, err := p.Lift(0); err == nil {
		t.Error("Lift before Load should fail")
	}
	if _, err := p.LiftFunction(0); err == nil {
		t.Error("LiftFunction before Load should fail")
	}
}

func TestProgramLoad(t *testing.T) {
	p := luaulift.NewProgram(lift.Config{})
	data := image(2)
	m, err := p.Load(data)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if p.Module() != m {
		t.Error("Module() is not the loaded module")
	}

	addr := uint64(m.Functions[1].Code.Start)
	out, err := p.Lift(addr)
	if err != nil {
		t.Fatalf("Lift: %v", err)
	}
	want := ir.StoreSlot(0, ir.Const{Value: 1})
	if len(out.Stmts) != 1 || out.Stmts[0] != want {
		t.Errorf("Lift = %v, want [%v]", out.Stmts, want)
	}

	info, err := p.Info(addr + 4)
	if err != nil {
		t.Fatalf("Info: %v", err)
	}
	if len(info.Branches) != 1 || info.Branches[0].Kind != lift.BranchReturn {
		t.Errorf("Info = %+v", info)
	}

	d, err := p.Describe(addr)
	if err != nil {
		t.Fatalf("Describe: %v", err)
	}
	if d.String() != "load_integer r0, 1" {
		t.Errorf("Describe = %q", d.String())
	}

	all, err := p.LiftFunction(0)
	if err != nil || len(all) != 2 {
		t.Fatalf("LiftFunction = %d entries, %v", len(all), err)
	}

	if _, err := p.Lift(uint64(len(data))); err == nil {
		t.Error("Lift past the image should fail")
	}
}

func TestProgramFailedLoadKeepsModule(t *testing.T) {
	p := luaulift.NewProgram(lift.Config{})
	first, err := p.Load(image(1))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	_, err = p.Load([]byte{9})
	if err == nil {
		t.Fatal("expected version error")
	}
	if !errors.IsFormat(err) {
		t.Errorf("error %v is not a format error", err)
	}
	if p.Module() != first {
		t.Error("failed load replaced the module")
	}
}

func TestProgramConcurrentReaders(t *testing.T) {
	p := luaulift.NewProgram(lift.Config{})
	if _, err := p.Load(image(1)); err != nil {
		t.Fatalf("Load: %v", err)
	}

	var wg sync.WaitGroup
	for r := 0; r < 8; r++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 200; i++ {
				m := p.Module()
				n := len(m.Functions)
				if n != 1 && n != 3 {
					t.Errorf("torn module with %d functions", n)
					return
				}
				if m.Entry != n-1 {
					t.Errorf("entry %d does not belong to a %d function module", m.Entry, n)
					return
				}
			}
		}()
	}

	for i := 0; i < 50; i++ {
		data := image(1)
		if i%2 == 0 {
			data = image(3)
		}
		if _, err := p.Load(data); err != nil {
			t.Fatalf("Load: %v", err)
		}
	}
	wg.Wait()
}
