package luau_test

import (
	"slices"
	"testing"

	"github.com/wippyai/luau-lift/luau"
)

func TestImportChain(t *testing.T) {
	tests := []struct {
		name  string
		chain luau.ImportChain
		want  []int
	}{
		{"empty", 0, []int{}},
		{"one", 1<<30 | 5, []int{5}},
		{"two", 2<<30 | 7<<10 | 3, []int{3, 7}},
		{"three full", 0xFFFFFFFF, []int{1023, 1023, 1023}},
		{"count ignores extra fields", 1<<30 | 9<<10 | 4, []int{4}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.chain.Len() != len(tt.want) {
				t.Errorf("Len = %d, want %d", tt.chain.Len(), len(tt.want))
			}
			if got := tt.chain.Indices(); !slices.Equal(got, tt.want) {
				t.Errorf("Indices = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPackImport(t *testing.T) {
	c, err := luau.PackImport(3, 7)
	if err != nil {
		t.Fatalf("PackImport: %v", err)
	}
	if c != luau.ImportChain(2<<30|7<<10|3) {
		t.Errorf("PackImport(3, 7) = %#x", uint32(c))
	}
	if got := c.Indices(); !slices.Equal(got, []int{3, 7}) {
		t.Errorf("round trip = %v", got)
	}

	if _, err := luau.PackImport(1, 2, 3, 4); err == nil {
		t.Error("expected error for four names")
	}
	if _, err := luau.PackImport(1024); err == nil {
		t.Error("expected error for index 1024")
	}
	if _, err := luau.PackImport(-1); err == nil {
		t.Error("expected error for negative index")
	}
}

func TestImportChainAllStops(t *testing.T) {
	c := luau.ImportChain(0xFFFFFFFF)
	n := 0
	for range c.All() {
		n++
		break
	}
	if n != 1 {
		t.Errorf("iteration continued after break: %d", n)
	}
}
