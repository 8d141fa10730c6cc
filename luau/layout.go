package luau

import "strconv"

// RegionKind distinguishes the regions a loader maps.
type RegionKind uint8

const (
	// RegionSegment is a mapped span backed by file bytes.
	RegionSegment RegionKind = iota
	// RegionSection is a named span inside a segment.
	RegionSection
)

// Permission bits of a region.
type Permission uint8

const (
	PermRead Permission = 1 << iota
	PermExecute
)

// Region is one addressable span of the container.
type Region struct {
	Name  string
	Range Range
	Kind  RegionKind
	Perm  Permission
	Code  bool
	Data  bool
}

// Layout describes how the container maps onto an address space. The
// address of every byte equals its offset in the container.
type Layout struct {
	Regions   []Region
	Functions []uint64
	Entry     uint64
	HasEntry  bool
}

// Layout computes the address-space layout of the module. Empty spans
// produce no region.
func (m *Module) Layout() Layout {
	var l Layout

	if span := m.StringSpan(); !span.Empty() {
		l.Regions = append(l.Regions,
			Region{Range: span, Kind: RegionSegment, Perm: PermRead, Data: true},
			Region{Name: "string_list", Range: span, Kind: RegionSection, Perm: PermRead, Data: true},
		)
	}

	for i := range m.Functions {
		fn := &m.Functions[i]
		l.Regions = append(l.Regions, Region{
			Range: fn.Position,
			Kind:  RegionSegment,
			Perm:  PermRead | PermExecute,
			Code:  true,
			Data:  true,
		})
		if !fn.Code.Empty() {
			l.Regions = append(l.Regions, Region{
				Name:  "code_" + strconv.Itoa(i),
				Range: fn.Code,
				Kind:  RegionSection,
				Perm:  PermRead | PermExecute,
				Code:  true,
			})
		}
		if span := fn.ConstantSpan(); !span.Empty() {
			l.Regions = append(l.Regions, Region{
				Name:  "data_" + strconv.Itoa(i),
				Range: span,
				Kind:  RegionSection,
				Perm:  PermRead,
				Data:  true,
			})
		}
		l.Functions = append(l.Functions, uint64(fn.Code.Start))
	}

	l.Entry, l.HasEntry = m.EntryPoint()
	return l
}

// Section returns the section region with the given name.
func (l Layout) Section(name string) (Region, bool) {
	for _, r := range l.Regions {
		if r.Kind == RegionSection && r.Name == name {
			return r, true
		}
	}
	return Region{}, false
}
