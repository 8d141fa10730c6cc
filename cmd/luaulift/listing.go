package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"golang.org/x/term"

	luaulift "github.com/wippyai/luau-lift"
	"github.com/wippyai/luau-lift/lift"
	"github.com/wippyai/luau-lift/luau"
)

type styles struct {
	header   lipgloss.Style
	addr     lipgloss.Style
	mnemonic lipgloss.Style
	stmt     lipgloss.Style
	gap      lipgloss.Style
	branch   lipgloss.Style
	missing  lipgloss.Style
}

func newStyles(color bool) styles {
	if !color {
		plain := lipgloss.NewStyle()
		return styles{plain, plain, plain, plain, plain, plain, plain}
	}
	return styles{
		header:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7D56F4")),
		addr:     lipgloss.NewStyle().Foreground(lipgloss.Color("#666666")),
		mnemonic: lipgloss.NewStyle().Foreground(lipgloss.Color("#98FB98")),
		stmt:     lipgloss.NewStyle().Foreground(lipgloss.Color("#87CEEB")),
		gap:      lipgloss.NewStyle().Foreground(lipgloss.Color("#FFD700")),
		branch:   lipgloss.NewStyle().Foreground(lipgloss.Color("#DDA0DD")),
		missing:  lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B")),
	}
}

// colorEnabled resolves the output.color mode against the terminal.
func colorEnabled(mode string, out *os.File) bool {
	switch mode {
	case "always":
		lipgloss.SetColorProfile(termenv.ANSI256)
		return true
	case "never":
		return false
	}
	return term.IsTerminal(int(out.Fd()))
}

// printer writes the plain text views of a loaded program.
type printer struct {
	w        io.Writer
	prog     *luaulift.Program
	st       styles
	ir       bool
	branches bool
}

func (p *printer) summary(name string) {
	m := p.prog.Module()
	fmt.Fprintf(p.w, "%s %s\n", p.st.header.Render("Container:"), name)
	fmt.Fprintf(p.w, "Size: %d bytes\n", m.Size)
	fmt.Fprintf(p.w, "Strings: %d\n", len(m.Strings))
	fmt.Fprintf(p.w, "Functions: %d\n", len(m.Functions))
	if addr, ok := m.EntryPoint(); ok {
		fmt.Fprintf(p.w, "Entry: %s at %#x\n", functionName(m, p.prog.Data(), m.Entry), addr)
	}
}

func (p *printer) functions() {
	m := p.prog.Module()
	fmt.Fprintf(p.w, "\n%s\n", p.st.header.Render("Functions:"))
	for i := range m.Functions {
		fn := &m.Functions[i]
		fmt.Fprintf(p.w, "  %3d %-24s code %s  %d insns, %d constants\n",
			i, functionName(m, p.prog.Data(), i), fn.Code, fn.InstructionCount(), len(fn.Constants))
	}
}

// function prints the listing of one function. Only instructions are
// described; with ir set each is followed by its lifted statements.
func (p *printer) function(index int) error {
	m := p.prog.Module()
	if _, ok := m.Function(index); !ok {
		return fmt.Errorf("function %d out of range (%d functions)", index, len(m.Functions))
	}
	insns, err := p.prog.LiftFunction(index)
	if err != nil {
		return fmt.Errorf("lift function %d: %w", index, err)
	}

	fmt.Fprintf(p.w, "\n%s\n", p.st.header.Render(functionName(m, p.prog.Data(), index)+":"))
	for _, ins := range insns {
		fmt.Fprint(p.w, p.instruction(ins))
	}
	return nil
}

func (p *printer) instruction(ins lift.Lifted) string {
	var b strings.Builder
	data := p.prog.Data()

	text := "<undecodable>"
	if d, err := lift.Describe(p.prog.Module(), ins.Addr, data[ins.Addr:]); err == nil {
		text = d.Render(data)
	}
	fmt.Fprintf(&b, "  %s  %s\n", p.st.addr.Render(fmt.Sprintf("%08x", ins.Addr)), p.st.mnemonic.Render(text))

	if p.ir {
		for _, s := range ins.Stmts {
			style := p.st.stmt
			if ins.Unimplemented() {
				style = p.st.missing
			}
			fmt.Fprintf(&b, "            %s\n", style.Render(s.String()))
		}
		if len(ins.Gaps) > 0 {
			gaps := make([]string, len(ins.Gaps))
			for i, g := range ins.Gaps {
				gaps[i] = string(g)
			}
			fmt.Fprintf(&b, "            %s\n", p.st.gap.Render("; gaps: "+strings.Join(gaps, ", ")))
		}
	}
	if p.branches && len(ins.Branches) > 0 {
		edges := make([]string, len(ins.Branches))
		for i, br := range ins.Branches {
			edges[i] = br.String()
		}
		fmt.Fprintf(&b, "            %s\n", p.st.branch.Render("-> "+strings.Join(edges, ", ")))
	}
	return b.String()
}

func (p *printer) layout() {
	l := p.prog.Module().Layout()
	fmt.Fprintf(p.w, "\n%s\n", p.st.header.Render("Layout:"))
	for _, r := range l.Regions {
		kind := "segment"
		if r.Kind == luau.RegionSection {
			kind = "section"
		}
		perm := "r-"
		if r.Perm&luau.PermExecute != 0 {
			perm = "rx"
		}
		fmt.Fprintf(p.w, "  %-8s %-14s %s %s\n", kind, r.Name, perm, r.Range)
	}
	if l.HasEntry {
		fmt.Fprintf(p.w, "  entry %#x\n", l.Entry)
	}
}

// functionName returns the debug name of function i, or func_i when it
// is anonymous.
func functionName(m *luau.Module, data []byte, i int) string {
	fn, ok := m.Function(i)
	if ok && fn.DebugName != 0 {
		if name, ok := m.StringBytes(data, fn.DebugName); ok {
			return string(name)
		}
	}
	return "func_" + strconv.Itoa(i)
}
