package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	luaulift "github.com/wippyai/luau-lift"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	funcStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98"))

	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

// headerLines is the height taken by the title and help lines around
// the listing viewport.
const headerLines = 4

type interactiveModel struct {
	err      error
	prog     *luaulift.Program
	listing  *printer
	filename string
	funcs    []funcInfo
	visible  []int
	filter   textinput.Model
	view     viewport.Model
	selected int
	state    modelState
	branches bool
}

type funcInfo struct {
	name   string
	index  int
	insns  int
	consts int
}

type modelState int

const (
	stateSelectFunc modelState = iota
	stateShowListing
)

func newInteractiveModel(filename string, prog *luaulift.Program) *interactiveModel {
	filter := textinput.New()
	filter.Prompt = "filter: "
	filter.Placeholder = "function name"
	filter.Width = 40

	m := &interactiveModel{
		prog:     prog,
		filename: filename,
		filter:   filter,
		view:     viewport.New(80, 20),
		state:    stateSelectFunc,
		listing: &printer{
			prog: prog,
			st:   newStyles(true),
			ir:   true,
		},
	}

	mod := prog.Module()
	for i := range mod.Functions {
		fn := &mod.Functions[i]
		m.funcs = append(m.funcs, funcInfo{
			name:   functionName(mod, prog.Data(), i),
			index:  i,
			insns:  fn.InstructionCount(),
			consts: len(fn.Constants),
		})
	}
	m.applyFilter()
	return m
}

func (m *interactiveModel) Init() tea.Cmd {
	return nil
}

func (m *interactiveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.view.Width = msg.Width
		m.view.Height = max(msg.Height-headerLines, 1)
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit

		case "q":
			if !m.filter.Focused() {
				return m, tea.Quit
			}

		case "/":
			if m.state == stateSelectFunc && !m.filter.Focused() {
				m.filter.Focus()
				return m, textinput.Blink
			}

		case "up", "k":
			if m.navigating(msg) && m.selected > 0 {
				m.selected--
				return m, nil
			}

		case "down", "j":
			if m.navigating(msg) && m.selected < len(m.visible)-1 {
				m.selected++
				return m, nil
			}

		case "b":
			if m.state == stateShowListing {
				m.branches = !m.branches
				m.renderListing()
				return m, nil
			}

		case "enter":
			if m.state == stateSelectFunc {
				m.filter.Blur()
				if len(m.visible) > 0 {
					m.state = stateShowListing
					m.renderListing()
				}
				return m, nil
			}

		case "esc":
			switch {
			case m.state == stateShowListing:
				m.state = stateSelectFunc
				m.err = nil
			case m.filter.Focused():
				m.filter.Blur()
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	switch {
	case m.state == stateShowListing:
		m.view, cmd = m.view.Update(msg)
	case m.filter.Focused():
		prev := m.filter.Value()
		m.filter, cmd = m.filter.Update(msg)
		if m.filter.Value() != prev {
			m.applyFilter()
		}
	}
	return m, cmd
}

// navigating reports whether a key moves the selection. Letters go to the
// filter while it has focus.
func (m *interactiveModel) navigating(k tea.KeyMsg) bool {
	if m.state != stateSelectFunc {
		return false
	}
	return k.Type != tea.KeyRunes || !m.filter.Focused()
}

func (m *interactiveModel) applyFilter() {
	q := strings.ToLower(m.filter.Value())
	m.visible = m.visible[:0]
	for i, f := range m.funcs {
		if q == "" || strings.Contains(strings.ToLower(f.name), q) {
			m.visible = append(m.visible, i)
		}
	}
	if m.selected >= len(m.visible) {
		m.selected = max(len(m.visible)-1, 0)
	}
}

func (m *interactiveModel) renderListing() {
	var b strings.Builder
	m.listing.w = &b
	m.listing.branches = m.branches
	m.err = m.listing.function(m.funcs[m.visible[m.selected]].index)
	m.view.SetContent(b.String())
	m.view.GotoTop()
}

func (m *interactiveModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Luau Lift"))
	b.WriteString(" ")
	b.WriteString(m.filename)
	b.WriteString("\n\n")

	switch m.state {
	case stateSelectFunc:
		b.WriteString(m.filter.View())
		b.WriteString("\n\n")
		for row, i := range m.visible {
			f := m.funcs[i]
			line := fmt.Sprintf("%3d %s %s", f.index, funcStyle.Render(f.name),
				infoStyle.Render(fmt.Sprintf("(%d insns, %d constants)", f.insns, f.consts)))
			if row == m.selected {
				b.WriteString(selectedStyle.Render("> " + line))
			} else {
				b.WriteString("  " + line)
			}
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("↑/↓ select • / filter • enter list • q quit"))

	case stateShowListing:
		if m.err != nil {
			b.WriteString(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
			b.WriteString("\n")
		}
		b.WriteString(m.view.View())
		b.WriteString("\n")
		b.WriteString(helpStyle.Render(fmt.Sprintf("%3.f%% • b branches • esc back • q quit", m.view.ScrollPercent()*100)))
	}

	return b.String()
}

func runInteractive(filename string, prog *luaulift.Program) error {
	p := tea.NewProgram(newInteractiveModel(filename, prog), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
