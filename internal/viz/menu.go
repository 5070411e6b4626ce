package viz

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/san-kum/nlolab/internal/control"
	"github.com/san-kum/nlolab/internal/scene"
)

type menuEntry struct {
	name string
	desc string
}

// Menu lists the registered scenes and opens an Explorer for the chosen
// one.
type Menu struct {
	reg      *scene.Registry
	entries  []menuEntry
	cursor   int
	opts     Options
	explorer *Explorer
	err      error
	logger   *log.Logger
}

func NewMenu(reg *scene.Registry, opts Options) *Menu {
	m := &Menu{reg: reg, opts: opts, logger: opts.logger()}
	for _, name := range reg.List() {
		s, err := reg.Get(name)
		if err != nil {
			m.logger.Warn("scene unavailable", "scene", name, "err", err)
			continue
		}
		m.entries = append(m.entries, menuEntry{name: name, desc: s.Description()})
	}
	return m
}

func (m *Menu) Init() tea.Cmd { return nil }

// Selected returns the name under the cursor.
func (m *Menu) Selected() string {
	if len(m.entries) == 0 {
		return ""
	}
	return m.entries[m.cursor].name
}

// Explorer returns the open explorer, or nil while the menu is shown.
func (m *Menu) Explorer() *Explorer { return m.explorer }

func (m *Menu) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if _, ok := msg.(backMsg); ok {
		m.explorer = nil
		return m, nil
	}
	if size, ok := msg.(tea.WindowSizeMsg); ok {
		m.opts.Cols, m.opts.Rows = max(20, size.Width-50), max(8, size.Height-10)
	}
	if m.explorer != nil {
		_, cmd := m.explorer.Update(msg)
		return m, cmd
	}
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch key.String() {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.entries)-1 {
			m.cursor++
		}
	case "enter", " ":
		m.open()
	}
	return m, nil
}

func (m *Menu) open() {
	name := m.Selected()
	if name == "" {
		return
	}
	s, err := m.reg.Get(name)
	if err == nil {
		var b *control.Binding
		if b, err = control.NewBinding(s, m.logger); err == nil {
			m.explorer = NewExplorer(b, m.opts)
			m.explorer.embedded = true
			m.err = nil
			return
		}
	}
	m.err = fmt.Errorf("open %s: %w", name, err)
	m.logger.Error("open scene", "scene", name, "err", err)
}

func (m *Menu) View() string {
	if m.explorer != nil {
		return m.explorer.View()
	}
	t, _ := ThemeByName(m.opts.Theme)
	sty := newStyles(t)

	var b strings.Builder
	b.WriteString("\n  " + sty.title.Render("NLOLAB") + "\n  " + sty.muted.Render("nonlinear optics explorer") + "\n  " +
		sty.muted.Render(strings.Repeat("─", 25)) + "\n\n")
	for i, e := range m.entries {
		name := fmt.Sprintf("%-12s", e.name)
		if i == m.cursor {
			b.WriteString("  " + sty.focus.Render("▸ "+name) + " " + sty.accent.Render(e.desc) + "\n")
		} else {
			b.WriteString("    " + sty.sub.Render(name) + " " + sty.muted.Render(e.desc) + "\n")
		}
	}
	if m.err != nil {
		b.WriteString("\n  " + sty.err.Render(m.err.Error()) + "\n")
	}
	b.WriteString("\n  " + lipgloss.JoinHorizontal(lipgloss.Top,
		sty.accent.Render("j/k"), sty.muted.Render(" navigate  "),
		sty.accent.Render("enter"), sty.muted.Render(" open  "),
		sty.accent.Render("q"), sty.muted.Render(" quit")) + "\n")
	return b.String()
}

// RunInteractive shows the scene menu.
func RunInteractive(reg *scene.Registry, opts Options) error {
	_, err := tea.NewProgram(NewMenu(reg, opts), tea.WithAltScreen()).Run()
	return err
}
