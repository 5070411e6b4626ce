package viz

import (
	"fmt"
	"io"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/san-kum/nlolab/internal/control"
)

// Options configure the explorer and the scene menu.
type Options struct {
	Theme      string
	Cols, Rows int
	Logger     *log.Logger
}

func (o Options) logger() *log.Logger {
	if o.Logger == nil {
		return log.New(io.Discard)
	}
	return o.Logger
}

// backMsg asks an enclosing menu to take over again.
type backMsg struct{}

// Explorer is a bubbletea model around one control binding. Every dial
// key goes through the binding, which re-renders the scene synchronously.
type Explorer struct {
	binding  *control.Binding
	camera   *Camera
	base     *Canvas
	accent   *Canvas
	theme    Theme
	focus    int
	cols     int
	rows     int
	showHelp bool
	embedded bool
	err      error
	logger   *log.Logger
}

func NewExplorer(b *control.Binding, opts Options) *Explorer {
	t, ok := ThemeByName(opts.Theme)
	if !ok && opts.Theme != "" {
		opts.logger().Warn("unknown theme", "theme", opts.Theme, "using", t.Name)
	}
	e := &Explorer{
		binding: b,
		camera:  NewCamera(),
		theme:   t,
		logger:  opts.logger(),
	}
	e.resize(max(opts.Cols, 20), max(opts.Rows, 8))
	return e
}

// resize reallocates the canvases only when the size actually changes.
func (e *Explorer) resize(cols, rows int) {
	if e.base != nil && cols == e.cols && rows == e.rows {
		return
	}
	e.cols, e.rows = cols, rows
	e.base, e.accent = NewCanvas(cols, rows), NewCanvas(cols, rows)
}

func (e *Explorer) Init() tea.Cmd { return nil }

// Focus returns the index of the dial the arrow keys act on.
func (e *Explorer) Focus() int { return e.focus }

func (e *Explorer) Theme() Theme { return e.theme }

func (e *Explorer) Err() error { return e.err }

func (e *Explorer) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		e.resize(max(20, msg.Width-50), max(8, msg.Height-10))
	case tea.KeyMsg:
		return e.key(msg)
	}
	return e, nil
}

func (e *Explorer) key(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	dials := e.binding.Dials()
	switch msg.String() {
	case "ctrl+c", "q":
		return e, tea.Quit
	case "esc":
		if e.showHelp {
			e.showHelp = false
			return e, nil
		}
		if e.embedded {
			return e, func() tea.Msg { return backMsg{} }
		}
		return e, tea.Quit
	case "?":
		e.showHelp = !e.showHelp
	case "t":
		e.theme = nextTheme(e.theme.Name)
	case "tab":
		if len(dials) > 0 {
			e.focus = (e.focus + 1) % len(dials)
		}
	case "shift+tab":
		if len(dials) > 0 {
			e.focus = (e.focus + len(dials) - 1) % len(dials)
		}
	case "right", "l":
		e.step(msg, 1)
	case "left", "h":
		e.step(msg, -1)
	case "shift+right", "L":
		e.step(msg, 10)
	case "shift+left", "H":
		e.step(msg, -10)
	case "r":
		if len(dials) > 0 {
			e.apply(msg, func() error {
				_, err := e.binding.Reset(dials[e.focus].Name)
				return err
			})
		}
	case "R":
		e.apply(msg, func() error {
			_, err := e.binding.ResetAll()
			return err
		})
	case "x":
		e.camera.Orbit(0.1, 0)
	case "X":
		e.camera.Orbit(-0.1, 0)
	case "y":
		e.camera.Orbit(0, 0.1)
	case "Y":
		e.camera.Orbit(0, -0.1)
	case "+", "=":
		e.camera.ZoomBy(1.2)
	case "-", "_":
		e.camera.ZoomBy(1 / 1.2)
	}
	return e, nil
}

// apply runs a binding update and keeps its error for the side panel.
func (e *Explorer) apply(msg tea.KeyMsg, fn func() error) {
	e.err = fn()
	if e.err != nil {
		e.logger.Error("update failed", "key", msg.String(), "err", e.err)
	}
}

func (e *Explorer) step(msg tea.KeyMsg, delta int) {
	dials := e.binding.Dials()
	if len(dials) == 0 {
		return
	}
	e.apply(msg, func() error {
		_, err := e.binding.Step(dials[e.focus].Name, delta)
		return err
	})
}

func (e *Explorer) View() string {
	sty := newStyles(e.theme)
	st := e.binding.State()

	header := sty.title.Render(strings.ToUpper(e.binding.Scene().Name())) + "  " +
		sty.muted.Render(e.binding.Scene().Description())
	main := Frame(st, FrameOptions{
		Theme: e.theme, Camera: e.camera,
		Cols: e.cols, Rows: e.rows,
		Base: e.base, Accent: e.accent,
	})
	view := lipgloss.JoinVertical(lipgloss.Left, header, "",
		lipgloss.JoinHorizontal(lipgloss.Top, main, sty.side.Render(e.sidePanel(sty))))
	if e.showHelp {
		return lipgloss.JoinVertical(lipgloss.Left, sty.help.Render(helpText), view)
	}
	return view
}

func (e *Explorer) sidePanel(sty styles) string {
	var b strings.Builder
	b.WriteString(sty.title.Render("CONTROLS") + "\n\n")
	dials := e.binding.Dials()
	if len(dials) == 0 {
		b.WriteString(sty.muted.Render("(static scene)") + "\n")
	}
	labels := e.binding.Labels()
	for i, d := range dials {
		line := fmt.Sprintf("%-18s %s", labels[i], dialBar(d.Fraction(), 10))
		if i == e.focus {
			b.WriteString(sty.focus.Render("▸ "+line) + "\n")
		} else {
			b.WriteString("  " + sty.value.Render(line) + "\n")
		}
	}
	if st := e.binding.State(); st != nil && len(st.Readout) > 0 {
		b.WriteString("\n")
		for _, r := range st.Readout {
			b.WriteString(sty.muted.Render(r) + "\n")
		}
	}
	if e.err != nil {
		b.WriteString("\n" + sty.err.Render(e.err.Error()) + "\n")
	}
	b.WriteString("\n" + sty.muted.Render("←→ adjust  tab dial  r reset\nt theme  ? help  q quit"))
	return b.String()
}

func dialBar(frac float64, width int) string {
	n := int(frac*float64(width) + 0.5)
	n = max(0, min(n, width))
	return "[" + strings.Repeat("=", n) + strings.Repeat("-", width-n) + "]"
}

const helpText = `KEYBOARD SHORTCUTS

←/h →/l      step the focused dial
H/L          step by ten
tab          next dial
r / R        reset dial / reset all
x X y Y      orbit camera
+ -          zoom
t            cycle theme
?            toggle help
esc          back
q            quit`

// Run opens the explorer for a single binding.
func Run(b *control.Binding, opts Options) error {
	_, err := tea.NewProgram(NewExplorer(b, opts), tea.WithAltScreen()).Run()
	return err
}
