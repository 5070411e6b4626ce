package control

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/san-kum/nlolab/internal/scene"
)

// ParameterListener is what a front end drives: one call per control
// change, returning the freshly rendered state.
type ParameterListener interface {
	OnParameterChanged(name string, value int) (*scene.RenderState, error)
}

type Binding struct {
	scene  scene.Scene
	dials  []*Dial
	byName map[string]*Dial
	state  *scene.RenderState
	logger *log.Logger
}

var _ ParameterListener = (*Binding)(nil)

// NewBinding creates the dials declared by s at their baselines and
// performs the initial render.
func NewBinding(s scene.Scene, logger *log.Logger) (*Binding, error) {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	b := &Binding{
		scene:  s,
		byName: make(map[string]*Dial),
		logger: logger,
	}
	for _, spec := range s.Dials() {
		d, err := NewDial(spec)
		if err != nil {
			return nil, err
		}
		b.dials = append(b.dials, d)
		b.byName[d.Name] = d
	}
	if _, err := b.Render(); err != nil {
		return nil, err
	}
	return b, nil
}

func (b *Binding) Scene() scene.Scene { return b.scene }

func (b *Binding) Dials() []*Dial { return b.dials }

func (b *Binding) Dial(name string) (*Dial, error) {
	d, ok := b.byName[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownDial, name)
	}
	return d, nil
}

// State returns the most recent successful render.
func (b *Binding) State() *scene.RenderState { return b.state }

func (b *Binding) Params() scene.Params {
	p := make(scene.Params, len(b.dials))
	for _, d := range b.dials {
		p[d.Name] = d.Physical()
	}
	return p
}

// Render re-renders the scene with the current dial values. On error the
// previous state is kept.
func (b *Binding) Render() (*scene.RenderState, error) {
	p := b.Params()
	st, err := b.scene.Render(p)
	if err != nil {
		b.logger.Error("render failed", "scene", b.scene.Name(), "err", err)
		return nil, err
	}
	b.logger.Debug("rendered", "scene", b.scene.Name(), "params", p, "title", st.Title)
	b.state = st
	return st, nil
}

func (b *Binding) OnParameterChanged(name string, value int) (*scene.RenderState, error) {
	d, err := b.Dial(name)
	if err != nil {
		return nil, err
	}
	d.Set(value)
	return b.Render()
}

// Step moves a dial by delta control units.
func (b *Binding) Step(name string, delta int) (*scene.RenderState, error) {
	d, err := b.Dial(name)
	if err != nil {
		return nil, err
	}
	return b.OnParameterChanged(name, d.Value()+delta)
}

// Reset returns one dial to its baseline and re-renders.
func (b *Binding) Reset(name string) (*scene.RenderState, error) {
	d, err := b.Dial(name)
	if err != nil {
		return nil, err
	}
	d.Reset()
	return b.Render()
}

// ResetAll returns every dial to its baseline and re-renders once.
func (b *Binding) ResetAll() (*scene.RenderState, error) {
	for _, d := range b.dials {
		d.Reset()
	}
	return b.Render()
}

// Labels returns the dial label texts in declaration order.
func (b *Binding) Labels() []string {
	out := make([]string, len(b.dials))
	for i, d := range b.dials {
		out[i] = d.Text()
	}
	return out
}
