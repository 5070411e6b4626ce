package scene

import (
	"fmt"
	"io"
	"sort"

	"github.com/charmbracelet/log"

	"github.com/san-kum/nlolab/internal/config"
	"github.com/san-kum/nlolab/internal/optics"
)

type Registry struct {
	cfg    *config.Config
	logger *log.Logger
	scenes map[string]func(optics.Estimator) (Scene, error)
}

func NewRegistry(cfg *config.Config, logger *log.Logger) *Registry {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	r := &Registry{
		cfg:    cfg,
		logger: logger,
		scenes: make(map[string]func(optics.Estimator) (Scene, error)),
	}

	r.scenes["correlation"] = func(est optics.Estimator) (Scene, error) { return NewCorrelation(cfg, est) }
	r.scenes["gaussian"] = func(est optics.Estimator) (Scene, error) { return NewGaussian(cfg, est) }
	r.scenes["ellipsoid"] = func(optics.Estimator) (Scene, error) { return NewEllipsoid(cfg) }
	r.scenes["intensity"] = func(est optics.Estimator) (Scene, error) { return NewIntensity(cfg, est) }
	r.scenes["shg"] = func(optics.Estimator) (Scene, error) { return NewSHG(cfg) }
	r.scenes["phase"] = func(optics.Estimator) (Scene, error) { return NewPhase(cfg), nil }

	return r
}

func (r *Registry) Get(name string) (Scene, error) {
	fn, ok := r.scenes[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownScene, name)
	}
	est, err := r.cfg.Estimator()
	if err != nil {
		return nil, err
	}
	s, err := fn(est)
	if err != nil {
		return nil, fmt.Errorf("scene %s: %w", name, err)
	}
	r.logger.Debug("scene ready", "scene", name, "method", est.Name(), "dials", len(s.Dials()))
	return s, nil
}

// List returns scene names sorted alphabetically.
func (r *Registry) List() []string {
	names := make([]string, 0, len(r.scenes))
	for name := range r.scenes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Interactive returns the names of scenes that expose dials.
func (r *Registry) Interactive() []string {
	var out []string
	for _, name := range r.List() {
		s, err := r.Get(name)
		if err != nil {
			r.logger.Warn("skipping scene", "scene", name, "err", err)
			continue
		}
		if len(s.Dials()) > 0 {
			out = append(out, name)
		}
	}
	return out
}
