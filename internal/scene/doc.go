// Package scene turns parameter values into render states.
//
// A [Scene] is one nonlinear-optics experiment: given the current physical
// parameter values it resamples its grids, re-evaluates the optics formulas
// and returns a [RenderState] holding everything a front end needs to draw
// (series, meshes, wireframe segments, title and labels). Render is pure:
// calling it twice with the same [Params] yields identical states.
//
// Scenes with no dials ([Scene.Dials] returns nil) are static and render
// once.
//
//	reg := scene.NewRegistry(cfg, logger)
//	s, _ := reg.Get("correlation")
//	state, _ := s.Render(scene.Params{"tau": 1.7})
package scene
