// Package control binds bounded integer dials to scene parameters.
//
// A [Dial] holds an integer in [Min, Max] and maps it linearly to a
// physical value. A [Binding] owns the dials of one scene and implements
// [ParameterListener]: every change updates the dial, its label text and
// re-renders the scene before returning.
//
// # Usage
//
//	b, _ := control.NewBinding(s, logger)
//	state, _ := b.OnParameterChanged("tau", 17) // tau = 1.7
//	state, _ = b.Reset("tau")                   // tau = 0
//
// Bindings are driven from a single event loop and are not safe for
// concurrent use.
package control
