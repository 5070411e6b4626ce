// Package viz draws scene render states in the terminal.
//
//   - [Frame]: one render state as text (chart, wireframe, surface or heat maps)
//   - [Explorer]: Bubble Tea model driving a control binding
//   - [Menu]: scene picker that opens an explorer
//   - [Canvas]: braille dot canvas used for wireframes
//
// # Key Bindings
//
//	←/→ h/l  - Step the focused dial
//	H/L      - Step by ten
//	Tab      - Next dial
//	r        - Reset the focused dial
//	R        - Reset all dials
//	t        - Cycle color themes
//	x/y      - Orbit the 3D camera, +/- zoom
//	?        - Show help overlay
package viz
