// Package viz provides the terminal view of a Kerr black hole.
//
// The package implements an interactive TUI using the Bubble Tea framework:
//
//   - [App]: sliders for mass, spin, accretion and animation speed with a
//     live observables readout
//   - [Canvas]: Braille-based pixel canvas for the disk and horizon
//   - [DrawScene]: renders a [scene.State] onto a canvas
//
// # Key Bindings
//
//	Tab   - Select next slider
//	←/→   - Adjust selected slider
//	Space - Pause/Resume disk rotation
//	I     - Cycle inspector topics (Esc closes)
//	T     - Cycle color themes
//	R     - Reset to initial parameters
package viz
