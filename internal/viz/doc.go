// Package viz draws a running grab scenario in the terminal.
//
// [Model] is a Bubble Tea program that steps a [sim.Session] on a timer and
// renders a front view of the tracked object and the hands on a Braille
// [Canvas], next to the solver's blend weights and a plot of the object's
// rotation away from its starting orientation.
//
// # Key Bindings
//
//	Space - Pause/Resume
//	.     - Single step while paused
//	R     - Restart the scenario
//	Q     - Quit
package viz
