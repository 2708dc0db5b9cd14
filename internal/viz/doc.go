// Package viz is the terminal front end, built on Bubble Tea.
//
//   - [Player]: step-by-step playback of one trace with a stats panel,
//     a sortedness timeline and a swap chart
//   - [RaceView]: several algorithms racing over the same input
//   - [Canvas]: Braille canvas used for the "dots" and "line" styles
//
// # Key Bindings
//
//	Space   - Play/Pause
//	←/→     - Step back/forward
//	Home/End - First/last step
//	+/-     - Change speed
//	Tab     - Next algorithm
//	N       - New random array
//	R       - Reset
//	S       - Cycle bars/dots/line
//	T       - Cycle color themes
//	?       - Full help
package viz
