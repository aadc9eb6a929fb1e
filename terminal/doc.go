// Package terminal draws the scene onto a tcell screen.
//
// Features:
//   - Virtual pixel canvas mapped onto character cells
//   - Cell buffer with blend modes, flushed once per frame
//   - Radial background glow, slope-aware line runes, sized dot runes
//   - Caller-supplied overlay drawn after the scene (HUD)
//
// Rendering is resolution independent: the scene works in virtual pixels
// and each cell covers CellWidth x CellHeight of them.
package terminal
