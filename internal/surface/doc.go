// Package surface defines the graphics context a View renders into.
//
// A [Surface] bundles what used to be process-wide state: the window or
// raster, the loaded font, the input queue and frame readback. Each View owns
// exactly one, so several views can coexist in one process (tests do this).
//
// Backends:
//
//   - [Offscreen]: in-memory gg raster with scripted input
//   - window: raylib desktop window (package surface/window)
//   - term: braille terminal preview via Bubble Tea (package surface/term)
//
// # Coordinates
//
// The origin is the top-left corner, x grows right and y grows down. Text is
// anchored at the top-left corner of its box.
package surface
