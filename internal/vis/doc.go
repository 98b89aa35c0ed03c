// Package vis is a small harness for animating and recording simulations.
//
//   - [View]: owns a surface, frame pacing, the frame counter and capture
//   - [Controller]: owns animation state, the object lists and the loop
//   - [Renderable] / [Clickable]: what simulation objects implement
//
// # Example
//
//	view := vis.NewView(window.New(), vis.WithSize(800, 600))
//	if err := view.Setup("day 14"); err != nil {
//	    log.Fatal(err)
//	}
//	ctrl := vis.NewController(vis.Args{Record: rec})
//	ctrl.Add(grid)
//	ctrl.AddClickable(button)
//	err := ctrl.Run(ctx, view)
//
// # Key Bindings
//
//	Space  - Pause/Resume animation
//	Escape - Quit
//
// # Recording
//
// With recording armed every animated frame is written to tmp/frame_NNNN.jpg
// next to the output path. When the loop ends the frames are assembled with
// ffmpeg and deleted. Encoder failures are returned from Run.
//
// # Thread Safety
//
// View and Controller are NOT thread-safe. Everything runs on the goroutine
// that called Run.
package vis
