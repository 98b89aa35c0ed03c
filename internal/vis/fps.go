package vis

import "time"

const DefaultFPSInterval = 3 * time.Second

// fpsMeter averages loop iterations over a fixed wall-clock window.
type fpsMeter struct {
	interval time.Duration
	start    time.Time
	frames   int
	samples  []float64
}

func (m *fpsMeter) reset(now time.Time) {
	m.start = now
	m.frames = 0
}

// frame counts one iteration. Once the window has elapsed it returns the
// average rate and starts a new window.
func (m *fpsMeter) frame(now time.Time) (float64, bool) {
	m.frames++
	elapsed := now.Sub(m.start)
	if elapsed < m.interval {
		return 0, false
	}
	fps := float64(m.frames) / elapsed.Seconds()
	m.samples = append(m.samples, fps)
	m.reset(now)
	return fps, true
}
