package orion

import (
	"time"
)

// number of frames between two stats reports
const statsWindow = 60

// FrameTimes measures the time between frames over a window of the
// last statsWindow frames.
type FrameTimes struct {
	FrameCount uint64

	// Delta time to previous frame
	Delta time.Duration

	// Average and maximum frame time within the current window
	AverageDuration time.Duration
	MaxDuration     time.Duration

	deltas   [statsWindow]time.Duration
	lastTime time.Time
}

func (t *FrameTimes) FPS() float64 {
	if t.AverageDuration <= 0 {
		return 0
	}

	return 1.0 / t.AverageDuration.Seconds()
}

// Tick records a new frame and returns true every statsWindow frames.
func (t *FrameTimes) Tick() bool {
	return t.tickAt(time.Now())
}

func (t *FrameTimes) tickAt(now time.Time) bool {
	if t.FrameCount > 0 {
		t.Delta = now.Sub(t.lastTime)
	}

	t.deltas[t.FrameCount%statsWindow] = t.Delta
	t.lastTime = now
	t.FrameCount++

	// number of deltas measured so far, the very first frame has none
	samples := min(t.FrameCount-1, statsWindow)
	if samples == 0 {
		return false
	}

	var total, maxDelta time.Duration
	for idx := range samples {
		slot := (t.FrameCount - 1 - idx) % statsWindow
		total += t.deltas[slot]
		maxDelta = max(maxDelta, t.deltas[slot])
	}

	t.AverageDuration = total / time.Duration(samples)
	t.MaxDuration = maxDelta

	return t.FrameCount%statsWindow == 0
}
