package export

import (
	"context"
	"math"
	"time"
)

// DefaultFPS is the frame rate for the live draw animation and for
// animated exports.
const DefaultFPS = 30

// EaseInOutCubic maps linear time in [0, 1] to eased animation progress.
// Values outside the range clamp to the endpoints.
func EaseInOutCubic(t float64) float64 {
	if t <= 0 {
		return 0
	}
	if t >= 1 {
		return 1
	}
	if t < 0.5 {
		return 4 * t * t * t
	}
	f := -2*t + 2
	return 1 - f*f*f/2
}

// Timeline returns the eased per-frame progress values for an animation
// of the given duration in seconds sampled at fps. The last value is
// always exactly 1.
func Timeline(duration float64, fps int) []float64 {
	if fps <= 0 {
		fps = DefaultFPS
	}
	frames := int(math.Ceil(duration * float64(fps)))
	if frames < 1 {
		frames = 1
	}
	out := make([]float64, frames)
	for i := range out {
		out[i] = EaseInOutCubic(float64(i+1) / float64(frames))
	}
	return out
}

// Animator drives the connection-draw animation in real time, calling
// OnFrame with eased progress until it reaches 1.
type Animator struct {
	Duration float64 // seconds
	FPS      int
	Clock    Clock
	OnFrame  func(progress float64)
}

// Run plays the animation to completion, pacing frames on the clock.
// It returns early with the context error if ctx is cancelled.
func (a *Animator) Run(ctx context.Context) error {
	fps := a.FPS
	if fps <= 0 {
		fps = DefaultFPS
	}
	clock := a.Clock
	if clock == nil {
		clock = RealClock()
	}
	if a.Duration <= 0 {
		a.OnFrame(1)
		return nil
	}

	frame := time.Second / time.Duration(fps)
	start := clock.Now()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		t := clock.Now().Sub(start).Seconds() / a.Duration
		a.OnFrame(EaseInOutCubic(t))
		if t >= 1 {
			return nil
		}
		clock.Sleep(frame)
	}
}
