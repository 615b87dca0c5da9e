package export

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEaseInOutCubic(t *testing.T) {
	assert.Equal(t, 0.0, EaseInOutCubic(-1))
	assert.Equal(t, 0.0, EaseInOutCubic(0))
	assert.Equal(t, 0.5, EaseInOutCubic(0.5))
	assert.Equal(t, 1.0, EaseInOutCubic(1))
	assert.Equal(t, 1.0, EaseInOutCubic(3))

	prev := -1.0
	for i := 0; i <= 100; i++ {
		v := EaseInOutCubic(float64(i) / 100)
		assert.GreaterOrEqual(t, v, prev, "ease must be monotonic")
		prev = v
	}
}

func TestTimeline(t *testing.T) {
	frames := Timeline(2.0, 30)
	require.Len(t, frames, 60)
	assert.Equal(t, 1.0, frames[len(frames)-1])
	for i := 1; i < len(frames); i++ {
		assert.GreaterOrEqual(t, frames[i], frames[i-1])
	}

	// A degenerate duration still yields one complete frame.
	frames = Timeline(0, 30)
	require.Len(t, frames, 1)
	assert.Equal(t, 1.0, frames[0])
}

func TestAnimatorPacesFramesOnClock(t *testing.T) {
	clock := NewVirtualClock()
	var frames []float64
	anim := &Animator{
		Duration: 1.0,
		FPS:      4,
		Clock:    clock,
		OnFrame:  func(p float64) { frames = append(frames, p) },
	}

	require.NoError(t, anim.Run(context.Background()))

	// Samples at t = 0, 0.25, 0.5, 0.75, 1.
	require.Len(t, frames, 5)
	assert.Equal(t, 0.0, frames[0])
	assert.Equal(t, 0.5, frames[2])
	assert.Equal(t, 1.0, frames[4])
	assert.Equal(t, 4, clock.Sleeps())
}

func TestAnimatorZeroDuration(t *testing.T) {
	var frames []float64
	anim := &Animator{
		Duration: 0,
		Clock:    NewVirtualClock(),
		OnFrame:  func(p float64) { frames = append(frames, p) },
	}
	require.NoError(t, anim.Run(context.Background()))
	assert.Equal(t, []float64{1.0}, frames)
}

func TestAnimatorCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	called := 0
	anim := &Animator{
		Duration: 10,
		Clock:    NewVirtualClock(),
		OnFrame:  func(float64) { called++ },
	}
	assert.ErrorIs(t, anim.Run(ctx), context.Canceled)
	assert.Zero(t, called)
}
