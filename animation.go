package quadgfx

import "time"

// LerpFunc linearly interpolates between two values. t=0 returns a,
// t=1 returns b.
type LerpFunc[T any] func(a, b T, t float32) T

// Animated smoothly moves a value toward a target over a fixed duration.
// Each Update advances the value by the fraction of the remaining time that
// has elapsed, so the trajectory converges on the target regardless of how
// irregular the update intervals are.
//
// Animated is not safe for concurrent use; it is meant to be owned by the
// frame loop that updates it.
type Animated[T any] struct {
	current T
	target  T
	lerp    LerpFunc[T]

	duration  time.Duration
	remaining time.Duration
}

// NewAnimated creates an animated value that starts settled at initial.
func NewAnimated[T any](initial T, duration time.Duration, lerp LerpFunc[T]) *Animated[T] {
	return &Animated[T]{
		current:  initial,
		target:   initial,
		lerp:     lerp,
		duration: duration,
	}
}

// NewAnimatedFloat creates an animated float32 with the standard scalar lerp.
func NewAnimatedFloat(initial float32, duration time.Duration) *Animated[float32] {
	return NewAnimated(initial, duration, func(a, b, t float32) float32 {
		return a + (b-a)*t
	})
}

// NewAnimatedVec2 creates an animated Vec2 using Vec2.Lerp.
func NewAnimatedVec2(initial Vec2, duration time.Duration) *Animated[Vec2] {
	return NewAnimated(initial, duration, Vec2.Lerp)
}

// Current returns the current value.
func (a *Animated[T]) Current() T {
	return a.current
}

// Target returns the value the animation is moving toward.
func (a *Animated[T]) Target() T {
	return a.target
}

// Set moves toward target over the configured duration, starting from the
// current value. Setting the same target restarts the clock but does not
// change the trajectory's endpoint.
func (a *Animated[T]) Set(target T) {
	a.target = target
	a.remaining = a.duration
}

// Jump snaps the value to target immediately, cancelling any animation in
// progress.
func (a *Animated[T]) Jump(target T) {
	a.current = target
	a.target = target
	a.remaining = 0
}

// Update advances the animation by elapsed time and reports whether the
// value changed. When elapsed meets or exceeds the remaining time the value
// snaps to the target.
func (a *Animated[T]) Update(elapsed time.Duration) bool {
	if a.remaining <= 0 {
		return false
	}
	if elapsed >= a.remaining {
		a.current = a.target
		a.remaining = 0
		return true
	}
	t := float32(elapsed) / float32(a.remaining)
	a.current = a.lerp(a.current, a.target, t)
	a.remaining -= elapsed
	return true
}

// Done reports whether the value has settled on its target.
func (a *Animated[T]) Done() bool {
	return a.remaining <= 0
}
