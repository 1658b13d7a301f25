package sparktrail

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// scaleTween eases the cursor glyph's scale toward its current target.
// Retargeting mid-flight starts a new tween from the current value.
type scaleTween struct {
	tween    *gween.Tween
	value    float64
	target   float64
	duration float32
	fn       ease.TweenFunc
}

func newScaleTween(duration float32) scaleTween {
	return scaleTween{
		value:    1,
		target:   1,
		duration: duration,
		fn:       ease.OutCubic,
	}
}

// retarget starts easing toward to. No-op if to is already the target.
func (s *scaleTween) retarget(to float64) {
	if to == s.target {
		return
	}
	s.target = to
	if s.duration <= 0 {
		s.value = to
		s.tween = nil
		return
	}
	s.tween = gween.New(float32(s.value), float32(to), s.duration, s.fn)
}

// update advances the tween by dt seconds.
func (s *scaleTween) update(dt float32) {
	if s.tween == nil {
		return
	}
	val, finished := s.tween.Update(dt)
	s.value = float64(val)
	if finished {
		s.value = s.target
		s.tween = nil
	}
}
