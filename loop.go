package sparktrail

import "regexp"

// Host is the environment the engine attaches to: an input layer and a
// display-synchronized frame clock. Callbacks run to completion on a single
// goroutine.
type Host interface {
	// TouchPrimary reports whether the host is a touch-first device. The
	// engine checks it once, at Mount.
	TouchPrimary() bool
	OnPointerMove(fn func(PointerEvent)) CallbackHandle
	OnPointerOver(fn func(PointerEvent)) CallbackHandle
	OnPointerDown(fn func(PointerEvent)) CallbackHandle
	OnPointerUp(fn func(PointerEvent)) CallbackHandle
	// RequestFrame registers fn to run once per frame until its handle is
	// removed.
	RequestFrame(fn func()) CallbackHandle
}

var touchUserAgent = regexp.MustCompile(`(?i)Android|webOS|iPhone|iPad|iPod|BlackBerry`)

// IsTouchUserAgent reports whether ua names a touch-primary device class.
func IsTouchUserAgent(ua string) bool {
	return touchUserAgent.MatchString(ua)
}

// --- Handler registry ---

type pointerHandler struct {
	id uint32
	fn func(PointerEvent)
}

type frameHandler struct {
	id uint32
	fn func()
}

type handlerRegistry struct {
	pointerMove []pointerHandler
	pointerOver []pointerHandler
	pointerDown []pointerHandler
	pointerUp   []pointerHandler
	frame       []frameHandler
	nextID      uint32
}

// handleKind selects the registry slice a CallbackHandle belongs to.
type handleKind uint8

const (
	handlePointerMove handleKind = iota
	handlePointerOver
	handlePointerDown
	handlePointerUp
	handleFrame
)

// CallbackHandle allows removing a registered callback. The zero value is
// valid and Remove on it does nothing.
type CallbackHandle struct {
	id   uint32
	reg  *handlerRegistry
	kind handleKind
}

// Remove unregisters this callback so it no longer fires. Removing twice is
// harmless.
func (h CallbackHandle) Remove() {
	if h.reg == nil {
		return
	}
	switch h.kind {
	case handlePointerMove:
		h.reg.pointerMove = removePointerHandler(h.reg.pointerMove, h.id)
	case handlePointerOver:
		h.reg.pointerOver = removePointerHandler(h.reg.pointerOver, h.id)
	case handlePointerDown:
		h.reg.pointerDown = removePointerHandler(h.reg.pointerDown, h.id)
	case handlePointerUp:
		h.reg.pointerUp = removePointerHandler(h.reg.pointerUp, h.id)
	case handleFrame:
		h.reg.frame = removeFrameHandler(h.reg.frame, h.id)
	}
}

func removePointerHandler(s []pointerHandler, id uint32) []pointerHandler {
	for i := range s {
		if s[i].id == id {
			copy(s[i:], s[i+1:])
			s[len(s)-1] = pointerHandler{}
			return s[:len(s)-1]
		}
	}
	return s
}

func removeFrameHandler(s []frameHandler, id uint32) []frameHandler {
	for i := range s {
		if s[i].id == id {
			copy(s[i:], s[i+1:])
			s[len(s)-1] = frameHandler{}
			return s[:len(s)-1]
		}
	}
	return s
}

func (r *handlerRegistry) addPointer(kind handleKind, fn func(PointerEvent)) CallbackHandle {
	r.nextID++
	h := pointerHandler{id: r.nextID, fn: fn}
	switch kind {
	case handlePointerMove:
		r.pointerMove = append(r.pointerMove, h)
	case handlePointerOver:
		r.pointerOver = append(r.pointerOver, h)
	case handlePointerDown:
		r.pointerDown = append(r.pointerDown, h)
	case handlePointerUp:
		r.pointerUp = append(r.pointerUp, h)
	}
	return CallbackHandle{id: h.id, reg: r, kind: kind}
}

// --- Loop ---

// Loop is a single-threaded Host. A driver (an ebiten game, a terminal
// event loop, a test) feeds it pointer events with the Dispatch methods and
// calls Tick once per display frame.
type Loop struct {
	handlers    handlerRegistry
	touch       bool
	injectQueue []PointerEvent
	frames      uint64
}

// NewLoop creates a Loop. touchPrimary is what TouchPrimary reports.
func NewLoop(touchPrimary bool) *Loop {
	return &Loop{touch: touchPrimary}
}

// TouchPrimary implements Host.
func (l *Loop) TouchPrimary() bool { return l.touch }

// OnPointerMove registers a callback for raw pointer moves.
func (l *Loop) OnPointerMove(fn func(PointerEvent)) CallbackHandle {
	return l.handlers.addPointer(handlePointerMove, fn)
}

// OnPointerOver registers a callback fired when the pointer enters a target.
func (l *Loop) OnPointerOver(fn func(PointerEvent)) CallbackHandle {
	return l.handlers.addPointer(handlePointerOver, fn)
}

// OnPointerDown registers a callback for primary button presses.
func (l *Loop) OnPointerDown(fn func(PointerEvent)) CallbackHandle {
	return l.handlers.addPointer(handlePointerDown, fn)
}

// OnPointerUp registers a callback for primary button releases.
func (l *Loop) OnPointerUp(fn func(PointerEvent)) CallbackHandle {
	return l.handlers.addPointer(handlePointerUp, fn)
}

// RequestFrame registers a recurring per-frame callback.
func (l *Loop) RequestFrame(fn func()) CallbackHandle {
	l.handlers.nextID++
	id := l.handlers.nextID
	l.handlers.frame = append(l.handlers.frame, frameHandler{id: id, fn: fn})
	return CallbackHandle{id: id, reg: &l.handlers, kind: handleFrame}
}

// ListenerCount returns the number of registered pointer callbacks.
func (l *Loop) ListenerCount() int {
	r := &l.handlers
	return len(r.pointerMove) + len(r.pointerOver) + len(r.pointerDown) + len(r.pointerUp)
}

// FrameCallbackCount returns the number of recurring frame callbacks.
func (l *Loop) FrameCallbackCount() int {
	return len(l.handlers.frame)
}

// Frames returns how many times Tick has run.
func (l *Loop) Frames() uint64 { return l.frames }

// Dispatch routes ev to the callbacks registered for ev.Type.
func (l *Loop) Dispatch(ev PointerEvent) {
	var hs []pointerHandler
	switch ev.Type {
	case EventPointerMove:
		hs = l.handlers.pointerMove
	case EventPointerOver:
		hs = l.handlers.pointerOver
	case EventPointerDown:
		hs = l.handlers.pointerDown
	case EventPointerUp:
		hs = l.handlers.pointerUp
	}
	// A callback may remove handlers, which zeroes the vacated tail slot.
	for i := 0; i < len(hs); i++ {
		if fn := hs[i].fn; fn != nil {
			fn(ev)
		}
	}
}

// DispatchMove delivers a raw pointer move.
func (l *Loop) DispatchMove(x, y float64) {
	l.Dispatch(PointerEvent{Type: EventPointerMove, X: x, Y: y})
}

// DispatchOver delivers a pointer-over for target.
func (l *Loop) DispatchOver(x, y float64, target Target) {
	l.Dispatch(PointerEvent{Type: EventPointerOver, X: x, Y: y, Target: target})
}

// DispatchDown delivers a primary button press.
func (l *Loop) DispatchDown(x, y float64) {
	l.Dispatch(PointerEvent{Type: EventPointerDown, X: x, Y: y})
}

// DispatchUp delivers a primary button release.
func (l *Loop) DispatchUp(x, y float64) {
	l.Dispatch(PointerEvent{Type: EventPointerUp, X: x, Y: y})
}

// Tick advances one frame: at most one injected event is delivered, then
// every frame callback runs exactly once.
func (l *Loop) Tick() {
	l.processInjectedInput()
	l.frames++
	frame := l.handlers.frame
	for i := 0; i < len(frame); i++ {
		if fn := frame[i].fn; fn != nil {
			fn()
		}
	}
}
