package sparktrail

// InjectMove queues a pointer move to (x, y). Injected events are consumed
// one per Tick, before frame callbacks run.
func (l *Loop) InjectMove(x, y float64) {
	l.injectQueue = append(l.injectQueue, PointerEvent{Type: EventPointerMove, X: x, Y: y})
}

// InjectOver queues a pointer-over for target at (x, y).
func (l *Loop) InjectOver(x, y float64, target Target) {
	l.injectQueue = append(l.injectQueue, PointerEvent{Type: EventPointerOver, X: x, Y: y, Target: target})
}

// InjectPress queues a primary button press at (x, y).
func (l *Loop) InjectPress(x, y float64) {
	l.injectQueue = append(l.injectQueue, PointerEvent{Type: EventPointerDown, X: x, Y: y})
}

// InjectRelease queues a primary button release at (x, y).
func (l *Loop) InjectRelease(x, y float64) {
	l.injectQueue = append(l.injectQueue, PointerEvent{Type: EventPointerUp, X: x, Y: y})
}

// InjectClick queues a press and a release at (x, y).
func (l *Loop) InjectClick(x, y float64) {
	l.InjectPress(x, y)
	l.InjectRelease(x, y)
}

// InjectDrag queues a pressed sweep from (fromX, fromY) to (toX, toY) with
// frames-2 evenly spaced moves in between. frames below 2 is treated as 2.
func (l *Loop) InjectDrag(fromX, fromY, toX, toY float64, frames int) {
	if frames < 2 {
		frames = 2
	}
	l.InjectMove(fromX, fromY)
	l.InjectPress(fromX, fromY)
	steps := frames - 2
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps+1)
		l.InjectMove(fromX+(toX-fromX)*t, fromY+(toY-fromY)*t)
	}
	l.InjectMove(toX, toY)
	l.InjectRelease(toX, toY)
}

// Pending returns the number of queued injected events.
func (l *Loop) Pending() int {
	return len(l.injectQueue)
}

// processInjectedInput dispatches the oldest queued event, if any.
func (l *Loop) processInjectedInput() bool {
	if len(l.injectQueue) == 0 {
		return false
	}
	ev := l.injectQueue[0]
	copy(l.injectQueue, l.injectQueue[1:])
	l.injectQueue[len(l.injectQueue)-1] = PointerEvent{}
	l.injectQueue = l.injectQueue[:len(l.injectQueue)-1]

	l.Dispatch(ev)
	return true
}
