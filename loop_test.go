package sparktrail

import "testing"

func TestCallbackHandle_Remove(t *testing.T) {
	l := NewLoop(false)
	count := 0
	h := l.OnPointerDown(func(PointerEvent) { count++ })

	l.DispatchDown(0, 0)
	if count != 1 {
		t.Fatalf("count = %d, want 1", count)
	}

	h.Remove()
	l.DispatchDown(0, 0)
	if count != 1 {
		t.Errorf("removed callback fired, count = %d", count)
	}
	if l.ListenerCount() != 0 {
		t.Errorf("ListenerCount = %d, want 0", l.ListenerCount())
	}
}

func TestCallbackHandle_RemoveTwice(t *testing.T) {
	l := NewLoop(false)
	a := l.OnPointerMove(func(PointerEvent) {})
	l.OnPointerMove(func(PointerEvent) {})

	a.Remove()
	a.Remove()
	if l.ListenerCount() != 1 {
		t.Errorf("ListenerCount = %d, want 1", l.ListenerCount())
	}
}

func TestCallbackHandle_ZeroValue(t *testing.T) {
	var h CallbackHandle
	h.Remove()
}

func TestDispatchRouting(t *testing.T) {
	l := NewLoop(false)
	var got []EventType
	record := func(ev PointerEvent) { got = append(got, ev.Type) }
	l.OnPointerMove(record)
	l.OnPointerOver(record)
	l.OnPointerDown(record)
	l.OnPointerUp(record)

	target := &Region{Clickable: true}
	l.DispatchMove(1, 2)
	l.DispatchOver(1, 2, target)
	l.DispatchDown(1, 2)
	l.DispatchUp(1, 2)

	want := []EventType{EventPointerMove, EventPointerOver, EventPointerDown, EventPointerUp}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("event %d = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestDispatchCarriesCoordinatesAndTarget(t *testing.T) {
	l := NewLoop(false)
	target := &Region{Name: "link", Clickable: true}
	var got PointerEvent
	l.OnPointerOver(func(ev PointerEvent) { got = ev })

	l.DispatchOver(12.5, 40, target)
	if got.X != 12.5 || got.Y != 40 {
		t.Errorf("pos = (%v, %v), want (12.5, 40)", got.X, got.Y)
	}
	if got.Target != target {
		t.Errorf("target = %v, want %v", got.Target, target)
	}
}

func TestDispatchOrder(t *testing.T) {
	l := NewLoop(false)
	var order []int
	l.OnPointerDown(func(PointerEvent) { order = append(order, 1) })
	l.OnPointerDown(func(PointerEvent) { order = append(order, 2) })
	l.OnPointerDown(func(PointerEvent) { order = append(order, 3) })

	l.DispatchDown(0, 0)
	if len(order) != 3 || order[0] != 1 || order[1] != 2 || order[2] != 3 {
		t.Errorf("order = %v, want [1 2 3]", order)
	}
}

func TestDispatch_RemoveDuringCallback(t *testing.T) {
	l := NewLoop(false)
	count := 0
	var h CallbackHandle
	h = l.OnPointerMove(func(PointerEvent) {
		count++
		h.Remove()
	})
	l.OnPointerMove(func(PointerEvent) { count++ })

	l.DispatchMove(0, 0)
	l.DispatchMove(0, 0)
	if count < 2 || count > 3 {
		t.Errorf("count = %d, want 2 or 3", count)
	}
	if l.ListenerCount() != 1 {
		t.Errorf("ListenerCount = %d, want 1", l.ListenerCount())
	}
}

func TestTickRunsFrameCallbacksOnce(t *testing.T) {
	l := NewLoop(false)
	a, b := 0, 0
	l.RequestFrame(func() { a++ })
	hb := l.RequestFrame(func() { b++ })

	l.Tick()
	if a != 1 || b != 1 {
		t.Fatalf("after one tick a=%d b=%d, want 1 1", a, b)
	}

	hb.Remove()
	l.Tick()
	l.Tick()
	if a != 3 || b != 1 {
		t.Errorf("a=%d b=%d, want 3 1", a, b)
	}
	if l.Frames() != 3 {
		t.Errorf("Frames = %d, want 3", l.Frames())
	}
	if l.FrameCallbackCount() != 1 {
		t.Errorf("FrameCallbackCount = %d, want 1", l.FrameCallbackCount())
	}
}

func TestTickWithoutCallbacks(t *testing.T) {
	l := NewLoop(false)
	l.Tick()
	if l.Frames() != 1 {
		t.Errorf("Frames = %d, want 1", l.Frames())
	}
}

func TestTouchPrimary(t *testing.T) {
	if NewLoop(true).TouchPrimary() != true {
		t.Error("TouchPrimary should report true")
	}
	if NewLoop(false).TouchPrimary() != false {
		t.Error("TouchPrimary should report false")
	}
}

func TestIsTouchUserAgent(t *testing.T) {
	tests := []struct {
		ua   string
		want bool
	}{
		{"Mozilla/5.0 (iPhone; CPU iPhone OS 17_0 like Mac OS X)", true},
		{"Mozilla/5.0 (iPad; CPU OS 16_6 like Mac OS X)", true},
		{"Mozilla/5.0 (Linux; Android 14; Pixel 8)", true},
		{"Mozilla/5.0 (BlackBerry; U; BlackBerry 9900)", true},
		{"Mozilla/5.0 (webOS/1.4.0; U; en-US)", true},
		{"Mozilla/5.0 (iPod touch; CPU iPhone OS 12_0)", true},
		{"mozilla/5.0 (linux; android 10)", true},
		{"Mozilla/5.0 (Windows NT 10.0; Win64; x64)", false},
		{"Mozilla/5.0 (Macintosh; Intel Mac OS X 14_0)", false},
		{"Mozilla/5.0 (X11; Linux x86_64)", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := IsTouchUserAgent(tt.ua); got != tt.want {
			t.Errorf("IsTouchUserAgent(%q) = %v, want %v", tt.ua, got, tt.want)
		}
	}
}

func BenchmarkDispatch_10Handlers(b *testing.B) {
	l := NewLoop(false)
	for i := 0; i < 10; i++ {
		l.OnPointerMove(func(PointerEvent) {})
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		l.DispatchMove(float64(i), 0)
	}
}
