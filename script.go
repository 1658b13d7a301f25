package sparktrail

import (
	"encoding/json"
	"fmt"
)

// scriptStep is one scripted pointer action. Coordinates are viewport pixels.
type scriptStep struct {
	Action string  `json:"action"`
	Label  string  `json:"label,omitempty"`
	X      float64 `json:"x,omitempty"`
	Y      float64 `json:"y,omitempty"`
	FromX  float64 `json:"fromX,omitempty"`
	FromY  float64 `json:"fromY,omitempty"`
	ToX    float64 `json:"toX,omitempty"`
	ToY    float64 `json:"toY,omitempty"`
	Frames int     `json:"frames,omitempty"`
}

// scriptFile is the JSON document LoadScript accepts.
type scriptFile struct {
	Steps []scriptStep `json:"steps"`
}

// Script sequences injected pointer input across frames, for demos and
// automated visual checks. Call Step once per frame before Loop.Tick.
type Script struct {
	steps     []scriptStep
	cursor    int
	waitCount int
	done      bool

	// OnScreenshot is called for "screenshot" steps. Hosts that can capture
	// frames set it; otherwise the step is a no-op.
	OnScreenshot func(label string)
}

// LoadScript parses a JSON input script:
//
//	{"steps": [
//		{"action": "move", "x": 100, "y": 100},
//		{"action": "drag", "fromX": 0, "fromY": 0, "toX": 300, "toY": 200, "frames": 20},
//		{"action": "click", "x": 300, "y": 200},
//		{"action": "wait", "frames": 30},
//		{"action": "screenshot", "label": "trail"}
//	]}
func LoadScript(jsonData []byte) (*Script, error) {
	var f scriptFile
	if err := json.Unmarshal(jsonData, &f); err != nil {
		return nil, fmt.Errorf("parse input script: %w", err)
	}
	if len(f.Steps) == 0 {
		return nil, fmt.Errorf("parse input script: no steps")
	}
	for i, st := range f.Steps {
		switch st.Action {
		case "move", "press", "release", "click", "drag", "wait", "screenshot":
		default:
			return nil, fmt.Errorf("parse input script: step %d: unknown action %q", i, st.Action)
		}
	}
	return &Script{steps: f.Steps}, nil
}

// Done reports whether every step has run and its input was delivered.
func (s *Script) Done() bool {
	return s.done
}

// Step advances the script by one frame, queueing input on l.
func (s *Script) Step(l *Loop) {
	if s.done {
		return
	}
	switch {
	case l.Pending() > 0:
		return
	case s.waitCount > 0:
		s.waitCount--
		return
	}
	if s.cursor >= len(s.steps) {
		s.done = true
		return
	}

	st := s.steps[s.cursor]
	s.cursor++
	switch st.Action {
	case "wait":
		s.waitCount = max(st.Frames-1, 0)
	case "screenshot":
		if s.OnScreenshot != nil {
			s.OnScreenshot(st.Label)
		}
	default:
		st.queue(l)
	}

	s.done = s.cursor >= len(s.steps) && s.waitCount == 0 && l.Pending() == 0
}

// queue turns a pointer step into injected events on l.
func (st scriptStep) queue(l *Loop) {
	switch st.Action {
	case "move":
		l.InjectMove(st.X, st.Y)
	case "press":
		l.InjectPress(st.X, st.Y)
	case "release":
		l.InjectRelease(st.X, st.Y)
	case "click":
		l.InjectClick(st.X, st.Y)
	case "drag":
		l.InjectDrag(st.FromX, st.FromY, st.ToX, st.ToY, st.Frames)
	}
}
