package whiteboard

import (
	"encoding/json"
	"fmt"
	"strings"
)

// testStep represents a single action in a test script.
type testStep struct {
	Action    string   `json:"action"`
	Label     string   `json:"label,omitempty"`
	X         float64  `json:"x,omitempty"`
	Y         float64  `json:"y,omitempty"`
	FromX     float64  `json:"fromX,omitempty"`
	FromY     float64  `json:"fromY,omitempty"`
	ToX       float64  `json:"toX,omitempty"`
	ToY       float64  `json:"toY,omitempty"`
	DX        float64  `json:"dx,omitempty"`
	DY        float64  `json:"dy,omitempty"`
	Frames    int      `json:"frames,omitempty"`
	Mode      string   `json:"mode,omitempty"`
	SubMode   string   `json:"subMode,omitempty"`
	Modifiers []string `json:"modifiers,omitempty"`
}

// testScript is the top-level JSON structure for a test script.
type testScript struct {
	Steps []testStep `json:"steps"`
}

// TestRunner sequences injected input, tool changes and screenshots across
// frames for automated visual checks. Attach to an Engine via SetTestRunner.
type TestRunner struct {
	steps     []testStep
	cursor    int
	waitCount int
	done      bool
}

var modifierNames = map[string]KeyModifiers{
	"shift": ModShift,
	"ctrl":  ModCtrl,
	"alt":   ModAlt,
	"meta":  ModMeta,
}

// LoadTestScript parses and validates a JSON test script.
func LoadTestScript(jsonData []byte) (*TestRunner, error) {
	var script testScript
	if err := json.Unmarshal(jsonData, &script); err != nil {
		return nil, fmt.Errorf("parse test script: %w", err)
	}
	if len(script.Steps) == 0 {
		return nil, fmt.Errorf("parse test script: no steps")
	}
	for i, st := range script.Steps {
		switch st.Action {
		case "click", "drag", "wheel", "wait", "screenshot":
		case "tool":
			switch MainMode(st.Mode) {
			case ModeSelect, ModePan, ModeCreate:
			default:
				return nil, fmt.Errorf("parse test script: step %d: unknown mode %q", i, st.Mode)
			}
		default:
			return nil, fmt.Errorf("parse test script: step %d: unknown action %q", i, st.Action)
		}
		for _, m := range st.Modifiers {
			if _, ok := modifierNames[strings.ToLower(m)]; !ok {
				return nil, fmt.Errorf("parse test script: step %d: unknown modifier %q", i, m)
			}
		}
	}
	return &TestRunner{steps: script.Steps}, nil
}

// SetTestRunner attaches a TestRunner. Its step method runs at the start of
// every update, before input is processed.
func (e *Engine) SetTestRunner(runner *TestRunner) {
	e.testRunner = runner
}

// Done reports whether all steps in the test script have been executed.
func (r *TestRunner) Done() bool {
	return r.done
}

func stepModifiers(names []string) KeyModifiers {
	var mods KeyModifiers
	for _, n := range names {
		mods |= modifierNames[strings.ToLower(n)]
	}
	return mods
}

// step advances the runner by one frame.
func (r *TestRunner) step(e *Engine) {
	if r.done {
		return
	}
	// Wait for pending injections to drain before advancing.
	if e.raw.Pending() > 0 {
		return
	}
	if r.waitCount > 0 {
		r.waitCount--
		return
	}
	if r.cursor >= len(r.steps) {
		r.done = true
		return
	}

	st := r.steps[r.cursor]
	r.cursor++

	if st.Action == "click" || st.Action == "drag" || st.Action == "wheel" {
		e.raw.InjectModifiers(stepModifiers(st.Modifiers))
	}
	switch st.Action {
	case "screenshot":
		e.Screenshot(st.Label)
	case "click":
		e.raw.InjectClick(st.X, st.Y)
	case "drag":
		frames := st.Frames
		if frames < 2 {
			frames = 2
		}
		e.raw.InjectDrag(st.FromX, st.FromY, st.ToX, st.ToY, frames)
	case "wheel":
		e.raw.InjectWheel(st.X, st.Y, st.DX, st.DY)
	case "tool":
		e.tools.ChangeTool(MainMode(st.Mode), SubMode(st.SubMode))
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1 // this frame counts as one
		}
	}

	if r.cursor >= len(r.steps) && r.waitCount == 0 && e.raw.Pending() == 0 {
		r.done = true
	}
}
