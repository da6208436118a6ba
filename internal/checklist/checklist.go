// Package checklist loads and evaluates the preflight checklist template
// filled in before a survey may record measurements. The template is a
// JSON document of stages, each holding ordered steps with an action and
// an expected outcome; answers are stored per survey by the db layer.
package checklist

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
)

//go:embed checklist_default.json
var defaultTemplate []byte

// Step is one checklist item. Code is the dotted step number from the
// template ("1.3"); it is the stable key answers are stored under.
type Step struct {
	Code     string `json:"step"`
	Action   string `json:"action"`
	Expected string `json:"expected"`
}

// Stage groups the steps performed together, e.g. "Instrument setup".
type Stage struct {
	Title  string   `json:"title"`
	Steps  []Step   `json:"steps"`
	Issues []string `json:"issues"`
	Refs   []string `json:"refs"`
}

// Template is a full checklist document.
type Template struct {
	Stages []Stage `json:"stages"`
}

// Answer is a stored response to one step.
type Answer struct {
	Value   string `json:"value"`
	Checked bool   `json:"checked"`
}

// Default returns the checklist template embedded in the binary.
func Default() (*Template, error) {
	return parse(defaultTemplate)
}

// Load reads a checklist template from a JSON file.
func Load(path string) (*Template, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read checklist template: %w", err)
	}
	return parse(data)
}

func parse(data []byte) (*Template, error) {
	var tpl Template
	if err := json.Unmarshal(data, &tpl); err != nil {
		return nil, fmt.Errorf("failed to parse checklist template: %w", err)
	}
	// Step codes may arrive as numbers in hand-edited templates; the
	// custom unmarshal below keeps them as strings either way.
	for si := range tpl.Stages {
		for i := range tpl.Stages[si].Steps {
			tpl.Stages[si].Steps[i].Code = strings.TrimSpace(tpl.Stages[si].Steps[i].Code)
		}
	}
	return &tpl, nil
}

// UnmarshalJSON accepts both string and numeric step codes.
func (s *Step) UnmarshalJSON(data []byte) error {
	var raw struct {
		Code     json.RawMessage `json:"step"`
		Action   string          `json:"action"`
		Expected string          `json:"expected"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	s.Action = raw.Action
	s.Expected = raw.Expected
	if len(raw.Code) == 0 {
		s.Code = ""
		return nil
	}
	var asString string
	if err := json.Unmarshal(raw.Code, &asString); err == nil {
		s.Code = asString
		return nil
	}
	var asNumber float64
	if err := json.Unmarshal(raw.Code, &asNumber); err == nil {
		s.Code = strconv.FormatFloat(asNumber, 'f', -1, 64)
		return nil
	}
	return fmt.Errorf("step code must be a string or number, got %s", raw.Code)
}

// ClampStageIndex bounds a 0-based stage index to the template.
func (t *Template) ClampStageIndex(idx int) int {
	if idx < 0 {
		return 0
	}
	if idx >= len(t.Stages) {
		return len(t.Stages) - 1
	}
	return idx
}

// StageComplete reports whether every step of the stage has a checked
// answer.
func StageComplete(stage Stage, answers map[string]Answer) bool {
	for _, st := range stage.Steps {
		a, ok := answers[st.Code]
		if !ok || !a.Checked {
			return false
		}
	}
	return true
}

// Complete reports whether every stage of the template is complete.
func (t *Template) Complete(answers map[string]Answer) bool {
	for _, stage := range t.Stages {
		if !StageComplete(stage, answers) {
			return false
		}
	}
	return true
}

// MissingSteps lists the codes of unchecked steps in a stage, in template
// order.
func MissingSteps(stage Stage, answers map[string]Answer) []string {
	var missing []string
	for _, st := range stage.Steps {
		a, ok := answers[st.Code]
		if !ok || !a.Checked {
			missing = append(missing, st.Code)
		}
	}
	return missing
}
