package checklist

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultTemplate(t *testing.T) {
	tpl, err := Default()
	if err != nil {
		t.Fatalf("Default failed: %v", err)
	}
	if len(tpl.Stages) == 0 {
		t.Fatal("default template has no stages")
	}
	for _, stage := range tpl.Stages {
		if stage.Title == "" {
			t.Error("stage without title")
		}
		if len(stage.Steps) == 0 {
			t.Errorf("stage %q has no steps", stage.Title)
		}
		for _, st := range stage.Steps {
			if st.Code == "" {
				t.Errorf("stage %q has a step without code", stage.Title)
			}
		}
	}
}

func TestLoadNumericStepCodes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "checklist.json")
	content := `{"stages": [{"title": "S", "steps": [{"step": 1.2, "action": "a", "expected": "e"}]}]}`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	tpl, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if got := tpl.Stages[0].Steps[0].Code; got != "1.2" {
		t.Errorf("numeric step code = %q, want \"1.2\"", got)
	}
}

func TestClampStageIndex(t *testing.T) {
	tpl := &Template{Stages: make([]Stage, 3)}
	tests := []struct{ in, want int }{
		{-1, 0}, {0, 0}, {2, 2}, {3, 2}, {99, 2},
	}
	for _, tt := range tests {
		if got := tpl.ClampStageIndex(tt.in); got != tt.want {
			t.Errorf("ClampStageIndex(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestStageCompletion(t *testing.T) {
	stage := Stage{Steps: []Step{{Code: "1.1"}, {Code: "1.2"}}}

	answers := map[string]Answer{}
	if StageComplete(stage, answers) {
		t.Error("empty answers must not complete a stage")
	}

	answers["1.1"] = Answer{Checked: true}
	if StageComplete(stage, answers) {
		t.Error("partially answered stage must not be complete")
	}
	if got := MissingSteps(stage, answers); len(got) != 1 || got[0] != "1.2" {
		t.Errorf("MissingSteps = %v, want [1.2]", got)
	}

	answers["1.2"] = Answer{Checked: true, Value: "72.15"}
	if !StageComplete(stage, answers) {
		t.Error("fully checked stage must be complete")
	}

	tpl := &Template{Stages: []Stage{stage}}
	if !tpl.Complete(answers) {
		t.Error("template with all stages complete must report complete")
	}
}
