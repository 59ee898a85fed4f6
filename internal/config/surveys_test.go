package config_test

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/clubos/community-backend/internal/config"
)

func writeSurveys(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "surveys.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write surveys file: %v", err)
	}
	return path
}

func TestLoadSurveys(t *testing.T) {
	path := writeSurveys(t, `
surveys:
  - id: spring-2026
    title: Spring member survey
    questions:
      - id: q1
        label: What are you building?
        type: text
        required: true
      - id: q2
        label: Anything else?
        type: text
`)

	defs, err := config.LoadSurveys(path)
	if err != nil {
		t.Fatalf("load surveys: %v", err)
	}
	def, ok := defs["spring-2026"]
	if !ok {
		t.Fatalf("survey not indexed by id: %v", defs)
	}
	if def.Title != "Spring member survey" || len(def.Questions) != 2 {
		t.Fatalf("unexpected definition: %+v", def)
	}
	if !def.Questions[0].Required || def.Questions[1].Required {
		t.Fatalf("required flags not parsed: %+v", def.Questions)
	}
}

func TestLoadSurveysMissingFile(t *testing.T) {
	defs, err := config.LoadSurveys(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("missing file must not error: %v", err)
	}
	if len(defs) != 0 {
		t.Fatalf("expected no definitions, got %v", defs)
	}
}

func TestLoadSurveysRejectsDuplicates(t *testing.T) {
	path := writeSurveys(t, `
surveys:
  - id: twice
    title: First
  - id: twice
    title: Second
`)
	if _, err := config.LoadSurveys(path); err == nil {
		t.Fatal("expected duplicate id error")
	}
}

func TestMissingRequired(t *testing.T) {
	def := config.SurveyDefinition{
		Questions: []config.SurveyQuestion{
			{ID: "q1", Required: true},
			{ID: "q2"},
			{ID: "q3", Required: true},
		},
	}

	missing := def.MissingRequired(map[string]any{"q1": "answered", "q3": ""})
	if !reflect.DeepEqual(missing, []string{"q3"}) {
		t.Fatalf("expected [q3], got %v", missing)
	}

	if missing := def.MissingRequired(map[string]any{"q1": "a", "q3": "b"}); missing != nil {
		t.Fatalf("expected nothing missing, got %v", missing)
	}
}
