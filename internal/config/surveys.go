package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// SurveyQuestion is one question in a survey definition.
type SurveyQuestion struct {
	ID       string `yaml:"id" json:"id"`
	Label    string `yaml:"label" json:"label"`
	Type     string `yaml:"type" json:"type"`
	Required bool   `yaml:"required" json:"required"`
}

// SurveyDefinition describes a survey the platform runs. Definitions are
// server-side config, not database rows: responses reference them by id.
type SurveyDefinition struct {
	ID        string           `yaml:"id" json:"id"`
	Title     string           `yaml:"title" json:"title"`
	Questions []SurveyQuestion `yaml:"questions" json:"questions"`
}

type surveysFile struct {
	Surveys []SurveyDefinition `yaml:"surveys"`
}

// LoadSurveys reads survey definitions from a YAML file. A missing file is
// not an error; the platform just has no surveys configured.
func LoadSurveys(path string) (map[string]SurveyDefinition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]SurveyDefinition{}, nil
		}
		return nil, fmt.Errorf("read surveys file: %w", err)
	}

	var file surveysFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse surveys file: %w", err)
	}

	defs := make(map[string]SurveyDefinition, len(file.Surveys))
	for _, def := range file.Surveys {
		if def.ID == "" {
			return nil, fmt.Errorf("survey definition without id in %s", path)
		}
		if _, dup := defs[def.ID]; dup {
			return nil, fmt.Errorf("duplicate survey id %q in %s", def.ID, path)
		}
		defs[def.ID] = def
	}
	return defs, nil
}

// MissingRequired returns the ids of required questions absent from answers.
// This is the caller-layer completeness pass; the submit handler itself only
// persists.
func (d SurveyDefinition) MissingRequired(answers map[string]any) []string {
	var missing []string
	for _, q := range d.Questions {
		if !q.Required {
			continue
		}
		v, ok := answers[q.ID]
		if !ok || v == nil || v == "" {
			missing = append(missing, q.ID)
		}
	}
	return missing
}
