package templates

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/jobtrackd/jobtrackd/internal/core/domain"
	"github.com/jobtrackd/jobtrackd/internal/core/usecase"
)

// Load returns the built-in checklist templates, optionally replaced by a
// YAML file. An empty path means built-ins only.
func Load(path string) ([]domain.ChecklistTemplate, error) {
	if path == "" {
		return usecase.DefaultChecklistTemplates(), nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read templates file: %w", err)
	}

	var doc struct {
		Templates []domain.ChecklistTemplate `yaml:"templates"`
	}
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("parse templates file: %w", err)
	}
	if len(doc.Templates) == 0 {
		return nil, fmt.Errorf("templates file %s defines no templates", path)
	}

	for i := range doc.Templates {
		tpl := &doc.Templates[i]
		if tpl.ID == "" {
			return nil, fmt.Errorf("template %d has no id", i)
		}
		if tpl.Name == "" {
			return nil, fmt.Errorf("template %s has no name", tpl.ID)
		}
		tpl.IsDefault = true
		for j := range tpl.Items {
			if tpl.Items[j].Priority == "" {
				tpl.Items[j].Priority = domain.PriorityMedium
			}
			if !tpl.Items[j].Priority.Valid() {
				return nil, fmt.Errorf("template %s item %d has invalid priority %q", tpl.ID, j, tpl.Items[j].Priority)
			}
			if tpl.Items[j].Position == 0 {
				tpl.Items[j].Position = j + 1
			}
		}
	}
	return doc.Templates, nil
}
