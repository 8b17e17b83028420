// Package seed holds the built-in starter plans inserted into an empty catalogue.
package seed

import (
	_ "embed"
	"fmt"

	"financeflow_backend/internal/models"

	"gopkg.in/yaml.v2"
)

//go:embed plans.yaml
var plansYAML []byte

type planEntry struct {
	ID          string `yaml:"id"`
	Title       string `yaml:"title"`
	Category    string `yaml:"category"`
	Description string `yaml:"description"`
	Details     string `yaml:"details"`
	Icon        string `yaml:"icon"`
	ImageURL    string `yaml:"image_url"`
}

type planFile struct {
	Plans []planEntry `yaml:"plans"`
}

// BuiltinPlans returns fresh copies of the starter plans with their fixed ids.
func BuiltinPlans() ([]models.Plan, error) {
	return parsePlans(plansYAML)
}

func parsePlans(data []byte) ([]models.Plan, error) {
	var file planFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse built-in plans: %w", err)
	}

	plans := make([]models.Plan, 0, len(file.Plans))
	for _, e := range file.Plans {
		category := models.PlanCategory(e.Category)
		if e.ID == "" || !category.Valid() {
			return nil, fmt.Errorf("built-in plan %q: missing id or invalid category %q", e.Title, e.Category)
		}
		plan := models.Plan{
			Title:       e.Title,
			Category:    category,
			Description: e.Description,
			Details:     e.Details,
			Icon:        e.Icon,
			ImageURL:    e.ImageURL,
		}
		plan.ID = e.ID
		plans = append(plans, plan)
	}
	return plans, nil
}
