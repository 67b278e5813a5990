// Package fixtures holds the demo datasets the dashboard starts from.
package fixtures

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/Mrsumitborade/safe-earth-response/internal/models"
)

// Dataset is a complete set of demo records.
type Dataset struct {
	Alerts    []models.Alert     `yaml:"alerts"`
	Resources []models.Resource  `yaml:"resources"`
	Incidents []models.Incident  `yaml:"incidents"`
	Insights  []models.AIInsight `yaml:"insights"`
}

// Clone returns a deep copy of d.
func (d Dataset) Clone() Dataset {
	out := Dataset{
		Alerts:    append([]models.Alert(nil), d.Alerts...),
		Resources: append([]models.Resource(nil), d.Resources...),
		Insights:  append([]models.AIInsight(nil), d.Insights...),
		Incidents: make([]models.Incident, len(d.Incidents)),
	}
	for i, inc := range d.Incidents {
		out.Incidents[i] = inc.Clone()
	}
	return out
}

// Load reads a dataset from a YAML file. An empty path returns Default().
func Load(path string) (Dataset, error) {
	if path == "" {
		return Default(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Dataset{}, fmt.Errorf("read fixtures: %w", err)
	}

	var ds Dataset
	if err := yaml.Unmarshal(data, &ds); err != nil {
		return Dataset{}, fmt.Errorf("parse fixtures: %w", err)
	}
	if err := ds.validate(); err != nil {
		return Dataset{}, fmt.Errorf("invalid fixtures %s: %w", path, err)
	}
	return ds, nil
}

func (d Dataset) validate() error {
	for _, a := range d.Alerts {
		if !a.Type.IsValid() {
			return fmt.Errorf("alert %d: unknown type %q", a.ID, a.Type)
		}
		if !a.Severity.IsValid() {
			return fmt.Errorf("alert %d: unknown severity %q", a.ID, a.Severity)
		}
	}
	for _, r := range d.Resources {
		if r.Available < 0 || r.Allocated < 0 {
			return fmt.Errorf("resource %d: negative quantity", r.ID)
		}
	}
	for _, inc := range d.Incidents {
		if !inc.Urgency.IsValid() {
			return fmt.Errorf("incident %d: unknown urgency %q", inc.ID, inc.Urgency)
		}
	}
	return nil
}
