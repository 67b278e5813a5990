package fixtures

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Mrsumitborade/safe-earth-response/internal/models"
)

func TestDefault_Counts(t *testing.T) {
	ds := Default()

	assert.Len(t, ds.Alerts, 5)
	assert.Len(t, ds.Resources, 5)
	assert.Len(t, ds.Incidents, 3)
	assert.Len(t, ds.Insights, 3)
}

func TestDefault_ReturnsFreshCopies(t *testing.T) {
	a := Default()
	a.Resources[0].Available = 0
	a.Incidents[0].Coordinates[0] = 0

	b := Default()
	assert.Equal(t, 200, b.Resources[0].Available)
	assert.Equal(t, 29.7604, b.Incidents[0].Coordinates.Latitude())
}

func TestClone_IsDeep(t *testing.T) {
	a := Default()
	b := a.Clone()
	b.Incidents[0].Coordinates[1] = 0
	b.Alerts[0].Location = "elsewhere"

	assert.Equal(t, -95.3698, a.Incidents[0].Coordinates.Longitude())
	assert.Equal(t, "San Francisco, CA", a.Alerts[0].Location)
}

func TestLoad_EmptyPathReturnsDefault(t *testing.T) {
	ds, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), ds)
}

func TestLoad_YAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fixtures.yaml")
	content := `
alerts:
  - id: 7
    type: Flood
    location: Dhaka
    severity: High
    time: "2025-06-01 10:00"
    description: River overflow
    coordinates: [23.81, 90.41]
resources:
  - id: 1
    type: Boats
    available: 12
    allocated: 0
    location: Dock 4
    last_updated: "2025-06-01 09:00"
incidents:
  - id: 3
    location: Sylhet
    description: Road washed out
    urgency: Moderate
    time: "2025-06-01 11:00"
    status: New
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	ds, err := Load(path)
	require.NoError(t, err)
	require.Len(t, ds.Alerts, 1)
	assert.Equal(t, models.DisasterTypeFlood, ds.Alerts[0].Type)
	assert.Equal(t, "2025-06-01 10:00", ds.Alerts[0].Time.String())
	assert.Equal(t, 90.41, ds.Alerts[0].Coordinates.Longitude())
	require.Len(t, ds.Incidents, 1)
	assert.Nil(t, ds.Incidents[0].Coordinates)
}

func TestLoad_RejectsUnknownSeverity(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	content := `
alerts:
  - id: 1
    type: Flood
    severity: Extreme
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
