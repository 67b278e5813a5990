package fixtures

import "github.com/Mrsumitborade/safe-earth-response/internal/models"

var ts = models.MustTimestamp

// Default returns a fresh copy of the built-in demo dataset.
func Default() Dataset {
	return Dataset{
		Alerts:    demoAlerts(),
		Resources: demoResources(),
		Incidents: demoIncidents(),
		Insights:  demoInsights(),
	}
}

func demoAlerts() []models.Alert {
	return []models.Alert{
		{
			ID:          1,
			Type:        models.DisasterTypeEarthquake,
			Location:    "San Francisco, CA",
			Severity:    models.SeverityHigh,
			Time:        ts("2025-05-15 08:00"),
			Description: "Magnitude 6.2 earthquake detected. Multiple buildings affected in downtown area.",
			Coordinates: models.Coordinates{37.7749, -122.4194},
		},
		{
			ID:          2,
			Type:        models.DisasterTypeFlood,
			Location:    "New Orleans, LA",
			Severity:    models.SeverityModerate,
			Time:        ts("2025-05-14 14:30"),
			Description: "Rising water levels in the Lower Ninth Ward. Potential for moderate flooding in next 24 hours.",
			Coordinates: models.Coordinates{29.9511, -90.0715},
		},
		{
			ID:          3,
			Type:        models.DisasterTypeHurricane,
			Location:    "Miami, FL",
			Severity:    models.SeverityHigh,
			Time:        ts("2025-05-13 09:15"),
			Description: "Category 3 hurricane approaching. Expected landfall within 48 hours. Evacuation recommended in coastal areas.",
			Coordinates: models.Coordinates{25.7617, -80.1918},
		},
		{
			ID:          4,
			Type:        models.DisasterTypeWildfire,
			Location:    "Los Angeles, CA",
			Severity:    models.SeverityModerate,
			Time:        ts("2025-05-12 16:45"),
			Description: "Brush fire spreading in Angeles National Forest. Currently contained but conditions may worsen.",
			Coordinates: models.Coordinates{34.0522, -118.2437},
		},
		{
			ID:          5,
			Type:        models.DisasterTypeTornado,
			Location:    "Oklahoma City, OK",
			Severity:    models.SeverityLow,
			Time:        ts("2025-05-11 19:20"),
			Description: "Weather conditions favorable for tornado development. Monitoring in progress.",
			Coordinates: models.Coordinates{35.4676, -97.5164},
		},
	}
}

func demoResources() []models.Resource {
	return []models.Resource{
		{ID: 1, Type: "Medical Kits", Available: 200, Allocated: 50, Location: "Central Warehouse, Atlanta", LastUpdated: ts("2025-05-15 07:30")},
		{ID: 2, Type: "Emergency Personnel", Available: 75, Allocated: 30, Location: "Regional HQ, Dallas", LastUpdated: ts("2025-05-15 06:45")},
		{ID: 3, Type: "Water Supplies", Available: 5000, Allocated: 1200, Location: "Distribution Center, Chicago", LastUpdated: ts("2025-05-14 22:15")},
		{ID: 4, Type: "Emergency Vehicles", Available: 45, Allocated: 15, Location: "Fleet Center, Denver", LastUpdated: ts("2025-05-14 20:00")},
		{ID: 5, Type: "Temporary Shelters", Available: 30, Allocated: 8, Location: "Storage Facility, Phoenix", LastUpdated: ts("2025-05-15 05:30")},
	}
}

func demoIncidents() []models.Incident {
	return []models.Incident{
		{
			ID:           1,
			Location:     "Houston, TX",
			Description:  "Flooding near Buffalo Bayou. Several streets inaccessible.",
			Urgency:      models.SeverityHigh,
			Time:         ts("2025-05-15 09:00"),
			ContactName:  "John Smith",
			ContactPhone: "555-123-4567",
			Status:       models.IncidentStatusNew,
			Coordinates:  &models.Coordinates{29.7604, -95.3698},
		},
		{
			ID:           2,
			Location:     "Seattle, WA",
			Description:  "Power outage affecting downtown area after windstorm.",
			Urgency:      models.SeverityModerate,
			Time:         ts("2025-05-14 23:15"),
			ContactName:  "Emily Johnson",
			ContactPhone: "555-987-6543",
			Status:       models.IncidentStatusInProgress,
			Coordinates:  &models.Coordinates{47.6062, -122.3321},
		},
		{
			ID:           3,
			Location:     "Boston, MA",
			Description:  "Gas leak reported in residential neighborhood. Evacuation in progress.",
			Urgency:      models.SeverityHigh,
			Time:         ts("2025-05-15 07:45"),
			ContactName:  "Michael Brown",
			ContactPhone: "555-456-7890",
			Status:       models.IncidentStatusInProgress,
			Coordinates:  &models.Coordinates{42.3601, -71.0589},
		},
	}
}

func demoInsights() []models.AIInsight {
	return []models.AIInsight{
		{
			ID:        1,
			Type:      models.InsightTypeRecommendation,
			Content:   "Prioritize resource allocation to New Orleans, LA due to increasing flood risk and limited evacuation routes.",
			RelatedTo: models.InsightSubjectResources,
			Time:      ts("2025-05-15 08:30"),
		},
		{
			ID:        2,
			Type:      models.InsightTypePrediction,
			Content:   "Hurricane in Miami expected to intensify to Category 4 within next 12 hours based on current trajectory and ocean temperatures.",
			RelatedTo: models.InsightSubjectAlerts,
			Time:      ts("2025-05-15 07:15"),
		},
		{
			ID:        3,
			Type:      models.InsightTypeAnalysis,
			Content:   "Recent incident reports from Houston show 300% increase in flooding compared to historical data for this season.",
			RelatedTo: models.InsightSubjectIncidents,
			Time:      ts("2025-05-15 09:30"),
		},
	}
}
