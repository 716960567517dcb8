package domains

import "github.com/aretw0/mcpgate/pkg/domain"

// DefaultOpenMeteoURL is the public Open-Meteo weather API.
const DefaultOpenMeteoURL = "https://api.open-meteo.com"

// OpenMeteo returns the weather operations.
func OpenMeteo(baseURL string) []domain.OperationDescriptor {
	return []domain.OperationDescriptor{
		{
			Name:        "get_weather",
			Description: "Get current weather for coordinates. Returns temperature, wind speed, and conditions.",
			BaseURL:     baseURL,
			Template:    "/v1/forecast",
			Verb:        domain.VerbGet,
			Required:    []string{"latitude", "longitude"},
			Optional:    []string{"current_weather"},
		},
		{
			Name:        "get_forecast",
			Description: "Get 7-day weather forecast for coordinates.",
			BaseURL:     baseURL,
			Template:    "/v1/forecast",
			Verb:        domain.VerbGet,
			Required:    []string{"latitude", "longitude"},
			Optional:    []string{"daily", "timezone"},
		},
	}
}
