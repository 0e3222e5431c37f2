package weather

import (
	"strings"
	"time"

	"github.com/luwei/smart-travel/internal/domain/outfit"
)

// Observation is a normalized provider reading. Snapshot fields feed the
// outfit engine; the rest is detail surfaced by the weather endpoints.
type Observation struct {
	Temperature   float64          `json:"temperature"` // °C
	FeelsLike     float64          `json:"feelsLike"`   // °C
	Humidity      float64          `json:"humidity"`    // percent
	WindSpeed     float64          `json:"windSpeed"`   // km/h
	WindDirection string           `json:"windDirection,omitempty"`
	Condition     outfit.Condition `json:"condition"`
	Description   string           `json:"description,omitempty"`
	Visibility    float64          `json:"visibility,omitempty"` // km
	Pressure      float64          `json:"pressure,omitempty"`   // hPa
	ObservedAt    time.Time        `json:"observedAt"`

	// Raw is the untouched provider payload, kept for archiving only.
	Raw []byte `json:"-"`
}

// Snapshot projects the observation onto the engine's input type.
func (o Observation) Snapshot() outfit.WeatherSnapshot {
	return outfit.WeatherSnapshot{
		Temperature: o.Temperature,
		Humidity:    o.Humidity,
		Condition:   o.Condition,
		WindSpeed:   o.WindSpeed,
		ObservedAt:  o.ObservedAt,
	}
}

// conditionKeywords maps vendor description fragments to the normalized
// vocabulary. Both QWeather Chinese texts and plain English are matched;
// first hit wins, so more specific fragments come first.
var conditionKeywords = []struct {
	fragment  string
	condition outfit.Condition
}{
	{"暴雨", outfit.ConditionStorm},
	{"雷", outfit.ConditionStorm},
	{"storm", outfit.ConditionStorm},
	{"thunder", outfit.ConditionStorm},
	{"雪", outfit.ConditionSnow},
	{"snow", outfit.ConditionSnow},
	{"雨", outfit.ConditionRain},
	{"rain", outfit.ConditionRain},
	{"drizzle", outfit.ConditionRain},
	{"雾", outfit.ConditionFog},
	{"霾", outfit.ConditionFog},
	{"fog", outfit.ConditionFog},
	{"haze", outfit.ConditionFog},
	{"mist", outfit.ConditionFog},
	{"阴", outfit.ConditionOvercast},
	{"overcast", outfit.ConditionOvercast},
	{"多云", outfit.ConditionCloudy},
	{"cloud", outfit.ConditionCloudy},
	{"晴", outfit.ConditionClear},
	{"clear", outfit.ConditionClear},
	{"sunny", outfit.ConditionClear},
}

// MapCondition normalizes a vendor weather description. Unknown text falls
// back to cloudy, the least committal category.
func MapCondition(text string) outfit.Condition {
	lowered := strings.ToLower(text)
	for _, entry := range conditionKeywords {
		if strings.Contains(lowered, entry.fragment) {
			return entry.condition
		}
	}
	return outfit.ConditionCloudy
}
