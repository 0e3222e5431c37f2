package outfit

import "time"

// Condition is the normalized weather condition vocabulary shared by the
// recommendation engine and the weather providers.
type Condition string

const (
	ConditionClear    Condition = "clear"
	ConditionCloudy   Condition = "cloudy"
	ConditionOvercast Condition = "overcast"
	ConditionRain     Condition = "rain"
	ConditionSnow     Condition = "snow"
	ConditionFog      Condition = "fog"
	ConditionStorm    Condition = "storm"
)

// Category classifies a recommended item.
type Category string

const (
	CategoryOuterwear Category = "outerwear"
	CategoryTop       Category = "top"
	CategoryBottom    Category = "bottom"
	CategoryAccessory Category = "accessory"
)

// TransportMode enumerates how the trip is made.
type TransportMode string

const (
	ModeDriving TransportMode = "driving"
	ModeWalking TransportMode = "walking"
	ModeCycling TransportMode = "cycling"
	ModeTransit TransportMode = "transit"
)

// TimeOfDay is a coarse daypart used by contextual rules. Empty means
// unspecified; the engine never derives it from a clock so output stays a
// pure function of its inputs.
type TimeOfDay string

const (
	TimeMorning   TimeOfDay = "morning"
	TimeAfternoon TimeOfDay = "afternoon"
	TimeEvening   TimeOfDay = "evening"
	TimeNight     TimeOfDay = "night"
)

// WeatherSnapshot is the normalized observation consumed by the engine.
type WeatherSnapshot struct {
	Temperature float64   `json:"temperature"` // °C
	Humidity    float64   `json:"humidity"`    // percent, 0-100
	Condition   Condition `json:"condition"`
	WindSpeed   float64   `json:"windSpeed"` // km/h
	ObservedAt  time.Time `json:"observedAt"`
}

// TripContext captures trip parameters relevant to clothing choices.
type TripContext struct {
	Mode      TransportMode `json:"mode"`
	Duration  time.Duration `json:"duration"`
	TimeOfDay TimeOfDay     `json:"timeOfDay"`
}

// UserPreferences tunes the engine per user. The zero value is valid;
// ColdSensitivity is in °C with positive values meaning "runs cold".
type UserPreferences struct {
	Style           string  `json:"style"`
	ColdSensitivity float64 `json:"coldSensitivity"`
}

// Recommendation is a single suggested item with its score and rationale.
type Recommendation struct {
	Category   Category `json:"category"`
	Label      string   `json:"label"`
	Confidence float64  `json:"confidence"`
	Rationale  string   `json:"rationale"`
}

// StyleCasual is applied when preferences are absent or name no style.
const StyleCasual = "casual"

var knownConditions = map[Condition]struct{}{
	ConditionClear:    {},
	ConditionCloudy:   {},
	ConditionOvercast: {},
	ConditionRain:     {},
	ConditionSnow:     {},
	ConditionFog:      {},
	ConditionStorm:    {},
}

var knownModes = map[TransportMode]struct{}{
	ModeDriving: {},
	ModeWalking: {},
	ModeCycling: {},
	ModeTransit: {},
}

var knownTimesOfDay = map[TimeOfDay]struct{}{
	TimeMorning:   {},
	TimeAfternoon: {},
	TimeEvening:   {},
	TimeNight:     {},
}

// KnownCondition reports whether the condition belongs to the engine
// vocabulary.
func KnownCondition(c Condition) bool {
	_, ok := knownConditions[c]
	return ok
}

// KnownMode reports whether the transport mode is recognized.
func KnownMode(m TransportMode) bool {
	_, ok := knownModes[m]
	return ok
}

// categoryRank fixes the tie-break order for equal confidence.
func categoryRank(c Category) int {
	switch c {
	case CategoryOuterwear:
		return 0
	case CategoryTop:
		return 1
	case CategoryBottom:
		return 2
	default:
		return 3
	}
}
