package outfit

import (
	"math"
	"time"
)

// The rule set is data, not branching: every table row maps a range or a
// categorical match to candidate items. Rules never read each other's output,
// so evaluation order cannot change the result; the priority value only
// breaks exact confidence ties during aggregation.

type candidate struct {
	category   Category
	label      string
	confidence float64
	rationale  string
	// styleLabels overrides the label for specific preference styles.
	styleLabels map[string]string
}

func (c candidate) labelFor(style string) string {
	if override, ok := c.styleLabels[style]; ok {
		return override
	}
	return c.label
}

// tempBand matches effective temperature in [min, max).
type tempBand struct {
	min, max   float64
	candidates []candidate
}

var tempBands = []tempBand{
	{
		min: math.Inf(-1), max: 0,
		candidates: []candidate{
			{CategoryOuterwear, "insulated parka", 0.95, "sub-zero temperatures call for serious insulation", nil},
			{CategoryAccessory, "gloves and beanie", 0.85, "exposed skin loses heat fast below freezing", nil},
			{CategoryTop, "thermal base layer", 0.80, "a warm base layer traps body heat", nil},
			{CategoryBottom, "fleece-lined trousers", 0.75, "legs need insulation in freezing weather", nil},
		},
	},
	{
		min: 0, max: 8,
		candidates: []candidate{
			{CategoryOuterwear, "heavy coat", 0.90, "near-freezing air needs a proper coat", nil},
			{CategoryTop, "wool sweater", 0.80, "a sweater adds warmth under the coat", nil},
			{CategoryBottom, "jeans", 0.70, "sturdy full-length trousers for cold air", nil},
			{CategoryAccessory, "scarf", 0.60, "a scarf protects the neck from cold wind", nil},
		},
	},
	{
		min: 8, max: 15,
		candidates: []candidate{
			{CategoryOuterwear, "light jacket", 0.80, "cool air warrants an outer layer", nil},
			{CategoryTop, "long-sleeve shirt", 0.70, "long sleeves suit cool daytime temperatures", nil},
			{CategoryBottom, "chinos", 0.60, "full-length trousers for a cool day", nil},
		},
	},
	{
		min: 15, max: 22,
		candidates: []candidate{
			{CategoryTop, "long-sleeve shirt", 0.70, "mild temperatures favor a light long sleeve",
				map[string]string{"formal": "oxford shirt", "sport": "performance long-sleeve"}},
			{CategoryBottom, "jeans", 0.60, "comfortable trousers for mild weather", nil},
			{CategoryOuterwear, "light cardigan", 0.50, "an easy layer to shed as the day warms", nil},
		},
	},
	{
		min: 22, max: 28,
		candidates: []candidate{
			{CategoryTop, "breathable t-shirt", 0.80, "warm air calls for breathable fabric",
				map[string]string{"formal": "short-sleeve polo", "sport": "training tee"}},
			{CategoryBottom, "light trousers", 0.65, "lightweight trousers stay comfortable in warmth", nil},
		},
	},
	{
		min: 28, max: math.Inf(1),
		candidates: []candidate{
			{CategoryTop, "light short-sleeve shirt", 0.90, "hot weather demands light short-sleeve clothing",
				map[string]string{"formal": "linen short-sleeve shirt"}},
			{CategoryBottom, "shorts", 0.75, "shorts keep you cool in the heat", nil},
			{CategoryAccessory, "sun hat", 0.70, "shade your head from strong sun", nil},
		},
	},
}

// conditionRule matches the categorical condition exactly.
type conditionRule struct {
	conditions []Condition
	candidates []candidate
}

var conditionRules = []conditionRule{
	{
		conditions: []Condition{ConditionRain},
		candidates: []candidate{
			{CategoryOuterwear, "waterproof rain jacket", 0.92, "a waterproof shell keeps you dry in steady rain", nil},
			{CategoryAccessory, "compact umbrella", 0.88, "an umbrella covers the gaps a jacket leaves", nil},
		},
	},
	{
		conditions: []Condition{ConditionStorm},
		candidates: []candidate{
			{CategoryOuterwear, "waterproof shell with hood", 0.97, "waterproof protection is essential in storm conditions", nil},
			{CategoryAccessory, "waterproof boots", 0.80, "storm runoff soaks ordinary shoes", nil},
		},
	},
	{
		conditions: []Condition{ConditionSnow},
		candidates: []candidate{
			{CategoryOuterwear, "insulated waterproof coat", 0.95, "snow needs both insulation and a waterproof layer", nil},
			{CategoryAccessory, "snow boots", 0.85, "grip and warmth matter on snow-covered ground", nil},
		},
	},
	{
		conditions: []Condition{ConditionFog},
		candidates: []candidate{
			{CategoryAccessory, "high-visibility layer", 0.70, "low visibility makes it hard for traffic to see you", nil},
		},
	},
	{
		conditions: []Condition{ConditionClear},
		candidates: []candidate{
			{CategoryAccessory, "sunglasses", 0.60, "clear skies mean glare", nil},
		},
	},
}

// windRule matches wind speed in [min, max) km/h.
type windRule struct {
	min, max   float64
	candidates []candidate
}

var windRules = []windRule{
	{
		min: 20, max: 35,
		candidates: []candidate{
			{CategoryOuterwear, "windbreaker", 0.75, "gusty wind cuts through unlined layers", nil},
		},
	},
	{
		min: 35, max: math.Inf(1),
		candidates: []candidate{
			{CategoryOuterwear, "heavy windbreaker", 0.85, "strong wind makes the air feel far colder", nil},
		},
	},
}

// humidityRule matches when humidity and effective temperature both reach
// their thresholds.
type humidityRule struct {
	minHumidity float64
	minTemp     float64
	candidates  []candidate
}

var humidityRules = []humidityRule{
	{
		minHumidity: 80, minTemp: 24,
		candidates: []candidate{
			{CategoryTop, "moisture-wicking shirt", 0.85, "high humidity feels muggy; wicking fabric helps", nil},
		},
	},
}

// tripRule matches trip context, optionally gated on effective temperature
// and duration. Nil bounds mean unconstrained.
type tripRule struct {
	modes       []TransportMode
	timesOfDay  []TimeOfDay
	maxTemp     *float64
	minTemp     *float64
	minDuration time.Duration
	candidates  []candidate
}

var tripRules = []tripRule{
	{
		modes:   []TransportMode{ModeCycling},
		maxTemp: ptr(10.0),
		candidates: []candidate{
			{CategoryAccessory, "full-finger cycling gloves", 0.75, "bare hands go numb on a cold ride", nil},
		},
	},
	{
		modes:      []TransportMode{ModeCycling, ModeWalking},
		timesOfDay: []TimeOfDay{TimeEvening, TimeNight},
		candidates: []candidate{
			{CategoryAccessory, "reflective band", 0.65, "stay visible to traffic after dark", nil},
		},
	},
	{
		modes:       []TransportMode{ModeCycling, ModeWalking},
		minTemp:     ptr(26.0),
		minDuration: 45 * time.Minute,
		candidates: []candidate{
			{CategoryAccessory, "water bottle", 0.70, "a long stretch outdoors in the heat needs water", nil},
		},
	},
}

func ptr(v float64) *float64 { return &v }

// Aggregation tie-breaks use these fixed priorities; a lower value wins when
// two candidates for the same category carry equal confidence.
const (
	priorityTempBand  = 10
	priorityCondition = 20
	priorityWind      = 30
	priorityHumidity  = 40
	priorityTrip      = 50
)
