package outfit

import (
	"fmt"
	"sort"

	apperrors "github.com/luwei/smart-travel/pkg/errors"
)

// Physically plausible input bounds. Values outside fail validation rather
// than being clamped.
const (
	MinTemperature = -60.0
	MaxTemperature = 60.0
)

// Recommend maps a weather snapshot plus trip context and preferences to an
// ordered recommendation list. It is pure and deterministic: identical inputs
// always produce identical, identically ordered output. Preferences may be
// nil; defaults are applied.
func Recommend(weather WeatherSnapshot, trip TripContext, prefs *UserPreferences) ([]Recommendation, error) {
	if err := validate(weather, trip); err != nil {
		return nil, err
	}

	applied := defaultedPreferences(prefs)
	// Positive ColdSensitivity means "runs cold": evaluate the temperature
	// tables as if it were colder.
	effectiveTemp := weather.Temperature - applied.ColdSensitivity

	var pool []scoredCandidate
	pool = appendBandCandidates(pool, effectiveTemp)
	pool = appendConditionCandidates(pool, weather.Condition)
	pool = appendWindCandidates(pool, weather.WindSpeed)
	pool = appendHumidityCandidates(pool, weather.Humidity, effectiveTemp)
	pool = appendTripCandidates(pool, trip, effectiveTemp)

	return aggregate(pool, applied.Style), nil
}

func validate(weather WeatherSnapshot, trip TripContext) error {
	if weather.Temperature < MinTemperature || weather.Temperature > MaxTemperature {
		return apperrors.Wrap("invalid_input",
			fmt.Sprintf("temperature %.1f°C outside plausible range [%.0f, %.0f]", weather.Temperature, MinTemperature, MaxTemperature), nil)
	}
	if weather.Humidity < 0 || weather.Humidity > 100 {
		return apperrors.Wrap("invalid_input",
			fmt.Sprintf("humidity %.1f%% outside range [0, 100]", weather.Humidity), nil)
	}
	if weather.WindSpeed < 0 {
		return apperrors.Wrap("invalid_input", "wind speed cannot be negative", nil)
	}
	if !KnownCondition(weather.Condition) {
		return apperrors.Wrap("invalid_input", fmt.Sprintf("unrecognized weather condition %q", weather.Condition), nil)
	}
	if trip.Mode != "" && !KnownMode(trip.Mode) {
		return apperrors.Wrap("invalid_input", fmt.Sprintf("unrecognized transport mode %q", trip.Mode), nil)
	}
	if trip.TimeOfDay != "" {
		if _, ok := knownTimesOfDay[trip.TimeOfDay]; !ok {
			return apperrors.Wrap("invalid_input", fmt.Sprintf("unrecognized time of day %q", trip.TimeOfDay), nil)
		}
	}
	if trip.Duration < 0 {
		return apperrors.Wrap("invalid_input", "trip duration cannot be negative", nil)
	}
	return nil
}

func defaultedPreferences(prefs *UserPreferences) UserPreferences {
	if prefs == nil {
		return UserPreferences{Style: StyleCasual}
	}
	applied := *prefs
	if applied.Style == "" {
		applied.Style = StyleCasual
	}
	return applied
}

type scoredCandidate struct {
	candidate
	priority int
}

func appendBandCandidates(pool []scoredCandidate, effectiveTemp float64) []scoredCandidate {
	for _, band := range tempBands {
		if effectiveTemp < band.min || effectiveTemp >= band.max {
			continue
		}
		for _, c := range band.candidates {
			pool = append(pool, scoredCandidate{c, priorityTempBand})
		}
	}
	return pool
}

func appendConditionCandidates(pool []scoredCandidate, cond Condition) []scoredCandidate {
	for _, rule := range conditionRules {
		for _, match := range rule.conditions {
			if match != cond {
				continue
			}
			for _, c := range rule.candidates {
				pool = append(pool, scoredCandidate{c, priorityCondition})
			}
		}
	}
	return pool
}

func appendWindCandidates(pool []scoredCandidate, windSpeed float64) []scoredCandidate {
	for _, rule := range windRules {
		if windSpeed < rule.min || windSpeed >= rule.max {
			continue
		}
		for _, c := range rule.candidates {
			pool = append(pool, scoredCandidate{c, priorityWind})
		}
	}
	return pool
}

func appendHumidityCandidates(pool []scoredCandidate, humidity, effectiveTemp float64) []scoredCandidate {
	for _, rule := range humidityRules {
		if humidity < rule.minHumidity || effectiveTemp < rule.minTemp {
			continue
		}
		for _, c := range rule.candidates {
			pool = append(pool, scoredCandidate{c, priorityHumidity})
		}
	}
	return pool
}

func appendTripCandidates(pool []scoredCandidate, trip TripContext, effectiveTemp float64) []scoredCandidate {
	for _, rule := range tripRules {
		if !matchesMode(rule.modes, trip.Mode) {
			continue
		}
		if len(rule.timesOfDay) > 0 && !matchesTimeOfDay(rule.timesOfDay, trip.TimeOfDay) {
			continue
		}
		if rule.maxTemp != nil && effectiveTemp >= *rule.maxTemp {
			continue
		}
		if rule.minTemp != nil && effectiveTemp < *rule.minTemp {
			continue
		}
		if rule.minDuration > 0 && trip.Duration < rule.minDuration {
			continue
		}
		for _, c := range rule.candidates {
			pool = append(pool, scoredCandidate{c, priorityTrip})
		}
	}
	return pool
}

func matchesMode(modes []TransportMode, mode TransportMode) bool {
	for _, m := range modes {
		if m == mode {
			return true
		}
	}
	return false
}

func matchesTimeOfDay(times []TimeOfDay, tod TimeOfDay) bool {
	for _, t := range times {
		if t == tod {
			return true
		}
	}
	return false
}

// aggregate keeps the strongest candidate per category and orders the result
// by descending confidence, breaking ties with the fixed category priority.
func aggregate(pool []scoredCandidate, style string) []Recommendation {
	best := make(map[Category]scoredCandidate)
	for _, c := range pool {
		current, exists := best[c.category]
		switch {
		case !exists:
			best[c.category] = c
		case c.confidence > current.confidence:
			best[c.category] = c
		case c.confidence == current.confidence && c.priority < current.priority:
			best[c.category] = c
		}
	}

	out := make([]Recommendation, 0, len(best))
	for _, c := range best {
		out = append(out, Recommendation{
			Category:   c.category,
			Label:      c.labelFor(style),
			Confidence: c.confidence,
			Rationale:  c.rationale,
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Confidence != out[j].Confidence {
			return out[i].Confidence > out[j].Confidence
		}
		return categoryRank(out[i].Category) < categoryRank(out[j].Category)
	})
	return out
}
