package travel

import (
	"github.com/luwei/smart-travel/internal/domain/outfit"
	"github.com/luwei/smart-travel/internal/domain/weather"
)

// AnalyzeImpact grades how the destination weather affects the route. The
// duration factor scales the provider's travel time estimate.
func AnalyzeImpact(obs weather.Observation, mode outfit.TransportMode) Impact {
	impact := Impact{Level: ImpactLow, DurationFactor: 1.0}

	switch obs.Condition {
	case outfit.ConditionRain, outfit.ConditionStorm:
		impact.escalate(ImpactModerate)
		impact.recommend("roads are slick in the rain; slow down and keep extra distance")
		impact.raiseFactor(1.2)
		switch mode {
		case outfit.ModeWalking:
			impact.recommend("bring rain gear and prefer covered walkways")
			impact.raiseFactor(1.3)
		case outfit.ModeCycling:
			impact.warn("cycling in the rain is risky; consider another mode")
			impact.raiseFactor(1.5)
		}
		if obs.Condition == outfit.ConditionStorm {
			impact.escalate(ImpactHigh)
			impact.warn("storm conditions; postpone the trip if you can")
		}
	case outfit.ConditionSnow:
		impact.escalate(ImpactHigh)
		impact.warn("snow makes surfaces slippery; travel with extra care")
		impact.recommend("carry traction aids and emergency supplies")
		impact.raiseFactor(1.5)
		if mode == outfit.ModeWalking || mode == outfit.ModeCycling {
			impact.warn("walking or cycling in snow is dangerous; take public transport instead")
			impact.raiseFactor(2.0)
		}
	}

	if obs.WindSpeed > 50 {
		impact.escalate(ImpactHigh)
		impact.warn("very strong wind; watch for falling objects")
		if mode == outfit.ModeCycling {
			impact.warn("cycling in this wind is difficult and dangerous")
			impact.raiseFactor(1.4)
		}
	}

	if obs.Temperature > 35 {
		impact.recommend("extreme heat; avoid long stretches outdoors and keep drinking water")
		if mode == outfit.ModeWalking || mode == outfit.ModeCycling {
			impact.recommend("prefer shaded routes and use sun protection")
		}
	} else if obs.Temperature < -10 {
		impact.recommend("severe cold; limit time outside and dress in layers")
		if mode == outfit.ModeWalking || mode == outfit.ModeCycling {
			impact.warn("prolonged outdoor exposure is risky in severe cold")
		}
	}

	// Zero visibility means the provider did not report it.
	if obs.Visibility > 0 {
		if obs.Visibility < 1 {
			impact.escalate(ImpactHigh)
			impact.warn("visibility is near zero; travel only if necessary")
			impact.raiseFactor(1.6)
		} else if obs.Visibility < 5 {
			impact.escalate(ImpactModerate)
			impact.recommend("low visibility; use lights and keep a safe distance")
			impact.raiseFactor(1.2)
		}
	}

	return impact
}

// Summary flattens the impact into a single annotation line.
func (i Impact) Summary() string {
	switch {
	case len(i.Warnings) > 0:
		return i.Level + " impact: " + i.Warnings[0]
	case len(i.Recommendations) > 0:
		return i.Level + " impact: " + i.Recommendations[0]
	default:
		return i.Level + " impact"
	}
}

func (i *Impact) escalate(level string) {
	if rank(level) > rank(i.Level) {
		i.Level = level
	}
}

func (i *Impact) raiseFactor(factor float64) {
	if factor > i.DurationFactor {
		i.DurationFactor = factor
	}
}

func (i *Impact) warn(msg string)      { i.Warnings = append(i.Warnings, msg) }
func (i *Impact) recommend(msg string) { i.Recommendations = append(i.Recommendations, msg) }

func rank(level string) int {
	switch level {
	case ImpactHigh:
		return 2
	case ImpactModerate:
		return 1
	default:
		return 0
	}
}
