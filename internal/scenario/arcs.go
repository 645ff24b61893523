package scenario

import "swarmsim/internal/config"

// BuiltIn returns predefined encounter arcs.
func BuiltIn() map[string]Scenario {
	return map[string]Scenario{
		"gauntlet": {
			Name:        "Gauntlet",
			Description: "The target runs a corridor while swarm clusters close in from both flanks.",
			Phases: []Phase{
				{
					Name:        "setup",
					Description: "A single cluster drifts dormant near the corridor entrance.",
					Waves:       []Wave{{Center: config.Point{X: -400, Y: -80, Z: 200}, Count: 2}},
					Triggers:    []Trigger{{Event: "time_elapsed", Value: 30, Next: "escalation"}},
				},
				{
					Name:        "escalation",
					Description: "Flanking clusters wake and begin pursuit.",
					Waves: []Wave{
						{Center: config.Point{X: 300, Y: -60, Z: -250}, Count: 2},
						{Center: config.Point{X: 300, Y: -60, Z: 250}, Count: 2},
					},
					Triggers: []Trigger{{Event: "attack", Value: 5, Next: "climax"}},
				},
				{
					Name:        "climax",
					Description: "A final cluster cuts off the corridor exit.",
					Waves:       []Wave{{Center: config.Point{X: 800, Y: -100, Z: 0}, Count: 3}},
					Triggers:    []Trigger{{Event: "dissipated", Value: 4, Next: "resolution"}},
				},
				{
					Name:        "resolution",
					Description: "Surviving swarms scatter and the corridor clears.",
				},
			},
		},
		"ambush-alley": {
			Name:        "Ambush Alley",
			Description: "Dormant clusters seeded along the route spring staged ambushes.",
			Phases: []Phase{
				{
					Name:        "setup",
					Description: "Clusters settle dormant out of detection range.",
					Waves: []Wave{
						{Center: config.Point{X: 0, Y: -120, Z: 300}, Count: 2},
						{Center: config.Point{X: 500, Y: -120, Z: -300}, Count: 2},
					},
					Triggers: []Trigger{{Event: "alert", Value: 1, Next: "escalation"}},
				},
				{
					Name:        "escalation",
					Description: "The first sprung ambush propagates alerts down the alley.",
					MoveTarget:  &config.Point{X: 250, Y: -40, Z: 0},
					Triggers:    []Trigger{{Event: "attack", Value: 8, Next: "resolution"}},
				},
				{
					Name:        "resolution",
					Description: "The alley falls quiet as damaged swarms withdraw.",
				},
			},
		},
		"attrition": {
			Name:        "Attrition",
			Description: "Waves of swarms grind against a slow-moving target until one side breaks.",
			Phases: []Phase{
				{
					Name:        "setup",
					Description: "An opening wave forms up at range.",
					Waves:       []Wave{{Center: config.Point{X: -600, Y: -90, Z: 0}, Count: 3}},
					Triggers:    []Trigger{{Event: "time_elapsed", Value: 45, Next: "escalation"}},
				},
				{
					Name:        "escalation",
					Description: "Reinforcement waves arrive as the first is worn down.",
					Waves:       []Wave{{Center: config.Point{X: -600, Y: -90, Z: 400}, Count: 3}},
					Triggers:    []Trigger{{Event: "dissipated", Value: 3, Next: "climax"}},
				},
				{
					Name:        "climax",
					Description: "Everything remaining converges on the target at once.",
					Waves:       []Wave{{Center: config.Point{X: -400, Y: -60, Z: -400}, Count: 4}},
					Triggers:    []Trigger{{Event: "time_elapsed", Value: 300, Next: "resolution"}},
				},
				{
					Name:        "resolution",
					Description: "The engagement winds down with whichever side endured.",
				},
			},
		},
	}
}
