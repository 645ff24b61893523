// YAML config loader with CUE validation integration
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"swarmsim/internal/geom"
	"swarmsim/internal/swarm"
)

// Point is a world-space coordinate in meters. Y is depth and negative
// below the surface.
type Point struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
	Z float64 `yaml:"z"`
}

// Vec3 converts the point to a simulation vector.
func (p Point) Vec3() geom.Vec3 { return geom.Vec3{X: p.X, Y: p.Y, Z: p.Z} }

// SwarmTuning overrides the built-in swarm behavior defaults. Zero values
// fall back to defaults.
type SwarmTuning struct {
	UnitCount int `yaml:"unit_count"`

	MaxSpeed       float64 `yaml:"max_speed_mps"`
	MaxForce       float64 `yaml:"max_force"`
	NeighborRadius float64 `yaml:"neighbor_radius_m"`
	CohesionGain   float64 `yaml:"cohesion_gain"`
	SeparationGain float64 `yaml:"separation_gain"`
	AlignmentGain  float64 `yaml:"alignment_gain"`

	FormationRadius  float64 `yaml:"formation_radius_m"`
	NetHoleThreshold float64 `yaml:"net_hole_threshold"`

	DetectionRange float64 `yaml:"detection_range_m"`
	AttackRange    float64 `yaml:"attack_range_m"`
	StrikeRange    float64 `yaml:"strike_range_m"`
	AttackCooldown float64 `yaml:"attack_cooldown_s"`

	AmbushNear float64 `yaml:"ambush_near_m"`
	AmbushFar  float64 `yaml:"ambush_far_m"`

	Intelligence      float64 `yaml:"intelligence"`
	PredictionHorizon float64 `yaml:"prediction_horizon_s"`

	CoordinationRadius float64 `yaml:"coordination_radius_m"`
	AlertCooldown      float64 `yaml:"alert_cooldown_s"`

	MaxHealth         float64 `yaml:"max_health"`
	RegenRate         float64 `yaml:"regen_rate"`
	SignificantDamage float64 `yaml:"significant_damage"`
	FadeSeconds       float64 `yaml:"fade_s"`
}

// World bounds the simulation volume.
type World struct {
	Extent  float64 `yaml:"extent_m"`
	Floor   float64 `yaml:"floor_m"`
	Ceiling float64 `yaml:"ceiling_m"`
}

// SpawnGroup places a cluster of swarms around a center point.
type SpawnGroup struct {
	Name   string `yaml:"name"`
	Center Point  `yaml:"center"`
	Count  int    `yaml:"count"`
}

// TargetConfig describes the scripted target vessel. With waypoints the
// vessel follows them in a loop; without, it orbits the start point.
type TargetConfig struct {
	Start     Point   `yaml:"start"`
	Speed     float64 `yaml:"speed_mps"`
	Waypoints []Point `yaml:"waypoints"`
}

// SimulationConfig is the root configuration for the swarm simulation.
type SimulationConfig struct {
	Seed   int64         `yaml:"seed"`
	Swarm  SwarmTuning   `yaml:"swarm"`
	World  World         `yaml:"world"`
	Spawns []SpawnGroup  `yaml:"spawns"`
	Target *TargetConfig `yaml:"target"`
}

// SwarmConfig maps the YAML tuning onto the registry config. Missing
// values are filled in by the registry's normalization.
func (c *SimulationConfig) SwarmConfig() swarm.Config {
	return swarm.Config{
		UnitCount: c.Swarm.UnitCount,

		MaxSpeed:       c.Swarm.MaxSpeed,
		MaxForce:       c.Swarm.MaxForce,
		NeighborRadius: c.Swarm.NeighborRadius,
		CohesionGain:   c.Swarm.CohesionGain,
		SeparationGain: c.Swarm.SeparationGain,
		AlignmentGain:  c.Swarm.AlignmentGain,

		FormationRadius:  c.Swarm.FormationRadius,
		NetHoleThreshold: c.Swarm.NetHoleThreshold,

		DetectionRange: c.Swarm.DetectionRange,
		AttackRange:    c.Swarm.AttackRange,
		StrikeRange:    c.Swarm.StrikeRange,
		AttackCooldown: c.Swarm.AttackCooldown,

		AmbushNear: c.Swarm.AmbushNear,
		AmbushFar:  c.Swarm.AmbushFar,

		Intelligence:      c.Swarm.Intelligence,
		PredictionHorizon: c.Swarm.PredictionHorizon,

		CoordinationRadius: c.Swarm.CoordinationRadius,
		AlertCooldown:      c.Swarm.AlertCooldown,

		WorldExtent:  c.World.Extent,
		WorldFloor:   c.World.Floor,
		WorldCeiling: c.World.Ceiling,

		MaxHealth:         c.Swarm.MaxHealth,
		RegenRate:         c.Swarm.RegenRate,
		SignificantDamage: c.Swarm.SignificantDamage,
		FadeSeconds:       c.Swarm.FadeSeconds,
	}
}

// Load loads YAML config and validates it against a CUE schema.
func Load(configPath, cueSchemaPath string) (*SimulationConfig, error) {
	if err := ValidateWithCue(configPath, cueSchemaPath); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, err
	}
	var cfg SimulationConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	if len(cfg.Spawns) == 0 {
		return nil, fmt.Errorf("config %s declares no spawn groups", configPath)
	}

	return &cfg, nil
}
