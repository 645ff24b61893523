package swarm

// Config carries all tuning for the swarm simulation. Zero or out-of-range
// values are replaced by defaults in Normalize, mirroring how degenerate
// inputs elsewhere degrade instead of failing.
type Config struct {
	UnitCount int

	MaxSpeed       float64
	MaxForce       float64
	NeighborRadius float64
	CohesionGain   float64
	SeparationGain float64
	AlignmentGain  float64

	FormationRadius  float64
	NetHoleThreshold float64

	DetectionRange float64
	AttackRange    float64
	StrikeRange    float64
	AttackCooldown float64

	// Ambush band: target inside [AmbushNear, AmbushFar] but outside
	// DetectionRange may trigger a primed Gathering.
	AmbushNear float64
	AmbushFar  float64

	Intelligence      float64
	PredictionHorizon float64

	CoordinationRadius float64
	AlertCooldown      float64

	WorldExtent  float64
	WorldFloor   float64
	WorldCeiling float64

	DormantTime float64
	GatherTime  float64
	SearchTime  float64
	FleeTime    float64
	ReformTime  float64

	MaxHealth         float64
	RegenRate         float64
	SignificantDamage float64
	FadeSeconds       float64

	ClusterJitter float64
	DefaultTick   float64
}

// DefaultConfig returns the stock tuning.
func DefaultConfig() Config {
	return Config{
		UnitCount: 200,

		MaxSpeed:       14,
		MaxForce:       30,
		NeighborRadius: 4,
		CohesionGain:   2.2,
		SeparationGain: 1.6,
		AlignmentGain:  0.8,

		FormationRadius:  22,
		NetHoleThreshold: 0.8,

		DetectionRange: 140,
		AttackRange:    45,
		StrikeRange:    18,
		AttackCooldown: 1.5,

		AmbushNear: 140,
		AmbushFar:  350,

		Intelligence:      0.6,
		PredictionHorizon: 2.5,

		CoordinationRadius: 260,
		AlertCooldown:      8,

		WorldExtent:  2000,
		WorldFloor:   -180,
		WorldCeiling: -4,

		DormantTime: 12,
		GatherTime:  5,
		SearchTime:  20,
		FleeTime:    4,
		ReformTime:  6,

		MaxHealth:         100,
		RegenRate:         0.04,
		SignificantDamage: 0.15,
		FadeSeconds:       5,

		ClusterJitter: 60,
		DefaultTick:   1.0 / 30.0,
	}
}

// Normalize replaces non-positive or inconsistent values with defaults.
func (c *Config) Normalize() {
	def := DefaultConfig()
	if c.UnitCount <= 0 {
		c.UnitCount = def.UnitCount
	}
	if c.MaxSpeed <= 0 {
		c.MaxSpeed = def.MaxSpeed
	}
	if c.MaxForce <= 0 {
		c.MaxForce = def.MaxForce
	}
	if c.NeighborRadius <= 0 {
		c.NeighborRadius = def.NeighborRadius
	}
	if c.CohesionGain <= 0 {
		c.CohesionGain = def.CohesionGain
	}
	if c.SeparationGain <= 0 {
		c.SeparationGain = def.SeparationGain
	}
	if c.AlignmentGain <= 0 {
		c.AlignmentGain = def.AlignmentGain
	}
	if c.FormationRadius <= 0 {
		c.FormationRadius = def.FormationRadius
	}
	if c.NetHoleThreshold <= 0 || c.NetHoleThreshold >= 1 {
		c.NetHoleThreshold = def.NetHoleThreshold
	}
	if c.DetectionRange <= 0 {
		c.DetectionRange = def.DetectionRange
	}
	if c.AttackRange <= 0 {
		c.AttackRange = def.AttackRange
	}
	if c.StrikeRange <= 0 {
		c.StrikeRange = def.StrikeRange
	}
	if c.AttackCooldown <= 0 {
		c.AttackCooldown = def.AttackCooldown
	}
	if c.AmbushNear <= 0 {
		c.AmbushNear = c.DetectionRange
	}
	if c.AmbushFar <= c.AmbushNear {
		c.AmbushFar = c.AmbushNear * 2.5
	}
	if c.Intelligence <= 0 {
		c.Intelligence = def.Intelligence
	}
	if c.PredictionHorizon <= 0 {
		c.PredictionHorizon = def.PredictionHorizon
	}
	if c.CoordinationRadius <= 0 {
		c.CoordinationRadius = def.CoordinationRadius
	}
	if c.AlertCooldown <= 0 {
		c.AlertCooldown = def.AlertCooldown
	}
	if c.WorldExtent <= 0 {
		c.WorldExtent = def.WorldExtent
	}
	if c.WorldFloor >= c.WorldCeiling {
		c.WorldFloor = def.WorldFloor
		c.WorldCeiling = def.WorldCeiling
	}
	if c.DormantTime <= 0 {
		c.DormantTime = def.DormantTime
	}
	if c.GatherTime <= 0 {
		c.GatherTime = def.GatherTime
	}
	if c.SearchTime <= 0 {
		c.SearchTime = def.SearchTime
	}
	if c.FleeTime <= 0 {
		c.FleeTime = def.FleeTime
	}
	if c.ReformTime <= 0 {
		c.ReformTime = def.ReformTime
	}
	if c.MaxHealth <= 0 {
		c.MaxHealth = def.MaxHealth
	}
	if c.RegenRate <= 0 {
		c.RegenRate = def.RegenRate
	}
	if c.SignificantDamage <= 0 {
		c.SignificantDamage = def.SignificantDamage
	}
	if c.FadeSeconds <= 0 {
		c.FadeSeconds = def.FadeSeconds
	}
	if c.ClusterJitter <= 0 {
		c.ClusterJitter = def.ClusterJitter
	}
	if c.DefaultTick <= 0 {
		c.DefaultTick = def.DefaultTick
	}
}
