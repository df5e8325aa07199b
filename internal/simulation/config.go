// Package simulation implements the headless per-tick game engine and the
// tuning rules it runs on. Rules can be loaded from a JSON file so a build can
// rebalance the game without recompiling.
package simulation

import (
	"encoding/json"
	"fmt"
	"os"
)

// Config holds all simulation rules for a game
type Config struct {
	Field      FieldConfig      `json:"field"`
	Player     PlayerConfig     `json:"player"`
	Terrain    TerrainConfig    `json:"terrain"`
	Difficulty DifficultyConfig `json:"difficulty"`
	Spawn      SpawnConfig      `json:"spawn"`
	Entities   EntitiesConfig   `json:"entities"`
	Scoring    ScoringConfig    `json:"scoring"`
}

// FieldConfig defines the visible play field
type FieldConfig struct {
	Width       float64 `json:"width"`
	Height      float64 `json:"height"`
	ScrollSpeed float64 `json:"scroll_speed"` // Units per tick applied to the scrolling world
}

// PlayerConfig defines the player craft and its physics
type PlayerConfig struct {
	StartX         float64 `json:"start_x"`
	Width          float64 `json:"width"`
	Height         float64 `json:"height"`
	Gravity        float64 `json:"gravity"`         // Added to velocity every tick
	Lift           float64 `json:"lift"`            // Impulse added per lift (negative rises)
	ObstacleMargin float64 `json:"obstacle_margin"` // Inward hitbox margin against obstacles
}

// TerrainConfig defines ground segment generation
type TerrainConfig struct {
	SegmentWidth     float64 `json:"segment_width"`
	MinElevation     float64 `json:"min_elevation"`
	MaxElevation     float64 `json:"max_elevation"`
	DefaultElevation float64 `json:"default_elevation"` // Returned when no segment covers x
	StartOverhang    float64 `json:"start_overhang"`    // Starting segment extends this far past the field
}

// DifficultyConfig defines the score-driven difficulty curve
type DifficultyConfig struct {
	InitialGap       float64 `json:"initial_gap"`
	GapDecrease      float64 `json:"gap_decrease"`   // Gap lost per GapScoreStep points
	GapScoreStep     int     `json:"gap_score_step"` // e.g. 10
	MinGap           float64 `json:"min_gap"`
	InitialFireRate  int     `json:"initial_fire_rate"`  // Ticks between enemy shots
	FireRateIncrease int     `json:"fire_rate_increase"` // Ticks removed per FireScoreStep points
	FireScoreStep    int     `json:"fire_score_step"`    // e.g. 50
	MinFireRate      int     `json:"min_fire_rate"`
}

// SpawnConfig defines the spawn schedule. Intervals are in ticks.
type SpawnConfig struct {
	ObstacleInterval   int     `json:"obstacle_interval"`
	ProjectileInterval int     `json:"projectile_interval"`
	EnemyInterval      int     `json:"enemy_interval"`
	SurvivorInterval   int     `json:"survivor_interval"`
	SurvivorChance     float64 `json:"survivor_chance"`
	SurvivorMinOffset  float64 `json:"survivor_min_offset"`
	SurvivorMaxOffset  float64 `json:"survivor_max_offset"`
	AbductorInterval   int     `json:"abductor_interval"`
	AbductorChance     float64 `json:"abductor_chance"`
	ObstacleEdge       float64 `json:"obstacle_edge"` // Minimum height of either obstacle column
	AirborneMinY       float64 `json:"airborne_min_y"` // Enemies and abductors spawn in [AirborneMinY, Height/2]
}

// Size is a bounding box size
type Size struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// EntitiesConfig defines per-entity sizes and speeds
type EntitiesConfig struct {
	ObstacleWidth         float64 `json:"obstacle_width"`
	Projectile            Size    `json:"projectile"`
	ProjectileSpeed       float64 `json:"projectile_speed"`
	Enemy                 Size    `json:"enemy"`
	EnemyProjectile       Size    `json:"enemy_projectile"`
	EnemyProjectileSpeed  float64 `json:"enemy_projectile_speed"` // Leftward, positive number
	Survivor              Size    `json:"survivor"`
	Abductor              Size    `json:"abductor"`
	AbductorSpeedBonus    float64 `json:"abductor_speed_bonus"` // Added to scroll speed
	AbductorCaptureRadius float64 `json:"abductor_capture_radius"`
}

// ScoringConfig defines points awarded per outcome
type ScoringConfig struct {
	EnemyDestroyed  int `json:"enemy_destroyed"`
	SurvivorRescued int `json:"survivor_rescued"`
	AbductorShot    int `json:"abductor_shot"` // Only while abducting
}

// DefaultConfig returns the stock arcade tuning
func DefaultConfig() *Config {
	return &Config{
		Field: FieldConfig{
			Width:       800,
			Height:      600,
			ScrollSpeed: 2,
		},
		Player: PlayerConfig{
			StartX:         100,
			Width:          30,
			Height:         20,
			Gravity:        0.3,
			Lift:           -8,
			ObstacleMargin: 10,
		},
		Terrain: TerrainConfig{
			SegmentWidth:     300,
			MinElevation:     30,
			MaxElevation:     100,
			DefaultElevation: 50,
			StartOverhang:    300,
		},
		Difficulty: DifficultyConfig{
			InitialGap:       250,
			GapDecrease:      0.5,
			GapScoreStep:     10,
			MinGap:           150,
			InitialFireRate:  180,
			FireRateIncrease: 1,
			FireScoreStep:    50,
			MinFireRate:      30,
		},
		Spawn: SpawnConfig{
			ObstacleInterval:   150,
			ProjectileInterval: 20,
			EnemyInterval:      150,
			SurvivorInterval:   150,
			SurvivorChance:     0.75,
			SurvivorMinOffset:  50,
			SurvivorMaxOffset:  250,
			AbductorInterval:   300,
			AbductorChance:     0.3,
			ObstacleEdge:       50,
			AirborneMinY:       50,
		},
		Entities: EntitiesConfig{
			ObstacleWidth:         20,
			Projectile:            Size{Width: 10, Height: 5},
			ProjectileSpeed:       5,
			Enemy:                 Size{Width: 20, Height: 20},
			EnemyProjectile:       Size{Width: 10, Height: 5},
			EnemyProjectileSpeed:  3,
			Survivor:              Size{Width: 10, Height: 20},
			Abductor:              Size{Width: 20, Height: 20},
			AbductorSpeedBonus:    2,
			AbductorCaptureRadius: 20,
		},
		Scoring: ScoringConfig{
			EnemyDestroyed:  10,
			SurvivorRescued: 50,
			AbductorShot:    50,
		},
	}
}

// LoadConfig loads simulation config from a JSON file
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		// Return defaults if file doesn't exist
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, fmt.Errorf("failed to read simulation config: %w", err)
	}

	config := DefaultConfig() // Start with defaults
	if err := json.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse simulation config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid simulation config %s: %w", path, err)
	}

	return config, nil
}

// Validate reports the first rule that cannot drive a simulation
func (c *Config) Validate() error {
	if c.Field.Width <= 0 || c.Field.Height <= 0 {
		return fmt.Errorf("field size must be positive, got %vx%v", c.Field.Width, c.Field.Height)
	}
	if c.Player.Width <= 0 || c.Player.Height <= 0 {
		return fmt.Errorf("player size must be positive")
	}
	if c.Terrain.SegmentWidth <= 0 {
		return fmt.Errorf("terrain.segment_width must be positive")
	}
	if c.Terrain.MinElevation > c.Terrain.MaxElevation {
		return fmt.Errorf("terrain elevation range inverted: [%v,%v]", c.Terrain.MinElevation, c.Terrain.MaxElevation)
	}
	if c.Difficulty.GapScoreStep <= 0 || c.Difficulty.FireScoreStep <= 0 {
		return fmt.Errorf("difficulty score steps must be positive")
	}
	if c.Difficulty.MinFireRate <= 0 {
		return fmt.Errorf("difficulty.min_fire_rate must be positive, got %d", c.Difficulty.MinFireRate)
	}

	intervals := []struct {
		name string
		v    int
	}{
		{"spawn.obstacle_interval", c.Spawn.ObstacleInterval},
		{"spawn.projectile_interval", c.Spawn.ProjectileInterval},
		{"spawn.enemy_interval", c.Spawn.EnemyInterval},
		{"spawn.survivor_interval", c.Spawn.SurvivorInterval},
		{"spawn.abductor_interval", c.Spawn.AbductorInterval},
	}
	for _, iv := range intervals {
		if iv.v <= 0 {
			return fmt.Errorf("%s must be positive, got %d", iv.name, iv.v)
		}
	}

	if p := c.Spawn.SurvivorChance; p < 0 || p > 1 {
		return fmt.Errorf("spawn.survivor_chance must be within [0,1], got %v", p)
	}
	if p := c.Spawn.AbductorChance; p < 0 || p > 1 {
		return fmt.Errorf("spawn.abductor_chance must be within [0,1], got %v", p)
	}

	if c.Spawn.SurvivorMinOffset > c.Spawn.SurvivorMaxOffset {
		return fmt.Errorf("survivor offset range inverted: [%v,%v]", c.Spawn.SurvivorMinOffset, c.Spawn.SurvivorMaxOffset)
	}

	ent := c.Entities
	positives := []struct {
		name string
		v    float64
	}{
		{"field.scroll_speed", c.Field.ScrollSpeed},
		{"entities.obstacle_width", ent.ObstacleWidth},
		{"entities.projectile.width", ent.Projectile.Width},
		{"entities.projectile.height", ent.Projectile.Height},
		{"entities.projectile_speed", ent.ProjectileSpeed},
		{"entities.enemy.width", ent.Enemy.Width},
		{"entities.enemy.height", ent.Enemy.Height},
		{"entities.enemy_projectile.width", ent.EnemyProjectile.Width},
		{"entities.enemy_projectile.height", ent.EnemyProjectile.Height},
		{"entities.enemy_projectile_speed", ent.EnemyProjectileSpeed},
		{"entities.survivor.width", ent.Survivor.Width},
		{"entities.survivor.height", ent.Survivor.Height},
		{"entities.abductor.width", ent.Abductor.Width},
		{"entities.abductor.height", ent.Abductor.Height},
		{"entities.abductor_capture_radius", ent.AbductorCaptureRadius},
	}
	for _, p := range positives {
		if !(p.v > 0) {
			return fmt.Errorf("%s must be positive, got %v", p.name, p.v)
		}
	}
	if ent.AbductorSpeedBonus < 0 {
		return fmt.Errorf("entities.abductor_speed_bonus must not be negative, got %v", ent.AbductorSpeedBonus)
	}

	// The widest gap over the highest ground must still leave both columns
	// their minimum height.
	if room := c.Field.Height - c.Terrain.MaxElevation - c.Difficulty.InitialGap - 2*c.Spawn.ObstacleEdge; room < 0 {
		return fmt.Errorf("field.height %v too short for an obstacle: short by %v", c.Field.Height, -room)
	}
	return nil
}

// GroundLine returns the y coordinate of the ground surface for an elevation
func (c *Config) GroundLine(elevation float64) float64 {
	return c.Field.Height - elevation
}
