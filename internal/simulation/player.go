package simulation

func newPlayer(cfg *Config) Player {
	return Player{
		X:      cfg.Player.StartX,
		Y:      cfg.Field.Height / 2,
		Width:  cfg.Player.Width,
		Height: cfg.Player.Height,
	}
}

// Lift adds an impulse to the vertical velocity. Negative impulses rise.
func (p *Player) Lift(impulse float64) {
	p.Velocity += impulse
}

// Step integrates gravity and clamps the craft between the ceiling and the
// ground under its center. Velocity is zeroed on either clamp. It reports
// whether a clamp happened.
func (p *Player) Step(gravity, fieldHeight, elevation float64) bool {
	p.Velocity += gravity
	p.Y += p.Velocity

	floor := fieldHeight - p.Height - elevation
	if p.Y > floor {
		p.Y = floor
		p.Velocity = 0
		return true
	}
	if p.Y < 0 {
		p.Y = 0
		p.Velocity = 0
		return true
	}
	return false
}
