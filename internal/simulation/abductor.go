package simulation

import "math"

// AbductorState is the behavior an abductor is currently running.
type AbductorState int

const (
	AbductorSeeking AbductorState = iota
	AbductorAbducting
	AbductorEscaped
)

func (s AbductorState) String() string {
	switch s {
	case AbductorSeeking:
		return "seeking"
	case AbductorAbducting:
		return "abducting"
	case AbductorEscaped:
		return "escaped"
	default:
		return "unknown"
	}
}

// AbductorOutcome is what an update changed outside the abductor itself.
type AbductorOutcome int

const (
	OutcomeNone AbductorOutcome = iota
	// OutcomeCaptured: the target was reached and is now abducted.
	OutcomeCaptured
	// OutcomeEscaped: the abductor left the top of the field with its target.
	OutcomeEscaped
	// OutcomeTargetLost: the target disappeared while being sought.
	OutcomeTargetLost
)

// Abductor hunts one survivor for its whole life. The survivor is held by ID
// and resolved by the engine every tick.
type Abductor struct {
	Body
	Speed    float64
	State    AbductorState
	TargetID EntityID
}

// Update runs one tick of the seek/abduct/escape machine. target is the live
// survivor behind TargetID, or nil if it is gone.
func (a *Abductor) Update(target *Survivor, scroll, captureRadius float64) AbductorOutcome {
	switch a.State {
	case AbductorSeeking:
		if target == nil || !target.Alive() {
			a.State = AbductorEscaped
			return OutcomeTargetLost
		}

		dx := target.X - a.X
		dy := target.Y - a.Y
		dist := math.Hypot(dx, dy)
		if dist < captureRadius {
			a.State = AbductorAbducting
			target.Abducted = true
			return OutcomeCaptured
		}

		// Close in on the target relative to the scrolling world.
		a.X += dx/dist*a.Speed - scroll
		a.Y += dy/dist*a.Speed

	case AbductorAbducting:
		a.X -= scroll
		a.Y -= a.Speed
		if target != nil && target.Alive() {
			target.X = a.X
			target.Y = a.Y + a.Height
		}
		if a.Y < 0 {
			a.State = AbductorEscaped
			return OutcomeEscaped
		}
	}
	return OutcomeNone
}

// Offscreen reports whether the abductor is done. Only escaped abductors are.
func (a *Abductor) Offscreen() bool {
	return a.State == AbductorEscaped
}
