package battleship

type ShotOutcome uint8

const (
	ShotOutcomeMiss ShotOutcome = iota
	ShotOutcomeHit
	ShotOutcomeAlreadyAttacked
)

func (so ShotOutcome) String() string {
	switch so {
	case ShotOutcomeHit:
		return "hit"
	case ShotOutcomeAlreadyAttacked:
		return "already_attacked"
	default:
		return "miss"
	}
}

// ResolveShot is the single authority for shot legality. A repeat
// target returns ShotOutcomeAlreadyAttacked and mutates nothing.
// target must be in bounds.
func ResolveShot(target Coordinates, defender *Board, attacker *TrackingGrid) ShotOutcome {
	if attacker.AlreadyFiredAt(target) {
		return ShotOutcomeAlreadyAttacked
	}

	result := defender.ReceiveShot(target)

	// cannot fail: the cell was checked above
	_ = attacker.Record(target, result)

	if result == HitResultHit {
		return ShotOutcomeHit
	}
	return ShotOutcomeMiss
}
