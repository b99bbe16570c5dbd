package game

// AttackPhase defines the stages of a melee attack's animation.
type AttackPhase int

const (
	PhaseIdle     AttackPhase = iota // not attacking
	PhaseWindUp                      // anticipation
	PhaseActive                      // hitbox live
	PhaseRecovery                    // follow-through, cannot attack again
)

// TrailType is the visual style appended to the effects buffer for a hit.
type TrailType int

const (
	TrailNone TrailType = iota
	TrailArc            // curved swing (player melee)
	TrailRadial         // 360° burst (enemy/wolf bite)
)

// AttackTiming holds phase durations (ms) for a melee swing: the player's
// single melee attack and the enemy/wolf bite each get their own timing
// profile rather than a weapon-keyed table, since neither side chooses
// between multiple weapons.
type AttackTiming struct {
	WindUpMs   float64
	ActiveMs   float64
	RecoveryMs float64

	TrailType  TrailType
	TrailWidth float64 // arc half-width in radians

	ShakeIntensity float64
	ParticleCount  int

	KnockbackForce   float64
	AttackerPushback float64
	StunDurationMs   float64
}

// PlayerMeleeTiming is the player's perform_attack animation profile.
func PlayerMeleeTiming() AttackTiming {
	return AttackTiming{
		WindUpMs:         80,
		ActiveMs:         100,
		RecoveryMs:       150,
		TrailType:        TrailArc,
		TrailWidth:       MeleeArcRad / 2,
		ShakeIntensity:   2.0,
		ParticleCount:    3,
		KnockbackForce:   12,
		AttackerPushback: 4,
		StunDurationMs:   80,
	}
}

// EnemyBiteTiming is the enemy/wolf melee attack's animation profile.
func EnemyBiteTiming() AttackTiming {
	return AttackTiming{
		WindUpMs:         60,
		ActiveMs:         80,
		RecoveryMs:       120,
		TrailType:        TrailRadial,
		ShakeIntensity:   1.0,
		ParticleCount:    2,
		KnockbackForce:   8,
		AttackerPushback: 0,
		StunDurationMs:   0,
	}
}

// TotalMs returns the full animation duration in milliseconds.
func (t *AttackTiming) TotalMs() float64 {
	return t.WindUpMs + t.ActiveMs + t.RecoveryMs
}
