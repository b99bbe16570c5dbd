package game

import "wolfpack/internal/game/id"

// EnemyData is the per-entity payload for a non-wolf hostile. Enemies run a single stateless wander-then-chase
// loop, no state machine and no pack membership — the adversary early
// waves spawn before wolves start appearing (wave > 3, see
// WolfSpawnStartWave in waves.go).
type EnemyData struct {
	TargetID id.EntityID

	WanderAngle float64

	AttackCooldownMs float64

	// DamageMultiplier scales bite/attack damage. Ordinary enemies leave
	// it at 1.0; wolves set it to their wave difficulty factor.
	DamageMultiplier float64

	// StunRequested/HurtRequested are one-shot flags a collision
	// resolver sets the tick a hit lands; a wolf's WorldView adapter
	// reads and clears them to drive its Hurt/Stunned transitions.
	// Plain enemies never consume them since they have no state machine.
	StunRequested bool
	HurtRequested bool
}

const (
	EnemyBaseHealth  float64 = 30
	EnemyRadius      float64 = 24
	EnemyMoveSpeed   float64 = 90 // world-units/s
	EnemyFriction    float64 = 0.88
	EnemyChaseRange  float64 = 320
	EnemyAttackRange float64 = 50
	EnemyAttackDamage float64 = 8
	EnemyAttackCooldownMs float64 = 900
)

// NewEnemyData returns a freshly spawned enemy's payload.
func NewEnemyData() *EnemyData {
	return &EnemyData{DamageMultiplier: 1.0}
}

// UpdateTimers advances the enemy's attack cooldown by one tick.
func (ed *EnemyData) UpdateTimers(dtMs float64) {
	if ed.AttackCooldownMs > 0 {
		ed.AttackCooldownMs -= dtMs
		if ed.AttackCooldownMs < 0 {
			ed.AttackCooldownMs = 0
		}
	}
}

// CanAttack reports whether the enemy's melee swing is off cooldown.
func (ed *EnemyData) CanAttack() bool {
	return ed.AttackCooldownMs <= 0
}

// RegisterAttack resets the attack cooldown.
func (ed *EnemyData) RegisterAttack() {
	ed.AttackCooldownMs = EnemyAttackCooldownMs
}

// RequestStun flags a perfect-parry (or equivalent) stun for the next
// read, on top of the plain attack-cooldown penalty every attacker pays.
func (ed *EnemyData) RequestStun() { ed.StunRequested = true }

// RequestHurt flags a landed non-fatal hit for the next read.
func (ed *EnemyData) RequestHurt() { ed.HurtRequested = true }
