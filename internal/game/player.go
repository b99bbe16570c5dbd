package game

// PlayerData is the per-entity payload for an EntityPlayer. Position, velocity, rotation, radius and health/maxHealth
// live on the shared Entity header; this struct holds everything the
// Player variant adds on top of that header.
//
// Invariants (enforced by the methods below, checked by player_test.go):
//   - 0 <= Energy <= MaxEnergy
//   - at most one of {Attacking, Combat.Rolling} is true at a time
//   - Combat.PerfectParryWindow => Combat.Blocking
type PlayerData struct {
	Energy    float64
	MaxEnergy float64

	Lives int
	Score int
	Kills int

	Boosting      bool
	BoostCooldown float64 // ms

	Attacking         bool
	AttackRemainingMs float64 // counts down the wind-up/active/recovery window of the current swing

	ShootCooldownMs float64

	DamageMultiplier float64 // from power-ups, 1.0 = no bonus

	RapidFire   bool
	RapidFireMs float64
	MultiShot   bool
	MultiShotMs float64

	AimX, AimY float64 // last aim direction, unit vector
	MoveX, MoveY float64 // last movement input, clamped to unit disk

	Combat PlayerCombat
}

const (
	PlayerBaseMaxEnergy float64 = 100
	EnergyRegenRate     float64 = 15 // per second

	PlayerBaseMaxHealth float64 = 100
	PlayerRadius        float64 = 28
	PlayerMoveSpeed     float64 = 220 // world-units/s
	PlayerFriction      float64 = 0.85

	BoostSpeedMultiplier float64 = 1.8
	BoostEnergyCost      float64 = 30
	BoostCooldownMs      float64 = 600

	MeleeRange   float64 = 90
	MeleeDamage  float64 = 18
	MeleeArcRad  float64 = 2.0943951 // 120 degrees

	RapidFireDurationMs float64 = 8000
	MultiShotDurationMs float64 = 8000
	RapidFireCooldownDiv float64 = 2.5
	MultiShotSpreadRad   float64 = 0.26 // ~15 degrees between extra shots

	ShootCooldownBaseMs float64 = 220
)

// NewPlayerData returns a freshly spawned player's payload.
func NewPlayerData() *PlayerData {
	return &PlayerData{
		Energy:           PlayerBaseMaxEnergy,
		MaxEnergy:        PlayerBaseMaxEnergy,
		Lives:            3,
		DamageMultiplier: 1.0,
	}
}

// UpdateTimers advances energy regen and power-up/cooldown timers by one
// tick. dtMs is the tick's elapsed time in milliseconds.
func (pd *PlayerData) UpdateTimers(dtMs float64) {
	if pd.Energy < pd.MaxEnergy {
		pd.Energy += EnergyRegenRate * (dtMs / 1000)
		if pd.Energy > pd.MaxEnergy {
			pd.Energy = pd.MaxEnergy
		}
	}
	if pd.BoostCooldown > 0 {
		pd.BoostCooldown -= dtMs
		if pd.BoostCooldown < 0 {
			pd.BoostCooldown = 0
		}
	}
	if pd.ShootCooldownMs > 0 {
		pd.ShootCooldownMs -= dtMs
		if pd.ShootCooldownMs < 0 {
			pd.ShootCooldownMs = 0
		}
	}
	if pd.AttackRemainingMs > 0 {
		pd.AttackRemainingMs -= dtMs
		if pd.AttackRemainingMs <= 0 {
			pd.AttackRemainingMs = 0
			pd.Attacking = false
		}
	}
	if pd.RapidFire {
		pd.RapidFireMs -= dtMs
		if pd.RapidFireMs <= 0 {
			pd.RapidFireMs = 0
			pd.RapidFire = false
		}
	}
	if pd.MultiShot {
		pd.MultiShotMs -= dtMs
		if pd.MultiShotMs <= 0 {
			pd.MultiShotMs = 0
			pd.MultiShot = false
		}
	}
	pd.Combat.UpdateTimers(dtMs)
}

// CanBoost reports whether activate_boost would succeed right now.
func (pd *PlayerData) CanBoost() bool {
	return !pd.Boosting && pd.BoostCooldown <= 0 && pd.Energy >= BoostEnergyCost
}

// StartBoost consumes energy and begins boosting.
func (pd *PlayerData) StartBoost() {
	if !pd.CanBoost() {
		return
	}
	pd.Boosting = true
	pd.Energy -= BoostEnergyCost
}

// StopBoost ends boosting and starts its cooldown.
func (pd *PlayerData) StopBoost() {
	if !pd.Boosting {
		return
	}
	pd.Boosting = false
	pd.BoostCooldown = BoostCooldownMs
}

// CanAttack enforces the "at most one of attacking, rolling" invariant.
func (pd *PlayerData) CanAttack() bool {
	return !pd.Attacking && !pd.Combat.Rolling
}

// CanShoot reports whether player_shoot would fire right now.
func (pd *PlayerData) CanShoot() bool {
	return pd.ShootCooldownMs <= 0
}

// RegisterShot resets the shoot cooldown, divided by RapidFireCooldownDiv
// while the rapid-fire power-up is active.
func (pd *PlayerData) RegisterShot() {
	cooldown := ShootCooldownBaseMs
	if pd.RapidFire {
		cooldown /= RapidFireCooldownDiv
	}
	pd.ShootCooldownMs = cooldown
}

// ApplyDamage clamps incoming damage by the shield reduction while
// blocking, or zeroes it and returns a stun flag during a perfect-parry
// window. Returns
// the damage actually applied and whether the hit was perfectly parried.
func (pd *PlayerData) ApplyDamage(raw float64) (applied float64, perfectParry bool) {
	if pd.Combat.IsInvulnerable() || pd.Combat.Rolling {
		return 0, false
	}
	if pd.Combat.Blocking {
		if pd.Combat.PerfectParryWindow {
			pd.Energy += PerfectParryEnergy
			if pd.Energy > pd.MaxEnergy {
				pd.Energy = pd.MaxEnergy
			}
			return 0, true
		}
		return raw * (1 - ShieldDamageReduction), false
	}
	pd.Combat.InvulnMs = RollInvulnMs
	return raw, false
}
