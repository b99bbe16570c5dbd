package game

// PlayerCombat tracks the player's combo chain, roll/dodge and
// block/parry state. All timers are tick-based counters, not wall-clock
// time.Time math, so that two ticks with the same dt produce identical
// results.
type PlayerCombat struct {
	// Combo system
	ComboCount     int
	ComboWindowMs  float64
	LastAttackTick uint64

	// Roll (a dodge with i-frames)
	Rolling       bool
	RollTimerMs   float64
	RollCooldown  float64
	RollDirection float64 // radians

	// Block / parry
	Blocking           bool
	BlockCooldown      float64
	PerfectParryWindow bool
	ParryRemainingMs   float64

	// Invulnerability (from roll i-frames, spawn protection, or a perfect parry's stun window)
	InvulnMs float64
}

// Player combat balance constants, as a named-constant block.
const (
	RollDurationMs float64 = 300
	RollCooldownMs float64 = 1000
	RollInvulnMs   float64 = 200
	RollDistance   float64 = 90 // world-units, covered over RollDurationMs

	BlockCooldownMs    float64 = 400
	ParryWindowMs      float64 = 150 // window at block onset during which damage is nullified
	PerfectParryStunMs float64 = 1500
	PerfectParryEnergy float64 = 25

	ShieldDamageReduction float64 = 0.6 // fraction of damage blocked while merely blocking (not parrying)

	ComboWindowMs float64 = 600
)

// ComboDefinition defines timing windows and damage scaling for a combo chain.
type ComboDefinition struct {
	MaxHits     int
	WindowMs    float64
	DamageScale []float64
}

// DefaultCombo is the single combo table used by the player's default
// (and only, in this engine) attack: there is no weapon-selection model,
// so one combo definition covers every swing.
func DefaultCombo() ComboDefinition {
	return ComboDefinition{
		MaxHits:     3,
		WindowMs:    ComboWindowMs,
		DamageScale: []float64{1.0, 1.2, 1.5},
	}
}

// Reset clears combat state (called on respawn/restart).
func (c *PlayerCombat) Reset() {
	*c = PlayerCombat{}
}

// UpdateTimers decrements all ms-based timers by dtMs. Called once per tick.
func (c *PlayerCombat) UpdateTimers(dtMs float64) {
	if c.ComboWindowMs > 0 {
		c.ComboWindowMs -= dtMs
		if c.ComboWindowMs <= 0 {
			c.ComboWindowMs = 0
			c.ComboCount = 0
		}
	}
	if c.RollTimerMs > 0 {
		c.RollTimerMs -= dtMs
		if c.RollTimerMs <= 0 {
			c.RollTimerMs = 0
			c.Rolling = false
		}
	}
	if c.RollCooldown > 0 {
		c.RollCooldown -= dtMs
		if c.RollCooldown < 0 {
			c.RollCooldown = 0
		}
	}
	if c.BlockCooldown > 0 {
		c.BlockCooldown -= dtMs
		if c.BlockCooldown < 0 {
			c.BlockCooldown = 0
		}
	}
	if c.ParryRemainingMs > 0 {
		c.ParryRemainingMs -= dtMs
		if c.ParryRemainingMs <= 0 {
			c.ParryRemainingMs = 0
			c.PerfectParryWindow = false
		}
	}
	if c.InvulnMs > 0 {
		c.InvulnMs -= dtMs
		if c.InvulnMs < 0 {
			c.InvulnMs = 0
		}
	}
}

// IsInvulnerable reports whether incoming damage should be ignored.
func (c *PlayerCombat) IsInvulnerable() bool {
	return c.InvulnMs > 0
}

// CanRoll reports whether a roll can be initiated right now.
func (c *PlayerCombat) CanRoll() bool {
	return !c.Rolling && !c.Blocking && c.RollCooldown <= 0
}

// StartRoll begins a roll/dodge in the given direction.
func (c *PlayerCombat) StartRoll(direction float64) {
	c.Rolling = true
	c.RollTimerMs = RollDurationMs
	c.RollCooldown = RollCooldownMs
	c.RollDirection = direction
	c.InvulnMs = RollInvulnMs
}

// StartBlock opens the block + perfect-parry window. Invariant:
// perfectParryWindow ⇒ blocking.
func (c *PlayerCombat) StartBlock() {
	if c.BlockCooldown > 0 || c.Rolling {
		return
	}
	c.Blocking = true
	c.PerfectParryWindow = true
	c.ParryRemainingMs = ParryWindowMs
}

// EndBlock closes blocking and clears any parry window still open.
func (c *PlayerCombat) EndBlock() {
	c.Blocking = false
	c.PerfectParryWindow = false
	c.ParryRemainingMs = 0
	c.BlockCooldown = BlockCooldownMs
}

// RegisterHit records an attack hit for combo tracking and returns the
// damage multiplier to apply.
func (c *PlayerCombat) RegisterHit(currentTick uint64, combo ComboDefinition) float64 {
	if c.ComboWindowMs > 0 && c.ComboCount < combo.MaxHits {
		c.ComboCount++
	} else {
		c.ComboCount = 1
	}
	c.ComboWindowMs = combo.WindowMs
	c.LastAttackTick = currentTick

	idx := c.ComboCount - 1
	if idx >= 0 && idx < len(combo.DamageScale) {
		return combo.DamageScale[idx]
	}
	return 1.0
}
