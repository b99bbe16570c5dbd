package game

// PowerUpData is the per-entity payload for an EntityPowerUp. Only the kind is variant-specific; position/radius/active
// live on the shared header.
type PowerUpData struct {
	Kind PowerUpType
}

const (
	PowerUpRadius float64 = 16
	PowerUpScore  int     = 25

	HealthRestoreAmount float64 = 30
	EnergyRestoreAmount float64 = 40
	ShieldBonusMs       float64 = 6000
	SpeedBonusMs        float64 = 6000
	DamageBonusMs       float64 = 8000
	SpeedMultiplier     float64 = 1.5
	DamageBonusMultiplier float64 = 1.5
)

// NewPowerUpData returns a power-up payload of the given kind.
func NewPowerUpData(kind PowerUpType) *PowerUpData {
	return &PowerUpData{Kind: kind}
}

// Apply grants the power-up's effect to the collecting player, mutating
// pd in place. PowerUpHealth
// is handled by the caller directly against Entity.Health/MaxHealth,
// since PlayerData doesn't carry health itself. Shield/Speed/Damage
// bonuses use the player's existing timer fields where a direct analogue
// exists (rapid-fire/multi-shot get their own timers; shield is modeled
// as extended invulnerability, speed as an immediate boost window).
func (pu *PowerUpData) Apply(pd *PlayerData) {
	switch pu.Kind {
	case PowerUpEnergy:
		pd.Energy += EnergyRestoreAmount
		if pd.Energy > pd.MaxEnergy {
			pd.Energy = pd.MaxEnergy
		}
	case PowerUpShield:
		pd.Combat.InvulnMs += ShieldBonusMs
	case PowerUpSpeed:
		pd.Boosting = true
		pd.BoostCooldown = 0
	case PowerUpDamage:
		pd.DamageMultiplier = DamageBonusMultiplier
	case PowerUpRapidFire:
		pd.RapidFire = true
		pd.RapidFireMs = RapidFireDurationMs
	case PowerUpMultiShot:
		pd.MultiShot = true
		pd.MultiShotMs = MultiShotDurationMs
	}
}
