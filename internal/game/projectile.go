package game

import "wolfpack/internal/game/id"

// ProjectileData is the per-entity payload for an EntityProjectile.
// Position/velocity/rotation/radius live on the shared Entity header; a
// projectile only adds ownership, damage and a remaining-lifetime timer.
type ProjectileData struct {
	OwnerID id.EntityID
	Damage  float64

	LifetimeMs float64
}

const (
	ProjectileRadius     float64 = 8
	ProjectileSpeed      float64 = 480 // world-units/s
	ProjectileLifetimeMs float64 = 3000
	ProjectileDamage     float64 = 15
)

// NewProjectileData returns a freshly fired projectile's payload.
func NewProjectileData(owner id.EntityID, damage float64) *ProjectileData {
	return &ProjectileData{
		OwnerID:    owner,
		Damage:     damage,
		LifetimeMs: ProjectileLifetimeMs,
	}
}

// Tick decrements the projectile's remaining lifetime and reports
// whether it has expired (the caller removes the entity on expiry).
func (pd *ProjectileData) Tick(dtMs float64) (expired bool) {
	pd.LifetimeMs -= dtMs
	return pd.LifetimeMs <= 0
}
