package game

import (
	"math"

	"wolfpack/internal/game/spatial"
	"wolfpack/internal/game/vecmath"
	"wolfpack/internal/wolf"
)

// collisionQueryRadius bounds the spatial-grid query so it always reaches
// the largest possible pair of overlapping radii (two obstacles at
// ObstacleDefaultRadius plus headroom for shaped obstacles' diagonal).
const collisionQueryRadius float64 = 160

// CollisionSystem runs broad phase via the uniform grid, narrow-phase
// circle/circle and circle/rectangle overlap tests, and one resolution
// handler per variant pair, generalized from player-only pairs to every
// entity variant.
type CollisionSystem struct {
	grid     *spatial.SpatialGrid
	entities []*Entity // index -> entity, rebuilt every tick from the store

	lastChecks int // candidate pairs examined last Resolve, feeds performance_metrics()
}

// NewCollisionSystem allocates a grid sized for worldWidth x worldHeight.
func NewCollisionSystem(worldWidth, worldHeight float64, maxEntities int) *CollisionSystem {
	return &CollisionSystem{
		grid:     spatial.NewSpatialGrid(worldWidth, worldHeight, 100, maxEntities),
		entities: make([]*Entity, 0, maxEntities),
	}
}

// rebuild clears and refills the grid from the store's active entities in
// insertion order.
func (cs *CollisionSystem) rebuild(store *EntityStore) {
	cs.grid.Clear()
	cs.entities = cs.entities[:0]
	store.IterActive(func(e *Entity) {
		idx := uint32(len(cs.entities))
		cs.entities = append(cs.entities, e)
		cs.grid.Insert(idx, e.Position.X, e.Position.Y)
	})
}

// Resolve runs the full broad-phase + narrow-phase + dispatch pass once
// per tick. Handlers never create entities; derived visuals are appended
// to effects.
func (cs *CollisionSystem) Resolve(store *EntityStore, effects *EffectsBuffer) {
	cs.rebuild(store)

	seen := make(map[[2]uint32]struct{}, len(cs.entities)*2)
	checks := 0

	for i, e := range cs.entities {
		if e == nil || !e.Active {
			continue
		}
		candidates := cs.grid.QueryRadius(e.Position.X, e.Position.Y, collisionQueryRadius)
		for _, j := range candidates {
			if int(j) == i {
				continue
			}
			key := [2]uint32{uint32(i), j}
			if i > int(j) {
				key = [2]uint32{j, uint32(i)}
			}
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}

			other := cs.entities[j]
			if other == nil || !other.Active {
				continue
			}
			checks++
			cs.dispatch(e, other, effects)
		}
	}

	cs.lastChecks = checks
}

// LastChecks returns the number of candidate pairs examined in the most
// recent Resolve call.collision_checks).
func (cs *CollisionSystem) LastChecks() int { return cs.lastChecks }

// dispatch resolves one candidate pair by variant, trying both orderings
// since the broad phase reports unordered candidates.
func (cs *CollisionSystem) dispatch(a, b *Entity, effects *EffectsBuffer) {
	switch {
	case a.Kind == EntityPlayer && (b.Kind == EntityEnemy || b.Kind == EntityWolf):
		resolvePlayerVsAttacker(a, b, effects)
	case b.Kind == EntityPlayer && (a.Kind == EntityEnemy || a.Kind == EntityWolf):
		resolvePlayerVsAttacker(b, a, effects)

	case a.Kind == EntityProjectile && (b.Kind == EntityEnemy || b.Kind == EntityWolf):
		resolveProjectileVsAttacker(a, b, effects)
	case b.Kind == EntityProjectile && (a.Kind == EntityEnemy || a.Kind == EntityWolf):
		resolveProjectileVsAttacker(b, a, effects)

	case a.Kind == EntityProjectile && b.Kind == EntityObstacle:
		resolveProjectileVsObstacle(a, b)
	case b.Kind == EntityProjectile && a.Kind == EntityObstacle:
		resolveProjectileVsObstacle(b, a)

	case a.Kind == EntityPlayer && b.Kind == EntityPowerUp:
		resolvePlayerVsPowerUp(a, b)
	case b.Kind == EntityPlayer && a.Kind == EntityPowerUp:
		resolvePlayerVsPowerUp(b, a)

	case a.Kind == EntityEnemy && b.Kind == EntityEnemy:
		resolveEnemyVsEnemy(a, b)

	case a.Kind == EntityObstacle && isMovable(b):
		resolveMovableVsObstacle(b, a)
	case b.Kind == EntityObstacle && isMovable(a):
		resolveMovableVsObstacle(a, b)
	}
}

func isMovable(e *Entity) bool {
	return e.Kind != EntityObstacle
}

// overlapCircles returns the separation normal (pointing from b to a) and
// penetration depth for two circular bodies, or ok=false if they don't
// actually overlap (the broad phase over-reports candidates).
func overlapCircles(a, b *Entity) (normal vecmath.Vec2, depth float64, ok bool) {
	delta := a.Position.Sub(b.Position)
	dist := delta.Length()
	minDist := a.Radius + b.Radius
	if dist >= minDist {
		return vecmath.Vec2{}, 0, false
	}
	if dist < 0.0001 {
		return vecmath.Vec2{X: 1, Y: 0}, minDist, true
	}
	return delta.Scale(1 / dist), minDist - dist, true
}

// obstacleHalfExtents returns the obstacle's AABB half-width/height. For
// circular obstacles it degenerates to Radius on both axes so the caller
// can fall back to a circle/circle test.
func obstacleHalfExtents(o *Entity) (hw, hh float64, isRect bool) {
	if o.Obstacle == nil || o.Obstacle.Shape == ObstacleCircle {
		return o.Radius, o.Radius, false
	}
	return o.Obstacle.HalfWidth, o.Obstacle.HalfHeight, true
}

// overlapCircleRect resolves a circle against an axis-aligned rectangle
// via closest-point clamping.
func overlapCircleRect(circle, rect *Entity) (normal vecmath.Vec2, depth float64, ok bool) {
	hw, hh, isRect := obstacleHalfExtents(rect)
	if !isRect {
		return overlapCircles(circle, rect)
	}

	dx := circle.Position.X - rect.Position.X
	dy := circle.Position.Y - rect.Position.Y
	clampedX := math.Max(-hw, math.Min(hw, dx))
	clampedY := math.Max(-hh, math.Min(hh, dy))

	closest := vecmath.Vec2{X: rect.Position.X + clampedX, Y: rect.Position.Y + clampedY}
	delta := circle.Position.Sub(closest)
	dist := delta.Length()
	if dist >= circle.Radius {
		return vecmath.Vec2{}, 0, false
	}
	if dist < 0.0001 {
		return vecmath.Vec2{X: 0, Y: -1}, circle.Radius, true
	}
	return delta.Scale(1 / dist), circle.Radius - dist, true
}

// resolvePlayerVsAttacker handles the Player x Enemy/Wolf contact pair
// on top of PlayerData.ApplyDamage, with a contact-rate cooldown so a
// standing overlap doesn't deal damage every tick.
func resolvePlayerVsAttacker(player, attacker *Entity, effects *EffectsBuffer) {
	normal, depth, ok := overlapCircles(player, attacker)
	if !ok {
		return
	}

	// Wolf entities reuse EnemyData purely as attack-cooldown bookkeeping
	// (AI state itself lives in internal/wolf, keyed by the same id); the
	// bite damage constant still differs from a plain enemy's.
	if attacker.Enemy != nil && !attacker.Enemy.CanAttack() {
		return
	}

	pd := player.Player
	if pd == nil {
		return
	}

	baseDamage := EnemyAttackDamage
	if attacker.Kind == EntityWolf {
		baseDamage = wolf.WolfBiteDamage
	}
	if attacker.Enemy != nil {
		baseDamage *= attacker.Enemy.DamageMultiplier
	}

	applied, perfectParry := pd.ApplyDamage(baseDamage)
	if attacker.Enemy != nil {
		attacker.Enemy.RegisterAttack()
	}

	if applied > 0 {
		player.Health -= applied
		if player.Health < 0 {
			player.Health = 0
		}
		knockback := normal.Scale(8)
		player.Velocity = player.Velocity.Add(knockback)
		effects.AddFlash(*NewImpactFlash(player.Position.X, player.Position.Y, "#ff4444", applied/baseDamage))

		timing := EnemyBiteTiming()
		effects.AddTrail(*NewWeaponTrail(attacker.Position.X, attacker.Position.Y, "#ff4444", attacker.ID, timing.TrailType))
		effects.Shake.AddShake(timing.ShakeIntensity)
	}
	if perfectParry {
		attacker.Velocity = vecmath.Vec2{}
		if attacker.Enemy != nil {
			attacker.Enemy.AttackCooldownMs = PerfectParryStunMs
			attacker.Enemy.RequestStun()
		}
		effects.AddText(FloatingText{X: attacker.Position.X, Y: attacker.Position.Y, VY: -1, Text: "PARRY", Color: "#ffd700", Alpha: 1, Timer: 30})
	}

	separation := normal.Scale(depth * 0.5)
	player.Position = player.Position.Add(separation)
	attacker.Position = attacker.Position.Sub(separation)
}

// resolveProjectileVsAttacker implements Projectile × Enemy/Wolf.
func resolveProjectileVsAttacker(proj, target *Entity, effects *EffectsBuffer) {
	if _, _, ok := overlapCircles(proj, target); !ok {
		return
	}
	pdata := proj.Projectile
	if pdata == nil {
		return
	}

	target.Health -= pdata.Damage
	if target.Health < 0 {
		target.Health = 0
	}
	if target.Kind == EntityWolf && target.Health > 0 && target.Enemy != nil {
		target.Enemy.RequestHurt()
	}
	dir := proj.Velocity
	if dir.Length() > 0.0001 {
		target.Velocity = target.Velocity.Add(dir.Normalized().Scale(10))
	}
	effects.AddFlash(*NewImpactFlash(target.Position.X, target.Position.Y, "#ffaa00", 1))
	proj.Active = false
}

// resolveProjectileVsObstacle implements Projectile × Obstacle.
func resolveProjectileVsObstacle(proj, obstacle *Entity) {
	if _, _, ok := overlapCircleRect(proj, obstacle); !ok {
		return
	}
	proj.Active = false
	if obstacle.Obstacle != nil && obstacle.Obstacle.Destructible {
		pdata := proj.Projectile
		if pdata != nil {
			obstacle.Health -= pdata.Damage
		}
		if obstacle.Health <= 0 {
			obstacle.Active = false
		}
	}
}

// resolvePlayerVsPowerUp implements Player × PowerUp.
func resolvePlayerVsPowerUp(player, powerup *Entity) {
	if _, _, ok := overlapCircles(player, powerup); !ok {
		return
	}
	pd := player.Player
	pu := powerup.PowerUp
	if pd == nil || pu == nil {
		return
	}

	if pu.Kind == PowerUpHealth {
		player.Health = math.Min(player.MaxHealth, player.Health+HealthRestoreAmount)
	} else {
		pu.Apply(pd)
	}
	pd.Score += PowerUpScore
	powerup.Active = false
}

// resolveEnemyVsEnemy implements the Enemy × Enemy 50/50 separation.
func resolveEnemyVsEnemy(a, b *Entity) {
	normal, depth, ok := overlapCircles(a, b)
	if !ok {
		return
	}
	half := normal.Scale(depth * 0.5)
	a.Position = a.Position.Add(half)
	b.Position = b.Position.Sub(half)
}

// resolveMovableVsObstacle implements "anything movable × obstacle":
// separate by the full overlap and strip the normal-component of velocity
// so the entity slides along the obstacle's surface.
func resolveMovableVsObstacle(movable, obstacle *Entity) {
	normal, depth, ok := overlapCircleRect(movable, obstacle)
	if !ok {
		return
	}
	movable.Position = movable.Position.Add(normal.Scale(depth))

	vn := movable.Velocity.Dot(normal)
	if vn < 0 {
		movable.Velocity = movable.Velocity.Sub(normal.Scale(vn))
	}
}
