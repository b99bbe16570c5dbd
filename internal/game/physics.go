package game

// PhysicsStep runs velocity integration, per-variant friction, and a
// world-bounds clamp with restitution for non-player movables.
type PhysicsStep struct {
	WorldWidth  float64
	WorldHeight float64
}

const (
	WolfFriction       float64 = 0.9
	ProjectileFriction float64 = 1.0 // projectiles don't decelerate
	ObstacleFriction   float64 = 1.0 // obstacles are static

	DefaultRestitution float64 = 0.4
)

func frictionFor(e *Entity) float64 {
	switch e.Kind {
	case EntityPlayer:
		return PlayerFriction
	case EntityWolf:
		return WolfFriction
	case EntityEnemy:
		return EnemyFriction
	case EntityProjectile:
		return ProjectileFriction
	default:
		return ObstacleFriction
	}
}

// Step integrates one entity by dt seconds: position += velocity*dt,
// applies friction, then clamps to world bounds. Non-player, non-static
// movables bounce off the bound they violated, losing velocity to
// restitution; players and static entities simply clamp.
func (ps *PhysicsStep) Step(e *Entity, dt float64) {
	if e.Kind == EntityObstacle {
		return
	}

	e.Position = e.Position.Add(e.Velocity.Scale(dt))

	friction := frictionFor(e)
	e.Velocity = e.Velocity.Scale(friction)

	minX, maxX := e.Radius, ps.WorldWidth-e.Radius
	minY, maxY := e.Radius, ps.WorldHeight-e.Radius

	// Players clamp without bounce; every other movable reflects velocity
	// along the violated axis with restitution.
	bounce := e.Kind != EntityPlayer

	if e.Position.X < minX {
		e.Position.X = minX
		if bounce {
			e.Velocity.X = -e.Velocity.X * DefaultRestitution
		} else {
			e.Velocity.X = 0
		}
	} else if e.Position.X > maxX {
		e.Position.X = maxX
		if bounce {
			e.Velocity.X = -e.Velocity.X * DefaultRestitution
		} else {
			e.Velocity.X = 0
		}
	}
	if e.Position.Y < minY {
		e.Position.Y = minY
		if bounce {
			e.Velocity.Y = -e.Velocity.Y * DefaultRestitution
		} else {
			e.Velocity.Y = 0
		}
	} else if e.Position.Y > maxY {
		e.Position.Y = maxY
		if bounce {
			e.Velocity.Y = -e.Velocity.Y * DefaultRestitution
		} else {
			e.Velocity.Y = 0
		}
	}
}

// StepAll integrates every active entity in store iteration order.
func (ps *PhysicsStep) StepAll(store *EntityStore, dt float64) {
	store.IterActive(func(e *Entity) {
		ps.Step(e, dt)
	})
}
