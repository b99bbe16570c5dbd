package game

import (
	"math"

	"wolfpack/internal/game/id"
	"wolfpack/internal/game/vecmath"
)

// engineWorldView adapts Engine's entity store and obstacle layout to the
// wolf.WorldView interface, so internal/wolf never imports internal/game
// back.
type engineWorldView struct {
	e *Engine
}

func (e *Engine) worldView() engineWorldView { return engineWorldView{e: e} }

func (v engineWorldView) Position(target id.EntityID) (vecmath.Vec2, bool) {
	ent := v.e.store.Get(target)
	if ent == nil || !ent.Active {
		return vecmath.Vec2{}, false
	}
	return ent.Position, true
}

func (v engineWorldView) Velocity(target id.EntityID) (vecmath.Vec2, bool) {
	ent := v.e.store.Get(target)
	if ent == nil || !ent.Active {
		return vecmath.Vec2{}, false
	}
	return ent.Velocity, true
}

func (v engineWorldView) SetVelocity(target id.EntityID, vel vecmath.Vec2) {
	if ent := v.e.store.Get(target); ent != nil {
		ent.Velocity = vel
	}
}

func (v engineWorldView) SetPosition(target id.EntityID, p vecmath.Vec2) {
	if ent := v.e.store.Get(target); ent != nil {
		ent.Position = p
	}
}

func (v engineWorldView) HealthRatio(target id.EntityID) (float64, bool) {
	ent := v.e.store.Get(target)
	if ent == nil || !ent.Active || ent.MaxHealth <= 0 {
		return 0, false
	}
	return ent.Health / ent.MaxHealth, true
}

func (v engineWorldView) Alive(target id.EntityID) bool {
	ent := v.e.store.Get(target)
	return ent != nil && ent.Active && ent.Health > 0
}

func (v engineWorldView) Walkable(cellX, cellY int) bool {
	return v.e.isWalkable(cellX, cellY)
}

func (v engineWorldView) ConsumeStunRequest(target id.EntityID) bool {
	ent := v.e.store.Get(target)
	if ent == nil || ent.Enemy == nil || !ent.Enemy.StunRequested {
		return false
	}
	ent.Enemy.StunRequested = false
	return true
}

func (v engineWorldView) ConsumeHurtRequest(target id.EntityID) bool {
	ent := v.e.store.Get(target)
	if ent == nil || ent.Enemy == nil || !ent.Enemy.HurtRequested {
		return false
	}
	ent.Enemy.HurtRequested = false
	return true
}

// isWalkable reports whether a pathfinder grid cell is free of obstacles.
// Backs both the pathfinder's WalkableFunc and the perception system's
// line-of-sight test, since both read the same obstacle
// layout through the entity store rather than a separately maintained grid.
func (e *Engine) isWalkable(cellX, cellY int) bool {
	cellSize := e.spatialCfg.PathfindCellSize
	if cellSize <= 0 {
		cellSize = 1
	}
	px := (float64(cellX) + 0.5) * cellSize
	py := (float64(cellY) + 0.5) * cellSize
	if px < 0 || py < 0 || px > e.worldWidth || py > e.worldHeight {
		return false
	}

	walkable := true
	e.store.IterActive(func(ent *Entity) {
		if !walkable || ent.Kind != EntityObstacle {
			return
		}
		hw, hh, isRect := obstacleHalfExtents(ent)
		dx := px - ent.Position.X
		dy := py - ent.Position.Y
		if isRect {
			if math.Abs(dx) <= hw && math.Abs(dy) <= hh {
				walkable = false
			}
		} else if dx*dx+dy*dy <= hw*hw {
			walkable = false
		}
	})
	return walkable
}
