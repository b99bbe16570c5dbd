package wolf

import (
	"math"
	"math/rand"

	"wolfpack/internal/game/id"
	"wolfpack/internal/game/vecmath"
	"wolfpack/internal/pathfind"
)

// WorldView is the narrow read/write surface a wolf needs into the
// entity store, satisfied by a small adapter in internal/game so this
// package never imports it back.
type WorldView interface {
	Position(target id.EntityID) (vecmath.Vec2, bool)
	Velocity(target id.EntityID) (vecmath.Vec2, bool)
	SetVelocity(target id.EntityID, v vecmath.Vec2)
	SetPosition(target id.EntityID, p vecmath.Vec2)
	HealthRatio(target id.EntityID) (ratio float64, ok bool)
	Alive(target id.EntityID) bool
	Walkable(cellX, cellY int) bool

	// ConsumeStunRequest/ConsumeHurtRequest report and clear a one-shot
	// signal raised by a collision resolver on the tick a hit lands, so
	// the state machine can react to damage without importing
	// internal/game's combat types.
	ConsumeStunRequest(target id.EntityID) bool
	ConsumeHurtRequest(target id.EntityID) bool
}

// Role is a wolf's assignment within its pack.
type Role int

const (
	RoleRegular Role = iota
	RoleAlpha
	RoleFlanker
	RoleAmbusher
)

func (r Role) String() string {
	switch r {
	case RoleAlpha:
		return "alpha"
	case RoleFlanker:
		return "flanker"
	case RoleAmbusher:
		return "ambusher"
	default:
		return "regular"
	}
}

// Wolf is one adversary's AI binding: identity, perception state, the
// state machine, and the scratch fields the behavior library reads and
// writes every tick. Position/velocity/health are never duplicated here
// beyond what a behavior needs to reason about between ticks (e.g. an
// ambush spot) — the entity header in internal/game stays authoritative,
// reached only through WorldView.
type Wolf struct {
	ID     id.EntityID
	PackID uint32
	Role   Role

	State    State
	StateMs  float64 // elapsed time in current state, ms

	TargetID   id.EntityID
	Aggression float64 // rolled at spawn in [0.2, 0.8]
	Kills      int

	Difficulty float64 // stat multiplier from DifficultyBase/DifficultyGrowth

	// Patrol
	PatrolPoints []vecmath.Vec2
	PatrolIndex  int

	// Ambush
	AmbushSpot  vecmath.Vec2
	AmbushReady bool

	// Flank
	FlankSide float64 // -1 or +1

	// Lunge
	LungeStart   vecmath.Vec2
	LungeTarget  vecmath.Vec2
	LungeMs      float64
	lungeArrived bool
	lungePending bool // set on entering StateLunging; consumed on the first Update to latch start/target

	// Circle
	CircleCenter vecmath.Vec2
	CircleRadius float64
	circleAngle  float64

	// Path following, populated by the chase/retreat behaviors on a
	// pathfinder failure degrades to direct steering.
	path      []vecmath.Vec2
	pathIndex int

	// Flags set/cleared by state enter/exit hooks.
	StealthMode        bool
	SprintMode         bool
	AmbushConcealed    bool
	HowlBroadcast      bool
	RetreatPathPending bool

	biteCooldownMs float64
}

// NewWolf creates a wolf bound to entityID, with difficulty scaled for
// the given wave.
func NewWolf(entityID id.EntityID, wave int, rng *rand.Rand) *Wolf {
	return &Wolf{
		ID:         entityID,
		State:      StateIdle,
		Aggression: 0.2 + rng.Float64()*0.6,
		Difficulty: DifficultyForWave(wave),
	}
}

// DifficultyForWave applies the pack's difficulty scaling formula:
// DifficultyBase * DifficultyGrowth^(wave-1).
func DifficultyForWave(wave int) float64 {
	exp := wave - 1
	if exp < 0 {
		exp = 0
	}
	return DifficultyBase * math.Pow(DifficultyGrowth, float64(exp))
}

// CanBite reports whether the wolf's melee attack is off cooldown.
func (w *Wolf) CanBite() bool { return w.biteCooldownMs <= 0 }

// RegisterBite resets the bite cooldown.
func (w *Wolf) RegisterBite() { w.biteCooldownMs = WolfBiteCooldownMs }

// UpdateTimers advances the bite cooldown by one tick.
func (w *Wolf) UpdateTimers(dtMs float64) {
	if w.biteCooldownMs > 0 {
		w.biteCooldownMs -= dtMs
		if w.biteCooldownMs < 0 {
			w.biteCooldownMs = 0
		}
	}
}

// GetLungeProgress reports the lunge's elapsed fraction of
// LungeDurationMs, clamped to [0,1].
func (w *Wolf) GetLungeProgress() float64 {
	p := w.LungeMs / LungeDurationMs
	if p < 0 {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}

// findPath requests a path from the pathfinder, falling back to nil
// (meaning "steer directly") on any failure: a pathfinder failure
// degrades chase to direct steering toward the target position, no
// error is surfaced.
func (w *Wolf) findPath(pf *pathfind.Pathfinder, from, to vecmath.Vec2, nowMs float64) {
	path, ok := pf.FindPath(from, to, nowMs)
	if !ok || len(path) == 0 {
		w.path = nil
		w.pathIndex = 0
		return
	}
	w.path = path
	w.pathIndex = 0
}

// Update advances one wolf by one tick: resolve its target, run at most
// one state transition, then apply the behavior(s) bound to the
// resulting state and write the outcome back through view.
func (w *Wolf) Update(dtMs float64, nowMs float64, view WorldView, pf *pathfind.Pathfinder, rng *rand.Rand, packCentroid vecmath.Vec2, packSize int) {
	w.StateMs += dtMs
	w.UpdateTimers(dtMs)

	self, selfOK := view.Position(w.ID)
	if !selfOK {
		return
	}

	hasTarget := w.TargetID != id.Invalid && view.Alive(w.TargetID)
	if w.TargetID != id.Invalid && !hasTarget {
		// Failure semantics: dangling target treated as missing.
		w.TargetID = id.Invalid
	}

	var target, targetVel vecmath.Vec2
	var distance float64
	if hasTarget {
		target, _ = view.Position(w.TargetID)
		targetVel, _ = view.Velocity(w.TargetID)
		distance = self.DistanceTo(target)
	}

	healthRatio, _ := view.HealthRatio(w.ID)

	in := transitionInput{
		hasTarget:   hasTarget,
		distance:    distance,
		healthRatio: healthRatio,
		aggression:  w.Aggression,
		packSize:    packSize,
		elapsedMs:   w.StateMs,
		rng:         rng,
		tookStun:    view.ConsumeStunRequest(w.ID),
		tookHurt:    view.ConsumeHurtRequest(w.ID),
	}
	w.stepState(in)

	if w.State == StateLunging && w.lungePending {
		w.LungeStart = self
		if hasTarget {
			w.LungeTarget = target
		} else {
			w.LungeTarget = self
		}
		w.LungeMs = 0
		w.lungePending = false
	}

	ctx := BehaviorContext{
		Self: self, Target: target, TargetVel: targetVel, HasTarget: hasTarget,
		ElapsedMs: w.StateMs, NowMs: nowMs,
		PackCentroid: packCentroid, PackCount: packSize,
	}

	switch w.State {
	case StateIdle, StateHurt, StateStunned, StateHowling, StateDying, StateDead:
		view.SetVelocity(w.ID, vecmath.Zero)
	case StatePatrol:
		view.SetVelocity(w.ID, Patrol(w, ctx))
	case StateStalking:
		view.SetVelocity(w.ID, Stalk(w, ctx))
	case StateChasing:
		w.updateChase(self, target, nowMs, pf, view, ctx)
	case StateFlanking:
		view.SetVelocity(w.ID, Flank(w, ctx))
	case StateAttacking:
		view.SetVelocity(w.ID, vecmath.Zero)
	case StateAmbush:
		res := Ambush(w, ctx)
		view.SetVelocity(w.ID, res.Velocity)
	case StateRetreating:
		if w.RetreatPathPending && hasTarget {
			w.findPath(pf, self, self.Sub(target).Normalized().Scale(400).Add(self), nowMs)
			w.RetreatPathPending = false
		}
		view.SetVelocity(w.ID, Retreat(w, ctx, true))
	case StateRegrouping:
		view.SetVelocity(w.ID, Regroup(w, ctx))
	case StateLunging:
		res := Lunge(w)
		view.SetPosition(w.ID, res.Position)
		view.SetVelocity(w.ID, vecmath.Zero)
		w.lungeArrived = res.Arrived
		w.LungeMs += dtMs
	}
}

// updateChase follows a cached A* path when one is available, degrading
// to direct steering on a pathfinder failure.
func (w *Wolf) updateChase(self, target vecmath.Vec2, nowMs float64, pf *pathfind.Pathfinder, view WorldView, ctx BehaviorContext) {
	if w.path == nil && pf != nil {
		w.findPath(pf, self, target, nowMs)
	}
	if wp, ok := w.nextWaypoint(self, 8); ok {
		predicted := wp
		dir := predicted.Sub(self).Normalized()
		view.SetVelocity(w.ID, dir.Scale(SprintSpeed))
		return
	}
	view.SetVelocity(w.ID, Chase(w, ctx))
}

// nextWaypoint returns the path's current target point and advances
// past it once the wolf is within arrival distance, or (zero, false) if
// no path is loaded.
func (w *Wolf) nextWaypoint(from vecmath.Vec2, arriveDist float64) (vecmath.Vec2, bool) {
	if w.path == nil || w.pathIndex >= len(w.path) {
		return vecmath.Zero, false
	}
	wp := w.path[w.pathIndex]
	if from.DistanceTo(wp) <= arriveDist {
		w.pathIndex++
		if w.pathIndex >= len(w.path) {
			return vecmath.Zero, false
		}
		wp = w.path[w.pathIndex]
	}
	return wp, true
}
