package wolf

import (
	"math"

	"wolfpack/internal/game/vecmath"
)

// BehaviorContext carries the read-only inputs a behavior function needs
// to produce this tick's steering vector: each behavior computes a
// desired direction and scales it by its speed constant rather than
// mutating Velocity directly.
type BehaviorContext struct {
	Self         vecmath.Vec2
	Target       vecmath.Vec2
	TargetVel    vecmath.Vec2
	HasTarget    bool
	ElapsedMs    float64 // time in current state, ms
	NowMs        float64 // simulation clock, ms
	PackCentroid vecmath.Vec2
	PackCount    int // living members excluding self
}

// Patrol follows a cyclic waypoint list at PatrolSpeed, advancing to the
// next point once within 0.5 units of the current one.
func Patrol(w *Wolf, ctx BehaviorContext) vecmath.Vec2 {
	if len(w.PatrolPoints) == 0 {
		return vecmath.Zero
	}
	target := w.PatrolPoints[w.PatrolIndex]
	if ctx.Self.DistanceTo(target) <= 0.5 {
		w.PatrolIndex = (w.PatrolIndex + 1) % len(w.PatrolPoints)
		target = w.PatrolPoints[w.PatrolIndex]
	}
	dir := target.Sub(ctx.Self).Normalized()
	return dir.Scale(PatrolSpeed)
}

// Stalk approaches the target at StealthSpeed with a perpendicular
// sinusoidal zigzag (~0.2 amplitude), slowing to 30% once within 60% of
// the detection range.
func Stalk(w *Wolf, ctx BehaviorContext) vecmath.Vec2 {
	if !ctx.HasTarget {
		return vecmath.Zero
	}
	toTarget := ctx.Target.Sub(ctx.Self)
	dist := toTarget.Length()
	dir := toTarget.Normalized()

	speed := StealthSpeed
	if dist < DetectionRange*0.6 {
		speed *= 0.3
	}

	zigzag := dir.Perp().Scale(0.2 * math.Sin(ctx.NowMs/250))
	return dir.Add(zigzag).Normalized().Scale(speed)
}

// Chase pursues the target at SprintSpeed, aiming at the target position
// extrapolated by half a second of its current velocity.
func Chase(w *Wolf, ctx BehaviorContext) vecmath.Vec2 {
	if !ctx.HasTarget {
		return vecmath.Zero
	}
	predicted := ctx.Target.Add(ctx.TargetVel.Scale(0.5))
	dir := predicted.Sub(ctx.Self).Normalized()
	return dir.Scale(SprintSpeed)
}

// Flank aims at the target offset by +-FlankingAngleRad from the
// wolf-to-target vector, the side chosen by the wolf's pack-assigned
// FlankSide.
func Flank(w *Wolf, ctx BehaviorContext) vecmath.Vec2 {
	if !ctx.HasTarget {
		return vecmath.Zero
	}
	toTarget := ctx.Target.Sub(ctx.Self)
	side := w.FlankSide
	if side == 0 {
		side = 1
	}
	dir := toTarget.Rotated(FlankingAngleRad * side).Normalized()
	return dir.Scale(SprintSpeed)
}

// AmbushResult carries the burst-eligibility metadata Ambush exposes
// alongside its velocity.
type AmbushResult struct {
	Velocity vecmath.Vec2
	Bursting bool
}

// Ambush moves to the wolf's ambush spot at StealthSpeed; once there, it
// holds position until the target enters AmbushDetectionRange, then
// bursts toward it at SprintSpeed*1.2.
func Ambush(w *Wolf, ctx BehaviorContext) AmbushResult {
	if !w.AmbushReady {
		toSpot := w.AmbushSpot.Sub(ctx.Self)
		if toSpot.Length() <= 4 {
			w.AmbushReady = true
			return AmbushResult{}
		}
		return AmbushResult{Velocity: toSpot.Normalized().Scale(StealthSpeed)}
	}

	if !ctx.HasTarget {
		return AmbushResult{}
	}
	if ctx.Self.DistanceTo(ctx.Target) <= AmbushDetectionRange {
		dir := ctx.Target.Sub(ctx.Self).Normalized()
		return AmbushResult{Velocity: dir.Scale(SprintSpeed * 1.2), Bursting: true}
	}
	return AmbushResult{}
}

// Retreat moves away from the threat at BaseSpeed, optionally zigzagging
// perpendicular to the flight vector.
func Retreat(w *Wolf, ctx BehaviorContext, zigzag bool) vecmath.Vec2 {
	if !ctx.HasTarget {
		return vecmath.Zero
	}
	away := ctx.Self.Sub(ctx.Target).Normalized()
	if !zigzag {
		return away.Scale(BaseSpeed)
	}
	wiggle := away.Perp().Scale(0.25 * math.Sin(ctx.NowMs/180))
	return away.Add(wiggle).Normalized().Scale(BaseSpeed)
}

// Regroup moves toward the centroid of living pack members (excluding
// self), stopping within MinPackDistance.
func Regroup(w *Wolf, ctx BehaviorContext) vecmath.Vec2 {
	if ctx.PackCount == 0 {
		return vecmath.Zero
	}
	toCentroid := ctx.PackCentroid.Sub(ctx.Self)
	if toCentroid.Length() <= MinPackDistance {
		return vecmath.Zero
	}
	return toCentroid.Normalized().Scale(BaseSpeed)
}

// Circle produces tangent motion around the wolf's configured center and
// radius, with a radial correction of +-0.3 to hold the ring.
func Circle(w *Wolf, ctx BehaviorContext, dtSeconds float64) vecmath.Vec2 {
	center := w.CircleCenter
	toSelf := ctx.Self.Sub(center)
	dist := toSelf.Length()
	if dist < 1e-6 {
		toSelf = vecmath.Vec2{X: 1, Y: 0}
		dist = 1
	}

	angularSpeed := BaseSpeed / math.Max(w.CircleRadius, 1)
	w.circleAngle += angularSpeed * dtSeconds
	tangent := toSelf.Normalized().Perp()

	radialError := w.CircleRadius - dist
	radialCorrection := toSelf.Normalized().Scale(-clamp(radialError*0.05, -0.3, 0.3))

	return tangent.Add(radialCorrection).Normalized().Scale(BaseSpeed)
}

// LungeResult exposes the interpolation progress alongside the target
// position. Lunge is a position interpolation, not a velocity
// accumulation, so the manager applies Position directly rather than
// integrating it through physics.
type LungeResult struct {
	Position    vecmath.Vec2
	Progress    float64
	HitEligible bool
	Arrived     bool
}

// Lunge parametrically interpolates from LungeStart to LungeTarget over
// LungeDurationMs; once progress reaches 0.3 the wolf becomes eligible to
// register a hit.
func Lunge(w *Wolf) LungeResult {
	progress := w.GetLungeProgress()
	return LungeResult{
		Position:    vecmath.Lerp(w.LungeStart, w.LungeTarget, progress),
		Progress:    progress,
		HitEligible: progress >= 0.3,
		Arrived:     progress >= 1,
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
