package wolf

import (
	"math/rand"
	"testing"

	"wolfpack/internal/game/id"
	"wolfpack/internal/game/vecmath"
)

// fakeWorldView is a minimal in-memory WorldView for exercising Wolf.Update
// and the state machine without a real entity store.
type fakeWorldView struct {
	pos      map[id.EntityID]vecmath.Vec2
	vel      map[id.EntityID]vecmath.Vec2
	health   map[id.EntityID]float64
	alive    map[id.EntityID]bool
	walkable bool
	stunReq  map[id.EntityID]bool
	hurtReq  map[id.EntityID]bool
}

func newFakeWorldView() *fakeWorldView {
	return &fakeWorldView{
		pos:      make(map[id.EntityID]vecmath.Vec2),
		vel:      make(map[id.EntityID]vecmath.Vec2),
		health:   make(map[id.EntityID]float64),
		alive:    make(map[id.EntityID]bool),
		walkable: true,
		stunReq:  make(map[id.EntityID]bool),
		hurtReq:  make(map[id.EntityID]bool),
	}
}

func (v *fakeWorldView) Position(target id.EntityID) (vecmath.Vec2, bool) {
	p, ok := v.pos[target]
	return p, ok
}

func (v *fakeWorldView) Velocity(target id.EntityID) (vecmath.Vec2, bool) {
	p, ok := v.vel[target]
	return p, ok
}

func (v *fakeWorldView) SetVelocity(target id.EntityID, vel vecmath.Vec2) { v.vel[target] = vel }
func (v *fakeWorldView) SetPosition(target id.EntityID, p vecmath.Vec2)   { v.pos[target] = p }

func (v *fakeWorldView) HealthRatio(target id.EntityID) (float64, bool) {
	r, ok := v.health[target]
	return r, ok
}

func (v *fakeWorldView) Alive(target id.EntityID) bool { return v.alive[target] }

func (v *fakeWorldView) Walkable(cellX, cellY int) bool { return v.walkable }

func (v *fakeWorldView) ConsumeStunRequest(target id.EntityID) bool {
	r := v.stunReq[target]
	v.stunReq[target] = false
	return r
}

func (v *fakeWorldView) ConsumeHurtRequest(target id.EntityID) bool {
	r := v.hurtReq[target]
	v.hurtReq[target] = false
	return r
}

// maxSource is a rand.Source that always yields Float64() close to 1,
// for deterministically failing a "< chance" guard in tests.
type maxSource struct{}

func (maxSource) Int63() int64 { return 1<<63 - 1<<10 }
func (maxSource) Seed(int64)   {}

// zeroSource is a rand.Source that always yields Float64() == 0, for
// deterministically passing a "< chance" guard in tests.
type zeroSource struct{}

func (zeroSource) Int63() int64 { return 0 }
func (zeroSource) Seed(int64)   {}

const selfID id.EntityID = 1
const targetID id.EntityID = 2

// TestRetreatOnCriticalHealth covers the retreat-on-critical-HP scenario:
// a chasing wolf whose health_ratio drops below RetreatHealthFraction
// must transition to Retreating and have RetreatPathPending set so
// Wolf.Update requests a flee path on its next tick.
func TestRetreatOnCriticalHealth(t *testing.T) {
	w := NewWolf(selfID, 1, rand.New(rand.NewSource(1)))
	w.State = StateChasing
	w.TargetID = targetID

	in := transitionInput{
		hasTarget:   true,
		distance:    300,
		healthRatio: RetreatHealthFraction - 0.01,
		rng:         rand.New(rand.NewSource(1)),
	}
	if !w.stepState(in) {
		t.Fatal("expected a transition to fire")
	}
	if w.State != StateRetreating {
		t.Fatalf("expected StateRetreating, got %v", w.State)
	}
	if !w.RetreatPathPending {
		t.Error("expected RetreatPathPending set on entering Retreating")
	}
}

// TestAmbushSpring covers the ambush-spring scenario: a wolf holding an
// ambush spot bursts toward the target once it enters
// AmbushDetectionRange, and the state machine independently promotes it
// to Attacking at the same range.
func TestAmbushSpring(t *testing.T) {
	w := NewWolf(selfID, 1, rand.New(rand.NewSource(1)))
	w.State = StateAmbush
	w.AmbushReady = true

	ctx := BehaviorContext{
		Self:      vecmath.Vec2{X: 0, Y: 0},
		Target:    vecmath.Vec2{X: AmbushDetectionRange - 10, Y: 0},
		HasTarget: true,
	}
	res := Ambush(w, ctx)
	if !res.Bursting {
		t.Error("expected Bursting true once target is within AmbushDetectionRange")
	}
	if res.Velocity.Length() == 0 {
		t.Error("expected a nonzero burst velocity")
	}

	in := transitionInput{
		hasTarget:   true,
		distance:    AmbushDetectionRange - 10,
		healthRatio: 1,
		rng:         rand.New(rand.NewSource(1)),
	}
	if !w.stepState(in) {
		t.Fatal("expected Ambush -> Attacking to fire")
	}
	if w.State != StateAttacking {
		t.Fatalf("expected StateAttacking, got %v", w.State)
	}
	if w.AmbushConcealed {
		t.Error("expected AmbushConcealed cleared on leaving Ambush")
	}
}

// TestWolfUpdateLatchesLungeOnEntry verifies that the first Update call
// after an Attacking -> Lunging roll latches LungeStart/LungeTarget from
// the wolf's current position, since enterState itself has no access to
// world positions.
func TestWolfUpdateLatchesLungeOnEntry(t *testing.T) {
	view := newFakeWorldView()
	view.pos[selfID] = vecmath.Vec2{X: 10, Y: 0}
	view.pos[targetID] = vecmath.Vec2{X: 10 + AttackRange - 1, Y: 0}
	view.alive[selfID] = true
	view.alive[targetID] = true
	view.health[selfID] = 1.0

	w := NewWolf(selfID, 1, rand.New(rand.NewSource(1)))
	w.State = StateAttacking
	w.TargetID = targetID

	rng := rand.New(zeroSource{}) // forces the lunge chance roll to succeed
	w.Update(16, 0, view, nil, rng, vecmath.Zero, 0)

	if w.State != StateLunging {
		t.Fatalf("expected StateLunging, got %v", w.State)
	}
	if w.LungeStart != (vecmath.Vec2{X: 10, Y: 0}) {
		t.Errorf("expected LungeStart latched to self position, got %v", w.LungeStart)
	}
	if w.LungeTarget != view.pos[targetID] {
		t.Errorf("expected LungeTarget latched to target position, got %v", w.LungeTarget)
	}
	if w.lungePending {
		t.Error("expected lungePending cleared after latching")
	}
}
