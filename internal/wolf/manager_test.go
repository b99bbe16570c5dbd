package wolf

import (
	"math/rand"
	"testing"

	"wolfpack/internal/game/id"
	"wolfpack/internal/game/vecmath"
)

// TestSpawnSoloRespectsCapacity verifies SpawnSolo refuses once
// maxWolves is reached.
func TestSpawnSoloRespectsCapacity(t *testing.T) {
	m := NewManager(1, 1, nil)
	rng := rand.New(rand.NewSource(1))

	if w := m.SpawnSolo(1, 1, rng); w == nil {
		t.Fatal("expected the first spawn to succeed")
	}
	if w := m.SpawnSolo(2, 1, rng); w != nil {
		t.Error("expected the second spawn to be refused at capacity")
	}
	if m.Count() != 1 {
		t.Errorf("expected Count 1, got %d", m.Count())
	}
}

// TestSpawnPackAssignsAlphaAndSupportRoles verifies entityIDs[0] becomes
// the alpha and the rest get alternating flanker/ambusher roles.
func TestSpawnPackAssignsAlphaAndSupportRoles(t *testing.T) {
	m := NewManager(10, 10, nil)
	rng := rand.New(rand.NewSource(1))

	pack := m.SpawnPack([]id.EntityID{1, 2, 3}, 1, rng)
	if pack == nil {
		t.Fatal("expected SpawnPack to succeed")
	}
	if pack.AlphaID != 1 {
		t.Errorf("expected wolf 1 as alpha, got %v", pack.AlphaID)
	}
	if m.Get(1).Role != RoleAlpha {
		t.Error("expected wolf 1's Role set to Alpha")
	}
	if m.Get(2).Role != RoleFlanker {
		t.Errorf("expected wolf 2 flanker, got %v", m.Get(2).Role)
	}
	if m.Get(3).Role != RoleAmbusher {
		t.Errorf("expected wolf 3 ambusher, got %v", m.Get(3).Role)
	}
	if m.PackCount() != 1 {
		t.Errorf("expected PackCount 1, got %d", m.PackCount())
	}
}

// TestDespawnRemovesFromOrderSlice verifies Despawn swap-removes the
// entity from wolfOrder as well as the map, so a later Update can't
// still visit it.
func TestDespawnRemovesFromOrderSlice(t *testing.T) {
	m := NewManager(10, 10, nil)
	rng := rand.New(rand.NewSource(1))
	m.SpawnSolo(1, 1, rng)
	m.SpawnSolo(2, 1, rng)
	m.SpawnSolo(3, 1, rng)

	m.Despawn(2)

	if m.Get(2) != nil {
		t.Error("expected wolf 2 removed from the registry")
	}
	if len(m.wolfOrder) != 2 {
		t.Fatalf("expected wolfOrder length 2, got %d", len(m.wolfOrder))
	}
	for _, eid := range m.wolfOrder {
		if eid == 2 {
			t.Error("expected wolf 2 removed from wolfOrder")
		}
	}
}

// TestUpdateIterationOrderIsDeterministic verifies two managers spawned
// with the same entity IDs in the same order visit their wolves in the
// same order on Update, even though the underlying registry is a map:
// this is the determinism guarantee wolfOrder exists to provide.
func TestUpdateIterationOrderIsDeterministic(t *testing.T) {
	build := func() *Manager {
		m := NewManager(10, 10, nil)
		rng := rand.New(rand.NewSource(1))
		for i := id.EntityID(1); i <= 20; i++ {
			m.SpawnSolo(i, 1, rng)
		}
		return m
	}

	recordOrder := func(m *Manager) []id.EntityID {
		view := newFakeWorldView()
		for _, eid := range m.wolfOrder {
			view.pos[eid] = vecmath.Zero
			view.alive[eid] = true
			view.health[eid] = 1.0
		}
		view.pos[99] = vecmath.Vec2{X: 1000, Y: 1000}
		view.alive[99] = true

		var visited []id.EntityID
		// Snapshot wolfOrder before Update, since Update itself doesn't
		// mutate it for solo wolves (no pack disbanding in play here).
		visited = append(visited, m.wolfOrder...)
		m.Update(16, 0, view, rand.New(rand.NewSource(1)), 99)
		return visited
	}

	a := recordOrder(build())
	b := recordOrder(build())

	if len(a) != len(b) {
		t.Fatalf("expected equal-length orderings, got %d and %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("expected identical iteration order at index %d, got %v and %v", i, a[i], b[i])
		}
	}
}

// TestUpdateTransitionsDeadEntityToStateDead verifies a wolf whose
// backing entity disappears from the world is forced into StateDead via
// forceTransition (not a raw field assignment), so its flags clear too.
func TestUpdateTransitionsDeadEntityToStateDead(t *testing.T) {
	m := NewManager(10, 10, nil)
	rng := rand.New(rand.NewSource(1))
	m.SpawnSolo(1, 1, rng)
	m.Get(1).State = StateStalking
	m.Get(1).StealthMode = true

	view := newFakeWorldView()
	// Deliberately omit entity 1 from view.alive: Alive() defaults to false.
	view.pos[1] = vecmath.Zero

	m.Update(16, 0, view, rng, id.Invalid)

	if m.Get(1).State != StateDead {
		t.Fatalf("expected StateDead, got %v", m.Get(1).State)
	}
	if m.Get(1).StealthMode {
		t.Error("expected StealthMode cleared by forceTransition's exit hook")
	}
}

// TestPackDisbandRemovesFromPackOrder verifies a pack that Tick reports
// as empty is dropped from both packs and packOrder.
func TestPackDisbandRemovesFromPackOrder(t *testing.T) {
	m := NewManager(10, 10, nil)
	rng := rand.New(rand.NewSource(1))
	pack := m.SpawnPack([]id.EntityID{1, 2}, 1, rng)
	if pack == nil {
		t.Fatal("expected SpawnPack to succeed")
	}

	view := newFakeWorldView()
	// Every pack member reports dead, so Pack.Tick prunes them all and
	// Tick returns false.
	view.pos[1] = vecmath.Zero
	view.pos[2] = vecmath.Zero

	m.Update(16, 0, view, rng, id.Invalid)

	if m.PackCount() != 0 {
		t.Errorf("expected the pack to disband, PackCount = %d", m.PackCount())
	}
	if len(m.packOrder) != 0 {
		t.Errorf("expected packOrder emptied, got %v", m.packOrder)
	}
}
