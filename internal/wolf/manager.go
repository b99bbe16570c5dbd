package wolf

import (
	"math/rand"

	"wolfpack/internal/game/id"
	"wolfpack/internal/game/vecmath"
	"wolfpack/internal/pathfind"
)

// Manager owns every live wolf and pack, and is the component the
// engine façade drives once per tick: an id.EntityID-keyed wolf registry
// plus a parallel pack index, both capacity-bounded. Alongside each map
// it keeps an insertion-order slice, mirroring internal/game's
// EntityStore.order, since plain map iteration in Go is randomized per
// call and would make which wolf/pack draws next from the shared rng
// vary between two otherwise identical runs.
type Manager struct {
	wolves     map[id.EntityID]*Wolf
	wolfOrder  []id.EntityID
	packs      map[uint32]*Pack
	packOrder  []uint32
	nextPack   uint32

	maxWolves int
	maxPacks  int

	pathfinder *pathfind.Pathfinder
}

// NewManager creates an empty manager capped at maxWolves concurrently
// alive wolves and maxPacks concurrently active packs.
func NewManager(maxWolves, maxPacks int, pf *pathfind.Pathfinder) *Manager {
	return &Manager{
		wolves:    make(map[id.EntityID]*Wolf, maxWolves),
		wolfOrder: make([]id.EntityID, 0, maxWolves),
		packs:     make(map[uint32]*Pack, maxPacks),
		packOrder: make([]uint32, 0, maxPacks),
		// pack IDs start at 1 so the zero value of Wolf.PackID
		// unambiguously means "no pack".
		nextPack:   1,
		maxWolves:  maxWolves,
		maxPacks:   maxPacks,
		pathfinder: pf,
	}
}

// Count returns the number of currently tracked (not necessarily alive)
// wolves.
func (m *Manager) Count() int { return len(m.wolves) }

// Get returns the AI binding for entityID, or nil if it isn't a tracked
// wolf.
func (m *Manager) Get(entityID id.EntityID) *Wolf { return m.wolves[entityID] }

// SpawnSolo registers a single wolf with no pack membership. Returns nil if at capacity.
func (m *Manager) SpawnSolo(entityID id.EntityID, wave int, rng *rand.Rand) *Wolf {
	if len(m.wolves) >= m.maxWolves {
		return nil
	}
	w := NewWolf(entityID, wave, rng)
	m.wolves[entityID] = w
	m.wolfOrder = append(m.wolfOrder, entityID)
	return w
}

// SpawnPack registers an alpha plus its supporting wolves as one pack.
// entityIDs[0] is the alpha; the rest are support. Returns nil if the
// pack cap is hit; wolves already registered via a partial spawn are
// left in place so the caller's entities aren't orphaned.
func (m *Manager) SpawnPack(entityIDs []id.EntityID, wave int, rng *rand.Rand) *Pack {
	if len(entityIDs) == 0 || len(m.packs) >= m.maxPacks {
		return nil
	}
	if len(entityIDs) > MaxPackSize {
		entityIDs = entityIDs[:MaxPackSize]
	}

	packID := m.nextPack
	m.nextPack++
	pack := NewPack(packID)

	for i, eid := range entityIDs {
		if len(m.wolves) >= m.maxWolves {
			break
		}
		w := NewWolf(eid, wave, rng)
		w.PackID = packID
		if i == 0 {
			w.Role = RoleAlpha
			pack.AlphaID = eid
		} else {
			w.Role = assignSupportRole(i, len(entityIDs))
		}
		m.wolves[eid] = w
		m.wolfOrder = append(m.wolfOrder, eid)
		pack.Members = append(pack.Members, eid)
	}

	if len(pack.Members) == 0 {
		return nil
	}
	m.packs[packID] = pack
	m.packOrder = append(m.packOrder, packID)
	return pack
}

func assignSupportRole(index, total int) Role {
	if index%2 == 1 {
		return RoleFlanker
	}
	return RoleAmbusher
}

// Despawn unregisters a wolf, e.g. once the owning entity is removed
// from the store. Pack membership is cleaned up lazily by Pack.Tick's
// prune step rather than here, since the manager doesn't know which
// pack a wolf belongs to without a reverse index.
func (m *Manager) Despawn(entityID id.EntityID) {
	if _, ok := m.wolves[entityID]; !ok {
		return
	}
	delete(m.wolves, entityID)
	for i, eid := range m.wolfOrder {
		if eid == entityID {
			m.wolfOrder[i] = m.wolfOrder[len(m.wolfOrder)-1]
			m.wolfOrder = m.wolfOrder[:len(m.wolfOrder)-1]
			break
		}
	}
}

// Update drives every pack's coordinator and then every wolf's state
// machine/behavior for one tick. targetID
// is the entity every wolf targets; in this single-
// player engine it is always the one live player, but the signature
// stays target-agnostic so a future multi-target mode doesn't need a
// wolf.Manager API break.
func (m *Manager) Update(dtMs, nowMs float64, view WorldView, rng *rand.Rand, targetID id.EntityID) {
	targetPos, hasTarget := view.Position(targetID)
	if hasTarget {
		hasTarget = view.Alive(targetID)
	}

	healthRatio := make(map[id.EntityID]float64, len(m.wolves))
	position := make(map[id.EntityID]vecmath.Vec2, len(m.wolves))
	for _, eid := range m.wolfOrder {
		w := m.wolves[eid]
		if r, ok := view.HealthRatio(eid); ok {
			healthRatio[eid] = r
		}
		if p, ok := view.Position(eid); ok {
			position[eid] = p
		}
		if !view.Alive(eid) && w.State != StateDead {
			w.forceTransition(StateDead)
		}
	}

	pctx := packContext{
		healthRatio: healthRatio,
		position:    position,
		targetPos:   targetPos,
		hasTarget:   hasTarget,
		targetID:    targetID,
	}

	live := m.packOrder[:0]
	for _, packID := range m.packOrder {
		pack := m.packs[packID]
		if pack.Tick(dtMs, m.wolves, pctx, rng) {
			live = append(live, packID)
		} else {
			delete(m.packs, packID)
		}
	}
	m.packOrder = live

	for _, eid := range m.wolfOrder {
		w := m.wolves[eid]
		if w.State == StateDead {
			continue
		}
		if !hasTarget {
			w.TargetID = id.Invalid
		} else if w.TargetID == id.Invalid {
			w.TargetID = targetID
		}

		packSize := 0
		centroid := vecmath.Zero
		if pack, ok := m.packs[w.PackID]; ok {
			packSize = len(pack.Members) - 1
			if packSize < 0 {
				packSize = 0
			}
			centroid = pack.centroid(pctx)
		}

		w.Update(dtMs, nowMs, view, m.pathfinder, rng, centroid, packSize)
	}
}

// Alive reports whether a wolf is tracked and not yet in the Dead state.
func (m *Manager) Alive(entityID id.EntityID) bool {
	w, ok := m.wolves[entityID]
	return ok && w.State != StateDead
}

// PackOf returns the pack a wolf belongs to, or nil if it isn't in one.
func (m *Manager) PackOf(entityID id.EntityID) *Pack {
	w, ok := m.wolves[entityID]
	if !ok || w.PackID == 0 {
		return nil
	}
	return m.packs[w.PackID]
}

// PackCount returns the number of currently active packs.
func (m *Manager) PackCount() int { return len(m.packs) }
