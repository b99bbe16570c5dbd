package wolf

import (
	"math"
	"math/rand"

	"wolfpack/internal/game/id"
	"wolfpack/internal/game/vecmath"
)

// Tactic is the pack-level formation chosen each tick.
type Tactic int

const (
	TacticHarass Tactic = iota
	TacticHunt
	TacticSurround
	TacticDrive
	TacticPincer
	TacticRetreat
	TacticOverwhelm
)

// Formation is the spatial arrangement chosen jointly with Tactic.
type Formation int

const (
	FormationScatter Formation = iota
	FormationHunt
	FormationDefensive
	FormationPincer
	FormationAmbush
)

func (f Formation) String() string {
	switch f {
	case FormationHunt:
		return "hunt"
	case FormationDefensive:
		return "defensive"
	case FormationPincer:
		return "pincer"
	case FormationAmbush:
		return "ambush"
	default:
		return "scatter"
	}
}

func (t Tactic) String() string {
	switch t {
	case TacticHunt:
		return "hunt"
	case TacticSurround:
		return "surround"
	case TacticDrive:
		return "drive"
	case TacticPincer:
		return "pincer"
	case TacticRetreat:
		return "retreat"
	case TacticOverwhelm:
		return "overwhelm"
	default:
		return "harass"
	}
}

// Pack coordinates a set of wolves toward a shared target: a mutex-free
// (the manager already serializes the single-threaded tick) owning
// struct with a member set, a leader-election-on-death idiom, and
// morale/coordination/tactic state.
type Pack struct {
	ID       uint32
	AlphaID  id.EntityID
	Members  []id.EntityID

	Morale       float64
	Coordination float64
	Tactic       Tactic
	Formation    Formation

	lastHowlMs float64

	// recentKills feeds updateMorale's recent-kills term. It is not
	// decayed: a monotonic per-run tally keeps morale reactive to hunt
	// success without inventing an undocumented decay time constant.
	recentKills int
}

// NewPack creates an empty pack with neutral morale/coordination.
func NewPack(packID uint32) *Pack {
	return &Pack{ID: packID, Morale: 1.0, Coordination: 0.5}
}

// packContext is everything PackTick needs pulled from the world in one
// pass, avoiding repeated WorldView round-trips per member.
type packContext struct {
	healthRatio map[id.EntityID]float64
	position    map[id.EntityID]vecmath.Vec2
	targetPos   vecmath.Vec2
	hasTarget   bool
	targetID    id.EntityID
}

// Tick runs the per-pack per-tick sequence: prune dead members, elect a
// new alpha if needed, update morale and coordination, choose a tactic,
// then assign per-member targets/flags. Returns false if the pack should
// be disbanded (empty after pruning).
func (p *Pack) Tick(dtMs float64, wolves map[id.EntityID]*Wolf, ctx packContext, rng *rand.Rand) bool {
	p.pruneDead(wolves)
	if len(p.Members) == 0 {
		return false
	}

	p.electAlphaIfNeeded(wolves, ctx)

	avgHealth := p.averageHealthRatio(ctx)
	p.updateMorale(avgHealth)
	p.updateCoordination(dtMs, ctx)

	distToTarget := math.MaxFloat64
	if ctx.hasTarget {
		centroid := p.centroid(ctx)
		distToTarget = centroid.DistanceTo(ctx.targetPos)
	}
	p.chooseTactic(distToTarget, avgHealth)
	p.assignRoles(wolves, ctx, rng)

	p.maybeHowl(dtMs, wolves, ctx)
	return true
}

func (p *Pack) pruneDead(wolves map[id.EntityID]*Wolf) {
	alive := p.Members[:0]
	for _, m := range p.Members {
		w, ok := wolves[m]
		if !ok || w.State == StateDead {
			continue
		}
		alive = append(alive, m)
	}
	p.Members = alive
}

// electAlphaIfNeeded replaces a dead or missing alpha with the member
// scoring highest on health_ratio + aggression + 0.1*kills.
func (p *Pack) electAlphaIfNeeded(wolves map[id.EntityID]*Wolf, ctx packContext) {
	if alpha, ok := wolves[p.AlphaID]; ok && alpha.State != StateDead {
		return
	}
	var best id.EntityID
	bestScore := -math.MaxFloat64
	for _, m := range p.Members {
		w := wolves[m]
		score := ctx.healthRatio[m] + w.Aggression + 0.1*float64(w.Kills)
		if score > bestScore {
			bestScore = score
			best = m
		}
	}
	if best != id.Invalid {
		if old, ok := wolves[p.AlphaID]; ok {
			old.Role = RoleRegular
		}
		p.AlphaID = best
		wolves[best].Role = RoleAlpha
	}
}

func (p *Pack) averageHealthRatio(ctx packContext) float64 {
	if len(p.Members) == 0 {
		return 0
	}
	sum := 0.0
	for _, m := range p.Members {
		sum += ctx.healthRatio[m]
	}
	return sum / float64(len(p.Members))
}

func (p *Pack) centroid(ctx packContext) vecmath.Vec2 {
	if len(p.Members) == 0 {
		return vecmath.Zero
	}
	sum := vecmath.Zero
	for _, m := range p.Members {
		sum = sum.Add(ctx.position[m])
	}
	return sum.Scale(1 / float64(len(p.Members)))
}

// updateMorale computes
// (1.0 + 0.1*(size-1)) * avg_health_ratio + 0.15*recent_kills + 0.2*alpha_alive,
// clamped to [0.2, 1.5]. recent_kills is read from the pack's own
// running kill tally (see RegisterKill) rather than re-derived per tick.
func (p *Pack) updateMorale(avgHealthRatio float64) {
	size := float64(len(p.Members))
	alphaAlive := 0.0
	if p.AlphaID != id.Invalid {
		alphaAlive = 1.0
	}
	morale := (1.0 + 0.1*(size-1)) * avgHealthRatio
	morale += 0.15 * float64(p.recentKills)
	morale += 0.2 * alphaAlive
	p.Morale = clamp(morale, 0.2, 1.5)
}

func (p *Pack) updateCoordination(dtMs float64, ctx packContext) {
	centroid := p.centroid(ctx)
	avgDist := 0.0
	for _, m := range p.Members {
		avgDist += ctx.position[m].DistanceTo(centroid)
	}
	if len(p.Members) > 0 {
		avgDist /= float64(len(p.Members))
	}

	delta := 0.001 * dtMs
	if avgDist < MaxPackDistance {
		p.Coordination = math.Min(1, p.Coordination+delta)
	} else {
		p.Coordination = math.Max(0, p.Coordination-delta)
	}
}

// chooseTactic picks the pack's tactic and formation for this tick from
// pack health, morale, coordination, member count, and distance to target.
func (p *Pack) chooseTactic(distToTarget, packHealthRatio float64) {
	size := len(p.Members)
	switch {
	case packHealthRatio < 0.3:
		p.Tactic = TacticRetreat
	case p.Morale > 1 && size >= 3 && distToTarget <= AttackRange*1.5:
		p.Tactic = TacticOverwhelm
	case distToTarget > DetectionRange:
		p.Tactic = TacticSurround
	case distToTarget > AttackRange*2 && p.Coordination > 0.7:
		p.Tactic = TacticDrive
	case distToTarget <= AttackRange*2 && p.Coordination > 0.7:
		p.Tactic = TacticPincer
	default:
		p.Tactic = TacticHarass
	}
	if p.Tactic == TacticDrive && size <= 2 {
		p.Tactic = TacticPincer
	}

	switch p.Tactic {
	case TacticRetreat:
		p.Formation = FormationDefensive
	case TacticSurround, TacticOverwhelm:
		p.Formation = FormationHunt
	case TacticPincer:
		p.Formation = FormationPincer
	case TacticDrive:
		p.Formation = FormationAmbush
	default:
		p.Formation = FormationScatter
	}
}

// assignRoles sets per-tactic per-member targets and flags. Surround
// spaces members evenly around the target at SurroundRadiusFactor x
// AttackRange; drive/pincer alternate members between the two flank
// sides.
func (p *Pack) assignRoles(wolves map[id.EntityID]*Wolf, ctx packContext, rng *rand.Rand) {
	if !ctx.hasTarget {
		return
	}
	n := len(p.Members)
	if n == 0 {
		return
	}

	switch p.Tactic {
	case TacticSurround, TacticOverwhelm:
		radius := SurroundRadiusFactor * AttackRange
		for i, m := range p.Members {
			angle := (2 * math.Pi * float64(i)) / float64(n)
			spot := ctx.targetPos.Add(vecmath.FromAngle(angle).Scale(radius))
			w := wolves[m]
			w.AmbushSpot = spot
			w.TargetID = ctx.targetID
		}
	case TacticDrive, TacticPincer:
		for i, m := range p.Members {
			w := wolves[m]
			w.TargetID = ctx.targetID
			if i%2 == 0 {
				w.FlankSide = 1
				w.Role = RoleFlanker
			} else {
				w.FlankSide = -1
				w.Role = RoleFlanker
			}
		}
	case TacticRetreat:
		for _, m := range p.Members {
			wolves[m].TargetID = ctx.targetID
		}
	default:
		for _, m := range p.Members {
			wolves[m].TargetID = ctx.targetID
		}
	}
}

// maybeHowl fires a pack rally once HowlCooldownMs has elapsed: the
// alpha howls first, the k-th follower joins k*HowlStaggerMs later, and
// success boosts morale by 0.3 (clamped to 1.5).
func (p *Pack) maybeHowl(dtMs float64, wolves map[id.EntityID]*Wolf, ctx packContext) {
	p.lastHowlMs += dtMs
	if p.lastHowlMs < HowlCooldownMs {
		return
	}
	if !ctx.hasTarget || len(p.Members) == 0 {
		return
	}

	alpha, ok := wolves[p.AlphaID]
	if !ok {
		return
	}
	alpha.forceTransition(StateHowling)

	k := 0
	for _, m := range p.Members {
		if m == p.AlphaID {
			continue
		}
		k++
		w := wolves[m]
		w.forceTransition(StateHowling)
		w.StateMs = -HowlStaggerMs * float64(k) // staggered entry: clears after the stagger elapses
	}

	p.lastHowlMs = 0
	p.Morale = clamp(p.Morale+0.3, 0.2, 1.5)
}

// RegisterKill bumps the pack's kill tally used by updateMorale's
// recent-kills term.
func (p *Pack) RegisterKill() { p.recentKills++ }
