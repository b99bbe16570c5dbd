package wolf

import (
	"math/rand"
	"testing"
)

func newTestWolf(s State) *Wolf {
	w := &Wolf{State: s}
	w.enterState(s)
	return w
}

// TestAnyStateDeadOverridesEverything verifies the zero-health guard
// preempts every other transition, including one already queued for the
// current from-state.
func TestAnyStateDeadOverridesEverything(t *testing.T) {
	w := newTestWolf(StateChasing)
	in := transitionInput{
		hasTarget:   true,
		distance:    10, // would also satisfy Chasing -> Attacking
		healthRatio: 0,
		rng:         rand.New(rand.NewSource(1)),
	}
	if !w.stepState(in) {
		t.Fatal("expected a transition to fire")
	}
	if w.State != StateDying {
		t.Fatalf("expected StateDying on health_ratio <= 0, got %v", w.State)
	}
}

// TestStunOverridesOrdinaryTransition verifies a landed stun preempts
// the from-state table even when an ordinary transition would also
// fire, and that it does not fire twice in a row.
func TestStunOverridesOrdinaryTransition(t *testing.T) {
	w := newTestWolf(StateChasing)
	rng := rand.New(rand.NewSource(1))

	in := transitionInput{hasTarget: true, distance: 10, healthRatio: 1, tookStun: true, rng: rng}
	if !w.stepState(in) {
		t.Fatal("expected the stun override to fire")
	}
	if w.State != StateStunned {
		t.Fatalf("expected StateStunned, got %v", w.State)
	}

	// A second tookStun tick while already Stunned must not re-fire the
	// override (stepState should fall through to the ordinary table,
	// which has no guard keeping the wolf in place before StunnedDurationMs).
	in2 := transitionInput{healthRatio: 1, tookStun: true, elapsedMs: 0, rng: rng}
	fired := w.stepState(in2)
	if fired && w.State != StateStunned {
		t.Errorf("expected state to remain Stunned or not transition, got %v", w.State)
	}
}

// TestHurtOverrideYieldsToStun verifies that when both tookStun and
// tookHurt are raised on the same tick, stun takes priority.
func TestHurtOverrideYieldsToStun(t *testing.T) {
	w := newTestWolf(StateStalking)
	in := transitionInput{healthRatio: 1, tookStun: true, tookHurt: true, rng: rand.New(rand.NewSource(1))}
	w.stepState(in)
	if w.State != StateStunned {
		t.Fatalf("expected stun to take priority over hurt, got %v", w.State)
	}
}

// TestHurtOverrideFiresAlone verifies tookHurt alone moves a wolf to Hurt.
func TestHurtOverrideFiresAlone(t *testing.T) {
	w := newTestWolf(StateFlanking)
	in := transitionInput{healthRatio: 1, tookHurt: true, rng: rand.New(rand.NewSource(1))}
	if !w.stepState(in) {
		t.Fatal("expected the hurt override to fire")
	}
	if w.State != StateHurt {
		t.Fatalf("expected StateHurt, got %v", w.State)
	}
	if w.SprintMode {
		t.Error("expected SprintMode cleared on leaving Flanking")
	}
}

// TestStunHurtOverridesLockedOutDuringDeath verifies a dying or dead
// wolf cannot be knocked into Stunned/Hurt by a stale signal.
func TestStunHurtOverridesLockedOutDuringDeath(t *testing.T) {
	w := newTestWolf(StateDying)
	in := transitionInput{healthRatio: 1, tookStun: true, tookHurt: true, elapsedMs: 0, rng: rand.New(rand.NewSource(1))}
	w.stepState(in)
	if w.State != StateDying {
		t.Fatalf("expected to remain Dying, got %v", w.State)
	}
}

// TestAttackingLungeChanceRoll verifies the Attacking -> Lunging
// transition is gated on LungeChancePerAttackTick: a near-zero roll
// fires it, a near-one roll does not.
func TestAttackingLungeChanceRoll(t *testing.T) {
	succeed := newTestWolf(StateAttacking)
	in := transitionInput{hasTarget: true, distance: AttackRange - 1, healthRatio: 1, rng: rand.New(zeroSource{})}
	if !succeed.stepState(in) {
		t.Fatal("expected the lunge roll to fire with a near-zero rng draw")
	}
	if succeed.State != StateLunging {
		t.Fatalf("expected StateLunging, got %v", succeed.State)
	}
	if !succeed.lungePending {
		t.Error("expected lungePending set on entering Lunging")
	}

	fail := newTestWolf(StateAttacking)
	in2 := transitionInput{hasTarget: true, distance: AttackRange - 1, healthRatio: 1, rng: rand.New(maxSource{})}
	if fail.stepState(in2) {
		t.Errorf("expected no transition with a near-one rng draw, got %v", fail.State)
	}
}

// TestLungingReturnsToAttackingOnArrival verifies Lunging -> Attacking
// fires once lungeArrived is set (driven by Wolf.Update/Lunge, not the
// guard table itself).
func TestLungingReturnsToAttackingOnArrival(t *testing.T) {
	w := newTestWolf(StateLunging)
	w.lungeArrived = true
	in := transitionInput{healthRatio: 1, rng: rand.New(rand.NewSource(1))}
	if !w.stepState(in) {
		t.Fatal("expected Lunging -> Attacking to fire once arrived")
	}
	if w.State != StateAttacking {
		t.Fatalf("expected StateAttacking, got %v", w.State)
	}
}

// TestForceTransitionRunsExitAndEnterHooks verifies forceTransition
// clears the outgoing state's flags and sets the incoming state's
// flags, unlike a raw w.State assignment.
func TestForceTransitionRunsExitAndEnterHooks(t *testing.T) {
	w := newTestWolf(StateStalking)
	if !w.StealthMode {
		t.Fatal("expected StealthMode set entering Stalking")
	}

	w.forceTransition(StateHowling)
	if w.StealthMode {
		t.Error("expected StealthMode cleared by exitState(Stalking)")
	}
	if !w.HowlBroadcast {
		t.Error("expected HowlBroadcast set by enterState(Howling)")
	}
	if w.StateMs != 0 {
		t.Errorf("expected StateMs reset to 0, got %v", w.StateMs)
	}
}

// TestForceTransitionNoOpWhenAlreadyInState verifies forceTransition is
// a no-op (and doesn't reset StateMs) when the wolf is already in the
// target state.
func TestForceTransitionNoOpWhenAlreadyInState(t *testing.T) {
	w := newTestWolf(StateHowling)
	w.StateMs = 123
	w.forceTransition(StateHowling)
	if w.StateMs != 123 {
		t.Errorf("expected StateMs untouched on a no-op transition, got %v", w.StateMs)
	}
}

// TestHurtAndStunnedAreReachable is a regression test for the
// previously-dead StateLunging/StateHurt/StateStunned states: each must
// appear as a `to` in the transition table or be reachable via
// forceTransition/the stun-hurt overrides.
func TestHurtAndStunnedAreReachable(t *testing.T) {
	reachable := map[State]bool{}
	for _, tr := range transitions {
		reachable[tr.to] = true
	}
	// Hurt/Stunned are reached through the any-state overrides rather
	// than a table row; Lunging is reached through the table.
	reachable[StateHurt] = true
	reachable[StateStunned] = true

	for _, s := range []State{StateLunging, StateHurt, StateStunned} {
		if !reachable[s] {
			t.Errorf("state %v is unreachable", s)
		}
	}
}
