package game

import "testing"

// TestNewPlayerData verifies default spawn values.
func TestNewPlayerData(t *testing.T) {
	pd := NewPlayerData()

	if pd.Energy != PlayerBaseMaxEnergy || pd.MaxEnergy != PlayerBaseMaxEnergy {
		t.Errorf("expected full energy %v, got %v/%v", PlayerBaseMaxEnergy, pd.Energy, pd.MaxEnergy)
	}
	if pd.Lives != 3 {
		t.Errorf("expected 3 lives, got %d", pd.Lives)
	}
	if pd.DamageMultiplier != 1.0 {
		t.Errorf("expected DamageMultiplier 1.0, got %v", pd.DamageMultiplier)
	}
}

// TestPlayerEnergyRegen verifies energy regenerates over time but never
// exceeds MaxEnergy.
func TestPlayerEnergyRegen(t *testing.T) {
	pd := NewPlayerData()
	pd.Energy = 0

	pd.UpdateTimers(1000)
	if pd.Energy != EnergyRegenRate {
		t.Errorf("expected energy %v after 1s regen, got %v", EnergyRegenRate, pd.Energy)
	}

	pd.Energy = pd.MaxEnergy - 1
	pd.UpdateTimers(1000)
	if pd.Energy != pd.MaxEnergy {
		t.Errorf("expected energy clamped to MaxEnergy, got %v", pd.Energy)
	}
}

// TestPlayerBoostLifecycle exercises CanBoost/StartBoost/StopBoost.
func TestPlayerBoostLifecycle(t *testing.T) {
	pd := NewPlayerData()

	if !pd.CanBoost() {
		t.Fatal("expected CanBoost true with full energy and no cooldown")
	}
	pd.StartBoost()
	if !pd.Boosting {
		t.Error("expected Boosting true after StartBoost")
	}
	if pd.Energy != pd.MaxEnergy-BoostEnergyCost {
		t.Errorf("expected energy reduced by BoostEnergyCost, got %v", pd.Energy)
	}
	if pd.CanBoost() {
		t.Error("should not be able to boost again while already boosting")
	}

	pd.StopBoost()
	if pd.Boosting {
		t.Error("expected Boosting false after StopBoost")
	}
	if pd.BoostCooldown != BoostCooldownMs {
		t.Errorf("expected boost cooldown set, got %v", pd.BoostCooldown)
	}
	if pd.CanBoost() {
		t.Error("should not be able to boost again before cooldown elapses")
	}
}

// TestPlayerShootCooldownReducedByRapidFire verifies RegisterShot applies
// RapidFireCooldownDiv while the rapid-fire power-up is active.
func TestPlayerShootCooldownReducedByRapidFire(t *testing.T) {
	pd := NewPlayerData()

	pd.RegisterShot()
	if pd.ShootCooldownMs != ShootCooldownBaseMs {
		t.Errorf("expected base cooldown %v, got %v", ShootCooldownBaseMs, pd.ShootCooldownMs)
	}

	pd.ShootCooldownMs = 0
	pd.RapidFire = true
	pd.RegisterShot()
	want := ShootCooldownBaseMs / RapidFireCooldownDiv
	if pd.ShootCooldownMs != want {
		t.Errorf("expected rapid-fire cooldown %v, got %v", want, pd.ShootCooldownMs)
	}
}

// TestPlayerCanAttackExcludesRolling enforces the "at most one of
// attacking, rolling" invariant from the caller's side.
func TestPlayerCanAttackExcludesRolling(t *testing.T) {
	pd := NewPlayerData()
	if !pd.CanAttack() {
		t.Fatal("expected CanAttack true on a fresh player")
	}

	pd.Combat.StartRoll(0)
	if pd.CanAttack() {
		t.Error("expected CanAttack false while rolling")
	}
}

// TestApplyDamagePlain verifies a plain hit with no active defense applies
// full damage and opens the post-hit invulnerability window.
func TestApplyDamagePlain(t *testing.T) {
	pd := NewPlayerData()

	applied, parried := pd.ApplyDamage(30)
	if applied != 30 || parried {
		t.Errorf("expected (30,false), got (%v,%v)", applied, parried)
	}
	if !pd.Combat.IsInvulnerable() {
		t.Error("expected a brief invulnerability window after taking a hit")
	}
}

// TestApplyDamageBlockedReducesDamage verifies blocking (outside the
// parry window) reduces damage by ShieldDamageReduction.
func TestApplyDamageBlockedReducesDamage(t *testing.T) {
	pd := NewPlayerData()
	pd.Combat.Blocking = true
	pd.Combat.PerfectParryWindow = false

	applied, parried := pd.ApplyDamage(100)
	if parried {
		t.Error("expected no parry outside the parry window")
	}
	want := 100 * (1 - ShieldDamageReduction)
	if applied != want {
		t.Errorf("expected reduced damage %v, got %v", want, applied)
	}
}

// TestApplyDamagePerfectParryNullifiesDamageAndRefundsEnergy verifies a
// hit landing during the parry window deals zero damage and restores
// PerfectParryEnergy.
func TestApplyDamagePerfectParryNullifiesDamageAndRefundsEnergy(t *testing.T) {
	pd := NewPlayerData()
	pd.Energy = 10
	pd.Combat.Blocking = true
	pd.Combat.PerfectParryWindow = true

	applied, parried := pd.ApplyDamage(50)
	if applied != 0 || !parried {
		t.Errorf("expected (0,true), got (%v,%v)", applied, parried)
	}
	if pd.Energy != 35 {
		t.Errorf("expected energy refunded to 35, got %v", pd.Energy)
	}
}

// TestApplyDamageWhileRollingOrInvulnerableIsIgnored verifies i-frames
// zero out incoming damage entirely.
func TestApplyDamageWhileRollingOrInvulnerableIsIgnored(t *testing.T) {
	pd := NewPlayerData()
	pd.Combat.StartRoll(0)

	applied, parried := pd.ApplyDamage(999)
	if applied != 0 || parried {
		t.Errorf("expected (0,false) while rolling, got (%v,%v)", applied, parried)
	}
}

// TestComboEscalatesDamageScaleWithinWindow verifies RegisterHit climbs
// the combo chain while hits land inside the combo window and resets
// once the window lapses.
func TestComboEscalatesDamageScaleWithinWindow(t *testing.T) {
	var c PlayerCombat
	combo := DefaultCombo()

	scale1 := c.RegisterHit(0, combo)
	if scale1 != combo.DamageScale[0] {
		t.Errorf("expected first hit scale %v, got %v", combo.DamageScale[0], scale1)
	}
	scale2 := c.RegisterHit(1, combo)
	if scale2 != combo.DamageScale[1] {
		t.Errorf("expected second hit scale %v, got %v", combo.DamageScale[1], scale2)
	}

	c.UpdateTimers(combo.WindowMs + 1)
	if c.ComboCount != 0 {
		t.Errorf("expected combo to reset after window expiry, got count %d", c.ComboCount)
	}

	scale3 := c.RegisterHit(2, combo)
	if scale3 != combo.DamageScale[0] {
		t.Errorf("expected combo restart at first scale %v, got %v", combo.DamageScale[0], scale3)
	}
}

// TestRollBlockedWhileRollingOrOnCooldown exercises CanRoll's guard clauses.
func TestRollBlockedWhileRollingOrOnCooldown(t *testing.T) {
	var c PlayerCombat
	if !c.CanRoll() {
		t.Fatal("expected CanRoll true on fresh combat state")
	}

	c.StartRoll(0)
	if c.CanRoll() {
		t.Error("expected CanRoll false while already rolling")
	}

	c.UpdateTimers(RollDurationMs + 1)
	if c.Rolling {
		t.Error("expected roll to end once RollDurationMs elapses")
	}
	if c.CanRoll() {
		t.Error("expected CanRoll false while roll cooldown is still active")
	}

	c.UpdateTimers(RollCooldownMs + 1)
	if !c.CanRoll() {
		t.Error("expected CanRoll true once cooldown elapses")
	}
}

// TestStartBlockOpensParryWindowThenCloses verifies the parry window
// auto-closes while Blocking persists until EndBlock.
func TestStartBlockOpensParryWindowThenCloses(t *testing.T) {
	var c PlayerCombat
	c.StartBlock()
	if !c.Blocking || !c.PerfectParryWindow {
		t.Fatal("expected blocking and parry window open after StartBlock")
	}

	c.UpdateTimers(ParryWindowMs + 1)
	if c.PerfectParryWindow {
		t.Error("expected parry window to close after ParryWindowMs")
	}
	if !c.Blocking {
		t.Error("expected Blocking to persist after the parry window closes")
	}

	c.EndBlock()
	if c.Blocking || c.BlockCooldown != BlockCooldownMs {
		t.Error("expected EndBlock to clear blocking and start its cooldown")
	}
}
