package game

import (
	"testing"

	"wolfpack/internal/game/id"
)

// TestNewEngine verifies engine creation with correct defaults.
func TestNewEngine(t *testing.T) {
	e := NewEngine(1280, 720, 1)
	if e == nil {
		t.Fatal("NewEngine returned nil")
	}
	state := e.GameState()
	if state.State != RunStateMenu {
		t.Errorf("expected RunStateMenu before StartGame, got %v", state.State)
	}
}

// TestEngineLifecycle exercises the Start/Pause/Resume/Restart/EndGame
// state transitions.
func TestEngineLifecycle(t *testing.T) {
	e := NewEngine(1280, 720, 1)

	e.StartGame()
	if got := e.GameState().State; got != RunStateRunning {
		t.Errorf("expected RunStateRunning after StartGame, got %v", got)
	}

	e.Pause()
	if got := e.GameState().State; got != RunStatePaused {
		t.Errorf("expected RunStatePaused after Pause, got %v", got)
	}

	e.Resume()
	if got := e.GameState().State; got != RunStateRunning {
		t.Errorf("expected RunStateRunning after Resume, got %v", got)
	}

	e.EndGame()
	if got := e.GameState().State; got != RunStateGameOver {
		t.Errorf("expected RunStateGameOver after EndGame, got %v", got)
	}

	e.Restart()
	if got := e.GameState().State; got != RunStateRunning {
		t.Errorf("expected RunStateRunning after Restart, got %v", got)
	}
}

// TestCreatePlayer verifies a player spawns alive at the requested position.
func TestCreatePlayer(t *testing.T) {
	e := NewEngine(1280, 720, 1)
	e.StartGame()

	pid := e.CreatePlayer(100, 200)
	if pid == id.Invalid {
		t.Fatal("CreatePlayer returned id.Invalid")
	}
	e.Update(0)

	snap := e.PlayerState()
	if snap.ID != pid {
		t.Errorf("expected PlayerState().ID %v, got %v", pid, snap.ID)
	}
	if snap.Health != snap.MaxHealth {
		t.Errorf("expected full health on spawn, got %v/%v", snap.Health, snap.MaxHealth)
	}
}

// TestCreateWolf verifies solo and alpha wolf spawns register distinct
// entities that show up in EntityPositions.
func TestCreateWolf(t *testing.T) {
	e := NewEngine(1280, 720, 1)
	e.StartGame()

	solo := e.CreateWolf(300, 300, false)
	alpha := e.CreateWolf(400, 400, true)
	if solo == id.Invalid || alpha == id.Invalid {
		t.Fatal("CreateWolf returned id.Invalid")
	}
	if solo == alpha {
		t.Fatal("expected distinct entity ids")
	}
	e.Update(0)

	found := map[id.EntityID]bool{}
	for _, s := range e.EntityPositions() {
		found[s.ID] = true
	}
	if !found[solo] || !found[alpha] {
		t.Error("spawned wolves should appear in EntityPositions")
	}
}

// TestCreateProjectileAndPowerUpAndObstacle exercises the remaining
// create operations and confirms each returns a usable entity id.
func TestCreateProjectileAndPowerUpAndObstacle(t *testing.T) {
	e := NewEngine(1280, 720, 1)
	e.StartGame()
	pid := e.CreatePlayer(100, 100)

	proj := e.CreateProjectile(100, 100, 1, 0, pid, 10)
	if proj == id.Invalid {
		t.Error("CreateProjectile returned id.Invalid")
	}
	pw := e.CreatePowerUp(200, 200, PowerUpHealth)
	if pw == id.Invalid {
		t.Error("CreatePowerUp returned id.Invalid")
	}
	obs := e.CreateObstacle(300, 300, ObstacleCircle, 40, 40, false)
	if obs == id.Invalid {
		t.Error("CreateObstacle returned id.Invalid")
	}
}

// TestRemoveEntity verifies a removed entity no longer appears in
// EntityPositions.
func TestRemoveEntity(t *testing.T) {
	e := NewEngine(1280, 720, 1)
	e.StartGame()
	eid := e.CreateWolf(300, 300, false)

	e.RemoveEntity(eid)
	e.Update(0)
	for _, s := range e.EntityPositions() {
		if s.ID == eid {
			t.Error("removed entity should not appear in EntityPositions")
		}
	}
}

// TestGenerateObstaclesEnsurePlayability verifies at least one
// obstacle is placed and none overlap the player spawn point when
// ensurePlayability is requested.
func TestGenerateObstaclesEnsurePlayability(t *testing.T) {
	e := NewEngine(1280, 720, 1)
	e.StartGame()
	e.CreatePlayer(640, 360)

	e.GenerateObstacles(10, true)
	e.Update(0)

	count := 0
	for _, s := range e.EntityPositions() {
		if s.Type == EntityObstacle {
			count++
			if s.X > 540 && s.X < 740 && s.Y > 260 && s.Y < 460 {
				t.Errorf("obstacle at (%v,%v) overlaps the spawn clearance", s.X, s.Y)
			}
		}
	}
	if count == 0 {
		t.Error("expected at least one obstacle after GenerateObstacles")
	}
}

// TestClearEntities verifies every entity, the player included, is
// removed.
func TestClearEntities(t *testing.T) {
	e := NewEngine(1280, 720, 1)
	e.StartGame()
	pid := e.CreatePlayer(100, 100)
	e.CreateWolf(300, 300, false)
	e.CreateObstacle(400, 400, ObstacleCircle, 40, 40, false)

	e.ClearEntities()
	e.Update(0)

	snaps := e.EntityPositions()
	if len(snaps) != 0 {
		t.Errorf("expected no entities to remain, got %d entities", len(snaps))
	}
	if e.PlayerState().ID == pid {
		t.Error("expected the player to be removed")
	}
}

// TestUpdateAdvancesWaveTimer confirms repeated Update calls advance the
// simulation without panicking and keep the wave info populated.
func TestUpdateAdvancesWaveTimer(t *testing.T) {
	e := NewEngine(1280, 720, 1)
	e.StartGame()
	e.CreatePlayer(640, 360)

	for i := 0; i < 120; i++ {
		e.Update(1.0 / 60)
	}

	wave := e.WaveInfo()
	if wave.CurrentWave < 1 {
		t.Errorf("expected wave counter to have advanced to at least 1, got %d", wave.CurrentWave)
	}
}

// TestUpdatePlayerInputMovesPlayer verifies a sustained movement input
// changes the player's position over several ticks.
func TestUpdatePlayerInputMovesPlayer(t *testing.T) {
	e := NewEngine(1280, 720, 1)
	e.StartGame()
	e.CreatePlayer(640, 360)
	e.Update(0)

	before := e.PlayerState()
	beforeX := playerX(e, before.ID)
	e.UpdatePlayerInput(1, 0, 1, 0)
	for i := 0; i < 30; i++ {
		e.Update(1.0 / 60)
	}
	afterX := playerX(e, before.ID)

	if afterX <= beforeX {
		t.Errorf("expected player to move right, before.X=%v after.X=%v", beforeX, afterX)
	}
}

func playerX(e *Engine, pid id.EntityID) float64 {
	for _, s := range e.EntityPositions() {
		if s.ID == pid {
			return s.X
		}
	}
	return 0
}

// TestPauseFreezesSimulation verifies Update is a no-op while paused.
func TestPauseFreezesSimulation(t *testing.T) {
	e := NewEngine(1280, 720, 1)
	e.StartGame()
	pid := e.CreatePlayer(640, 360)
	e.Update(0)
	e.UpdatePlayerInput(1, 0, 1, 0)

	e.Pause()
	before := playerX(e, pid)
	for i := 0; i < 30; i++ {
		e.Update(1.0 / 60)
	}
	after := playerX(e, pid)

	if before != after {
		t.Error("Update should not move entities while paused")
	}
}

// TestPerformanceMetricsReflectEntityCount verifies the metrics snapshot
// tracks the number of live entities across a tick.
func TestPerformanceMetricsReflectEntityCount(t *testing.T) {
	e := NewEngine(1280, 720, 1)
	e.StartGame()
	e.CreatePlayer(100, 100)
	e.CreateWolf(300, 300, false)
	e.CreateWolf(400, 400, false)

	e.Update(1.0 / 60)
	perf := e.PerformanceMetrics()
	if perf.EntityCount < 3 {
		t.Errorf("expected EntityCount >= 3, got %d", perf.EntityCount)
	}
}
