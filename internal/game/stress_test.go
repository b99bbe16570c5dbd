package game

import (
	"sync"
	"testing"
)

// TestStressMaxWolvesRespected spawns far more wolves than MaxWolves
// allows and confirms the manager's cap holds rather than growing
// unbounded.
func TestStressMaxWolvesRespected(t *testing.T) {
	e := NewEngine(1280, 720, 11)
	e.StartGame()
	e.CreatePlayer(640, 360)

	for i := 0; i < 500; i++ {
		e.CreateWolf(float64(i%1200), float64(i%650), false)
	}

	if got := e.wolves.Count(); got > 64 {
		t.Errorf("expected AI-bound wolf count capped at MaxWolves (64), got %d", got)
	}
	if e.wolves.Count() == 0 {
		t.Error("expected at least some wolves to have spawned before the cap")
	}
}

// TestStressManyTicksNoPanic drives a heavily populated world for a long
// run and confirms nothing panics and the engine stays internally
// consistent (scores and counters never go negative).
func TestStressManyTicksNoPanic(t *testing.T) {
	e := NewEngine(1280, 720, 5)
	e.StartGame()
	e.CreatePlayer(640, 360)
	e.GenerateObstacles(20, true)
	for i := 0; i < 40; i++ {
		e.CreateWolf(float64(50+i*29%1200), float64(50+i*17%650), i%6 == 0)
	}

	for tick := 0; tick < 18000; tick++ { // five simulated minutes
		e.Update(1.0 / 60)
		if tick%300 == 0 {
			e.CreateWolf(float64(tick%1200), float64(tick%650), false)
		}

		state := e.GameState()
		if state.Score < 0 {
			t.Fatalf("tick %d: score went negative: %d", tick, state.Score)
		}
		if state.State == RunStateGameOver {
			break
		}
	}
}

// TestStressInputBurstFasterThanConsumer pushes input commands from the
// single allowed producer goroutine far faster than Update can drain
// them, checking that the SPSCQueue mailbox drops excess pushes rather
// than blocking the producer or corrupting later reads.
func TestStressInputBurstFasterThanConsumer(t *testing.T) {
	e := NewEngine(1280, 720, 3)
	e.StartGame()
	e.CreatePlayer(640, 360)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < 5000; i++ {
			e.UpdatePlayerInput(1, 0, 1, 0)
		}
	}()
	wg.Wait()

	for i := 0; i < 60; i++ {
		e.Update(1.0 / 60)
	}

	if e.GameState().State != RunStateRunning {
		t.Errorf("expected the run to still be active after the input burst, got %v", e.GameState().State)
	}
}

// TestStressGenerateObstaclesAtCapacity verifies repeated
// GenerateObstacles calls never push the entity store over its
// configured maximum.
func TestStressGenerateObstaclesAtCapacity(t *testing.T) {
	e := NewEngine(1280, 720, 9)
	e.StartGame()
	e.CreatePlayer(640, 360)

	for i := 0; i < 50; i++ {
		e.GenerateObstacles(40, false)
	}
	e.Update(0)

	if len(e.EntityPositions()) > 2000 {
		t.Errorf("entity count exceeded MaxEntities: %d", len(e.EntityPositions()))
	}
}
