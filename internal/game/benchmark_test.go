package game

import (
	"strconv"
	"testing"
)

// BenchmarkUpdateEmptyWorld measures the tick's fixed overhead with just
// the player present.
func BenchmarkUpdateEmptyWorld(b *testing.B) {
	e := NewEngine(1280, 720, 1)
	e.StartGame()
	e.CreatePlayer(640, 360)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		e.Update(1.0 / 60)
	}
}

// BenchmarkUpdateWithWolves measures per-tick cost as the number of
// concurrently active wolves (and therefore AI, pathfinding and
// collision work) grows.
func BenchmarkUpdateWithWolves(b *testing.B) {
	for _, n := range []int{4, 16, 32, 64} {
		b.Run(strconv.Itoa(n), func(b *testing.B) {
			e := NewEngine(1280, 720, 1)
			e.StartGame()
			e.CreatePlayer(640, 360)
			for i := 0; i < n; i++ {
				e.CreateWolf(float64(50+i*20%1200), float64(50+i*13%650), i%5 == 0)
			}

			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				e.Update(1.0 / 60)
			}
		})
	}
}

// BenchmarkUpdateWithObstacles measures the collision system's
// broad-phase cost as static obstacle count grows.
func BenchmarkUpdateWithObstacles(b *testing.B) {
	for _, n := range []int{10, 50, 100} {
		b.Run(strconv.Itoa(n), func(b *testing.B) {
			e := NewEngine(1280, 720, 1)
			e.StartGame()
			e.CreatePlayer(640, 360)
			e.GenerateObstacles(n, false)

			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				e.Update(1.0 / 60)
			}
		})
	}
}

// BenchmarkEntityPositionsSnapshotRead measures the cost of the
// lock-free read path a renderer would poll every frame.
func BenchmarkEntityPositionsSnapshotRead(b *testing.B) {
	e := NewEngine(1280, 720, 1)
	e.StartGame()
	e.CreatePlayer(640, 360)
	for i := 0; i < 32; i++ {
		e.CreateWolf(float64(50+i*20), float64(50+i*13), false)
	}
	e.Update(1.0 / 60)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = e.EntityPositions()
	}
}

// BenchmarkCreateProjectile measures the cost of the highest-frequency
// create operation during a busy wave.
func BenchmarkCreateProjectile(b *testing.B) {
	e := NewEngine(1280, 720, 1)
	e.StartGame()
	pid := e.CreatePlayer(640, 360)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		e.CreateProjectile(640, 360, 1, 0, pid, 10)
		if i%200 == 0 {
			e.ClearEntities()
			pid = e.CreatePlayer(640, 360)
		}
	}
}
