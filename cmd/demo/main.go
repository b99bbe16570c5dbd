package main

import (
	"log"
	"math"
	"math/rand"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"wolfpack/internal/config"
	"wolfpack/internal/game"
	"wolfpack/internal/observability"

	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, using environment variables only")
	}

	cfg := config.Load()

	if cfg.Debug {
		if err := observability.StartServer(observability.DefaultServerConfig()); err != nil {
			log.Printf("observability: failed to start debug server: %v", err)
		}
	}

	log.Println("================================")
	log.Println(" WOLFPACK ENGINE")
	log.Println("================================")
	log.Printf("world %dx%d, tick rate %d, debug=%v", cfg.World.Width, cfg.World.Height, cfg.World.TickRate, cfg.Debug)

	seed := getEnvInt64("WOLFPACK_SEED", time.Now().UnixNano())
	log.Printf("rng seed: %d", seed)

	engine := game.NewEngine(float64(cfg.World.Width), float64(cfg.World.Height), seed)

	engine.StartGame()
	playerID := engine.CreatePlayer(float64(cfg.World.Width)/2, float64(cfg.World.Height)/2)
	log.Printf("spawned player %v", playerID)

	engine.GenerateObstacles(12, true)

	dt := 1.0 / float64(cfg.World.TickRate)
	ticker := time.NewTicker(time.Duration(dt * float64(time.Second)))
	defer ticker.Stop()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	log.Println("running, press Ctrl+C to stop")

	rng := rand.New(rand.NewSource(seed))
	lastReport := time.Now()

	for {
		select {
		case <-ticker.C:
			engine.Update(dt)

			if time.Since(lastReport) >= 5*time.Second {
				lastReport = time.Now()
				state := engine.GameState()
				wave := engine.WaveInfo()
				perf := engine.PerformanceMetrics()
				log.Printf("score=%d wave=%d entities=%d physics=%.2fms collision=%.2fms",
					state.Score, wave.CurrentWave, perf.ActiveEntities, perf.PhysicsTimeMs, perf.CollisionTimeMs)
			}

			// Nudge the player along a random heading so the demo has
			// something to watch without a real input device attached.
			if rng.Float64() < 0.02 {
				angle := rng.Float64() * 2 * math.Pi
				dx, dy := math.Cos(angle), math.Sin(angle)
				engine.UpdatePlayerInput(dx, dy, dx, dy)
			}
		case <-quit:
			log.Println("shutting down")
			engine.EndGame()
			return
		}
	}
}

func getEnvInt64(key string, defaultVal int64) int64 {
	if val := os.Getenv(key); val != "" {
		if i, err := strconv.ParseInt(val, 10, 64); err == nil {
			return i
		}
	}
	return defaultVal
}
