package game

import "math/rand"

// WavePhase is the wave state machine's two states.
type WavePhase int

const (
	WaveActive WavePhase = iota
	WaveTransition
)

const (
	WaveTransitionTimeMs float64 = 4000

	EnemySpawnIntervalMs  float64 = 2500
	WolfSpawnIntervalMs   float64 = 3500
	PowerUpSpawnIntervalMs float64 = 6000

	WolfSpawnStartWave int = 3

	AlphaWolfChance        float64 = 0.2
	AlphaMinSupportWolves  int     = 2
	AlphaMaxSupportWolves  int     = 4

	// MaxPowerUpsActive caps how many power-ups may be live at once.
	MaxPowerUpsActive int = 10
)

// SpawnRequest is an edge- or interior-placed spawn the wave system asks
// the engine façade to materialize; waves.go never touches the entity
// store directly so it stays testable without a live engine.
type SpawnRequest struct {
	Kind EntityType
	X, Y float64

	// IsAlpha and PackSize describe wolves when Kind == EntityWolf; for
	// Kind == EntityPowerUp, PackSize carries the PowerUpType instead.
	IsAlpha  bool
	PackSize int
}

// WaveSystem is a two-state machine driving three independent countdown
// timers, built in the idiom combat.go/player.go already established:
// millisecond countdowns decremented once per Update(dtMs) call, never
// wall-clock timestamps.
type WaveSystem struct {
	Wave  int
	Phase WavePhase

	transitionRemainingMs float64

	enemySpawnTimerMs   float64
	wolfSpawnTimerMs    float64
	powerUpSpawnTimerMs float64

	enemyQuota   int
	wolfQuota    int
	enemySpawned int
	wolfSpawned  int

	worldWidth  float64
	worldHeight float64
}

// NewWaveSystem starts at wave 1, Active, with quotas for wave 1.
func NewWaveSystem(worldWidth, worldHeight float64) *WaveSystem {
	ws := &WaveSystem{
		Wave:        1,
		Phase:       WaveActive,
		worldWidth:  worldWidth,
		worldHeight: worldHeight,
	}
	ws.resetQuotas()
	ws.resetTimers()
	return ws
}

func (ws *WaveSystem) resetQuotas() {
	ws.enemyQuota = 5 + 2*ws.Wave
	ws.wolfQuota = 0
	if ws.Wave > WolfSpawnStartWave {
		ws.wolfQuota = 2 * (ws.Wave - WolfSpawnStartWave)
	}
	ws.enemySpawned = 0
	ws.wolfSpawned = 0
}

func (ws *WaveSystem) resetTimers() {
	ws.enemySpawnTimerMs = EnemySpawnIntervalMs
	ws.wolfSpawnTimerMs = WolfSpawnIntervalMs
	ws.powerUpSpawnTimerMs = PowerUpSpawnIntervalMs
}

// Update advances timers by dtMs and returns any spawn requests fired
// this tick. liveEnemies/liveWolves let the caller report whether any
// spawned enemy/wolf entity is still active, since "wave complete"
// requires quotas met AND no live attackers remaining.
func (ws *WaveSystem) Update(dtMs float64, liveEnemies, liveWolves, livePowerUps int, rng *rand.Rand) []SpawnRequest {
	switch ws.Phase {
	case WaveActive:
		return ws.updateActive(dtMs, liveEnemies, liveWolves, livePowerUps, rng)
	case WaveTransition:
		ws.transitionRemainingMs -= dtMs
		if ws.transitionRemainingMs <= 0 {
			ws.Wave++
			ws.resetQuotas()
			ws.resetTimers()
			ws.Phase = WaveActive
		}
	}
	return nil
}

func (ws *WaveSystem) updateActive(dtMs float64, liveEnemies, liveWolves, livePowerUps int, rng *rand.Rand) []SpawnRequest {
	var spawns []SpawnRequest

	if ws.enemySpawned < ws.enemyQuota {
		ws.enemySpawnTimerMs -= dtMs
		if ws.enemySpawnTimerMs <= 0 {
			ws.enemySpawnTimerMs = EnemySpawnIntervalMs
			ws.enemySpawned++
			x, y := ws.edgeSpawnPoint(rng)
			spawns = append(spawns, SpawnRequest{Kind: EntityEnemy, X: x, Y: y})
		}
	}

	if ws.Wave > WolfSpawnStartWave && ws.wolfSpawned < ws.wolfQuota {
		ws.wolfSpawnTimerMs -= dtMs
		if ws.wolfSpawnTimerMs <= 0 {
			ws.wolfSpawnTimerMs = WolfSpawnIntervalMs
			spawns = append(spawns, ws.rollWolfSpawn(rng)...)
		}
	}

	ws.powerUpSpawnTimerMs -= dtMs
	if ws.powerUpSpawnTimerMs <= 0 && livePowerUps < MaxPowerUpsActive {
		ws.powerUpSpawnTimerMs = PowerUpSpawnIntervalMs
		x, y := ws.interiorSpawnPoint(rng)
		kind := PowerUpType(rng.Intn(7))
		spawns = append(spawns, SpawnRequest{Kind: EntityPowerUp, X: x, Y: y, PackSize: int(kind)})
	}

	if ws.enemySpawned >= ws.enemyQuota && ws.wolfSpawned >= ws.wolfQuota &&
		liveEnemies == 0 && liveWolves == 0 {
		ws.Phase = WaveTransition
		ws.transitionRemainingMs = WaveTransitionTimeMs
	}

	return spawns
}

// rollWolfSpawn counts one wolf against the quota and, 20% of the time,
// turns it into an alpha pulling 2-4 supporting wolves into the same
// spawn batch so the caller links them into a single pack.
func (ws *WaveSystem) rollWolfSpawn(rng *rand.Rand) []SpawnRequest {
	x, y := ws.edgeSpawnPoint(rng)

	if rng.Float64() >= AlphaWolfChance {
		ws.wolfSpawned++
		return []SpawnRequest{{Kind: EntityWolf, X: x, Y: y}}
	}

	supportCount := AlphaMinSupportWolves + rng.Intn(AlphaMaxSupportWolves-AlphaMinSupportWolves+1)
	requests := make([]SpawnRequest, 0, supportCount+1)
	requests = append(requests, SpawnRequest{Kind: EntityWolf, X: x, Y: y, IsAlpha: true, PackSize: supportCount + 1})
	ws.wolfSpawned++

	for i := 0; i < supportCount && ws.wolfSpawned < ws.wolfQuota; i++ {
		sx, sy := ws.edgeSpawnPoint(rng)
		requests = append(requests, SpawnRequest{Kind: EntityWolf, X: sx, Y: sy, PackSize: supportCount + 1})
		ws.wolfSpawned++
	}

	// The quota can cut supports short; PackSize must match the run emitted.
	for i := range requests {
		requests[i].PackSize = len(requests)
	}
	return requests
}

// edgeSpawnPoint picks a uniformly random point on one of the four world
// edges.
func (ws *WaveSystem) edgeSpawnPoint(rng *rand.Rand) (x, y float64) {
	switch rng.Intn(4) {
	case 0: // top
		return rng.Float64() * ws.worldWidth, 0
	case 1: // bottom
		return rng.Float64() * ws.worldWidth, ws.worldHeight
	case 2: // left
		return 0, rng.Float64() * ws.worldHeight
	default: // right
		return ws.worldWidth, rng.Float64() * ws.worldHeight
	}
}

// interiorSpawnPoint picks a uniformly random point inset from the edges
// so power-ups never land on the world boundary.
func (ws *WaveSystem) interiorSpawnPoint(rng *rand.Rand) (x, y float64) {
	const inset = 80
	x = inset + rng.Float64()*(ws.worldWidth-2*inset)
	y = inset + rng.Float64()*(ws.worldHeight-2*inset)
	return x, y
}

// Snapshot returns the wave/phase fields exposed by game_state().
func (ws *WaveSystem) Snapshot() (wave int, phase WavePhase) {
	return ws.Wave, ws.Phase
}

// TransitionRemainingMs returns the time left in the inter-wave pause, or 0
// while a wave is active.transition_timer).
func (ws *WaveSystem) TransitionRemainingMs() float64 {
	if ws.Phase != WaveTransition {
		return 0
	}
	return ws.transitionRemainingMs
}

// Reset restarts the wave system at wave 1 (engine Restart()).
func (ws *WaveSystem) Reset() {
	ws.Wave = 1
	ws.Phase = WaveActive
	ws.resetQuotas()
	ws.resetTimers()
}

// SetWorldBounds updates the spawn-point bounds after set_world_bounds.
func (ws *WaveSystem) SetWorldBounds(width, height float64) {
	ws.worldWidth = width
	ws.worldHeight = height
}
