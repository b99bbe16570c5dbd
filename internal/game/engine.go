package game

import (
	"fmt"
	"math"
	"math/rand"
	"sync"
	"time"

	"wolfpack/internal/config"
	"wolfpack/internal/game/id"
	"wolfpack/internal/game/spatial"
	"wolfpack/internal/game/vecmath"
	"wolfpack/internal/pathfind"
	"wolfpack/internal/wolf"
)

// inputKind tags a queued player-input command.
type inputKind int

const (
	inputMove inputKind = iota
	inputShoot
	inputBoostOn
	inputBoostOff
	inputBlockStart
	inputBlockEnd
	inputAttack
	inputRoll
)

// InputCommand is one queued player-input event, drained during phase 1 of
// Update. The eight public input methods below are the sole
// producer; Update is the sole consumer, so the mailbox is the single-
// producer/single-consumer spatial.SPSCQueue rather than the MPSC
// LockFreeQueue, which has no consumer anywhere in this engine.
type InputCommand struct {
	Kind inputKind

	DX, DY     float64
	AimX, AimY float64
	Angle      float64
}

// Engine is the host-facing façade: every lifecycle, mutation,
// player-input, tick and snapshot operation is a method on this type,
// the single owning struct wiring every component together. There is no
// self-ticking goroutine loop; the host drives the simulation forward
// one fixed-size step at a time by calling Update(dtSeconds).
type Engine struct {
	mu sync.Mutex

	store      *EntityStore
	physics    *PhysicsStep
	collisions *CollisionSystem
	waves      *WaveSystem
	effects    *EffectsBuffer
	sap        *spatial.SweepAndPrune

	wolves     *wolf.Manager
	pathfinder *pathfind.Pathfinder

	inputQueue *spatial.SPSCQueue[InputCommand]

	playerID   id.EntityID
	tickNumber uint64

	rng     *rand.Rand
	rngSeed int64

	worldWidth  float64
	worldHeight float64

	limits     config.ResourceLimits
	spatialCfg config.SpatialConfig
	debug      bool

	runState RunState

	snapshotPool *SnapshotPool
	eventLog     *EventLog
	highScores   *HighScoreBoard
}

// NewEngine constructs a fully wired engine. worldWidth/worldHeight <= 0
// fall back to config.Load()'s world dimensions (defaults plus any
// environment overrides); seed seeds the single
// deterministic RNG used for every gameplay random choice.
func NewEngine(worldWidth, worldHeight float64, seed int64) *Engine {
	cfg := config.Load()
	if worldWidth <= 0 {
		worldWidth = cfg.World.Width
	}
	if worldHeight <= 0 {
		worldHeight = cfg.World.Height
	}

	e := &Engine{
		store:       NewEntityStore(cfg.Limits.MaxEntities),
		physics:     &PhysicsStep{WorldWidth: worldWidth, WorldHeight: worldHeight},
		collisions:  NewCollisionSystem(worldWidth, worldHeight, cfg.Limits.MaxEntities),
		waves:       NewWaveSystem(worldWidth, worldHeight),
		effects:     NewEffectsBuffer(cfg.Limits.MaxParticles, cfg.Limits.MaxTexts, cfg.Limits.MaxEffects, cfg.Limits.MaxEffects),
		sap:         spatial.NewSweepAndPrune(cfg.Limits.MaxEntities),
		inputQueue:  spatial.NewSPSCQueue[InputCommand](256),
		rng:         rand.New(rand.NewSource(seed)),
		rngSeed:     seed,
		worldWidth:  worldWidth,
		worldHeight: worldHeight,
		limits:      cfg.Limits,
		spatialCfg:  cfg.Spatial,
		debug:       cfg.Debug,
		runState:    RunStateMenu,
		playerID:    id.Invalid,

		snapshotPool: NewSnapshotPool(cfg.Limits.MaxEntities, cfg.Limits.MaxParticles),
		eventLog:     NewEventLog(),
		highScores:   NewHighScoreBoard(),
	}

	e.pathfinder = pathfind.NewPathfinder(cfg.Spatial.PathfindCellSize, e.isWalkable)
	e.wolves = wolf.NewManager(cfg.Limits.MaxWolves, cfg.Limits.MaxPacks, e.pathfinder)

	// filePath="" means no on-disk log; the writer/rate-limiter goroutines still run so Emit's
	// backpressure behavior is exercised without ever touching a file.
	e.eventLog.Start("")

	return e
}

// ===== Lifecycle =====

// republishLocked re-publishes the latest snapshot outside a tick so
// GameState() reflects a lifecycle change immediately.
func (e *Engine) republishLocked() { e.publishSnapshot(e.snapshotPool.AcquireRead().Perf) }

// StartGame transitions Menu -> Running.
func (e *Engine) StartGame() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.runState = RunStateRunning
	e.republishLocked()
}

// Pause transitions Running -> Paused; a no-op otherwise.
func (e *Engine) Pause() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.runState == RunStateRunning {
		e.runState = RunStatePaused
	}
	e.republishLocked()
}

// Resume transitions Paused -> Running; a no-op otherwise.
func (e *Engine) Resume() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.runState == RunStatePaused {
		e.runState = RunStateRunning
	}
	e.republishLocked()
}

// Restart wipes the world and wave progress and returns to Running with
// an empty entity store, ready for fresh create_* calls.
func (e *Engine) Restart() {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.store.Clear()
	e.playerID = id.Invalid
	e.wolves = wolf.NewManager(e.limits.MaxWolves, e.limits.MaxPacks, e.pathfinder)
	e.effects = NewEffectsBuffer(e.limits.MaxParticles, e.limits.MaxTexts, e.limits.MaxEffects, e.limits.MaxEffects)
	e.waves.Reset()
	e.tickNumber = 0
	e.runState = RunStateRunning
	e.republishLocked()
}

// EndGame transitions to GameOver and records the run's score on the
// leaderboard.
func (e *Engine) EndGame() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.endGameLocked()
}

func (e *Engine) endGameLocked() {
	if e.runState == RunStateGameOver {
		return
	}
	score := 0
	if p := e.store.Get(e.playerID); p != nil && p.Player != nil {
		score = p.Player.Score
	}
	e.highScores.Record(fmt.Sprintf("run-%d", e.tickNumber), float64(score))
	e.runState = RunStateGameOver
	e.republishLocked()
}

// SetWorldBounds resizes the world, rebuilding the size-dependent
// subsystems (collision grid, wave spawn edges). Invalid (non-positive)
// dimensions are a no-op.
func (e *Engine) SetWorldBounds(width, height float64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if width <= 0 || height <= 0 {
		return
	}
	e.worldWidth = width
	e.worldHeight = height
	e.physics.WorldWidth = width
	e.physics.WorldHeight = height
	e.collisions = NewCollisionSystem(width, height, e.limits.MaxEntities)
	e.waves.SetWorldBounds(width, height)
}

// ===== Mutation =====

// CreatePlayer spawns the single local player, replacing any existing one.
func (e *Engine) CreatePlayer(x, y float64) id.EntityID {
	e.mu.Lock()
	defer e.mu.Unlock()

	eid := e.store.Create(Entity{
		Kind:      EntityPlayer,
		Position:  vecmath.Vec2{X: x, Y: y},
		Radius:    PlayerRadius,
		Health:    PlayerBaseMaxHealth,
		MaxHealth: PlayerBaseMaxHealth,
		Player:    NewPlayerData(),
	})
	if eid != id.Invalid {
		e.playerID = eid
	}
	return eid
}

// CreateEnemy spawns a plain wander-then-chase enemy.
func (e *Engine) CreateEnemy(x, y float64) id.EntityID {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.spawnEnemyEntity(x, y)
}

func (e *Engine) spawnEnemyEntity(x, y float64) id.EntityID {
	return e.store.Create(Entity{
		Kind:      EntityEnemy,
		Position:  vecmath.Vec2{X: x, Y: y},
		Radius:    EnemyRadius,
		Health:    EnemyBaseHealth,
		MaxHealth: EnemyBaseHealth,
		Enemy:     NewEnemyData(),
	})
}

// CreateWolf spawns a single wolf, registering it with the pack manager
// as a solo wolf. isAlpha forces the Alpha role and applies the alpha
// health bonus, independent of the wave-system's own pack rolls.
func (e *Engine) CreateWolf(x, y float64, isAlpha bool) id.EntityID {
	e.mu.Lock()
	defer e.mu.Unlock()
	wave, _ := e.waves.Snapshot()
	return e.spawnWolfEntity(x, y, isAlpha, wave)
}

func (e *Engine) spawnWolfEntity(x, y float64, isAlpha bool, wave int) id.EntityID {
	difficulty := wolf.DifficultyForWave(wave)
	health := wolf.WolfBaseHealth * difficulty
	if isAlpha {
		health *= wolf.AlphaHealthBonus
	}

	eid := e.store.Create(Entity{
		Kind:      EntityWolf,
		Position:  vecmath.Vec2{X: x, Y: y},
		Radius:    wolf.WolfRadius,
		Health:    health,
		MaxHealth: health,
		Enemy:     &EnemyData{DamageMultiplier: difficulty},
	})
	if eid == id.Invalid {
		return id.Invalid
	}

	w := e.wolves.SpawnSolo(eid, wave, e.rng)
	if w != nil && isAlpha {
		w.Role = wolf.RoleAlpha
	}
	return eid
}

// spawnWolfPack materializes a wave-rolled alpha-plus-support batch as a
// single coordinated pack. group[0] is always the
// alpha entry per WaveSystem.rollWolfSpawn's ordering.
func (e *Engine) spawnWolfPack(group []SpawnRequest, wave int) {
	difficulty := wolf.DifficultyForWave(wave)
	ids := make([]id.EntityID, 0, len(group))

	for _, req := range group {
		health := wolf.WolfBaseHealth * difficulty
		if req.IsAlpha {
			health *= wolf.AlphaHealthBonus
		}
		eid := e.store.Create(Entity{
			Kind:      EntityWolf,
			Position:  vecmath.Vec2{X: req.X, Y: req.Y},
			Radius:    wolf.WolfRadius,
			Health:    health,
			MaxHealth: health,
			Enemy:     &EnemyData{DamageMultiplier: difficulty},
		})
		if eid == id.Invalid {
			continue
		}
		ids = append(ids, eid)
	}
	if len(ids) == 0 {
		return
	}
	e.wolves.SpawnPack(ids, wave, e.rng)
}

// CreateProjectile spawns a projectile with an explicit velocity, for
// scripted or test-driven placement; the engine's own shooting path uses
// fireProjectile instead.
func (e *Engine) CreateProjectile(x, y, vx, vy float64, ownerID id.EntityID, damage float64) id.EntityID {
	e.mu.Lock()
	defer e.mu.Unlock()
	if damage <= 0 {
		damage = ProjectileDamage
	}
	return e.store.Create(Entity{
		Kind:       EntityProjectile,
		Position:   vecmath.Vec2{X: x, Y: y},
		Velocity:   vecmath.Vec2{X: vx, Y: vy},
		Rotation:   (vecmath.Vec2{X: vx, Y: vy}).Angle(),
		Radius:     ProjectileRadius,
		Health:     1,
		MaxHealth:  1,
		Projectile: NewProjectileData(ownerID, damage),
	})
}

// CreatePowerUp spawns a power-up of the given kind at (x, y).
func (e *Engine) CreatePowerUp(x, y float64, kind PowerUpType) id.EntityID {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.spawnPowerUpEntity(x, y, kind)
}

func (e *Engine) spawnPowerUpEntity(x, y float64, kind PowerUpType) id.EntityID {
	return e.store.Create(Entity{
		Kind:      EntityPowerUp,
		Position:  vecmath.Vec2{X: x, Y: y},
		Radius:    PowerUpRadius,
		Health:    1,
		MaxHealth: 1,
		PowerUp:   NewPowerUpData(kind),
	})
}

// CreateObstacle spawns a static obstacle. Circles ignore halfWidth/
// halfHeight and size themselves to ObstacleDefaultRadius.
func (e *Engine) CreateObstacle(x, y float64, shape ObstacleShape, halfWidth, halfHeight float64, destructible bool) id.EntityID {
	e.mu.Lock()
	defer e.mu.Unlock()

	radius := ObstacleDefaultRadius
	if shape == ObstacleCircle {
		halfWidth, halfHeight = radius, radius
	} else {
		radius = math.Max(halfWidth, halfHeight)
	}

	health := ObstacleDefaultHealth
	if !destructible {
		health = math.MaxFloat64
	}

	return e.store.Create(Entity{
		Kind:      EntityObstacle,
		Position:  vecmath.Vec2{X: x, Y: y},
		Radius:    radius,
		Health:    health,
		MaxHealth: health,
		Obstacle:  NewObstacleData(shape, halfWidth, halfHeight, destructible),
	})
}

// RemoveEntity removes an entity immediately and clears any player/pack
// bookkeeping that referenced it.
func (e *Engine) RemoveEntity(eid id.EntityID) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.store.Remove(eid)
	e.wolves.Despawn(eid)
	if eid == e.playerID {
		e.playerID = id.Invalid
	}
}

// GenerateObstacles scatters count obstacles at random positions, using
// the sweep-and-prune broad phase to reject placements that would
// overlap an existing obstacle. ensurePlayability widens the required
// clearance and also rejects placements that would overlap the player's
// current position.
func (e *Engine) GenerateObstacles(count int, ensurePlayability bool) {
	if count <= 0 {
		return
	}
	e.mu.Lock()
	defer e.mu.Unlock()

	clearance := ObstacleDefaultRadius * 2
	if ensurePlayability {
		clearance = ObstacleDefaultRadius * 3
	}

	var positions [][2]float32
	e.store.IterActive(func(ent *Entity) {
		if ent.Kind == EntityObstacle || (ensurePlayability && ent.Kind == EntityPlayer) {
			positions = append(positions, [2]float32{float32(ent.Position.X), float32(ent.Position.Y)})
		}
	})

	placed := 0
	for attempts := 0; placed < count && attempts < count*20; attempts++ {
		x := e.rng.Float64() * e.worldWidth
		y := e.rng.Float64() * e.worldHeight

		candidate := make([][2]float32, len(positions)+1)
		copy(candidate, positions)
		candidate[len(positions)] = [2]float32{float32(x), float32(y)}

		pairs := e.sap.UpdateFromSlice(candidate, float32(clearance/2))
		lastIdx := uint32(len(candidate) - 1)
		overlap := false
		for _, p := range pairs {
			if p.A == lastIdx || p.B == lastIdx {
				overlap = true
				break
			}
		}
		if overlap {
			continue
		}

		shape := ObstacleShape(e.rng.Intn(3))
		hw, hh := ObstacleDefaultRadius, ObstacleDefaultRadius
		if shape != ObstacleCircle {
			hw = ObstacleDefaultRadius * (0.8 + e.rng.Float64()*0.6)
			hh = ObstacleDefaultRadius * (0.8 + e.rng.Float64()*0.6)
		}

		e.store.Create(Entity{
			Kind:      EntityObstacle,
			Position:  vecmath.Vec2{X: x, Y: y},
			Radius:    ObstacleDefaultRadius,
			Health:    ObstacleDefaultHealth,
			MaxHealth: ObstacleDefaultHealth,
			Obstacle:  NewObstacleData(shape, hw, hh, e.rng.Float64() < 0.3),
		})
		positions = append(positions, [2]float32{float32(x), float32(y)})
		placed++
	}
}

// ClearEntities empties the store and resets every per-run subsystem
// without touching wave progress or the run state (used standalone from
// Restart when a host wants a clean board mid-run).
func (e *Engine) ClearEntities() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.store.Clear()
	e.playerID = id.Invalid
	e.wolves = wolf.NewManager(e.limits.MaxWolves, e.limits.MaxPacks, e.pathfinder)
	e.effects = NewEffectsBuffer(e.limits.MaxParticles, e.limits.MaxTexts, e.limits.MaxEffects, e.limits.MaxEffects)
}

// ===== Player input =====
//
// Each of these enqueues into a lock-free SPSC queue and returns
// immediately; Update's phase 1 is the sole consumer.
// They never take e.mu, so a host can call them from a separate input
// thread without blocking or racing the tick.

func (e *Engine) UpdatePlayerInput(dx, dy, aimX, aimY float64) {
	e.inputQueue.TryPush(InputCommand{Kind: inputMove, DX: dx, DY: dy, AimX: aimX, AimY: aimY})
}

func (e *Engine) PlayerShoot() {
	e.inputQueue.TryPush(InputCommand{Kind: inputShoot})
}

func (e *Engine) ActivateBoost() {
	e.inputQueue.TryPush(InputCommand{Kind: inputBoostOn})
}

func (e *Engine) DeactivateBoost() {
	e.inputQueue.TryPush(InputCommand{Kind: inputBoostOff})
}

func (e *Engine) StartBlock() {
	e.inputQueue.TryPush(InputCommand{Kind: inputBlockStart})
}

func (e *Engine) EndBlock() {
	e.inputQueue.TryPush(InputCommand{Kind: inputBlockEnd})
}

func (e *Engine) PerformAttack(angle float64) {
	e.inputQueue.TryPush(InputCommand{Kind: inputAttack, Angle: angle})
}

func (e *Engine) PerformRoll(dx, dy float64) {
	e.inputQueue.TryPush(InputCommand{Kind: inputRoll, DX: dx, DY: dy})
}

// ===== Tick =====

// Update advances the simulation by dtSeconds, running the tick's fixed
// ten-phase order. The host is responsible for clamping dtSeconds <=
// 0.05 before calling; Update re-clamps defensively so a misbehaving
// host degrades instead of destabilizing the simulation. Calling Update
// before StartGame panics when the engine's debug flag is set and is a
// no-op otherwise.
func (e *Engine) Update(dtSeconds float64) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.runState == RunStateMenu && e.debug {
		panic("game: Update called before StartGame")
	}
	if e.runState != RunStateRunning {
		return
	}
	if dtSeconds < 0 {
		dtSeconds = 0
	} else if dtSeconds > 0.05 {
		dtSeconds = 0.05
	}

	dtMs := dtSeconds * 1000
	e.tickNumber++
	nowMs := float64(e.tickNumber) * dtMs

	// Phase 1: drain queued input commands.
	e.processInput()

	// Phase 2: pack coordinator, then each wolf's state machine.
	e.wolves.Update(dtMs, nowMs, e.worldView(), e.rng, e.playerID)

	// Phase 3: plain-enemy AI.
	e.updateEnemies()

	// Ambient per-entity timers (cooldowns, power-up durations, projectile
	// lifetime) run alongside AI rather than as their own numbered phase.
	e.updateEntityTimers(dtMs)

	// Phase 4: physics integration.
	physicsStart := time.Now()
	e.physics.StepAll(e.store, dtSeconds)
	physicsDur := time.Since(physicsStart)
	RecordPhysics(physicsDur)

	// Phase 5 + 6: spatial-index rebuild, then collision resolution.
	collisionStart := time.Now()
	e.collisions.Resolve(e.store, e.effects)
	collisionDur := time.Since(collisionStart)
	RecordCollision(collisionDur, e.collisions.LastChecks())

	// Deaths are a direct consequence of the collision pass that just ran;
	// reaping them here keeps wave quotas (phase 7) and the snapshot
	// (phase 10) honest about what's actually still alive.
	e.reapDead()

	// Phase 7: wave system.
	e.updateWaves(dtMs)

	// Phase 8: visual-effects decay.
	e.effects.Decay(e.rngSeed + int64(e.tickNumber))

	// Phase 9: compact entity store.
	e.store.Compact()

	total := e.store.Len()
	active := 0
	e.store.IterActive(func(*Entity) { active++ })
	UpdateEntityCounts(total, active)
	UpdateEventLogStats(e.eventLog.GetTotalCount(), e.eventLog.GetDroppedCount())

	// Phase 10: produce/publish snapshot.
	e.publishSnapshot(PerformanceMetrics{
		PhysicsTimeMs:   physicsDur.Seconds() * 1000,
		CollisionTimeMs: collisionDur.Seconds() * 1000,
		CollisionChecks: e.collisions.LastChecks(),
		EntityCount:     total,
		ActiveEntities:  active,
	})
}

func (e *Engine) processInput() {
	for {
		cmd, ok := e.inputQueue.TryPop()
		if !ok {
			break
		}
		e.applyInputCommand(cmd)
	}
}

func (e *Engine) applyInputCommand(cmd InputCommand) {
	player := e.store.Get(e.playerID)
	if player == nil || player.Player == nil {
		return
	}
	pd := player.Player

	switch cmd.Kind {
	case inputMove:
		mv := (vecmath.Vec2{X: cmd.DX, Y: cmd.DY}).ClampLength(1)
		pd.MoveX, pd.MoveY = mv.X, mv.Y
		if aim := (vecmath.Vec2{X: cmd.AimX, Y: cmd.AimY}).Normalized(); aim != (vecmath.Vec2{}) {
			pd.AimX, pd.AimY = aim.X, aim.Y
		}
		if !pd.Combat.Rolling {
			speed := PlayerMoveSpeed
			if pd.Boosting {
				speed *= BoostSpeedMultiplier
			}
			player.Velocity = mv.Scale(speed)
		}
	case inputShoot:
		e.resolvePlayerShoot(player)
	case inputBoostOn:
		pd.StartBoost()
	case inputBoostOff:
		pd.StopBoost()
	case inputBlockStart:
		pd.Combat.StartBlock()
	case inputBlockEnd:
		pd.Combat.EndBlock()
	case inputAttack:
		if pd.CanAttack() {
			e.resolvePlayerAttack(player, cmd.Angle)
		}
	case inputRoll:
		if pd.Combat.CanRoll() && !pd.Attacking {
			dir := (vecmath.Vec2{X: cmd.DX, Y: cmd.DY}).Normalized()
			if dir == (vecmath.Vec2{}) {
				dir = vecmath.FromAngle(player.Rotation)
			}
			pd.Combat.StartRoll(dir.Angle())
			speed := RollDistance / (RollDurationMs / 1000)
			player.Velocity = dir.Scale(speed)
		}
	}
}

// resolvePlayerAttack runs the melee swing's hitbox test against every
// enemy/wolf in range, applying combo-scaled damage and knockback.
func (e *Engine) resolvePlayerAttack(player *Entity, angle float64) {
	pd := player.Player
	timing := PlayerMeleeTiming()
	pd.Attacking = true
	pd.AttackRemainingMs = timing.TotalMs()
	player.Rotation = angle

	hitbox := PlayerMeleeHitbox(angle)
	mult := pd.Combat.RegisterHit(e.tickNumber, DefaultCombo())

	e.store.IterActive(func(other *Entity) {
		if other.Kind != EntityEnemy && other.Kind != EntityWolf {
			return
		}
		if !hitbox.CheckHit(player.Position.X, player.Position.Y, other.Position.X, other.Position.Y) {
			return
		}

		dmg := MeleeDamage * mult * pd.DamageMultiplier
		other.Health -= dmg
		if other.Health < 0 {
			other.Health = 0
		}
		if other.Kind == EntityWolf && other.Health > 0 && other.Enemy != nil {
			other.Enemy.RequestHurt()
		}

		if knockDir := other.Position.Sub(player.Position).Normalized(); knockDir != (vecmath.Vec2{}) {
			other.Velocity = other.Velocity.Add(knockDir.Scale(timing.KnockbackForce))
		}
		e.effects.AddFlash(*NewImpactFlash(other.Position.X, other.Position.Y, "#ffffff", mult))
	})

	e.effects.AddTrail(*NewWeaponTrail(player.Position.X, player.Position.Y, "#88ccff", player.ID, timing.TrailType))
	e.effects.Shake.AddShake(timing.ShakeIntensity)
}

// resolvePlayerShoot fires one projectile along the player's aim
// direction, plus two angled extras while multi-shot is active.
func (e *Engine) resolvePlayerShoot(player *Entity) {
	pd := player.Player
	if !pd.CanShoot() {
		return
	}

	dir := (vecmath.Vec2{X: pd.AimX, Y: pd.AimY}).Normalized()
	if dir == (vecmath.Vec2{}) {
		dir = vecmath.Vec2{X: 1}
	}

	e.fireProjectile(player, dir)
	if pd.MultiShot {
		e.fireProjectile(player, dir.Rotated(MultiShotSpreadRad))
		e.fireProjectile(player, dir.Rotated(-MultiShotSpreadRad))
	}
	pd.RegisterShot()
}

func (e *Engine) fireProjectile(owner *Entity, dir vecmath.Vec2) {
	dmg := ProjectileDamage * owner.Player.DamageMultiplier
	e.store.Create(Entity{
		Kind:       EntityProjectile,
		Position:   owner.Position,
		Velocity:   dir.Scale(ProjectileSpeed),
		Rotation:   dir.Angle(),
		Radius:     ProjectileRadius,
		Health:     1,
		MaxHealth:  1,
		Projectile: NewProjectileData(owner.ID, dmg),
	})
}

// updateEnemies drives the plain-enemy wander/chase/attack-range state
// purely through velocity; contact damage itself is resolved by the
// collision phase's resolvePlayerVsAttacker handler, so an enemy
// standing in range doesn't get a second, independent damage source.
func (e *Engine) updateEnemies() {
	player := e.store.Get(e.playerID)
	e.store.IterActive(func(ent *Entity) {
		if ent.Kind != EntityEnemy || ent.Enemy == nil {
			return
		}
		if player == nil || player.Player == nil || player.Health <= 0 {
			ent.Velocity = vecmath.Vec2{}
			return
		}

		toPlayer := player.Position.Sub(ent.Position)
		dist := toPlayer.Length()
		switch {
		case dist <= EnemyAttackRange:
			ent.Velocity = vecmath.Vec2{}
		case dist <= EnemyChaseRange:
			ent.Velocity = toPlayer.Normalized().Scale(EnemyMoveSpeed)
		default:
			ent.Enemy.WanderAngle += (e.rng.Float64() - 0.5) * 0.3
			ent.Velocity = vecmath.FromAngle(ent.Enemy.WanderAngle).Scale(EnemyMoveSpeed * 0.5)
		}
	})
}

// updateEntityTimers advances every entity's cooldowns/buffs/lifetimes
// by dtMs. Wolves' AI timers tick inside wolf.Manager.Update; their
// EnemyData attack cooldown (used by the collision phase) ticks here.
func (e *Engine) updateEntityTimers(dtMs float64) {
	e.store.IterActive(func(ent *Entity) {
		if ent.Player != nil {
			ent.Player.UpdateTimers(dtMs)
		}
		if ent.Enemy != nil {
			ent.Enemy.UpdateTimers(dtMs)
		}
		if ent.Projectile != nil {
			if ent.Projectile.Tick(dtMs) {
				ent.Active = false
			}
		}
	})
}

// reapDead removes any enemy/wolf whose health hit zero this tick and
// handles player death (respawn on a remaining life, end_game otherwise).
func (e *Engine) reapDead() {
	e.store.IterActive(func(ent *Entity) {
		switch ent.Kind {
		case EntityWolf, EntityEnemy:
			if ent.Health <= 0 {
				e.killEntity(ent)
			}
		case EntityPlayer:
			if ent.Health <= 0 && ent.Player != nil {
				e.killPlayer(ent)
			}
		}
	})
}

func (e *Engine) killEntity(ent *Entity) {
	ent.Active = false
	if ent.Kind == EntityWolf {
		if pack := e.wolves.PackOf(ent.ID); pack != nil {
			pack.RegisterKill()
		}
		e.wolves.Despawn(ent.ID)
	}
	if player := e.store.Get(e.playerID); player != nil && player.Player != nil {
		player.Player.Kills++
		player.Player.Score += 10
	}
	e.eventLog.EmitSimple(EventTypeKill, e.tickNumber, ent.ID, KillPayload{KillerID: e.playerID, VictimID: ent.ID})
}

func (e *Engine) killPlayer(player *Entity) {
	pd := player.Player
	pd.Lives--
	if pd.Lives > 0 {
		player.Health = player.MaxHealth
		player.Position = vecmath.Vec2{X: e.worldWidth / 2, Y: e.worldHeight / 2}
		player.Velocity = vecmath.Vec2{}
		pd.Combat.InvulnMs = RollInvulnMs
		return
	}
	e.endGameLocked()
}

func (e *Engine) updateWaves(dtMs float64) {
	liveEnemies, liveWolves, livePowerUps := 0, 0, 0
	e.store.IterActive(func(ent *Entity) {
		switch ent.Kind {
		case EntityEnemy:
			liveEnemies++
		case EntityWolf:
			liveWolves++
		case EntityPowerUp:
			livePowerUps++
		}
	})

	spawns := e.waves.Update(dtMs, liveEnemies, liveWolves, livePowerUps, e.rng)
	if len(spawns) > 0 {
		e.materializeSpawns(spawns)
	}
}

// materializeSpawns turns wave-system spawn requests into live entities.
// Wolf requests carrying a PackSize > 1 arrive as a contiguous run
// (alpha first, then its supports) and are grouped into one
// wolf.Manager.SpawnPack call rather than len(run) separate solo spawns.
func (e *Engine) materializeSpawns(spawns []SpawnRequest) {
	wave, _ := e.waves.Snapshot()

	for i := 0; i < len(spawns); {
		req := spawns[i]
		switch req.Kind {
		case EntityEnemy:
			e.spawnEnemyEntity(req.X, req.Y)
			i++
		case EntityWolf:
			if req.PackSize > 1 {
				end := i + req.PackSize
				if end > len(spawns) {
					end = len(spawns)
				}
				e.spawnWolfPack(spawns[i:end], wave)
				i = end
			} else {
				e.spawnWolfEntity(req.X, req.Y, req.IsAlpha, wave)
				i++
			}
		case EntityPowerUp:
			e.spawnPowerUpEntity(req.X, req.Y, PowerUpType(req.PackSize))
			i++
		default:
			i++
		}
	}
}

// ===== Snapshots =====
//
// These read from the lock-free SnapshotPool, never e.mu, so a renderer
// polling every frame never blocks on or races with a concurrent Update.

func (e *Engine) EntityPositions() []EntitySnapshot {
	return e.snapshotPool.AcquireRead().Entities
}

func (e *Engine) PlayerState() PlayerStateSnapshot {
	return e.snapshotPool.AcquireRead().Player
}

func (e *Engine) GameState() GameStateSnapshot {
	return e.snapshotPool.AcquireRead().Game
}

func (e *Engine) PerformanceMetrics() PerformanceMetrics {
	return e.snapshotPool.AcquireRead().Perf
}

func (e *Engine) VisualEffects() VisualEffectsSnapshot {
	return e.snapshotPool.AcquireRead().Effects
}

func (e *Engine) WaveInfo() WaveInfoSnapshot {
	return e.snapshotPool.AcquireRead().Wave
}

func (e *Engine) publishSnapshot(perf PerformanceMetrics) {
	snap := e.snapshotPool.AcquireWrite()
	snap.TickNumber = e.tickNumber
	snap.RNGSeed = e.rngSeed
	snap.Perf = perf

	e.store.IterActive(func(ent *Entity) {
		if len(snap.Entities) >= cap(snap.Entities) {
			return
		}
		snap.Entities = append(snap.Entities, EntitySnapshot{
			ID:        ent.ID,
			Type:      ent.Kind,
			X:         ent.Position.X,
			Y:         ent.Position.Y,
			VX:        ent.Velocity.X,
			VY:        ent.Velocity.Y,
			Rotation:  ent.Rotation,
			Radius:    ent.Radius,
			Health:    ent.Health,
			MaxHealth: ent.MaxHealth,
		})
	})

	score := 0
	if player := e.store.Get(e.playerID); player != nil && player.Player != nil {
		pd := player.Player
		score = pd.Score
		snap.Player = PlayerStateSnapshot{
			ID:                 player.ID,
			Health:             player.Health,
			MaxHealth:          player.MaxHealth,
			Energy:             pd.Energy,
			MaxEnergy:          pd.MaxEnergy,
			Lives:              pd.Lives,
			Score:              pd.Score,
			Kills:              pd.Kills,
			Attacking:          pd.Attacking,
			Rolling:            pd.Combat.Rolling,
			Blocking:           pd.Combat.Blocking,
			PerfectParryWindow: pd.Combat.PerfectParryWindow,
			Invulnerable:       pd.Combat.IsInvulnerable(),
			ComboCount:         pd.Combat.ComboCount,
			Boosting:           pd.Boosting,
		}
	} else {
		snap.Player = PlayerStateSnapshot{}
	}

	highScore, _ := e.highScores.Best()
	wave, phase := e.waves.Snapshot()
	snap.Game = GameStateSnapshot{State: e.runState, Score: score, HighScore: highScore, Wave: wave}

	snap.Effects.ShakeX = e.effects.Shake.OffsetX
	snap.Effects.ShakeY = e.effects.Shake.OffsetY
	for _, p := range e.effects.Particles {
		if len(snap.Effects.Particles) >= cap(snap.Effects.Particles) {
			break
		}
		snap.Effects.Particles = append(snap.Effects.Particles, ParticleSnapshot{
			X: p.X, Y: p.Y, VX: p.VX, VY: p.VY, Size: p.Size, Alpha: p.Alpha, Color: p.Color,
		})
	}

	enemiesRemaining, wolvesRemaining := 0, 0
	e.store.IterActive(func(ent *Entity) {
		switch ent.Kind {
		case EntityEnemy:
			enemiesRemaining++
		case EntityWolf:
			wolvesRemaining++
		}
	})
	snap.Wave = WaveInfoSnapshot{
		CurrentWave:       wave,
		WaveActive:        phase == WaveActive,
		TransitionTimerMs: e.waves.TransitionRemainingMs(),
		EnemiesRemaining:  enemiesRemaining,
		WolvesRemaining:   wolvesRemaining,
	}

	e.snapshotPool.PublishWrite()
}
