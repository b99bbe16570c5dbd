// Package wolf implements the wolf behavior library, per-wolf state
// machine, pack coordinator, and spawn/difficulty manager. It never
// imports internal/game: every position, velocity and health read or
// write crosses the WorldView interface defined in wolf.go, so the
// dependency graph stays game -> wolf -> pathfind -> vecmath/id with no
// back-edge.
package wolf

// Movement speeds, world-units/s.
const (
	BaseSpeed    float64 = 110
	PatrolSpeed  float64 = 70
	StealthSpeed float64 = 55
	SprintSpeed  float64 = 210
)

// Perception and engagement ranges, world-units. Kept proportioned
// (detection : ambush-detect : attack : coordination = 8 : 3 : 1.5 : 12)
// and scaled to the world-unit system already used throughout
// internal/game (PlayerMoveSpeed=220, EnemyMoveSpeed=90, 1280x720 world,
// 100-unit grid cells).
const (
	DetectionRange       float64 = 380
	AmbushDetectionRange float64 = 142
	AttackRange          float64 = 71
	MinPackDistance      float64 = 70
	MaxPackDistance       float64 = 570 // coordination range exceeds detection range, per the 12:8 ratio
	FlankingAngleRad      float64 = 0.7853981633974483 // 45 degrees
)

// Timing constants, milliseconds.
const (
	LungeDurationMs    float64 = 450
	// LungeChancePerAttackTick is the per-tick probability an attacking
	// wolf commits to a lunge rather than continuing to bite in place.
	LungeChancePerAttackTick float64 = 0.05
	HowlCooldownMs     float64 = 10000
	HowlStaggerMs      float64 = 200
	RetreatDurationMs  float64 = 2000
	AmbushPatienceMs   float64 = 5000
	HowlDurationMs      float64 = 1500
	HurtDurationMs      float64 = 300
	StunnedDurationMs   float64 = 1000

	// DyingDurationMs is a brief death animation window held before the
	// wolf is actually removed, rather than deleting it the instant
	// health drops to zero.
	DyingDurationMs float64 = 800
)

// Health, damage and scaling.
const (
	WolfBaseHealth   float64 = 40
	AlphaHealthBonus float64 = 1.4
	WolfRadius       float64 = 26
	WolfBiteDamage   float64 = 12
	WolfBiteCooldownMs float64 = 1500

	// RetreatHealthFraction is the health_ratio below which Chasing and
	// Attacking both transition to Retreating.
	RetreatHealthFraction float64 = 0.3

	// DifficultyBase and DifficultyGrowth set the pack's difficulty
	// scaling: a wolf's effective stat multiplier is
	// DifficultyBase * DifficultyGrowth^(wave-1).
	DifficultyBase   float64 = 1.0
	DifficultyGrowth float64 = 1.1
)

// Pack formation and role assignment.
const (
	AlphaChance          float64 = 0.2
	MinSupportWolves     int     = 2
	MaxSupportWolves     int     = 4
	MaxPackSize          int     = 5
	SurroundRadiusFactor float64 = 2.0 // surround radius = SurroundRadiusFactor * AttackRange
)
