package game

// ObstacleData is the per-entity payload for an EntityObstacle. Circle obstacles use only the shared header's Radius;
// Square/Rectangle obstacles additionally carry a half-extent box used
// by the collision system's circle-rectangle path.
type ObstacleData struct {
	Shape ObstacleShape

	HalfWidth  float64 // Square/Rectangle only
	HalfHeight float64 // Square/Rectangle only

	Destructible bool
}

const (
	ObstacleDefaultRadius float64 = 40
	ObstacleDefaultHealth float64 = 60
)

// NewObstacleData returns a new obstacle payload. For ObstacleCircle,
// halfWidth/halfHeight are ignored.
func NewObstacleData(shape ObstacleShape, halfWidth, halfHeight float64, destructible bool) *ObstacleData {
	return &ObstacleData{
		Shape:        shape,
		HalfWidth:    halfWidth,
		HalfHeight:   halfHeight,
		Destructible: destructible,
	}
}
