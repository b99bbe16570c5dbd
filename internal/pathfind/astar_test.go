package pathfind

import (
	"testing"

	"wolfpack/internal/game/vecmath"
)

func openGrid(cellX, cellY int) bool { return true }

func TestFindPathStraightLine(t *testing.T) {
	pf := NewPathfinder(10, openGrid)
	path, ok := pf.FindPath(vecmath.Vec2{X: 5, Y: 5}, vecmath.Vec2{X: 95, Y: 5}, 0)
	if !ok {
		t.Fatal("expected a path on an open grid")
	}
	if len(path) < 2 {
		t.Fatalf("expected at least start/end waypoints, got %d", len(path))
	}
	last := path[len(path)-1]
	if last.DistanceTo(vecmath.Vec2{X: 95, Y: 5}) > 10 {
		t.Fatalf("path endpoint %v too far from goal", last)
	}
}

func TestFindPathBlockedReturnsNoPath(t *testing.T) {
	wall := func(cellX, cellY int) bool {
		return cellX != 5
	}
	pf := NewPathfinder(10, wall)
	_, ok := pf.FindPath(vecmath.Vec2{X: 5, Y: 5}, vecmath.Vec2{X: 95, Y: 5}, 0)
	if ok {
		t.Fatal("expected no path through a blocking wall with no gap")
	}
}

func TestFindPathCachesUntilTTLExpires(t *testing.T) {
	calls := 0
	fn := func(cellX, cellY int) bool {
		calls++
		return true
	}
	pf := NewPathfinder(10, fn)

	if _, ok := pf.FindPath(vecmath.Vec2{X: 5, Y: 5}, vecmath.Vec2{X: 95, Y: 5}, 0); !ok {
		t.Fatal("expected a path")
	}
	firstCalls := calls

	if _, ok := pf.FindPath(vecmath.Vec2{X: 5, Y: 5}, vecmath.Vec2{X: 95, Y: 5}, 1000); !ok {
		t.Fatal("expected cached path")
	}
	if calls != firstCalls {
		t.Fatalf("expected cache hit to avoid re-searching, walkable called %d more times", calls-firstCalls)
	}

	if _, ok := pf.FindPath(vecmath.Vec2{X: 5, Y: 5}, vecmath.Vec2{X: 95, Y: 5}, CacheTTLMs+1); !ok {
		t.Fatal("expected a path after cache expiry")
	}
	if calls == firstCalls {
		t.Fatal("expected cache expiry to trigger a fresh search")
	}
}

func TestLineOfSightBlockedByWall(t *testing.T) {
	wall := func(cellX, cellY int) bool {
		return !(cellX == 5 && cellY == 0)
	}
	pf := NewPathfinder(10, wall)
	if pf.LineOfSight(vecmath.Vec2{X: 5, Y: 5}, vecmath.Vec2{X: 95, Y: 5}) {
		t.Fatal("expected line of sight to be blocked")
	}
}

func TestLineOfSightOpenGrid(t *testing.T) {
	pf := NewPathfinder(10, openGrid)
	if !pf.LineOfSight(vecmath.Vec2{X: 5, Y: 5}, vecmath.Vec2{X: 95, Y: 95}) {
		t.Fatal("expected line of sight on an open grid")
	}
}
