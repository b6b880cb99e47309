package route

import (
	"testing"

	"github.com/Faultbox/procscape/internal/terrain"
)

// flatField creates a flat field with the given cells blocked.
func flatField(t *testing.T, width, height int, blocked [][2]int) *PathFinder {
	t.Helper()
	f, err := terrain.NewHeightField(width, height)
	if err != nil {
		t.Fatalf("NewHeightField() error = %v", err)
	}
	pf := NewPathFinder(f)
	for _, b := range blocked {
		pf.Block(b[0], b[1])
	}
	return pf
}

func TestPathFinder_FindPath_Simple(t *testing.T) {
	pf := flatField(t, 5, 5, nil)

	path := pf.FindPath(0, 0, 4, 4)
	if path == nil {
		t.Fatal("expected path, got nil")
	}

	// Path should start at (0,0) and end at (4,4)
	if path[0][0] != 0 || path[0][1] != 0 {
		t.Errorf("path should start at (0,0), got (%d,%d)", path[0][0], path[0][1])
	}

	lastIdx := len(path) - 1
	if path[lastIdx][0] != 4 || path[lastIdx][1] != 4 {
		t.Errorf("path should end at (4,4), got (%d,%d)", path[lastIdx][0], path[lastIdx][1])
	}

	// Open flat ground: straight diagonal
	if len(path) != 5 {
		t.Errorf("expected 5 nodes on the diagonal, got %d", len(path))
	}
}

func TestPathFinder_FindPath_WithObstacle(t *testing.T) {
	// 5x5 grid with wall in the middle
	blocked := [][2]int{
		{2, 0}, {2, 1}, {2, 2}, {2, 3},
	}
	pf := flatField(t, 5, 5, blocked)

	path := pf.FindPath(0, 2, 4, 2)
	if path == nil {
		t.Fatal("expected path around obstacle, got nil")
	}

	// Verify path doesn't go through blocked cells
	for _, p := range path {
		if p[0] == 2 && p[1] < 4 {
			t.Errorf("path went through blocked cell at (%d,%d)", p[0], p[1])
		}
	}
}

func TestPathFinder_FindPath_NoPath(t *testing.T) {
	// 5x5 grid with complete wall
	blocked := [][2]int{
		{2, 0}, {2, 1}, {2, 2}, {2, 3}, {2, 4},
	}
	pf := flatField(t, 5, 5, blocked)

	path := pf.FindPath(0, 2, 4, 2)
	if path != nil {
		t.Errorf("expected no path, got %v", path)
	}
}

func TestPathFinder_FindPath_Cliff(t *testing.T) {
	pf := flatField(t, 5, 5, nil)

	// Raise column 2 into a cliff taller than MaxClimb
	f := pf.field
	for z := 0; z < f.Height; z++ {
		f.Cells[f.Index(2, z)].Position.Y = 3
	}
	if path := pf.FindPath(0, 2, 4, 2); path != nil {
		t.Errorf("expected cliff to block, got %v", path)
	}

	// A climbable ramp in the bottom row opens a way through
	f.Cells[f.Index(2, 4)].Position.Y = 0.8
	path := pf.FindPath(0, 2, 4, 2)
	if path == nil {
		t.Fatal("expected path over the ramp, got nil")
	}
	for i := 1; i < len(path); i++ {
		a, b := path[i-1], path[i]
		if !pf.CanStep(a[0], a[1], b[0], b[1]) {
			t.Errorf("path step %v -> %v is not walkable", a, b)
		}
	}
}

func TestPathFinder_ClimbCost(t *testing.T) {
	pf := flatField(t, 5, 3, nil)
	// A bump on the middle row is walkable but costly
	f := pf.field
	f.Cells[f.Index(2, 1)].Position.Y = 0.9

	path := pf.FindPath(0, 1, 4, 1)
	for _, p := range path {
		if p == [2]int{2, 1} {
			t.Errorf("expected path to go around the bump, got %v", path)
		}
	}
}

func TestPathFinder_FindPath_SameStartGoal(t *testing.T) {
	pf := flatField(t, 5, 5, nil)

	path := pf.FindPath(2, 2, 2, 2)
	if len(path) == 0 {
		t.Fatal("expected path with single node")
	}

	if len(path) != 1 {
		t.Errorf("expected path length 1, got %d", len(path))
	}
}

func TestPathFinder_FindPath_OutOfBounds(t *testing.T) {
	pf := flatField(t, 5, 5, nil)

	// Start out of bounds
	path := pf.FindPath(-1, 0, 4, 4)
	if path != nil {
		t.Error("expected nil for out of bounds start")
	}

	// Goal out of bounds
	path = pf.FindPath(0, 0, 10, 10)
	if path != nil {
		t.Error("expected nil for out of bounds goal")
	}
}

func TestPathFinder_FindPath_BlockedGoal(t *testing.T) {
	pf := flatField(t, 5, 5, [][2]int{{4, 4}})

	path := pf.FindPath(0, 0, 4, 4)
	if path != nil {
		t.Error("expected nil for blocked goal")
	}
}

func TestPathFinder_IsWalkable(t *testing.T) {
	pf := flatField(t, 5, 5, [][2]int{{2, 2}})

	if pf.IsWalkable(2, 2) {
		t.Error("expected (2,2) to be blocked")
	}

	if !pf.IsWalkable(0, 0) {
		t.Error("expected (0,0) to be walkable")
	}

	if pf.IsWalkable(-1, 0) {
		t.Error("expected out of bounds to be not walkable")
	}
}

func TestPathLength(t *testing.T) {
	path := [][2]int{{0, 0}, {1, 0}, {2, 1}}
	want := float32(1 + 1.4142135)
	if got := PathLength(path); got-want > 1e-5 || want-got > 1e-5 {
		t.Errorf("PathLength() = %v, want %v", got, want)
	}
	if PathLength(nil) != 0 {
		t.Error("expected zero length for empty path")
	}
}
