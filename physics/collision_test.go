package physics

import (
	"math"
	"testing"

	"github.com/lixenwraith/communion/vmath"
)

// TestCheckShardSpacingFindsClosestPair verifies the closest pair and
// overlap magnitude are reported, not just a boolean
func TestCheckShardSpacingFindsClosestPair(t *testing.T) {
	positions := []vmath.Vec3{
		{X: 0, Y: 0, Z: 0},
		{X: 10, Y: 0, Z: 0},
		{X: 10.5, Y: 0, Z: 0}, // Closest to previous: distance 0.5
		{X: 0, Y: 20, Z: 0},
	}

	result := CheckShardSpacing(positions, 0.4)

	if !result.HasCollision {
		t.Fatal("Expected collision at distance 0.5 with required 0.8")
	}
	if result.PairA != 1 || result.PairB != 2 {
		t.Errorf("Expected pair (1,2), got (%d,%d)", result.PairA, result.PairB)
	}
	if math.Abs(result.Distance-0.5) > 1e-9 {
		t.Errorf("Expected distance 0.5, got %f", result.Distance)
	}
	if math.Abs(result.Required-0.8) > 1e-9 {
		t.Errorf("Expected required 0.8, got %f", result.Required)
	}
	if math.Abs(result.Overlap-0.3) > 1e-9 {
		t.Errorf("Expected overlap 0.3, got %f", result.Overlap)
	}
}

// TestCheckShardSpacingClean verifies well-separated shards report no
// collision and zero overlap
func TestCheckShardSpacingClean(t *testing.T) {
	positions := []vmath.Vec3{
		{X: 0, Y: 0, Z: 0},
		{X: 5, Y: 0, Z: 0},
		{X: 0, Y: 5, Z: 0},
	}

	result := CheckShardSpacing(positions, 1.0)
	if result.HasCollision {
		t.Error("Expected no collision at distance 5 with required 2")
	}
	if result.Overlap != 0 {
		t.Errorf("Expected zero overlap, got %f", result.Overlap)
	}
	if math.Abs(result.Distance-5) > 1e-9 {
		t.Errorf("Expected closest distance 5, got %f", result.Distance)
	}
}

// TestCheckShardSpacingDegenerate verifies empty and single inputs yield a
// defined no-collision result
func TestCheckShardSpacingDegenerate(t *testing.T) {
	for _, positions := range [][]vmath.Vec3{nil, {{X: 1}}} {
		result := CheckShardSpacing(positions, 1.0)
		if result.HasCollision {
			t.Error("Degenerate input reported collision")
		}
		if result.PairA != -1 || result.PairB != -1 {
			t.Errorf("Expected pair (-1,-1), got (%d,%d)", result.PairA, result.PairB)
		}
	}
}

// TestCheckGlobeClearance verifies the worst offender against the globe
// surface is identified
func TestCheckGlobeClearance(t *testing.T) {
	positions := []vmath.Vec3{
		{X: 15, Y: 0, Z: 0}, // Gap 5
		{X: 0, Y: 10.2, Z: 0}, // Gap 0.2, violates required 0.5
		{X: 0, Y: 0, Z: 13},   // Gap 3
	}

	result := CheckGlobeClearance(positions, 0.5, 10.0)

	if !result.HasCollision {
		t.Fatal("Expected clearance violation at gap 0.2")
	}
	if result.Index != 1 {
		t.Errorf("Expected worst offender index 1, got %d", result.Index)
	}
	if math.Abs(result.Distance-0.2) > 1e-9 {
		t.Errorf("Expected worst gap 0.2, got %f", result.Distance)
	}
}

// TestCheckGlobeClearanceEmpty verifies no positions means no collision
func TestCheckGlobeClearanceEmpty(t *testing.T) {
	result := CheckGlobeClearance(nil, 0.5, 10.0)
	if result.HasCollision {
		t.Error("Empty input reported collision")
	}
	if result.Index != -1 {
		t.Errorf("Expected index -1, got %d", result.Index)
	}
}
