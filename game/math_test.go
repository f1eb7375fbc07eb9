package game

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestHeadingVectors(t *testing.T) {
	for _, tc := range []struct {
		yaw            float32
		forward, right mgl32.Vec3
	}{
		{0, mgl32.Vec3{0, 0, 1}, mgl32.Vec3{1, 0, 0}},
		{90, mgl32.Vec3{-1, 0, 0}, mgl32.Vec3{0, 0, 1}},
		{180, mgl32.Vec3{0, 0, -1}, mgl32.Vec3{-1, 0, 0}},
		{270, mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 0, -1}},
	} {
		forward, right := HeadingVectors(tc.yaw)
		if !forward.ApproxEqualThreshold(tc.forward, 1e-6) {
			t.Fatalf("yaw %v: expected forward %v, got %v", tc.yaw, tc.forward, forward)
		}
		if !right.ApproxEqualThreshold(tc.right, 1e-6) {
			t.Fatalf("yaw %v: expected right %v, got %v", tc.yaw, tc.right, right)
		}
		if d := forward.Dot(right); !Float32ApproxEq(d, 0) {
			t.Fatalf("yaw %v: expected orthogonal heading vectors, dot=%v", tc.yaw, d)
		}
	}
}

func TestRound32(t *testing.T) {
	if got := Round32(1.23456, 2); got != 1.23 {
		t.Fatalf("expected 1.23, got %v", got)
	}
	if got := Round32(-1.005, 1); got != -1.0 {
		t.Fatalf("expected -1.0, got %v", got)
	}
}

func TestVec3HzDistSqr(t *testing.T) {
	if got := Vec3HzDistSqr(mgl32.Vec3{3, 100, 4}); got != 25 {
		t.Fatalf("expected 25, got %v", got)
	}
}
