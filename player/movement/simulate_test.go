package movement_test

import (
	"io"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/predmove/predmove/game"
	"github.com/predmove/predmove/mode"
	"github.com/predmove/predmove/player"
	"github.com/predmove/predmove/player/component"
	"github.com/predmove/predmove/player/movement"
	"github.com/predmove/predmove/settings"
	"github.com/sirupsen/logrus"
)

func newTestPlayer() *player.Player {
	log := logrus.New()
	log.SetOutput(io.Discard)

	p := player.New(log, false)
	component.Register(p, settings.Default(), mode.NewRegistry())
	return p
}

func TestSimulateAcceleratesTowardHeading(t *testing.T) {
	p := newTestPlayer()
	mov := p.Movement()
	mov.SetOnGround(true)
	mov.SetImpulse(mgl32.Vec2{1, 0})
	mov.SetYaw(0)

	movement.Simulate(p, game.StandardDelta)

	vel := mov.Vel()
	if vel.Z() <= 0 {
		t.Fatalf("expected forward velocity, got %v", vel)
	}
	if vel.X() != 0 {
		t.Fatalf("expected no lateral velocity at yaw 0, got %v", vel)
	}
}

func TestSimulateClampsToMaxSpeed(t *testing.T) {
	p := newTestPlayer()
	mov := p.Movement()
	mov.SetOnGround(true)
	mov.SetImpulse(mgl32.Vec2{1, 0})

	for i := 0; i < game.TickRate*5; i++ {
		movement.Simulate(p, game.StandardDelta)
	}

	maxSq := mov.MaxSpeed() * mov.MaxSpeed()
	if hz := game.Vec3HzDistSqr(mov.Vel()); hz > maxSq*1.001 {
		t.Fatalf("expected speed capped at %v, got %v", mov.MaxSpeed(), mov.Vel())
	}
}

func TestSimulateBrakesToStop(t *testing.T) {
	p := newTestPlayer()
	mov := p.Movement()
	mov.SetOnGround(true)
	mov.SetVel(mgl32.Vec3{0, 0, 300})
	mov.SetImpulse(mgl32.Vec2{})

	for i := 0; i < game.TickRate*3; i++ {
		movement.Simulate(p, game.StandardDelta)
	}

	if hz := game.Vec3HzDistSqr(mov.Vel()); hz != 0 {
		t.Fatalf("expected braking to reach a full stop, got %v", mov.Vel())
	}
}

func TestSimulateBrakingNeverReversesDirection(t *testing.T) {
	p := newTestPlayer()
	mov := p.Movement()
	mov.SetOnGround(true)
	mov.SetVel(mgl32.Vec3{0, 0, 50})
	mov.SetImpulse(mgl32.Vec2{})

	for i := 0; i < game.TickRate; i++ {
		movement.Simulate(p, game.StandardDelta)
		if mov.Vel().Z() < 0 {
			t.Fatalf("expected braking to stop at zero, got %v", mov.Vel())
		}
	}
}

func TestSimulateJumpAndGravity(t *testing.T) {
	p := newTestPlayer()
	mov := p.Movement()
	mov.SetOnGround(true)
	mov.SetJumping(true)

	movement.Simulate(p, game.StandardDelta)
	if mov.OnGround() {
		t.Fatal("expected the jump to leave the ground")
	}
	if mov.Vel().Y() <= 0 {
		t.Fatalf("expected upward velocity after jump, got %v", mov.Vel())
	}

	mov.SetJumping(false)
	landed := false
	for i := 0; i < game.TickRate*3; i++ {
		movement.Simulate(p, game.StandardDelta)
		if mov.OnGround() {
			landed = true
			break
		}
	}
	if !landed {
		t.Fatalf("expected the jump arc to land, still at %v", mov.Pos())
	}
	if mov.Pos().Y() != game.GroundLevel {
		t.Fatalf("expected landing at ground level, got %v", mov.Pos())
	}
}

func TestSimulateImmobileZeroesVelocity(t *testing.T) {
	p := newTestPlayer()
	mov := p.Movement()
	mov.SetOnGround(true)
	mov.SetVel(mgl32.Vec3{100, 0, 100})
	mov.SetImmobile(true)
	mov.SetImpulse(mgl32.Vec2{1, 0})

	pos := mov.Pos()
	movement.Simulate(p, game.StandardDelta)

	if mov.Vel() != (mgl32.Vec3{}) {
		t.Fatalf("expected zero velocity while immobile, got %v", mov.Vel())
	}
	if mov.Pos() != pos {
		t.Fatalf("expected no movement while immobile, got %v", mov.Pos())
	}
}

func TestSimulateFlyingIgnoresGravity(t *testing.T) {
	p := newTestPlayer()
	mov := p.Movement()
	mov.SetPos(mgl32.Vec3{0, 500, 0})
	mov.SetFlying(true)

	movement.Simulate(p, game.StandardDelta)

	if mov.Vel().Y() != 0 {
		t.Fatalf("expected no gravity while flying, got %v", mov.Vel())
	}
}
