// Package player implements the free-flying or grounded player body: it
// integrates velocity from input, resolves the result against voxel
// geometry when grounded, and exposes the view/projection matrices a
// renderer needs.
package player

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/talonforge/voxelcore/pkg/collision"
	"github.com/talonforge/voxelcore/pkg/voxel"
)

// MovementStyle replaces the source's "crane vs drone" boolean with a
// tagged variant, switched on exactly once per tick to build the player's
// raw velocity.
type MovementStyle int

const (
	// StyleGrounded accelerates only on the horizontal plane; gravity and a
	// decaying jump impulse own the vertical axis, and movement is clamped
	// against voxel collision.
	StyleGrounded MovementStyle = iota
	// StyleFree accelerates on the full 3-axis look basis, has no gravity,
	// and is never clamped against collision.
	StyleFree
)

// Input is one tick's worth of movement intent, decoupled from any
// particular input backend so the physics step can be driven and tested
// without a window.
type Input struct {
	Forward, Back, Left, Right bool
	Up, Down                   bool // only consulted in StyleFree
	Jump                       bool // only consulted in StyleGrounded
	SprintMultiplier           float32
}

// Player is a moving camera-carrying body: position, velocity, a decaying
// jump impulse, Euler rotation, and the movement style that governs how
// the three combine each tick.
type Player struct {
	Position   mgl32.Vec3
	Velocity   mgl32.Vec3
	Impulse    mgl32.Vec3
	Yaw, Pitch float32
	Style      MovementStyle
	HalfExtent mgl32.Vec3
	OnGround   bool

	front, right, up, worldUp mgl32.Vec3

	moveSpeed    float32
	rotateSpeed  float32
	gravity      float32
	jumpSpeed    float32
	impulseDecay float32

	fov float32

	lastX, lastY float64
	firstMouse   bool
}

// New returns a player at position, using style for its movement model.
func New(position mgl32.Vec3, style MovementStyle) *Player {
	p := &Player{
		Position:     position,
		Style:        style,
		Yaw:          DefaultYaw,
		Pitch:        DefaultPitch,
		HalfExtent:   mgl32.Vec3{0.3, 0.9, 0.3},
		worldUp:      mgl32.Vec3{0, 1, 0},
		moveSpeed:    DefaultMoveSpeed,
		rotateSpeed:  DefaultRotateSpeed,
		gravity:      DefaultGravity,
		jumpSpeed:    DefaultJumpSpeed,
		impulseDecay: DefaultImpulseDecay,
		fov:          DefaultFOV,
		firstMouse:   true,
	}
	p.updateVectors()
	return p
}

// updateVectors recomputes the front/right/up basis from yaw and pitch,
// exactly as the teacher's Camera.updateCameraVectors does.
func (p *Player) updateVectors() {
	front := mgl32.Vec3{
		float32(math.Cos(float64(mgl32.DegToRad(p.Yaw))) * math.Cos(float64(mgl32.DegToRad(p.Pitch)))),
		float32(math.Sin(float64(mgl32.DegToRad(p.Pitch)))),
		float32(math.Sin(float64(mgl32.DegToRad(p.Yaw))) * math.Cos(float64(mgl32.DegToRad(p.Pitch)))),
	}
	p.front = front.Normalize()
	p.right = p.front.Cross(p.worldUp).Normalize()
	p.up = p.right.Cross(p.front).Normalize()
}

// horizontalFront is the look direction projected onto the XZ plane, used
// by StyleGrounded so looking up or down doesn't tilt walking speed.
func (p *Player) horizontalFront() mgl32.Vec3 {
	return mgl32.Vec3{
		float32(math.Cos(float64(mgl32.DegToRad(p.Yaw)))),
		0,
		float32(math.Sin(float64(mgl32.DegToRad(p.Yaw)))),
	}.Normalize()
}

func (p *Player) horizontalRight() mgl32.Vec3 {
	return p.horizontalFront().Cross(p.worldUp).Normalize()
}

// Rotate adds yawDelta/pitchDelta to the player's orientation, clamping
// pitch the same way the teacher's camera does.
func (p *Player) Rotate(yawDelta, pitchDelta float32) {
	p.Yaw += yawDelta
	p.Pitch += pitchDelta
	if p.Pitch > MaxPitch {
		p.Pitch = MaxPitch
	}
	if p.Pitch < MinPitch {
		p.Pitch = MinPitch
	}
	p.updateVectors()
}

// HandleMouseMovement converts an absolute cursor position into a rotation
// delta, matching the teacher's Camera.HandleMouseMovement.
func (p *Player) HandleMouseMovement(xpos, ypos float64) {
	if p.firstMouse {
		p.lastX, p.lastY = xpos, ypos
		p.firstMouse = false
		return
	}

	xoffset := float32(xpos-p.lastX) * p.rotateSpeed
	yoffset := float32(p.lastY-ypos) * p.rotateSpeed
	p.lastX, p.lastY = xpos, ypos

	p.Rotate(xoffset, yoffset)
}

// computeAcceleration builds a unit-length (or zero) acceleration direction
// from input, using the horizontal-only basis in StyleGrounded (so the
// camera's pitch never affects ground speed) and the full 3-axis basis in
// StyleFree.
func (p *Player) computeAcceleration(input Input) mgl32.Vec3 {
	front, right := p.front, p.right
	if p.Style == StyleGrounded {
		front, right = p.horizontalFront(), p.horizontalRight()
	}

	var dir mgl32.Vec3
	if input.Forward {
		dir = dir.Add(front)
	}
	if input.Back {
		dir = dir.Sub(front)
	}
	if input.Right {
		dir = dir.Add(right)
	}
	if input.Left {
		dir = dir.Sub(right)
	}
	if p.Style == StyleFree {
		if input.Up {
			dir = dir.Add(p.worldUp)
		}
		if input.Down {
			dir = dir.Sub(p.worldUp)
		}
	}

	if dir.Len() > 1e-6 {
		dir = dir.Normalize()
	}
	return dir
}

// Tick advances the player by dt seconds given this tick's input. storage
// is consulted for collision only in StyleGrounded; pass nil in StyleFree.
func (p *Player) Tick(dt float32, input Input, storage *voxel.Storage) {
	speed := p.moveSpeed * input.SprintMultiplier
	if speed == 0 {
		speed = p.moveSpeed
	}
	accel := p.computeAcceleration(input).Mul(speed)

	// MovementStyle is switched on exactly once to build the raw velocity:
	// this is the direct replacement for the source's crane/drone branch.
	switch p.Style {
	case StyleGrounded:
		p.Velocity[0] = accel.X()
		p.Velocity[2] = accel.Z()
		p.Velocity[1] -= p.gravity * dt

		if input.Jump && p.OnGround {
			p.Impulse = p.Impulse.Add(mgl32.Vec3{0, p.jumpSpeed, 0})
		}
	case StyleFree:
		p.Velocity = accel
	}

	delta := p.Velocity.Add(p.Impulse).Mul(dt)

	if p.Style == StyleGrounded && storage != nil {
		box := p.AABB()
		resolved := collision.Resolve(storage, box, delta)
		moved := resolved.Center.Sub(box.Center)

		p.OnGround = delta.Y() < 0 && moved.Y() > delta.Y()+1e-4
		if p.OnGround {
			p.Velocity[1] = 0
		}
		p.Position = resolved.Center.Sub(mgl32.Vec3{0, p.HalfExtent.Y(), 0})
	} else {
		p.Position = p.Position.Add(delta)
	}

	p.Impulse = p.Impulse.Mul(p.impulseDecay)
}

// AABB returns the player's current collision box, centred HalfExtent.Y
// above Position (Position is the box's bottom-centre, the feet).
func (p *Player) AABB() collision.AABB {
	return collision.AABB{
		Center: p.Position.Add(mgl32.Vec3{0, p.HalfExtent.Y(), 0}),
		Size:   p.HalfExtent.Mul(2),
	}
}

// EyePosition returns the point a raycast for block picking should start
// from: near the top of the player's bounding box.
func (p *Player) EyePosition() mgl32.Vec3 {
	return p.Position.Add(mgl32.Vec3{0, p.HalfExtent.Y() * 1.8, 0})
}

// LookVector returns the direction the player is currently facing.
func (p *Player) LookVector() mgl32.Vec3 { return p.front }

// ViewMatrix returns the current view matrix for this player's camera.
func (p *Player) ViewMatrix() mgl32.Mat4 {
	return mgl32.LookAtV(p.EyePosition(), p.EyePosition().Add(p.front), p.up)
}

// ProjectionMatrix returns the projection matrix for the given viewport
// aspect ratio.
func (p *Player) ProjectionMatrix(aspect float32) mgl32.Mat4 {
	return mgl32.Perspective(mgl32.DegToRad(p.fov), aspect, 0.1, 1000.0)
}
