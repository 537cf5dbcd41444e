package scene

import (
	"github.com/spaghettifunk/prisma/engine/math"
)

/**
 * @brief A minimal camera: a position and a look-at target, from which
 * the view matrix is derived. Only what view-space parameter bindings
 * need; projection and frustum management live elsewhere.
 */
type Camera struct {
	position math.Vec3
	target   math.Vec3
	up       math.Vec3

	view      math.Mat4
	viewDirty bool
}

func NewCamera(position, target math.Vec3) *Camera {
	return &Camera{
		position:  position,
		target:    target,
		up:        math.NewVec3Up(),
		viewDirty: true,
	}
}

func (c *Camera) Position() math.Vec3 {
	return c.position
}

func (c *Camera) SetPosition(position math.Vec3) {
	c.position = position
	c.viewDirty = true
}

func (c *Camera) SetTarget(target math.Vec3) {
	c.target = target
	c.viewDirty = true
}

// View returns the camera's view matrix, recalculating it if the
// position or target changed.
func (c *Camera) View() math.Mat4 {
	if c.viewDirty {
		c.view = math.NewMat4LookAt(c.position, c.target, c.up)
		c.viewDirty = false
	}
	return c.view
}
