package scene

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/spaghettifunk/prisma/engine/math"
)

func TestNodeScaleAndTranslationAccessors(t *testing.T) {
	n := NewNode("host")
	n.Transform.SetPosition(math.NewVec3(1, 2, 3))
	n.Transform.SetScale(math.NewVec3(4, 5, 6))

	assert.Equal(t, float32(4), n.ScaleX())
	assert.Equal(t, float32(5), n.ScaleY())
	assert.Equal(t, float32(6), n.ScaleZ())
	assert.Equal(t, float32(1), n.TranslationX())
	assert.Equal(t, float32(2), n.TranslationY())
	assert.Equal(t, float32(3), n.TranslationZ())
}

func TestNodeDirectionVectors(t *testing.T) {
	n := NewNode("host")

	eps := math.K_FLOAT_EPSILON
	assert.True(t, n.ForwardVector().Compare(math.NewVec3(0, 0, -1), eps))
	assert.True(t, n.BackVector().Compare(math.NewVec3(0, 0, 1), eps))
	assert.True(t, n.UpVector().Compare(math.NewVec3(0, 1, 0), eps))
	assert.True(t, n.DownVector().Compare(math.NewVec3(0, -1, 0), eps))
	assert.True(t, n.LeftVector().Compare(math.NewVec3(-1, 0, 0), eps))
	assert.True(t, n.RightVector().Compare(math.NewVec3(1, 0, 0), eps))
}

func TestNodeWorldAccessorsFollowParent(t *testing.T) {
	parent := NewNode("parent")
	parent.Transform.SetPosition(math.NewVec3(10, 0, 0))

	n := NewNode("child")
	n.Transform.SetPosition(math.NewVec3(0, 2, 0))
	n.Transform.Parent = parent.Transform

	world := n.TranslationWorld()
	assert.True(t, world.Compare(math.NewVec3(10, 2, 0), math.K_FLOAT_EPSILON))
}

func TestNodeCameraAccessorsWithoutCamera(t *testing.T) {
	n := NewNode("host")

	assert.Equal(t, math.NewVec3Zero(), n.ActiveCameraTranslationWorld())
	assert.Equal(t, math.NewVec3Zero(), n.ActiveCameraTranslationView())
	// Without a camera, view space equals world space.
	assert.Equal(t, n.TranslationWorld(), n.TranslationView())
}

func TestNodeCameraAccessorsWithCamera(t *testing.T) {
	camera := NewCamera(math.NewVec3(0, 0, 10), math.NewVec3Zero())
	n := NewNode("host")
	n.SetActiveCamera(camera)

	assert.Equal(t, math.NewVec3(0, 0, 10), n.ActiveCameraTranslationWorld())

	// The camera sits at the view-space origin.
	view := n.ActiveCameraTranslationView()
	assert.InDelta(t, 0, float64(view.X), 1e-5)
	assert.InDelta(t, 0, float64(view.Y), 1e-5)
	assert.InDelta(t, 0, float64(view.Z), 1e-5)
}
