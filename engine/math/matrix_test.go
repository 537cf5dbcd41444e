package math

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLerp(t *testing.T) {
	assert.Equal(t, float32(2), Lerp(0, 2, 10))
	assert.Equal(t, float32(10), Lerp(1, 2, 10))
	assert.Equal(t, float32(6), Lerp(0.5, 2, 10))
	assert.Equal(t, float32(-4), Lerp(0.5, 0, -8))
}

func TestVec3Ops(t *testing.T) {
	a := NewVec3(1, 2, 3)
	b := NewVec3(4, 5, 6)

	assert.Equal(t, NewVec3(5, 7, 9), a.Add(b))
	assert.Equal(t, NewVec3(-3, -3, -3), a.Sub(b))
	assert.Equal(t, float32(32), a.Dot(b))
	assert.Equal(t, NewVec3(-3, 6, -3), a.Cross(b))
	assert.InDelta(t, 1.0, float64(a.Normalized().Length()), 1e-6)
	assert.True(t, a.Compare(NewVec3(1, 2, 3), K_FLOAT_EPSILON))
	assert.False(t, a.Compare(b, K_FLOAT_EPSILON))
}

func TestMat4TranslationRoundTrip(t *testing.T) {
	m := NewMat4Translation(NewVec3(3, -2, 7))

	assert.Equal(t, NewVec3(3, -2, 7), m.Translation())

	p := NewVec3(1, 1, 1).Transform(m, 1)
	assert.Equal(t, NewVec3(4, -1, 8), p)

	// Directions ignore translation.
	d := NewVec3(1, 1, 1).Transform(m, 0)
	assert.Equal(t, NewVec3(1, 1, 1), d)
}

func TestMat4ScaleTransform(t *testing.T) {
	m := NewMat4Scale(NewVec3(2, 3, 4))

	assert.Equal(t, NewVec3(2, 6, 12), NewVec3(1, 2, 3).Transform(m, 1))
}

func TestMat4MulComposesTranslations(t *testing.T) {
	a := NewMat4Translation(NewVec3(1, 0, 0))
	b := NewMat4Translation(NewVec3(0, 2, 0))

	assert.Equal(t, NewVec3(1, 2, 0), a.Mul(b).Translation())
}

func TestIdentityDirectionVectors(t *testing.T) {
	m := NewMat4Identity()

	assert.True(t, m.Forward().Compare(NewVec3(0, 0, -1), K_FLOAT_EPSILON))
	assert.True(t, m.Backward().Compare(NewVec3(0, 0, 1), K_FLOAT_EPSILON))
	assert.True(t, m.Up().Compare(NewVec3(0, 1, 0), K_FLOAT_EPSILON))
	assert.True(t, m.Down().Compare(NewVec3(0, -1, 0), K_FLOAT_EPSILON))
	assert.True(t, m.Left().Compare(NewVec3(-1, 0, 0), K_FLOAT_EPSILON))
	assert.True(t, m.Right().Compare(NewVec3(1, 0, 0), K_FLOAT_EPSILON))
}

func TestQuaternionNormalize(t *testing.T) {
	q := Quaternion{X: 0, Y: 2, Z: 0, W: 0}.Normalize()

	assert.InDelta(t, 1.0, float64(q.Normal()), 1e-6)
	assert.InDelta(t, 1.0, float64(q.Y), 1e-6)
}

func TestTransformLocalAppliesScaleAndPosition(t *testing.T) {
	tr := TransformCreate()
	tr.SetPosition(NewVec3(5, 0, 0))
	tr.SetScale(NewVec3(2, 2, 2))

	local := tr.GetLocal()
	p := NewVec3(1, 0, 0).Transform(local, 1)

	assert.True(t, p.Compare(NewVec3(7, 0, 0), K_FLOAT_EPSILON))
}

func TestTransformWorldFollowsParent(t *testing.T) {
	parent := TransformFromPosition(NewVec3(10, 0, 0))
	child := TransformFromPosition(NewVec3(1, 2, 3))
	child.Parent = parent

	world := child.GetWorld()

	assert.True(t, world.Translation().Compare(NewVec3(11, 2, 3), K_FLOAT_EPSILON))
}

func TestClamp(t *testing.T) {
	assert.Equal(t, float32(1), Clamp(float32(5), 0, 1))
	assert.Equal(t, float32(0), Clamp(float32(-5), 0, 1))
	assert.Equal(t, float32(0.5), Clamp(float32(0.5), 0, 1))
	assert.Equal(t, 7, Clamp(7, 0, 10))
}
