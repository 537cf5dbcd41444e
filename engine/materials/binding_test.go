package materials

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spaghettifunk/prisma/engine/math"
	"github.com/spaghettifunk/prisma/engine/renderer"
	"github.com/spaghettifunk/prisma/engine/scene"
)

func newBoundNode() *scene.Node {
	node := scene.NewNode("host")
	node.Transform.SetPosition(math.NewVec3(1, 2, 3))
	node.Transform.SetScale(math.NewVec3(2, 4, 8))
	node.SetActiveCamera(scene.NewCamera(math.NewVec3(0, 5, 10), math.NewVec3Zero()))
	return node
}

func TestNodeBindingNamesIsClosedSet(t *testing.T) {
	names := NodeBindingNames()
	assert.Len(t, names, 20)
	assert.Contains(t, names, "&Node::getScaleX")
	assert.Contains(t, names, "&Node::getActiveCameraTranslationView")
}

func TestBindNodeValueFloatBinding(t *testing.T) {
	node := newBoundNode()
	effect, backend := newTestEffect("u_scale_x")
	p := NewParameter("u_scale_x")

	p.BindNodeValue(node, "&Node::getScaleX")
	require.Equal(t, ParameterTypeMethod, p.Type())
	require.Equal(t, StorageShared, p.Storage())

	p.Bind(effect)

	v, ok := backend.Value("u_scale_x")
	require.True(t, ok)
	assert.Equal(t, renderer.UniformKindFloat, v.Kind)
	assert.Equal(t, []float32{node.ScaleX()}, v.Floats)
}

func TestBindNodeValueVec3Binding(t *testing.T) {
	node := newBoundNode()
	effect, backend := newTestEffect("u_camera_position")
	p := NewParameter("u_camera_position")

	p.BindNodeValue(node, "&Node::getActiveCameraTranslationWorld")
	p.Bind(effect)

	v, ok := backend.Value("u_camera_position")
	require.True(t, ok)
	assert.Equal(t, renderer.UniformKindVec3Array, v.Kind)
	assert.Equal(t, []float32{0, 5, 10}, v.Floats)
}

func TestBindNodeValueSamplesFreshEachBind(t *testing.T) {
	node := newBoundNode()
	effect, backend := newTestEffect("u_translation_y")
	p := NewParameter("u_translation_y")
	p.BindNodeValue(node, "&Node::getTranslationY")

	p.Bind(effect)
	node.Transform.SetPosition(math.NewVec3(1, 50, 3))
	p.Bind(effect)

	v, _ := backend.Value("u_translation_y")
	assert.Equal(t, []float32{50}, v.Floats)
}

func TestClonedBindingUsesCloneUniform(t *testing.T) {
	node := newBoundNode()
	src := NewParameter("u_scale_x")
	src.BindNodeValue(node, "&Node::getScaleX")

	dst := NewParameter("u_scale_x")
	src.CloneInto(dst)

	// The clone binds before the source ever resolved a uniform; the
	// shared binding must push through the clone's own uniform.
	effect, backend := newTestEffect("u_scale_x")
	dst.Bind(effect)

	v, ok := backend.Value("u_scale_x")
	require.True(t, ok)
	assert.Equal(t, renderer.UniformKindFloat, v.Kind)
	assert.Equal(t, []float32{node.ScaleX()}, v.Floats)
}

func TestBindNodeValueUnknownIdentifierLeavesValue(t *testing.T) {
	node := newBoundNode()
	p := NewParameter("u_value")
	p.SetFloat(7)

	p.BindNodeValue(node, "&Node::getNope")

	assert.Equal(t, ParameterTypeFloat, p.Type())
	assert.Equal(t, float32(7), p.floatValue)
}

func TestBindNodeValueNilNodeLeavesValue(t *testing.T) {
	p := NewParameter("u_value")
	p.SetFloat(7)

	p.BindNodeValue(nil, "&Node::getScaleX")

	assert.Equal(t, ParameterTypeFloat, p.Type())
}

func TestEveryBindingProducesAValue(t *testing.T) {
	node := newBoundNode()

	for _, name := range NodeBindingNames() {
		effect, backend := newTestEffect("u_bound")
		p := NewParameter("u_bound")

		p.BindNodeValue(node, name)
		require.Equal(t, ParameterTypeMethod, p.Type(), name)

		p.Bind(effect)
		v, ok := backend.Value("u_bound")
		require.True(t, ok, name)
		assert.NotEqual(t, renderer.UniformKindNone, v.Kind, name)
	}
}

func TestFloatBindingsReportScalars(t *testing.T) {
	node := newBoundNode()
	expectations := map[string]float32{
		"&Node::getScaleX":       2,
		"&Node::getScaleY":       4,
		"&Node::getScaleZ":       8,
		"&Node::getTranslationX": 1,
		"&Node::getTranslationY": 2,
		"&Node::getTranslationZ": 3,
	}

	for name, want := range expectations {
		effect, backend := newTestEffect("u_bound")
		p := NewParameter("u_bound")
		p.BindNodeValue(node, name)
		p.Bind(effect)

		v, ok := backend.Value("u_bound")
		require.True(t, ok, name)
		assert.Equal(t, renderer.UniformKindFloat, v.Kind, name)
		assert.Equal(t, []float32{want}, v.Floats, name)
	}
}
