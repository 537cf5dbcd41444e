package materials

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spaghettifunk/prisma/engine/core"
	"github.com/spaghettifunk/prisma/engine/math"
	"github.com/spaghettifunk/prisma/engine/renderer"
	"github.com/spaghettifunk/prisma/engine/renderer/metadata"
)

func TestParameterGetOrCreate(t *testing.T) {
	m := NewMaterial("test", "demo")

	p := m.Parameter("u_color")
	assert.Same(t, p, m.Parameter("u_color"))
	assert.Same(t, p, m.FindParameter("u_color"))
	assert.Equal(t, 1, m.ParameterCount())
	assert.Nil(t, m.FindParameter("u_other"))
}

func TestMaterialBindPushesAllParameters(t *testing.T) {
	effect, backend := newTestEffect("u_color", "u_shininess")
	m := NewMaterial("test", "demo")
	m.Parameter("u_color").SetVec4(math.Vec4{X: 1, W: 1})
	m.Parameter("u_shininess").SetFloat(16)

	m.Bind(effect)

	_, ok := backend.Value("u_color")
	assert.True(t, ok)
	_, ok = backend.Value("u_shininess")
	assert.True(t, ok)
	assert.Equal(t, uint64(2), backend.PushCount())
}

func TestMaterialCloneCopiesValuesAndBindings(t *testing.T) {
	sampler := metadata.NewTextureSampler(&metadata.Texture{Name: "checker"}, false, nil)
	m := NewMaterial("test", "demo")
	m.Parameter("u_color").SetVec3(math.NewVec3(1, 0, 0))
	m.Parameter("u_diffuse").SetSampler(sampler)
	m.nodeBindings["u_scale"] = "&Node::getScaleX"

	clone := m.Clone("test_clone")

	assert.Equal(t, "test_clone", clone.Name)
	assert.Equal(t, "demo", clone.ShaderName)
	assert.Equal(t, m.ParameterCount(), clone.ParameterCount())
	assert.NotEqual(t, m.ID, clone.ID)

	// Owned values are independent copies.
	m.Parameter("u_color").SetVec3(math.NewVec3(0, 1, 0))
	assert.Equal(t, []float32{1, 0, 0}, clone.FindParameter("u_color").floatData)

	// Shared sampler gained a reference: caller + source + clone.
	assert.Equal(t, int32(3), sampler.RefCount())

	// Auto-binding declarations carry over.
	node := newBoundNode()
	clone.BindNode(node)
	assert.Equal(t, ParameterTypeMethod, clone.FindParameter("u_scale").Type())
}

func TestMaterialDestroyReleasesShared(t *testing.T) {
	sampler := metadata.NewTextureSampler(&metadata.Texture{Name: "checker"}, false, nil)
	m := NewMaterial("test", "demo")
	m.Parameter("u_diffuse").SetSampler(sampler)

	m.Destroy()

	assert.Equal(t, int32(1), sampler.RefCount())
	assert.Equal(t, 0, m.ParameterCount())
}

func TestApplyConfigSetsTypedParameters(t *testing.T) {
	sampler := metadata.NewTextureSampler(&metadata.Texture{Name: "checker"}, false, nil)
	factory := &stubSamplerFactory{sampler: sampler}
	config := &metadata.MaterialConfig{
		Name:       "demo",
		ShaderName: "demo",
		Parameters: []metadata.ParameterConfig{
			{Name: "u_shininess", Type: "float", Value: []float32{32}},
			{Name: "u_levels", Type: "int", Value: []float32{1, 2, 3}},
			{Name: "u_color", Type: "vec4", Value: []float32{1, 0, 0, 1}},
			{Name: "u_offsets", Type: "vec2", Value: []float32{0, 1, 2, 3}},
			{Name: "u_diffuse", Type: "sampler", Path: "textures/checker.png"},
			{Name: "u_camera", Binding: "&Node::getActiveCameraTranslationWorld"},
		},
	}

	m := NewMaterial("demo", "")
	require.NoError(t, m.ApplyConfig(config, factory))

	assert.Equal(t, "demo", m.ShaderName)
	assert.Equal(t, uint32(1), m.Generation)

	assert.Equal(t, ParameterTypeFloat, m.FindParameter("u_shininess").Type())
	assert.Equal(t, ParameterTypeInt, m.FindParameter("u_levels").Type())
	assert.Equal(t, uint32(3), m.FindParameter("u_levels").Count())
	assert.Equal(t, ParameterTypeVector4, m.FindParameter("u_color").Type())
	assert.Equal(t, ParameterTypeVector2, m.FindParameter("u_offsets").Type())
	assert.Equal(t, uint32(2), m.FindParameter("u_offsets").Count())
	assert.Same(t, sampler, m.FindParameter("u_diffuse").Sampler())

	// Binding parameters stay empty until a node is attached.
	assert.Equal(t, ParameterTypeNone, m.FindParameter("u_camera").Type())
	node := newBoundNode()
	m.BindNode(node)
	assert.Equal(t, ParameterTypeMethod, m.FindParameter("u_camera").Type())
}

func TestApplyConfigRejectsBadParameters(t *testing.T) {
	m := NewMaterial("demo", "")

	err := m.ApplyConfig(&metadata.MaterialConfig{
		Name: "demo", ShaderName: "demo",
		Parameters: []metadata.ParameterConfig{{Name: "u_color", Type: "vec3", Value: []float32{1, 2}}},
	}, nil)
	assert.Error(t, err)

	err = m.ApplyConfig(&metadata.MaterialConfig{
		Name: "demo", ShaderName: "demo",
		Parameters: []metadata.ParameterConfig{{Name: "u_value", Type: "quat"}},
	}, nil)
	assert.ErrorIs(t, err, core.ErrUnsupportedType)

	err = m.ApplyConfig(nil, nil)
	assert.Error(t, err)
}

func TestMaterialValidateAgainstEffect(t *testing.T) {
	effect, _ := newTestEffect("u_color")
	m := NewMaterial("test", "demo")
	m.Parameter("u_color").SetVec4(math.Vec4{X: 1, W: 1})

	require.NoError(t, m.Validate(effect))

	m.Parameter("u_missing").SetFloat(1)
	err := m.Validate(effect)
	assert.True(t, errors.Is(err, core.ErrUniformNotFound))

	assert.Error(t, m.Validate(nil))
}

func TestApplyConfigReloadKeepsParameterPointers(t *testing.T) {
	m := NewMaterial("demo", "")
	first := &metadata.MaterialConfig{
		Name: "demo", ShaderName: "demo",
		Parameters: []metadata.ParameterConfig{{Name: "u_shininess", Type: "float", Value: []float32{8}}},
	}
	require.NoError(t, m.ApplyConfig(first, nil))
	p := m.FindParameter("u_shininess")

	second := &metadata.MaterialConfig{
		Name: "demo", ShaderName: "demo",
		Parameters: []metadata.ParameterConfig{{Name: "u_shininess", Type: "float", Value: []float32{64}}},
	}
	require.NoError(t, m.ApplyConfig(second, nil))

	// Holders of the parameter observe the reloaded value.
	assert.Same(t, p, m.FindParameter("u_shininess"))
	assert.Equal(t, float32(64), p.floatValue)
	assert.Equal(t, uint32(2), m.Generation)

	effect, backend := newTestEffect("u_shininess")
	m.Bind(effect)
	v, _ := backend.Value("u_shininess")
	assert.Equal(t, renderer.UniformKindFloat, v.Kind)
	assert.Equal(t, []float32{64}, v.Floats)
}
