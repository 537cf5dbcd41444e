package loaders

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spaghettifunk/prisma/engine/renderer/metadata"
)

func writeMaterialFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.pmat")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestMaterialLoaderParsesDefinition(t *testing.T) {
	path := writeMaterialFile(t, `
name = "crate"
shader = "world"
auto_release = true

[[parameters]]
name = "u_diffuse_color"
type = "vec4"
value = [1.0, 1.0, 1.0, 1.0]

[[parameters]]
name = "u_diffuse_texture"
type = "sampler"
path = "textures/crate.png"
generate_mipmaps = true

[[parameters]]
name = "u_camera_position"
binding = "&Node::getActiveCameraTranslationWorld"
`)

	loader := &MaterialLoader{}
	resource, err := loader.Load(path, metadata.ResourceTypeMaterial, nil)
	require.NoError(t, err)

	config, ok := resource.Data.(*metadata.MaterialConfig)
	require.True(t, ok)

	assert.Equal(t, "crate", config.Name)
	assert.Equal(t, "world", config.ShaderName)
	assert.True(t, config.AutoRelease)
	require.Len(t, config.Parameters, 3)

	assert.Equal(t, "vec4", config.Parameters[0].Type)
	assert.Equal(t, []float32{1, 1, 1, 1}, config.Parameters[0].Value)
	assert.Equal(t, "textures/crate.png", config.Parameters[1].Path)
	assert.True(t, config.Parameters[1].GenerateMipmaps)
	assert.Equal(t, "&Node::getActiveCameraTranslationWorld", config.Parameters[2].Binding)
}

func TestMaterialLoaderRejectsMissingName(t *testing.T) {
	path := writeMaterialFile(t, `shader = "world"`)

	_, err := (&MaterialLoader{}).Load(path, metadata.ResourceTypeMaterial, nil)
	assert.Error(t, err)
}

func TestMaterialLoaderRejectsMissingShader(t *testing.T) {
	path := writeMaterialFile(t, `name = "crate"`)

	_, err := (&MaterialLoader{}).Load(path, metadata.ResourceTypeMaterial, nil)
	assert.Error(t, err)
}

func TestMaterialLoaderRejectsUntypedParameter(t *testing.T) {
	path := writeMaterialFile(t, `
name = "crate"
shader = "world"

[[parameters]]
name = "u_mystery"
`)

	_, err := (&MaterialLoader{}).Load(path, metadata.ResourceTypeMaterial, nil)
	assert.Error(t, err)
}

func TestMaterialLoaderRejectsMalformedToml(t *testing.T) {
	path := writeMaterialFile(t, `name = `)

	_, err := (&MaterialLoader{}).Load(path, metadata.ResourceTypeMaterial, nil)
	assert.Error(t, err)
}

func TestMaterialLoaderMissingFile(t *testing.T) {
	_, err := (&MaterialLoader{}).Load(filepath.Join(t.TempDir(), "nope.pmat"), metadata.ResourceTypeMaterial, nil)
	assert.Error(t, err)
}
