package materials

import (
	"fmt"

	"github.com/spaghettifunk/prisma/engine/core"
	"github.com/spaghettifunk/prisma/engine/math"
	"github.com/spaghettifunk/prisma/engine/renderer/metadata"
	"github.com/spaghettifunk/prisma/engine/scene"
)

/**
 * @brief A material is a named set of typed parameters pushed into one
 * effect. Parameters belong to exactly one material and live as long
 * as it does.
 */
type Material struct {
	/** @brief The material id. */
	ID uint32
	/** @brief The material name. */
	Name string
	/** @brief The name of the effect this material binds against. */
	ShaderName string
	/** @brief Incremented every time the material definition is reloaded. */
	Generation uint32

	parameters []*Parameter
	lookup     map[string]*Parameter
	// Node auto-bindings declared by the definition, installed when a
	// node is attached. Keyed by parameter name.
	nodeBindings map[string]string
}

func NewMaterial(name, shaderName string) *Material {
	return &Material{
		ID:           core.IdentifierAquireNewID(name),
		Name:         name,
		ShaderName:   shaderName,
		lookup:       make(map[string]*Parameter),
		nodeBindings: make(map[string]string),
	}
}

// Parameter returns the named parameter, creating it in the cleared
// state when the material does not have it yet.
func (m *Material) Parameter(name string) *Parameter {
	if p, ok := m.lookup[name]; ok {
		return p
	}
	p := NewParameter(name)
	m.parameters = append(m.parameters, p)
	m.lookup[name] = p
	return p
}

// FindParameter returns the named parameter or nil when the material
// does not have it.
func (m *Material) FindParameter(name string) *Parameter {
	return m.lookup[name]
}

// ParameterCount returns the number of parameters held.
func (m *Material) ParameterCount() int {
	return len(m.parameters)
}

// Bind pushes every parameter's current value into the effect.
func (m *Material) Bind(effect *metadata.Effect) {
	for _, p := range m.parameters {
		p.Bind(effect)
	}
}

// BindNode installs the definition's node auto-bindings against the
// given node. Parameters without a declared binding are untouched.
func (m *Material) BindNode(node *scene.Node) {
	for paramName, binding := range m.nodeBindings {
		m.Parameter(paramName).BindNodeValue(node, binding)
	}
}

// Validate reports the first parameter whose uniform the effect does
// not expose. Useful at load time, before binds silently skip it.
func (m *Material) Validate(effect *metadata.Effect) error {
	if effect == nil {
		return fmt.Errorf("material '%s' validated against a nil effect", m.Name)
	}
	for _, p := range m.parameters {
		if effect.GetUniform(p.Name()) == nil {
			return fmt.Errorf("material '%s' parameter '%s' in effect '%s': %w",
				m.Name, p.Name(), effect.Name, core.ErrUniformNotFound)
		}
	}
	return nil
}

// Clone duplicates the material: owned parameter values are copied,
// borrowed values stay aliased and shared resources gain a reference.
func (m *Material) Clone(name string) *Material {
	out := NewMaterial(name, m.ShaderName)
	for _, p := range m.parameters {
		p.CloneInto(out.Parameter(p.Name()))
	}
	for paramName, binding := range m.nodeBindings {
		out.nodeBindings[paramName] = binding
	}
	return out
}

// Destroy clears every parameter, releasing owned and shared payloads,
// and gives the material id back.
func (m *Material) Destroy() {
	for _, p := range m.parameters {
		p.Clear()
	}
	m.parameters = nil
	m.lookup = make(map[string]*Parameter)
	m.nodeBindings = make(map[string]string)
	if err := core.IdentifierReleaseID(m.ID); err != nil {
		core.LogError(err.Error())
	}
}

// ApplyConfig sets the material's parameters from a loaded definition.
// Sampler parameters are resolved through the factory; auto-binding
// declarations are recorded and installed on the next BindNode call.
func (m *Material) ApplyConfig(config *metadata.MaterialConfig, samplers SamplerFactory) error {
	if config == nil {
		return fmt.Errorf("material '%s' given a nil config", m.Name)
	}
	m.ShaderName = config.ShaderName

	for i := range config.Parameters {
		pc := &config.Parameters[i]
		if pc.Name == "" {
			return fmt.Errorf("material '%s' has a parameter without a name", m.Name)
		}
		p := m.Parameter(pc.Name)

		if pc.Binding != "" {
			m.nodeBindings[pc.Name] = pc.Binding
			continue
		}

		if err := applyParameterConfig(p, pc, samplers); err != nil {
			return fmt.Errorf("material '%s': %w", m.Name, err)
		}
	}
	m.Generation++
	return nil
}

func applyParameterConfig(p *Parameter, pc *metadata.ParameterConfig, samplers SamplerFactory) error {
	switch pc.Type {
	case "float":
		if len(pc.Value) == 1 {
			p.SetFloat(pc.Value[0])
		} else if len(pc.Value) > 1 {
			p.SetFloatArray(pc.Value)
		} else {
			return fmt.Errorf("parameter '%s' of type float has no value", pc.Name)
		}
	case "int":
		if len(pc.Value) == 0 {
			return fmt.Errorf("parameter '%s' of type int has no value", pc.Name)
		}
		if len(pc.Value) == 1 {
			p.SetInt(int32(pc.Value[0]))
		} else {
			ints := make([]int32, len(pc.Value))
			for i, v := range pc.Value {
				ints[i] = int32(v)
			}
			p.SetIntArray(ints)
		}
	case "vec2":
		return applyVectorConfig(p, pc, 2)
	case "vec3":
		return applyVectorConfig(p, pc, 3)
	case "vec4":
		return applyVectorConfig(p, pc, 4)
	case "mat4":
		return applyVectorConfig(p, pc, 16)
	case "sampler":
		if pc.Path == "" {
			return fmt.Errorf("parameter '%s' of type sampler has no path", pc.Name)
		}
		if p.SetSamplerFromPath(samplers, pc.Path, pc.GenerateMipmaps) == nil {
			return fmt.Errorf("parameter '%s' could not resolve sampler path '%s'", pc.Name, pc.Path)
		}
	default:
		return fmt.Errorf("parameter '%s' type '%s': %w", pc.Name, pc.Type, core.ErrUnsupportedType)
	}
	return nil
}

func applyVectorConfig(p *Parameter, pc *metadata.ParameterConfig, dimension int) error {
	if len(pc.Value) == 0 || len(pc.Value)%dimension != 0 {
		return fmt.Errorf("parameter '%s' of type %s expects a multiple of %d values, got %d",
			pc.Name, pc.Type, dimension, len(pc.Value))
	}
	count := len(pc.Value) / dimension

	if count == 1 {
		switch dimension {
		case 2:
			p.SetVec2(math.Vec2{X: pc.Value[0], Y: pc.Value[1]})
		case 3:
			p.SetVec3(math.Vec3{X: pc.Value[0], Y: pc.Value[1], Z: pc.Value[2]})
		case 4:
			p.SetVec4(math.Vec4{X: pc.Value[0], Y: pc.Value[1], Z: pc.Value[2], W: pc.Value[3]})
		case 16:
			mat := math.Mat4{}
			copy(mat.Data[:], pc.Value)
			p.SetMat4(mat)
		}
		return nil
	}

	switch dimension {
	case 2:
		p.SetVec2Array(floatsVec2(pc.Value, uint32(count)))
	case 3:
		p.SetVec3Array(floatsVec3(pc.Value, uint32(count)))
	case 4:
		p.SetVec4Array(floatsVec4(pc.Value, uint32(count)))
	case 16:
		p.SetMat4Array(floatsMat4(pc.Value, uint32(count)))
	}
	return nil
}
