package metadata

import (
	"github.com/google/uuid"

	"github.com/spaghettifunk/prisma/engine/core"
)

/**
 * @brief A single named uniform slot resolved against an effect.
 * Holds a back-reference to the effect it was resolved from so that
 * cached uniforms can be detected as stale when a parameter is bound
 * against a different effect instance.
 */
type Uniform struct {
	/** @brief The uniform name. Case sensitive. */
	Name string
	/** @brief The location assigned by the owning effect. */
	Location uint16
	/** @brief The effect this uniform belongs to. */
	Effect *Effect
}

/**
 * @brief The backend every uniform push lands in. The renderer package
 * provides the in-memory implementation; a GPU backend would implement
 * the same interface.
 */
type UniformBackend interface {
	SetUniformFloat(uniform *Uniform, value float32)
	SetUniformFloatArray(uniform *Uniform, values []float32, count uint32)
	SetUniformInt(uniform *Uniform, value int32)
	SetUniformIntArray(uniform *Uniform, values []int32, count uint32)
	SetUniformVec2Array(uniform *Uniform, values []float32, count uint32)
	SetUniformVec3Array(uniform *Uniform, values []float32, count uint32)
	SetUniformVec4Array(uniform *Uniform, values []float32, count uint32)
	SetUniformMat4Array(uniform *Uniform, values []float32, count uint32)
	SetUniformSampler(uniform *Uniform, sampler *TextureSampler)
}

/**
 * @brief An effect is a shader-program abstraction exposing named
 * uniform slots. Uniform values are pushed through the backend.
 */
type Effect struct {
	/** @brief Unique identity of this effect instance. */
	ID string
	/** @brief The effect name, typically the shader name. */
	Name string

	uniforms map[string]*Uniform
	backend  UniformBackend
}

func NewEffect(name string, backend UniformBackend) *Effect {
	return &Effect{
		ID:       uuid.New().String(),
		Name:     name,
		uniforms: make(map[string]*Uniform),
		backend:  backend,
	}
}

// AddUniform registers a named uniform slot on the effect. Registering
// the same name twice returns the existing slot.
func (e *Effect) AddUniform(name string) *Uniform {
	if name == "" {
		core.LogError("Uniform name must exist.")
		return nil
	}
	if u, ok := e.uniforms[name]; ok {
		core.LogWarn("A uniform by the name '%s' already exists on effect '%s'.", name, e.Name)
		return u
	}
	u := &Uniform{
		Name:     name,
		Location: uint16(len(e.uniforms)),
		Effect:   e,
	}
	e.uniforms[name] = u
	return u
}

// GetUniform resolves a uniform slot by name. Returns nil when the
// effect has no uniform with that name.
func (e *Effect) GetUniform(name string) *Uniform {
	return e.uniforms[name]
}

func (e *Effect) SetUniformFloat(uniform *Uniform, value float32) {
	e.backend.SetUniformFloat(uniform, value)
	core.MetricsUniformBind()
}

func (e *Effect) SetUniformFloatArray(uniform *Uniform, values []float32, count uint32) {
	e.backend.SetUniformFloatArray(uniform, values, count)
	core.MetricsUniformBind()
}

func (e *Effect) SetUniformInt(uniform *Uniform, value int32) {
	e.backend.SetUniformInt(uniform, value)
	core.MetricsUniformBind()
}

func (e *Effect) SetUniformIntArray(uniform *Uniform, values []int32, count uint32) {
	e.backend.SetUniformIntArray(uniform, values, count)
	core.MetricsUniformBind()
}

func (e *Effect) SetUniformVec2Array(uniform *Uniform, values []float32, count uint32) {
	e.backend.SetUniformVec2Array(uniform, values, count)
	core.MetricsUniformBind()
}

func (e *Effect) SetUniformVec3Array(uniform *Uniform, values []float32, count uint32) {
	e.backend.SetUniformVec3Array(uniform, values, count)
	core.MetricsUniformBind()
}

func (e *Effect) SetUniformVec4Array(uniform *Uniform, values []float32, count uint32) {
	e.backend.SetUniformVec4Array(uniform, values, count)
	core.MetricsUniformBind()
}

func (e *Effect) SetUniformMat4Array(uniform *Uniform, values []float32, count uint32) {
	e.backend.SetUniformMat4Array(uniform, values, count)
	core.MetricsUniformBind()
}

func (e *Effect) SetUniformSampler(uniform *Uniform, sampler *TextureSampler) {
	e.backend.SetUniformSampler(uniform, sampler)
	core.MetricsUniformBind()
}
