package materials

import (
	"unsafe"

	"github.com/spaghettifunk/prisma/engine/animation"
	"github.com/spaghettifunk/prisma/engine/core"
	"github.com/spaghettifunk/prisma/engine/math"
	"github.com/spaghettifunk/prisma/engine/renderer/metadata"
)

/** @brief Discriminates which payload a parameter currently holds. */
type ParameterType uint8

const (
	ParameterTypeNone ParameterType = iota
	ParameterTypeFloat
	ParameterTypeInt
	ParameterTypeVector2
	ParameterTypeVector3
	ParameterTypeVector4
	ParameterTypeMatrix
	ParameterTypeSampler
	ParameterTypeMethod
)

func (t ParameterType) String() string {
	switch t {
	case ParameterTypeNone:
		return "none"
	case ParameterTypeFloat:
		return "float"
	case ParameterTypeInt:
		return "int"
	case ParameterTypeVector2:
		return "vec2"
	case ParameterTypeVector3:
		return "vec3"
	case ParameterTypeVector4:
		return "vec4"
	case ParameterTypeMatrix:
		return "mat4"
	case ParameterTypeSampler:
		return "sampler"
	case ParameterTypeMethod:
		return "method"
	}
	return "unknown"
}

/**
 * @brief Describes who owns the payload backing a parameter value.
 * Making this explicit keeps the copy-vs-alias distinction of the
 * setters a checkable fact instead of a convention.
 */
type StorageKind uint8

const (
	/** @brief No payload, or nothing that needs releasing. */
	StorageNone StorageKind = iota
	/** @brief A scalar held directly in the parameter. */
	StorageInline
	/** @brief A buffer allocated by and exclusively owned by the parameter. */
	StorageOwned
	/** @brief A buffer aliasing caller memory. The caller keeps it alive. */
	StorageBorrowed
	/** @brief A reference-counted shared resource (sampler or method binding). */
	StorageShared
)

// AnimateUniform is the only animatable property id a parameter exposes:
// the raw uniform data itself.
const AnimateUniform int = 0

/**
 * @brief A single named, typed value pushed into an effect uniform on
 * every bind. Holds exactly one payload shape at a time, tracked by
 * the type tag and the storage kind. Parameters are owned by a single
 * material instance and must only be mutated from its thread.
 */
type Parameter struct {
	name      string
	paramType ParameterType
	storage   StorageKind
	count     uint32

	floatValue float32
	intValue   int32
	floatData  []float32
	intData    []int32
	sampler    *metadata.TextureSampler
	method     MethodBinding

	// Cached uniform from the last successful resolve, re-resolved when
	// bound against a different effect instance.
	uniform *metadata.Uniform
	// Effect id of the last failed resolve, so the warning fires once
	// per effect instead of every frame.
	failedEffectID string
}

// NewParameter creates a parameter with the given uniform name in the
// cleared (none) state.
func NewParameter(name string) *Parameter {
	p := &Parameter{
		name: name,
	}
	p.Clear()
	return p
}

// Name returns the uniform name this parameter feeds.
func (p *Parameter) Name() string {
	return p.name
}

// Type returns the current payload type tag.
func (p *Parameter) Type() ParameterType {
	return p.paramType
}

// Storage returns who owns the current payload.
func (p *Parameter) Storage() StorageKind {
	return p.storage
}

// Count returns the number of logical elements held. Meaningful for
// numeric types only; always 1 for sampler, method and none.
func (p *Parameter) Count() uint32 {
	return p.count
}

// Clear releases the resources of the current payload and resets the
// parameter to the none state. Runs as the first step of every setter
// so no payload from a different tag ever survives a retag. Calling
// it on an already-cleared parameter does nothing.
func (p *Parameter) Clear() {
	if p.storage == StorageShared {
		switch p.paramType {
		case ParameterTypeSampler:
			if p.sampler != nil {
				p.sampler.Release()
			}
		case ParameterTypeMethod:
			if p.method != nil {
				p.method.Release()
			}
		default:
			core.LogError("shared storage with unexpected parameter type %s", p.paramType)
		}
	}
	// Owned buffers are dropped for collection; borrowed buffers are
	// the caller's and are only un-aliased here.
	p.floatValue = 0
	p.intValue = 0
	p.floatData = nil
	p.intData = nil
	p.sampler = nil
	p.method = nil
	p.paramType = ParameterTypeNone
	p.storage = StorageNone
	p.count = 1
}

// SetFloat stores a single float value inline.
func (p *Parameter) SetFloat(value float32) {
	p.Clear()

	p.floatValue = value
	p.paramType = ParameterTypeFloat
	p.storage = StorageInline
}

// SetInt stores a single int value inline.
func (p *Parameter) SetInt(value int32) {
	p.Clear()

	p.intValue = value
	p.paramType = ParameterTypeInt
	p.storage = StorageInline
}

// SetFloatArray aliases the given slice as a float array value. The
// caller must keep the slice alive and stable for the lifetime of the
// value; mutations through the animation path write into it.
func (p *Parameter) SetFloatArray(values []float32) {
	if len(values) == 0 {
		core.LogError("SetFloatArray requires a non-empty slice.")
		return
	}
	p.Clear()

	p.floatData = values
	p.count = uint32(len(values))
	p.paramType = ParameterTypeFloat
	p.storage = StorageBorrowed
}

// SetIntArray aliases the given slice as an int array value.
func (p *Parameter) SetIntArray(values []int32) {
	if len(values) == 0 {
		core.LogError("SetIntArray requires a non-empty slice.")
		return
	}
	p.Clear()

	p.intData = values
	p.count = uint32(len(values))
	p.paramType = ParameterTypeInt
	p.storage = StorageBorrowed
}

// SetVec2 copies the vector into a freshly owned 2-float buffer.
func (p *Parameter) SetVec2(value math.Vec2) {
	p.Clear()

	p.floatData = []float32{value.X, value.Y}
	p.paramType = ParameterTypeVector2
	p.storage = StorageOwned
	p.count = 1
}

// SetVec2Array aliases the vectors' backing memory as the value.
func (p *Parameter) SetVec2Array(values []math.Vec2) {
	if len(values) == 0 {
		core.LogError("SetVec2Array requires a non-empty slice.")
		return
	}
	p.Clear()

	p.floatData = vec2Floats(values)
	p.count = uint32(len(values))
	p.paramType = ParameterTypeVector2
	p.storage = StorageBorrowed
}

// SetVec3 copies the vector into a freshly owned 3-float buffer.
func (p *Parameter) SetVec3(value math.Vec3) {
	p.Clear()

	p.floatData = []float32{value.X, value.Y, value.Z}
	p.paramType = ParameterTypeVector3
	p.storage = StorageOwned
	p.count = 1
}

// SetVec3Array aliases the vectors' backing memory as the value.
func (p *Parameter) SetVec3Array(values []math.Vec3) {
	if len(values) == 0 {
		core.LogError("SetVec3Array requires a non-empty slice.")
		return
	}
	p.Clear()

	p.floatData = vec3Floats(values)
	p.count = uint32(len(values))
	p.paramType = ParameterTypeVector3
	p.storage = StorageBorrowed
}

// SetVec4 copies the vector into a freshly owned 4-float buffer.
func (p *Parameter) SetVec4(value math.Vec4) {
	p.Clear()

	p.floatData = []float32{value.X, value.Y, value.Z, value.W}
	p.paramType = ParameterTypeVector4
	p.storage = StorageOwned
	p.count = 1
}

// SetVec4Array aliases the vectors' backing memory as the value.
func (p *Parameter) SetVec4Array(values []math.Vec4) {
	if len(values) == 0 {
		core.LogError("SetVec4Array requires a non-empty slice.")
		return
	}
	p.Clear()

	p.floatData = vec4Floats(values)
	p.count = uint32(len(values))
	p.paramType = ParameterTypeVector4
	p.storage = StorageBorrowed
}

// SetMat4 copies the matrix into an owned 16-float buffer. When the
// parameter already exclusively owns a single-matrix buffer it is
// overwritten in place instead of reallocated; every part of that
// guard must hold or the buffer could alias a payload from a prior tag.
func (p *Parameter) SetMat4(value math.Mat4) {
	if !(p.storage == StorageOwned && p.count == 1 && p.paramType == ParameterTypeMatrix && p.floatData != nil) {
		p.Clear()

		p.floatData = make([]float32, 16)
	}
	copy(p.floatData, value.Data[:])

	p.paramType = ParameterTypeMatrix
	p.storage = StorageOwned
	p.count = 1
}

// SetMat4Array aliases the matrices' backing memory as the value.
func (p *Parameter) SetMat4Array(values []math.Mat4) {
	if len(values) == 0 {
		core.LogError("SetMat4Array requires a non-empty slice.")
		return
	}
	p.Clear()

	p.floatData = mat4Floats(values)
	p.count = uint32(len(values))
	p.paramType = ParameterTypeMatrix
	p.storage = StorageBorrowed
}

// SetSampler stores a shared reference to the sampler, incrementing
// its reference count. A nil sampler leaves the parameter cleared.
func (p *Parameter) SetSampler(sampler *metadata.TextureSampler) {
	p.Clear()

	if sampler != nil {
		sampler.AddRef()
		p.sampler = sampler
		p.paramType = ParameterTypeSampler
		p.storage = StorageShared
	}
}

// SamplerFactory resolves a texture resource path into a ref-counted
// sampler. Implemented by the texture system.
type SamplerFactory interface {
	AcquireSampler(path string, generateMipmaps bool) (*metadata.TextureSampler, error)
}

// SetSamplerFromPath resolves the path through the factory and stores
// the resulting sampler, taking over the reference the factory
// returns. The sampler is also returned so the caller can track its
// disposal; nil is returned when the path does not resolve.
func (p *Parameter) SetSamplerFromPath(factory SamplerFactory, path string, generateMipmaps bool) *metadata.TextureSampler {
	if factory == nil || path == "" {
		return nil
	}
	p.Clear()

	sampler, err := factory.AcquireSampler(path, generateMipmaps)
	if err != nil {
		core.LogError("failed to acquire sampler for '%s': %s", path, err.Error())
		return nil
	}
	p.sampler = sampler
	p.paramType = ParameterTypeSampler
	p.storage = StorageShared
	return sampler
}

// SetMethod stores a shared reference to the method binding. The
// caller transfers its reference; no additional count is taken.
func (p *Parameter) SetMethod(method MethodBinding) {
	p.Clear()

	if method != nil {
		p.method = method
		p.paramType = ParameterTypeMethod
		p.storage = StorageShared
	}
}

// Sampler returns the held sampler, or nil when the parameter does not
// hold one.
func (p *Parameter) Sampler() *metadata.TextureSampler {
	return p.sampler
}

// Bind resolves the parameter's uniform against the effect (re-using
// the cached uniform when it belongs to the same effect instance) and
// pushes the current value. A parameter whose name is unknown to the
// effect logs a warning once and is skipped.
func (p *Parameter) Bind(effect *metadata.Effect) {
	if effect == nil {
		core.LogError("Parameter.Bind requires an effect.")
		return
	}

	// If we had a uniform cached that is not from the passed in effect,
	// we need to update our uniform to point to the new effect's uniform.
	if p.uniform == nil || p.uniform.Effect != effect {
		p.uniform = effect.GetUniform(p.name)

		if p.uniform == nil {
			// This parameter was not found in the specified effect, so do nothing.
			if p.failedEffectID != effect.ID {
				core.LogWarn("Material parameter '%s' not found in effect '%s'.", p.name, effect.Name)
				core.MetricsUniformMiss()
				p.failedEffectID = effect.ID
			}
			return
		}
		p.failedEffectID = ""
	}

	switch p.paramType {
	case ParameterTypeFloat:
		if p.count == 1 {
			effect.SetUniformFloat(p.uniform, p.floatValue)
		} else {
			effect.SetUniformFloatArray(p.uniform, p.floatData, p.count)
		}
	case ParameterTypeInt:
		if p.count == 1 {
			effect.SetUniformInt(p.uniform, p.intValue)
		} else {
			effect.SetUniformIntArray(p.uniform, p.intData, p.count)
		}
	case ParameterTypeVector2:
		effect.SetUniformVec2Array(p.uniform, p.floatData, p.count)
	case ParameterTypeVector3:
		effect.SetUniformVec3Array(p.uniform, p.floatData, p.count)
	case ParameterTypeVector4:
		effect.SetUniformVec4Array(p.uniform, p.floatData, p.count)
	case ParameterTypeMatrix:
		effect.SetUniformMat4Array(p.uniform, p.floatData, p.count)
	case ParameterTypeSampler:
		effect.SetUniformSampler(p.uniform, p.sampler)
	case ParameterTypeMethod:
		if p.method == nil {
			core.LogError("method parameter '%s' has no binding.", p.name)
			return
		}
		p.method.BindValue(effect, p.uniform)
	default:
		core.LogError("Unsupported material parameter type (%s).", p.paramType)
	}
}

// AnimationPropertyComponentCount returns how many float slots the
// parameter occupies under animation, or 0 for types that do not
// support it.
func (p *Parameter) AnimationPropertyComponentCount(propertyID int) uint32 {
	switch propertyID {
	case AnimateUniform:
		switch p.paramType {
		// These types don't support animation.
		case ParameterTypeNone, ParameterTypeMatrix, ParameterTypeSampler, ParameterTypeMethod:
			return 0
		case ParameterTypeFloat, ParameterTypeInt:
			return p.count
		case ParameterTypeVector2:
			return 2 * p.count
		case ParameterTypeVector3:
			return 3 * p.count
		case ParameterTypeVector4:
			return 4 * p.count
		default:
			core.LogError("Unsupported material parameter type (%s).", p.paramType)
			return 0
		}
	}
	return 0
}

// AnimationPropertyValue copies the current value into the buffer,
// one float per component, in component-major order per element. Int
// values are widened to float.
func (p *Parameter) AnimationPropertyValue(propertyID int, value *animation.Value) {
	if value == nil {
		core.LogError("AnimationPropertyValue requires a value buffer.")
		return
	}
	switch propertyID {
	case AnimateUniform:
		switch p.paramType {
		case ParameterTypeFloat:
			if p.count == 1 {
				value.SetFloat(0, p.floatValue)
			} else {
				for i := uint32(0); i < p.count; i++ {
					value.SetFloat(i, p.floatData[i])
				}
			}
		case ParameterTypeInt:
			if p.count == 1 {
				value.SetFloat(0, float32(p.intValue))
			} else {
				for i := uint32(0); i < p.count; i++ {
					value.SetFloat(i, float32(p.intData[i]))
				}
			}
		case ParameterTypeVector2:
			for i := uint32(0); i < p.count; i++ {
				value.SetFloats(p.floatData, i*2, 2)
			}
		case ParameterTypeVector3:
			for i := uint32(0); i < p.count; i++ {
				value.SetFloats(p.floatData, i*3, 3)
			}
		case ParameterTypeVector4:
			for i := uint32(0); i < p.count; i++ {
				value.SetFloats(p.floatData, i*4, 4)
			}
		case ParameterTypeNone, ParameterTypeMatrix, ParameterTypeMethod, ParameterTypeSampler:
			// Unsupported material parameter types for animation.
		default:
			core.LogError("Unsupported material parameter type (%s).", p.paramType)
		}
	}
}

// SetAnimationPropertyValue replaces each animated component with
// lerp(blendWeight, current, buffer). A weight of 0 keeps the current
// value, a weight of 1 takes the buffer entirely. Types that do not
// support animation are left untouched.
func (p *Parameter) SetAnimationPropertyValue(propertyID int, value *animation.Value, blendWeight float32) {
	if value == nil {
		core.LogError("SetAnimationPropertyValue requires a value buffer.")
		return
	}
	if blendWeight < 0.0 || blendWeight > 1.0 {
		core.LogError("blend weight %f out of [0, 1] range.", blendWeight)
		return
	}

	switch propertyID {
	case AnimateUniform:
		switch p.paramType {
		case ParameterTypeFloat:
			if p.count == 1 {
				p.floatValue = math.Lerp(blendWeight, p.floatValue, value.GetFloat(0))
			} else {
				p.applyAnimationValue(value, blendWeight, 1)
			}
		case ParameterTypeInt:
			if p.count == 1 {
				p.intValue = int32(math.Lerp(blendWeight, float32(p.intValue), value.GetFloat(0)))
			} else {
				for i := uint32(0); i < p.count; i++ {
					p.intData[i] = int32(math.Lerp(blendWeight, float32(p.intData[i]), value.GetFloat(i)))
				}
			}
		case ParameterTypeVector2:
			p.applyAnimationValue(value, blendWeight, 2)
		case ParameterTypeVector3:
			p.applyAnimationValue(value, blendWeight, 3)
		case ParameterTypeVector4:
			p.applyAnimationValue(value, blendWeight, 4)
		case ParameterTypeNone, ParameterTypeMatrix, ParameterTypeMethod, ParameterTypeSampler:
			// Unsupported material parameter types for animation.
		default:
			core.LogError("Unsupported material parameter type (%s).", p.paramType)
		}
	}
}

func (p *Parameter) applyAnimationValue(value *animation.Value, blendWeight float32, components uint32) {
	if p.floatData == nil {
		core.LogError("parameter '%s' has no float buffer to animate.", p.name)
		return
	}
	count := p.count * components
	for i := uint32(0); i < count; i++ {
		p.floatData[i] = math.Lerp(blendWeight, p.floatData[i], value.GetFloat(i))
	}
}

// CloneInto deep-copies this parameter's value into target by
// re-invoking the matching setter, so ownership is re-established
// independently: owned buffers are duplicated, borrowed buffers stay
// aliased, and shared resources gain a reference.
func (p *Parameter) CloneInto(target *Parameter) {
	if target == nil {
		core.LogError("CloneInto requires a target parameter.")
		return
	}
	target.uniform = p.uniform
	switch p.paramType {
	case ParameterTypeNone:
		target.Clear()
	case ParameterTypeFloat:
		if p.count == 1 {
			target.SetFloat(p.floatValue)
		} else {
			target.SetFloatArray(p.floatData)
		}
	case ParameterTypeInt:
		if p.count == 1 {
			target.SetInt(p.intValue)
		} else {
			target.SetIntArray(p.intData)
		}
	case ParameterTypeVector2:
		if p.count == 1 {
			target.SetVec2(math.Vec2{X: p.floatData[0], Y: p.floatData[1]})
		} else {
			target.SetVec2Array(floatsVec2(p.floatData, p.count))
		}
	case ParameterTypeVector3:
		if p.count == 1 {
			target.SetVec3(math.Vec3{X: p.floatData[0], Y: p.floatData[1], Z: p.floatData[2]})
		} else {
			target.SetVec3Array(floatsVec3(p.floatData, p.count))
		}
	case ParameterTypeVector4:
		if p.count == 1 {
			target.SetVec4(math.Vec4{X: p.floatData[0], Y: p.floatData[1], Z: p.floatData[2], W: p.floatData[3]})
		} else {
			target.SetVec4Array(floatsVec4(p.floatData, p.count))
		}
	case ParameterTypeMatrix:
		if p.count == 1 {
			m := math.Mat4{}
			copy(m.Data[:], p.floatData)
			target.SetMat4(m)
		} else {
			target.SetMat4Array(floatsMat4(p.floatData, p.count))
		}
	case ParameterTypeSampler:
		target.SetSampler(p.sampler)
	case ParameterTypeMethod:
		target.Clear()
		if p.method == nil {
			core.LogError("method parameter '%s' has no binding to clone.", p.name)
			return
		}
		// The clone takes a new reference to the same shared binding.
		p.method.AddRef()
		target.method = p.method
		target.paramType = ParameterTypeMethod
		target.storage = StorageShared
	default:
		core.LogError("Unsupported material parameter type (%s).", p.paramType)
	}
}

// The array setters alias caller memory the way the effect consumes
// it: as a flat run of floats starting at the first element.

func vec2Floats(values []math.Vec2) []float32 {
	return unsafe.Slice((*float32)(unsafe.Pointer(&values[0].X)), len(values)*2)
}

func vec3Floats(values []math.Vec3) []float32 {
	return unsafe.Slice((*float32)(unsafe.Pointer(&values[0].X)), len(values)*3)
}

func vec4Floats(values []math.Vec4) []float32 {
	return unsafe.Slice((*float32)(unsafe.Pointer(&values[0].X)), len(values)*4)
}

func mat4Floats(values []math.Mat4) []float32 {
	return unsafe.Slice((*float32)(unsafe.Pointer(&values[0].Data[0])), len(values)*16)
}

func floatsVec2(data []float32, count uint32) []math.Vec2 {
	return unsafe.Slice((*math.Vec2)(unsafe.Pointer(&data[0])), count)
}

func floatsVec3(data []float32, count uint32) []math.Vec3 {
	return unsafe.Slice((*math.Vec3)(unsafe.Pointer(&data[0])), count)
}

func floatsVec4(data []float32, count uint32) []math.Vec4 {
	return unsafe.Slice((*math.Vec4)(unsafe.Pointer(&data[0])), count)
}

func floatsMat4(data []float32, count uint32) []math.Mat4 {
	return unsafe.Slice((*math.Mat4)(unsafe.Pointer(&data[0])), count)
}
