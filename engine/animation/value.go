package animation

import (
	"github.com/spaghettifunk/prisma/engine/core"
)

/**
 * @brief A flat float buffer used as the interchange format between
 * animation playback and animation targets. One slot per animated
 * component.
 */
type Value struct {
	components []float32
}

func NewValue(componentCount uint32) *Value {
	return &Value{
		components: make([]float32, componentCount),
	}
}

// ComponentCount returns the number of float slots held.
func (v *Value) ComponentCount() uint32 {
	return uint32(len(v.components))
}

// GetFloat returns the value of the slot at index.
func (v *Value) GetFloat(index uint32) float32 {
	if index >= uint32(len(v.components)) {
		core.LogError("animation value index %d out of range (%d components)", index, len(v.components))
		return 0
	}
	return v.components[index]
}

// SetFloat stores value in the slot at index.
func (v *Value) SetFloat(index uint32, value float32) {
	if index >= uint32(len(v.components)) {
		core.LogError("animation value index %d out of range (%d components)", index, len(v.components))
		return
	}
	v.components[index] = value
}

// SetFloats copies count slots from src into the buffer, starting at
// the same offset on both sides.
func (v *Value) SetFloats(src []float32, offset, count uint32) {
	if offset+count > uint32(len(v.components)) || offset+count > uint32(len(src)) {
		core.LogError("animation value copy [%d:%d] out of range", offset, offset+count)
		return
	}
	copy(v.components[offset:offset+count], src[offset:offset+count])
}

/**
 * @brief The protocol an object implements to expose integer-identified
 * interpolatable properties to the animation system.
 */
type Target interface {
	// AnimationPropertyComponentCount returns the number of float slots
	// the identified property occupies, or 0 when the property cannot
	// be animated in the target's current state.
	AnimationPropertyComponentCount(propertyID int) uint32
	// AnimationPropertyValue copies the property's current value into
	// the given buffer.
	AnimationPropertyValue(propertyID int, value *Value)
	// SetAnimationPropertyValue blends the buffer into the property's
	// current value with the given weight in [0, 1].
	SetAnimationPropertyValue(propertyID int, value *Value, blendWeight float32)
}
