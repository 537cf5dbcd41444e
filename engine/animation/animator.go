package animation

import (
	"github.com/spaghettifunk/prisma/engine/core"
	"github.com/spaghettifunk/prisma/engine/math"
)

/** @brief A single keyframe: a point in time plus one float per animated component. */
type Keyframe struct {
	/** @brief Keyframe time in seconds from the start of the channel. */
	Time float32
	/** @brief One value per component of the target property. */
	Values []float32
}

/**
 * @brief A channel animates one property of one target through a
 * sequence of keyframes with linear interpolation between them.
 */
type Channel struct {
	Target     Target
	PropertyID int
	Keyframes  []Keyframe
	/**
	 * @brief Blend weight applied on every frame, in (0, 1]. The zero
	 * value is treated as full weight when the channel is added, so a
	 * channel cannot be registered at a genuinely zero weight; omit the
	 * channel instead.
	 */
	BlendWeight float32
	/** @brief Restart from zero when the end is reached. */
	Loop bool

	elapsed float32
	scratch *Value
}

// Animator advances a set of channels by frame time and pushes the
// interpolated values into their targets.
type Animator struct {
	channels []*Channel
}

func NewAnimator() *Animator {
	return &Animator{}
}

// AddChannel validates the channel against its target and registers it.
// The keyframe component count must match what the target reports for
// the property; non-animatable targets are rejected.
func (a *Animator) AddChannel(channel *Channel) bool {
	if channel == nil || channel.Target == nil || len(channel.Keyframes) == 0 {
		core.LogError("animator channel requires a target and at least one keyframe")
		return false
	}
	componentCount := channel.Target.AnimationPropertyComponentCount(channel.PropertyID)
	if componentCount == 0 {
		core.LogError("animation target property %d is not animatable", channel.PropertyID)
		return false
	}
	for i := range channel.Keyframes {
		if uint32(len(channel.Keyframes[i].Values)) != componentCount {
			core.LogError("keyframe %d has %d values, target property expects %d",
				i, len(channel.Keyframes[i].Values), componentCount)
			return false
		}
	}
	if channel.BlendWeight < 0 || channel.BlendWeight > 1 {
		core.LogError("animator channel rejected: %s", core.ErrInvalidBlendWeight.Error())
		return false
	}
	if channel.BlendWeight == 0 {
		channel.BlendWeight = 1.0
	}
	channel.scratch = NewValue(componentCount)
	a.channels = append(a.channels, channel)
	return true
}

// Update advances every channel by delta seconds and applies the
// interpolated keyframe values to the targets.
func (a *Animator) Update(delta float32) {
	for _, c := range a.channels {
		c.update(delta)
	}
}

func (c *Channel) update(delta float32) {
	duration := c.Keyframes[len(c.Keyframes)-1].Time
	c.elapsed += delta
	if c.Loop && duration > 0 {
		for c.elapsed > duration {
			c.elapsed -= duration
		}
	}
	t := math.Clamp(c.elapsed, 0, duration)

	// Find the keyframe pair surrounding t.
	next := 0
	for next < len(c.Keyframes)-1 && c.Keyframes[next].Time < t {
		next++
	}
	prev := next
	if next > 0 {
		prev = next - 1
	}

	span := c.Keyframes[next].Time - c.Keyframes[prev].Time
	factor := float32(0)
	if span > 0 {
		factor = (t - c.Keyframes[prev].Time) / span
	}

	for i := range c.Keyframes[prev].Values {
		v := math.Lerp(factor, c.Keyframes[prev].Values[i], c.Keyframes[next].Values[i])
		c.scratch.SetFloat(uint32(i), v)
	}
	c.Target.SetAnimationPropertyValue(c.PropertyID, c.scratch, c.BlendWeight)
}
