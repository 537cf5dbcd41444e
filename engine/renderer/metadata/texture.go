package metadata

import (
	"github.com/spaghettifunk/prisma/engine/core"
)

const InvalidID uint32 = 4294967295

/** @brief The name of the default texture. */
const DEFAULT_TEXTURE_NAME string = "default"

type TextureFilterMode uint32

const (
	/** @brief Nearest-neighbor filtering. */
	TextureFilterModeNearest TextureFilterMode = 0x0
	/** @brief Linear (i.e. bilinear) filtering.*/
	TextureFilterModeLinear TextureFilterMode = 0x1
)

type TextureRepeat uint32

const (
	TextureRepeatRepeat         TextureRepeat = 0x1
	TextureRepeatMirroredRepeat TextureRepeat = 0x2
	TextureRepeatClampToEdge    TextureRepeat = 0x3
	TextureRepeatClampToBorder  TextureRepeat = 0x4
)

/**
 * @brief Represents a texture to be used for rendering purposes,
 * held in CPU memory by this subsystem.
 */
type Texture struct {
	/** @brief The texture id. */
	ID uint32
	/** @brief Unique texture identity, assigned on creation. */
	UUID string
	/** @brief The texture name. */
	Name string
	/** @brief The texture width. */
	Width uint32
	/** @brief The texture height. */
	Height uint32
	/** @brief The number of channels in the texture. */
	ChannelCount uint8
	/** @brief The raw pixel data, RGBA order. */
	Pixels []uint8
	/** @brief The texture generation. Incremented every time the data is reloaded. */
	Generation uint32
}

/** @brief Tracks how many holders reference a registered texture. */
type TextureReference struct {
	ReferenceCount uint64
	Handle         uint32
	AutoRelease    bool
}

/**
 * @brief A sampler handle over a texture, bindable to an effect
 * uniform. Samplers are shared via non-atomic reference counting:
 * the owning thread is the only mutator.
 */
type TextureSampler struct {
	/** @brief The texture sampled. */
	Texture *Texture
	/** @brief Texture filtering mode for minification. */
	FilterMinify TextureFilterMode
	/** @brief Texture filtering mode for magnification. */
	FilterMagnify TextureFilterMode
	/** @brief Wrap behaviour on the U axis. */
	RepeatU TextureRepeat
	/** @brief Wrap behaviour on the V axis. */
	RepeatV TextureRepeat
	/** @brief Indicates if mipmaps were requested for the sampled texture. */
	GenerateMipmaps bool

	refCount int32
	// Invoked once when the final reference is released, used by the
	// texture system to give back the underlying texture reference.
	onLastRelease func(*TextureSampler)
}

// NewTextureSampler creates a sampler over the given texture with a
// single reference held by the caller.
func NewTextureSampler(texture *Texture, generateMipmaps bool, onLastRelease func(*TextureSampler)) *TextureSampler {
	return &TextureSampler{
		Texture:         texture,
		FilterMinify:    TextureFilterModeLinear,
		FilterMagnify:   TextureFilterModeLinear,
		RepeatU:         TextureRepeatRepeat,
		RepeatV:         TextureRepeatRepeat,
		GenerateMipmaps: generateMipmaps,
		refCount:        1,
		onLastRelease:   onLastRelease,
	}
}

// AddRef increments the sampler's reference count.
func (s *TextureSampler) AddRef() {
	s.refCount++
}

// Release decrements the sampler's reference count. The last release
// hands the underlying texture back to its owner.
func (s *TextureSampler) Release() {
	if s.refCount <= 0 {
		core.LogError("TextureSampler released more times than it was acquired (texture '%s').", s.textureName())
		return
	}
	s.refCount--
	if s.refCount == 0 {
		if s.onLastRelease != nil {
			s.onLastRelease(s)
		}
		s.Texture = nil
	}
}

// RefCount returns the current number of holders.
func (s *TextureSampler) RefCount() int32 {
	return s.refCount
}

func (s *TextureSampler) textureName() string {
	if s.Texture == nil {
		return ""
	}
	return s.Texture.Name
}
