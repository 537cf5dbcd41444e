package systems

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/spaghettifunk/prisma/engine/assets"
	"github.com/spaghettifunk/prisma/engine/core"
	"github.com/spaghettifunk/prisma/engine/renderer/metadata"
)

type TextureSystemConfig struct {
	/** @brief The maximum number of textures that can be loaded at once. */
	MaxTextureCount uint32
}

type TextureSystem struct {
	Config         *TextureSystemConfig
	DefaultTexture *metadata.Texture
	// Array of registered textures.
	registeredTextures []*metadata.Texture
	// Hashtable for texture lookups.
	registeredTextureTable map[string]*metadata.TextureReference
	// sub systems
	assetManager *assets.AssetManager
}

func NewTextureSystem(config *TextureSystemConfig, am *assets.AssetManager) (*TextureSystem, error) {
	if config.MaxTextureCount == 0 {
		err := fmt.Errorf("func NewTextureSystem - config.MaxTextureCount must be > 0")
		core.LogError(err.Error())
		return nil, err
	}

	ts := &TextureSystem{
		Config:                 config,
		registeredTextures:     make([]*metadata.Texture, config.MaxTextureCount),
		registeredTextureTable: make(map[string]*metadata.TextureReference),
		assetManager:           am,
	}

	// Invalidate all textures in the array.
	for i := uint32(0); i < config.MaxTextureCount; i++ {
		ts.registeredTextures[i] = &metadata.Texture{
			ID:         metadata.InvalidID,
			Generation: metadata.InvalidID,
		}
	}

	ts.DefaultTexture = createDefaultTexture()

	return ts, nil
}

func (ts *TextureSystem) Initialize() error {
	core.EventRegister(core.EVENT_CODE_ASSET_CHANGED, ts, ts.onAssetChanged)
	return nil
}

func (ts *TextureSystem) Shutdown() error {
	core.EventUnregister(core.EVENT_CODE_ASSET_CHANGED, ts, ts.onAssetChanged)

	// Drop all loaded textures.
	for i := uint32(0); i < ts.Config.MaxTextureCount; i++ {
		t := ts.registeredTextures[i]
		if t.Generation != metadata.InvalidID {
			ts.destroyTexture(t)
		}
	}
	return nil
}

/**
 * @brief Attempts to acquire a texture with the given name. If it has not
 * yet been loaded, this triggers it to load. If the texture is found and
 * loaded, its reference counter is incremented.
 */
func (ts *TextureSystem) Acquire(name string, autoRelease bool) (*metadata.Texture, error) {
	if name == metadata.DEFAULT_TEXTURE_NAME {
		core.LogWarn("func texture system Acquire called for default texture. Use GetDefaultTexture for texture 'default'")
		return ts.DefaultTexture, nil
	}
	// NOTE: Increments reference count, or creates new entry.
	id, ok := ts.processTextureReference(name, 1, autoRelease)
	if !ok {
		err := fmt.Errorf("texture '%s': %w", name, core.ErrResourceNotFound)
		core.LogError(err.Error())
		return nil, err
	}
	return ts.registeredTextures[id], nil
}

func (ts *TextureSystem) Release(name string) {
	// Ignore release requests for the default texture.
	if name == metadata.DEFAULT_TEXTURE_NAME {
		return
	}
	// NOTE: Decrement the reference count.
	id, ok := ts.processTextureReference(name, -1, false)
	if !ok {
		core.LogError("texture system Release failed to release texture '%s' properly.", name)
		return
	}
	core.LogDebug("texture ID `%d` released", id)
}

// AcquireSampler resolves a texture resource path into a sampler
// holding one reference. The underlying texture reference is handed
// back when the final sampler reference is released.
func (ts *TextureSystem) AcquireSampler(path string, generateMipmaps bool) (*metadata.TextureSampler, error) {
	texture, err := ts.Acquire(path, true)
	if err != nil {
		return nil, err
	}
	return metadata.NewTextureSampler(texture, generateMipmaps, func(s *metadata.TextureSampler) {
		ts.Release(path)
	}), nil
}

func (ts *TextureSystem) GetDefaultTexture() *metadata.Texture {
	return ts.DefaultTexture
}

// ReferenceCount reports how many holders reference the named texture.
func (ts *TextureSystem) ReferenceCount(name string) uint64 {
	ref, ok := ts.registeredTextureTable[name]
	if !ok {
		return 0
	}
	return ref.ReferenceCount
}

func (ts *TextureSystem) loadTexture(textureName string, texture *metadata.Texture) bool {
	params := &metadata.ImageResourceParams{
		FlipY: true,
	}
	resource, err := ts.assetManager.LoadAsset(textureName, metadata.ResourceTypeImage, params)
	if err != nil {
		core.LogError("failed to load image resource for texture '%s': %s", textureName, err.Error())
		return false
	}

	imageData, ok := resource.Data.(*metadata.ImageResourceData)
	if !ok {
		core.LogError("image resource for texture '%s' holds unexpected data", textureName)
		return false
	}

	currentGeneration := texture.Generation

	texture.UUID = uuid.New().String()
	texture.Name = textureName
	texture.Width = imageData.Width
	texture.Height = imageData.Height
	texture.ChannelCount = imageData.ChannelCount
	texture.Pixels = imageData.Pixels

	if currentGeneration == metadata.InvalidID {
		texture.Generation = 0
	} else {
		texture.Generation = currentGeneration + 1
	}

	// The texture took over the pixel data; the resource is done.
	if err := ts.assetManager.UnloadAsset(resource); err != nil {
		core.LogWarn("failed to unload image resource for texture '%s': %s", textureName, err.Error())
	}

	return true
}

func (ts *TextureSystem) destroyTexture(texture *metadata.Texture) {
	texture.ID = metadata.InvalidID
	texture.UUID = ""
	texture.Name = ""
	texture.Width = 0
	texture.Height = 0
	texture.ChannelCount = 0
	texture.Pixels = nil
	texture.Generation = metadata.InvalidID
}

func (ts *TextureSystem) processTextureReference(name string, referenceDiff int8, autoRelease bool) (uint32, bool) {
	ref, found := ts.registeredTextureTable[name]
	if !found {
		ref = &metadata.TextureReference{
			Handle: metadata.InvalidID,
		}
		ts.registeredTextureTable[name] = ref
	}

	// If the reference count starts off at zero, one of two things can be
	// true. If incrementing references, this means the entry is new. If
	// decrementing, then the texture doesn't exist _if_ not auto-releasing.
	if ref.ReferenceCount == 0 && referenceDiff <= 0 {
		if ref.AutoRelease {
			core.LogWarn("Tried to release non-existent texture: '%s'", name)
			return 0, false
		}
		core.LogWarn("Tried to release a texture where autorelease=false, but references was already 0.")
		// Still count this as a success, but warn about it.
		return 0, true
	}

	if ref.ReferenceCount == 0 && referenceDiff > 0 {
		// This can only be changed the first time a texture is loaded.
		ref.AutoRelease = autoRelease
	}

	ref.ReferenceCount += uint64(referenceDiff)

	// If decrementing, this means a release.
	if referenceDiff < 0 {
		// If the count hits zero and the reference is set to
		// auto-release, unload the texture.
		if ref.ReferenceCount == 0 && ref.AutoRelease {
			t := ts.registeredTextures[ref.Handle]
			ts.destroyTexture(t)
			ref.Handle = metadata.InvalidID
			ref.AutoRelease = false
		}
		return 0, true
	}

	// Incrementing. Check if the handle is new or not.
	if ref.Handle != metadata.InvalidID {
		return ref.Handle, true
	}

	// No texture exists here yet. Find a free index first.
	outTextureID := metadata.InvalidID
	for i := uint32(0); i < ts.Config.MaxTextureCount; i++ {
		if ts.registeredTextures[i].ID == metadata.InvalidID {
			// A free slot has been found. Use its index as the handle.
			ref.Handle = i
			outTextureID = i
			break
		}
	}

	// An empty slot was not found, bleat about it and boot out.
	if outTextureID == metadata.InvalidID {
		core.LogError("texture system cannot hold anymore textures. Adjust configuration to allow more.")
		return 0, false
	}

	t := ts.registeredTextures[ref.Handle]
	if !ts.loadTexture(name, t) {
		ref.Handle = metadata.InvalidID
		ref.ReferenceCount -= uint64(referenceDiff)
		core.LogError("Failed to load texture '%s'.", name)
		return 0, false
	}
	t.ID = ref.Handle

	return outTextureID, true
}

// onAssetChanged reloads a registered texture in place when its file
// changes on disk. Holders keep their pointers and observe the new
// generation.
func (ts *TextureSystem) onAssetChanged(code core.SystemEventCode, sender interface{}, listener interface{}, context core.EventContext) bool {
	// The file may have been dropped from the index between the change
	// event firing and the pump delivering it.
	if !ts.assetManager.IsIndexed(context.Path) {
		return false
	}
	for name, ref := range ts.registeredTextureTable {
		if ref.Handle == metadata.InvalidID {
			continue
		}
		if !strings.HasSuffix(context.Path, name) {
			continue
		}
		t := ts.registeredTextures[ref.Handle]
		if ts.loadTexture(name, t) {
			core.LogInfo("texture '%s' reloaded, generation %d", name, t.Generation)
		}
		return false
	}
	return false
}

// The default texture is a 16x16 blue and white checkerboard, used
// when a requested texture cannot be provided.
func createDefaultTexture() *metadata.Texture {
	const dimension = 16
	const channels = 4

	pixels := make([]uint8, dimension*dimension*channels)
	for row := 0; row < dimension; row++ {
		for col := 0; col < dimension; col++ {
			index := (row*dimension + col) * channels
			if (row/4+col/4)%2 == 0 {
				pixels[index+0] = 0
				pixels[index+1] = 0
				pixels[index+2] = 255
			} else {
				pixels[index+0] = 255
				pixels[index+1] = 255
				pixels[index+2] = 255
			}
			pixels[index+3] = 255
		}
	}

	return &metadata.Texture{
		ID:           metadata.InvalidID,
		UUID:         uuid.New().String(),
		Name:         metadata.DEFAULT_TEXTURE_NAME,
		Width:        dimension,
		Height:       dimension,
		ChannelCount: channels,
		Pixels:       pixels,
		Generation:   metadata.InvalidID,
	}
}
