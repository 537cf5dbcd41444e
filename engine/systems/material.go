package systems

import (
	"fmt"
	"strings"

	"github.com/spaghettifunk/prisma/engine/assets"
	"github.com/spaghettifunk/prisma/engine/core"
	"github.com/spaghettifunk/prisma/engine/materials"
	"github.com/spaghettifunk/prisma/engine/renderer/metadata"
)

type MaterialSystemConfig struct {
	/** @brief The maximum number of materials that can be loaded at once. */
	MaxMaterialCount uint32
}

/**
 * @brief Owns all loaded materials, handing out reference-counted
 * pointers keyed by material name. Material definitions come from
 * .pmat files through the asset manager, and registered materials are
 * rebuilt in place when their definition file changes on disk.
 */
type MaterialSystem struct {
	Config          *MaterialSystemConfig
	DefaultMaterial *materials.Material
	// Array of registered materials. A nil slot is free.
	registeredMaterials []*materials.Material
	// Hashtable for material lookups.
	registeredMaterialTable map[string]*metadata.MaterialReference
	// sub systems
	assetManager  *assets.AssetManager
	textureSystem *TextureSystem
}

func NewMaterialSystem(config *MaterialSystemConfig, am *assets.AssetManager, ts *TextureSystem) (*MaterialSystem, error) {
	if config.MaxMaterialCount == 0 {
		err := fmt.Errorf("func NewMaterialSystem - config.MaxMaterialCount must be > 0")
		core.LogError(err.Error())
		return nil, err
	}

	ms := &MaterialSystem{
		Config:                  config,
		registeredMaterials:     make([]*materials.Material, config.MaxMaterialCount),
		registeredMaterialTable: make(map[string]*metadata.MaterialReference),
		assetManager:            am,
		textureSystem:           ts,
		DefaultMaterial:         materials.NewMaterial(metadata.DefaultMaterialName, ""),
	}

	return ms, nil
}

func (ms *MaterialSystem) Initialize() error {
	core.EventRegister(core.EVENT_CODE_ASSET_CHANGED, ms, ms.onAssetChanged)
	return nil
}

func (ms *MaterialSystem) Shutdown() error {
	core.EventUnregister(core.EVENT_CODE_ASSET_CHANGED, ms, ms.onAssetChanged)

	for i := uint32(0); i < ms.Config.MaxMaterialCount; i++ {
		if ms.registeredMaterials[i] != nil {
			ms.registeredMaterials[i].Destroy()
			ms.registeredMaterials[i] = nil
		}
	}
	ms.DefaultMaterial.Destroy()
	return nil
}

func (ms *MaterialSystem) GetDefaultMaterial() *materials.Material {
	return ms.DefaultMaterial
}

/**
 * @brief Attempts to acquire the material with the given name. If it has
 * not yet been loaded, its definition file is loaded and applied. If
 * the material is found, its reference counter is incremented.
 */
func (ms *MaterialSystem) Acquire(name string) (*materials.Material, error) {
	if name == metadata.DefaultMaterialName {
		core.LogWarn("func material system Acquire called for default material. Use GetDefaultMaterial for material 'default'")
		return ms.DefaultMaterial, nil
	}

	resource, err := ms.assetManager.LoadAsset(name, metadata.ResourceTypeMaterial, nil)
	if err != nil {
		core.LogError("failed to load material resource '%s': %s", name, err.Error())
		return nil, err
	}
	config, ok := resource.Data.(*metadata.MaterialConfig)
	if !ok {
		return nil, fmt.Errorf("material resource '%s' holds unexpected data", name)
	}
	material, err := ms.AcquireFromConfig(config)
	ms.unloadResource(name, resource)
	return material, err
}

func (ms *MaterialSystem) unloadResource(name string, resource *metadata.Resource) {
	if err := ms.assetManager.UnloadAsset(resource); err != nil {
		core.LogWarn("failed to unload material resource '%s': %s", name, err.Error())
	}
}

/**
 * @brief Attempts to acquire a material from the given configuration.
 * An already-registered material with the same name only gets its
 * reference counter incremented.
 */
func (ms *MaterialSystem) AcquireFromConfig(config *metadata.MaterialConfig) (*materials.Material, error) {
	if config.Name == metadata.DefaultMaterialName {
		return ms.DefaultMaterial, nil
	}

	ref, found := ms.registeredMaterialTable[config.Name]
	if !found {
		ref = &metadata.MaterialReference{
			Handle:      metadata.InvalidID,
			AutoRelease: config.AutoRelease,
		}
		ms.registeredMaterialTable[config.Name] = ref
	}
	ref.ReferenceCount++

	if ref.Handle != metadata.InvalidID {
		return ms.registeredMaterials[ref.Handle], nil
	}

	// New entry. Find a free slot first.
	handle := metadata.InvalidID
	for i := uint32(0); i < ms.Config.MaxMaterialCount; i++ {
		if ms.registeredMaterials[i] == nil {
			handle = i
			break
		}
	}
	if handle == metadata.InvalidID {
		ref.ReferenceCount--
		err := fmt.Errorf("material system cannot hold anymore materials. Adjust configuration to allow more")
		core.LogError(err.Error())
		return nil, err
	}

	material := materials.NewMaterial(config.Name, config.ShaderName)
	if err := material.ApplyConfig(config, ms.textureSystem); err != nil {
		material.Destroy()
		ref.ReferenceCount--
		core.LogError("failed to apply config for material '%s': %s", config.Name, err.Error())
		return nil, err
	}

	ref.Handle = handle
	ms.registeredMaterials[handle] = material
	return material, nil
}

func (ms *MaterialSystem) Release(name string) {
	// Ignore release requests for the default material.
	if name == metadata.DefaultMaterialName {
		return
	}
	ref, found := ms.registeredMaterialTable[name]
	if !found || ref.ReferenceCount == 0 {
		core.LogWarn("Tried to release non-existent material: '%s'", name)
		return
	}
	ref.ReferenceCount--

	if ref.ReferenceCount == 0 && ref.AutoRelease {
		material := ms.registeredMaterials[ref.Handle]
		material.Destroy()
		ms.registeredMaterials[ref.Handle] = nil
		ref.Handle = metadata.InvalidID
		ref.AutoRelease = false
		core.LogDebug("material '%s' released, unloaded because reference count=0 and AutoRelease=true", name)
	}
}

// ReferenceCount reports how many holders reference the named material.
func (ms *MaterialSystem) ReferenceCount(name string) uint64 {
	ref, ok := ms.registeredMaterialTable[name]
	if !ok {
		return 0
	}
	return ref.ReferenceCount
}

// onAssetChanged rebuilds a registered material in place when its
// definition file changes on disk. Holders keep their pointers and
// observe the bumped generation.
func (ms *MaterialSystem) onAssetChanged(code core.SystemEventCode, sender interface{}, listener interface{}, context core.EventContext) bool {
	if !strings.HasSuffix(context.Path, ".pmat") {
		return false
	}

	for name, ref := range ms.registeredMaterialTable {
		if ref.Handle == metadata.InvalidID {
			continue
		}
		path, err := ms.assetManager.AssetPath(name, metadata.ResourceTypeMaterial)
		if err != nil || path != context.Path {
			continue
		}

		resource, err := ms.assetManager.LoadAsset(name, metadata.ResourceTypeMaterial, nil)
		if err != nil {
			core.LogError("failed to reload material '%s': %s", name, err.Error())
			return false
		}
		config, ok := resource.Data.(*metadata.MaterialConfig)
		if !ok {
			return false
		}
		defer ms.unloadResource(name, resource)

		material := ms.registeredMaterials[ref.Handle]
		if err := material.ApplyConfig(config, ms.textureSystem); err != nil {
			core.LogError("failed to re-apply config for material '%s': %s", name, err.Error())
			return false
		}
		core.LogInfo("material '%s' reloaded, generation %d", name, material.Generation)
		core.EventFire(core.EVENT_CODE_MATERIAL_RELOADED, ms, core.EventContext{Name: name, U32: [4]uint32{material.Generation}})
		return false
	}
	return false
}
