package systems

import (
	"github.com/spaghettifunk/prisma/engine/assets"
)

// SystemManager wires the engine subsystems together and drives their
// lifecycle in dependency order.
type SystemManager struct {
	textureSystem  *TextureSystem
	materialSystem *MaterialSystem
}

func NewSystemManager(am *assets.AssetManager, maxTextureCount, maxMaterialCount uint32) (*SystemManager, error) {
	ts, err := NewTextureSystem(&TextureSystemConfig{
		MaxTextureCount: maxTextureCount,
	}, am)
	if err != nil {
		return nil, err
	}
	ms, err := NewMaterialSystem(&MaterialSystemConfig{
		MaxMaterialCount: maxMaterialCount,
	}, am, ts)
	if err != nil {
		return nil, err
	}
	return &SystemManager{
		textureSystem:  ts,
		materialSystem: ms,
	}, nil
}

func (sm *SystemManager) Initialize() error {
	if err := sm.textureSystem.Initialize(); err != nil {
		return err
	}
	if err := sm.materialSystem.Initialize(); err != nil {
		return err
	}
	return nil
}

func (sm *SystemManager) Shutdown() error {
	if err := sm.materialSystem.Shutdown(); err != nil {
		return err
	}
	if err := sm.textureSystem.Shutdown(); err != nil {
		return err
	}
	return nil
}

func (sm *SystemManager) TextureSystem() *TextureSystem {
	return sm.textureSystem
}

func (sm *SystemManager) MaterialSystem() *MaterialSystem {
	return sm.materialSystem
}
