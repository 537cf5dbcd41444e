package engine

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/spaghettifunk/prisma/engine/assets"
	"github.com/spaghettifunk/prisma/engine/core"
	"github.com/spaghettifunk/prisma/engine/systems"
)

type Stage uint8

const (
	// Engine is in an uninitialized state
	EngineStageUninitialized Stage = iota
	// Engine is currently initializing
	EngineStageInitializing
	// Engine initialization is complete
	EngineStageInitialized
	// Engine is currently running
	EngineStageRunning
	// Engine is in the process of shutting down
	EngineStageShuttingDown
)

// Config is the engine configuration, typically loaded from a TOML
// file next to the binary.
type Config struct {
	Name             string  `toml:"name"`
	AssetsDir        string  `toml:"assets_dir"`
	MaxTextureCount  uint32  `toml:"max_texture_count"`
	MaxMaterialCount uint32  `toml:"max_material_count"`
	TargetFrameRate  float64 `toml:"target_frame_rate"`
}

// DefaultConfig returns a usable configuration for callers that do not
// carry a config file.
func DefaultConfig() *Config {
	return &Config{
		Name:             "prisma",
		AssetsDir:        "assets",
		MaxTextureCount:  1024,
		MaxMaterialCount: 1024,
		TargetFrameRate:  60,
	}
}

// LoadConfig reads an engine configuration from the given TOML file.
// Zero values fall back to the defaults.
func LoadConfig(path string) (*Config, error) {
	buf, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	config := DefaultConfig()
	if err := toml.Unmarshal(buf, config); err != nil {
		return nil, fmt.Errorf("failed to parse engine config '%s': %w", path, err)
	}
	if config.MaxTextureCount == 0 {
		config.MaxTextureCount = 1024
	}
	if config.MaxMaterialCount == 0 {
		config.MaxMaterialCount = 1024
	}
	if config.TargetFrameRate <= 0 {
		config.TargetFrameRate = 60
	}
	return config, nil
}

// App is the application hosted by the engine. The engine drives its
// update callback once per frame with the frame delta in seconds.
type App struct {
	Name     string
	OnUpdate func(delta float64) error
}

type Engine struct {
	currentStage  Stage
	config        *Config
	app           *App
	isRunning     bool
	assetManager  *assets.AssetManager
	systemManager *systems.SystemManager
	clock         *core.Clock
}

func New(config *Config, app *App) (*Engine, error) {
	if config == nil {
		config = DefaultConfig()
	}

	am, err := assets.NewAssetManager()
	if err != nil {
		core.LogError(err.Error())
		return nil, err
	}

	sm, err := systems.NewSystemManager(am, config.MaxTextureCount, config.MaxMaterialCount)
	if err != nil {
		core.LogError(err.Error())
		return nil, err
	}

	return &Engine{
		currentStage:  EngineStageUninitialized,
		config:        config,
		app:           app,
		clock:         core.NewClock(),
		assetManager:  am,
		systemManager: sm,
		isRunning:     true,
	}, nil
}

func (e *Engine) Initialize() error {
	e.currentStage = EngineStageInitializing

	// initialize events
	if err := core.EventInitialize(); err != nil {
		return err
	}
	if err := core.MetricsInitialize(); err != nil {
		return err
	}

	assetsDir := e.config.AssetsDir
	if !filepath.IsAbs(assetsDir) {
		wd, err := os.Getwd()
		if err != nil {
			return err
		}
		assetsDir = filepath.Join(wd, assetsDir)
	}
	if err := e.assetManager.Initialize(assetsDir); err != nil {
		return err
	}

	if err := e.systemManager.Initialize(); err != nil {
		return err
	}

	e.currentStage = EngineStageInitialized
	return nil
}

func (e *Engine) Run() error {
	e.currentStage = EngineStageRunning

	e.clock.Start()

	targetFrameSeconds := 1.0 / e.config.TargetFrameRate

	for e.isRunning {
		// Update clock and get delta time.
		e.clock.Update()
		currentTime := e.clock.ElapsedSeconds()
		delta := e.clock.Delta()

		// Deliver file watcher and other deferred events on this
		// thread before the app runs.
		core.EventPump()

		if e.app != nil && e.app.OnUpdate != nil {
			if err := e.app.OnUpdate(delta); err != nil {
				core.LogFatal("App update failed, shutting down.")
				e.isRunning = false
				return err
			}
		}

		core.MetricsUpdate(delta)

		// Give back unused frame time.
		e.clock.Update()
		frameElapsed := e.clock.ElapsedSeconds() - currentTime
		if remaining := targetFrameSeconds - frameElapsed; remaining > 0 {
			time.Sleep(time.Duration(remaining * float64(time.Second)))
		}
	}

	return e.Shutdown()
}

func (e *Engine) Shutdown() error {
	if e.currentStage == EngineStageShuttingDown {
		return nil
	}
	e.currentStage = EngineStageShuttingDown
	e.isRunning = false

	if err := e.systemManager.Shutdown(); err != nil {
		return err
	}
	if err := e.assetManager.Shutdown(); err != nil {
		return err
	}
	if err := core.EventShutdown(); err != nil {
		return err
	}
	return nil
}

func (e *Engine) Systems() *systems.SystemManager {
	return e.systemManager
}

func (e *Engine) Assets() *assets.AssetManager {
	return e.assetManager
}
