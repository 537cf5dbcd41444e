/*
This is an example application that uses the engine package to drive a
material through an in-memory uniform backend: it loads a material
definition, attaches node auto-bindings, animates a parameter and
pushes everything into an effect every frame.
*/
package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spaghettifunk/prisma/engine"
	"github.com/spaghettifunk/prisma/engine/animation"
	"github.com/spaghettifunk/prisma/engine/core"
	"github.com/spaghettifunk/prisma/engine/materials"
	"github.com/spaghettifunk/prisma/engine/math"
	"github.com/spaghettifunk/prisma/engine/renderer"
	"github.com/spaghettifunk/prisma/engine/renderer/metadata"
	"github.com/spaghettifunk/prisma/engine/scene"
)

func main() {
	config, err := engine.LoadConfig("prisma.toml")
	if err != nil {
		core.LogWarn("no engine config found, using defaults: %s", err.Error())
		config = engine.DefaultConfig()
	}

	var material *materials.Material
	var effect *metadata.Effect
	var node *scene.Node
	animator := animation.NewAnimator()

	app := &engine.App{
		Name: config.Name,
		OnUpdate: func(delta float64) error {
			animator.Update(float32(delta))
			material.BindNode(node)
			material.Bind(effect)
			return nil
		},
	}

	eng, err := engine.New(config, app)
	if err != nil {
		panic(err)
	}
	if err := eng.Initialize(); err != nil {
		panic(err)
	}

	backend := renderer.NewMemoryBackend()
	effect = metadata.NewEffect("demo", backend)
	effect.AddUniform("u_diffuse_color")
	effect.AddUniform("u_diffuse_texture")
	effect.AddUniform("u_shininess")
	effect.AddUniform("u_camera_position")

	material, err = eng.Systems().MaterialSystem().Acquire("demo")
	if err != nil {
		panic(err)
	}

	camera := scene.NewCamera(math.NewVec3(0, 2, 5), math.NewVec3(0, 0, 0))
	node = scene.NewNode("demo")
	node.SetActiveCamera(camera)
	node.Transform.Translate(math.NewVec3(0, 1, 0))

	// Pulse the shininess between its keyframes forever.
	animator.AddChannel(&animation.Channel{
		Target:     material.Parameter("u_shininess"),
		PropertyID: materials.AnimateUniform,
		Keyframes: []animation.Keyframe{
			{Time: 0, Values: []float32{2}},
			{Time: 1, Values: []float32{32}},
			{Time: 2, Values: []float32{2}},
		},
		Loop: true,
	})

	// signal channel to capture system calls
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGTERM, syscall.SIGINT, syscall.SIGQUIT)

	// start shutdown goroutine
	go func() {
		// capture sigterm and other system call here
		<-sigCh
		_ = eng.Shutdown()
	}()

	// run engine
	if err := eng.Run(); err != nil {
		panic(err)
	}

	binds, misses := core.MetricsUniformBinds()
	core.LogInfo("uniform pushes: %d, unresolved uniforms: %d", binds, misses)
}
