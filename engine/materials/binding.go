package materials

import (
	"strings"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"github.com/spaghettifunk/prisma/engine/core"
	"github.com/spaghettifunk/prisma/engine/math"
	"github.com/spaghettifunk/prisma/engine/renderer/metadata"
	"github.com/spaghettifunk/prisma/engine/scene"
)

/**
 * @brief A method binding supplies a parameter's value from a callback
 * instead of stored data, sampled once per bind. Bindings are shared
 * between cloned parameters via reference counting.
 */
type MethodBinding interface {
	AddRef()
	Release()
	// BindValue computes the current value and pushes it into the
	// effect through the given resolved uniform. The uniform comes
	// from the parameter currently binding, so a binding shared by
	// cloned parameters pushes through each clone's own uniform.
	BindValue(effect *metadata.Effect, uniform *metadata.Uniform)
}

type floatMethodBinding struct {
	getter   func() float32
	refCount int32
}

// NewFloatMethodBinding creates a float-valued binding with a single
// reference held by the caller.
func NewFloatMethodBinding(getter func() float32) MethodBinding {
	return &floatMethodBinding{
		getter:   getter,
		refCount: 1,
	}
}

func (b *floatMethodBinding) AddRef() {
	b.refCount++
}

func (b *floatMethodBinding) Release() {
	if b.refCount <= 0 {
		core.LogError("float method binding released more times than it was acquired.")
		return
	}
	b.refCount--
}

func (b *floatMethodBinding) BindValue(effect *metadata.Effect, uniform *metadata.Uniform) {
	effect.SetUniformFloat(uniform, b.getter())
}

type vec3MethodBinding struct {
	getter   func() math.Vec3
	refCount int32
	scratch  [3]float32
}

// NewVec3MethodBinding creates a 3-vector binding with a single
// reference held by the caller.
func NewVec3MethodBinding(getter func() math.Vec3) MethodBinding {
	return &vec3MethodBinding{
		getter:   getter,
		refCount: 1,
	}
}

func (b *vec3MethodBinding) AddRef() {
	b.refCount++
}

func (b *vec3MethodBinding) Release() {
	if b.refCount <= 0 {
		core.LogError("vec3 method binding released more times than it was acquired.")
		return
	}
	b.refCount--
}

func (b *vec3MethodBinding) BindValue(effect *metadata.Effect, uniform *metadata.Uniform) {
	v := b.getter()
	b.scratch[0] = v.X
	b.scratch[1] = v.Y
	b.scratch[2] = v.Z
	effect.SetUniformVec3Array(uniform, b.scratch[:], 1)
}

// nodeAccessor names exactly one accessor shape; installers pick the
// binding type from which field is set.
type nodeAccessor struct {
	float func(*scene.Node) float32
	vec3  func(*scene.Node) math.Vec3
}

// The closed set of node auto-binding identifiers material files may
// reference. Built once; not extensible at runtime.
var nodeBindings = map[string]nodeAccessor{
	"&Node::getBackVector":                   {vec3: (*scene.Node).BackVector},
	"&Node::getDownVector":                   {vec3: (*scene.Node).DownVector},
	"&Node::getTranslationWorld":             {vec3: (*scene.Node).TranslationWorld},
	"&Node::getTranslationView":              {vec3: (*scene.Node).TranslationView},
	"&Node::getForwardVector":                {vec3: (*scene.Node).ForwardVector},
	"&Node::getForwardVectorWorld":           {vec3: (*scene.Node).ForwardVectorWorld},
	"&Node::getForwardVectorView":            {vec3: (*scene.Node).ForwardVectorView},
	"&Node::getLeftVector":                   {vec3: (*scene.Node).LeftVector},
	"&Node::getRightVector":                  {vec3: (*scene.Node).RightVector},
	"&Node::getRightVectorWorld":             {vec3: (*scene.Node).RightVectorWorld},
	"&Node::getUpVector":                     {vec3: (*scene.Node).UpVector},
	"&Node::getUpVectorWorld":                {vec3: (*scene.Node).UpVectorWorld},
	"&Node::getActiveCameraTranslationWorld": {vec3: (*scene.Node).ActiveCameraTranslationWorld},
	"&Node::getActiveCameraTranslationView":  {vec3: (*scene.Node).ActiveCameraTranslationView},
	"&Node::getScaleX":                       {float: (*scene.Node).ScaleX},
	"&Node::getScaleY":                       {float: (*scene.Node).ScaleY},
	"&Node::getScaleZ":                       {float: (*scene.Node).ScaleZ},
	"&Node::getTranslationX":                 {float: (*scene.Node).TranslationX},
	"&Node::getTranslationY":                 {float: (*scene.Node).TranslationY},
	"&Node::getTranslationZ":                 {float: (*scene.Node).TranslationZ},
}

// NodeBindingNames returns the supported auto-binding identifiers in
// sorted order.
func NodeBindingNames() []string {
	names := maps.Keys(nodeBindings)
	slices.Sort(names)
	return names
}

// BindNodeValue installs a computed-value binding that samples the
// named node accessor on every bind. An unrecognized identifier is
// reported and leaves the parameter's current value untouched.
func (p *Parameter) BindNodeValue(node *scene.Node, binding string) {
	if node == nil || binding == "" {
		core.LogError("BindNodeValue requires a node and a binding identifier.")
		return
	}

	accessor, ok := nodeBindings[binding]
	if !ok {
		core.LogError("Unsupported material parameter binding '%s'. Supported bindings: %s",
			binding, strings.Join(NodeBindingNames(), ", "))
		return
	}

	if accessor.float != nil {
		p.SetMethod(NewFloatMethodBinding(func() float32 { return accessor.float(node) }))
	} else {
		p.SetMethod(NewVec3MethodBinding(func() math.Vec3 { return accessor.vec3(node) }))
	}
}
