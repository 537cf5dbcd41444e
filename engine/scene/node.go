package scene

import (
	"github.com/spaghettifunk/prisma/engine/math"
)

/**
 * @brief A node is the host object material parameters can auto-bind
 * against: a named transform in the world plus the camera currently
 * rendering it. Hierarchy management beyond the transform parent chain
 * is out of scope here.
 */
type Node struct {
	Name      string
	Transform *math.Transform

	activeCamera *Camera
}

func NewNode(name string) *Node {
	return &Node{
		Name:      name,
		Transform: math.TransformCreate(),
	}
}

// SetActiveCamera sets the camera used for the view-space accessors.
func (n *Node) SetActiveCamera(camera *Camera) {
	n.activeCamera = camera
}

func (n *Node) world() math.Mat4 {
	return n.Transform.GetWorld()
}

func (n *Node) view() math.Mat4 {
	if n.activeCamera == nil {
		return math.NewMat4Identity()
	}
	return n.activeCamera.View()
}

// BackVector returns the node's back direction in local space.
func (n *Node) BackVector() math.Vec3 {
	return n.Transform.GetLocal().Backward()
}

// DownVector returns the node's down direction in local space.
func (n *Node) DownVector() math.Vec3 {
	return n.Transform.GetLocal().Down()
}

// ForwardVector returns the node's forward direction in local space.
func (n *Node) ForwardVector() math.Vec3 {
	return n.Transform.GetLocal().Forward()
}

// ForwardVectorWorld returns the node's forward direction in world space.
func (n *Node) ForwardVectorWorld() math.Vec3 {
	return n.world().Forward()
}

// ForwardVectorView returns the node's forward direction in view space.
func (n *Node) ForwardVectorView() math.Vec3 {
	return n.ForwardVectorWorld().Transform(n.view(), 0)
}

// LeftVector returns the node's left direction in local space.
func (n *Node) LeftVector() math.Vec3 {
	return n.Transform.GetLocal().Left()
}

// RightVector returns the node's right direction in local space.
func (n *Node) RightVector() math.Vec3 {
	return n.Transform.GetLocal().Right()
}

// RightVectorWorld returns the node's right direction in world space.
func (n *Node) RightVectorWorld() math.Vec3 {
	return n.world().Right()
}

// UpVector returns the node's up direction in local space.
func (n *Node) UpVector() math.Vec3 {
	return n.Transform.GetLocal().Up()
}

// UpVectorWorld returns the node's up direction in world space.
func (n *Node) UpVectorWorld() math.Vec3 {
	return n.world().Up()
}

// TranslationWorld returns the node's position in world space.
func (n *Node) TranslationWorld() math.Vec3 {
	return n.world().Translation()
}

// TranslationView returns the node's position in view space.
func (n *Node) TranslationView() math.Vec3 {
	return n.TranslationWorld().Transform(n.view(), 1)
}

// ActiveCameraTranslationWorld returns the active camera's position in
// world space, or a zero vector when no camera is set.
func (n *Node) ActiveCameraTranslationWorld() math.Vec3 {
	if n.activeCamera == nil {
		return math.NewVec3Zero()
	}
	return n.activeCamera.Position()
}

// ActiveCameraTranslationView returns the active camera's position in
// view space, or a zero vector when no camera is set.
func (n *Node) ActiveCameraTranslationView() math.Vec3 {
	if n.activeCamera == nil {
		return math.NewVec3Zero()
	}
	return n.activeCamera.Position().Transform(n.view(), 1)
}

// ScaleX returns the x component of the node's scale.
func (n *Node) ScaleX() float32 {
	return n.Transform.Scale.X
}

// ScaleY returns the y component of the node's scale.
func (n *Node) ScaleY() float32 {
	return n.Transform.Scale.Y
}

// ScaleZ returns the z component of the node's scale.
func (n *Node) ScaleZ() float32 {
	return n.Transform.Scale.Z
}

// TranslationX returns the x component of the node's position.
func (n *Node) TranslationX() float32 {
	return n.Transform.Position.X
}

// TranslationY returns the y component of the node's position.
func (n *Node) TranslationY() float32 {
	return n.Transform.Position.Y
}

// TranslationZ returns the z component of the node's position.
func (n *Node) TranslationZ() float32 {
	return n.Transform.Position.Z
}
