package math

func TransformCreate() *Transform {
	t := &Transform{}
	t.SetPositionRotationScale(NewVec3Zero(), NewQuatIdentity(), NewVec3One())
	t.Local = NewMat4Identity()
	t.Parent = nil
	return t
}

func TransformFromPosition(position Vec3) *Transform {
	t := &Transform{}
	t.SetPositionRotationScale(position, NewQuatIdentity(), NewVec3One())
	t.Local = NewMat4Identity()
	t.Parent = nil
	return t
}

func TransformFromPositionRotationScale(position Vec3, rotation Quaternion, scale Vec3) *Transform {
	t := &Transform{}
	t.SetPositionRotationScale(position, rotation, scale)
	t.Local = NewMat4Identity()
	t.Parent = nil
	return t
}

func (t *Transform) SetPosition(position Vec3) {
	t.Position = position
	t.IsDirty = true
}

func (t *Transform) Translate(translation Vec3) {
	t.Position = t.Position.Add(translation)
	t.IsDirty = true
}

func (t *Transform) SetRotation(rotation Quaternion) {
	t.Rotation = rotation
	t.IsDirty = true
}

func (t *Transform) SetScale(scale Vec3) {
	t.Scale = scale
	t.IsDirty = true
}

func (t *Transform) SetPositionRotationScale(position Vec3, rotation Quaternion, scale Vec3) {
	t.Position = position
	t.Rotation = rotation
	t.Scale = scale
	t.IsDirty = true
}

// GetLocal recalculates the local matrix when position, rotation or
// scale have changed, then returns it.
func (t *Transform) GetLocal() Mat4 {
	if t.IsDirty {
		tr := t.Rotation.ToMat4().Mul(NewMat4Translation(t.Position))
		tr = NewMat4Scale(t.Scale).Mul(tr)
		t.Local = tr
		t.IsDirty = false
	}
	return t.Local
}

// GetWorld returns the transform matrix including the whole parent chain.
func (t *Transform) GetWorld() Mat4 {
	local := t.GetLocal()
	if t.Parent != nil {
		parent := t.Parent.GetWorld()
		return local.Mul(parent)
	}
	return local
}
