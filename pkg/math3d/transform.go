package math3d

// viewBasis returns the camera's right, up and forward axes.
// Forward points from center back toward the eye, so the camera looks down
// its own -forward axis. Right is forward × up.
func viewBasis(eye, center, up Vec3) (right, camUp, forward Vec3) {
	forward = eye.Minus(center).Normalize()
	right = forward.Cross(up).Normalize()
	camUp = right.Cross(forward)
	return right, camUp, forward
}

// LookAt creates a world-to-eye matrix. Its rows are the camera basis
// (right, up, forward) followed by a translation by -eye, so eye maps to
// the origin and center maps to (0, 0, -|eye-center|).
//
// Right is forward × up, which makes the basis left-handed: device x grows
// toward the viewer's left. The framebuffer write mirrors it back.
func LookAt(eye, center, up Vec3) Mat4 {
	right, camUp, forward := viewBasis(eye, center, up)

	m := Mat4FromRows(
		V4(right.X, right.Y, right.Z, 0),
		V4(camUp.X, camUp.Y, camUp.Z, 0),
		V4(forward.X, forward.Y, forward.Z, 0),
		V4(0, 0, 0, 1),
	)
	return TranslateObj(m, eye.Negate())
}

// InverseLookAt creates the eye-to-world matrix for the same camera: the
// basis as columns, then a translation by +eye.
func InverseLookAt(eye, center, up Vec3) Mat4 {
	right, camUp, forward := viewBasis(eye, center, up)

	m := Mat4FromCols(
		V4FromV3(right, 0),
		V4FromV3(camUp, 0),
		V4FromV3(forward, 0),
		V4(0, 0, 0, 1),
	)
	return Translate(eye).Mul(m)
}

// TranslateObj right-composes a translation onto m (m · Translate(t)) by
// adding t's weighted combination of m's first three columns into column 3.
func TranslateObj(m Mat4, t Vec3) Mat4 {
	c0, c1, c2, c3 := m.Col(0), m.Col(1), m.Col(2), m.Col(3)
	c3 = c3.Plus(c0.Scale(t.X)).Plus(c1.Scale(t.Y)).Plus(c2.Scale(t.Z))
	m.SetCol(3, c3)
	return m
}

// RotateObj right-composes a rotation of angle radians about axis onto m.
func RotateObj(m Mat4, angle float64, axis Vec3) Mat4 {
	return m.Mul(Rotate(axis, angle))
}

// ScaleObj left-composes a uniform scale by f onto m.
func ScaleObj(m Mat4, f float64) Mat4 {
	return ScaleUniform(f).Mul(m)
}
