package whiteboard

// identityTransform is the identity affine matrix.
var identityTransform = [6]float64{1, 0, 0, 1, 0, 0}

// viewportTransform returns the matrix mapping world space to screen space
// for a uniform zoom followed by a pan expressed in world units:
//
//	Scale(zoom) * Translate(tx, ty) = [zoom, 0, 0, zoom, tx*zoom, ty*zoom]
func viewportTransform(zoom, tx, ty float64) [6]float64 {
	return [6]float64{zoom, 0, 0, zoom, tx * zoom, ty * zoom}
}

// multiplyAffine multiplies two 2D affine matrices: result = parent * child.
//
//	Matrix layout: [a, b, c, d, tx, ty]
//	| a  c  tx |
//	| b  d  ty |
//	| 0  0   1 |
func multiplyAffine(p, c [6]float64) [6]float64 {
	return [6]float64{
		p[0]*c[0] + p[2]*c[1],
		p[1]*c[0] + p[3]*c[1],
		p[0]*c[2] + p[2]*c[3],
		p[1]*c[2] + p[3]*c[3],
		p[0]*c[4] + p[2]*c[5] + p[4],
		p[1]*c[4] + p[3]*c[5] + p[5],
	}
}

// invertAffine computes the inverse of a 2D affine matrix.
// Returns the identity matrix if the matrix is singular (determinant ≈ 0).
func invertAffine(m [6]float64) [6]float64 {
	det := m[0]*m[3] - m[2]*m[1]
	if det > -1e-12 && det < 1e-12 {
		return identityTransform
	}
	invDet := 1.0 / det
	a := m[3] * invDet
	b := -m[1] * invDet
	c := -m[2] * invDet
	d := m[0] * invDet
	return [6]float64{
		a, b, c, d,
		-(a*m[4] + c*m[5]),
		-(b*m[4] + d*m[5]),
	}
}

// transformPoint applies an affine matrix to a point.
func transformPoint(m [6]float64, x, y float64) (float64, float64) {
	return m[0]*x + m[2]*y + m[4], m[1]*x + m[3]*y + m[5]
}

// translateAffine returns m * Translate(dx, dy).
func translateAffine(m [6]float64, dx, dy float64) [6]float64 {
	return multiplyAffine(m, [6]float64{1, 0, 0, 1, dx, dy})
}

// scaleAffine returns m * Scale(sx, sy).
func scaleAffine(m [6]float64, sx, sy float64) [6]float64 {
	return multiplyAffine(m, [6]float64{sx, 0, 0, sy, 0, 0})
}
