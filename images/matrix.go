// Package images resolves embedded image placements on a page and decodes
// their pixel data to a portable raster encoding. The primary path walks
// the page content stream with a transformation-matrix stack; a coarse
// fallback enumerates image objects without placement geometry.
package images

// matrix is a 2D affine transformation matrix in PDF order
// [a b c d e f].
type matrix [6]float64

// identity returns an identity matrix.
func identity() matrix {
	return matrix{1, 0, 0, 1, 0, 0}
}

// mul returns m concatenated with other (m applied first).
func (m matrix) mul(other matrix) matrix {
	return matrix{
		m[0]*other[0] + m[1]*other[2],
		m[0]*other[1] + m[1]*other[3],
		m[2]*other[0] + m[3]*other[2],
		m[2]*other[1] + m[3]*other[3],
		m[4]*other[0] + m[5]*other[2] + other[4],
		m[4]*other[1] + m[5]*other[3] + other[5],
	}
}

// transform applies the matrix to a point.
func (m matrix) transform(x, y float64) (float64, float64) {
	return m[0]*x + m[2]*y + m[4], m[1]*x + m[3]*y + m[5]
}
