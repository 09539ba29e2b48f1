package frame

import "math"

// snapToLattice rounds a continuous point to the nearest integer triple and,
// if that triple violates BCC parity, moves the axis whose rounding error
// was largest one step toward its unrounded value. Ties between axes are
// broken in x, y, z order; an axis with no rounding error is decremented.
func snapToLattice(xf, yf, zf float64) (x, y, z int64) {
	rx, ex := roundWithError(xf)
	ry, ey := roundWithError(yf)
	rz, ez := roundWithError(zf)

	if (rx+ry+rz)%2 == 0 {
		return rx, ry, rz
	}

	switch largestErrorAxis(ex, ey, ez) {
	case 0:
		if xf > float64(rx) {
			rx++
		} else {
			rx--
		}
	case 1:
		if yf > float64(ry) {
			ry++
		} else {
			ry--
		}
	default:
		if zf > float64(rz) {
			rz++
		} else {
			rz--
		}
	}

	return rx, ry, rz
}

// roundWithError rounds v to the nearest int64 and reports the magnitude of
// the rounding error, used to pick the axis to adjust for parity.
func roundWithError(v float64) (rounded int64, errMag float64) {
	r := math.Round(v)
	return int64(r), math.Abs(v - r)
}

// largestErrorAxis returns the index (0=x,1=y,2=z) of the largest error,
// breaking ties in x, y, z order.
func largestErrorAxis(ex, ey, ez float64) int {
	best, axis := ex, 0
	if ey > best {
		best, axis = ey, 1
	}
	if ez > best {
		axis = 2
	}
	return axis
}
