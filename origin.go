package distort

import (
	"math"
	"strconv"
	"strings"
)

// resolveOrigin converts an offset spec plus the surface dimensions into
// the origin point. The result is negated on both axes: the origin is an
// offset subtracted from every coordinate so that all downstream math is
// origin-relative.
func resolveOrigin(off Offset, width, height float64) Vec2 {
	return Vec2{
		X: resolveAxis(off.X, width),
		Y: resolveAxis(off.Y, height),
	}
}

// resolveAxis resolves one axis of an offset spec. "" centers on the
// dimension, "<n>%" takes a fraction of it, and anything else is read as
// an absolute length ("px" suffix optional).
func resolveAxis(spec string, dim float64) float64 {
	switch {
	case spec == "":
		return -dim / 2
	case strings.HasSuffix(spec, "%"):
		return -parseNumber(strings.TrimSuffix(spec, "%")) / 100 * dim
	default:
		return -parseNumber(strings.TrimSuffix(spec, "px"))
	}
}

// parseNumber is deliberately permissive: malformed numeric text yields
// NaN rather than an error. The NaN flows through the solve and trips the
// finite-matrix guard, so a garbage spec degrades to the identity matrix.
func parseNumber(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return math.NaN()
	}
	return v
}
