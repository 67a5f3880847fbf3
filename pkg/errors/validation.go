package errors

import (
	"unicode"

	"github.com/ReFLEX-Lab-York/trafficMISBP/pkg/lane"
)

// MaxLanes bounds the ring size accepted from untrusted input. The conflict
// matrix is quadratic in the lane count.
const MaxLanes = 1024

// ValidateLaneCount checks that n is a usable ring size.
func ValidateLaneCount(n int) error {
	if n <= 0 {
		return New(ErrCodeInvalidLaneCount, "lane count must be positive, got %d", n)
	}
	if n > MaxLanes {
		return New(ErrCodeInvalidLaneCount, "lane count %d exceeds maximum of %d", n, MaxLanes)
	}
	return nil
}

// ValidateRoutes rejects route lists the pipeline cannot interpret.
//
// Degenerate routes (entrance == exit) are rejected: a movement that leaves
// where it entered has no path across the intersection. Routes that fall off
// the ring are NOT rejected here; they are skipped with a diagnostic later.
func ValidateRoutes(routes []lane.Route) error {
	if len(routes) == 0 {
		return New(ErrCodeInvalidRoute, "at least one route is required")
	}
	for i, r := range routes {
		if r.Degenerate() {
			return New(ErrCodeDegenerateRoute, "route #%d (%s) enters and exits on lane %d", i, r, r.Entrance)
		}
	}
	return nil
}

// ValidateName validates an intersection name used in reports and cache keys.
// Empty names are allowed.
func ValidateName(name string) error {
	if len(name) > 256 {
		return New(ErrCodeInvalidName, "name too long (max 256 characters)")
	}
	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidName, "name contains invalid control characters")
		}
	}
	return nil
}
