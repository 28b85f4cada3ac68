package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// Bounds is the rectangular contest region. Submissions resolving outside it
// are rejected at finalization.
type Bounds struct {
	MinLat float64
	MinLng float64
	MaxLat float64
	MaxLng float64
}

// ParseBounds reads the "minLat,minLng,maxLat,maxLng" form used by config.
func ParseBounds(value string) (Bounds, error) {
	parts := strings.Split(strings.TrimSpace(value), ",")
	if len(parts) != 4 {
		return Bounds{}, fmt.Errorf("bounds must have 4 comma-separated values, got %d", len(parts))
	}

	nums := make([]float64, 4)
	for i, part := range parts {
		parsed, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return Bounds{}, fmt.Errorf("invalid bounds component %q: %w", part, err)
		}
		nums[i] = parsed
	}

	b := Bounds{MinLat: nums[0], MinLng: nums[1], MaxLat: nums[2], MaxLng: nums[3]}
	if b.MinLat > b.MaxLat || b.MinLng > b.MaxLng {
		return Bounds{}, fmt.Errorf("bounds min exceeds max: %q", value)
	}
	return b, nil
}

// Contains reports whether the point lies inside the region, edges included.
func (b Bounds) Contains(c Coordinates) bool {
	return c.Lat >= b.MinLat && c.Lat <= b.MaxLat &&
		c.Lng >= b.MinLng && c.Lng <= b.MaxLng
}

// IsZero reports an unconfigured region, which disables the boundary check.
func (b Bounds) IsZero() bool {
	return b == Bounds{}
}
