package domain

// Dimension is the grouping axis a snapshot is computed along. The set is
// closed so cache keys and invalidation prefixes stay enumerable.
type Dimension string

const (
	DimensionOverall             Dimension = "overall"
	DimensionByServiceLine       Dimension = "service_line"
	DimensionByMasterServiceLine Dimension = "master_service_line"

	// DimensionAging keys cached debtor aging results. It is not a snapshot
	// grouping; it exists so aging entries share the entity key space and get
	// evicted together.
	DimensionAging Dimension = "aging"
)

// SnapshotDimensions are the dimensions GetSnapshot accepts.
var SnapshotDimensions = []Dimension{
	DimensionOverall,
	DimensionByServiceLine,
	DimensionByMasterServiceLine,
}

// ParseDimension validates a snapshot dimension string. Empty input defaults
// to the overall dimension.
func ParseDimension(s string) (Dimension, error) {
	if s == "" {
		return DimensionOverall, nil
	}
	switch Dimension(s) {
	case DimensionOverall:
		return DimensionOverall, nil
	case DimensionByServiceLine:
		return DimensionByServiceLine, nil
	case DimensionByMasterServiceLine:
		return DimensionByMasterServiceLine, nil
	}
	return "", ErrUnknownDimension
}
