package geo

// Kind is the closed set of geometry kinds the importer understands.
type Kind int

const (
	KindUnknown Kind = iota
	KindPoint
	KindLineString
)

func (k Kind) String() string {
	switch k {
	case KindPoint:
		return "Point"
	case KindLineString:
		return "LineString"
	default:
		return "Unknown"
	}
}

// ParseKind maps a GeoJSON type tag to a Kind.
// The comparison is exact and case-sensitive; anything else, including the
// GeoJSON kinds this package does not import, is an ErrUnsupportedGeometryType.
func ParseKind(tag string) (Kind, error) {
	switch tag {
	case "Point":
		return KindPoint, nil
	case "LineString":
		return KindLineString, nil
	}
	return KindUnknown, &ErrUnsupportedGeometryType{Type: tag}
}
