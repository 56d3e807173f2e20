package serdes

import (
	"fmt"

	"github.com/bitmold/organicmaps/internal/kml"
)

// Property keys read from a feature.
// Styling keys (marker-color, marker-symbol, stroke, ...) are left alone.
const (
	propName        = "name"
	propLabel       = "label"
	propDescription = "description"
)

// properties is the text extracted from a feature's property map.
// Nil fields are absent.
type properties struct {
	Name        kml.LocalizableString
	Description kml.LocalizableString
}

// extractProperties resolves the name ("name" over "label", never merged)
// and the description of a feature.
func extractProperties(props map[string]any) (properties, error) {
	var p properties

	for _, key := range []string{propName, propLabel} {
		s, ok, err := stringProperty(props, key)
		if err != nil {
			return properties{}, err
		}
		if ok {
			p.Name = kml.NewDefaultString(s)
			break
		}
	}

	s, ok, err := stringProperty(props, propDescription)
	if err != nil {
		return properties{}, err
	}
	if ok {
		p.Description = kml.NewDefaultString(s)
	}

	return p, nil
}

// stringProperty looks key up in props. A present key with a non-string
// value is an error.
func stringProperty(props map[string]any, key string) (string, bool, error) {
	v, ok := props[key]
	if !ok {
		return "", false, nil
	}
	s, ok := v.(string)
	if !ok {
		return "", false, &ErrStructure{Reason: fmt.Sprintf("property %q must be a string, got %T", key, v)}
	}
	return s, true, nil
}
