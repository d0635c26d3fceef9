package schema

import (
	"github.com/latticehq/lattice/pkg/domain"
)

// elementSchemas closes over the capability set of each element type.
// Branching on the type tag happens here, once, instead of in every
// inspector.
var elementSchemas = map[domain.ElementType]Schema{
	domain.ElementButton: {
		"href":    String(),
		"variant": Choice("solid", "outline", "ghost", "link"),
		"size":    Choice("sm", "md", "lg"),
	},
	domain.ElementText: {
		"tag":   Choice("h1", "h2", "h3", "p", "span"),
		"align": Choice("left", "center", "right"),
	},
	domain.ElementImage: {
		"src":     String(),
		"alt":     String(),
		"fit":     Choice("cover", "contain", "fill"),
		"opacity": Range(0, 1),
	},
	domain.ElementInput: {
		"placeholder": String(),
		"name":        String(),
		"required":    Bool(),
		"inputType":   Choice("text", "email", "phone", "number"),
	},
	domain.ElementSelect: {
		"name":     String(),
		"choices":  Slice(String()),
		"multiple": Bool(),
	},
	domain.ElementScale: {
		"min":   Number(),
		"max":   Number(),
		"step":  Range(0.01, 100),
		"label": String(),
	},
	domain.ElementVideo: {
		"src":      String(),
		"autoplay": Bool(),
		"loop":     Bool(),
	},
}

// For returns the capability schema of an element type. Unknown types
// get an empty schema, which validates anything.
func For(t domain.ElementType) Schema {
	return elementSchemas[t]
}

// ValidateElement checks an element's props against its type schema.
func ValidateElement(el *domain.Element) error {
	return Validate(For(el.Type), el.Props)
}
