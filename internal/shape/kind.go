package shape

// Kind is the closed set of shape kinds a ShapeAdded event's baseShapeId can
// select.
type Kind string

const (
	KindObject     Kind = "Object"
	KindList       Kind = "List"
	KindMap        Kind = "Map"
	KindOneOf      Kind = "OneOf"
	KindAny        Kind = "Any"
	KindString     Kind = "String"
	KindNumber     Kind = "Number"
	KindBoolean    Kind = "Boolean"
	KindIdentifier Kind = "Identifier"
	KindReference  Kind = "Reference"
	KindNullable   Kind = "Nullable"
	KindOptional   Kind = "Optional"
	KindUnknown    Kind = "Unknown"
)

// Descriptor carries a kind's fixed base shape id and human name.
type Descriptor struct {
	BaseShapeID string
	Name        string
}

var descriptors = map[Kind]Descriptor{
	KindObject:     {"$object", "Object"},
	KindList:       {"$list", "List"},
	KindMap:        {"$map", "Map"},
	KindOneOf:      {"$oneOf", "OneOf"},
	KindAny:        {"$any", "Any"},
	KindString:     {"$string", "String"},
	KindNumber:     {"$number", "Number"},
	KindBoolean:    {"$boolean", "Boolean"},
	KindIdentifier: {"$identifier", "Identifier"},
	KindReference:  {"$reference", "Reference"},
	KindNullable:   {"$nullable", "Nullable"},
	KindOptional:   {"$optional", "Optional"},
	KindUnknown:    {"$unknown", "Unknown"},
}

var baseShapeIDToKind = func() map[string]Kind {
	m := make(map[string]Kind, len(descriptors))
	for k, d := range descriptors {
		m[d.BaseShapeID] = k
	}
	return m
}()

// GetDescriptor returns k's base shape id and display name.
func (k Kind) GetDescriptor() Descriptor { return descriptors[k] }

// listItemParameterID is the single statically declared parameter id on
// $list; no other kind declares a static parameter.
const listItemParameterID = "$listItem"

// GetParameterDescriptor returns the statically declared parameter id for
// kinds that have one. Only List declares a built-in parameter.
func (k Kind) GetParameterDescriptor() (string, bool) {
	if k == KindList {
		return listItemParameterID, true
	}
	return "", false
}

// KindFromBaseShapeID resolves the ShapeKind for a ShapeAdded event's
// baseShapeId, defaulting to KindUnknown for an unrecognized id.
func KindFromBaseShapeID(baseShapeID string) Kind {
	if k, ok := baseShapeIDToKind[baseShapeID]; ok {
		return k
	}
	return KindUnknown
}
