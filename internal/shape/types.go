package shape

// ShapeID, FieldID and ParameterID are opaque string identifiers assigned by
// the spec event stream.
type ShapeID string
type FieldID string
type ParameterID string

// Shape is a node in the spec's type graph.
type Shape struct {
	ID         ShapeID
	Kind       Kind
	Name       string
	Parameters []ParameterID // declaration order: static/built-in first, then dynamically added
	Fields     []FieldID     // declaration order, Object shapes only
}

// Parameter is a type variable declared on a parameterized shape. ParamKey,
// not ID alone, identifies a parameter: the built-in $listItem id is reused
// by every List shape, so the owning shape is part of the identity.
type Parameter struct {
	ID      ParameterID
	ShapeID ShapeID // the shape it belongs to
	Binding *ParameterBinding
}

// ParamKey is the composite identity of a shape parameter.
type ParamKey struct {
	ShapeID ShapeID
	ParamID ParameterID
}

// ParameterBinding is the resolved form of a ParameterShapeDescriptor: either
// it defers to the referencing field (InField) or carries a concrete
// provider (InShape).
type ParameterBinding struct {
	InField *struct{}
	InShape *ShapeProviderBinding
}

// ShapeProviderBinding mirrors ProviderInShape: a concrete descriptor bound
// directly on the shape.
type ShapeProviderBinding struct {
	ShapeID              ShapeID
	Provider             Provider
	ConsumingParameterID ParameterID
}

// Provider is the resolved form of a ProviderDescriptor.
type Provider struct {
	Parameter *struct{}     // ParameterProvider: defer to the enclosing binding
	Shape     *ShapeID      // ShapeProvider: concrete shape
	None      *struct{}     // NoProvider: no shape; ResolveParameterToShape reports the parameter as unresolved, not as Unknown
}

// Field is a named slot on an object shape.
type Field struct {
	ID         FieldID
	ShapeID    ShapeID // the object shape this field belongs to
	Name       string
	Descriptor FieldDescriptor
}

// FieldDescriptor is the resolved form of a FieldShapeDescriptor.
type FieldDescriptor struct {
	FromShape     *ShapeID
	FromParameter *ParameterID
}
