package shape

import (
	"fmt"

	"github.com/driftcheck/specdiff/internal/specevent"
)

// Warning is a non-fatal projection precondition violation: the offending
// event is skipped, never causing Apply to fail.
type Warning struct {
	Message string
}

func (w *Warning) String() string { return w.Message }

// Projection is the shape graph folded from a spec event stream: shapes,
// their fields, and their parameter bindings. It is append-only and safe
// for concurrent reads once built.
type Projection struct {
	Shapes     map[ShapeID]*Shape
	Fields     map[FieldID]*Field
	Parameters map[ParamKey]*Parameter

	warnings []*Warning
}

// NewProjection returns an empty shape projection.
func NewProjection() *Projection {
	return &Projection{
		Shapes:     make(map[ShapeID]*Shape),
		Fields:     make(map[FieldID]*Field),
		Parameters: make(map[ParamKey]*Parameter),
	}
}

// Warnings returns every precondition violation observed so far, in
// insertion order.
func (p *Projection) Warnings() []*Warning { return p.warnings }

func (p *Projection) warn(format string, args ...any) {
	p.warnings = append(p.warnings, &Warning{Message: fmt.Sprintf(format, args...)})
}

// Apply folds a single spec event into the projection. Event kinds this
// projection doesn't own are silently ignored (the endpoint projection owns
// them); events whose preconditions are violated are skipped with a warning.
func (p *Projection) Apply(evt specevent.SpecEvent) {
	switch evt.Kind {
	case specevent.KindShapeAdded:
		p.applyShapeAdded(evt.ShapeAdded)
	case specevent.KindFieldAdded:
		p.applyFieldAdded(evt.FieldAdded)
	case specevent.KindShapeParameterBindingSet:
		p.applyShapeParameterBindingSet(evt.ShapeParameterBindingSet)
	}
}

func (p *Projection) applyShapeAdded(e *specevent.ShapeAdded) {
	if e == nil {
		return
	}
	id := ShapeID(e.ShapeID)
	if _, exists := p.Shapes[id]; exists {
		p.warn("ShapeAdded: shape %q already exists", id)
		return
	}

	kind := KindFromBaseShapeID(e.BaseShapeID)
	s := &Shape{ID: id, Kind: kind, Name: e.Name}

	if staticID, ok := kind.GetParameterDescriptor(); ok {
		p.declareParameter(s, ParameterID(staticID))
	}

	switch {
	case e.Parameters.StaticParameterList != nil:
		p.declareParameters(s, e.Parameters.StaticParameterList.ShapeParameterIDs)
	case e.Parameters.DynamicParameterList != nil:
		p.declareParameters(s, e.Parameters.DynamicParameterList.ShapeParameterIDs)
	}

	p.Shapes[id] = s
}

func (p *Projection) declareParameters(s *Shape, ids []string) {
	for _, rawID := range ids {
		p.declareParameter(s, ParameterID(rawID))
	}
}

func (p *Projection) declareParameter(s *Shape, pid ParameterID) {
	key := ParamKey{ShapeID: s.ID, ParamID: pid}
	if _, exists := p.Parameters[key]; exists {
		return
	}
	s.Parameters = append(s.Parameters, pid)
	p.Parameters[key] = &Parameter{ID: pid, ShapeID: s.ID}
}

func (p *Projection) applyFieldAdded(e *specevent.FieldAdded) {
	if e == nil {
		return
	}
	shapeID := ShapeID(e.ShapeID)
	owner, ok := p.Shapes[shapeID]
	if !ok {
		p.warn("FieldAdded: shape %q does not exist", shapeID)
		return
	}
	fieldID := FieldID(e.FieldID)
	if _, exists := p.Fields[fieldID]; exists {
		p.warn("FieldAdded: field %q already exists", fieldID)
		return
	}

	descriptor, ok := p.resolveFieldDescriptor(fieldID, e.ShapeDescriptor)
	if !ok {
		p.warn("FieldAdded: field %q descriptor's fieldId does not match field id", fieldID)
		return
	}

	f := &Field{ID: fieldID, ShapeID: shapeID, Name: e.Name, Descriptor: descriptor}
	p.Fields[fieldID] = f
	owner.Fields = append(owner.Fields, fieldID)

	// A FromParameter descriptor implies the referenced parameter (declared
	// on the field's own enclosing shape) is bound InField: it resolves
	// lazily through whichever shape ends up plugged into this field.
	if descriptor.FromParameter != nil {
		key := ParamKey{ShapeID: shapeID, ParamID: *descriptor.FromParameter}
		if param, ok := p.Parameters[key]; ok && param.Binding == nil {
			param.Binding = &ParameterBinding{InField: &struct{}{}}
		}
	}
}

func (p *Projection) resolveFieldDescriptor(fieldID FieldID, d specevent.FieldShapeDescriptor) (FieldDescriptor, bool) {
	switch {
	case d.FromShape != nil:
		if FieldID(d.FromShape.FieldID) != fieldID {
			return FieldDescriptor{}, false
		}
		sid := ShapeID(d.FromShape.ShapeID)
		if _, ok := p.Shapes[sid]; !ok {
			p.warn("FieldAdded: referenced shape %q does not exist", sid)
		}
		return FieldDescriptor{FromShape: &sid}, true
	case d.FromParameter != nil:
		if FieldID(d.FromParameter.FieldID) != fieldID {
			return FieldDescriptor{}, false
		}
		pid := ParameterID(d.FromParameter.ShapeParameterID)
		return FieldDescriptor{FromParameter: &pid}, true
	default:
		return FieldDescriptor{}, false
	}
}

func (p *Projection) applyShapeParameterBindingSet(e *specevent.ShapeParameterBindingSet) {
	if e == nil {
		return
	}
	shapeID := ShapeID(e.ShapeID)
	if _, ok := p.Shapes[shapeID]; !ok {
		p.warn("ShapeParameterBindingSet: shape %q does not exist", shapeID)
		return
	}
	key := ParamKey{ShapeID: shapeID, ParamID: ParameterID(e.ConsumingParameterID)}
	param, ok := p.Parameters[key]
	if !ok {
		p.warn("ShapeParameterBindingSet: parameter %q does not exist on shape %q", e.ConsumingParameterID, shapeID)
		return
	}

	provider := resolveProvider(e.ProviderDescriptor)
	if provider.Shape != nil {
		if _, ok := p.Shapes[*provider.Shape]; !ok {
			p.warn("ShapeParameterBindingSet: provider shape %q does not exist", *provider.Shape)
		}
	}

	param.Binding = &ParameterBinding{InShape: &ShapeProviderBinding{
		ShapeID:              shapeID,
		Provider:             provider,
		ConsumingParameterID: param.ID,
	}}
}

func resolveProvider(d specevent.ProviderDescriptor) Provider {
	switch {
	case d.ShapeProvider != nil:
		sid := ShapeID(d.ShapeProvider.ShapeID)
		return Provider{Shape: &sid}
	case d.ParameterProvider != nil:
		return Provider{Parameter: &struct{}{}}
	default:
		return Provider{None: &struct{}{}}
	}
}
