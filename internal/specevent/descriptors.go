package specevent

import (
	"encoding/json"
	"fmt"
)

// FieldShapeDescriptor is either FromShape (concrete) or FromParameter
// (inherits from the enclosing shape's parameter).
type FieldShapeDescriptor struct {
	FromShape     *FieldShapeFromShape
	FromParameter *FieldShapeFromParameter
}

type FieldShapeFromShape struct {
	FieldID string `json:"fieldId"`
	ShapeID string `json:"shapeId"`
}

type FieldShapeFromParameter struct {
	FieldID          string `json:"fieldId"`
	ShapeParameterID string `json:"shapeParameterId"`
}

func (d *FieldShapeDescriptor) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if v, ok := raw["FieldShapeFromShape"]; ok {
		d.FromShape = new(FieldShapeFromShape)
		return json.Unmarshal(v, d.FromShape)
	}
	if v, ok := raw["FieldShapeFromParameter"]; ok {
		d.FromParameter = new(FieldShapeFromParameter)
		return json.Unmarshal(v, d.FromParameter)
	}
	return fmt.Errorf("invalid field shape descriptor: no known variant")
}

func (d FieldShapeDescriptor) MarshalJSON() ([]byte, error) {
	if d.FromShape != nil {
		return json.Marshal(map[string]any{"FieldShapeFromShape": d.FromShape})
	}
	if d.FromParameter != nil {
		return json.Marshal(map[string]any{"FieldShapeFromParameter": d.FromParameter})
	}
	return nil, fmt.Errorf("invalid field shape descriptor: no variant set")
}

// ShapeParametersDescriptor declares how a shape's parameter list is
// populated: not at all, statically by the shape's kind, or dynamically.
type ShapeParametersDescriptor struct {
	NoParameterList      bool
	StaticParameterList  *ShapeParameterIDList
	DynamicParameterList *ShapeParameterIDList
}

type ShapeParameterIDList struct {
	ShapeParameterIDs []string `json:"shapeParameterIds"`
}

func (d *ShapeParametersDescriptor) UnmarshalJSON(data []byte) error {
	var asString string
	if err := json.Unmarshal(data, &asString); err == nil {
		if asString == "NoParameterList" {
			d.NoParameterList = true
			return nil
		}
		return fmt.Errorf("invalid shape parameters descriptor: unknown tag %q", asString)
	}
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if v, ok := raw["StaticParameterList"]; ok {
		d.StaticParameterList = new(ShapeParameterIDList)
		return json.Unmarshal(v, d.StaticParameterList)
	}
	if v, ok := raw["DynamicParameterList"]; ok {
		d.DynamicParameterList = new(ShapeParameterIDList)
		return json.Unmarshal(v, d.DynamicParameterList)
	}
	return fmt.Errorf("invalid shape parameters descriptor: no known variant")
}

// ParameterShapeDescriptor binds a shape parameter: either deferred to the
// referencing field (ProviderInField) or supplied a concrete descriptor here
// (ProviderInShape).
type ParameterShapeDescriptor struct {
	ProviderInField *ProviderInField
	ProviderInShape *ProviderInShape
}

type ProviderInField struct{}

type ProviderInShape struct {
	ShapeID               string            `json:"shapeId"`
	ProviderDescriptor    ProviderDescriptor `json:"providerDescriptor"`
	ConsumingParameterID  string            `json:"consumingParameterId"`
}

func (d *ParameterShapeDescriptor) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if v, ok := raw["ProviderInField"]; ok {
		d.ProviderInField = new(ProviderInField)
		return json.Unmarshal(v, d.ProviderInField)
	}
	if v, ok := raw["ProviderInShape"]; ok {
		d.ProviderInShape = new(ProviderInShape)
		return json.Unmarshal(v, d.ProviderInShape)
	}
	return fmt.Errorf("invalid parameter shape descriptor: no known variant")
}

// ProviderDescriptor resolves a bound parameter to a shape: a concrete shape,
// a deferral to another parameter, or nothing at all.
type ProviderDescriptor struct {
	ParameterProvider *ParameterProvider
	ShapeProvider     *ShapeProvider
	NoProvider        *NoProvider
}

type ParameterProvider struct{}

type ShapeProvider struct {
	ShapeID string `json:"shapeId"`
}

type NoProvider struct{}

func (d *ProviderDescriptor) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if v, ok := raw["ParameterProvider"]; ok {
		d.ParameterProvider = new(ParameterProvider)
		return json.Unmarshal(v, d.ParameterProvider)
	}
	if v, ok := raw["ShapeProvider"]; ok {
		d.ShapeProvider = new(ShapeProvider)
		return json.Unmarshal(v, d.ShapeProvider)
	}
	if v, ok := raw["NoProvider"]; ok {
		d.NoProvider = new(NoProvider)
		return json.Unmarshal(v, d.NoProvider)
	}
	return fmt.Errorf("invalid provider descriptor: no known variant")
}
