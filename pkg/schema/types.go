package schema

import (
	"fmt"
	"reflect"
)

// Type defines the contract for prop validation. Implementations
// determine how a prop value is validated against a capability.
type Type interface {
	// Name returns the human-readable name of the type (e.g., "string", "choice").
	Name() string
	// Validate checks if a value conforms to this type.
	Validate(value any) error
}

// --- Built-in Type Implementations ---

// StringType validates string values.
type StringType struct{}

func (t *StringType) Name() string { return "string" }

func (t *StringType) Validate(value any) error {
	_, ok := value.(string)
	if !ok {
		return fmt.Errorf("expected string, got %T", value)
	}
	return nil
}

// BoolType validates boolean values.
type BoolType struct{}

func (t *BoolType) Name() string { return "bool" }

func (t *BoolType) Validate(value any) error {
	_, ok := value.(bool)
	if !ok {
		return fmt.Errorf("expected bool, got %T", value)
	}
	return nil
}

// NumberType validates numeric values, accepting whole floats from
// JSON unmarshaling.
type NumberType struct{}

func (t *NumberType) Name() string { return "number" }

func (t *NumberType) Validate(value any) error {
	switch value.(type) {
	case int, int8, int16, int32, int64, float32, float64:
		return nil
	default:
		return fmt.Errorf("expected number, got %T", value)
	}
}

// ChoiceType validates membership in a closed set of options. This is
// the capability behind select-style inspector widgets.
type ChoiceType struct {
	options []string
}

func (t *ChoiceType) Name() string { return "choice" }

func (t *ChoiceType) Validate(value any) error {
	str, ok := value.(string)
	if !ok {
		return fmt.Errorf("expected string choice, got %T", value)
	}
	for _, opt := range t.options {
		if str == opt {
			return nil
		}
	}
	return fmt.Errorf("%q is not one of %v", str, t.options)
}

// RangeType validates a number within [min, max]. This is the
// capability behind slider/scale widgets.
type RangeType struct {
	min, max float64
}

func (t *RangeType) Name() string { return fmt.Sprintf("range[%g..%g]", t.min, t.max) }

func (t *RangeType) Validate(value any) error {
	var v float64
	switch n := value.(type) {
	case int:
		v = float64(n)
	case int64:
		v = float64(n)
	case float32:
		v = float64(n)
	case float64:
		v = n
	default:
		return fmt.Errorf("expected number, got %T", value)
	}
	if v < t.min || v > t.max {
		return fmt.Errorf("%g out of range [%g, %g]", v, t.min, t.max)
	}
	return nil
}

// SliceType validates slices of a specific element type.
type SliceType struct {
	elemType Type
}

func (t *SliceType) Name() string {
	return fmt.Sprintf("[%s]", t.elemType.Name())
}

func (t *SliceType) Validate(value any) error {
	rv := reflect.ValueOf(value)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return fmt.Errorf("expected slice, got %T", value)
	}
	for i := 0; i < rv.Len(); i++ {
		elem := rv.Index(i).Interface()
		if err := t.elemType.Validate(elem); err != nil {
			return fmt.Errorf("element %d: %w", i, err)
		}
	}
	return nil
}

// --- Factory Functions ---

// String creates a string type validator.
func String() Type { return &StringType{} }

// Bool creates a boolean type validator.
func Bool() Type { return &BoolType{} }

// Number creates a numeric type validator.
func Number() Type { return &NumberType{} }

// Choice creates a closed-set validator over the given options.
func Choice(options ...string) Type { return &ChoiceType{options: options} }

// Range creates a bounded numeric validator.
func Range(min, max float64) Type { return &RangeType{min: min, max: max} }

// Slice creates a slice type validator for elements of the given type.
func Slice(elemType Type) Type { return &SliceType{elemType: elemType} }
