package schema

// Schema is a map of prop names to their expected capability types.
// Example: {"href": String(), "variant": Choice("solid", "outline")}
type Schema map[string]Type

// Validate checks props against the schema. Unlike a required-field
// schema, props are sparse by design: only keys actually present are
// checked; absent keys are fine. Returns an aggregate of all failures
// so the editor can show them in one batch.
func Validate(schema Schema, props map[string]any) error {
	if len(schema) == 0 || len(props) == 0 {
		return nil
	}

	var errs []error
	for key, value := range props {
		fieldType, ok := schema[key]
		if !ok {
			// Free-form keys outside the capability set are tolerated;
			// inspectors write vendor-specific extras.
			continue
		}
		if err := fieldType.Validate(value); err != nil {
			errs = append(errs, &ValidationError{
				Key:    key,
				Reason: err.Error(),
				Value:  value,
			})
		}
	}

	if len(errs) > 0 {
		return &AggregateError{Errors: errs}
	}
	return nil
}
