package export

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

// Validate checks a settings struct against its tag constraints (required,
// min, max, oneof). It returns a *ValidationError aggregating every failure,
// or nil when the settings are exportable.
func Validate(v any) error {
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Ptr {
		if rv.IsNil() {
			return fmt.Errorf("export: settings value is nil")
		}
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return fmt.Errorf("export: settings must be a struct or pointer to struct, got %s", rv.Kind())
	}

	fieldErrors := validateStruct(rv, "")
	if len(fieldErrors) > 0 {
		return &ValidationError{FieldErrors: fieldErrors}
	}
	return nil
}

// validateStruct walks a struct and validates all fields according to their
// tags, recursing into nested settings groups.
func validateStruct(v reflect.Value, parentPath string) []FieldError {
	var fieldErrors []FieldError

	t := v.Type()
	for i := 0; i < v.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}

		fieldPath := field.Name
		if parentPath != "" {
			fieldPath = parentPath + "." + field.Name
		}

		tags := parseTag(field.Tag.Get("conf"))
		fv := v.Field(i)

		if fv.Kind() == reflect.Ptr {
			if fv.IsNil() {
				// Unset optional: only required can fail.
				if tags.required {
					fieldErrors = append(fieldErrors, FieldError{
						FieldPath: fieldPath,
						Code:      ErrCodeRequired,
						Message:   "field is required but not provided",
					})
				}
				continue
			}
			fv = fv.Elem()
		}

		if isGroupType(field.Type) {
			fieldErrors = append(fieldErrors, validateStruct(fv, fieldPath)...)
			continue
		}

		fieldErrors = append(fieldErrors, validateField(fv, fieldPath, tags)...)
	}

	return fieldErrors
}

// validateField validates a single field value against tag-based constraints.
func validateField(fv reflect.Value, fieldPath string, tags tagConfig) []FieldError {
	var errs []FieldError

	if tags.required && isZeroValue(fv) {
		errs = append(errs, FieldError{
			FieldPath: fieldPath,
			Code:      ErrCodeRequired,
			Message:   "field is required but not provided",
		})
		// If required and zero, skip other validations
		return errs
	}

	// Skip other validations if value is zero (for non-required fields)
	if isZeroValue(fv) {
		return errs
	}

	switch fv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		errs = append(errs, validateIntMinMax(fv, fieldPath, tags)...)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		errs = append(errs, validateUintMinMax(fv, fieldPath, tags)...)
	case reflect.Float32, reflect.Float64:
		errs = append(errs, validateFloatMinMax(fv, fieldPath, tags)...)
	case reflect.String:
		errs = append(errs, validateStringMinMax(fv, fieldPath, tags)...)
	}

	if len(tags.oneof) > 0 {
		errs = append(errs, validateOneof(fv, fieldPath, tags)...)
	}

	return errs
}

// isZeroValue checks if a reflect.Value is the zero value for its type.
func isZeroValue(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Array, reflect.Map, reflect.Slice, reflect.String:
		return v.Len() == 0
	case reflect.Bool:
		return !v.Bool()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return v.Int() == 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return v.Uint() == 0
	case reflect.Float32, reflect.Float64:
		return v.Float() == 0
	case reflect.Interface, reflect.Ptr:
		return v.IsNil()
	default:
		return v.IsZero()
	}
}

// validateIntMinMax validates min/max constraints for signed integer types.
func validateIntMinMax(fv reflect.Value, fieldPath string, tags tagConfig) []FieldError {
	var errs []FieldError
	value := fv.Int()

	if tags.min != "" {
		if minVal, err := strconv.ParseInt(tags.min, 10, 64); err == nil && value < minVal {
			errs = append(errs, FieldError{
				FieldPath: fieldPath,
				Code:      ErrCodeMin,
				Message:   fmt.Sprintf("value %d is below minimum %d", value, minVal),
			})
		}
	}
	if tags.max != "" {
		if maxVal, err := strconv.ParseInt(tags.max, 10, 64); err == nil && value > maxVal {
			errs = append(errs, FieldError{
				FieldPath: fieldPath,
				Code:      ErrCodeMax,
				Message:   fmt.Sprintf("value %d exceeds maximum %d", value, maxVal),
			})
		}
	}
	return errs
}

// validateUintMinMax validates min/max constraints for unsigned integer types.
func validateUintMinMax(fv reflect.Value, fieldPath string, tags tagConfig) []FieldError {
	var errs []FieldError
	value := fv.Uint()

	if tags.min != "" {
		if minVal, err := strconv.ParseUint(tags.min, 10, 64); err == nil && value < minVal {
			errs = append(errs, FieldError{
				FieldPath: fieldPath,
				Code:      ErrCodeMin,
				Message:   fmt.Sprintf("value %d is below minimum %d", value, minVal),
			})
		}
	}
	if tags.max != "" {
		if maxVal, err := strconv.ParseUint(tags.max, 10, 64); err == nil && value > maxVal {
			errs = append(errs, FieldError{
				FieldPath: fieldPath,
				Code:      ErrCodeMax,
				Message:   fmt.Sprintf("value %d exceeds maximum %d", value, maxVal),
			})
		}
	}
	return errs
}

// validateFloatMinMax validates min/max constraints for floating-point types.
func validateFloatMinMax(fv reflect.Value, fieldPath string, tags tagConfig) []FieldError {
	var errs []FieldError
	value := fv.Float()

	if tags.min != "" {
		if minVal, err := strconv.ParseFloat(tags.min, 64); err == nil && value < minVal {
			errs = append(errs, FieldError{
				FieldPath: fieldPath,
				Code:      ErrCodeMin,
				Message:   fmt.Sprintf("value %g is below minimum %g", value, minVal),
			})
		}
	}
	if tags.max != "" {
		if maxVal, err := strconv.ParseFloat(tags.max, 64); err == nil && value > maxVal {
			errs = append(errs, FieldError{
				FieldPath: fieldPath,
				Code:      ErrCodeMax,
				Message:   fmt.Sprintf("value %g exceeds maximum %g", value, maxVal),
			})
		}
	}
	return errs
}

// validateStringMinMax validates min/max constraints for string length.
func validateStringMinMax(fv reflect.Value, fieldPath string, tags tagConfig) []FieldError {
	var errs []FieldError
	length := len(fv.String())

	if tags.min != "" {
		if minLen, err := strconv.Atoi(tags.min); err == nil && length < minLen {
			errs = append(errs, FieldError{
				FieldPath: fieldPath,
				Code:      ErrCodeMin,
				Message:   fmt.Sprintf("string length %d is below minimum %d", length, minLen),
			})
		}
	}
	if tags.max != "" {
		if maxLen, err := strconv.Atoi(tags.max); err == nil && length > maxLen {
			errs = append(errs, FieldError{
				FieldPath: fieldPath,
				Code:      ErrCodeMax,
				Message:   fmt.Sprintf("string length %d exceeds maximum %d", length, maxLen),
			})
		}
	}
	return errs
}

// validateOneof validates that a field value is one of the allowed options.
func validateOneof(fv reflect.Value, fieldPath string, tags tagConfig) []FieldError {
	var valueStr string
	switch fv.Kind() {
	case reflect.String:
		valueStr = fv.String()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		valueStr = strconv.FormatInt(fv.Int(), 10)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		valueStr = strconv.FormatUint(fv.Uint(), 10)
	case reflect.Float32, reflect.Float64:
		valueStr = strconv.FormatFloat(fv.Float(), 'f', -1, 64)
	case reflect.Bool:
		valueStr = strconv.FormatBool(fv.Bool())
	default:
		// For unsupported types, skip oneof validation
		return nil
	}

	for _, allowed := range tags.oneof {
		if valueStr == allowed {
			return nil
		}
	}

	return []FieldError{{
		FieldPath: fieldPath,
		Code:      ErrCodeOneOf,
		Message:   fmt.Sprintf("value %q must be one of: %s", valueStr, strings.Join(tags.oneof, ", ")),
	}}
}
