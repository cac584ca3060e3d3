package export

import (
	"fmt"
	"reflect"
	"sort"
	"strconv"
	"strings"
	"time"
)

// renderValue formats a value for flat text artifacts (dotenv, shell,
// Markdown): bools lowercase, slices comma-joined, maps as sorted k:v
// pairs, durations and times in their canonical string forms.
func renderValue(v reflect.Value) string {
	if !v.IsValid() {
		return ""
	}

	switch v.Kind() {
	case reflect.Ptr:
		if v.IsNil() {
			return ""
		}
		return renderValue(v.Elem())

	case reflect.String:
		return v.String()

	case reflect.Bool:
		return strconv.FormatBool(v.Bool())

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if v.Type().String() == "time.Duration" {
			return v.Interface().(time.Duration).String()
		}
		return strconv.FormatInt(v.Int(), 10)

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return strconv.FormatUint(v.Uint(), 10)

	case reflect.Float32, reflect.Float64:
		return fmt.Sprintf("%g", v.Float())

	case reflect.Slice, reflect.Array:
		parts := make([]string, v.Len())
		for i := 0; i < v.Len(); i++ {
			parts[i] = renderValue(v.Index(i))
		}
		return strings.Join(parts, ",")

	case reflect.Map:
		parts := make([]string, 0, v.Len())
		iter := v.MapRange()
		for iter.Next() {
			parts = append(parts, fmt.Sprintf("%v:%s", iter.Key().Interface(), renderValue(iter.Value())))
		}
		sort.Strings(parts)
		return strings.Join(parts, ",")

	case reflect.Struct:
		if v.Type().String() == "time.Time" {
			return v.Interface().(time.Time).Format(time.RFC3339)
		}
		return fmt.Sprintf("%v", v.Interface())

	default:
		return fmt.Sprintf("%v", v.Interface())
	}
}

// rawValue converts a value to a natural type for structured artifacts
// (JSON, YAML, TOML). Durations and times become strings.
func rawValue(v reflect.Value) any {
	if !v.IsValid() {
		return nil
	}

	switch v.Kind() {
	case reflect.Ptr:
		if v.IsNil() {
			return nil
		}
		return rawValue(v.Elem())

	case reflect.String:
		return v.String()

	case reflect.Bool:
		return v.Bool()

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if v.Type().String() == "time.Duration" {
			return v.Interface().(time.Duration).String()
		}
		return v.Int()

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return v.Uint()

	case reflect.Float32, reflect.Float64:
		return v.Float()

	case reflect.Slice, reflect.Array:
		out := make([]any, v.Len())
		for i := 0; i < v.Len(); i++ {
			out[i] = rawValue(v.Index(i))
		}
		return out

	case reflect.Map:
		out := make(map[string]any, v.Len())
		iter := v.MapRange()
		for iter.Next() {
			out[fmt.Sprintf("%v", iter.Key().Interface())] = rawValue(iter.Value())
		}
		return out

	case reflect.Struct:
		if v.Type().String() == "time.Time" {
			return v.Interface().(time.Time).Format(time.RFC3339)
		}
		return v.Interface()

	default:
		return v.Interface()
	}
}
