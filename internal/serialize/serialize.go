// Package serialize converts resource structs to CloudFormation property maps.
package serialize

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strings"
)

// Properties serializes a resource struct to its CloudFormation Properties
// map. Field names come from the json tag, zero values are omitted, and any
// json.Marshaler (intrinsics, AttrRef) is honored as-is.
func Properties(v any) (map[string]any, error) {
	val := reflect.ValueOf(v)
	if val.Kind() == reflect.Ptr {
		if val.IsNil() {
			return nil, nil
		}
		val = val.Elem()
	}

	if val.Kind() != reflect.Struct {
		return nil, fmt.Errorf("expected struct, got %s", val.Kind())
	}

	result := make(map[string]any)
	typ := val.Type()

	for i := 0; i < val.NumField(); i++ {
		field := typ.Field(i)
		fieldVal := val.Field(i)

		if !field.IsExported() {
			continue
		}

		name, omitEmpty := fieldName(field)
		if name == "-" {
			continue
		}

		if omitEmpty && isZeroValue(fieldVal) {
			continue
		}

		serialized, err := Value(fieldVal.Interface())
		if err != nil {
			return nil, fmt.Errorf("field %s: %w", name, err)
		}

		if serialized != nil || !omitEmpty {
			result[name] = serialized
		}
	}

	return result, nil
}

// fieldName returns the property name and omitempty flag for a struct field.
func fieldName(field reflect.StructField) (string, bool) {
	tag := field.Tag.Get("json")
	if tag == "" {
		return field.Name, true
	}

	parts := strings.Split(tag, ",")
	name := parts[0]
	if name == "" {
		name = field.Name
	}

	omitEmpty := true
	if len(parts) > 1 {
		omitEmpty = false
		for _, opt := range parts[1:] {
			if opt == "omitempty" {
				omitEmpty = true
			}
		}
	}
	return name, omitEmpty
}

// isZeroValue reports whether v would be omitted under omitempty. Structs
// with an IsZero method get asked; other structs are never zero.
func isZeroValue(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Ptr, reflect.Interface:
		return v.IsNil()
	case reflect.Slice, reflect.Map:
		return v.IsNil() || v.Len() == 0
	case reflect.String:
		return v.String() == ""
	case reflect.Bool:
		return !v.Bool()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return v.Int() == 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return v.Uint() == 0
	case reflect.Float32, reflect.Float64:
		return v.Float() == 0
	case reflect.Struct:
		if v.CanInterface() {
			if zeroer, ok := v.Interface().(interface{ IsZero() bool }); ok {
				return zeroer.IsZero()
			}
		}
		return false
	default:
		return false
	}
}

// Value converts any Go value to a JSON-compatible representation.
func Value(v any) (any, error) {
	if v == nil {
		return nil, nil
	}

	if marshaler, ok := v.(json.Marshaler); ok {
		data, err := marshaler.MarshalJSON()
		if err != nil {
			return nil, err
		}
		var result any
		if err := json.Unmarshal(data, &result); err != nil {
			return nil, err
		}
		return result, nil
	}

	val := reflect.ValueOf(v)

	switch val.Kind() {
	case reflect.Ptr, reflect.Interface:
		if val.IsNil() {
			return nil, nil
		}
		return Value(val.Elem().Interface())

	case reflect.Struct:
		return Properties(v)

	case reflect.Slice, reflect.Array:
		if val.Len() == 0 {
			return nil, nil
		}
		result := make([]any, val.Len())
		for i := 0; i < val.Len(); i++ {
			elem, err := Value(val.Index(i).Interface())
			if err != nil {
				return nil, err
			}
			result[i] = elem
		}
		return result, nil

	case reflect.Map:
		if val.Len() == 0 {
			return nil, nil
		}
		result := make(map[string]any)
		iter := val.MapRange()
		for iter.Next() {
			elem, err := Value(iter.Value().Interface())
			if err != nil {
				return nil, err
			}
			result[iter.Key().String()] = elem
		}
		return result, nil

	case reflect.String:
		return val.String(), nil

	case reflect.Bool:
		return val.Bool(), nil

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return val.Int(), nil

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return val.Uint(), nil

	case reflect.Float32, reflect.Float64:
		return val.Float(), nil

	default:
		data, err := json.Marshal(v)
		if err != nil {
			return nil, err
		}
		var result any
		if err := json.Unmarshal(data, &result); err != nil {
			return nil, err
		}
		return result, nil
	}
}
