package utils

import (
	"reflect"

	"github.com/vektah/gqlparser/v2/ast"
)

func IsTypeDefSubTypeOf(schema *ast.Schema, maybeSubType, superType *ast.Definition) bool {
	// NOTE this implementation is alternative of IsTypeSubTypeOf.
	// but this is not exactly same as it.
	// *ast.Definition doesn't have nullable and list information. just type.

	// Equivalent type is a valid subtype
	if maybeSubType == superType {
		return true
	}

	// If superType type is an abstract type, check if it is super type of maybeSubType.
	// Otherwise, the child type is not a valid subtype of the parent type.
	if !IsAbstractType(superType) {
		return false
	}
	if maybeSubType.Kind != ast.Interface && maybeSubType.Kind != ast.Object {
		return false
	}
	for _, def := range schema.GetPossibleTypes(superType) {
		if def == maybeSubType {
			return true
		}
	}
	return false
}

func IsAbstractType(def *ast.Definition) bool {
	switch def.Kind {
	case ast.Interface, ast.Union:
		return true
	default:
		return false
	}
}

func IsLeafType(def *ast.Definition) bool {
	switch def.Kind {
	case ast.Scalar, ast.Enum:
		return true
	default:
		return false
	}
}

func IsObjectType(def *ast.Definition) bool {
	return def.Kind == ast.Object
}

// IsObjectLike reports whether v is a value the default field resolver may
// perform property access against: a string-keyed map, or a struct (incl.
// pointer to struct).
func IsObjectLike(v interface{}) bool {
	if v == nil {
		return false
	}
	if _, ok := v.(map[string]interface{}); ok {
		return true
	}
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Ptr {
		if rv.IsNil() {
			return false
		}
		rv = rv.Elem()
	}
	switch rv.Kind() {
	case reflect.Map, reflect.Struct:
		return true
	default:
		return false
	}
}

// IsSlice reports whether v is a non-map, non-string, indexable sequence —
// the Go stand-in for "synchronous iterable" in value completion.
func IsSlice(v interface{}) bool {
	if v == nil {
		return false
	}
	rv := reflect.ValueOf(v)
	return rv.Kind() == reflect.Slice || rv.Kind() == reflect.Array
}
