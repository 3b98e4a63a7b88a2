package execute

import (
	"context"
	"reflect"
	"strings"

	"github.com/kadenrun/gqlengine/internal/utils"
	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/gqlerror"
)

// findFieldDef resolves a field name against a parent type, handling the
// three reserved introspection meta-fields that exist on every type (or,
// for __schema/__type, only on the root query type) without a schema
// definition of their own.
func findFieldDef(schema *ast.Schema, parentType *ast.Definition, fieldName string) *ast.FieldDefinition {
	switch fieldName {
	case "__typename":
		return typenameMetaFieldDef
	case "__schema":
		if parentType == schema.Query {
			return schemaMetaFieldDef
		}
		return nil
	case "__type":
		if parentType == schema.Query {
			return typeMetaFieldDef
		}
		return nil
	}
	for _, f := range parentType.Fields {
		if f.Name == fieldName {
			return f
		}
	}
	return nil
}

var typenameMetaFieldDef = &ast.FieldDefinition{
	Name: "__typename",
	Type: ast.NonNullNamedType("String", nil),
}

var schemaMetaFieldDef = &ast.FieldDefinition{
	Name: "__schema",
	Type: ast.NonNullNamedType("__Schema", nil),
}

var typeMetaFieldDef = &ast.FieldDefinition{
	Name: "__type",
	Type: ast.NamedType("__Type", nil),
	Arguments: ast.ArgumentDefinitionList{
		{Name: "name", Type: ast.NonNullNamedType("String", nil)},
	},
}

// locatedError attaches the field's AST positions and response path to a
// resolver error, unless it is already a *gqlerror.Error carrying its own
// location (in which case it is passed through, matching how gqlerror
// itself treats errors that already know where they came from).
func locatedError(err error, fieldNodes []*ast.Field, path *Path) *gqlerror.Error {
	if gErr, ok := err.(*gqlerror.Error); ok && len(gErr.Locations) != 0 {
		return gErr
	}
	positions := make([]*ast.Position, 0, len(fieldNodes))
	for _, n := range fieldNodes {
		if n.Position != nil {
			positions = append(positions, n.Position)
		}
	}
	gErr := gqlerror.WrapPath(path.AstPath(), err)
	for _, pos := range positions {
		gErr.Locations = append(gErr.Locations, gqlerror.Location{Line: pos.Line, Column: pos.Column})
	}
	return gErr
}

// defaultTypeResolver implements the standard "runtime type" strategy: use
// an explicit __typename property on a map source value if present, or the
// name an object-like value's GraphQLTypeName() string method reports. There
// is no idiomatic Go analogue of graphql-js's isTypeOf-by-instanceof
// fallback, since Go values carry no equivalent runtime tag; a schema whose
// abstract types need anything beyond these two must supply its own
// TypeResolver.
func defaultTypeResolver(ctx context.Context, value interface{}, info *ResolveInfo, abstractType *ast.Definition) (string, error) {
	if m, ok := value.(map[string]interface{}); ok {
		if typename, ok := m["__typename"].(string); ok {
			return typename, nil
		}
	}
	if utils.IsObjectLike(value) {
		if named, ok := value.(interface{ GraphQLTypeName() string }); ok {
			return named.GraphQLTypeName(), nil
		}
	}
	return "", nil
}

// defaultFieldResolver implements the standard property-access strategy: a
// map keyed by field name, or an exported struct field of the same name
// (case-insensitively, matching Go's own JSON tag conventions), is returned
// as-is; a method named after the field with its first letter upper-cased
// is invoked in place of a property (see invokeResolverMethod).
func defaultFieldResolver(ctx context.Context, source interface{}, args map[string]interface{}, info *ResolveInfo) (interface{}, error) {
	if source == nil {
		return nil, nil
	}

	if m, ok := source.(map[string]interface{}); ok {
		v, ok := m[info.FieldName]
		if !ok {
			return nil, nil
		}
		if fn, ok := v.(func(context.Context, map[string]interface{}) (interface{}, error)); ok {
			return fn(ctx, args)
		}
		return v, nil
	}

	return resolveFromStruct(ctx, source, args, info.FieldName)
}

// resolveFromStruct implements the struct half of the default resolver: it
// looks for a zero-argument method first (so computed fields take
// precedence), then falls back to an exported field matched
// case-insensitively against the GraphQL field name.
func resolveFromStruct(ctx context.Context, source interface{}, args map[string]interface{}, fieldName string) (interface{}, error) {
	rv := reflect.ValueOf(source)
	for rv.Kind() == reflect.Ptr {
		if rv.IsNil() {
			return nil, nil
		}
		rv = rv.Elem()
	}

	methodName := strings.ToUpper(fieldName[:1]) + fieldName[1:]
	if m := reflect.ValueOf(source).MethodByName(methodName); m.IsValid() {
		return invokeResolverMethod(m, ctx, args)
	}

	if rv.Kind() != reflect.Struct {
		return nil, nil
	}
	for i := 0; i < rv.NumField(); i++ {
		field := rv.Type().Field(i)
		if !field.IsExported() {
			continue
		}
		if strings.EqualFold(field.Name, fieldName) {
			return rv.Field(i).Interface(), nil
		}
	}
	return nil, nil
}

// invokeResolverMethod supports the handful of resolver-method shapes seen
// in practice: func() T, func() (T, error), func(context.Context) T, and
// func(context.Context) (T, error). Anything else is not called and yields
// (nil, nil); resolveFromStruct does not go on to a struct field once a
// method of that name exists.
func invokeResolverMethod(m reflect.Value, ctx context.Context, args map[string]interface{}) (interface{}, error) {
	mt := m.Type()
	var in []reflect.Value
	switch mt.NumIn() {
	case 0:
		in = nil
	case 1:
		if mt.In(0) == reflect.TypeOf((*context.Context)(nil)).Elem() {
			in = []reflect.Value{reflect.ValueOf(ctx)}
		} else {
			return nil, nil
		}
	default:
		return nil, nil
	}

	out := m.Call(in)
	switch len(out) {
	case 1:
		return out[0].Interface(), nil
	case 2:
		var err error
		if e, ok := out[1].Interface().(error); ok {
			err = e
		}
		return out[0].Interface(), err
	default:
		return nil, nil
	}
}
