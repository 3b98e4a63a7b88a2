package graphql

import (
	"strings"

	"github.com/vektah/gqlparser/v2/ast"
)

// SchemaIntrospectionValue builds the root value for a __schema field: a
// plain map keyed the way the default field resolver already knows how to
// walk, so introspection needs no resolver type of its own. LexicographicSortSchema
// is expected to have already run once against schema, at schema-build time
// (cmd/graphqlcore-server and execute_test.go's schema setup run it right
// after RegisterIncrementalDirectives), so the field,
// argument, directive, interface and enum-value lists nested inside each
// *ast.Definition are already in order; sortedTypeNames/sortedDirectiveNames
// below cover the one thing that call doesn't fix, which is that
// schema.Types/.Directives are themselves Go maps with no iteration order of
// their own.
func SchemaIntrospectionValue(schema *ast.Schema) map[string]interface{} {
	types := make([]interface{}, 0, len(schema.Types))
	for _, name := range sortedTypeNames(schema) {
		types = append(types, namedTypeIntrospectionValue(schema, schema.Types[name]))
	}

	directives := make([]interface{}, 0, len(schema.Directives))
	for _, name := range sortedDirectiveNames(schema) {
		directives = append(directives, directiveIntrospectionValue(schema, schema.Directives[name]))
	}

	out := map[string]interface{}{
		"description": nil,
		"types":       types,
		"directives":  directives,
	}
	if schema.Query != nil {
		out["queryType"] = namedTypeIntrospectionValue(schema, schema.Query)
	}
	if schema.Mutation != nil {
		out["mutationType"] = namedTypeIntrospectionValue(schema, schema.Mutation)
	}
	if schema.Subscription != nil {
		out["subscriptionType"] = namedTypeIntrospectionValue(schema, schema.Subscription)
	}
	return out
}

// TypeIntrospectionValue builds the response for a __type(name:) field,
// returning nil (so the field completes to null) when no type of that name
// exists in the schema.
func TypeIntrospectionValue(schema *ast.Schema, name string) map[string]interface{} {
	def, ok := schema.Types[name]
	if !ok {
		return nil
	}
	return namedTypeIntrospectionValue(schema, def)
}

func sortedTypeNames(schema *ast.Schema) []string {
	names := make([]string, 0, len(schema.Types))
	for name := range schema.Types {
		names = append(names, name)
	}
	sortStrings(names)
	return names
}

func sortedDirectiveNames(schema *ast.Schema) []string {
	names := make([]string, 0, len(schema.Directives))
	for name := range schema.Directives {
		names = append(names, name)
	}
	sortStrings(names)
	return names
}

func sortStrings(s []string) {
	for i := 1; i < len(s); i++ {
		for j := i; j > 0 && s[j-1] > s[j]; j-- {
			s[j-1], s[j] = s[j], s[j-1]
		}
	}
}

// wrappedTypeIntrospectionValue renders an *ast.Type (which may carry
// NonNull/list wrapping) as the __Type shape, peeling one wrapper per
// recursive call into "ofType" the way the introspection schema expects.
func wrappedTypeIntrospectionValue(schema *ast.Schema, t *ast.Type) map[string]interface{} {
	if t.NonNull {
		inner := *t
		inner.NonNull = false
		return map[string]interface{}{
			"kind":   "NON_NULL",
			"name":   nil,
			"ofType": wrappedTypeIntrospectionValue(schema, &inner),
		}
	}
	if t.Elem != nil {
		return map[string]interface{}{
			"kind":   "LIST",
			"name":   nil,
			"ofType": wrappedTypeIntrospectionValue(schema, t.Elem),
		}
	}
	return namedTypeIntrospectionValue(schema, schema.Types[t.NamedType])
}

func namedTypeIntrospectionValue(schema *ast.Schema, def *ast.Definition) map[string]interface{} {
	if def == nil {
		return nil
	}

	out := map[string]interface{}{
		"kind":           typeKindOf(def),
		"name":           def.Name,
		"description":    def.Description,
		"specifiedByURL": nil,
	}

	switch def.Kind {
	case ast.Object, ast.Interface:
		fields := make([]interface{}, 0, len(def.Fields))
		for _, f := range def.Fields {
			if strings.HasPrefix(f.Name, "__") {
				continue
			}
			fields = append(fields, fieldIntrospectionValue(schema, f))
		}
		out["fields"] = fields

		interfaces := make([]interface{}, 0, len(def.Interfaces))
		for _, name := range def.Interfaces {
			interfaces = append(interfaces, namedTypeIntrospectionValue(schema, schema.Types[name]))
		}
		out["interfaces"] = interfaces

		if def.Kind == ast.Interface {
			out["possibleTypes"] = possibleTypesIntrospectionValue(schema, def)
		}

	case ast.Union:
		out["possibleTypes"] = possibleTypesIntrospectionValue(schema, def)

	case ast.Enum:
		values := make([]interface{}, 0, len(def.EnumValues))
		for _, v := range def.EnumValues {
			values = append(values, enumValueIntrospectionValue(v))
		}
		out["enumValues"] = values

	case ast.InputObject:
		fields := make([]interface{}, 0, len(def.Fields))
		for _, f := range def.Fields {
			fields = append(fields, map[string]interface{}{
				"name":              f.Name,
				"description":       f.Description,
				"type":              wrappedTypeIntrospectionValue(schema, f.Type),
				"defaultValue":      defaultValueString(f.DefaultValue),
				"isDeprecated":      false,
				"deprecationReason": nil,
			})
		}
		out["inputFields"] = fields
	}

	return out
}

func possibleTypesIntrospectionValue(schema *ast.Schema, def *ast.Definition) []interface{} {
	possible := schema.PossibleTypes[def.Name]
	out := make([]interface{}, 0, len(possible))
	for _, p := range possible {
		out = append(out, namedTypeIntrospectionValue(schema, p))
	}
	return out
}

func fieldIntrospectionValue(schema *ast.Schema, f *ast.FieldDefinition) map[string]interface{} {
	args := make([]interface{}, 0, len(f.Arguments))
	for _, a := range f.Arguments {
		args = append(args, inputValueIntrospectionValue(schema, a))
	}

	isDeprecated, reason := deprecation(f.Directives)

	return map[string]interface{}{
		"name":              f.Name,
		"description":       f.Description,
		"args":              args,
		"type":              wrappedTypeIntrospectionValue(schema, f.Type),
		"isDeprecated":      isDeprecated,
		"deprecationReason": reason,
	}
}

func inputValueIntrospectionValue(schema *ast.Schema, a *ast.ArgumentDefinition) map[string]interface{} {
	return map[string]interface{}{
		"name":              a.Name,
		"description":       a.Description,
		"type":              wrappedTypeIntrospectionValue(schema, a.Type),
		"defaultValue":      defaultValueString(a.DefaultValue),
		"isDeprecated":      false,
		"deprecationReason": nil,
	}
}

func enumValueIntrospectionValue(v *ast.EnumValueDefinition) map[string]interface{} {
	isDeprecated, reason := deprecation(v.Directives)
	return map[string]interface{}{
		"name":              v.Name,
		"description":       v.Description,
		"isDeprecated":      isDeprecated,
		"deprecationReason": reason,
	}
}

func directiveIntrospectionValue(schema *ast.Schema, d *ast.DirectiveDefinition) map[string]interface{} {
	args := make([]interface{}, 0, len(d.Arguments))
	for _, a := range d.Arguments {
		args = append(args, inputValueIntrospectionValue(schema, a))
	}
	locations := make([]interface{}, 0, len(d.Locations))
	for _, l := range d.Locations {
		locations = append(locations, string(l))
	}
	return map[string]interface{}{
		"name":         d.Name,
		"description":  d.Description,
		"isRepeatable": d.IsRepeatable,
		"locations":    locations,
		"args":         args,
	}
}

func deprecation(directives ast.DirectiveList) (bool, interface{}) {
	d := directives.ForName(GraphQLDeprecatedDirective.Name)
	if d == nil {
		return false, nil
	}
	reason := "No longer supported"
	if arg := d.Arguments.ForName("reason"); arg != nil && arg.Value != nil {
		if v, err := arg.Value.Value(nil); err == nil {
			if s, ok := v.(string); ok {
				reason = s
			}
		}
	}
	return true, reason
}

func defaultValueString(v *ast.Value) interface{} {
	if v == nil {
		return nil
	}
	return v.Raw
}

func typeKindOf(def *ast.Definition) string {
	switch def.Kind {
	case ast.Scalar:
		return "SCALAR"
	case ast.Object:
		return "OBJECT"
	case ast.Interface:
		return "INTERFACE"
	case ast.Union:
		return "UNION"
	case ast.Enum:
		return "ENUM"
	case ast.InputObject:
		return "INPUT_OBJECT"
	default:
		return "OBJECT"
	}
}
