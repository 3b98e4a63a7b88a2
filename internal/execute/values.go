package execute

import (
	"fmt"
	"strconv"

	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/gqlerror"
)

// maxVariableCoercionErrors caps how many variable-coercion errors
// buildExecutionContext collects before giving up, so that a request with a
// large, entirely-wrong variables object cannot force an unbounded response
// body.
const maxVariableCoercionErrors = 50

// coerceVariableValues validates and coerces the raw request variables
// against the operation's variable definitions, filling in default values
// and rejecting missing non-null variables. Grounded on the same shape as
// argument coercion (coerceArgumentValues below); gqlparser's own
// validator.VariableValues does the equivalent work during query
// validation but does not expose an error cap, which the 50-error ceiling
// here requires.
func coerceVariableValues(schema *ast.Schema, operation *ast.OperationDefinition, rawVariableValues map[string]interface{}) (map[string]interface{}, gqlerror.List) {
	if rawVariableValues == nil {
		rawVariableValues = map[string]interface{}{}
	}
	coerced := make(map[string]interface{}, len(operation.VariableDefinitions))
	var errs gqlerror.List

	for _, varDef := range operation.VariableDefinitions {
		name := varDef.Variable
		varType := varDef.Type
		typeName := varType.Name()

		varTypeDef, ok := schema.Types[typeName]
		if !ok {
			errs = append(errs, gqlerror.Errorf(`unknown type "%s" for variable "$%s"`, typeName, name))
			if len(errs) >= maxVariableCoercionErrors {
				return nil, errs
			}
			continue
		}

		hasValue := false
		var raw interface{}
		if v, present := rawVariableValues[name]; present {
			raw = v
			hasValue = true
		}

		if !hasValue {
			if varDef.DefaultValue != nil {
				dv, err := varDef.DefaultValue.Value(nil)
				if err != nil {
					errs = append(errs, gqlerror.Errorf(`variable "$%s" has an invalid default value: %v`, name, err))
					if len(errs) >= maxVariableCoercionErrors {
						return nil, errs
					}
					continue
				}
				coerced[name] = dv
			} else if varType.NonNull {
				errs = append(errs, gqlerror.Errorf(`variable "$%s" of required type "%s" was not provided`, name, varType.String()))
				if len(errs) >= maxVariableCoercionErrors {
					return nil, errs
				}
			}
			continue
		}

		if raw == nil {
			if varType.NonNull {
				errs = append(errs, gqlerror.Errorf(`variable "$%s" of non-null type "%s" must not be null`, name, varType.String()))
				if len(errs) >= maxVariableCoercionErrors {
					return nil, errs
				}
				continue
			}
			coerced[name] = nil
			continue
		}

		cv, err := coerceValue(schema, raw, varType, varTypeDef)
		if err != nil {
			errs = append(errs, gqlerror.Errorf(`variable "$%s" got invalid value: %v`, name, err))
			if len(errs) >= maxVariableCoercionErrors {
				return nil, errs
			}
			continue
		}
		coerced[name] = cv
	}

	return coerced, errs
}

// coerceArgumentValues resolves the argument values for a single field
// selection against its field definition, substituting variables and
// applying argument default values. Errors are appended to execCtx's
// error log (a deferred or streamed payload's own log when execCtx is a
// fork) at path rather than aborting the whole operation,
// matching how a field-level error is handled everywhere else in the
// driver.
func coerceArgumentValues(execCtx *ExecutionContext, fieldDef *ast.FieldDefinition, fieldNode *ast.Field, path *Path) map[string]interface{} {
	coercedValues := make(map[string]interface{}, len(fieldDef.Arguments))

	for _, argDef := range fieldDef.Arguments {
		argType := argDef.Type
		typeName := argType.Name()
		argTypeDef := execCtx.Schema.Types[typeName]

		argNode := fieldNode.Arguments.ForName(argDef.Name)

		if argNode == nil {
			if argDef.DefaultValue != nil {
				dv, err := argDef.DefaultValue.Value(execCtx.VariableValues)
				if err == nil {
					coercedValues[argDef.Name] = dv
				}
			} else if argType.NonNull {
				execCtx.AppendError(gqlerror.ErrorPathf(path.AstPath(), `argument "%s" of required type "%s" was not provided`, argDef.Name, argType.String()))
			}
			continue
		}

		raw, err := argNode.Value.Value(execCtx.VariableValues)
		if err != nil {
			execCtx.AppendError(gqlerror.ErrorPathf(path.AstPath(), `argument "%s" has an invalid value: %v`, argDef.Name, err))
			continue
		}

		if raw == nil {
			if argDef.DefaultValue != nil {
				dv, dErr := argDef.DefaultValue.Value(execCtx.VariableValues)
				if dErr == nil {
					coercedValues[argDef.Name] = dv
					continue
				}
			}
			if argType.NonNull {
				execCtx.AppendError(gqlerror.ErrorPathf(path.AstPath(), `argument "%s" of non-null type "%s" must not be null`, argDef.Name, argType.String()))
				continue
			}
			coercedValues[argDef.Name] = nil
			continue
		}

		cv, cErr := coerceValue(execCtx.Schema, raw, argType, argTypeDef)
		if cErr != nil {
			execCtx.AppendError(gqlerror.ErrorPathf(path.AstPath(), `argument "%s" got invalid value: %v`, argDef.Name, cErr))
			continue
		}
		coercedValues[argDef.Name] = cv
	}

	return coercedValues
}

// coerceValue converts a raw Go value (already produced by an ast.Value's
// own Value(vars) evaluation, so variables are already substituted) into
// the shape a resolver should see for typ: nested lists become []interface{},
// input objects become map[string]interface{} with their own defaults
// applied, and leaf values are coerced with the same per-scalar rules the
// default field resolver's output serialization uses in reverse.
func coerceValue(schema *ast.Schema, value interface{}, typ *ast.Type, typeDef *ast.Definition) (interface{}, error) {
	if typ.NonNull {
		if value == nil {
			return nil, fmt.Errorf("must not be null")
		}
	}
	if value == nil {
		return nil, nil
	}

	if typ.Elem != nil {
		return coerceListValue(schema, value, typ.Elem)
	}

	if typeDef == nil {
		return value, nil
	}

	switch typeDef.Kind {
	case ast.Scalar:
		return coerceScalarValue(typeDef.Name, value)
	case ast.Enum:
		return coerceEnumValue(typeDef, value)
	case ast.InputObject:
		return coerceInputObjectValue(schema, typeDef, value)
	default:
		return nil, fmt.Errorf(`type "%s" is not an input type`, typeDef.Name)
	}
}

func coerceListValue(schema *ast.Schema, value interface{}, elemType *ast.Type) (interface{}, error) {
	elemTypeDef := schema.Types[elemType.Name()]

	if list, ok := value.([]interface{}); ok {
		out := make([]interface{}, len(list))
		for i, item := range list {
			cv, err := coerceValue(schema, item, elemType, elemTypeDef)
			if err != nil {
				return nil, fmt.Errorf("in element %d: %w", i, err)
			}
			out[i] = cv
		}
		return out, nil
	}

	// A bare value for a list type is coerced as a list of one, per the
	// GraphQL input coercion rules.
	cv, err := coerceValue(schema, value, elemType, elemTypeDef)
	if err != nil {
		return nil, err
	}
	return []interface{}{cv}, nil
}

func coerceInputObjectValue(schema *ast.Schema, typeDef *ast.Definition, value interface{}) (interface{}, error) {
	obj, ok := value.(map[string]interface{})
	if !ok {
		return nil, fmt.Errorf(`must be an object for input type "%s"`, typeDef.Name)
	}

	out := make(map[string]interface{}, len(typeDef.Fields))
	for _, fieldDef := range typeDef.Fields {
		fieldTypeDef := schema.Types[fieldDef.Type.Name()]
		raw, present := obj[fieldDef.Name]

		if !present || raw == nil {
			if present && raw == nil {
				if fieldDef.Type.NonNull {
					return nil, fmt.Errorf(`field "%s" of non-null type "%s" must not be null`, fieldDef.Name, fieldDef.Type.String())
				}
				out[fieldDef.Name] = nil
				continue
			}
			if fieldDef.DefaultValue != nil {
				dv, err := fieldDef.DefaultValue.Value(nil)
				if err != nil {
					return nil, fmt.Errorf(`field "%s" has an invalid default value: %w`, fieldDef.Name, err)
				}
				out[fieldDef.Name] = dv
				continue
			}
			if fieldDef.Type.NonNull {
				return nil, fmt.Errorf(`field "%s" of required type "%s" was not provided`, fieldDef.Name, fieldDef.Type.String())
			}
			continue
		}

		cv, err := coerceValue(schema, raw, fieldDef.Type, fieldTypeDef)
		if err != nil {
			return nil, fmt.Errorf(`in field "%s": %w`, fieldDef.Name, err)
		}
		out[fieldDef.Name] = cv
	}
	return out, nil
}

func coerceEnumValue(typeDef *ast.Definition, value interface{}) (interface{}, error) {
	name, ok := value.(string)
	if !ok {
		return nil, fmt.Errorf(`enum "%s" value must be a name, got %T`, typeDef.Name, value)
	}
	for _, v := range typeDef.EnumValues {
		if v.Name == name {
			return name, nil
		}
	}
	return nil, fmt.Errorf(`value "%s" is not a valid value for enum "%s"`, name, typeDef.Name)
}

func coerceScalarValue(typeName string, value interface{}) (interface{}, error) {
	switch typeName {
	case "Int":
		return coerceToInt(value)
	case "Float":
		return coerceToFloat(value)
	case "String":
		return coerceToString(value)
	case "Boolean":
		return coerceToBoolean(value)
	case "ID":
		return coerceToID(value)
	default:
		// Custom scalars pass through untouched; a schema wiring its own
		// scalar package is expected to re-coerce inside its resolvers.
		return value, nil
	}
}

func coerceToInt(value interface{}) (interface{}, error) {
	switch v := value.(type) {
	case int:
		return v, nil
	case int32:
		return int(v), nil
	case int64:
		return int(v), nil
	case float64:
		if v != float64(int(v)) {
			return nil, fmt.Errorf("Int cannot represent non-integer value: %v", v)
		}
		return int(v), nil
	}
	return nil, fmt.Errorf("Int cannot represent value: %v (%T)", value, value)
}

func coerceToFloat(value interface{}) (interface{}, error) {
	switch v := value.(type) {
	case float64:
		return v, nil
	case float32:
		return float64(v), nil
	case int:
		return float64(v), nil
	case int32:
		return float64(v), nil
	case int64:
		return float64(v), nil
	}
	return nil, fmt.Errorf("Float cannot represent value: %v (%T)", value, value)
}

func coerceToString(value interface{}) (interface{}, error) {
	s, ok := value.(string)
	if !ok {
		return nil, fmt.Errorf("String cannot represent a non-string value: %v (%T)", value, value)
	}
	return s, nil
}

func coerceToBoolean(value interface{}) (interface{}, error) {
	b, ok := value.(bool)
	if !ok {
		return nil, fmt.Errorf("Boolean cannot represent a non-boolean value: %v (%T)", value, value)
	}
	return b, nil
}

func coerceToID(value interface{}) (interface{}, error) {
	switch v := value.(type) {
	case string:
		return v, nil
	case int:
		return strconv.Itoa(v), nil
	case int32:
		return strconv.FormatInt(int64(v), 10), nil
	case int64:
		return strconv.FormatInt(v, 10), nil
	case float64:
		return strconv.FormatInt(int64(v), 10), nil
	}
	return nil, fmt.Errorf("ID cannot represent value: %v (%T)", value, value)
}
