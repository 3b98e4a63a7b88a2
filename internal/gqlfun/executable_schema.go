// Package gqlfun adapts this module's own execution engine to the wire
// shape a transport layer expects: gqlgen's graphql.Response, the same
// struct gqlgen's own generated servers return, reused here purely as a
// response envelope so that a handler speaking the GraphQL-over-HTTP
// convention (any caller already wired to gqlgen's transports) doesn't need
// a second response type. cmd/graphqlcore-server does not use this package;
// it calls execute.Execute directly.
package gqlfun

import (
	"context"
	"encoding/json"

	"github.com/99designs/gqlgen/graphql"
	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/gqlerror"
	"github.com/vektah/gqlparser/v2/parser"
	"github.com/vektah/gqlparser/v2/validator"

	"github.com/kadenrun/gqlengine/internal/execute"
)

// Params is one request's worth of GraphQL-over-HTTP input, independent of
// how the transport deserialized it off the wire.
type Params struct {
	Query         string
	OperationName string
	Variables     map[string]interface{}
}

var nullData = json.RawMessage("null")

// Execute parses and validates params.Query against schema, then drains
// the operation (including any @defer/@stream payloads) into a single
// gqlgen graphql.Response. Callers that want true incremental delivery
// should use execute.Execute directly instead; Execute exists for
// transports that only understand one JSON object per request, the way
// gqlgen's own POST transport does.
func Execute(ctx context.Context, schema *ast.Schema, rootValue interface{}, contextValue interface{}, params Params) *graphql.Response {
	document, gErr := parser.ParseQuery(&ast.Source{
		Name:  "query",
		Input: params.Query,
	})
	if gErr != nil {
		return &graphql.Response{Errors: gqlerror.List{gqlerror.Wrap(gErr)}, Data: nullData}
	}

	if gErrs := validator.Validate(schema, document); len(gErrs) != 0 {
		return &graphql.Response{Errors: gErrs, Data: nullData}
	}

	result, err := execute.ExecuteSync(ctx, &execute.ExecutionArgs{
		Schema:         schema,
		Document:       document,
		RootValue:      rootValue,
		ContextValue:   contextValue,
		VariableValues: params.Variables,
		OperationName:  params.OperationName,
	})
	if err != nil {
		return &graphql.Response{Errors: gqlerror.List{gqlerror.Errorf("%v", err)}, Data: nullData}
	}

	dataBytes := nullData
	if result.Data != nil {
		if b, mErr := result.Data.MarshalJSON(); mErr == nil {
			dataBytes = b
		}
	}

	return &graphql.Response{
		Data:   dataBytes,
		Errors: result.Errors,
	}
}
