package execute

import "github.com/vektah/gqlparser/v2/ast"

// ResolveInfo is the immutable snapshot handed to every resolver and type
// resolver invocation. Resolvers must treat it as
// read-only; nothing in the driver re-reads a mutated copy.
type ResolveInfo struct {
	FieldName      string
	FieldNodes     []*ast.Field
	ReturnType     *ast.Type
	ParentType     *ast.Definition
	Path           *Path
	Schema         *ast.Schema
	Fragments      ast.FragmentDefinitionList
	RootValue      interface{}
	Operation      *ast.OperationDefinition
	VariableValues map[string]interface{}
}
