package execute

import (
	"github.com/kadenrun/gqlengine/internal/utils"
	"github.com/vektah/gqlparser/v2/ast"
)

// GroupedFieldSet is an ordered mapping from response name to the list of
// field-selection nodes that share it, in first-appearance order after
// fragment flattening. A bare Go map does not preserve insertion order, so
// the names are tracked alongside it, in the manner of a hand-rolled
// ordered-map Fields type.
type GroupedFieldSet struct {
	names    []string
	fieldMap map[string][]*ast.Field
}

func newGroupedFieldSet() *GroupedFieldSet {
	return &GroupedFieldSet{fieldMap: make(map[string][]*ast.Field)}
}

// ResponseNames returns the response names in first-appearance order.
func (g *GroupedFieldSet) ResponseNames() []string {
	return g.names
}

// Get returns the field nodes collected under a response name.
func (g *GroupedFieldSet) Get(responseName string) []*ast.Field {
	return g.fieldMap[responseName]
}

// Len reports how many distinct response names were collected.
func (g *GroupedFieldSet) Len() int {
	return len(g.names)
}

func (g *GroupedFieldSet) add(responseName string, field *ast.Field) {
	if _, ok := g.fieldMap[responseName]; !ok {
		g.names = append(g.names, responseName)
	}
	g.fieldMap[responseName] = append(g.fieldMap[responseName], field)
}

// DeferredFragment carries the fields of a selection set that appeared
// under an active @defer directive, together with any further @defer
// fragments nested inside it (which become their own chained payload once
// this one is registered with the incremental-delivery component).
type DeferredFragment struct {
	Label  string
	Fields *GroupedFieldSet
	Nested []*DeferredFragment
}

// CollectFields flattens selectionSet under the concrete object type typ
// into a GroupedFieldSet, extracting any @defer'd fragments into separate
// DeferredFragment records rather than merging them into the returned set.
func CollectFields(execCtx *ExecutionContext, typ *ast.Definition, selectionSet ast.SelectionSet) (*GroupedFieldSet, []*DeferredFragment) {
	fields := newGroupedFieldSet()
	var deferred []*DeferredFragment
	visited := make(map[string]bool)
	collectFieldsImpl(execCtx, typ, selectionSet, fields, &deferred, visited)
	return fields, deferred
}

func collectFieldsImpl(execCtx *ExecutionContext, typ *ast.Definition, selectionSet ast.SelectionSet, fields *GroupedFieldSet, deferred *[]*DeferredFragment, visited map[string]bool) {
	for _, selection := range selectionSet {
		switch sel := selection.(type) {
		case *ast.Field:
			if !shouldIncludeNode(execCtx.VariableValues, sel.Directives) {
				continue
			}
			fields.add(responseName(sel), sel)

		case *ast.InlineFragment:
			if !shouldIncludeNode(execCtx.VariableValues, sel.Directives) {
				continue
			}
			if !doesFragmentConditionMatch(execCtx.Schema, sel.TypeCondition, typ) {
				continue
			}
			if isDeferred, label, ok := extractDeferDirective(sel.Directives, execCtx.VariableValues); ok && isDeferred {
				nestedFields, nestedDeferred := CollectFields(execCtx, typ, sel.SelectionSet)
				*deferred = append(*deferred, &DeferredFragment{Label: label, Fields: nestedFields, Nested: nestedDeferred})
				continue
			}
			collectFieldsImpl(execCtx, typ, sel.SelectionSet, fields, deferred, visited)

		case *ast.FragmentSpread:
			name := sel.Name
			if visited[name] {
				continue
			}
			if !shouldIncludeNode(execCtx.VariableValues, sel.Directives) {
				continue
			}
			visited[name] = true

			fragment := execCtx.Fragments.ForName(name)
			if fragment == nil {
				continue
			}
			if !doesFragmentConditionMatch(execCtx.Schema, fragment.TypeCondition, typ) {
				continue
			}
			if isDeferred, label, ok := extractDeferDirective(sel.Directives, execCtx.VariableValues); ok && isDeferred {
				nestedFields, nestedDeferred := CollectFields(execCtx, typ, fragment.SelectionSet)
				*deferred = append(*deferred, &DeferredFragment{Label: label, Fields: nestedFields, Nested: nestedDeferred})
				continue
			}
			collectFieldsImpl(execCtx, typ, fragment.SelectionSet, fields, deferred, visited)
		}
	}
}

// shouldIncludeNode determines if a selection should be included based on
// the @skip and @include directives, where @skip has higher precedence.
func shouldIncludeNode(variableValues map[string]interface{}, directives ast.DirectiveList) bool {
	if skip := directives.ForName("skip"); skip != nil {
		if v, ok := skip.ArgumentMap(variableValues)["if"].(bool); ok && v {
			return false
		}
	}
	if include := directives.ForName("include"); include != nil {
		if v, ok := include.ArgumentMap(variableValues)["if"].(bool); ok && !v {
			return false
		}
	}
	return true
}

// extractDeferDirective reports whether @defer is present and active
// (if: true, the default), along with its optional label.
func extractDeferDirective(directives ast.DirectiveList, variableValues map[string]interface{}) (isDeferred bool, label string, ok bool) {
	d := directives.ForName("defer")
	if d == nil {
		return false, "", false
	}
	args := d.ArgumentMap(variableValues)
	if v, present := args["if"].(bool); present && !v {
		return false, "", true
	}
	if v, present := args["label"].(string); present {
		label = v
	}
	return true, label, true
}

// doesFragmentConditionMatch determines if a fragment's type condition is
// satisfied by the given concrete object type.
func doesFragmentConditionMatch(schema *ast.Schema, typeConditionName string, typ *ast.Definition) bool {
	if typeConditionName == "" {
		return true
	}
	conditionalType := schema.Types[typeConditionName]
	if conditionalType == typ {
		return true
	}
	if utils.IsAbstractType(conditionalType) {
		return utils.IsTypeDefSubTypeOf(schema, typ, conditionalType)
	}
	return false
}

// responseName computes the key of a field's entry in the response.
func responseName(node *ast.Field) string {
	if node.Alias != "" {
		return node.Alias
	}
	return node.Name
}
