package utils

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vektah/gqlparser/v2/ast"
)

func TestIsAbstractType(t *testing.T) {
	require.True(t, IsAbstractType(&ast.Definition{Kind: ast.Interface}))
	require.True(t, IsAbstractType(&ast.Definition{Kind: ast.Union}))
	require.False(t, IsAbstractType(&ast.Definition{Kind: ast.Object}))
}

func TestIsLeafType(t *testing.T) {
	require.True(t, IsLeafType(&ast.Definition{Kind: ast.Scalar}))
	require.True(t, IsLeafType(&ast.Definition{Kind: ast.Enum}))
	require.False(t, IsLeafType(&ast.Definition{Kind: ast.Object}))
}

func TestIsTypeDefSubTypeOf_EquivalentType(t *testing.T) {
	obj := &ast.Definition{Kind: ast.Object, Name: "Book"}
	require.True(t, IsTypeDefSubTypeOf(&ast.Schema{}, obj, obj))
}

func TestIsTypeDefSubTypeOf_PossibleType(t *testing.T) {
	iface := &ast.Definition{Kind: ast.Interface, Name: "Node"}
	obj := &ast.Definition{Kind: ast.Object, Name: "Book"}
	schema := &ast.Schema{
		PossibleTypes: map[string][]*ast.Definition{"Node": {obj}},
	}
	require.True(t, IsTypeDefSubTypeOf(schema, obj, iface))
}

func TestIsTypeDefSubTypeOf_NotASubtype(t *testing.T) {
	iface := &ast.Definition{Kind: ast.Interface, Name: "Node"}
	other := &ast.Definition{Kind: ast.Object, Name: "Author"}
	schema := &ast.Schema{PossibleTypes: map[string][]*ast.Definition{"Node": {}}}
	require.False(t, IsTypeDefSubTypeOf(schema, other, iface))
}

func TestIsObjectLike(t *testing.T) {
	require.True(t, IsObjectLike(map[string]interface{}{}))
	require.True(t, IsObjectLike(struct{ Name string }{}))
	require.False(t, IsObjectLike(42))
	require.False(t, IsObjectLike(nil))
	var nilPtr *struct{ X int }
	require.False(t, IsObjectLike(nilPtr))
}

func TestIsSlice(t *testing.T) {
	require.True(t, IsSlice([]int{1, 2, 3}))
	require.True(t, IsSlice([3]int{1, 2, 3}))
	require.False(t, IsSlice("not a slice"))
	require.False(t, IsSlice(nil))
}
