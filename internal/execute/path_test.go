package execute

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPath_AsList_RootFirst(t *testing.T) {
	var p *Path
	p = p.WithField("books", "Query")
	p = p.WithIndex(1)
	p = p.WithField("author", "Book")

	require.Equal(t, []interface{}{"books", 1, "author"}, p.AsList())
}

func TestPath_Nil_IsEmpty(t *testing.T) {
	var p *Path
	require.Nil(t, p.AsList())
}

func TestPath_Typename_WalksPastListIndices(t *testing.T) {
	var p *Path
	p = p.WithField("books", "Query")
	p = p.WithIndex(0)

	require.Equal(t, "Query", p.Typename())
	require.Equal(t, "books", p.FieldName())
}

func TestPath_AstPath_MirrorsSegments(t *testing.T) {
	var p *Path
	p = p.WithField("books", "Query")
	p = p.WithIndex(2)

	astPath := p.AstPath()
	require.Len(t, astPath, 2)
}
