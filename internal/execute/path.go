package execute

import "github.com/vektah/gqlparser/v2/ast"

// Path is a persistent, singly-linked chain of response coordinates. Each
// segment is either a field response-name (paired with the name of the
// object type that declared it, for error reporting) or a list index.
// Paths are built by extension and are never mutated in place, so a Path
// value may be shared freely between goroutines walking sibling branches
// of the response tree.
type Path struct {
	parent     *Path
	key        interface{} // string (field) or int (list index)
	typename   string      // declaring object type name, only set for field segments
}

// WithField extends the path with a field response-name segment.
func (p *Path) WithField(responseName, typename string) *Path {
	return &Path{parent: p, key: responseName, typename: typename}
}

// WithIndex extends the path with a list-index segment.
func (p *Path) WithIndex(index int) *Path {
	return &Path{parent: p, key: index}
}

// AsList renders the path as an ordered slice of strings and ints, root
// first, suitable for JSON serialization of a located error's "path".
func (p *Path) AsList() []interface{} {
	if p == nil {
		return nil
	}
	var segments []interface{}
	for cur := p; cur != nil; cur = cur.parent {
		segments = append(segments, cur.key)
	}
	// segments were collected leaf-first; reverse in place.
	for i, j := 0, len(segments)-1; i < j; i, j = i+1, j-1 {
		segments[i], segments[j] = segments[j], segments[i]
	}
	return segments
}

// AstPath converts the path to gqlparser's ast.Path, the type gqlerror
// uses to locate an error.
func (p *Path) AstPath() ast.Path {
	segments := p.AsList()
	out := make(ast.Path, 0, len(segments))
	for _, s := range segments {
		switch v := s.(type) {
		case string:
			out = append(out, ast.PathName(v))
		case int:
			out = append(out, ast.PathIndex(v))
		}
	}
	return out
}

// Typename returns the declaring object type name of the nearest field
// segment, walking up through list-index segments if necessary. Used to
// format "cannot return null for non-nullable field Type.field" errors.
func (p *Path) Typename() string {
	for cur := p; cur != nil; cur = cur.parent {
		if cur.typename != "" {
			return cur.typename
		}
	}
	return ""
}

// FieldName returns the response-name of the nearest field segment, or ""
// if the path is empty or rooted directly at a list index.
func (p *Path) FieldName() string {
	for cur := p; cur != nil; cur = cur.parent {
		if name, ok := cur.key.(string); ok {
			return name
		}
	}
	return ""
}
