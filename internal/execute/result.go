package execute

import (
	"bytes"
	"encoding/json"

	"github.com/vektah/gqlparser/v2/gqlerror"
)

// OrderedMap is a response object whose keys are serialized in selection
// order, standing in for gqlgen's graphql.FieldSet used to the same end: a
// plain Go map cannot promise iteration order, and response object field
// entries must serialize in selection order.
type OrderedMap struct {
	keys   []string
	values map[string]interface{}
}

func newOrderedMap(size int) *OrderedMap {
	return &OrderedMap{
		keys:   make([]string, 0, size),
		values: make(map[string]interface{}, size),
	}
}

// Set assigns value to key, appending key to the iteration order the first
// time it is seen.
func (m *OrderedMap) Set(key string, value interface{}) {
	if _, ok := m.values[key]; !ok {
		m.keys = append(m.keys, key)
	}
	m.values[key] = value
}

// Get returns the value stored at key, if any.
func (m *OrderedMap) Get(key string) (interface{}, bool) {
	v, ok := m.values[key]
	return v, ok
}

// Keys returns the response names in first-set order.
func (m *OrderedMap) Keys() []string {
	return m.keys
}

// Len reports how many keys are set.
func (m *OrderedMap) Len() int {
	return len(m.keys)
}

// MarshalJSON writes the map as a JSON object with its keys in insertion
// order, since encoding/json's own map handling sorts keys alphabetically.
func (m *OrderedMap) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range m.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		kb, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		buf.Write(kb)
		buf.WriteByte(':')
		vb, err := json.Marshal(m.values[k])
		if err != nil {
			return nil, err
		}
		buf.Write(vb)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// ExecutionResult is the "Response" of the GraphQL specification: data plus
// whatever errors were logged along the way. When incremental delivery is
// active, ExecutionResult carries only the initial payload and HasNext is
// true; the remaining payloads are read from the *SubsequentIterator
// Execute returns alongside it.
//
// Data is nil in two cases that must serialize differently: a request error
// (operation selection or variable-coercion failure, before any resolver
// ran) omits the "data" key entirely, while a field error that bubbled
// non-null-ness all the way to the root still carries an explicit
// "data":null, since execution did start. A plain `*OrderedMap` field with a
// `json:"data,omitempty"` tag cannot distinguish the two — both serialize
// to an absent key — so noRequestData marks the former case and MarshalJSON
// below honors it.
type ExecutionResult struct {
	Data    *OrderedMap
	Errors  gqlerror.List
	HasNext bool

	noRequestData bool
}

// requestErrorResult builds the response for a request error: no resolver
// ran, so the response carries only errors, with no "data" key at all.
func requestErrorResult(errs gqlerror.List) *ExecutionResult {
	return &ExecutionResult{Errors: errs, noRequestData: true}
}

// MarshalJSON orders fields errors-then-data-then-hasNext, and omits "data"
// entirely for a request error rather than serializing it as null.
func (r *ExecutionResult) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	wrote := false
	write := func(key string, val []byte) {
		if wrote {
			buf.WriteByte(',')
		}
		buf.WriteByte('"')
		buf.WriteString(key)
		buf.WriteString(`":`)
		buf.Write(val)
		wrote = true
	}

	if len(r.Errors) > 0 {
		eb, err := json.Marshal(r.Errors)
		if err != nil {
			return nil, err
		}
		write("errors", eb)
	}
	if !r.noRequestData {
		db, err := marshalOrderedMapOrNull(r.Data)
		if err != nil {
			return nil, err
		}
		write("data", db)
	}
	if r.HasNext {
		write("hasNext", []byte("true"))
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// marshalOrderedMapOrNull guards against OrderedMap.MarshalJSON's pointer
// receiver dereferencing a nil *OrderedMap, which json.Marshal would
// otherwise drive straight into when a field bubbled its whole value to
// null.
func marshalOrderedMapOrNull(m *OrderedMap) ([]byte, error) {
	if m == nil {
		return []byte("null"), nil
	}
	return m.MarshalJSON()
}
