package execute

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vektah/gqlparser/v2/gqlerror"
)

func gqlerrorListOf(message string) gqlerror.List {
	return gqlerror.List{&gqlerror.Error{Message: message}}
}

func TestOrderedMap_PreservesInsertionOrder(t *testing.T) {
	m := newOrderedMap(0)
	m.Set("zebra", 1)
	m.Set("apple", 2)
	m.Set("mango", 3)

	require.Equal(t, []string{"zebra", "apple", "mango"}, m.Keys())

	b, err := json.Marshal(m)
	require.NoError(t, err)
	require.JSONEq(t, `{"zebra":1,"apple":2,"mango":3}`, string(b))
	require.Equal(t, `{"zebra":1,"apple":2,"mango":3}`, string(b))
}

func TestOrderedMap_SetOverwritesWithoutReordering(t *testing.T) {
	m := newOrderedMap(0)
	m.Set("a", 1)
	m.Set("b", 2)
	m.Set("a", 99)

	require.Equal(t, []string{"a", "b"}, m.Keys())
	v, ok := m.Get("a")
	require.True(t, ok)
	require.Equal(t, 99, v)
}

func TestOrderedMap_Get_MissingKey(t *testing.T) {
	m := newOrderedMap(0)
	_, ok := m.Get("missing")
	require.False(t, ok)
}

func TestExecutionResult_RequestError_OmitsDataKeyEntirely(t *testing.T) {
	result := requestErrorResult(gqlerrorListOf("must provide operation name if query contains multiple operations"))

	b, err := json.Marshal(result)
	require.NoError(t, err)
	require.JSONEq(t, `{"errors":[{"message":"must provide operation name if query contains multiple operations"}]}`, string(b))

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(b, &decoded))
	_, hasData := decoded["data"]
	require.False(t, hasData, "a request error must not carry a data key at all")
}

func TestExecutionResult_FieldError_KeepsExplicitNullData(t *testing.T) {
	result := &ExecutionResult{Errors: gqlerrorListOf("Cannot return null for non-nullable field Query.book")}

	b, err := json.Marshal(result)
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(b, &decoded))
	data, hasData := decoded["data"]
	require.True(t, hasData, "a field error that bubbled to the root still carries an explicit data key")
	require.Nil(t, data)
}
