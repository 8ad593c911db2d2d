package patch

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type doc struct {
	Name        Optional[string] `json:"name"`
	Description Optional[string] `json:"description"`
	Public      Optional[bool]   `json:"public"`
}

func TestOptionalDecodeThreeStates(t *testing.T) {
	var d doc
	require.NoError(t, json.Unmarshal([]byte(`{"name":"x","description":null}`), &d))

	assert.True(t, d.Name.Set)
	assert.False(t, d.Name.Null)
	assert.Equal(t, "x", d.Name.Value)

	assert.True(t, d.Description.Set)
	assert.True(t, d.Description.Null)

	// Absent key: UnmarshalJSON never runs, the slot stays unset.
	assert.False(t, d.Public.Set)
}

func TestOptionalDecodeEmptyString(t *testing.T) {
	var d doc
	require.NoError(t, json.Unmarshal([]byte(`{"name":""}`), &d))
	assert.True(t, d.Name.Set)
	assert.False(t, d.Name.Null)
	assert.Equal(t, "", d.Name.Value)
}

func TestOptionalPtr(t *testing.T) {
	v := Value("hi")
	require.NotNil(t, v.Ptr())
	assert.Equal(t, "hi", *v.Ptr())

	assert.Nil(t, Null[string]().Ptr())
	assert.Nil(t, Optional[string]{}.Ptr())
}

func TestOptionalMarshal(t *testing.T) {
	b, err := json.Marshal(Null[string]())
	require.NoError(t, err)
	assert.Equal(t, "null", string(b))

	b, err = json.Marshal(Value("x"))
	require.NoError(t, err)
	assert.Equal(t, `"x"`, string(b))
}
