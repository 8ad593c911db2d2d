package itemize

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpdateItemizeRequestDecodeThreeStates(t *testing.T) {
	var req UpdateItemizeRequest
	require.NoError(t, json.Unmarshal([]byte(`{"name":"Other List","description":null}`), &req))

	assert.True(t, req.Name.Set)
	assert.Equal(t, "Other List", req.Name.Value)

	assert.True(t, req.Description.Set)
	assert.True(t, req.Description.Null)

	assert.False(t, req.Public.Set, "absent key means unchanged")
}

func TestUpdateItemizeRequestValidate(t *testing.T) {
	var req UpdateItemizeRequest
	require.NoError(t, json.Unmarshal([]byte(`{"name":null}`), &req))
	assert.EqualError(t, req.Validate(), "Name cannot be empty!")

	req = UpdateItemizeRequest{}
	require.NoError(t, json.Unmarshal([]byte(`{"public":null}`), &req))
	assert.EqualError(t, req.Validate(), "Public cannot be null!")

	req = UpdateItemizeRequest{}
	require.NoError(t, json.Unmarshal([]byte(`{"description":null}`), &req))
	assert.NoError(t, req.Validate(), "description is nullable")

	req = UpdateItemizeRequest{}
	require.NoError(t, json.Unmarshal([]byte(`{}`), &req))
	assert.NoError(t, req.Validate(), "empty patch is a valid no-op")
}

func TestUpdateLinkRequestValidate(t *testing.T) {
	var req UpdateLinkRequest
	require.NoError(t, json.Unmarshal([]byte(`{"price":"12.50","currency":"USD"}`), &req))
	assert.NoError(t, req.Validate())

	req = UpdateLinkRequest{}
	require.NoError(t, json.Unmarshal([]byte(`{"price":"twelve"}`), &req))
	assert.EqualError(t, req.Validate(), "Price must be a decimal number!")

	req = UpdateLinkRequest{}
	require.NoError(t, json.Unmarshal([]byte(`{"currency":"DOLLARS"}`), &req))
	assert.EqualError(t, req.Validate(), "Currency must be a 3-letter code!")

	// Explicit nulls clear fields and need no further validation.
	req = UpdateLinkRequest{}
	require.NoError(t, json.Unmarshal([]byte(`{"price":null,"currency":null}`), &req))
	assert.NoError(t, req.Validate())
}

func TestUpdateLinkRequestEmpty(t *testing.T) {
	var req UpdateLinkRequest
	require.NoError(t, json.Unmarshal([]byte(`{}`), &req))
	assert.True(t, req.Empty())

	require.NoError(t, json.Unmarshal([]byte(`{"title":null}`), &req))
	assert.False(t, req.Empty(), "an explicit null still carries intent")
}

func TestCreateLinkRequestValidate(t *testing.T) {
	assert.NoError(t, CreateLinkRequest{URL: "https://example.com"}.Validate())
	assert.NoError(t, CreateLinkRequest{URL: "http://example.com"}.Validate())
	assert.Error(t, CreateLinkRequest{URL: "ftp://example.com"}.Validate())
	assert.Error(t, CreateLinkRequest{URL: ""}.Validate())
}

func TestCreateItemizeRequestValidate(t *testing.T) {
	assert.NoError(t, CreateItemizeRequest{Name: "My List"}.Validate())
	assert.Error(t, CreateItemizeRequest{Name: ""}.Validate())
}
