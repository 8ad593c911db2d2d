package client

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func marshalKeys(t *testing.T, v interface{}) map[string]json.RawMessage {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	var m map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(b, &m))
	return m
}

func TestBuildLinkPatchOnlyDirtyFields(t *testing.T) {
	form := LinkForm{
		Title: strptr("kept title"),
		Price: strptr("12.50"),
	}
	p, err := BuildLinkPatch(form, []string{"Price"})
	require.NoError(t, err)

	m := marshalKeys(t, p)
	require.Len(t, m, 1)
	assert.JSONEq(t, `"12.50"`, string(m["price"]))
	_, hasTitle := m["title"]
	assert.False(t, hasTitle, "clean fields must be absent, not null")
}

func TestBuildLinkPatchNullClearsField(t *testing.T) {
	form := LinkForm{Title: nil}
	p, err := BuildLinkPatch(form, []string{"Title"})
	require.NoError(t, err)

	m := marshalKeys(t, p)
	require.Contains(t, m, "title")
	assert.Equal(t, "null", string(m["title"]))
}

func TestBuildLinkPatchEmptyStringIsAValue(t *testing.T) {
	form := LinkForm{Title: strptr("")}
	p, err := BuildLinkPatch(form, []string{"Title"})
	require.NoError(t, err)

	m := marshalKeys(t, p)
	assert.JSONEq(t, `""`, string(m["title"]))
}

func TestBuildLinkPatchEmptyDirtySet(t *testing.T) {
	p, err := BuildLinkPatch(LinkForm{Title: strptr("x")}, nil)
	require.NoError(t, err)
	assert.True(t, p.Empty())
	assert.Equal(t, "{}", string(mustMarshal(t, p)))
}

func TestBuildLinkPatchPriceCoercion(t *testing.T) {
	// Leading zeros are normalized away; the value stays a decimal string.
	form := LinkForm{Price: strptr("009.900")}
	p, err := BuildLinkPatch(form, []string{"Price"})
	require.NoError(t, err)

	m := marshalKeys(t, p)
	assert.JSONEq(t, `"9.900"`, string(m["price"]))
}

func TestBuildLinkPatchRejectsBadPrice(t *testing.T) {
	form := LinkForm{Price: strptr("twelve")}
	_, err := BuildLinkPatch(form, []string{"Price"})
	var verr ValidationError
	require.ErrorAs(t, err, &verr)
}

func TestBuildLinkPatchValuesReadAtCallTime(t *testing.T) {
	form := LinkForm{Title: strptr("first")}
	tracker := NewTracker(LinkForm{})
	form.Title = strptr("second")

	p, err := BuildLinkPatch(form, tracker.Dirty(form))
	require.NoError(t, err)
	m := marshalKeys(t, p)
	assert.JSONEq(t, `"second"`, string(m["title"]))
}

func TestBuildItemizePatch(t *testing.T) {
	form := ItemizeForm{Name: "Other List", Description: nil, Public: true}
	p, err := BuildItemizePatch(form, []string{"Name", "Description"})
	require.NoError(t, err)

	m := marshalKeys(t, p)
	require.Len(t, m, 2)
	assert.JSONEq(t, `"Other List"`, string(m["name"]))
	assert.Equal(t, "null", string(m["description"]))
	_, hasPublic := m["public"]
	assert.False(t, hasPublic)
}

func TestBuildItemizePatchRejectsEmptyName(t *testing.T) {
	_, err := BuildItemizePatch(ItemizeForm{Name: ""}, []string{"Name"})
	var verr ValidationError
	require.ErrorAs(t, err, &verr)
}

func mustMarshal(t *testing.T, v interface{}) []byte {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return b
}
