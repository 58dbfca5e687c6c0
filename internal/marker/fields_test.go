package marker

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFieldsOrder(t *testing.T) {
	f := NewFields()
	f.Set("name", "A")
	f.Set("state", "TX")
	f.Set("note", "hi")

	assert.Equal(t, []string{"name", "state", "note"}, f.Keys())

	// updating an existing key keeps its position
	f.Set("state", "CA")
	assert.Equal(t, []string{"name", "state", "note"}, f.Keys())

	v, ok := f.Get("state")
	require.True(t, ok)
	assert.Equal(t, "CA", v)
}

func TestFieldsLowercasesKeys(t *testing.T) {
	f := NewFields()
	f.Set("Name", "A")
	f.Set("NAME", "B")

	assert.Equal(t, 1, f.Len())
	assert.Equal(t, "B", f.GetString("name"))
}

func TestFieldsGeoReserved(t *testing.T) {
	f := NewFields()
	f.Set("geo", "1,2")
	f.Set("GEO", "1,2")

	assert.Equal(t, 0, f.Len())
	_, ok := f.Get("geo")
	assert.False(t, ok)
}

func TestFieldsDeleteAndReinsert(t *testing.T) {
	f := NewFields()
	f.Set("adr", "street")
	f.Set("note", "n")

	v, _ := f.Get("adr")
	f.Delete("adr")
	f.Set("address", v)

	// the renamed key moves to the end
	assert.Equal(t, []string{"note", "address"}, f.Keys())
}

func TestFieldsClone(t *testing.T) {
	f := NewFields()
	f.Set("name", "A")

	c := f.Clone()
	c.Set("name", "B")
	c.Set("extra", 1)

	assert.Equal(t, "A", f.GetString("name"))
	assert.Equal(t, 1, f.Len())
	assert.Equal(t, 2, c.Len())
}

func TestFieldsMarshalJSON(t *testing.T) {
	f := NewFields()
	f.Set("name", "A")
	f.Set("count", 2.5)
	f.Set("active", true)

	data, err := json.Marshal(f)
	require.NoError(t, err)
	assert.Equal(t, `{"name":"A","count":2.5,"active":true}`, string(data))
}

func TestFieldsMarshalEmpty(t *testing.T) {
	data, err := json.Marshal(NewFields())
	require.NoError(t, err)
	assert.Equal(t, `{}`, string(data))
}

func TestValueString(t *testing.T) {
	assert.Equal(t, "text", ValueString("text"))
	assert.Equal(t, "30.5", ValueString(30.5))
	assert.Equal(t, "true", ValueString(true))
	assert.Equal(t, "", ValueString(nil))
	assert.Equal(t, `{"a":1}`, ValueString(map[string]any{"a": 1}))
}

func TestIsEmptyValue(t *testing.T) {
	assert.True(t, IsEmptyValue(nil))
	assert.True(t, IsEmptyValue(""))
	assert.True(t, IsEmptyValue(0.0))
	assert.True(t, IsEmptyValue(false))
	assert.False(t, IsEmptyValue("x"))
	assert.False(t, IsEmptyValue(1.0))
	assert.False(t, IsEmptyValue(true))
}
