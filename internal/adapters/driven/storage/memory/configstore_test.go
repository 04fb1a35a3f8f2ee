package memory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigStore_SetAndGet(t *testing.T) {
	store := NewConfigStore()

	require.NoError(t, store.Set("tagging.family", "LOx"))
	require.NoError(t, store.Set("tagging.family", "POx"))

	val, ok := store.Get("tagging.family")
	assert.True(t, ok)
	assert.Equal(t, "POx", val)

	_, ok = store.Get("missing")
	assert.False(t, ok)
}

func TestConfigStore_TypedGetters(t *testing.T) {
	store := NewConfigStore()
	_ = store.Set("str", "indexed")
	_ = store.Set("int", 43)
	_ = store.Set("int64", int64(80))
	_ = store.Set("float", 12.0)
	_ = store.Set("bool", true)
	_ = store.Set("slice", []string{"GCARR", "HET"})
	_ = store.Set("anyslice", []any{"PHOTOL", 3, "GC_"})

	assert.Equal(t, "indexed", store.GetString("str"))
	assert.Equal(t, "", store.GetString("int"))
	assert.Equal(t, 43, store.GetInt("int"))
	assert.Equal(t, 80, store.GetInt("int64"))
	assert.Equal(t, 12, store.GetInt("float"))
	assert.Equal(t, 0, store.GetInt("str"))
	assert.True(t, store.GetBool("bool"))
	assert.False(t, store.GetBool("str"))
	assert.Equal(t, []string{"GCARR", "HET"}, store.GetStringSlice("slice"))
	assert.Equal(t, []string{"PHOTOL", "GC_"}, store.GetStringSlice("anyslice"))
	assert.Nil(t, store.GetStringSlice("str"))
}

func TestConfigStore_GetStringSlice_ReturnsCopy(t *testing.T) {
	store := NewConfigStore()
	_ = store.Set("slice", []string{"a"})

	got := store.GetStringSlice("slice")
	got[0] = "b"

	assert.Equal(t, []string{"a"}, store.GetStringSlice("slice"))
}

func TestConfigStore_Keys(t *testing.T) {
	store := NewConfigStore()
	_ = store.Set("writer.line_width", 43)
	_ = store.Set("monitor.layout", "indexed")

	assert.Equal(t, []string{"monitor.layout", "writer.line_width"}, store.Keys())
}

func TestConfigStore_Persistence(t *testing.T) {
	store := NewConfigStore()

	assert.NoError(t, store.Save())
	assert.NoError(t, store.Load())
	assert.Equal(t, ":memory:", store.Path())
}
