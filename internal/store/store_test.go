package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStore_RoundTrip(t *testing.T) {
	st, err := NewFileStore(t.TempDir(), nil)
	require.NoError(t, err)

	t.Run("set then get", func(t *testing.T) {
		require.NoError(t, st.Set(KeyAuthToken, []byte("tok")))
		raw, ok := st.Get(KeyAuthToken)
		require.True(t, ok)
		assert.Equal(t, "tok", string(raw))
	})

	t.Run("missing keys are absent", func(t *testing.T) {
		_, ok := st.Get("neverSet")
		assert.False(t, ok)
	})

	t.Run("delete removes the key", func(t *testing.T) {
		require.NoError(t, st.Set(KeyUserData, []byte("{}")))
		require.NoError(t, st.Delete(KeyUserData))
		_, ok := st.Get(KeyUserData)
		assert.False(t, ok)
	})

	t.Run("deleting an absent key is fine", func(t *testing.T) {
		assert.NoError(t, st.Delete("neverSet"))
	})

	t.Run("path-traversal keys are rejected", func(t *testing.T) {
		assert.Error(t, st.Set("../evil", []byte("x")))
		_, ok := st.Get("../evil")
		assert.False(t, ok)
	})
}

func TestFileStore_SurvivesRestart(t *testing.T) {
	dir := t.TempDir()

	st, err := NewFileStore(dir, nil)
	require.NoError(t, err)
	require.NoError(t, st.Set(KeyChatHistory, []byte(`["hi"]`)))

	st2, err := NewFileStore(dir, nil)
	require.NoError(t, err)
	raw, ok := st2.Get(KeyChatHistory)
	require.True(t, ok)
	assert.Equal(t, `["hi"]`, string(raw))
}

func TestGetJSON(t *testing.T) {
	dir := t.TempDir()
	st, err := NewFileStore(dir, nil)
	require.NoError(t, err)

	t.Run("well-formed state decodes", func(t *testing.T) {
		require.NoError(t, SetJSON(st, KeyUserData, map[string]string{"name": "Asha"}))
		var out map[string]string
		require.True(t, GetJSON(st, nil, KeyUserData, &out))
		assert.Equal(t, "Asha", out["name"])
	})

	t.Run("corrupt state reads as absent", func(t *testing.T) {
		require.NoError(t, os.WriteFile(filepath.Join(dir, KeyChatHistory+".json"), []byte(`{broken`), 0o600))
		var out []string
		assert.False(t, GetJSON(st, nil, KeyChatHistory, &out))
	})

	t.Run("absent state reads as absent", func(t *testing.T) {
		var out []string
		assert.False(t, GetJSON(st, nil, "nothingHere", &out))
	})
}
