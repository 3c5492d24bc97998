package ui

import (
	"testing"

	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piwi3910/shelfpack/internal/model"
	"github.com/piwi3910/shelfpack/internal/project"
)

func TestPrefsStoreGetSet(t *testing.T) {
	store := NewPrefsStore(test.NewApp().Preferences())

	_, found, err := store.Get("missing")
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, store.Set("k", "v"))
	v, found, err := store.Get("k")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "v", v)
}

func TestPrefsStoreHoldsAutosave(t *testing.T) {
	store := NewPrefsStore(test.NewApp().Preferences())
	_, ok, err := project.LoadState(store)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, store.Set(project.StateKey, "not a bay"))
	_, ok, err = project.LoadState(store)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestColourNames(t *testing.T) {
	assert.Equal(t, "Red", colourName(model.ColorRed))
	assert.Equal(t, "#123456", colourName(model.Color{R: 0x12, G: 0x34, B: 0x56}))
	assert.Equal(t, []string{"blue", "green", "red", "white"}, wallColourNames())

	name, ok := paletteName(model.ColorWhite)
	assert.True(t, ok)
	assert.Equal(t, "white", name)
}

func TestThemeForName(t *testing.T) {
	assert.True(t, ThemeForName("system").follow)
	assert.False(t, ThemeForName("dark").follow)
	assert.False(t, ThemeForName("light").follow)
}
