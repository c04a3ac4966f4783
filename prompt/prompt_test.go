package prompt

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTemplate(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
}

func TestRenderSubstitutesVariables(t *testing.T) {
	dir := t.TempDir()
	writeTemplate(t, dir, "greet.md", "Hello ${name}, paper ${paper_id}.")

	l := NewLoader(dir)
	got, err := l.Render("greet", map[string]string{
		"name":     "reader",
		"paper_id": "P1",
	})
	require.NoError(t, err)
	assert.Equal(t, "Hello reader, paper P1.", got)
}

func TestRenderKeepsUnknownVariables(t *testing.T) {
	dir := t.TempDir()
	writeTemplate(t, dir, "greet.md", "Hello ${name} and ${unbound}.")

	l := NewLoader(dir)
	got, err := l.Render("greet", map[string]string{"name": "reader"})
	require.NoError(t, err)
	assert.Equal(t, "Hello reader and ${unbound}.", got)
}

func TestRenderWithoutVariables(t *testing.T) {
	dir := t.TempDir()
	writeTemplate(t, dir, "plain.md", "No markers here.")

	l := NewLoader(dir)
	got, err := l.Render("plain", nil)
	require.NoError(t, err)
	assert.Equal(t, "No markers here.", got)
}

func TestLoadRawCaches(t *testing.T) {
	dir := t.TempDir()
	writeTemplate(t, dir, "cached.md", "v1")

	l := NewLoader(dir)
	got, err := l.LoadRaw("cached")
	require.NoError(t, err)
	assert.Equal(t, "v1", got)

	// Later disk changes are not observed once cached.
	writeTemplate(t, dir, "cached.md", "v2")
	got, err = l.LoadRaw("cached")
	require.NoError(t, err)
	assert.Equal(t, "v1", got)
}

func TestLoadRawMissingTemplate(t *testing.T) {
	l := NewLoader(t.TempDir())
	_, err := l.LoadRaw("absent")
	require.Error(t, err)
}
