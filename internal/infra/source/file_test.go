package source

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func writeBundleFile(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "site.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	return path
}

// TestFileSource_Fetch_BundleDocument tests loading a bundle with a "site"
// key and extra packages.
func TestFileSource_Fetch_BundleDocument(t *testing.T) {
	path := writeBundleFile(t, `{
		"site": {
			"hero": {"title": "Piano Lessons"},
			"contact": {"email": "hello@example.com"}
		},
		"packages": [
			{"id": "pkg-extra", "name": "Extra", "price": 99}
		]
	}`)

	src := NewFileSource(path, zap.NewNop())
	bundle, err := src.Fetch(context.Background())

	require.NoError(t, err)
	assert.Len(t, bundle.Site, 2)
	require.Len(t, bundle.Packages, 1)

	hero, ok := bundle.Site["hero"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "Piano Lessons", hero["title"])
}

// TestFileSource_Fetch_BareSiteDocument tests loading a document without a
// top-level "site" key. The whole document becomes the site object.
func TestFileSource_Fetch_BareSiteDocument(t *testing.T) {
	path := writeBundleFile(t, `{
		"hero": {"title": "Piano Lessons"},
		"about": {"title": "About Me"}
	}`)

	src := NewFileSource(path, zap.NewNop())
	bundle, err := src.Fetch(context.Background())

	require.NoError(t, err)
	assert.Len(t, bundle.Site, 2)
	assert.Empty(t, bundle.Packages)
	assert.Contains(t, bundle.Site, "hero")
	assert.Contains(t, bundle.Site, "about")
}

// TestFileSource_Fetch_InvalidJSON tests parse error handling.
func TestFileSource_Fetch_InvalidJSON(t *testing.T) {
	path := writeBundleFile(t, `{"site": {`)

	src := NewFileSource(path, zap.NewNop())
	bundle, err := src.Fetch(context.Background())

	require.Error(t, err)
	assert.Nil(t, bundle)
	assert.Contains(t, err.Error(), "parsing bundle")
}

// TestFileSource_Fetch_MissingFile tests read error handling.
func TestFileSource_Fetch_MissingFile(t *testing.T) {
	src := NewFileSource(filepath.Join(t.TempDir(), "nope.json"), zap.NewNop())
	bundle, err := src.Fetch(context.Background())

	require.Error(t, err)
	assert.Nil(t, bundle)
	assert.Contains(t, err.Error(), "reading bundle")
}

// TestFileSource_Fetch_CancelledContext tests that a cancelled context is
// honored before touching the filesystem.
func TestFileSource_Fetch_CancelledContext(t *testing.T) {
	path := writeBundleFile(t, `{"hero": {"title": "Piano Lessons"}}`)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	src := NewFileSource(path, zap.NewNop())
	bundle, err := src.Fetch(ctx)

	require.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, bundle)
}

// TestFileSource_HealthCheck tests the file existence probe.
func TestFileSource_HealthCheck(t *testing.T) {
	path := writeBundleFile(t, `{}`)

	src := NewFileSource(path, zap.NewNop())
	require.NoError(t, src.HealthCheck(context.Background()))

	missing := NewFileSource(filepath.Join(t.TempDir(), "nope.json"), zap.NewNop())
	require.Error(t, missing.HealthCheck(context.Background()))

	dir := NewFileSource(t.TempDir(), zap.NewNop())
	err := dir.HealthCheck(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "is a directory")
}

// TestFileSource_Name tests the Name and Path accessors.
func TestFileSource_Name(t *testing.T) {
	src := NewFileSource("./content/site.json", zap.NewNop())

	assert.Equal(t, "file", src.Name())
	assert.Equal(t, "./content/site.json", src.Path())
}
