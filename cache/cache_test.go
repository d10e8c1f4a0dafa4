package cache

import (
	"context"
	"testing"

	"github.com/jbearak/rlsp/artifacts"
	"github.com/jbearak/rlsp/location"
	"github.com/jbearak/rlsp/metadata"
	"github.com/jbearak/rlsp/parentselect"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCacheInvalidateChangedClearsMetadataAndArtifacts(t *testing.T) {
	c := New()
	file := location.MustFileIDFromPath("/workspace/a.R")

	_, err := c.Metadata.Get(context.Background(), file, Fingerprint(1), func(context.Context) (metadata.CrossFileMetadata, Fingerprint, error) {
		return metadata.Empty(file), Fingerprint(1), nil
	})
	require.NoError(t, err)
	_, err = c.Artifacts.Get(context.Background(), file, Fingerprint(1), func(context.Context) (artifacts.ScopeArtifacts, Fingerprint, error) {
		art, buildErr := artifacts.Build(file, "", metadata.Empty(file), nil)
		return art, Fingerprint(1), buildErr
	})
	require.NoError(t, err)

	c.InvalidateChanged(file)

	assert.Equal(t, 0, c.Metadata.Len())
	assert.Equal(t, 0, c.Artifacts.Len())
}

func TestCacheInvalidateDownstreamArtifactsOnlyTouchesGivenFiles(t *testing.T) {
	c := New()
	a := location.MustFileIDFromPath("/workspace/a.R")
	b := location.MustFileIDFromPath("/workspace/b.R")

	for _, f := range []location.FileID{a, b} {
		_, err := c.Artifacts.Get(context.Background(), f, Fingerprint(1), func(context.Context) (artifacts.ScopeArtifacts, Fingerprint, error) {
			art, buildErr := artifacts.Build(f, "", metadata.Empty(f), nil)
			return art, Fingerprint(1), buildErr
		})
		require.NoError(t, err)
	}

	c.InvalidateDownstreamArtifacts([]location.FileID{a})

	_, hasA := c.Artifacts.Peek(a)
	_, hasB := c.Artifacts.Peek(b)
	assert.False(t, hasA)
	assert.True(t, hasB)
}

func TestCacheInvalidateParentSelection(t *testing.T) {
	c := New()
	file := location.MustFileIDFromPath("/workspace/a.R")

	_, err := c.ParentSelection.Get(context.Background(), file, Fingerprint(1), func(context.Context) (parentselect.Result, Fingerprint, error) {
		return parentselect.Result{Found: true}, Fingerprint(1), nil
	})
	require.NoError(t, err)

	c.InvalidateParentSelection(file)
	assert.Equal(t, 0, c.ParentSelection.Len())
}
