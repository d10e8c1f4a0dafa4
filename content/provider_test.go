package content

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/jbearak/rlsp/location"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempFile(t *testing.T, text string) location.FileID {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "a.R")
	require.NoError(t, os.WriteFile(path, []byte(text), 0o644))
	return location.MustFileIDFromPath(path)
}

func TestGetPrefersOpenBufferOverDisk(t *testing.T) {
	file := writeTempFile(t, "on_disk <- 1\n")
	p := NewProvider(0)

	p.OpenDocument(file, "in_buffer <- 2\n", 1)

	text, ok := p.Get(file)
	require.True(t, ok)
	assert.Equal(t, "in_buffer <- 2\n", text)
}

func TestGetFallsBackToDiskWhenNotOpen(t *testing.T) {
	file := writeTempFile(t, "on_disk <- 1\n")
	p := NewProvider(0)

	text, ok := p.Get(file)
	require.True(t, ok)
	assert.Equal(t, "on_disk <- 1\n", text)
}

func TestGetAfterCloseFallsBackToDisk(t *testing.T) {
	file := writeTempFile(t, "on_disk <- 1\n")
	p := NewProvider(0)
	p.OpenDocument(file, "in_buffer <- 2\n", 1)
	p.CloseDocument(file)

	text, ok := p.Get(file)
	require.True(t, ok)
	assert.Equal(t, "on_disk <- 1\n", text)
}

func TestGetMissingFileNotOpenReturnsNotOK(t *testing.T) {
	file := location.MustFileIDFromPath(filepath.Join(t.TempDir(), "missing.R"))
	p := NewProvider(0)

	_, ok := p.Get(file)
	assert.False(t, ok)
}

func TestChangeDocumentReplacesText(t *testing.T) {
	file := location.NewSyntheticFileID("test://unit/a.R")
	p := NewProvider(0)
	p.OpenDocument(file, "first <- 1\n", 1)
	p.ChangeDocument(file, "second <- 2\n", 2)

	text, ok := p.Get(file)
	require.True(t, ok)
	assert.Equal(t, "second <- 2\n", text)

	version, ok := p.OpenVersion(file)
	require.True(t, ok)
	assert.Equal(t, int32(2), version)
}

func TestDiskReadIsCachedAcrossCallsWithSameStat(t *testing.T) {
	file := writeTempFile(t, "x <- 1\n")
	p := NewProvider(0)

	_, ok := p.Get(file)
	require.True(t, ok)
	assert.Equal(t, 1, p.DiskCacheLen())

	_, ok = p.Get(file)
	require.True(t, ok)
	assert.Equal(t, 1, p.DiskCacheLen(), "second read of an unchanged file must reuse the cached entry")
}

func TestDiskLRUEvictsOldestBeyondCapacity(t *testing.T) {
	p := NewProvider(2)
	var files []location.FileID
	for i := 0; i < 3; i++ {
		files = append(files, writeTempFile(t, "x <- 1\n"))
	}

	for _, f := range files {
		_, ok := p.Get(f)
		require.True(t, ok)
	}

	assert.Equal(t, 2, p.DiskCacheLen())
}

func TestPositionAtOpenDocumentASCII(t *testing.T) {
	file := location.NewSyntheticFileID("test://unit/a.R")
	p := NewProvider(0)
	p.OpenDocument(file, "abc\ndef\n", 1)

	pos := p.PositionAt(file, 5) // 'e' in "def"
	assert.True(t, pos.IsKnown())
	assert.Equal(t, 1, pos.Line)
	assert.Equal(t, 1, pos.Column)
}

func TestPositionAtSurrogatePairCountsTwoUTF16Units(t *testing.T) {
	file := location.NewSyntheticFileID("test://unit/a.R")
	p := NewProvider(0)
	// U+1F600 (grinning face) is 4 bytes in UTF-8, 2 units in UTF-16.
	text := "x <- \"\U0001F600\"\n"
	p.OpenDocument(file, text, 1)

	closingQuoteByte := len("x <- \"") + len("\U0001F600")
	pos := p.PositionAt(file, closingQuoteByte)
	assert.True(t, pos.IsKnown())
	assert.Equal(t, 0, pos.Line)
	assert.Equal(t, len("x <- \"")+2, pos.Column)
}

func TestByteOffsetAtRoundTripsWithPositionAt(t *testing.T) {
	file := location.NewSyntheticFileID("test://unit/a.R")
	p := NewProvider(0)
	p.OpenDocument(file, "abc\ndef\nghi\n", 1)

	offset, ok := p.ByteOffsetAt(file, 2, 1)
	require.True(t, ok)

	pos := p.PositionAt(file, offset)
	assert.Equal(t, 2, pos.Line)
	assert.Equal(t, 1, pos.Column)
}

func TestPositionAtUnknownFileReturnsUnknownPosition(t *testing.T) {
	file := location.NewSyntheticFileID("test://unit/missing.R")
	p := NewProvider(0)

	pos := p.PositionAt(file, 0)
	assert.True(t, pos.IsUnknown())
}

func TestInvalidateDiskForcesReread(t *testing.T) {
	file := writeTempFile(t, "x <- 1\n")
	p := NewProvider(0)
	_, _ = p.Get(file)

	cp, _ := file.CanonicalPath()
	p.InvalidateDisk(cp.String())

	assert.Equal(t, 0, p.DiskCacheLen())
}
