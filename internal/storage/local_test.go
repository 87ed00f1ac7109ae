package storage

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStoreRoundTrip(t *testing.T) {
	s, err := NewLocalStore(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	key, size, err := s.Save(ctx, "Newsletter May.PDF", strings.NewReader("hello"))
	require.NoError(t, err)
	assert.Equal(t, int64(5), size)
	// Keys keep the extension (lowercased) but never the original name.
	assert.True(t, strings.HasSuffix(key, ".pdf"))
	assert.NotContains(t, key, "Newsletter")

	rc, err := s.Open(ctx, key)
	require.NoError(t, err)
	body, err := io.ReadAll(rc)
	require.NoError(t, rc.Close())
	require.NoError(t, err)
	assert.Equal(t, "hello", string(body))

	require.NoError(t, s.Delete(ctx, key))
	_, err = s.Open(ctx, key)
	assert.Error(t, err)

	// Deleting a missing key is not an error.
	assert.NoError(t, s.Delete(ctx, key))
}

func TestLocalStoreOpenStripsPath(t *testing.T) {
	s, err := NewLocalStore(t.TempDir())
	require.NoError(t, err)

	_, err = s.Open(context.Background(), "../../etc/passwd")
	assert.Error(t, err)
}
