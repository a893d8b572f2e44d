package api

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	uploaddomain "github.com/rawatr0788-code/Gamerz-Kit/internal/domains/uploads/domain"
)

func TestBuildBlobStore_MemoryFallbackUsesMemoryScheme(t *testing.T) {
	var logs bytes.Buffer
	store, err := buildBlobStore(Config{Port: "8080"}, slog.New(slog.NewTextHandler(&logs, nil)))
	require.NoError(t, err)

	location, err := store.Put(context.Background(), uploaddomain.File{Name: "shot.png", Data: []byte("png")})
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(location, "memory://blobs/"), location)
	assert.NotContains(t, location, "localhost")
	assert.Contains(t, logs.String(), "BLOB_UPLOAD_URL not set")
}

func TestBuildBlobStore_RemoteClient(t *testing.T) {
	store, err := buildBlobStore(Config{BlobUploadURL: "https://blobs.test/upload", BlobFormField: "file"}, slog.Default())
	require.NoError(t, err)
	assert.NotNil(t, store)
}
