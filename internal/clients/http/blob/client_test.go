package blob

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_UploadAndDelete(t *testing.T) {
	var deleted string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPost:
			file, header, err := r.FormFile("file")
			if !assert.NoError(t, err) {
				w.WriteHeader(http.StatusBadRequest)
				return
			}
			data, _ := io.ReadAll(file)
			assert.Equal(t, "shot.png", header.Filename)
			assert.Equal(t, []byte("png-bytes"), data)
			_ = json.NewEncoder(w).Encode(map[string]string{"url": "https://cdn.test/shot.png"})
		case http.MethodDelete:
			deleted = r.URL.Query().Get("url")
			if deleted == "https://cdn.test/missing.png" {
				w.WriteHeader(http.StatusNotFound)
				return
			}
			w.WriteHeader(http.StatusNoContent)
		}
	}))
	defer srv.Close()

	client, err := NewClient(srv.URL, srv.Client())
	require.NoError(t, err)

	url, err := client.Upload(context.Background(), "shot.png", "image/png", []byte("png-bytes"))
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.test/shot.png", url)

	require.NoError(t, client.Delete(context.Background(), url))
	assert.Equal(t, url, deleted)

	assert.ErrorIs(t, client.Delete(context.Background(), "https://cdn.test/missing.png"), ErrNotFound)
}

func TestClient_UploadSurfacesServiceError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusRequestEntityTooLarge)
		_ = json.NewEncoder(w).Encode(map[string]string{"message": "payload too large"})
	}))
	defer srv.Close()

	client, err := NewClient(srv.URL, nil)
	require.NoError(t, err)

	_, err = client.Upload(context.Background(), "big.png", "", []byte("x"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "payload too large")
}

func TestNewClient_RequiresBaseURL(t *testing.T) {
	_, err := NewClient("", nil)
	assert.Error(t, err)
}
