package blob

import (
	"context"
	"errors"

	blobclient "github.com/rawatr0788-code/Gamerz-Kit/internal/clients/http/blob"
	"github.com/rawatr0788-code/Gamerz-Kit/internal/domains/uploads/domain"
	"github.com/rawatr0788-code/Gamerz-Kit/internal/domains/uploads/ports"
)

// Store implements the BlobStore port over the blob service HTTP client.
type Store struct {
	client *blobclient.Client
}

// NewStore wires a blob HTTP client into a BlobStore adapter.
func NewStore(client *blobclient.Client) *Store {
	return &Store{client: client}
}

func (s *Store) Put(ctx context.Context, file domain.File) (string, error) {
	if s == nil || s.client == nil {
		return "", errors.New("blob store not configured")
	}
	return s.client.Upload(ctx, file.Name, file.ContentType, file.Data)
}

func (s *Store) Delete(ctx context.Context, url string) error {
	if s == nil || s.client == nil {
		return errors.New("blob store not configured")
	}
	if err := s.client.Delete(ctx, url); err != nil {
		if errors.Is(err, blobclient.ErrNotFound) {
			return domain.ErrBlobNotFound
		}
		return err
	}
	return nil
}

var _ ports.BlobStore = (*Store)(nil)
