package application

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rawatr0788-code/Gamerz-Kit/internal/domains/catalog/adapters/memory"
	"github.com/rawatr0788-code/Gamerz-Kit/internal/domains/catalog/application/types"
	"github.com/rawatr0788-code/Gamerz-Kit/internal/domains/catalog/domain"
	"github.com/rawatr0788-code/Gamerz-Kit/internal/domains/catalog/ports"
	identity "github.com/rawatr0788-code/Gamerz-Kit/internal/domains/identity/domain"
	uploadmemory "github.com/rawatr0788-code/Gamerz-Kit/internal/domains/uploads/adapters/memory"
	uploadapp "github.com/rawatr0788-code/Gamerz-Kit/internal/domains/uploads/application"
	uploaddomain "github.com/rawatr0788-code/Gamerz-Kit/internal/domains/uploads/domain"
	"github.com/rawatr0788-code/Gamerz-Kit/internal/shared/apperrors"
	"github.com/rawatr0788-code/Gamerz-Kit/internal/shared/authz"
	"github.com/rawatr0788-code/Gamerz-Kit/internal/shared/clock"
	"github.com/rawatr0788-code/Gamerz-Kit/internal/shared/events"
)

const adminEmail = "owner@gamerz.test"

var (
	admin    = identity.Authenticated{UID: "u-admin", Email: adminEmail, DisplayName: "Owner"}
	customer = identity.Authenticated{UID: "u-1", Email: "player@gamerz.test", DisplayName: "Player"}
)

type spyUploader struct {
	mu        sync.Mutex
	uploaded  []string
	committed []string
	orphaned  []string
	failWith  error
}

func (s *spyUploader) Upload(ctx context.Context, file uploaddomain.File) (string, error) {
	urls, err := s.UploadAll(ctx, []uploaddomain.File{file})
	if err != nil {
		return "", err
	}
	return urls[0], nil
}

func (s *spyUploader) UploadAll(_ context.Context, files []uploaddomain.File) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failWith != nil {
		return nil, apperrors.Upload(s.failWith)
	}
	urls := make([]string, 0, len(files))
	for _, f := range files {
		urls = append(urls, "https://cdn.test/"+f.Name)
	}
	s.uploaded = append(s.uploaded, urls...)
	return urls, nil
}

func (s *spyUploader) Commit(_ context.Context, urls ...string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.committed = append(s.committed, urls...)
}

func (s *spyUploader) Orphaned(_ context.Context, _ error, urls ...string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.orphaned = append(s.orphaned, urls...)
}

type failingRepository struct {
	*memory.Repository
}

func (failingRepository) Save(context.Context, *domain.Product) (*domain.Product, error) {
	return nil, apperrors.Network(errors.New("connection refused"))
}

func image(name string) uploaddomain.File {
	return uploaddomain.File{Name: name, ContentType: "image/png", Data: []byte(name)}
}

func validCreateInput() types.CreateProductInput {
	return types.CreateProductInput{
		Name:        "Controller Skin",
		Price:       "199.50",
		Description: "Matte finish",
		Tags:        []string{"skins", " pad ", "skins"},
		QRCodeURL:   "https://pay.test/qr.png",
		Images:      []uploaddomain.File{image("front.png"), image("back.png")},
	}
}

func newTestService(repo ports.Repository, uploads *spyUploader, opts ...Option) *Service {
	opts = append([]Option{
		WithClock(clock.NewFixed(time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC))),
		WithIDGenerator(func() string { return "p-1" }),
	}, opts...)
	return NewService(repo, uploads, authz.NewGate(adminEmail), opts...)
}

func TestCreateProduct_Admin(t *testing.T) {
	repo := memory.NewRepository()
	uploads := &spyUploader{}
	recorder := &events.Recorder{}
	svc := newTestService(repo, uploads, WithPublisher(recorder))

	product, err := svc.CreateProduct(context.Background(), admin, validCreateInput())
	require.NoError(t, err)

	assert.Equal(t, "p-1", product.ID)
	assert.True(t, decimal.RequireFromString("199.5").Equal(product.Price))
	assert.Equal(t, []string{"https://cdn.test/front.png", "https://cdn.test/back.png"}, product.Images)
	assert.Equal(t, []string{"skins", "pad"}, product.Tags)
	assert.Equal(t, product.Images, uploads.committed)
	assert.Empty(t, uploads.orphaned)
	assert.Equal(t, []string{"catalog.product.created"}, recorder.Names())

	stored, err := repo.GetByID(context.Background(), "p-1")
	require.NoError(t, err)
	assert.Equal(t, product.Images, stored.Images)
}

func TestCreateProduct_RejectsNonAdminBeforeAnySideEffect(t *testing.T) {
	tests := []struct {
		name  string
		actor identity.Identity
		kind  error
	}{
		{name: "anonymous", actor: identity.Anonymous{}, kind: apperrors.ErrUnauthenticated},
		{name: "customer", actor: customer, kind: apperrors.ErrAuthorization},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := memory.NewRepository()
			uploads := &spyUploader{}
			svc := newTestService(repo, uploads)

			_, err := svc.CreateProduct(context.Background(), tt.actor, validCreateInput())
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.kind)
			assert.ErrorIs(t, err, apperrors.ErrAuthorization)
			assert.Empty(t, uploads.uploaded)

			list, err := repo.List(context.Background())
			require.NoError(t, err)
			assert.Empty(t, list)
		})
	}
}

func TestCreateProduct_ValidationBeforeUpload(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*types.CreateProductInput)
		want   error
	}{
		{name: "missing name", mutate: func(in *types.CreateProductInput) { in.Name = "  " }, want: domain.ErrEmptyName},
		{name: "missing price", mutate: func(in *types.CreateProductInput) { in.Price = "" }, want: domain.ErrMissingPrice},
		{name: "non numeric price", mutate: func(in *types.CreateProductInput) { in.Price = "cheap" }, want: domain.ErrInvalidPrice},
		{name: "negative price", mutate: func(in *types.CreateProductInput) { in.Price = "-1" }, want: domain.ErrNegativePrice},
		{name: "three decimal price", mutate: func(in *types.CreateProductInput) { in.Price = "19.999" }, want: domain.ErrPricePrecision},
		{name: "relative qr code", mutate: func(in *types.CreateProductInput) { in.QRCodeURL = "qr.png" }, want: domain.ErrInvalidQRCodeURL},
		{name: "no images", mutate: func(in *types.CreateProductInput) { in.Images = nil }, want: domain.ErrNoImages},
		{name: "empty file", mutate: func(in *types.CreateProductInput) { in.Images[1].Data = nil }, want: uploaddomain.ErrEmptyFile},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uploads := &spyUploader{}
			svc := newTestService(memory.NewRepository(), uploads)
			input := validCreateInput()
			tt.mutate(&input)

			_, err := svc.CreateProduct(context.Background(), admin, input)
			require.Error(t, err)
			assert.ErrorIs(t, err, apperrors.ErrValidation)
			assert.ErrorIs(t, err, tt.want)
			assert.Empty(t, uploads.uploaded)
		})
	}
}

func TestCreateProduct_UploadFailureWritesNothing(t *testing.T) {
	repo := memory.NewRepository()
	uploads := &spyUploader{failWith: errors.New("quota exceeded")}
	svc := newTestService(repo, uploads)

	_, err := svc.CreateProduct(context.Background(), admin, validCreateInput())
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrUpload)

	list, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestCreateProduct_SaveFailureReportsOrphans(t *testing.T) {
	uploads := &spyUploader{}
	svc := newTestService(failingRepository{memory.NewRepository()}, uploads)

	_, err := svc.CreateProduct(context.Background(), admin, validCreateInput())
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrNetwork)
	assert.Equal(t, uploads.uploaded, uploads.orphaned)
	assert.Empty(t, uploads.committed)
}

func TestCreateProduct_InvalidFileUploadsNothing(t *testing.T) {
	blobs := uploadmemory.NewBlobStore("https://cdn.test")
	intents := uploadmemory.NewIntentStore()
	coordinator := uploadapp.NewCoordinator(blobs, uploadapp.WithIntentStore(intents))
	svc := NewService(memory.NewRepository(), coordinator, authz.NewGate(adminEmail))

	input := validCreateInput()
	input.Images = append(input.Images, uploaddomain.File{Name: "broken.png"})
	_, err := svc.CreateProduct(context.Background(), admin, input)
	require.Error(t, err)
	assert.Equal(t, 0, blobs.Len())
	assert.Equal(t, 0, intents.Pending())
}

func seedProduct(t *testing.T, repo ports.Repository) *domain.Product {
	t.Helper()
	product, err := domain.NewProduct("p-1", "Headset", decimal.NewFromInt(999), "", []string{"audio"},
		"https://pay.test/qr.png", []string{"https://cdn.test/a.png"}, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	saved, err := repo.Save(context.Background(), product)
	require.NoError(t, err)
	return saved
}

func strPtr(s string) *string { return &s }

func TestUpdateProduct_AppendsImagesAndPatchesFields(t *testing.T) {
	repo := memory.NewRepository()
	seedProduct(t, repo)
	uploads := &spyUploader{}
	recorder := &events.Recorder{}
	svc := newTestService(repo, uploads, WithPublisher(recorder))

	tags := []string{"audio", "wireless"}
	updated, err := svc.UpdateProduct(context.Background(), admin, types.UpdateProductInput{
		ID:        "p-1",
		Price:     strPtr("899"),
		Tags:      &tags,
		NewImages: []uploaddomain.File{image("c.png")},
	})
	require.NoError(t, err)

	assert.Equal(t, "Headset", updated.Name)
	assert.True(t, decimal.NewFromInt(899).Equal(updated.Price))
	assert.Equal(t, []string{"https://cdn.test/a.png", "https://cdn.test/c.png"}, updated.Images)
	assert.Equal(t, tags, updated.Tags)
	assert.Equal(t, time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC), updated.UpdatedAt)

	evts := recorder.Events()
	require.Len(t, evts, 1)
	evt, ok := evts[0].(domain.ProductUpdated)
	require.True(t, ok)
	assert.Equal(t, 1, evt.AddedImages)
	assert.True(t, decimal.NewFromInt(999).Equal(evt.PreviousPrice))
}

func TestUpdateProduct_ThreeImagesPlusTwoKeepsOriginalOrder(t *testing.T) {
	repo := memory.NewRepository()
	product, err := domain.NewProduct("p-1", "Headset", decimal.NewFromInt(999), "", nil, "https://pay.test/qr.png",
		[]string{"https://cdn.test/1.png", "https://cdn.test/2.png", "https://cdn.test/3.png"},
		time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	_, err = repo.Save(context.Background(), product)
	require.NoError(t, err)
	svc := newTestService(repo, &spyUploader{})

	updated, err := svc.UpdateProduct(context.Background(), admin, types.UpdateProductInput{
		ID:        "p-1",
		NewImages: []uploaddomain.File{image("4.png"), image("5.png")},
	})
	require.NoError(t, err)

	want := []string{
		"https://cdn.test/1.png",
		"https://cdn.test/2.png",
		"https://cdn.test/3.png",
		"https://cdn.test/4.png",
		"https://cdn.test/5.png",
	}
	assert.Equal(t, want, updated.Images)
	stored, err := repo.GetByID(context.Background(), "p-1")
	require.NoError(t, err)
	assert.Equal(t, want, stored.Images)
}

func TestUpdateProduct_InvalidFieldLeavesStoredProductUntouched(t *testing.T) {
	repo := memory.NewRepository()
	seedProduct(t, repo)
	uploads := &spyUploader{}
	svc := newTestService(repo, uploads)

	_, err := svc.UpdateProduct(context.Background(), admin, types.UpdateProductInput{
		ID:        "p-1",
		Name:      strPtr(""),
		NewImages: []uploaddomain.File{image("c.png")},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrValidation)
	assert.Empty(t, uploads.uploaded)

	stored, err := repo.GetByID(context.Background(), "p-1")
	require.NoError(t, err)
	assert.Equal(t, "Headset", stored.Name)
	assert.Len(t, stored.Images, 1)
}

func TestUpdateProduct_NotFound(t *testing.T) {
	svc := newTestService(memory.NewRepository(), &spyUploader{})

	_, err := svc.UpdateProduct(context.Background(), admin, types.UpdateProductInput{ID: "missing", Name: strPtr("x")})
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestUpdateProduct_RequiresAdmin(t *testing.T) {
	repo := memory.NewRepository()
	seedProduct(t, repo)
	svc := newTestService(repo, &spyUploader{})

	_, err := svc.UpdateProduct(context.Background(), customer, types.UpdateProductInput{ID: "p-1", Name: strPtr("Hacked")})
	assert.ErrorIs(t, err, apperrors.ErrAuthorization)

	stored, err := repo.GetByID(context.Background(), "p-1")
	require.NoError(t, err)
	assert.Equal(t, "Headset", stored.Name)
}

func TestDeleteProduct(t *testing.T) {
	repo := memory.NewRepository()
	seedProduct(t, repo)
	recorder := &events.Recorder{}
	svc := newTestService(repo, &spyUploader{}, WithPublisher(recorder))

	require.ErrorIs(t, svc.DeleteProduct(context.Background(), customer, "p-1"), apperrors.ErrAuthorization)
	require.NoError(t, svc.DeleteProduct(context.Background(), admin, "p-1"))
	assert.ErrorIs(t, svc.DeleteProduct(context.Background(), admin, "p-1"), apperrors.ErrNotFound)
	assert.Equal(t, []string{"catalog.product.deleted"}, recorder.Names())

	_, err := svc.GetProduct(context.Background(), "p-1")
	assert.ErrorIs(t, err, ports.ErrNotFound)
}

func TestListProducts_IsPublic(t *testing.T) {
	repo := memory.NewRepository()
	seedProduct(t, repo)
	svc := newTestService(repo, &spyUploader{})

	list, err := svc.ListProducts(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Headset", list[0].Name)
}
