package catalog_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/tazhibayda/inventory-service/internal/apperr"
	"github.com/tazhibayda/inventory-service/internal/catalog"
	"github.com/tazhibayda/inventory-service/internal/domain"
)

func ptr[T any](v T) *T { return &v }

func TestService_DuplicateNameRejected(t *testing.T) {
	for _, k := range domain.Kinds {
		t.Run(string(k), func(t *testing.T) {
			repo := newMemCatalog(k)
			svc := catalog.NewService(repo, &fakeAssets{})
			ctx := context.Background()

			_, err := svc.Create(ctx, catalog.Input{Name: "Used"})
			require.NoError(t, err)

			_, err = svc.Create(ctx, catalog.Input{Name: " Used "})
			require.Error(t, err)
			assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
			assert.Contains(t, err.Error(), "already exists")
			assert.Equal(t, 1, repo.len())
		})
	}
}

func TestService_CreateRequiresName(t *testing.T) {
	svc := catalog.NewService(newMemCatalog(domain.KindCategory), &fakeAssets{})
	_, err := svc.Create(context.Background(), catalog.Input{Name: "  "})
	assert.EqualError(t, err, "Please enter name category")
}

func TestService_CreateUploadsAvatar(t *testing.T) {
	store := &fakeAssets{}
	svc := catalog.NewService(newMemCatalog(domain.KindCategory), store)

	it, err := svc.Create(context.Background(), catalog.Input{Name: "Phones", Avatar: "data:image/png;base64,AA=="})
	require.NoError(t, err)
	require.NotNil(t, it.Avatar)
	assert.Equal(t, "category/1", it.Avatar.PublicID)
}

func TestService_Edit(t *testing.T) {
	store := &fakeAssets{}
	svc := catalog.NewService(newMemCatalog(domain.KindStatus), store)
	ctx := context.Background()

	a, err := svc.Create(ctx, catalog.Input{Name: "New", Avatar: "data:image/png;base64,AA=="})
	require.NoError(t, err)
	_, err = svc.Create(ctx, catalog.Input{Name: "Sold"})
	require.NoError(t, err)

	_, err = svc.Edit(ctx, a.ID.Hex(), catalog.Patch{Name: ptr("Sold")})
	assert.EqualError(t, err, "Name status already exists")

	same, err := svc.Edit(ctx, a.ID.Hex(), catalog.Patch{Name: ptr("New"), Description: ptr("fresh stock")})
	require.NoError(t, err, "renaming to its own name is allowed")
	assert.Equal(t, "fresh stock", same.Description)

	edited, err := svc.Edit(ctx, a.ID.Hex(), catalog.Patch{Avatar: "data:image/png;base64,BB=="})
	require.NoError(t, err)
	assert.Equal(t, "status/2", edited.Avatar.PublicID)
	assert.Equal(t, []string{"status/1"}, store.deleted)
}

func TestService_EditFailureDropsUpload(t *testing.T) {
	store := &fakeAssets{}
	repo := newMemCatalog(domain.KindCondition)
	svc := catalog.NewService(repo, store)
	ctx := context.Background()

	it, err := svc.Create(ctx, catalog.Input{Name: "Used", Avatar: "data:image/png;base64,AA=="})
	require.NoError(t, err)

	repo.updateErr = errDup
	_, err = svc.Edit(ctx, it.ID.Hex(), catalog.Patch{Avatar: "data:image/png;base64,BB=="})
	require.Error(t, err)
	assert.Equal(t, []string{"condition/2"}, store.deleted, "fresh upload removed, original kept")

	got, err := svc.Get(ctx, it.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, "condition/1", got.Avatar.PublicID)
}

func TestService_GetAndDelete(t *testing.T) {
	store := &fakeAssets{}
	svc := catalog.NewService(newMemCatalog(domain.KindCondition), store)
	ctx := context.Background()

	_, err := svc.Get(ctx, "not-an-id")
	assert.ErrorIs(t, err, apperr.ErrInvalidID)

	_, err = svc.Get(ctx, primitive.NewObjectID().Hex())
	assert.EqualError(t, err, "Condition not found")
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))

	it, err := svc.Create(ctx, catalog.Input{Name: "Mint", Avatar: "data:image/png;base64,AA=="})
	require.NoError(t, err)
	require.NoError(t, svc.Delete(ctx, it.ID.Hex()))
	assert.Equal(t, []string{"condition/1"}, store.deleted)

	err = svc.Delete(ctx, it.ID.Hex())
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}
