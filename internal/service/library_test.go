package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gameshubapp/gameshub-server/internal/catalog/rawg"
	domainerrors "github.com/gameshubapp/gameshub-server/internal/errors"
)

func setupLibraryTest(t *testing.T, catalog Catalog) (*LibraryService, string, string) {
	t.Helper()
	s, sess := newTestStores(t)
	authSvc := NewAuthService(s, sess, newTestTokenService(t), testLogger())

	aliceID := registerTestUser(t, authSvc, "alice", "alice@example.com")
	bobID := registerTestUser(t, authSvc, "bob", "bob@example.com")

	if catalog == nil {
		catalog = &fakeCatalog{}
	}
	return NewLibraryService(s, catalog, testLogger()), aliceID, bobID
}

func TestLibraryCreate(t *testing.T) {
	svc, aliceID, _ := setupLibraryTest(t, nil)

	item, err := svc.Create(context.Background(), aliceID, CreateItemRequest{
		GameID: 3498,
		Status: "favorite",
		Title:  "Grand Theft Auto V",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, item.ID)
	assert.Equal(t, int64(3498), item.GameID)
	assert.Equal(t, "Grand Theft Auto V", item.Title)
}

func TestLibraryCreate_InvalidStatus(t *testing.T) {
	svc, aliceID, _ := setupLibraryTest(t, nil)

	for _, status := range []string{"", "owned", "FAVORITE"} {
		_, err := svc.Create(context.Background(), aliceID, CreateItemRequest{
			GameID: 3498,
			Status: status,
		})
		var derr *domainerrors.Error
		require.ErrorAs(t, err, &derr, "status %q", status)
		assert.Equal(t, domainerrors.CodeValidation, derr.Code)
	}
}

func TestLibraryCreate_Duplicate(t *testing.T) {
	svc, aliceID, _ := setupLibraryTest(t, nil)
	ctx := context.Background()

	_, err := svc.Create(ctx, aliceID, CreateItemRequest{GameID: 3498, Status: "favorite"})
	require.NoError(t, err)

	_, err = svc.Create(ctx, aliceID, CreateItemRequest{GameID: 3498, Status: "favorite"})
	var derr *domainerrors.Error
	require.ErrorAs(t, err, &derr)
	assert.Equal(t, domainerrors.CodeAlreadyExists, derr.Code)

	// Different status is a separate item.
	_, err = svc.Create(ctx, aliceID, CreateItemRequest{GameID: 3498, Status: "played"})
	require.NoError(t, err)
}

func TestAddFromCatalog(t *testing.T) {
	metacritic := 92
	catalog := &fakeCatalog{
		games: map[int64]*rawg.Game{
			3498: {
				ID:              3498,
				Name:            "Grand Theft Auto V",
				BackgroundImage: "https://media.rawg.io/gta5.jpg",
				Rating:          4.47,
				Metacritic:      &metacritic,
			},
		},
	}
	svc, aliceID, _ := setupLibraryTest(t, catalog)

	item, err := svc.AddFromCatalog(context.Background(), aliceID, AddFromCatalogRequest{
		GameID: 3498,
		Status: "wishlist",
	})
	require.NoError(t, err)
	assert.Equal(t, "Grand Theft Auto V", item.Title)
	assert.Equal(t, "https://media.rawg.io/gta5.jpg", item.BackgroundImage)
	require.NotNil(t, item.Rating)
	assert.InDelta(t, 4.47, *item.Rating, 0.001)
}

func TestAddFromCatalog_UpstreamFailure(t *testing.T) {
	catalog := &fakeCatalog{detailErr: rawg.ErrUpstream}
	svc, aliceID, _ := setupLibraryTest(t, catalog)
	ctx := context.Background()

	_, err := svc.AddFromCatalog(ctx, aliceID, AddFromCatalogRequest{GameID: 3498, Status: "wishlist"})
	var derr *domainerrors.Error
	require.ErrorAs(t, err, &derr)
	assert.Equal(t, domainerrors.CodeUpstream, derr.Code)

	// Nothing was persisted.
	items, err := svc.List(ctx, aliceID)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestAddFromCatalog_GameNotFound(t *testing.T) {
	svc, aliceID, _ := setupLibraryTest(t, &fakeCatalog{})

	_, err := svc.AddFromCatalog(context.Background(), aliceID, AddFromCatalogRequest{GameID: 999, Status: "wishlist"})
	var derr *domainerrors.Error
	require.ErrorAs(t, err, &derr)
	assert.Equal(t, domainerrors.CodeNotFound, derr.Code)
}

func TestLibraryGet_OwnerScoped(t *testing.T) {
	svc, aliceID, bobID := setupLibraryTest(t, nil)
	ctx := context.Background()

	item, err := svc.Create(ctx, aliceID, CreateItemRequest{GameID: 3498, Status: "favorite"})
	require.NoError(t, err)

	got, err := svc.Get(ctx, aliceID, item.ID)
	require.NoError(t, err)
	assert.Equal(t, item.ID, got.ID)

	// Bob sees not-found, not forbidden.
	_, err = svc.Get(ctx, bobID, item.ID)
	var derr *domainerrors.Error
	require.ErrorAs(t, err, &derr)
	assert.Equal(t, domainerrors.CodeNotFound, derr.Code)
}

func TestLibraryUpdate(t *testing.T) {
	svc, aliceID, _ := setupLibraryTest(t, nil)
	ctx := context.Background()

	item, err := svc.Create(ctx, aliceID, CreateItemRequest{GameID: 3498, Status: "wishlist"})
	require.NoError(t, err)

	updated, err := svc.Update(ctx, aliceID, item.ID, UpdateItemRequest{
		Status: strPtr("played"),
		Title:  strPtr("GTA V"),
	})
	require.NoError(t, err)
	assert.Equal(t, "played", string(updated.Status))
	assert.Equal(t, "GTA V", updated.Title)

	// Invalid status on update is rejected.
	_, err = svc.Update(ctx, aliceID, item.ID, UpdateItemRequest{Status: strPtr("backlog")})
	var derr *domainerrors.Error
	require.ErrorAs(t, err, &derr)
	assert.Equal(t, domainerrors.CodeValidation, derr.Code)
}

func TestLibraryUpdate_StatusCollision(t *testing.T) {
	svc, aliceID, _ := setupLibraryTest(t, nil)
	ctx := context.Background()

	_, err := svc.Create(ctx, aliceID, CreateItemRequest{GameID: 3498, Status: "favorite"})
	require.NoError(t, err)
	second, err := svc.Create(ctx, aliceID, CreateItemRequest{GameID: 3498, Status: "wishlist"})
	require.NoError(t, err)

	_, err = svc.Update(ctx, aliceID, second.ID, UpdateItemRequest{Status: strPtr("favorite")})
	var derr *domainerrors.Error
	require.ErrorAs(t, err, &derr)
	assert.Equal(t, domainerrors.CodeAlreadyExists, derr.Code)
}

func TestLibraryDelete(t *testing.T) {
	svc, aliceID, bobID := setupLibraryTest(t, nil)
	ctx := context.Background()

	item, err := svc.Create(ctx, aliceID, CreateItemRequest{GameID: 3498, Status: "favorite"})
	require.NoError(t, err)

	// Bob can't delete Alice's item.
	err = svc.Delete(ctx, bobID, item.ID)
	var derr *domainerrors.Error
	require.ErrorAs(t, err, &derr)
	assert.Equal(t, domainerrors.CodeNotFound, derr.Code)

	require.NoError(t, svc.Delete(ctx, aliceID, item.ID))

	// Second delete reports not found.
	err = svc.Delete(ctx, aliceID, item.ID)
	require.ErrorAs(t, err, &derr)
	assert.Equal(t, domainerrors.CodeNotFound, derr.Code)
}

func TestLibraryList_NewestFirstAndScoped(t *testing.T) {
	svc, aliceID, bobID := setupLibraryTest(t, nil)
	ctx := context.Background()

	for _, gameID := range []int64{100, 200, 300} {
		_, err := svc.Create(ctx, aliceID, CreateItemRequest{GameID: gameID, Status: "wishlist"})
		require.NoError(t, err)
	}
	_, err := svc.Create(ctx, bobID, CreateItemRequest{GameID: 400, Status: "wishlist"})
	require.NoError(t, err)

	items, err := svc.List(ctx, aliceID)
	require.NoError(t, err)
	require.Len(t, items, 3)
	assert.Equal(t, int64(300), items[0].GameID)
	assert.Equal(t, int64(100), items[2].GameID)
}
