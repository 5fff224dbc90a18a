package repositories_test

import (
	"context"
	"path/filepath"
	"sync"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/internal/apperror"
	"storefront/internal/models"
	"storefront/internal/repositories"
)

func newCartRepo(t *testing.T) (*repositories.FileCartRepository, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "carts.json")
	repo, err := repositories.NewFileCartRepository(afero.NewOsFs(), path)
	require.NoError(t, err)
	return repo, path
}

func TestFileCartRepository_Create(t *testing.T) {
	repo, _ := newCartRepo(t)
	ctx := context.Background()

	first, err := repo.Create(ctx)
	require.NoError(t, err)
	assert.Equal(t, "1", first.ID)
	assert.NotNil(t, first.Products)
	assert.Empty(t, first.Products)

	second, err := repo.Create(ctx)
	require.NoError(t, err)
	assert.Equal(t, "2", second.ID)
}

func TestFileCartRepository_GetByIDNotFound(t *testing.T) {
	repo, _ := newCartRepo(t)

	_, err := repo.GetByID(context.Background(), "42")
	assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))
	assert.Equal(t, "Cart with id 42 not found", err.Error())
}

func TestFileCartRepository_AddLineMergesQuantities(t *testing.T) {
	repo, _ := newCartRepo(t)
	ctx := context.Background()

	cart, err := repo.Create(ctx)
	require.NoError(t, err)

	_, err = repo.AddLine(ctx, cart.ID, "1")
	require.NoError(t, err)
	_, err = repo.AddLine(ctx, cart.ID, "2")
	require.NoError(t, err)
	updated, err := repo.AddLine(ctx, cart.ID, "1")
	require.NoError(t, err)

	want := []models.CartLine{
		{Product: "1", Quantity: 2},
		{Product: "2", Quantity: 1},
	}
	assert.Equal(t, want, updated.Products)

	got, err := repo.GetByID(ctx, cart.ID)
	require.NoError(t, err)
	assert.Equal(t, want, got.Products)
}

func TestFileCartRepository_AddLineUnknownCart(t *testing.T) {
	repo, _ := newCartRepo(t)

	_, err := repo.AddLine(context.Background(), "9", "1")
	assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))
	assert.Equal(t, "Cart with id 9 not found", err.Error())
}

func TestFileCartRepository_ConcurrentAddLine(t *testing.T) {
	repo, _ := newCartRepo(t)
	ctx := context.Background()

	cart, err := repo.Create(ctx)
	require.NoError(t, err)

	const k = 50
	var wg sync.WaitGroup
	for i := 0; i < k; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := repo.AddLine(ctx, cart.ID, "7")
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	got, err := repo.GetByID(ctx, cart.ID)
	require.NoError(t, err)
	require.Len(t, got.Products, 1)
	assert.Equal(t, models.CartLine{Product: "7", Quantity: k}, got.Products[0])
}

func TestFileCartRepository_SurvivesReopen(t *testing.T) {
	repo, path := newCartRepo(t)
	ctx := context.Background()

	cart, err := repo.Create(ctx)
	require.NoError(t, err)
	_, err = repo.AddLine(ctx, cart.ID, "3")
	require.NoError(t, err)

	reopened, err := repositories.NewFileCartRepository(afero.NewOsFs(), path)
	require.NoError(t, err)
	got, err := reopened.GetByID(ctx, cart.ID)
	require.NoError(t, err)
	assert.Equal(t, []models.CartLine{{Product: "3", Quantity: 1}}, got.Products)
}
