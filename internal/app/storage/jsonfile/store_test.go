package jsonfile

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/shoplite/shoplite/internal/app/domain/order"
	"github.com/shoplite/shoplite/internal/app/domain/product"
	"github.com/shoplite/shoplite/internal/app/domain/user"
	"github.com/shoplite/shoplite/internal/app/storage"
	"github.com/shoplite/shoplite/internal/apperr"
)

func newTestStore(t *testing.T) (*Store, string) {
	t.Helper()
	dir := t.TempDir()
	store, err := New(dir, nil)
	require.NoError(t, err)
	return store, dir
}

func TestMissingFilesYieldEmptyCollections(t *testing.T) {
	store, dir := newTestStore(t)
	ctx := context.Background()

	products, err := store.ListProducts(ctx)
	require.NoError(t, err)
	require.Empty(t, products)

	orders, err := store.ListOrders(ctx)
	require.NoError(t, err)
	require.Empty(t, orders)

	_, err = store.GetUserByEmail(ctx, "nobody@x.com")
	require.ErrorIs(t, err, storage.ErrNotFound)

	// Reads alone must not create the files.
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Empty(t, entries)
}

func TestCorruptedFileSurfacesStorageError(t *testing.T) {
	store, dir := newTestStore(t)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "orders.json"), []byte("{truncated"), 0o644))

	_, err := store.ListOrders(context.Background())
	require.Error(t, err)

	var appErr *apperr.Error
	require.True(t, errors.As(err, &appErr))
	require.Equal(t, apperr.KindStorage, appErr.Kind)
}

func TestUserRoundTripAndDuplicate(t *testing.T) {
	store, dir := newTestStore(t)
	ctx := context.Background()

	created, err := store.CreateUser(ctx, user.User{Email: "a@x.com", PasswordHash: "$2a$10$hash"})
	require.NoError(t, err)
	require.Positive(t, created.ID)

	_, err = store.CreateUser(ctx, user.User{Email: "a@x.com", PasswordHash: "$2a$10$other"})
	require.ErrorIs(t, err, storage.ErrDuplicateEmail)

	// A fresh store over the same directory sees the persisted record.
	reopened, err := New(dir, nil)
	require.NoError(t, err)
	found, err := reopened.GetUserByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	require.Equal(t, created, found)
}

func TestOrderRoundTripPreservesAmounts(t *testing.T) {
	store, dir := newTestStore(t)
	ctx := context.Background()

	placed, err := store.CreateOrder(ctx, order.Order{
		UserID:  42,
		Address: "1 Main St",
		Total:   decimal.RequireFromString("119.98"),
		Items: []order.Item{
			{ProductID: 1, Name: "Widget", Price: decimal.RequireFromString("59.99"), Quantity: 2},
		},
	})
	require.NoError(t, err)
	require.Positive(t, placed.ID)
	require.False(t, placed.Date.IsZero())

	reopened, err := New(dir, nil)
	require.NoError(t, err)
	orders, err := reopened.ListOrders(ctx)
	require.NoError(t, err)
	require.Len(t, orders, 1)
	require.True(t, orders[0].Total.Equal(placed.Total), "total changed across persistence: %s", orders[0].Total)
	require.True(t, orders[0].Items[0].Price.Equal(placed.Items[0].Price))
	require.True(t, orders[0].Date.Equal(placed.Date))
}

func TestReplaceProductsRewritesFile(t *testing.T) {
	store, dir := newTestStore(t)
	ctx := context.Background()

	first := []product.Product{
		{ID: 1, Name: "Widget", Price: decimal.RequireFromString("9.99"), Image: "https://img/widget.jpg"},
		{ID: 2, Name: "Gadget", Price: decimal.RequireFromString("19.99"), Image: "https://img/gadget.jpg"},
	}
	require.NoError(t, store.ReplaceProducts(ctx, first))

	second := first[:1]
	require.NoError(t, store.ReplaceProducts(ctx, second))

	products, err := store.ListProducts(ctx)
	require.NoError(t, err)
	require.Len(t, products, 1)
	require.Equal(t, "Widget", products[0].Name)

	data, err := os.ReadFile(filepath.Join(dir, "products.json"))
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(string(data), "[\n"), "expected indented array, got %q", string(data[:8]))
	require.True(t, strings.HasSuffix(string(data), "\n"))
}

func TestReplaceProductsNilWritesEmptyArray(t *testing.T) {
	store, dir := newTestStore(t)

	require.NoError(t, store.ReplaceProducts(context.Background(), nil))

	data, err := os.ReadFile(filepath.Join(dir, "products.json"))
	require.NoError(t, err)
	require.Equal(t, "[]\n", string(data))
}

func TestWritesLeaveNoTempFiles(t *testing.T) {
	store, dir := newTestStore(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		_, err := store.CreateOrder(ctx, order.Order{UserID: 1, Address: "1 Main St"})
		require.NoError(t, err)
	}

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	for _, entry := range entries {
		require.False(t, strings.Contains(entry.Name(), ".tmp-"), "leftover temp file %s", entry.Name())
	}
}

func TestConcurrentSignupsKeepAllRecords(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	const workers = 16
	var wg sync.WaitGroup
	errs := make([]error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = store.CreateUser(ctx, user.User{
				Email:        "user" + string(rune('a'+i)) + "@x.com",
				PasswordHash: "$2a$10$hash",
			})
		}(i)
	}
	wg.Wait()

	for i, err := range errs {
		require.NoError(t, err, "worker %d", i)
	}
	users, err := store.ListUsers(ctx)
	require.NoError(t, err)
	require.Len(t, users, workers)
}
