package cart

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/giftnest/giftnest-backend/internal/products"
	pkgerrors "github.com/giftnest/giftnest-backend/pkg/errors"
)

func setupCartTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	require.NoError(t, err)

	productsDDL := `
CREATE TABLE IF NOT EXISTS products (
  id TEXT PRIMARY KEY,
  category_id TEXT,
  name TEXT NOT NULL,
  description TEXT NOT NULL DEFAULT '',
  price_cents INTEGER NOT NULL,
  image_url TEXT NOT NULL DEFAULT '',
  is_active INTEGER NOT NULL DEFAULT 1,
  created_at DATETIME,
  updated_at DATETIME
);`
	cartItemsDDL := `
CREATE TABLE IF NOT EXISTS cart_items (
  id TEXT PRIMARY KEY,
  user_id TEXT NOT NULL,
  product_id TEXT NOT NULL,
  quantity INTEGER NOT NULL DEFAULT 0,
  is_favourite INTEGER NOT NULL DEFAULT 0,
  created_at DATETIME,
  updated_at DATETIME,
  UNIQUE (user_id, product_id)
);`
	require.NoError(t, db.Exec(productsDDL).Error)
	require.NoError(t, db.Exec(cartItemsDDL).Error)
	return db
}

func seedCatalogProduct(t *testing.T, db *gorm.DB, name string, priceCents int64) uuid.UUID {
	t.Helper()
	id := uuid.New()
	require.NoError(t, db.Exec(
		`INSERT INTO products (id, name, price_cents, is_active, created_at, updated_at) VALUES (?, ?, ?, 1, ?, ?)`,
		id, name, priceCents, time.Now(), time.Now(),
	).Error)
	return id
}

func newCartService(t *testing.T, db *gorm.DB) Service {
	t.Helper()
	svc, err := NewService(ServiceParams{
		CartRepo:    NewRepository(db),
		ProductRepo: products.NewRepository(db),
	})
	require.NoError(t, err)
	return svc
}

func TestAddItemCreatesThenIncrements(t *testing.T) {
	db := setupCartTestDB(t)
	svc := newCartService(t, db)
	ctx := context.Background()

	userID := uuid.New()
	productID := seedCatalogProduct(t, db, "Fairy Lights", 1250)

	require.NoError(t, svc.AddItem(ctx, WriteInput{UserID: userID, ProductID: productID, Quantity: 1}))
	require.NoError(t, svc.AddItem(ctx, WriteInput{UserID: userID, ProductID: productID, Quantity: 2}))

	cart, err := svc.GetCart(ctx, userID)
	require.NoError(t, err)
	require.Len(t, cart.CartItems, 1)
	assert.Equal(t, 3, cart.CartItems[0].Quantity)
	assert.Equal(t, "Fairy Lights", cart.CartItems[0].ProductName)
	assert.Equal(t, int64(3750), cart.SubtotalCents)
}

func TestAddItemRejectsUnknownProduct(t *testing.T) {
	db := setupCartTestDB(t)
	svc := newCartService(t, db)

	err := svc.AddItem(context.Background(), WriteInput{
		UserID:    uuid.New(),
		ProductID: uuid.New(),
		Quantity:  1,
	})
	require.Error(t, err)

	var coded *pkgerrors.Error
	require.ErrorAs(t, err, &coded)
	assert.Equal(t, pkgerrors.CodeNotFound, coded.Code())
}

func TestSetItemUpsertsAbsoluteState(t *testing.T) {
	db := setupCartTestDB(t)
	svc := newCartService(t, db)
	ctx := context.Background()

	userID := uuid.New()
	productID := seedCatalogProduct(t, db, "Gift Wrap", 500)

	// creates when absent
	require.NoError(t, svc.SetItem(ctx, WriteInput{UserID: userID, ProductID: productID, Quantity: 4}))
	cart, err := svc.GetCart(ctx, userID)
	require.NoError(t, err)
	require.Len(t, cart.CartItems, 1)
	assert.Equal(t, 4, cart.CartItems[0].Quantity)

	// overwrites, not increments
	require.NoError(t, svc.SetItem(ctx, WriteInput{UserID: userID, ProductID: productID, Quantity: 2, IsFavourite: true}))
	cart, err = svc.GetCart(ctx, userID)
	require.NoError(t, err)
	require.Len(t, cart.CartItems, 1)
	assert.Equal(t, 2, cart.CartItems[0].Quantity)
	assert.True(t, cart.CartItems[0].IsFavourite)
}

func TestSetItemDeletesEmptyUnfavouritedLine(t *testing.T) {
	db := setupCartTestDB(t)
	svc := newCartService(t, db)
	ctx := context.Background()

	userID := uuid.New()
	productID := seedCatalogProduct(t, db, "Candle", 799)

	require.NoError(t, svc.SetItem(ctx, WriteInput{UserID: userID, ProductID: productID, Quantity: 2}))
	require.NoError(t, svc.SetItem(ctx, WriteInput{UserID: userID, ProductID: productID, Quantity: 0, IsFavourite: false}))

	cart, err := svc.GetCart(ctx, userID)
	require.NoError(t, err)
	assert.Empty(t, cart.CartItems)
}

func TestSetItemKeepsQuantityZeroFavourite(t *testing.T) {
	db := setupCartTestDB(t)
	svc := newCartService(t, db)
	ctx := context.Background()

	userID := uuid.New()
	productID := seedCatalogProduct(t, db, "Wishlisted Star", 1500)

	require.NoError(t, svc.SetItem(ctx, WriteInput{UserID: userID, ProductID: productID, Quantity: 0, IsFavourite: true}))

	cart, err := svc.GetCart(ctx, userID)
	require.NoError(t, err)
	require.Len(t, cart.CartItems, 1)
	assert.Equal(t, 0, cart.CartItems[0].Quantity)
	assert.True(t, cart.CartItems[0].IsFavourite)
	assert.Equal(t, int64(0), cart.SubtotalCents)
}

func TestRemoveItemIsIdempotent(t *testing.T) {
	db := setupCartTestDB(t)
	svc := newCartService(t, db)
	ctx := context.Background()

	userID := uuid.New()
	productID := seedCatalogProduct(t, db, "Ribbon", 250)

	require.NoError(t, svc.AddItem(ctx, WriteInput{UserID: userID, ProductID: productID, Quantity: 1}))
	require.NoError(t, svc.RemoveItem(ctx, userID, productID))
	require.NoError(t, svc.RemoveItem(ctx, userID, productID))

	cart, err := svc.GetCart(ctx, userID)
	require.NoError(t, err)
	assert.Empty(t, cart.CartItems)
}

func TestPurgeEmptyLines(t *testing.T) {
	db := setupCartTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	userID := uuid.New()
	keep := seedCatalogProduct(t, db, "Keep", 100)
	drop := seedCatalogProduct(t, db, "Drop", 100)

	require.NoError(t, db.Exec(
		`INSERT INTO cart_items (id, user_id, product_id, quantity, is_favourite, created_at, updated_at) VALUES (?, ?, ?, 0, 1, ?, ?)`,
		uuid.New(), userID, keep, time.Now(), time.Now(),
	).Error)
	require.NoError(t, db.Exec(
		`INSERT INTO cart_items (id, user_id, product_id, quantity, is_favourite, created_at, updated_at) VALUES (?, ?, ?, 0, 0, ?, ?)`,
		uuid.New(), userID, drop, time.Now(), time.Now(),
	).Error)

	purged, err := repo.PurgeEmptyLines(ctx)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, purged, int64(1))

	lines, err := repo.ListLines(ctx, userID)
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, keep, lines[0].ProductID)
}
