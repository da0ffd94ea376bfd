package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/yourusername/marketbridge-bot/internal/domain/entity"
)

func testCatalog() entity.Catalog {
	return entity.Catalog{
		Markets: []entity.Market{
			{ID: "m1", Name: "Orikzor Market", Type: "Wholesale & Retail"},
			{ID: "m2", Name: "Malika Electronics", Type: "Electronics & Gadgets"},
		},
		Shops: []entity.Shop{
			{ID: "s1", Name: "Rose Valley", MarketName: "Orikzor Market"},
			{ID: "s2", Name: "Apple Premium", MarketName: "Malika Electronics"},
		},
		Products: []entity.Product{
			{ID: "p1", Name: "Premium Red Roses", Category: "Flowers", Description: "Fresh Dutch roses", ListedPrice: 50, ShopID: "s1"},
			{ID: "p2", Name: "iPhone 15 Pro", Category: "Smartphones", Description: "Titanium, 256GB", ListedPrice: 1000, ShopID: "s2"},
			{ID: "p3", Name: "Samsung Galaxy S24", Category: "Smartphones", Description: "Flagship Android phone", ListedPrice: 850, ShopID: "s2"},
		},
	}
}

func newLoadedCatalog(t *testing.T) *memoryCatalogRepository {
	t.Helper()
	repo := NewMemoryCatalogRepository().(*memoryCatalogRepository)
	require.NoError(t, repo.LoadCatalog(context.Background(), testCatalog()))
	return repo
}

func TestLoadCatalogAndGetters(t *testing.T) {
	repo := newLoadedCatalog(t)
	ctx := context.Background()

	markets, err := repo.GetMarkets(ctx)
	require.NoError(t, err)
	require.Len(t, markets, 2)

	market, err := repo.GetMarketByID(ctx, "m2")
	require.NoError(t, err)
	require.Equal(t, "Malika Electronics", market.Name)

	_, err = repo.GetMarketByID(ctx, "m99")
	require.Error(t, err)

	shops, err := repo.GetShopsByMarket(ctx, "Orikzor Market")
	require.NoError(t, err)
	require.Len(t, shops, 1)
	require.Equal(t, "Rose Valley", shops[0].Name)

	products, err := repo.GetProductsByShop(ctx, "s2")
	require.NoError(t, err)
	require.Len(t, products, 2)

	product, err := repo.GetProductByID(ctx, "p1")
	require.NoError(t, err)
	require.Equal(t, "Premium Red Roses", product.Name)

	_, err = repo.GetProductByID(ctx, "p99")
	require.Error(t, err)
}

func TestSearchByNameAndCategory(t *testing.T) {
	repo := newLoadedCatalog(t)
	ctx := context.Background()

	results, err := repo.Search(ctx, "roses")
	require.NoError(t, err)
	require.Len(t, results, 1)
	require.Equal(t, "p1", results[0].ID)

	results, err = repo.Search(ctx, "smartphones")
	require.NoError(t, err)
	require.Len(t, results, 2)

	// Punktuatsiya va so'roq so'zlari qidiruvga xalaqit bermaydi
	results, err = repo.Search(ctx, "arzon iphone bormi?")
	require.NoError(t, err)
	require.NotEmpty(t, results)
	require.Equal(t, "p2", results[0].ID)

	results, err = repo.Search(ctx, "")
	require.NoError(t, err)
	require.Empty(t, results)

	results, err = repo.Search(ctx, "velosiped")
	require.NoError(t, err)
	require.Empty(t, results, "mos kelmagan so'rovga tasodifiy mahsulot qaytmasligi kerak")
}

func TestAddProductAppendOnly(t *testing.T) {
	repo := newLoadedCatalog(t)
	ctx := context.Background()

	before, err := repo.GetAllProducts(ctx)
	require.NoError(t, err)

	newProduct := entity.Product{ID: "p4", Name: "Tulip Bouquet", ListedPrice: 25, ShopID: "s1"}
	require.NoError(t, repo.AddProduct(ctx, newProduct))

	after, err := repo.GetAllProducts(ctx)
	require.NoError(t, err)
	require.Len(t, after, len(before)+1)

	// Mavjud yozuvlar o'zgarmagan
	for i, p := range before {
		require.Equal(t, p, after[i])
	}

	got, err := repo.GetProductByID(ctx, "p4")
	require.NoError(t, err)
	require.Equal(t, "Tulip Bouquet", got.Name)

	err = repo.AddProduct(ctx, newProduct)
	require.Error(t, err, "bir xil ID qayta qo'shilmaydi")
}
