package repository

import (
	"context"

	"github.com/yourusername/marketbridge-bot/internal/domain/entity"
)

// CatalogRepository katalog bilan ishlash uchun interface.
// Katalog bir marta generatsiya qilinadi, keyin faqat o'qiladi;
// yangi mahsulot qo'shish mavjudlarini o'zgartirmaydi.
type CatalogRepository interface {
	// LoadCatalog generatsiya qilingan katalogni yuklash
	LoadCatalog(ctx context.Context, catalog entity.Catalog) error

	// GetMarkets barcha bozorlarni olish
	GetMarkets(ctx context.Context) ([]entity.Market, error)

	// GetMarketByID ID bo'yicha bozorni olish
	GetMarketByID(ctx context.Context, id string) (*entity.Market, error)

	// GetShopsByMarket bozor nomi bo'yicha do'konlarni olish
	GetShopsByMarket(ctx context.Context, marketName string) ([]entity.Shop, error)

	// GetShopByID ID bo'yicha do'konni olish
	GetShopByID(ctx context.Context, id string) (*entity.Shop, error)

	// GetProductsByShop do'kon bo'yicha mahsulotlarni olish
	GetProductsByShop(ctx context.Context, shopID string) ([]entity.Product, error)

	// GetProductByID ID bo'yicha mahsulotni olish
	GetProductByID(ctx context.Context, id string) (*entity.Product, error)

	// Search mahsulot qidirish
	Search(ctx context.Context, query string) ([]entity.Product, error)

	// GetAllProducts barcha mahsulotlarni olish
	GetAllProducts(ctx context.Context) ([]entity.Product, error)

	// AddProduct yangi mahsulot qo'shish (sotuvchi oqimi)
	AddProduct(ctx context.Context, product entity.Product) error
}
