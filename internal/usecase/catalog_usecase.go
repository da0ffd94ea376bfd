package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/yourusername/marketbridge-bot/internal/domain/entity"
	"github.com/yourusername/marketbridge-bot/internal/domain/repository"
)

// CatalogUseCase katalog bilan bog'liq business logic
type CatalogUseCase interface {
	// Markets barcha bozorlarni olish
	Markets(ctx context.Context) ([]entity.Market, error)

	// Market ID bo'yicha bozorni olish
	Market(ctx context.Context, id string) (*entity.Market, error)

	// Shops bozor bo'yicha do'konlarni olish
	Shops(ctx context.Context, marketID string) ([]entity.Shop, error)

	// Shop ID bo'yicha do'konni olish
	Shop(ctx context.Context, id string) (*entity.Shop, error)

	// Products do'kon bo'yicha mahsulotlarni olish
	Products(ctx context.Context, shopID string) ([]entity.Product, error)

	// Product ID bo'yicha mahsulotni olish
	Product(ctx context.Context, id string) (*entity.Product, error)

	// Search mahsulot qidirish
	Search(ctx context.Context, query string) ([]entity.Product, error)

	// ContextText AI yordamchi uchun katalog kontekstini tuzish
	ContextText(ctx context.Context) (string, error)

	// MatchProduct matnda aniq nomi tilga olingan mahsulotni topish
	MatchProduct(ctx context.Context, text string) (*entity.Product, error)
}

type catalogUseCase struct {
	catalogRepo repository.CatalogRepository
}

// NewCatalogUseCase yangi CatalogUseCase yaratish
func NewCatalogUseCase(catalogRepo repository.CatalogRepository) CatalogUseCase {
	return &catalogUseCase{
		catalogRepo: catalogRepo,
	}
}

// Markets barcha bozorlarni olish
func (u *catalogUseCase) Markets(ctx context.Context) ([]entity.Market, error) {
	return u.catalogRepo.GetMarkets(ctx)
}

// Market ID bo'yicha bozorni olish
func (u *catalogUseCase) Market(ctx context.Context, id string) (*entity.Market, error) {
	return u.catalogRepo.GetMarketByID(ctx, id)
}

// Shops bozor bo'yicha do'konlarni olish
func (u *catalogUseCase) Shops(ctx context.Context, marketID string) ([]entity.Shop, error) {
	market, err := u.catalogRepo.GetMarketByID(ctx, marketID)
	if err != nil {
		return nil, err
	}
	return u.catalogRepo.GetShopsByMarket(ctx, market.Name)
}

// Shop ID bo'yicha do'konni olish
func (u *catalogUseCase) Shop(ctx context.Context, id string) (*entity.Shop, error) {
	return u.catalogRepo.GetShopByID(ctx, id)
}

// Products do'kon bo'yicha mahsulotlarni olish
func (u *catalogUseCase) Products(ctx context.Context, shopID string) ([]entity.Product, error) {
	return u.catalogRepo.GetProductsByShop(ctx, shopID)
}

// Product ID bo'yicha mahsulotni olish
func (u *catalogUseCase) Product(ctx context.Context, id string) (*entity.Product, error) {
	return u.catalogRepo.GetProductByID(ctx, id)
}

// Search mahsulot qidirish
func (u *catalogUseCase) Search(ctx context.Context, query string) ([]entity.Product, error) {
	return u.catalogRepo.Search(ctx, query)
}

// ContextText AI yordamchi uchun katalog kontekstini tuzish
func (u *catalogUseCase) ContextText(ctx context.Context) (string, error) {
	markets, err := u.catalogRepo.GetMarkets(ctx)
	if err != nil {
		return "", err
	}
	products, err := u.catalogRepo.GetAllProducts(ctx)
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	sb.WriteString("Markets: ")
	for i, market := range markets {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(market.Name)
	}
	sb.WriteString(".\nCurrent Products:\n")

	for _, product := range products {
		shopName := product.ShopID
		if shop, err := u.catalogRepo.GetShopByID(ctx, product.ShopID); err == nil {
			shopName = shop.Name
		}
		sb.WriteString(fmt.Sprintf("- %s (%s) - Shop: %s", product.Name, product.PriceTag(), shopName))
		if product.StockStatus == entity.StockStatusLow {
			sb.WriteString(" [Low Stock]")
		}
		sb.WriteString("\n")
	}

	return sb.String(), nil
}

// MatchProduct matnda aniq nomi tilga olingan mahsulotni topish.
// AI javobidan mahsulot kartasini bog'lash uchun ishlatiladi.
func (u *catalogUseCase) MatchProduct(ctx context.Context, text string) (*entity.Product, error) {
	products, err := u.catalogRepo.GetAllProducts(ctx)
	if err != nil {
		return nil, err
	}

	lower := strings.ToLower(text)
	for _, product := range products {
		if strings.Contains(lower, strings.ToLower(product.Name)) {
			result := product
			return &result, nil
		}
	}
	return nil, nil
}
