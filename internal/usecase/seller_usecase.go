package usecase

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/yourusername/marketbridge-bot/internal/domain/entity"
	"github.com/yourusername/marketbridge-bot/internal/domain/repository"
)

// Sotuvchi oqimi xatolari
var (
	ErrNotSeller    = errors.New("user is not a seller")
	ErrInvalidDraft = errors.New("draft name and price are required")
)

// SellerStats sotuvchi statistikasi
type SellerStats struct {
	DailyRevenue   int
	MonthlyRevenue int
	TotalOrders    int
	DailyCount     int
}

// SellerUseCase sotuvchi bilan bog'liq business logic
type SellerUseCase interface {
	// Login sotuvchi login qilish
	Login(ctx context.Context, userID int64, password string) (bool, error)

	// Logout sotuvchi logout qilish
	Logout(ctx context.Context, userID int64) error

	// IsSeller sotuvchi ekanligini tekshirish
	IsSeller(ctx context.Context, userID int64) (bool, error)

	// DescribeImage rasmdan mahsulot qoralamasini olish (AI skaner)
	DescribeImage(ctx context.Context, userID int64, image []byte, mimeType string) (*entity.ProductDraft, error)

	// ListProduct qoralamadan mahsulotni katalogga joylash
	ListProduct(ctx context.Context, userID int64, draft entity.ProductDraft, shopID string, stockCount int) (*entity.Product, error)

	// Stats kunlik va oylik tushum
	Stats(ctx context.Context) (*SellerStats, error)

	// Orders barcha buyurtmalarni olish
	Orders(ctx context.Context) ([]entity.Order, error)

	// OrdersReport buyurtmalardan Excel hisobot yaratish
	OrdersReport(ctx context.Context, userID int64) ([]byte, error)
}

type sellerUseCase struct {
	sellerRepo   repository.SellerRepository
	catalogRepo  repository.CatalogRepository
	orderRepo    repository.OrderRepository
	aiRepo       repository.AIRepository
	reportWriter repository.ReportWriter
	password     string
}

// NewSellerUseCase yangi SellerUseCase yaratish
func NewSellerUseCase(
	sellerRepo repository.SellerRepository,
	catalogRepo repository.CatalogRepository,
	orderRepo repository.OrderRepository,
	aiRepo repository.AIRepository,
	reportWriter repository.ReportWriter,
	password string,
) SellerUseCase {
	return &sellerUseCase{
		sellerRepo:   sellerRepo,
		catalogRepo:  catalogRepo,
		orderRepo:    orderRepo,
		aiRepo:       aiRepo,
		reportWriter: reportWriter,
		password:     password,
	}
}

// Login sotuvchi login qilish
func (u *sellerUseCase) Login(ctx context.Context, userID int64, password string) (bool, error) {
	if password != u.password {
		return false, nil
	}

	session := entity.SellerSession{
		UserID:       userID,
		IsSeller:     true,
		LoginTime:    time.Now(),
		LastActivity: time.Now(),
	}

	if err := u.sellerRepo.CreateSession(ctx, session); err != nil {
		return false, fmt.Errorf("failed to create session: %w", err)
	}

	action := entity.SellerAction{
		ID:        uuid.New().String(),
		UserID:    userID,
		Action:    "login",
		Details:   "Seller successfully logged in",
		Timestamp: time.Now(),
	}
	_ = u.sellerRepo.LogAction(ctx, action)

	return true, nil
}

// Logout sotuvchi logout qilish
func (u *sellerUseCase) Logout(ctx context.Context, userID int64) error {
	return u.sellerRepo.DeleteSession(ctx, userID)
}

// IsSeller sotuvchi ekanligini tekshirish
func (u *sellerUseCase) IsSeller(ctx context.Context, userID int64) (bool, error) {
	return u.sellerRepo.IsSeller(ctx, userID)
}

// DescribeImage rasmdan mahsulot qoralamasini olish (AI skaner)
func (u *sellerUseCase) DescribeImage(ctx context.Context, userID int64, image []byte, mimeType string) (*entity.ProductDraft, error) {
	isSeller, err := u.sellerRepo.IsSeller(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !isSeller {
		return nil, ErrNotSeller
	}

	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	return u.aiRepo.DescribeProduct(ctx, image, mimeType)
}

// ListProduct qoralamadan mahsulotni katalogga joylash.
// Minimal narx kanonik formula bilan hisoblanadi; mavjud mahsulotlar
// o'zgarmaydi, faqat yangi yozuv qo'shiladi.
func (u *sellerUseCase) ListProduct(ctx context.Context, userID int64, draft entity.ProductDraft, shopID string, stockCount int) (*entity.Product, error) {
	isSeller, err := u.sellerRepo.IsSeller(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !isSeller {
		return nil, ErrNotSeller
	}

	price, err := ParsePriceTag(draft.EstimatedPrice)
	if err != nil || draft.Name == "" || price <= 0 {
		return nil, ErrInvalidDraft
	}

	if stockCount < 0 {
		stockCount = 0
	}

	product := entity.Product{
		ID:           "p-" + uuid.New().String(),
		Name:         draft.Name,
		ListedPrice:  price,
		FloorPrice:   entity.FloorPriceFor(price),
		Description:  draft.Description,
		Category:     draft.Category,
		ShopID:       shopID,
		StockCount:   stockCount,
		StockStatus:  entity.StockStatusFor(stockCount),
		IsNegotiable: true,
		CreatedAt:    time.Now(),
	}

	if err := u.catalogRepo.AddProduct(ctx, product); err != nil {
		return nil, fmt.Errorf("failed to add product: %w", err)
	}

	action := entity.SellerAction{
		ID:        uuid.New().String(),
		UserID:    userID,
		Action:    "list_product",
		Details:   fmt.Sprintf("Listed %s at %s", product.Name, product.PriceTag()),
		Timestamp: time.Now(),
	}
	_ = u.sellerRepo.LogAction(ctx, action)

	return &product, nil
}

// Stats kunlik va oylik tushum
func (u *sellerUseCase) Stats(ctx context.Context) (*SellerStats, error) {
	orders, err := u.orderRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	startOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	stats := &SellerStats{TotalOrders: len(orders)}
	for _, order := range orders {
		if !order.Timestamp.Before(startOfDay) {
			stats.DailyRevenue += order.AgreedPrice
			stats.DailyCount++
		}
		if !order.Timestamp.Before(startOfMonth) {
			stats.MonthlyRevenue += order.AgreedPrice
		}
	}

	return stats, nil
}

// Orders barcha buyurtmalarni olish
func (u *sellerUseCase) Orders(ctx context.Context) ([]entity.Order, error) {
	return u.orderRepo.GetAll(ctx)
}

// OrdersReport buyurtmalardan Excel hisobot yaratish
func (u *sellerUseCase) OrdersReport(ctx context.Context, userID int64) ([]byte, error) {
	isSeller, err := u.sellerRepo.IsSeller(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !isSeller {
		return nil, ErrNotSeller
	}

	orders, err := u.orderRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	data, err := u.reportWriter.BuildOrdersReport(ctx, orders)
	if err != nil {
		return nil, fmt.Errorf("failed to build report: %w", err)
	}

	action := entity.SellerAction{
		ID:        uuid.New().String(),
		UserID:    userID,
		Action:    "export_report",
		Details:   fmt.Sprintf("Exported report with %d orders", len(orders)),
		Timestamp: time.Now(),
	}
	_ = u.sellerRepo.LogAction(ctx, action)

	return data, nil
}

// ParsePriceTag "$940" yoki "940" ko'rinishidagi narxni parse qilish
func ParsePriceTag(raw string) (int, error) {
	cleaned := strings.TrimSpace(raw)
	cleaned = strings.TrimPrefix(cleaned, "$")
	cleaned = strings.ReplaceAll(cleaned, ",", "")
	if idx := strings.IndexByte(cleaned, '.'); idx >= 0 {
		cleaned = cleaned[:idx] // Tsent qismini tashlaymiz
	}
	value, err := strconv.Atoi(cleaned)
	if err != nil {
		return 0, fmt.Errorf("narxni o'qib bo'lmadi: %q", raw)
	}
	return value, nil
}
