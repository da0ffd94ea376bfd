package repository

import (
	"context"

	"github.com/yourusername/marketbridge-bot/internal/domain/entity"
)

// OrderRepository buyurtmalar bilan ishlash uchun interface.
// Buyurtmalar faqat qo'shiladi, update/delete yo'li yo'q.
type OrderRepository interface {
	// SaveOrder buyurtmani saqlash
	SaveOrder(ctx context.Context, order entity.Order) error

	// GetAll barcha buyurtmalarni olish (yangi -> eski)
	GetAll(ctx context.Context) ([]entity.Order, error)

	// GetByShop do'kon bo'yicha buyurtmalarni olish
	GetByShop(ctx context.Context, shopID string) ([]entity.Order, error)

	// Close resurslarni yopish
	Close() error
}
