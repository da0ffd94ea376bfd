package storage

import (
	"context"
	"sort"
	"sync"

	"github.com/yourusername/marketbridge-bot/internal/domain/entity"
	"github.com/yourusername/marketbridge-bot/internal/domain/repository"
)

type memoryOrderRepository struct {
	mu     sync.RWMutex
	orders []entity.Order
}

// NewMemoryOrderRepository in-memory order repository yaratish
func NewMemoryOrderRepository() repository.OrderRepository {
	return &memoryOrderRepository{
		orders: []entity.Order{},
	}
}

// SaveOrder buyurtmani saqlash
func (m *memoryOrderRepository) SaveOrder(ctx context.Context, order entity.Order) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	// Transkript nusxasini saqlaymiz, chaqiruvchi slice'ini emas
	order.Transcript = append([]entity.Turn{}, order.Transcript...)
	m.orders = append(m.orders, order)
	return nil
}

// GetAll barcha buyurtmalarni olish (yangi -> eski)
func (m *memoryOrderRepository) GetAll(ctx context.Context) ([]entity.Order, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	all := append([]entity.Order{}, m.orders...)
	sort.Slice(all, func(i, j int) bool {
		return all[i].Timestamp.After(all[j].Timestamp)
	})
	return all, nil
}

// GetByShop do'kon bo'yicha buyurtmalarni olish
func (m *memoryOrderRepository) GetByShop(ctx context.Context, shopID string) ([]entity.Order, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var results []entity.Order
	for _, order := range m.orders {
		if order.ShopID == shopID {
			results = append(results, order)
		}
	}
	sort.Slice(results, func(i, j int) bool {
		return results[i].Timestamp.After(results[j].Timestamp)
	})
	return results, nil
}

// Close resurslarni yopish
func (m *memoryOrderRepository) Close() error {
	return nil
}
