package storage

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/yourusername/marketbridge-bot/internal/domain/entity"
	"github.com/yourusername/marketbridge-bot/internal/domain/repository"
)

type memorySellerRepository struct {
	mu       sync.RWMutex
	sessions map[int64]entity.SellerSession
	actions  []entity.SellerAction
}

// NewMemorySellerRepository in-memory seller repository yaratish
func NewMemorySellerRepository() repository.SellerRepository {
	return &memorySellerRepository{
		sessions: make(map[int64]entity.SellerSession),
		actions:  []entity.SellerAction{},
	}
}

// CreateSession sotuvchi sessiyasini yaratish
func (m *memorySellerRepository) CreateSession(ctx context.Context, session entity.SellerSession) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	session.LastActivity = time.Now()
	m.sessions[session.UserID] = session
	return nil
}

// GetSession sessiyani olish
func (m *memorySellerRepository) GetSession(ctx context.Context, userID int64) (*entity.SellerSession, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	session, exists := m.sessions[userID]
	if !exists {
		return nil, fmt.Errorf("session not found for user %d", userID)
	}

	return &session, nil
}

// DeleteSession sessiyani o'chirish (logout)
func (m *memorySellerRepository) DeleteSession(ctx context.Context, userID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.sessions, userID)
	return nil
}

// IsSeller foydalanuvchi sotuvchi ekanligini tekshirish
func (m *memorySellerRepository) IsSeller(ctx context.Context, userID int64) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	session, exists := m.sessions[userID]
	if !exists {
		return false, nil
	}

	// Session timeout tekshirish (24 soat)
	if time.Since(session.LastActivity) > 24*time.Hour {
		return false, nil
	}

	return session.IsSeller, nil
}

// LogAction sotuvchi harakatini loglash
func (m *memorySellerRepository) LogAction(ctx context.Context, action entity.SellerAction) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.actions = append(m.actions, action)
	return nil
}
