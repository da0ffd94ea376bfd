package storage

import (
	"context"
	"sync"
	"time"

	"github.com/yourusername/marketbridge-bot/internal/domain/entity"
	"github.com/yourusername/marketbridge-bot/internal/domain/repository"
)

type chatContext struct {
	messages []entity.Message
	lastUsed time.Time
}

type memoryChatRepository struct {
	mu       sync.RWMutex
	contexts map[int64]*chatContext
	maxSize  int
}

// NewMemoryChatRepository in-memory chat repository yaratish
func NewMemoryChatRepository(maxContextSize int) repository.ChatRepository {
	return &memoryChatRepository{
		contexts: make(map[int64]*chatContext),
		maxSize:  maxContextSize,
	}
}

// SaveMessage xabarni saqlash
func (m *memoryChatRepository) SaveMessage(ctx context.Context, message entity.Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	chatCtx, exists := m.contexts[message.UserID]
	if !exists {
		chatCtx = &chatContext{}
		m.contexts[message.UserID] = chatCtx
	}

	chatCtx.messages = append(chatCtx.messages, message)
	chatCtx.lastUsed = time.Now()

	// Maksimal hajmni nazorat qilish
	if len(chatCtx.messages) > m.maxSize {
		chatCtx.messages = chatCtx.messages[len(chatCtx.messages)-m.maxSize:]
	}

	return nil
}

// GetHistory foydalanuvchi suhbat tarixini olish
func (m *memoryChatRepository) GetHistory(ctx context.Context, userID int64, limit int) ([]entity.Message, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	chatCtx, exists := m.contexts[userID]
	if !exists {
		return []entity.Message{}, nil
	}

	messages := chatCtx.messages
	if limit > 0 && len(messages) > limit {
		messages = messages[len(messages)-limit:]
	}

	return append([]entity.Message{}, messages...), nil
}

// ClearHistory foydalanuvchi tarixini tozalash
func (m *memoryChatRepository) ClearHistory(ctx context.Context, userID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.contexts, userID)
	return nil
}
