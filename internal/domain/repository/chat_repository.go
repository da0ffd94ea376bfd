package repository

import (
	"context"

	"github.com/yourusername/marketbridge-bot/internal/domain/entity"
)

// ChatRepository AI yordamchi suhbat tarixi bilan ishlash uchun interface
type ChatRepository interface {
	// SaveMessage xabarni saqlash
	SaveMessage(ctx context.Context, message entity.Message) error

	// GetHistory foydalanuvchi suhbat tarixini olish
	GetHistory(ctx context.Context, userID int64, limit int) ([]entity.Message, error)

	// ClearHistory foydalanuvchi tarixini tozalash
	ClearHistory(ctx context.Context, userID int64) error
}
