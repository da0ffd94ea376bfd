package repository

import (
	"context"

	"github.com/yourusername/marketbridge-bot/internal/domain/entity"
)

// SellerRepository sotuvchi sessiyalari bilan ishlash uchun interface
type SellerRepository interface {
	// CreateSession sotuvchi sessiyasini yaratish
	CreateSession(ctx context.Context, session entity.SellerSession) error

	// GetSession sessiyani olish
	GetSession(ctx context.Context, userID int64) (*entity.SellerSession, error)

	// DeleteSession sessiyani o'chirish (logout)
	DeleteSession(ctx context.Context, userID int64) error

	// IsSeller foydalanuvchi sotuvchi ekanligini tekshirish
	IsSeller(ctx context.Context, userID int64) (bool, error)

	// LogAction sotuvchi harakatini loglash
	LogAction(ctx context.Context, action entity.SellerAction) error
}
