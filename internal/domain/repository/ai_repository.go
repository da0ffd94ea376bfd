package repository

import (
	"context"

	"github.com/yourusername/marketbridge-bot/internal/domain/entity"
)

// AIRepository AI bilan ishlash uchun interface
type AIRepository interface {
	// SellerReply sotuvchi nomidan savdolashish javobini yaratish.
	// history oldingi gallar, instruction sotuvchi personasi.
	SellerReply(ctx context.Context, message string, history []entity.Turn, instruction string) (string, error)

	// AssistantReply bozor yordamchisi javobini yaratish
	AssistantReply(ctx context.Context, message string, history []entity.Message, instruction string) (string, error)

	// DescribeProduct rasmdan mahsulot qoralamasini yaratish
	DescribeProduct(ctx context.Context, image []byte, mimeType string) (*entity.ProductDraft, error)
}
