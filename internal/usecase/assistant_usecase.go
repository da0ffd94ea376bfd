package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/yourusername/marketbridge-bot/internal/domain/entity"
	"github.com/yourusername/marketbridge-bot/internal/domain/repository"
)

const assistantInstruction = `You are a helpful MarketBridge Assistant. ` +
	`Recommend specific products from the context. Always use the EXACT product name so I can link it. ` +
	`Speak in English. Keep it concise.`

// AssistantUseCase AI yordamchi bilan bog'liq business logic
type AssistantUseCase interface {
	// ProcessQuery savolga javob va (topilsa) mos mahsulotni qaytarish
	ProcessQuery(ctx context.Context, userID int64, username, text string) (string, *entity.Product, error)

	// ClearHistory foydalanuvchi tarixini tozalash
	ClearHistory(ctx context.Context, userID int64) error
}

type assistantUseCase struct {
	aiRepo      repository.AIRepository
	chatRepo    repository.ChatRepository
	catalogUC   CatalogUseCase
	historySize int
}

// NewAssistantUseCase yangi AssistantUseCase yaratish
func NewAssistantUseCase(
	aiRepo repository.AIRepository,
	chatRepo repository.ChatRepository,
	catalogUC CatalogUseCase,
) AssistantUseCase {
	return &assistantUseCase{
		aiRepo:      aiRepo,
		chatRepo:    chatRepo,
		catalogUC:   catalogUC,
		historySize: 10,
	}
}

// ProcessQuery savolga javob va (topilsa) mos mahsulotni qaytarish
func (u *assistantUseCase) ProcessQuery(ctx context.Context, userID int64, username, text string) (string, *entity.Product, error) {
	// AI so'rovlari osilib qolmasligi uchun timeout
	ctx, cancel := context.WithTimeout(ctx, 20*time.Second)
	defer cancel()

	history, err := u.chatRepo.GetHistory(ctx, userID, u.historySize)
	if err != nil {
		return "", nil, fmt.Errorf("failed to get history: %w", err)
	}

	contextText, err := u.catalogUC.ContextText(ctx)
	if err != nil {
		return "", nil, fmt.Errorf("failed to build catalog context: %w", err)
	}

	instruction := fmt.Sprintf("Context: %s\n\n%s", contextText, assistantInstruction)

	response, err := u.aiRepo.AssistantReply(ctx, text, history, instruction)
	if err != nil {
		return "", nil, fmt.Errorf("failed to generate response: %w", err)
	}

	// Javobda aniq nomi kelgan mahsulotni kartaga bog'laymiz
	matched, err := u.catalogUC.MatchProduct(ctx, response)
	if err != nil {
		matched = nil
	}

	message := entity.Message{
		ID:        uuid.New().String(),
		UserID:    userID,
		Username:  username,
		Text:      text,
		Response:  response,
		Timestamp: time.Now(),
	}
	if err := u.chatRepo.SaveMessage(ctx, message); err != nil {
		return "", nil, fmt.Errorf("failed to save message: %w", err)
	}

	return response, matched, nil
}

// ClearHistory foydalanuvchi tarixini tozalash
func (u *assistantUseCase) ClearHistory(ctx context.Context, userID int64) error {
	return u.chatRepo.ClearHistory(ctx, userID)
}
