package storage

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/yourusername/marketbridge-bot/internal/domain/entity"
)

func TestChatHistoryTrim(t *testing.T) {
	repo := NewMemoryChatRepository(3)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		msg := entity.Message{
			ID:     fmt.Sprintf("msg-%d", i),
			UserID: 100,
			Text:   fmt.Sprintf("savol %d", i),
		}
		require.NoError(t, repo.SaveMessage(ctx, msg))
	}

	history, err := repo.GetHistory(ctx, 100, 0)
	require.NoError(t, err)
	require.Len(t, history, 3, "eski xabarlar chegaradan chiqib ketadi")
	require.Equal(t, "msg-2", history[0].ID)
	require.Equal(t, "msg-4", history[2].ID)

	history, err = repo.GetHistory(ctx, 100, 2)
	require.NoError(t, err)
	require.Len(t, history, 2)
	require.Equal(t, "msg-3", history[0].ID)
}

func TestChatHistoryPerUser(t *testing.T) {
	repo := NewMemoryChatRepository(10)
	ctx := context.Background()

	require.NoError(t, repo.SaveMessage(ctx, entity.Message{ID: "a", UserID: 1, Text: "gul bormi?"}))
	require.NoError(t, repo.SaveMessage(ctx, entity.Message{ID: "b", UserID: 2, Text: "telefon kerak"}))

	history, err := repo.GetHistory(ctx, 1, 0)
	require.NoError(t, err)
	require.Len(t, history, 1)
	require.Equal(t, "gul bormi?", history[0].Text)

	require.NoError(t, repo.ClearHistory(ctx, 1))
	history, err = repo.GetHistory(ctx, 1, 0)
	require.NoError(t, err)
	require.Empty(t, history)

	// Boshqa foydalanuvchi tarixi saqlanib qoladi
	history, err = repo.GetHistory(ctx, 2, 0)
	require.NoError(t, err)
	require.Len(t, history, 1)
}
