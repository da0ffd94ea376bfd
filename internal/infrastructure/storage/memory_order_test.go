package storage

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/yourusername/marketbridge-bot/internal/domain/entity"
)

func TestOrderSaveAndSort(t *testing.T) {
	repo := NewMemoryOrderRepository()
	ctx := context.Background()
	base := time.Now()

	orders := []entity.Order{
		{ID: "ord-1", ShopID: "s1", AgreedPrice: 46, Timestamp: base.Add(-2 * time.Hour)},
		{ID: "ord-2", ShopID: "s2", AgreedPrice: 920, Timestamp: base},
		{ID: "ord-3", ShopID: "s1", AgreedPrice: 30, Timestamp: base.Add(-1 * time.Hour)},
	}
	for _, o := range orders {
		require.NoError(t, repo.SaveOrder(ctx, o))
	}

	all, err := repo.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	require.Equal(t, "ord-2", all[0].ID, "eng yangi buyurtma birinchi turadi")
	require.Equal(t, "ord-3", all[1].ID)
	require.Equal(t, "ord-1", all[2].ID)

	byShop, err := repo.GetByShop(ctx, "s1")
	require.NoError(t, err)
	require.Len(t, byShop, 2)
	for _, o := range byShop {
		require.Equal(t, "s1", o.ShopID)
	}

	require.NoError(t, repo.Close())
}

func TestOrderTranscriptIsolated(t *testing.T) {
	repo := NewMemoryOrderRepository()
	ctx := context.Background()

	transcript := []entity.Turn{
		{ID: "t1", Speaker: entity.SpeakerBuyer, Text: "46"},
	}
	order := entity.Order{ID: "ord-1", AgreedPrice: 46, Timestamp: time.Now(), Transcript: transcript}
	require.NoError(t, repo.SaveOrder(ctx, order))

	// Chaqiruvchi slice'ni o'zgartirsa saqlangan nusxa buzilmaydi
	transcript[0].Text = "o'zgartirildi"

	all, err := repo.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	require.Equal(t, "46", all[0].Transcript[0].Text)
}
