package repository

import (
	"context"

	"github.com/yourusername/marketbridge-bot/internal/domain/entity"
)

// ReportWriter buyurtmalar hisobotini yaratish uchun interface
type ReportWriter interface {
	// BuildOrdersReport buyurtmalardan Excel hisobot yaratish
	BuildOrdersReport(ctx context.Context, orders []entity.Order) ([]byte, error)
}
