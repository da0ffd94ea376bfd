package main

import (
	"context"
	"errors"
	"log"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/yourusername/marketbridge-bot/config"
	"github.com/yourusername/marketbridge-bot/internal/delivery/telegram"
	"github.com/yourusername/marketbridge-bot/internal/domain/repository"
	"github.com/yourusername/marketbridge-bot/internal/infrastructure/gemini"
	"github.com/yourusername/marketbridge-bot/internal/infrastructure/generator"
	"github.com/yourusername/marketbridge-bot/internal/infrastructure/report"
	"github.com/yourusername/marketbridge-bot/internal/infrastructure/storage"
	"github.com/yourusername/marketbridge-bot/internal/usecase"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Konfiguratsiya xatosi: %v", err)
	}

	// Katalogni generatsiya qilish
	seed := cfg.CatalogSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))
	catalog := generator.Generate(generator.DefaultMarkets(), generator.DefaultTaxonomy(), rng)
	log.Printf("Katalog tayyor: %d bozor, %d do'kon, %d mahsulot (seed=%d)",
		len(catalog.Markets), len(catalog.Shops), len(catalog.Products), seed)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	catalogRepo := storage.NewMemoryCatalogRepository()
	if err := catalogRepo.LoadCatalog(ctx, catalog); err != nil {
		log.Fatalf("Katalogni yuklab bo'lmadi: %v", err)
	}

	var orderRepo repository.OrderRepository
	orderRepo, err = storage.NewSQLiteOrderRepository(cfg.OrderDBPath)
	if err != nil {
		log.Printf("SQLite ochilmadi (%v), in-memory buyurtmalar ishlatiladi", err)
		orderRepo = storage.NewMemoryOrderRepository()
	}
	defer orderRepo.Close()

	aiRepo, err := gemini.NewGeminiClient(cfg.GeminiAPIKey)
	if err != nil {
		log.Fatalf("Gemini client xatosi: %v", err)
	}

	sellerRepo := storage.NewMemorySellerRepository()
	chatRepo := storage.NewMemoryChatRepository(cfg.MaxContextSize)
	reportWriter := report.NewExcelReportWriter()

	catalogUC := usecase.NewCatalogUseCase(catalogRepo)
	negotiationUC := usecase.NewNegotiationUseCase(aiRepo, orderRepo, nil)
	assistantUC := usecase.NewAssistantUseCase(aiRepo, chatRepo, catalogUC)
	sellerUC := usecase.NewSellerUseCase(sellerRepo, catalogRepo, orderRepo, aiRepo, reportWriter, cfg.SellerPassword)

	// Demo sotuvchi birinchi do'konga mahsulot joylaydi
	sellerShopID := ""
	if len(catalog.Shops) > 0 {
		sellerShopID = catalog.Shops[0].ID
	}

	handler, err := telegram.NewBotHandler(cfg.TelegramToken, catalogUC, negotiationUC, assistantUC, sellerUC, sellerShopID)
	if err != nil {
		log.Fatalf("Bot handler xatosi: %v", err)
	}

	if err := handler.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
		log.Fatalf("Bot xatosi: %v", err)
	}

	log.Println("Bot to'xtadi.")
}
