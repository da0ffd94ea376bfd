package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config ilovaning konfiguratsiyasi
type Config struct {
	TelegramToken  string
	GeminiAPIKey   string
	SellerPassword string
	OrderDBPath    string
	CatalogSeed    int64
	MaxContextSize int
}

// Load konfiguratsiyani yuklash
func Load() (*Config, error) {
	// .env faylini yuklash (mavjud bo'lsa)
	_ = godotenv.Load()

	config := &Config{
		TelegramToken:  os.Getenv("TELEGRAM_BOT_TOKEN"),
		GeminiAPIKey:   os.Getenv("GEMINI_API_KEY"),
		SellerPassword: os.Getenv("SELLER_PASSWORD"),
		MaxContextSize: 20, // Default qiymat
		OrderDBPath:    "data/orders.db",
	}

	if dbPath := os.Getenv("ORDER_DB_PATH"); dbPath != "" {
		config.OrderDBPath = dbPath
	}

	// Katalog seedi: berilmasa har ishga tushishda yangi katalog
	if rawSeed := os.Getenv("CATALOG_SEED"); rawSeed != "" {
		if parsed, err := strconv.ParseInt(rawSeed, 10, 64); err == nil {
			config.CatalogSeed = parsed
		} else {
			return nil, fmt.Errorf("CATALOG_SEED noto'g'ri formatda: %v", err)
		}
	}

	// Validatsiya
	if config.TelegramToken == "" {
		return nil, fmt.Errorf("TELEGRAM_BOT_TOKEN environment variable bo'sh")
	}
	if config.GeminiAPIKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY environment variable bo'sh")
	}
	if config.SellerPassword == "" {
		config.SellerPassword = "baraka" // Demo paroli
	}

	return config, nil
}
