package entity

import (
	"fmt"
	"time"
)

// Stock statuslari
const (
	StockStatusIn  = "In Stock"
	StockStatusLow = "Low Stock"
)

// Product mahsulot entity
type Product struct {
	ID           string
	Name         string
	ListedPrice  int // Dollarda, musbat butun son
	FloorPrice   int // Sotuvchi rozi bo'ladigan minimal narx
	Description  string
	ImageURL     string
	Category     string
	ShopID       string
	StockCount   int
	StockStatus  string
	IsNegotiable bool
	CreatedAt    time.Time
}

// PriceTag narxni "$N" ko'rinishida qaytarish
func (p Product) PriceTag() string {
	return fmt.Sprintf("$%d", p.ListedPrice)
}

// FloorPriceFor narxdan minimal narxni hisoblash.
// Kanonik formula: floor(0.92 * narx), generatsiyada ham,
// sotuvchi qo'lda mahsulot qo'shganda ham shu ishlatiladi.
func FloorPriceFor(listedPrice int) int {
	return listedPrice * 92 / 100
}

// StockStatusFor ombor soniga qarab statusni aniqlash
func StockStatusFor(stockCount int) string {
	if stockCount < 10 {
		return StockStatusLow
	}
	return StockStatusIn
}

// ProductDraft AI skanerdan kelgan mahsulot qoralamasi
type ProductDraft struct {
	Name           string `json:"name"`
	EstimatedPrice string `json:"estimatedPrice"`
	Category       string `json:"category"`
	Description    string `json:"description"`
}

// Catalog generatsiya qilingan to'liq katalog
type Catalog struct {
	Markets  []Market
	Shops    []Shop
	Products []Product
}
