package storage

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/yourusername/marketbridge-bot/internal/domain/entity"
	"github.com/yourusername/marketbridge-bot/internal/domain/repository"
)

type memoryCatalogRepository struct {
	mu       sync.RWMutex
	markets  []entity.Market
	shops    []entity.Shop
	products []entity.Product
	byID     map[string]int // product ID -> products indeksi
}

// NewMemoryCatalogRepository in-memory katalog repository yaratish
func NewMemoryCatalogRepository() repository.CatalogRepository {
	return &memoryCatalogRepository{
		byID: make(map[string]int),
	}
}

// LoadCatalog generatsiya qilingan katalogni yuklash
func (m *memoryCatalogRepository) LoadCatalog(ctx context.Context, catalog entity.Catalog) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.markets = append([]entity.Market{}, catalog.Markets...)
	m.shops = append([]entity.Shop{}, catalog.Shops...)
	m.products = append([]entity.Product{}, catalog.Products...)

	m.byID = make(map[string]int, len(m.products))
	for i, product := range m.products {
		m.byID[product.ID] = i
	}

	return nil
}

// GetMarkets barcha bozorlarni olish
func (m *memoryCatalogRepository) GetMarkets(ctx context.Context) ([]entity.Market, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return append([]entity.Market{}, m.markets...), nil
}

// GetMarketByID ID bo'yicha bozorni olish
func (m *memoryCatalogRepository) GetMarketByID(ctx context.Context, id string) (*entity.Market, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, market := range m.markets {
		if market.ID == id {
			result := market
			return &result, nil
		}
	}
	return nil, fmt.Errorf("market not found: %s", id)
}

// GetShopsByMarket bozor nomi bo'yicha do'konlarni olish
func (m *memoryCatalogRepository) GetShopsByMarket(ctx context.Context, marketName string) ([]entity.Shop, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var results []entity.Shop
	for _, shop := range m.shops {
		if shop.MarketName == marketName {
			results = append(results, shop)
		}
	}
	return results, nil
}

// GetShopByID ID bo'yicha do'konni olish
func (m *memoryCatalogRepository) GetShopByID(ctx context.Context, id string) (*entity.Shop, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, shop := range m.shops {
		if shop.ID == id {
			result := shop
			return &result, nil
		}
	}
	return nil, fmt.Errorf("shop not found: %s", id)
}

// GetProductsByShop do'kon bo'yicha mahsulotlarni olish
func (m *memoryCatalogRepository) GetProductsByShop(ctx context.Context, shopID string) ([]entity.Product, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var results []entity.Product
	for _, product := range m.products {
		if product.ShopID == shopID {
			results = append(results, product)
		}
	}
	return results, nil
}

// GetProductByID ID bo'yicha mahsulotni olish
func (m *memoryCatalogRepository) GetProductByID(ctx context.Context, id string) (*entity.Product, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	idx, exists := m.byID[id]
	if !exists {
		return nil, fmt.Errorf("product not found: %s", id)
	}
	result := m.products[idx]
	return &result, nil
}

// Search mahsulot qidirish: nom, kategoriya va tavsif bo'yicha
func (m *memoryCatalogRepository) Search(ctx context.Context, query string) ([]entity.Product, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return nil, nil
	}
	queryNorm := normalizeAlphaNum(query)
	tokens := normalizeTokens(filterTokens(queryTokens(query)))

	var results []entity.Product
	var scored []scoredProduct

	for _, product := range m.products {
		nameLower := strings.ToLower(product.Name)
		catLower := strings.ToLower(product.Category)
		descLower := strings.ToLower(product.Description)
		nameNorm := normalizeAlphaNum(product.Name)

		if strings.Contains(nameLower, query) ||
			strings.Contains(catLower, query) ||
			strings.Contains(descLower, query) ||
			(queryNorm != "" && strings.Contains(nameNorm, queryNorm)) {
			results = append(results, product)
			continue
		}

		// Ballar berib o'xshashlikni aniqlaymiz
		score := similarityScore(tokens, nameNorm, normalizeAlphaNum(product.Category), normalizeAlphaNum(product.Description))
		if score >= 2 {
			scored = append(scored, scoredProduct{Product: product, Score: score})
		}
	}

	// To'g'ridan-to'g'ri topilmasa, ball bo'yicha eng yaxshi 6 tasini qaytaramiz
	if len(results) == 0 && len(scored) > 0 {
		sort.Slice(scored, func(i, j int) bool {
			if scored[i].Score == scored[j].Score {
				return scored[i].Product.ListedPrice < scored[j].Product.ListedPrice
			}
			return scored[i].Score > scored[j].Score
		})
		for _, sp := range scored {
			if len(results) < 6 {
				results = append(results, sp.Product)
			}
		}
	}

	// Hech narsa topilmasa bo'sh ro'yxat - tasodifiy mahsulot ko'rsatmaymiz
	return results, nil
}

// GetAllProducts barcha mahsulotlarni olish
func (m *memoryCatalogRepository) GetAllProducts(ctx context.Context) ([]entity.Product, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return append([]entity.Product{}, m.products...), nil
}

// AddProduct yangi mahsulot qo'shish.
// Faqat qo'shadi: mavjud yozuvlar o'zgarmaydi, parallel o'qishlar bilan xavfsiz.
func (m *memoryCatalogRepository) AddProduct(ctx context.Context, product entity.Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.byID[product.ID]; exists {
		return fmt.Errorf("product already exists: %s", product.ID)
	}

	m.products = append(m.products, product)
	m.byID[product.ID] = len(m.products) - 1
	return nil
}

// Qidiruv yordamchi funksiyalar

type scoredProduct struct {
	Product entity.Product
	Score   int
}

func queryTokens(q string) []string {
	q = strings.ToLower(q)
	separators := []string{",", ".", "?", "!", ";", ":", "/", "\\", "-", "_"}
	for _, sep := range separators {
		q = strings.ReplaceAll(q, sep, " ")
	}

	var tokens []string
	for _, f := range strings.Fields(q) {
		if len(f) >= 2 {
			tokens = append(tokens, f)
		}
	}
	return tokens
}

func filterTokens(tokens []string) []string {
	stop := map[string]struct{}{
		"bormi": {}, "bor": {}, "kerak": {}, "kerakmi": {},
		"qancha": {}, "qanday": {}, "arzon": {}, "eng": {},
	}
	var out []string
	for _, t := range tokens {
		if _, skip := stop[t]; skip {
			continue
		}
		out = append(out, t)
	}
	return out
}

func normalizeTokens(tokens []string) []string {
	var out []string
	for _, t := range tokens {
		if n := normalizeAlphaNum(t); n != "" {
			out = append(out, n)
		}
	}
	return out
}

func normalizeAlphaNum(s string) string {
	var b strings.Builder
	for _, r := range s {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return strings.ToLower(b.String())
}

func similarityScore(qTokens []string, nameNorm, catNorm, descNorm string) int {
	score := 0
	for _, qt := range qTokens {
		if qt == "" {
			continue
		}
		if strings.Contains(nameNorm, qt) {
			score += 4
			continue
		}
		if strings.Contains(catNorm, qt) || strings.Contains(descNorm, qt) {
			score += 2
		}
	}
	return score
}
