package generator

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/yourusername/marketbridge-bot/internal/domain/entity"
)

// TaxonomyEntry bitta bozor uchun do'kon/mahsulot/rasm ro'yxatlari
type TaxonomyEntry struct {
	Shops    []string
	Products []string
	Images   []string
}

// Taxonomy bozor nomi -> taksonomiya yozuvi
type Taxonomy map[string]TaxonomyEntry

// Generate taksonomiyadan to'liq katalog yaratish.
// rng tashqaridan beriladi: bir xil seed bir xil katalog qaytaradi.
// Taksonomiyada do'kon yoki mahsulot ro'yxati bo'sh bozor tashlab ketiladi,
// qolgan bozorlar generatsiyasi davom etadi.
func Generate(markets []entity.Market, taxonomy Taxonomy, rng *rand.Rand) entity.Catalog {
	catalog := entity.Catalog{
		Markets:  make([]entity.Market, 0, len(markets)),
		Shops:    []entity.Shop{},
		Products: []entity.Product{},
	}

	shopCounter := 1
	productCounter := 1

	for _, market := range markets {
		catalog.Markets = append(catalog.Markets, market)

		data, ok := taxonomy[market.Name]
		if !ok || len(data.Shops) == 0 || len(data.Products) == 0 || len(data.Images) == 0 {
			continue
		}

		for shopIndex, shopName := range data.Shops {
			shopID := fmt.Sprintf("s%d", shopCounter)
			shopCounter++

			coverImg := data.Images[0]
			if len(data.Images) > 1 {
				coverImg = data.Images[shopIndex%len(data.Images)]
			}

			catalog.Shops = append(catalog.Shops, entity.Shop{
				ID:             shopID,
				Name:           shopName,
				MarketName:     market.Name,
				Category:       market.Type,
				Rating:         4.2 + rng.Float64()*0.8,
				Location:       fmt.Sprintf("Row %d, Shop %d", shopIndex+1, shopIndex*4+10),
				TelegramHandle: "@" + strings.ReplaceAll(strings.ToLower(shopName), " ", "_"),
				Logo:           coverImg + "?w=100",
				CoverImage:     coverImg + "?w=800",
			})

			for productIndex, productName := range data.Products {
				price := samplePrice(market.Type, rng)
				stock := 5 + rng.Intn(50)

				prodImg := data.Images[0]
				if len(data.Images) > 1 {
					prodImg = data.Images[(shopIndex+productIndex)%len(data.Images)]
				}

				catalog.Products = append(catalog.Products, entity.Product{
					ID:           fmt.Sprintf("p%d", productCounter),
					Name:         productName,
					ListedPrice:  price,
					FloorPrice:   entity.FloorPriceFor(price),
					Description:  fmt.Sprintf("%s - Handpicked and premium quality product direct from the vendor.", productName),
					ImageURL:     prodImg + "?w=600",
					Category:     market.Type,
					ShopID:       shopID,
					StockCount:   stock,
					StockStatus:  entity.StockStatusFor(stock),
					IsNegotiable: true,
				})
				productCounter++
			}
		}
	}

	return catalog
}

// samplePrice kategoriya bo'yicha narx tanlash
func samplePrice(marketType string, rng *rand.Rand) int {
	switch {
	case strings.Contains(marketType, "Electronics"):
		return 200 + rng.Intn(1300)
	case strings.Contains(marketType, "Wholesale"):
		return 5 + rng.Intn(55) // Guruch/yog'/shakar $5-$60 atrofida
	default:
		return 10 + rng.Intn(90) // Gullar $10-$100 atrofida
	}
}
