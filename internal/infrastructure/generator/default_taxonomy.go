package generator

import "github.com/yourusername/marketbridge-bot/internal/domain/entity"

// DefaultMarkets Toshkent bozorlarining demo ro'yxati
func DefaultMarkets() []entity.Market {
	return []entity.Market{
		{
			ID:         "m1",
			Name:       "Orikzor Market",
			Type:       "Wholesale & Retail",
			Location:   "Zangiota District",
			TotalShops: 500,
			Image:      "https://images.unsplash.com/photo-1533900298318-6b8da08a523e?auto=format&fit=crop&w=800&q=80",
		},
		{
			ID:         "m2",
			Name:       "Malika Electronics",
			Type:       "Electronics & Gadgets",
			Location:   "Labzak, Tashkent",
			TotalShops: 250,
			Image:      "https://images.unsplash.com/photo-1519389950473-47ba0277781c?auto=format&fit=crop&w=800&q=80",
		},
		{
			ID:         "m3",
			Name:       "Tashkent Flowers",
			Type:       "Flowers & Plants",
			Location:   "Shaykhontohur District",
			TotalShops: 120,
			Image:      "https://images.unsplash.com/photo-1560717789-0ac7c58ac90a?auto=format&fit=crop&w=800&q=80",
		},
	}
}

// DefaultTaxonomy demo katalog uchun taksonomiya jadvali
func DefaultTaxonomy() Taxonomy {
	return Taxonomy{
		"Orikzor Market": {
			Shops:    []string{"Wholesale Trade Hub", "Food World", "Baraka Food", "Sarbon Market", "National Treasures"},
			Products: []string{"Rice 5kg", "Cooking Oil 5L", "Sugar 10kg"},
			Images:   []string{"https://images.unsplash.com/photo-1583258292688-d0213dc5a3a8"},
		},
		"Malika Electronics": {
			Shops:    []string{"Apple Premium", "Samsung Plaza", "Xiaomi Official", "Laptop Center", "Smart Gadgets"},
			Products: []string{"iPhone 15 Pro", "Samsung Galaxy S24", "MacBook Air M3"},
			Images:   []string{"https://images.unsplash.com/photo-1611186871348-b1ce696e52c9"},
		},
		"Tashkent Flowers": {
			Shops:    []string{"Eram Flowers", "Orchid World", "Rose Valley", "Tulip Garden", "Bouquet Art"},
			Products: []string{"Premium Red Roses", "Exotic White Orchids", "Mixed Summer Bouquet", "Potted Violet", "Spring Tulips (15pcs)"},
			Images: []string{
				"https://images.unsplash.com/photo-1560717789-0ac7c58ac90a",
				"https://images.unsplash.com/photo-1548013146-72479768bada",
				"https://images.unsplash.com/photo-1526047932273-341f2a7631f9",
				"https://images.unsplash.com/photo-1518133910546-b6c2fb7d79e3",
				"https://images.unsplash.com/photo-1455587734955-081b22074882",
			},
		},
	}
}
