package entity

// Market bozor entity
type Market struct {
	ID         string
	Name       string
	Type       string // Kategoriya tegi, masalan "Electronics & Gadgets"
	Location   string
	TotalShops int
	Image      string
}

// Shop do'kon entity, bitta bozorga tegishli
type Shop struct {
	ID             string
	Name           string
	MarketName     string
	Category       string
	Rating         float64 // [4.2, 5.0) oralig'ida
	Location       string
	TelegramHandle string
	Logo           string
	CoverImage     string
}
