package entity

import "time"

// SellerSession sotuvchi sessiyasi
type SellerSession struct {
	UserID       int64
	IsSeller     bool
	ShopID       string
	LoginTime    time.Time
	LastActivity time.Time
}

// SellerAction sotuvchi harakatlari
type SellerAction struct {
	ID        string
	UserID    int64
	Action    string // "login", "list_product", "export_report"
	Details   string
	Timestamp time.Time
}
