package entity

import (
	"fmt"
	"time"
)

// To'lov usullari
const (
	PaymentCash = "cash"
	PaymentCard = "card"
)

// Order muvaffaqiyatli savdolashishdan yaratilgan buyurtma.
// Buyurtmalar faqat qo'shiladi, o'zgartirish yoki o'chirish yo'q.
type Order struct {
	ID            string
	ProductID     string
	ProductName   string
	ShopID        string
	AgreedPrice   int // Dollarda
	CustomerName  string
	Phone         string
	Address       string
	PaymentMethod string
	Timestamp     time.Time
	Transcript    []Turn // Savdolashish tarixining nusxasi
}

// PriceTag kelishilgan narxni "$N" ko'rinishida qaytarish
func (o Order) PriceTag() string {
	return fmt.Sprintf("$%d", o.AgreedPrice)
}
