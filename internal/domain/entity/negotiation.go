package entity

import "time"

// Speaker savdolashish suhbatidagi tomon
type Speaker string

const (
	SpeakerBuyer  Speaker = "buyer"
	SpeakerSeller Speaker = "seller"
	SpeakerSystem Speaker = "system"
)

// Turn savdolashish suhbatidagi bitta gal
type Turn struct {
	ID        string
	Speaker   Speaker
	Text      string
	Offer     int // Matndan ajratilgan taklif, yo'q bo'lsa 0
	HasOffer  bool
	Timestamp time.Time
}

// SessionState savdolashish sessiyasining holati
type SessionState int

const (
	StateOpen SessionState = iota
	StateSellerResponding
	StateDealReached
	StateAbandoned
)

// String holat nomini qaytarish
func (s SessionState) String() string {
	switch s {
	case StateOpen:
		return "OPEN"
	case StateSellerResponding:
		return "SELLER_RESPONDING"
	case StateDealReached:
		return "DEAL_REACHED"
	case StateAbandoned:
		return "ABANDONED"
	}
	return "UNKNOWN"
}
