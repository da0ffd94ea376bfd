package usecase

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/yourusername/marketbridge-bot/internal/domain/entity"
	"github.com/yourusername/marketbridge-bot/internal/domain/repository"
)

// Savdolashish xatolari
var (
	ErrSessionClosed  = errors.New("negotiation session closed")
	ErrSellerBusy     = errors.New("seller reply already in progress")
	ErrNotDealReached = errors.New("deal not reached yet")
	ErrMissingName    = errors.New("customer name required")
	ErrMissingPhone   = errors.New("customer phone required")
)

// DefaultDealKeywords kelishuvni bildiruvchi standart so'zlar
var DefaultDealKeywords = []string{"deal", "baraka", "congratulations"}

var (
	offerPattern = regexp.MustCompile(`\d[\d,]*`)
	pricePattern = regexp.MustCompile(`\$(\d[\d,]*)`)
)

const fallbackReply = "Sotuvchi o'ylab ko'rmoqda... Iltimos, taklifingizni qaytadan yozing."

// Session bitta xaridor va mahsulot uchun savdolashish sessiyasi.
// Har bir sessiya o'z transkripti va hisoblagichiga ega, sessiyalar
// orasida umumiy holat yo'q.
type Session struct {
	mu        sync.Mutex
	id        string
	product   entity.Product
	shopName  string
	turns     []entity.Turn
	rounds    int
	state     entity.SessionState
	completed bool
}

// ID sessiya identifikatori
func (s *Session) ID() string {
	return s.id
}

// Product savdolashilayotgan mahsulot
func (s *Session) Product() entity.Product {
	return s.product
}

// State joriy holat
func (s *Session) State() entity.SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Rounds xaridor gallari soni
func (s *Session) Rounds() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rounds
}

// Transcript transkript nusxasini olish
func (s *Session) Transcript() []entity.Turn {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]entity.Turn{}, s.turns...)
}

// OrderForm buyurtma topshirish formasi
type OrderForm struct {
	Name          string
	Phone         string
	Address       string
	PaymentMethod string
}

// NegotiationUseCase savdolashish bilan bog'liq business logic
type NegotiationUseCase interface {
	// Open mahsulot uchun yangi sessiya ochish
	Open(product entity.Product, shopName string) *Session

	// SubmitTurn xaridor galini qabul qilib sotuvchi javobini qaytarish
	SubmitTurn(ctx context.Context, session *Session, text string) (entity.Turn, error)

	// SubmitOrder kelishuvdan keyin buyurtma yaratish
	SubmitOrder(ctx context.Context, session *Session, form OrderForm) (*entity.Order, error)

	// Abandon sessiyani tashlab ketish
	Abandon(session *Session)
}

type negotiationUseCase struct {
	aiRepo    repository.AIRepository
	orderRepo repository.OrderRepository
	keywords  []string
}

// NewNegotiationUseCase yangi NegotiationUseCase yaratish.
// dealKeywords bo'sh bo'lsa DefaultDealKeywords ishlatiladi.
func NewNegotiationUseCase(
	aiRepo repository.AIRepository,
	orderRepo repository.OrderRepository,
	dealKeywords []string,
) NegotiationUseCase {
	if len(dealKeywords) == 0 {
		dealKeywords = DefaultDealKeywords
	}
	return &negotiationUseCase{
		aiRepo:    aiRepo,
		orderRepo: orderRepo,
		keywords:  dealKeywords,
	}
}

// Open mahsulot uchun yangi sessiya ochish
func (u *negotiationUseCase) Open(product entity.Product, shopName string) *Session {
	opening := fmt.Sprintf("Hello! Interested in the %s? Listed price is %s. What is your best offer? 😊",
		product.Name, product.PriceTag())

	return &Session{
		id:       uuid.New().String(),
		product:  product,
		shopName: shopName,
		state:    entity.StateOpen,
		turns: []entity.Turn{{
			ID:        uuid.New().String(),
			Speaker:   entity.SpeakerSeller,
			Text:      opening,
			Timestamp: time.Now(),
		}},
	}
}

// SubmitTurn xaridor galini qabul qilib sotuvchi javobini qaytarish.
// AI chaqiruvi paytida sessiya qulfi ushlab turilmaydi; bitta sessiyada
// bir vaqtda faqat bitta javob hisoblanadi.
func (u *negotiationUseCase) SubmitTurn(ctx context.Context, session *Session, text string) (entity.Turn, error) {
	session.mu.Lock()
	switch session.state {
	case entity.StateSellerResponding:
		session.mu.Unlock()
		return entity.Turn{}, ErrSellerBusy
	case entity.StateDealReached, entity.StateAbandoned:
		session.mu.Unlock()
		return entity.Turn{}, ErrSessionClosed
	}

	offer, hasOffer := ExtractOffer(text)
	buyerTurn := entity.Turn{
		ID:        uuid.New().String(),
		Speaker:   entity.SpeakerBuyer,
		Text:      text,
		Offer:     offer,
		HasOffer:  hasOffer,
		Timestamp: time.Now(),
	}

	session.rounds++
	history := append([]entity.Turn{}, session.turns...)
	session.turns = append(session.turns, buyerTurn)
	session.state = entity.StateSellerResponding
	product := session.product
	instruction := sellerInstruction(product, session.shopName)
	session.mu.Unlock()

	reply, err := u.aiRepo.SellerReply(ctx, text, history, instruction)

	session.mu.Lock()
	defer session.mu.Unlock()

	// Tashlab ketilgan sessiyaga kech kelgan javob qo'llanmaydi
	if session.state == entity.StateAbandoned {
		return entity.Turn{}, ErrSessionClosed
	}

	if err != nil || strings.TrimSpace(reply) == "" {
		// Collaborator ishlamadi: neytral javob, sessiya ochiq qoladi
		sellerTurn := u.appendSellerTurn(session, fallbackReply)
		session.state = entity.StateOpen
		return sellerTurn, nil
	}

	reply = u.enforcePolicy(product, offer, hasOffer, reply)
	sellerTurn := u.appendSellerTurn(session, reply)

	if u.containsDealKeyword(reply) {
		session.state = entity.StateDealReached
		session.turns = append(session.turns, entity.Turn{
			ID:        uuid.New().String(),
			Speaker:   entity.SpeakerSystem,
			Text:      "Deal! Please fill out the delivery details:",
			Timestamp: time.Now(),
		})
	} else {
		session.state = entity.StateOpen
	}

	return sellerTurn, nil
}

// enforcePolicy AI javobini savdolashish qoidalariga moslab tuzatish.
// Minimal narxga teng yoki undan yuqori taklif hech qachon rad etilmaydi;
// minimal narxga yaqin taklifga yakuniy narx aniq aytiladi.
func (u *negotiationUseCase) enforcePolicy(product entity.Product, offer int, hasOffer bool, reply string) string {
	if !hasOffer {
		return reply
	}

	if offer >= product.FloorPrice {
		if !u.containsDealKeyword(reply) {
			return fmt.Sprintf("Deal! $%d it is. You drive a hard bargain! Please fill out the form below. 🤝", offer)
		}
		return reply
	}

	// Yakuniy bosqich: taklif minimal narxdan savdolashish marjasi ichida.
	// Sintez qilingan qarshi taklifda kelishuv so'zi bo'lmasligi kerak,
	// aks holda u o'zini kelishuv deb belgilab qo'yadi.
	floorTag := fmt.Sprintf("$%d", product.FloorPrice)
	margin := product.ListedPrice - product.FloorPrice
	if offer >= product.FloorPrice-margin && !strings.Contains(reply, floorTag) {
		return fmt.Sprintf("Okay, my final offer is %s. Take it or leave it!", floorTag)
	}

	return reply
}

func (u *negotiationUseCase) appendSellerTurn(session *Session, text string) entity.Turn {
	price, hasPrice := extractLastPrice(text)
	turn := entity.Turn{
		ID:        uuid.New().String(),
		Speaker:   entity.SpeakerSeller,
		Text:      text,
		Offer:     price,
		HasOffer:  hasPrice,
		Timestamp: time.Now(),
	}
	session.turns = append(session.turns, turn)
	return turn
}

func (u *negotiationUseCase) containsDealKeyword(text string) bool {
	lower := strings.ToLower(text)
	for _, keyword := range u.keywords {
		if strings.Contains(lower, keyword) {
			return true
		}
	}
	return false
}

// SubmitOrder kelishuvdan keyin buyurtma yaratish.
// Ism yoki telefon bo'sh bo'lsa buyurtma yaratilmaydi, sessiya
// DEAL_REACHED holatida qoladi.
func (u *negotiationUseCase) SubmitOrder(ctx context.Context, session *Session, form OrderForm) (*entity.Order, error) {
	session.mu.Lock()
	defer session.mu.Unlock()

	if session.completed {
		return nil, ErrSessionClosed
	}
	if session.state != entity.StateDealReached {
		return nil, ErrNotDealReached
	}
	if strings.TrimSpace(form.Name) == "" {
		return nil, ErrMissingName
	}
	if strings.TrimSpace(form.Phone) == "" {
		return nil, ErrMissingPhone
	}

	paymentMethod := form.PaymentMethod
	if paymentMethod != entity.PaymentCard {
		paymentMethod = entity.PaymentCash
	}

	order := entity.Order{
		ID:            "ord-" + uuid.New().String(),
		ProductID:     session.product.ID,
		ProductName:   session.product.Name,
		ShopID:        session.product.ShopID,
		AgreedPrice:   agreedPrice(session.turns, session.product.ListedPrice),
		CustomerName:  form.Name,
		Phone:         form.Phone,
		Address:       form.Address,
		PaymentMethod: paymentMethod,
		Timestamp:     time.Now(),
		Transcript:    append([]entity.Turn{}, session.turns...),
	}

	if err := u.orderRepo.SaveOrder(ctx, order); err != nil {
		return nil, fmt.Errorf("failed to save order: %w", err)
	}

	session.completed = true
	return &order, nil
}

// Abandon sessiyani tashlab ketish
func (u *negotiationUseCase) Abandon(session *Session) {
	session.mu.Lock()
	defer session.mu.Unlock()

	if session.state != entity.StateDealReached {
		session.state = entity.StateAbandoned
	}
	session.completed = true
}

// ExtractOffer matndan raqamli taklifni ajratish.
// Valyuta belgilari va punktuatsiya e'tiborga olinmaydi; raqam
// topilmasa gal erkin dialog sifatida qabul qilinadi.
func ExtractOffer(text string) (int, bool) {
	match := offerPattern.FindString(text)
	if match == "" {
		return 0, false
	}
	match = strings.ReplaceAll(match, ",", "")
	value, err := strconv.Atoi(match)
	if err != nil || value < 0 {
		return 0, false
	}
	return value, true
}

// agreedPrice transkriptdan kelishilgan narxni ajratish: valyuta
// ko'rinishidagi songa ega oxirgi sotuvchi galidan; topilmasa
// ro'yxatdagi narx qaytadi.
func agreedPrice(turns []entity.Turn, listedPrice int) int {
	for i := len(turns) - 1; i >= 0; i-- {
		if turns[i].Speaker != entity.SpeakerSeller {
			continue
		}
		if price, ok := extractLastPrice(turns[i].Text); ok {
			return price
		}
	}
	return listedPrice
}

func extractLastPrice(text string) (int, bool) {
	matches := pricePattern.FindAllStringSubmatch(text, -1)
	if len(matches) == 0 {
		return 0, false
	}
	raw := strings.ReplaceAll(matches[len(matches)-1][1], ",", "")
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return value, true
}

// sellerInstruction sotuvchi personasini tuzish
func sellerInstruction(product entity.Product, shopName string) string {
	return fmt.Sprintf(`You are the owner of %s.
PRODUCT: %s. PRICE: %s.
MINIMUM PRICE: $%d.

NEGOTIATION STRATEGY:
1. Haggle like a real Tashkent market seller. Use English.
2. If the buyer's price is close to your limit, ask: "Okay, my final offer is $%d. Do we have a deal?"
3. Never sell below the minimum price.
4. Only when terms are accepted, say the keyword "DEAL" and tell them to fill out the form.`,
		shopName, product.Name, product.PriceTag(), product.FloorPrice, product.FloorPrice)
}
