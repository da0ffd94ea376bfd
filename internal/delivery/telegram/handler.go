package telegram

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"sync"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/yourusername/marketbridge-bot/internal/domain/entity"
	"github.com/yourusername/marketbridge-bot/internal/usecase"
)

type orderStage int

const (
	orderStageNeedName orderStage = iota
	orderStageNeedPhone
	orderStageNeedAddress
	orderStageNeedPayment
)

type orderFlowSession struct {
	Stage   orderStage
	Name    string
	Phone   string
	Address string
}

type pendingDraft struct {
	Draft     entity.ProductDraft
	CreatedAt time.Time
}

// Menyu tugmalari
const (
	btnMarkets   = "🛍 Bozorlar"
	btnAssistant = "🤖 AI Yordamchi"
	btnMyOrders  = "📦 Buyurtmalarim"
	btnCancel    = "❌ Bekor qilish"

	btnSellerOrders = "📦 Buyurtmalar"
	btnSellerReport = "📊 Hisobot"
	btnSellerStats  = "📈 Statistika"
	btnSellerLogout = "🚪 Chiqish"
)

// BotHandler Telegram bot handler
type BotHandler struct {
	bot           *tgbotapi.BotAPI
	catalogUC     usecase.CatalogUseCase
	negotiationUC usecase.NegotiationUseCase
	assistantUC   usecase.AssistantUseCase
	sellerUC      usecase.SellerUseCase
	sellerShopID  string

	negotiationMu sync.RWMutex
	negotiations  map[int64]*usecase.Session

	orderMu       sync.RWMutex
	orderSessions map[int64]*orderFlowSession

	assistantMu   sync.RWMutex
	assistantMode map[int64]bool

	draftMu sync.RWMutex
	drafts  map[int64]pendingDraft

	// Sotuvchi paroli kutilayotgan userlar
	awaitingPassword map[int64]bool
	mu               sync.RWMutex
}

// NewBotHandler yangi bot handler yaratish
func NewBotHandler(
	token string,
	catalogUC usecase.CatalogUseCase,
	negotiationUC usecase.NegotiationUseCase,
	assistantUC usecase.AssistantUseCase,
	sellerUC usecase.SellerUseCase,
	sellerShopID string,
) (*BotHandler, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to create bot: %w", err)
	}

	return &BotHandler{
		bot:              bot,
		catalogUC:        catalogUC,
		negotiationUC:    negotiationUC,
		assistantUC:      assistantUC,
		sellerUC:         sellerUC,
		sellerShopID:     sellerShopID,
		negotiations:     make(map[int64]*usecase.Session),
		orderSessions:    make(map[int64]*orderFlowSession),
		assistantMode:    make(map[int64]bool),
		drafts:           make(map[int64]pendingDraft),
		awaitingPassword: make(map[int64]bool),
	}, nil
}

// Start botni ishga tushirish
func (h *BotHandler) Start(ctx context.Context) error {
	log.Printf("Bot @%s ishga tushdi!", h.bot.Self.UserName)

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := h.bot.GetUpdatesChan(u)

	for {
		select {
		case <-ctx.Done():
			log.Println("Bot to'xtatilmoqda...")
			return ctx.Err()
		case update := <-updates:
			if update.CallbackQuery != nil {
				go h.handleCallback(ctx, update.CallbackQuery)
				continue
			}

			if update.Message == nil {
				continue
			}

			go h.handleMessage(ctx, update.Message)
		}
	}
}

func (h *BotHandler) handleMessage(ctx context.Context, message *tgbotapi.Message) {
	userID := message.From.ID
	chatID := message.Chat.ID

	if message.IsCommand() {
		h.handleCommand(ctx, message)
		return
	}

	if len(message.Photo) > 0 {
		h.handlePhotoMessage(ctx, message)
		return
	}

	text := strings.TrimSpace(message.Text)
	if text == "" {
		return
	}

	if h.isAwaitingPassword(userID) {
		h.handlePasswordInput(ctx, message)
		return
	}

	// Menyu tugmalari
	switch text {
	case btnMarkets:
		h.sendMarketList(ctx, chatID)
		return
	case btnAssistant:
		h.setAssistantMode(userID, true)
		h.sendMessage(chatID, "AI yordamchi yoqildi. Mahsulot, narx yoki do'kon haqida so'rang. 🤖")
		return
	case btnMyOrders:
		h.sendOrderList(ctx, chatID)
		return
	case btnCancel:
		h.cancelFlows(userID)
		h.sendMainMenu(chatID, "Bekor qilindi. Nima qilamiz?")
		return
	case btnSellerOrders:
		h.handleSellerOrders(ctx, userID, chatID)
		return
	case btnSellerReport:
		h.handleSellerReport(ctx, userID, chatID)
		return
	case btnSellerStats:
		h.handleSellerStats(ctx, userID, chatID)
		return
	case btnSellerLogout:
		_ = h.sellerUC.Logout(ctx, userID)
		h.sendMainMenu(chatID, "Sotuvchi rejimidan chiqdingiz.")
		return
	}

	// Buyurtma formasi bosqichlari
	if h.hasOrderSession(userID) {
		h.handleOrderFlow(ctx, userID, text, chatID)
		return
	}

	// Faol savdolashish sessiyasi
	if session := h.getNegotiation(userID); session != nil {
		h.handleNegotiationTurn(ctx, userID, session, text, chatID)
		return
	}

	// AI yordamchi rejimi
	if h.isAssistantMode(userID) {
		h.handleAssistantQuery(ctx, userID, message.From.UserName, text, chatID)
		return
	}

	// Oddiy matn: katalogdan qidiramiz
	h.handleSearch(ctx, text, chatID)
}

func (h *BotHandler) handleCommand(ctx context.Context, message *tgbotapi.Message) {
	userID := message.From.ID
	chatID := message.Chat.ID

	switch message.Command() {
	case "start":
		h.cancelFlows(userID)
		h.sendMainMenu(chatID,
			"Assalomu alaykum! MarketBridge botiga xush kelibsiz. 🏪\n"+
				"Toshkent bozorlaridan mahsulot tanlang va sotuvchi bilan savdolashing!")
	case "seller":
		h.setAwaitingPassword(userID, true)
		h.sendMessage(chatID, "Sotuvchi parolini kiriting:")
	case "cancel":
		h.cancelFlows(userID)
		h.sendMainMenu(chatID, "Bekor qilindi.")
	case "clear":
		_ = h.assistantUC.ClearHistory(ctx, userID)
		h.sendMessage(chatID, "Suhbat tarixi tozalandi. ✅")
	default:
		h.sendMessage(chatID, "Noma'lum buyruq. /start ni bosing.")
	}
}

func (h *BotHandler) handlePasswordInput(ctx context.Context, message *tgbotapi.Message) {
	userID := message.From.ID
	chatID := message.Chat.ID

	h.setAwaitingPassword(userID, false)

	ok, err := h.sellerUC.Login(ctx, userID, strings.TrimSpace(message.Text))
	if err != nil {
		log.Printf("Seller login xatosi: %v", err)
		h.sendMessage(chatID, "Xatolik yuz berdi. Qaytadan urinib ko'ring.")
		return
	}
	if !ok {
		h.sendMessage(chatID, "Parol noto'g'ri. ❌")
		return
	}

	msg := tgbotapi.NewMessage(chatID, "Xush kelibsiz, sotuvchi! 🧑‍💼\nRasm yuborsangiz AI skaner mahsulot qoralamasini tayyorlaydi.")
	msg.ReplyMarkup = tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(btnSellerOrders),
			tgbotapi.NewKeyboardButton(btnSellerStats),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(btnSellerReport),
			tgbotapi.NewKeyboardButton(btnSellerLogout),
		),
	)
	if _, err := h.bot.Send(msg); err != nil {
		log.Printf("Xabar yuborishda xato: %v", err)
	}
}

// sendMarketList bozorlar ro'yxatini inline tugmalar bilan yuborish
func (h *BotHandler) sendMarketList(ctx context.Context, chatID int64) {
	markets, err := h.catalogUC.Markets(ctx)
	if err != nil {
		log.Printf("Bozorlarni olishda xato: %v", err)
		h.sendMessage(chatID, "Bozorlarni yuklab bo'lmadi.")
		return
	}

	var rows [][]tgbotapi.InlineKeyboardButton
	for _, market := range markets {
		label := fmt.Sprintf("%s • %s", market.Name, market.Type)
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(label, "market:"+market.ID),
		))
	}

	msg := tgbotapi.NewMessage(chatID, "Toshkentning eng yaxshi bozorlari: 🏪")
	msg.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(rows...)
	if _, err := h.bot.Send(msg); err != nil {
		log.Printf("Xabar yuborishda xato: %v", err)
	}
}

func (h *BotHandler) handleCallback(ctx context.Context, cq *tgbotapi.CallbackQuery) {
	defer func() {
		if _, err := h.bot.Request(tgbotapi.NewCallback(cq.ID, "")); err != nil {
			log.Printf("Callback javobida xato: %v", err)
		}
	}()

	userID := cq.From.ID
	chatID := cq.Message.Chat.ID
	data := cq.Data

	switch {
	case strings.HasPrefix(data, "market:"):
		h.sendShopList(ctx, chatID, strings.TrimPrefix(data, "market:"))
	case strings.HasPrefix(data, "shop:"):
		h.sendProductList(ctx, chatID, strings.TrimPrefix(data, "shop:"))
	case strings.HasPrefix(data, "product:"):
		h.sendProductCard(ctx, chatID, strings.TrimPrefix(data, "product:"))
	case strings.HasPrefix(data, "negotiate:"):
		h.startNegotiation(ctx, userID, chatID, strings.TrimPrefix(data, "negotiate:"))
	case data == "pay:cash" || data == "pay:card":
		h.handlePaymentChoice(ctx, userID, chatID, strings.TrimPrefix(data, "pay:"))
	case data == "draft:ok":
		h.handleDraftConfirm(ctx, userID, chatID)
	case data == "draft:no":
		h.clearDraft(userID)
		h.sendMessage(chatID, "Qoralama bekor qilindi.")
	}
}

func (h *BotHandler) sendShopList(ctx context.Context, chatID int64, marketID string) {
	market, err := h.catalogUC.Market(ctx, marketID)
	if err != nil {
		h.sendMessage(chatID, "Bozor topilmadi.")
		return
	}
	shops, err := h.catalogUC.Shops(ctx, marketID)
	if err != nil || len(shops) == 0 {
		h.sendMessage(chatID, "Bu bozorda do'konlar topilmadi.")
		return
	}

	var rows [][]tgbotapi.InlineKeyboardButton
	for _, shop := range shops {
		label := fmt.Sprintf("%s ⭐ %.1f", shop.Name, shop.Rating)
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(label, "shop:"+shop.ID),
		))
	}

	msg := tgbotapi.NewMessage(chatID, fmt.Sprintf("%s (%s) do'konlari:", market.Name, market.Location))
	msg.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(rows...)
	if _, err := h.bot.Send(msg); err != nil {
		log.Printf("Xabar yuborishda xato: %v", err)
	}
}

func (h *BotHandler) sendProductList(ctx context.Context, chatID int64, shopID string) {
	shop, err := h.catalogUC.Shop(ctx, shopID)
	if err != nil {
		h.sendMessage(chatID, "Do'kon topilmadi.")
		return
	}
	products, err := h.catalogUC.Products(ctx, shopID)
	if err != nil || len(products) == 0 {
		h.sendMessage(chatID, "Bu do'konda mahsulotlar topilmadi.")
		return
	}

	var rows [][]tgbotapi.InlineKeyboardButton
	for _, product := range products {
		label := fmt.Sprintf("%s - %s", product.Name, product.PriceTag())
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(label, "product:"+product.ID),
		))
	}

	msg := tgbotapi.NewMessage(chatID, fmt.Sprintf("%s (%s, %s) mahsulotlari:", shop.Name, shop.Location, shop.TelegramHandle))
	msg.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(rows...)
	if _, err := h.bot.Send(msg); err != nil {
		log.Printf("Xabar yuborishda xato: %v", err)
	}
}

func (h *BotHandler) sendProductCard(ctx context.Context, chatID int64, productID string) {
	product, err := h.catalogUC.Product(ctx, productID)
	if err != nil {
		h.sendMessage(chatID, "Mahsulot topilmadi.")
		return
	}

	text := fmt.Sprintf("📦 %s\n💰 Narx: %s\n📊 Ombor: %d ta (%s)\n\n%s",
		product.Name, product.PriceTag(), product.StockCount, product.StockStatus, product.Description)

	msg := tgbotapi.NewMessage(chatID, text)
	if product.IsNegotiable {
		msg.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(
			tgbotapi.NewInlineKeyboardRow(
				tgbotapi.NewInlineKeyboardButtonData("💰 Savdolashish", "negotiate:"+product.ID),
			),
		)
	}
	if _, err := h.bot.Send(msg); err != nil {
		log.Printf("Xabar yuborishda xato: %v", err)
	}
}

// startNegotiation mahsulot uchun savdolashish sessiyasini ochish
func (h *BotHandler) startNegotiation(ctx context.Context, userID, chatID int64, productID string) {
	product, err := h.catalogUC.Product(ctx, productID)
	if err != nil {
		h.sendMessage(chatID, "Mahsulot topilmadi.")
		return
	}

	shopName := "the shop"
	if shop, err := h.catalogUC.Shop(ctx, product.ShopID); err == nil {
		shopName = shop.Name
	}

	// Oldingi sessiya bo'lsa tashlab ketamiz
	if old := h.getNegotiation(userID); old != nil {
		h.negotiationUC.Abandon(old)
	}

	session := h.negotiationUC.Open(*product, shopName)
	h.setNegotiation(userID, session)

	transcript := session.Transcript()
	h.sendMessage(chatID, transcript[0].Text)
	h.sendMessage(chatID, "Narxingizni yozing (masalan: 950) yoki savol bering. Chiqish uchun "+btnCancel)
}

func (h *BotHandler) handleNegotiationTurn(ctx context.Context, userID int64, session *usecase.Session, text string, chatID int64) {
	turn, err := h.negotiationUC.SubmitTurn(ctx, session, text)
	if errors.Is(err, usecase.ErrSellerBusy) {
		h.sendMessage(chatID, "Sotuvchi hali javob yozmoqda, biroz kuting...")
		return
	}
	if err != nil {
		h.clearNegotiation(userID)
		h.sendMessage(chatID, "Sessiya yakunlangan. Yangi savdolashish uchun mahsulotni qayta tanlang.")
		return
	}

	h.sendMessage(chatID, turn.Text)

	if session.State() == entity.StateDealReached {
		h.startOrderSession(userID)
		h.sendMessage(chatID, "Kelishdik! 🎉 Buyurtma uchun ismingizni yozing:")
	}
}

// Buyurtma formasi: ism -> telefon -> manzil -> to'lov usuli
func (h *BotHandler) handleOrderFlow(ctx context.Context, userID int64, text string, chatID int64) {
	h.orderMu.Lock()
	flow := h.orderSessions[userID]
	if flow == nil {
		h.orderMu.Unlock()
		return
	}

	switch flow.Stage {
	case orderStageNeedName:
		flow.Name = text
		flow.Stage = orderStageNeedPhone
		h.orderMu.Unlock()
		h.sendMessage(chatID, "Telefon raqamingizni yozing (masalan: +998901234567):")
	case orderStageNeedPhone:
		flow.Phone = text
		flow.Stage = orderStageNeedAddress
		h.orderMu.Unlock()
		h.sendMessage(chatID, "Yetkazib berish manzilini yozing:")
	case orderStageNeedAddress:
		flow.Address = text
		flow.Stage = orderStageNeedPayment
		h.orderMu.Unlock()

		msg := tgbotapi.NewMessage(chatID, "To'lov usulini tanlang:")
		msg.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(
			tgbotapi.NewInlineKeyboardRow(
				tgbotapi.NewInlineKeyboardButtonData("💵 Naqd", "pay:cash"),
				tgbotapi.NewInlineKeyboardButtonData("💳 Karta", "pay:card"),
			),
		)
		if _, err := h.bot.Send(msg); err != nil {
			log.Printf("Xabar yuborishda xato: %v", err)
		}
	default:
		h.orderMu.Unlock()
		h.sendMessage(chatID, "To'lov usulini yuqoridagi tugmalardan tanlang.")
	}
}

func (h *BotHandler) handlePaymentChoice(ctx context.Context, userID, chatID int64, method string) {
	h.orderMu.Lock()
	flow := h.orderSessions[userID]
	h.orderMu.Unlock()
	if flow == nil || flow.Stage != orderStageNeedPayment {
		return
	}

	session := h.getNegotiation(userID)
	if session == nil {
		h.clearOrderSession(userID)
		h.sendMessage(chatID, "Sessiya topilmadi. Qaytadan boshlang.")
		return
	}

	order, err := h.negotiationUC.SubmitOrder(ctx, session, usecase.OrderForm{
		Name:          flow.Name,
		Phone:         flow.Phone,
		Address:       flow.Address,
		PaymentMethod: method,
	})
	switch {
	case errors.Is(err, usecase.ErrMissingName):
		h.restartOrderStage(userID, orderStageNeedName)
		h.sendMessage(chatID, "Ism bo'sh bo'lmasligi kerak. Ismingizni yozing:")
		return
	case errors.Is(err, usecase.ErrMissingPhone):
		h.restartOrderStage(userID, orderStageNeedPhone)
		h.sendMessage(chatID, "Telefon bo'sh bo'lmasligi kerak. Raqamingizni yozing:")
		return
	case err != nil:
		log.Printf("Buyurtma yaratishda xato: %v", err)
		h.sendMessage(chatID, "Buyurtmani saqlab bo'lmadi. Qaytadan urinib ko'ring.")
		return
	}

	h.clearOrderSession(userID)
	h.clearNegotiation(userID)

	h.sendMainMenu(chatID, fmt.Sprintf(
		"Buyurtma qabul qilindi! ✅\n\n📦 %s\n💰 Kelishilgan narx: %s\n📞 %s\n📍 %s\n\nSotuvchi tez orada bog'lanadi.",
		order.ProductName, order.PriceTag(), order.Phone, order.Address))
}

func (h *BotHandler) sendOrderList(ctx context.Context, chatID int64) {
	orders, err := h.sellerUC.Orders(ctx)
	if err != nil {
		h.sendMessage(chatID, "Buyurtmalarni yuklab bo'lmadi.")
		return
	}
	if len(orders) == 0 {
		h.sendMessage(chatID, "Hozircha buyurtmalaringiz yo'q. Savdolashib ko'ring! 💰")
		return
	}

	var sb strings.Builder
	sb.WriteString("Buyurtmalaringiz:\n\n")
	for i, order := range orders {
		payment := "Naqd"
		if order.PaymentMethod == entity.PaymentCard {
			payment = "Karta"
		}
		sb.WriteString(fmt.Sprintf("%d. 📦 %s\n💰 %s • 💳 %s\n📅 %s\n\n",
			i+1, order.ProductName, order.PriceTag(), payment,
			order.Timestamp.Format("2006-01-02 15:04")))
	}
	h.sendMessage(chatID, sb.String())
}

func (h *BotHandler) handleAssistantQuery(ctx context.Context, userID int64, username, text string, chatID int64) {
	response, matched, err := h.assistantUC.ProcessQuery(ctx, userID, username, text)
	if err != nil {
		log.Printf("Yordamchi javobida xato: %v", err)
		h.sendMessage(chatID, "Tushunmadim, qaytadan yozing.")
		return
	}

	msg := tgbotapi.NewMessage(chatID, response)
	if matched != nil {
		msg.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(
			tgbotapi.NewInlineKeyboardRow(
				tgbotapi.NewInlineKeyboardButtonData("Ko'rish: "+matched.Name, "product:"+matched.ID),
			),
		)
	}
	if _, err := h.bot.Send(msg); err != nil {
		log.Printf("Xabar yuborishda xato: %v", err)
	}
}

func (h *BotHandler) handleSearch(ctx context.Context, query string, chatID int64) {
	products, err := h.catalogUC.Search(ctx, query)
	if err != nil || len(products) == 0 {
		h.sendMessage(chatID, "Hech narsa topilmadi. "+btnAssistant+" orqali so'rab ko'ring.")
		return
	}

	var rows [][]tgbotapi.InlineKeyboardButton
	for i, product := range products {
		if i >= 6 {
			break
		}
		label := fmt.Sprintf("%s - %s", product.Name, product.PriceTag())
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(label, "product:"+product.ID),
		))
	}

	msg := tgbotapi.NewMessage(chatID, "Topilgan mahsulotlar:")
	msg.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(rows...)
	if _, err := h.bot.Send(msg); err != nil {
		log.Printf("Xabar yuborishda xato: %v", err)
	}
}

// Sotuvchi oqimlari

func (h *BotHandler) handleSellerOrders(ctx context.Context, userID, chatID int64) {
	if !h.requireSeller(ctx, userID, chatID) {
		return
	}

	orders, err := h.sellerUC.Orders(ctx)
	if err != nil {
		h.sendMessage(chatID, "Buyurtmalarni yuklab bo'lmadi.")
		return
	}
	if len(orders) == 0 {
		h.sendMessage(chatID, "Hozircha yangi buyurtmalar yo'q. Katalogingizni ulashing! 📈")
		return
	}

	var sb strings.Builder
	sb.WriteString("🔔 Buyurtmalar:\n\n")
	for i, order := range orders {
		payment := "Naqd"
		if order.PaymentMethod == entity.PaymentCard {
			payment = "Karta"
		}
		sb.WriteString(fmt.Sprintf("%d. 📦 %s\n👤 Mijoz: %s\n📞 Tel: %s\n📍 Manzil: %s\n💰 Narx: %s\n💳 To'lov: %s\n\n",
			i+1, order.ProductName, order.CustomerName, order.Phone, order.Address, order.PriceTag(), payment))
	}
	sb.WriteString("Mijozlarga qo'ng'iroq qilishni unutmang. ✅")
	h.sendMessage(chatID, sb.String())
}

func (h *BotHandler) handleSellerReport(ctx context.Context, userID, chatID int64) {
	if !h.requireSeller(ctx, userID, chatID) {
		return
	}

	data, err := h.sellerUC.OrdersReport(ctx, userID)
	if err != nil {
		log.Printf("Hisobot yaratishda xato: %v", err)
		h.sendMessage(chatID, "Hisobotni tayyorlab bo'lmadi.")
		return
	}

	doc := tgbotapi.NewDocument(chatID, tgbotapi.FileBytes{
		Name:  fmt.Sprintf("buyurtmalar-%s.xlsx", time.Now().Format("2006-01-02")),
		Bytes: data,
	})
	doc.Caption = "📊 Buyurtmalar hisoboti"
	if _, err := h.bot.Send(doc); err != nil {
		log.Printf("Hisobot yuborishda xato: %v", err)
	}
}

func (h *BotHandler) handleSellerStats(ctx context.Context, userID, chatID int64) {
	if !h.requireSeller(ctx, userID, chatID) {
		return
	}

	stats, err := h.sellerUC.Stats(ctx)
	if err != nil {
		h.sendMessage(chatID, "Statistikani yuklab bo'lmadi.")
		return
	}

	h.sendMessage(chatID, fmt.Sprintf(
		"📈 Statistika:\n\n💰 Kunlik tushum: $%d (%d ta savdo)\n📅 Oylik tushum: $%d\n📦 Jami buyurtmalar: %d",
		stats.DailyRevenue, stats.DailyCount, stats.MonthlyRevenue, stats.TotalOrders))
}

// handlePhotoMessage sotuvchi rasmidan AI skaner qoralamasi
func (h *BotHandler) handlePhotoMessage(ctx context.Context, message *tgbotapi.Message) {
	userID := message.From.ID
	chatID := message.Chat.ID

	isSeller, err := h.sellerUC.IsSeller(ctx, userID)
	if err != nil || !isSeller {
		h.sendMessage(chatID, "Rasm orqali mahsulot qo'shish faqat sotuvchilar uchun. /seller")
		return
	}

	// Eng katta o'lchamdagi rasmni olamiz
	photo := message.Photo[len(message.Photo)-1]
	data, err := h.downloadFile(photo.FileID)
	if err != nil {
		log.Printf("Rasmni yuklab olishda xato: %v", err)
		h.sendMessage(chatID, "Rasmni yuklab bo'lmadi.")
		return
	}

	h.sendMessage(chatID, "AI skaner rasmni tahlil qilmoqda... 🔍")

	draft, err := h.sellerUC.DescribeImage(ctx, userID, data, "image/jpeg")
	if err != nil {
		log.Printf("AI skaner xatosi: %v", err)
		h.sendMessage(chatID, "Rasmni tahlil qilib bo'lmadi. Qaytadan urinib ko'ring.")
		return
	}

	h.setDraft(userID, pendingDraft{Draft: *draft, CreatedAt: time.Now()})

	text := fmt.Sprintf("AI skaner natijasi:\n\n📦 Nomi: %s\n💰 Taxminiy narx: %s\n📂 Kategoriya: %s\n📝 %s\n\nKatalogga joylaymizmi?",
		draft.Name, draft.EstimatedPrice, draft.Category, draft.Description)

	msg := tgbotapi.NewMessage(chatID, text)
	msg.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("✅ Joylash", "draft:ok"),
			tgbotapi.NewInlineKeyboardButtonData("❌ Bekor", "draft:no"),
		),
	)
	if _, err := h.bot.Send(msg); err != nil {
		log.Printf("Xabar yuborishda xato: %v", err)
	}
}

func (h *BotHandler) handleDraftConfirm(ctx context.Context, userID, chatID int64) {
	draft, ok := h.popDraft(userID)
	if !ok {
		h.sendMessage(chatID, "Qoralama topilmadi. Rasmni qaytadan yuboring.")
		return
	}

	product, err := h.sellerUC.ListProduct(ctx, userID, draft.Draft, h.sellerShopID, 20)
	if err != nil {
		log.Printf("Mahsulot joylashda xato: %v", err)
		h.sendMessage(chatID, "Mahsulotni joylab bo'lmadi: narx yoki nom noto'g'ri.")
		return
	}

	h.sendMessage(chatID, fmt.Sprintf("Mahsulot joylandi! ✅\n📦 %s - %s (minimal narx: $%d)",
		product.Name, product.PriceTag(), product.FloorPrice))
}

func (h *BotHandler) downloadFile(fileID string) ([]byte, error) {
	file, err := h.bot.GetFile(tgbotapi.FileConfig{FileID: fileID})
	if err != nil {
		return nil, fmt.Errorf("failed to get file: %w", err)
	}

	resp, err := http.Get(file.Link(h.bot.Token))
	if err != nil {
		return nil, fmt.Errorf("failed to download file: %w", err)
	}
	defer resp.Body.Close()

	return io.ReadAll(resp.Body)
}

// Yordamchi metodlar

func (h *BotHandler) requireSeller(ctx context.Context, userID, chatID int64) bool {
	isSeller, err := h.sellerUC.IsSeller(ctx, userID)
	if err != nil || !isSeller {
		h.sendMessage(chatID, "Bu bo'lim faqat sotuvchilar uchun. /seller orqali kiring.")
		return false
	}
	return true
}

func (h *BotHandler) sendMainMenu(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ReplyMarkup = tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(btnMarkets),
			tgbotapi.NewKeyboardButton(btnAssistant),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(btnMyOrders),
			tgbotapi.NewKeyboardButton(btnCancel),
		),
	)
	if _, err := h.bot.Send(msg); err != nil {
		log.Printf("Xabar yuborishda xato: %v", err)
	}
}

func (h *BotHandler) sendMessage(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := h.bot.Send(msg); err != nil {
		log.Printf("Xabar yuborishda xato: %v", err)
	}
}

func (h *BotHandler) cancelFlows(userID int64) {
	if session := h.getNegotiation(userID); session != nil {
		h.negotiationUC.Abandon(session)
	}
	h.clearNegotiation(userID)
	h.clearOrderSession(userID)
	h.setAssistantMode(userID, false)
	h.clearDraft(userID)
}

func (h *BotHandler) getNegotiation(userID int64) *usecase.Session {
	h.negotiationMu.RLock()
	defer h.negotiationMu.RUnlock()
	return h.negotiations[userID]
}

func (h *BotHandler) setNegotiation(userID int64, session *usecase.Session) {
	h.negotiationMu.Lock()
	defer h.negotiationMu.Unlock()
	h.negotiations[userID] = session
}

func (h *BotHandler) clearNegotiation(userID int64) {
	h.negotiationMu.Lock()
	defer h.negotiationMu.Unlock()
	delete(h.negotiations, userID)
}

func (h *BotHandler) startOrderSession(userID int64) {
	h.orderMu.Lock()
	defer h.orderMu.Unlock()
	h.orderSessions[userID] = &orderFlowSession{Stage: orderStageNeedName}
}

func (h *BotHandler) restartOrderStage(userID int64, stage orderStage) {
	h.orderMu.Lock()
	defer h.orderMu.Unlock()
	if flow := h.orderSessions[userID]; flow != nil {
		flow.Stage = stage
	}
}

func (h *BotHandler) clearOrderSession(userID int64) {
	h.orderMu.Lock()
	defer h.orderMu.Unlock()
	delete(h.orderSessions, userID)
}

func (h *BotHandler) hasOrderSession(userID int64) bool {
	h.orderMu.RLock()
	defer h.orderMu.RUnlock()
	_, exists := h.orderSessions[userID]
	return exists
}

func (h *BotHandler) setAssistantMode(userID int64, on bool) {
	h.assistantMu.Lock()
	defer h.assistantMu.Unlock()
	if on {
		h.assistantMode[userID] = true
	} else {
		delete(h.assistantMode, userID)
	}
}

func (h *BotHandler) isAssistantMode(userID int64) bool {
	h.assistantMu.RLock()
	defer h.assistantMu.RUnlock()
	return h.assistantMode[userID]
}

func (h *BotHandler) setDraft(userID int64, draft pendingDraft) {
	h.draftMu.Lock()
	defer h.draftMu.Unlock()
	h.drafts[userID] = draft
}

func (h *BotHandler) popDraft(userID int64) (pendingDraft, bool) {
	h.draftMu.Lock()
	defer h.draftMu.Unlock()
	draft, exists := h.drafts[userID]
	if exists {
		delete(h.drafts, userID)
	}
	return draft, exists
}

func (h *BotHandler) clearDraft(userID int64) {
	h.draftMu.Lock()
	defer h.draftMu.Unlock()
	delete(h.drafts, userID)
}

func (h *BotHandler) isAwaitingPassword(userID int64) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.awaitingPassword[userID]
}

func (h *BotHandler) setAwaitingPassword(userID int64, awaiting bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if awaiting {
		h.awaitingPassword[userID] = true
	} else {
		delete(h.awaitingPassword, userID)
	}
}
