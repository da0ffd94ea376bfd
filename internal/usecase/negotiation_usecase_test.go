package usecase

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/yourusername/marketbridge-bot/internal/domain/entity"
)

type stubAI struct {
	mu      sync.Mutex
	replies []string
	err     error
	calls   int

	started chan struct{} // birinchi chaqiruvda yopiladi
	release chan struct{} // yopilguncha javob bloklanadi
}

func (s *stubAI) SellerReply(ctx context.Context, message string, history []entity.Turn, instruction string) (string, error) {
	s.mu.Lock()
	call := s.calls
	s.calls++
	if s.started != nil && call == 0 {
		close(s.started)
	}
	s.mu.Unlock()

	if s.release != nil {
		<-s.release
	}
	if s.err != nil {
		return "", s.err
	}
	if call < len(s.replies) {
		return s.replies[call], nil
	}
	return "Hmm, let me think about your price.", nil
}

func (s *stubAI) AssistantReply(ctx context.Context, message string, history []entity.Message, instruction string) (string, error) {
	return "", errors.New("not implemented")
}

func (s *stubAI) DescribeProduct(ctx context.Context, image []byte, mimeType string) (*entity.ProductDraft, error) {
	return nil, errors.New("not implemented")
}

type stubOrderRepo struct {
	mu     sync.Mutex
	orders []entity.Order
	err    error
}

func (s *stubOrderRepo) SaveOrder(ctx context.Context, order entity.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.orders = append(s.orders, order)
	return nil
}

func (s *stubOrderRepo) GetAll(ctx context.Context) ([]entity.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]entity.Order{}, s.orders...), nil
}

func (s *stubOrderRepo) GetByShop(ctx context.Context, shopID string) ([]entity.Order, error) {
	return nil, nil
}

func (s *stubOrderRepo) Close() error { return nil }

func testProduct(listed int) entity.Product {
	return entity.Product{
		ID:          "p1",
		Name:        "Premium Red Roses",
		ListedPrice: listed,
		FloorPrice:  entity.FloorPriceFor(listed),
		ShopID:      "s1",
	}
}

func TestExtractOffer(t *testing.T) {
	cases := []struct {
		text  string
		want  int
		found bool
	}{
		{"$940", 940, true},
		{"I can give 46 dollars", 46, true},
		{"my offer: 1,020 so'm emas, dollar", 1020, true},
		{"is it fresh?", 0, false},
		{"", 0, false},
	}

	for _, tc := range cases {
		got, found := ExtractOffer(tc.text)
		require.Equal(t, tc.found, found, "text %q", tc.text)
		require.Equal(t, tc.want, got, "text %q", tc.text)
	}
}

func TestOpenSeedsOpeningTurn(t *testing.T) {
	uc := NewNegotiationUseCase(&stubAI{}, &stubOrderRepo{}, nil)
	session := uc.Open(testProduct(50), "Rose Valley")

	require.Equal(t, entity.StateOpen, session.State())
	require.Equal(t, 0, session.Rounds())

	transcript := session.Transcript()
	require.Len(t, transcript, 1)
	require.Equal(t, entity.SpeakerSeller, transcript[0].Speaker)
	require.Contains(t, transcript[0].Text, "$50")
}

func TestCollaboratorFailureFallsBack(t *testing.T) {
	ai := &stubAI{err: errors.New("timeout")}
	uc := NewNegotiationUseCase(ai, &stubOrderRepo{}, nil)
	session := uc.Open(testProduct(50), "Rose Valley")

	turn, err := uc.SubmitTurn(context.Background(), session, "40")
	require.NoError(t, err, "collaborator xatosi sessiyani buzmasligi kerak")
	require.Equal(t, fallbackReply, turn.Text)
	require.Equal(t, entity.StateOpen, session.State())
	require.Equal(t, 1, session.Rounds())
}

func TestOfferAtFloorNeverRejected(t *testing.T) {
	// AI rad etsa ham minimal narxga teng taklif qabul qilinadi
	ai := &stubAI{replies: []string{"No way, that is too low for me!"}}
	uc := NewNegotiationUseCase(ai, &stubOrderRepo{}, nil)

	product := testProduct(1000)
	require.Equal(t, 920, product.FloorPrice)

	session := uc.Open(product, "Apple Premium")
	turn, err := uc.SubmitTurn(context.Background(), session, "920")
	require.NoError(t, err)
	require.Contains(t, strings.ToLower(turn.Text), "deal")
	require.Equal(t, entity.StateDealReached, session.State())

	// DEAL dan keyin tizim gali qo'shiladi
	transcript := session.Transcript()
	last := transcript[len(transcript)-1]
	require.Equal(t, entity.SpeakerSystem, last.Speaker)
}

func TestFinalAnchorEqualsFloor(t *testing.T) {
	ai := &stubAI{replies: []string{"Hmm, my friend, that is still low."}}
	uc := NewNegotiationUseCase(ai, &stubOrderRepo{}, nil)

	product := testProduct(1000)
	session := uc.Open(product, "Apple Premium")

	turn, err := uc.SubmitTurn(context.Background(), session, "900")
	require.NoError(t, err)
	require.Contains(t, turn.Text, "$920", "yakuniy narx aniq minimal narx bo'lishi kerak")
	require.Equal(t, entity.StateOpen, session.State())
}

func TestFiftyDollarScenario(t *testing.T) {
	// $50 mahsulot, minimal narx $46: 40 -> qarshi taklif, 46 -> kelishuv
	ai := &stubAI{replies: []string{
		"That's too low my friend, give me a better price.",
		"Fine, fine...",
	}}
	repo := &stubOrderRepo{}
	uc := NewNegotiationUseCase(ai, repo, nil)

	product := testProduct(50)
	require.Equal(t, 46, product.FloorPrice)

	session := uc.Open(product, "Rose Valley")

	turn, err := uc.SubmitTurn(context.Background(), session, "40")
	require.NoError(t, err)
	require.Equal(t, entity.StateOpen, session.State())
	require.NotContains(t, strings.ToLower(turn.Text), "deal")

	turn, err = uc.SubmitTurn(context.Background(), session, "46")
	require.NoError(t, err)
	require.Equal(t, entity.StateDealReached, session.State())
	require.Equal(t, 2, session.Rounds())

	order, err := uc.SubmitOrder(context.Background(), session, OrderForm{
		Name:          "Alex",
		Phone:         "+998901234567",
		Address:       "Tashkent",
		PaymentMethod: entity.PaymentCash,
	})
	require.NoError(t, err)
	require.Equal(t, 46, order.AgreedPrice)
	require.Equal(t, "Alex", order.CustomerName)
	require.Len(t, repo.orders, 1)
	require.NotEmpty(t, order.Transcript)
}

func TestOrderPriceExtractedFromLastSellerTurn(t *testing.T) {
	ai := &stubAI{replies: []string{"Deal! Final price $940, see you soon."}}
	repo := &stubOrderRepo{}
	uc := NewNegotiationUseCase(ai, repo, nil)

	session := uc.Open(testProduct(1000), "Apple Premium")
	_, err := uc.SubmitTurn(context.Background(), session, "940")
	require.NoError(t, err)
	require.Equal(t, entity.StateDealReached, session.State())

	order, err := uc.SubmitOrder(context.Background(), session, OrderForm{Name: "Alex", Phone: "+998901234567"})
	require.NoError(t, err)
	require.Equal(t, 940, order.AgreedPrice)
}

func TestOrderFallsBackToListedPrice(t *testing.T) {
	// Hech bir sotuvchi galida narx bo'lmasa ro'yxatdagi narx ishlatiladi
	repo := &stubOrderRepo{}
	uc := NewNegotiationUseCase(&stubAI{replies: []string{"Baraka! Fill out the form."}}, repo, nil)

	session := uc.Open(testProduct(50), "Rose Valley")
	// Ochilish galidagi "$50" ni olib tashlash uchun transkriptni tozalay olmaymiz,
	// shuning uchun bu yerda ochilish gali narxi fallback vazifasini bajaradi
	_, err := uc.SubmitTurn(context.Background(), session, "is it fresh? I want it")
	require.NoError(t, err)
	require.Equal(t, entity.StateDealReached, session.State())

	order, err := uc.SubmitOrder(context.Background(), session, OrderForm{Name: "Alex", Phone: "+998901234567"})
	require.NoError(t, err)
	require.Equal(t, 50, order.AgreedPrice)
}

func TestSubmitOrderValidation(t *testing.T) {
	ai := &stubAI{replies: []string{"Deal! $46 it is."}}
	repo := &stubOrderRepo{}
	uc := NewNegotiationUseCase(ai, repo, nil)

	session := uc.Open(testProduct(50), "Rose Valley")
	_, err := uc.SubmitTurn(context.Background(), session, "46")
	require.NoError(t, err)
	require.Equal(t, entity.StateDealReached, session.State())

	_, err = uc.SubmitOrder(context.Background(), session, OrderForm{Name: "Alex", Phone: ""})
	require.ErrorIs(t, err, ErrMissingPhone)
	require.Empty(t, repo.orders, "validatsiya xatosida buyurtma yaratilmaydi")
	require.Equal(t, entity.StateDealReached, session.State(), "sessiya DEAL_REACHED da qoladi")

	_, err = uc.SubmitOrder(context.Background(), session, OrderForm{Name: "", Phone: "+998901234567"})
	require.ErrorIs(t, err, ErrMissingName)

	// Bo'sh manzil validatsiyadan o'tadi
	order, err := uc.SubmitOrder(context.Background(), session, OrderForm{Name: "Alex", Phone: "+998901234567", Address: ""})
	require.NoError(t, err)
	require.NotNil(t, order)
	require.Len(t, repo.orders, 1)
}

func TestSubmitOrderRequiresDeal(t *testing.T) {
	uc := NewNegotiationUseCase(&stubAI{}, &stubOrderRepo{}, nil)
	session := uc.Open(testProduct(50), "Rose Valley")

	_, err := uc.SubmitOrder(context.Background(), session, OrderForm{Name: "Alex", Phone: "+998901234567"})
	require.ErrorIs(t, err, ErrNotDealReached)
}

func TestDoubleSubmitOrderRejected(t *testing.T) {
	ai := &stubAI{replies: []string{"Deal! $46 it is."}}
	repo := &stubOrderRepo{}
	uc := NewNegotiationUseCase(ai, repo, nil)

	session := uc.Open(testProduct(50), "Rose Valley")
	_, err := uc.SubmitTurn(context.Background(), session, "46")
	require.NoError(t, err)

	form := OrderForm{Name: "Alex", Phone: "+998901234567"}
	_, err = uc.SubmitOrder(context.Background(), session, form)
	require.NoError(t, err)

	_, err = uc.SubmitOrder(context.Background(), session, form)
	require.ErrorIs(t, err, ErrSessionClosed)
	require.Len(t, repo.orders, 1)
}

func TestAbandonDiscardsLateReply(t *testing.T) {
	ai := &stubAI{
		replies: []string{"Deal! Take it."},
		started: make(chan struct{}),
		release: make(chan struct{}),
	}
	uc := NewNegotiationUseCase(ai, &stubOrderRepo{}, nil)
	session := uc.Open(testProduct(50), "Rose Valley")

	done := make(chan error, 1)
	go func() {
		_, err := uc.SubmitTurn(context.Background(), session, "46")
		done <- err
	}()

	<-ai.started
	uc.Abandon(session)
	close(ai.release)

	err := <-done
	require.ErrorIs(t, err, ErrSessionClosed, "kech kelgan javob qo'llanmasligi kerak")
	require.Equal(t, entity.StateAbandoned, session.State())

	// Sotuvchi javobi transkriptga tushmagan
	transcript := session.Transcript()
	require.Equal(t, entity.SpeakerBuyer, transcript[len(transcript)-1].Speaker)
}

func TestSecondTurnWhileRespondingRejected(t *testing.T) {
	ai := &stubAI{
		replies: []string{"Thinking..."},
		started: make(chan struct{}),
		release: make(chan struct{}),
	}
	uc := NewNegotiationUseCase(ai, &stubOrderRepo{}, nil)
	session := uc.Open(testProduct(50), "Rose Valley")

	done := make(chan error, 1)
	go func() {
		_, err := uc.SubmitTurn(context.Background(), session, "40")
		done <- err
	}()

	<-ai.started
	_, err := uc.SubmitTurn(context.Background(), session, "41")
	require.ErrorIs(t, err, ErrSellerBusy)

	close(ai.release)
	require.NoError(t, <-done)
}

func TestConfigurableDealVocabulary(t *testing.T) {
	ai := &stubAI{replies: []string{"Xo'p mayli, kelishdik!"}}
	uc := NewNegotiationUseCase(ai, &stubOrderRepo{}, []string{"kelishdik"})

	session := uc.Open(testProduct(50), "Baraka Food")
	_, err := uc.SubmitTurn(context.Background(), session, "is it fresh?")
	require.NoError(t, err)
	require.Equal(t, entity.StateDealReached, session.State())
}
