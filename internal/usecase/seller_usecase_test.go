package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/yourusername/marketbridge-bot/internal/domain/entity"
	"github.com/yourusername/marketbridge-bot/internal/infrastructure/storage"
)

type stubReportWriter struct {
	built int
}

func (s *stubReportWriter) BuildOrdersReport(ctx context.Context, orders []entity.Order) ([]byte, error) {
	s.built++
	return []byte("xlsx"), nil
}

func newSellerFixture(t *testing.T) (SellerUseCase, *stubOrderRepo) {
	t.Helper()
	orderRepo := &stubOrderRepo{}
	uc := NewSellerUseCase(
		storage.NewMemorySellerRepository(),
		storage.NewMemoryCatalogRepository(),
		orderRepo,
		&stubAI{},
		&stubReportWriter{},
		"baraka",
	)
	return uc, orderRepo
}

func TestParsePriceTag(t *testing.T) {
	cases := []struct {
		raw     string
		want    int
		wantErr bool
	}{
		{"$940", 940, false},
		{"940", 940, false},
		{" $1,020 ", 1020, false},
		{"$45.99", 45, false},
		{"narxi yo'q", 0, true},
		{"", 0, true},
	}

	for _, tc := range cases {
		got, err := ParsePriceTag(tc.raw)
		if tc.wantErr {
			require.Error(t, err, "raw %q", tc.raw)
			continue
		}
		require.NoError(t, err, "raw %q", tc.raw)
		require.Equal(t, tc.want, got, "raw %q", tc.raw)
	}
}

func TestLogin(t *testing.T) {
	uc, _ := newSellerFixture(t)
	ctx := context.Background()

	ok, err := uc.Login(ctx, 100, "noto'g'ri")
	require.NoError(t, err)
	require.False(t, ok)

	isSeller, err := uc.IsSeller(ctx, 100)
	require.NoError(t, err)
	require.False(t, isSeller)

	ok, err = uc.Login(ctx, 100, "baraka")
	require.NoError(t, err)
	require.True(t, ok)

	isSeller, err = uc.IsSeller(ctx, 100)
	require.NoError(t, err)
	require.True(t, isSeller)

	require.NoError(t, uc.Logout(ctx, 100))
	isSeller, err = uc.IsSeller(ctx, 100)
	require.NoError(t, err)
	require.False(t, isSeller)
}

func TestListProductRequiresSeller(t *testing.T) {
	uc, _ := newSellerFixture(t)

	draft := entity.ProductDraft{Name: "Fresh Apples", EstimatedPrice: "$12"}
	_, err := uc.ListProduct(context.Background(), 200, draft, "s1", 20)
	require.ErrorIs(t, err, ErrNotSeller)
}

func TestListProductDerivesFields(t *testing.T) {
	uc, _ := newSellerFixture(t)
	ctx := context.Background()

	_, err := uc.Login(ctx, 100, "baraka")
	require.NoError(t, err)

	draft := entity.ProductDraft{
		Name:           "iPhone 15 Pro",
		EstimatedPrice: "$1,000",
		Category:       "Smartphones",
		Description:    "Lightly used, original box",
	}
	product, err := uc.ListProduct(ctx, 100, draft, "s1", 5)
	require.NoError(t, err)
	require.Equal(t, 1000, product.ListedPrice)
	require.Equal(t, 920, product.FloorPrice)
	require.Equal(t, entity.StockStatusLow, product.StockStatus)
	require.True(t, product.IsNegotiable)
	require.Equal(t, "s1", product.ShopID)
	require.NotEmpty(t, product.ID)
}

func TestListProductRejectsBadDraft(t *testing.T) {
	uc, _ := newSellerFixture(t)
	ctx := context.Background()

	_, err := uc.Login(ctx, 100, "baraka")
	require.NoError(t, err)

	_, err = uc.ListProduct(ctx, 100, entity.ProductDraft{Name: "", EstimatedPrice: "$10"}, "s1", 5)
	require.ErrorIs(t, err, ErrInvalidDraft)

	_, err = uc.ListProduct(ctx, 100, entity.ProductDraft{Name: "Gul", EstimatedPrice: "bepul"}, "s1", 5)
	require.ErrorIs(t, err, ErrInvalidDraft)

	_, err = uc.ListProduct(ctx, 100, entity.ProductDraft{Name: "Gul", EstimatedPrice: "$0"}, "s1", 5)
	require.ErrorIs(t, err, ErrInvalidDraft)
}

func TestStats(t *testing.T) {
	uc, orderRepo := newSellerFixture(t)
	now := time.Now()

	// 40 kun oldingi buyurtma har doim oy boshidan oldin bo'ladi
	orderRepo.orders = []entity.Order{
		{ID: "ord-1", AgreedPrice: 46, Timestamp: now},
		{ID: "ord-2", AgreedPrice: 920, Timestamp: now},
		{ID: "ord-3", AgreedPrice: 30, Timestamp: now.AddDate(0, 0, -40)},
	}

	stats, err := uc.Stats(context.Background())
	require.NoError(t, err)
	require.Equal(t, 3, stats.TotalOrders)
	require.Equal(t, 2, stats.DailyCount)
	require.Equal(t, 966, stats.DailyRevenue)
	require.Equal(t, 966, stats.MonthlyRevenue)
}

func TestOrdersReportRequiresSeller(t *testing.T) {
	uc, _ := newSellerFixture(t)

	_, err := uc.OrdersReport(context.Background(), 300)
	require.ErrorIs(t, err, ErrNotSeller)

	ctx := context.Background()
	_, err = uc.Login(ctx, 300, "baraka")
	require.NoError(t, err)

	data, err := uc.OrdersReport(ctx, 300)
	require.NoError(t, err)
	require.NotEmpty(t, data)
}
