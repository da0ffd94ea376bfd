package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/yourusername/marketbridge-bot/internal/domain/entity"
	"github.com/yourusername/marketbridge-bot/internal/domain/repository"
)

type sqliteOrderRepository struct {
	db *sql.DB
}

// NewSQLiteOrderRepository SQLite asosidagi order repository
func NewSQLiteOrderRepository(dbPath string) (repository.OrderRepository, error) {
	if dbPath == "" {
		return nil, errors.New("db path bo'sh bo'lmasligi kerak")
	}

	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("db papkasini yaratib bo'lmadi: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("sqlite ochilmadi: %w", err)
	}

	if err := createOrderSchema(db); err != nil {
		return nil, err
	}

	return &sqliteOrderRepository{db: db}, nil
}

func createOrderSchema(db *sql.DB) error {
	const schema = `
CREATE TABLE IF NOT EXISTS orders (
	id TEXT PRIMARY KEY,
	product_id TEXT NOT NULL,
	product_name TEXT NOT NULL,
	shop_id TEXT NOT NULL,
	agreed_price INTEGER NOT NULL,
	customer_name TEXT NOT NULL,
	phone TEXT NOT NULL,
	address TEXT,
	payment_method TEXT NOT NULL,
	ts TIMESTAMP NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_orders_shop_ts ON orders (shop_id, ts);
CREATE TABLE IF NOT EXISTS order_turns (
	order_id TEXT NOT NULL,
	seq INTEGER NOT NULL,
	speaker TEXT NOT NULL,
	text TEXT,
	offer INTEGER,
	ts TIMESTAMP NOT NULL,
	PRIMARY KEY (order_id, seq)
);
`
	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("schema yaratib bo'lmadi: %w", err)
	}
	return nil
}

// SaveOrder buyurtmani transkripti bilan birga saqlash
func (s *sqliteOrderRepository) SaveOrder(ctx context.Context, order entity.Order) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO orders (id, product_id, product_name, shop_id, agreed_price, customer_name, phone, address, payment_method, ts)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		order.ID, order.ProductID, order.ProductName, order.ShopID, order.AgreedPrice,
		order.CustomerName, order.Phone, order.Address, order.PaymentMethod, order.Timestamp)
	if err != nil {
		tx.Rollback()
		return err
	}

	for seq, turn := range order.Transcript {
		var offer sql.NullInt64
		if turn.HasOffer {
			offer = sql.NullInt64{Int64: int64(turn.Offer), Valid: true}
		}
		_, err = tx.ExecContext(ctx,
			`INSERT INTO order_turns (order_id, seq, speaker, text, offer, ts) VALUES (?, ?, ?, ?, ?, ?)`,
			order.ID, seq, string(turn.Speaker), turn.Text, offer, turn.Timestamp)
		if err != nil {
			tx.Rollback()
			return err
		}
	}

	return tx.Commit()
}

// GetAll barcha buyurtmalarni olish (yangi -> eski)
func (s *sqliteOrderRepository) GetAll(ctx context.Context) ([]entity.Order, error) {
	return s.queryOrders(ctx,
		`SELECT id, product_id, product_name, shop_id, agreed_price, customer_name, phone, address, payment_method, ts
		 FROM orders ORDER BY ts DESC`)
}

// GetByShop do'kon bo'yicha buyurtmalarni olish
func (s *sqliteOrderRepository) GetByShop(ctx context.Context, shopID string) ([]entity.Order, error) {
	return s.queryOrders(ctx,
		`SELECT id, product_id, product_name, shop_id, agreed_price, customer_name, phone, address, payment_method, ts
		 FROM orders WHERE shop_id = ? ORDER BY ts DESC`, shopID)
}

func (s *sqliteOrderRepository) queryOrders(ctx context.Context, query string, args ...any) ([]entity.Order, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []entity.Order
	for rows.Next() {
		var order entity.Order
		var ts time.Time
		if err := rows.Scan(&order.ID, &order.ProductID, &order.ProductName, &order.ShopID,
			&order.AgreedPrice, &order.CustomerName, &order.Phone, &order.Address,
			&order.PaymentMethod, &ts); err != nil {
			return nil, err
		}
		order.Timestamp = ts
		orders = append(orders, order)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range orders {
		transcript, err := s.loadTranscript(ctx, orders[i].ID)
		if err != nil {
			return nil, err
		}
		orders[i].Transcript = transcript
	}

	return orders, nil
}

func (s *sqliteOrderRepository) loadTranscript(ctx context.Context, orderID string) ([]entity.Turn, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT speaker, text, offer, ts FROM order_turns WHERE order_id = ? ORDER BY seq ASC`, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var turns []entity.Turn
	for rows.Next() {
		var turn entity.Turn
		var speaker string
		var offer sql.NullInt64
		var ts time.Time
		if err := rows.Scan(&speaker, &turn.Text, &offer, &ts); err != nil {
			return nil, err
		}
		turn.Speaker = entity.Speaker(speaker)
		if offer.Valid {
			turn.Offer = int(offer.Int64)
			turn.HasOffer = true
		}
		turn.Timestamp = ts
		turns = append(turns, turn)
	}
	return turns, rows.Err()
}

// Close db ni yopish
func (s *sqliteOrderRepository) Close() error {
	return s.db.Close()
}
