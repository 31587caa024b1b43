// Package testutil connects integration tests to the test PostgreSQL and
// Redis described by config.LoadTestConfig.
package testutil

import (
	"context"
	"testing"

	"go-gin-cinema-booking/config"
	"go-gin-cinema-booking/internal/database"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

// SetupRedisOnly 僅初始化 Redis，用於只依賴 Redis 的測試（如 cache、queue）
func SetupRedisOnly() (*redis.Client, func(), error) {
	cfg := config.LoadTestConfig()
	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		return nil, nil, err
	}
	return rdb, func() { rdb.Close() }, nil
}

// RedisOrSkip 連不到測試 Redis 時略過測試，結束時清空測試 DB
func RedisOrSkip(t *testing.T) *redis.Client {
	t.Helper()
	rdb, cleanup, err := SetupRedisOnly()
	if err != nil {
		t.Skipf("test redis unavailable: %v", err)
	}
	ctx := context.Background()
	if err := rdb.FlushDB(ctx).Err(); err != nil {
		cleanup()
		t.Fatalf("failed to flush test redis: %v", err)
	}
	t.Cleanup(func() {
		_ = rdb.FlushDB(ctx).Err()
		cleanup()
	})
	return rdb
}

// DBOrSkip 連不到測試資料庫時略過測試；建立 schema 並清空資料，保留結構
func DBOrSkip(t *testing.T) *pgxpool.Pool {
	t.Helper()
	cfg := config.LoadTestConfig()
	db, err := database.InitDatabase(&cfg.Database)
	if err != nil {
		t.Skipf("test database unavailable: %v", err)
	}
	t.Cleanup(db.Close)

	ctx := context.Background()
	if err := database.Migrate(ctx, db); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	if _, err := db.Exec(ctx, truncateAll); err != nil {
		t.Fatalf("failed to truncate tables: %v", err)
	}
	return db
}

const truncateAll = `TRUNCATE booking_combos, booking_seats, bookings, coupons, customers, ranks,
	combos, seats, seat_types, showings RESTART IDENTITY CASCADE`

// Fixture 測試資料：一個場次、A 排 4 個座位（A1/A2 為 Sweet Box）、兩種套餐、一位 Gold 會員與一張優惠券
type Fixture struct {
	ShowingID  int
	SeatIDs    []int
	ComboIDs   []int
	Email      string
	CouponID   int
	CustomerID int
}

func SeedFixture(t *testing.T, db *pgxpool.Pool) Fixture {
	t.Helper()
	ctx := context.Background()
	f := Fixture{Email: "an@example.com"}

	mustScan := func(dst interface{}, query string, args ...interface{}) {
		t.Helper()
		if err := db.QueryRow(ctx, query, args...).Scan(dst); err != nil {
			t.Fatalf("failed to seed (%s): %v", query, err)
		}
	}

	mustScan(&f.ShowingID, `INSERT INTO showings (movie_name, cinema_name, room_name, starts_at)
		VALUES ('Dune', 'Galaxy Nguyen Du', 'R1', '2026-10-17 19:30:00+00') RETURNING id`)

	var normal, sweet int
	mustScan(&normal, `INSERT INTO seat_types (name, price) VALUES ('Normal', 50000) RETURNING id`)
	mustScan(&sweet, `INSERT INTO seat_types (name, price) VALUES ('Sweet Box', 120000) RETURNING id`)

	for col := 1; col <= 4; col++ {
		typeID := normal
		if col <= 2 {
			typeID = sweet
		}
		var id int
		mustScan(&id, `INSERT INTO seats (room_name, row_label, column_no, seat_type_id)
			VALUES ('R1', 'A', $1, $2) RETURNING id`, col, typeID)
		f.SeatIDs = append(f.SeatIDs, id)
	}

	for _, c := range []struct {
		name  string
		price int64
		stock int
	}{{"Popcorn", 45000, 10}, {"Cola", 25000, 1}} {
		var id int
		mustScan(&id, `INSERT INTO combos (name, price, stock) VALUES ($1, $2, $3) RETURNING id`, c.name, c.price, c.stock)
		f.ComboIDs = append(f.ComboIDs, id)
	}

	var rankID int
	mustScan(&rankID, `INSERT INTO ranks (name, discount_percent) VALUES ('Gold', 10) RETURNING id`)
	mustScan(&f.CustomerID, `INSERT INTO customers (email, loyalty_points, rank_id) VALUES ($1, 20000, $2) RETURNING id`, f.Email, rankID)
	mustScan(&f.CouponID, `INSERT INTO coupons (customer_id, code, discount_amount) VALUES ($1, 'WELCOME', 20000) RETURNING id`, f.CustomerID)

	return f
}
