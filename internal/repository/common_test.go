package repository_test

import (
	"context"
	"testing"

	"go-gin-cinema-booking/internal/testutil"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// setupTestWithTransaction 使用 Transaction Rollback 方式
func setupTestWithTransaction(t *testing.T, db *pgxpool.Pool) pgx.Tx {
	t.Helper()
	ctx := context.Background()

	tx, err := db.Begin(ctx)
	if err != nil {
		t.Fatalf("Failed to begin transaction: %v", err)
	}
	t.Cleanup(func() {
		_ = tx.Rollback(ctx)
	})
	return tx
}

func setupFixture(t *testing.T) (*pgxpool.Pool, testutil.Fixture) {
	t.Helper()
	db := testutil.DBOrSkip(t)
	return db, testutil.SeedFixture(t, db)
}
