//go:build integration

package store

import (
	"context"
	"os"
	"sync"
	"testing"

	"inventory-hub/internal/apperr"
	"inventory-hub/internal/database"
	"inventory-hub/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

// go test -tags integration ./internal/store/ 需設定 TEST_DATABASE_URL
func openTestDB(t *testing.T) database.DB {
	t.Helper()
	url := os.Getenv("TEST_DATABASE_URL")
	if url == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}
	require.NoError(t, database.RunMigrations(url))
	db, err := database.NewPgxPool(context.Background(), url)
	require.NoError(t, err)
	t.Cleanup(db.Close)
	return db
}

func seedProduct(t *testing.T, db database.DB, name string, qty int) *model.Product {
	t.Helper()
	p, err := CreateProduct(context.Background(), db, &model.Product{Name: name, Category: "Grain", Price: 25, Quantity: qty})
	require.NoError(t, err)
	t.Cleanup(func() {
		_, _ = db.Exec(context.Background(), `DELETE FROM product WHERE name = $1`, name)
	})
	return p
}

func quantities(t *testing.T, db database.DB, name string) []int {
	t.Helper()
	rows, err := db.Query(context.Background(), `SELECT quantity FROM product WHERE name = $1 ORDER BY id`, name)
	require.NoError(t, err)
	defer rows.Close()
	var out []int
	for rows.Next() {
		var q int
		require.NoError(t, rows.Scan(&q))
		out = append(out, q)
	}
	require.NoError(t, rows.Err())
	return out
}

func TestProductStorePostgres(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	t.Run("add by exactly delta", func(t *testing.T) {
		name := "rice-" + uuid.NewString()
		seedProduct(t, db, name, 10)
		q, err := AdjustProductQuantity(ctx, db, name, model.ChangeAdd, 5)
		require.NoError(t, err)
		require.Equal(t, 15, q)
		require.Equal(t, []int{15}, quantities(t, db, name))
	})

	t.Run("deduct clamps to zero", func(t *testing.T) {
		name := "beans-" + uuid.NewString()
		seedProduct(t, db, name, 3)
		q, err := AdjustProductQuantity(ctx, db, name, model.ChangeDeduct, 15)
		require.NoError(t, err)
		require.Equal(t, 0, q)
	})

	t.Run("concurrent adds are not lost", func(t *testing.T) {
		name := "oats-" + uuid.NewString()
		seedProduct(t, db, name, 0)
		var wg sync.WaitGroup
		errs := make(chan error, 20)
		for i := 0; i < 20; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, err := AdjustProductQuantity(ctx, db, name, model.ChangeAdd, 1)
				errs <- err
			}()
		}
		wg.Wait()
		close(errs)
		for err := range errs {
			require.NoError(t, err)
		}
		require.Equal(t, []int{20}, quantities(t, db, name))
	})

	t.Run("overflow is a validation error", func(t *testing.T) {
		name := "salt-" + uuid.NewString()
		seedProduct(t, db, name, 2147483647)
		_, err := AdjustProductQuantity(ctx, db, name, model.ChangeAdd, 1)
		require.Equal(t, apperr.KindValidation, apperr.KindOf(err))
	})

	t.Run("duplicates: adjust and delete touch one row", func(t *testing.T) {
		name := "flour-" + uuid.NewString()
		seedProduct(t, db, name, 1)
		seedProduct(t, db, name, 7)

		_, err := AdjustProductQuantity(ctx, db, name, model.ChangeAdd, 2)
		require.NoError(t, err)
		require.Equal(t, []int{3, 7}, quantities(t, db, name))

		require.NoError(t, DeleteProduct(ctx, db, name))
		require.Equal(t, []int{7}, quantities(t, db, name))
	})

	t.Run("missing product", func(t *testing.T) {
		name := "ghost-" + uuid.NewString()
		_, err := AdjustProductQuantity(ctx, db, name, model.ChangeAdd, 1)
		require.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
		require.Equal(t, apperr.KindNotFound, apperr.KindOf(DeleteProduct(ctx, db, name)))
	})
}
