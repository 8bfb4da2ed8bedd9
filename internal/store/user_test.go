package store

import (
	"context"
	"errors"
	"testing"

	"inventory-hub/internal/apperr"
	"inventory-hub/internal/database"
	"inventory-hub/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/require"
)

func TestUserStore(t *testing.T) {
	dup := &pgconn.PgError{Code: "23505", ConstraintName: "users_username_key"}

	/* --- ListUsers --- */
	t.Run("ListUsers ok", func(t *testing.T) {
		db := &database.FakeDB{
			QueryFn: func(_ context.Context, sql string, _ ...any) (pgx.Rows, error) {
				require.NotContains(t, sql, "password")
				return &fakeRows{data: [][]any{{1, "alice"}, {2, "bob"}}}, nil
			},
		}
		got, err := ListUsers(context.Background(), db)
		require.NoError(t, err)
		require.Equal(t, []model.UserSummary{{ID: 1, Username: "alice"}, {ID: 2, Username: "bob"}}, got)
	})

	t.Run("ListUsers scan error", func(t *testing.T) {
		db := &database.FakeDB{
			QueryFn: func(context.Context, string, ...any) (pgx.Rows, error) {
				return &fakeRows{data: [][]any{{1, "a"}}, scanErr: errors.New("bad")}, nil
			},
		}
		_, err := ListUsers(context.Background(), db)
		require.ErrorContains(t, err, "ListUsers")
	})

	/* --- GetUserByUsername --- */
	t.Run("GetUserByUsername ok", func(t *testing.T) {
		db := &database.FakeDB{
			QueryRowFn: func(context.Context, string, ...any) pgx.Row {
				return &fakeRow{vals: []any{3, "alice", "hash"}}
			},
		}
		u, err := GetUserByUsername(context.Background(), db, "alice")
		require.NoError(t, err)
		require.Equal(t, &model.User{ID: 3, Username: "alice", PasswordHash: "hash"}, u)
	})

	t.Run("GetUserByUsername not found", func(t *testing.T) {
		db := &database.FakeDB{
			QueryRowFn: func(context.Context, string, ...any) pgx.Row {
				return &fakeRow{scanErr: pgx.ErrNoRows}
			},
		}
		_, err := GetUserByUsername(context.Background(), db, "nobody")
		require.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
	})

	/* --- CreateUser --- */
	t.Run("CreateUser ok", func(t *testing.T) {
		db := &database.FakeDB{
			QueryRowFn: func(_ context.Context, _ string, args ...any) pgx.Row {
				require.Equal(t, []any{"carol", "h"}, args)
				return &fakeRow{vals: []any{12}}
			},
		}
		u, err := CreateUser(context.Background(), db, &model.User{Username: "carol", PasswordHash: "h"})
		require.NoError(t, err)
		require.Equal(t, 12, u.ID)
	})

	t.Run("CreateUser duplicate", func(t *testing.T) {
		db := &database.FakeDB{
			QueryRowFn: func(context.Context, string, ...any) pgx.Row {
				return &fakeRow{scanErr: dup}
			},
		}
		_, err := CreateUser(context.Background(), db, &model.User{Username: "carol"})
		require.Equal(t, apperr.KindValidation, apperr.KindOf(err))
		require.Equal(t, "username already taken", apperr.Message(err))
	})

	t.Run("CreateUser other error", func(t *testing.T) {
		db := &database.FakeDB{
			QueryRowFn: func(context.Context, string, ...any) pgx.Row {
				return &fakeRow{scanErr: errors.New("down")}
			},
		}
		_, err := CreateUser(context.Background(), db, &model.User{Username: "carol"})
		require.Equal(t, apperr.KindService, apperr.KindOf(err))
	})

	/* --- UpdateUser --- */
	t.Run("UpdateUser ok", func(t *testing.T) {
		db := &database.FakeDB{
			ExecFn: func(_ context.Context, _ string, args ...any) (pgconn.CommandTag, error) {
				require.Equal(t, []any{"dave", "h2", 5}, args)
				return pgconn.NewCommandTag("UPDATE 1"), nil
			},
		}
		require.NoError(t, UpdateUser(context.Background(), db, &model.User{ID: 5, Username: "dave", PasswordHash: "h2"}))
	})

	t.Run("UpdateUser missing id", func(t *testing.T) {
		db := &database.FakeDB{
			ExecFn: func(context.Context, string, ...any) (pgconn.CommandTag, error) {
				return pgconn.NewCommandTag("UPDATE 0"), nil
			},
		}
		err := UpdateUser(context.Background(), db, &model.User{ID: 99})
		require.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
	})

	t.Run("UpdateUser duplicate", func(t *testing.T) {
		db := &database.FakeDB{
			ExecFn: func(context.Context, string, ...any) (pgconn.CommandTag, error) {
				return pgconn.CommandTag{}, dup
			},
		}
		err := UpdateUser(context.Background(), db, &model.User{ID: 5})
		require.Equal(t, apperr.KindValidation, apperr.KindOf(err))
	})

	/* --- DeleteUser --- */
	t.Run("DeleteUser ok", func(t *testing.T) {
		db := &database.FakeDB{
			ExecFn: func(context.Context, string, ...any) (pgconn.CommandTag, error) {
				return pgconn.NewCommandTag("DELETE 1"), nil
			},
		}
		require.NoError(t, DeleteUser(context.Background(), db, 5))
	})

	t.Run("DeleteUser not found", func(t *testing.T) {
		db := &database.FakeDB{
			ExecFn: func(context.Context, string, ...any) (pgconn.CommandTag, error) {
				return pgconn.NewCommandTag("DELETE 0"), nil
			},
		}
		require.Equal(t, apperr.KindNotFound, apperr.KindOf(DeleteUser(context.Background(), db, 5)))
	})
}
