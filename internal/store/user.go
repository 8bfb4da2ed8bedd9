package store

import (
	"context"
	"errors"
	"fmt"

	"inventory-hub/internal/apperr"
	"inventory-hub/internal/database"
	"inventory-hub/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const (
	uniqueViolation      = "23505"
	numericValueOutRange = "22003"
)

func hasSQLState(err error, code string) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == code
}

func isUniqueViolation(err error) bool {
	return hasSQLState(err, uniqueViolation)
}

func ListUsers(ctx context.Context, db database.DB) ([]model.UserSummary, error) {
	rows, err := db.Query(ctx, `SELECT id, username FROM users ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("ListUsers: %w", err)
	}
	defer rows.Close()

	users := make([]model.UserSummary, 0)
	for rows.Next() {
		var u model.UserSummary
		if err := rows.Scan(&u.ID, &u.Username); err != nil {
			return nil, fmt.Errorf("ListUsers: %w", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ListUsers: %w", err)
	}
	return users, nil
}

func GetUserByUsername(ctx context.Context, db database.DB, username string) (*model.User, error) {
	row := db.QueryRow(ctx,
		`SELECT id, username, password_hash
		 FROM users WHERE username = $1`,
		username,
	)
	u := &model.User{}
	if err := row.Scan(&u.ID, &u.Username, &u.PasswordHash); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("GetUserByUsername", "User not found")
		}
		return nil, fmt.Errorf("GetUserByUsername: %w", err)
	}
	return u, nil
}

func CreateUser(ctx context.Context, db database.DB, u *model.User) (*model.User, error) {
	row := db.QueryRow(ctx,
		`INSERT INTO users (username, password_hash)
		 VALUES ($1, $2)
		 RETURNING id`,
		u.Username,
		u.PasswordHash,
	)
	if err := row.Scan(&u.ID); err != nil {
		if isUniqueViolation(err) {
			return nil, apperr.Validation("CreateUser", "username already taken")
		}
		return nil, fmt.Errorf("CreateUser: %w", err)
	}
	return u, nil
}

// UpdateUser 同時覆寫 username 與 password_hash
func UpdateUser(ctx context.Context, db database.DB, u *model.User) error {
	tag, err := db.Exec(ctx,
		`UPDATE users SET username = $1, password_hash = $2
		 WHERE id = $3`,
		u.Username,
		u.PasswordHash,
		u.ID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperr.Validation("UpdateUser", "username already taken")
		}
		return fmt.Errorf("UpdateUser: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("UpdateUser", "User not found")
	}
	return nil
}

func DeleteUser(ctx context.Context, db database.DB, id int) error {
	tag, err := db.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("DeleteUser: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("DeleteUser", "User not found")
	}
	return nil
}
