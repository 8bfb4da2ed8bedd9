// File: internal/model/user.go
package model

type User struct {
	ID           int    `db:"id" json:"id"`
	Username     string `db:"username" json:"username"`
	PasswordHash string `db:"password_hash" json:"-"`
}

// UserSummary 是列表與登入回應中唯一公開的使用者欄位
type UserSummary struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
}

func (u User) Summary() UserSummary {
	return UserSummary{ID: u.ID, Username: u.Username}
}
