// Package apperr 定義服務層共用的錯誤分類，並對應到 HTTP 狀態碼
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

type Kind int

const (
	KindService Kind = iota
	KindValidation
	KindNotFound
	KindAuth
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not_found"
	case KindAuth:
		return "auth"
	default:
		return "service"
	}
}

// Error 攜帶分類、操作名稱與可回傳給用戶端的訊息；Err 只寫入 log
type Error struct {
	Kind    Kind
	Op      string
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Op, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Op, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

func Validation(op, msg string) error {
	return &Error{Kind: KindValidation, Op: op, Message: msg}
}

func NotFound(op, msg string) error {
	return &Error{Kind: KindNotFound, Op: op, Message: msg}
}

func Auth(op, msg string) error {
	return &Error{Kind: KindAuth, Op: op, Message: msg}
}

func Service(op string, err error) error {
	return &Error{Kind: KindService, Op: op, Message: "internal server error", Err: err}
}

// KindOf 未分類的錯誤一律視為 KindService
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindService
}

// Message 回傳可安全公開的訊息
func Message(err error) string {
	var e *Error
	if errors.As(err, &e) && e.Kind != KindService {
		return e.Message
	}
	return "internal server error"
}

func Status(err error) int {
	switch KindOf(err) {
	case KindValidation:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindAuth:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}
