package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"strconv"
	"strings"
)

// swagger:model api.CreateProductRequest
type CreateProductRequest struct {
	Name     string   `json:"name" form:"name" validate:"required" example:"Rice"`
	Category string   `json:"category" form:"category" validate:"required" example:"Grain"`
	Price    *float64 `json:"price" form:"price" validate:"required,gte=0" example:"25"`
	Quantity *int     `json:"quantity" form:"quantity" validate:"required,gte=0,lte=2147483647" example:"10"`
}

// swagger:model api.AdjustQuantityRequest
type AdjustQuantityRequest struct {
	ChangeType     string    `json:"changeType" form:"changeType" example:"deduct"`
	QuantityChange NumberArg `json:"quantityChange" form:"quantityChange" swaggertype:"string" example:"15"`
}

// NumberArg 接受 JSON 數字或字串，保留原始文字，由 PositiveInt 解析
type NumberArg string

func (n *NumberArg) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*n = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*n = NumberArg(s)
		return nil
	}
	var num json.Number
	if err := json.Unmarshal(b, &num); err != nil {
		return errors.New("quantityChange must be a number or string")
	}
	*n = NumberArg(num.String())
	return nil
}

// UnmarshalParam 讓 form / query 綁定走相同規則
func (n *NumberArg) UnmarshalParam(src string) error {
	*n = NumberArg(src)
	return nil
}

// PositiveInt 只接受 1..MaxInt32 的整數（允許前後空白），對應 INTEGER 欄位
func (n NumberArg) PositiveInt() (int, bool) {
	v, err := strconv.ParseInt(strings.TrimSpace(string(n)), 10, 32)
	if err != nil || v <= 0 {
		return 0, false
	}
	return int(v), true
}

// swagger:model api.CreateProductResponse
type CreateProductResponse struct {
	Message string `json:"message" example:"Product added successfully"`
	ID      int    `json:"id" example:"1"`
}

// swagger:model api.AdjustQuantityResponse
type AdjustQuantityResponse struct {
	Message     string `json:"message" example:"Product quantity updated successfully"`
	Name        string `json:"name" example:"Rice"`
	NewQuantity int    `json:"newQuantity" example:"0"`
}
