// File: internal/model/product.go
package model

// Product 以 name 作為 adjust/delete 的查詢鍵；ID 只用來排序
type Product struct {
	ID       int     `db:"id" json:"id"`
	Name     string  `db:"name" json:"name"`
	Category string  `db:"category" json:"category"`
	Price    float64 `db:"price" json:"price"`
	Quantity int     `db:"quantity" json:"quantity"`
}

type ChangeType string

const (
	ChangeAdd    ChangeType = "add"
	ChangeDeduct ChangeType = "deduct"
)

func (t ChangeType) Valid() bool {
	return t == ChangeAdd || t == ChangeDeduct
}
