package store

import (
	"context"
	"errors"
	"fmt"

	"inventory-hub/internal/apperr"
	"inventory-hub/internal/database"
	"inventory-hub/internal/model"

	"github.com/jackc/pgx/v5"
)

func ListProducts(ctx context.Context, db database.DB) ([]model.Product, error) {
	rows, err := db.Query(ctx,
		`SELECT id, name, category, price, quantity
		 FROM product ORDER BY id`,
	)
	if err != nil {
		return nil, fmt.Errorf("ListProducts: %w", err)
	}
	defer rows.Close()

	products := make([]model.Product, 0)
	for rows.Next() {
		var p model.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Category, &p.Price, &p.Quantity); err != nil {
			return nil, fmt.Errorf("ListProducts: %w", err)
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ListProducts: %w", err)
	}
	return products, nil
}

// CreateProduct 不檢查名稱重複，同名商品會各自成為一列
func CreateProduct(ctx context.Context, db database.DB, p *model.Product) (*model.Product, error) {
	row := db.QueryRow(ctx,
		`INSERT INTO product (name, category, price, quantity)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id`,
		p.Name,
		p.Category,
		p.Price,
		p.Quantity,
	)
	if err := row.Scan(&p.ID); err != nil {
		return nil, fmt.Errorf("CreateProduct: %w", err)
	}
	return p, nil
}

// AdjustProductQuantity 以單一 UPDATE 完成讀寫，deduct 在 0 截斷。
// 同名多列時只調整 id 最小的那一列
func AdjustProductQuantity(ctx context.Context, db database.DB, name string, change model.ChangeType, delta int) (int, error) {
	var expr string
	switch change {
	case model.ChangeAdd:
		expr = "quantity + $2"
	case model.ChangeDeduct:
		expr = "GREATEST(0, quantity - $2)"
	default:
		return 0, apperr.Validation("AdjustProductQuantity", "Invalid change type")
	}

	row := db.QueryRow(ctx,
		`UPDATE product SET quantity = `+expr+`
		 WHERE id = (SELECT id FROM product WHERE name = $1 ORDER BY id LIMIT 1)
		 RETURNING quantity`,
		name,
		delta,
	)
	var quantity int
	if err := row.Scan(&quantity); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, apperr.NotFound("AdjustProductQuantity", "Product not found")
		}
		if hasSQLState(err, numericValueOutRange) {
			return 0, apperr.Validation("AdjustProductQuantity", "Invalid quantity change amount")
		}
		return 0, fmt.Errorf("AdjustProductQuantity: %w", err)
	}
	return quantity, nil
}

// DeleteProduct 一次只刪一列（id 最小者）
func DeleteProduct(ctx context.Context, db database.DB, name string) error {
	tag, err := db.Exec(ctx,
		`DELETE FROM product
		 WHERE id = (SELECT id FROM product WHERE name = $1 ORDER BY id LIMIT 1)`,
		name,
	)
	if err != nil {
		return fmt.Errorf("DeleteProduct: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("DeleteProduct", "Product not found")
	}
	return nil
}
