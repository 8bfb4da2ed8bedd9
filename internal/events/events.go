// Package events 發布商品庫存異動事件到 Kafka
package events

import (
	"context"
	"time"
)

const (
	ProductCreated          = "product.created"
	ProductQuantityAdjusted = "product.quantity_adjusted"
	ProductDeleted          = "product.deleted"
)

// Event 是寫入 Kafka 的 JSON 值，key 為商品名稱
type Event struct {
	Type       string    `json:"type"`
	Name       string    `json:"name"`
	Category   string    `json:"category,omitempty"`
	Price      *float64  `json:"price,omitempty"`
	Quantity   *int      `json:"quantity,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

var timeNow = time.Now

func Created(name, category string, price float64, quantity int) Event {
	return Event{Type: ProductCreated, Name: name, Category: category, Price: &price, Quantity: &quantity, OccurredAt: timeNow().UTC()}
}

func QuantityAdjusted(name string, quantity int) Event {
	return Event{Type: ProductQuantityAdjusted, Name: name, Quantity: &quantity, OccurredAt: timeNow().UTC()}
}

func Deleted(name string) Event {
	return Event{Type: ProductDeleted, Name: name, OccurredAt: timeNow().UTC()}
}

type Publisher interface {
	Publish(ctx context.Context, e Event) error
	Close() error
}

// NopPublisher 在未設定 KAFKA_BROKERS 時使用
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, Event) error { return nil }
func (NopPublisher) Close() error                         { return nil }

// FakePublisher 供 handler 測試使用
type FakePublisher struct {
	PublishFn func(ctx context.Context, e Event) error
	CloseFn   func() error
}

func (f *FakePublisher) Publish(ctx context.Context, e Event) error {
	if f.PublishFn != nil {
		return f.PublishFn(ctx, e)
	}
	return nil
}

func (f *FakePublisher) Close() error {
	if f.CloseFn != nil {
		return f.CloseFn()
	}
	return nil
}
