package events

import (
	"context"
	"log/slog"

	"inventory-hub/internal/worker"
)

// AsyncPublisher 把發布交給 worker pool，呼叫端不等待 Kafka。
// 失敗只寫 log
type AsyncPublisher struct {
	next   Publisher
	pool   worker.Pool
	logger *slog.Logger
}

func NewAsyncPublisher(next Publisher, pool worker.Pool, logger *slog.Logger) *AsyncPublisher {
	if logger == nil {
		logger = slog.Default()
	}
	return &AsyncPublisher{next: next, pool: pool, logger: logger}
}

// Publish 不使用呼叫端 ctx，request 結束後事件仍會送出。
// 不會阻塞：queue 滿或 pool 已停止時直接丟棄並回傳 worker 的錯誤
func (a *AsyncPublisher) Publish(_ context.Context, e Event) error {
	err := a.pool.Submit(func(ctx context.Context) {
		if err := a.next.Publish(ctx, e); err != nil {
			a.logger.Error("publish event failed", "type", e.Type, "name", e.Name, "error", err)
		}
	})
	if err != nil {
		a.logger.Warn("event dropped", "type", e.Type, "name", e.Name, "error", err)
		return err
	}
	return nil
}

// Close 先排空 pool 再關閉底層 writer
func (a *AsyncPublisher) Close() error {
	a.pool.Stop()
	return a.next.Close()
}
