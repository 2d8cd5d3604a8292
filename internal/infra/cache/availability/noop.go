package availability

import (
	"context"
	"time"

	"github.com/kruglovd/CB-SchedulingService/internal/domain"
)

// NoopCache заглушка кеша для деплойментов без Redis: все чтения — промах,
// записи и инвалидация ничего не делают
type NoopCache struct{}

// NewNoop создает заглушку кеша
func NewNoop() *NoopCache {
	return &NoopCache{}
}

func (c *NoopCache) GetDay(_ context.Context, _ int64, _ time.Time) ([]domain.ResolvedSlot, bool) {
	return nil, false
}

func (c *NoopCache) SetDay(_ context.Context, _ int64, _ time.Time, _ []domain.ResolvedSlot) {}

func (c *NoopCache) InvalidateDay(_ context.Context, _ int64, _ time.Time) {}

func (c *NoopCache) Close() error {
	return nil
}
