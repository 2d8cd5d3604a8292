package availability

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/kruglovd/CB-SchedulingService/internal/domain"
)

// Logger интерфейс для логирования
type Logger interface {
	Warn(format string, v ...interface{})
}

// Cache read-through кеш разрешённого статуса слотов дня поверх Redis.
// Кеш никогда не является источником истины для решений о конфликтах:
// путь записи всегда идёт в БД, кеш лишь ускоряет чтение и инвалидируется
// при каждом успешном резервировании, отмене и замене оверрайдов.
// Любая ошибка Redis деградирует в промах кеша.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
	logger Logger
}

// New создает кеш доступности поверх Redis
func New(addr, password string, db int, ttl time.Duration, logger Logger) *Cache {
	return &Cache{
		client: redis.NewClient(&redis.Options{
			Addr:     addr,
			Password: password,
			DB:       db,
		}),
		ttl:    ttl,
		logger: logger,
	}
}

// GetDay возвращает закешированный статус слотов дня.
// Второе возвращаемое значение false означает промах кеша.
func (c *Cache) GetDay(ctx context.Context, consultantID int64, date time.Time) ([]domain.ResolvedSlot, bool) {
	payload, err := c.client.Get(ctx, c.dayKey(consultantID, date)).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.logger.Warn("availability cache: GetDay failed for consultant=%d date=%s: %v",
				consultantID, date.Format(domain.DateFormat), err)
		}
		return nil, false
	}

	var slots []domain.ResolvedSlot
	if err := json.Unmarshal(payload, &slots); err != nil {
		c.logger.Warn("availability cache: corrupted payload for consultant=%d date=%s: %v",
			consultantID, date.Format(domain.DateFormat), err)
		return nil, false
	}

	return slots, true
}

// SetDay сохраняет статус слотов дня с TTL из конфигурации
func (c *Cache) SetDay(ctx context.Context, consultantID int64, date time.Time, slots []domain.ResolvedSlot) {
	payload, err := json.Marshal(slots)
	if err != nil {
		c.logger.Warn("availability cache: SetDay marshal failed: %v", err)
		return
	}

	if err := c.client.Set(ctx, c.dayKey(consultantID, date), payload, c.ttl).Err(); err != nil {
		c.logger.Warn("availability cache: SetDay failed for consultant=%d date=%s: %v",
			consultantID, date.Format(domain.DateFormat), err)
	}
}

// InvalidateDay удаляет закешированный день после успешной записи
func (c *Cache) InvalidateDay(ctx context.Context, consultantID int64, date time.Time) {
	if err := c.client.Del(ctx, c.dayKey(consultantID, date)).Err(); err != nil {
		c.logger.Warn("availability cache: InvalidateDay failed for consultant=%d date=%s: %v",
			consultantID, date.Format(domain.DateFormat), err)
	}
}

// Close закрывает подключение к Redis
func (c *Cache) Close() error {
	return c.client.Close()
}

func (c *Cache) dayKey(consultantID int64, date time.Time) string {
	return fmt.Sprintf("availability:%d:%s", consultantID, date.Format(domain.DateFormat))
}
