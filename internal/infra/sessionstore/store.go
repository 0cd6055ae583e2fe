package sessionstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/salonhub/booking-engine/internal/domain"
)

// keyPrefix префикс ключей выбора слота в Redis
const keyPrefix = "slotsession:"

// Store хранилище незавершённого выбора слота, ключ - идентификатор клиента.
// Живет в Redis, а не в памяти процесса: запросы "выбрать" и "подтвердить"
// могут прийти на разные инстансы сервиса. TTL обеспечивается самим Redis.
type Store struct {
	client *redis.Client
}

// NewStore создает новое хранилище выбора слота
func NewStore(client *redis.Client) *Store {
	return &Store{client: client}
}

// Put сохраняет выбор слота клиента с TTL.
// Повторный вызов для того же клиента перезаписывает предыдущий выбор
// (last write wins) и сбрасывает TTL.
func (s *Store) Put(ctx context.Context, selection *domain.PendingSelection, ttl time.Duration) error {
	data, err := json.Marshal(selection)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrMarshal, err)
	}

	if err := s.client.Set(ctx, keyPrefix+selection.CustomerID, data, ttl).Err(); err != nil {
		return fmt.Errorf("%w: Put - set key: %v", ErrStore, err)
	}

	return nil
}

// Get возвращает сохранённый выбор слота клиента.
// На отсутствующий или истёкший ключ возвращает ErrNoActiveSession.
func (s *Store) Get(ctx context.Context, customerID string) (*domain.PendingSelection, error) {
	data, err := s.client.Get(ctx, keyPrefix+customerID).Result()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNoActiveSession
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Get - get key: %v", ErrStore, err)
	}

	var selection domain.PendingSelection
	if err := json.Unmarshal([]byte(data), &selection); err != nil {
		return nil, fmt.Errorf("%w: Get - unmarshal selection: %v", ErrMarshal, err)
	}

	return &selection, nil
}

// Delete удаляет выбор слота клиента. Отсутствие ключа не считается ошибкой.
func (s *Store) Delete(ctx context.Context, customerID string) error {
	if err := s.client.Del(ctx, keyPrefix+customerID).Err(); err != nil {
		return fmt.Errorf("%w: Delete - del key: %v", ErrStore, err)
	}
	return nil
}
