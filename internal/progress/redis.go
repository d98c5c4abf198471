package progress

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/shaiso/Simplify/internal/domain"
)

// RedisStore — прогресс в Redis.
//
// Ключи:
//
//	<prefix>progress:<flow_id> => JSON {"completed_steps": [...], "documents": {...}}
type RedisStore struct {
	client *redis.Client
	prefix string
}

var _ Store = (*RedisStore)(nil)

// NewRedisStore создаёт RedisStore. Пустой prefix заменяется на "simplify:".
func NewRedisStore(client *redis.Client, prefix string) *RedisStore {
	if prefix == "" {
		prefix = "simplify:"
	}
	return &RedisStore{client: client, prefix: prefix}
}

func (s *RedisStore) key(flowID string) string {
	return s.prefix + "progress:" + flowID
}

func (s *RedisStore) Get(ctx context.Context, flowID string) (domain.Progress, error) {
	if flowID == "" {
		return domain.Progress{}, ErrEmptyFlowID
	}

	data, err := s.client.Get(ctx, s.key(flowID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return domain.EmptyProgress(flowID), nil
		}
		return domain.Progress{}, fmt.Errorf("redis get: %w", err)
	}

	var pl payload
	if err := json.Unmarshal(data, &pl); err != nil {
		return domain.Progress{}, fmt.Errorf("unmarshal progress: %w", err)
	}

	p := domain.Progress{FlowID: flowID, CompletedSteps: pl.CompletedSteps, Documents: pl.Documents}
	p.Normalize()
	return p, nil
}

func (s *RedisStore) Save(ctx context.Context, p domain.Progress) error {
	if p.FlowID == "" {
		return ErrEmptyFlowID
	}

	pl := payload{CompletedSteps: p.CompletedSteps, Documents: p.Documents}
	if pl.CompletedSteps == nil {
		pl.CompletedSteps = []string{}
	}
	data, err := json.Marshal(pl)
	if err != nil {
		return fmt.Errorf("marshal progress: %w", err)
	}

	if err := s.client.Set(ctx, s.key(p.FlowID), data, 0).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

func (s *RedisStore) Delete(ctx context.Context, flowID string) error {
	if flowID == "" {
		return ErrEmptyFlowID
	}
	if err := s.client.Del(ctx, s.key(flowID)).Err(); err != nil {
		return fmt.Errorf("redis del: %w", err)
	}
	return nil
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}
