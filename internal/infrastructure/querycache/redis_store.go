package querycache

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

var _ Store = (*RedisStore)(nil)

// RedisStore store compartido entre instancias.
// Cada entrada es un hash {data, stale}; cada etiqueta, un set con las claves que agrupa.
// Marcar obsoleto borra la entrada: para el lector es equivalente y evita dejar hashes huérfanos.
type RedisStore struct {
	rdb    *redis.Client
	prefix string
}

// NewRedisStore conecta y verifica con PING. Devuelve error si Redis no responde.
func NewRedisStore(ctx context.Context, addr string) (*RedisStore, error) {
	rdb := redis.NewClient(&redis.Options{Addr: addr})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis: ping %s: %w", addr, err)
	}
	return &RedisStore{rdb: rdb, prefix: "axion:qc:"}, nil
}

// Close libera la conexión.
func (s *RedisStore) Close() error {
	return s.rdb.Close()
}

func (s *RedisStore) entryKey(key string) string { return s.prefix + "entry:" + key }
func (s *RedisStore) tagKey(tag string) string   { return s.prefix + "tag:" + tag }

func (s *RedisStore) Load(ctx context.Context, key string) (Entry, bool, error) {
	vals, err := s.rdb.HMGet(ctx, s.entryKey(key), "data", "stale").Result()
	if err != nil {
		return Entry{}, false, fmt.Errorf("redis: hmget: %w", err)
	}
	if len(vals) != 2 || vals[0] == nil {
		return Entry{}, false, nil
	}
	data, _ := vals[0].(string)
	stale, _ := vals[1].(string)
	return Entry{Data: []byte(data), Stale: stale == "1"}, true, nil
}

func (s *RedisStore) Save(ctx context.Context, key string, data []byte, tags []string, ttl time.Duration) error {
	ek := s.entryKey(key)
	pipe := s.rdb.TxPipeline()
	pipe.HSet(ctx, ek, "data", data, "stale", "0")
	if ttl > 0 {
		pipe.Expire(ctx, ek, ttl)
	}
	for _, t := range tags {
		pipe.SAdd(ctx, s.tagKey(t), key)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("redis: save: %w", err)
	}
	return nil
}

func (s *RedisStore) MarkStale(ctx context.Context, tags ...string) ([]string, error) {
	var keys []string
	for _, t := range tags {
		members, err := s.rdb.SMembers(ctx, s.tagKey(t)).Result()
		if err != nil {
			return keys, fmt.Errorf("redis: smembers %s: %w", t, err)
		}
		keys = append(keys, members...)
	}
	if len(keys) == 0 {
		return nil, nil
	}
	pipe := s.rdb.TxPipeline()
	for _, k := range keys {
		pipe.Del(ctx, s.entryKey(k))
	}
	for _, t := range tags {
		pipe.Del(ctx, s.tagKey(t))
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return keys, fmt.Errorf("redis: invalidar: %w", err)
	}
	return keys, nil
}
