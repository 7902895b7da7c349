package product

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	id "prodauth/pkg/domain"
)

const cacheKeyPrefix = "product:record:"

// CachedStore layers a Redis read-through cache over another Store. Product
// records are immutable after creation, so cached entries can never go stale;
// the TTL only bounds cache memory. Cache failures degrade to the underlying
// store rather than failing the read.
type CachedStore struct {
	inner  Store
	client *redis.Client
	ttl    time.Duration
}

func NewCachedStore(inner Store, client *redis.Client, ttl time.Duration) *CachedStore {
	return &CachedStore{inner: inner, client: client, ttl: ttl}
}

// cachedRecord is the JSON layout stored in Redis.
type cachedRecord struct {
	ProductID    string    `json:"product_id"`
	Name         string    `json:"name"`
	BatchNumber  string    `json:"batch_number"`
	Origin       string    `json:"origin"`
	ContentHash  string    `json:"content_hash"`
	Manufacturer string    `json:"manufacturer"`
	RegisteredAt time.Time `json:"registered_at"`
}

func (s *CachedStore) Create(ctx context.Context, record Record) error {
	if err := s.inner.Create(ctx, record); err != nil {
		return err
	}
	// Prime the cache; a failed prime is only a lost optimization.
	_ = s.put(ctx, record)
	return nil
}

func (s *CachedStore) Find(ctx context.Context, productID id.ProductID) (Record, error) {
	if record, err := s.get(ctx, productID); err == nil {
		return record, nil
	}
	record, err := s.inner.Find(ctx, productID)
	if err != nil {
		return Record{}, err
	}
	_ = s.put(ctx, record)
	return record, nil
}

func (s *CachedStore) Exists(ctx context.Context, productID id.ProductID) (bool, error) {
	if _, err := s.get(ctx, productID); err == nil {
		return true, nil
	}
	return s.inner.Exists(ctx, productID)
}

func (s *CachedStore) get(ctx context.Context, productID id.ProductID) (Record, error) {
	raw, err := s.client.Get(ctx, cacheKeyPrefix+productID.String()).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			// Treat an unreachable cache as a miss.
			return Record{}, fmt.Errorf("cache read: %w", err)
		}
		return Record{}, err
	}
	var cached cachedRecord
	if err := json.Unmarshal(raw, &cached); err != nil {
		return Record{}, fmt.Errorf("cache decode: %w", err)
	}
	return Record{
		ProductID:    id.ProductID(cached.ProductID),
		Name:         cached.Name,
		BatchNumber:  cached.BatchNumber,
		Origin:       cached.Origin,
		ContentHash:  id.ContentHash(cached.ContentHash),
		Manufacturer: id.AccountID(cached.Manufacturer),
		RegisteredAt: cached.RegisteredAt,
	}, nil
}

func (s *CachedStore) put(ctx context.Context, record Record) error {
	payload, err := json.Marshal(cachedRecord{
		ProductID:    record.ProductID.String(),
		Name:         record.Name,
		BatchNumber:  record.BatchNumber,
		Origin:       record.Origin,
		ContentHash:  record.ContentHash.String(),
		Manufacturer: record.Manufacturer.String(),
		RegisteredAt: record.RegisteredAt,
	})
	if err != nil {
		return err
	}
	return s.client.Set(ctx, cacheKeyPrefix+record.ProductID.String(), payload, s.ttl).Err()
}
