// Package cache holds read-through caches in front of repositories.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	domcustomer "example.com/orderflow/internal/domain/customer"
)

type redisClient interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
}

type CustomerFinder interface {
	FindByID(ctx context.Context, id string) (*domcustomer.Customer, error)
}

// CustomerRepository caches customer lookups in redis. Only hits are cached;
// a missing customer is always looked up again. Redis failures degrade to
// the wrapped repository.
type CustomerRepository struct {
	next   CustomerFinder
	client redisClient
	ttl    time.Duration
	prefix string
	log    logrus.FieldLogger
}

func NewCustomerRepository(next CustomerFinder, client redisClient, ttl time.Duration, log logrus.FieldLogger) *CustomerRepository {
	return &CustomerRepository{
		next:   next,
		client: client,
		ttl:    ttl,
		prefix: "orderflow",
		log:    log,
	}
}

func (r *CustomerRepository) key(id string) string {
	return fmt.Sprintf("%s:customer:%s", r.prefix, id)
}

func (r *CustomerRepository) FindByID(ctx context.Context, id string) (*domcustomer.Customer, error) {
	key := r.key(id)

	raw, err := r.client.Get(ctx, key).Result()
	switch {
	case err == nil:
		var c domcustomer.Customer
		if jsonErr := json.Unmarshal([]byte(raw), &c); jsonErr == nil {
			return &c, nil
		}
		r.log.WithField("key", key).Warn("discarding undecodable cached customer")
	case errors.Is(err, redis.Nil):
	default:
		r.log.WithError(err).WithField("key", key).Warn("customer cache read failed")
	}

	c, err := r.next.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	payload, err := json.Marshal(c)
	if err != nil {
		return c, nil
	}
	if err := r.client.Set(ctx, key, payload, r.ttl).Err(); err != nil {
		r.log.WithError(err).WithField("key", key).Warn("customer cache write failed")
	}
	return c, nil
}
