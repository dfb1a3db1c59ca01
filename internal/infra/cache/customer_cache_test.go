package cache

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	domcustomer "example.com/orderflow/internal/domain/customer"
)

type fakeRedis struct {
	values  map[string]string
	ttls    map[string]time.Duration
	getErr  error
	setErr  error
	getKeys []string
}

func newFakeRedis() *fakeRedis {
	return &fakeRedis{
		values: make(map[string]string),
		ttls:   make(map[string]time.Duration),
	}
}

func (f *fakeRedis) Get(ctx context.Context, key string) *redis.StringCmd {
	f.getKeys = append(f.getKeys, key)
	if f.getErr != nil {
		return redis.NewStringResult("", f.getErr)
	}
	v, ok := f.values[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(v, nil)
}

func (f *fakeRedis) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd {
	if f.setErr != nil {
		return redis.NewStatusResult("", f.setErr)
	}
	f.values[key] = string(value.([]byte))
	f.ttls[key] = expiration
	return redis.NewStatusResult("OK", nil)
}

type countingFinder struct {
	customers map[string]*domcustomer.Customer
	calls     int
}

func (f *countingFinder) FindByID(ctx context.Context, id string) (*domcustomer.Customer, error) {
	f.calls++
	if c, ok := f.customers[id]; ok {
		cloned := *c
		return &cloned, nil
	}
	return nil, domcustomer.ErrCustomerNotFound
}

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func setup() (*CustomerRepository, *fakeRedis, *countingFinder) {
	client := newFakeRedis()
	finder := &countingFinder{customers: map[string]*domcustomer.Customer{
		"C1": {ID: "C1", Name: "Ana", Email: "ana@example.com"},
	}}
	return NewCustomerRepository(finder, client, time.Minute, quietLogger()), client, finder
}

func TestFindByID_MissThenHit(t *testing.T) {
	repo, client, finder := setup()

	c, err := repo.FindByID(context.Background(), "C1")
	require.NoError(t, err)
	require.Equal(t, "Ana", c.Name)
	require.Equal(t, 1, finder.calls)
	require.Equal(t, time.Minute, client.ttls["orderflow:customer:C1"])

	c, err = repo.FindByID(context.Background(), "C1")
	require.NoError(t, err)
	require.Equal(t, "Ana", c.Name)
	require.Equal(t, 1, finder.calls, "second lookup should be served from cache")
}

func TestFindByID_NotFoundIsNotCached(t *testing.T) {
	repo, client, finder := setup()

	for i := 0; i < 2; i++ {
		_, err := repo.FindByID(context.Background(), "missing")
		require.ErrorIs(t, err, domcustomer.ErrCustomerNotFound)
	}
	require.Equal(t, 2, finder.calls)
	require.Empty(t, client.values)
}

func TestFindByID_RedisDownFallsBack(t *testing.T) {
	repo, client, finder := setup()
	client.getErr = errors.New("dial tcp: connection refused")
	client.setErr = errors.New("dial tcp: connection refused")

	c, err := repo.FindByID(context.Background(), "C1")

	require.NoError(t, err)
	require.Equal(t, "C1", c.ID)
	require.Equal(t, 1, finder.calls)
}

func TestFindByID_CorruptEntryIsReloaded(t *testing.T) {
	repo, client, finder := setup()
	client.values["orderflow:customer:C1"] = "{not json"

	c, err := repo.FindByID(context.Background(), "C1")

	require.NoError(t, err)
	require.Equal(t, "Ana", c.Name)
	require.Equal(t, 1, finder.calls)

	var cached domcustomer.Customer
	require.NoError(t, json.Unmarshal([]byte(client.values["orderflow:customer:C1"]), &cached))
	require.Equal(t, "C1", cached.ID)
}
